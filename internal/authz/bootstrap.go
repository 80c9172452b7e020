package authz

import "fmt"

// RoleSeed 预置角色定义
type RoleSeed struct {
	Role     string
	Inherits []string
	Policies []Policy
}

func crud(object string) []Policy {
	return []Policy{
		{Object: object, Action: "GET"},
		{Object: object, Action: "PUT"},
		{Object: object, Action: "DELETE"},
	}
}

// BuiltinRoleSeeds 系统预置角色矩阵
// 高权限角色继承低一级角色的全部策略
func BuiltinRoleSeeds() []RoleSeed {
	userPolicies := []Policy{
		{Object: "/user/profile", Action: "GET"},
		{Object: "/user/profile", Action: "PUT"},
		{Object: "/blog/paginated", Action: "GET"},
		{Object: "/blog/user", Action: "GET"},
		{Object: "/blog/:id", Action: "GET"},
		{Object: "/comment", Action: "POST"},
		{Object: "/comment/:id", Action: "PUT"},
		{Object: "/comment/:id", Action: "DELETE"},
		{Object: "/employee-revenue", Action: "POST"},
		{Object: "/employee-revenue/user/revenue", Action: "GET"},
		{Object: "/notification", Action: "GET"},
		{Object: "/notification", Action: "POST"},
		{Object: "/notification/read-all", Action: "PUT"},
		{Object: "/notification/unread-count", Action: "GET"},
		{Object: "/recharge-transaction", Action: "GET"},
		{Object: "/recharge-transaction", Action: "POST"},
	}
	userPolicies = append(userPolicies, crud("/notification/:id")...)
	userPolicies = append(userPolicies, crud("/recharge-transaction/:id")...)

	marketerPolicies := []Policy{
		{Object: "/user/all", Action: "GET"},
		{Object: "/blog", Action: "POST"},
		{Object: "/blog/:id", Action: "PUT"},
		{Object: "/blog/:id", Action: "DELETE"},
		{Object: "/blog/directory", Action: "GET"},
		{Object: "/blog/my", Action: "GET"},
		{Object: "/employee-revenue", Action: "GET"},
		{Object: "/employee-revenue/aggregate", Action: "GET"},
		{Object: "/employee-revenue/summary", Action: "GET"},
		{Object: "/employee-revenue/monthly", Action: "GET"},
	}
	marketerPolicies = append(marketerPolicies, crud("/employee-revenue/:id")...)

	return []RoleSeed{
		{Role: "user", Policies: userPolicies},
		{Role: "marketer", Inherits: []string{"user"}, Policies: marketerPolicies},
		{Role: "finance", Inherits: []string{"marketer"}},
		{
			Role:     "admin",
			Inherits: []string{"finance"},
			Policies: []Policy{
				{Object: "/user/admin/all", Action: "GET"},
				{Object: "/user/admin/create", Action: "POST"},
				{Object: "/user/admin/:id", Action: "PUT"},
				{Object: "/user/:id", Action: "DELETE"},
			},
		},
		{Role: "super_admin", Inherits: []string{"admin"}},
	}
}

// BootstrapBuiltinRoles 初始化预置角色与默认策略，可重复执行
func (s *Service) BootstrapBuiltinRoles() error {
	if s == nil || s.enforcer == nil {
		return fmt.Errorf("authz service unavailable")
	}

	for _, seed := range BuiltinRoleSeeds() {
		role, err := NormalizeRole(seed.Role)
		if err != nil {
			return err
		}

		for _, parent := range seed.Inherits {
			parentRole, err := NormalizeRole(parent)
			if err != nil {
				return err
			}
			if _, err := s.enforcer.AddNamedGroupingPolicy("g", role, parentRole); err != nil {
				return fmt.Errorf("link role inheritance failed: %w", err)
			}
		}

		for _, policy := range seed.Policies {
			action := NormalizeAction(policy.Action)
			if action == "" {
				return fmt.Errorf("builtin policy action is required")
			}
			if _, err := s.enforcer.AddPolicy(role, NormalizeObject(policy.Object), action); err != nil {
				return fmt.Errorf("add builtin policy failed: %w", err)
			}
		}
	}
	return nil
}
