package service

// Actor 当前操作者
type Actor struct {
	UserID uint
	Role   int
}

// AtLeast 角色数值越小权限越高
func (a Actor) AtLeast(role int) bool {
	return a.Role <= role
}
