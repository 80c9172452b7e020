package models

import (
	"errors"
	"fmt"
	"strings"

	"github.com/blog-console/internal/constants"
	"github.com/blog-console/internal/logger"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// SeedAccount 预置账号
type SeedAccount struct {
	Username string
	Nickname string
	Role     int
}

// DefaultTeamAccounts 预置团队账号，初始密码与用户名相同
func DefaultTeamAccounts() []SeedAccount {
	return []SeedAccount{
		{Username: "he", Nickname: "he", Role: constants.RoleFinance},
		{Username: "tyl", Nickname: "涂雅莉", Role: constants.RoleFinance},
		{Username: "hkx", Nickname: "黄开新", Role: constants.RoleMarketer},
		{Username: "clx", Nickname: "陈乐昕", Role: constants.RoleMarketer},
		{Username: "lj", Nickname: "李骏", Role: constants.RoleMarketer},
		{Username: "fxy", Nickname: "付孝勇", Role: constants.RoleMarketer},
		{Username: "zj", Nickname: "赵靖", Role: constants.RoleMarketer},
		{Username: "mcb", Nickname: "莫聪波", Role: constants.RoleMarketer},
		{Username: "xn", Nickname: "许念", Role: constants.RoleFinance},
		{Username: "wz", Nickname: "王喆", Role: constants.RoleMarketer},
	}
}

// EnsureSuperAdmin 确保存在超级管理员账号，已存在时不修改密码
func EnsureSuperAdmin(db *gorm.DB, username, password string) error {
	username = strings.TrimSpace(username)
	if username == "" {
		username = "admin"
	}
	if password == "" {
		password = "admin"
	}
	created, err := ensureAccount(db, SeedAccount{Username: username, Nickname: username, Role: constants.RoleSuperAdmin}, password)
	if err != nil {
		return err
	}
	if created && password == username {
		logger.Warnw("default_admin_created_with_default_password", "username", username)
	}
	return nil
}

// EnsureTeamAccounts 创建缺失的预置团队账号，返回新建数量
func EnsureTeamAccounts(db *gorm.DB) (int, error) {
	created := 0
	for _, account := range DefaultTeamAccounts() {
		ok, err := ensureAccount(db, account, account.Username)
		if err != nil {
			return created, err
		}
		if ok {
			created++
		}
	}
	return created, nil
}

func ensureAccount(db *gorm.DB, account SeedAccount, password string) (bool, error) {
	var existing User
	err := db.Unscoped().Where("username = ?", account.Username).First(&existing).Error
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return false, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return false, fmt.Errorf("hash password for %s: %w", account.Username, err)
	}
	user := User{
		Username:     account.Username,
		PasswordHash: string(hash),
		Nickname:     account.Nickname,
		Email:        account.Username + "@example.com",
		Role:         account.Role,
		Avatar:       constants.DefaultAvatar,
		Status:       constants.UserStatusActive,
	}
	if err := db.Create(&user).Error; err != nil {
		return false, err
	}
	return true, nil
}
