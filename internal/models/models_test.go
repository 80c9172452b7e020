package models

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/blog-console/internal/constants"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:models_%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(AllModels()...); err != nil {
		t.Fatalf("migrate failed: %v", err)
	}
	return db
}

func TestComputeROI(t *testing.T) {
	if got := ComputeROI(NewMoney(300), NewMoney(120)); got != 2.5 {
		t.Fatalf("roi want 2.5 got %v", got)
	}
	if got := ComputeROI(NewMoney(300), NewMoney(0)); got != 0 {
		t.Fatalf("roi with zero expenditure want 0 got %v", got)
	}
	if got := ComputeROI(NewMoney(100), NewMoney(3)); got != 33.3333 {
		t.Fatalf("roi want 33.3333 got %v", got)
	}
}

func TestMoneyJSON(t *testing.T) {
	var payload struct {
		A Money `json:"a"`
		B Money `json:"b"`
	}
	if err := json.Unmarshal([]byte(`{"a":12.345,"b":"7.1"}`), &payload); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	out, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	if string(out) != `{"a":12.35,"b":7.10}` {
		t.Fatalf("unexpected json: %s", out)
	}
}

func TestBlogTagList(t *testing.T) {
	tags := Blog{Tags: " go, ,gin ,"}.TagList()
	if len(tags) != 2 || tags[0] != "go" || tags[1] != "gin" {
		t.Fatalf("unexpected tags: %v", tags)
	}
}

func TestEnsureAccountsIdempotent(t *testing.T) {
	db := openTestDB(t)

	if err := EnsureSuperAdmin(db, "admin", "admin"); err != nil {
		t.Fatalf("ensure admin failed: %v", err)
	}
	created, err := EnsureTeamAccounts(db)
	if err != nil {
		t.Fatalf("ensure team failed: %v", err)
	}
	if created != len(DefaultTeamAccounts()) {
		t.Fatalf("created want %d got %d", len(DefaultTeamAccounts()), created)
	}
	again, err := EnsureTeamAccounts(db)
	if err != nil {
		t.Fatalf("ensure team again failed: %v", err)
	}
	if again != 0 {
		t.Fatalf("second run created want 0 got %d", again)
	}

	var admin User
	if err := db.Where("username = ?", "admin").First(&admin).Error; err != nil {
		t.Fatalf("load admin failed: %v", err)
	}
	if admin.Role != constants.RoleSuperAdmin || admin.Avatar != constants.DefaultAvatar {
		t.Fatalf("unexpected admin: %+v", admin)
	}
	var finance int64
	db.Model(&User{}).Where("role = ?", constants.RoleFinance).Count(&finance)
	if finance != 3 {
		t.Fatalf("finance accounts want 3 got %d", finance)
	}
}

func TestUserZeroRoleAndStatusPersist(t *testing.T) {
	db := openTestDB(t)

	user := User{
		Username:     "root",
		PasswordHash: "x",
		Role:         constants.RoleSuperAdmin,
		Status:       constants.UserStatusDisabled,
	}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("create user failed: %v", err)
	}

	var loaded User
	if err := db.First(&loaded, user.ID).Error; err != nil {
		t.Fatalf("load user failed: %v", err)
	}
	if loaded.Role != constants.RoleSuperAdmin {
		t.Fatalf("role want %d got %d", constants.RoleSuperAdmin, loaded.Role)
	}
	if loaded.Status != constants.UserStatusDisabled {
		t.Fatalf("status want %d got %d", constants.UserStatusDisabled, loaded.Status)
	}
}
