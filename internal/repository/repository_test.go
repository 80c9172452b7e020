package repository

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/blog-console/internal/constants"
	"github.com/blog-console/internal/models"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func setupRepositoryTest(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(models.AllModels()...); err != nil {
		t.Fatalf("migrate models failed: %v", err)
	}
	return db
}

func createUser(t *testing.T, db *gorm.DB, username string, role int) *models.User {
	t.Helper()
	user := &models.User{
		Username:     username,
		PasswordHash: "x",
		Nickname:     strings.ToUpper(username),
		Role:         role,
		Avatar:       username + ".png",
		Status:       constants.UserStatusActive,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("create user failed: %v", err)
	}
	return user
}

func TestUserListMinRoleAndKeyword(t *testing.T) {
	db := setupRepositoryTest(t)
	repo := NewUserRepository(db)
	createUser(t, db, "root", constants.RoleSuperAdmin)
	createUser(t, db, "alice", constants.RoleMarketer)
	createUser(t, db, "alan", constants.RoleFinance)
	createUser(t, db, "bob", constants.RoleUser)

	minRole := constants.RoleAdmin
	users, total, err := repo.List(UserListFilter{MinRole: &minRole, Keyword: "al", Page: 1, Limit: 10})
	if err != nil {
		t.Fatalf("list users failed: %v", err)
	}
	if total != 2 || len(users) != 2 {
		t.Fatalf("users want 2 got total=%d len=%d", total, len(users))
	}

	if err := repo.Delete(users[0].ID); err != nil {
		t.Fatalf("delete user failed: %v", err)
	}
	exists, err := repo.ExistsUsername(users[0].Username)
	if err != nil || !exists {
		t.Fatalf("deleted username should stay reserved, exists=%v err=%v", exists, err)
	}
	found, err := repo.GetByUsername(users[0].Username)
	if err != nil || found != nil {
		t.Fatalf("deleted user should not be found, got=%v err=%v", found, err)
	}
}

func TestBlogListDayFilterAndDirectory(t *testing.T) {
	db := setupRepositoryTest(t)
	repo := NewBlogRepository(db)
	author := createUser(t, db, "writer", constants.RoleMarketer)

	base := time.Date(2025, 3, 10, 9, 0, 0, 0, time.Local)
	stamps := []time.Time{base, base.Add(2 * time.Hour), base.AddDate(0, 0, 1), base.AddDate(0, -1, 0)}
	for i, ts := range stamps {
		blog := &models.Blog{
			UserID:    author.ID,
			AuthorID:  author.ID,
			Title:     fmt.Sprintf("post-%d", i),
			Status:    constants.BlogStatusPublished,
			CreatedAt: ts,
		}
		if err := repo.Create(blog); err != nil {
			t.Fatalf("create blog failed: %v", err)
		}
	}

	dayStart := time.Date(2025, 3, 10, 0, 0, 0, 0, time.Local)
	dayEnd := dayStart.AddDate(0, 0, 1)
	blogs, total, err := repo.List(BlogListFilter{Page: 1, Limit: 6, From: &dayStart, To: &dayEnd})
	if err != nil {
		t.Fatalf("list blogs failed: %v", err)
	}
	if total != 2 {
		t.Fatalf("blogs on day want 2 got %d", total)
	}
	if blogs[0].Title != "post-1" || blogs[0].Author == nil || blogs[0].Author.Nickname != "WRITER" {
		t.Fatalf("unexpected first blog: %+v", blogs[0])
	}

	rows, err := repo.ListDirectory(author.ID)
	if err != nil {
		t.Fatalf("list directory failed: %v", err)
	}
	if len(rows) != 4 || rows[0].Title != "post-2" || rows[3].Title != "post-3" {
		t.Fatalf("unexpected directory rows: %+v", rows)
	}

	if err := repo.Delete(blogs[0].ID); err != nil {
		t.Fatalf("delete blog failed: %v", err)
	}
	if got, _ := repo.GetByID(blogs[0].ID); got != nil {
		t.Fatalf("deleted blog should not be found")
	}
}

func TestCommentListOrderAndDeletePromotesChildren(t *testing.T) {
	db := setupRepositoryTest(t)
	repo := NewCommentRepository(db)
	user := createUser(t, db, "reader", constants.RoleUser)

	root := &models.Comment{BlogID: 1, UserID: user.ID, Content: "root", CreatedAt: time.Now().Add(-time.Hour)}
	if err := repo.Create(root); err != nil {
		t.Fatalf("create root failed: %v", err)
	}
	reply := &models.Comment{BlogID: 1, UserID: user.ID, Content: "reply", ParentID: &root.ID}
	if err := repo.Create(reply); err != nil {
		t.Fatalf("create reply failed: %v", err)
	}

	items, total, err := repo.List(CommentListFilter{BlogID: 1, Page: 1, Limit: 10, OldestFirst: true})
	if err != nil {
		t.Fatalf("list comments failed: %v", err)
	}
	if total != 2 || items[0].Content != "root" || items[0].User == nil {
		t.Fatalf("unexpected comments: %+v", items)
	}

	reply.Content = "edited"
	reply.ParentID = nil
	if err := repo.Update(reply); err != nil {
		t.Fatalf("update comment failed: %v", err)
	}
	reply.ParentID = &root.ID
	if err := repo.Update(reply); err != nil {
		t.Fatalf("update comment failed: %v", err)
	}

	if err := repo.Delete(root.ID); err != nil {
		t.Fatalf("delete root failed: %v", err)
	}
	got, err := repo.GetByID(reply.ID)
	if err != nil || got == nil {
		t.Fatalf("reply should survive, err=%v", err)
	}
	if got.ParentID != nil || got.Content != "edited" {
		t.Fatalf("reply should be promoted and edited, got %+v", got)
	}
}

func TestRevenueAggregateAndMonthly(t *testing.T) {
	db := setupRepositoryTest(t)
	repo := NewRevenueRepository(db)
	alice := createUser(t, db, "alice", constants.RoleMarketer)
	bob := createUser(t, db, "bob", constants.RoleMarketer)

	march := time.Date(2025, 3, 5, 10, 0, 0, 0, time.Local)
	april := time.Date(2025, 4, 2, 10, 0, 0, 0, time.Local)
	records := []models.EmployeeRevenue{
		{UserID: alice.ID, Expenditure: models.NewMoney(100), Revenue: models.NewMoney(300), OrderCount: 3, AdCreationCount: 1, RecordTime: march},
		{UserID: alice.ID, Expenditure: models.NewMoney(50), Revenue: models.NewMoney(50), OrderCount: 1, AdCreationCount: 2, RecordTime: april},
		{UserID: bob.ID, Expenditure: models.NewMoney(10), Revenue: models.NewMoney(100), OrderCount: 5, AdCreationCount: 0, RecordTime: april},
	}
	for i := range records {
		records[i].RefreshROI()
		if err := repo.Create(&records[i]); err != nil {
			t.Fatalf("create revenue failed: %v", err)
		}
	}

	rows, err := repo.Aggregate(RevenueListFilter{})
	if err != nil {
		t.Fatalf("aggregate failed: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("aggregate rows want 2 got %d", len(rows))
	}
	first := rows[0]
	if first.UserID != alice.ID || first.Nickname != "ALICE" || first.Avatar != "alice.png" {
		t.Fatalf("unexpected first row: %+v", first)
	}
	if first.TotalRevenue != 350 || first.TotalExpenditure != 150 || first.TotalOrderCount != 4 || first.TotalAdCreationCount != 3 {
		t.Fatalf("unexpected alice totals: %+v", first)
	}
	if first.AverageROI != 2 {
		t.Fatalf("alice average roi want 2 got %v", first.AverageROI)
	}

	from := time.Date(2025, 4, 1, 0, 0, 0, 0, time.Local)
	filtered, err := repo.Aggregate(RevenueListFilter{From: &from})
	if err != nil {
		t.Fatalf("aggregate filtered failed: %v", err)
	}
	if len(filtered) != 2 || filtered[0].UserID != bob.ID || filtered[0].AverageROI != 10 {
		t.Fatalf("unexpected filtered rows: %+v", filtered)
	}

	monthly, err := repo.Monthly(time.Date(2025, 1, 1, 0, 0, 0, 0, time.Local), time.Date(2026, 1, 1, 0, 0, 0, 0, time.Local), 0)
	if err != nil {
		t.Fatalf("monthly failed: %v", err)
	}
	if len(monthly) != 2 || monthly[0].Month != "2025-03" || monthly[1].RecordCount != 2 || monthly[1].TotalRevenue != 150 {
		t.Fatalf("unexpected monthly rows: %+v", monthly)
	}

	list, total, err := repo.List(RevenueListFilter{UserID: alice.ID, Page: 1, Limit: 1})
	if err != nil {
		t.Fatalf("list revenue failed: %v", err)
	}
	if total != 2 || len(list) != 1 || !list[0].RecordTime.Equal(april) {
		t.Fatalf("unexpected revenue page: total=%d %+v", total, list)
	}
}

func TestNotificationMarkAllRead(t *testing.T) {
	db := setupRepositoryTest(t)
	repo := NewNotificationRepository(db)
	for i := 0; i < 3; i++ {
		if err := repo.Create(&models.Notification{UserID: 7, Type: constants.NotificationTypeSystem, Content: "hi", Status: constants.NotificationStatusUnread}); err != nil {
			t.Fatalf("create notification failed: %v", err)
		}
	}
	if err := repo.Create(&models.Notification{UserID: 8, Type: constants.NotificationTypeSystem, Content: "other", Status: constants.NotificationStatusUnread}); err != nil {
		t.Fatalf("create notification failed: %v", err)
	}

	affected, err := repo.MarkAllRead(7)
	if err != nil || affected != 3 {
		t.Fatalf("mark all read want 3 got %d err=%v", affected, err)
	}
	unread, _ := repo.CountUnread(7)
	if unread != 0 {
		t.Fatalf("unread want 0 got %d", unread)
	}
	other, _ := repo.CountUnread(8)
	if other != 1 {
		t.Fatalf("other user unread want 1 got %d", other)
	}
}

func TestRechargeOrderNumberCountIncludesDeleted(t *testing.T) {
	db := setupRepositoryTest(t)
	repo := NewRechargeRepository(db)
	tx := &models.RechargeTransaction{
		UserID:          1,
		OrderNumber:     "RC-1",
		Amount:          models.NewMoney(20),
		PaymentMethod:   constants.PaymentMethodAlipay,
		Status:          constants.RechargeStatusPending,
		TransactionTime: time.Now(),
	}
	if err := repo.Create(tx); err != nil {
		t.Fatalf("create recharge failed: %v", err)
	}
	if err := repo.Delete(tx.ID); err != nil {
		t.Fatalf("delete recharge failed: %v", err)
	}
	count, err := repo.CountByOrderNumber("RC-1", 0)
	if err != nil || count != 1 {
		t.Fatalf("order number count want 1 got %d err=%v", count, err)
	}
	if count, _ := repo.CountByOrderNumber("RC-1", tx.ID); count != 0 {
		t.Fatalf("excluded count want 0 got %d", count)
	}
}
