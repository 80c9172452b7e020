package service

import (
	"errors"
	"testing"

	"github.com/blog-console/internal/constants"
	"github.com/blog-console/internal/queue"
)

func TestNotificationCreateTargets(t *testing.T) {
	env := setupServiceTest(t)
	user := env.createUser(t, "member", constants.RoleUser)
	admin := env.createUser(t, "admin1", constants.RoleAdmin)
	other := env.createUser(t, "other", constants.RoleUser)

	own, err := env.notifications.Create(actorOf(user), NotificationInput{UserID: other.ID, Content: "note"})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if own.UserID != user.ID || own.Type != constants.NotificationTypeSystem {
		t.Fatalf("normal user should only notify self, got %+v", own)
	}

	targeted, err := env.notifications.Create(actorOf(admin), NotificationInput{UserID: other.ID, Content: "hello", Type: constants.NotificationTypeSystem})
	if err != nil {
		t.Fatalf("admin create failed: %v", err)
	}
	if targeted.UserID != other.ID {
		t.Fatalf("admin notification should target %d got %d", other.ID, targeted.UserID)
	}

	_, err = env.notifications.Create(actorOf(user), NotificationInput{Content: " "})
	var vErr *ValidationError
	if !errors.As(err, &vErr) || vErr.Field != "content" {
		t.Fatalf("empty content want validation error got %v", err)
	}
	if _, err := env.notifications.Create(actorOf(user), NotificationInput{Content: "x", Type: "spam"}); !errors.As(err, &vErr) {
		t.Fatalf("bad type want validation error got %v", err)
	}
}

func TestNotificationOwnershipAndReadAll(t *testing.T) {
	env := setupServiceTest(t)
	user := env.createUser(t, "member", constants.RoleUser)
	other := env.createUser(t, "other", constants.RoleUser)

	for _, content := range []string{"a", "b", "c"} {
		if _, err := env.notifications.Create(actorOf(user), NotificationInput{Content: content}); err != nil {
			t.Fatalf("create failed: %v", err)
		}
	}
	list, total, err := env.notifications.List(user.ID, NotificationListQuery{Page: 1, Limit: 10})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if total != 3 || list[0].Content != "c" {
		t.Fatalf("list want newest first total=3, got total=%d first=%s", total, list[0].Content)
	}

	first := list[2]
	if _, err := env.notifications.Get(other.ID, first.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("get by other want ErrNotFound got %v", err)
	}
	if err := env.notifications.Delete(other.ID, first.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("delete by other want ErrNotFound got %v", err)
	}

	read := constants.NotificationStatusRead
	updated, err := env.notifications.Update(user.ID, first.ID, NotificationUpdateInput{Status: &read})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if updated.Status != read {
		t.Fatalf("status want read got %s", updated.Status)
	}

	count, err := env.notifications.UnreadCount(user.ID)
	if err != nil || count != 2 {
		t.Fatalf("unread want 2 got %d (%v)", count, err)
	}
	changed, err := env.notifications.MarkAllRead(user.ID)
	if err != nil || changed != 2 {
		t.Fatalf("mark all read want 2 got %d (%v)", changed, err)
	}
	count, _ = env.notifications.UnreadCount(user.ID)
	if count != 0 {
		t.Fatalf("unread after read-all want 0 got %d", count)
	}

	unread, total, err := env.notifications.List(user.ID, NotificationListQuery{Page: 1, Limit: 10, Status: constants.NotificationStatusUnread})
	if err != nil || total != 0 || len(unread) != 0 {
		t.Fatalf("unread list want empty got %d (%v)", total, err)
	}
}

func TestHandleCreateTask(t *testing.T) {
	env := setupServiceTest(t)
	user := env.createUser(t, "member", constants.RoleUser)

	if err := env.notifications.HandleCreateTask(queue.NotificationCreatePayload{UserID: user.ID, Content: "from queue"}); err != nil {
		t.Fatalf("handle task failed: %v", err)
	}
	if err := env.notifications.HandleCreateTask(queue.NotificationCreatePayload{Content: "nobody"}); err == nil {
		t.Fatalf("payload without user should fail")
	}
	notes := env.notificationsOf(t, user.ID)
	if len(notes) != 1 || notes[0].Type != constants.NotificationTypeSystem {
		t.Fatalf("unexpected notifications: %+v", notes)
	}
}
