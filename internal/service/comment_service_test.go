package service

import (
	"errors"
	"testing"
	"time"

	"github.com/blog-console/internal/constants"
	"github.com/blog-console/internal/models"
)

func uintPtr(v uint) *uint { return &v }

func TestCommentCreateNotifiesAuthorAndParent(t *testing.T) {
	env := setupServiceTest(t)
	author := env.createUser(t, "author", constants.RoleMarketer)
	alice := env.createUser(t, "alice", constants.RoleUser)
	bob := env.createUser(t, "bob", constants.RoleUser)
	blog, err := env.blogs.Create(author.ID, BlogInput{Title: "Post"})
	if err != nil {
		t.Fatalf("create blog failed: %v", err)
	}

	if _, err := env.comments.Create(actorOf(alice), CommentInput{BlogID: 999, Content: "hi"}); !errors.Is(err, ErrBlogNotFound) {
		t.Fatalf("missing blog want ErrBlogNotFound got %v", err)
	}

	first, err := env.comments.Create(actorOf(alice), CommentInput{BlogID: blog.ID, Content: "first"})
	if err != nil {
		t.Fatalf("create comment failed: %v", err)
	}
	if first.Nickname != "ALICE" {
		t.Fatalf("nickname want ALICE got %s", first.Nickname)
	}
	if _, err := env.comments.Create(actorOf(bob), CommentInput{BlogID: blog.ID, Content: "reply", ParentID: uintPtr(first.ID)}); err != nil {
		t.Fatalf("create reply failed: %v", err)
	}
	if _, err := env.comments.Create(actorOf(author), CommentInput{BlogID: blog.ID, Content: "self"}); err != nil {
		t.Fatalf("create self comment failed: %v", err)
	}

	authorNotes := env.notificationsOf(t, author.ID)
	if len(authorNotes) != 2 {
		t.Fatalf("author notifications want 2 got %d", len(authorNotes))
	}
	if authorNotes[0].Type != constants.NotificationTypeComment || authorNotes[0].Status != constants.NotificationStatusUnread {
		t.Fatalf("unexpected author notification: %+v", authorNotes[0])
	}
	aliceNotes := env.notificationsOf(t, alice.ID)
	if len(aliceNotes) != 1 || aliceNotes[0].Type != constants.NotificationTypeReply {
		t.Fatalf("alice should get one reply notification, got %+v", aliceNotes)
	}
}

func TestCommentParentMustBelongToBlog(t *testing.T) {
	env := setupServiceTest(t)
	author := env.createUser(t, "author", constants.RoleMarketer)
	alice := env.createUser(t, "alice", constants.RoleUser)
	blogA, _ := env.blogs.Create(author.ID, BlogInput{Title: "A"})
	blogB, _ := env.blogs.Create(author.ID, BlogInput{Title: "B"})

	onA, err := env.comments.Create(actorOf(alice), CommentInput{BlogID: blogA.ID, Content: "on a"})
	if err != nil {
		t.Fatalf("create comment failed: %v", err)
	}
	if _, err := env.comments.Create(actorOf(alice), CommentInput{BlogID: blogB.ID, Content: "x", ParentID: uintPtr(onA.ID)}); !errors.Is(err, ErrCommentParentInvalid) {
		t.Fatalf("cross-blog parent want ErrCommentParentInvalid got %v", err)
	}
	if _, err := env.comments.Create(actorOf(alice), CommentInput{BlogID: blogA.ID, Content: "x", ParentID: uintPtr(12345)}); !errors.Is(err, ErrCommentParentInvalid) {
		t.Fatalf("missing parent want ErrCommentParentInvalid got %v", err)
	}

	child, err := env.comments.Create(actorOf(alice), CommentInput{BlogID: blogA.ID, Content: "child", ParentID: uintPtr(onA.ID)})
	if err != nil {
		t.Fatalf("create child failed: %v", err)
	}
	if _, err := env.comments.Update(actorOf(alice), onA.ID, CommentUpdateInput{Content: "loop", ParentID: uintPtr(child.ID)}); !errors.Is(err, ErrCommentParentInvalid) {
		t.Fatalf("cyclic parent want ErrCommentParentInvalid got %v", err)
	}
	if _, err := env.comments.Update(actorOf(alice), onA.ID, CommentUpdateInput{Content: "self", ParentID: uintPtr(onA.ID)}); !errors.Is(err, ErrCommentParentInvalid) {
		t.Fatalf("self parent want ErrCommentParentInvalid got %v", err)
	}
}

func TestCommentUpdateAndDeletePermissions(t *testing.T) {
	env := setupServiceTest(t)
	author := env.createUser(t, "author", constants.RoleMarketer)
	alice := env.createUser(t, "alice", constants.RoleUser)
	bob := env.createUser(t, "bob", constants.RoleUser)
	admin := env.createUser(t, "admin1", constants.RoleAdmin)
	blog, _ := env.blogs.Create(author.ID, BlogInput{Title: "Post"})

	comment, err := env.comments.Create(actorOf(alice), CommentInput{BlogID: blog.ID, Content: "mine"})
	if err != nil {
		t.Fatalf("create comment failed: %v", err)
	}
	if _, err := env.comments.Update(actorOf(bob), comment.ID, CommentUpdateInput{Content: "hijack"}); !errors.Is(err, ErrForbidden) {
		t.Fatalf("update by other want ErrForbidden got %v", err)
	}
	updated, err := env.comments.Update(actorOf(alice), comment.ID, CommentUpdateInput{Content: "edited"})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if updated.Content != "edited" {
		t.Fatalf("content want edited got %s", updated.Content)
	}
	if err := env.comments.Delete(actorOf(bob), comment.ID); !errors.Is(err, ErrForbidden) {
		t.Fatalf("delete by other want ErrForbidden got %v", err)
	}
	if err := env.comments.Delete(actorOf(admin), comment.ID); err != nil {
		t.Fatalf("delete by admin failed: %v", err)
	}
	if _, err := env.comments.Get(comment.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("deleted comment want ErrNotFound got %v", err)
	}
}

func TestCommentListByBlogOldestFirst(t *testing.T) {
	env := setupServiceTest(t)
	author := env.createUser(t, "author", constants.RoleMarketer)
	blog, _ := env.blogs.Create(author.ID, BlogInput{Title: "Post"})
	base := time.Date(2025, 5, 1, 8, 0, 0, 0, time.Local)
	for i, content := range []string{"one", "two", "three"} {
		c := &models.Comment{BlogID: blog.ID, UserID: author.ID, Content: content, CreatedAt: base.Add(time.Duration(i) * time.Minute)}
		if err := env.db.Create(c).Error; err != nil {
			t.Fatalf("create comment failed: %v", err)
		}
	}

	views, total, err := env.comments.ListByBlog(blog.ID, 1, 2)
	if err != nil {
		t.Fatalf("list by blog failed: %v", err)
	}
	if total != 3 || len(views) != 2 || views[0].Content != "one" {
		t.Fatalf("unexpected page: total=%d len=%d first=%v", total, len(views), views)
	}
	all, _, err := env.comments.List(1, 10)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if all[0].Content != "three" {
		t.Fatalf("global list should be newest first, got %s", all[0].Content)
	}
}

func TestBuildCommentTree(t *testing.T) {
	comments := []models.Comment{
		{ID: 1, Content: "root"},
		{ID: 2, Content: "child", ParentID: uintPtr(1)},
		{ID: 3, Content: "grandchild", ParentID: uintPtr(2)},
		{ID: 4, Content: "orphan", ParentID: uintPtr(99)},
		{ID: 5, Content: "second child", ParentID: uintPtr(1)},
		{ID: 6, Content: "loop a", ParentID: uintPtr(7)},
		{ID: 7, Content: "loop b", ParentID: uintPtr(6)},
	}
	roots := BuildCommentTree(comments)
	if len(roots) != 4 {
		t.Fatalf("roots want 4 got %d", len(roots))
	}
	if roots[0].ID != 1 || len(roots[0].Children) != 2 {
		t.Fatalf("unexpected root: id=%d children=%d", roots[0].ID, len(roots[0].Children))
	}
	if roots[0].Children[0].ID != 2 || roots[0].Children[1].ID != 5 {
		t.Fatalf("children should keep input order")
	}
	if len(roots[0].Children[0].Children) != 1 || roots[0].Children[0].Children[0].ID != 3 {
		t.Fatalf("grandchild missing")
	}
	if roots[1].ID != 4 || roots[2].ID != 6 || roots[3].ID != 7 {
		t.Fatalf("orphan and cycle members should be promoted, got %d %d %d", roots[1].ID, roots[2].ID, roots[3].ID)
	}
}

func TestCommentTreeForBlog(t *testing.T) {
	env := setupServiceTest(t)
	author := env.createUser(t, "author", constants.RoleMarketer)
	blog, _ := env.blogs.Create(author.ID, BlogInput{Title: "Post"})
	root, _ := env.comments.Create(actorOf(author), CommentInput{BlogID: blog.ID, Content: "root"})
	if _, err := env.comments.Create(actorOf(author), CommentInput{BlogID: blog.ID, Content: "reply", ParentID: uintPtr(root.ID)}); err != nil {
		t.Fatalf("create reply failed: %v", err)
	}

	tree, err := env.comments.Tree(blog.ID)
	if err != nil {
		t.Fatalf("tree failed: %v", err)
	}
	if len(tree) != 1 || len(tree[0].Children) != 1 {
		t.Fatalf("unexpected tree: %+v", tree)
	}
	if _, err := env.comments.Tree(9999); !errors.Is(err, ErrBlogNotFound) {
		t.Fatalf("missing blog want ErrBlogNotFound got %v", err)
	}
}
