package service

import (
	"fmt"
	"strings"

	"github.com/blog-console/internal/constants"
	"github.com/blog-console/internal/models"
	"github.com/blog-console/internal/repository"
)

// CommentService 评论
type CommentService struct {
	commentRepo   repository.CommentRepository
	blogRepo      repository.BlogRepository
	userRepo      repository.UserRepository
	notifications *NotificationService
}

// NewCommentService 创建评论服务
func NewCommentService(commentRepo repository.CommentRepository, blogRepo repository.BlogRepository, userRepo repository.UserRepository, notifications *NotificationService) *CommentService {
	return &CommentService{
		commentRepo:   commentRepo,
		blogRepo:      blogRepo,
		userRepo:      userRepo,
		notifications: notifications,
	}
}

// CommentInput 发表评论
type CommentInput struct {
	BlogID   uint   `validate:"required"`
	Content  string `validate:"required,max=2000"`
	ParentID *uint
}

// CommentUpdateInput 修改评论，只允许改内容与上级
type CommentUpdateInput struct {
	Content  string `validate:"required,max=2000"`
	ParentID *uint
}

// CommentView 评论及评论者信息
type CommentView struct {
	models.Comment
	Nickname string `json:"nickname"`
	Avatar   string `json:"avatar"`
}

func toCommentView(comment models.Comment) CommentView {
	view := CommentView{Comment: comment}
	if comment.User != nil {
		view.Nickname = comment.User.Nickname
		view.Avatar = comment.User.Avatar
	}
	return view
}

func toCommentViews(comments []models.Comment) []CommentView {
	views := make([]CommentView, 0, len(comments))
	for _, comment := range comments {
		views = append(views, toCommentView(comment))
	}
	return views
}

// validateParent 上级评论必须存在于同一博客，且不能形成环
func (s *CommentService) validateParent(blogID uint, selfID uint, parentID *uint) error {
	if parentID == nil || *parentID == 0 {
		return nil
	}
	current := *parentID
	for depth := 0; current != 0; depth++ {
		if current == selfID || depth > 1000 {
			return ErrCommentParentInvalid
		}
		parent, err := s.commentRepo.GetByID(current)
		if err != nil {
			return err
		}
		if parent == nil || parent.BlogID != blogID {
			return ErrCommentParentInvalid
		}
		if selfID == 0 || parent.ParentID == nil {
			return nil
		}
		current = *parent.ParentID
	}
	return nil
}

func normalizeParentID(parentID *uint) *uint {
	if parentID == nil || *parentID == 0 {
		return nil
	}
	return parentID
}

// Create 发表评论并通知博客作者与被回复者
func (s *CommentService) Create(actor Actor, input CommentInput) (*CommentView, error) {
	input.Content = strings.TrimSpace(input.Content)
	if err := ValidateDTO(input); err != nil {
		return nil, err
	}
	blog, err := s.blogRepo.GetByID(input.BlogID)
	if err != nil {
		return nil, err
	}
	if blog == nil {
		return nil, ErrBlogNotFound
	}
	parentID := normalizeParentID(input.ParentID)
	if err := s.validateParent(blog.ID, 0, parentID); err != nil {
		return nil, err
	}

	comment := &models.Comment{
		BlogID:   blog.ID,
		UserID:   actor.UserID,
		Content:  input.Content,
		ParentID: parentID,
	}
	if err := s.commentRepo.Create(comment); err != nil {
		return nil, err
	}
	created, err := s.commentRepo.GetByID(comment.ID)
	if err != nil {
		return nil, err
	}
	if created == nil {
		created = comment
	}
	s.notifyComment(blog, created)
	view := toCommentView(*created)
	return &view, nil
}

func (s *CommentService) notifyComment(blog *models.Blog, comment *models.Comment) {
	if s.notifications == nil {
		return
	}
	nickname := "有人"
	if comment.User != nil && comment.User.Nickname != "" {
		nickname = comment.User.Nickname
	}
	if blog.AuthorID != comment.UserID {
		s.notifications.Deliver(blog.AuthorID, constants.NotificationTypeComment,
			fmt.Sprintf("%s 评论了你的博客《%s》", nickname, blog.Title))
	}
	if comment.ParentID == nil {
		return
	}
	parent, err := s.commentRepo.GetByID(*comment.ParentID)
	if err != nil || parent == nil {
		return
	}
	if parent.UserID != comment.UserID && parent.UserID != blog.AuthorID {
		s.notifications.Deliver(parent.UserID, constants.NotificationTypeReply,
			fmt.Sprintf("%s 回复了你在《%s》下的评论", nickname, blog.Title))
	}
}

// Update 仅评论者可修改
func (s *CommentService) Update(actor Actor, id uint, input CommentUpdateInput) (*CommentView, error) {
	input.Content = strings.TrimSpace(input.Content)
	if err := ValidateDTO(input); err != nil {
		return nil, err
	}
	comment, err := s.commentRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if comment == nil {
		return nil, ErrNotFound
	}
	if comment.UserID != actor.UserID {
		return nil, ErrForbidden
	}
	parentID := normalizeParentID(input.ParentID)
	if err := s.validateParent(comment.BlogID, comment.ID, parentID); err != nil {
		return nil, err
	}
	comment.Content = input.Content
	comment.ParentID = parentID
	if err := s.commentRepo.Update(comment); err != nil {
		return nil, err
	}
	view := toCommentView(*comment)
	return &view, nil
}

// Delete 评论者本人或管理员可删除
func (s *CommentService) Delete(actor Actor, id uint) error {
	comment, err := s.commentRepo.GetByID(id)
	if err != nil {
		return err
	}
	if comment == nil {
		return ErrNotFound
	}
	if comment.UserID != actor.UserID && !actor.AtLeast(constants.RoleAdmin) {
		return ErrForbidden
	}
	return s.commentRepo.Delete(id)
}

// Get 评论详情
func (s *CommentService) Get(id uint) (*CommentView, error) {
	comment, err := s.commentRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if comment == nil {
		return nil, ErrNotFound
	}
	view := toCommentView(*comment)
	return &view, nil
}

// List 全部评论，新的在前
func (s *CommentService) List(page, limit int) ([]CommentView, int64, error) {
	comments, total, err := s.commentRepo.List(repository.CommentListFilter{Page: page, Limit: limit})
	if err != nil {
		return nil, 0, err
	}
	return toCommentViews(comments), total, nil
}

// ListByBlog 博客下的评论，按时间正序
func (s *CommentService) ListByBlog(blogID uint, page, limit int) ([]CommentView, int64, error) {
	comments, total, err := s.commentRepo.List(repository.CommentListFilter{
		Page:        page,
		Limit:       limit,
		BlogID:      blogID,
		OldestFirst: true,
	})
	if err != nil {
		return nil, 0, err
	}
	return toCommentViews(comments), total, nil
}

// Tree 博客评论楼层树
func (s *CommentService) Tree(blogID uint) ([]*CommentNode, error) {
	blog, err := s.blogRepo.GetByID(blogID)
	if err != nil {
		return nil, err
	}
	if blog == nil {
		return nil, ErrBlogNotFound
	}
	comments, err := s.commentRepo.ListAllByBlog(blogID)
	if err != nil {
		return nil, err
	}
	return BuildCommentTree(comments), nil
}
