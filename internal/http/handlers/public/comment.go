package public

import (
	handlershared "github.com/blog-console/internal/http/handlers/shared"
	"github.com/blog-console/internal/http/response"
	"github.com/blog-console/internal/service"

	"github.com/gin-gonic/gin"
)

// CommentRequest 发表评论请求
type CommentRequest struct {
	BlogID   uint   `json:"blog_id" binding:"required"`
	Content  string `json:"content" binding:"required"`
	ParentID *uint  `json:"parent_id"`
}

// CommentUpdateRequest 修改评论请求
type CommentUpdateRequest struct {
	Content  string `json:"content" binding:"required"`
	ParentID *uint  `json:"parent_id"`
}

var commentErrorOverrides = []handlershared.ErrorRule{
	handlershared.NotFoundAs("error.comment_not_found"),
	handlershared.ForbiddenAs("error.comment_forbidden"),
}

// CreateComment 发表评论或回复
func (h *Handler) CreateComment(c *gin.Context) {
	actor, ok := getActor(c)
	if !ok {
		return
	}
	var req CommentRequest
	if !bindJSON(c, &req) {
		return
	}
	view, err := h.CommentService.Create(actor, service.CommentInput{
		BlogID:   req.BlogID,
		Content:  req.Content,
		ParentID: req.ParentID,
	})
	if err != nil {
		respondServiceError(c, err, "error.save_failed", commentErrorOverrides...)
		return
	}
	response.Success(c, view)
}

// UpdateComment 修改自己的评论
func (h *Handler) UpdateComment(c *gin.Context) {
	actor, ok := getActor(c)
	if !ok {
		return
	}
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req CommentUpdateRequest
	if !bindJSON(c, &req) {
		return
	}
	view, err := h.CommentService.Update(actor, id, service.CommentUpdateInput{
		Content:  req.Content,
		ParentID: req.ParentID,
	})
	if err != nil {
		respondServiceError(c, err, "error.save_failed", commentErrorOverrides...)
		return
	}
	response.Success(c, view)
}

// DeleteComment 删除评论，本人或管理员
func (h *Handler) DeleteComment(c *gin.Context) {
	actor, ok := getActor(c)
	if !ok {
		return
	}
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := h.CommentService.Delete(actor, id); err != nil {
		respondServiceError(c, err, "error.delete_failed", commentErrorOverrides...)
		return
	}
	response.Success(c, nil)
}

// GetComment 评论详情
func (h *Handler) GetComment(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	view, err := h.CommentService.Get(id)
	if err != nil {
		respondServiceError(c, err, "error.query_failed", commentErrorOverrides...)
		return
	}
	response.Success(c, view)
}

// ListComments 全部评论，新的在前
func (h *Handler) ListComments(c *gin.Context) {
	page, limit := handlershared.PageQuery(c)
	views, total, err := h.CommentService.List(page, limit)
	if err != nil {
		respondServiceError(c, err, "error.query_failed")
		return
	}
	successWithPage(c, views, page, limit, total)
}

// ListBlogComments 博客下的评论，按时间正序
func (h *Handler) ListBlogComments(c *gin.Context) {
	blogID, ok := parseID(c, "blog_id")
	if !ok {
		return
	}
	page, limit := handlershared.PageQuery(c)
	views, total, err := h.CommentService.ListByBlog(blogID, page, limit)
	if err != nil {
		respondServiceError(c, err, "error.query_failed")
		return
	}
	successWithPage(c, views, page, limit, total)
}

// GetCommentTree 博客评论树
func (h *Handler) GetCommentTree(c *gin.Context) {
	blogID, ok := parseID(c, "blog_id")
	if !ok {
		return
	}
	tree, err := h.CommentService.Tree(blogID)
	if err != nil {
		respondServiceError(c, err, "error.query_failed")
		return
	}
	response.Success(c, tree)
}
