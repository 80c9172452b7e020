package public

import (
	"strconv"
	"strings"

	"github.com/blog-console/internal/constants"
	handlershared "github.com/blog-console/internal/http/handlers/shared"
	"github.com/blog-console/internal/http/response"
	"github.com/blog-console/internal/service"

	"github.com/gin-gonic/gin"
)

// BlogRequest 创建/更新博客请求
type BlogRequest struct {
	Title    string `json:"title" binding:"required"`
	Content  string `json:"content"`
	Category string `json:"category"`
	Tags     string `json:"tags"`
	Status   string `json:"status"`
}

func (r BlogRequest) toInput() service.BlogInput {
	return service.BlogInput{
		Title:    r.Title,
		Content:  r.Content,
		Category: r.Category,
		Tags:     r.Tags,
		Status:   r.Status,
	}
}

var blogErrorOverrides = []handlershared.ErrorRule{
	handlershared.NotFoundAs("error.blog_not_found"),
	handlershared.ForbiddenAs("error.blog_forbidden"),
}

// CreateBlog 发布博客
func (h *Handler) CreateBlog(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}
	var req BlogRequest
	if !bindJSON(c, &req) {
		return
	}
	blog, err := h.BlogService.Create(userID, req.toInput())
	if err != nil {
		respondServiceError(c, err, "error.save_failed", blogErrorOverrides...)
		return
	}
	response.Success(c, blog)
}

// UpdateBlog 修改博客
func (h *Handler) UpdateBlog(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req BlogRequest
	if !bindJSON(c, &req) {
		return
	}
	blog, err := h.BlogService.Update(userID, id, req.toInput())
	if err != nil {
		respondServiceError(c, err, "error.save_failed", blogErrorOverrides...)
		return
	}
	response.Success(c, blog)
}

// DeleteBlog 删除博客
func (h *Handler) DeleteBlog(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := h.BlogService.Delete(userID, id); err != nil {
		respondServiceError(c, err, "error.delete_failed", blogErrorOverrides...)
		return
	}
	response.Success(c, nil)
}

// GetBlog 博客详情
func (h *Handler) GetBlog(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	detail, err := h.BlogService.Get(id)
	if err != nil {
		respondServiceError(c, err, "error.query_failed", blogErrorOverrides...)
		return
	}
	response.Success(c, detail)
}

// ListBlogFeed 博客广场，每页 6 条，可按天筛选
func (h *Handler) ListBlogFeed(c *gin.Context) {
	page, _ := strconv.Atoi(strings.TrimSpace(c.Query("page")))
	page, _ = handlershared.NormalizePagination(page, constants.BlogFeedPageSize)
	blogs, total, err := h.BlogService.Feed(page, c.Query("date"))
	if err != nil {
		respondServiceError(c, err, "error.query_failed")
		return
	}
	successWithPage(c, blogs, page, constants.BlogFeedPageSize, total)
}

// ListMyBlogs 当前用户的博客
func (h *Handler) ListMyBlogs(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}
	page, limit := handlershared.PageQuery(c)
	blogs, total, err := h.BlogService.ListByAuthor(userID, page, limit)
	if err != nil {
		respondServiceError(c, err, "error.query_failed")
		return
	}
	successWithPage(c, blogs, page, limit, total)
}

// GetBlogDirectory 当前作者的博客目录
func (h *Handler) GetBlogDirectory(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}
	directory, err := h.BlogService.Directory(userID)
	if err != nil {
		respondServiceError(c, err, "error.query_failed")
		return
	}
	response.Success(c, directory)
}

// GetBlogOverview 我的博客页：列表、分页、目录与资料
func (h *Handler) GetBlogOverview(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}
	page, _ := strconv.Atoi(strings.TrimSpace(c.Query("page")))
	overview, err := h.BlogService.MyOverview(c.Request.Context(), userID, page)
	if err != nil {
		respondServiceError(c, err, "error.query_failed")
		return
	}
	response.Success(c, gin.H{
		"blogs":      overview.Blogs,
		"pagination": response.NewPagination(overview.Page, overview.Limit, overview.Total),
		"directory":  overview.Directory,
		"profile":    overview.Profile,
	})
}
