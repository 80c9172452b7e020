package public

import (
	"strconv"
	"strings"
	"time"

	handlershared "github.com/blog-console/internal/http/handlers/shared"
	"github.com/blog-console/internal/http/response"
	"github.com/blog-console/internal/models"
	"github.com/blog-console/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/jinzhu/copier"
)

// RevenueRequest 收益记录请求，金额可传数字或字符串
type RevenueRequest struct {
	AdPlatform        string       `json:"ad_platform"`
	ProductCategories string       `json:"product_categories"`
	AdType            string       `json:"ad_type"`
	Region            string       `json:"region"`
	Expenditure       models.Money `json:"expenditure"`
	OrderCount        int          `json:"order_count"`
	AdCreationCount   int          `json:"ad_creation_count"`
	Revenue           models.Money `json:"revenue"`
	RecordTime        string       `json:"record_time"`
	Remark            string       `json:"remark"`
}

var revenueErrorOverrides = []handlershared.ErrorRule{
	handlershared.NotFoundAs("error.revenue_not_found"),
}

func (h *Handler) bindRevenueInput(c *gin.Context) (service.RevenueInput, bool) {
	var req RevenueRequest
	if !bindJSON(c, &req) {
		return service.RevenueInput{}, false
	}
	var input service.RevenueInput
	if err := copier.Copy(&input, &req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return service.RevenueInput{}, false
	}
	return input, true
}

// revenueQuery 读取 page/limit/startDate/endDate/userId
func revenueQuery(c *gin.Context) (service.RevenueQuery, bool) {
	page, limit := handlershared.PageQuery(c)
	userID, ok := handlershared.ParseOptionalUintQuery(c, "userId")
	if !ok {
		return service.RevenueQuery{}, false
	}
	return service.RevenueQuery{
		Page:      page,
		Limit:     limit,
		StartDate: strings.TrimSpace(c.Query("startDate")),
		EndDate:   strings.TrimSpace(c.Query("endDate")),
		UserID:    userID,
	}, true
}

// CreateRevenue 录入收益记录，归属当前用户
func (h *Handler) CreateRevenue(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}
	input, ok := h.bindRevenueInput(c)
	if !ok {
		return
	}
	record, err := h.RevenueService.Create(c.Request.Context(), userID, input)
	if err != nil {
		respondServiceError(c, err, "error.save_failed")
		return
	}
	response.Success(c, record)
}

// UpdateRevenue 修改自己的收益记录
func (h *Handler) UpdateRevenue(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	input, ok := h.bindRevenueInput(c)
	if !ok {
		return
	}
	record, err := h.RevenueService.Update(c.Request.Context(), userID, id, input)
	if err != nil {
		respondServiceError(c, err, "error.save_failed", revenueErrorOverrides...)
		return
	}
	response.Success(c, record)
}

// DeleteRevenue 删除自己的收益记录
func (h *Handler) DeleteRevenue(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := h.RevenueService.Delete(c.Request.Context(), userID, id); err != nil {
		respondServiceError(c, err, "error.delete_failed", revenueErrorOverrides...)
		return
	}
	response.Success(c, nil)
}

// GetRevenue 收益记录详情，他人记录按不存在处理
func (h *Handler) GetRevenue(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	record, err := h.RevenueService.Get(userID, id)
	if err != nil {
		respondServiceError(c, err, "error.query_failed", revenueErrorOverrides...)
		return
	}
	response.Success(c, record)
}

// ListRevenue 全员收益记录
func (h *Handler) ListRevenue(c *gin.Context) {
	query, ok := revenueQuery(c)
	if !ok {
		return
	}
	views, total, err := h.RevenueService.List(query)
	if err != nil {
		respondServiceError(c, err, "error.query_failed")
		return
	}
	successWithPage(c, views, query.Page, query.Limit, total)
}

// ListMyRevenue 当前用户的收益记录
func (h *Handler) ListMyRevenue(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}
	query, ok := revenueQuery(c)
	if !ok {
		return
	}
	views, total, err := h.RevenueService.ListMine(userID, query)
	if err != nil {
		respondServiceError(c, err, "error.query_failed")
		return
	}
	successWithPage(c, views, query.Page, query.Limit, total)
}

// AggregateRevenue 按员工聚合
func (h *Handler) AggregateRevenue(c *gin.Context) {
	query, ok := revenueQuery(c)
	if !ok {
		return
	}
	rows, err := h.RevenueService.Aggregate(c.Request.Context(), query)
	if err != nil {
		respondServiceError(c, err, "error.query_failed")
		return
	}
	response.Success(c, rows)
}

// RevenueSummary 全员合计
func (h *Handler) RevenueSummary(c *gin.Context) {
	query, ok := revenueQuery(c)
	if !ok {
		return
	}
	summary, err := h.RevenueService.Summary(c.Request.Context(), query)
	if err != nil {
		respondServiceError(c, err, "error.query_failed")
		return
	}
	response.Success(c, summary)
}

// MonthlyRevenue 按月汇总，year 缺省为今年
func (h *Handler) MonthlyRevenue(c *gin.Context) {
	year := time.Now().Year()
	if raw := strings.TrimSpace(c.Query("year")); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1970 || parsed > 9999 {
			respondError(c, response.CodeBadRequest, "error.date_invalid", nil)
			return
		}
		year = parsed
	}
	userID, ok := handlershared.ParseOptionalUintQuery(c, "userId")
	if !ok {
		return
	}
	rows, err := h.RevenueService.Monthly(year, userID)
	if err != nil {
		respondServiceError(c, err, "error.query_failed")
		return
	}
	response.Success(c, gin.H{"year": year, "months": rows})
}
