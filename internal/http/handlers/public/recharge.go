package public

import (
	"strings"

	handlershared "github.com/blog-console/internal/http/handlers/shared"
	"github.com/blog-console/internal/http/response"
	"github.com/blog-console/internal/models"
	"github.com/blog-console/internal/service"

	"github.com/gin-gonic/gin"
)

// RechargeRequest 新增充值记录请求
type RechargeRequest struct {
	UserID          uint         `json:"user_id"`
	OrderNumber     string       `json:"order_number"`
	Amount          models.Money `json:"amount"`
	PaymentMethod   string       `json:"payment_method" binding:"required"`
	Status          string       `json:"status"`
	TransactionTime string       `json:"transaction_time"`
	Remark          string       `json:"remark"`
}

// RechargeUpdateRequest 修改充值记录请求
type RechargeUpdateRequest struct {
	Amount          *models.Money `json:"amount"`
	PaymentMethod   *string       `json:"payment_method"`
	Status          *string       `json:"status"`
	TransactionTime *string       `json:"transaction_time"`
	Remark          *string       `json:"remark"`
}

var rechargeErrorOverrides = []handlershared.ErrorRule{
	handlershared.NotFoundAs("error.recharge_not_found"),
}

// CreateRecharge 新增充值记录
func (h *Handler) CreateRecharge(c *gin.Context) {
	actor, ok := getActor(c)
	if !ok {
		return
	}
	var req RechargeRequest
	if !bindJSON(c, &req) {
		return
	}
	tx, err := h.RechargeService.Create(actor, service.RechargeInput{
		UserID:          req.UserID,
		OrderNumber:     req.OrderNumber,
		Amount:          req.Amount,
		PaymentMethod:   req.PaymentMethod,
		Status:          strings.TrimSpace(req.Status),
		TransactionTime: req.TransactionTime,
		Remark:          req.Remark,
	})
	if err != nil {
		respondServiceError(c, err, "error.save_failed")
		return
	}
	response.Success(c, tx)
}

// GetRecharge 充值记录详情
func (h *Handler) GetRecharge(c *gin.Context) {
	actor, ok := getActor(c)
	if !ok {
		return
	}
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	tx, err := h.RechargeService.Get(actor, id)
	if err != nil {
		respondServiceError(c, err, "error.query_failed", rechargeErrorOverrides...)
		return
	}
	response.Success(c, tx)
}

// UpdateRecharge 修改充值记录
func (h *Handler) UpdateRecharge(c *gin.Context) {
	actor, ok := getActor(c)
	if !ok {
		return
	}
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req RechargeUpdateRequest
	if !bindJSON(c, &req) {
		return
	}
	tx, err := h.RechargeService.Update(actor, id, service.RechargeUpdateInput{
		Amount:          req.Amount,
		PaymentMethod:   req.PaymentMethod,
		Status:          req.Status,
		TransactionTime: req.TransactionTime,
		Remark:          req.Remark,
	})
	if err != nil {
		respondServiceError(c, err, "error.save_failed", rechargeErrorOverrides...)
		return
	}
	response.Success(c, tx)
}

// DeleteRecharge 删除充值记录
func (h *Handler) DeleteRecharge(c *gin.Context) {
	actor, ok := getActor(c)
	if !ok {
		return
	}
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := h.RechargeService.Delete(actor, id); err != nil {
		respondServiceError(c, err, "error.delete_failed", rechargeErrorOverrides...)
		return
	}
	response.Success(c, nil)
}

// ListRecharges 充值记录列表，普通用户仅看自己的
func (h *Handler) ListRecharges(c *gin.Context) {
	actor, ok := getActor(c)
	if !ok {
		return
	}
	page, limit := handlershared.PageQuery(c)
	userID, ok := handlershared.ParseOptionalUintQuery(c, "userId")
	if !ok {
		return
	}
	items, total, err := h.RechargeService.List(actor, service.RechargeListQuery{
		Page:   page,
		Limit:  limit,
		Status: c.Query("status"),
		UserID: userID,
	})
	if err != nil {
		respondServiceError(c, err, "error.query_failed")
		return
	}
	successWithPage(c, items, page, limit, total)
}
