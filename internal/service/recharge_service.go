package service

import (
	"fmt"
	"strings"
	"time"

	"github.com/blog-console/internal/constants"
	"github.com/blog-console/internal/idgen"
	"github.com/blog-console/internal/models"
	"github.com/blog-console/internal/repository"
)

// RechargeService 充值流水
type RechargeService struct {
	repo          repository.RechargeRepository
	ids           *idgen.Generator
	notifications *NotificationService
}

// NewRechargeService 创建充值服务
func NewRechargeService(repo repository.RechargeRepository, ids *idgen.Generator, notifications *NotificationService) *RechargeService {
	return &RechargeService{repo: repo, ids: ids, notifications: notifications}
}

// RechargeInput 新增充值记录，UserID 仅财务及以上可指定
type RechargeInput struct {
	UserID          uint
	OrderNumber     string `validate:"max=64"`
	Amount          models.Money
	PaymentMethod   string `validate:"required,oneof=alipay wechat bank cash internal"`
	Status          string
	TransactionTime string
	Remark          string `validate:"max=255"`
}

// RechargeUpdateInput 修改充值记录，nil 字段保持不变
type RechargeUpdateInput struct {
	Amount          *models.Money
	PaymentMethod   *string `validate:"omitempty,oneof=alipay wechat bank cash internal"`
	Status          *string
	TransactionTime *string
	Remark          *string `validate:"omitempty,max=255"`
}

// RechargeListQuery 充值列表
type RechargeListQuery struct {
	Page   int
	Limit  int
	Status string
	UserID uint
}

func validRechargeStatus(status string) bool {
	switch status {
	case constants.RechargeStatusPending, constants.RechargeStatusSuccess, constants.RechargeStatusFailed:
		return true
	default:
		return false
	}
}

// canTransit 只有待处理的记录可以变更状态
func canTransit(from, to string) bool {
	return from == to || from == constants.RechargeStatusPending
}

func parseTransactionTime(value string) (time.Time, error) {
	t, err := ParseFlexibleTime(value)
	if err != nil {
		return time.Time{}, ErrDateInvalid
	}
	return t, nil
}

// Create 新增充值记录，未填写订单号时自动生成
func (s *RechargeService) Create(actor Actor, input RechargeInput) (*models.RechargeTransaction, error) {
	input.PaymentMethod = strings.TrimSpace(input.PaymentMethod)
	input.OrderNumber = strings.TrimSpace(input.OrderNumber)
	if err := ValidateDTO(input); err != nil {
		return nil, err
	}
	if !input.Amount.IsPositive() {
		return nil, ErrRechargeAmountInvalid
	}

	privileged := actor.AtLeast(constants.RoleFinance)
	owner := actor.UserID
	if privileged && input.UserID != 0 {
		owner = input.UserID
	}
	status := constants.RechargeStatusPending
	if privileged && input.Status != "" {
		status = input.Status
	}
	if !validRechargeStatus(status) {
		return nil, ErrRechargeStatusInvalid
	}

	orderNumber := input.OrderNumber
	if orderNumber == "" {
		generated, err := s.ids.OrderNumber(owner)
		if err != nil {
			return nil, err
		}
		orderNumber = generated
	} else if err := s.ensureOrderNumberFree(orderNumber, 0); err != nil {
		return nil, err
	}

	transactionTime, err := parseTransactionTime(input.TransactionTime)
	if err != nil {
		return nil, err
	}
	tx := models.RechargeTransaction{
		UserID:          owner,
		OrderNumber:     orderNumber,
		Amount:          models.NewMoneyFromDecimal(input.Amount.Decimal),
		PaymentMethod:   input.PaymentMethod,
		Status:          status,
		TransactionTime: transactionTime,
		Remark:          strings.TrimSpace(input.Remark),
	}
	if err := s.repo.Create(&tx); err != nil {
		return nil, err
	}
	if status == constants.RechargeStatusSuccess {
		s.notifyStatus(&tx)
	}
	return &tx, nil
}

func (s *RechargeService) ensureOrderNumberFree(orderNumber string, excludeID uint) error {
	count, err := s.repo.CountByOrderNumber(orderNumber, excludeID)
	if err != nil {
		return err
	}
	if count > 0 {
		return ErrOrderNumberExists
	}
	return nil
}

// Get 本人或财务及以上可查看
func (s *RechargeService) Get(actor Actor, id uint) (*models.RechargeTransaction, error) {
	tx, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if tx == nil {
		return nil, ErrNotFound
	}
	if tx.UserID != actor.UserID && !actor.AtLeast(constants.RoleFinance) {
		return nil, ErrForbidden
	}
	return tx, nil
}

// Update 修改充值记录，状态只能由财务及以上变更
func (s *RechargeService) Update(actor Actor, id uint, input RechargeUpdateInput) (*models.RechargeTransaction, error) {
	if err := ValidateDTO(input); err != nil {
		return nil, err
	}
	tx, err := s.Get(actor, id)
	if err != nil {
		return nil, err
	}
	previous := tx.Status

	if input.Amount != nil {
		if !input.Amount.IsPositive() {
			return nil, ErrRechargeAmountInvalid
		}
		tx.Amount = models.NewMoneyFromDecimal(input.Amount.Decimal)
	}
	if input.PaymentMethod != nil {
		tx.PaymentMethod = *input.PaymentMethod
	}
	if input.Remark != nil {
		tx.Remark = strings.TrimSpace(*input.Remark)
	}
	if input.TransactionTime != nil {
		parsed, err := parseTransactionTime(*input.TransactionTime)
		if err != nil {
			return nil, err
		}
		tx.TransactionTime = parsed
	}
	if input.Status != nil && *input.Status != previous {
		if !actor.AtLeast(constants.RoleFinance) {
			return nil, ErrForbidden
		}
		if !validRechargeStatus(*input.Status) || !canTransit(previous, *input.Status) {
			return nil, ErrRechargeStatusInvalid
		}
		tx.Status = *input.Status
	}

	if err := s.repo.Update(tx); err != nil {
		return nil, err
	}
	if previous != tx.Status {
		s.notifyStatus(tx)
	}
	return tx, nil
}

// Delete 本人或财务及以上可删除
func (s *RechargeService) Delete(actor Actor, id uint) error {
	if _, err := s.Get(actor, id); err != nil {
		return err
	}
	return s.repo.Delete(id)
}

// List 普通用户只看自己的记录，财务及以上可查看全部并按用户筛选
func (s *RechargeService) List(actor Actor, query RechargeListQuery) ([]models.RechargeTransaction, int64, error) {
	status := strings.TrimSpace(query.Status)
	if status != "" && !validRechargeStatus(status) {
		return nil, 0, ErrRechargeStatusInvalid
	}
	userID := actor.UserID
	if actor.AtLeast(constants.RoleFinance) {
		userID = query.UserID
	}
	return s.repo.List(repository.RechargeListFilter{
		Page:   query.Page,
		Limit:  query.Limit,
		UserID: userID,
		Status: status,
	})
}

func (s *RechargeService) notifyStatus(tx *models.RechargeTransaction) {
	if s.notifications == nil {
		return
	}
	var content string
	switch tx.Status {
	case constants.RechargeStatusSuccess:
		content = fmt.Sprintf("充值订单 %s 已到账，金额 %s", tx.OrderNumber, tx.Amount.String())
	case constants.RechargeStatusFailed:
		content = fmt.Sprintf("充值订单 %s 处理失败", tx.OrderNumber)
	default:
		return
	}
	s.notifications.Deliver(tx.UserID, constants.NotificationTypeRecharge, content)
}
