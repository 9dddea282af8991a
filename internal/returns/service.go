package returns

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/SatyanshPrakash/lunio-technologies-User-backend/pkg/db/models"
	"github.com/SatyanshPrakash/lunio-technologies-User-backend/pkg/enums"
	pkgerrors "github.com/SatyanshPrakash/lunio-technologies-User-backend/pkg/errors"
	"github.com/SatyanshPrakash/lunio-technologies-User-backend/pkg/pagination"
	"github.com/SatyanshPrakash/lunio-technologies-User-backend/pkg/types"
)

// ReturnDTO is the return order read model.
type ReturnDTO struct {
	ID             int64              `json:"id"`
	ReturnID       string             `json:"returnId"`
	OrderID        int64              `json:"orderId"`
	OrderItemID    int64              `json:"orderItemId"`
	UserID         int64              `json:"userId"`
	ProductID      int64              `json:"productId"`
	Quantity       int                `json:"quantity"`
	Reason         string             `json:"reason"`
	Status         enums.ReturnStatus `json:"status"`
	RefundAmount   *decimal.Decimal   `json:"refundAmount,omitempty"`
	TrackingNumber *string            `json:"trackingNumber,omitempty"`
	Notes          *string            `json:"notes,omitempty"`
	ProcessedDate  *time.Time         `json:"processedDate,omitempty"`
	CreatedAt      time.Time          `json:"createdAt"`
}

// ListResult is one page of return orders plus its pagination envelope.
type ListResult struct {
	Returns    []ReturnDTO      `json:"returns"`
	Pagination types.Pagination `json:"pagination"`
}

// InitiateInput is the payload to open a return against one order line.
// Quantity zero means the full line quantity.
type InitiateInput struct {
	OrderID     int64
	OrderItemID int64
	Quantity    int
	Reason      string
}

// AdvanceInput moves a return to its next state.
type AdvanceInput struct {
	Status         enums.ReturnStatus
	RefundAmount   *decimal.Decimal
	TrackingNumber *string
	Notes          *string
}

// Service exposes return initiation and workflow transitions.
type Service interface {
	Initiate(ctx context.Context, userID int64, input InitiateInput) (*ReturnDTO, error)
	Get(ctx context.Context, userID int64, isAdmin bool, returnID string) (*ReturnDTO, error)
	List(ctx context.Context, userID int64, status string, params pagination.Params) (*ListResult, error)
	Advance(ctx context.Context, returnID string, input AdvanceInput) (*ReturnDTO, error)
	Cancel(ctx context.Context, userID int64, returnID string) (*ReturnDTO, error)
}

type returnRepo interface {
	Create(ctx context.Context, ret *models.ReturnOrder) (*models.ReturnOrder, error)
	FindByReturnID(ctx context.Context, returnID string) (*models.ReturnOrder, error)
	FindOpenByOrderItem(ctx context.Context, orderItemID int64) (*models.ReturnOrder, error)
	List(ctx context.Context, userID int64, status string, params pagination.Params) ([]models.ReturnOrder, int64, error)
	Update(ctx context.Context, ret *models.ReturnOrder) (*models.ReturnOrder, error)
}

type orderFinder interface {
	FindByID(ctx context.Context, id int64) (*models.Order, error)
}

type service struct {
	repo   returnRepo
	orders orderFinder
	now    func() time.Time
}

// NewService builds a returns service backed by the provided repositories.
func NewService(repo returnRepo, orders orderFinder) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("return repository required")
	}
	if orders == nil {
		return nil, fmt.Errorf("order repository required")
	}
	return &service{repo: repo, orders: orders, now: time.Now}, nil
}

// Initiate opens a return for a delivered order. One open return per order
// item at a time.
func (s *service) Initiate(ctx context.Context, userID int64, input InitiateInput) (*ReturnDTO, error) {
	if userID <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user id is required")
	}
	if input.OrderID <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order id is required")
	}
	if input.OrderItemID <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order item id is required")
	}
	if input.Quantity < 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "quantity must not be negative")
	}
	if strings.TrimSpace(input.Reason) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "reason is required")
	}

	order, err := s.orders.FindByID(ctx, input.OrderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading order")
	}
	if order.UserID != userID {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
	}
	if order.Status != enums.OrderStatusDelivered {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "only delivered orders may be returned")
	}

	var item *models.OrderItem
	for i := range order.Items {
		if order.Items[i].ID == input.OrderItemID {
			item = &order.Items[i]
			break
		}
	}
	if item == nil {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order item not found")
	}
	if item.ProductID == nil {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "product is no longer in the catalog")
	}
	quantity := input.Quantity
	if quantity == 0 {
		quantity = item.Quantity
	}
	if quantity > item.Quantity {
		return nil, pkgerrors.New(pkgerrors.CodeValidation,
			fmt.Sprintf("cannot return %d of %d purchased", quantity, item.Quantity))
	}

	open, err := s.repo.FindOpenByOrderItem(ctx, input.OrderItemID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "checking open returns")
	}
	if open != nil {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict,
			fmt.Sprintf("a return %q is already open for this item", open.ReturnID))
	}

	created, err := s.repo.Create(ctx, &models.ReturnOrder{
		ReturnID:    newReturnID(s.now()),
		OrderID:     input.OrderID,
		OrderItemID: input.OrderItemID,
		UserID:      userID,
		ProductID:   *item.ProductID,
		Quantity:    quantity,
		Reason:      strings.TrimSpace(input.Reason),
		Status:      enums.ReturnStatusInitiated,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "creating return")
	}
	return toDTO(created), nil
}

// Get loads a return. Customers only see their own; admins see all.
func (s *service) Get(ctx context.Context, userID int64, isAdmin bool, returnID string) (*ReturnDTO, error) {
	ret, err := s.load(ctx, returnID)
	if err != nil {
		return nil, err
	}
	if !isAdmin && ret.UserID != userID {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "return not found")
	}
	return toDTO(ret), nil
}

func (s *service) List(ctx context.Context, userID int64, status string, params pagination.Params) (*ListResult, error) {
	if status != "" {
		if _, err := enums.ParseReturnStatus(status); err != nil {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "unknown status filter")
		}
	}
	rows, total, err := s.repo.List(ctx, userID, status, params)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "listing returns")
	}

	normalized := params.Normalize()
	result := &ListResult{Returns: make([]ReturnDTO, 0, len(rows))}
	for i := range rows {
		result.Returns = append(result.Returns, *toDTO(&rows[i]))
	}
	result.Pagination.Page = int64(normalized.Page)
	result.Pagination.Limit = int64(normalized.Limit)
	result.Pagination.Total = total
	result.Pagination.Pages = pagination.Pages(total, normalized.Limit)
	return result, nil
}

// Advance moves the return along the workflow. Illegal jumps are rejected as
// state conflicts; refund amounts only land on the Returned step.
func (s *service) Advance(ctx context.Context, returnID string, input AdvanceInput) (*ReturnDTO, error) {
	if !input.Status.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "unknown return status")
	}
	ret, err := s.load(ctx, returnID)
	if err != nil {
		return nil, err
	}
	if !ret.Status.CanTransitionTo(input.Status) {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict,
			fmt.Sprintf("cannot move return from %q to %q", ret.Status, input.Status))
	}
	if input.RefundAmount != nil {
		if input.Status != enums.ReturnStatusReturned {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "refund amount only applies when completing a return")
		}
		if input.RefundAmount.IsNegative() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "refund amount must not be negative")
		}
	}

	ret.Status = input.Status
	if input.RefundAmount != nil {
		ret.RefundAmount = input.RefundAmount
	}
	if input.TrackingNumber != nil {
		ret.TrackingNumber = input.TrackingNumber
	}
	if input.Notes != nil {
		ret.Notes = input.Notes
	}
	if input.Status == enums.ReturnStatusReturned || input.Status == enums.ReturnStatusScrapped {
		now := s.now()
		ret.ProcessedDate = &now
	}
	updated, err := s.repo.Update(ctx, ret)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "saving return")
	}
	return toDTO(updated), nil
}

// Cancel lets the owner abandon a return that has not reached QC.
func (s *service) Cancel(ctx context.Context, userID int64, returnID string) (*ReturnDTO, error) {
	ret, err := s.load(ctx, returnID)
	if err != nil {
		return nil, err
	}
	if ret.UserID != userID {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "return not found")
	}
	if !ret.Status.CanTransitionTo(enums.ReturnStatusCancelled) {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict,
			fmt.Sprintf("return in state %q can no longer be cancelled", ret.Status))
	}

	ret.Status = enums.ReturnStatusCancelled
	updated, err := s.repo.Update(ctx, ret)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "saving return")
	}
	return toDTO(updated), nil
}

func (s *service) load(ctx context.Context, returnID string) (*models.ReturnOrder, error) {
	if strings.TrimSpace(returnID) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "return id is required")
	}
	ret, err := s.repo.FindByReturnID(ctx, returnID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "return not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading return")
	}
	return ret, nil
}

// newReturnID builds a public reference like RET-1718211550-4821.
func newReturnID(now time.Time) string {
	n, err := rand.Int(rand.Reader, big.NewInt(10000))
	suffix := int64(0)
	if err == nil {
		suffix = n.Int64()
	}
	return fmt.Sprintf("RET-%d-%04d", now.Unix(), suffix)
}

func toDTO(ret *models.ReturnOrder) *ReturnDTO {
	return &ReturnDTO{
		ID:             ret.ID,
		ReturnID:       ret.ReturnID,
		OrderID:        ret.OrderID,
		OrderItemID:    ret.OrderItemID,
		UserID:         ret.UserID,
		ProductID:      ret.ProductID,
		Quantity:       ret.Quantity,
		Reason:         ret.Reason,
		Status:         ret.Status,
		RefundAmount:   ret.RefundAmount,
		TrackingNumber: ret.TrackingNumber,
		Notes:          ret.Notes,
		ProcessedDate:  ret.ProcessedDate,
		CreatedAt:      ret.CreatedAt,
	}
}
