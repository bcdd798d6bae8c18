package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/voltify/evdealer-api/internal/domain/billing"
	"github.com/voltify/evdealer-api/internal/domain/entity"
	"github.com/voltify/evdealer-api/internal/domain/repository"
	"github.com/voltify/evdealer-api/pkg/apperror"
	"github.com/voltify/evdealer-api/pkg/pagination"
)

// ReceiptService handles invoice generation and receipt record management
type ReceiptService struct {
	receiptRepo repository.ReceiptRepository
	productRepo repository.ProductRepository
	cartService *CartService
}

// NewReceiptService creates a new receipt service
func NewReceiptService(
	receiptRepo repository.ReceiptRepository,
	productRepo repository.ProductRepository,
	cartService *CartService,
) *ReceiptService {
	return &ReceiptService{
		receiptRepo: receiptRepo,
		productRepo: productRepo,
		cartService: cartService,
	}
}

// CustomerInput carries the customer details entered on the billing form
type CustomerInput struct {
	Name    string
	Phone   string
	Address string
	City    string
	State   string
	Code    string
	GSTIN   string
}

// GenerateReceiptInput represents the input for generating a receipt from
// the operator's cart
type GenerateReceiptInput struct {
	UserID          uuid.UUID
	Date            time.Time
	Customer        CustomerInput
	Accessories     bool
	PaymentType     string
	SpecialDiscount float64
	// FinalAmount overrides the rounded total when set (rupees)
	FinalAmount *float64
	UnitDetails []billing.UnitDetail
}

// GenerateReceipt consumes the operator's cart: computes the GST breakdown,
// expands cart lines into per-unit items, decrements stock atomically and
// persists the receipt. The cart is cleared only when everything succeeds;
// any failure restores it untouched.
func (s *ReceiptService) GenerateReceipt(ctx context.Context, input *GenerateReceiptInput) (*entity.Receipt, error) {
	cart, ok := s.cartService.takeCart(input.UserID)
	if !ok {
		return nil, apperror.NewBadRequestError("Cart is empty")
	}

	receipt, err := s.buildAndPersist(ctx, input, cart)
	if err != nil {
		s.cartService.restoreCart(input.UserID, cart)
		return nil, err
	}
	return receipt, nil
}

func (s *ReceiptService) buildAndPersist(ctx context.Context, input *GenerateReceiptInput, cart *billing.Cart) (*entity.Receipt, error) {
	breakdown, err := billing.Calculate(cart.Items, cart.Total, input.Accessories, input.SpecialDiscount)
	if err != nil {
		if errors.Is(err, billing.ErrDiscountOutOfRange) {
			return nil, apperror.NewBadRequestError(err.Error())
		}
		return nil, err
	}

	items, err := billing.ExpandUnits(cart.Items, input.UnitDetails)
	if err != nil {
		if errors.Is(err, billing.ErrUnitDetailMismatch) {
			return nil, apperror.NewBadRequestError(err.Error())
		}
		return nil, err
	}

	finalAmount := breakdown.RoundedTotal()
	if input.FinalAmount != nil {
		finalAmount = int64(*input.FinalAmount * 100)
	}

	date := input.Date
	if date.IsZero() {
		date = time.Now()
	}

	decrements := make(map[uuid.UUID]int, len(cart.Items))
	for _, item := range cart.Items {
		decrements[item.Product.ID] += item.Quantity
	}

	failedIDs, err := s.productRepo.AtomicDecrementBatch(ctx, decrements)
	if err != nil {
		return nil, err
	}
	if len(failedIDs) > 0 {
		return nil, apperror.NewConflictError("Insufficient stock for one or more products")
	}

	receipt := &entity.Receipt{
		UserID:           input.UserID,
		ReceiptNumber:    billing.NewReceiptNumber(),
		Date:             date,
		CustomerName:     input.Customer.Name,
		Phone:            input.Customer.Phone,
		Address:          input.Customer.Address,
		City:             input.Customer.City,
		State:            input.Customer.State,
		Code:             input.Customer.Code,
		GSTIN:            input.Customer.GSTIN,
		Accessories:      input.Accessories,
		PaymentType:      input.PaymentType,
		SpecialDiscount:  input.SpecialDiscount,
		Subtotal:         breakdown.Subtotal,
		AccessoryCharges: breakdown.AccessoryCharges,
		Discount:         breakdown.Discount,
		TaxableAmount:    breakdown.TaxableAmount,
		CGST:             breakdown.CGST,
		SGST:             breakdown.SGST,
		TotalAmount:      breakdown.TotalAmount,
		FinalAmount:      finalAmount,
		Items:            items,
	}

	if err := s.receiptRepo.Create(ctx, receipt); err != nil {
		// Undo the stock decrement; the receipt was never persisted
		if restoreErr := s.productRepo.AtomicIncrementBatch(ctx, decrements); restoreErr != nil {
			return nil, restoreErr
		}
		return nil, err
	}

	return receipt, nil
}

// GetReceipt retrieves a receipt by ID with its items
func (s *ReceiptService) GetReceipt(ctx context.Context, id uuid.UUID) (*entity.Receipt, error) {
	receipt, err := s.receiptRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if receipt == nil {
		return nil, apperror.NewNotFoundError("Receipt")
	}
	return receipt, nil
}

// ListReceipts returns a paginated receipt listing, newest first
func (s *ReceiptService) ListReceipts(ctx context.Context, params *pagination.PaginationParams) ([]entity.Receipt, int64, error) {
	return s.receiptRepo.List(ctx, params)
}

// UpdateReceiptInput represents the editable fields of a persisted receipt.
// The monetary breakdown is never recomputed on update; only customer and
// payment details and the operator-editable final amount may change.
type UpdateReceiptInput struct {
	Date        *time.Time
	Customer    *CustomerInput
	PaymentType *string
	FinalAmount *float64
}

// UpdateReceipt updates the editable fields of a receipt
func (s *ReceiptService) UpdateReceipt(ctx context.Context, id uuid.UUID, input *UpdateReceiptInput) (*entity.Receipt, error) {
	receipt, err := s.receiptRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if receipt == nil {
		return nil, apperror.NewNotFoundError("Receipt")
	}

	if input.Date != nil {
		receipt.Date = *input.Date
	}
	if input.Customer != nil {
		receipt.CustomerName = input.Customer.Name
		receipt.Phone = input.Customer.Phone
		receipt.Address = input.Customer.Address
		receipt.City = input.Customer.City
		receipt.State = input.Customer.State
		receipt.Code = input.Customer.Code
		receipt.GSTIN = input.Customer.GSTIN
	}
	if input.PaymentType != nil {
		receipt.PaymentType = *input.PaymentType
	}
	if input.FinalAmount != nil {
		receipt.FinalAmount = int64(*input.FinalAmount * 100)
	}

	if err := s.receiptRepo.Update(ctx, receipt); err != nil {
		return nil, err
	}
	return s.receiptRepo.GetByID(ctx, id)
}

// DeleteReceipt removes a receipt and restores the sold units to stock
func (s *ReceiptService) DeleteReceipt(ctx context.Context, id uuid.UUID) error {
	receipt, err := s.receiptRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if receipt == nil {
		return apperror.NewNotFoundError("Receipt")
	}

	if err := s.receiptRepo.Delete(ctx, id); err != nil {
		return err
	}

	increments := make(map[uuid.UUID]int)
	for _, item := range receipt.Items {
		if item.ProductID != uuid.Nil {
			increments[item.ProductID] += item.Quantity
		}
	}
	if len(increments) > 0 {
		return s.productRepo.AtomicIncrementBatch(ctx, increments)
	}
	return nil
}

// SearchReceipts runs a sparse filter search; empty filters return every receipt
func (s *ReceiptService) SearchReceipts(ctx context.Context, params *repository.ReceiptSearchParams) ([]entity.Receipt, error) {
	return s.receiptRepo.Search(ctx, params)
}
