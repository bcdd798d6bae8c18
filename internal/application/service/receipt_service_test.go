package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/voltify/evdealer-api/internal/domain/billing"
	"github.com/voltify/evdealer-api/internal/domain/entity"
	"github.com/voltify/evdealer-api/internal/domain/repository"
	"github.com/voltify/evdealer-api/pkg/apperror"
	"github.com/voltify/evdealer-api/pkg/pagination"
)

type stubReceiptRepo struct {
	receipts  map[uuid.UUID]*entity.Receipt
	createErr error
}

func newStubReceiptRepo() *stubReceiptRepo {
	return &stubReceiptRepo{receipts: make(map[uuid.UUID]*entity.Receipt)}
}

func (s *stubReceiptRepo) Create(ctx context.Context, receipt *entity.Receipt) error {
	if s.createErr != nil {
		return s.createErr
	}
	if receipt.ID == uuid.Nil {
		receipt.ID = uuid.New()
	}
	s.receipts[receipt.ID] = receipt
	return nil
}

func (s *stubReceiptRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.Receipt, error) {
	return s.receipts[id], nil
}

func (s *stubReceiptRepo) GetByNumber(ctx context.Context, receiptNumber string) (*entity.Receipt, error) {
	for _, r := range s.receipts {
		if r.ReceiptNumber == receiptNumber {
			return r, nil
		}
	}
	return nil, nil
}

func (s *stubReceiptRepo) Update(ctx context.Context, receipt *entity.Receipt) error {
	s.receipts[receipt.ID] = receipt
	return nil
}

func (s *stubReceiptRepo) Delete(ctx context.Context, id uuid.UUID) error {
	delete(s.receipts, id)
	return nil
}

func (s *stubReceiptRepo) List(ctx context.Context, params *pagination.PaginationParams) ([]entity.Receipt, int64, error) {
	var out []entity.Receipt
	for _, r := range s.receipts {
		out = append(out, *r)
	}
	return out, int64(len(out)), nil
}

func (s *stubReceiptRepo) Search(ctx context.Context, params *repository.ReceiptSearchParams) ([]entity.Receipt, error) {
	var out []entity.Receipt
	for _, r := range s.receipts {
		if params.ReceiptNumber != "" && r.ReceiptNumber != params.ReceiptNumber {
			continue
		}
		out = append(out, *r)
	}
	return out, nil
}

func receiptFixture(t *testing.T) (*ReceiptService, *CartService, *stubProductRepo, *stubReceiptRepo, uuid.UUID, *entity.Product) {
	t.Helper()

	product := stubProduct(5000000, 100000, 10)
	productRepo := newStubProductRepo(product)
	receiptRepo := newStubReceiptRepo()
	cartService := NewCartService(productRepo)
	receiptService := NewReceiptService(receiptRepo, productRepo, cartService)
	userID := uuid.New()

	_, err := cartService.AddItem(context.Background(), userID, product.ID, 2)
	require.NoError(t, err)

	return receiptService, cartService, productRepo, receiptRepo, userID, product
}

func unitDetails(n int) []billing.UnitDetail {
	details := make([]billing.UnitDetail, n)
	for i := range details {
		details[i] = billing.UnitDetail{ChassisNumber: "CH-00" + string(rune('1'+i))}
	}
	return details
}

func TestGenerateReceiptHappyPath(t *testing.T) {
	svc, cartSvc, productRepo, _, userID, product := receiptFixture(t)

	receipt, err := svc.GenerateReceipt(context.Background(), &GenerateReceiptInput{
		UserID:      userID,
		Customer:    CustomerInput{Name: "Asha Verma", State: "Maharashtra", Code: "27"},
		PaymentType: "cash",
		UnitDetails: unitDetails(2),
	})
	require.NoError(t, err)

	// Breakdown for two units at 50,000 rupees, no accessories, no discount
	assert.Equal(t, int64(10000000), receipt.Subtotal)
	assert.Equal(t, int64(900000), receipt.CGST)
	assert.Equal(t, receipt.CGST, receipt.SGST)
	assert.Equal(t, int64(11800000), receipt.TotalAmount)
	assert.Equal(t, receipt.TotalAmount, receipt.FinalAmount)

	// One row per physical unit, each with its own chassis number
	require.Len(t, receipt.Items, 2)
	assert.NotEqual(t, receipt.Items[0].ChassisNumber, receipt.Items[1].ChassisNumber)

	// Receipt numbers follow the EV- prefix convention
	assert.True(t, strings.HasPrefix(receipt.ReceiptNumber, "EV-"))

	// Stock decremented and cart consumed
	assert.Equal(t, 8, productRepo.products[product.ID].AvailableQuantity)
	assert.Empty(t, cartSvc.GetCart(userID).Items)
}

func TestGenerateReceiptEmptyCart(t *testing.T) {
	productRepo := newStubProductRepo()
	svc := NewReceiptService(newStubReceiptRepo(), productRepo, NewCartService(productRepo))

	_, err := svc.GenerateReceipt(context.Background(), &GenerateReceiptInput{
		UserID:      uuid.New(),
		Customer:    CustomerInput{Name: "Asha Verma"},
		UnitDetails: nil,
	})
	require.Error(t, err)
	assert.Equal(t, 400, apperror.GetAppError(err).Code)
}

func TestGenerateReceiptRestoresCartOnFailure(t *testing.T) {
	svc, cartSvc, _, _, userID, _ := receiptFixture(t)

	// Mismatched unit detail count fails before anything is persisted
	_, err := svc.GenerateReceipt(context.Background(), &GenerateReceiptInput{
		UserID:      userID,
		Customer:    CustomerInput{Name: "Asha Verma"},
		UnitDetails: unitDetails(1),
	})
	require.Error(t, err)

	cart := cartSvc.GetCart(userID)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, 2, cart.Items[0].Quantity)
}

func TestGenerateReceiptInsufficientStock(t *testing.T) {
	svc, cartSvc, productRepo, _, userID, product := receiptFixture(t)
	productRepo.failIDs = []uuid.UUID{product.ID}

	_, err := svc.GenerateReceipt(context.Background(), &GenerateReceiptInput{
		UserID:      userID,
		Customer:    CustomerInput{Name: "Asha Verma"},
		UnitDetails: unitDetails(2),
	})
	require.Error(t, err)
	assert.Equal(t, 409, apperror.GetAppError(err).Code)

	// Cart survives the failed attempt
	assert.Len(t, cartSvc.GetCart(userID).Items, 1)
}

func TestGenerateReceiptRollsBackStockWhenPersistFails(t *testing.T) {
	svc, _, productRepo, receiptRepo, userID, product := receiptFixture(t)
	receiptRepo.createErr = errors.New("connection reset")

	_, err := svc.GenerateReceipt(context.Background(), &GenerateReceiptInput{
		UserID:      userID,
		Customer:    CustomerInput{Name: "Asha Verma"},
		UnitDetails: unitDetails(2),
	})
	require.Error(t, err)

	// Decrement happened, then the increment restored it
	assert.Equal(t, 10, productRepo.products[product.ID].AvailableQuantity)
}

func TestGenerateReceiptDiscountOutOfRange(t *testing.T) {
	svc, cartSvc, _, _, userID, _ := receiptFixture(t)

	_, err := svc.GenerateReceipt(context.Background(), &GenerateReceiptInput{
		UserID:          userID,
		Customer:        CustomerInput{Name: "Asha Verma"},
		SpecialDiscount: 150,
		UnitDetails:     unitDetails(2),
	})
	require.Error(t, err)
	assert.Equal(t, 400, apperror.GetAppError(err).Code)

	assert.Len(t, cartSvc.GetCart(userID).Items, 1)
}

func TestGenerateReceiptFinalAmountOverride(t *testing.T) {
	svc, _, _, _, userID, _ := receiptFixture(t)

	override := 117500.0 // rupees
	receipt, err := svc.GenerateReceipt(context.Background(), &GenerateReceiptInput{
		UserID:      userID,
		Customer:    CustomerInput{Name: "Asha Verma"},
		FinalAmount: &override,
		UnitDetails: unitDetails(2),
	})
	require.NoError(t, err)

	assert.Equal(t, int64(11750000), receipt.FinalAmount)
	// Computed total is untouched by the override
	assert.Equal(t, int64(11800000), receipt.TotalAmount)
}

func TestDeleteReceiptRestoresStock(t *testing.T) {
	svc, _, productRepo, _, userID, product := receiptFixture(t)

	receipt, err := svc.GenerateReceipt(context.Background(), &GenerateReceiptInput{
		UserID:      userID,
		Customer:    CustomerInput{Name: "Asha Verma"},
		UnitDetails: unitDetails(2),
	})
	require.NoError(t, err)
	require.Equal(t, 8, productRepo.products[product.ID].AvailableQuantity)

	require.NoError(t, svc.DeleteReceipt(context.Background(), receipt.ID))
	assert.Equal(t, 10, productRepo.products[product.ID].AvailableQuantity)
}

func TestUpdateReceiptEditsOnlyAllowedFields(t *testing.T) {
	svc, _, _, _, userID, _ := receiptFixture(t)

	receipt, err := svc.GenerateReceipt(context.Background(), &GenerateReceiptInput{
		UserID:      userID,
		Customer:    CustomerInput{Name: "Asha Verma"},
		PaymentType: "cash",
		UnitDetails: unitDetails(2),
	})
	require.NoError(t, err)

	newPayment := "upi"
	newFinal := 118000.0
	updated, err := svc.UpdateReceipt(context.Background(), receipt.ID, &UpdateReceiptInput{
		PaymentType: &newPayment,
		FinalAmount: &newFinal,
	})
	require.NoError(t, err)

	assert.Equal(t, "upi", updated.PaymentType)
	assert.Equal(t, int64(11800000), updated.FinalAmount)
	// Breakdown untouched
	assert.Equal(t, receipt.CGST, updated.CGST)
	assert.Equal(t, receipt.TotalAmount, updated.TotalAmount)
}
