package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/voltify/evdealer-api/internal/domain/entity"
	"github.com/voltify/evdealer-api/pkg/pagination"
)

// ReceiptSearchParams is a sparse filter: a zero-value field means "no
// constraint on this field", never "match empty string".
type ReceiptSearchParams struct {
	FromDate      *time.Time
	ToDate        *time.Time
	ReceiptNumber string
	ChassisNo     string
	Phone         string
	State         string
	Code          string
	GSTIN         string
}

// IsEmpty reports whether no constraint is set; an empty search is an
// unconstrained query.
func (p *ReceiptSearchParams) IsEmpty() bool {
	return p.FromDate == nil && p.ToDate == nil &&
		p.ReceiptNumber == "" && p.ChassisNo == "" && p.Phone == "" &&
		p.State == "" && p.Code == "" && p.GSTIN == ""
}

// ReceiptRepository defines the interface for receipt data operations
type ReceiptRepository interface {
	// Create persists the receipt together with its items
	Create(ctx context.Context, receipt *entity.Receipt) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Receipt, error)
	GetByNumber(ctx context.Context, receiptNumber string) (*entity.Receipt, error)
	Update(ctx context.Context, receipt *entity.Receipt) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, params *pagination.PaginationParams) ([]entity.Receipt, int64, error)
	Search(ctx context.Context, params *ReceiptSearchParams) ([]entity.Receipt, error)
}
