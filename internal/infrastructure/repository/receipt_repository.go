package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/voltify/evdealer-api/internal/domain/entity"
	domainRepo "github.com/voltify/evdealer-api/internal/domain/repository"
	"github.com/voltify/evdealer-api/pkg/pagination"
	"gorm.io/gorm"
)

type receiptRepository struct {
	db *gorm.DB
}

// NewReceiptRepository creates a new receipt repository
func NewReceiptRepository(db *gorm.DB) domainRepo.ReceiptRepository {
	return &receiptRepository{db: db}
}

// Create persists the receipt and its items in one transaction; GORM cascades
// the Items association.
func (r *receiptRepository) Create(ctx context.Context, receipt *entity.Receipt) error {
	return r.db.WithContext(ctx).Create(receipt).Error
}

func (r *receiptRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Receipt, error) {
	var receipt entity.Receipt
	err := r.db.WithContext(ctx).
		Preload("Items").
		First(&receipt, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &receipt, err
}

func (r *receiptRepository) GetByNumber(ctx context.Context, receiptNumber string) (*entity.Receipt, error) {
	var receipt entity.Receipt
	err := r.db.WithContext(ctx).
		Preload("Items").
		First(&receipt, "receipt_number = ?", receiptNumber).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &receipt, err
}

func (r *receiptRepository) Update(ctx context.Context, receipt *entity.Receipt) error {
	return r.db.WithContext(ctx).Session(&gorm.Session{FullSaveAssociations: true}).Save(receipt).Error
}

func (r *receiptRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&entity.ReceiptItem{}, "receipt_id = ?", id).Error; err != nil {
			return err
		}
		return tx.Delete(&entity.Receipt{}, "id = ?", id).Error
	})
}

func (r *receiptRepository) List(ctx context.Context, params *pagination.PaginationParams) ([]entity.Receipt, int64, error) {
	var receipts []entity.Receipt
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.Receipt{})
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Validate()
	err := query.Offset(params.Offset()).Limit(params.PerPage).
		Preload("Items").
		Order("created_at DESC").
		Find(&receipts).Error

	return receipts, total, err
}

// Search applies only the filters that are set; zero-value fields place no
// constraint. An all-blank filter is an unconstrained query.
func (r *receiptRepository) Search(ctx context.Context, params *domainRepo.ReceiptSearchParams) ([]entity.Receipt, error) {
	query := r.db.WithContext(ctx).Model(&entity.Receipt{})

	if params.FromDate != nil {
		query = query.Where("date >= ?", *params.FromDate)
	}
	if params.ToDate != nil {
		query = query.Where("date <= ?", *params.ToDate)
	}
	if params.ReceiptNumber != "" {
		query = query.Where("receipt_number ILIKE ?", "%"+params.ReceiptNumber+"%")
	}
	if params.ChassisNo != "" {
		query = query.Where(
			"id IN (SELECT receipt_id FROM receipt_items WHERE chassis_number ILIKE ?)",
			"%"+params.ChassisNo+"%")
	}
	if params.Phone != "" {
		query = query.Where("phone ILIKE ?", "%"+params.Phone+"%")
	}
	if params.State != "" {
		query = query.Where("state ILIKE ?", "%"+params.State+"%")
	}
	if params.Code != "" {
		query = query.Where("code = ?", params.Code)
	}
	if params.GSTIN != "" {
		query = query.Where("gstin ILIKE ?", "%"+params.GSTIN+"%")
	}

	var receipts []entity.Receipt
	err := query.Preload("Items").Order("date DESC, created_at DESC").Find(&receipts).Error
	return receipts, err
}
