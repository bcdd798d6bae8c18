package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/voltify/evdealer-api/internal/domain/entity"
	domainRepo "github.com/voltify/evdealer-api/internal/domain/repository"
	"gorm.io/gorm"
)

type productRepository struct {
	db *gorm.DB
}

// NewProductRepository creates a new product repository
func NewProductRepository(db *gorm.DB) domainRepo.ProductRepository {
	return &productRepository{db: db}
}

func (r *productRepository) Create(ctx context.Context, product *entity.Product) error {
	return r.db.WithContext(ctx).Create(product).Error
}

func (r *productRepository) CreateBatch(ctx context.Context, products []entity.Product) error {
	if len(products) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&products).Error
}

func (r *productRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Product, error) {
	var product entity.Product
	err := r.db.WithContext(ctx).
		Preload("Model").Preload("Battery").
		First(&product, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &product, err
}

// GetByIDs retrieves multiple products by their IDs in a single query
func (r *productRepository) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]entity.Product, error) {
	if len(ids) == 0 {
		return []entity.Product{}, nil
	}
	var products []entity.Product
	err := r.db.WithContext(ctx).
		Preload("Model").Preload("Battery").
		Where("id IN ?", ids).
		Find(&products).Error
	return products, err
}

func (r *productRepository) GetByModelAndBattery(ctx context.Context, modelID, batteryID uuid.UUID) (*entity.Product, error) {
	var product entity.Product
	err := r.db.WithContext(ctx).
		Preload("Model").Preload("Battery").
		First(&product, "model_id = ? AND battery_id = ?", modelID, batteryID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &product, err
}

func (r *productRepository) Update(ctx context.Context, product *entity.Product) error {
	return r.db.WithContext(ctx).Save(product).Error
}

func (r *productRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&entity.Product{}, "id = ?", id).Error
}

func (r *productRepository) List(ctx context.Context, params *domainRepo.ProductFilterParams) ([]entity.Product, int64, error) {
	var products []entity.Product
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.Product{})

	if params.Search != "" {
		query = query.
			Joins("JOIN models ON models.id = products.model_id").
			Joins("JOIN batteries ON batteries.id = products.battery_id").
			Where("models.name ILIKE ? OR batteries.name ILIKE ?",
				"%"+params.Search+"%", "%"+params.Search+"%")
	}

	if params.ModelID != nil {
		query = query.Where("products.model_id = ?", *params.ModelID)
	}

	if params.BatteryID != nil {
		query = query.Where("products.battery_id = ?", *params.BatteryID)
	}

	if params.InStock {
		query = query.Where("products.available_quantity > 0")
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	// Sorting, restricted to known columns
	sortBy := "created_at"
	sortOrder := "DESC"
	switch params.SortBy {
	case "rate", "range", "available_quantity", "created_at":
		sortBy = params.SortBy
	}
	if params.SortOrder == "ASC" || params.SortOrder == "asc" {
		sortOrder = "ASC"
	}

	params.Pagination.Validate()
	err := query.Offset(params.Pagination.Offset()).Limit(params.Pagination.PerPage).
		Preload("Model").Preload("Battery").
		Order("products." + sortBy + " " + sortOrder).
		Find(&products).Error

	return products, total, err
}

func (r *productRepository) UpdateQuantity(ctx context.Context, id uuid.UUID, quantity int) error {
	return r.db.WithContext(ctx).Model(&entity.Product{}).
		Where("id = ?", id).
		Update("available_quantity", quantity).Error
}

// AtomicDecrementBatch decrements stock only where sufficient quantity
// remains; any shortfall rolls the whole batch back and reports the IDs
// that failed.
func (r *productRepository) AtomicDecrementBatch(ctx context.Context, decrements map[uuid.UUID]int) (failedIDs []uuid.UUID, err error) {
	if len(decrements) == 0 {
		return nil, nil
	}

	err = r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for id, amount := range decrements {
			result := tx.Model(&entity.Product{}).
				Where("id = ? AND available_quantity >= ?", id, amount).
				Update("available_quantity", gorm.Expr("available_quantity - ?", amount))
			if result.Error != nil {
				return result.Error
			}
			if result.RowsAffected == 0 {
				failedIDs = append(failedIDs, id)
			}
		}
		if len(failedIDs) > 0 {
			return fmt.Errorf("insufficient stock for %d product(s)", len(failedIDs))
		}
		return nil
	})

	if len(failedIDs) > 0 {
		return failedIDs, nil
	}
	return nil, err
}

func (r *productRepository) AtomicIncrementBatch(ctx context.Context, increments map[uuid.UUID]int) error {
	if len(increments) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for id, amount := range increments {
			if err := tx.Model(&entity.Product{}).
				Where("id = ?", id).
				Update("available_quantity", gorm.Expr("available_quantity + ?", amount)).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

type modelRepository struct {
	db *gorm.DB
}

// NewModelRepository creates a new vehicle model repository
func NewModelRepository(db *gorm.DB) domainRepo.ModelRepository {
	return &modelRepository{db: db}
}

func (r *modelRepository) Create(ctx context.Context, model *entity.Model) error {
	return r.db.WithContext(ctx).Create(model).Error
}

func (r *modelRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Model, error) {
	var model entity.Model
	err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &model, err
}

func (r *modelRepository) GetByName(ctx context.Context, name string) (*entity.Model, error) {
	var model entity.Model
	err := r.db.WithContext(ctx).First(&model, "name = ?", name).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &model, err
}

func (r *modelRepository) Update(ctx context.Context, model *entity.Model) error {
	return r.db.WithContext(ctx).Save(model).Error
}

func (r *modelRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&entity.Model{}, "id = ?", id).Error
}

func (r *modelRepository) List(ctx context.Context) ([]entity.Model, error) {
	var models []entity.Model
	err := r.db.WithContext(ctx).Order("name ASC").Find(&models).Error
	return models, err
}

type batteryRepository struct {
	db *gorm.DB
}

// NewBatteryRepository creates a new battery repository
func NewBatteryRepository(db *gorm.DB) domainRepo.BatteryRepository {
	return &batteryRepository{db: db}
}

func (r *batteryRepository) Create(ctx context.Context, battery *entity.Battery) error {
	return r.db.WithContext(ctx).Create(battery).Error
}

func (r *batteryRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Battery, error) {
	var battery entity.Battery
	err := r.db.WithContext(ctx).First(&battery, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &battery, err
}

func (r *batteryRepository) GetByName(ctx context.Context, name string) (*entity.Battery, error) {
	var battery entity.Battery
	err := r.db.WithContext(ctx).First(&battery, "name = ?", name).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &battery, err
}

func (r *batteryRepository) Update(ctx context.Context, battery *entity.Battery) error {
	return r.db.WithContext(ctx).Save(battery).Error
}

func (r *batteryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&entity.Battery{}, "id = ?", id).Error
}

func (r *batteryRepository) List(ctx context.Context) ([]entity.Battery, error) {
	var batteries []entity.Battery
	err := r.db.WithContext(ctx).Order("name ASC").Find(&batteries).Error
	return batteries, err
}
