package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/voltify/evdealer-api/internal/domain/entity"
	"github.com/voltify/evdealer-api/pkg/pagination"
)

// ProductFilterParams contains filtering parameters for product listings
type ProductFilterParams struct {
	Pagination *pagination.PaginationParams
	Search     string // matches model or battery name
	ModelID    *uuid.UUID
	BatteryID  *uuid.UUID
	InStock    bool // only products with available_quantity > 0
	SortBy     string
	SortOrder  string
}

// ProductRepository defines the interface for product data operations
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	CreateBatch(ctx context.Context, products []entity.Product) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Product, error)
	// GetByIDs retrieves multiple products in a single query (prevents N+1)
	GetByIDs(ctx context.Context, ids []uuid.UUID) ([]entity.Product, error)
	// GetByModelAndBattery resolves the composite identity used before a
	// product is persisted
	GetByModelAndBattery(ctx context.Context, modelID, batteryID uuid.UUID) (*entity.Product, error)
	Update(ctx context.Context, product *entity.Product) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, params *ProductFilterParams) ([]entity.Product, int64, error)
	UpdateQuantity(ctx context.Context, id uuid.UUID, quantity int) error
	// AtomicDecrementBatch atomically decrements stock for multiple products.
	// Returns the IDs that failed for insufficient stock; on any failure the
	// whole transaction rolls back.
	AtomicDecrementBatch(ctx context.Context, decrements map[uuid.UUID]int) (failedIDs []uuid.UUID, err error)
	// AtomicIncrementBatch restores stock for multiple products (rollback path)
	AtomicIncrementBatch(ctx context.Context, increments map[uuid.UUID]int) error
}

// ModelRepository defines the interface for vehicle model data operations
type ModelRepository interface {
	Create(ctx context.Context, model *entity.Model) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Model, error)
	GetByName(ctx context.Context, name string) (*entity.Model, error)
	Update(ctx context.Context, model *entity.Model) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context) ([]entity.Model, error)
}

// BatteryRepository defines the interface for battery data operations
type BatteryRepository interface {
	Create(ctx context.Context, battery *entity.Battery) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Battery, error)
	GetByName(ctx context.Context, name string) (*entity.Battery, error)
	Update(ctx context.Context, battery *entity.Battery) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context) ([]entity.Battery, error)
}
