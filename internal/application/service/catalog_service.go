package service

import (
	"context"
	"fmt"
	"mime/multipart"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/voltify/evdealer-api/internal/domain/entity"
	"github.com/voltify/evdealer-api/internal/domain/repository"
	"github.com/voltify/evdealer-api/pkg/apperror"
	"github.com/xuri/excelize/v2"
)

// CatalogService handles catalog operations for models, batteries and products
type CatalogService struct {
	productRepo repository.ProductRepository
	modelRepo   repository.ModelRepository
	batteryRepo repository.BatteryRepository
}

// NewCatalogService creates a new catalog service
func NewCatalogService(
	productRepo repository.ProductRepository,
	modelRepo repository.ModelRepository,
	batteryRepo repository.BatteryRepository,
) *CatalogService {
	return &CatalogService{
		productRepo: productRepo,
		modelRepo:   modelRepo,
		batteryRepo: batteryRepo,
	}
}

// CreateModelInput represents the input for creating a vehicle model
type CreateModelInput struct {
	Name            string
	AccessoryCharge float64 // rupees
}

// CreateModel adds a new vehicle model to the catalog
func (s *CatalogService) CreateModel(ctx context.Context, input *CreateModelInput) (*entity.Model, error) {
	existing, err := s.modelRepo.GetByName(ctx, input.Name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperror.NewConflictError("Model with this name already exists")
	}

	model := &entity.Model{Name: input.Name}
	model.SetAccessoryChargeFromDecimal(input.AccessoryCharge)

	if err := s.modelRepo.Create(ctx, model); err != nil {
		return nil, err
	}
	return model, nil
}

// GetModel retrieves a vehicle model by ID
func (s *CatalogService) GetModel(ctx context.Context, id uuid.UUID) (*entity.Model, error) {
	model, err := s.modelRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if model == nil {
		return nil, apperror.NewNotFoundError("Model")
	}
	return model, nil
}

// UpdateModelInput represents the input for updating a vehicle model
type UpdateModelInput struct {
	Name            *string
	AccessoryCharge *float64
}

// UpdateModel updates an existing vehicle model
func (s *CatalogService) UpdateModel(ctx context.Context, id uuid.UUID, input *UpdateModelInput) (*entity.Model, error) {
	model, err := s.modelRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if model == nil {
		return nil, apperror.NewNotFoundError("Model")
	}

	if input.Name != nil && *input.Name != model.Name {
		existing, err := s.modelRepo.GetByName(ctx, *input.Name)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return nil, apperror.NewConflictError("Model with this name already exists")
		}
		model.Name = *input.Name
	}
	if input.AccessoryCharge != nil {
		model.SetAccessoryChargeFromDecimal(*input.AccessoryCharge)
	}

	if err := s.modelRepo.Update(ctx, model); err != nil {
		return nil, err
	}
	return model, nil
}

// DeleteModel removes a vehicle model from the catalog
func (s *CatalogService) DeleteModel(ctx context.Context, id uuid.UUID) error {
	model, err := s.modelRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if model == nil {
		return apperror.NewNotFoundError("Model")
	}
	return s.modelRepo.Delete(ctx, id)
}

// ListModels returns all vehicle models
func (s *CatalogService) ListModels(ctx context.Context) ([]entity.Model, error) {
	return s.modelRepo.List(ctx)
}

// CreateBatteryInput represents the input for creating a battery option
type CreateBatteryInput struct {
	Name     string
	Capacity string
}

// CreateBattery adds a new battery option to the catalog
func (s *CatalogService) CreateBattery(ctx context.Context, input *CreateBatteryInput) (*entity.Battery, error) {
	existing, err := s.batteryRepo.GetByName(ctx, input.Name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperror.NewConflictError("Battery with this name already exists")
	}

	battery := &entity.Battery{
		Name:     input.Name,
		Capacity: input.Capacity,
	}
	if err := s.batteryRepo.Create(ctx, battery); err != nil {
		return nil, err
	}
	return battery, nil
}

// GetBattery retrieves a battery option by ID
func (s *CatalogService) GetBattery(ctx context.Context, id uuid.UUID) (*entity.Battery, error) {
	battery, err := s.batteryRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if battery == nil {
		return nil, apperror.NewNotFoundError("Battery")
	}
	return battery, nil
}

// UpdateBatteryInput represents the input for updating a battery option
type UpdateBatteryInput struct {
	Name     *string
	Capacity *string
}

// UpdateBattery updates an existing battery option
func (s *CatalogService) UpdateBattery(ctx context.Context, id uuid.UUID, input *UpdateBatteryInput) (*entity.Battery, error) {
	battery, err := s.batteryRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if battery == nil {
		return nil, apperror.NewNotFoundError("Battery")
	}

	if input.Name != nil && *input.Name != battery.Name {
		existing, err := s.batteryRepo.GetByName(ctx, *input.Name)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return nil, apperror.NewConflictError("Battery with this name already exists")
		}
		battery.Name = *input.Name
	}
	if input.Capacity != nil {
		battery.Capacity = *input.Capacity
	}

	if err := s.batteryRepo.Update(ctx, battery); err != nil {
		return nil, err
	}
	return battery, nil
}

// DeleteBattery removes a battery option from the catalog
func (s *CatalogService) DeleteBattery(ctx context.Context, id uuid.UUID) error {
	battery, err := s.batteryRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if battery == nil {
		return apperror.NewNotFoundError("Battery")
	}
	return s.batteryRepo.Delete(ctx, id)
}

// ListBatteries returns all battery options
func (s *CatalogService) ListBatteries(ctx context.Context) ([]entity.Battery, error) {
	return s.batteryRepo.List(ctx)
}

// CreateProductInput represents the input for creating a product
type CreateProductInput struct {
	ModelID           uuid.UUID
	BatteryID         uuid.UUID
	Range             int
	Rate              float64 // rupees
	AvailableQuantity int
}

// CreateProduct adds a new model+battery pairing to the catalog
func (s *CatalogService) CreateProduct(ctx context.Context, input *CreateProductInput) (*entity.Product, error) {
	model, err := s.modelRepo.GetByID(ctx, input.ModelID)
	if err != nil {
		return nil, err
	}
	if model == nil {
		return nil, apperror.NewNotFoundError("Model")
	}

	battery, err := s.batteryRepo.GetByID(ctx, input.BatteryID)
	if err != nil {
		return nil, err
	}
	if battery == nil {
		return nil, apperror.NewNotFoundError("Battery")
	}

	existing, err := s.productRepo.GetByModelAndBattery(ctx, input.ModelID, input.BatteryID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperror.NewConflictError("Product with this model and battery already exists")
	}

	product := &entity.Product{
		ModelID:           input.ModelID,
		BatteryID:         input.BatteryID,
		Range:             input.Range,
		AvailableQuantity: input.AvailableQuantity,
	}
	product.SetRateFromDecimal(input.Rate)

	if err := s.productRepo.Create(ctx, product); err != nil {
		return nil, err
	}
	return s.productRepo.GetByID(ctx, product.ID)
}

// GetProduct retrieves a product by ID with its model and battery
func (s *CatalogService) GetProduct(ctx context.Context, id uuid.UUID) (*entity.Product, error) {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, apperror.NewNotFoundError("Product")
	}
	return product, nil
}

// UpdateProductInput represents the input for updating a product
type UpdateProductInput struct {
	Range             *int
	Rate              *float64
	AvailableQuantity *int
}

// UpdateProduct updates an existing product
func (s *CatalogService) UpdateProduct(ctx context.Context, id uuid.UUID, input *UpdateProductInput) (*entity.Product, error) {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, apperror.NewNotFoundError("Product")
	}

	if input.Range != nil {
		product.Range = *input.Range
	}
	if input.Rate != nil {
		product.SetRateFromDecimal(*input.Rate)
	}
	if input.AvailableQuantity != nil {
		if *input.AvailableQuantity < 0 {
			return nil, apperror.NewBadRequestError("Available quantity cannot be negative")
		}
		product.AvailableQuantity = *input.AvailableQuantity
	}

	if err := s.productRepo.Update(ctx, product); err != nil {
		return nil, err
	}
	return s.productRepo.GetByID(ctx, id)
}

// UpdateProductQuantity sets the available stock for a product
func (s *CatalogService) UpdateProductQuantity(ctx context.Context, id uuid.UUID, quantity int) (*entity.Product, error) {
	if quantity < 0 {
		return nil, apperror.NewBadRequestError("Available quantity cannot be negative")
	}

	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, apperror.NewNotFoundError("Product")
	}

	if err := s.productRepo.UpdateQuantity(ctx, id, quantity); err != nil {
		return nil, err
	}
	return s.productRepo.GetByID(ctx, id)
}

// DeleteProduct removes a product from the catalog
func (s *CatalogService) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if product == nil {
		return apperror.NewNotFoundError("Product")
	}
	return s.productRepo.Delete(ctx, id)
}

// ListProducts returns a paginated, filtered product listing
func (s *CatalogService) ListProducts(ctx context.Context, params *repository.ProductFilterParams) ([]entity.Product, int64, error) {
	return s.productRepo.List(ctx, params)
}

// ImportRowError describes a single failed row during a catalog import
type ImportRowError struct {
	Row     int    `json:"row"`
	Message string `json:"message"`
}

// ImportResult summarizes a catalog import
type ImportResult struct {
	TotalRows int              `json:"total_rows"`
	Imported  int              `json:"imported"`
	Skipped   int              `json:"skipped"`
	Errors    []ImportRowError `json:"errors,omitempty"`
}

// ImportProducts reads an xlsx file and creates products in bulk. The sheet
// must have columns: Model, Battery, Capacity, Range, Rate, Quantity,
// AccessoryCharge. Models and batteries are matched by name and created when
// missing. Existing model+battery pairings are skipped.
func (s *CatalogService) ImportProducts(ctx context.Context, file multipart.File) (*ImportResult, error) {
	f, err := excelize.OpenReader(file)
	if err != nil {
		return nil, apperror.NewBadRequestError("Invalid xlsx file")
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, apperror.NewBadRequestError("Workbook has no sheets")
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, apperror.NewBadRequestError("Failed to read sheet rows")
	}
	if len(rows) < 2 {
		return nil, apperror.NewBadRequestError("Sheet has no data rows")
	}

	result := &ImportResult{TotalRows: len(rows) - 1}
	var products []entity.Product

	for i, row := range rows[1:] {
		rowNum := i + 2 // 1-based, after the header

		modelName := cellAt(row, 0)
		batteryName := cellAt(row, 1)
		capacity := cellAt(row, 2)

		if modelName == "" || batteryName == "" {
			result.Errors = append(result.Errors, ImportRowError{Row: rowNum, Message: "model and battery names are required"})
			continue
		}

		rangeKM, err := strconv.Atoi(cellAt(row, 3))
		if err != nil || rangeKM < 0 {
			result.Errors = append(result.Errors, ImportRowError{Row: rowNum, Message: "invalid range"})
			continue
		}
		rate, err := strconv.ParseFloat(cellAt(row, 4), 64)
		if err != nil || rate <= 0 {
			result.Errors = append(result.Errors, ImportRowError{Row: rowNum, Message: "invalid rate"})
			continue
		}
		quantity, err := strconv.Atoi(cellAt(row, 5))
		if err != nil || quantity < 0 {
			result.Errors = append(result.Errors, ImportRowError{Row: rowNum, Message: "invalid quantity"})
			continue
		}

		accessoryCharge := 0.0
		if raw := cellAt(row, 6); raw != "" {
			accessoryCharge, err = strconv.ParseFloat(raw, 64)
			if err != nil || accessoryCharge < 0 {
				result.Errors = append(result.Errors, ImportRowError{Row: rowNum, Message: "invalid accessory charge"})
				continue
			}
		}

		model, err := s.findOrCreateModel(ctx, modelName, accessoryCharge)
		if err != nil {
			result.Errors = append(result.Errors, ImportRowError{Row: rowNum, Message: fmt.Sprintf("model: %v", err)})
			continue
		}
		battery, err := s.findOrCreateBattery(ctx, batteryName, capacity)
		if err != nil {
			result.Errors = append(result.Errors, ImportRowError{Row: rowNum, Message: fmt.Sprintf("battery: %v", err)})
			continue
		}

		existing, err := s.productRepo.GetByModelAndBattery(ctx, model.ID, battery.ID)
		if err != nil {
			result.Errors = append(result.Errors, ImportRowError{Row: rowNum, Message: err.Error()})
			continue
		}
		if existing != nil {
			result.Skipped++
			continue
		}

		product := entity.Product{
			ModelID:           model.ID,
			BatteryID:         battery.ID,
			Range:             rangeKM,
			AvailableQuantity: quantity,
		}
		product.SetRateFromDecimal(rate)
		products = append(products, product)
	}

	if len(products) > 0 {
		if err := s.productRepo.CreateBatch(ctx, products); err != nil {
			return nil, err
		}
		result.Imported = len(products)
	}

	return result, nil
}

func (s *CatalogService) findOrCreateModel(ctx context.Context, name string, accessoryCharge float64) (*entity.Model, error) {
	model, err := s.modelRepo.GetByName(ctx, name)
	if err != nil {
		return nil, err
	}
	if model != nil {
		return model, nil
	}

	model = &entity.Model{Name: name}
	model.SetAccessoryChargeFromDecimal(accessoryCharge)
	if err := s.modelRepo.Create(ctx, model); err != nil {
		return nil, err
	}
	return model, nil
}

func (s *CatalogService) findOrCreateBattery(ctx context.Context, name, capacity string) (*entity.Battery, error) {
	battery, err := s.batteryRepo.GetByName(ctx, name)
	if err != nil {
		return nil, err
	}
	if battery != nil {
		return battery, nil
	}

	battery = &entity.Battery{Name: name, Capacity: capacity}
	if err := s.batteryRepo.Create(ctx, battery); err != nil {
		return nil, err
	}
	return battery, nil
}

func cellAt(row []string, idx int) string {
	if idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}
