package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/voltify/evdealer-api/internal/application/service"
	"github.com/voltify/evdealer-api/internal/domain/repository"
	"github.com/voltify/evdealer-api/internal/presentation/http/dto/request"
	"github.com/voltify/evdealer-api/internal/presentation/http/dto/response"
	"github.com/voltify/evdealer-api/pkg/pagination"
)

// CatalogHandler handles catalog HTTP requests for models, batteries and products
type CatalogHandler struct {
	catalogService *service.CatalogService
}

// NewCatalogHandler creates a new catalog handler
func NewCatalogHandler(catalogService *service.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalogService: catalogService}
}

// ListModels handles listing vehicle models
func (h *CatalogHandler) ListModels(c *gin.Context) {
	models, err := h.catalogService.ListModels(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Models retrieved successfully", gin.H{"models": models})
}

// CreateModel handles adding a vehicle model
func (h *CatalogHandler) CreateModel(c *gin.Context) {
	var req request.CreateModelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	model, err := h.catalogService.CreateModel(c.Request.Context(), &service.CreateModelInput{
		Name:            req.Name,
		AccessoryCharge: req.AccessoryCharge,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, "Model created successfully", gin.H{"model": model})
}

// GetModel handles fetching a single vehicle model
func (h *CatalogHandler) GetModel(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid model ID")
		return
	}

	model, err := h.catalogService.GetModel(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Model retrieved successfully", gin.H{"model": model})
}

// UpdateModel handles updating a vehicle model
func (h *CatalogHandler) UpdateModel(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid model ID")
		return
	}

	var req request.UpdateModelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	model, err := h.catalogService.UpdateModel(c.Request.Context(), id, &service.UpdateModelInput{
		Name:            req.Name,
		AccessoryCharge: req.AccessoryCharge,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Model updated successfully", gin.H{"model": model})
}

// DeleteModel handles removing a vehicle model
func (h *CatalogHandler) DeleteModel(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid model ID")
		return
	}

	if err := h.catalogService.DeleteModel(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Model deleted successfully", nil)
}

// ListBatteries handles listing battery options
func (h *CatalogHandler) ListBatteries(c *gin.Context) {
	batteries, err := h.catalogService.ListBatteries(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Batteries retrieved successfully", gin.H{"batteries": batteries})
}

// CreateBattery handles adding a battery option
func (h *CatalogHandler) CreateBattery(c *gin.Context) {
	var req request.CreateBatteryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	battery, err := h.catalogService.CreateBattery(c.Request.Context(), &service.CreateBatteryInput{
		Name:     req.Name,
		Capacity: req.Capacity,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, "Battery created successfully", gin.H{"battery": battery})
}

// GetBattery handles fetching a single battery option
func (h *CatalogHandler) GetBattery(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid battery ID")
		return
	}

	battery, err := h.catalogService.GetBattery(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Battery retrieved successfully", gin.H{"battery": battery})
}

// UpdateBattery handles updating a battery option
func (h *CatalogHandler) UpdateBattery(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid battery ID")
		return
	}

	var req request.UpdateBatteryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	battery, err := h.catalogService.UpdateBattery(c.Request.Context(), id, &service.UpdateBatteryInput{
		Name:     req.Name,
		Capacity: req.Capacity,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Battery updated successfully", gin.H{"battery": battery})
}

// DeleteBattery handles removing a battery option
func (h *CatalogHandler) DeleteBattery(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid battery ID")
		return
	}

	if err := h.catalogService.DeleteBattery(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Battery deleted successfully", nil)
}

// ListProducts handles the paginated product listing
func (h *CatalogHandler) ListProducts(c *gin.Context) {
	var filter request.ProductFilterRequest
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}

	params := &repository.ProductFilterParams{
		Pagination: &pagination.PaginationParams{
			Page:    filter.Page,
			PerPage: filter.PerPage,
		},
		Search:    filter.Search,
		InStock:   filter.InStock,
		SortBy:    filter.SortBy,
		SortOrder: filter.SortOrder,
	}

	if filter.ModelID != "" {
		if modelID, err := uuid.Parse(filter.ModelID); err == nil {
			params.ModelID = &modelID
		}
	}
	if filter.BatteryID != "" {
		if batteryID, err := uuid.Parse(filter.BatteryID); err == nil {
			params.BatteryID = &batteryID
		}
	}

	params.Pagination.Validate()

	products, total, err := h.catalogService.ListProducts(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	result := pagination.NewPaginatedResult(products,
		pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total))
	response.SuccessWithPagination(c, 200, "Products retrieved successfully", result)
}

// GetProduct handles fetching a single product
func (h *CatalogHandler) GetProduct(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid product ID")
		return
	}

	product, err := h.catalogService.GetProduct(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Product retrieved successfully", gin.H{"product": product})
}

// CreateProduct handles adding a product
func (h *CatalogHandler) CreateProduct(c *gin.Context) {
	var req request.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	modelID, err := uuid.Parse(req.ModelID)
	if err != nil {
		response.BadRequest(c, "Invalid model ID")
		return
	}
	batteryID, err := uuid.Parse(req.BatteryID)
	if err != nil {
		response.BadRequest(c, "Invalid battery ID")
		return
	}

	product, err := h.catalogService.CreateProduct(c.Request.Context(), &service.CreateProductInput{
		ModelID:           modelID,
		BatteryID:         batteryID,
		Range:             req.Range,
		Rate:              req.Rate,
		AvailableQuantity: req.AvailableQuantity,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, "Product created successfully", gin.H{"product": product})
}

// UpdateProduct handles updating a product
func (h *CatalogHandler) UpdateProduct(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid product ID")
		return
	}

	var req request.UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	product, err := h.catalogService.UpdateProduct(c.Request.Context(), id, &service.UpdateProductInput{
		Range:             req.Range,
		Rate:              req.Rate,
		AvailableQuantity: req.AvailableQuantity,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Product updated successfully", gin.H{"product": product})
}

// UpdateQuantity handles a stock level update
func (h *CatalogHandler) UpdateQuantity(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid product ID")
		return
	}

	var req request.UpdateQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	product, err := h.catalogService.UpdateProductQuantity(c.Request.Context(), id, req.AvailableQuantity)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Quantity updated successfully", gin.H{"product": product})
}

// DeleteProduct handles removing a product
func (h *CatalogHandler) DeleteProduct(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid product ID")
		return
	}

	if err := h.catalogService.DeleteProduct(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Product deleted successfully", nil)
}

// ImportProducts handles a bulk xlsx catalog import
func (h *CatalogHandler) ImportProducts(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		response.BadRequest(c, "Missing file upload")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		response.BadRequest(c, "Failed to open uploaded file")
		return
	}
	defer file.Close()

	result, err := h.catalogService.ImportProducts(c.Request.Context(), file)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Import completed", gin.H{"result": result})
}
