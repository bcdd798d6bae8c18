package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/voltify/evdealer-api/internal/application/service"
	"github.com/voltify/evdealer-api/internal/domain/billing"
	"github.com/voltify/evdealer-api/internal/domain/repository"
	"github.com/voltify/evdealer-api/internal/presentation/http/dto/request"
	"github.com/voltify/evdealer-api/internal/presentation/http/dto/response"
	"github.com/voltify/evdealer-api/pkg/pagination"
)

const dateLayout = "2006-01-02"

// ReceiptHandler handles receipt HTTP requests
type ReceiptHandler struct {
	receiptService *service.ReceiptService
}

// NewReceiptHandler creates a new receipt handler
func NewReceiptHandler(receiptService *service.ReceiptService) *ReceiptHandler {
	return &ReceiptHandler{receiptService: receiptService}
}

// Generate handles generating a receipt from the operator's cart
func (h *ReceiptHandler) Generate(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	var req request.GenerateReceiptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	var date time.Time
	if req.Date != "" {
		parsed, err := time.Parse(dateLayout, req.Date)
		if err != nil {
			response.BadRequest(c, "Invalid date, expected YYYY-MM-DD")
			return
		}
		date = parsed
	}

	details := make([]billing.UnitDetail, len(req.UnitDetails))
	for i, d := range req.UnitDetails {
		details[i] = billing.UnitDetail{
			Color:         d.Color,
			HSNCode:       d.HSNCode,
			BatteryNumber: d.BatteryNumber,
			ChargerNumber: d.ChargerNumber,
			ChassisNumber: d.ChassisNumber,
		}
	}

	receipt, err := h.receiptService.GenerateReceipt(c.Request.Context(), &service.GenerateReceiptInput{
		UserID:          *userID,
		Date:            date,
		Customer:        customerInput(&req.Customer),
		Accessories:     req.Accessories,
		PaymentType:     req.PaymentType,
		SpecialDiscount: req.SpecialDiscount,
		FinalAmount:     req.FinalAmount,
		UnitDetails:     details,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Receipt generated successfully", gin.H{"receipt": receipt})
}

// List handles the paginated receipt listing
func (h *ReceiptHandler) List(c *gin.Context) {
	params := pagination.DefaultPagination()
	if err := c.ShouldBindQuery(params); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}
	params.Validate()

	receipts, total, err := h.receiptService.ListReceipts(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	result := pagination.NewPaginatedResult(receipts,
		pagination.NewPagination(params.Page, params.PerPage, total))
	response.SuccessWithPagination(c, 200, "Receipts retrieved successfully", result)
}

// Get handles fetching a single receipt with its items
func (h *ReceiptHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid receipt ID")
		return
	}

	receipt, err := h.receiptService.GetReceipt(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Receipt retrieved successfully", gin.H{"receipt": receipt})
}

// Update handles editing a persisted receipt
func (h *ReceiptHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid receipt ID")
		return
	}

	var req request.UpdateReceiptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	input := &service.UpdateReceiptInput{
		PaymentType: req.PaymentType,
		FinalAmount: req.FinalAmount,
	}
	if req.Date != nil {
		parsed, err := time.Parse(dateLayout, *req.Date)
		if err != nil {
			response.BadRequest(c, "Invalid date, expected YYYY-MM-DD")
			return
		}
		input.Date = &parsed
	}
	if req.Customer != nil {
		customer := customerInput(req.Customer)
		input.Customer = &customer
	}

	receipt, err := h.receiptService.UpdateReceipt(c.Request.Context(), id, input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Receipt updated successfully", gin.H{"receipt": receipt})
}

// Delete handles removing a receipt and restoring its units to stock
func (h *ReceiptHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid receipt ID")
		return
	}

	if err := h.receiptService.DeleteReceipt(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Receipt deleted successfully", nil)
}

// Search handles the sparse receipt search
func (h *ReceiptHandler) Search(c *gin.Context) {
	var req request.SearchReceiptsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	params := &repository.ReceiptSearchParams{
		ReceiptNumber: req.ReceiptNumber,
		ChassisNo:     req.ChassisNo,
		Phone:         req.Phone,
		State:         req.State,
		Code:          req.Code,
		GSTIN:         req.GSTIN,
	}

	if req.FromDate != "" {
		parsed, err := time.Parse(dateLayout, req.FromDate)
		if err != nil {
			response.BadRequest(c, "Invalid from_date, expected YYYY-MM-DD")
			return
		}
		params.FromDate = &parsed
	}
	if req.ToDate != "" {
		parsed, err := time.Parse(dateLayout, req.ToDate)
		if err != nil {
			response.BadRequest(c, "Invalid to_date, expected YYYY-MM-DD")
			return
		}
		params.ToDate = &parsed
	}

	receipts, err := h.receiptService.SearchReceipts(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Receipts retrieved successfully", gin.H{"receipts": receipts})
}

func customerInput(d *request.CustomerDetails) service.CustomerInput {
	return service.CustomerInput{
		Name:    d.Name,
		Phone:   d.Phone,
		Address: d.Address,
		City:    d.City,
		State:   d.State,
		Code:    d.Code,
		GSTIN:   d.GSTIN,
	}
}
