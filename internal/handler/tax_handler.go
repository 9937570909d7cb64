package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"taxpadi/internal/service"
	"taxpadi/internal/tax"
)

// TaxHandler handles the public tax computation endpoints. No authentication
// is required: anyone can run a calculation.
type TaxHandler struct {
	calcService service.CalculationService
	rates       tax.Rates
}

// NewTaxHandler creates a new TaxHandler.
func NewTaxHandler(calcService service.CalculationService, rates tax.Rates) *TaxHandler {
	return &TaxHandler{calcService: calcService, rates: rates}
}

// Rates handles GET /api/v1/tax/rates
func (h *TaxHandler) Rates(c *gin.Context) {
	RespondOK(c, h.rates)
}

// CalculatePIT handles POST /api/v1/tax/pit
func (h *TaxHandler) CalculatePIT(c *gin.Context) {
	var input tax.PITInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	result, err := h.calcService.CalculatePIT(input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, result)
}

// CalculateCIT handles POST /api/v1/tax/cit
func (h *TaxHandler) CalculateCIT(c *gin.Context) {
	var input tax.CITInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	result, err := h.calcService.CalculateCIT(input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, result)
}

// CalculateCGT handles POST /api/v1/tax/cgt
func (h *TaxHandler) CalculateCGT(c *gin.Context) {
	var input tax.CGTInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	result, err := h.calcService.CalculateCGT(input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, result)
}

// CalculateVAT handles POST /api/v1/tax/vat
func (h *TaxHandler) CalculateVAT(c *gin.Context) {
	var req service.VATRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	result, err := h.calcService.CalculateVAT(req)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, result)
}

// CalculateBusinessVAT handles POST /api/v1/tax/vat/business
func (h *TaxHandler) CalculateBusinessVAT(c *gin.Context) {
	var req service.BusinessVATRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	result, err := h.calcService.CalculateBusinessVAT(req)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, result)
}
