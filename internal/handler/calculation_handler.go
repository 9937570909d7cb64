package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"taxpadi/internal/domain"
	"taxpadi/internal/service"
)

// CalculationHandler handles saved-calculation endpoints. All routes require
// an authenticated, email-verified user.
type CalculationHandler struct {
	calcService    service.CalculationService
	historyService service.HistoryService
	exportService  service.ExportService
}

// NewCalculationHandler creates a new CalculationHandler.
func NewCalculationHandler(calcService service.CalculationService, historyService service.HistoryService, exportService service.ExportService) *CalculationHandler {
	return &CalculationHandler{calcService: calcService, historyService: historyService, exportService: exportService}
}

// Save handles POST /api/v1/calculations
func (h *CalculationHandler) Save(c *gin.Context) {
	userID, _, ok := extractAuthContext(c)
	if !ok {
		return
	}

	var input service.SaveInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	calc, err := h.calcService.Save(c.Request.Context(), userID, input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondCreated(c, calc)
}

// List handles GET /api/v1/calculations?tax_type=&offset=&limit=
func (h *CalculationHandler) List(c *gin.Context) {
	userID, _, ok := extractAuthContext(c)
	if !ok {
		return
	}

	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	params := service.ListParams{
		TaxType: domain.TaxType(c.Query("tax_type")),
		Offset:  offset,
		Limit:   limit,
	}

	calcs, total, err := h.historyService.List(c.Request.Context(), userID, params)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondPaginated(c, calcs, PagMeta{Total: total, Offset: params.Offset, Limit: params.Limit})
}

// Get handles GET /api/v1/calculations/:id
func (h *CalculationHandler) Get(c *gin.Context) {
	userID, _, ok := extractAuthContext(c)
	if !ok {
		return
	}

	calcID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "invalid calculation id")
		return
	}

	calc, err := h.historyService.Get(c.Request.Context(), userID, calcID)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, calc)
}

// Recompute handles POST /api/v1/calculations/:id/recompute
func (h *CalculationHandler) Recompute(c *gin.Context) {
	userID, _, ok := extractAuthContext(c)
	if !ok {
		return
	}

	calcID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "invalid calculation id")
		return
	}

	calc, err := h.calcService.Recompute(c.Request.Context(), userID, calcID)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, calc)
}

// Delete handles DELETE /api/v1/calculations/:id
func (h *CalculationHandler) Delete(c *gin.Context) {
	userID, _, ok := extractAuthContext(c)
	if !ok {
		return
	}

	calcID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "invalid calculation id")
		return
	}

	if err := h.historyService.Delete(c.Request.Context(), userID, calcID); err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, gin.H{"message": "calculation deleted"})
}

// Export handles GET /api/v1/calculations/export
func (h *CalculationHandler) Export(c *gin.Context) {
	userID, _, ok := extractAuthContext(c)
	if !ok {
		return
	}

	out, err := h.exportService.ExportHistory(c.Request.Context(), userID)
	if err != nil {
		HandleError(c, err)
		return
	}

	if out.DownloadURL != "" {
		RespondOK(c, gin.H{"download_url": out.DownloadURL, "filename": out.Filename})
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+out.Filename+`"`)
	c.Data(http.StatusOK, out.ContentType, out.Content)
}

// Stats handles GET /api/v1/calculations/stats
func (h *CalculationHandler) Stats(c *gin.Context) {
	userID, _, ok := extractAuthContext(c)
	if !ok {
		return
	}

	stats, err := h.historyService.UserStats(c.Request.Context(), userID)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, gin.H{"by_type": stats})
}
