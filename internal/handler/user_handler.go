package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"taxpadi/internal/service"
)

// UserHandler handles profile and admin user endpoints.
type UserHandler struct {
	userService    service.UserService
	historyService service.HistoryService
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(userService service.UserService, historyService service.HistoryService) *UserHandler {
	return &UserHandler{userService: userService, historyService: historyService}
}

// Me handles GET /api/v1/me
func (h *UserHandler) Me(c *gin.Context) {
	userID, _, ok := extractAuthContext(c)
	if !ok {
		return
	}

	user, err := h.userService.GetByID(c.Request.Context(), userID)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, user)
}

// UpdateMe handles PUT /api/v1/me
func (h *UserHandler) UpdateMe(c *gin.Context) {
	userID, _, ok := extractAuthContext(c)
	if !ok {
		return
	}

	var input service.UpdateProfileInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	user, err := h.userService.UpdateProfile(c.Request.Context(), userID, input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, user)
}

// ListUsers handles GET /api/v1/admin/users (admin only).
func (h *UserHandler) ListUsers(c *gin.Context) {
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	users, total, err := h.userService.List(c.Request.Context(), offset, limit)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondPaginated(c, users, PagMeta{Total: total, Offset: offset, Limit: limit})
}

// GlobalStats handles GET /api/v1/admin/stats (admin only).
func (h *UserHandler) GlobalStats(c *gin.Context) {
	stats, err := h.historyService.GlobalStats(c.Request.Context())
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, stats)
}
