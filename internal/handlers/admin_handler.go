package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"fintrack/internal/services"
)

// AdminHandler handles the admin-only user and log views.
type AdminHandler struct {
	adminService services.AdminServicer
	auditService services.AuditServicer
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(adminService services.AdminServicer, auditService services.AuditServicer) *AdminHandler {
	return &AdminHandler{adminService: adminService, auditService: auditService}
}

// UpdateUserRequest holds the admin-editable flags. Omitted flags are left
// unchanged.
type UpdateUserRequest struct {
	IsAdmin  *bool `json:"isAdmin"`
	IsActive *bool `json:"isActive"`
}

// ListUsers lists users with their transaction counts
// @Summary     List users
// @Tags        admin
// @Produce     json
// @Security    BearerAuth
// @Param       page   query int    false "Page number (default 1)"
// @Param       limit  query int    false "Items per page (default 10, max 100)"
// @Param       search query string false "Match on username, email or full name"
// @Success     200 {object} pagination.PageResponse[services.AdminUser]
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     403 {object} ErrorResponse "Not an admin"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /admin/users [get]
func (h *AdminHandler) ListUsers(c *gin.Context) {
	page, err := bindPage(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	result, err := h.adminService.ListUsers(c.Request.Context(), page, c.Query("search"))
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// UpdateUser toggles a user's admin and active flags
// @Summary     Update user flags
// @Tags        admin
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id      path string            true "User ID"
// @Param       request body UpdateUserRequest true "Flags to change"
// @Success     200 {object} UserResponse
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     403 {object} ErrorResponse "Not an admin"
// @Failure     404 {object} ErrorResponse "User not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /admin/users/{id} [put]
func (h *AdminHandler) UpdateUser(c *gin.Context) {
	adminID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, bindingError(err))
		return
	}

	user, err := h.adminService.UpdateUser(c.Request.Context(), c.Param("id"), services.UserUpdate{
		IsAdmin:  req.IsAdmin,
		IsActive: req.IsActive,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	details := map[string]interface{}{}
	if req.IsAdmin != nil {
		details["isAdmin"] = *req.IsAdmin
	}
	if req.IsActive != nil {
		details["isActive"] = *req.IsActive
	}
	h.auditService.Log(c.Request.Context(), adminID, services.ActionUpdate, services.ResourceUser, user.ID, c.ClientIP(), details)

	c.JSON(http.StatusOK, gin.H{"user": toUserResponse(user)})
}

// ListLogs lists system log entries
// @Summary     List system logs
// @Tags        admin
// @Produce     json
// @Security    BearerAuth
// @Param       page  query int false "Page number (default 1)"
// @Param       limit query int false "Items per page (default 50, max 100)"
// @Success     200 {object} pagination.PageResponse[services.LogEntry]
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     403 {object} ErrorResponse "Not an admin"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /admin/logs [get]
func (h *AdminHandler) ListLogs(c *gin.Context) {
	page, err := bindPage(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	result, err := h.adminService.ListLogs(c.Request.Context(), page)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}
