package admin

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/Omidcr77/neurobrief-sub000/internal/middleware"
	"github.com/Omidcr77/neurobrief-sub000/internal/models"
	"github.com/Omidcr77/neurobrief-sub000/internal/pkg/pagination"
	"github.com/Omidcr77/neurobrief-sub000/internal/pkg/response"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes mounts the admin surface. Everything requires an
// authenticated admin.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, db *gorm.DB, authMW gin.HandlerFunc) {
	g := rg.Group("/admin", authMW, middleware.RequireRole(db, models.RoleAdmin))

	g.GET("/users", h.listUsers)
	g.GET("/users/:id", h.getUser)
	g.PUT("/users/:id", h.updateUser)
	g.PATCH("/users/:id/status", h.changeStatus)
	g.DELETE("/users/:id", h.deleteUser)
	g.POST("/users/:id/impersonate", h.impersonate)

	g.GET("/metrics", h.metrics)
	g.GET("/reports/user-activity", h.userActivity)
	g.GET("/reports/summary-trends", h.summaryTrends)
	g.GET("/reports/export/:type", h.export)
}

func (h *Handler) listUsers(c *gin.Context) {
	q := ListUsersQuery{
		Search: c.Query("q"),
		Role:   c.Query("role"),
		Status: c.Query("status"),
	}
	users, meta, err := h.service.ListUsers(c.Request.Context(), q, pagination.FromContext(c))
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.Paged(c, users, meta)
}

func (h *Handler) getUser(c *gin.Context) {
	user, err := h.service.GetUser(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeUserError(c, err)
		return
	}
	response.OK(c, user)
}

func (h *Handler) updateUser(c *gin.Context) {
	var req UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body.")
		return
	}

	user, err := h.service.UpdateUser(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		writeUserError(c, err)
		return
	}
	response.OK(c, user)
}

func (h *Handler) changeStatus(c *gin.Context) {
	var req ChangeStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Status must be \"active\" or \"banned\".")
		return
	}

	user, err := h.service.ChangeStatus(c.Request.Context(), c.Param("id"), req.Status)
	if err != nil {
		writeUserError(c, err)
		return
	}
	response.OK(c, user)
}

func (h *Handler) deleteUser(c *gin.Context) {
	if err := h.service.DeleteUser(c.Request.Context(), c.Param("id")); err != nil {
		writeUserError(c, err)
		return
	}
	response.OK(c, gin.H{"message": "User deleted."})
}

func (h *Handler) impersonate(c *gin.Context) {
	token, err := h.service.Impersonate(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeUserError(c, err)
		return
	}
	response.OK(c, gin.H{"token": token})
}

func (h *Handler) metrics(c *gin.Context) {
	m, err := h.service.Metrics(c.Request.Context())
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.OK(c, m)
}

func (h *Handler) userActivity(c *gin.Context) {
	series, err := h.service.UserActivity(c.Request.Context(), reportDays(c))
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.OK(c, series)
}

func (h *Handler) summaryTrends(c *gin.Context) {
	series, err := h.service.SummaryTrends(c.Request.Context(), reportDays(c))
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.OK(c, series)
}

func (h *Handler) export(c *gin.Context) {
	kind := c.Param("type")
	if kind != "users" && kind != "summaries" {
		response.BadRequest(c, "Export type must be \"users\" or \"summaries\".")
		return
	}

	c.Header("Content-Type", "text/csv")
	c.Header("Content-Disposition", `attachment; filename="`+kind+`.csv"`)
	var err error
	if kind == "users" {
		err = h.service.ExportUsersCSV(c.Request.Context(), c.Writer)
	} else {
		err = h.service.ExportSummariesCSV(c.Request.Context(), c.Writer)
	}
	if err != nil {
		response.InternalError(c, err)
	}
}

func reportDays(c *gin.Context) int {
	days, err := strconv.Atoi(c.DefaultQuery("days", "7"))
	if err != nil || days < 1 {
		return 7
	}
	if days > 365 {
		return 365
	}
	return days
}

func writeUserError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrUserNotFound):
		response.NotFoundMsg(c, "User not found.")
	case errors.Is(err, ErrLastAdmin):
		response.Conflict(c, "At least one active admin must remain.")
	default:
		response.InternalError(c, err)
	}
}
