package history

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/Omidcr77/neurobrief-sub000/internal/middleware"
	"github.com/Omidcr77/neurobrief-sub000/internal/pkg/pagination"
	"github.com/Omidcr77/neurobrief-sub000/internal/pkg/response"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	g := rg.Group("/summaries", authMW)
	g.GET("", h.list)
	g.GET("/:id", h.get)
	g.DELETE("/:id", h.delete)
}

func (h *Handler) list(c *gin.Context) {
	userID := middleware.CurrentUserID(c)
	items, page, err := h.service.List(c.Request.Context(), userID, pagination.FromContext(c))
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.Paged(c, items, page)
}

func (h *Handler) get(c *gin.Context) {
	record, err := h.service.GetByID(c.Request.Context(), middleware.CurrentUserID(c), c.Param("id"))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			response.NotFoundMsg(c, "Summary not found.")
			return
		}
		response.InternalError(c, err)
		return
	}
	response.OK(c, record)
}

func (h *Handler) delete(c *gin.Context) {
	err := h.service.Delete(c.Request.Context(), middleware.CurrentUserID(c), c.Param("id"))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			response.NotFoundMsg(c, "Summary not found.")
			return
		}
		response.InternalError(c, err)
		return
	}
	response.NoContent(c)
}
