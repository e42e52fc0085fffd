package demo

import (
	"github.com/gin-gonic/gin"

	"github.com/Omidcr77/neurobrief-sub000/internal/pkg/response"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/demo/token", h.issueToken)
}

func (h *Handler) issueToken(c *gin.Context) {
	token, err := h.service.IssueToken(c.Request.Context())
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.OK(c, gin.H{"token": token})
}
