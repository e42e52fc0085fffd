package summarize

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/Omidcr77/neurobrief-sub000/internal/middleware"
	"github.com/Omidcr77/neurobrief-sub000/internal/pkg/response"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes mounts the summarization endpoints. All of them require
// authentication; extra middleware (idempotence) comes in via mws.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc, mws ...gin.HandlerFunc) {
	g := rg.Group("/summarize", authMW)
	for _, mw := range mws {
		g.Use(mw)
	}
	g.POST("/text", h.summarizeText)
	g.POST("/pdf", h.summarizePDF)
	g.POST("/url", h.summarizeURL)
}

func (h *Handler) summarizeText(c *gin.Context) {
	var req TextRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body.")
		return
	}

	res, err := h.service.SummarizeText(c.Request.Context(), middleware.CurrentUserID(c), req)
	if err != nil {
		writeStageError(c, err)
		return
	}
	response.Created(c, res)
}

func (h *Handler) summarizeURL(c *gin.Context) {
	var req URLRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body.")
		return
	}

	res, err := h.service.SummarizeURL(c.Request.Context(), middleware.CurrentUserID(c), req)
	if err != nil {
		writeStageError(c, err)
		return
	}
	response.Created(c, res)
}

func (h *Handler) summarizePDF(c *gin.Context) {
	fh, err := c.FormFile("file")
	if err != nil {
		response.BadRequest(c, "A PDF file is required.")
		return
	}

	raw := RawOptions{
		Type:   c.PostForm("type"),
		Length: c.PostForm("length"),
		Focus:  c.PostForm("focus"),
	}

	res, err := h.service.SummarizePDF(c.Request.Context(), middleware.CurrentUserID(c), fh, raw)
	if err != nil {
		writeStageError(c, err)
		return
	}
	response.Created(c, res)
}

func writeStageError(c *gin.Context, err error) {
	var serr *StageError
	if errors.As(err, &serr) {
		response.Error(c, serr.Status, serr.Message)
		return
	}
	response.InternalError(c, err)
}
