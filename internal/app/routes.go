package app

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Omidcr77/neurobrief-sub000/internal/middleware"
	"github.com/Omidcr77/neurobrief-sub000/internal/modules/admin"
	"github.com/Omidcr77/neurobrief-sub000/internal/modules/auth"
	"github.com/Omidcr77/neurobrief-sub000/internal/modules/demo"
	"github.com/Omidcr77/neurobrief-sub000/internal/modules/history"
	"github.com/Omidcr77/neurobrief-sub000/internal/modules/summarize"
	"github.com/Omidcr77/neurobrief-sub000/internal/pkg/llm"
	"github.com/Omidcr77/neurobrief-sub000/internal/pkg/mail"
	"github.com/Omidcr77/neurobrief-sub000/internal/pkg/response"
)

func (a *App) registerRoutes() {
	r := a.router
	db := a.db
	authMW := middleware.Auth()

	r.NoRoute(func(c *gin.Context) {
		response.NotFound(c)
	})
	r.NoMethod(func(c *gin.Context) {
		response.MethodNotAllowed(c)
	})

	appInfo := gin.H{
		"name":    "neurobrief",
		"version": "1.0.0",
	}
	r.GET("/", func(c *gin.Context) { c.JSON(http.StatusOK, appInfo) })

	api := r.Group("/api")
	api.GET("/ping", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"data": "pong"}) })

	mailer := mail.New(a.cfg.Mail)
	gen := llm.New(a.cfg.AI)

	authSvc := auth.NewService(db, mailer, a.logger, a.cfg.FrontendURL)
	auth.NewHandler(authSvc).RegisterRoutes(api, authMW)

	demo.NewHandler(demo.NewService(db)).RegisterRoutes(api)

	sumSvc := summarize.NewService(db, gen, a.logger, a.cfg.UploadDir)
	var sumMWs []gin.HandlerFunc
	if a.rc != nil {
		sumMWs = append(sumMWs, middleware.Idempotence(a.rc.Raw()))
	}
	summarize.NewHandler(sumSvc).RegisterRoutes(api, authMW, sumMWs...)

	history.NewHandler(history.NewService(db)).RegisterRoutes(api, authMW)

	admin.NewHandler(admin.NewService(db)).RegisterRoutes(api, db, authMW)
}
