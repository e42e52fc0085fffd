package auth

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

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	g := rg.Group("/auth")
	g.POST("/register", h.register)
	g.POST("/verify-email", h.verifyEmail)
	g.POST("/login", h.login)
	g.POST("/forgot-password", h.forgotPassword)
	g.POST("/reset-password/:token", h.resetPassword)

	g.GET("/profile", authMW, h.profile)
	g.PUT("/profile", authMW, h.updateProfile)
	g.PUT("/password", authMW, h.changePassword)
}

func (h *Handler) register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Name, email and a password of at least 8 characters are required.")
		return
	}

	if err := h.service.Register(c.Request.Context(), req); err != nil {
		if errors.Is(err, ErrEmailTaken) {
			response.BadRequest(c, "Email is already registered.")
			return
		}
		response.InternalError(c, err)
		return
	}
	response.Created(c, gin.H{"message": "Registered. Check your email for the verification code."})
}

func (h *Handler) verifyEmail(c *gin.Context) {
	var req VerifyEmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Email and verification code are required.")
		return
	}

	res, err := h.service.VerifyEmail(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, ErrInvalidCode) {
			response.BadRequest(c, "Invalid or expired verification code.")
			return
		}
		response.InternalError(c, err)
		return
	}
	response.OK(c, res)
}

func (h *Handler) login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Email and password are required.")
		return
	}

	res, err := h.service.Login(c.Request.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidCredentials):
			response.UnauthorizedMsg(c, "Invalid email or password.")
		case errors.Is(err, ErrNotVerified):
			response.ForbiddenMsg(c, "Please verify your email before logging in.")
		case errors.Is(err, ErrBanned):
			response.ForbiddenMsg(c, "Account is banned.")
		default:
			response.InternalError(c, err)
		}
		return
	}
	response.OK(c, res)
}

func (h *Handler) forgotPassword(c *gin.Context) {
	var req ForgotPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Email is required.")
		return
	}

	if err := h.service.ForgotPassword(c.Request.Context(), req.Email); err != nil {
		response.InternalError(c, err)
		return
	}
	// same response whether or not the address exists
	response.OK(c, gin.H{"message": "If that email is registered, a reset link has been sent."})
}

func (h *Handler) resetPassword(c *gin.Context) {
	var req ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "A password of at least 8 characters is required.")
		return
	}

	if err := h.service.ResetPassword(c.Request.Context(), c.Param("token"), req.Password); err != nil {
		if errors.Is(err, ErrInvalidResetToken) {
			response.BadRequest(c, "Invalid or expired reset token.")
			return
		}
		response.InternalError(c, err)
		return
	}
	response.OK(c, gin.H{"message": "Password has been reset."})
}

func (h *Handler) profile(c *gin.Context) {
	user, err := h.service.Profile(c.Request.Context(), middleware.CurrentUserID(c))
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			response.NotFoundMsg(c, "User not found.")
			return
		}
		response.InternalError(c, err)
		return
	}
	response.OK(c, user)
}

func (h *Handler) updateProfile(c *gin.Context) {
	if middleware.IsDemo(c) {
		response.ForbiddenMsg(c, "The demo account cannot be modified.")
		return
	}

	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body.")
		return
	}

	user, err := h.service.UpdateProfile(c.Request.Context(), middleware.CurrentUserID(c), req)
	if err != nil {
		if errors.Is(err, ErrEmailTaken) {
			response.BadRequest(c, "Email is already registered.")
			return
		}
		response.InternalError(c, err)
		return
	}
	response.OK(c, user)
}

func (h *Handler) changePassword(c *gin.Context) {
	if middleware.IsDemo(c) {
		response.ForbiddenMsg(c, "The demo account cannot be modified.")
		return
	}

	var req ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Current and new password are required.")
		return
	}

	err := h.service.ChangePassword(c.Request.Context(), middleware.CurrentUserID(c), req)
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			response.UnauthorizedMsg(c, "Current password is incorrect.")
			return
		}
		response.InternalError(c, err)
		return
	}
	response.OK(c, gin.H{"message": "Password updated."})
}
