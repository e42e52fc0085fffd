package middleware

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/Omidcr77/neurobrief-sub000/internal/models"
	"github.com/Omidcr77/neurobrief-sub000/internal/pkg/response"
)

// RequireRole blocks requests whose authenticated user does not carry the
// given role. Must run after Auth.
func RequireRole(db *gorm.DB, role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := CurrentUserID(c)
		if userID == "" {
			response.Unauthorized(c)
			return
		}

		var user models.UserModel
		if err := db.Select("id", "role", "status").First(&user, "id = ?", userID).Error; err != nil {
			response.Unauthorized(c)
			return
		}
		if user.Status == models.StatusBanned {
			response.ForbiddenMsg(c, "Account is banned.")
			return
		}
		if user.Role != role {
			response.ForbiddenMsg(c, "Admin access required.")
			return
		}
		c.Next()
	}
}
