package middleware

import (
	"strings"

	"hms/response"
	"hms/services"

	"github.com/gin-gonic/gin"
)

// AuthMiddleware xử lý authentication, roles rỗng thì chỉ cần đăng nhập
func AuthMiddleware(roles ...int) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.Unauthorized(c)
			c.Abort()
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		staffID, staffRole, err := services.GetStaffFromToken(tokenString)
		if err != nil {
			response.Unauthorized(c)
			c.Abort()
			return
		}

		// Kiểm tra role nếu có yêu cầu
		if len(roles) > 0 {
			hasRole := false
			for _, role := range roles {
				if role == staffRole {
					hasRole = true
					break
				}
			}
			if !hasRole {
				response.Forbidden(c)
				c.Abort()
				return
			}
		}

		c.Set("staffID", staffID)
		c.Set("staffRole", staffRole)
		c.Next()
	}
}
