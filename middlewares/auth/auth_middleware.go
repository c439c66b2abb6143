package auth

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stayvista/stayvista/logger"
	"github.com/stayvista/stayvista/utils"
	"github.com/stayvista/stayvista/utils/jwt_parse"
)

// AuthMiddleware verifies the session token and resolves the caller into an
// explicit utils.AuthUser for downstream handlers. Identity issuance (login,
// registration) lives outside this service; we only trust verified claims.
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		jwt_parse.ParseSessionToken()(c)
		if c.IsAborted() {
			return
		}

		userIDValue, exists := c.Get("user_id")
		if !exists {
			logger.ErrorLogger.Error("User ID missing from verified token claims")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"code": "UNAUTHENTICATED", "error": "You are not authenticated!"})
			return
		}

		userIDStr, ok := userIDValue.(string)
		if !ok {
			logger.ErrorLogger.Errorf("User ID claim has unexpected type: %T", userIDValue)
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"code": "INVALID_TOKEN", "error": "Token is not valid!"})
			return
		}
		userID, err := uuid.Parse(userIDStr)
		if err != nil {
			logger.ErrorLogger.Errorf("User ID claim is not a UUID: %v", err)
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"code": "INVALID_TOKEN", "error": "Token is not valid!"})
			return
		}

		user := utils.AuthUser{
			ID:         userID,
			IsAdmin:    boolClaim(c, "is_admin"),
			SuperAdmin: boolClaim(c, "super_admin"),
		}
		if managed, exists := c.Get("managed_hotel"); exists {
			if managedStr, ok := managed.(string); ok && managedStr != "" {
				if hotelID, err := uuid.Parse(managedStr); err == nil {
					user.ManagedHotel = &hotelID
				}
			}
		}

		utils.SetAuthUser(c, user)
		c.Next()
	}
}

// RequireAdmin allows only super admins through. Runs after AuthMiddleware;
// hotel-scoped admin checks happen per resource in the controllers.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, err := utils.GetAuthUser(c)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"code": "UNAUTHENTICATED", "error": "You are not authenticated!"})
			return
		}
		if !user.SuperAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"code": "ACCESS_DENIED", "error": "You are not authorized!"})
			return
		}
		c.Next()
	}
}

// RequireSelfOrAdmin allows the user identified by the :id path parameter or
// a super admin. Runs after AuthMiddleware.
func RequireSelfOrAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, err := utils.GetAuthUser(c)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"code": "UNAUTHENTICATED", "error": "You are not authenticated!"})
			return
		}
		if user.SuperAdmin || user.ID.String() == c.Param("id") {
			c.Next()
			return
		}
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"code": "ACCESS_DENIED", "error": "You are not authorized!"})
	}
}

func boolClaim(c *gin.Context, key string) bool {
	value, exists := c.Get(key)
	if !exists {
		return false
	}
	b, ok := value.(bool)
	return ok && b
}
