package jwt_parse

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stayvista/stayvista/logger"
	"github.com/stayvista/stayvista/utils"
)

// Session cookies in precedence order. Browser clients send role-scoped
// cookies; the plain access_token is the legacy fallback.
var cookiesByScope = map[string][]string{
	"super":  {"super_admin_access_token", "access_token"},
	"admin":  {"super_admin_access_token", "admin_access_token", "access_token"},
	"member": {"member_access_token", "access_token"},
	"":       {"super_admin_access_token", "admin_access_token", "member_access_token", "access_token"},
}

// ResolveToken finds the session token for a request: the Authorization
// bearer header wins, otherwise the scope-appropriate session cookie.
func ResolveToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if len(authHeader) > 7 && strings.ToLower(authHeader[:7]) == "bearer " {
		return authHeader[7:]
	}

	scope := strings.ToLower(c.GetHeader("X-Session-Scope"))
	names, ok := cookiesByScope[scope]
	if !ok {
		names = cookiesByScope[""]
	}
	for _, name := range names {
		if token, err := c.Cookie(name); err == nil && token != "" {
			return token
		}
	}
	return ""
}

// ParseSessionToken validates the session JWT and stores its claims in the
// context. Aborts with 401/403 when the token is missing or invalid.
func ParseSessionToken() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := ResolveToken(c)
		if tokenString == "" {
			logger.WarnLogger.Warn("No session token provided")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"code": "UNAUTHENTICATED", "error": "You are not authenticated!"})
			return
		}

		token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return utils.GetJWTSecret(), nil
		})
		if err != nil || !token.Valid {
			logger.ErrorLogger.Errorf("Failed to validate session token: %v", err)
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"code": "INVALID_TOKEN", "error": "Token is not valid!"})
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			logger.ErrorLogger.Error("Invalid token claims")
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"code": "INVALID_TOKEN", "error": "Token is not valid!"})
			return
		}

		userID, exists := claims["id"]
		if !exists {
			if sub, subExists := claims["sub"]; subExists {
				userID = sub
			} else {
				logger.ErrorLogger.Error("No user identifier found in token")
				c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"code": "INVALID_TOKEN", "error": "Token is not valid!"})
				return
			}
		}

		c.Set("user_id", userID)
		if isAdmin, exists := claims["isAdmin"]; exists {
			c.Set("is_admin", isAdmin)
		}
		if superAdmin, exists := claims["superAdmin"]; exists {
			c.Set("super_admin", superAdmin)
		}
		if managedHotel, exists := claims["managedHotel"]; exists {
			c.Set("managed_hotel", managedHotel)
		}

		c.Next()
	}
}
