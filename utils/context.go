// utils/context.go
package utils

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stayvista/stayvista/logger"
)

const authUserKey = "auth_user"

// AuthUser is the verified caller identity the auth middleware resolves from
// the session token. Core operations take it as an explicit argument instead
// of reading ambient request state.
type AuthUser struct {
	ID           uuid.UUID
	IsAdmin      bool
	SuperAdmin   bool
	ManagedHotel *uuid.UUID
}

// SetAuthUser stores the verified caller identity in the Gin context.
func SetAuthUser(c *gin.Context, user AuthUser) {
	c.Set(authUserKey, user)
}

// GetAuthUser extracts the verified caller identity set by the auth
// middleware.
func GetAuthUser(c *gin.Context) (AuthUser, error) {
	value, exists := c.Get(authUserKey)
	if !exists {
		logger.ErrorLogger.Error("Auth user not found in context.")
		return AuthUser{}, ErrUnauthorized
	}

	user, ok := value.(AuthUser)
	if !ok {
		logger.ErrorLogger.Errorf("Auth user in context has unexpected type: %T", value)
		return AuthUser{}, ErrUnauthorized
	}
	return user, nil
}

// ManagesHotel reports whether the caller may act on the given hotel:
// super admins manage everything, hotel admins only their assigned hotel.
func (u AuthUser) ManagesHotel(hotelID uuid.UUID) bool {
	if u.SuperAdmin {
		return true
	}
	return u.IsAdmin && u.ManagedHotel != nil && *u.ManagedHotel == hotelID
}
