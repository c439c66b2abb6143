package user_controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stayvista/stayvista/models/user_models"
	"github.com/stayvista/stayvista/utils"
)

// UserController exposes account lookup and profile management.
type UserController struct {
	DB *pgxpool.Pool
}

// NewUserController creates a new instance of UserController.
func NewUserController(db *pgxpool.Pool) *UserController {
	return &UserController{DB: db}
}

// GetUser fetches a single account.
func (uc *UserController) GetUser(c *gin.Context) {
	userID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"code": "INVALID_ID", "error": "Invalid user id"})
		return
	}

	user, err := user_models.GetUserByID(c.Request.Context(), uc.DB, userID)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

// GetUsers lists all accounts.
func (uc *UserController) GetUsers(c *gin.Context) {
	users, err := user_models.GetUsers(c.Request.Context(), uc.DB)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, users)
}

// UpdateUser applies a partial profile update.
func (uc *UserController) UpdateUser(c *gin.Context) {
	userID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"code": "INVALID_ID", "error": "Invalid user id"})
		return
	}

	var input user_models.UpdateUserInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"code": "INVALID_REQUEST", "error": "Invalid request format", "details": err.Error()})
		return
	}

	user, err := user_models.UpdateUser(c.Request.Context(), uc.DB, userID, input)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

// DeleteUser removes an account.
func (uc *UserController) DeleteUser(c *gin.Context) {
	userID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"code": "INVALID_ID", "error": "Invalid user id"})
		return
	}

	if err := user_models.DeleteUser(c.Request.Context(), uc.DB, userID); err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "User has been deleted."})
}
