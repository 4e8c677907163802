package handler

import (
	"errors"
	"net/http"
	"roomhub/backend/internal/database"
	"roomhub/backend/internal/models"
	"roomhub/backend/internal/store"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// region --- DTOs ---

// PublicUserResponse defines the structure for a user's public identity.
type PublicUserResponse struct {
	ID       uint   `json:"id" example:"1"`
	Username string `json:"username" example:"testuser"`
}

// PrivateUserResponse defines the structure for the authenticated user's own account.
type PrivateUserResponse struct {
	ID       uint      `json:"id" example:"1"`
	Username string    `json:"username" example:"testuser"`
	Email    string    `json:"email" example:"test@example.com"`
	Photo    string    `json:"photo"`
	JoinedAt time.Time `json:"joined_at"`
}

type UsernameInput struct {
	Username string `json:"username" binding:"required,max=150"`
}

type PasswordInput struct {
	OldPassword string `json:"old_password" binding:"required"`
	NewPassword string `json:"new_password" binding:"required,min=8"`
}

type PhotoInput struct {
	// Photo is a reference string resolved by the file-storage collaborator;
	// an empty value clears the photo.
	Photo string `json:"photo" binding:"max=512"`
}

func newPublicUserResponse(user models.User) PublicUserResponse {
	return PublicUserResponse{
		ID:       user.ID,
		Username: user.Username,
	}
}

// endregion

// GetMe godoc
// @Summary      Get current user's account
// @Description  Retrieves the private account data for the currently authenticated user, creating the profile on first access if missing.
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  PrivateUserResponse
// @Failure      401  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /users/me [get]
func GetMe(c *gin.Context) {
	userID, _ := c.Get("userID")

	var user models.User
	if err := database.DB.First(&user, userID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	profile, err := store.GetOrCreateProfile(database.DB, user.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load profile"})
		return
	}

	c.JSON(http.StatusOK, PrivateUserResponse{
		ID:       user.ID,
		Username: user.Username,
		Email:    user.Email,
		Photo:    profile.Photo,
		JoinedAt: user.CreatedAt,
	})
}

// UpdateUsername godoc
// @Summary      Change the current user's username
// @Description  Updates the username (lowercased). Fails if the name is taken by another user.
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        input body UsernameInput true "New username"
// @Success      200  {object}  PublicUserResponse
// @Failure      400  {object}  ErrorResponse
// @Failure      401  {object}  ErrorResponse
// @Failure      409  {object}  ErrorResponse "Username already taken"
// @Router       /users/me [put]
func UpdateUsername(c *gin.Context) {
	userID, _ := c.Get("userID")

	var input UsernameInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var user models.User
	if err := database.DB.First(&user, userID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	username := strings.ToLower(input.Username)
	if username == user.Username {
		c.JSON(http.StatusOK, newPublicUserResponse(user))
		return
	}

	if err := database.DB.Model(&user).Update("username", username).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			c.JSON(http.StatusConflict, gin.H{"error": "This username is already taken"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update username"})
		return
	}

	c.JSON(http.StatusOK, newPublicUserResponse(user))
}

// UpdatePassword godoc
// @Summary      Change the current user's password
// @Description  Verifies the old password and replaces it with the new one.
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        input body PasswordInput true "Old and new password"
// @Success      200  {object}  map[string]string "{"message": "Password updated"}"
// @Failure      400  {object}  ErrorResponse
// @Failure      401  {object}  ErrorResponse "Old password is incorrect"
// @Router       /users/me/password [put]
func UpdatePassword(c *gin.Context) {
	userID, _ := c.Get("userID")

	var input PasswordInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var user models.User
	if err := database.DB.First(&user, userID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.OldPassword)); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Old password is incorrect"})
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to hash password"})
		return
	}

	if err := database.DB.Model(&user).Update("password_hash", string(hashedPassword)).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update password"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Password updated"})
}

// UpdatePhoto godoc
// @Summary      Set the current user's profile photo reference
// @Description  Stores the photo reference string on the user's profile, creating the profile if missing.
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        input body PhotoInput true "Photo reference"
// @Success      200  {object}  map[string]string "{"photo": "..."}"
// @Failure      400  {object}  ErrorResponse
// @Failure      401  {object}  ErrorResponse
// @Router       /users/me/photo [put]
func UpdatePhoto(c *gin.Context) {
	userID, _ := c.Get("userID")

	var input PhotoInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	profile, err := store.GetOrCreateProfile(database.DB, userID.(uint))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load profile"})
		return
	}

	if err := database.DB.Model(profile).Update("photo", input.Photo).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update photo"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"photo": input.Photo})
}
