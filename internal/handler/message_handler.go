package handler

import (
	"net/http"
	"roomhub/backend/internal/database"
	"roomhub/backend/internal/models"
	"roomhub/backend/internal/store"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
)

// region --- DTOs ---

type MessageInput struct {
	Body string `json:"body" binding:"required"`
}

type MessageResponse struct {
	ID        uint                `json:"id"`
	Body      string              `json:"body"`
	RoomID    uint                `json:"room_id"`
	RoomName  string              `json:"room_name,omitempty"`
	User      *PublicUserResponse `json:"user"`
	LikeCount int64               `json:"like_count"`
	Liked     bool                `json:"liked"`
	CreatedAt time.Time           `json:"created_at"`
	UpdatedAt time.Time           `json:"updated_at"`
}

func newMessageResponse(message models.Message, likeCounts map[uint]int64, likedIDs map[uint]bool) MessageResponse {
	var userResponse *PublicUserResponse
	if message.User.ID != 0 {
		u := newPublicUserResponse(message.User)
		userResponse = &u
	}

	return MessageResponse{
		ID:        message.ID,
		Body:      message.Body,
		RoomID:    message.RoomID,
		RoomName:  message.Room.Name,
		User:      userResponse,
		LikeCount: likeCounts[message.ID],
		Liked:     likedIDs[message.ID],
		CreatedAt: message.CreatedAt,
		UpdatedAt: message.UpdatedAt,
	}
}

// endregion

// CreateMessage godoc
// @Summary      Post a message into a room
// @Description  Creates a message and adds the author to the room's participant set in the same transaction.
// @Tags         messages
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      int          true  "Room ID"
// @Param        input body      MessageInput true  "Message body"
// @Success      201   {object}  MessageResponse
// @Failure      400   {object}  ErrorResponse
// @Failure      401   {object}  ErrorResponse
// @Failure      404   {object}  ErrorResponse "Room not found"
// @Router       /rooms/{id}/messages [post]
func CreateMessage(c *gin.Context) {
	userID, _ := c.Get("userID")
	roomID, _ := strconv.Atoi(c.Param("id"))

	var room models.Room
	if err := database.DB.First(&room, roomID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Room not found"})
		return
	}

	var user models.User
	if err := database.DB.First(&user, userID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	var input MessageInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	message, err := store.CreateMessage(database.DB, &room, &user, input.Body)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create message"})
		return
	}

	message.User = user
	c.JSON(http.StatusCreated, newMessageResponse(*message, nil, nil))
}

// DeleteMessage godoc
// @Summary      Delete a message (Author only)
// @Description  Deletes a message and its likes. Only the author can perform this action.
// @Tags         messages
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Message ID"
// @Success      200 {object} map[string]string "{"message": "Message deleted"}"
// @Failure      403 {object} ErrorResponse "Only the author can delete the message"
// @Failure      404 {object} ErrorResponse "Message not found"
// @Router       /messages/{id} [delete]
func DeleteMessage(c *gin.Context) {
	userID, _ := c.Get("userID")
	messageID, _ := strconv.Atoi(c.Param("id"))

	var message models.Message
	if err := database.DB.First(&message, messageID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Message not found"})
		return
	}

	if message.UserID != userID.(uint) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Only the author can delete the message"})
		return
	}

	if err := store.DeleteMessageCascade(database.DB, &message); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete message"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Message deleted"})
}
