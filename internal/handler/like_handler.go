package handler

import (
	"errors"
	"net/http"
	"roomhub/backend/internal/database"
	"roomhub/backend/internal/store"
	"strconv"

	"github.com/gin-gonic/gin"
)

// LikeResponse is the payload of the ajax-style like toggles.
type LikeResponse struct {
	Liked     bool  `json:"liked"`
	LikeCount int64 `json:"like_count"`
}

// LikeRoom godoc
// @Summary      Toggle a like on a room
// @Description  Likes the room if the caller has not liked it, unlikes it otherwise. Returns the new state and total like count.
// @Tags         likes
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Room ID"
// @Success      200 {object} LikeResponse
// @Failure      401 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse "Room not found"
// @Router       /rooms/{id}/like [post]
func LikeRoom(c *gin.Context) {
	userID, _ := c.Get("userID")
	roomID, _ := strconv.Atoi(c.Param("id"))

	liked, count, err := store.ToggleRoomLike(database.DB, userID.(uint), uint(roomID))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Room not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to toggle like"})
		return
	}

	c.JSON(http.StatusOK, LikeResponse{Liked: liked, LikeCount: count})
}

// LikeMessage godoc
// @Summary      Toggle a like on a message
// @Description  Likes the message if the caller has not liked it, unlikes it otherwise. Returns the new state and total like count.
// @Tags         likes
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Message ID"
// @Success      200 {object} LikeResponse
// @Failure      401 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse "Message not found"
// @Router       /messages/{id}/like [post]
func LikeMessage(c *gin.Context) {
	userID, _ := c.Get("userID")
	messageID, _ := strconv.Atoi(c.Param("id"))

	liked, count, err := store.ToggleMessageLike(database.DB, userID.(uint), uint(messageID))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Message not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to toggle like"})
		return
	}

	c.JSON(http.StatusOK, LikeResponse{Liked: liked, LikeCount: count})
}
