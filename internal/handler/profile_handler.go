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
	"gorm.io/gorm"
)

// ProfileResponse is the public profile page: the user's rooms and messages,
// the global topic sidebar, and first-activity data for "member since" style
// display.
type ProfileResponse struct {
	User         PublicUserResponse `json:"user"`
	Photo        string             `json:"photo"`
	JoinedAt     time.Time          `json:"joined_at"`
	Rooms        []RoomResponse     `json:"rooms"`
	Messages     []MessageResponse  `json:"messages"`
	TopicsInUse  []string           `json:"topics_in_use"`
	FirstRoom    *RoomResponse      `json:"first_room"`
	FirstMessage *MessageResponse   `json:"first_message"`
}

// GetUserProfile godoc
// @Summary      Get a user's profile page
// @Description  Resolves the user by username (case-insensitive) and returns their rooms, messages (newest first), the distinct topic names in use across all rooms, and their first room and message. The profile row is created lazily on first access.
// @Tags         users
// @Produce      json
// @Param        username path string true "Username"
// @Success      200 {object} ProfileResponse
// @Failure      404 {object} ErrorResponse "User does not exist"
// @Router       /users/{username} [get]
func GetUserProfile(c *gin.Context) {
	username := strings.ToLower(c.Param("username"))

	var user models.User
	if err := database.DB.Where("username = ?", username).First(&user).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User does not exist"})
		return
	}

	profile, err := store.GetOrCreateProfile(database.DB, user.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load profile"})
		return
	}

	var rooms []models.Room
	err = database.DB.Scopes(store.ByRecency).
		Preload("Topic").Preload("Host").
		Where("host_id = ?", user.ID).
		Find(&rooms).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve rooms"})
		return
	}

	var messages []models.Message
	err = database.DB.Order("created_at DESC").
		Preload("User").Preload("Room").
		Where("user_id = ?", user.ID).
		Find(&messages).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve messages"})
		return
	}

	// Topic names in use across all rooms, not scoped to this user.
	var topicNames []string
	err = database.DB.Model(&models.Room{}).
		Joins("JOIN topics ON topics.id = rooms.topic_id AND topics.deleted_at IS NULL").
		Distinct().
		Order("topics.name ASC").
		Pluck("topics.name", &topicNames).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve topics"})
		return
	}

	likedRooms := map[uint]bool{}
	likedMessages := map[uint]bool{}
	if userID, ok := c.Get("userID"); ok {
		likedRooms, _ = store.LikedRoomIDs(database.DB, userID.(uint))
		likedMessages, _ = store.LikedMessageIDs(database.DB, userID.(uint))
	}

	roomIDs := make([]uint, 0, len(rooms))
	for _, room := range rooms {
		roomIDs = append(roomIDs, room.ID)
	}
	roomLikeCounts, _ := store.RoomLikeCounts(database.DB, roomIDs)

	messageIDs := make([]uint, 0, len(messages))
	for _, message := range messages {
		messageIDs = append(messageIDs, message.ID)
	}
	messageLikeCounts, _ := store.MessageLikeCounts(database.DB, messageIDs)

	roomResponses := make([]RoomResponse, 0, len(rooms))
	for _, room := range rooms {
		roomResponses = append(roomResponses, newRoomResponse(room, roomLikeCounts, likedRooms))
	}

	messageResponses := make([]MessageResponse, 0, len(messages))
	for _, message := range messages {
		messageResponses = append(messageResponses, newMessageResponse(message, messageLikeCounts, likedMessages))
	}

	var firstRoomResponse *RoomResponse
	var firstRoom models.Room
	err = database.DB.Preload("Topic").Preload("Host").
		Where("host_id = ?", user.ID).
		Order("created_at ASC").
		First(&firstRoom).Error
	if err == nil {
		r := newRoomResponse(firstRoom, roomLikeCounts, likedRooms)
		firstRoomResponse = &r
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve rooms"})
		return
	}

	var firstMessageResponse *MessageResponse
	var firstMessage models.Message
	err = database.DB.Preload("User").Preload("Room").
		Where("user_id = ?", user.ID).
		Order("created_at ASC").
		First(&firstMessage).Error
	if err == nil {
		m := newMessageResponse(firstMessage, messageLikeCounts, likedMessages)
		firstMessageResponse = &m
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve messages"})
		return
	}

	c.JSON(http.StatusOK, ProfileResponse{
		User:         newPublicUserResponse(user),
		Photo:        profile.Photo,
		JoinedAt:     user.CreatedAt,
		Rooms:        roomResponses,
		Messages:     messageResponses,
		TopicsInUse:  topicNames,
		FirstRoom:    firstRoomResponse,
		FirstMessage: firstMessageResponse,
	})
}
