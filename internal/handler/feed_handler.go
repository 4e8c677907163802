package handler

import (
	"net/http"
	"roomhub/backend/internal/database"
	"roomhub/backend/internal/models"
	"roomhub/backend/internal/store"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
)

// FeedResponse is the home view: rooms matching the search, the full topic
// sidebar, and the recent-activity message feed.
type FeedResponse struct {
	Rooms     []RoomResponse    `json:"rooms"`
	RoomCount int64             `json:"room_count"`
	Meta      PaginationMeta    `json:"meta"`
	Topics    []TopicResponse   `json:"topics"`
	Messages  []MessageResponse `json:"messages"`
}

// GetFeed godoc
// @Summary      Home feed and search
// @Description  Searches rooms by topic name, room name or description (case-insensitive substring). Topics are always the full list; the message feed is filtered by room topic name only. Liked state reflects the caller when authenticated.
// @Tags         feed
// @Produce      json
// @Param        q     query     string  false  "Search query"
// @Param        page  query     int     false  "Page number" default(1)
// @Param        limit query     int     false  "Rooms per page" default(20)
// @Success      200   {object}  FeedResponse
// @Router       /feed [get]
func GetFeed(c *gin.Context) {
	q := c.Query("q")
	like := "%" + strings.ToLower(q) + "%"

	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if err != nil || limit < 1 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	offset := (page - 1) * limit

	roomQuery := database.DB.Model(&models.Room{}).
		Joins("LEFT JOIN topics ON topics.id = rooms.topic_id AND topics.deleted_at IS NULL").
		Where("LOWER(topics.name) LIKE ? OR LOWER(rooms.name) LIKE ? OR LOWER(rooms.description) LIKE ?", like, like, like)

	var roomCount int64
	if err := roomQuery.Count(&roomCount).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to count rooms"})
		return
	}

	var rooms []models.Room
	err = roomQuery.
		Preload("Topic").Preload("Host").
		Order("rooms.updated_at DESC, rooms.created_at DESC").
		Offset(offset).Limit(limit).
		Find(&rooms).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve rooms"})
		return
	}

	var topics []models.Topic
	if err := database.DB.Order("name ASC").Find(&topics).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve topics"})
		return
	}

	// The activity feed intentionally matches on topic name only, not on
	// room name or description.
	var messages []models.Message
	err = database.DB.Model(&models.Message{}).
		Joins("JOIN rooms ON rooms.id = messages.room_id AND rooms.deleted_at IS NULL").
		Joins("LEFT JOIN topics ON topics.id = rooms.topic_id AND topics.deleted_at IS NULL").
		Where("LOWER(topics.name) LIKE ?", like).
		Preload("User").Preload("Room").
		Order("messages.updated_at DESC, messages.created_at DESC").
		Find(&messages).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve messages"})
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

	topicResponses := make([]TopicResponse, 0, len(topics))
	for _, topic := range topics {
		topicResponses = append(topicResponses, newTopicResponse(topic))
	}

	messageResponses := make([]MessageResponse, 0, len(messages))
	for _, message := range messages {
		messageResponses = append(messageResponses, newMessageResponse(message, messageLikeCounts, likedMessages))
	}

	c.JSON(http.StatusOK, FeedResponse{
		Rooms:     roomResponses,
		RoomCount: roomCount,
		Meta:      NewPaginationMeta(roomCount, page, limit),
		Topics:    topicResponses,
		Messages:  messageResponses,
	})
}
