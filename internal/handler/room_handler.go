package handler

import (
	"errors"
	"net/http"
	"roomhub/backend/internal/database"
	"roomhub/backend/internal/models"
	"roomhub/backend/internal/store"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
)

// region --- DTOs ---

// RoomInput carries the room fields plus the topic choice: exactly one of
// topic_id and new_topic must be set.
type RoomInput struct {
	Name        string `json:"name" binding:"required,max=200"`
	Description string `json:"description"`
	TopicID     *uint  `json:"topic_id"`
	NewTopic    string `json:"new_topic" binding:"max=200"`
}

type RoomResponse struct {
	ID          uint                `json:"id"`
	Name        string              `json:"name"`
	Description string              `json:"description"`
	Topic       *TopicResponse      `json:"topic"`
	Host        *PublicUserResponse `json:"host"`
	LikeCount   int64               `json:"like_count"`
	Liked       bool                `json:"liked"`
	CreatedAt   time.Time           `json:"created_at"`
	UpdatedAt   time.Time           `json:"updated_at"`
}

type RoomDetailResponse struct {
	Room         RoomResponse         `json:"room"`
	Messages     []MessageResponse    `json:"messages"`
	Participants []PublicUserResponse `json:"participants"`
	RelatedRooms []RoomResponse       `json:"related_rooms"`
}

func newRoomResponse(room models.Room, likeCounts map[uint]int64, likedIDs map[uint]bool) RoomResponse {
	var topicResponse *TopicResponse
	if room.Topic != nil {
		t := newTopicResponse(*room.Topic)
		topicResponse = &t
	}

	var hostResponse *PublicUserResponse
	if room.Host != nil {
		h := newPublicUserResponse(*room.Host)
		hostResponse = &h
	}

	return RoomResponse{
		ID:          room.ID,
		Name:        room.Name,
		Description: room.Description,
		Topic:       topicResponse,
		Host:        hostResponse,
		LikeCount:   likeCounts[room.ID],
		Liked:       likedIDs[room.ID],
		CreatedAt:   room.CreatedAt,
		UpdatedAt:   room.UpdatedAt,
	}
}

// endregion

// CreateRoom godoc
// @Summary      Create a new room
// @Description  Creates a new room, making the creator the host. The topic is either an existing topic id or a new topic name, which is created on demand.
// @Tags         rooms
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        input body RoomInput true "Room Info"
// @Success      201  {object}  RoomResponse
// @Failure      400  {object}  ErrorResponse "Validation failed"
// @Failure      401  {object}  ErrorResponse
// @Router       /rooms [post]
func CreateRoom(c *gin.Context) {
	userID, _ := c.Get("userID")

	var input RoomInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	topic, err := store.ResolveTopic(database.DB, input.TopicID, input.NewTopic)
	if err != nil {
		switch {
		case errors.Is(err, store.ErrTopicChoice):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, store.ErrNotFound):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Topic not found"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to resolve topic"})
		}
		return
	}

	hostID := userID.(uint)
	room := models.Room{
		HostID:      &hostID,
		TopicID:     &topic.ID,
		Name:        input.Name,
		Description: input.Description,
	}
	if err := database.DB.Create(&room).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create room"})
		return
	}

	database.DB.Preload("Topic").Preload("Host").First(&room, room.ID)
	c.JSON(http.StatusCreated, newRoomResponse(room, nil, nil))
}

// UpdateRoom godoc
// @Summary      Update a room (Host only)
// @Description  Updates a room's name, description and topic. Only the host can perform this action.
// @Tags         rooms
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      int       true  "Room ID"
// @Param        input body      RoomInput true  "New Room Info"
// @Success      200   {object}  RoomResponse
// @Failure      400   {object}  ErrorResponse "Validation failed"
// @Failure      403   {object}  ErrorResponse "Only the host can update the room"
// @Failure      404   {object}  ErrorResponse "Room not found"
// @Router       /rooms/{id} [put]
func UpdateRoom(c *gin.Context) {
	userID, _ := c.Get("userID")
	roomID, _ := strconv.Atoi(c.Param("id"))

	var room models.Room
	if err := database.DB.First(&room, roomID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Room not found"})
		return
	}

	if room.HostID == nil || *room.HostID != userID.(uint) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Only the host can update the room"})
		return
	}

	var input RoomInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	topic, err := store.ResolveTopic(database.DB, input.TopicID, input.NewTopic)
	if err != nil {
		switch {
		case errors.Is(err, store.ErrTopicChoice):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, store.ErrNotFound):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Topic not found"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to resolve topic"})
		}
		return
	}

	room.Name = input.Name
	room.Description = input.Description
	room.TopicID = &topic.ID

	if err := database.DB.Save(&room).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update room"})
		return
	}

	database.DB.Preload("Topic").Preload("Host").First(&room, room.ID)
	c.JSON(http.StatusOK, newRoomResponse(room, nil, nil))
}

// DeleteRoom godoc
// @Summary      Delete a room (Host only)
// @Description  Deletes a room and cascades to its messages and likes. Only the host can perform this action; the destructive step is this DELETE call, never a read.
// @Tags         rooms
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Room ID"
// @Success      200 {object} map[string]string "{"message": "Room deleted"}"
// @Failure      403 {object} ErrorResponse "Only the host can delete the room"
// @Failure      404 {object} ErrorResponse "Room not found"
// @Router       /rooms/{id} [delete]
func DeleteRoom(c *gin.Context) {
	userID, _ := c.Get("userID")
	roomID, _ := strconv.Atoi(c.Param("id"))

	var room models.Room
	if err := database.DB.First(&room, roomID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Room not found"})
		return
	}

	if room.HostID == nil || *room.HostID != userID.(uint) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Only the host can delete the room"})
		return
	}

	if err := store.DeleteRoomCascade(database.DB, &room); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete room"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Room deleted"})
}

// GetRoomByID godoc
// @Summary      Get a room by ID
// @Description  Returns the room, its messages (most recently updated first), its participants, and up to 5 related rooms sharing the same topic. Liked state reflects the caller when authenticated.
// @Tags         rooms
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Room ID"
// @Success      200 {object} RoomDetailResponse
// @Failure      404 {object} ErrorResponse "Room not found"
// @Router       /rooms/{id} [get]
func GetRoomByID(c *gin.Context) {
	roomID, _ := strconv.Atoi(c.Param("id"))

	var room models.Room
	if err := database.DB.Preload("Topic").Preload("Host").Preload("Participants").First(&room, roomID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Room not found"})
		return
	}

	var messages []models.Message
	if err := database.DB.Scopes(store.ByRecency).Preload("User").Where("room_id = ?", room.ID).Find(&messages).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve messages"})
		return
	}

	var relatedRooms []models.Room
	if room.TopicID != nil {
		err := database.DB.Scopes(store.ByRecency).
			Preload("Topic").Preload("Host").
			Where("topic_id = ? AND id <> ?", *room.TopicID, room.ID).
			Limit(5).
			Find(&relatedRooms).Error
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve related rooms"})
			return
		}
	}

	likedRooms := map[uint]bool{}
	likedMessages := map[uint]bool{}
	if userID, ok := c.Get("userID"); ok {
		likedRooms, _ = store.LikedRoomIDs(database.DB, userID.(uint))
		likedMessages, _ = store.LikedMessageIDs(database.DB, userID.(uint))
	}

	roomIDs := []uint{room.ID}
	for _, related := range relatedRooms {
		roomIDs = append(roomIDs, related.ID)
	}
	roomLikeCounts, _ := store.RoomLikeCounts(database.DB, roomIDs)

	messageIDs := make([]uint, 0, len(messages))
	for _, message := range messages {
		messageIDs = append(messageIDs, message.ID)
	}
	messageLikeCounts, _ := store.MessageLikeCounts(database.DB, messageIDs)

	messageResponses := make([]MessageResponse, 0, len(messages))
	for _, message := range messages {
		messageResponses = append(messageResponses, newMessageResponse(message, messageLikeCounts, likedMessages))
	}

	participantResponses := make([]PublicUserResponse, 0, len(room.Participants))
	for _, participant := range room.Participants {
		participantResponses = append(participantResponses, newPublicUserResponse(participant))
	}

	relatedResponses := make([]RoomResponse, 0, len(relatedRooms))
	for _, related := range relatedRooms {
		relatedResponses = append(relatedResponses, newRoomResponse(related, roomLikeCounts, likedRooms))
	}

	c.JSON(http.StatusOK, RoomDetailResponse{
		Room:         newRoomResponse(room, roomLikeCounts, likedRooms),
		Messages:     messageResponses,
		Participants: participantResponses,
		RelatedRooms: relatedResponses,
	})
}
