package handler

import (
	"net/http"
	"roomhub/backend/internal/database"
	"roomhub/backend/internal/models"

	"github.com/gin-gonic/gin"
)

type TopicResponse struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

func newTopicResponse(topic models.Topic) TopicResponse {
	return TopicResponse{
		ID:   topic.ID,
		Name: topic.Name,
	}
}

// GetTopics godoc
// @Summary      List all topics
// @Description  Retrieves the full topic list for the topic-browse sidebar.
// @Tags         topics
// @Produce      json
// @Success      200  {array}  TopicResponse
// @Router       /topics [get]
func GetTopics(c *gin.Context) {
	var topics []models.Topic
	if err := database.DB.Order("name ASC").Find(&topics).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve topics"})
		return
	}

	response := make([]TopicResponse, 0, len(topics))
	for _, topic := range topics {
		response = append(response, newTopicResponse(topic))
	}
	c.JSON(http.StatusOK, response)
}
