package handler

import (
	"fmt"
	"net/http"
	"testing"

	"roomhub/backend/internal/database"
	"roomhub/backend/internal/models"
	"roomhub/backend/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestCreateRoomWithNewTopic(t *testing.T) {
	router := setupTest(t)
	alice := testutil.CreateUser(t, database.DB, "alice", "alice@example.com", "password123")

	res := doRequest(t, router, http.MethodPost, "/api/v1/rooms", RoomInput{
		Name:     "Jazz Night",
		NewTopic: "Music",
	}, bearerToken(t, alice))
	requireStatus(t, res, http.StatusCreated)

	room := decodeJSON[RoomResponse](t, res)
	require.NotNil(t, room.Topic)
	assert.Equal(t, "Music", room.Topic.Name)
	require.NotNil(t, room.Host)
	assert.Equal(t, alice.ID, room.Host.ID)

	// Creating a second room with the same new topic reuses it.
	res = doRequest(t, router, http.MethodPost, "/api/v1/rooms", RoomInput{
		Name:     "Blues Corner",
		NewTopic: "Music",
	}, bearerToken(t, alice))
	requireStatus(t, res, http.StatusCreated)

	var count int64
	require.NoError(t, database.DB.Model(&models.Topic{}).Where("name = ?", "Music").Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestCreateRoomTopicChoiceValidation(t *testing.T) {
	router := setupTest(t)
	alice := testutil.CreateUser(t, database.DB, "alice", "alice@example.com", "password123")
	topic := testutil.CreateTopic(t, database.DB, "Music")

	res := doRequest(t, router, http.MethodPost, "/api/v1/rooms", RoomInput{
		Name: "Jazz Night",
	}, bearerToken(t, alice))
	requireStatus(t, res, http.StatusBadRequest)

	res = doRequest(t, router, http.MethodPost, "/api/v1/rooms", RoomInput{
		Name:     "Jazz Night",
		TopicID:  &topic.ID,
		NewTopic: "Chess",
	}, bearerToken(t, alice))
	requireStatus(t, res, http.StatusBadRequest)
}

func TestCreateRoomRequiresAuth(t *testing.T) {
	router := setupTest(t)

	res := doRequest(t, router, http.MethodPost, "/api/v1/rooms", RoomInput{
		Name:     "Jazz Night",
		NewTopic: "Music",
	}, "")
	requireStatus(t, res, http.StatusUnauthorized)
}

func TestUpdateRoomOwnership(t *testing.T) {
	router := setupTest(t)
	alice := testutil.CreateUser(t, database.DB, "alice", "alice@example.com", "password123")
	bob := testutil.CreateUser(t, database.DB, "bob", "bob@example.com", "password123")
	topic := testutil.CreateTopic(t, database.DB, "Music")
	room := testutil.CreateRoom(t, database.DB, alice, topic, "Jazz Night", "")

	input := RoomInput{Name: "Jazz & Blues", TopicID: &topic.ID, Description: "smooth"}

	res := doRequest(t, router, http.MethodPut, fmt.Sprintf("/api/v1/rooms/%d", room.ID), input, bearerToken(t, bob))
	requireStatus(t, res, http.StatusForbidden)

	res = doRequest(t, router, http.MethodPut, fmt.Sprintf("/api/v1/rooms/%d", room.ID), input, bearerToken(t, alice))
	requireStatus(t, res, http.StatusOK)

	updated := decodeJSON[RoomResponse](t, res)
	assert.Equal(t, "Jazz & Blues", updated.Name)
	assert.Equal(t, "smooth", updated.Description)
}

func TestUpdateRoomRerunsTopicResolution(t *testing.T) {
	router := setupTest(t)
	alice := testutil.CreateUser(t, database.DB, "alice", "alice@example.com", "password123")
	topic := testutil.CreateTopic(t, database.DB, "Music")
	room := testutil.CreateRoom(t, database.DB, alice, topic, "Jazz Night", "")

	res := doRequest(t, router, http.MethodPut, fmt.Sprintf("/api/v1/rooms/%d", room.ID), RoomInput{
		Name:     "Jazz Night",
		NewTopic: "Live Music",
	}, bearerToken(t, alice))
	requireStatus(t, res, http.StatusOK)

	updated := decodeJSON[RoomResponse](t, res)
	require.NotNil(t, updated.Topic)
	assert.Equal(t, "Live Music", updated.Topic.Name)
}

func TestDeleteRoomOwnershipAndCascade(t *testing.T) {
	router := setupTest(t)
	alice := testutil.CreateUser(t, database.DB, "alice", "alice@example.com", "password123")
	bob := testutil.CreateUser(t, database.DB, "bob", "bob@example.com", "password123")
	room := testutil.CreateRoom(t, database.DB, alice, nil, "Jazz Night", "")
	testutil.CreateMessage(t, database.DB, bob, room, "great vibes")
	require.NoError(t, database.DB.Create(&models.RoomLike{UserID: bob.ID, RoomID: room.ID}).Error)

	res := doRequest(t, router, http.MethodDelete, fmt.Sprintf("/api/v1/rooms/%d", room.ID), nil, bearerToken(t, bob))
	requireStatus(t, res, http.StatusForbidden)

	res = doRequest(t, router, http.MethodDelete, fmt.Sprintf("/api/v1/rooms/%d", room.ID), nil, bearerToken(t, alice))
	requireStatus(t, res, http.StatusOK)

	err := database.DB.First(&models.Room{}, room.ID).Error
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	var count int64
	require.NoError(t, database.DB.Model(&models.Message{}).Where("room_id = ?", room.ID).Count(&count).Error)
	assert.EqualValues(t, 0, count)
	require.NoError(t, database.DB.Model(&models.RoomLike{}).Where("room_id = ?", room.ID).Count(&count).Error)
	assert.EqualValues(t, 0, count)
}

func TestGetRoomByIDNotFound(t *testing.T) {
	router := setupTest(t)

	res := doRequest(t, router, http.MethodGet, "/api/v1/rooms/42", nil, "")
	requireStatus(t, res, http.StatusNotFound)
}

func TestGetRoomByIDDetail(t *testing.T) {
	router := setupTest(t)
	alice := testutil.CreateUser(t, database.DB, "alice", "alice@example.com", "password123")
	bob := testutil.CreateUser(t, database.DB, "bob", "bob@example.com", "password123")
	music := testutil.CreateTopic(t, database.DB, "Music")
	games := testutil.CreateTopic(t, database.DB, "Games")

	room := testutil.CreateRoom(t, database.DB, alice, music, "Jazz Night", "")
	testutil.CreateMessage(t, database.DB, bob, room, "great vibes")
	require.NoError(t, database.DB.Model(room).Association("Participants").Append(bob))

	// Six sibling rooms under the same topic: only five come back, and the
	// room under another topic never shows up.
	for i := 0; i < 6; i++ {
		testutil.CreateRoom(t, database.DB, alice, music, fmt.Sprintf("Music Room %d", i), "")
	}
	testutil.CreateRoom(t, database.DB, alice, games, "Chess Club", "")

	res := doRequest(t, router, http.MethodGet, fmt.Sprintf("/api/v1/rooms/%d", room.ID), nil, "")
	requireStatus(t, res, http.StatusOK)

	detail := decodeJSON[RoomDetailResponse](t, res)
	assert.Equal(t, room.ID, detail.Room.ID)
	require.Len(t, detail.Messages, 1)
	assert.Equal(t, "great vibes", detail.Messages[0].Body)
	require.Len(t, detail.Participants, 1)
	assert.Equal(t, "bob", detail.Participants[0].Username)

	require.Len(t, detail.RelatedRooms, 5)
	for _, related := range detail.RelatedRooms {
		assert.NotEqual(t, room.ID, related.ID)
		require.NotNil(t, related.Topic)
		assert.Equal(t, "Music", related.Topic.Name)
	}
}

func TestGetRoomByIDLikedState(t *testing.T) {
	router := setupTest(t)
	alice := testutil.CreateUser(t, database.DB, "alice", "alice@example.com", "password123")
	room := testutil.CreateRoom(t, database.DB, alice, nil, "Jazz Night", "")
	message := testutil.CreateMessage(t, database.DB, alice, room, "great vibes")

	require.NoError(t, database.DB.Create(&models.RoomLike{UserID: alice.ID, RoomID: room.ID}).Error)
	require.NoError(t, database.DB.Create(&models.MessageLike{UserID: alice.ID, MessageID: message.ID}).Error)

	// Anonymous callers see counts but no liked state.
	res := doRequest(t, router, http.MethodGet, fmt.Sprintf("/api/v1/rooms/%d", room.ID), nil, "")
	requireStatus(t, res, http.StatusOK)
	detail := decodeJSON[RoomDetailResponse](t, res)
	assert.False(t, detail.Room.Liked)
	assert.EqualValues(t, 1, detail.Room.LikeCount)
	require.Len(t, detail.Messages, 1)
	assert.False(t, detail.Messages[0].Liked)

	res = doRequest(t, router, http.MethodGet, fmt.Sprintf("/api/v1/rooms/%d", room.ID), nil, bearerToken(t, alice))
	requireStatus(t, res, http.StatusOK)
	detail = decodeJSON[RoomDetailResponse](t, res)
	assert.True(t, detail.Room.Liked)
	require.Len(t, detail.Messages, 1)
	assert.True(t, detail.Messages[0].Liked)
	assert.EqualValues(t, 1, detail.Messages[0].LikeCount)
}

func TestPostMessageAddsParticipant(t *testing.T) {
	router := setupTest(t)
	alice := testutil.CreateUser(t, database.DB, "alice", "alice@example.com", "password123")
	bob := testutil.CreateUser(t, database.DB, "bob", "bob@example.com", "password123")
	room := testutil.CreateRoom(t, database.DB, alice, nil, "Jazz Night", "")

	res := doRequest(t, router, http.MethodPost, fmt.Sprintf("/api/v1/rooms/%d/messages", room.ID), MessageInput{
		Body: "great vibes",
	}, bearerToken(t, bob))
	requireStatus(t, res, http.StatusCreated)

	message := decodeJSON[MessageResponse](t, res)
	assert.Equal(t, "great vibes", message.Body)
	require.NotNil(t, message.User)
	assert.Equal(t, "bob", message.User.Username)

	var participants []models.User
	require.NoError(t, database.DB.Model(room).Association("Participants").Find(&participants))
	require.Len(t, participants, 1)
	assert.Equal(t, bob.ID, participants[0].ID)
}

func TestPostMessageValidation(t *testing.T) {
	router := setupTest(t)
	alice := testutil.CreateUser(t, database.DB, "alice", "alice@example.com", "password123")
	room := testutil.CreateRoom(t, database.DB, alice, nil, "Jazz Night", "")

	res := doRequest(t, router, http.MethodPost, fmt.Sprintf("/api/v1/rooms/%d/messages", room.ID), MessageInput{}, bearerToken(t, alice))
	requireStatus(t, res, http.StatusBadRequest)

	res = doRequest(t, router, http.MethodPost, "/api/v1/rooms/42/messages", MessageInput{Body: "hi"}, bearerToken(t, alice))
	requireStatus(t, res, http.StatusNotFound)

	res = doRequest(t, router, http.MethodPost, fmt.Sprintf("/api/v1/rooms/%d/messages", room.ID), MessageInput{Body: "hi"}, "")
	requireStatus(t, res, http.StatusUnauthorized)
}

func TestDeleteMessageOwnership(t *testing.T) {
	router := setupTest(t)
	alice := testutil.CreateUser(t, database.DB, "alice", "alice@example.com", "password123")
	bob := testutil.CreateUser(t, database.DB, "bob", "bob@example.com", "password123")
	room := testutil.CreateRoom(t, database.DB, alice, nil, "Jazz Night", "")
	message := testutil.CreateMessage(t, database.DB, bob, room, "great vibes")

	res := doRequest(t, router, http.MethodDelete, fmt.Sprintf("/api/v1/messages/%d", message.ID), nil, bearerToken(t, alice))
	requireStatus(t, res, http.StatusForbidden)

	res = doRequest(t, router, http.MethodDelete, fmt.Sprintf("/api/v1/messages/%d", message.ID), nil, bearerToken(t, bob))
	requireStatus(t, res, http.StatusOK)

	err := database.DB.First(&models.Message{}, message.ID).Error
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
