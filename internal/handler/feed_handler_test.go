package handler

import (
	"net/http"
	"net/url"
	"testing"

	"roomhub/backend/internal/database"
	"roomhub/backend/internal/models"
	"roomhub/backend/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSearchMatchesNameDescriptionAndTopic(t *testing.T) {
	router := setupTest(t)
	alice := testutil.CreateUser(t, database.DB, "alice", "alice@example.com", "password123")
	games := testutil.CreateTopic(t, database.DB, "Games")
	music := testutil.CreateTopic(t, database.DB, "Music")
	testutil.CreateRoom(t, database.DB, alice, games, "Chess Club", "for nerds")
	testutil.CreateRoom(t, database.DB, alice, music, "Jazz Night", "smooth sounds")

	for _, q := range []string{"chess", "NERDS", "games"} {
		res := doRequest(t, router, http.MethodGet, "/api/v1/feed?q="+url.QueryEscape(q), nil, "")
		requireStatus(t, res, http.StatusOK)
		feed := decodeJSON[FeedResponse](t, res)

		require.Len(t, feed.Rooms, 1, "query %q", q)
		assert.Equal(t, "Chess Club", feed.Rooms[0].Name, "query %q", q)
		assert.EqualValues(t, 1, feed.RoomCount, "query %q", q)
	}
}

func TestSearchEmptyQueryMatchesEverything(t *testing.T) {
	router := setupTest(t)
	alice := testutil.CreateUser(t, database.DB, "alice", "alice@example.com", "password123")
	games := testutil.CreateTopic(t, database.DB, "Games")
	music := testutil.CreateTopic(t, database.DB, "Music")
	testutil.CreateRoom(t, database.DB, alice, games, "Chess Club", "for nerds")
	testutil.CreateRoom(t, database.DB, alice, music, "Jazz Night", "")

	res := doRequest(t, router, http.MethodGet, "/api/v1/feed", nil, "")
	requireStatus(t, res, http.StatusOK)
	feed := decodeJSON[FeedResponse](t, res)

	assert.Len(t, feed.Rooms, 2)
	assert.EqualValues(t, 2, feed.RoomCount)
}

func TestFeedTopicsAreUnfiltered(t *testing.T) {
	router := setupTest(t)
	alice := testutil.CreateUser(t, database.DB, "alice", "alice@example.com", "password123")
	games := testutil.CreateTopic(t, database.DB, "Games")
	testutil.CreateTopic(t, database.DB, "Music")
	testutil.CreateRoom(t, database.DB, alice, games, "Chess Club", "")

	res := doRequest(t, router, http.MethodGet, "/api/v1/feed?q=chess", nil, "")
	requireStatus(t, res, http.StatusOK)
	feed := decodeJSON[FeedResponse](t, res)

	// The topic sidebar ignores the search query.
	assert.Len(t, feed.Topics, 2)
}

func TestFeedMessagesFilterByTopicNameOnly(t *testing.T) {
	router := setupTest(t)
	alice := testutil.CreateUser(t, database.DB, "alice", "alice@example.com", "password123")
	games := testutil.CreateTopic(t, database.DB, "Games")
	music := testutil.CreateTopic(t, database.DB, "Music")
	chess := testutil.CreateRoom(t, database.DB, alice, games, "Chess Club", "for nerds")
	jazz := testutil.CreateRoom(t, database.DB, alice, music, "Jazz Night", "")
	testutil.CreateMessage(t, database.DB, alice, chess, "knight to f3")
	testutil.CreateMessage(t, database.DB, alice, jazz, "great vibes")

	// "chess" matches the room by name, but no topic is named "chess", so
	// the activity feed stays empty.
	res := doRequest(t, router, http.MethodGet, "/api/v1/feed?q=chess", nil, "")
	requireStatus(t, res, http.StatusOK)
	feed := decodeJSON[FeedResponse](t, res)
	require.Len(t, feed.Rooms, 1)
	assert.Empty(t, feed.Messages)

	res = doRequest(t, router, http.MethodGet, "/api/v1/feed?q=games", nil, "")
	requireStatus(t, res, http.StatusOK)
	feed = decodeJSON[FeedResponse](t, res)
	require.Len(t, feed.Messages, 1)
	assert.Equal(t, "knight to f3", feed.Messages[0].Body)
	assert.Equal(t, "Chess Club", feed.Messages[0].RoomName)
}

func TestFeedLikedRoomsForCaller(t *testing.T) {
	router := setupTest(t)
	alice := testutil.CreateUser(t, database.DB, "alice", "alice@example.com", "password123")
	bob := testutil.CreateUser(t, database.DB, "bob", "bob@example.com", "password123")
	games := testutil.CreateTopic(t, database.DB, "Games")
	chess := testutil.CreateRoom(t, database.DB, alice, games, "Chess Club", "")
	testutil.CreateRoom(t, database.DB, alice, games, "Go Club", "")

	require.NoError(t, database.DB.Create(&models.RoomLike{UserID: bob.ID, RoomID: chess.ID}).Error)

	res := doRequest(t, router, http.MethodGet, "/api/v1/feed", nil, bearerToken(t, bob))
	requireStatus(t, res, http.StatusOK)
	feed := decodeJSON[FeedResponse](t, res)

	require.Len(t, feed.Rooms, 2)
	for _, room := range feed.Rooms {
		if room.ID == chess.ID {
			assert.True(t, room.Liked)
			assert.EqualValues(t, 1, room.LikeCount)
		} else {
			assert.False(t, room.Liked)
		}
	}

	// Anonymous callers get an empty liked set.
	res = doRequest(t, router, http.MethodGet, "/api/v1/feed", nil, "")
	requireStatus(t, res, http.StatusOK)
	feed = decodeJSON[FeedResponse](t, res)
	for _, room := range feed.Rooms {
		assert.False(t, room.Liked)
	}
}

func TestFeedOrdersRoomsByRecency(t *testing.T) {
	router := setupTest(t)
	alice := testutil.CreateUser(t, database.DB, "alice", "alice@example.com", "password123")
	games := testutil.CreateTopic(t, database.DB, "Games")
	first := testutil.CreateRoom(t, database.DB, alice, games, "Chess Club", "")
	testutil.CreateRoom(t, database.DB, alice, games, "Go Club", "")

	// Updating the older room bumps it to the top.
	require.NoError(t, database.DB.Model(first).Update("description", "for nerds").Error)

	res := doRequest(t, router, http.MethodGet, "/api/v1/feed", nil, "")
	requireStatus(t, res, http.StatusOK)
	feed := decodeJSON[FeedResponse](t, res)

	require.Len(t, feed.Rooms, 2)
	assert.Equal(t, "Chess Club", feed.Rooms[0].Name)
}
