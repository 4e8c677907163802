package testutil

import (
	"fmt"
	"strings"
	"testing"

	"roomhub/backend/internal/config"
	"roomhub/backend/internal/database"
	"roomhub/backend/internal/models"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewTestDB opens an in-memory sqlite database migrated with the full schema.
// The DSN is derived from the test name so every test gets its own database.
func NewTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	// A single connection keeps the shared-cache memory database free of
	// cross-connection lock errors.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, database.Migrate(db))

	t.Cleanup(func() { _ = sqlDB.Close() })

	return db
}

// SetTestConfig installs a config with a fixed JWT secret for token helpers.
func SetTestConfig() {
	config.AppConfig = &config.Config{JWTSecret: "test-secret", Port: "8080"}
}

// CreateUser inserts a user with a bcrypt-hashed password.
func CreateUser(t *testing.T, db *gorm.DB, username, email, password string) *models.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)

	user := &models.User{
		Username:     strings.ToLower(username),
		Email:        email,
		PasswordHash: string(hash),
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

// CreateRoom inserts a room hosted by the given user under the given topic.
func CreateRoom(t *testing.T, db *gorm.DB, host *models.User, topic *models.Topic, name, description string) *models.Room {
	t.Helper()

	room := &models.Room{
		Name:        name,
		Description: description,
	}
	if host != nil {
		room.HostID = &host.ID
	}
	if topic != nil {
		room.TopicID = &topic.ID
	}
	require.NoError(t, db.Create(room).Error)
	return room
}

// CreateTopic inserts a topic.
func CreateTopic(t *testing.T, db *gorm.DB, name string) *models.Topic {
	t.Helper()

	topic := &models.Topic{Name: name}
	require.NoError(t, db.Create(topic).Error)
	return topic
}

// CreateMessage inserts a message without touching the participant set.
func CreateMessage(t *testing.T, db *gorm.DB, user *models.User, room *models.Room, body string) *models.Message {
	t.Helper()

	message := &models.Message{
		UserID: user.ID,
		RoomID: room.ID,
		Body:   body,
	}
	require.NoError(t, db.Create(message).Error)
	return message
}
