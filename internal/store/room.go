package store

import (
	"roomhub/backend/internal/models"

	"gorm.io/gorm"
)

// ByRecency orders a listing most-recently-updated first, ties broken by
// most-recently-created. This is the default ordering for rooms and messages.
func ByRecency(db *gorm.DB) *gorm.DB {
	return db.Order("updated_at DESC, created_at DESC")
}

// DeleteRoomCascade removes a room together with its messages, message likes,
// room likes and participant rows, all in one transaction.
func DeleteRoomCascade(db *gorm.DB, room *models.Room) error {
	return db.Transaction(func(tx *gorm.DB) error {
		messageIDs := tx.Model(&models.Message{}).Where("room_id = ?", room.ID).Select("id")
		if err := tx.Where("message_id IN (?)", messageIDs).Delete(&models.MessageLike{}).Error; err != nil {
			return err
		}
		if err := tx.Where("room_id = ?", room.ID).Delete(&models.Message{}).Error; err != nil {
			return err
		}
		if err := tx.Where("room_id = ?", room.ID).Delete(&models.RoomLike{}).Error; err != nil {
			return err
		}
		if err := tx.Model(room).Association("Participants").Clear(); err != nil {
			return err
		}
		return tx.Delete(room).Error
	})
}

// DeleteMessageCascade removes a message together with its likes.
func DeleteMessageCascade(db *gorm.DB, message *models.Message) error {
	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("message_id = ?", message.ID).Delete(&models.MessageLike{}).Error; err != nil {
			return err
		}
		return tx.Delete(message).Error
	})
}

// CreateMessage inserts a message and adds its author to the room's
// participant set in the same transaction. The participant add is an
// idempotent set-add: posting again does not duplicate the row.
func CreateMessage(db *gorm.DB, room *models.Room, user *models.User, body string) (*models.Message, error) {
	message := models.Message{
		UserID: user.ID,
		RoomID: room.ID,
		Body:   body,
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&message).Error; err != nil {
			return err
		}
		return tx.Model(room).Association("Participants").Append(user)
	})
	if err != nil {
		return nil, err
	}

	return &message, nil
}
