package store

import (
	"errors"
	"roomhub/backend/internal/models"

	"gorm.io/gorm"
)

// ToggleRoomLike flips the caller's like state for a room and returns the new
// state plus the room's total like count. The (user, room) unique index is
// the backstop for concurrent double-toggles: a duplicate-key error on create
// means another request already liked, and the call reports liked without a
// second row.
func ToggleRoomLike(db *gorm.DB, userID, roomID uint) (bool, int64, error) {
	if err := db.First(&models.Room{}, roomID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, 0, ErrNotFound
		}
		return false, 0, err
	}

	liked := true
	res := db.Where("user_id = ? AND room_id = ?", userID, roomID).Delete(&models.RoomLike{})
	if res.Error != nil {
		return false, 0, res.Error
	}

	if res.RowsAffected > 0 {
		liked = false
	} else {
		like := models.RoomLike{UserID: userID, RoomID: roomID}
		if err := db.Create(&like).Error; err != nil && !errors.Is(err, gorm.ErrDuplicatedKey) {
			return false, 0, err
		}
	}

	var count int64
	if err := db.Model(&models.RoomLike{}).Where("room_id = ?", roomID).Count(&count).Error; err != nil {
		return false, 0, err
	}

	return liked, count, nil
}

// ToggleMessageLike is ToggleRoomLike for messages.
func ToggleMessageLike(db *gorm.DB, userID, messageID uint) (bool, int64, error) {
	if err := db.First(&models.Message{}, messageID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, 0, ErrNotFound
		}
		return false, 0, err
	}

	liked := true
	res := db.Where("user_id = ? AND message_id = ?", userID, messageID).Delete(&models.MessageLike{})
	if res.Error != nil {
		return false, 0, res.Error
	}

	if res.RowsAffected > 0 {
		liked = false
	} else {
		like := models.MessageLike{UserID: userID, MessageID: messageID}
		if err := db.Create(&like).Error; err != nil && !errors.Is(err, gorm.ErrDuplicatedKey) {
			return false, 0, err
		}
	}

	var count int64
	if err := db.Model(&models.MessageLike{}).Where("message_id = ?", messageID).Count(&count).Error; err != nil {
		return false, 0, err
	}

	return liked, count, nil
}

// LikedRoomIDs returns the set of room ids the user has liked, for rendering
// like state without a per-room lookup.
func LikedRoomIDs(db *gorm.DB, userID uint) (map[uint]bool, error) {
	var ids []uint
	if err := db.Model(&models.RoomLike{}).Where("user_id = ?", userID).Pluck("room_id", &ids).Error; err != nil {
		return nil, err
	}

	set := make(map[uint]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	return set, nil
}

// LikedMessageIDs returns the set of message ids the user has liked.
func LikedMessageIDs(db *gorm.DB, userID uint) (map[uint]bool, error) {
	var ids []uint
	if err := db.Model(&models.MessageLike{}).Where("user_id = ?", userID).Pluck("message_id", &ids).Error; err != nil {
		return nil, err
	}

	set := make(map[uint]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	return set, nil
}

// RoomLikeCounts returns like counts per room id for the given rooms.
func RoomLikeCounts(db *gorm.DB, roomIDs []uint) (map[uint]int64, error) {
	counts := make(map[uint]int64, len(roomIDs))
	if len(roomIDs) == 0 {
		return counts, nil
	}

	var rows []struct {
		RoomID uint
		Total  int64
	}
	err := db.Model(&models.RoomLike{}).
		Select("room_id, COUNT(*) AS total").
		Where("room_id IN ?", roomIDs).
		Group("room_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	for _, row := range rows {
		counts[row.RoomID] = row.Total
	}
	return counts, nil
}

// MessageLikeCounts returns like counts per message id for the given messages.
func MessageLikeCounts(db *gorm.DB, messageIDs []uint) (map[uint]int64, error) {
	counts := make(map[uint]int64, len(messageIDs))
	if len(messageIDs) == 0 {
		return counts, nil
	}

	var rows []struct {
		MessageID uint
		Total     int64
	}
	err := db.Model(&models.MessageLike{}).
		Select("message_id, COUNT(*) AS total").
		Where("message_id IN ?", messageIDs).
		Group("message_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	for _, row := range rows {
		counts[row.MessageID] = row.Total
	}
	return counts, nil
}
