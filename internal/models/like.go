package models

import "time"

// RoomLike marks a user's like of a room, unique per (user, room). The
// composite unique index is the race backstop for concurrent toggles. Likes
// are hard-deleted so a pair can be re-created after an unlike.
type RoomLike struct {
	ID        uint `gorm:"primarykey"`
	CreatedAt time.Time

	UserID uint `gorm:"not null;uniqueIndex:idx_room_like_user_room"`
	RoomID uint `gorm:"not null;uniqueIndex:idx_room_like_user_room"`

	User User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Room Room `gorm:"foreignKey:RoomID;constraint:OnDelete:CASCADE"`
}

// MessageLike marks a user's like of a message, unique per (user, message).
type MessageLike struct {
	ID        uint `gorm:"primarykey"`
	CreatedAt time.Time

	UserID    uint `gorm:"not null;uniqueIndex:idx_message_like_user_message"`
	MessageID uint `gorm:"not null;uniqueIndex:idx_message_like_user_message"`

	User    User    `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Message Message `gorm:"foreignKey:MessageID;constraint:OnDelete:CASCADE"`
}
