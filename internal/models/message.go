package models

import "gorm.io/gorm"

// Message is a post inside a room. Deleting the room deletes its messages.
type Message struct {
	gorm.Model
	UserID uint   `gorm:"not null;index"`
	RoomID uint   `gorm:"not null;index"`
	Body   string `gorm:"not null"`

	User User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Room Room `gorm:"foreignKey:RoomID;constraint:OnDelete:CASCADE"`
}
