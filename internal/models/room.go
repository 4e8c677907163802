package models

import "gorm.io/gorm"

// Room is a discussion thread hosted by one user and tagged with one topic.
// Host and topic are nullable: deleting either leaves the room in place with
// the reference set to NULL.
type Room struct {
	gorm.Model
	HostID      *uint
	TopicID     *uint
	Name        string `gorm:"size:200;not null"`
	Description string

	Host         *User  `gorm:"foreignKey:HostID;constraint:OnDelete:SET NULL"`
	Topic        *Topic `gorm:"foreignKey:TopicID;constraint:OnDelete:SET NULL"`
	Participants []User `gorm:"many2many:room_participants;"`
}
