package models

import "gorm.io/gorm"

// Profile is the one-to-one extension of a User. It holds only a reference
// to the display photo; the file itself lives with the storage collaborator.
// Created lazily on first access if the user has none.
type Profile struct {
	gorm.Model
	UserID uint   `gorm:"uniqueIndex;not null"`
	Photo  string `gorm:"size:512"`

	User User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
}
