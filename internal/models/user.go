package models

import "gorm.io/gorm"

// User represents a registered account. Usernames are stored lowercased and
// compared case-insensitively.
type User struct {
	gorm.Model
	Username     string `gorm:"size:150;unique;not null"`
	Email        string `gorm:"size:255;unique;not null"`
	PasswordHash string `gorm:"size:255;not null"`
}
