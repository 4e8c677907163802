package models

import "gorm.io/gorm"

// Topic is a uniquely-named category label for rooms. Topics are created on
// demand when a room names a new one.
type Topic struct {
	gorm.Model
	Name string `gorm:"size:200;unique;not null"`
}
