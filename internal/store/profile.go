package store

import (
	"errors"
	"roomhub/backend/internal/models"

	"gorm.io/gorm"
)

// GetOrCreateProfile returns the user's profile, creating an empty one on
// first access. A racing create loses to the (user_id) unique index and
// re-reads the winner's row.
func GetOrCreateProfile(db *gorm.DB, userID uint) (*models.Profile, error) {
	var profile models.Profile

	err := db.Where("user_id = ?", userID).First(&profile).Error
	if err == nil {
		return &profile, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	profile = models.Profile{UserID: userID}
	err = db.Create(&profile).Error
	if err == nil {
		return &profile, nil
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		profile = models.Profile{}
		if err := db.Where("user_id = ?", userID).First(&profile).Error; err != nil {
			return nil, err
		}
		return &profile, nil
	}

	return nil, err
}
