package store

import (
	"errors"
	"roomhub/backend/internal/models"

	"gorm.io/gorm"
)

// ResolveTopic resolves exactly one topic from either an existing topic id
// or a new topic name. Exactly one of the two must be supplied; anything else
// is ErrTopicChoice. A new name is get-or-created: if a concurrent caller
// inserts the same name first, the unique-violation is swallowed and the
// existing row re-read, so two racing callers end up with the same topic.
func ResolveTopic(db *gorm.DB, topicID *uint, newName string) (*models.Topic, error) {
	if (topicID == nil) == (newName == "") {
		return nil, ErrTopicChoice
	}

	var topic models.Topic

	if topicID != nil {
		if err := db.First(&topic, *topicID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrNotFound
			}
			return nil, err
		}
		return &topic, nil
	}

	err := db.Where("name = ?", newName).First(&topic).Error
	if err == nil {
		return &topic, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	topic = models.Topic{Name: newName}
	err = db.Create(&topic).Error
	if err == nil {
		return &topic, nil
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		topic = models.Topic{}
		if err := db.Where("name = ?", newName).First(&topic).Error; err != nil {
			return nil, err
		}
		return &topic, nil
	}

	return nil, err
}
