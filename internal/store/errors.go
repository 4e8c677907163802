package store

import "errors"

var (
	// ErrNotFound means the referenced entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrTopicChoice means the caller supplied both or neither of an
	// existing topic id and a new topic name.
	ErrTopicChoice = errors.New("select an existing topic or enter a new one, not both or neither")
)
