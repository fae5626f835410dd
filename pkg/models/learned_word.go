package models

import (
	"database/sql"
	"time"
)

// LearnedWord tracks a word the user has marked as learned within a topic
type LearnedWord struct {
	ID           int64        `json:"id" db:"id"`
	TopicID      string       `json:"topic_id" db:"topic_id"`
	English      string       `json:"english" db:"english"`
	Vietnamese   string       `json:"vietnamese" db:"vietnamese"`
	LearnedAt    time.Time    `json:"learned_at" db:"learned_at"`
	LastReviewed sql.NullTime `json:"last_reviewed" db:"last_reviewed"`
	ReviewCount  int          `json:"review_count" db:"review_count"` // >= 1
	// Difficulty is derived from ReviewCount when building a review
	// session; it is not stored.
	Difficulty string `json:"difficulty,omitempty" db:"-"`
}

// ReviewedAt returns the timestamp the next review interval counts from:
// the last review if there was one, the learn date otherwise.
func (w LearnedWord) ReviewedAt() time.Time {
	if w.LastReviewed.Valid {
		return w.LastReviewed.Time
	}
	return w.LearnedAt
}
