package models

import "database/sql"

// TopicProgress tracks how much of a topic's vocabulary has been learned
type TopicProgress struct {
	TopicID      string       `json:"topic_id" db:"topic_id"`
	TotalWords   int          `json:"total_words" db:"total_words"`
	LearnedWords int          `json:"learned_words" db:"learned_words"`
	Percentage   int          `json:"percentage" db:"percentage"` // 0-100
	LastStudied  sql.NullTime `json:"last_studied" db:"last_studied"`
}
