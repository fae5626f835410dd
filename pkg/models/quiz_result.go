package models

import "time"

// QuizResult records the outcome of one completed quiz
type QuizResult struct {
	ID             int64     `json:"id" db:"id"`
	TopicID        string    `json:"topic_id" db:"topic_id"`
	QuizType       string    `json:"quiz_type" db:"quiz_type"`
	Score          int       `json:"score" db:"score"` // number of correct answers
	TotalQuestions int       `json:"total_questions" db:"total_questions"`
	Percentage     int       `json:"percentage" db:"percentage"`
	TimeSpent      int       `json:"time_spent" db:"time_spent"` // seconds
	CompletedAt    time.Time `json:"completed_at" db:"completed_at"`
}
