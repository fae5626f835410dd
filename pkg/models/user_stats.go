package models

import "time"

// UserStats aggregates progress across all topics. It is derived from
// stored state on every request, never persisted.
type UserStats struct {
	TotalWords        int        `json:"total_words"`
	TotalLearnedWords int        `json:"total_learned_words"`
	TotalQuizzes      int        `json:"total_quizzes"`
	AverageScore      int        `json:"average_score"`    // percent over all quiz answers
	OverallProgress   int        `json:"overall_progress"` // percent of words learned
	TopicsStarted     int        `json:"topics_started"`
	LastActivity      *time.Time `json:"last_activity,omitempty"`
	StreakDays        int        `json:"streak_days"`
}
