package database

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/example/vocabtrainer/pkg/models"
)

// TopicProgressRepository handles database operations for topic progress
type TopicProgressRepository struct{}

// NewTopicProgressRepository creates a new repository instance
func NewTopicProgressRepository() *TopicProgressRepository {
	return &TopicProgressRepository{}
}

// Get returns the progress of a topic. A topic without a stored row
// yields a zero-value progress record, not an error.
func (r *TopicProgressRepository) Get(topicID string) (*models.TopicProgress, error) {
	query := "SELECT * FROM topic_progress WHERE topic_id = ?"
	if DB.DriverName() == "postgres" {
		query = "SELECT * FROM topic_progress WHERE topic_id = $1"
	}

	var progress models.TopicProgress
	err := DB.Get(&progress, query, topicID)
	if err == sql.ErrNoRows {
		return &models.TopicProgress{TopicID: topicID}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get topic progress: %v", err)
	}
	return &progress, nil
}

// GetAll returns the progress of every started topic
func (r *TopicProgressRepository) GetAll() ([]models.TopicProgress, error) {
	var progress []models.TopicProgress
	err := DB.Select(&progress, "SELECT * FROM topic_progress ORDER BY topic_id")
	if err != nil {
		return nil, fmt.Errorf("failed to get topic progress: %v", err)
	}
	return progress, nil
}

// Initialize records the total word count of a topic. The first nonzero
// write wins: calling it again for an initialized topic is a no-op.
func (r *TopicProgressRepository) Initialize(topicID string, totalWords int, now time.Time) error {
	query := `
		INSERT INTO topic_progress (topic_id, total_words, learned_words, percentage, last_studied)
		VALUES (?, ?, 0, 0, ?)
		ON CONFLICT(topic_id) DO UPDATE SET total_words = excluded.total_words
		WHERE topic_progress.total_words = 0
	`
	if DB.DriverName() == "postgres" {
		query = `
			INSERT INTO topic_progress (topic_id, total_words, learned_words, percentage, last_studied)
			VALUES ($1, $2, 0, 0, $3)
			ON CONFLICT(topic_id) DO UPDATE SET total_words = EXCLUDED.total_words
			WHERE topic_progress.total_words = 0
		`
	}

	_, err := DB.Exec(query, topicID, totalWords, now)
	if err != nil {
		return fmt.Errorf("failed to initialize topic progress: %v", err)
	}
	return nil
}

// Touch updates the learned-word counters of a topic and stamps it as
// studied now.
func (r *TopicProgressRepository) Touch(topicID string, learnedWords, percentage int, now time.Time) error {
	query := `
		UPDATE topic_progress SET
			learned_words = ?,
			percentage = ?,
			last_studied = ?
		WHERE topic_id = ?
	`
	if DB.DriverName() == "postgres" {
		query = `
			UPDATE topic_progress SET
				learned_words = $1,
				percentage = $2,
				last_studied = $3
			WHERE topic_id = $4
		`
	}

	_, err := DB.Exec(query, learnedWords, percentage, now, topicID)
	if err != nil {
		return fmt.Errorf("failed to update topic progress: %v", err)
	}
	return nil
}
