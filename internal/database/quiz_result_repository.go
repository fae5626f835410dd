package database

import (
	"fmt"

	"github.com/example/vocabtrainer/pkg/models"
)

// QuizResultRepository handles database operations for quiz results
type QuizResultRepository struct{}

// NewQuizResultRepository creates a new repository instance
func NewQuizResultRepository() *QuizResultRepository {
	return &QuizResultRepository{}
}

// Create inserts a new quiz result
func (r *QuizResultRepository) Create(result *models.QuizResult) error {
	query := `
		INSERT INTO quiz_results (topic_id, quiz_type, score, total_questions, percentage, time_spent, completed_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`
	if DB.DriverName() == "postgres" {
		query = `
			INSERT INTO quiz_results (topic_id, quiz_type, score, total_questions, percentage, time_spent, completed_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
		`
	}

	_, err := DB.Exec(query,
		result.TopicID,
		result.QuizType,
		result.Score,
		result.TotalQuestions,
		result.Percentage,
		result.TimeSpent,
		result.CompletedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create quiz result: %v", err)
	}
	return nil
}

// GetByTopic returns a topic's quiz results, most recent first
func (r *QuizResultRepository) GetByTopic(topicID string) ([]models.QuizResult, error) {
	query := "SELECT * FROM quiz_results WHERE topic_id = ? ORDER BY completed_at DESC, id DESC"
	if DB.DriverName() == "postgres" {
		query = "SELECT * FROM quiz_results WHERE topic_id = $1 ORDER BY completed_at DESC, id DESC"
	}

	var results []models.QuizResult
	err := DB.Select(&results, query, topicID)
	if err != nil {
		return nil, fmt.Errorf("failed to get quiz results: %v", err)
	}
	return results, nil
}

// Trim drops all but the most recent keep results of a topic
func (r *QuizResultRepository) Trim(topicID string, keep int) error {
	query := `
		DELETE FROM quiz_results
		WHERE topic_id = ? AND id NOT IN (
			SELECT id FROM quiz_results
			WHERE topic_id = ?
			ORDER BY completed_at DESC, id DESC
			LIMIT ?
		)
	`
	if DB.DriverName() == "postgres" {
		query = `
			DELETE FROM quiz_results
			WHERE topic_id = $1 AND id NOT IN (
				SELECT id FROM quiz_results
				WHERE topic_id = $2
				ORDER BY completed_at DESC, id DESC
				LIMIT $3
			)
		`
	}

	_, err := DB.Exec(query, topicID, topicID, keep)
	if err != nil {
		return fmt.Errorf("failed to trim quiz results: %v", err)
	}
	return nil
}

// Totals sums quiz counters across all topics
func (r *QuizResultRepository) Totals() (quizzes, questions, correct int, err error) {
	err = DB.QueryRow(`
		SELECT COUNT(*), COALESCE(SUM(total_questions), 0), COALESCE(SUM(score), 0)
		FROM quiz_results
	`).Scan(&quizzes, &questions, &correct)
	if err != nil {
		return 0, 0, 0, fmt.Errorf("failed to get quiz totals: %v", err)
	}
	return quizzes, questions, correct, nil
}
