package database

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/example/vocabtrainer/pkg/models"
)

// LearnedWordRepository handles database operations for learned words
type LearnedWordRepository struct{}

// NewLearnedWordRepository creates a new repository instance
func NewLearnedWordRepository() *LearnedWordRepository {
	return &LearnedWordRepository{}
}

// Get returns the learned-word record for an entry identity, or nil
// when the word has not been learned yet.
func (r *LearnedWordRepository) Get(topicID, english, vietnamese string) (*models.LearnedWord, error) {
	query := "SELECT * FROM learned_words WHERE topic_id = ? AND english = ? AND vietnamese = ?"
	if DB.DriverName() == "postgres" {
		query = "SELECT * FROM learned_words WHERE topic_id = $1 AND english = $2 AND vietnamese = $3"
	}

	var word models.LearnedWord
	err := DB.Get(&word, query, topicID, english, vietnamese)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get learned word: %v", err)
	}
	return &word, nil
}

// GetByTopic returns all learned words of a topic
func (r *LearnedWordRepository) GetByTopic(topicID string) ([]models.LearnedWord, error) {
	query := "SELECT * FROM learned_words WHERE topic_id = ? ORDER BY learned_at"
	if DB.DriverName() == "postgres" {
		query = "SELECT * FROM learned_words WHERE topic_id = $1 ORDER BY learned_at"
	}

	var words []models.LearnedWord
	err := DB.Select(&words, query, topicID)
	if err != nil {
		return nil, fmt.Errorf("failed to get learned words: %v", err)
	}
	return words, nil
}

// GetAll returns every learned word across all topics
func (r *LearnedWordRepository) GetAll() ([]models.LearnedWord, error) {
	var words []models.LearnedWord
	err := DB.Select(&words, "SELECT * FROM learned_words ORDER BY topic_id, learned_at")
	if err != nil {
		return nil, fmt.Errorf("failed to get learned words: %v", err)
	}
	return words, nil
}

// Create inserts a new learned word with a review count of one
func (r *LearnedWordRepository) Create(word *models.LearnedWord) error {
	query := `
		INSERT INTO learned_words (topic_id, english, vietnamese, learned_at, review_count)
		VALUES (?, ?, ?, ?, 1)
	`
	if DB.DriverName() == "postgres" {
		query = `
			INSERT INTO learned_words (topic_id, english, vietnamese, learned_at, review_count)
			VALUES ($1, $2, $3, $4, 1)
		`
	}

	_, err := DB.Exec(query, word.TopicID, word.English, word.Vietnamese, word.LearnedAt)
	if err != nil {
		return fmt.Errorf("failed to create learned word: %v", err)
	}
	word.ReviewCount = 1
	return nil
}

// MarkReviewed increments the review counter and stamps the review time
func (r *LearnedWordRepository) MarkReviewed(topicID, english, vietnamese string, now time.Time) error {
	query := `
		UPDATE learned_words SET
			review_count = review_count + 1,
			last_reviewed = ?
		WHERE topic_id = ? AND english = ? AND vietnamese = ?
	`
	if DB.DriverName() == "postgres" {
		query = `
			UPDATE learned_words SET
				review_count = review_count + 1,
				last_reviewed = $1
			WHERE topic_id = $2 AND english = $3 AND vietnamese = $4
		`
	}

	_, err := DB.Exec(query, now, topicID, english, vietnamese)
	if err != nil {
		return fmt.Errorf("failed to mark word reviewed: %v", err)
	}
	return nil
}

// CountByTopic returns how many words of a topic have been learned
func (r *LearnedWordRepository) CountByTopic(topicID string) (int, error) {
	query := "SELECT COUNT(*) FROM learned_words WHERE topic_id = ?"
	if DB.DriverName() == "postgres" {
		query = "SELECT COUNT(*) FROM learned_words WHERE topic_id = $1"
	}

	var count int
	err := DB.Get(&count, query, topicID)
	if err != nil {
		return 0, fmt.Errorf("failed to count learned words: %v", err)
	}
	return count, nil
}
