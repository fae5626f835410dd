package database

import (
	"math"
	"sort"
	"time"

	"github.com/example/vocabtrainer/pkg/models"
)

// RecentResultsKept caps how many quiz results are stored per topic.
const RecentResultsKept = 10

// ProgressStore is the persistence facade of the engine: per-topic word
// counts, learned-word records and quiz history, plus the aggregate
// statistics derived from them. All counters are recomputed from stored
// state on read, never cached.
type ProgressStore struct {
	progress *TopicProgressRepository
	learned  *LearnedWordRepository
	results  *QuizResultRepository
}

// NewProgressStore creates a store over the connected database
func NewProgressStore() *ProgressStore {
	return &ProgressStore{
		progress: NewTopicProgressRepository(),
		learned:  NewLearnedWordRepository(),
		results:  NewQuizResultRepository(),
	}
}

// InitializeTopic records a topic's total word count once. Repeated
// calls for an already-initialized topic are no-ops.
func (s *ProgressStore) InitializeTopic(topicID string, totalWords int) error {
	return s.progress.Initialize(topicID, totalWords, time.Now())
}

// MarkWordLearned records a learn or review event for an entry. A new
// entry gets a record with review count one; an existing one has its
// review count incremented and review time stamped. The topic's learned
// percentage is recomputed either way.
func (s *ProgressStore) MarkWordLearned(topicID string, entry models.VocabularyEntry) error {
	now := time.Now()

	existing, err := s.learned.Get(topicID, entry.English, entry.Vietnamese)
	if err != nil {
		return err
	}
	if existing == nil {
		word := &models.LearnedWord{
			TopicID:    topicID,
			English:    entry.English,
			Vietnamese: entry.Vietnamese,
			LearnedAt:  now,
		}
		if err := s.learned.Create(word); err != nil {
			return err
		}
	} else {
		if err := s.learned.MarkReviewed(topicID, entry.English, entry.Vietnamese, now); err != nil {
			return err
		}
	}

	return s.recomputeTopic(topicID, now)
}

// recomputeTopic refreshes a topic's learned counter and percentage
func (s *ProgressStore) recomputeTopic(topicID string, now time.Time) error {
	learnedCount, err := s.learned.CountByTopic(topicID)
	if err != nil {
		return err
	}
	progress, err := s.progress.Get(topicID)
	if err != nil {
		return err
	}

	percentage := 0
	if progress.TotalWords > 0 {
		percentage = int(math.Round(float64(learnedCount) / float64(progress.TotalWords) * 100))
	}
	return s.progress.Touch(topicID, learnedCount, percentage, now)
}

// SaveQuizResult appends a quiz result to the topic's history, trimming
// it to the most recent RecentResultsKept entries.
func (s *ProgressStore) SaveQuizResult(result *models.QuizResult) error {
	if result.CompletedAt.IsZero() {
		result.CompletedAt = time.Now()
	}
	if result.Percentage == 0 && result.TotalQuestions > 0 {
		result.Percentage = int(math.Round(float64(result.Score) / float64(result.TotalQuestions) * 100))
	}

	if err := s.results.Create(result); err != nil {
		return err
	}
	return s.results.Trim(result.TopicID, RecentResultsKept)
}

// GetTopicProgress returns a topic's progress record
func (s *ProgressStore) GetTopicProgress(topicID string) (*models.TopicProgress, error) {
	return s.progress.Get(topicID)
}

// GetLearnedWords returns the learned words of a topic
func (s *ProgressStore) GetLearnedWords(topicID string) ([]models.LearnedWord, error) {
	return s.learned.GetByTopic(topicID)
}

// AllLearnedWords returns every learned word across topics
func (s *ProgressStore) AllLearnedWords() ([]models.LearnedWord, error) {
	return s.learned.GetAll()
}

// GetQuizResults returns a topic's stored quiz results, most recent first
func (s *ProgressStore) GetQuizResults(topicID string) ([]models.QuizResult, error) {
	return s.results.GetByTopic(topicID)
}

// GetAggregateStats recomputes the overall statistics from the full
// stored state.
func (s *ProgressStore) GetAggregateStats() (*models.UserStats, error) {
	topics, err := s.progress.GetAll()
	if err != nil {
		return nil, err
	}

	stats := &models.UserStats{TopicsStarted: len(topics)}
	var lastActivity time.Time
	for _, t := range topics {
		stats.TotalWords += t.TotalWords
		stats.TotalLearnedWords += t.LearnedWords
		if t.LastStudied.Valid && t.LastStudied.Time.After(lastActivity) {
			lastActivity = t.LastStudied.Time
		}
	}
	if !lastActivity.IsZero() {
		stats.LastActivity = &lastActivity
	}

	quizzes, questions, correct, err := s.results.Totals()
	if err != nil {
		return nil, err
	}
	stats.TotalQuizzes = quizzes
	if questions > 0 {
		stats.AverageScore = int(math.Round(float64(correct) / float64(questions) * 100))
	}
	if stats.TotalWords > 0 {
		stats.OverallProgress = int(math.Round(float64(stats.TotalLearnedWords) / float64(stats.TotalWords) * 100))
	}

	streak, err := s.CalculateStreakAt(time.Now())
	if err != nil {
		return nil, err
	}
	stats.StreakDays = streak

	return stats, nil
}

// CalculateStreak counts consecutive calendar days with study activity,
// ending today or yesterday.
func (s *ProgressStore) CalculateStreak() (int, error) {
	return s.CalculateStreakAt(time.Now())
}

// CalculateStreakAt computes the streak relative to the given moment.
// The streak is the run of consecutive distinct study days counted
// backward from the most recent one, and it only counts at all when
// that day is now's date or the day before.
func (s *ProgressStore) CalculateStreakAt(now time.Time) (int, error) {
	topics, err := s.progress.GetAll()
	if err != nil {
		return 0, err
	}

	seen := make(map[time.Time]bool)
	var days []time.Time
	for _, t := range topics {
		if !t.LastStudied.Valid {
			continue
		}
		day := dayOf(t.LastStudied.Time.In(now.Location()))
		if !seen[day] {
			seen[day] = true
			days = append(days, day)
		}
	}
	if len(days) == 0 {
		return 0, nil
	}

	// Most recent day first
	sort.Slice(days, func(i, j int) bool { return days[i].After(days[j]) })

	today := dayOf(now)
	yesterday := today.AddDate(0, 0, -1)
	if !days[0].Equal(today) && !days[0].Equal(yesterday) {
		return 0, nil
	}

	streak := 1
	for i := 1; i < len(days); i++ {
		if days[i-1].AddDate(0, 0, -1).Equal(days[i]) {
			streak++
		} else {
			break
		}
	}
	return streak, nil
}

// ResetAll wipes every stored progress record
func (s *ProgressStore) ResetAll() error {
	for _, table := range []string{"learned_words", "quiz_results", "topic_progress"} {
		if _, err := DB.Exec("DELETE FROM " + table); err != nil {
			return err
		}
	}
	return nil
}

func dayOf(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, t.Location())
}
