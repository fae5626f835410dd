package database

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/example/vocabtrainer/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *ProgressStore {
	t.Helper()
	t.Setenv("DATABASE_URL", "")
	t.Setenv("DATABASE_PATH", filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, Connect())
	t.Cleanup(func() { Close() })
	return NewProgressStore()
}

func entry(english, vietnamese string) models.VocabularyEntry {
	return models.VocabularyEntry{English: english, Vietnamese: vietnamese}
}

func TestInitializeTopicIsIdempotent(t *testing.T) {
	store := newTestStore(t)

	require.NoError(t, store.InitializeTopic("animals", 25))

	// A second initialization must not overwrite the first count.
	require.NoError(t, store.InitializeTopic("animals", 99))

	progress, err := store.GetTopicProgress("animals")
	require.NoError(t, err)
	assert.Equal(t, 25, progress.TotalWords)
	assert.Equal(t, 0, progress.LearnedWords)
	assert.True(t, progress.LastStudied.Valid)
}

func TestGetTopicProgressUnknownTopic(t *testing.T) {
	store := newTestStore(t)

	progress, err := store.GetTopicProgress("nope")
	require.NoError(t, err)
	assert.Equal(t, "nope", progress.TopicID)
	assert.Equal(t, 0, progress.TotalWords)
	assert.Equal(t, 0, progress.Percentage)
	assert.False(t, progress.LastStudied.Valid)
}

func TestMarkWordLearned(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, store.InitializeTopic("animals", 4))

	require.NoError(t, store.MarkWordLearned("animals", entry("cat", "mèo")))

	words, err := store.GetLearnedWords("animals")
	require.NoError(t, err)
	require.Len(t, words, 1)
	assert.Equal(t, "cat", words[0].English)
	assert.Equal(t, 1, words[0].ReviewCount)
	assert.False(t, words[0].LastReviewed.Valid)

	progress, err := store.GetTopicProgress("animals")
	require.NoError(t, err)
	assert.Equal(t, 1, progress.LearnedWords)
	assert.Equal(t, 25, progress.Percentage)
}

func TestMarkWordLearnedTwiceCountsAsReview(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, store.InitializeTopic("animals", 4))

	require.NoError(t, store.MarkWordLearned("animals", entry("cat", "mèo")))
	require.NoError(t, store.MarkWordLearned("animals", entry("cat", "mèo")))

	words, err := store.GetLearnedWords("animals")
	require.NoError(t, err)
	require.Len(t, words, 1, "repeat learns must not duplicate the word")
	assert.Equal(t, 2, words[0].ReviewCount)
	assert.True(t, words[0].LastReviewed.Valid)

	progress, err := store.GetTopicProgress("animals")
	require.NoError(t, err)
	assert.Equal(t, 1, progress.LearnedWords)
}

func TestMarkWordLearnedPercentageRounds(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, store.InitializeTopic("animals", 3))

	require.NoError(t, store.MarkWordLearned("animals", entry("cat", "mèo")))
	progress, err := store.GetTopicProgress("animals")
	require.NoError(t, err)
	assert.Equal(t, 33, progress.Percentage)

	require.NoError(t, store.MarkWordLearned("animals", entry("dog", "chó")))
	progress, err = store.GetTopicProgress("animals")
	require.NoError(t, err)
	assert.Equal(t, 67, progress.Percentage)
}

func TestSaveQuizResultComputesPercentage(t *testing.T) {
	store := newTestStore(t)

	result := &models.QuizResult{
		TopicID:        "animals",
		QuizType:       "translation",
		Score:          7,
		TotalQuestions: 10,
		TimeSpent:      92,
	}
	require.NoError(t, store.SaveQuizResult(result))

	results, err := store.GetQuizResults("animals")
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, 70, results[0].Percentage)
	assert.False(t, results[0].CompletedAt.IsZero())
}

func TestSaveQuizResultKeepsMostRecentTen(t *testing.T) {
	store := newTestStore(t)
	base := time.Date(2025, 1, 1, 9, 0, 0, 0, time.UTC)

	for i := 0; i < 15; i++ {
		result := &models.QuizResult{
			TopicID:        "animals",
			QuizType:       "mixed",
			Score:          i,
			TotalQuestions: 20,
			CompletedAt:    base.AddDate(0, 0, i),
		}
		require.NoError(t, store.SaveQuizResult(result))
	}
	// Another topic's history must not count against the cap.
	require.NoError(t, store.SaveQuizResult(&models.QuizResult{
		TopicID: "food", QuizType: "mixed", Score: 5, TotalQuestions: 5, CompletedAt: base,
	}))

	results, err := store.GetQuizResults("animals")
	require.NoError(t, err)
	require.Len(t, results, RecentResultsKept)
	assert.Equal(t, 14, results[0].Score, "most recent result first")
	assert.Equal(t, 5, results[len(results)-1].Score, "oldest five dropped")

	other, err := store.GetQuizResults("food")
	require.NoError(t, err)
	assert.Len(t, other, 1)
}

func TestCalculateStreak(t *testing.T) {
	day := func(d int) time.Time {
		return time.Date(2025, 1, d, 10, 0, 0, 0, time.UTC)
	}

	t.Run("consecutive days ending today", func(t *testing.T) {
		store := newTestStore(t)
		for i, topic := range []string{"animals", "food", "travel"} {
			require.NoError(t, store.InitializeTopic(topic, 10))
			require.NoError(t, store.progress.Touch(topic, 1, 10, day(1+i)))
		}

		streak, err := store.CalculateStreakAt(day(3))
		require.NoError(t, err)
		assert.Equal(t, 3, streak)
	})

	t.Run("still counts when last study was yesterday", func(t *testing.T) {
		store := newTestStore(t)
		for i, topic := range []string{"animals", "food"} {
			require.NoError(t, store.InitializeTopic(topic, 10))
			require.NoError(t, store.progress.Touch(topic, 1, 10, day(1+i)))
		}

		streak, err := store.CalculateStreakAt(day(3))
		require.NoError(t, err)
		assert.Equal(t, 2, streak)
	})

	t.Run("broken after a missed day", func(t *testing.T) {
		store := newTestStore(t)
		for i, topic := range []string{"animals", "food", "travel"} {
			require.NoError(t, store.InitializeTopic(topic, 10))
			require.NoError(t, store.progress.Touch(topic, 1, 10, day(1+i)))
		}

		streak, err := store.CalculateStreakAt(day(5))
		require.NoError(t, err)
		assert.Equal(t, 0, streak)
	})

	t.Run("gap in history ends the run", func(t *testing.T) {
		store := newTestStore(t)
		for topic, d := range map[string]int{"animals": 1, "food": 4, "travel": 5} {
			require.NoError(t, store.InitializeTopic(topic, 10))
			require.NoError(t, store.progress.Touch(topic, 1, 10, day(d)))
		}

		streak, err := store.CalculateStreakAt(day(5))
		require.NoError(t, err)
		assert.Equal(t, 2, streak)
	})

	t.Run("same day touched twice counts once", func(t *testing.T) {
		store := newTestStore(t)
		for i, topic := range []string{"animals", "food"} {
			require.NoError(t, store.InitializeTopic(topic, 10))
			require.NoError(t, store.progress.Touch(topic, 1, 10, day(2).Add(time.Duration(i)*time.Hour)))
		}

		streak, err := store.CalculateStreakAt(day(2))
		require.NoError(t, err)
		assert.Equal(t, 1, streak)
	})

	t.Run("no activity at all", func(t *testing.T) {
		store := newTestStore(t)
		streak, err := store.CalculateStreakAt(day(1))
		require.NoError(t, err)
		assert.Equal(t, 0, streak)
	})
}

func TestGetAggregateStats(t *testing.T) {
	store := newTestStore(t)

	require.NoError(t, store.InitializeTopic("animals", 10))
	require.NoError(t, store.InitializeTopic("food", 10))
	require.NoError(t, store.MarkWordLearned("animals", entry("cat", "mèo")))
	require.NoError(t, store.MarkWordLearned("animals", entry("dog", "chó")))
	require.NoError(t, store.MarkWordLearned("food", entry("rice", "cơm")))

	require.NoError(t, store.SaveQuizResult(&models.QuizResult{
		TopicID: "animals", QuizType: "mixed", Score: 8, TotalQuestions: 10,
	}))
	require.NoError(t, store.SaveQuizResult(&models.QuizResult{
		TopicID: "food", QuizType: "translation", Score: 4, TotalQuestions: 10,
	}))

	stats, err := store.GetAggregateStats()
	require.NoError(t, err)
	assert.Equal(t, 20, stats.TotalWords)
	assert.Equal(t, 3, stats.TotalLearnedWords)
	assert.Equal(t, 2, stats.TopicsStarted)
	assert.Equal(t, 2, stats.TotalQuizzes)
	assert.Equal(t, 60, stats.AverageScore, "12 of 20 answers correct")
	assert.Equal(t, 15, stats.OverallProgress, "3 of 20 words learned")
	require.NotNil(t, stats.LastActivity)
	assert.GreaterOrEqual(t, stats.StreakDays, 1, "studied today")
}

func TestStatsSurviveReload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.db")
	t.Setenv("DATABASE_URL", "")
	t.Setenv("DATABASE_PATH", path)

	require.NoError(t, Connect())
	store := NewProgressStore()
	require.NoError(t, store.InitializeTopic("animals", 5))
	require.NoError(t, store.MarkWordLearned("animals", entry("cat", "mèo")))
	require.NoError(t, store.SaveQuizResult(&models.QuizResult{
		TopicID: "animals", QuizType: "mixed", Score: 3, TotalQuestions: 5,
	}))
	require.NoError(t, Close())

	require.NoError(t, Connect())
	t.Cleanup(func() { Close() })
	store = NewProgressStore()

	progress, err := store.GetTopicProgress("animals")
	require.NoError(t, err)
	assert.Equal(t, 5, progress.TotalWords)
	assert.Equal(t, 1, progress.LearnedWords)
	assert.Equal(t, 20, progress.Percentage)

	results, err := store.GetQuizResults("animals")
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, 60, results[0].Percentage)
}

func TestResetAll(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, store.InitializeTopic("animals", 5))
	require.NoError(t, store.MarkWordLearned("animals", entry("cat", "mèo")))
	require.NoError(t, store.SaveQuizResult(&models.QuizResult{
		TopicID: "animals", QuizType: "mixed", Score: 3, TotalQuestions: 5,
	}))

	require.NoError(t, store.ResetAll())

	stats, err := store.GetAggregateStats()
	require.NoError(t, err)
	assert.Equal(t, 0, stats.TotalWords)
	assert.Equal(t, 0, stats.TotalQuizzes)
	assert.Equal(t, 0, stats.StreakDays)

	words, err := store.GetLearnedWords("animals")
	require.NoError(t, err)
	assert.Empty(t, words)
}
