package spaced_repetition

import (
	"sort"
	"time"

	"github.com/example/vocabtrainer/pkg/models"
)

// Difficulty bands derived from the review count. The bands overlap on
// purpose: a word with three reviews matches both hard and medium. This
// mirrors the product's observed behavior and is kept as-is.
const (
	DifficultyHard   = "hard"   // reviewCount <= 3
	DifficultyMedium = "medium" // 2 <= reviewCount <= 4
	DifficultyEasy   = "easy"   // reviewCount >= 4
)

// maxIntervalIndex caps the interval lookup: every review past the
// sixth reuses the longest interval.
const maxIntervalIndex = 6

// Scheduler decides when learned words come up for review using a fixed
// interval table indexed by review count. There is no adaptive
// difficulty estimation; the table is the whole algorithm.
type Scheduler struct {
	// Intervals in days, indexed by min(reviewCount, 6).
	Intervals map[int]int
}

// NewScheduler creates a scheduler with the default interval table.
func NewScheduler() *Scheduler {
	return &Scheduler{
		Intervals: map[int]int{
			1: 1,
			2: 3,
			3: 7,
			4: 14,
			5: 30,
			6: 90,
		},
	}
}

// NextReviewDate returns when the word is next due: the last review (or
// the learn date if it was never reviewed) plus the table interval.
func (s *Scheduler) NextReviewDate(word models.LearnedWord) time.Time {
	index := word.ReviewCount
	if index < 1 {
		index = 1
	}
	if index > maxIntervalIndex {
		index = maxIntervalIndex
	}
	return word.ReviewedAt().AddDate(0, 0, s.Intervals[index])
}

// IsDue reports whether the word's next review date has passed.
func (s *Scheduler) IsDue(word models.LearnedWord, now time.Time) bool {
	return !now.Before(s.NextReviewDate(word))
}

// DueWords returns the subset of words currently due for review.
func (s *Scheduler) DueWords(words []models.LearnedWord, now time.Time) []models.LearnedWord {
	due := make([]models.LearnedWord, 0, len(words))
	for _, w := range words {
		if s.IsDue(w, now) {
			due = append(due, w)
		}
	}
	return due
}

// SelectForReview builds a review session: words reviewed at least
// minDays ago, optionally restricted to a difficulty band, ordered with
// the most overdue first. An empty difficulty matches every word.
func (s *Scheduler) SelectForReview(words []models.LearnedWord, now time.Time, minDays int, difficulty string) []models.LearnedWord {
	selected := make([]models.LearnedWord, 0, len(words))
	for _, w := range words {
		days := daysSince(w.ReviewedAt(), now)
		if days < minDays {
			continue
		}
		if !matchesDifficulty(w.ReviewCount, difficulty) {
			continue
		}
		w.Difficulty = difficultyFor(w.ReviewCount)
		selected = append(selected, w)
	}

	sort.SliceStable(selected, func(i, j int) bool {
		return daysSince(selected[i].ReviewedAt(), now) > daysSince(selected[j].ReviewedAt(), now)
	})
	return selected
}

// matchesDifficulty applies the band inequalities. The bands are not a
// partition; a review count can satisfy more than one of them.
func matchesDifficulty(reviewCount int, difficulty string) bool {
	switch difficulty {
	case DifficultyHard:
		return reviewCount <= 3
	case DifficultyMedium:
		return reviewCount >= 2 && reviewCount <= 4
	case DifficultyEasy:
		return reviewCount >= 4
	default:
		return true
	}
}

// difficultyFor labels a word for display. Where bands overlap the
// harder label wins.
func difficultyFor(reviewCount int) string {
	switch {
	case reviewCount <= 3:
		return DifficultyHard
	case reviewCount <= 4:
		return DifficultyMedium
	default:
		return DifficultyEasy
	}
}

func daysSince(t, now time.Time) int {
	return int(now.Sub(t) / (24 * time.Hour))
}
