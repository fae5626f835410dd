package quiz

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/example/vocabtrainer/pkg/models"
	"github.com/stretchr/testify/assert"
)

func testEntries(n int) []models.VocabularyEntry {
	entries := make([]models.VocabularyEntry, 0, n)
	for i := 0; i < n; i++ {
		entries = append(entries, models.VocabularyEntry{
			English:       fmt.Sprintf("word%d", i),
			Vietnamese:    fmt.Sprintf("nghia%d", i),
			Pronunciation: fmt.Sprintf("/word%d/", i),
			Type:          "noun",
		})
	}
	return entries
}

func TestSelectDistractors(t *testing.T) {
	tests := []struct {
		name     string
		correct  string
		poolSize int
		count    int
		expected int
	}{
		{
			name:     "full pool yields requested count",
			correct:  "nghia0",
			poolSize: 10,
			count:    3,
			expected: 3,
		},
		{
			name:     "short pool yields fewer",
			correct:  "nghia0",
			poolSize: 3,
			count:    3,
			expected: 2,
		},
		{
			name:     "pool of one yields nothing",
			correct:  "nghia0",
			poolSize: 1,
			count:    3,
			expected: 0,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rnd := rand.New(rand.NewSource(1))
			pool := testEntries(tc.poolSize)

			got := SelectDistractors(rnd, tc.correct, pool, vietnameseField, tc.count)

			assert.Len(t, got, tc.expected)
			seen := make(map[string]bool)
			for _, d := range got {
				assert.NotEqual(t, tc.correct, d)
				assert.False(t, seen[d], "distractor %q returned twice", d)
				seen[d] = true
			}
		})
	}
}

func TestSelectDistractorsNeverReturnsCorrect(t *testing.T) {
	pool := testEntries(5)
	for seed := int64(0); seed < 50; seed++ {
		rnd := rand.New(rand.NewSource(seed))
		for _, e := range pool {
			got := SelectDistractors(rnd, e.Vietnamese, pool, vietnameseField, 3)
			assert.NotContains(t, got, e.Vietnamese)
		}
	}
}

func TestSelectDistractorsSkipsEmptyValues(t *testing.T) {
	rnd := rand.New(rand.NewSource(1))
	pool := []models.VocabularyEntry{
		{English: "cat", Vietnamese: "mèo", Pronunciation: "/kæt/"},
		{English: "dog", Vietnamese: "chó"},
		{English: "fish", Vietnamese: "cá"},
	}

	got := SelectDistractors(rnd, "/kæt/", pool, pronunciationField, 3)
	assert.Empty(t, got)
}
