package quiz

import (
	"math/rand"

	"github.com/example/vocabtrainer/pkg/models"
)

// Field extracts the answer text of a vocabulary entry for one question kind.
type Field func(models.VocabularyEntry) string

var (
	englishField       = func(e models.VocabularyEntry) string { return e.English }
	vietnameseField    = func(e models.VocabularyEntry) string { return e.Vietnamese }
	pronunciationField = func(e models.VocabularyEntry) string { return e.Pronunciation }
)

// SelectDistractors picks up to count distinct wrong answers from the pool.
// The correct value itself is never returned. When fewer qualifying values
// exist the result is short; callers substitute placeholder text.
func SelectDistractors(rnd *rand.Rand, correct string, pool []models.VocabularyEntry, field Field, count int) []string {
	seen := make(map[string]bool, len(pool))
	candidates := make([]string, 0, len(pool))
	for _, e := range pool {
		value := field(e)
		if value == "" || value == correct || seen[value] {
			continue
		}
		seen[value] = true
		candidates = append(candidates, value)
	}

	rnd.Shuffle(len(candidates), func(i, j int) {
		candidates[i], candidates[j] = candidates[j], candidates[i]
	})

	if len(candidates) > count {
		candidates = candidates[:count]
	}
	return candidates
}
