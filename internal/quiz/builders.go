package quiz

import (
	"fmt"
	"strings"

	"github.com/example/vocabtrainer/pkg/models"
)

// Sentence templates for fill-in-the-blank questions. The blank is
// substituted with the lower-cased English word.
var fillBlankTemplates = []string{
	"I saw a ___ at the zoo.",
	"The ___ is very beautiful.",
	"She likes to eat ___.",
	"My favorite ___ is red.",
	"We need to buy some ___.",
	"The ___ is on the table.",
	"He is wearing a ___ today.",
	"Look at that ___ over there!",
}

// Templates whose blank follows an article, preferred for nouns.
var nounFillBlankTemplates = []string{
	"I saw a ___ at the zoo.",
	"The ___ is very beautiful.",
	"The ___ is on the table.",
	"He is wearing a ___ today.",
}

const blankPlaceholder = "___"

// buildQuestions runs the common builder algorithm for one question kind:
// take unused candidates for the topic, sample the requested count, mark
// them used and emit one question per selected entry.
func (c *Composer) buildQuestions(kind models.QuestionKind, candidates []models.VocabularyEntry, count int, pool []models.VocabularyEntry, topicKey string) []models.Question {
	if kind == models.Pronunciation {
		candidates = withPronunciation(candidates)
		pool = withPronunciation(pool)
	}
	if count <= 0 || len(candidates) == 0 {
		return nil
	}

	selected := c.tracker.Unused(topicKey, candidates, count)
	c.rnd.Shuffle(len(selected), func(i, j int) {
		selected[i], selected[j] = selected[j], selected[i]
	})
	if len(selected) > count {
		selected = selected[:count]
	}

	questions := make([]models.Question, 0, len(selected))
	for i, entry := range selected {
		c.tracker.MarkUsed(topicKey, entry.Key())

		var q models.Question
		switch kind {
		case models.ReverseTranslation:
			q = c.buildReverseTranslation(entry, pool)
		case models.FillBlank:
			q = c.buildFillBlank(entry, pool)
		case models.Pronunciation:
			q = c.buildPronunciation(entry, pool)
		default:
			q = c.buildTranslation(entry, pool)
		}
		q.ID = i + 1
		q.TopicLabel = entry.Topic
		questions = append(questions, q)
	}
	return questions
}

// buildTranslation asks for the Vietnamese meaning of an English word
func (c *Composer) buildTranslation(entry models.VocabularyEntry, pool []models.VocabularyEntry) models.Question {
	distractors := SelectDistractors(c.rnd, entry.Vietnamese, pool, vietnameseField, distractorCount)
	return models.Question{
		Type:          models.Translation,
		Prompt:        fmt.Sprintf("What does %q mean?", entry.English),
		PromptVi:      fmt.Sprintf("%q có nghĩa là gì?", entry.English),
		Options:       c.assembleOptions(entry.Vietnamese, distractors),
		Pronunciation: entry.Pronunciation,
		WordType:      entry.Type,
	}
}

// buildReverseTranslation asks for the English word given the Vietnamese meaning
func (c *Composer) buildReverseTranslation(entry models.VocabularyEntry, pool []models.VocabularyEntry) models.Question {
	distractors := SelectDistractors(c.rnd, entry.English, pool, englishField, distractorCount)
	return models.Question{
		Type:          models.ReverseTranslation,
		Prompt:        fmt.Sprintf("How do you say %q in English?", entry.Vietnamese),
		PromptVi:      fmt.Sprintf("%q trong tiếng Anh là gì?", entry.Vietnamese),
		Options:       c.assembleOptions(entry.English, distractors),
		Pronunciation: entry.Pronunciation,
		WordType:      entry.Type,
	}
}

// buildFillBlank asks to complete a template sentence with the word.
// Options are lower-cased since the word appears mid-sentence.
func (c *Composer) buildFillBlank(entry models.VocabularyEntry, pool []models.VocabularyEntry) models.Question {
	templates := fillBlankTemplates
	if isNoun(entry.Type) {
		templates = nounFillBlankTemplates
	}
	template := templates[c.rnd.Intn(len(templates))]

	word := strings.ToLower(entry.English)
	lowerEnglish := func(e models.VocabularyEntry) string { return strings.ToLower(e.English) }
	distractors := SelectDistractors(c.rnd, word, pool, lowerEnglish, distractorCount)

	return models.Question{
		Type:             models.FillBlank,
		Prompt:           fmt.Sprintf("Complete the sentence: %q", template),
		PromptVi:         fmt.Sprintf("Hoàn thành câu: %q (%s)", template, entry.Vietnamese),
		Options:          c.assembleOptions(word, distractors),
		CompleteSentence: strings.Replace(template, blankPlaceholder, word, 1),
		Pronunciation:    entry.Pronunciation,
		WordType:         entry.Type,
	}
}

// buildPronunciation asks for the phonetic transcription of a word.
// The transcription is the answer, so it is not echoed in the metadata.
func (c *Composer) buildPronunciation(entry models.VocabularyEntry, pool []models.VocabularyEntry) models.Question {
	distractors := SelectDistractors(c.rnd, entry.Pronunciation, pool, pronunciationField, distractorCount)
	return models.Question{
		Type:     models.Pronunciation,
		Prompt:   fmt.Sprintf("How is %q pronounced?", entry.English),
		PromptVi: fmt.Sprintf("%q (%s) được phát âm như thế nào?", entry.English, entry.Vietnamese),
		Options:  c.assembleOptions(entry.Pronunciation, distractors),
		WordType: entry.Type,
	}
}

// assembleOptions shuffles the correct answer with its distractors into
// four lettered options. Short distractor lists are padded with
// placeholder text so a question never has fewer than four options.
func (c *Composer) assembleOptions(correct string, distractors []string) []models.Option {
	for i := len(distractors); i < distractorCount; i++ {
		distractors = append(distractors, strings.Repeat("-", 3+i))
	}

	options := make([]models.Option, 0, distractorCount+1)
	options = append(options, models.Option{Text: correct, IsCorrect: true})
	for _, d := range distractors {
		options = append(options, models.Option{Text: d})
	}

	c.rnd.Shuffle(len(options), func(i, j int) {
		options[i], options[j] = options[j], options[i]
	})
	for i := range options {
		options[i].ID = string(rune('a' + i))
	}
	return options
}

// withPronunciation keeps only entries carrying a phonetic transcription
func withPronunciation(entries []models.VocabularyEntry) []models.VocabularyEntry {
	filtered := make([]models.VocabularyEntry, 0, len(entries))
	for _, e := range entries {
		if e.Pronunciation != "" {
			filtered = append(filtered, e)
		}
	}
	return filtered
}

func isNoun(wordType string) bool {
	t := strings.ToLower(wordType)
	return t == "noun" || t == "n"
}
