package quiz

import (
	"math"
	"math/rand"
	"time"

	"github.com/example/vocabtrainer/internal/vocabulary"
	"github.com/example/vocabtrainer/pkg/models"
)

const (
	// distractorCount is the number of wrong options per question.
	distractorCount = 3
	// AllTopicsKey is the history-tracker key used for quizzes drawing
	// from every topic at once.
	AllTopicsKey = "all"
	// maxAllTopicsQuestions caps the default size of an all-topics quiz.
	maxAllTopicsQuestions = 100
	// questionsPerTopic sets the default all-topics quota per topic.
	questionsPerTopic = 5
)

// mixProportion describes how a mixed quiz is split across question
// kinds. Pronunciation absorbs whatever the other kinds leave over.
type mixProportion struct {
	translation float64
	reverse     float64
	fillBlank   float64
}

// Proportion tiers by requested quiz size. Translation is always
// weighted highest and pronunciation lowest.
func mixProportionFor(count int) mixProportion {
	switch {
	case count <= 5:
		return mixProportion{translation: 0.6, reverse: 0.2, fillBlank: 0.2}
	case count <= 15:
		return mixProportion{translation: 0.4, reverse: 0.3, fillBlank: 0.2}
	default:
		return mixProportion{translation: 0.35, reverse: 0.25, fillBlank: 0.2}
	}
}

// Composer assembles multiple-choice quizzes from vocabulary entries.
// It owns the question history tracker and the random source, so a
// fresh Composer per test gives deterministic, isolated runs.
type Composer struct {
	source  vocabulary.Source
	tracker *Tracker
	rnd     *rand.Rand
}

// NewComposer creates a composer over a vocabulary source. A nil tracker
// gets a fresh one with the default capacity; a nil random source is
// seeded from the clock.
func NewComposer(source vocabulary.Source, tracker *Tracker, rnd *rand.Rand) *Composer {
	if tracker == nil {
		tracker = NewTracker(0)
	}
	if rnd == nil {
		rnd = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Composer{source: source, tracker: tracker, rnd: rnd}
}

// ClearHistory resets the question history for one topic, or for every
// topic when the all-topics key is given.
func (c *Composer) ClearHistory(topicKey string) {
	if topicKey == AllTopicsKey {
		c.tracker.ClearAll()
		return
	}
	c.tracker.Clear(topicKey)
}

// UsageStats reports the question-history usage for a topic.
func (c *Composer) UsageStats(topicKey string) UsageStats {
	return c.tracker.UsageStats(topicKey)
}

// ComposeQuiz builds a quiz of the requested kind from the candidate
// entries. The distractor pool may be wider than the candidates, e.g.
// the union of all topics. The result is globally shuffled, truncated
// to count and renumbered 1..N. An empty candidate set yields an empty
// quiz, never an error.
func (c *Composer) ComposeQuiz(entries []models.VocabularyEntry, kind models.QuestionKind, count int, pool []models.VocabularyEntry, topicKey string) []models.Question {
	if len(entries) == 0 || count <= 0 {
		return []models.Question{}
	}
	if len(pool) == 0 {
		pool = entries
	}

	var questions []models.Question
	if kind == models.Mixed {
		questions = c.buildMixed(entries, count, pool, topicKey)
	} else {
		questions = c.buildQuestions(kind, entries, count, pool, topicKey)
	}

	c.rnd.Shuffle(len(questions), func(i, j int) {
		questions[i], questions[j] = questions[j], questions[i]
	})
	if len(questions) > count {
		questions = questions[:count]
	}
	for i := range questions {
		questions[i].ID = i + 1
	}
	if questions == nil {
		questions = []models.Question{}
	}
	return questions
}

// buildMixed splits the requested count across the four kinds using the
// size-tier proportions and builds each share.
func (c *Composer) buildMixed(entries []models.VocabularyEntry, count int, pool []models.VocabularyEntry, topicKey string) []models.Question {
	p := mixProportionFor(count)

	translationCount := int(math.Ceil(float64(count) * p.translation))
	reverseCount := int(math.Ceil(float64(count) * p.reverse))
	fillBlankCount := int(math.Ceil(float64(count) * p.fillBlank))
	pronunciationCount := count - translationCount - reverseCount - fillBlankCount
	if pronunciationCount < 0 {
		pronunciationCount = 0
	}

	var questions []models.Question
	questions = append(questions, c.buildQuestions(models.Translation, entries, translationCount, pool, topicKey)...)
	questions = append(questions, c.buildQuestions(models.ReverseTranslation, entries, reverseCount, pool, topicKey)...)
	questions = append(questions, c.buildQuestions(models.FillBlank, entries, fillBlankCount, pool, topicKey)...)
	questions = append(questions, c.buildQuestions(models.Pronunciation, entries, pronunciationCount, pool, topicKey)...)
	return questions
}

// ComposeTopic loads one topic from the source and builds a quiz from
// it. Source failures degrade to an empty quiz.
func (c *Composer) ComposeTopic(topicKey string, kind models.QuestionKind, count int) []models.Question {
	entries, err := c.source.Load(topicKey)
	if err != nil || len(entries) == 0 {
		return []models.Question{}
	}
	return c.ComposeQuiz(entries, kind, count, entries, topicKey)
}

// ComposeAllTopics builds a quiz over the union of every topic.
// Questions are spread as evenly as possible across topics, drawing
// preferentially from each topic's unused entries; any shortfall is
// filled by uniform sampling over the rest of the union. Distractors
// may come from any topic.
func (c *Composer) ComposeAllTopics(kind models.QuestionKind, count int) []models.Question {
	topics, err := c.source.Topics()
	if err != nil || len(topics) == 0 {
		return []models.Question{}
	}

	byTopic := make(map[string][]models.VocabularyEntry, len(topics))
	var union []models.VocabularyEntry
	var loaded []string
	for _, topic := range topics {
		entries, err := c.source.Load(topic)
		if err != nil || len(entries) == 0 {
			continue
		}
		tagged := make([]models.VocabularyEntry, len(entries))
		for i, e := range entries {
			e.Topic = topic
			tagged[i] = e
		}
		byTopic[topic] = tagged
		union = append(union, tagged...)
		loaded = append(loaded, topic)
	}
	if len(union) == 0 {
		return []models.Question{}
	}

	if count <= 0 {
		count = len(loaded) * questionsPerTopic
		if count > maxAllTopicsQuestions {
			count = maxAllTopicsQuestions
		}
	}

	base := count / len(loaded)
	remainder := count % len(loaded)

	selected := make([]models.VocabularyEntry, 0, count)
	taken := make(map[string]bool, count)
	for i, topic := range loaded {
		quota := base
		if i < remainder {
			quota++
		}

		candidates := byTopic[topic]
		unused := make([]models.VocabularyEntry, 0, len(candidates))
		for _, e := range candidates {
			if !c.tracker.HasBeenUsed(topic, e.Key()) {
				unused = append(unused, e)
			}
		}
		if len(unused) == 0 {
			unused = candidates
		}

		for _, e := range c.sample(unused, quota) {
			if taken[e.Key()] {
				continue
			}
			taken[e.Key()] = true
			selected = append(selected, e)
		}
	}

	// Fill up from the untaken remainder of the union when per-topic
	// draws came up short.
	if len(selected) < count {
		var rest []models.VocabularyEntry
		for _, e := range union {
			if !taken[e.Key()] {
				rest = append(rest, e)
			}
		}
		need := count - len(selected)
		selected = append(selected, c.sample(rest, need)...)
	}

	return c.ComposeQuiz(selected, kind, count, union, AllTopicsKey)
}

// sample returns up to n entries drawn without replacement.
func (c *Composer) sample(entries []models.VocabularyEntry, n int) []models.VocabularyEntry {
	if n <= 0 || len(entries) == 0 {
		return nil
	}
	shuffled := make([]models.VocabularyEntry, len(entries))
	copy(shuffled, entries)
	c.rnd.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})
	if len(shuffled) > n {
		shuffled = shuffled[:n]
	}
	return shuffled
}
