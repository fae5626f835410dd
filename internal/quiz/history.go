package quiz

import (
	"github.com/example/vocabtrainer/pkg/models"
)

// DefaultHistoryCapacity bounds how many used entries are remembered per topic.
const DefaultHistoryCapacity = 1000

// UsageStats reports how full a topic's question history is
type UsageStats struct {
	Used     int `json:"used"`
	Capacity int `json:"capacity"`
}

// Tracker remembers which vocabulary entries were recently turned into
// questions so immediate repeats are avoided. State is per topic key and
// bounded: on overflow the oldest-inserted entry is evicted, and when a
// topic runs low on unused entries its whole history is wiped so quiz
// generation always has material to work with.
//
// A Tracker is not safe for concurrent use; the engine runs a single
// quiz session at a time.
type Tracker struct {
	capacity int
	topics   map[string]*topicHistory
}

type topicHistory struct {
	used  map[string]bool
	order []string // insertion order, oldest first
}

// NewTracker creates a tracker. A non-positive capacity selects the default.
func NewTracker(capacity int) *Tracker {
	if capacity <= 0 {
		capacity = DefaultHistoryCapacity
	}
	return &Tracker{
		capacity: capacity,
		topics:   make(map[string]*topicHistory),
	}
}

// HasBeenUsed reports whether the entry was already used for this topic.
func (t *Tracker) HasBeenUsed(topic, key string) bool {
	h, ok := t.topics[topic]
	return ok && h.used[key]
}

// MarkUsed records an entry as used for a topic, evicting the
// oldest-inserted entry when the capacity is exceeded.
func (t *Tracker) MarkUsed(topic, key string) {
	h, ok := t.topics[topic]
	if !ok {
		h = &topicHistory{used: make(map[string]bool)}
		t.topics[topic] = h
	}
	if h.used[key] {
		return
	}
	h.used[key] = true
	h.order = append(h.order, key)

	if len(h.order) > t.capacity {
		oldest := h.order[0]
		h.order = h.order[1:]
		delete(h.used, oldest)
	}
}

// Clear wipes the history of one topic.
func (t *Tracker) Clear(topic string) {
	delete(t.topics, topic)
}

// ClearAll wipes the history of every topic.
func (t *Tracker) ClearAll() {
	t.topics = make(map[string]*topicHistory)
}

// UsageStats returns how many entries are marked used for a topic.
func (t *Tracker) UsageStats(topic string) UsageStats {
	stats := UsageStats{Capacity: t.capacity}
	if h, ok := t.topics[topic]; ok {
		stats.Used = len(h.order)
	}
	return stats
}

// Unused returns the candidates not yet used for the topic. When fewer
// than max(requested, half the pool) remain, the topic history is reset
// and the full candidate set becomes eligible again.
func (t *Tracker) Unused(topic string, candidates []models.VocabularyEntry, requested int) []models.VocabularyEntry {
	unused := make([]models.VocabularyEntry, 0, len(candidates))
	for _, e := range candidates {
		if !t.HasBeenUsed(topic, e.Key()) {
			unused = append(unused, e)
		}
	}

	threshold := requested
	if half := len(candidates) / 2; half > threshold {
		threshold = half
	}
	if len(unused) < threshold {
		t.Clear(topic)
		unused = unused[:0]
		unused = append(unused, candidates...)
	}
	return unused
}
