package models

// VocabularyEntry represents one vocabulary item supplied by a topic data file.
// Identity is the (English, Vietnamese) pair.
type VocabularyEntry struct {
	English       string `json:"english"`
	Vietnamese    string `json:"vietnamese"`
	Pronunciation string `json:"pronunciation,omitempty"`
	Type          string `json:"type,omitempty"`
	// Topic is filled only when entries from several topics are
	// aggregated into one pool.
	Topic string `json:"topic,omitempty"`
}

// Key returns the identity of the entry within its topic.
func (e VocabularyEntry) Key() string {
	return e.English + "|" + e.Vietnamese
}
