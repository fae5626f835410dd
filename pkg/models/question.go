package models

// QuestionKind represents the different kinds of quiz questions
type QuestionKind string

const (
	// Translation asks for the Vietnamese meaning of an English word
	Translation QuestionKind = "translation"
	// ReverseTranslation asks for the English word given the Vietnamese meaning
	ReverseTranslation QuestionKind = "reverse_translation"
	// FillBlank asks to complete a sentence with the English word
	FillBlank QuestionKind = "fill_blank"
	// Pronunciation asks for the phonetic transcription of an English word
	Pronunciation QuestionKind = "pronunciation"
	// Mixed is a request type only: questions are split across the other kinds
	Mixed QuestionKind = "mixed"
)

// Option is one of the four answers offered for a question
type Option struct {
	ID        string `json:"id"` // "a".."d"
	Text      string `json:"text"`
	IsCorrect bool   `json:"isCorrect"`
}

// Question is a single multiple-choice quiz question. Exactly one
// option has IsCorrect set.
type Question struct {
	ID       int          `json:"id"`
	Type     QuestionKind `json:"type"`
	Prompt   string       `json:"question"`
	PromptVi string       `json:"questionVi"`
	Options  []Option     `json:"options"`
	// CompleteSentence is the filled-in sentence for fill-blank questions,
	// kept for reference and audio playback.
	CompleteSentence string `json:"completeSentence,omitempty"`
	Pronunciation    string `json:"pronunciation,omitempty"`
	WordType         string `json:"wordType,omitempty"`
	TopicLabel       string `json:"topicLabel,omitempty"`
}

// CorrectOption returns the correct option of the question.
func (q Question) CorrectOption() Option {
	for _, o := range q.Options {
		if o.IsCorrect {
			return o
		}
	}
	return Option{}
}
