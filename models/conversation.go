package models

import "time"

type EntryMetadata struct {
	Topics       []string          `json:"topics"`
	Difficulty   string            `json:"difficulty"`
	QuestionType string            `json:"question_type"`
	Extra        map[string]string `json:"extra,omitempty"`
}

// ConversationEntry is one completed tutoring turn. Entries are append-only
// and never mutated after creation.
type ConversationEntry struct {
	ID               string        `json:"id"`
	SessionID        string        `json:"session_id"`
	Subject          string        `json:"subject"`
	Question         string        `json:"question"`
	OriginalQuestion string        `json:"original_question"`
	Answer           string        `json:"answer"`
	ResponseType     string        `json:"response_type"`
	Timestamp        time.Time     `json:"timestamp"`
	Metadata         EntryMetadata `json:"metadata"`
}

// ScoredEntry pairs a history entry with its similarity to a query question.
type ScoredEntry struct {
	Entry      *ConversationEntry `json:"entry"`
	Similarity float64            `json:"similarity"`
}
