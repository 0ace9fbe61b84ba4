package models

import "time"

const (
	SessionActive = "active"
)

// SessionRecord is the durable metadata for one tutoring session.
type SessionRecord struct {
	ID              string    `json:"id"`
	Subject         string    `json:"subject"`
	StartTime       time.Time `json:"start_time"`
	LastActivity    time.Time `json:"last_activity"`
	InitialQuestion string    `json:"initial_question"`
	QuestionCount   int       `json:"question_count"`
	TopicsCovered   []string  `json:"topics_covered"`
	State           string    `json:"state"`
}
