package models

import "time"

type TopicProgress struct {
	Count     int       `json:"count"`
	LastAsked time.Time `json:"last_asked"`
}

type DifficultyProgression struct {
	Easy   int `json:"easy"`
	Medium int `json:"medium"`
	Hard   int `json:"hard"`
}

// LearningProgress accumulates per-subject study activity.
type LearningProgress struct {
	TotalQuestions        int                       `json:"total_questions"`
	TopicsCovered         map[string]*TopicProgress `json:"topics_covered"`
	DifficultyProgression DifficultyProgression     `json:"difficulty_progression"`
	LastActivity          time.Time                 `json:"last_activity"`
}
