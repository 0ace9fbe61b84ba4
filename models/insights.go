package models

// ContextInsights is the per-turn, read-only projection of a student's
// history used to steer response generation.
type ContextInsights struct {
	IsFollowUp               bool          `json:"is_follow_up"`
	HasAskedSimilar          bool          `json:"has_asked_similar"`
	SimilarQuestions         []ScoredEntry `json:"similar_questions"`
	SuggestedNextTopics      []string      `json:"suggested_next_topics"`
	DifficultyRecommendation string        `json:"difficulty_recommendation"`
	QuestionComplexity       string        `json:"question_complexity"`
	LearningPattern          string        `json:"learning_pattern"`
	ConceptualGaps           []string      `json:"conceptual_gaps"`
	PreviousMisconceptions   []string      `json:"previous_misconceptions"`
	RecommendedApproach      string        `json:"recommended_approach"`
	CurrentTopics            []string      `json:"current_topics"`
}
