package models

import "time"

type Phase string

const (
	PhaseInitial           Phase = "initial"
	PhaseAnsweredBrief     Phase = "answered_brief"
	PhaseAnsweredDetailed  Phase = "answered_detailed"
	PhaseShowExamples      Phase = "show_examples"
	PhasePracticeProblems  Phase = "practice_problems"
	PhaseShowSolutions     Phase = "show_solutions"
	PhaseSimpleExplanation Phase = "simple_explanation"
	PhaseNewQuestion       Phase = "new_question"
	PhaseAskSpecific       Phase = "ask_specific"
	PhaseQuizStart         Phase = "quiz_start"
	PhaseQuizQuestion      Phase = "quiz_question"
	PhaseQuizFeedback      Phase = "quiz_feedback"
)

// IsQuizPhase reports whether quiz counters are live in this phase.
func (p Phase) IsQuizPhase() bool {
	return p == PhaseQuizStart || p == PhaseQuizQuestion || p == PhaseQuizFeedback
}

type QuizAnswer struct {
	Question  int       `json:"question"`
	Answer    string    `json:"answer"`
	Timestamp time.Time `json:"timestamp"`
}

// QuizState exists only while the session is in a quiz phase.
type QuizState struct {
	CurrentQuestion int          `json:"current_question"`
	TotalQuestions  int          `json:"total_questions"`
	Answers         []QuizAnswer `json:"answers"`
}

// DialogueState tracks where one tutoring session is in the conversation.
// OriginalQuestion is fixed by the first message of the session.
type DialogueState struct {
	SessionID        string     `json:"session_id"`
	Subject          string     `json:"subject"`
	Phase            Phase      `json:"phase"`
	OriginalQuestion string     `json:"original_question"`
	Quiz             *QuizState `json:"quiz,omitempty"`
}

type FollowUpOption struct {
	Text  string `json:"text"`
	Value string `json:"value"`
}
