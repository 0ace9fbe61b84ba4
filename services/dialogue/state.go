package dialogue

import (
	"strings"
	"sync"
	"time"

	"tutor/models"
)

const quizLength = 3

// NewState returns the dialogue state for a fresh session. The first
// message asked becomes the session's original question.
func NewState(sessionID, subject, question string) *models.DialogueState {
	return &models.DialogueState{
		SessionID:        sessionID,
		Subject:          subject,
		Phase:            models.PhaseInitial,
		OriginalQuestion: question,
	}
}

// Advance applies one user message to the state machine. Keyword matching is
// case-insensitive and first-match-wins; text with no matching keyword leaves
// the phase unchanged (or takes the detailed default out of the initial
// phase). Advance never fails.
func Advance(state *models.DialogueState, rawText string, now time.Time) {
	msgLower := strings.ToLower(rawText)

	switch {
	case state.Phase == models.PhaseInitial:
		if strings.Contains(msgLower, "detailed") {
			state.Phase = models.PhaseAnsweredDetailed
		} else if strings.Contains(msgLower, "brief") {
			state.Phase = models.PhaseAnsweredBrief
		} else {
			// A first message always gets a substantive answer rather
			// than a meta-question, so default to detailed.
			state.Phase = models.PhaseAnsweredDetailed
		}

	case state.Phase == models.PhaseQuizStart || state.Phase == models.PhaseQuizQuestion:
		answerQuizQuestion(state, rawText, now)

	case state.Phase == models.PhaseQuizFeedback:
		if containsAny(msgLower, "quiz", "another", "take") {
			startQuiz(state)
		}

	default:
		advanceBrowsing(state, msgLower)
	}
}

// advanceBrowsing handles every non-quiz, non-initial phase. The checks run
// in priority order; the first matching keyword decides the next phase.
func advanceBrowsing(state *models.DialogueState, msgLower string) {
	switch {
	case containsAny(msgLower, "example", "step-by-step", "worked"):
		state.Phase = models.PhaseShowExamples
	case containsAny(msgLower, "quiz", "mini quiz"):
		startQuiz(state)
	case containsAny(msgLower, "practice", "problems"):
		state.Phase = models.PhasePracticeProblems
	case strings.Contains(msgLower, "solutions"):
		state.Phase = models.PhaseShowSolutions
	case containsAny(msgLower, "simpler", "simple"):
		state.Phase = models.PhaseSimpleExplanation
	case containsAny(msgLower, "new topic", "something else"):
		state.Phase = models.PhaseNewQuestion
	case containsAny(msgLower, "explain", "specific"):
		state.Phase = models.PhaseAskSpecific
	}

	if !state.Phase.IsQuizPhase() {
		state.Quiz = nil
	}
}

func startQuiz(state *models.DialogueState) {
	state.Phase = models.PhaseQuizStart
	state.Quiz = &models.QuizState{
		CurrentQuestion: 1,
		TotalQuestions:  quizLength,
		Answers:         []models.QuizAnswer{},
	}
}

func answerQuizQuestion(state *models.DialogueState, rawText string, now time.Time) {
	quiz := state.Quiz
	quiz.Answers = append(quiz.Answers, models.QuizAnswer{
		Question:  quiz.CurrentQuestion,
		Answer:    rawText,
		Timestamp: now,
	})

	if quiz.CurrentQuestion < quiz.TotalQuestions {
		quiz.CurrentQuestion++
		state.Phase = models.PhaseQuizQuestion
	} else {
		state.Phase = models.PhaseQuizFeedback
	}
}

func containsAny(text string, keywords ...string) bool {
	for _, keyword := range keywords {
		if strings.Contains(text, keyword) {
			return true
		}
	}
	return false
}

// Manager owns one DialogueState per session id.
type Manager struct {
	mu     sync.Mutex
	states map[string]*models.DialogueState
}

func NewManager() *Manager {
	return &Manager{states: make(map[string]*models.DialogueState)}
}

// Advance creates the session state on first use, applies the message and
// returns a copy of the resulting state.
func (m *Manager) Advance(sessionID, subject, message string) models.DialogueState {
	m.mu.Lock()
	defer m.mu.Unlock()

	state, ok := m.states[sessionID]
	if !ok {
		state = NewState(sessionID, subject, message)
		m.states[sessionID] = state
	}

	Advance(state, message, time.Now())
	return copyState(state)
}

// State returns a copy of the session's current state, if any.
func (m *Manager) State(sessionID string) (models.DialogueState, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	state, ok := m.states[sessionID]
	if !ok {
		return models.DialogueState{}, false
	}
	return copyState(state), true
}

func copyState(state *models.DialogueState) models.DialogueState {
	out := *state
	if state.Quiz != nil {
		quiz := *state.Quiz
		quiz.Answers = append([]models.QuizAnswer(nil), state.Quiz.Answers...)
		out.Quiz = &quiz
	}
	return out
}
