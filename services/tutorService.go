package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"tutor/models"
	"tutor/services/analysis"
	"tutor/services/dialogue"
	"tutor/services/llm"
)

var (
	// ErrContentFiltered marks messages rejected by the safety filter.
	ErrContentFiltered = errors.New("inappropriate content")
	// ErrGenerationFailed marks a failed call to the generation backend.
	ErrGenerationFailed = errors.New("generation failed")
	// ErrInvalidRequest marks requests with a bad subject or empty message.
	ErrInvalidRequest = errors.New("invalid request")
)

const internalCheckPrefix = "internal check: "

// TutorService runs one tutoring turn: safety check, dialogue phase
// transition, insight computation, prompt composition, generation and
// recording. A failed generation leaves no trace in durable state; the
// phase transition is deliberately not rolled back, so the next message
// continues from the new phase.
type TutorService struct {
	memory       *MemoryService
	insights     *InsightService
	safety       *SafetyService
	dialogue     *dialogue.Manager
	generator    llm.Generator
	defaultModel string
}

func NewTutorService(memory *MemoryService, insights *InsightService, safety *SafetyService, generator llm.Generator, defaultModel string) *TutorService {
	return &TutorService{
		memory:       memory,
		insights:     insights,
		safety:       safety,
		dialogue:     dialogue.NewManager(),
		generator:    generator,
		defaultModel: defaultModel,
	}
}

func (s *TutorService) ProcessMessage(ctx context.Context, req *models.TutorRequest) (*models.TutorResponse, error) {
	log.Printf("[INFO] Processing message for session %s (subject: %s)", req.SessionID, req.Subject)

	if err := s.validateRequest(req); err != nil {
		log.Printf("[ERROR] Tutor request validation failed: %v", err)
		return nil, err
	}

	message := strings.TrimPrefix(req.Message, internalCheckPrefix)

	if !s.safety.IsQuestionAppropriate(message) {
		log.Printf("[INFO] Message rejected by content filter for session %s", req.SessionID)
		return nil, ErrContentFiltered
	}

	state := s.dialogue.Advance(req.SessionID, req.Subject, message)
	insights := s.insights.ComputeInsights(req.SessionID, message, req.Subject)

	prompt := buildPrompt(&state, insights, message)

	model := req.Model
	if model == "" {
		model = s.defaultModel
	}

	answer, err := s.generator.Generate(ctx, model, prompt)
	if err != nil {
		log.Printf("[ERROR] Generation failed for session %s: %v", req.SessionID, err)
		return nil, fmt.Errorf("%w: %v", ErrGenerationFailed, err)
	}

	s.recordTurn(req.SessionID, req.Subject, message, answer, model, &state, insights)

	log.Printf("[INFO] Completed turn for session %s (phase: %s)", req.SessionID, state.Phase)
	return &models.TutorResponse{
		Reply:    answer,
		Phase:    string(state.Phase),
		FollowUp: true,
		Options:  dialogue.FollowUpOptions(state.Phase),
		Insights: insights,
	}, nil
}

func (s *TutorService) validateRequest(req *models.TutorRequest) error {
	if req == nil {
		return fmt.Errorf("%w: request cannot be nil", ErrInvalidRequest)
	}
	if strings.TrimSpace(req.SessionID) == "" {
		return fmt.Errorf("%w: session_id is required", ErrInvalidRequest)
	}
	if strings.TrimSpace(req.Message) == "" {
		return fmt.Errorf("%w: message is required", ErrInvalidRequest)
	}
	if !analysis.IsValidSubject(req.Subject) {
		return fmt.Errorf("%w: unknown subject %q", ErrInvalidRequest, req.Subject)
	}
	return nil
}

// recordTurn writes the turn to durable state. Write failures are logged
// and do not fail the turn: the student already has their answer, and the
// store retries safely because persists are idempotent re-writes of the
// in-memory collections.
func (s *TutorService) recordTurn(sessionID, subject, message, answer, model string, state *models.DialogueState, insights *models.ContextInsights) {
	extra := map[string]string{
		"phase":     string(state.Phase),
		"model":     model,
		"follow_up": fmt.Sprintf("%t", insights.IsFollowUp),
	}

	entry, err := s.memory.AppendConversation(sessionID, message, answer, subject, string(state.Phase), extra)
	if err != nil {
		log.Printf("[ERROR] Failed to record conversation entry: %v", err)
		return
	}

	if err := s.memory.UpdateProgress(subject, entry.Metadata.Topics, entry.Metadata.Difficulty); err != nil {
		log.Printf("[ERROR] Failed to update learning progress: %v", err)
	}

	if !s.memory.HasSession(sessionID) {
		if err := s.memory.UpsertSession(sessionID, subject, state.OriginalQuestion); err != nil {
			log.Printf("[ERROR] Failed to create session record: %v", err)
		}
	}
	if err := s.memory.TouchSession(sessionID, message, entry.Metadata.Topics); err != nil {
		log.Printf("[ERROR] Failed to update session record: %v", err)
	}
}
