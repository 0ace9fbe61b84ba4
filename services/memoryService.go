package services

import (
	"errors"
	"fmt"
	"log"
	"sort"
	"strings"
	"sync"
	"time"

	"tutor/db"
	"tutor/models"
	"tutor/services/analysis"

	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/samber/lo"
)

const (
	historyCollection  = "conversation_history"
	progressCollection = "learning_progress"
	sessionsCollection = "sessions"

	// maxHistoryEntries bounds the conversation log; the oldest entries are
	// evicted first.
	maxHistoryEntries = 1000

	similarityThreshold = 0.2
)

// MemoryService owns the three durable collections: the conversation log,
// per-subject learning progress and per-session records. It is the sole
// writer; all mutation is serialized behind one mutex and persisted
// synchronously before the mutating call returns.
type MemoryService struct {
	mu    sync.RWMutex
	store db.CollectionStore

	history  []*models.ConversationEntry
	progress map[string]*models.LearningProgress
	sessions map[string]*models.SessionRecord
}

// NewMemoryService loads all collections from the store. A missing or
// corrupt collection initializes empty instead of failing startup, so
// partial corruption never blocks the service.
func NewMemoryService(store db.CollectionStore) *MemoryService {
	s := &MemoryService{
		store:    store,
		history:  []*models.ConversationEntry{},
		progress: make(map[string]*models.LearningProgress),
		sessions: make(map[string]*models.SessionRecord),
	}

	if err := store.Load(historyCollection, &s.history); err != nil {
		if !errors.Is(err, db.ErrNotFound) {
			log.Printf("[ERROR] Failed to load conversation history, starting empty: %v", err)
		}
		s.history = []*models.ConversationEntry{}
	}

	if err := store.Load(progressCollection, &s.progress); err != nil {
		if !errors.Is(err, db.ErrNotFound) {
			log.Printf("[ERROR] Failed to load learning progress, starting empty: %v", err)
		}
		s.progress = make(map[string]*models.LearningProgress)
	}

	if err := store.Load(sessionsCollection, &s.sessions); err != nil {
		if !errors.Is(err, db.ErrNotFound) {
			log.Printf("[ERROR] Failed to load sessions, starting empty: %v", err)
		}
		s.sessions = make(map[string]*models.SessionRecord)
	}

	log.Printf("[INFO] Memory loaded: %d conversations, %d subjects, %d sessions",
		len(s.history), len(s.progress), len(s.sessions))
	return s
}

// AppendConversation records one completed turn. Topic, difficulty and
// question-type metadata are derived here so every entry carries them. The
// log is capped at maxHistoryEntries and persisted before returning.
func (s *MemoryService) AppendConversation(sessionID, question, answer, subject, responseType string, extra map[string]string) (*models.ConversationEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	entry := &models.ConversationEntry{
		ID:               fmt.Sprintf("%s_%d", sessionID, now.UnixMilli()),
		SessionID:        sessionID,
		Subject:          subject,
		Question:         strings.ToLower(question),
		OriginalQuestion: question,
		Answer:           answer,
		ResponseType:     responseType,
		Timestamp:        now,
		Metadata: models.EntryMetadata{
			Topics:       analysis.ExtractTopics(question, subject),
			Difficulty:   analysis.AssessDifficulty(question),
			QuestionType: analysis.ClassifyQuestion(question),
			Extra:        extra,
		},
	}

	s.history = append(s.history, entry)
	if len(s.history) > maxHistoryEntries {
		s.history = s.history[len(s.history)-maxHistoryEntries:]
	}

	if err := s.store.Save(historyCollection, s.history); err != nil {
		return nil, fmt.Errorf("failed to persist conversation history: %w", err)
	}

	return entry, nil
}

// RecentBySession returns the last limit entries for a session in
// chronological order.
func (s *MemoryService) RecentBySession(sessionID string, limit int) []*models.ConversationEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entries := lo.Filter(s.history, func(entry *models.ConversationEntry, _ int) bool {
		return entry.SessionID == sessionID
	})
	if len(entries) > limit {
		entries = entries[len(entries)-limit:]
	}
	return entries
}

// RecentBySubject returns the last limit entries for a subject,
// most recent first.
func (s *MemoryService) RecentBySubject(subject string, limit int) []*models.ConversationEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entries := lo.Filter(s.history, func(entry *models.ConversationEntry, _ int) bool {
		return entry.Subject == subject
	})
	if len(entries) > limit {
		entries = entries[len(entries)-limit:]
	}
	return lo.Reverse(entries)
}

// FindSimilar scores same-subject history entries against the query by
// shared significant words (longer than 3 characters): shared count divided
// by the larger word set. Entries scoring at or below the threshold are
// dropped; results are ordered by similarity, most recent first on ties.
func (s *MemoryService) FindSimilar(text, subject string, limit int) []models.ScoredEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()

	questionWords := significantWords(strings.ToLower(text))

	var scored []models.ScoredEntry
	for _, entry := range s.history {
		if entry.Subject != subject {
			continue
		}

		entryWords := significantWords(entry.Question)
		common := 0
		for _, word := range questionWords {
			if lo.Contains(entryWords, word) {
				common++
			}
		}

		denom := len(questionWords)
		if len(entryWords) > denom {
			denom = len(entryWords)
		}
		if denom == 0 {
			continue
		}

		similarity := float64(common) / float64(denom)
		if similarity > similarityThreshold {
			scored = append(scored, models.ScoredEntry{Entry: entry, Similarity: similarity})
		}
	}

	sort.SliceStable(scored, func(i, j int) bool {
		if scored[i].Similarity != scored[j].Similarity {
			return scored[i].Similarity > scored[j].Similarity
		}
		return scored[i].Entry.Timestamp.After(scored[j].Entry.Timestamp)
	})

	if len(scored) > limit {
		scored = scored[:limit]
	}
	return scored
}

// SearchConversations finds history entries whose question text fuzzily
// matches any of the search terms, optionally restricted to one subject.
func (s *MemoryService) SearchConversations(terms []string, subject string) []*models.ConversationEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var matches []*models.ConversationEntry
	for _, entry := range s.history {
		if subject != "" && entry.Subject != subject {
			continue
		}
		if entryMatchesSearch(entry, terms) {
			matches = append(matches, entry)
		}
	}
	return matches
}

func entryMatchesSearch(entry *models.ConversationEntry, terms []string) bool {
	words := strings.Fields(entry.Question)
	cleanWords := make([]string, 0, len(words))
	for _, word := range words {
		cleanWord := strings.Trim(word, ".,!?;:()[]{}\"'")
		if len(cleanWord) > 0 {
			cleanWords = append(cleanWords, cleanWord)
		}
	}

	for _, term := range terms {
		if fuzzy.MatchFold(term, entry.Question) {
			return true
		}
		if len(fuzzy.Find(term, cleanWords)) > 0 {
			return true
		}
	}
	return false
}

// Progress returns the subject's learning progress, or nil when the subject
// has no recorded activity.
func (s *MemoryService) Progress(subject string) *models.LearningProgress {
	s.mu.RLock()
	defer s.mu.RUnlock()

	progress, ok := s.progress[subject]
	if !ok {
		return nil
	}

	out := *progress
	out.TopicsCovered = make(map[string]*models.TopicProgress, len(progress.TopicsCovered))
	for topic, tp := range progress.TopicsCovered {
		copied := *tp
		out.TopicsCovered[topic] = &copied
	}
	return &out
}

// UpdateProgress additively records one question against the subject: total
// count, per-topic counts and the difficulty histogram all increase.
func (s *MemoryService) UpdateProgress(subject string, topics []string, difficulty string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	progress, ok := s.progress[subject]
	if !ok {
		progress = &models.LearningProgress{
			TopicsCovered: make(map[string]*models.TopicProgress),
		}
		s.progress[subject] = progress
	}

	now := time.Now()
	progress.TotalQuestions++
	progress.LastActivity = now

	switch difficulty {
	case analysis.DifficultyHard:
		progress.DifficultyProgression.Hard++
	case analysis.DifficultyMedium:
		progress.DifficultyProgression.Medium++
	default:
		progress.DifficultyProgression.Easy++
	}

	for _, topic := range topics {
		tp, ok := progress.TopicsCovered[topic]
		if !ok {
			tp = &models.TopicProgress{}
			progress.TopicsCovered[topic] = tp
		}
		tp.Count++
		tp.LastAsked = now
	}

	if err := s.store.Save(progressCollection, s.progress); err != nil {
		return fmt.Errorf("failed to persist learning progress: %w", err)
	}
	return nil
}

// HasSession reports whether a session record exists.
func (s *MemoryService) HasSession(sessionID string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, ok := s.sessions[sessionID]
	return ok
}

// Session returns a copy of the session record, if present.
func (s *MemoryService) Session(sessionID string) (*models.SessionRecord, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	record, ok := s.sessions[sessionID]
	if !ok {
		return nil, false
	}
	out := *record
	out.TopicsCovered = append([]string(nil), record.TopicsCovered...)
	return &out, true
}

// UpsertSession creates or resets the session record.
func (s *MemoryService) UpsertSession(sessionID, subject, initialQuestion string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	s.sessions[sessionID] = &models.SessionRecord{
		ID:              sessionID,
		Subject:         subject,
		StartTime:       now,
		LastActivity:    now,
		InitialQuestion: initialQuestion,
		QuestionCount:   0,
		TopicsCovered:   []string{},
		State:           models.SessionActive,
	}

	if err := s.store.Save(sessionsCollection, s.sessions); err != nil {
		return fmt.Errorf("failed to persist sessions: %w", err)
	}
	return nil
}

// TouchSession refreshes session activity and grows its covered-topic set.
// Touching an unknown session is a no-op.
func (s *MemoryService) TouchSession(sessionID, question string, topics []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	record, ok := s.sessions[sessionID]
	if !ok {
		return nil
	}

	record.LastActivity = time.Now()
	record.QuestionCount++
	for _, topic := range topics {
		if !lo.Contains(record.TopicsCovered, topic) {
			record.TopicsCovered = append(record.TopicsCovered, topic)
		}
	}

	if err := s.store.Save(sessionsCollection, s.sessions); err != nil {
		return fmt.Errorf("failed to persist sessions: %w", err)
	}
	return nil
}

// Cleanup drops conversation entries and sessions older than daysToKeep
// days, then persists both collections. Calling it again with the same
// cutoff is a no-op.
func (s *MemoryService) Cleanup(daysToKeep int) (removedEntries, removedSessions int, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cutoff := time.Now().AddDate(0, 0, -daysToKeep)

	kept := lo.Filter(s.history, func(entry *models.ConversationEntry, _ int) bool {
		return entry.Timestamp.After(cutoff)
	})
	removedEntries = len(s.history) - len(kept)
	s.history = kept

	for id, record := range s.sessions {
		if record.LastActivity.Before(cutoff) {
			delete(s.sessions, id)
			removedSessions++
		}
	}

	if err := s.store.Save(historyCollection, s.history); err != nil {
		return removedEntries, removedSessions, fmt.Errorf("failed to persist conversation history: %w", err)
	}
	if err := s.store.Save(sessionsCollection, s.sessions); err != nil {
		return removedEntries, removedSessions, fmt.Errorf("failed to persist sessions: %w", err)
	}
	return removedEntries, removedSessions, nil
}

func significantWords(text string) []string {
	return lo.Filter(strings.Fields(text), func(word string, _ int) bool {
		return len(word) > 3
	})
}
