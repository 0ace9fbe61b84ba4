package services

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"tutor/db"
	"tutor/models"
)

func newTestMemory(t *testing.T) *MemoryService {
	t.Helper()

	store, err := db.NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("failed to create file store: %v", err)
	}
	return NewMemoryService(store)
}

func TestAppendConversationDerivesMetadata(t *testing.T) {
	memory := newTestMemory(t)

	entry, err := memory.AppendConversation("s1", "What is a covalent bond?", "An answer", "chemistry", "answered_detailed", map[string]string{"model": "gpt-4o-mini"})
	if err != nil {
		t.Fatalf("AppendConversation failed: %v", err)
	}

	if entry.Question != "what is a covalent bond?" {
		t.Errorf("question not lower-cased: %q", entry.Question)
	}
	if entry.OriginalQuestion != "What is a covalent bond?" {
		t.Errorf("original question altered: %q", entry.OriginalQuestion)
	}
	if len(entry.Metadata.Topics) == 0 {
		t.Error("metadata topics must never be empty")
	}
	if entry.Metadata.Difficulty != "easy" {
		t.Errorf("difficulty = %q, expected easy", entry.Metadata.Difficulty)
	}
	if entry.Metadata.Extra["model"] != "gpt-4o-mini" {
		t.Errorf("caller-supplied metadata lost: %v", entry.Metadata.Extra)
	}
}

func TestAppendConversationEnforcesCap(t *testing.T) {
	memory := newTestMemory(t)

	now := time.Now()
	for i := 0; i < maxHistoryEntries; i++ {
		memory.history = append(memory.history, &models.ConversationEntry{
			ID:        fmt.Sprintf("old_%d", i),
			SessionID: "s1",
			Subject:   "math",
			Timestamp: now,
		})
	}

	entry, err := memory.AppendConversation("s1", "solve 2x+3=7", "x=2", "math", "answered_brief", nil)
	if err != nil {
		t.Fatalf("AppendConversation failed: %v", err)
	}

	if len(memory.history) != maxHistoryEntries {
		t.Fatalf("history length = %d, expected %d", len(memory.history), maxHistoryEntries)
	}
	if memory.history[0].ID == "old_0" {
		t.Error("oldest entry was not evicted")
	}
	if memory.history[len(memory.history)-1].ID != entry.ID {
		t.Error("new entry missing from the end of the log")
	}
}

func TestRecentBySessionChronological(t *testing.T) {
	memory := newTestMemory(t)

	for i := 0; i < 4; i++ {
		if _, err := memory.AppendConversation("s1", fmt.Sprintf("question %d please", i), "a", "math", "answered_brief", nil); err != nil {
			t.Fatalf("append %d failed: %v", i, err)
		}
	}
	if _, err := memory.AppendConversation("s2", "other session", "a", "math", "answered_brief", nil); err != nil {
		t.Fatalf("append failed: %v", err)
	}

	entries := memory.RecentBySession("s1", 3)
	if len(entries) != 3 {
		t.Fatalf("got %d entries, expected 3", len(entries))
	}
	for i, entry := range entries {
		if entry.SessionID != "s1" {
			t.Errorf("entry %d from wrong session: %s", i, entry.SessionID)
		}
	}
	if entries[0].Question != "question 1 please" || entries[2].Question != "question 3 please" {
		t.Errorf("entries not in chronological order: %q .. %q", entries[0].Question, entries[2].Question)
	}
}

func TestRecentBySubjectMostRecentFirst(t *testing.T) {
	memory := newTestMemory(t)

	for i := 0; i < 3; i++ {
		if _, err := memory.AppendConversation("s1", fmt.Sprintf("math question %d", i), "a", "math", "answered_brief", nil); err != nil {
			t.Fatalf("append failed: %v", err)
		}
	}
	if _, err := memory.AppendConversation("s1", "physics question", "a", "physics", "answered_brief", nil); err != nil {
		t.Fatalf("append failed: %v", err)
	}

	entries := memory.RecentBySubject("math", 2)
	if len(entries) != 2 {
		t.Fatalf("got %d entries, expected 2", len(entries))
	}
	if entries[0].Question != "math question 2" {
		t.Errorf("first entry = %q, expected the most recent", entries[0].Question)
	}
}

func TestFindSimilarRespectsSubjectAndThreshold(t *testing.T) {
	memory := newTestMemory(t)

	if _, err := memory.AppendConversation("s1", "define an acid and a base", "a", "chemistry", "answered_brief", nil); err != nil {
		t.Fatalf("append failed: %v", err)
	}
	if _, err := memory.AppendConversation("s2", "define momentum", "a", "physics", "answered_brief", nil); err != nil {
		t.Fatalf("append failed: %v", err)
	}
	if _, err := memory.AppendConversation("s3", "completely unrelated topic entirely", "a", "chemistry", "answered_brief", nil); err != nil {
		t.Fatalf("append failed: %v", err)
	}

	results := memory.FindSimilar("what is an acid", "chemistry", 5)
	if len(results) != 1 {
		t.Fatalf("got %d results, expected 1", len(results))
	}
	if results[0].Entry.Question != "define an acid and a base" {
		t.Errorf("unexpected match: %q", results[0].Entry.Question)
	}
	for _, result := range results {
		if result.Entry.Subject != "chemistry" {
			t.Errorf("result from wrong subject: %s", result.Entry.Subject)
		}
		if result.Similarity <= similarityThreshold {
			t.Errorf("similarity %f at or below threshold", result.Similarity)
		}
	}
}

func TestFindSimilarOrdersBySimilarity(t *testing.T) {
	memory := newTestMemory(t)

	if _, err := memory.AppendConversation("s1", "what makes acid rain form", "a", "chemistry", "answered_brief", nil); err != nil {
		t.Fatalf("append failed: %v", err)
	}
	if _, err := memory.AppendConversation("s1", "what is an acid", "a", "chemistry", "answered_brief", nil); err != nil {
		t.Fatalf("append failed: %v", err)
	}

	results := memory.FindSimilar("what is an acid", "chemistry", 5)
	if len(results) < 2 {
		t.Fatalf("got %d results, expected at least 2", len(results))
	}
	if results[0].Entry.Question != "what is an acid" {
		t.Errorf("best match = %q, expected the exact question", results[0].Entry.Question)
	}
	if results[0].Similarity < results[1].Similarity {
		t.Error("results not sorted by similarity descending")
	}
}

func TestFindSimilarRecencyTieBreak(t *testing.T) {
	memory := newTestMemory(t)

	now := time.Now()
	memory.history = append(memory.history,
		&models.ConversationEntry{
			ID: "older", SessionID: "s1", Subject: "chemistry",
			Question: "what acid smells worst", Timestamp: now.Add(-time.Minute),
		},
		&models.ConversationEntry{
			ID: "newer", SessionID: "s1", Subject: "chemistry",
			Question: "what acid tastes sour", Timestamp: now,
		},
	)

	results := memory.FindSimilar("what is an acid", "chemistry", 5)
	if len(results) != 2 {
		t.Fatalf("got %d results, expected 2", len(results))
	}
	if results[0].Similarity != results[1].Similarity {
		t.Fatalf("scores %f and %f differ, tie expected", results[0].Similarity, results[1].Similarity)
	}
	if results[0].Entry.ID != "newer" {
		t.Errorf("first result = %q, expected the more recent entry on a tie", results[0].Entry.ID)
	}
}

func TestUpdateProgressAdditive(t *testing.T) {
	memory := newTestMemory(t)

	for i := 0; i < 3; i++ {
		if err := memory.UpdateProgress("chemistry", []string{"acids and bases"}, "easy"); err != nil {
			t.Fatalf("UpdateProgress failed: %v", err)
		}
	}

	progress := memory.Progress("chemistry")
	if progress == nil {
		t.Fatal("progress missing after updates")
	}
	if progress.TotalQuestions != 3 {
		t.Errorf("total questions = %d, expected 3", progress.TotalQuestions)
	}
	if progress.DifficultyProgression.Easy != 3 {
		t.Errorf("easy count = %d, expected 3", progress.DifficultyProgression.Easy)
	}
	if progress.DifficultyProgression.Medium != 0 || progress.DifficultyProgression.Hard != 0 {
		t.Errorf("other buckets changed: %+v", progress.DifficultyProgression)
	}
	if progress.TopicsCovered["acids and bases"].Count != 3 {
		t.Errorf("topic count = %d, expected 3", progress.TopicsCovered["acids and bases"].Count)
	}
}

func TestSessionLifecycle(t *testing.T) {
	memory := newTestMemory(t)

	if err := memory.UpsertSession("s1", "physics", "what is momentum"); err != nil {
		t.Fatalf("UpsertSession failed: %v", err)
	}
	if err := memory.TouchSession("s1", "what is momentum", []string{"mechanics"}); err != nil {
		t.Fatalf("TouchSession failed: %v", err)
	}
	if err := memory.TouchSession("s1", "and energy?", []string{"mechanics"}); err != nil {
		t.Fatalf("TouchSession failed: %v", err)
	}

	record, ok := memory.Session("s1")
	if !ok {
		t.Fatal("session record missing")
	}
	if record.QuestionCount != 2 {
		t.Errorf("question count = %d, expected 2", record.QuestionCount)
	}
	if len(record.TopicsCovered) != 1 || record.TopicsCovered[0] != "mechanics" {
		t.Errorf("topic set should deduplicate: %v", record.TopicsCovered)
	}

	// Touching an unknown session is a no-op, not an error.
	if err := memory.TouchSession("missing", "q", nil); err != nil {
		t.Errorf("TouchSession on unknown session returned error: %v", err)
	}
}

func TestCleanupRemovesOldData(t *testing.T) {
	memory := newTestMemory(t)

	old := time.Now().AddDate(0, 0, -60)
	memory.history = append(memory.history,
		&models.ConversationEntry{ID: "old", SessionID: "s1", Subject: "math", Timestamp: old},
	)
	memory.sessions["stale"] = &models.SessionRecord{ID: "stale", LastActivity: old}

	if _, err := memory.AppendConversation("s2", "fresh question", "a", "math", "answered_brief", nil); err != nil {
		t.Fatalf("append failed: %v", err)
	}
	if err := memory.UpsertSession("s2", "math", "fresh question"); err != nil {
		t.Fatalf("UpsertSession failed: %v", err)
	}

	removedEntries, removedSessions, err := memory.Cleanup(30)
	if err != nil {
		t.Fatalf("Cleanup failed: %v", err)
	}
	if removedEntries != 1 || removedSessions != 1 {
		t.Errorf("removed %d entries and %d sessions, expected 1 and 1", removedEntries, removedSessions)
	}

	// Idempotent: a second pass removes nothing further.
	removedEntries, removedSessions, err = memory.Cleanup(30)
	if err != nil {
		t.Fatalf("second Cleanup failed: %v", err)
	}
	if removedEntries != 0 || removedSessions != 0 {
		t.Errorf("second cleanup removed %d/%d, expected 0/0", removedEntries, removedSessions)
	}
}

func TestPersistenceSurvivesReload(t *testing.T) {
	dir := t.TempDir()
	store, err := db.NewFileStore(dir)
	if err != nil {
		t.Fatalf("failed to create file store: %v", err)
	}

	memory := NewMemoryService(store)
	if _, err := memory.AppendConversation("s1", "what is an acid", "An acid donates protons.", "chemistry", "answered_brief", nil); err != nil {
		t.Fatalf("append failed: %v", err)
	}
	if err := memory.UpdateProgress("chemistry", []string{"acids and bases"}, "easy"); err != nil {
		t.Fatalf("UpdateProgress failed: %v", err)
	}
	if err := memory.UpsertSession("s1", "chemistry", "what is an acid"); err != nil {
		t.Fatalf("UpsertSession failed: %v", err)
	}

	reloaded := NewMemoryService(store)
	if len(reloaded.history) != 1 {
		t.Errorf("reloaded history length = %d, expected 1", len(reloaded.history))
	}
	if reloaded.Progress("chemistry") == nil {
		t.Error("reloaded progress missing")
	}
	if !reloaded.HasSession("s1") {
		t.Error("reloaded session missing")
	}
}

func TestRepeatedSaveIsIdempotent(t *testing.T) {
	dir := t.TempDir()
	store, err := db.NewFileStore(dir)
	if err != nil {
		t.Fatalf("failed to create file store: %v", err)
	}

	memory := NewMemoryService(store)
	if err := memory.UpdateProgress("math", []string{"algebra"}, "medium"); err != nil {
		t.Fatalf("UpdateProgress failed: %v", err)
	}

	var first map[string]*models.LearningProgress
	if err := store.Load("learning_progress", &first); err != nil {
		t.Fatalf("load failed: %v", err)
	}

	// Re-persisting the same in-memory state must not change the result.
	if err := store.Save("learning_progress", memory.progress); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if err := store.Save("learning_progress", memory.progress); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	var second map[string]*models.LearningProgress
	if err := store.Load("learning_progress", &second); err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if first["math"].TotalQuestions != second["math"].TotalQuestions {
		t.Errorf("repeated save changed data: %d vs %d", first["math"].TotalQuestions, second["math"].TotalQuestions)
	}
}

func TestCorruptCollectionStartsEmpty(t *testing.T) {
	dir := t.TempDir()
	store, err := db.NewFileStore(dir)
	if err != nil {
		t.Fatalf("failed to create file store: %v", err)
	}

	if err := os.WriteFile(filepath.Join(dir, "conversation_history.json"), []byte("{not json"), 0o644); err != nil {
		t.Fatalf("failed to write corrupt file: %v", err)
	}
	if err := store.Save("sessions", map[string]*models.SessionRecord{
		"s1": {ID: "s1", Subject: "math"},
	}); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	memory := NewMemoryService(store)
	if len(memory.history) != 0 {
		t.Errorf("corrupt history should load empty, got %d entries", len(memory.history))
	}
	if !memory.HasSession("s1") {
		t.Error("healthy sessions collection should still load")
	}
}

func TestSearchConversations(t *testing.T) {
	memory := newTestMemory(t)

	if _, err := memory.AppendConversation("s1", "explain chemical bonding basics", "a", "chemistry", "answered_brief", nil); err != nil {
		t.Fatalf("append failed: %v", err)
	}
	if _, err := memory.AppendConversation("s2", "what is the derivative of sine", "a", "math", "answered_brief", nil); err != nil {
		t.Fatalf("append failed: %v", err)
	}

	results := memory.SearchConversations([]string{"bonding"}, "")
	if len(results) != 1 || results[0].Subject != "chemistry" {
		t.Fatalf("search for bonding returned %d results", len(results))
	}

	results = memory.SearchConversations([]string{"derivative"}, "chemistry")
	if len(results) != 0 {
		t.Errorf("subject filter failed, got %d results", len(results))
	}
}
