package services

import (
	"fmt"
	"log"
	"strings"

	"tutor/models"
	"tutor/services/analysis"

	"github.com/samber/lo"
)

const (
	patternNewLearner      = "new_learner"
	patternDiverseExplorer = "diverse_explorer"

	approachInDepthConceptual  = "in_depth_conceptual"
	approachProblemWalkthrough = "problem_solving_walkthrough"
	approachFoundationalFirst  = "foundational_first"
	approachSocraticGuidance   = "socratic_guidance"
)

// InsightService derives per-turn teaching signals from the memory store.
// It only reads; absent history degrades to defaults rather than failing.
type InsightService struct {
	memory *MemoryService
}

func NewInsightService(memory *MemoryService) *InsightService {
	return &InsightService{memory: memory}
}

// ComputeInsights projects the student's recorded history into the signals
// used to steer the next response.
func (s *InsightService) ComputeInsights(sessionID, question, subject string) *models.ContextInsights {
	sessionHistory := s.memory.RecentBySession(sessionID, 10)
	similar := s.memory.FindSimilar(question, subject, 8)
	progress := s.memory.Progress(subject)
	subjectHistory := s.memory.RecentBySubject(subject, 20)
	currentTopics := analysis.ExtractTopics(question, subject)

	insights := &models.ContextInsights{
		IsFollowUp:               len(sessionHistory) > 0,
		HasAskedSimilar:          len(similar) > 0,
		SimilarQuestions:         similar,
		SuggestedNextTopics:      suggestNextTopics(subject, progress),
		DifficultyRecommendation: recommendDifficulty(progress),
		QuestionComplexity:       analysis.QuestionComplexity(question),
		LearningPattern:          learningPattern(subjectHistory, subject),
		ConceptualGaps:           conceptualGaps(currentTopics, progress, subject),
		PreviousMisconceptions:   previousMisconceptions(similar),
		RecommendedApproach:      recommendApproach(question, sessionHistory),
		CurrentTopics:            currentTopics,
	}

	log.Printf("[INFO] Computed insights for session %s: pattern=%s difficulty=%s complexity=%s gaps=%d",
		sessionID, insights.LearningPattern, insights.DifficultyRecommendation,
		insights.QuestionComplexity, len(insights.ConceptualGaps))
	return insights
}

// suggestNextTopics returns up to three canonical-order topics the student
// has not touched yet.
func suggestNextTopics(subject string, progress *models.LearningProgress) []string {
	uncovered := lo.Filter(analysis.AllTopics(subject), func(topic string, _ int) bool {
		if progress == nil {
			return true
		}
		_, covered := progress.TopicsCovered[topic]
		return !covered
	})

	if len(uncovered) > 3 {
		uncovered = uncovered[:3]
	}
	return uncovered
}

func recommendDifficulty(progress *models.LearningProgress) string {
	if progress == nil {
		return analysis.DifficultyEasy
	}

	dp := progress.DifficultyProgression
	total := dp.Easy + dp.Medium + dp.Hard
	if total < 5 {
		return analysis.DifficultyEasy
	}
	if float64(dp.Hard)/float64(total) > 0.6 {
		return analysis.DifficultyHard
	}
	if float64(dp.Medium)/float64(total) > 0.4 {
		return analysis.DifficultyMedium
	}
	return analysis.DifficultyEasy
}

// learningPattern summarizes the last 20 subject entries: a student with a
// dominant topic (over half the entries) is focused on it, otherwise they
// are exploring.
func learningPattern(history []*models.ConversationEntry, subject string) string {
	if len(history) < 5 {
		return patternNewLearner
	}

	topicFrequency := make(map[string]int)
	for _, entry := range history {
		for _, topic := range analysis.ExtractTopics(entry.OriginalQuestion, subject) {
			topicFrequency[topic]++
		}
	}

	topTopic := ""
	topCount := 0
	for topic, count := range topicFrequency {
		if count > topCount || (count == topCount && topic < topTopic) {
			topTopic = topic
			topCount = count
		}
	}

	if topTopic != "" && float64(topCount) > float64(len(history))*0.5 {
		return fmt.Sprintf("focused_on_%s", strings.ReplaceAll(topTopic, " ", "_"))
	}
	return patternDiverseExplorer
}

// conceptualGaps collects prerequisites of the current topics that the
// student's progress does not yet cover. A subject with no recorded
// progress has no gaps: there is no coverage to measure against yet.
func conceptualGaps(currentTopics []string, progress *models.LearningProgress, subject string) []string {
	if progress == nil || progress.TopicsCovered == nil {
		return nil
	}

	var gaps []string
	for _, topic := range currentTopics {
		for _, prereq := range analysis.Prerequisites(subject, topic) {
			if _, covered := progress.TopicsCovered[prereq]; !covered {
				gaps = append(gaps, prereq)
			}
		}
	}
	return lo.Uniq(gaps)
}

// previousMisconceptions surfaces similar past questions whose answers
// signalled a misunderstanding.
func previousMisconceptions(similar []models.ScoredEntry) []string {
	var misconceptions []string
	for _, sq := range similar {
		flagged := strings.Contains(sq.Entry.Metadata.Extra["feedback"], "misconception")
		if flagged || strings.Contains(strings.ToLower(sq.Entry.Answer), "not quite") {
			misconceptions = append(misconceptions, sq.Entry.OriginalQuestion)
		}
	}
	return misconceptions
}

func recommendApproach(question string, sessionHistory []*models.ConversationEntry) string {
	if analysis.QuestionComplexity(question) == analysis.ComplexityHigh {
		return approachInDepthConceptual
	}
	if analysis.ClassifyQuestion(question) == "problem" {
		return approachProblemWalkthrough
	}
	if len(sessionHistory) == 0 {
		return approachFoundationalFirst
	}
	return approachSocraticGuidance
}
