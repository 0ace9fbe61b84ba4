package dialogue

import "tutor/models"

// FollowUpOptions returns the quick-reply choices the UI offers after a
// response in the given phase. Quiz phases return none: the student is
// expected to answer the question.
func FollowUpOptions(phase models.Phase) []models.FollowUpOption {
	switch phase {
	case models.PhaseAnsweredBrief:
		return []models.FollowUpOption{
			{Text: "Get a detailed explanation", Value: "detailed"},
			{Text: "See step-by-step examples", Value: "examples"},
			{Text: "Try practice problems", Value: "practice"},
			{Text: "Take a mini quiz", Value: "quiz"},
			{Text: "Ask about specific parts", Value: "specific"},
		}
	case models.PhaseAnsweredDetailed:
		return []models.FollowUpOption{
			{Text: "Try practice problems", Value: "practice"},
			{Text: "Take a mini quiz", Value: "quiz"},
			{Text: "See more examples", Value: "examples"},
			{Text: "Ask about specific parts", Value: "specific"},
		}
	case models.PhaseShowExamples, models.PhaseSimpleExplanation:
		return []models.FollowUpOption{
			{Text: "Try practice problems", Value: "practice"},
			{Text: "Take a mini quiz", Value: "quiz"},
			{Text: "Get simpler explanation", Value: "simpler"},
			{Text: "Ask me something else", Value: "something else"},
		}
	case models.PhasePracticeProblems:
		return []models.FollowUpOption{
			{Text: "Get solutions to problems", Value: "show solutions"},
			{Text: "Take a mini quiz", Value: "quiz"},
			{Text: "See more examples", Value: "examples"},
			{Text: "Ask about specific parts", Value: "specific"},
		}
	case models.PhaseShowSolutions:
		return []models.FollowUpOption{
			{Text: "Take a mini quiz", Value: "quiz"},
			{Text: "Try more practice problems", Value: "practice"},
			{Text: "Get simpler explanation", Value: "simpler"},
			{Text: "Ask me something else", Value: "something else"},
		}
	case models.PhaseQuizFeedback:
		return []models.FollowUpOption{
			{Text: "Take another quiz", Value: "Take a mini quiz"},
			{Text: "Try practice problems", Value: "practice"},
			{Text: "Get detailed explanation", Value: "detailed"},
			{Text: "Ask me something else", Value: "something else"},
		}
	case models.PhaseNewQuestion, models.PhaseAskSpecific:
		return []models.FollowUpOption{
			{Text: "Get a detailed explanation", Value: "detailed"},
			{Text: "See step-by-step examples", Value: "examples"},
			{Text: "Take a mini quiz", Value: "quiz"},
		}
	}
	return []models.FollowUpOption{}
}
