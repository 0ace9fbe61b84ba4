package services

import (
	"fmt"
	"strings"

	"tutor/models"
	"tutor/services/analysis"
)

var subjectContext = map[string]string{
	analysis.SubjectChemistry: "You are an expert chemistry tutor for high school students (grades 9-12). Your tone is friendly and encouraging.",
	analysis.SubjectMath:      "You are an expert mathematics tutor for high school students (grades 9-12). Your tone is friendly and encouraging.",
	analysis.SubjectPhysics:   "You are an expert physics tutor for high school students (grades 9-12). Your tone is friendly and encouraging.",
}

const safetyGuidelines = `Safety Guidelines:
- ONLY answer questions related to chemistry, mathematics, and physics.
- REFUSE to answer questions about weapons, explosives, drugs, violence, politics, adult content, or any harmful activities.
- If asked about non-science topics, politely redirect to science.`

// buildPrompt composes the generation prompt from the session state, the
// derived insights and the student's latest message.
func buildPrompt(state *models.DialogueState, insights *models.ContextInsights, message string) string {
	var prompt strings.Builder

	prompt.WriteString(subjectContext[state.Subject])
	prompt.WriteString("\n\n")
	prompt.WriteString(safetyGuidelines)
	prompt.WriteString("\n\n")
	prompt.WriteString(fmt.Sprintf("Student's Original Question: %q\n", state.OriginalQuestion))

	writeInsightContext(&prompt, insights)

	prompt.WriteString("\n")
	prompt.WriteString(taskPrompt(state, message))
	prompt.WriteString("\n\nAnswer:")

	return prompt.String()
}

func writeInsightContext(prompt *strings.Builder, insights *models.ContextInsights) {
	if insights == nil {
		return
	}

	prompt.WriteString("\nStudent Context:\n")
	prompt.WriteString(fmt.Sprintf("- Learning pattern: %s\n", insights.LearningPattern))
	prompt.WriteString(fmt.Sprintf("- Recommended teaching approach: %s\n", insights.RecommendedApproach))
	prompt.WriteString(fmt.Sprintf("- Recommended difficulty: %s\n", insights.DifficultyRecommendation))

	if len(insights.ConceptualGaps) > 0 {
		prompt.WriteString(fmt.Sprintf("- Prerequisite topics not yet covered: %s\n", strings.Join(insights.ConceptualGaps, ", ")))
	}
	if insights.HasAskedSimilar {
		prompt.WriteString("- The student has asked similar questions before; reinforce rather than repeat.\n")
	}
	if len(insights.PreviousMisconceptions) > 0 {
		prompt.WriteString(fmt.Sprintf("- Watch for earlier misconceptions around: %s\n", strings.Join(insights.PreviousMisconceptions, "; ")))
	}
}

func taskPrompt(state *models.DialogueState, message string) string {
	switch state.Phase {
	case models.PhaseAnsweredBrief:
		return "Task: Provide a brief, 2-3 sentence answer to the student's question."
	case models.PhaseAnsweredDetailed:
		return "Task: Provide a detailed, comprehensive explanation with examples."
	case models.PhaseShowExamples:
		return "Task: Show step-by-step worked examples for the student's question."
	case models.PhasePracticeProblems:
		return "Task: Create 3-4 practice problems related to the topic, with varying difficulty levels. Provide problems only, no solutions yet."
	case models.PhaseShowSolutions:
		return "Task: Provide complete step-by-step solutions to the practice problems you gave earlier, explaining the reasoning at each step."
	case models.PhaseSimpleExplanation:
		return "Task: Re-explain the concept in much simpler terms, using everyday analogies a younger student would follow."
	case models.PhaseNewQuestion:
		return fmt.Sprintf("Task: The student wants to move on to something else. Their new message is: %q. Answer it.", message)
	case models.PhaseAskSpecific:
		return "Task: The student has a specific follow-up question. Answer it concisely."
	case models.PhaseQuizStart:
		return fmt.Sprintf("Task: Create ONE quiz question (Question %d of %d) about the topic. Make it multiple choice with 4 options (A, B, C, D). Only provide the question and options - do NOT give the answer or explanation yet. Wait for the student's response.",
			state.Quiz.CurrentQuestion, state.Quiz.TotalQuestions)
	case models.PhaseQuizQuestion:
		previous := state.Quiz.Answers[len(state.Quiz.Answers)-1]
		return fmt.Sprintf("Task: The student answered: %q. Now provide ONE new quiz question (Question %d of %d) about the topic. Make it multiple choice with 4 options (A, B, C, D). Only provide the question and options - do NOT give the answer or explanation yet.",
			previous.Answer, state.Quiz.CurrentQuestion, state.Quiz.TotalQuestions)
	case models.PhaseQuizFeedback:
		answers := make([]string, len(state.Quiz.Answers))
		for i, ans := range state.Quiz.Answers {
			answers[i] = fmt.Sprintf("Q%d: %s", i+1, ans.Answer)
		}
		return fmt.Sprintf("Task: The student completed the quiz with these answers: %s. Now provide feedback on their performance, explain the correct answers, and encourage their learning journey.",
			strings.Join(answers, ", "))
	}
	return "Task: Answer the student's question helpfully."
}
