package analysis

import "strings"

const (
	DifficultyEasy   = "easy"
	DifficultyMedium = "medium"
	DifficultyHard   = "hard"

	ComplexityLow    = "low"
	ComplexityMedium = "medium"
	ComplexityHigh   = "high"
)

var easyIndicators = []string{"what is", "define", "simple", "basic", "example"}
var hardIndicators = []string{"derive", "prove", "analyze", "complex", "advanced", "mechanism", "calculate"}

// AssessDifficulty buckets a question as easy, medium or hard from indicator
// keyword counts. Hard indicators win ties only when they outnumber easy ones.
func AssessDifficulty(question string) string {
	questionLower := strings.ToLower(question)

	easyCount := 0
	for _, indicator := range easyIndicators {
		if strings.Contains(questionLower, indicator) {
			easyCount++
		}
	}

	hardCount := 0
	for _, indicator := range hardIndicators {
		if strings.Contains(questionLower, indicator) {
			hardCount++
		}
	}

	if hardCount > easyCount {
		return DifficultyHard
	}
	if easyCount > 0 {
		return DifficultyEasy
	}
	return DifficultyMedium
}

// ClassifyQuestion assigns a coarse intent label. Rules are checked in
// order; the first match wins.
func ClassifyQuestion(question string) string {
	questionLower := strings.ToLower(question)

	rules := []struct {
		keywords []string
		result   string
	}{
		{[]string{"what", "define"}, "definition"},
		{[]string{"how", "step"}, "process"},
		{[]string{"why", "explain"}, "explanation"},
		{[]string{"calculate", "solve"}, "problem"},
		{[]string{"compare", "difference"}, "comparison"},
	}

	for _, rule := range rules {
		for _, keyword := range rule.keywords {
			if strings.Contains(questionLower, keyword) {
				return rule.result
			}
		}
	}

	return "general"
}

// QuestionComplexity scores a question and buckets the score:
// why/how +1, compare/contrast +2, analyze/derive +3, long question +1.
func QuestionComplexity(question string) string {
	questionLower := strings.ToLower(question)

	score := 0
	if strings.Contains(questionLower, "why") || strings.Contains(questionLower, "how") {
		score++
	}
	if strings.Contains(questionLower, "compare") || strings.Contains(questionLower, "contrast") {
		score += 2
	}
	if strings.Contains(questionLower, "analyze") || strings.Contains(questionLower, "derive") {
		score += 3
	}
	if len(strings.Fields(question)) > 15 {
		score++
	}

	if score >= 3 {
		return ComplexityHigh
	}
	if score >= 1 {
		return ComplexityMedium
	}
	return ComplexityLow
}
