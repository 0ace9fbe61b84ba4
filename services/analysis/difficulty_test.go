package analysis

import "testing"

func TestAssessDifficulty(t *testing.T) {
	tests := []struct {
		name     string
		question string
		expected string
	}{
		{"definition question is easy", "What is an atom?", DifficultyEasy},
		{"derive is hard", "Derive the quadratic formula", DifficultyHard},
		{"no indicators is medium", "Tell me about the water cycle", DifficultyMedium},
		{"hard outweighs easy", "Analyze and prove this basic identity", DifficultyHard},
		{"easy ties win over hard", "What is the mechanism here?", DifficultyEasy},
		{"calculate is hard", "Calculate the molar mass of water", DifficultyHard},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := AssessDifficulty(tt.question); got != tt.expected {
				t.Errorf("AssessDifficulty(%q) = %q, expected %q", tt.question, got, tt.expected)
			}
		})
	}
}

func TestClassifyQuestion(t *testing.T) {
	tests := []struct {
		name     string
		question string
		expected string
	}{
		{"what is definition", "What is osmosis?", "definition"},
		{"how is process", "How do I balance this?", "process"},
		{"why is explanation", "Why does ice float?", "explanation"},
		{"solve is problem", "Solve for x in 2x+3=7", "problem"},
		{"compare is comparison", "Compare ionic and covalent bonds", "comparison"},
		{"fallback is general", "Ionic bonds.", "general"},
		{"first match wins", "What should I compare here?", "definition"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ClassifyQuestion(tt.question); got != tt.expected {
				t.Errorf("ClassifyQuestion(%q) = %q, expected %q", tt.question, got, tt.expected)
			}
		})
	}
}

func TestQuestionComplexity(t *testing.T) {
	tests := []struct {
		name     string
		question string
		expected string
	}{
		{"plain question is low", "Definition of a mole please", ComplexityLow},
		{"why alone is medium", "Why is the sky blue?", ComplexityMedium},
		{"compare is medium", "Compare acids and bases", ComplexityMedium},
		{"analyze is high", "Analyze this reaction", ComplexityHigh},
		{"why plus compare is high", "Why should we compare these?", ComplexityHigh},
		{
			"long question adds a point",
			"Could you please walk me through the general idea behind balancing a chemical equation for a simple reaction today",
			ComplexityMedium,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := QuestionComplexity(tt.question); got != tt.expected {
				t.Errorf("QuestionComplexity(%q) = %q, expected %q", tt.question, got, tt.expected)
			}
		})
	}
}
