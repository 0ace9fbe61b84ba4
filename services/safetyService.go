package services

import (
	"log"
	"strings"
)

// RedirectMessage is shown whenever the filter rejects a message.
const RedirectMessage = "Sorry, I've been trained to answer only science-related questions (Chemistry, Physics, and Mathematics) and cannot respond to other topics or topics with sensitive questions. Please ask me about general science concepts instead!"

var blockedKeywords = []string{
	"weapon", "bomb", "explosive", "gun", "knife", "violence", "kill", "murder", "suicide",
	"drug", "narcotic", "cocaine", "heroin", "marijuana", "cannabis", "addiction",
	"politics", "political", "government", "president", "minister", "election", "vote",
	"democracy", "dictatorship", "communist", "capitalist", "socialist",
	"porn", "sex", "sexual", "nude", "naked", "erotic", "adult", "xxx",
	"hack", "hacking", "illegal", "cheat", "fraud", "scam", "steal", "piracy",
	"history", "geography", "literature", "poetry", "music", "art", "painting",
	"cooking", "recipe", "food", "sports", "game", "movie", "film", "celebrity",
	"fashion", "clothing", "shopping", "business", "finance", "money", "investment",
}

var scienceKeywords = []string{
	// chemistry
	"atom", "molecule", "element", "compound", "reaction", "acid", "base", "salt",
	"organic", "inorganic", "periodic", "bond", "valence", "electron", "proton",
	"neutron", "ion", "catalyst", "solution", "mixture", "chemical", "formula",
	"equation", "oxidation", "reduction", "ph", "mole", "molarity", "carbon",
	"hydrogen", "oxygen", "nitrogen", "halogen", "metal", "nonmetal",
	// math
	"algebra", "geometry", "trigonometry", "calculus", "derivative", "integral",
	"function", "graph", "coordinate", "triangle", "circle", "square", "rectangle",
	"polynomial", "quadratic", "linear", "logarithm", "exponential", "probability",
	"statistics", "matrix", "vector", "angle", "sine", "cosine", "tangent",
	"theorem", "proof", "solve", "calculate", "number", "prime", "fraction",
	"decimal", "percentage", "ratio", "proportion",
	// physics
	"force", "motion", "velocity", "acceleration", "mass", "energy", "power",
	"work", "momentum", "friction", "gravity", "pressure", "temperature", "heat",
	"light", "sound", "wave", "frequency", "amplitude", "electricity", "current",
	"voltage", "resistance", "circuit", "magnetism", "optics", "lens", "mirror",
	"refraction", "reflection", "thermodynamics", "mechanics", "kinematics",
	"dynamics", "nuclear", "radioactive", "photon",
}

var academicTerms = []string{
	"explain", "what is", "how to", "solve", "calculate", "find", "determine",
	"prove", "derive", "show", "demonstrate", "example", "formula", "method",
	"step", "problem", "question", "answer", "cbse", "grade", "class", "chapter",
	"unit", "topic",
}

var followUpPhrases = []string{
	"yes", "yes please", "sure", "ok", "okay", "go ahead", "continue", "more",
	"deeper", "detail", "details", "further", "quiz", "test", "check", "understanding",
	"practice", "examples", "help", "specific", "parts", "overall", "concept",
	"step by step", "worked examples", "simpler", "simple", "harder", "difficult",
	"i want", "i would like", "can you", "please", "tell me", "show me",
	"a", "b", "c", "d", "1", "2", "3", "4",
	"option", "choice", "answer is", "my answer", "i think", "i choose",
}

// SafetyService keeps the tutor on science topics with plain substring
// matching. Blocked keywords always reject; science keywords, academic
// phrasing, follow-up phrases and very short messages pass. The filter can
// be disabled outright through configuration.
type SafetyService struct {
	enabled bool
}

func NewSafetyService(enabled bool) *SafetyService {
	if !enabled {
		log.Printf("[INFO] Content safety filter is disabled")
	}
	return &SafetyService{enabled: enabled}
}

func (s *SafetyService) IsQuestionAppropriate(message string) bool {
	if !s.enabled {
		return true
	}

	messageLower := strings.ToLower(message)

	for _, keyword := range blockedKeywords {
		if strings.Contains(messageLower, keyword) {
			return false
		}
	}

	for _, keyword := range scienceKeywords {
		if strings.Contains(messageLower, keyword) {
			return true
		}
	}

	for _, term := range academicTerms {
		if strings.Contains(messageLower, term) {
			return true
		}
	}

	for _, phrase := range followUpPhrases {
		if strings.Contains(messageLower, phrase) {
			return true
		}
	}

	// Short messages are almost always quiz answers or quick follow-ups.
	return len(strings.TrimSpace(message)) <= 20
}
