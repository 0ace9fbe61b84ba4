package analysis

import "strings"

const (
	SubjectChemistry = "chemistry"
	SubjectMath      = "math"
	SubjectPhysics   = "physics"

	// GeneralTopic is assigned when no keyword table entry matches.
	GeneralTopic = "general"
)

// subjectTopics lists each subject's topics in canonical order. The order
// matters: suggested-next-topic selection walks this list front to back.
var subjectTopics = map[string][]string{
	SubjectChemistry: {"atomic structure", "periodic table", "chemical bonding", "acids and bases", "organic chemistry"},
	SubjectMath:      {"algebra", "geometry", "trigonometry", "calculus", "statistics"},
	SubjectPhysics:   {"mechanics", "thermodynamics", "electricity", "optics", "waves"},
}

var topicKeywords = map[string]map[string][]string{
	SubjectChemistry: {
		"atomic structure":  {"atom", "electron", "proton", "neutron", "nucleus", "orbital", "shell"},
		"periodic table":    {"periodic", "element", "group", "period", "metal", "nonmetal", "halogen"},
		"chemical bonding":  {"bond", "ionic", "covalent", "molecular", "valence", "electronegativity"},
		"acids and bases":   {"acid", "base", "ph", "acidic", "basic", "alkaline", "neutralization"},
		"organic chemistry": {"organic", "carbon", "hydrocarbon", "polymer", "alcohol", "ester", "benzene"},
	},
	SubjectMath: {
		"algebra":      {"equation", "variable", "solve", "linear", "quadratic", "polynomial"},
		"geometry":     {"triangle", "circle", "area", "volume", "angle", "theorem", "proof"},
		"trigonometry": {"sine", "cosine", "tangent", "trigonometric", "angle", "triangle"},
		"calculus":     {"derivative", "integral", "limit", "differentiation", "integration", "function"},
		"statistics":   {"mean", "median", "mode", "probability", "distribution", "standard deviation"},
	},
	SubjectPhysics: {
		"mechanics":      {"force", "motion", "velocity", "acceleration", "momentum", "energy", "work"},
		"thermodynamics": {"heat", "temperature", "entropy", "thermal", "gas", "pressure"},
		"electricity":    {"current", "voltage", "resistance", "circuit", "power", "charge"},
		"optics":         {"light", "reflection", "refraction", "lens", "mirror", "spectrum"},
		"waves":          {"wave", "frequency", "amplitude", "wavelength", "sound", "vibration"},
	},
}

// topicPrerequisites maps a topic to the topics a student should have seen
// before it.
var topicPrerequisites = map[string]map[string][]string{
	SubjectChemistry: {
		"chemical bonding":  {"atomic structure"},
		"acids and bases":   {"chemical bonding"},
		"organic chemistry": {"chemical bonding"},
	},
	SubjectMath: {
		"calculus":     {"algebra", "trigonometry"},
		"trigonometry": {"geometry"},
	},
	SubjectPhysics: {
		"thermodynamics": {"mechanics"},
		"electricity":    {"mechanics"},
	},
}

// Subjects returns the supported subjects.
func Subjects() []string {
	return []string{SubjectChemistry, SubjectMath, SubjectPhysics}
}

func IsValidSubject(subject string) bool {
	_, ok := subjectTopics[subject]
	return ok
}

// AllTopics returns the subject's topic list in canonical order.
func AllTopics(subject string) []string {
	return subjectTopics[subject]
}

// ExtractTopics maps free text to the subject's topics by case-insensitive
// keyword match. It never returns an empty set.
func ExtractTopics(question, subject string) []string {
	questionLower := strings.ToLower(question)

	var topics []string
	for _, topic := range subjectTopics[subject] {
		for _, keyword := range topicKeywords[subject][topic] {
			if strings.Contains(questionLower, keyword) {
				topics = append(topics, topic)
				break
			}
		}
	}

	if len(topics) == 0 {
		return []string{GeneralTopic}
	}
	return topics
}

// Prerequisites returns the topics required before the given topic.
func Prerequisites(subject, topic string) []string {
	return topicPrerequisites[subject][topic]
}
