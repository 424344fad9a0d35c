package studyplan

import "strings"

// Subject is a selectable subject with suggested topics.
type Subject struct {
	Key    string
	Label  string
	Topics []string
}

// Subjects lists the subjects offered in the plan form.
var Subjects = []Subject{
	{"math", "Mathematics", []string{"Algebra", "Calculus", "Geometry", "Statistics", "Trigonometry"}},
	{"physics", "Physics", []string{"Mechanics", "Thermodynamics", "Electromagnetism", "Optics", "Quantum Physics"}},
	{"chemistry", "Chemistry", []string{"Atomic Structure", "Chemical Bonding", "Reactions", "Thermodynamics", "Organic Chemistry"}},
	{"biology", "Biology", []string{"Cell Biology", "Genetics", "Ecology", "Evolution", "Human Body"}},
	{"cs", "Computer Science", []string{"Programming", "Data Structures", "Algorithms", "Database", "Networking"}},
	{"english", "English", []string{"Grammar", "Writing", "Reading", "Speaking", "Vocabulary"}},
	{"history", "History", []string{"Ancient History", "Medieval History", "Modern History", "World Wars", "Cultural History"}},
	{"geography", "Geography", []string{"Physical Geography", "Human Geography", "Climate", "Maps", "Resources"}},
}

// SuggestTopics returns the suggested topics for a subject key or label.
// Unknown subjects have no suggestions.
func SuggestTopics(subject string) []string {
	subject = strings.ToLower(strings.TrimSpace(subject))
	for _, s := range Subjects {
		if s.Key == subject || strings.ToLower(s.Label) == subject {
			return s.Topics
		}
	}
	return nil
}
