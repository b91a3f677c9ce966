package question

import (
	"fmt"
	"strings"
)

// Subject is an exam subject.
type Subject string

const (
	SubjectPhysics     Subject = "physics"
	SubjectChemistry   Subject = "chemistry"
	SubjectMathematics Subject = "mathematics"
)

// AllSubjects returns all subjects in display order.
func AllSubjects() []Subject {
	return []Subject{
		SubjectPhysics,
		SubjectChemistry,
		SubjectMathematics,
	}
}

// SubjectDisplayName returns a human-readable name for a subject.
func SubjectDisplayName(s Subject) string {
	switch s {
	case SubjectPhysics:
		return "Physics"
	case SubjectChemistry:
		return "Chemistry"
	case SubjectMathematics:
		return "Mathematics"
	default:
		return string(s)
	}
}

// ParseSubject converts user input to a Subject, ignoring case.
func ParseSubject(s string) (Subject, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	switch Subject(s) {
	case SubjectPhysics, SubjectChemistry, SubjectMathematics:
		return Subject(s), nil
	case "maths", "math":
		return SubjectMathematics, nil
	}
	return "", fmt.Errorf("unknown subject %q", s)
}

// Difficulty is a question difficulty bucket.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// AllDifficulties returns the difficulty buckets from easiest to hardest.
func AllDifficulties() []Difficulty {
	return []Difficulty{DifficultyEasy, DifficultyMedium, DifficultyHard}
}

// ParseDifficulty converts user input to a Difficulty.
func ParseDifficulty(s string) (Difficulty, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	switch Difficulty(s) {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return Difficulty(s), nil
	}
	return "", fmt.Errorf("unknown difficulty %q", s)
}
