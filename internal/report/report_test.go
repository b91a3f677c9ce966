package report

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/abhisek/prepiq/internal/mastery"
	"github.com/abhisek/prepiq/internal/performance"
	"github.com/abhisek/prepiq/internal/question"
	"github.com/abhisek/prepiq/internal/recommend"
)

func TestTopics(t *testing.T) {
	out := Topics([]mastery.TopicMastery{{
		Subject:            question.SubjectPhysics,
		Topic:              "Kinematics",
		MasteryScore:       67,
		QuestionsAttempted: 3,
		Strength:           mastery.StrengthWeak,
		Trend:              mastery.TrendImproving,
	}})
	assert.Contains(t, out, "Kinematics")
	assert.Contains(t, out, "Physics")
	assert.Contains(t, out, "67%")
	assert.Contains(t, out, "weak")
	assert.Contains(t, out, "↑")
}

func TestTopics_Empty(t *testing.T) {
	assert.Contains(t, Topics(nil), "No topics")
}

func TestPerformance(t *testing.T) {
	out := Performance(&performance.UserPerformance{
		OverallScore: 49,
		Subjects: []performance.SubjectPerformance{
			{
				Subject:         question.SubjectPhysics,
				AverageScore:    73,
				TopicMastery:    []mastery.TopicMastery{{Topic: "Optics"}},
				Strengths:       []string{"Optics"},
				Weaknesses:      []string{"Kinematics"},
				Recommendations: []string{"Practice"},
			},
			{Subject: question.SubjectChemistry},
		},
	})
	assert.Contains(t, out, "49%")
	assert.Contains(t, out, "73%")
	assert.Contains(t, out, "Optics")
	assert.Contains(t, out, "Kinematics")
	assert.Contains(t, out, "Chemistry")
}

func TestStats(t *testing.T) {
	out := Stats(&performance.OverallStats{
		TotalQuestions:        44,
		Accuracy:              72.73,
		TotalStudyTimeSeconds: 3725,
	}, &performance.StreakInfo{Current: 3, Longest: 4})
	assert.Contains(t, out, "44")
	assert.Contains(t, out, "72.73%")
	assert.Contains(t, out, "1h")
	assert.Contains(t, out, "Longest")
}

func TestRecommendations(t *testing.T) {
	out := Recommendations([]recommend.Recommendation{{
		Title:       "Practice",
		Description: "Kinematics",
		Priority:    recommend.PriorityHigh,
		ActionURL:   "/practice?subject=physics",
	}})
	assert.Contains(t, out, "[high]")
	assert.Contains(t, out, "Kinematics")
	assert.Contains(t, out, "/practice?subject=physics")

	assert.Contains(t, Recommendations(nil), "Nothing")
}

func TestQuestions(t *testing.T) {
	out := Questions([]question.Question{{
		ID:         "q1",
		Text:       strings.Repeat("x", 100),
		Subject:    question.SubjectMathematics,
		Topic:      "Algebra",
		Difficulty: question.DifficultyEasy,
	}})
	assert.Contains(t, out, "Algebra")
	assert.Contains(t, out, "...")
	assert.Contains(t, out, "1 questions")
}

func TestActivity(t *testing.T) {
	day := time.Date(2026, 5, 20, 0, 0, 0, 0, time.UTC)
	out := Activity([]performance.DayActivity{
		{Date: day, QuestionsSolved: 2, CorrectAnswers: 1, TimeSpentSeconds: 70, Accuracy: 50},
	})
	assert.Contains(t, out, "2026-05-20")
	assert.Contains(t, out, "50.0%")
	assert.Contains(t, out, "1m 10s")
}

func TestComparison(t *testing.T) {
	out := Comparison([]performance.SubjectComparison{
		{Subject: question.SubjectPhysics, Accuracy: 72.5, AverageScore: 73, TopicCount: 4, QuestionsAttempted: 40, WeakTopics: 2, StrongTopics: 2},
		{Subject: question.SubjectMathematics},
	})
	assert.Contains(t, out, "Physics")
	assert.Contains(t, out, "72.5%")
	assert.Contains(t, out, "Mathematics")
	assert.Contains(t, out, "73%")
}

func TestFormatDuration(t *testing.T) {
	assert.Equal(t, "45s", formatDuration(45))
	assert.Equal(t, "2m 05s", formatDuration(125))
	assert.Equal(t, "1h 02m", formatDuration(3725))
}

func TestBarClampsScore(t *testing.T) {
	assert.Contains(t, Bar(150, 10), "100%")
	assert.Contains(t, Bar(-5, 10), "  0%")
}
