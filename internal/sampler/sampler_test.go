package sampler

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/prepiq/internal/mastery"
	"github.com/abhisek/prepiq/internal/question"
)

func makeQuestions(subject question.Subject, topic string, d question.Difficulty, n int) []question.Question {
	qs := make([]question.Question, n)
	for i := range qs {
		qs[i] = question.Question{
			ID:         fmt.Sprintf("%s-%s-%s-%d", subject, topic, d, i),
			Subject:    subject,
			Topic:      topic,
			Difficulty: d,
		}
	}
	return qs
}

func testBank(t *testing.T) *question.Bank {
	t.Helper()
	var qs []question.Question
	qs = append(qs, makeQuestions(question.SubjectPhysics, "optics", question.DifficultyEasy, 4)...)
	qs = append(qs, makeQuestions(question.SubjectPhysics, "optics", question.DifficultyMedium, 3)...)
	qs = append(qs, makeQuestions(question.SubjectPhysics, "waves", question.DifficultyMedium, 3)...)
	qs = append(qs, makeQuestions(question.SubjectPhysics, "waves", question.DifficultyHard, 1)...)
	qs = append(qs, makeQuestions(question.SubjectChemistry, "bonding", question.DifficultyEasy, 3)...)
	b, err := question.NewBank(qs)
	require.NoError(t, err)
	return b
}

func countBy(qs []question.Question, key func(question.Question) string) map[string]int {
	m := make(map[string]int)
	for _, q := range qs {
		m[key(q)]++
	}
	return m
}

func assertUnique(t *testing.T, qs []question.Question) {
	t.Helper()
	seen := make(map[string]bool)
	for _, q := range qs {
		assert.False(t, seen[q.ID], "duplicate %s", q.ID)
		seen[q.ID] = true
	}
}

func TestByDistribution_UnderFillsShortBucket(t *testing.T) {
	s := New(testBank(t), 1)

	got, err := s.ByDistribution(context.Background(),
		[]SubjectQuota{{Subject: question.SubjectPhysics, Count: 10}},
		[]DifficultyQuota{
			{Difficulty: question.DifficultyEasy, Count: 3},
			{Difficulty: question.DifficultyMedium, Count: 5},
			{Difficulty: question.DifficultyHard, Count: 2},
		})
	require.NoError(t, err)

	assert.Len(t, got, 9)
	byDiff := countBy(got, func(q question.Question) string { return string(q.Difficulty) })
	assert.Equal(t, map[string]int{"easy": 3, "medium": 5, "hard": 1}, byDiff)
	assertUnique(t, got)

	// First-N within each bucket, in repository order.
	assert.Equal(t, "physics-optics-easy-0", got[0].ID)
	assert.Equal(t, "physics-optics-easy-2", got[2].ID)
	assert.Equal(t, "physics-optics-medium-0", got[3].ID)
	assert.Equal(t, "physics-waves-medium-1", got[7].ID)
}

func TestByDistribution_SubjectQuotaCapsBuckets(t *testing.T) {
	s := New(testBank(t), 1)

	got, err := s.ByDistribution(context.Background(),
		[]SubjectQuota{{Subject: question.SubjectPhysics, Count: 4}},
		[]DifficultyQuota{
			{Difficulty: question.DifficultyEasy, Count: 3},
			{Difficulty: question.DifficultyMedium, Count: 3},
		})
	require.NoError(t, err)

	byDiff := countBy(got, func(q question.Question) string { return string(q.Difficulty) })
	assert.Equal(t, map[string]int{"easy": 3, "medium": 1}, byDiff)
}

func TestByDistribution_ShuffledWithoutDifficulties(t *testing.T) {
	s := New(testBank(t), 7)

	got, err := s.ByDistribution(context.Background(), []SubjectQuota{
		{Subject: question.SubjectPhysics, Count: 5},
		{Subject: question.SubjectChemistry, Count: 10},
		{Subject: question.SubjectMathematics, Count: 2},
	}, nil)
	require.NoError(t, err)

	bySubject := countBy(got, func(q question.Question) string { return string(q.Subject) })
	assert.Equal(t, map[string]int{"physics": 5, "chemistry": 3}, bySubject)
	assertUnique(t, got)
	// Subjects stay in declared order.
	for _, q := range got[:5] {
		assert.Equal(t, question.SubjectPhysics, q.Subject)
	}
}

func TestSeedIsDeterministic(t *testing.T) {
	bank := testBank(t)
	quotas := []SubjectQuota{{Subject: question.SubjectPhysics, Count: 6}}

	a, err := New(bank, 42).ByDistribution(context.Background(), quotas, nil)
	require.NoError(t, err)
	b, err := New(bank, 42).ByDistribution(context.Background(), quotas, nil)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestRandom(t *testing.T) {
	s := New(testBank(t), 3)
	ctx := context.Background()

	got, err := s.Random(ctx, 5)
	require.NoError(t, err)
	assert.Len(t, got, 5)
	assertUnique(t, got)

	all, err := s.Random(ctx, 100)
	require.NoError(t, err)
	assert.Len(t, all, 14)

	none, err := s.Random(ctx, -1)
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestBySubject(t *testing.T) {
	s := New(testBank(t), 3)
	ctx := context.Background()

	ordered, err := s.BySubject(ctx, question.SubjectChemistry, 2, false)
	require.NoError(t, err)
	require.Len(t, ordered, 2)
	assert.Equal(t, "chemistry-bonding-easy-0", ordered[0].ID)
	assert.Equal(t, "chemistry-bonding-easy-1", ordered[1].ID)

	shuffled, err := s.BySubject(ctx, question.SubjectChemistry, 10, true)
	require.NoError(t, err)
	assert.Len(t, shuffled, 3)

	empty, err := s.BySubject(ctx, question.SubjectMathematics, 5, true)
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func weakTopic(subject question.Subject, topic string, score int) mastery.TopicMastery {
	return mastery.TopicMastery{Subject: subject, Topic: topic, MasteryScore: score, Strength: mastery.StrengthFor(score)}
}

func TestFocusPlan(t *testing.T) {
	weak := []mastery.TopicMastery{
		weakTopic(question.SubjectPhysics, "waves", 20),
		weakTopic(question.SubjectPhysics, "optics", 50),
	}

	plan := FocusPlan(weak, 10, 0.7)
	assert.Equal(t, 3, plan.General)
	assert.Equal(t, []TopicQuota{
		{Subject: question.SubjectPhysics, Topic: "waves", Count: 4},
		{Subject: question.SubjectPhysics, Topic: "optics", Count: 3},
	}, plan.Focus)
	assert.Equal(t, 10, plan.Total())

	assert.Equal(t, Plan{General: 10}, FocusPlan(nil, 10, 0.7))
	assert.Equal(t, Plan{}, FocusPlan(weak, 0, 0.7))
	assert.Equal(t, 3, FocusPlan(weak, 10, 0).General, "invalid ratio falls back to default")
}

func TestFocusPlan_MoreTopicsThanBudget(t *testing.T) {
	weak := []mastery.TopicMastery{
		weakTopic(question.SubjectPhysics, "a", 10),
		weakTopic(question.SubjectPhysics, "b", 20),
		weakTopic(question.SubjectPhysics, "c", 30),
	}
	plan := FocusPlan(weak, 2, 0.5)
	assert.Equal(t, 1, plan.General)
	require.Len(t, plan.Focus, 1)
	assert.Equal(t, "a", plan.Focus[0].Topic)
	assert.Equal(t, 2, plan.Total())
}

func TestFromPlan(t *testing.T) {
	s := New(testBank(t), 9)

	plan := Plan{
		Focus: []TopicQuota{
			{Subject: question.SubjectPhysics, Topic: "waves", Count: 10},
			{Subject: question.SubjectChemistry, Topic: "bonding", Count: 2},
		},
		General: 3,
	}
	got, err := s.FromPlan(context.Background(), plan)
	require.NoError(t, err)

	// waves has only 4 questions.
	assert.Len(t, got, 4+2+3)
	assertUnique(t, got)
	for _, q := range got[:4] {
		assert.Equal(t, "waves", q.Topic)
	}
	for _, q := range got[4:6] {
		assert.Equal(t, "bonding", q.Topic)
	}
}

func TestFromPlan_TopicSpellingVariants(t *testing.T) {
	var qs []question.Question
	qs = append(qs, makeQuestions(question.SubjectPhysics, "Laws of Motion", question.DifficultyMedium, 10)...)
	qs = append(qs, makeQuestions(question.SubjectChemistry, "bonding", question.DifficultyEasy, 10)...)
	b, err := question.NewBank(qs)
	require.NoError(t, err)

	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	var attempts []mastery.TestAttempt
	for i, topic := range []string{"laws of motion", "Laws of Motion", "laws of  motion"} {
		attempts = append(attempts, mastery.TestAttempt{
			ID: fmt.Sprint(i), UserID: "u1", Subject: question.SubjectPhysics, Topic: topic, CreatedAt: now,
		})
	}
	tms := mastery.Recompute("u1", attempts, nil, now)
	require.Len(t, tms, 1)
	assert.Equal(t, "laws of motion", tms[0].Topic)

	got, err := New(b, 5).FromPlan(context.Background(), FocusPlan(tms, 10, 0.7))
	require.NoError(t, err)
	require.Len(t, got, 10)
	assertUnique(t, got)

	focused := countBy(got, func(q question.Question) string { return mastery.TopicKey(q.Subject, q.Topic) })
	assert.GreaterOrEqual(t, focused["physics_laws-of-motion"], 7)
}
