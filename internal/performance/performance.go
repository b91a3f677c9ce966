package performance

import (
	"context"
	"math"
	"slices"
	"time"

	"github.com/abhisek/prepiq/internal/attempts"
	"github.com/abhisek/prepiq/internal/mastery"
	"github.com/abhisek/prepiq/internal/question"
	"github.com/abhisek/prepiq/internal/recommend"
)

// DocumentLoader reads a user's performance document. *attempts.Store
// satisfies it.
type DocumentLoader interface {
	Load(ctx context.Context, userID string) (*attempts.Document, error)
}

// SubjectPerformance summarizes one subject for one user.
type SubjectPerformance struct {
	Subject         question.Subject       `json:"subject"`
	AverageScore    int                    `json:"average_score"`
	TopicMastery    []mastery.TopicMastery `json:"topic_mastery"`
	Strengths       []string               `json:"strengths"`
	Weaknesses      []string               `json:"weaknesses"`
	Recommendations []string               `json:"recommendations"`
}

// UserPerformance summarizes all subjects for one user.
type UserPerformance struct {
	UserID       string               `json:"user_id"`
	OverallScore int                  `json:"overall_score"`
	Subjects     []SubjectPerformance `json:"subjects"`
	UpdatedAt    time.Time            `json:"updated_at"`
}

// OverallStats are whole-history totals across every topic.
type OverallStats struct {
	TotalQuestions int     `json:"total_questions"`
	CorrectAnswers int     `json:"correct_answers"`
	Accuracy       float64 `json:"accuracy"`
	AverageMastery float64 `json:"average_mastery"`
	TopicCount     int     `json:"topic_count"`
	WeakTopics     int     `json:"weak_topics"`
	AverageTopics  int     `json:"average_topics"`
	StrongTopics   int     `json:"strong_topics"`

	TotalStudyTimeSeconds int     `json:"total_study_time_seconds"`
	TestsCompleted        int     `json:"tests_completed"`
	AverageTestScore      float64 `json:"average_test_score"`
}

// SubjectComparison sets one subject's totals beside the others.
type SubjectComparison struct {
	Subject            question.Subject `json:"subject"`
	Accuracy           float64          `json:"accuracy"`
	AverageScore       int              `json:"average_score"`
	TopicCount         int              `json:"topic_count"`
	QuestionsAttempted int              `json:"questions_attempted"`
	WeakTopics         int              `json:"weak_topics"`
	StrongTopics       int              `json:"strong_topics"`
}

// Aggregator rolls topic mastery up into subject and user summaries.
// It only reads.
type Aggregator struct {
	docs DocumentLoader
}

func NewAggregator(docs DocumentLoader) *Aggregator {
	return &Aggregator{docs: docs}
}

// load returns the user's document with trends filled in.
func (a *Aggregator) load(ctx context.Context, userID string) (*attempts.Document, error) {
	doc, err := a.docs.Load(ctx, userID)
	if err != nil {
		return nil, err
	}
	doc.TopicMasteries = mastery.WithTrends(doc.TopicMasteries, doc.Attempts)
	return doc, nil
}

// SubjectPerformance returns the summary for one subject.
func (a *Aggregator) SubjectPerformance(ctx context.Context, userID string, subject question.Subject) (*SubjectPerformance, error) {
	doc, err := a.load(ctx, userID)
	if err != nil {
		return nil, err
	}
	sp := subjectPerformance(subject, doc.TopicMasteries)
	return &sp, nil
}

// UserPerformance returns every subject's summary and their mean.
func (a *Aggregator) UserPerformance(ctx context.Context, userID string) (*UserPerformance, error) {
	doc, err := a.load(ctx, userID)
	if err != nil {
		return nil, err
	}

	up := &UserPerformance{UserID: userID, UpdatedAt: doc.UpdatedAt}
	sum := 0
	for _, subject := range question.AllSubjects() {
		sp := subjectPerformance(subject, doc.TopicMasteries)
		sum += sp.AverageScore
		up.Subjects = append(up.Subjects, sp)
	}
	up.OverallScore = mastery.Accuracy(sum, 100*len(up.Subjects))
	return up, nil
}

func subjectPerformance(subject question.Subject, all []mastery.TopicMastery) SubjectPerformance {
	sp := SubjectPerformance{
		Subject:         subject,
		TopicMastery:    []mastery.TopicMastery{},
		Strengths:       []string{},
		Weaknesses:      []string{},
		Recommendations: []string{},
	}
	var strong, weak []mastery.TopicMastery
	for _, tm := range all {
		if tm.Subject != subject {
			continue
		}
		sp.TopicMastery = append(sp.TopicMastery, tm)
		switch tm.Strength {
		case mastery.StrengthStrong:
			strong = append(strong, tm)
		case mastery.StrengthWeak:
			weak = append(weak, tm)
		case mastery.StrengthAverage:
		}
	}
	sp.AverageScore = recommend.AverageScore(sp.TopicMastery)

	sortDescending(strong)
	sortAscending(weak)
	for _, tm := range strong {
		sp.Strengths = append(sp.Strengths, tm.Topic)
	}
	for _, tm := range weak {
		sp.Weaknesses = append(sp.Weaknesses, tm.Topic)
	}
	for _, r := range recommend.ForSubject(subject, sp.TopicMastery) {
		sp.Recommendations = append(sp.Recommendations, r.Description)
	}
	return sp
}

// CompareSubjects returns one entry per subject in declared order,
// including subjects with no attempts yet.
func (a *Aggregator) CompareSubjects(ctx context.Context, userID string) ([]SubjectComparison, error) {
	doc, err := a.docs.Load(ctx, userID)
	if err != nil {
		return nil, err
	}

	var out []SubjectComparison
	for _, subject := range question.AllSubjects() {
		sc := SubjectComparison{Subject: subject}
		var topics []mastery.TopicMastery
		correct := 0
		for _, tm := range doc.TopicMasteries {
			if tm.Subject != subject {
				continue
			}
			topics = append(topics, tm)
			sc.QuestionsAttempted += tm.QuestionsAttempted
			correct += tm.QuestionsCorrect
			switch tm.Strength {
			case mastery.StrengthWeak:
				sc.WeakTopics++
			case mastery.StrengthStrong:
				sc.StrongTopics++
			case mastery.StrengthAverage:
			}
		}
		sc.TopicCount = len(topics)
		sc.AverageScore = recommend.AverageScore(topics)
		sc.Accuracy = ratio(correct, sc.QuestionsAttempted)
		out = append(out, sc)
	}
	return out, nil
}

// OverallStats returns totals across all topics and tests.
func (a *Aggregator) OverallStats(ctx context.Context, userID string) (*OverallStats, error) {
	doc, err := a.docs.Load(ctx, userID)
	if err != nil {
		return nil, err
	}

	st := &OverallStats{TopicCount: len(doc.TopicMasteries)}
	masterySum := 0
	for _, tm := range doc.TopicMasteries {
		st.TotalQuestions += tm.QuestionsAttempted
		st.CorrectAnswers += tm.QuestionsCorrect
		masterySum += tm.MasteryScore
		switch tm.Strength {
		case mastery.StrengthWeak:
			st.WeakTopics++
		case mastery.StrengthAverage:
			st.AverageTopics++
		case mastery.StrengthStrong:
			st.StrongTopics++
		}
	}
	st.Accuracy = ratio(st.CorrectAnswers, st.TotalQuestions)
	st.AverageMastery = mean(masterySum, st.TopicCount)

	type testTally struct{ total, correct int }
	var testOrder []string
	tests := make(map[string]*testTally)
	for _, at := range doc.Attempts {
		st.TotalStudyTimeSeconds += at.TimeSpent
		if at.TestID == "" {
			continue
		}
		tt, ok := tests[at.TestID]
		if !ok {
			tt = &testTally{}
			tests[at.TestID] = tt
			testOrder = append(testOrder, at.TestID)
		}
		tt.total++
		if at.IsCorrect {
			tt.correct++
		}
	}
	st.TestsCompleted = len(testOrder)
	if st.TestsCompleted > 0 {
		var sum float64
		for _, id := range testOrder {
			sum += 100 * float64(tests[id].correct) / float64(tests[id].total)
		}
		st.AverageTestScore = round2(sum / float64(st.TestsCompleted))
	}
	return st, nil
}

// WeakTopics returns topics scoring below threshold, worst first.
func (a *Aggregator) WeakTopics(ctx context.Context, userID string, threshold int) ([]mastery.TopicMastery, error) {
	doc, err := a.load(ctx, userID)
	if err != nil {
		return nil, err
	}
	out := []mastery.TopicMastery{}
	for _, tm := range doc.TopicMasteries {
		if tm.MasteryScore < threshold {
			out = append(out, tm)
		}
	}
	sortAscending(out)
	return out, nil
}

// StrongTopics returns topics scoring at or above threshold, best first.
func (a *Aggregator) StrongTopics(ctx context.Context, userID string, threshold int) ([]mastery.TopicMastery, error) {
	doc, err := a.load(ctx, userID)
	if err != nil {
		return nil, err
	}
	out := []mastery.TopicMastery{}
	for _, tm := range doc.TopicMasteries {
		if tm.MasteryScore >= threshold {
			out = append(out, tm)
		}
	}
	sortDescending(out)
	return out, nil
}

func sortAscending(tms []mastery.TopicMastery) {
	slices.SortStableFunc(tms, func(a, b mastery.TopicMastery) int {
		return a.MasteryScore - b.MasteryScore
	})
}

func sortDescending(tms []mastery.TopicMastery) {
	slices.SortStableFunc(tms, func(a, b mastery.TopicMastery) int {
		return b.MasteryScore - a.MasteryScore
	})
}

// ratio returns 100*n/d rounded to two decimals, 0 when d is 0.
func ratio(n, d int) float64 {
	if d == 0 {
		return 0
	}
	return round2(100 * float64(n) / float64(d))
}

func mean(sum, n int) float64 {
	if n == 0 {
		return 0
	}
	return round2(float64(sum) / float64(n))
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
