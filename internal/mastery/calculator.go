package mastery

import (
	"math"
	"time"
)

const (
	// TrendMinAttempts is the fewest attempts that can produce a non-stable trend.
	TrendMinAttempts = 4

	// TrendWindow is the size of the recent and older accuracy windows.
	TrendWindow = 5

	// TrendMargin is how many percentage points the windows must differ by.
	TrendMargin = 5
)

// Accuracy returns round(100*correct/total), or 0 when total is 0.
func Accuracy(correct, total int) int {
	if total <= 0 {
		return 0
	}
	return int(math.Round(100 * float64(correct) / float64(total)))
}

type topicTally struct {
	key     string
	first   *TestAttempt
	total   int
	correct int
}

// Recompute rebuilds every topic mastery from the full attempt history.
// Entries already in existing are replaced in place (keeping their trend);
// new topics are appended in the order they first appear in attempts.
// LastAttemptDate is set to now for every recomputed entry.
func Recompute(userID string, attempts []TestAttempt, existing []TopicMastery, now time.Time) []TopicMastery {
	var order []*topicTally
	tallies := make(map[string]*topicTally)
	for i := range attempts {
		a := &attempts[i]
		key := a.Key()
		t, ok := tallies[key]
		if !ok {
			t = &topicTally{key: key, first: a}
			tallies[key] = t
			order = append(order, t)
		}
		t.total++
		if a.IsCorrect {
			t.correct++
		}
	}

	result := make([]TopicMastery, len(existing))
	copy(result, existing)
	index := make(map[string]int, len(result))
	for i, tm := range result {
		index[tm.ID] = i
	}

	for _, t := range order {
		score := Accuracy(t.correct, t.total)
		tm := TopicMastery{
			ID:                 t.key,
			UserID:             userID,
			Subject:            t.first.Subject,
			Topic:              t.first.Topic,
			MasteryScore:       score,
			QuestionsAttempted: t.total,
			QuestionsCorrect:   t.correct,
			LastAttemptDate:    now,
			Trend:              TrendStable,
			Strength:           StrengthFor(score),
		}
		if i, ok := index[t.key]; ok {
			if result[i].Trend != "" {
				tm.Trend = result[i].Trend
			}
			result[i] = tm
			continue
		}
		index[t.key] = len(result)
		result = append(result, tm)
	}
	return result
}

// TopicAttempts returns the attempts contributing to key, in history order.
func TopicAttempts(attempts []TestAttempt, key string) []TestAttempt {
	var out []TestAttempt
	for i := range attempts {
		if attempts[i].Key() == key {
			out = append(out, attempts[i])
		}
	}
	return out
}

// TrendFor compares accuracy over the most recent TrendWindow attempts with
// the TrendWindow attempts before them. attempts must be in chronological
// order and belong to a single topic.
func TrendFor(attempts []TestAttempt) Trend {
	n := len(attempts)
	if n < TrendMinAttempts {
		return TrendStable
	}

	recent := attempts[max(0, n-TrendWindow):]
	older := attempts[max(0, n-2*TrendWindow):max(0, n-TrendWindow)]

	recentAcc := windowAccuracy(recent)
	olderAcc := windowAccuracy(older)

	switch {
	case recentAcc > olderAcc+TrendMargin:
		return TrendImproving
	case recentAcc < olderAcc-TrendMargin:
		return TrendDeclining
	default:
		return TrendStable
	}
}

func windowAccuracy(window []TestAttempt) int {
	correct := 0
	for _, a := range window {
		if a.IsCorrect {
			correct++
		}
	}
	return Accuracy(correct, len(window))
}

// WithTrends returns a copy of masteries with Trend computed from attempts.
func WithTrends(masteries []TopicMastery, attempts []TestAttempt) []TopicMastery {
	out := make([]TopicMastery, len(masteries))
	for i, tm := range masteries {
		tm.Trend = TrendFor(TopicAttempts(attempts, tm.ID))
		out[i] = tm
	}
	return out
}
