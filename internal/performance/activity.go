package performance

import (
	"context"
	"time"
)

// StreakInfo is the user's run of consecutive practice days.
type StreakInfo struct {
	Current    int       `json:"current"`
	Longest    int       `json:"longest"`
	LastActive time.Time `json:"last_active,omitzero"`
}

// DayActivity is one UTC day of practice.
type DayActivity struct {
	Date             time.Time `json:"date"`
	QuestionsSolved  int       `json:"questions_solved"`
	CorrectAnswers   int       `json:"correct_answers"`
	TimeSpentSeconds int       `json:"time_spent_seconds"`
	Accuracy         float64   `json:"accuracy"` // percent correct that day, 0 when idle
}

func day(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Streak counts consecutive UTC days with at least one attempt. The current
// streak is still alive if the last active day is today or yesterday.
func (a *Aggregator) Streak(ctx context.Context, userID string, now time.Time) (*StreakInfo, error) {
	doc, err := a.docs.Load(ctx, userID)
	if err != nil {
		return nil, err
	}

	active := make(map[time.Time]bool)
	for _, at := range doc.Attempts {
		active[day(at.CreatedAt)] = true
	}
	info := &StreakInfo{}
	if len(active) == 0 {
		return info, nil
	}

	for d := range active {
		if d.After(info.LastActive) {
			info.LastActive = d
		}
		// Only count runs from their first day.
		if active[d.AddDate(0, 0, -1)] {
			continue
		}
		run := 1
		for active[d.AddDate(0, 0, run)] {
			run++
		}
		info.Longest = max(info.Longest, run)
	}

	today := day(now)
	if info.LastActive.Equal(today) || info.LastActive.Equal(today.AddDate(0, 0, -1)) {
		for d := info.LastActive; active[d]; d = d.AddDate(0, 0, -1) {
			info.Current++
		}
	}
	return info, nil
}

// Activity returns per-day totals for the last days days ending today,
// newest first. Days without attempts are included with zero values.
func (a *Aggregator) Activity(ctx context.Context, userID string, days int, now time.Time) ([]DayActivity, error) {
	doc, err := a.docs.Load(ctx, userID)
	if err != nil {
		return nil, err
	}
	if days <= 0 {
		return []DayActivity{}, nil
	}

	today := day(now)
	out := make([]DayActivity, days)
	index := make(map[time.Time]int, days)
	for i := range out {
		d := today.AddDate(0, 0, -i)
		out[i].Date = d
		index[d] = i
	}
	for _, at := range doc.Attempts {
		i, ok := index[day(at.CreatedAt)]
		if !ok {
			continue
		}
		out[i].QuestionsSolved++
		if at.IsCorrect {
			out[i].CorrectAnswers++
		}
		out[i].TimeSpentSeconds += at.TimeSpent
	}
	for i := range out {
		out[i].Accuracy = ratio(out[i].CorrectAnswers, out[i].QuestionsSolved)
	}
	return out, nil
}
