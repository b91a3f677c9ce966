// Package report renders engine results for the terminal.
package report

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/prepiq/internal/mastery"
	"github.com/abhisek/prepiq/internal/performance"
	"github.com/abhisek/prepiq/internal/question"
	"github.com/abhisek/prepiq/internal/recommend"
)

const barWidth = 20

func truncate(s string, n int) string {
	if len([]rune(s)) <= n {
		return s
	}
	return string([]rune(s)[:n-3]) + "..."
}

// Topics renders one line per topic mastery.
func Topics(tms []mastery.TopicMastery) string {
	if len(tms) == 0 {
		return Dim.Render("No topics practiced yet.")
	}
	var b strings.Builder
	b.WriteString(Heading.Render(fmt.Sprintf("%-28s  %-12s  %-26s  %-8s  %5s  %s",
		"Topic", "Subject", "Mastery", "Strength", "Tries", "Trend")))
	b.WriteString("\n")
	for _, tm := range tms {
		fmt.Fprintf(&b, "%s  %s  %s  %s  %5d  %s\n",
			Body.Render(fmt.Sprintf("%-28s", truncate(tm.Topic, 28))),
			Dim.Render(fmt.Sprintf("%-12s", question.SubjectDisplayName(tm.Subject))),
			Bar(tm.MasteryScore, barWidth),
			StrengthStyle(tm.Strength).Render(fmt.Sprintf("%-8s", tm.Strength)),
			tm.QuestionsAttempted,
			TrendGlyph(tm.Trend),
		)
	}
	return strings.TrimRight(b.String(), "\n")
}

// Performance renders a user's per-subject summary.
func Performance(up *performance.UserPerformance) string {
	var b strings.Builder
	b.WriteString(Title.Render("Overall") + "  " + Bar(up.OverallScore, barWidth) + "\n")

	for _, sp := range up.Subjects {
		b.WriteString("\n")
		b.WriteString(Subject(sp))
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

// Subject renders one subject's summary as a card.
func Subject(sp performance.SubjectPerformance) string {
	var lines []string
	lines = append(lines, Heading.Render(fmt.Sprintf("%-12s", question.SubjectDisplayName(sp.Subject)))+"  "+Bar(sp.AverageScore, barWidth))

	if len(sp.TopicMastery) == 0 {
		lines = append(lines, Dim.Render("No attempts yet."))
		return Card.Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
	}
	if len(sp.Strengths) > 0 {
		lines = append(lines, StrengthStyle(mastery.StrengthStrong).Render("Strengths: ")+Body.Render(strings.Join(sp.Strengths, ", ")))
	}
	if len(sp.Weaknesses) > 0 {
		lines = append(lines, StrengthStyle(mastery.StrengthWeak).Render("Weaknesses: ")+Body.Render(strings.Join(sp.Weaknesses, ", ")))
	}
	for _, r := range sp.Recommendations {
		lines = append(lines, Dim.Render("• "+r))
	}
	return Card.Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

// Stats renders overall statistics together with the practice streak.
func Stats(st *performance.OverallStats, streak *performance.StreakInfo) string {
	rows := [][2]string{
		{"Questions answered", fmt.Sprintf("%d", st.TotalQuestions)},
		{"Correct answers", fmt.Sprintf("%d", st.CorrectAnswers)},
		{"Accuracy", fmt.Sprintf("%.2f%%", st.Accuracy)},
		{"Average mastery", fmt.Sprintf("%.2f", st.AverageMastery)},
		{"Topics", fmt.Sprintf("%d (%d strong, %d average, %d weak)", st.TopicCount, st.StrongTopics, st.AverageTopics, st.WeakTopics)},
		{"Tests completed", fmt.Sprintf("%d", st.TestsCompleted)},
		{"Average test score", fmt.Sprintf("%.2f%%", st.AverageTestScore)},
		{"Study time", formatDuration(st.TotalStudyTimeSeconds)},
	}
	if streak != nil {
		rows = append(rows,
			[2]string{"Current streak", fmt.Sprintf("%d days", streak.Current)},
			[2]string{"Longest streak", fmt.Sprintf("%d days", streak.Longest)},
		)
	}

	var lines []string
	lines = append(lines, Title.Render("Statistics"))
	for _, r := range rows {
		lines = append(lines, Dim.Render(fmt.Sprintf("%-20s", r[0]))+Body.Render(r[1]))
	}
	return Card.Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

// Recommendations renders ranked recommendations.
func Recommendations(recs []recommend.Recommendation) string {
	if len(recs) == 0 {
		return Dim.Render("Nothing to recommend yet. Record some attempts first.")
	}
	var b strings.Builder
	for i, r := range recs {
		fmt.Fprintf(&b, "%2d. %s %s\n    %s\n",
			i+1,
			PriorityStyle(r.Priority).Render(fmt.Sprintf("[%s]", r.Priority)),
			Body.Bold(true).Render(r.Title),
			Dim.Render(r.Description),
		)
		if r.ActionURL != "" {
			fmt.Fprintf(&b, "    %s\n", Dim.Italic(true).Render(r.ActionURL))
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

// Questions renders a question list, one per line.
func Questions(qs []question.Question) string {
	if len(qs) == 0 {
		return Dim.Render("No questions found.")
	}
	var b strings.Builder
	b.WriteString(Heading.Render(fmt.Sprintf("%-16s  %-12s  %-24s  %-6s  %s",
		"ID", "Subject", "Topic", "Level", "Question")))
	b.WriteString("\n")
	for _, q := range qs {
		fmt.Fprintf(&b, "%-16s  %-12s  %-24s  %-6s  %s\n",
			truncate(q.ID, 16),
			question.SubjectDisplayName(q.Subject),
			truncate(q.Topic, 24),
			q.Difficulty,
			truncate(q.Text, 60),
		)
	}
	fmt.Fprintf(&b, "\n%s", Dim.Render(fmt.Sprintf("%d questions", len(qs))))
	return b.String()
}

// Activity renders daily practice totals.
func Activity(days []performance.DayActivity) string {
	var b strings.Builder
	b.WriteString(Heading.Render(fmt.Sprintf("%-10s  %6s  %7s  %8s  %s", "Date", "Solved", "Correct", "Accuracy", "Time")))
	b.WriteString("\n")
	for _, d := range days {
		line := fmt.Sprintf("%-10s  %6d  %7d  %7.1f%%  %s",
			d.Date.Format("2006-01-02"), d.QuestionsSolved, d.CorrectAnswers, d.Accuracy, formatDuration(d.TimeSpentSeconds))
		if d.QuestionsSolved == 0 {
			line = Dim.Render(line)
		}
		b.WriteString(line + "\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

// Comparison renders subjects side by side, one row each.
func Comparison(subjects []performance.SubjectComparison) string {
	var b strings.Builder
	b.WriteString(Heading.Render(fmt.Sprintf("%-12s  %8s  %6s  %9s  %4s  %6s", "Subject", "Accuracy", "Topics", "Attempted", "Weak", "Strong")))
	b.WriteString("\n")
	for _, sc := range subjects {
		line := fmt.Sprintf("%-12s  %7.1f%%  %6d  %9d  %4d  %6d",
			question.SubjectDisplayName(sc.Subject), sc.Accuracy, sc.TopicCount, sc.QuestionsAttempted, sc.WeakTopics, sc.StrongTopics)
		if sc.TopicCount == 0 {
			line = Dim.Render(line)
		}
		b.WriteString(line + "  " + Bar(sc.AverageScore, barWidth) + "\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

func formatDuration(seconds int) string {
	h, m, s := seconds/3600, (seconds%3600)/60, seconds%60
	switch {
	case h > 0:
		return fmt.Sprintf("%dh %02dm", h, m)
	case m > 0:
		return fmt.Sprintf("%dm %02ds", m, s)
	default:
		return fmt.Sprintf("%ds", s)
	}
}
