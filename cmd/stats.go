package cmd

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/abhisek/prepiq/internal/question"
	"github.com/abhisek/prepiq/internal/report"
)

var performanceCmd = &cobra.Command{
	Use:   "performance",
	Short: "Show subject and overall performance",
	RunE: func(cmd *cobra.Command, args []string) error {
		subject, _ := cmd.Flags().GetString("subject")
		compare, _ := cmd.Flags().GetBool("compare")
		asJSON, _ := cmd.Flags().GetBool("json")
		if compare && subject != "" {
			return fmt.Errorf("--compare and --subject are mutually exclusive")
		}

		d, err := openDeps(cmd)
		if err != nil {
			return err
		}
		defer d.close()

		ctx := cmd.Context()
		out := cmd.OutOrStdout()
		if compare {
			cmp, err := d.agg.CompareSubjects(ctx, d.userID)
			if err != nil {
				return fmt.Errorf("compare subjects: %w", err)
			}
			if asJSON {
				return writeJSON(cmd, cmp)
			}
			fmt.Fprintln(out, report.Comparison(cmp))
			return nil
		}
		if subject != "" {
			s, err := question.ParseSubject(subject)
			if err != nil {
				return err
			}
			sp, err := d.agg.SubjectPerformance(ctx, d.userID, s)
			if err != nil {
				return fmt.Errorf("subject performance: %w", err)
			}
			if asJSON {
				return writeJSON(cmd, sp)
			}
			fmt.Fprintln(out, report.Subject(*sp))
			return nil
		}

		up, err := d.agg.UserPerformance(ctx, d.userID)
		if err != nil {
			return fmt.Errorf("user performance: %w", err)
		}
		if asJSON {
			return writeJSON(cmd, up)
		}
		fmt.Fprintln(out, report.Performance(up))
		return nil
	},
}

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show overall statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		asJSON, _ := cmd.Flags().GetBool("json")

		d, err := openDeps(cmd)
		if err != nil {
			return err
		}
		defer d.close()

		ctx := cmd.Context()
		st, err := d.agg.OverallStats(ctx, d.userID)
		if err != nil {
			return fmt.Errorf("overall stats: %w", err)
		}
		if asJSON {
			return writeJSON(cmd, st)
		}
		streak, err := d.agg.Streak(ctx, d.userID, time.Now())
		if err != nil {
			return fmt.Errorf("streak: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), report.Stats(st, streak))
		return nil
	},
}

var streakCmd = &cobra.Command{
	Use:   "streak",
	Short: "Show the practice streak and recent daily activity",
	RunE: func(cmd *cobra.Command, args []string) error {
		days, _ := cmd.Flags().GetInt("days")
		if days < 0 {
			return fmt.Errorf("--days must not be negative")
		}

		d, err := openDeps(cmd)
		if err != nil {
			return err
		}
		defer d.close()

		ctx := cmd.Context()
		now := time.Now()
		streak, err := d.agg.Streak(ctx, d.userID, now)
		if err != nil {
			return fmt.Errorf("streak: %w", err)
		}
		activity, err := d.agg.Activity(ctx, d.userID, days, now)
		if err != nil {
			return fmt.Errorf("activity: %w", err)
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "%s %d days (longest %d)\n\n",
			report.Title.Render("Current streak:"), streak.Current, streak.Longest)
		fmt.Fprintln(out, report.Activity(activity))
		return nil
	},
}

func writeJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func init() {
	performanceCmd.Flags().String("subject", "", "Only this subject (physics, chemistry, mathematics)")
	performanceCmd.Flags().Bool("compare", false, "Compare subjects side by side")
	performanceCmd.Flags().Bool("json", false, "Print JSON")
	statsCmd.Flags().Bool("json", false, "Print JSON")
	streakCmd.Flags().Int("days", 7, "Number of days of activity to show")
}
