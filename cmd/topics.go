package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/prepiq/internal/mastery"
	"github.com/abhisek/prepiq/internal/report"
)

var topicsCmd = &cobra.Command{
	Use:   "topics",
	Short: "Show topic mastery",
	RunE: func(cmd *cobra.Command, args []string) error {
		weak, _ := cmd.Flags().GetBool("weak")
		strong, _ := cmd.Flags().GetBool("strong")
		threshold, _ := cmd.Flags().GetInt("threshold")
		if weak && strong {
			return fmt.Errorf("use --weak or --strong, not both")
		}

		d, err := openDeps(cmd)
		if err != nil {
			return err
		}
		defer d.close()

		ctx := cmd.Context()
		var tms []mastery.TopicMastery
		switch {
		case weak:
			if threshold == 0 {
				threshold = mastery.WeakThreshold
			}
			tms, err = d.agg.WeakTopics(ctx, d.userID, threshold)
		case strong:
			if threshold == 0 {
				threshold = mastery.StrongThreshold
			}
			tms, err = d.agg.StrongTopics(ctx, d.userID, threshold)
		default:
			tms, err = d.attempts.TopicMasteries(ctx, d.userID)
		}
		if err != nil {
			return fmt.Errorf("load topics: %w", err)
		}

		fmt.Fprintln(cmd.OutOrStdout(), report.Topics(tms))
		return nil
	},
}

func init() {
	topicsCmd.Flags().Bool("weak", false, "Only topics below the weak threshold, worst first")
	topicsCmd.Flags().Bool("strong", false, "Only topics at or above the strong threshold, best first")
	topicsCmd.Flags().Int("threshold", 0, "Override the weak/strong threshold")
}
