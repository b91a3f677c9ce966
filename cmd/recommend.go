package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/prepiq/internal/question"
	"github.com/abhisek/prepiq/internal/recommend"
	"github.com/abhisek/prepiq/internal/report"
)

var recommendCmd = &cobra.Command{
	Use:   "recommend",
	Short: "Show ranked study recommendations",
	RunE: func(cmd *cobra.Command, args []string) error {
		subject, _ := cmd.Flags().GetString("subject")
		asJSON, _ := cmd.Flags().GetBool("json")

		d, err := openDeps(cmd)
		if err != nil {
			return err
		}
		defer d.close()

		tms, err := d.attempts.TopicMasteries(cmd.Context(), d.userID)
		if err != nil {
			return fmt.Errorf("load topics: %w", err)
		}

		var recs []recommend.Recommendation
		if subject != "" {
			s, err := question.ParseSubject(subject)
			if err != nil {
				return err
			}
			recs = recommend.ForSubject(s, tms)
		} else {
			recs = recommend.All(tms)
		}

		if asJSON {
			if recs == nil {
				recs = []recommend.Recommendation{}
			}
			return writeJSON(cmd, recs)
		}
		fmt.Fprintln(cmd.OutOrStdout(), report.Recommendations(recs))
		return nil
	},
}

func init() {
	recommendCmd.Flags().String("subject", "", "Only this subject (physics, chemistry, mathematics)")
	recommendCmd.Flags().Bool("json", false, "Print JSON")
}
