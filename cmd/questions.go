package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/prepiq/internal/question"
	"github.com/abhisek/prepiq/internal/report"
)

var questionsCmd = &cobra.Command{
	Use:   "questions",
	Short: "Manage the question bank",
}

var questionsImportCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Import questions from a YAML, JSON or XLSX file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		res, err := question.LoadFile(args[0])
		if err != nil {
			return err
		}

		d, err := openDeps(cmd)
		if err != nil {
			return err
		}
		defer d.close()

		if err := d.questions.Upsert(cmd.Context(), res.Questions); err != nil {
			return fmt.Errorf("save questions: %w", err)
		}
		d.log.Info("question bank imported",
			"file", args[0], "imported", len(res.Questions), "skipped", res.Skipped)

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Imported %d of %d records (%d skipped).\n",
			len(res.Questions), res.TotalProcessed, res.Skipped)
		for _, e := range res.Errors {
			fmt.Fprintln(out, report.Dim.Render("  "+e))
		}
		return nil
	},
}

var questionsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List questions (optionally filtered)",
	RunE: func(cmd *cobra.Command, args []string) error {
		subject, _ := cmd.Flags().GetString("subject")
		topic, _ := cmd.Flags().GetString("topic")
		difficulty, _ := cmd.Flags().GetString("difficulty")
		grade, _ := cmd.Flags().GetString("grade")
		limit, _ := cmd.Flags().GetInt("limit")

		c := question.Criteria{Topic: topic, Grade: grade, Limit: limit}
		if subject != "" {
			s, err := question.ParseSubject(subject)
			if err != nil {
				return err
			}
			c.Subject = s
		}
		if difficulty != "" {
			dd, err := question.ParseDifficulty(difficulty)
			if err != nil {
				return err
			}
			c.Difficulty = dd
		}

		d, err := openDeps(cmd)
		if err != nil {
			return err
		}
		defer d.close()

		qs, err := d.questions.Filtered(cmd.Context(), c)
		if err != nil {
			return fmt.Errorf("query questions: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), report.Questions(qs))
		return nil
	},
}

var questionsTopicsCmd = &cobra.Command{
	Use:   "topics",
	Short: "List topics in the question bank",
	RunE: func(cmd *cobra.Command, args []string) error {
		subject, _ := cmd.Flags().GetString("subject")

		var s question.Subject
		if subject != "" {
			var err error
			if s, err = question.ParseSubject(subject); err != nil {
				return err
			}
		}

		d, err := openDeps(cmd)
		if err != nil {
			return err
		}
		defer d.close()

		ctx := cmd.Context()
		subjects := []question.Subject{s}
		if s == "" {
			if subjects, err = d.questions.Subjects(ctx); err != nil {
				return fmt.Errorf("query subjects: %w", err)
			}
		}

		out := cmd.OutOrStdout()
		if len(subjects) == 0 {
			fmt.Fprintln(out, "The question bank is empty.")
			return nil
		}
		for _, subj := range subjects {
			topics, err := d.questions.Topics(ctx, subj)
			if err != nil {
				return fmt.Errorf("query topics: %w", err)
			}
			fmt.Fprintln(out, report.Heading.Render(question.SubjectDisplayName(subj)))
			for _, t := range topics {
				fmt.Fprintf(out, "  %s\n", t)
			}
		}
		return nil
	},
}

func init() {
	questionsListCmd.Flags().String("subject", "", "Filter by subject")
	questionsListCmd.Flags().String("topic", "", "Filter by topic")
	questionsListCmd.Flags().String("difficulty", "", "Filter by difficulty (easy, medium, hard)")
	questionsListCmd.Flags().String("grade", "", "Filter by grade level")
	questionsListCmd.Flags().Int("limit", 0, "Maximum number of questions (0 = all)")
	questionsTopicsCmd.Flags().String("subject", "", "Only this subject")

	questionsCmd.AddCommand(questionsImportCmd)
	questionsCmd.AddCommand(questionsListCmd)
	questionsCmd.AddCommand(questionsTopicsCmd)
}
