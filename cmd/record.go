package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/abhisek/prepiq/internal/mastery"
	"github.com/abhisek/prepiq/internal/question"
	"github.com/abhisek/prepiq/internal/report"
)

// attemptInput is one attempt as written in a record file.
type attemptInput struct {
	ID              string  `yaml:"id"`
	TestID          string  `yaml:"test_id"`
	QuestionID      string  `yaml:"question_id"`
	Subject         string  `yaml:"subject"`
	Topic           string  `yaml:"topic"`
	SelectedAnswer  *string `yaml:"selected_answer"`
	IsCorrect       bool    `yaml:"is_correct"`
	TimeSpent       int     `yaml:"time_spent"`
	MarkedForReview bool    `yaml:"marked_for_review"`
}

// parseAttempts decodes a YAML or JSON list of attempts and validates it.
func parseAttempts(data []byte, testID string) ([]mastery.TestAttempt, error) {
	var inputs []attemptInput
	if err := yaml.Unmarshal(data, &inputs); err != nil {
		return nil, fmt.Errorf("parse attempts: %w", err)
	}

	out := make([]mastery.TestAttempt, 0, len(inputs))
	for i, in := range inputs {
		if in.TimeSpent < 0 {
			return nil, fmt.Errorf("attempt %d: time_spent must not be negative", i+1)
		}
		if in.QuestionID == "" && in.Topic == "" {
			return nil, fmt.Errorf("attempt %d: needs a question_id or a topic", i+1)
		}
		a := mastery.TestAttempt{
			ID:              in.ID,
			TestID:          in.TestID,
			QuestionID:      in.QuestionID,
			Topic:           in.Topic,
			SelectedAnswer:  in.SelectedAnswer,
			IsCorrect:       in.IsCorrect,
			TimeSpent:       in.TimeSpent,
			MarkedForReview: in.MarkedForReview,
		}
		if a.TestID == "" {
			a.TestID = testID
		}
		if in.Subject != "" {
			s, err := question.ParseSubject(in.Subject)
			if err != nil {
				return nil, fmt.Errorf("attempt %d: %w", i+1, err)
			}
			a.Subject = s
		}
		out = append(out, a)
	}
	return out, nil
}

var recordCmd = &cobra.Command{
	Use:   "record <file|->",
	Short: "Record a batch of question attempts from a YAML or JSON file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		testID, _ := cmd.Flags().GetString("test-id")

		var data []byte
		var err error
		if args[0] == "-" {
			data, err = io.ReadAll(cmd.InOrStdin())
		} else {
			data, err = os.ReadFile(args[0])
		}
		if err != nil {
			return fmt.Errorf("read attempts: %w", err)
		}

		batch, err := parseAttempts(data, testID)
		if err != nil {
			return err
		}
		if len(batch) == 0 {
			return fmt.Errorf("no attempts in %s", args[0])
		}

		d, err := openDeps(cmd)
		if err != nil {
			return err
		}
		defer d.close()

		doc, err := d.attempts.RecordAttempts(cmd.Context(), d.userID, batch)
		if err != nil {
			return fmt.Errorf("record attempts: %w", err)
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Recorded %d attempts (%d total).\n\n", len(batch), len(doc.Attempts))
		fmt.Fprintln(out, report.Topics(mastery.WithTrends(doc.TopicMasteries, doc.Attempts)))
		return nil
	},
}

func init() {
	recordCmd.Flags().String("test-id", "", "Test ID for attempts that do not carry one")
}
