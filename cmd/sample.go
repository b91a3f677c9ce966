package cmd

import (
	"fmt"
	"math/rand/v2"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/prepiq/internal/mastery"
	"github.com/abhisek/prepiq/internal/question"
	"github.com/abhisek/prepiq/internal/report"
	"github.com/abhisek/prepiq/internal/sampler"
)

// parseQuota splits "name=count".
func parseQuota(s string) (string, int, error) {
	name, count, ok := strings.Cut(s, "=")
	if !ok || name == "" {
		return "", 0, fmt.Errorf("invalid quota %q (want name=count)", s)
	}
	n, err := strconv.Atoi(count)
	if err != nil || n < 0 {
		return "", 0, fmt.Errorf("invalid count in quota %q", s)
	}
	return strings.TrimSpace(name), n, nil
}

func parseSubjectQuotas(specs []string) ([]sampler.SubjectQuota, error) {
	var out []sampler.SubjectQuota
	for _, spec := range specs {
		name, n, err := parseQuota(spec)
		if err != nil {
			return nil, err
		}
		s, err := question.ParseSubject(name)
		if err != nil {
			return nil, err
		}
		out = append(out, sampler.SubjectQuota{Subject: s, Count: n})
	}
	return out, nil
}

func parseDifficultyQuotas(specs []string) ([]sampler.DifficultyQuota, error) {
	var out []sampler.DifficultyQuota
	for _, spec := range specs {
		name, n, err := parseQuota(spec)
		if err != nil {
			return nil, err
		}
		d, err := question.ParseDifficulty(name)
		if err != nil {
			return nil, err
		}
		out = append(out, sampler.DifficultyQuota{Difficulty: d, Count: n})
	}
	return out, nil
}

// validateSampleFlags checks that exactly one sampling mode is chosen and
// that difficulty quotas only accompany subject quotas.
func validateSampleFlags(subjects, difficulties []string, random, adaptive int) error {
	if random < 0 || adaptive < 0 {
		return fmt.Errorf("counts must not be negative")
	}
	modes := 0
	for _, set := range []bool{len(subjects) > 0, random > 0, adaptive > 0} {
		if set {
			modes++
		}
	}
	if modes != 1 {
		return fmt.Errorf("use exactly one of --subject, --random or --adaptive")
	}
	if len(difficulties) > 0 && len(subjects) == 0 {
		return fmt.Errorf("--difficulty only applies together with --subject")
	}
	return nil
}

var sampleCmd = &cobra.Command{
	Use:   "sample",
	Short: "Build a practice set from the question bank",
	Long: "Build a practice set from the question bank.\n\n" +
		"  prepiq sample --subject physics=10 --difficulty easy=3 --difficulty medium=5 --difficulty hard=2\n" +
		"  prepiq sample --random 20\n" +
		"  prepiq sample --adaptive 15   # weighted towards your weak topics",
	RunE: func(cmd *cobra.Command, args []string) error {
		subjectSpecs, _ := cmd.Flags().GetStringArray("subject")
		difficultySpecs, _ := cmd.Flags().GetStringArray("difficulty")
		random, _ := cmd.Flags().GetInt("random")
		adaptive, _ := cmd.Flags().GetInt("adaptive")
		ratio, _ := cmd.Flags().GetFloat64("focus-ratio")
		seed, _ := cmd.Flags().GetUint64("seed")
		asJSON, _ := cmd.Flags().GetBool("json")

		if err := validateSampleFlags(subjectSpecs, difficultySpecs, random, adaptive); err != nil {
			return err
		}

		subjects, err := parseSubjectQuotas(subjectSpecs)
		if err != nil {
			return err
		}
		difficulties, err := parseDifficultyQuotas(difficultySpecs)
		if err != nil {
			return err
		}

		d, err := openDeps(cmd)
		if err != nil {
			return err
		}
		defer d.close()

		if seed == 0 {
			seed = d.cfg.Seed
		}
		if seed == 0 {
			seed = rand.Uint64()
		}
		d.log.Debug("sampling", "seed", seed)
		s := sampler.New(d.questions, seed)

		ctx := cmd.Context()
		var qs []question.Question
		switch {
		case random > 0:
			qs, err = s.Random(ctx, random)
		case adaptive > 0:
			var weak []mastery.TopicMastery
			weak, err = d.agg.WeakTopics(ctx, d.userID, mastery.WeakThreshold)
			if err != nil {
				return fmt.Errorf("load weak topics: %w", err)
			}
			plan := sampler.FocusPlan(weak, adaptive, ratio)
			d.log.Debug("adaptive plan", "focus_topics", len(plan.Focus), "general", plan.General)
			qs, err = s.FromPlan(ctx, plan)
		default:
			qs, err = s.ByDistribution(ctx, subjects, difficulties)
		}
		if err != nil {
			return fmt.Errorf("sample questions: %w", err)
		}

		if asJSON {
			if qs == nil {
				qs = []question.Question{}
			}
			return writeJSON(cmd, qs)
		}
		fmt.Fprintln(cmd.OutOrStdout(), report.Questions(qs))
		return nil
	},
}

func init() {
	sampleCmd.Flags().StringArray("subject", nil, "Subject quota as subject=count (repeatable, sampled in order)")
	sampleCmd.Flags().StringArray("difficulty", nil, "Per-subject difficulty quota as difficulty=count (repeatable, in order)")
	sampleCmd.Flags().Int("random", 0, "Pick N questions uniformly from the whole bank")
	sampleCmd.Flags().Int("adaptive", 0, "Pick N questions weighted towards weak topics")
	sampleCmd.Flags().Float64("focus-ratio", sampler.DefaultFocusRatio, "Share of an adaptive set spent on weak topics")
	sampleCmd.Flags().Uint64("seed", 0, "Shuffle seed (0 uses PREPIQ_SEED or a random seed)")
	sampleCmd.Flags().Bool("json", false, "Print JSON")
}
