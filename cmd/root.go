package cmd

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "prepiq",
	Short: "Exam practice mastery tracker",
	Long: "prepiq turns practice attempts into per-topic mastery, study recommendations\n" +
		"and adaptive question sets for physics, chemistry and mathematics.",
	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides PREPIQ_DB env var)")
	rootCmd.PersistentFlags().String("backend", "", "Performance storage backend: sqlite or redis (overrides PREPIQ_BACKEND)")
	rootCmd.PersistentFlags().String("log-mode", "", "Log mode: prod (default, info) or dev (debug); overrides PREPIQ_LOG_MODE")
	rootCmd.PersistentFlags().StringP("user", "u", "default", "User whose performance data to use")

	rootCmd.AddCommand(recordCmd)
	rootCmd.AddCommand(topicsCmd)
	rootCmd.AddCommand(performanceCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(streakCmd)
	rootCmd.AddCommand(recommendCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(sampleCmd)
	rootCmd.AddCommand(questionsCmd)
	rootCmd.AddCommand(versionCmd)
}
