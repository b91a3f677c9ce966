package cmd

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Delete all recorded attempts and mastery for the user",
	RunE: func(cmd *cobra.Command, args []string) error {
		yes, _ := cmd.Flags().GetBool("yes")
		user, _ := cmd.Flags().GetString("user")

		if !yes {
			fmt.Fprintf(cmd.OutOrStdout(), "Delete all performance data for %q? [y/N] ", user)
			answer, _ := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
			if a := strings.ToLower(strings.TrimSpace(answer)); a != "y" && a != "yes" {
				fmt.Fprintln(cmd.OutOrStdout(), "Aborted.")
				return nil
			}
		}

		d, err := openDeps(cmd)
		if err != nil {
			return err
		}
		defer d.close()

		if err := d.attempts.Reset(cmd.Context(), d.userID); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Performance data reset.")
		return nil
	},
}

func init() {
	resetCmd.Flags().BoolP("yes", "y", false, "Do not ask for confirmation")
}
