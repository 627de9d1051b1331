package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/ideaforge/internal/quality"
)

var checkCmd = &cobra.Command{
	Use:   "check <idea>",
	Short: "Score how well-developed an idea is, without starting a conversation",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		text := strings.Join(args, " ")
		report := quality.Score(text, resolveLocale(cmd))

		if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(report)
		}

		fmt.Printf("Score:  %d/100 (%s)\n", report.Score, report.Level)
		if len(report.Issues) > 0 {
			fmt.Println("\nIssues:")
			for _, issue := range report.Issues {
				fmt.Printf("  - %s\n", issue)
			}
		}
		if len(report.Suggestions) > 0 {
			fmt.Println("\nSuggestions:")
			for _, s := range report.Suggestions {
				fmt.Printf("  - %s\n", s)
			}
		}
		if report.NeedsExpansion {
			fmt.Println("\nThis idea would benefit from more detail before refining.")
		}
		return nil
	},
}

func init() {
	checkCmd.Flags().Bool("json", false, "Print the report as JSON")
}
