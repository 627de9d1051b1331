package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var ideasCmd = &cobra.Command{
	Use:   "ideas",
	Short: "Browse completed ideas",
}

var ideasListCmd = &cobra.Command{
	Use:   "list",
	Short: "List completed ideas, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")

		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		ideas, err := s.IdeaRepo().ListIdeas(cmd.Context(), limit)
		if err != nil {
			return fmt.Errorf("list ideas: %w", err)
		}
		if len(ideas) == 0 {
			fmt.Println("No ideas yet. Start one with: ideaforge refine")
			return nil
		}

		fmt.Printf("%-36s  %-16s  %-5s  %5s  %s\n", "ID", "Created", "Grade", "Done", "Idea")
		fmt.Println(strings.Repeat("─", 100))
		for _, i := range ideas {
			fmt.Printf("%-36s  %-16s  %-5s  %4d%%  %s\n",
				i.ID,
				i.CreatedAt.Local().Format("2006-01-02 15:04"),
				i.Grade,
				i.OverallCompleteness,
				truncate(i.OriginalIdea, 40),
			)
		}
		return nil
	},
}

var ideasShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show a completed idea with its transcript",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		withTranscript, _ := cmd.Flags().GetBool("transcript")

		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		rec, err := s.IdeaRepo().GetIdea(cmd.Context(), args[0])
		if err != nil {
			return fmt.Errorf("get idea: %w", err)
		}
		if rec == nil {
			return fmt.Errorf("idea %s not found", args[0])
		}

		sep := strings.Repeat("─", 60)

		fmt.Printf("ID:        %s\n", rec.ID)
		fmt.Printf("Created:   %s\n", rec.CreatedAt.Local().Format("2006-01-02 15:04:05"))
		fmt.Printf("Idea:      %s\n", rec.OriginalIdea)
		fmt.Printf("Grade:     %s\n", rec.Grade)
		fmt.Printf("Complete:  %d%%\n", rec.OverallCompleteness)
		fmt.Printf("Language:  %s\n", rec.Locale)

		fmt.Println()
		fmt.Println(sep)
		fmt.Println("MODULES")
		fmt.Println(sep)
		for _, m := range rec.Modules {
			fmt.Printf("[%s] %d%%\n", m.ModuleID, m.Completeness)
			if m.Answer != "" {
				fmt.Printf("  %s\n", m.Answer)
			}
			if m.Insights != "" {
				fmt.Printf("  > %s\n", m.Insights)
			}
		}

		fmt.Println(sep)
		fmt.Println("SUMMARY")
		fmt.Println(sep)
		fmt.Println(rec.Narrative)

		if withTranscript {
			fmt.Println(sep)
			fmt.Println("TRANSCRIPT")
			fmt.Println(sep)
			for _, m := range rec.Messages {
				fmt.Printf("%s: %s\n\n", m.Role, m.Content)
			}
		}
		return nil
	},
}

var ideasDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a completed idea",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		if err := s.IdeaRepo().DeleteIdea(cmd.Context(), args[0]); err != nil {
			return fmt.Errorf("delete idea: %w", err)
		}
		fmt.Printf("Deleted %s\n", args[0])
		return nil
	},
}

func init() {
	ideasListCmd.Flags().IntP("limit", "n", 20, "Number of ideas to show (0 for all)")
	ideasShowCmd.Flags().BoolP("transcript", "t", false, "Include the full conversation")

	ideasCmd.AddCommand(ideasListCmd)
	ideasCmd.AddCommand(ideasShowCmd)
	ideasCmd.AddCommand(ideasDeleteCmd)
}
