package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/ideaforge/internal/app"
	"github.com/abhisek/ideaforge/internal/conversation"
	"github.com/abhisek/ideaforge/internal/llm"
	"github.com/abhisek/ideaforge/internal/store"
	"github.com/abhisek/ideaforge/internal/tui"
)

var refineCmd = &cobra.Command{
	Use:   "refine [idea]",
	Short: "Start an interactive refinement conversation",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runRefine,
}

// runRefine opens the store, builds dependencies, and launches the chat.
func runRefine(cmd *cobra.Command, args []string) error {
	idea, err := readIdea(args)
	if err != nil {
		return err
	}

	st, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer st.Close()

	a := newApp(cmd, st, nil)
	if a.Offline() {
		fmt.Fprintln(os.Stderr, "AI features will be unavailable; using built-in questions.")
	}

	loc := resolveLocale(cmd)
	result, err := tui.Run(func(hooks conversation.Hooks) *conversation.Session {
		return a.NewSession(idea, loc, hooks)
	})
	if err != nil {
		return err
	}
	if result != nil {
		fmt.Printf("Saved idea %s (grade %s, %d%% complete).\n", result.ID, result.Grade, result.OverallCompleteness)
		fmt.Printf("View it again with: ideaforge ideas show %s\n", result.ID)
	}
	return nil
}

// newApp wires the application, falling back to offline mode when no LLM
// provider is configured.
func newApp(cmd *cobra.Command, st *store.Store, scheduler conversation.Scheduler) *app.App {
	opts := app.Options{
		Ideas:     st.IdeaRepo(),
		Scheduler: scheduler,
	}
	opts.Session = conversation.DefaultConfig()
	opts.Session.Locale = resolveLocale(cmd)

	provider, err := llm.NewProviderFromEnv(cmd.Context(), st.EventRepo())
	if err != nil {
		fmt.Fprintln(os.Stderr, "LLM provider not configured:", err)
	} else {
		opts.Provider = provider
	}
	return app.New(opts)
}

// readIdea takes the idea from the arguments, or prompts for it.
func readIdea(args []string) (string, error) {
	if len(args) == 1 && strings.TrimSpace(args[0]) != "" {
		return strings.TrimSpace(args[0]), nil
	}

	fmt.Print("What's your idea? ")
	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil && line == "" {
		return "", fmt.Errorf("read idea: %w", err)
	}
	idea := strings.TrimSpace(line)
	if idea == "" {
		return "", fmt.Errorf("an idea is required")
	}
	return idea, nil
}
