package cmd

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/abhisek/ideaforge/internal/locale"
	"github.com/abhisek/ideaforge/internal/logging"
	"github.com/abhisek/ideaforge/internal/store"
)

// logCloser releases the log file opened by the pre-run hook.
var logCloser io.Closer

var rootCmd = &cobra.Command{
	Use:   "ideaforge [idea]",
	Short: "Refine a raw business idea through a guided conversation",
	Long: "IdeaForge walks a one-line idea through five topics (problem, customer,\n" +
		"value, revenue, advantage) and produces a graded, refined summary.",
	Args:          cobra.MaximumNArgs(1),
	SilenceUsage:  true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("load .env: %w", err)
		}
		return setupLogging(cmd)
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		if logCloser != nil {
			return logCloser.Close()
		}
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runRefine(cmd, args)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides IDEAFORGE_DB env var)")
	rootCmd.PersistentFlags().String("locale", "", "Conversation language: en or es (defaults to IDEAFORGE_LOCALE, then en)")
	rootCmd.PersistentFlags().String("log-level", "", "Log level: debug, info, warn, error (overrides IDEAFORGE_LOG_LEVEL)")

	rootCmd.AddCommand(refineCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(ideasCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(versionCmd)
}

// setupLogging installs the default logger. The interactive chat owns the
// terminal, so its logs are discarded unless a file is configured.
func setupLogging(cmd *cobra.Command) error {
	cfg := logging.ConfigFromEnv()
	if lvl, _ := cmd.Flags().GetString("log-level"); lvl != "" {
		cfg.Level = lvl
	}
	if interactive(cmd) && cfg.File == "" {
		logging.Discard()
		return nil
	}

	closer, err := logging.Setup(cfg)
	if err != nil {
		return err
	}
	logCloser = closer
	return nil
}

// interactive reports whether cmd runs the terminal chat.
func interactive(cmd *cobra.Command) bool {
	return cmd == cmd.Root() || cmd.Name() == "refine"
}

// resolveDBPath returns the database path using --db flag (highest priority),
// then IDEAFORGE_DB env var, then the default XDG path.
func resolveDBPath(cmd *cobra.Command) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	return store.DefaultDBPath()
}

// resolveLocale returns the --locale flag, then IDEAFORGE_LOCALE, matched
// against the supported locales.
func resolveLocale(cmd *cobra.Command) locale.Locale {
	raw, _ := cmd.Flags().GetString("locale")
	if raw == "" {
		raw = os.Getenv("IDEAFORGE_LOCALE")
	}
	return locale.Match(raw)
}

// openStore opens the database selected by the flags.
func openStore(cmd *cobra.Command) (*store.Store, error) {
	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return nil, fmt.Errorf("resolve database path: %w", err)
	}
	s, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	return s, nil
}
