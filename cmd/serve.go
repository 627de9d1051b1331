package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/abhisek/ideaforge/internal/api"
	"github.com/abhisek/ideaforge/internal/conversation"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the refinement conversation over HTTP",
	RunE: func(cmd *cobra.Command, args []string) error {
		addr, _ := cmd.Flags().GetString("addr")
		if addr == "" {
			addr = os.Getenv("IDEAFORGE_ADDR")
		}
		if addr == "" {
			addr = ":8080"
		}

		st, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		// Requests return only once the session has settled on its next
		// question, so there is no pause between modules.
		a := newApp(cmd, st, conversation.ImmediateScheduler{})

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		slog.Info("api configured", "offline", a.Offline(), "locale", resolveLocale(cmd).String())
		if err := api.Serve(ctx, addr, api.NewRouter(a)); err != nil {
			return fmt.Errorf("serve: %w", err)
		}
		return nil
	},
}

func init() {
	serveCmd.Flags().String("addr", "", "Listen address (defaults to IDEAFORGE_ADDR, then :8080)")
}
