package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	configPath  string
	gameID      string
	verbose     bool
	showMetrics bool
)

// NewRootCommand creates the root command for the CLI
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "mercado",
		Short: "Mercado - turn-based multiplayer business simulation",
		Long: `Mercado runs a turn-based business game: every round each company decides
what to produce and where to sell it, then the round is resolved against
shared market demand and any market events in play.

Games are stored in the configured database, so each command picks up where
the last one left off.

Examples:
  mercado game new --players "Ana,Bruno" --rounds 5 --set-default
  mercado decide --player 1 --produce basic=100 --sell national:basic:100:500
  mercado round begin
  mercado round finish --enforce
  mercado game status
  mercado forecast --player 1
  mercado tables validate --dir ./data`,
		SilenceUsage: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
	}

	// Global flags
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "",
		"Path to config file (default: search ./config.yaml, ./configs, /etc/mercado)")
	rootCmd.PersistentFlags().StringVarP(&gameID, "game", "g", "",
		"Game ID (defaults to the game set with 'mercado config set-game')")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false,
		"Enable debug logging")
	rootCmd.PersistentFlags().BoolVar(&showMetrics, "show-metrics", false,
		"Print collected metrics after the command (requires metrics.enabled)")

	// Add command groups
	rootCmd.AddCommand(NewConfigCommand())
	rootCmd.AddCommand(NewGameCommand())
	rootCmd.AddCommand(NewDecideCommand())
	rootCmd.AddCommand(NewValidateCommand())
	rootCmd.AddCommand(NewRoundCommand())
	rootCmd.AddCommand(NewForecastCommand())
	rootCmd.AddCommand(NewEffectsCommand())
	rootCmd.AddCommand(NewTablesCommand())

	return rootCmd
}

// Execute runs the root command, cancelling its context on SIGINT or SIGTERM
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rootCmd := NewRootCommand()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
