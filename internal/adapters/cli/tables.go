package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/andrescamacho/mercado-go/internal/adapters/catalog"
	"github.com/andrescamacho/mercado-go/internal/infrastructure/config"
	"github.com/andrescamacho/mercado-go/internal/infrastructure/logging"
)

// NewTablesCommand creates the tables command with subcommands
func NewTablesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tables",
		Short: "Inspect the market, product and event tables",
	}

	cmd.AddCommand(newTablesValidateCommand())
	return cmd
}

func newTablesValidateCommand() *cobra.Command {
	var dir string

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Load and validate the tables without touching any game",
		Long: `Load markets, config and events from the tables directory, check them
against their schemas and print a summary with the content digest.

Example:
  mercado tables validate --dir ./data`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.LoadConfigOrDefault(configPath)
			if dir == "" {
				dir = cfg.Game.TablesDir
			}

			logger, closer, err := logging.New(cfg.Logging)
			if err != nil {
				return err
			}
			defer closer.Close()

			c, err := catalog.NewFileSource(dir, logger).Load(cmd.Context())
			if err != nil {
				return err
			}

			fmt.Printf("Tables:    %s\n", dir)
			fmt.Printf("Digest:    %s\n", c.Digest)
			fmt.Printf("\nMarkets (%d):\n", len(c.Markets))
			for _, id := range c.MarketIDs() {
				m := c.Markets[id]
				fmt.Printf("  %-16s base demand %-8.0f transport %.2f/unit\n", id, m.BaseDemand, m.TransportCost)
			}
			fmt.Printf("\nProducts (%d):\n", len(c.Products))
			for _, id := range c.ProductIDs() {
				p := c.Products[id]
				fmt.Printf("  %-16s cost %-8.2f quality %-4.1f price %.2f-%.2f\n", id, p.ProductionCost, p.Quality, p.MinPrice, p.MaxPrice)
			}
			fmt.Printf("\nEvents (%d):\n", len(c.Events))
			for _, ev := range c.Events {
				fmt.Printf("  %-24s %-24s %d round(s)\n", ev.ID, ev.Type, ev.Duration)
			}
			fmt.Printf("\nScoring:   cash %.2f, share %.2f, inventory %.2f, reputation %.2f\n",
				c.Scoring.CashWeight, c.Scoring.MarketShareWeight, c.Scoring.InventoryWeight, c.Scoring.ReputationWeight)
			return nil
		},
	}

	cmd.Flags().StringVar(&dir, "dir", "", "Tables directory (default: game.tables_dir)")
	return cmd
}
