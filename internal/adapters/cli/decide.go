package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/andrescamacho/mercado-go/internal/application/game/commands"
	"github.com/andrescamacho/mercado-go/internal/application/game/queries"
	"github.com/andrescamacho/mercado-go/internal/application/mediator"
	"github.com/andrescamacho/mercado-go/internal/domain/economy"
	"github.com/andrescamacho/mercado-go/internal/domain/market"
)

// NewDecideCommand creates the decide command
func NewDecideCommand() *cobra.Command {
	var (
		player   int
		produce  []string
		sell     []string
		withdraw []string
	)

	cmd := &cobra.Command{
		Use:   "decide",
		Short: "Update a player's pending decisions",
		Long: `Update a player's decisions for the current round.

Production and market entries replace the pending ones as a whole: passing
--produce replaces every production quantity, passing --sell or --withdraw
replaces every market entry. Problems are reported but do not block the
update.

Examples:
  mercado decide --player 1 --produce basic=100
  mercado decide --player 1 --sell national:basic:100 --sell regional:basic:90:500
  mercado decide --player 2 --withdraw international`,
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := resolveGameID()
			if err != nil {
				return err
			}

			var partial economy.Decisions
			if len(produce) > 0 {
				if partial.Production, err = parseProduction(produce); err != nil {
					return err
				}
			}
			if len(sell) > 0 || len(withdraw) > 0 {
				if partial.Markets, err = parseMarketEntries(sell); err != nil {
					return err
				}
				for _, m := range withdraw {
					partial.Markets[market.MarketID(m)] = economy.MarketDecision{Active: false}
				}
			}

			return withApp(cmd.Context(), func(a *app) error {
				resp, err := mediator.Send[*commands.UpdatePlayerDecisionsResponse](cmd.Context(), a.mediator, &commands.UpdatePlayerDecisionsCommand{
					GameID:   id,
					PlayerID: player,
					Partial:  partial,
				})
				if err != nil {
					return err
				}

				fmt.Printf("Decisions for player %d:\n", player)
				for _, product := range sortedKeys(resp.Decisions.Production) {
					fmt.Printf("  produce %-12s %d\n", product, resp.Decisions.Production[product])
				}
				for _, m := range sortedKeys(resp.Decisions.Markets) {
					d := resp.Decisions.Markets[m]
					if !d.Active {
						fmt.Printf("  %-14s inactive\n", m)
						continue
					}
					fmt.Printf("  %-14s %-12s price %.2f advertising %.2f\n", m, d.Product, d.Price, d.Advertising)
				}

				if len(resp.Violations) > 0 {
					fmt.Println("\nWarnings:")
					for _, v := range resp.Violations {
						fmt.Printf("  - %s\n", v)
					}
				}
				return nil
			})
		},
	}

	cmd.Flags().IntVarP(&player, "player", "p", 0, "Player ID (required)")
	cmd.Flags().StringArrayVar(&produce, "produce", nil, "Production as product=quantity (repeatable)")
	cmd.Flags().StringArrayVar(&sell, "sell", nil, "Market entry as market:product:price[:advertising] (repeatable)")
	cmd.Flags().StringArrayVar(&withdraw, "withdraw", nil, "Market to leave this round (repeatable)")
	_ = cmd.MarkFlagRequired("player")

	return cmd
}

// NewValidateCommand creates the validate command
func NewValidateCommand() *cobra.Command {
	var (
		player int
		strict bool
	)

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Check pending decisions without changing anything",
		Long: `Check pending decisions against the product and market tables.

With --strict, players who produce nothing or enter no market are reported too.
Without --player every player is checked.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := resolveGameID()
			if err != nil {
				return err
			}

			return withApp(cmd.Context(), func(a *app) error {
				resp, err := mediator.Send[*queries.ValidateDecisionsResponse](cmd.Context(), a.mediator, &queries.ValidateDecisionsQuery{
					GameID:   id,
					PlayerID: player,
					Strict:   strict,
				})
				if err != nil {
					return err
				}
				if resp.Valid() {
					fmt.Println("All decisions are valid")
					return nil
				}
				fmt.Println("Invalid decisions:")
				printViolations(resp.Violations)
				return fmt.Errorf("%d player(s) with invalid decisions", len(resp.Violations))
			})
		},
	}

	cmd.Flags().IntVarP(&player, "player", "p", 0, "Player ID (default: all players)")
	cmd.Flags().BoolVar(&strict, "strict", false, "Also require production and at least one active market")
	return cmd
}
