package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/andrescamacho/mercado-go/internal/application/game/queries"
	"github.com/andrescamacho/mercado-go/internal/application/mediator"
)

// NewForecastCommand creates the forecast command
func NewForecastCommand() *cobra.Command {
	var player int

	cmd := &cobra.Command{
		Use:   "forecast",
		Short: "Show a player's market outlook for the current round",
		Long: `Show estimated demand, a recommended price, competitor activity and the
trend for every market. Each player sees slightly different numbers.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := resolveGameID()
			if err != nil {
				return err
			}

			return withApp(cmd.Context(), func(a *app) error {
				resp, err := mediator.Send[*queries.GetForecastResponse](cmd.Context(), a.mediator, &queries.GetForecastQuery{
					GameID:   id,
					PlayerID: player,
				})
				if err != nil {
					return err
				}

				fmt.Printf("Forecast for round %d, player %d\n\n", resp.Round, player)
				fmt.Printf("%-16s %-8s %-8s %-12s %s\n", "MARKET", "DEMAND", "PRICE", "COMPETITION", "TREND")
				for _, m := range resp.Markets {
					f := resp.Forecasts[m]
					fmt.Printf("%-16s %-8d %-8d %-12s %s\n", m, f.EstimatedDemand, f.RecommendedPrice, f.CompetitorActivity, f.MarketTrend)
				}
				return nil
			})
		},
	}

	cmd.Flags().IntVarP(&player, "player", "p", 0, "Player ID (required)")
	_ = cmd.MarkFlagRequired("player")
	return cmd
}

// NewEffectsCommand creates the effects command
func NewEffectsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "effects",
		Short: "Show active events and their combined effect on every market",
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := resolveGameID()
			if err != nil {
				return err
			}

			return withApp(cmd.Context(), func(a *app) error {
				resp, err := mediator.Send[*queries.GetEffectsResponse](cmd.Context(), a.mediator, &queries.GetEffectsQuery{GameID: id})
				if err != nil {
					return err
				}

				fmt.Printf("Round %d\n", resp.Round)
				if len(resp.Events) == 0 {
					fmt.Println("No active events")
				}
				printEvents("Active events", resp.Events)

				e := resp.Effects
				fmt.Printf("\nProduction cost: x%.2f\n\n", e.ProductionCostMultiplier())
				fmt.Printf("%-16s %-8s %-10s %-8s %-8s %s\n", "MARKET", "DEMAND", "TRANSPORT", "QUALITY", "PRICE", "ADVERTISING")
				for _, m := range resp.Markets {
					fmt.Printf("%-16s x%-7.2f x%-9.2f x%-7.2f x%-7.2f x%.2f\n", m,
						e.DemandMultiplier(m), e.TransportCostMultiplier(m),
						e.QualitySensitivityMultiplier(m), e.PriceSensitivityMultiplier(m),
						e.AdvertisingSensitivityMultiplier(m))
				}
				return nil
			})
		},
	}
}
