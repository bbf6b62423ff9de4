package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/andrescamacho/mercado-go/internal/application/game/commands"
	"github.com/andrescamacho/mercado-go/internal/application/game/queries"
	"github.com/andrescamacho/mercado-go/internal/application/mediator"
	"github.com/andrescamacho/mercado-go/internal/infrastructure/config"
)

// NewGameCommand creates the game command with subcommands
func NewGameCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "game",
		Short: "Create, inspect and end games",
	}

	cmd.AddCommand(newGameNewCommand())
	cmd.AddCommand(newGameStatusCommand())
	cmd.AddCommand(newGameListCommand())
	cmd.AddCommand(newGameEndCommand())
	cmd.AddCommand(newGameClearCommand())

	return cmd
}

func newGameNewCommand() *cobra.Command {
	var (
		players    string
		rounds     int
		id         string
		setDefault bool
	)

	cmd := &cobra.Command{
		Use:   "new",
		Short: "Start a new game",
		Long: `Start a new game with one company per player name.

An existing game with the same --id is replaced.

Examples:
  mercado game new --players "Ana,Bruno"
  mercado game new --players "Ana,Bruno,Carla" --rounds 8 --id league-1 --set-default`,
		RunE: func(cmd *cobra.Command, args []string) error {
			var names []string
			for _, n := range strings.Split(players, ",") {
				if n = strings.TrimSpace(n); n != "" {
					names = append(names, n)
				}
			}

			return withApp(cmd.Context(), func(a *app) error {
				resp, err := mediator.Send[*commands.InitNewGameResponse](cmd.Context(), a.mediator, &commands.InitNewGameCommand{
					GameID:      id,
					PlayerNames: names,
					TotalRounds: rounds,
				})
				if err != nil {
					return err
				}

				state := resp.State
				if resp.Replaced {
					fmt.Printf("Replaced existing game %s\n", state.GameID)
				}
				fmt.Printf("Game:     %s\n", state.GameID)
				fmt.Printf("Rounds:   %d\n", state.TotalRounds)
				fmt.Println("Players:")
				for _, p := range state.Players {
					fmt.Printf("  %d. %-20s cash %.2f\n", p.ID, p.Name, p.Cash)
				}

				if setDefault {
					handler, err := config.NewUserConfigHandler()
					if err != nil {
						return err
					}
					if err := handler.SetDefaultGame(state.GameID); err != nil {
						return err
					}
					fmt.Println("Set as default game")
				}
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&players, "players", "", "Comma separated player names (required)")
	cmd.Flags().IntVar(&rounds, "rounds", 0, "Number of rounds (default from config)")
	cmd.Flags().StringVar(&id, "id", "", "Game ID (generated when empty)")
	cmd.Flags().BoolVar(&setDefault, "set-default", false, "Use this game when --game is omitted")
	_ = cmd.MarkFlagRequired("players")

	return cmd
}

func newGameStatusCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the state of a game",
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := resolveGameID()
			if err != nil {
				return err
			}

			return withApp(cmd.Context(), func(a *app) error {
				resp, err := mediator.Send[*queries.GetGameResponse](cmd.Context(), a.mediator, &queries.GetGameQuery{GameID: id})
				if err != nil {
					return err
				}

				state := resp.State
				fmt.Printf("Game:     %s\n", state.GameID)
				fmt.Printf("Phase:    %s\n", resp.Phase)
				fmt.Printf("Round:    %d of %d\n", state.CurrentRound, state.TotalRounds)
				printEvents("Active events", state.ActiveEvents)

				fmt.Println("\nPlayers:")
				for _, p := range state.Players {
					status := "decided"
					if p.Decisions.IsEmpty() {
						status = "no decisions"
					}
					fmt.Printf("  %d. %-20s cash %-12.2f score %-6d (%s)\n", p.ID, p.Name, p.Cash, p.TotalScore, status)
				}
				printStandings(resp.Standings)
				return nil
			})
		},
	}
}

func newGameListCommand() *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List stored games, most recent first",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd.Context(), func(a *app) error {
				resp, err := mediator.Send[*queries.ListGamesResponse](cmd.Context(), a.mediator, &queries.ListGamesQuery{IncludeEnded: all})
				if err != nil {
					return err
				}
				if len(resp.Games) == 0 {
					fmt.Println("No games found")
					return nil
				}

				fmt.Printf("%-38s %-8s %-8s %-6s %s\n", "GAME", "ROUND", "PLAYERS", "ENDED", "UPDATED")
				for _, g := range resp.Games {
					fmt.Printf("%-38s %-8s %-8d %-6t %s\n",
						g.GameID, fmt.Sprintf("%d/%d", g.CurrentRound, g.TotalRounds),
						g.PlayerCount, g.GameEnded, g.UpdatedAt.Format("2006-01-02 15:04"))
				}
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, "Include ended games")
	return cmd
}

func newGameEndCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "end",
		Short: "End a game and show the final standings",
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := resolveGameID()
			if err != nil {
				return err
			}

			return withApp(cmd.Context(), func(a *app) error {
				resp, err := mediator.Send[*commands.EndGameResponse](cmd.Context(), a.mediator, &commands.EndGameCommand{GameID: id})
				if err != nil {
					return err
				}
				fmt.Printf("Game %s ended\n", id)
				printStandings(resp.Standings)
				return nil
			})
		},
	}
}

func newGameClearCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Delete a stored game",
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := resolveGameID()
			if err != nil {
				return err
			}

			return withApp(cmd.Context(), func(a *app) error {
				if _, err := mediator.Send[*commands.ClearGameResponse](cmd.Context(), a.mediator, &commands.ClearGameCommand{GameID: id}); err != nil {
					return err
				}
				fmt.Printf("Game %s cleared\n", id)
				return nil
			})
		},
	}
}
