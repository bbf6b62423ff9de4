package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/andrescamacho/mercado-go/internal/application/game/commands"
	"github.com/andrescamacho/mercado-go/internal/application/mediator"
	"github.com/andrescamacho/mercado-go/internal/domain/game"
)

// NewRoundCommand creates the round command with subcommands
func NewRoundCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "round",
		Short: "Drive the round lifecycle",
		Long: `Drive the round lifecycle of a game.

A round normally runs as:
  mercado round begin     expire finished events and maybe trigger a new one
  mercado decide ...      every player submits decisions
  mercado round finish    resolve, then advance or end the game

process and next expose the two halves of finish separately.`,
	}

	cmd.AddCommand(newRoundBeginCommand())
	cmd.AddCommand(newRoundProcessCommand())
	cmd.AddCommand(newRoundNextCommand())
	cmd.AddCommand(newRoundFinishCommand())

	return cmd
}

func newRoundBeginCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "begin",
		Short: "Open the current round",
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := resolveGameID()
			if err != nil {
				return err
			}

			return withApp(cmd.Context(), func(a *app) error {
				resp, err := mediator.Send[*commands.BeginRoundResponse](cmd.Context(), a.mediator, &commands.BeginRoundCommand{GameID: id})
				if err != nil {
					return err
				}

				if resp.AlreadyOpen {
					fmt.Printf("Round %d is already open\n", resp.Round)
				} else {
					fmt.Printf("Round %d opened\n", resp.Round)
				}
				printEvents("Expired events", resp.Expired)
				if resp.Triggered != nil {
					fmt.Printf("New event: %s (%s)\n", resp.Triggered.Name, resp.Triggered.Description)
				}
				printEvents("Active events", resp.ActiveEvents)
				return nil
			})
		},
	}
}

func newRoundProcessCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "process",
		Short: "Resolve the current round without advancing",
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := resolveGameID()
			if err != nil {
				return err
			}

			return withApp(cmd.Context(), func(a *app) error {
				resp, err := mediator.Send[*commands.ProcessRoundResponse](cmd.Context(), a.mediator, &commands.ProcessRoundCommand{GameID: id})
				if err != nil {
					return err
				}
				fmt.Printf("Round %d resolved\n", resp.Round)
				printResults(resp.Results)
				return nil
			})
		},
	}
}

func newRoundNextCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "next",
		Short: "Advance to the next round",
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := resolveGameID()
			if err != nil {
				return err
			}

			return withApp(cmd.Context(), func(a *app) error {
				resp, err := mediator.Send[*commands.NextRoundResponse](cmd.Context(), a.mediator, &commands.NextRoundCommand{GameID: id})
				if err != nil {
					return err
				}
				if !resp.Advanced {
					fmt.Printf("Round %d is the last round; end the game with 'mercado game end'\n", resp.CurrentRound)
					return nil
				}
				fmt.Printf("Now in round %d\n", resp.CurrentRound)
				return nil
			})
		},
	}
}

func newRoundFinishCommand() *cobra.Command {
	var enforce, strict bool

	cmd := &cobra.Command{
		Use:   "finish",
		Short: "Resolve the current round and advance, ending the game after the last round",
		Long: `Resolve the current round, then advance to the next one or end the game.

With --enforce the round is refused while any player has invalid decisions;
nothing is changed in that case. --strict additionally requires each player
to produce something and enter at least one market.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := resolveGameID()
			if err != nil {
				return err
			}

			return withApp(cmd.Context(), func(a *app) error {
				resp, err := mediator.Send[*commands.FinishRoundResponse](cmd.Context(), a.mediator, &commands.FinishRoundCommand{
					GameID:  id,
					Enforce: enforce,
					Strict:  strict,
				})
				var failure *game.ValidationFailure
				if errors.As(err, &failure) {
					fmt.Println("Round not resolved, invalid decisions:")
					printViolations(failure.Violations)
					return fmt.Errorf("round %s refused", id)
				}
				if err != nil {
					return err
				}

				if len(resp.Violations) > 0 {
					fmt.Println("Warnings:")
					printViolations(resp.Violations)
				}
				fmt.Printf("Round %d resolved\n", resp.Round)
				printResults(resp.Results)

				if resp.GameEnded {
					fmt.Println("\nGame over")
					printStandings(resp.Standings)
					return nil
				}
				fmt.Printf("\nNow in round %d\n", resp.NextRound)
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&enforce, "enforce", false, "Refuse the round while decisions are invalid")
	cmd.Flags().BoolVar(&strict, "strict", false, "Also require production and an active market")
	return cmd
}
