package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/andrescamacho/mercado-go/internal/infrastructure/config"
)

// NewConfigCommand creates the config command with subcommands
func NewConfigCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage configuration settings",
		Long: `Manage Mercado configuration settings.

Configuration is loaded from multiple sources with priority:
1. Environment variables (MERCADO_* prefix)
2. Config file (config.yaml)
3. Default values

User preferences (default game) are stored in ~/.mercado/config.json

Examples:
  mercado config show
  mercado config set-game league-1
  mercado config clear-game`,
	}

	// Add subcommands
	cmd.AddCommand(newConfigShowCommand())
	cmd.AddCommand(newConfigSetGameCommand())
	cmd.AddCommand(newConfigClearGameCommand())

	return cmd
}

// newConfigShowCommand creates the config show subcommand
func newConfigShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			// Load system config
			cfg, err := config.LoadConfig(configPath)
			if err != nil {
				fmt.Printf("Warning: Failed to load config: %v\n", err)
				fmt.Println("Using default configuration.")
				cfg = config.LoadConfigOrDefault("")
			}

			// Load user config
			userConfigHandler, err := config.NewUserConfigHandler()
			if err != nil {
				return fmt.Errorf("failed to create user config handler: %w", err)
			}

			userCfg, err := userConfigHandler.Load()
			if err != nil {
				fmt.Printf("Warning: Failed to load user config: %v\n\n", err)
				userCfg = &config.UserConfig{}
			}

			fmt.Println("Mercado Configuration")
			fmt.Println("=====================")

			fmt.Println("User Preferences:")
			fmt.Printf("  Config file:        %s\n", userConfigHandler.GetConfigPath())
			if userCfg.DefaultGameID != "" {
				fmt.Printf("  Default Game:       %s\n", userCfg.DefaultGameID)
			} else {
				fmt.Printf("  Default Game:       (not set)\n")
			}

			fmt.Println("\nDatabase:")
			fmt.Printf("  Type:               %s\n", cfg.Database.Type)
			switch {
			case cfg.Database.URL != "":
				fmt.Printf("  URL:                %s\n", maskPassword(cfg.Database.URL))
			case cfg.Database.Type == "sqlite":
				fmt.Printf("  Path:               %s\n", cfg.Database.Path)
			default:
				fmt.Printf("  Host:               %s\n", cfg.Database.Host)
				fmt.Printf("  Port:               %d\n", cfg.Database.Port)
				fmt.Printf("  Database:           %s\n", cfg.Database.Name)
				fmt.Printf("  User:               %s\n", cfg.Database.User)
			}
			fmt.Printf("  Max Connections:    %d\n", cfg.Database.Pool.MaxOpen)

			fmt.Println("\nGame:")
			fmt.Printf("  Tables:             %s\n", cfg.Game.TablesDir)
			fmt.Printf("  Rounds:             %d\n", cfg.Game.TotalRounds)
			fmt.Printf("  Starting Cash:      %.2f\n", cfg.Game.StartingCash)
			fmt.Printf("  Reputation:         %.2f\n", cfg.Game.StartingReputation)
			fmt.Printf("  Event Probability:  %.2f\n", cfg.Game.EventProbability)
			if cfg.Game.Seed != 0 {
				fmt.Printf("  Seed:               %d\n", cfg.Game.Seed)
			} else {
				fmt.Printf("  Seed:               (time based)\n")
			}

			fmt.Println("\nLogging:")
			fmt.Printf("  Level:              %s\n", cfg.Logging.Level)
			fmt.Printf("  Format:             %s\n", cfg.Logging.Format)
			fmt.Printf("  Output:             %s\n", cfg.Logging.Output)

			fmt.Println("\nMetrics:")
			fmt.Printf("  Enabled:            %t\n", cfg.Metrics.Enabled)
			fmt.Printf("  Namespace:          %s\n", cfg.Metrics.Namespace)

			return nil
		},
	}
}

// newConfigSetGameCommand creates the config set-game subcommand
func newConfigSetGameCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "set-game <game-id>",
		Short: "Set the default game",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			userConfigHandler, err := config.NewUserConfigHandler()
			if err != nil {
				return fmt.Errorf("failed to create user config handler: %w", err)
			}

			if err := userConfigHandler.SetDefaultGame(args[0]); err != nil {
				return fmt.Errorf("failed to set default game: %w", err)
			}

			fmt.Printf("Default game set to %s\n", args[0])
			return nil
		},
	}
}

// newConfigClearGameCommand creates the config clear-game subcommand
func newConfigClearGameCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "clear-game",
		Short: "Clear the default game",
		RunE: func(cmd *cobra.Command, args []string) error {
			userConfigHandler, err := config.NewUserConfigHandler()
			if err != nil {
				return fmt.Errorf("failed to create user config handler: %w", err)
			}

			if err := userConfigHandler.ClearDefaultGame(); err != nil {
				return fmt.Errorf("failed to clear default game: %w", err)
			}

			fmt.Println("Default game cleared")
			return nil
		},
	}
}
