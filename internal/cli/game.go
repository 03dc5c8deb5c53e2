package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newGameCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "game",
		Short: "Game commands",
	}

	cmd.AddCommand(newGameListCmd())
	cmd.AddCommand(newGameCreateCmd())
	cmd.AddCommand(newGameGetCmd())
	cmd.AddCommand(newGameJoinCmd())
	cmd.AddCommand(newGameLeaveCmd())
	cmd.AddCommand(newGameExerciseCmd())
	cmd.AddCommand(newGameResultsCmd())
	cmd.AddCommand(newGameSubmitCmd())

	return cmd
}

func newGameListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List joinable and in-progress games",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result GameList

			if err := client.Get("/api/v1/games", &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newGameCreateCmd() *cobra.Command {
	var language, exercise string
	var single bool
	var maxPlayers int

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a new game",
		RunE: func(cmd *cobra.Command, args []string) error {
			if language == "" {
				return fmt.Errorf("--language is required")
			}

			req := map[string]any{
				"language": language,
			}
			if exercise != "" {
				req["exercise"] = exercise
			}
			if single {
				req["single_player"] = true
			}
			if maxPlayers > 0 {
				req["max_players"] = maxPlayers
			}

			var result Game

			if err := client.Post("/api/v1/games", req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&language, "language", "", "Exercise language (required)")
	cmd.Flags().StringVar(&exercise, "exercise", "", "Exercise ID (default: random for language)")
	cmd.Flags().BoolVar(&single, "single", false, "Single-player game")
	cmd.Flags().IntVar(&maxPlayers, "max-players", 0, "Max players (default: server default)")
	_ = cmd.MarkFlagRequired("language")

	return cmd
}

func newGameGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Get game details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result Game

			if err := client.Get(fmt.Sprintf("/api/v1/games/%s", args[0]), &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newGameJoinCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "join <id>",
		Short: "Join a game",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result Game

			if err := client.Post(fmt.Sprintf("/api/v1/games/%s/join", args[0]), nil, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newGameLeaveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "leave",
		Short: "Leave your current game",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := client.Post("/api/v1/games/leave", nil, nil); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.PrintMessage("Left game")
			return nil
		},
	}
}

func newGameExerciseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "exercise <id>",
		Short: "Show the exercise text for a game",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result Exercise

			if err := client.Get(fmt.Sprintf("/api/v1/games/%s/exercise", args[0]), &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newGameResultsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "results <id>",
		Short: "Show results for a game",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result ResultList

			if err := client.Get(fmt.Sprintf("/api/v1/games/%s/results", args[0]), &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newGameSubmitCmd() *cobra.Command {
	var timeMs int64
	var keystrokes, mistakes int

	cmd := &cobra.Command{
		Use:   "submit <id>",
		Short: "Submit your race result for a game",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if timeMs <= 0 {
				return fmt.Errorf("--time-ms must be positive")
			}

			req := map[string]any{
				"time_ms":    timeMs,
				"keystrokes": keystrokes,
				"mistakes":   mistakes,
			}
			var result SubmitResult

			if err := client.Post(fmt.Sprintf("/api/v1/games/%s/results", args[0]), req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().Int64Var(&timeMs, "time-ms", 0, "Race time in milliseconds (required)")
	cmd.Flags().IntVar(&keystrokes, "keystrokes", 0, "Total keystrokes")
	cmd.Flags().IntVar(&mistakes, "mistakes", 0, "Total mistakes")
	_ = cmd.MarkFlagRequired("time-ms")

	return cmd
}

func newLanguagesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "languages",
		Short: "List supported languages",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result LanguageList

			if err := client.Get("/api/v1/languages", &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}
