package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/minigame-arcade/internal/config"
	"github.com/vovakirdan/minigame-arcade/internal/platform/tui"
	"github.com/vovakirdan/minigame-arcade/internal/registry"
	"github.com/vovakirdan/minigame-arcade/internal/storage"
)

var (
	flagConfig     string
	flagDifficulty string
	flagRecord     bool
)

var playCmd = &cobra.Command{
	Use:   "play <game>",
	Short: "Play a game",
	Long: `Start playing the specified game.

Controls:
  Arrows/WASD  - Move
  Space        - Action (jump, flap, place, stir...)
  P            - Pause
  R            - Restart
  Esc/Q        - Quit
  Ctrl+S       - Save a screenshot

Difficulty options (games with tuning files):
  easy   - Start at lowest difficulty, progresses to max
  normal - Start at 30% difficulty, progresses to max
  hard   - Start at 70% difficulty, progresses to max
  fixed  - No progression, stays at config's initial level

Examples:
  arcade play turtle
  arcade play heartrunner --difficulty hard
  arcade play bubblelift --config ./my-bubblelift.yaml
  arcade play sdgrunner --record --seed 42`,
	Args: cobra.ExactArgs(1),
	RunE: runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	playCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	playCmd.Flags().BoolVar(&flagRecord, "record", false, "Journal the run so it can be replayed")
}

func runPlay(_ *cobra.Command, args []string) error {
	gameID := args[0]

	if !registry.Exists(gameID) {
		return fmt.Errorf("unknown game %q; run 'arcade list' to see available games", gameID)
	}
	if flagDifficulty != "" {
		if _, err := config.ParsePreset(flagDifficulty); err != nil {
			return err
		}
	}

	game, err := registry.Create(gameID)
	if err != nil {
		return err
	}

	logger, closeLog := fileLogger("arcade")
	defer closeLog()

	cfg := terminalConfig()
	cfg.Difficulty = flagDifficulty
	cfg.ConfigPath = flagConfig

	var store *storage.Store
	if flagRecord {
		store, err = storage.Open(flagDBPath)
		if err != nil {
			return fmt.Errorf("cannot record: %w", err)
		}
		defer store.Close()
	}

	model, err := tui.NewGameModel(game, tui.GameOptions{
		Config: cfg,
		Logger: logger,
		Store:  store,
		Record: flagRecord,
	})
	if err != nil {
		return err
	}

	if err := tui.RunModel(model); err != nil {
		return fmt.Errorf("running game: %w", err)
	}
	if id := model.RunID(); id != "" {
		fmt.Printf("Run recorded: %s\n", id)
		fmt.Printf("Replay with: arcade replay %s\n", id)
	}
	return nil
}
