package main

import (
	"github.com/spf13/cobra"

	"github.com/vovakirdan/minigame-arcade/internal/platform/tui"
	"github.com/vovakirdan/minigame-arcade/internal/storage"
)

var flagMenuRecord bool

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start the arcade with a game picker menu",
	Long: `Start the arcade in interactive menu mode.

Use arrow keys or j/k to navigate, Enter to select a game.
Esc leaves a game and returns to the menu. Tab browses recorded runs.

Controls:
  Up/Down/j/k  - Navigate menu
  Enter/Space  - Select game
  Tab          - Recorded runs
  Q            - Quit

Examples:
  arcade menu
  arcade menu --fps 30
  arcade menu --record --db ./arcade.db`,
	RunE: runMenu,
}

func init() {
	menuCmd.Flags().BoolVar(&flagMenuRecord, "record", false, "Journal every run so it can be replayed")
}

func runMenu(_ *cobra.Command, _ []string) error {
	logger, closeLog := fileLogger("arcade")
	defer closeLog()

	// The runs browser needs the database even when not recording.
	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open run database", "err", err)
		store = nil
	} else {
		defer store.Close()
	}

	return tui.RunSession(tui.SessionOptions{
		Store:  store,
		Config: terminalConfig(),
		Logger: logger,
		Record: flagMenuRecord && store != nil,
	})
}
