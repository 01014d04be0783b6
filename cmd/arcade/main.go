// arcade is a terminal arcade of small single-player games built on a shared
// tick engine.
//
// Usage:
//
//	arcade list              - List available games
//	arcade play <game>       - Play a game
//	arcade menu              - Start menu to pick games interactively
//	arcade serve             - Start SSH server for remote play
//	arcade runs              - List recorded runs
//	arcade replay <run-id>   - Re-simulate a recorded run
//
// Global flags:
//
//	--fps <rate>    - Set tick rate (default: 60)
//	--seed <value>  - Set RNG seed for reproducible gameplay
//	--db <path>     - Set database path (default: ~/.arcade/arcade.db)
//	--verbose       - Log at debug level
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/minigame-arcade/internal/core"

	// Import games to register them
	_ "github.com/vovakirdan/minigame-arcade/internal/games/bubblelift"
	_ "github.com/vovakirdan/minigame-arcade/internal/games/candyrocket"
	_ "github.com/vovakirdan/minigame-arcade/internal/games/diyhouse"
	_ "github.com/vovakirdan/minigame-arcade/internal/games/gondola"
	_ "github.com/vovakirdan/minigame-arcade/internal/games/hammock"
	_ "github.com/vovakirdan/minigame-arcade/internal/games/heartrunner"
	_ "github.com/vovakirdan/minigame-arcade/internal/games/hockey"
	_ "github.com/vovakirdan/minigame-arcade/internal/games/lizard"
	_ "github.com/vovakirdan/minigame-arcade/internal/games/nukazuke"
	_ "github.com/vovakirdan/minigame-arcade/internal/games/nyanko"
	_ "github.com/vovakirdan/minigame-arcade/internal/games/popupbook"
	_ "github.com/vovakirdan/minigame-arcade/internal/games/sdgrunner"
	_ "github.com/vovakirdan/minigame-arcade/internal/games/turtle"
)

var (
	// Global flags
	flagFPS     int
	flagSeed    int64
	flagDBPath  string
	flagVerbose bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "arcade",
	Short: "Minigame Arcade - Play tiny games in your terminal",
	Long: `Minigame Arcade is a collection of small single-player games that
run on one tick engine, locally or over SSH.

Available commands:
  list     - Show all available games
  play     - Play a specific game directly
  menu     - Interactive game picker menu
  serve    - Start SSH server for remote play
  runs     - List recorded runs
  replay   - Re-simulate a recorded run

Examples:
  arcade list
  arcade play turtle
  arcade play heartrunner --record
  arcade menu
  arcade serve --ssh :2222
  arcade replay 3f2a9c1e-...`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.arcade/arcade.db", "Path to the run database")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Log at debug level")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(runsCmd)
	rootCmd.AddCommand(replayCmd)
}

// newLogger builds a logger writing to w with the arcade's options.
func newLogger(w io.Writer, prefix string) *log.Logger {
	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
	})
	if flagVerbose {
		logger.SetLevel(log.DebugLevel)
	}
	return logger
}

// fileLogger logs to ~/.arcade/arcade.log so the alternate screen stays
// clean. It falls back to discarding output when the file cannot be opened.
func fileLogger(prefix string) (*log.Logger, func()) {
	home, err := os.UserHomeDir()
	if err != nil {
		return newLogger(io.Discard, prefix), func() {}
	}
	dir := filepath.Join(home, ".arcade")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return newLogger(io.Discard, prefix), func() {}
	}
	f, err := os.OpenFile(filepath.Join(dir, "arcade.log"), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		return newLogger(io.Discard, prefix), func() {}
	}

	logger := newLogger(f, prefix)
	// engine defaults and replays log through the package default
	log.SetDefault(logger)
	return logger, func() { f.Close() }
}

// terminalConfig returns the runtime config for the local terminal.
func terminalConfig() core.RuntimeConfig {
	cfg := core.DefaultConfig()
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		cfg.ScreenW = w
		cfg.ScreenH = h
	}
	cfg.TickRate = flagFPS
	cfg.Seed = flagSeed
	return cfg
}
