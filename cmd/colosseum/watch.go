package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/colosseum/internal/core"
	"github.com/vovakirdan/colosseum/internal/engine"
	"github.com/vovakirdan/colosseum/internal/platform/tui"
	"github.com/vovakirdan/colosseum/internal/storage"
)

var flagDebug bool

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Watch a match in the terminal",
	Long: `Start a match and watch it unfold. The arena fills the terminal.

Controls:
  P/Esc      - Pause
  R          - Restart with the same fighters
  N          - New roster
  F          - Drop a rock
  C          - Send in a car
  D          - Show colliders
  Tab        - Results
  Click      - Touch the arena
  Q/Ctrl+C   - Quit

Logs go to --log-file only, so the screen stays clean.

Examples:
  colosseum watch
  colosseum watch --players Ajax,Hector --hp 5
  colosseum watch --preset frenzy --log-file colosseum.log`,
	Args: cobra.NoArgs,
	Run:  runWatch,
}

func init() {
	watchCmd.Flags().BoolVar(&flagDebug, "debug", false, "Start with colliders shown")
}

func runWatch(_ *cobra.Command, _ []string) {
	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	logger, closeLog, err := newLogger(io.Discard)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer closeLog()

	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	// The ledger lives as long as the session
	store, err := storage.Open(storage.Memory)
	if err != nil {
		logger.Warn("could not open ledger", "err", err)
		store = nil
	}

	opts := engineOptions(logger, true)
	if store != nil {
		opts = append(opts, recordTo(store, logger))
	}
	eng, err := engine.New(cfg, opts...)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating engine: %v\n", err)
		os.Exit(1)
	}
	eng.SetDebug(flagDebug || cfg.Display.Debug)

	hp := flagHP
	if hp == 0 {
		hp = cfg.Player.DefaultHP
	}
	runErr := tui.Run(eng, tui.Options{
		Names:   flagPlayers,
		StartHP: hp,
		Store:   store,
		Logger:  logger,
	}, core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}, cfg.Display.CellWidth, cfg.Display.CellHeight)

	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running spectator: %v\n", runErr)
		os.Exit(1)
	}
}
