// colosseum is a terminal battle-royale simulator: autonomous fighters
// brawl in a 2D arena while spectators drop hazards on them.
//
// Usage:
//
//	colosseum watch            - Watch a match in the terminal
//	colosseum sim              - Run matches headless and print the tables
//	colosseum serve            - Share one arena with SSH spectators
//	colosseum hazards          - List the hazards spectators can spawn
//	colosseum config           - Print the default configuration
//
// Global flags:
//
//	--fps <rate>        - Set tick rate (default: 60)
//	--seed <value>      - Set RNG seed for reproducible matches
//	--config <path>     - Use a custom configuration file
//	--preset <name>     - calm, normal or frenzy
//	--log-level <lvl>   - debug, info, warn or error
//	--log-file <path>   - Write logs to a file
package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/colosseum/internal/config"
	"github.com/vovakirdan/colosseum/internal/engine"
	"github.com/vovakirdan/colosseum/internal/match"
	"github.com/vovakirdan/colosseum/internal/storage"
)

var (
	// Global flags
	flagFPS      int
	flagSeed     int64
	flagConfig   string
	flagPreset   string
	flagLogLevel string
	flagLogFile  string
	flagPlayers  []string
	flagHP       int
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "colosseum",
	Short: "Colosseum - a battle royale you watch in your terminal",
	Long: `Colosseum drops a handful of fighters into a 2D arena and lets them
brawl until one is left standing. You watch, and when it gets dull you
drop rocks and cars on them.

Available commands:
  watch    - Watch a match in the terminal
  sim      - Run matches headless and print the tables
  serve    - Share one arena with SSH spectators
  hazards  - List the hazards spectators can spawn
  config   - Print the default configuration

Examples:
  colosseum watch
  colosseum watch --players Ajax,Hector,Achilles --hp 5
  colosseum sim --matches 20 --seed 42
  colosseum serve --ssh :2222`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom config YAML")
	rootCmd.PersistentFlags().StringVar(&flagPreset, "preset", "", "Tuning preset: calm, normal, frenzy")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Write logs to this file")
	rootCmd.PersistentFlags().StringSliceVar(&flagPlayers, "players", []string{"Ajax", "Hector", "Achilles", "Paris"}, "Fighter names")
	rootCmd.PersistentFlags().IntVar(&flagHP, "hp", 0, "Starting hp (0 = config default)")

	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(simCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(hazardsCmd)
	rootCmd.AddCommand(configCmd)
}

// loadConfig reads the configuration and applies the preset.
func loadConfig() (config.Config, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return cfg, err
	}
	preset, err := config.ParsePreset(flagPreset)
	if err != nil {
		return cfg, err
	}
	config.ApplyPreset(&cfg, preset)
	return cfg, cfg.Validate()
}

// newLogger builds the structured logger. fallback receives logs when no
// --log-file is given. The returned closer must be called on exit.
func newLogger(fallback io.Writer) (*log.Logger, func(), error) {
	w, closer := fallback, func() {}
	if flagLogFile != "" {
		f, err := os.OpenFile(flagLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if err != nil {
			return nil, nil, fmt.Errorf("cannot open log file: %w", err)
		}
		w, closer = f, func() { f.Close() }
	}

	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		closer()
		return nil, nil, err
	}

	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          "colosseum",
		Level:           level,
	})
	return logger, closer, nil
}

// seed returns the --seed value, or a time-based seed when unset.
func seed() int64 {
	if flagSeed != 0 {
		return flagSeed
	}
	return time.Now().UnixNano()
}

// engineOptions are the options shared by every command.
func engineOptions(logger *log.Logger, wallClock bool) []engine.Option {
	opts := []engine.Option{
		engine.WithLogger(logger),
		engine.WithSeed(seed()),
	}
	if wallClock {
		opts = append(opts, engine.WithClock(match.NewClock(time.Now())))
	}
	return opts
}

// recordTo returns a match-end hook that writes to the ledger.
func recordTo(store *storage.Store, logger *log.Logger) engine.Option {
	return engine.WithMatchEnd(func(e engine.Ended) {
		if err := store.RecordEnded(e); err != nil {
			logger.Warn("could not record match", "id", e.ID, "err", err)
		}
	})
}
