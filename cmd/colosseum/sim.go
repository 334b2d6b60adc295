package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/colosseum/internal/engine"
	"github.com/vovakirdan/colosseum/internal/match"
	"github.com/vovakirdan/colosseum/internal/storage"
)

var (
	flagMatches   int
	flagRocks     float64
	flagCars      float64
	flagQuiet     bool
	flagMaxTicks  int
	flagTickDelta float64
)

var simCmd = &cobra.Command{
	Use:   "sim",
	Short: "Run matches headless and print the tables",
	Long: `Run a batch of matches without a screen, using a fixed timestep.
Every match ends when one fighter is left. A match still running after
match.max_duration seconds of simulated time, or after --max-ticks ticks,
is stopped and ranked as it stands. The final table of each match and the
session leaderboard are printed at the end.

With the same --seed the batch is reproducible.

Examples:
  colosseum sim
  colosseum sim --matches 50 --seed 7 --quiet
  colosseum sim --rocks 2 --cars 10
  colosseum sim --max-ticks 6000`,
	Args: cobra.NoArgs,
	Run:  runSim,
}

func init() {
	simCmd.Flags().IntVar(&flagMatches, "matches", 5, "Number of matches to run")
	simCmd.Flags().Float64Var(&flagRocks, "rocks", 0, "Drop a rock every N seconds (0 = config)")
	simCmd.Flags().Float64Var(&flagCars, "cars", 0, "Send a car every N seconds (0 = config)")
	simCmd.Flags().BoolVar(&flagQuiet, "quiet", false, "Only print the leaderboard")
	simCmd.Flags().IntVar(&flagMaxTicks, "max-ticks", 0, "Stop a match after N ticks (0 = no limit)")
	simCmd.Flags().Float64Var(&flagTickDelta, "dt", 0, "Fixed timestep in seconds (default: 1/fps)")
}

func runSim(_ *cobra.Command, _ []string) {
	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	if flagRocks > 0 {
		cfg.Hazards.Rock.Interval = flagRocks
	}
	if flagCars > 0 {
		cfg.Hazards.Car.Interval = flagCars
	}

	logger, closeLog, err := newLogger(os.Stderr)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer closeLog()

	store, err := storage.Open(storage.Memory)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening ledger: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	eng, err := engine.New(cfg, append(engineOptions(logger, false), recordTo(store, logger))...)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating engine: %v\n", err)
		os.Exit(1)
	}
	eng.SetArenaSize(cfg.Arena.Width, cfg.Arena.Height)

	hp := flagHP
	if hp == 0 {
		hp = cfg.Player.DefaultHP
	}
	ctx := context.Background()
	if err := eng.RegisterPlayers(ctx, flagPlayers, hp, engine.PlayerOptions{}); err != nil {
		fmt.Fprintf(os.Stderr, "Error registering players: %v\n", err)
		os.Exit(1)
	}

	dt := flagTickDelta
	if dt <= 0 {
		dt = 1 / float64(max(flagFPS, 1))
	}

	for i := range flagMatches {
		if i > 0 {
			if err := eng.Restart(ctx); err != nil {
				fmt.Fprintf(os.Stderr, "Error restarting: %v\n", err)
				os.Exit(1)
			}
		}
		ended := runMatch(eng, dt, match.Seconds(cfg.Match.MaxDuration), flagMaxTicks)
		if !flagQuiet {
			printTable(i+1, ended)
		}
	}

	board, err := store.Leaderboard(len(flagPlayers))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading leaderboard: %v\n", err)
		os.Exit(1)
	}
	printLeaderboard(board)
}

// runMatch ticks the engine until the match ends. A match that outlasts
// limit or maxTicks is concluded as it stands; zero disables either bound.
func runMatch(eng *engine.Engine, dt float64, limit time.Duration, maxTicks int) engine.Ended {
	for tick := 0; ; tick++ {
		if ended, ok := eng.State().(engine.Ended); ok {
			return ended
		}
		timeUp := limit > 0 && eng.Match().Elapsed() >= limit
		if timeUp || (maxTicks > 0 && tick >= maxTicks) {
			if !eng.Conclude(engine.TimeUp) {
				return engine.Ended{}
			}
			continue
		}
		eng.Tick(dt)
	}
}

func printTable(n int, e engine.Ended) {
	fmt.Printf("Match %d - %s (%.1fs)\n", n, e.Reason, e.Result.Duration.Seconds())
	fmt.Printf("  %-4s  %-16s  %5s  %5s  %9s  %7s\n", "Rank", "Player", "Hits", "Kills", "Survived", "Score")
	fmt.Printf("  %-4s  %-16s  %5s  %5s  %9s  %7s\n", "----", "------", "----", "-----", "--------", "-----")
	for _, s := range e.Result.Stats {
		fmt.Printf("  %-4d  %-16s  %5d  %5d  %8.1fs  %7.1f\n",
			s.Rank, s.Name, s.AttackPoint, s.KillPoint, s.Survive.Seconds(), s.Score)
	}
	for _, t := range e.Result.Titles {
		fmt.Printf("  %s: %s\n", t.Name, strings.Join(t.Players, ", "))
	}
	fmt.Println()
}

func printLeaderboard(board []storage.Standing) {
	fmt.Println("Leaderboard")
	if len(board) == 0 {
		fmt.Println("  No matches recorded.")
		return
	}
	fmt.Printf("  %-16s  %7s  %4s  %5s  %7s  %9s\n", "Player", "Matches", "Wins", "Kills", "Hits", "Avg score")
	fmt.Printf("  %-16s  %7s  %4s  %5s  %7s  %9s\n", "------", "-------", "----", "-----", "----", "---------")
	for _, st := range board {
		fmt.Printf("  %-16s  %7d  %4d  %5d  %7d  %9.1f\n",
			st.Name, st.Matches, st.Wins, st.Kills, st.Attacks, st.AvgScore)
	}
}
