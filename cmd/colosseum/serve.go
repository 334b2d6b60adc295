package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/vovakirdan/colosseum/internal/engine"
	"github.com/vovakirdan/colosseum/internal/platform/tui"
	"github.com/vovakirdan/colosseum/internal/spectate"
	"github.com/vovakirdan/colosseum/internal/storage"
)

var (
	flagSSHAddr     string
	flagHostKey     string
	flagIdleTimeout int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Share one arena with SSH spectators",
	Long: `Start an SSH server where everyone watches the same arena.

The arena runs on the server at --fps and starts a new match a few
seconds after each one ends. Every viewer can drop rocks and cars,
touch the arena and restart the match.

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.colosseum/host_key

Examples:
  colosseum serve                           # Listen on :23234 with auto-generated key
  colosseum serve --ssh :2222               # Listen on port 2222

Users can connect with:
  ssh localhost -p 23234`,
	Args: cobra.NoArgs,
	Run:  runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", ":23234", "SSH server address (host:port)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", 30, "Idle timeout in minutes before disconnecting")
}

func runServe(_ *cobra.Command, _ []string) {
	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	logger, closeLog, err := newLogger(os.Stderr)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer closeLog()

	store, err := storage.Open(storage.Memory)
	if err != nil {
		logger.Warn("could not open ledger", "err", err)
		store = nil
	}
	if store != nil {
		defer store.Close()
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
	eng.SetArenaSize(cfg.Arena.Width, cfg.Arena.Height)
	eng.SetDebug(cfg.Display.Debug)

	hp := flagHP
	if hp == 0 {
		hp = cfg.Player.DefaultHP
	}
	if err := eng.RegisterPlayers(context.Background(), flagPlayers, hp, engine.PlayerOptions{}); err != nil {
		fmt.Fprintf(os.Stderr, "Error registering players: %v\n", err)
		os.Exit(1)
	}

	hubCfg := spectate.DefaultConfig()
	hubCfg.TickRate = flagFPS
	hubCfg.RestartDelay = time.Duration(cfg.Match.RestartDelay * float64(time.Second))
	hubCfg.Cols = int(cfg.Arena.Width / cfg.Display.CellWidth)
	hubCfg.Rows = int(cfg.Arena.Height / cfg.Display.CellHeight)
	hub := spectate.NewHub(eng, hubCfg, spectate.WithLogger(logger))

	server, err := tui.NewSSHServer(tui.SSHServerConfig{
		Address:     flagSSHAddr,
		HostKeyPath: flagHostKey,
		IdleTimeout: time.Duration(flagIdleTimeout) * time.Minute,
	}, hub, store, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating server: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Starting colosseum SSH server on %s\n", server.Addr())
	fmt.Println("Connect with: ssh localhost -p 23234")
	fmt.Println("Press Ctrl+C to stop")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error { return hub.Run(ctx) })
	g.Go(func() error { return server.ListenAndServe(ctx) })

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		fmt.Fprintf(os.Stderr, "Server error: %v\n", err)
		os.Exit(1)
	}
}
