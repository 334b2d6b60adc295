package spectate

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/colosseum/internal/config"
	"github.com/vovakirdan/colosseum/internal/core"
	"github.com/vovakirdan/colosseum/internal/engine"
	"github.com/vovakirdan/colosseum/internal/hazard"
)

const dt = 1.0 / 64

func newHub(t *testing.T, cfg Config, opts ...Option) (*Hub, *engine.Engine) {
	t.Helper()
	e, err := engine.New(config.Default(), engine.WithSeed(5))
	if err != nil {
		t.Fatalf("engine.New() failed: %v", err)
	}
	e.SetArenaSize(1280, 720)
	if err := e.RegisterPlayers(context.Background(), []string{"Ajax", "Hector"}, 3, engine.PlayerOptions{DisableAI: true}); err != nil {
		t.Fatalf("RegisterPlayers() failed: %v", err)
	}
	h := NewHub(e, cfg, opts...)
	t.Cleanup(h.Stop)
	return h, e
}

func TestSubscribeDeliversLatestFrame(t *testing.T) {
	h, e := newHub(t, DefaultConfig())

	s, err := h.Subscribe()
	if err != nil {
		t.Fatalf("Subscribe() failed: %v", err)
	}
	select {
	case f := <-s.Frames():
		if f.MatchID != e.MatchID() {
			t.Errorf("frame match = %v, want %v", f.MatchID, e.MatchID())
		}
		if f.State != "playing" {
			t.Errorf("frame state = %q, want playing", f.State)
		}
		if f.Screen.Width() != 80 || f.Screen.Height() != 22 {
			t.Errorf("screen = %dx%d, want 80x22", f.Screen.Width(), f.Screen.Height())
		}
	default:
		t.Fatal("no frame delivered on subscribe")
	}
	if h.Viewers() != 1 {
		t.Errorf("Viewers() = %d, want 1", h.Viewers())
	}
}

func TestStepPublishes(t *testing.T) {
	h, _ := newHub(t, DefaultConfig())
	s, err := h.Subscribe()
	if err != nil {
		t.Fatalf("Subscribe() failed: %v", err)
	}
	<-s.Frames()

	h.Step(dt)
	f := <-s.Frames()
	if f.Tick != 1 {
		t.Errorf("frame tick = %d, want 1", f.Tick)
	}
	if h.Last().Tick != 1 {
		t.Errorf("Last().Tick = %d, want 1", h.Last().Tick)
	}
}

func TestSlowSubscriberKeepsNewestFrames(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Buffer = 2
	h, _ := newHub(t, cfg)
	s, err := h.Subscribe()
	if err != nil {
		t.Fatalf("Subscribe() failed: %v", err)
	}

	for i := 0; i < 10; i++ {
		h.Step(dt)
	}

	var ticks []uint64
	for len(s.Frames()) > 0 {
		ticks = append(ticks, (<-s.Frames()).Tick)
	}
	if len(ticks) != 2 || ticks[0] != 9 || ticks[1] != 10 {
		t.Errorf("buffered ticks = %v, want [9 10]", ticks)
	}
}

func TestCommandsApplyOnStep(t *testing.T) {
	h, e := newHub(t, DefaultConfig())
	before := len(e.Entities())

	h.Send(SpawnCmd{Kind: hazard.KindRock})
	h.Send(TouchCmd{At: core.Vec{X: 100, Y: 100}})
	h.Send(SpawnCmd{Kind: "meteor"})
	if got := len(e.Entities()); got != before {
		t.Fatalf("commands applied before Step: %d entities", got)
	}

	h.Step(dt)
	if got := len(e.Entities()); got != before+2 {
		t.Errorf("entities = %d, want %d", got, before+2)
	}
}

func TestRejectedSpawnIsLogged(t *testing.T) {
	var buf bytes.Buffer
	h, e := newHub(t, DefaultConfig(), WithLogger(log.New(&buf)))
	before := len(e.Entities())

	h.Send(SpawnCmd{Kind: "meteor"})
	h.Step(dt)

	if got := len(e.Entities()); got != before {
		t.Errorf("entities = %d, want %d", got, before)
	}
	if out := buf.String(); !strings.Contains(out, "spawn command rejected") || !strings.Contains(out, "meteor") {
		t.Errorf("log = %q, want the rejected kind", out)
	}
}

func TestAutoRestart(t *testing.T) {
	cfg := DefaultConfig()
	cfg.RestartDelay = time.Second
	h, e := newHub(t, cfg)
	first := e.MatchID()

	e.Conclude(engine.TimeUp)
	h.Step(dt)
	f := h.Last()
	if f.State != "ended" || f.Result == nil {
		t.Fatalf("frame state = %q, result = %v; want ended with a result", f.State, f.Result)
	}

	// The finished match is shown until the delay has passed.
	for i := 0; i < 63; i++ {
		h.Step(dt)
	}
	if e.MatchID() != first {
		t.Fatal("restarted before the delay")
	}
	h.Step(dt)
	if e.MatchID() == first {
		t.Fatal("did not restart after the delay")
	}
	if h.Last().State != "playing" {
		t.Errorf("frame state = %q, want playing", h.Last().State)
	}
}

func TestRestartCommand(t *testing.T) {
	h, e := newHub(t, DefaultConfig())
	first := e.MatchID()

	h.Send(RestartCmd{})
	h.Step(dt)
	if e.MatchID() == first {
		t.Error("RestartCmd did not start a new match")
	}
}

func TestUnsubscribe(t *testing.T) {
	h, _ := newHub(t, DefaultConfig())
	s, err := h.Subscribe()
	if err != nil {
		t.Fatalf("Subscribe() failed: %v", err)
	}

	h.Unsubscribe(s)
	h.Unsubscribe(s)
	select {
	case <-s.Done():
	default:
		t.Error("subscription not closed")
	}
	if h.Viewers() != 0 {
		t.Errorf("Viewers() = %d, want 0", h.Viewers())
	}
}

func TestStopClosesSubscribers(t *testing.T) {
	h, _ := newHub(t, DefaultConfig())
	s, err := h.Subscribe()
	if err != nil {
		t.Fatalf("Subscribe() failed: %v", err)
	}

	h.Stop()
	select {
	case <-s.Done():
	default:
		t.Error("subscription not closed on Stop")
	}
	if _, err := h.Subscribe(); !errors.Is(err, ErrClosed) {
		t.Errorf("Subscribe() after Stop = %v, want ErrClosed", err)
	}
	h.Send(RestartCmd{})
}

func TestRunStopsOnCancel(t *testing.T) {
	cfg := DefaultConfig()
	cfg.TickRate = 200
	h, _ := newHub(t, cfg)

	ctx, cancel := context.WithCancel(context.Background())
	errc := make(chan error, 1)
	go func() { errc <- h.Run(ctx) }()

	time.Sleep(50 * time.Millisecond)
	cancel()
	select {
	case err := <-errc:
		if !errors.Is(err, context.Canceled) {
			t.Errorf("Run() = %v, want context.Canceled", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Run() did not return after cancel")
	}
	if h.Last().Tick == 0 {
		t.Error("Run() never stepped the arena")
	}
}
