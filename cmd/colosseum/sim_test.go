package main

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/colosseum/internal/config"
	"github.com/vovakirdan/colosseum/internal/engine"
)

const simDt = 1.0 / 64

// idleDuel starts a match between two players that never act.
func idleDuel(t *testing.T) *engine.Engine {
	t.Helper()
	eng, err := engine.New(config.Default(), engine.WithSeed(1))
	require.NoError(t, err)
	eng.SetArenaSize(1920, 1080)
	eng.World().SetPlatforms(nil)
	require.NoError(t, eng.RegisterPlayers(context.Background(), []string{"A", "B"}, 3, engine.PlayerOptions{DisableAI: true}))
	return eng
}

func TestRunMatchStopsAtMaxDuration(t *testing.T) {
	eng := idleDuel(t)

	ended := runMatch(eng, simDt, 2*time.Second, 0)
	assert.Equal(t, engine.TimeUp, ended.Reason)
	assert.InDelta(t, 2.0, ended.Duration.Seconds(), 1e-6)
	for _, s := range ended.Stats {
		assert.True(t, s.Alive, s.Name)
	}
}

func TestRunMatchStopsAtMaxTicks(t *testing.T) {
	eng := idleDuel(t)

	ended := runMatch(eng, simDt, 0, 32)
	assert.Equal(t, engine.TimeUp, ended.Reason)
	assert.InDelta(t, 0.5, ended.Duration.Seconds(), 1e-6)
}

func TestRunMatchReturnsEndedMatch(t *testing.T) {
	eng := idleDuel(t)
	require.True(t, eng.Conclude("stopped"))

	ended := runMatch(eng, simDt, time.Second, 1)
	assert.Equal(t, "stopped", ended.Reason)
}
