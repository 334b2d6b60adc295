// Package score ranks the roster at the end of a match and awards titles.
package score

import (
	"sort"
	"time"

	"github.com/vovakirdan/colosseum/internal/core"
)

// Title names in award order.
const (
	TitleFirstPlace = "1st place"
	TitleAce        = "Ace"
	TitleQuickExit  = "Quick Exit"
	TitlePacifist   = "Pacifist"
)

// Record is a player's bookkeeping at the moment the match ended.
type Record struct {
	Name        string
	Color       core.Color
	AttackPoint int
	KillPoint   int
	DeathTime   time.Time // zero while alive
}

// Alive reports whether the player survived the match.
func (r Record) Alive() bool {
	return r.DeathTime.IsZero()
}

// Options tune the calculation.
type Options struct {
	SurvivorBonus time.Duration // added to the match duration for survivors
	QuickExit     time.Duration // survive times at or below this earn Quick Exit
}

// DefaultOptions returns the standard bonus and quick exit threshold.
func DefaultOptions() Options {
	return Options{
		SurvivorBonus: 60 * time.Second,
		QuickExit:     10 * time.Second,
	}
}

// Stat is one row of the final table.
type Stat struct {
	Rank        int // 1-based
	Index       int // roster position
	Name        string
	Color       core.Color
	AttackPoint int
	KillPoint   int
	Survive     time.Duration
	Score       float64
	Alive       bool
}

// Title is an award and the players who earned it.
type Title struct {
	Name    string
	Players []string
}

// Result is the final table plus titles.
type Result struct {
	Duration time.Duration
	Stats    []Stat
	Titles   []Title
}

// Winner returns the first ranked player, or false for an empty table.
func (r Result) Winner() (Stat, bool) {
	if len(r.Stats) == 0 {
		return Stat{}, false
	}
	return r.Stats[0], true
}

// Calculate builds the ranked table for a match that ran from start to end.
// A composite term whose denominator is zero contributes nothing.
func Calculate(records []Record, start, end time.Time, opts Options) Result {
	duration := end.Sub(start)
	if duration < 0 {
		duration = 0
	}

	stats := make([]Stat, len(records))
	var totalAttack int
	var totalSurvive time.Duration
	for i, r := range records {
		survive := duration + opts.SurvivorBonus
		if !r.Alive() {
			survive = r.DeathTime.Sub(start)
			if survive < 0 {
				survive = 0
			}
		}
		stats[i] = Stat{
			Index:       i,
			Name:        r.Name,
			Color:       r.Color,
			AttackPoint: r.AttackPoint,
			KillPoint:   r.KillPoint,
			Survive:     survive,
			Alive:       r.Alive(),
		}
		totalAttack += r.AttackPoint
		totalSurvive += survive
	}

	for i := range stats {
		var s float64
		if totalAttack > 0 {
			s += float64(stats[i].AttackPoint) / float64(totalAttack) * 100
		}
		if totalSurvive > 0 {
			s += float64(stats[i].Survive) / float64(totalSurvive) * 100
		}
		stats[i].Score = s
	}

	sort.SliceStable(stats, func(i, j int) bool {
		return int(stats[i].Score) > int(stats[j].Score)
	})
	for i := range stats {
		stats[i].Rank = i + 1
	}

	return Result{
		Duration: duration,
		Stats:    stats,
		Titles:   titles(stats, opts),
	}
}

func titles(stats []Stat, opts Options) []Title {
	if len(stats) == 0 {
		return nil
	}

	out := []Title{{Name: TitleFirstPlace, Players: []string{stats[0].Name}}}

	maxKills := 0
	for _, s := range stats {
		maxKills = max(maxKills, s.KillPoint)
	}
	var ace, quick, pacifist []string
	for _, s := range stats {
		if maxKills > 0 && s.KillPoint == maxKills {
			ace = append(ace, s.Name)
		}
		if s.Survive <= opts.QuickExit {
			quick = append(quick, s.Name)
		}
		if s.AttackPoint == 0 {
			pacifist = append(pacifist, s.Name)
		}
	}

	for _, t := range []Title{
		{Name: TitleAce, Players: ace},
		{Name: TitleQuickExit, Players: quick},
		{Name: TitlePacifist, Players: pacifist},
	} {
		if len(t.Players) > 0 {
			out = append(out, t)
		}
	}
	return out
}
