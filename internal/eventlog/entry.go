// Package eventlog records the narrative of a match: system notices, things a
// single player did, and interactions between two players.
package eventlog

import (
	"fmt"
	"time"

	"github.com/vovakirdan/colosseum/internal/core"
)

// Ref identifies a player in an entry.
type Ref struct {
	Name  string
	Color core.Color
}

// Meta is stamped on every entry when it is appended.
type Meta struct {
	Seq uint64    // monotonically increasing within a log, survives Clear
	At  time.Time // simulation time of the event
}

// Entry is one immutable log line. The set of implementations is closed.
type Entry interface {
	Header() Meta
	String() string
	entry()
}

// System is a message from the arena itself.
type System struct {
	Meta
	Message string
}

// Solo is something a single player did or said.
type Solo struct {
	Meta
	Actor   Ref
	Message string
}

// Duo is an interaction between two players, such as a hit or an elimination.
type Duo struct {
	Meta
	Perpetrator Ref
	Victim      Ref
	Interaction string
	Extra       string
}

func (e System) Header() Meta { return e.Meta }
func (e Solo) Header() Meta   { return e.Meta }
func (e Duo) Header() Meta    { return e.Meta }

func (System) entry() {}
func (Solo) entry()   {}
func (Duo) entry()    {}

func (e System) String() string {
	return e.Message
}

func (e Solo) String() string {
	return fmt.Sprintf("%s: %s", e.Actor.Name, e.Message)
}

func (e Duo) String() string {
	s := fmt.Sprintf("%s %s %s", e.Perpetrator.Name, e.Interaction, e.Victim.Name)
	if e.Extra != "" {
		s += " (" + e.Extra + ")"
	}
	return s
}
