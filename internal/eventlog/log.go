package eventlog

import (
	"sync"
	"time"

	"github.com/charmbracelet/log"
)

// DefaultCapacity is the number of entries kept before the oldest are discarded.
const DefaultCapacity = 200

// Sink receives a copy of every appended entry.
type Sink interface {
	Write(e Entry)
}

// SinkFunc adapts a function to a Sink.
type SinkFunc func(e Entry)

func (f SinkFunc) Write(e Entry) {
	if f == nil {
		return
	}
	f(e)
}

// LoggerSink mirrors entries to a structured logger at debug level.
func LoggerSink(logger *log.Logger) Sink {
	if logger == nil {
		return nil
	}
	return SinkFunc(func(e Entry) {
		h := e.Header()
		switch v := e.(type) {
		case System:
			logger.Debug("system", "seq", h.Seq, "msg", v.Message)
		case Solo:
			logger.Debug("solo", "seq", h.Seq, "actor", v.Actor.Name, "msg", v.Message)
		case Duo:
			logger.Debug("duo", "seq", h.Seq, "by", v.Perpetrator.Name, "on", v.Victim.Name,
				"what", v.Interaction, "extra", v.Extra)
		}
	})
}

// Log is a bounded, newest-first sequence of entries.
// It is safe for concurrent readers while the simulation appends.
type Log struct {
	mu       sync.RWMutex
	capacity int
	seq      uint64
	entries  []Entry // oldest first
	sink     Sink
}

// New creates a log holding at most capacity entries.
// A non-positive capacity selects DefaultCapacity.
func New(capacity int, sink Sink) *Log {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Log{
		capacity: capacity,
		entries:  make([]Entry, 0, capacity),
		sink:     sink,
	}
}

// System appends a System entry.
func (l *Log) System(at time.Time, message string) Entry {
	return l.append(func(m Meta) Entry {
		return System{Meta: m, Message: message}
	}, at)
}

// Solo appends a Solo entry.
func (l *Log) Solo(at time.Time, actor Ref, message string) Entry {
	return l.append(func(m Meta) Entry {
		return Solo{Meta: m, Actor: actor, Message: message}
	}, at)
}

// Duo appends a Duo entry.
func (l *Log) Duo(at time.Time, perpetrator, victim Ref, interaction, extra string) Entry {
	return l.append(func(m Meta) Entry {
		return Duo{Meta: m, Perpetrator: perpetrator, Victim: victim, Interaction: interaction, Extra: extra}
	}, at)
}

func (l *Log) append(build func(Meta) Entry, at time.Time) Entry {
	l.mu.Lock()
	l.seq++
	e := build(Meta{Seq: l.seq, At: at})
	l.entries = append(l.entries, e)
	if over := len(l.entries) - l.capacity; over > 0 {
		// Shift instead of reslicing so the backing array does not grow forever.
		n := copy(l.entries, l.entries[over:])
		clear(l.entries[n:])
		l.entries = l.entries[:n]
	}
	sink := l.sink
	l.mu.Unlock()

	if sink != nil {
		sink.Write(e)
	}
	return e
}

// Entries returns a newest-first copy of the log.
func (l *Log) Entries() []Entry {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]Entry, len(l.entries))
	for i, e := range l.entries {
		out[len(l.entries)-1-i] = e
	}
	return out
}

// Len returns the number of retained entries.
func (l *Log) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.entries)
}

// Capacity returns the maximum number of retained entries.
func (l *Log) Capacity() int {
	return l.capacity
}

// Clear drops every entry. Sequence numbers keep increasing.
func (l *Log) Clear() {
	l.mu.Lock()
	defer l.mu.Unlock()
	clear(l.entries)
	l.entries = l.entries[:0]
}
