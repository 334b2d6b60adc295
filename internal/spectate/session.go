package spectate

import (
	"sync"

	"github.com/google/uuid"
)

// Subscriber receives frames from a hub. Sends never block the hub: when the
// buffer is full the oldest frame is dropped.
type Subscriber struct {
	id       uuid.UUID
	frames   chan Frame
	done     chan struct{}
	doneOnce sync.Once
}

func newSubscriber(bufferSize int) *Subscriber {
	if bufferSize < 1 {
		bufferSize = 4
	}
	return &Subscriber{
		id:     uuid.New(),
		frames: make(chan Frame, bufferSize),
		done:   make(chan struct{}),
	}
}

// ID returns the subscriber identifier.
func (s *Subscriber) ID() uuid.UUID {
	return s.id
}

// send delivers a frame, dropping the oldest buffered frame if needed.
func (s *Subscriber) send(f Frame) {
	select {
	case <-s.done:
		return
	default:
	}

	select {
	case s.frames <- f:
	default:
		select {
		case <-s.frames:
		default:
		}
		select {
		case s.frames <- f:
		default:
		}
	}
}

// Frames returns the channel to receive frames from.
func (s *Subscriber) Frames() <-chan Frame {
	return s.frames
}

// Done returns a channel that closes when the subscription ends.
func (s *Subscriber) Done() <-chan struct{} {
	return s.done
}

// close marks the subscription as done. Safe to call multiple times.
func (s *Subscriber) close() {
	s.doneOnce.Do(func() {
		close(s.done)
	})
}
