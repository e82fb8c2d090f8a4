// Package sensors provides sample sources feeding the engine's event loop.
// The engine never polls hardware directly; it drains whatever source it is
// given, so tests and the CLI can substitute a scripted feed.
package sensors

import (
	"sync"

	"github.com/alexanderramin/pulseplan/internal/domain"
)

// MotionSource delivers accelerometer readings.
type MotionSource interface {
	Motion() <-chan domain.MotionSample
	Close()
}

// PositionSource delivers positioning readings.
type PositionSource interface {
	Positions() <-chan domain.PositionSample
	Close()
}

// MotionFeed is an in-process MotionSource pushed to by the caller.
type MotionFeed struct {
	ch   chan domain.MotionSample
	once sync.Once
	mu   sync.Mutex
	done bool
}

func NewMotionFeed(buffer int) *MotionFeed {
	return &MotionFeed{ch: make(chan domain.MotionSample, buffer)}
}

func (f *MotionFeed) Motion() <-chan domain.MotionSample { return f.ch }

// Push enqueues a sample. It reports false when the feed is closed or the
// buffer is full; raw samples are droppable by contract.
func (f *MotionFeed) Push(s domain.MotionSample) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.done {
		return false
	}
	select {
	case f.ch <- s:
		return true
	default:
		return false
	}
}

func (f *MotionFeed) Close() {
	f.once.Do(func() {
		f.mu.Lock()
		f.done = true
		f.mu.Unlock()
		close(f.ch)
	})
}

// PositionFeed is an in-process PositionSource pushed to by the caller.
type PositionFeed struct {
	ch   chan domain.PositionSample
	once sync.Once
	mu   sync.Mutex
	done bool
}

func NewPositionFeed(buffer int) *PositionFeed {
	return &PositionFeed{ch: make(chan domain.PositionSample, buffer)}
}

func (f *PositionFeed) Positions() <-chan domain.PositionSample { return f.ch }

func (f *PositionFeed) Push(s domain.PositionSample) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.done {
		return false
	}
	select {
	case f.ch <- s:
		return true
	default:
		return false
	}
}

func (f *PositionFeed) Close() {
	f.once.Do(func() {
		f.mu.Lock()
		f.done = true
		f.mu.Unlock()
		close(f.ch)
	})
}
