// Package analytics ships recommendation telemetry on a fire-and-forget
// queue. Emission never blocks or fails the recommendation path: when the
// queue is full events are dropped and counted.
package analytics

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"selectd/pkg/types"
)

// Event is one recommendation outcome.
type Event struct {
	ID         string         `json:"id"`
	Time       time.Time      `json:"time"`
	Category   types.Category `json:"category"`
	Model      string         `json:"model"`
	Fallback   bool           `json:"fallback"`
	Confidence float64        `json:"confidence"`
	DurationMS int64          `json:"duration_ms"`
}

// Sink receives shipped events. Implementations must not panic; a panic is
// recovered and logged by the worker.
type Sink interface {
	Ship(Event)
}

// LogSink writes events to the structured log. The default sink for
// deployments without an external collector.
type LogSink struct{ Log zerolog.Logger }

func (s LogSink) Ship(e Event) {
	s.Log.Info().
		Str("event_id", e.ID).
		Str("category", string(e.Category)).
		Str("model", e.Model).
		Bool("fallback", e.Fallback).
		Float64("confidence", e.Confidence).
		Int64("duration_ms", e.DurationMS).
		Msg("recommendation")
}

// Publisher owns the queue and the single background worker draining it.
type Publisher struct {
	mu      sync.Mutex
	closed  bool
	ch      chan Event
	done    chan struct{}
	dropped uint64

	sink Sink
	log  zerolog.Logger
}

// NewPublisher starts the worker. buffer <= 0 selects a default of 256.
func NewPublisher(sink Sink, buffer int, log zerolog.Logger) *Publisher {
	if buffer <= 0 {
		buffer = 256
	}
	p := &Publisher{
		ch:   make(chan Event, buffer),
		done: make(chan struct{}),
		sink: sink,
		log:  log,
	}
	go p.run()
	return p
}

func (p *Publisher) run() {
	defer close(p.done)
	for e := range p.ch {
		p.ship(e)
	}
}

func (p *Publisher) ship(e Event) {
	defer func() {
		if r := recover(); r != nil {
			p.log.Error().Interface("panic", r).Msg("analytics sink panicked")
		}
	}()
	p.sink.Ship(e)
}

// Emit enqueues an event without blocking. Missing ID/Time are filled in.
// Events offered after Shutdown, or while the queue is full, are dropped.
func (p *Publisher) Emit(e Event) {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	if e.Time.IsZero() {
		e.Time = time.Now()
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return
	}
	select {
	case p.ch <- e:
	default:
		p.dropped++
		p.log.Debug().Str("event_id", e.ID).Msg("analytics queue full, event dropped")
	}
}

// Dropped reports how many events were discarded due to backpressure.
func (p *Publisher) Dropped() uint64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.dropped
}

// Shutdown stops intake and waits for the worker to drain pending events,
// or for ctx to expire.
func (p *Publisher) Shutdown(ctx context.Context) error {
	p.mu.Lock()
	if !p.closed {
		p.closed = true
		close(p.ch)
	}
	p.mu.Unlock()
	select {
	case <-p.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
