package dispatch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/verte-zerg/padtype/internal/feed"
	"github.com/verte-zerg/padtype/internal/gesture"
	"github.com/verte-zerg/padtype/internal/model"
)

// Engine is the runtime recognition loop: a single-threaded, fixed-rate
// poller that classifies both sticks each tick, advances the gesture
// aggregator, and dispatches completed inputs. Nothing in the tick path
// blocks besides the source read, and no recognizer state is shared across
// goroutines.
type Engine struct {
	classifier gesture.Classifier
	aggregator *gesture.Aggregator
	dispatcher *Dispatcher
	source     feed.Source
	interval   time.Duration
}

// NewEngine assembles the loop from resolved run options.
func NewEngine(opts model.RunOptions, source feed.Source, dispatcher *Dispatcher) (*Engine, error) {
	if opts.SampleRateHz <= 0 {
		return nil, fmt.Errorf("sample rate must be positive, got %d", opts.SampleRateHz)
	}
	if opts.CenterThreshold <= 0 || opts.CenterThreshold >= 1 {
		return nil, fmt.Errorf("center threshold must be in (0, 1), got %v", opts.CenterThreshold)
	}
	return &Engine{
		classifier: gesture.Classifier{Threshold: opts.CenterThreshold, Sectors: opts.SectorCount},
		aggregator: gesture.NewAggregator(opts.MaxGestureLength),
		dispatcher: dispatcher,
		source:     source,
		interval:   time.Second / time.Duration(opts.SampleRateHz),
	}, nil
}

// Run polls until the context is cancelled or the source ends. Cancellation
// mid-gesture discards the transient accumulator state; nothing is persisted.
func (e *Engine) Run(ctx context.Context) error {
	ticker := time.NewTicker(e.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			e.aggregator.Reset()
			return ctx.Err()
		case <-ticker.C:
			if err := e.step(); err != nil {
				if errors.Is(err, io.EOF) {
					return nil
				}
				return err
			}
		}
	}
}

// Drain consumes the source without pacing, e.g. for replay files.
func (e *Engine) Drain() error {
	for {
		if err := e.step(); err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}
	}
}

func (e *Engine) step() error {
	frame, err := e.source.Next()
	if err != nil {
		return err
	}
	left := e.classifier.Classify(frame.LX, frame.LY)
	right := e.classifier.Classify(frame.RX, frame.RY)
	if in, done := e.aggregator.Feed(left, right); done {
		return e.dispatcher.Dispatch(frame.Mods, in)
	}
	return nil
}
