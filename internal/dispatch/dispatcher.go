// Package dispatch resolves completed inputs through the action mapping table
// and drives the fixed-rate recognition loop.
package dispatch

import (
	"fmt"
	"io"

	"github.com/verte-zerg/padtype/internal/gesture"
	"github.com/verte-zerg/padtype/internal/layout"
)

// Sink receives resolved actions. The external key-injection collaborator
// implements this; Press is called once per resolved input.
type Sink interface {
	Press(action string) error
}

// WriterSink logs each action to a writer, one per line.
type WriterSink struct {
	W io.Writer
}

// Press writes the action.
func (s WriterSink) Press(action string) error {
	_, err := fmt.Fprintln(s.W, action)
	return err
}

// Dispatcher looks completed inputs up in an immutable table snapshot and
// emits the mapped actions. Unmapped gestures are silent no-ops, counted for
// diagnostics. The dispatcher never mutates the table.
type Dispatcher struct {
	table  *layout.Table
	sink   Sink
	misses uint64
}

// NewDispatcher wires a table snapshot to a sink.
func NewDispatcher(table *layout.Table, sink Sink) *Dispatcher {
	return &Dispatcher{table: table, sink: sink}
}

// Dispatch resolves one completed input within the given modifier layer.
func (d *Dispatcher) Dispatch(mods uint8, in gesture.Input) error {
	action, ok := d.table.Lookup(mods, in)
	if !ok {
		d.misses++
		return nil
	}
	return d.sink.Press(action)
}

// Misses reports how many completed inputs had no table entry.
func (d *Dispatcher) Misses() uint64 {
	return d.misses
}
