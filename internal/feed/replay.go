package feed

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// Replay yields frames from a JSONL recording, one frame object per line.
// Blank lines are skipped; Next returns io.EOF at the end of the file.
type Replay struct {
	closer  io.Closer
	scanner *bufio.Scanner
	line    int
}

// OpenReplay opens a recording file.
func OpenReplay(path string) (*Replay, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open replay: %w", err)
	}
	return &Replay{closer: f, scanner: bufio.NewScanner(f)}, nil
}

// NewReplay reads a recording from r. The caller keeps ownership of r.
func NewReplay(r io.Reader) *Replay {
	return &Replay{scanner: bufio.NewScanner(r)}
}

// Next returns the next recorded frame.
func (r *Replay) Next() (Frame, error) {
	for r.scanner.Scan() {
		r.line++
		data := bytes.TrimSpace(r.scanner.Bytes())
		if len(data) == 0 {
			continue
		}
		var f Frame
		if err := json.Unmarshal(data, &f); err != nil {
			return Frame{}, fmt.Errorf("replay line %d: %w", r.line, err)
		}
		return f, nil
	}
	if err := r.scanner.Err(); err != nil {
		return Frame{}, fmt.Errorf("failed to read replay: %w", err)
	}
	return Frame{}, io.EOF
}

// Close closes the underlying file, if any.
func (r *Replay) Close() error {
	if r.closer == nil {
		return nil
	}
	return r.closer.Close()
}
