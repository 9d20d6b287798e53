package store

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/verte-zerg/padtype/internal/model"
)

// ParseKeyCounts reads a frequency log in `key,count` CSV form.
func ParseKeyCounts(r io.Reader) ([]model.KeyCount, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = 2
	var out []model.KeyCount
	for line := 1; ; line++ {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read key counts: %w", err)
		}
		count, err := strconv.ParseFloat(record[1], 64)
		if err != nil {
			return nil, fmt.Errorf("line %d: invalid count %q: %w", line, record[1], err)
		}
		if record[0] == "" {
			return nil, fmt.Errorf("line %d: empty key", line)
		}
		if count < 0 {
			return nil, fmt.Errorf("line %d: negative count %v", line, count)
		}
		out = append(out, model.KeyCount{Key: record[0], Count: count})
	}
	return out, nil
}

// ParsePairCounts reads a co-occurrence log in `a,b,count` CSV form.
func ParsePairCounts(r io.Reader) ([]model.PairCount, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = 3
	var out []model.PairCount
	for line := 1; ; line++ {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read pair counts: %w", err)
		}
		count, err := strconv.ParseFloat(record[2], 64)
		if err != nil {
			return nil, fmt.Errorf("line %d: invalid count %q: %w", line, record[2], err)
		}
		if record[0] == "" || record[1] == "" {
			return nil, fmt.Errorf("line %d: empty key", line)
		}
		if count < 0 {
			return nil, fmt.Errorf("line %d: negative count %v", line, count)
		}
		out = append(out, model.PairCount{A: record[0], B: record[1], Count: count})
	}
	return out, nil
}
