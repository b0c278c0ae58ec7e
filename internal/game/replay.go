package game

import (
	"encoding/binary"
	"errors"
	"fmt"
)

// ErrReplayTruncated is returned for replay data that ends mid-record.
var ErrReplayTruncated = errors.New("replay data truncated")

const replayRecordSize = 8

type replayRecord struct {
	turns uint32
	keys  uint32
}

// ReplayInput plays back recorded ship keys. The data is a big-endian
// random seed followed by (turns, keys) records, each holding keys for
// that many further ticks.
type ReplayInput struct {
	Seed uint32

	records []replayRecord
	next    int
	turns   uint32
	keys    uint32
}

// NewReplayInput parses replay data.
func NewReplayInput(data []byte) (*ReplayInput, error) {
	if len(data) < 4 || (len(data)-4)%replayRecordSize != 0 {
		return nil, fmt.Errorf("%w: %d bytes", ErrReplayTruncated, len(data))
	}
	r := &ReplayInput{Seed: binary.BigEndian.Uint32(data)}
	for off := 4; off < len(data); off += replayRecordSize {
		rec := replayRecord{
			turns: binary.BigEndian.Uint32(data[off:]),
			keys:  binary.BigEndian.Uint32(data[off+4:]),
		}
		// After the first record, a record covers the tick that reads it too.
		if len(r.records) > 0 {
			rec.turns++
		}
		r.records = append(r.records, rec)
	}
	return r, nil
}

// Next returns the keys for the coming tick. It reports false once the
// recording is exhausted.
func (r *ReplayInput) Next() (uint32, bool) {
	for r.turns == 0 {
		if r.next >= len(r.records) {
			return 0, false
		}
		rec := r.records[r.next]
		r.next++
		r.turns, r.keys = rec.turns, rec.keys
	}
	r.turns--
	return r.keys, true
}
