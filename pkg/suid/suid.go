package suid

import (
	"encoding/base64"
	"encoding/binary"
	"errors"
	"fmt"
	"sync/atomic"
	"time"
)

// Epoch is the custom origin (2023-11-14T22:33:20+07:00) all mint timestamps
// are measured against, in milliseconds.
const Epoch int64 = 1700000000000

const (
	workerIDBits     = 5
	datacenterIDBits = 5
	sequenceBits     = 12

	maxSequence     = (1 << sequenceBits) - 1
	maxWorkerID     = (1 << workerIDBits) - 1
	maxDatacenterID = (1 << datacenterIDBits) - 1

	workerShift     = sequenceBits
	datacenterShift = sequenceBits + workerIDBits
	timestampShift  = sequenceBits + workerIDBits + datacenterIDBits
)

// EncodedLen is the fixed length of a minted identifier: 8 big-endian bytes
// in unpadded URL-safe base64.
const EncodedLen = 11

// ErrClockBackwards marks a wall clock that moved behind the last mint. The
// generator refuses to mint because timestamp monotonicity is the foundation
// of the uniqueness guarantee; callers must surface this as a process-level
// fault, not a business error.
var ErrClockBackwards = errors.New("suid: clock moved backwards")

// Clock returns the current time in milliseconds since the Unix epoch.
type Clock func() int64

// Generator mints compact, time-ordered, process-unique identifiers. The
// shared last-timestamp/sequence state is packed into a single uint64 updated
// with a compare-and-swap loop, so concurrent callers never observe a torn
// read between the timestamp check and the sequence bump.
type Generator struct {
	datacenterID uint64
	workerID     uint64
	clock        Clock
	state        atomic.Uint64 // elapsed ms << sequenceBits | sequence
}

// New builds a generator with the wall clock.
func New(datacenterID, workerID uint8) (*Generator, error) {
	return NewWithClock(datacenterID, workerID, func() int64 {
		return time.Now().UnixMilli()
	})
}

// NewWithClock builds a generator with an injectable clock for tests.
func NewWithClock(datacenterID, workerID uint8, clock Clock) (*Generator, error) {
	if datacenterID > maxDatacenterID {
		return nil, fmt.Errorf("datacenter id %d exceeds %d", datacenterID, maxDatacenterID)
	}
	if workerID > maxWorkerID {
		return nil, fmt.Errorf("worker id %d exceeds %d", workerID, maxWorkerID)
	}
	if clock == nil {
		return nil, errors.New("clock is required")
	}
	return &Generator{
		datacenterID: uint64(datacenterID),
		workerID:     uint64(workerID),
		clock:        clock,
	}, nil
}

// NextID mints the next identifier as opaque URL-safe text.
func (g *Generator) NextID() (string, error) {
	raw, err := g.next()
	if err != nil {
		return "", err
	}
	return Encode(raw), nil
}

func (g *Generator) next() (uint64, error) {
	for {
		old := g.state.Load()
		last := int64(old >> sequenceBits)
		seq := old & maxSequence

		now := g.clock() - Epoch
		if now < last {
			return 0, ErrClockBackwards
		}

		var nextSeq uint64
		ts := now
		if now == last {
			nextSeq = (seq + 1) & maxSequence
			if nextSeq == 0 {
				// Sequence exhausted for this millisecond; busy-poll until
				// the clock advances.
				ts = g.waitNextMillis(last)
			}
		}

		if g.state.CompareAndSwap(old, uint64(ts)<<sequenceBits|nextSeq) {
			return uint64(ts)<<timestampShift |
				g.datacenterID<<datacenterShift |
				g.workerID<<workerShift |
				nextSeq, nil
		}
	}
}

func (g *Generator) waitNextMillis(last int64) int64 {
	ts := g.clock() - Epoch
	for ts <= last {
		ts = g.clock() - Epoch
	}
	return ts
}

// Encode serializes the raw 64-bit identifier as 8 big-endian bytes in
// unpadded URL-safe base64, always exactly EncodedLen characters.
func Encode(raw uint64) string {
	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], raw)
	return base64.RawURLEncoding.EncodeToString(buf[:])
}
