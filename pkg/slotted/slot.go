package slotted

import (
	"go-slotted/pkg/block"
	"go-slotted/util/helpers"
)

type slotState uint8

const (
	slotEnd slotState = iota
	slotTombstone
	slotOccupied
)

// on-page encodings of the offset word
const (
	endMarker       int32 = -1
	tombstoneMarker int32 = 0
)

// slot is the decoded form of one (offset, length) pair of the slot array.
type slot struct {
	state  slotState
	offset int32 // word index of the first record word
	length int32 // record length in bytes
}

func decodeSlot(offset, length int32) slot {
	switch offset {
	case endMarker:
		return slot{state: slotEnd}
	case tombstoneMarker:
		return slot{state: slotTombstone}
	}
	return slot{state: slotOccupied, offset: offset, length: length}
}

func occupied(offset, length int32) slot {
	return slot{state: slotOccupied, offset: offset, length: length}
}

func (s slot) encode() (offset, length int32) {
	switch s.state {
	case slotEnd:
		return endMarker, 0
	case slotTombstone:
		return tombstoneMarker, 0
	}
	return s.offset, s.length
}

// words is the number of heap words the record occupies.
func (s slot) words() int32 {
	if s.state != slotOccupied {
		return 0
	}
	return helpers.CeilDiv(s.length, block.WordSize)
}
