package slotted

import (
	"go-slotted/pkg/block"
	"go-slotted/util/helpers"
)

// AvailableSpace returns how many payload bytes the next Insert can take.
// When no deleted slot can be reused, room for one more slot array pair is
// held back, so inserting exactly AvailableSpace bytes always fits. The
// result is negative when not even an empty record fits.
func (p *Page) AvailableSpace() int {
	return p.available(p.layout())
}

// FreeSpace returns the bytes left between the slot array and the record
// heap, without holding back room for a new slot array pair.
func (p *Page) FreeSpace() int {
	return p.free(p.layout())
}

func (p *Page) free(l layout) int {
	return len(p.data) - headerSize - l.slots*slotSize - l.used
}

func (p *Page) available(l layout) int {
	fs := p.free(l)
	if l.tombstone < 0 {
		fs -= slotSize
	}
	return fs
}

// slotArrayEnd is the first word past the end marker.
func (l layout) slotArrayEnd() int32 {
	return int32(slotWord(l.slots) + 1)
}

// heapWords is the word count a record of the given byte length occupies.
func heapWords(length int) int32 {
	return int32(helpers.CeilDiv(length, block.WordSize))
}
