package slotted

import (
	"go-slotted/pkg/block"

	"github.com/sirupsen/logrus"
)

// Delete removes the record and closes the hole it leaves in the heap. The
// slot stays allocated as a tombstone so other RIDs keep their numbers,
// unless it was the last slot: then the slot array is trimmed back to the
// last live slot. Returns false if the slot holds no record. The page id of
// rid is not checked.
func (p *Page) Delete(rid RID) bool {
	l := p.layout()
	idx := int(rid.Slot)
	if idx < 0 || idx >= l.slots {
		return false
	}

	deleted := p.slot(idx)
	if deleted.state != slotOccupied {
		return false
	}

	p.setSlot(idx, slot{state: slotTombstone})
	p.setWord(entryCountWord, p.word(entryCountWord)-1)

	if words := deleted.words(); words > 0 {
		p.compact(l.top, deleted.offset, words)
	}

	if idx == l.slots-1 {
		p.trim(l.slots)
	}

	p.touch()
	return true
}

// compact moves the heap words in [top, offset) up by words, over the hole
// left by the deleted record, and shifts the slots pointing into them.
func (p *Page) compact(top, offset, words int32) {
	const ws = block.WordSize

	from, to := int(top)*ws, int(offset)*ws
	shift := int(words) * ws

	// copy handles the overlapping ranges
	copy(p.data[from+shift:to+shift], p.data[from:to])
	for i := from; i < from+shift; i++ {
		p.data[i] = 0
	}

	// zero length records sitting at the deleted offset were inserted after
	// it and have to follow the heap top as well
	shifted := 0
	for i, n := 0, p.layout().slots; i < n; i++ {
		s := p.slot(i)
		if s.state == slotOccupied && s.offset <= offset {
			s.offset += words
			p.setSlot(i, s)
			shifted++
		}
	}

	p.log.WithFields(logrus.Fields{
		"top":     top,
		"offset":  offset,
		"words":   words,
		"shifted": shifted,
	}).Trace("compacted heap")
}

// trim drops trailing tombstones from the slot array of n pairs and moves
// the end marker behind the last live slot.
func (p *Page) trim(n int) {
	last := n
	for last > 0 && p.slot(last-1).state == slotTombstone {
		last--
	}

	// clear the dropped pairs and the old end marker
	for w := slotWord(last); w <= slotWord(n); w++ {
		p.setWord(w, 0)
	}
	p.setWord(slotWord(last), endMarker)

	p.log.WithFields(logrus.Fields{
		"from": n,
		"to":   last,
	}).Trace("trimmed slot array")
}
