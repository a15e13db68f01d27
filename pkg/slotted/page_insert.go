package slotted

import (
	"encoding"

	"go-slotted/pkg/block"

	"github.com/pkg/errors"
)

// Insert copies the record into the page and returns its RID. The record is
// placed right below the heap top and takes the first deleted slot, or a new
// slot at the end of the slot array if there is none.
func (p *Page) Insert(record []byte) (RID, error) {
	l := p.layout()
	if avail := p.available(l); len(record) > avail {
		return InvalidRID, errors.Wrapf(
			ErrBlockFull,
			"record of %d bytes, %d available",
			len(record), avail,
		)
	}

	words := heapWords(len(record))
	start := l.top - words

	from := int(start) * block.WordSize
	to := from + int(words)*block.WordSize
	n := copy(p.data[from:to], record)
	for i := from + n; i < to; i++ {
		p.data[i] = 0
	}

	p.setWord(entryCountWord, p.word(entryCountWord)+1)

	idx := l.tombstone
	if idx < 0 {
		idx = l.slots
		p.setWord(slotWord(idx+1), endMarker)
	}
	p.setSlot(idx, occupied(start, int32(len(record))))

	p.touch()
	return RID{PageID: p.PageID(), Slot: int32(idx)}, nil
}

// InsertItem marshals the item and inserts the result as an opaque record.
func (p *Page) InsertItem(item encoding.BinaryMarshaler) (RID, error) {
	record, err := item.MarshalBinary()
	if err != nil {
		return InvalidRID, errors.Wrap(err, "failed to marshal record")
	}
	return p.Insert(record)
}
