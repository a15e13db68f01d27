package slotted

import (
	"encoding"

	"go-slotted/pkg/block"

	"github.com/pkg/errors"
)

// FirstRecord returns the RID of the first live slot in slot array order.
// ok is false if the page is empty.
func (p *Page) FirstRecord() (rid RID, ok bool) {
	return p.nextLive(-1)
}

// NextRecord returns the RID of the first live slot after rid in slot array
// order. ok is false when there is none, including when rid points past the
// end of a trimmed slot array.
func (p *Page) NextRecord(rid RID) (next RID, ok bool, err error) {
	if rid.PageID == InvalidPage {
		return InvalidRID, false, errors.Wrapf(ErrBadBlockID, "next of %v", rid)
	} else if rid.Slot < 0 {
		return InvalidRID, false, errors.Wrapf(ErrBadSlotID, "next of %v", rid)
	}

	next, ok = p.nextLive(int(rid.Slot))
	return next, ok, nil
}

func (p *Page) nextLive(after int) (RID, bool) {
	for i, n := after+1, p.layout().slots; i < n; i++ {
		if p.slot(i).state == slotOccupied {
			return RID{PageID: p.PageID(), Slot: int32(i)}, true
		}
	}
	return InvalidRID, false
}

// GetRecord returns a copy of the record, exactly as long as it was inserted.
func (p *Page) GetRecord(rid RID) ([]byte, error) {
	s, err := p.lookup(rid)
	if err != nil {
		return nil, err
	}
	return p.read(s), nil
}

// GetItem unmarshals the record into dst.
func (p *Page) GetItem(rid RID, dst encoding.BinaryUnmarshaler) error {
	record, err := p.GetRecord(rid)
	if err != nil {
		return err
	}
	if err := dst.UnmarshalBinary(record); err != nil {
		return errors.Wrapf(err, "failed to unmarshal record %v", rid)
	}
	return nil
}

// Each passes every live record to fn in slot array order. The record slice
// aliases the page and is only valid until the next mutating call. Each
// stops when fn returns true or an error.
func (p *Page) Each(fn func(rid RID, record []byte) (bool, error)) (bool, error) {
	id := p.PageID()
	l := p.layout()
	for i := 0; i < l.slots; i++ {
		s := p.slot(i)
		if s.state != slotOccupied {
			continue
		} else if err := p.checkBounds(i, s, l); err != nil {
			return false, err
		}

		stop, err := fn(RID{PageID: id, Slot: int32(i)}, p.view(s))
		if err != nil {
			return false, err
		} else if stop {
			return true, nil
		}
	}
	return false, nil
}

// lookup resolves rid to its live slot, checking the slot points inside the
// record heap before any record byte is touched.
func (p *Page) lookup(rid RID) (slot, error) {
	if rid.PageID == InvalidPage {
		return slot{}, errors.Wrapf(ErrBadBlockID, "lookup of %v", rid)
	}

	l := p.layout()
	if rid.Slot < 0 || int(rid.Slot) >= l.slots {
		return slot{}, errors.Wrapf(ErrBadSlotID, "lookup of %v, %d slots", rid, l.slots)
	}

	s := p.slot(int(rid.Slot))
	if s.state != slotOccupied {
		return slot{}, errors.Wrapf(ErrBadSlotID, "lookup of %v, slot is deleted", rid)
	}

	if err := p.checkBounds(int(rid.Slot), s, l); err != nil {
		return slot{}, err
	}
	return s, nil
}

func (p *Page) checkBounds(idx int, s slot, l layout) error {
	if s.offset < l.slotArrayEnd() || s.length < 0 ||
		int(s.offset)*block.WordSize+int(s.length) > len(p.data) {
		return errors.Wrapf(
			ErrCorruptPage,
			"slot %d points at word %d, %d bytes",
			idx, s.offset, s.length,
		)
	}
	return nil
}

func (p *Page) view(s slot) []byte {
	from := int(s.offset) * block.WordSize
	return p.data[from : from+int(s.length)]
}

func (p *Page) read(s slot) []byte {
	buf := make([]byte, s.length)
	copy(buf, p.view(s))
	return buf
}
