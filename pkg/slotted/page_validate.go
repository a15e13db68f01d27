package slotted

import (
	"go-slotted/pkg/block"

	"github.com/pkg/errors"
	"golang.org/x/exp/slices"
)

type span struct {
	from, to int32 // words, to exclusive
	slot     int
}

// Validate checks the page layout: the slot array is terminated inside the
// page, the entry count matches the live slots, and live records lie in one
// contiguous, non overlapping heap that ends at the page end.
func (p *Page) Validate() error {
	l := p.layout()
	if slotWord(l.slots) >= int(p.words) || p.word(slotWord(l.slots)) != endMarker {
		return errors.Wrap(ErrCorruptPage, "slot array end marker not found")
	}

	end := l.slotArrayEnd()
	live := 0
	spans := make([]span, 0, l.slots)
	points := make([]span, 0)

	for i := 0; i < l.slots; i++ {
		s := p.slot(i)
		if s.state != slotOccupied {
			continue
		}
		live++

		if s.offset < 0 || s.length < 0 {
			return errors.Wrapf(ErrCorruptPage, "slot %d has offset %d, length %d", i, s.offset, s.length)
		}

		sp := span{from: s.offset, to: s.offset + s.words(), slot: i}
		if sp.from < end || sp.to > p.words {
			return errors.Wrapf(
				ErrCorruptPage,
				"slot %d spans words [%d, %d) outside heap [%d, %d)",
				i, sp.from, sp.to, end, p.words,
			)
		}

		if sp.from == sp.to {
			points = append(points, sp)
		} else {
			spans = append(spans, sp)
		}
	}

	if count := p.EntryCount(); count != live {
		return errors.Wrapf(ErrCorruptPage, "entry count %d, %d live slots", count, live)
	}

	slices.SortFunc(spans, func(a, b span) int {
		return int(a.from - b.from)
	})

	top := p.words - int32(l.used/block.WordSize)
	cursor := top
	for _, sp := range spans {
		if sp.from != cursor {
			return errors.Wrapf(
				ErrCorruptPage,
				"slot %d starts at word %d, expected %d",
				sp.slot, sp.from, cursor,
			)
		}
		cursor = sp.to
	}

	for _, sp := range points {
		if sp.from < top {
			return errors.Wrapf(ErrCorruptPage, "empty record in slot %d below heap top %d", sp.slot, top)
		}
	}

	return nil
}
