package slotted

import (
	"bufio"
	"bytes"
	"encoding/hex"
	"fmt"
	"io"

	"go-slotted/pkg/block"

	"github.com/pkg/errors"
)

// Dump writes a readable listing of the header, the slot array and the
// record contents to w. The page is not modified.
func (p *Page) Dump(w io.Writer) error {
	l := p.layout()
	bw := bufio.NewWriter(w)

	fmt.Fprintf(bw, "page %d (prev %d, next %d), %d bytes\n",
		p.PageID(), p.PrevPageID(), p.NextPageID(), len(p.data))
	fmt.Fprintf(bw, "entries: %d, slots: %d\n", p.EntryCount(), l.slots)
	fmt.Fprintf(bw, "free space: words [%d, %d), bytes [%d, %d), available %d\n",
		l.slotArrayEnd(), l.top,
		int(l.slotArrayEnd())*block.WordSize, int(l.top)*block.WordSize,
		p.AvailableSpace())

	for i := 0; i < l.slots; i++ {
		s := p.slot(i)
		if s.state != slotOccupied {
			fmt.Fprintf(bw, "slot %d: deleted\n", i)
			continue
		}

		fmt.Fprintf(bw, "slot %d: offset %d, length %d", i, s.offset, s.length)
		if err := p.checkBounds(i, s, l); err != nil {
			fmt.Fprintf(bw, ", %v\n", err)
			continue
		}
		fmt.Fprintf(bw, ", data %s\n", hex.EncodeToString(p.view(s)))
	}

	return errors.Wrap(bw.Flush(), "failed to write page dump")
}

// DumpBlock logs the Dump listing at debug level.
func (p *Page) DumpBlock() {
	buf := &bytes.Buffer{}
	if err := p.Dump(buf); err != nil {
		p.log.WithError(err).Error("failed to dump page")
		return
	}

	sc := bufio.NewScanner(buf)
	for sc.Scan() {
		p.log.Debug(sc.Text())
	}
}

func (p *Page) String() string {
	return fmt.Sprintf(
		"Page{id=%d, prev=%d, next=%d, entries=%d, slots=%d, available=%d}",
		p.PageID(), p.PrevPageID(), p.NextPageID(),
		p.EntryCount(), p.SlotCount(), p.AvailableSpace(),
	)
}
