// Package slotted implements a slotted page: a fixed-size block holding a
// variable number of variable-length records addressed by stable RIDs.
//
// All integers on the page are big-endian int32 words:
//
//	word 0       number of live records
//	word 1       previous page id (-1 = none)
//	word 2       own page id (-1 = unset)
//	word 3       next page id (-1 = none)
//	word 4..     slot array of (offset, length) pairs, terminated by an
//	             offset of -1. An offset of 0 marks a deleted slot.
//	...          free space
//	...end       record heap, growing towards the slot array
//
// Offsets are word indexes, lengths are bytes. Records are word aligned.
package slotted

import (
	"encoding/binary"

	"go-slotted/pkg/block"
	"go-slotted/util/helpers"
	"go-slotted/util/logger"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// bin is the byte order used for all page words.
var bin = binary.BigEndian

const (
	entryCountWord = 0
	prevPageWord   = 1
	pageWord       = 2
	nextPageWord   = 3
	slotArrayWord  = 4

	// 4 header words + slot array end marker
	headerSize = 5 * block.WordSize

	// offset + length
	slotSize = 2 * block.WordSize
)

// New wraps the raw page without copying it. Init must be called before a
// fresh block is used. If nil options are provided, DefaultOptions is used.
func New(raw block.RawPage, opts *Options) (*Page, error) {
	if opts == nil {
		opts = &DefaultOptions
	}

	data := raw.Bytes()
	if err := block.CheckSize(len(data)); err != nil {
		return nil, errors.Wrap(err, "failed to wrap block")
	}

	l := opts.Logger
	if l == nil {
		l = logger.L
	}

	return &Page{
		data:  data,
		words: int32(len(data) / block.WordSize),
		opts:  *opts,
		log:   logger.Component(l, "slotted"),
	}, nil
}

// Page is the structured view over a raw block. Page does no locking, the
// caller must serialize access.
type Page struct {
	data  []byte
	words int32
	dirty bool

	opts Options
	log  *logrus.Entry
}

// Init resets the header and the slot array, discarding all records.
func (p *Page) Init() {
	for i := range p.data {
		p.data[i] = 0
	}

	p.setWord(entryCountWord, 0)
	p.setWord(prevPageWord, InvalidPage)
	p.setWord(pageWord, InvalidPage)
	p.setWord(nextPageWord, InvalidPage)
	p.setWord(slotArrayWord, endMarker)

	p.touch()
}

func (p *Page) SetPageID(id int32)     { p.setWord(pageWord, id); p.dirty = true }
func (p *Page) PageID() int32          { return p.word(pageWord) }
func (p *Page) SetNextPageID(id int32) { p.setWord(nextPageWord, id); p.dirty = true }
func (p *Page) NextPageID() int32      { return p.word(nextPageWord) }
func (p *Page) SetPrevPageID(id int32) { p.setWord(prevPageWord, id); p.dirty = true }
func (p *Page) PrevPageID() int32      { return p.word(prevPageWord) }

// Empty reports whether the page holds no live records.
func (p *Page) Empty() bool {
	return p.word(entryCountWord) == 0
}

// EntryCount returns the number of live records.
func (p *Page) EntryCount() int {
	return int(p.word(entryCountWord))
}

// SlotCount returns the number of allocated slot array pairs, deleted ones
// included.
func (p *Page) SlotCount() int {
	return p.layout().slots
}

// Size returns the block size in bytes.
func (p *Page) Size() int {
	return len(p.data)
}

func (p *Page) IsDirty() bool { return p.dirty }
func (p *Page) Dirty(v bool)  { p.dirty = v }

// MarshalBinary returns a copy of the page image.
func (p *Page) MarshalBinary() ([]byte, error) {
	buf := make([]byte, len(p.data))
	copy(buf, p.data)
	return buf, nil
}

// UnmarshalBinary loads a page image of the same size. The image is
// validated before it replaces the current content.
func (p *Page) UnmarshalBinary(d []byte) error {
	if p == nil {
		return errors.New("cannot unmarshal into nil page")
	} else if len(d) != len(p.data) {
		return errors.Errorf("invalid binary size %d (page size %d)", len(d), len(p.data))
	}

	scratch := &Page{data: d, words: p.words, log: p.log}
	if err := scratch.Validate(); err != nil {
		p.log.WithError(err).Warn("rejected page image")
		return errors.Wrap(err, "failed to load page image")
	}

	copy(p.data, d)
	p.dirty = false
	return nil
}

func (p *Page) word(i int) int32 {
	at := i * block.WordSize
	return int32(bin.Uint32(p.data[at : at+block.WordSize]))
}

func (p *Page) setWord(i int, v int32) {
	at := i * block.WordSize
	bin.PutUint32(p.data[at:at+block.WordSize], uint32(v))
}

func slotWord(i int) int {
	return slotArrayWord + 2*i
}

func (p *Page) slot(i int) slot {
	w := slotWord(i)
	return decodeSlot(p.word(w), p.word(w+1))
}

func (p *Page) setSlot(i int, s slot) {
	w := slotWord(i)
	offset, length := s.encode()
	p.setWord(w, offset)
	p.setWord(w+1, length)
}

// layout is a single pass summary of the slot array.
type layout struct {
	slots     int   // allocated pairs, tombstones included
	tombstone int   // first reusable pair, -1 if none
	top       int32 // first word of the record heap
	used      int   // heap bytes held by live records, padding included
}

func (p *Page) layout() layout {
	l := layout{tombstone: -1, top: p.words}

	for ; slotWord(l.slots)+1 < int(p.words); l.slots++ {
		s := p.slot(l.slots)
		if s.state == slotEnd {
			break
		}

		if s.state == slotTombstone {
			if l.tombstone < 0 {
				l.tombstone = l.slots
			}
		} else {
			if s.offset < l.top {
				l.top = s.offset
			}
			l.used += helpers.AlignUp(int(s.length), block.WordSize)
		}
	}

	return l
}

// touch marks the page modified and, in strict mode, checks the layout.
func (p *Page) touch() {
	p.dirty = true
	if !p.opts.Strict {
		return
	}
	if err := p.Validate(); err != nil {
		panic(errors.Wrap(err, "page layout broken"))
	}
}
