// Package block implements the raw fixed-size byte buffer that structured
// pages are laid over. A block has no structure of its own.
package block

import "github.com/pkg/errors"

const (
	// WordSize is the unit all page offsets are expressed in.
	WordSize = 4

	// MinSize is the smallest block a slotted page can be initialized in:
	// 4 header words plus the slot array end marker.
	MinSize = 5 * WordSize

	// DefaultSize is the block size used when callers have no preference.
	DefaultSize = 8192
)

// RawPage is the only contract a structured page needs from its storage:
// mutable access to a fixed-size buffer.
type RawPage interface {
	Bytes() []byte
}

// Block owns a fixed-size byte buffer.
type Block struct {
	data []byte
}

// New allocates a zeroed block of the given size.
func New(size int) (*Block, error) {
	if err := CheckSize(size); err != nil {
		return nil, err
	}
	return &Block{data: make([]byte, size)}, nil
}

// Wrap uses buf as the block storage without copying it. The caller must not
// resize buf afterwards.
func Wrap(buf []byte) (*Block, error) {
	if err := CheckSize(len(buf)); err != nil {
		return nil, err
	}
	return &Block{data: buf}, nil
}

// CheckSize reports whether size is usable for a block.
func CheckSize(size int) error {
	if size < MinSize || size%WordSize != 0 {
		return errors.Wrapf(ErrInvalidSize, "size %d (must be a multiple of %d, at least %d)", size, WordSize, MinSize)
	}
	return nil
}

func (b *Block) Bytes() []byte { return b.data }
func (b *Block) Len() int      { return len(b.data) }
