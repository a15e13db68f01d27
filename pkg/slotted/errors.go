package slotted

import "github.com/pkg/errors"

var (
	// ErrBlockFull is returned by Insert when the record is larger than
	// AvailableSpace. The page is left untouched.
	ErrBlockFull = errors.New("block full")

	// ErrBadBlockID is returned when an RID carries the invalid page id.
	ErrBadBlockID = errors.New("bad block id")

	// ErrBadSlotID is returned when an RID slot is negative, outside the
	// slot array or points at a deleted record.
	ErrBadSlotID = errors.New("bad slot id")

	// ErrCorruptPage is returned when the page image breaks the layout rules.
	ErrCorruptPage = errors.New("corrupt page")
)
