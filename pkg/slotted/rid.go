package slotted

import (
	"fmt"

	"github.com/pkg/errors"
)

const (
	// InvalidPage marks an unset page id in the header and in RIDs.
	InvalidPage int32 = -1

	// InvalidSlot marks an unset slot number in RIDs.
	InvalidSlot int32 = -1

	ridSize = 8
)

// InvalidRID is returned alongside errors and exhausted iteration.
var InvalidRID = RID{PageID: InvalidPage, Slot: InvalidSlot}

// RID identifies a record by the page holding it and its position in the
// page slot array. The slot number of a live record never changes.
type RID struct {
	PageID int32
	Slot   int32
}

func (r RID) IsValid() bool {
	return r.PageID != InvalidPage && r.Slot >= 0
}

func (r RID) String() string {
	return fmt.Sprintf("rid{page: %v, slot: %v}", r.PageID, r.Slot)
}

func (r RID) MarshalBinary() ([]byte, error) {
	buf := make([]byte, ridSize)
	bin.PutUint32(buf[0:4], uint32(r.PageID))
	bin.PutUint32(buf[4:8], uint32(r.Slot))
	return buf, nil
}

func (r *RID) UnmarshalBinary(d []byte) error {
	if r == nil {
		return errors.New("cannot unmarshal into nil rid")
	} else if len(d) < ridSize {
		return errors.Errorf("in-sufficient data for rid: %d bytes", len(d))
	}

	r.PageID = int32(bin.Uint32(d[0:4]))
	r.Slot = int32(bin.Uint32(d[4:8]))
	return nil
}
