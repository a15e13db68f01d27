package slotted

import (
	"math/rand"
	"sort"
	"testing"

	"go-slotted/pkg/block"
	"go-slotted/util/helpers"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

// model tracks what the page should hold, keyed by slot number.
type model struct {
	records map[int32][]byte
}

func (m *model) firstFree(slotCount int) int32 {
	for i := int32(0); i < int32(slotCount); i++ {
		if _, ok := m.records[i]; !ok {
			return i
		}
	}
	return int32(slotCount)
}

func (m *model) check(t *testing.T, p *Page) {
	t.Helper()

	require.NoError(t, p.Validate())
	require.Equal(t, len(m.records), p.EntryCount())
	require.Equal(t, len(m.records) == 0, p.Empty())

	want := make([]int32, 0, len(m.records))
	used := 0
	for s, rec := range m.records {
		got, err := p.GetRecord(RID{PageID: 7, Slot: s})
		require.NoError(t, err, "slot %d", s)
		require.Equal(t, rec, got, "slot %d", s)

		want = append(want, s)
		used += helpers.AlignUp(len(rec), block.WordSize)
	}
	sort.Slice(want, func(i, j int) bool { return want[i] < want[j] })

	got := slots(t, p)
	if len(want) == 0 {
		require.Nil(t, got)
	} else {
		require.Equal(t, want, got)
	}

	// the slot array never ends with a tombstone
	n := p.SlotCount()
	if n > 0 {
		require.Contains(t, m.records, int32(n-1))
	}

	free := p.Size() - headerSize - n*slotSize - used
	require.Equal(t, free, p.FreeSpace())
	if n == len(m.records) {
		free -= slotSize
	}
	require.Equal(t, free, p.AvailableSpace())
}

func TestPage_RandomOperations(t *testing.T) {
	for _, size := range []int{80, 256, 1024, block.DefaultSize} {
		seed := int64(size)
		rnd := rand.New(rand.NewSource(seed))

		p := newPage(t, size)
		m := &model{records: map[int32][]byte{}}

		for step := 0; step < 1500; step++ {
			if rnd.Intn(5) < 3 {
				n := rnd.Intn(helpers.Min(size/4, 96) + 1)
				rec := make([]byte, n)
				rnd.Read(rec)

				avail := p.AvailableSpace()
				want := m.firstFree(p.SlotCount())
				before := snapshot(t, p)

				rid, err := p.Insert(rec)
				if n > avail {
					require.True(t, errors.Is(err, ErrBlockFull), "size %d step %d: %v", size, step, err)
					require.Equal(t, before, snapshot(t, p))
					continue
				}

				require.NoError(t, err, "size %d step %d", size, step)
				require.Equal(t, want, rid.Slot, "size %d step %d", size, step)
				m.records[rid.Slot] = rec
			} else {
				s := int32(rnd.Intn(p.SlotCount()+2)) - 1
				_, live := m.records[s]
				require.Equal(t, live, p.Delete(RID{PageID: 7, Slot: s}), "size %d step %d slot %d", size, step, s)
				delete(m.records, s)
			}

			m.check(t, p)
		}
	}
}
