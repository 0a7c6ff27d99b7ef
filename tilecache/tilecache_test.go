package tilecache

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSlotPositionedAndSetBuffer(t *testing.T) {
	c := New(2)
	slot := c.Slot(0)
	require.False(t, slot.Positioned(0))

	slot.SetBuffer(0, []byte("fixed"), nil)
	require.True(t, slot.Positioned(0))
	require.Equal(t, []byte("fixed"), slot.Fixed)
}

func TestGrowCompressedReusesCapacity(t *testing.T) {
	c := New(1)
	slot := c.Slot(0)

	buf := slot.GrowCompressed(10)
	require.Len(t, buf, 10)
	addr := &buf[0]

	buf2 := slot.GrowCompressed(5)
	require.Len(t, buf2, 5)
	require.Equal(t, addr, &slot.Compressed[0], "should reuse the same backing array")
}

func TestEvictBeforeOnlyEvictsOlderTiles(t *testing.T) {
	c := New(2)
	c.Slot(0).SetBuffer(3, []byte("a"), nil)
	c.Slot(1).SetBuffer(5, []byte("b"), nil)

	err := c.EvictBefore(5)
	require.NoError(t, err)

	require.False(t, c.Slot(0).Positioned(3))
	require.True(t, c.Slot(1).Positioned(5))
}
