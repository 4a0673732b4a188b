package cidermill

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_BitBuffer_ReadBits(t *testing.T) {
	var data = []byte{0xa5} // 10100101
	var bb = NewBitBuffer(data, 0, 8, nil)

	var want = []byte{1, 0, 1, 0, 0, 1, 0, 1}
	for i, bit := range want {
		assert.Equal(t, bit, bb.ReadNextBit(), "bit %d", i)
	}
	// Wrapped back to the start.
	assert.Equal(t, 0, bb.BitPosition())
	assert.Equal(t, byte(1), bb.ReadNextBit())
}

func Test_BitBuffer_WriteBits(t *testing.T) {
	var data = make([]byte, 2)
	var modified = false
	var bb = NewBitBuffer(data, 0, 16, &modified)

	for _, bit := range []byte{1, 1, 0, 1, 0, 1, 0, 1} {
		bb.WriteBit(bit)
	}
	assert.Equal(t, byte(0xd5), data[0])
	assert.True(t, modified)
	assert.True(t, bb.Modified())

	bb.ClearModified()
	assert.False(t, modified)
}

func Test_BitBuffer_ReadOnly(t *testing.T) {
	var bb = NewBitBuffer(make([]byte, 2), 0, 16, nil)
	bb.SetReadOnly()
	assert.Panics(t, func() { bb.WriteBit(1) })
	assert.Panics(t, func() { bb.WriteByte(0xff, 8) })
	assert.Panics(t, func() { bb.Fill(0xff, 8) })
}

func Test_BitBuffer_WriteByte_Widths(t *testing.T) {
	var data = make([]byte, 4)
	var bb = NewBitBuffer(data, 0, 32, nil)

	bb.WriteByte(0xd5, 10) // d5 then two sync zeros
	bb.WriteByte(0xaa, 8)
	// d5 = 11010101, then 00, then 10101010, then untouched zeros
	assert.Equal(t, []byte{0xd5, 0x2a, 0x80, 0x00}, data)

	assert.Panics(t, func() { bb.WriteByte(0x00, 11) })
	assert.Panics(t, func() { bb.WriteByte(0x00, 7) })
}

// The self-sync property: a 0x3f with stray zero bits after it keeps
// latching as 0xff until alignment recovers on a set high bit.
func Test_BitBuffer_Latch(t *testing.T) {
	var data = []byte{0xd5, 0xff, 0x3f, 0xcf, 0xf3, 0xfc, 0xff, 0xaa}
	var bb = NewBitBuffer(data, 0, len(data)*8, nil)

	var want = []byte{0xd5, 0xff, 0xff, 0xff, 0xff, 0xff, 0xaa}
	for i, expect := range want {
		assert.Equal(t, expect, bb.LatchNextByte(), "latch %d", i)
	}
	// Consumed exactly the whole buffer.
	assert.Equal(t, 0, bb.BitPosition())
}

// A buffer whose length isn't a byte multiple drifts one bit per
// revolution; the latcher stays in sync and picks the 0xa5 out once
// alignment comes around.
func Test_BitBuffer_Latch_Wrap(t *testing.T) {
	var data = []byte{0xff, 0xa5, 0xff}
	var bb = NewBitBuffer(data, 1, 3*8-1, nil)

	var want = []byte{0xff, 0x97, 0xff, 0xfd, 0xbf, 0xff, 0xe9, 0xff, 0xff, 0xa5}
	for i, expect := range want {
		assert.Equal(t, expect, bb.LatchNextByte(), "latch %d", i)
	}
}

func Test_BitBuffer_LatchZeroed(t *testing.T) {
	var data = make([]byte, 8)
	var bb = NewBitBuffer(data, 0, 64, nil)

	// First call walks the whole buffer looking for a high bit.
	assert.Equal(t, byte(0), bb.LatchNextByte())
	// Later calls take the cheap path: 8 bits, value 0.
	var pos = bb.BitPosition()
	assert.Equal(t, byte(0), bb.LatchNextByte())
	assert.Equal(t, (pos+8)%64, bb.BitPosition())

	// A write wakes it back up.
	bb.AdjustBitPosition(-bb.BitPosition())
	bb.WriteByte(0xd5, 8)
	bb.AdjustBitPosition(-bb.BitPosition())
	assert.Equal(t, byte(0xd5), bb.LatchNextByte())
}

func Test_BitBuffer_ExpectLatchSequence(t *testing.T) {
	var data = []byte{0xd5, 0xaa, 0x96, 0xff}
	var bb = NewBitBuffer(data, 0, 32, nil)

	assert.True(t, bb.ExpectLatchSequence([]byte{0xd5, 0xaa, 0x96}))
	assert.Equal(t, 24, bb.BitPosition())

	bb = NewBitBuffer(data, 0, 32, nil)
	assert.False(t, bb.ExpectLatchSequence([]byte{0xd5, 0xab}))
	// Cursor sits just past the byte that failed to match.
	assert.Equal(t, 16, bb.BitPosition())

	assert.True(t, bb.ExpectLatchSequence(nil))
}

/*
 * 32-byte search fixture.  The front pads with a six-bit misalignment
 * (leading zeros in byte 0) so a D5 AA 96 prolog lands mid-byte at
 * bit 78; a ten-bit latch and a run of EE bytes realign the walk so
 * the trailing prolog region is byte aligned at 176.
 */
var search_fixture = []byte{
	0x03, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff,
	0xff, 0xff, 0x56, 0xaa, 0x58, 0xcc, 0xee, 0xee,
	0xee, 0xee, 0xee, 0xee, 0xee, 0xee,
	0xd5, 0xaa, 0xad, 0x96, 0x96, 0x96, 0x96, 0x96, 0x9d, 0xdf,
}

func Test_BitBuffer_FindSequence(t *testing.T) {
	var bb = NewBitBuffer(search_fixture, 0, len(search_fixture)*8, nil)
	assert.Equal(t, 9*8+6, bb.FindNextLatchSequence([]byte{0xd5, 0xaa, 0x96}, -1))

	bb = NewBitBuffer(search_fixture, 0, len(search_fixture)*8, nil)
	assert.Equal(t, 22*8, bb.FindNextLatchSequence([]byte{0xd5, 0xaa, 0xad}, -1))

	bb = NewBitBuffer(search_fixture, 0, len(search_fixture)*8, nil)
	assert.Equal(t, -1, bb.FindNextLatchSequence([]byte{0xd5, 0xaa, 0xb5}, -1))
}

// Successive searches continue from the cursor, find overlapping
// runs, and wrap back around to the first hit.
func Test_BitBuffer_FindSequence_Successive(t *testing.T) {
	var bb = NewBitBuffer(search_fixture, 0, len(search_fixture)*8, nil)
	var seq = []byte{0x96, 0x96}

	assert.Equal(t, 25*8, bb.FindNextLatchSequence(seq, -1))
	assert.Equal(t, 27*8, bb.FindNextLatchSequence(seq, -1))
	assert.Equal(t, 25*8, bb.FindNextLatchSequence(seq, -1))
}

func Test_BitBuffer_FindSequence_MaxBits(t *testing.T) {
	var bb = NewBitBuffer(search_fixture, 0, len(search_fixture)*8, nil)
	// The trailing prolog is past this horizon.
	assert.Equal(t, -1, bb.FindNextLatchSequence([]byte{0xd5, 0xaa, 0xad}, 96))

	bb = NewBitBuffer(search_fixture, 0, len(search_fixture)*8, nil)
	assert.Panics(t, func() { bb.FindNextLatchSequence([]byte{0xd5, 0xaa, 0xad}, 16) })
	assert.Panics(t, func() { bb.FindNextLatchSequence(nil, -1) })
}

func Test_BitBuffer_Fill_PreservesOutside(t *testing.T) {
	var data = make([]byte, 6)
	var bb = NewBitBuffer(data, 8, (len(data)-1)*8, nil)

	bb.Fill(0xaa, 8)
	assert.Equal(t, []byte{0x00, 0xaa, 0xaa, 0xaa, 0xaa, 0xaa}, data)
	assert.Equal(t, 0, bb.BitPosition())
	assert.True(t, bb.Modified())
}

func Test_BitBuffer_Fill_SyncBytes(t *testing.T) {
	// 40 bits filled with ff at width 10 = four sync bytes.
	var data = make([]byte, 5)
	var bb = NewBitBuffer(data, 0, 40, nil)

	bb.Fill(0xff, 10)
	// 11111111 00 11111111 00 11111111 00 11111111 00
	assert.Equal(t, []byte{0xff, 0x3f, 0xcf, 0xf3, 0xfc}, data)

	// And they latch back as ff.
	for i := 0; i < 4; i++ {
		assert.Equal(t, byte(0xff), bb.LatchNextByte(), "latch %d", i)
	}
}

func Test_BitBuffer_AdjustBitPosition(t *testing.T) {
	var bb = NewBitBuffer(make([]byte, 4), 0, 32, nil)

	bb.AdjustBitPosition(10)
	assert.Equal(t, 10, bb.BitPosition())
	bb.AdjustBitPosition(-12)
	assert.Equal(t, 30, bb.BitPosition())
	bb.AdjustBitPosition(2)
	assert.Equal(t, 0, bb.BitPosition())
	assert.Panics(t, func() { bb.AdjustBitPosition(33) })
}

func Test_BitBuffer_Clone(t *testing.T) {
	var data = []byte{0xd5, 0xaa}
	var modified = false
	var bb = NewBitBuffer(data, 0, 16, &modified)
	bb.ReadOctet()

	var dup = bb.Clone()
	assert.Equal(t, 0, dup.BitPosition())
	assert.Equal(t, 8, bb.BitPosition())

	// Shared backing bytes and shared modified flag.
	dup.WriteBit(0)
	assert.True(t, bb.Modified())
	assert.Equal(t, byte(0x55), data[0])
}
