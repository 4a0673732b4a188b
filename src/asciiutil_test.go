package cidermill

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_ControlPic_RoundTrip(t *testing.T) {
	for ch := rune(0); ch <= 0x1f; ch++ {
		var pic = ControlPic(ch)
		assert.Equal(t, rune(0x2400)+ch, pic)
		assert.Equal(t, ch, UnControlPic(pic))
	}
	assert.Equal(t, rune(0x2421), ControlPic(0x7f))
	assert.Equal(t, rune(0x7f), UnControlPic(0x2421))

	// Printables pass through both ways.
	assert.Equal(t, 'A', ControlPic('A'))
	assert.Equal(t, 'A', UnControlPic('A'))
}

func Test_ReduceToASCII(t *testing.T) {
	assert.Equal(t, "Uber Cafe", ReduceToASCII("Über Café", '?'))
	assert.Equal(t, "AaCcEeIiNnOoUuYy", ReduceToASCII("ÄàÇçÉèÎïÑñØöÛüŸÿ", '?'))
	assert.Equal(t, "s", ReduceToASCII("ß", '?'))
	assert.Equal(t, "i~", ReduceToASCII("ı˜", '?'))
	assert.Equal(t, "??", ReduceToASCII("π•", '?'))
	assert.Equal(t, "plain", ReduceToASCII("plain", '?'))
}
