package cidermill

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_HexDump(t *testing.T) {
	var out bytes.Buffer
	HexDump(&out, []byte("ABCDEFGHIJKLMNOP\x00\x01"))

	var text = out.String()
	assert.Contains(t, text, "0000:  41 42 43 44")
	assert.Contains(t, text, "ABCDEFGHIJKLMNOP")
	assert.Contains(t, text, "0010:  00 01")
	assert.Contains(t, text, "..")
}
