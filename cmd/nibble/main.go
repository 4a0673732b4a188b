/* Inspect GCR nibble disk image data */
package main

/*-------------------------------------------------------------------
 *
 * Purpose:     Poke around inside a nibble image the way the disk
 *		controller would: latch bytes from an arbitrary bit
 *		offset, or hunt for address/data prologs.
 *
 * Description:	Treats the file (or a byte range of it) as one
 *		circular bit track.  Useful for eyeballing copy
 *		protection and for checking what a flux-level capture
 *		actually contains before handing it to a sector
 *		decoder.
 *
 *--------------------------------------------------------------------*/

import (
	"encoding/hex"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/pflag"

	cidermill "github.com/doismellburning/cidermill/src"
)

func main() {
	var startBit = pflag.IntP("start", "s", 0, "Bit offset to start latching from.")
	var latchCount = pflag.IntP("latch", "n", 256, "Number of bytes to latch and dump.")
	var findSeq = pflag.StringP("find", "f", "", "Hex byte sequence to search for, e.g. 'd5aa96'.")
	var byteOffset = pflag.Int("offset", 0, "Byte offset of the track within the file.")
	var byteLength = pflag.Int("length", 0, "Track length in bytes; 0 means the rest of the file.")
	var showVersion = pflag.Bool("version", false, "Print version and exit.")
	pflag.Parse()

	if *showVersion {
		cidermill.PrintVersion("nibble")
		return
	}

	cidermill.TextColorInit(1)

	if pflag.NArg() != 1 {
		fmt.Printf("Usage: nibble [options] image.nib\n\n")
		pflag.PrintDefaults()
		os.Exit(1)
	}

	var path = pflag.Arg(0)
	var data, readErr = os.ReadFile(path)
	if readErr != nil {
		log.Fatal("Can't read image", "path", path, "error", readErr)
	}

	var track = data[*byteOffset:]
	if *byteLength > 0 {
		track = track[:*byteLength]
	}
	if len(track) < 1 {
		log.Fatal("Empty track region")
	}

	var buffer = cidermill.NewBitBuffer(track, 0, len(track)*8, nil)
	buffer.SetReadOnly()
	buffer.AdjustBitPosition(*startBit % buffer.BitCount())

	if *findSeq != "" {
		var seq, hexErr = hex.DecodeString(strings.ToLower(*findSeq))
		if hexErr != nil || len(seq) == 0 {
			log.Fatal("Bad search sequence", "seq", *findSeq, "error", hexErr)
		}

		var found = buffer.FindNextLatchSequence(seq, -1)
		if found < 0 {
			log.Warn("Sequence not found", "seq", *findSeq)
			os.Exit(1)
		}
		fmt.Printf("Found %s at bit %d (byte %d, bit %d)\n", *findSeq, found, found/8, found%8)
	}

	var latched = make([]byte, *latchCount)
	for i := range latched {
		latched[i] = buffer.LatchNextByte()
	}
	cidermill.HexDump(os.Stdout, latched)
}
