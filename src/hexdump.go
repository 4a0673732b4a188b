package cidermill

/*-------------------------------------------------------------
 *
 * Purpose:	Classic hex-plus-printable dump, sixteen bytes per
 *		line, for the inspection tools.
 *
 *--------------------------------------------------------------*/

import (
	"fmt"
	"io"
)

func HexDump(w io.Writer, p []byte) {
	var offset = 0

	for len(p) > 0 {
		var n = min(len(p), 16)

		fmt.Fprintf(w, "  %04x: ", offset)
		for i := 0; i < n; i++ {
			fmt.Fprintf(w, " %02x", p[i])
		}
		for i := n; i < 16; i++ {
			fmt.Fprint(w, "   ")
		}
		fmt.Fprint(w, "  ")
		for i := 0; i < n; i++ {
			if p[i] >= 0x20 && p[i] <= 0x7e {
				fmt.Fprintf(w, "%c", p[i])
			} else {
				fmt.Fprint(w, ".")
			}
		}
		fmt.Fprint(w, "\n")
		p = p[n:]
		offset += n
	}
}
