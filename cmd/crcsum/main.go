/* Checksum files with the vintage-media CRC variants */
package main

/*-------------------------------------------------------------------
 *
 * Purpose:     Compute CRC-32/ISO-HDLC, CRC-16/XMODEM, CRC-16/IBM-3740
 *		or CRC-16/KERMIT over whole files.
 *
 * Description:	Handy for cross-checking extracted disk images and
 *		archive payloads against published checksums.  Files
 *		are streamed, so size doesn't matter.
 *
 *--------------------------------------------------------------------*/

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/pflag"

	cidermill "github.com/doismellburning/cidermill/src"
)

func main() {
	var crcType = pflag.StringP("type", "t", "crc32", "Checksum: crc32, xmodem, ibm3740, or kermit.")
	var showVersion = pflag.Bool("version", false, "Print version and exit.")
	pflag.Parse()

	if *showVersion {
		cidermill.PrintVersion("crcsum")
		return
	}

	if pflag.NArg() == 0 {
		fmt.Printf("Usage: crcsum [-t type] file...\n\n")
		pflag.PrintDefaults()
		os.Exit(1)
	}

	var failed = false
	for _, path := range pflag.Args() {
		var f, openErr = os.Open(path)
		if openErr != nil {
			log.Error("Can't open file", "path", path, "error", openErr)
			failed = true
			continue
		}

		var text string
		var crcErr error
		switch *crcType {
		case "crc32":
			var crc uint32
			crc, crcErr = cidermill.CRC32Stream(f, 0)
			text = fmt.Sprintf("%08x", crc)
		case "xmodem":
			var crc uint16
			crc, crcErr = cidermill.CRC16XModemStream(f, 0)
			text = fmt.Sprintf("%04x", crc)
		case "ibm3740":
			var crc uint16
			crc, crcErr = cidermill.CRC16XModemStream(f, 0xffff)
			text = fmt.Sprintf("%04x", crc)
		case "kermit":
			var crc uint16
			crc, crcErr = cidermill.CRC16KermitStream(f, 0)
			text = fmt.Sprintf("%04x", crc)
		default:
			log.Fatal("Unknown checksum type", "type", *crcType)
		}
		f.Close()

		if crcErr != nil {
			log.Error("Read failed", "path", path, "error", crcErr)
			failed = true
			continue
		}
		fmt.Printf("%s  %s\n", text, path)
	}

	if failed {
		os.Exit(1)
	}
}
