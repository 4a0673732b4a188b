package cidermill

/*-------------------------------------------------------------
 *
 * Purpose:	ASCII helpers for filename display and for
 *		reducing names to plain 7-bit ASCII.
 *
 *		Vintage filenames can legally contain control bytes.
 *		For display we fold the C0 range onto the Unicode
 *		"control picture" plane, where every control code has
 *		a tiny printable glyph (U+2400 NUL, U+2401 SOH, ...).
 *
 *--------------------------------------------------------------*/

const control_pic_base = 0x2400 // U+2400 SYMBOL FOR NULL
const control_pic_del = 0x2421  // U+2421 SYMBOL FOR DELETE

/*-------------------------------------------------------------
 *
 * Name:	ControlPic
 *
 * Purpose:	Map a control character to its printable stand-in.
 *		0x00-0x1f fold to U+2400..U+241f, DEL to U+2421.
 *		Everything else passes through unchanged.
 *
 *--------------------------------------------------------------*/

func ControlPic(ch rune) rune {
	if ch >= 0x00 && ch <= 0x1f {
		return control_pic_base + ch
	}
	if ch == 0x7f {
		return control_pic_del
	}
	return ch
}

/*-------------------------------------------------------------
 *
 * Name:	UnControlPic
 *
 * Purpose:	Invert ControlPic, recovering the raw control code
 *		from its picture glyph.
 *
 *--------------------------------------------------------------*/

func UnControlPic(ch rune) rune {
	if ch >= control_pic_base && ch <= control_pic_base+0x1f {
		return ch - control_pic_base
	}
	if ch == control_pic_del {
		return 0x7f
	}
	return ch
}

/*
 * Diacritic stripping for the "reduce to ASCII" path.  Only the
 * Latin letters that appear in the 8-bit vintage character sets are
 * listed; anything not here and not plain ASCII gets the caller's
 * substitute character.
 */

var reduce_ascii_map = map[rune]rune{
	'À': 'A', 'Á': 'A', 'Â': 'A', 'Ã': 'A', 'Ä': 'A', 'Å': 'A',
	'à': 'a', 'á': 'a', 'â': 'a', 'ã': 'a', 'ä': 'a', 'å': 'a',
	'Ç': 'C', 'ç': 'c',
	'È': 'E', 'É': 'E', 'Ê': 'E', 'Ë': 'E',
	'è': 'e', 'é': 'e', 'ê': 'e', 'ë': 'e',
	'Ƒ': 'F', 'ƒ': 'f',
	'Ì': 'I', 'Í': 'I', 'Î': 'I', 'Ï': 'I',
	'ì': 'i', 'í': 'i', 'î': 'i', 'ï': 'i',
	'ı': 'i', // dotless i
	'Ñ': 'N', 'ñ': 'n',
	'Ò': 'O', 'Ó': 'O', 'Ô': 'O', 'Õ': 'O', 'Ö': 'O', 'Ø': 'O',
	'ò': 'o', 'ó': 'o', 'ô': 'o', 'õ': 'o', 'ö': 'o', 'ø': 'o',
	'ß': 's',
	'Ù': 'U', 'Ú': 'U', 'Û': 'U', 'Ü': 'U',
	'ù': 'u', 'ú': 'u', 'û': 'u', 'ü': 'u',
	'Ÿ': 'Y', 'ÿ': 'y',
	'˜': '~', // small tilde
}

/*-------------------------------------------------------------
 *
 * Name:	ReduceToASCII
 *
 * Purpose:	Produce a 7-bit ASCII rendition of a string, for
 *		hosts or formats that can't hold the full set.
 *		Accented Latin letters lose their diacritics; any
 *		other non-ASCII character becomes the substitute.
 *
 * Inputs:	str	- Input string.
 *		sub	- Substitute for unrepresentable characters.
 *
 *--------------------------------------------------------------*/

func ReduceToASCII(str string, sub byte) string {
	var out = make([]byte, 0, len(str))
	for _, ch := range str {
		if ch < 0x80 {
			out = append(out, byte(ch))
			continue
		}
		if mapped, ok := reduce_ascii_map[ch]; ok {
			out = append(out, byte(mapped))
			continue
		}
		out = append(out, sub)
	}
	return string(out)
}
