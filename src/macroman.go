package cidermill

/*-------------------------------------------------------------
 *
 * Purpose:	Mac OS Roman, the 8-bit character set used by HFS
 *		filenames and classic Mac resource data.
 *
 *		The forward table follows Apple's ROMAN.TXT in its
 *		1983 form, where 0xdb is the generic currency sign.
 *		The 1998 revision replaced that glyph with the euro
 *		sign; the reverse table carries an alias so either
 *		code point encodes to 0xdb.
 *
 *		HFS filenames may legally contain control bytes, so a
 *		second "show control" table maps the control range to
 *		the Unicode control-picture glyphs for display.  The
 *		same table drives the 4-char type/creator code
 *		rendering, where arbitrary byte values are common.
 *
 *--------------------------------------------------------------*/

var mac_roman_forward = [256]rune{
	/* 0x00-0x7f: ASCII */
	0x0000, 0x0001, 0x0002, 0x0003, 0x0004, 0x0005, 0x0006, 0x0007,
	0x0008, 0x0009, 0x000a, 0x000b, 0x000c, 0x000d, 0x000e, 0x000f,
	0x0010, 0x0011, 0x0012, 0x0013, 0x0014, 0x0015, 0x0016, 0x0017,
	0x0018, 0x0019, 0x001a, 0x001b, 0x001c, 0x001d, 0x001e, 0x001f,
	0x0020, 0x0021, 0x0022, 0x0023, 0x0024, 0x0025, 0x0026, 0x0027,
	0x0028, 0x0029, 0x002a, 0x002b, 0x002c, 0x002d, 0x002e, 0x002f,
	0x0030, 0x0031, 0x0032, 0x0033, 0x0034, 0x0035, 0x0036, 0x0037,
	0x0038, 0x0039, 0x003a, 0x003b, 0x003c, 0x003d, 0x003e, 0x003f,
	0x0040, 0x0041, 0x0042, 0x0043, 0x0044, 0x0045, 0x0046, 0x0047,
	0x0048, 0x0049, 0x004a, 0x004b, 0x004c, 0x004d, 0x004e, 0x004f,
	0x0050, 0x0051, 0x0052, 0x0053, 0x0054, 0x0055, 0x0056, 0x0057,
	0x0058, 0x0059, 0x005a, 0x005b, 0x005c, 0x005d, 0x005e, 0x005f,
	0x0060, 0x0061, 0x0062, 0x0063, 0x0064, 0x0065, 0x0066, 0x0067,
	0x0068, 0x0069, 0x006a, 0x006b, 0x006c, 0x006d, 0x006e, 0x006f,
	0x0070, 0x0071, 0x0072, 0x0073, 0x0074, 0x0075, 0x0076, 0x0077,
	0x0078, 0x0079, 0x007a, 0x007b, 0x007c, 0x007d, 0x007e, 0x007f,
	/* 0x80 */
	0x00c4, 0x00c5, 0x00c7, 0x00c9, 0x00d1, 0x00d6, 0x00dc, 0x00e1, /* Ä Å Ç É Ñ Ö Ü á */
	0x00e0, 0x00e2, 0x00e4, 0x00e3, 0x00e5, 0x00e7, 0x00e9, 0x00e8, /* à â ä ã å ç é è */
	/* 0x90 */
	0x00ea, 0x00eb, 0x00ed, 0x00ec, 0x00ee, 0x00ef, 0x00f1, 0x00f3, /* ê ë í ì î ï ñ ó */
	0x00f2, 0x00f4, 0x00f6, 0x00f5, 0x00fa, 0x00f9, 0x00fb, 0x00fc, /* ò ô ö õ ú ù û ü */
	/* 0xa0 */
	0x2020, 0x00b0, 0x00a2, 0x00a3, 0x00a7, 0x2022, 0x00b6, 0x00df, /* † ° ¢ £ § • ¶ ß */
	0x00ae, 0x00a9, 0x2122, 0x00b4, 0x00a8, 0x2260, 0x00c6, 0x00d8, /* ® © ™ ´ ¨ ≠ Æ Ø */
	/* 0xb0 */
	0x221e, 0x00b1, 0x2264, 0x2265, 0x00a5, 0x00b5, 0x2202, 0x2211, /* ∞ ± ≤ ≥ ¥ µ ∂ ∑ */
	0x220f, 0x03c0, 0x222b, 0x00aa, 0x00ba, 0x03a9, 0x00e6, 0x00f8, /* ∏ π ∫ ª º Ω æ ø */
	/* 0xc0 */
	0x00bf, 0x00a1, 0x00ac, 0x221a, 0x0192, 0x2248, 0x2206, 0x00ab, /* ¿ ¡ ¬ √ ƒ ≈ ∆ « */
	0x00bb, 0x2026, 0x00a0, 0x00c0, 0x00c3, 0x00d5, 0x0152, 0x0153, /* » … nbsp À Ã Õ Œ œ */
	/* 0xd0 */
	0x2013, 0x2014, 0x201c, 0x201d, 0x2018, 0x2019, 0x00f7, 0x25ca, /* – — “ ” ‘ ’ ÷ ◊ */
	0x00ff, 0x0178, 0x2044, 0x00a4, 0x2039, 0x203a, 0xfb01, 0xfb02, /* ÿ Ÿ ⁄ ¤ ‹ › ﬁ ﬂ */
	/* 0xe0 */
	0x2021, 0x00b7, 0x201a, 0x201e, 0x2030, 0x00c2, 0x00ca, 0x00c1, /* ‡ · ‚ „ ‰ Â Ê Á */
	0x00cb, 0x00c8, 0x00cd, 0x00ce, 0x00cf, 0x00cc, 0x00d3, 0x00d4, /* Ë È Í Î Ï Ì Ó Ô */
	/* 0xf0 */
	0xf8ff, 0x00d2, 0x00da, 0x00db, 0x00d9, 0x0131, 0x02c6, 0x02dc, /* apple Ò Ú Û Ù ı ˆ ˜ */
	0x00af, 0x02d8, 0x02d9, 0x02da, 0x00b8, 0x02dd, 0x02db, 0x02c7, /* ¯ ˘ ˙ ˚ ¸ ˝ ˛ ˇ */
}

const euro_sign = 0x20ac
const currency_sign_byte = 0xdb

var mac_roman_show_ctrl_forward [256]rune

var mac_roman_map *char_map
var mac_roman_sc_map *char_map

func init() {
	mac_roman_map = new_char_map("Mac OS Roman", &mac_roman_forward)
	mac_roman_map.add_reverse_alias(euro_sign, currency_sign_byte)

	mac_roman_show_ctrl_forward = mac_roman_forward
	for i := 0; i <= 0x1f; i++ {
		mac_roman_show_ctrl_forward[i] = ControlPic(rune(i))
	}
	mac_roman_show_ctrl_forward[0x7f] = ControlPic(0x7f)

	mac_roman_sc_map = new_char_map("Mac OS Roman (show ctrl)", &mac_roman_show_ctrl_forward)
	mac_roman_sc_map.add_reverse_alias(euro_sign, currency_sign_byte)
}

// MacRomanDecode converts raw Mac OS Roman bytes to a string.
func MacRomanDecode(buf []byte) string {
	return mac_roman_map.decode(buf)
}

// MacRomanEncode converts a string to Mac OS Roman bytes,
// substituting '?' for anything the set can't hold.
func MacRomanEncode(str string) []byte {
	return mac_roman_map.encode(str)
}

// MacRomanIsValid reports whether every character of the string has
// a Mac OS Roman encoding.
func MacRomanIsValid(str string) bool {
	return mac_roman_map.is_valid(str)
}

// MacRomanDecodeShowCtrl is MacRomanDecode with the control range
// rendered as control-picture glyphs.  Use for filenames headed to a
// display.
func MacRomanDecodeShowCtrl(buf []byte) string {
	return mac_roman_sc_map.decode(buf)
}

// MacRomanEncodeShowCtrl inverts MacRomanDecodeShowCtrl.
func MacRomanEncodeShowCtrl(str string) []byte {
	return mac_roman_sc_map.encode(str)
}

/*-------------------------------------------------------------
 *
 * Name:	MacTypeToString / StringToMacType
 *
 * Purpose:	Render a 4-char Mac OS constant (file type, creator,
 *		resource type) as a display string and back.  Types
 *		are packed big-endian: 'TEXT' = 0x54455854.
 *
 *		The show-control table is used so type codes built
 *		from unprintable bytes still round-trip.
 *
 *--------------------------------------------------------------*/

func MacTypeToString(val uint32) string {
	var buf = []byte{
		byte(val >> 24), byte(val >> 16), byte(val >> 8), byte(val),
	}
	return mac_roman_sc_map.decode(buf)
}

func StringToMacType(str string) (uint32, bool) {
	var runes = []rune(str)
	if len(runes) != 4 {
		return 0, false
	}
	var val uint32
	for _, ch := range runes {
		var b = mac_roman_sc_map.reverse_byte(ch)
		if b < 0 {
			return 0, false
		}
		val = val<<8 | uint32(b)
	}
	return val, true
}
