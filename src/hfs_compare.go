package cidermill

/*-------------------------------------------------------------
 *
 * Purpose:	HFS filename ordering.
 *
 *		HFS keeps catalog entries in a case-insensitive order
 *		where accented letters file next to their base letter
 *		and an upper/lower pair compares equal.  The order is
 *		defined by a 256-entry sort-index table, generated once
 *		from the hand-curated list below.
 *
 *		Each primary entry advances the sort counter; an entry
 *		tagged as the lower-case variant of the previous one
 *		reuses the counter, making the pair compare equal.
 *		Every byte value must appear exactly once; the table
 *		builder checks that at startup.
 *
 *--------------------------------------------------------------*/

/* Tag for "lower-case variant of the previous entry". */
const hfs_lower = 0x100

var hfs_order_list = []uint16{
	/* control range and space, in byte order */
	0x00, 0x01, 0x02, 0x03, 0x04, 0x05, 0x06, 0x07,
	0x08, 0x09, 0x0a, 0x0b, 0x0c, 0x0d, 0x0e, 0x0f,
	0x10, 0x11, 0x12, 0x13, 0x14, 0x15, 0x16, 0x17,
	0x18, 0x19, 0x1a, 0x1b, 0x1c, 0x1d, 0x1e, 0x1f,
	0x20, 0x21, 0x22, 0x23, 0x24, 0x25, 0x26, 0x27, /* sp ! " # $ % & ' */
	0x28, 0x29, 0x2a, 0x2b, 0x2c, 0x2d, 0x2e, 0x2f, /* ( ) * + , - . / */
	0x30, 0x31, 0x32, 0x33, 0x34, 0x35, 0x36, 0x37, /* 0-7 */
	0x38, 0x39, 0x3a, 0x3b, 0x3c, 0x3d, 0x3e, 0x3f, /* 8 9 : ; < = > ? */
	0x40, /* @ */
	/* letters, accents interleaved, upper/lower pairs share an index */
	0x41, 0x61 | hfs_lower, /* A a */
	0xcb, 0x88 | hfs_lower, /* À à */
	0xe7, 0x87 | hfs_lower, /* Á á */
	0xe5, 0x89 | hfs_lower, /* Â â */
	0xcc, 0x8b | hfs_lower, /* Ã ã */
	0x80, 0x8a | hfs_lower, /* Ä ä */
	0x81, 0x8c | hfs_lower, /* Å å */
	0xae, 0xbe | hfs_lower, /* Æ æ */
	0x42, 0x62 | hfs_lower, /* B b */
	0x43, 0x63 | hfs_lower, /* C c */
	0x82, 0x8d | hfs_lower, /* Ç ç */
	0x44, 0x64 | hfs_lower, /* D d */
	0x45, 0x65 | hfs_lower, /* E e */
	0xe9, 0x8f | hfs_lower, /* È è */
	0x83, 0x8e | hfs_lower, /* É é */
	0xe6, 0x90 | hfs_lower, /* Ê ê */
	0xe8, 0x91 | hfs_lower, /* Ë ë */
	0x46, 0x66 | hfs_lower, /* F f */
	0xc4, /* ƒ */
	0x47, 0x67 | hfs_lower, /* G g */
	0x48, 0x68 | hfs_lower, /* H h */
	0x49, 0x69 | hfs_lower, /* I i */
	0xed, 0x93 | hfs_lower, /* Ì ì */
	0xea, 0x92 | hfs_lower, /* Í í */
	0xeb, 0x94 | hfs_lower, /* Î î */
	0xec, 0x95 | hfs_lower, /* Ï ï */
	0xf5, /* ı */
	0x4a, 0x6a | hfs_lower, /* J j */
	0x4b, 0x6b | hfs_lower, /* K k */
	0x4c, 0x6c | hfs_lower, /* L l */
	0x4d, 0x6d | hfs_lower, /* M m */
	0x4e, 0x6e | hfs_lower, /* N n */
	0x84, 0x96 | hfs_lower, /* Ñ ñ */
	0x4f, 0x6f | hfs_lower, /* O o */
	0xf1, 0x98 | hfs_lower, /* Ò ò */
	0xee, 0x97 | hfs_lower, /* Ó ó */
	0xef, 0x99 | hfs_lower, /* Ô ô */
	0xcd, 0x9b | hfs_lower, /* Õ õ */
	0x85, 0x9a | hfs_lower, /* Ö ö */
	0xaf, 0xbf | hfs_lower, /* Ø ø */
	0xce, 0xcf | hfs_lower, /* Œ œ */
	0x50, 0x70 | hfs_lower, /* P p */
	0x51, 0x71 | hfs_lower, /* Q q */
	0x52, 0x72 | hfs_lower, /* R r */
	0x53, 0x73 | hfs_lower, /* S s */
	0xa7, /* ß */
	0x54, 0x74 | hfs_lower, /* T t */
	0x55, 0x75 | hfs_lower, /* U u */
	0xf4, 0x9d | hfs_lower, /* Ù ù */
	0xf2, 0x9c | hfs_lower, /* Ú ú */
	0xf3, 0x9e | hfs_lower, /* Û û */
	0x86, 0x9f | hfs_lower, /* Ü ü */
	0x56, 0x76 | hfs_lower, /* V v */
	0x57, 0x77 | hfs_lower, /* W w */
	0x58, 0x78 | hfs_lower, /* X x */
	0x59, 0x79 | hfs_lower, /* Y y */
	0xd9, 0xd8 | hfs_lower, /* Ÿ ÿ */
	0x5a, 0x7a | hfs_lower, /* Z z */
	/* remaining ASCII punctuation */
	0x5b, 0x5c, 0x5d, 0x5e, 0x5f, 0x60, /* [ \ ] ^ _ ` */
	0x7b, 0x7c, 0x7d, 0x7e, 0x7f, /* { | } ~ del */
	/* remaining high symbols, in byte order */
	0xa0, 0xa1, 0xa2, 0xa3, 0xa4, 0xa5, 0xa6, /* † ° ¢ £ § • ¶ */
	0xa8, 0xa9, 0xaa, 0xab, 0xac, 0xad, /* ® © ™ ´ ¨ ≠ */
	0xb0, 0xb1, 0xb2, 0xb3, 0xb4, 0xb5, 0xb6, 0xb7, /* ∞ ± ≤ ≥ ¥ µ ∂ ∑ */
	0xb8, 0xb9, 0xba, 0xbb, 0xbc, 0xbd, /* ∏ π ∫ ª º Ω */
	0xc0, 0xc1, 0xc2, 0xc3, /* ¿ ¡ ¬ √ */
	0xc5, 0xc6, 0xc7, 0xc8, 0xc9, 0xca, /* ≈ ∆ « » … nbsp */
	0xd0, 0xd1, 0xd2, 0xd3, 0xd4, 0xd5, 0xd6, 0xd7, /* – — “ ” ‘ ’ ÷ ◊ */
	0xda, 0xdb, 0xdc, 0xdd, 0xde, 0xdf, /* ⁄ ¤ ‹ › ﬁ ﬂ */
	0xe0, 0xe1, 0xe2, 0xe3, 0xe4, /* ‡ · ‚ „ ‰ */
	0xf0, /* apple */
	0xf6, 0xf7, 0xf8, 0xf9, 0xfa, 0xfb, 0xfc, 0xfd, 0xfe, 0xff,
}

var hfs_sort_index [256]byte

func init() {
	var seen [256]bool
	var counter = -1
	for _, entry := range hfs_order_list {
		var b = byte(entry)
		if entry&hfs_lower == 0 {
			counter++
		}
		Assertf(counter >= 0 && counter <= 255, "HFS order list counter overflow")
		Assertf(!seen[b], "HFS order list repeats 0x%02x", b)
		seen[b] = true
		hfs_sort_index[b] = byte(counter)
	}
	for b, ok := range seen {
		Assertf(ok, "HFS order list missing 0x%02x", b)
	}
}

/*-------------------------------------------------------------
 *
 * Name:	CompareHFSFileNameBytes
 *
 * Purpose:	Order two raw Mac OS Roman filenames the way the HFS
 *		catalog does.
 *
 * Returns:	<0, 0, >0 in the usual comparator convention.  Names
 *		differing only in case (or pairing accent case
 *		variants) compare equal; on a tie the shorter name
 *		files first.
 *
 *--------------------------------------------------------------*/

func CompareHFSFileNameBytes(name1 []byte, name2 []byte) int {
	var shorter = min(len(name1), len(name2))
	for i := 0; i < shorter; i++ {
		if name1[i] != name2[i] {
			var diff = int(hfs_sort_index[name1[i]]) - int(hfs_sort_index[name2[i]])
			if diff != 0 {
				return diff
			}
		}
	}
	return len(name1) - len(name2)
}

/*-------------------------------------------------------------
 *
 * Name:	CompareHFSFileNames
 *
 * Purpose:	HFS ordering over Unicode strings, with per-name
 *		directory separators.  Two pathnames using different
 *		separator conventions can be compared directly:
 *		"dir/file" with '/' equals "dir:file" with ':'.
 *
 *		Characters are taken through the show-control reverse
 *		table, so names decoded for display compare the same
 *		as their raw forms.  Characters with no Mac OS Roman
 *		encoding have no defined HFS order; they sort last.
 *
 *--------------------------------------------------------------*/

func CompareHFSFileNames(name1 string, sep1 rune, name2 string, sep2 rune) int {
	var runes1 = []rune(name1)
	var runes2 = []rune(name2)
	var shorter = min(len(runes1), len(runes2))

	for i := 0; i < shorter; i++ {
		var ch1 = runes1[i]
		var ch2 = runes2[i]
		var is_sep1 = ch1 == sep1
		var is_sep2 = ch2 == sep2
		if is_sep1 && is_sep2 {
			continue
		}
		var b1 = hfs_compare_byte(ch1)
		var b2 = hfs_compare_byte(ch2)
		if b1 != b2 {
			var diff = int(hfs_sort_index[b1]) - int(hfs_sort_index[b2])
			if diff != 0 {
				return diff
			}
		}
	}
	return len(runes1) - len(runes2)
}

// hfs_compare_byte maps a character to its Mac OS Roman byte for
// ordering purposes.  Unrepresentable characters collapse to 0xff,
// placing them at the end of the order.
func hfs_compare_byte(ch rune) byte {
	var b = mac_roman_sc_map.reverse_byte(ch)
	if b < 0 {
		return 0xff
	}
	return byte(b)
}
