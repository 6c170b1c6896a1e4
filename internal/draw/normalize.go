package draw

import "strings"

// Sanitizer rewrites text into a form safe for one destination technology.
type Sanitizer func(string) string

// oddSpaces are unicode code points that render as hollow boxes in most PDF
// viewers: no-break space, narrow no-break space, thin space, and the
// non-breaking hyphen.
var oddSpaces = map[rune]bool{
	0x00A0: true,
	0x202F: true,
	0x2009: true,
	0x2011: true,
}

// ReplaceOddSpaces swaps the known problem code points for ordinary spaces
// and leaves everything else alone. This is the sanitizer for AcroForm text
// values, which otherwise carry full unicode.
func ReplaceOddSpaces(s string) string {
	return strings.Map(func(r rune) rune {
		if oddSpaces[r] {
			return ' '
		}
		return r
	}, s)
}

// StripToPrintable removes every character outside printable ASCII, keeping
// newline, carriage return, and tab. Control and extended characters corrupt
// an XFA datasets packet, so the XFA writer uses this stricter mode.
func StripToPrintable(s string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case '\n', '\r', '\t':
			return r
		}
		if r < 0x20 || r > 0x7E {
			return -1
		}
		return r
	}, s)
}
