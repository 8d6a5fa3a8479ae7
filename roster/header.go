package roster

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// asciiFolds maps letters that survive Unicode decomposition with no ASCII
// base character, so they degrade to a close ASCII form instead of being
// dropped outright.
var asciiFolds = strings.NewReplacer(
	"ı", "i",
	"ß", "ss", "ẞ", "SS",
	"ø", "o", "Ø", "O",
	"æ", "ae", "Æ", "AE",
	"œ", "oe", "Œ", "OE",
	"ð", "d", "Ð", "D",
	"đ", "d", "Đ", "D",
	"þ", "th", "Þ", "TH",
	"ł", "l", "Ł", "L",
)

// headerFold decomposes accented letters and strips everything left outside
// the ASCII range, combining marks included.
var headerFold = transform.Chain(
	norm.NFKD,
	runes.Remove(runes.Predicate(func(r rune) bool { return r > unicode.MaxASCII })),
)

// NormalizeHeader canonicalizes a field name: non-ASCII letters fold to
// their closest plain-ASCII form, the result is trimmed and lowercased, and
// every internal whitespace run becomes a single underscore. Deterministic
// and total; the empty string maps to itself.
func NormalizeHeader(input string) string {
	if input == "" {
		return ""
	}
	folded, _, err := transform.String(headerFold, asciiFolds.Replace(input))
	if err != nil {
		folded = input
	}
	return strings.Join(strings.Fields(strings.ToLower(folded)), "_")
}
