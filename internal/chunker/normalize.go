package chunker

import (
	"regexp"
	"strings"
)

var (
	circledDigitRe = regexp.MustCompile(`[\x{2460}-\x{2473}]`) // ① .. ⑳
	whitespaceRe   = regexp.MustCompile(`[\s\v\p{Z}\x{1c}-\x{1f}\x{85}]+`) // Unicode whitespace, incl. NBSP and U+3000
)

// Normalize prepares node text for reference matching: newlines become spaces,
// circled paragraph numerals are removed and whitespace runs collapse to one space.
func Normalize(text string) string {
	text = strings.ReplaceAll(text, "\n", " ")
	text = circledDigitRe.ReplaceAllString(text, "")
	return whitespaceRe.ReplaceAllString(text, " ")
}
