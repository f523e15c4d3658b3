package statblock

import (
	"regexp"
	"strings"
)

var newlineRunPattern = regexp.MustCompile(`\n+`)

// Normalize converts CRLF and bare CR line endings to LF and collapses every
// run of consecutive newlines into one.
func Normalize(text string) string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	return newlineRunPattern.ReplaceAllString(text, "\n")
}

// splitLines splits normalized text into lines without a trailing empty
// element for a final newline.
func splitLines(text string) []string {
	if text == "" {
		return nil
	}
	return strings.Split(strings.TrimSuffix(text, "\n"), "\n")
}
