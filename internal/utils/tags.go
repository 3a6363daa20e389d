package utils

import (
	"regexp"
	"strings"
)

// StripTagBlocks removes every complete <tag>…</tag> block for the given tag
// names, case-insensitively and across newlines, then trims the remainder.
// Reasoning models wrap their chain of thought in tags like <thinking>; those
// blocks must be removed before the reply is parsed for structure, or the
// trace's own markup would be mistaken for the answer.
//
// An unterminated block is left in place: cutting to end-of-text could
// swallow an answer that follows a forgotten closing tag.
func StripTagBlocks(text string, tags ...string) string {
	for _, tag := range tags {
		quoted := regexp.QuoteMeta(tag)
		pattern := regexp.MustCompile(`(?is)<` + quoted + `(?:\s[^>]*)?>.*?</` + quoted + `\s*>`)
		text = pattern.ReplaceAllString(text, "")
	}
	return strings.TrimSpace(text)
}
