package xmltext

import (
	"regexp"
	"strings"
)

// openTagPattern matches an opening tag and captures its name. Closing and
// self-closing tags do not match because '/' is excluded from the name class
// and the tag must end with a plain '>'.
var openTagPattern = regexp.MustCompile(`<([A-Za-z_][A-Za-z0-9_.:-]*)(?:\s[^>]*)?>`)

// parseScan is the degraded engine used when the structural decoder cannot
// handle the input. It captures the outermost tag pair, then iteratively
// scans the inner text for sibling tag spans, recursing into bodies that
// themselves contain a complete pair.
//
// It is a recovery aid for model output, not a parser: attributes are not
// captured, CDATA is not distinguished from text, entities are not decoded,
// and a quoted '>' inside an attribute value can derail the span scan.
func parseScan(text string, o options) any {
	name, body, ok := outerSpan(text)
	if !ok {
		return nil
	}
	if strings.TrimSpace(body) == "" {
		return map[string]any{name: map[string]any{}}
	}
	inner := scanSiblings(body, o)
	if inner == nil {
		return nil
	}
	return map[string]any{name: inner}
}

// outerSpan captures the text between the first opening tag that has a
// matching closing tag and the last such closing tag, mirroring a greedy
// outermost-pair regex match.
func outerSpan(text string) (name, body string, ok bool) {
	offset := 0
	for {
		loc := openTagPattern.FindStringSubmatchIndex(text[offset:])
		if loc == nil {
			return "", "", false
		}
		candidate := text[offset+loc[2] : offset+loc[3]]
		after := offset + loc[1]
		if end := strings.LastIndex(text[after:], "</"+candidate+">"); end >= 0 {
			return candidate, text[after : after+end], true
		}
		offset += loc[1]
	}
}

// scanSiblings walks body match by match, pairing each opening tag with the
// nearest same-named closing tag, and merges the spans into a mapping under
// the arrayization rule. Returns nil when no span is recognized.
func scanSiblings(body string, o options) map[string]any {
	var result map[string]any
	offset := 0
	for {
		loc := openTagPattern.FindStringSubmatchIndex(body[offset:])
		if loc == nil {
			break
		}
		name := body[offset+loc[2] : offset+loc[3]]
		contentStart := offset + loc[1]
		closeRel := strings.Index(body[contentStart:], "</"+name+">")
		if closeRel < 0 {
			// Unclosed tag, skip past it and keep scanning.
			offset += loc[1]
			continue
		}

		inner := body[contentStart : contentStart+closeRel]
		var value any
		switch {
		case hasTagPair(inner):
			value = scanSiblings(inner, o)
		case strings.TrimSpace(inner) == "":
			value = map[string]any{}
		default:
			value = coerceLeaf(inner, o.coerce)
		}

		if result == nil {
			result = make(map[string]any)
		}
		merge(result, name, value, o.arrayize)
		offset = contentStart + closeRel + len(name) + len("</>")
	}
	return result
}

// hasTagPair reports whether s contains at least one complete tag pair.
func hasTagPair(s string) bool {
	offset := 0
	for {
		loc := openTagPattern.FindStringSubmatchIndex(s[offset:])
		if loc == nil {
			return false
		}
		name := s[offset+loc[2] : offset+loc[3]]
		if strings.Contains(s[offset+loc[1]:], "</"+name+">") {
			return true
		}
		offset += loc[1]
	}
}
