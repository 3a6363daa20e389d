package xmltext

import (
	"encoding/xml"
	"io"
	"strings"
)

// Parse converts XML-like text into a nested key/value tree. The result is a
// map from the root tag name to its parsed value, where a value is one of:
//
//   - a coerced primitive (string, bool, float64, or nil) for leaf elements,
//   - a map[string]any for branch elements, keyed by child tag name, with
//     attributes under [AttrKey] when enabled,
//   - a []any when a tag repeats among siblings and arrayization is on.
//
// Blank input, or input in which no structure can be recognized by either
// engine, yields nil. Parse never panics and never returns an error: a
// malformed document is silently retried with the degraded scan.
func Parse(text string, opts ...Option) any {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if strings.TrimSpace(text) == "" {
		return nil
	}
	switch o.strategy {
	case StrategyDOM:
		return parseDOM(text, o)
	case StrategyScan:
		return parseScan(text, o)
	default:
		if node := parseDOM(text, o); node != nil {
			return node
		}
		return parseScan(text, o)
	}
}

// element is a minimal DOM node built from decoder tokens. Comments,
// directives and processing instructions are never recorded.
type element struct {
	name     string
	attrs    []xml.Attr
	text     strings.Builder
	children []*element
}

// parseDOM decodes text with the strict XML decoder and walks the resulting
// tree. Any decoder error yields nil so the caller can fall back.
func parseDOM(text string, o options) any {
	root, err := decodeRoot(text)
	if err != nil || root == nil {
		return nil
	}
	return map[string]any{root.name: walkElement(root, o)}
}

// decodeRoot tokenizes text into an element tree. Prose before the root
// element and junk after it are tolerated; anything that breaks the decoder
// mid-document is an error.
func decodeRoot(text string) (*element, error) {
	decoder := xml.NewDecoder(strings.NewReader(text))
	var root *element
	var stack []*element

	for {
		token, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			if root != nil && len(stack) == 0 {
				// The root element closed cleanly; trailing garbage is prose.
				return root, nil
			}
			return nil, err
		}

		switch t := token.(type) {
		case xml.StartElement:
			el := &element{name: t.Name.Local, attrs: t.Attr}
			if len(stack) == 0 {
				if root == nil {
					root = el
				}
				// Extra top-level elements after the first are skipped; the
				// stack still tracks them so their tokens balance out.
			} else {
				parent := stack[len(stack)-1]
				parent.children = append(parent.children, el)
			}
			stack = append(stack, el)
		case xml.EndElement:
			if len(stack) > 0 {
				stack = stack[:len(stack)-1]
			}
		case xml.CharData:
			if len(stack) > 0 {
				stack[len(stack)-1].text.Write(t)
			}
		}
	}

	if len(stack) != 0 {
		return nil, io.ErrUnexpectedEOF
	}
	return root, nil
}

// walkElement converts one element into its tree value. An element whose
// children are exclusively character data is a leaf and returns its coerced
// text directly; an element with neither text nor children returns the empty
// branch map[string]any{}; everything else is a branch.
func walkElement(el *element, o options) any {
	if len(el.children) == 0 {
		text := strings.TrimSpace(el.text.String())
		if text == "" {
			return map[string]any{}
		}
		return coerceLeaf(text, o.coerce)
	}

	node := make(map[string]any)
	if o.attributes && len(el.attrs) > 0 {
		attrs := make(map[string]any, len(el.attrs))
		for _, a := range el.attrs {
			attrs[a.Name.Local] = coerceLeaf(a.Value, o.coerce)
		}
		node[AttrKey] = attrs
	}
	for _, child := range el.children {
		merge(node, child.name, walkElement(child, o), o.arrayize)
	}
	return node
}
