package evaluator

import (
	"encoding/json"
	"fmt"

	"github.com/kaptinlin/jsonrepair"

	"github.com/darielli/evochar/core/schemadoc"
	"github.com/darielli/evochar/core/xmltext"
)

// FieldUpdate is one proposed change to a character record field.
type FieldUpdate struct {
	Field      string  // dotted path of the target field
	New        any     // proposed value
	Old        any     // value the model believes is current, if stated
	Reason     string  // why the model proposes the change
	Confidence float64 // model-reported confidence in [0, 1], 0 when absent
	Weight     float64 // relative importance, 0 when absent
	Difference string  // model-described delta between old and new
}

// ExtractUpdates parses a model reply and returns the proposed updates.
// XML is tried first; when no XML structure is recognized the reply is
// treated as (possibly broken) JSON and repaired before decoding. When the
// reply carries an explicitly empty updates element the result is an empty,
// non-error slice: the model stated that nothing should change.
//
// Updates naming fields the schema does not declare are dropped. An error
// means the reply should be retried.
func ExtractUpdates(content string, schema *schemadoc.Schema) ([]FieldUpdate, error) {
	payload := decodePayload(content)
	if payload == nil {
		return nil, fmt.Errorf("%w: no structure recognized", ErrNoUpdates)
	}

	raw, found := findUpdates(payload)
	if !found {
		return nil, fmt.Errorf("%w: missing updates key", ErrNoUpdates)
	}

	candidates := normalizeUpdates(raw)
	if candidates == nil {
		return nil, fmt.Errorf("%w: updates value unusable", ErrNoUpdates)
	}
	updates := make([]FieldUpdate, 0, len(candidates))
	allowed := allowedPaths(schema)
	for _, candidate := range candidates {
		update, ok := decodeUpdate(candidate)
		if !ok {
			continue
		}
		if allowed != nil && !allowed[update.Field] {
			continue
		}
		updates = append(updates, update)
	}

	if len(candidates) > 0 && len(updates) == 0 {
		return nil, fmt.Errorf("%w: no valid update descriptors", ErrNoUpdates)
	}
	return updates, nil
}

// decodePayload turns a raw reply into a generic tree, XML first, repaired
// JSON second. Nil means neither layer recognized anything.
func decodePayload(content string) any {
	if node := xmltext.Parse(content); node != nil {
		return node
	}

	// Models sometimes answer in JSON despite the XML template.
	repaired, err := jsonrepair.JSONRepair(content)
	if err != nil {
		return nil
	}
	var data any
	if err := json.Unmarshal([]byte(repaired), &data); err != nil {
		return nil
	}
	return data
}

// findUpdates locates the value of the first "updates" key anywhere in the
// tree, so both <updates> roots and wrapper elements around them work.
func findUpdates(node any) (any, bool) {
	m, ok := node.(map[string]any)
	if !ok {
		return nil, false
	}
	if v, ok := m["updates"]; ok {
		return v, true
	}
	for _, child := range m {
		if found, ok := findUpdates(child); ok {
			return found, true
		}
	}
	return nil, false
}

// normalizeUpdates flattens the updates value into candidate descriptor
// maps. Accepted shapes: a single descriptor, a sequence of descriptors, or
// a mapping holding them under repeated <update> children. An explicitly
// empty mapping yields an empty non-nil slice; anything else yields nil.
func normalizeUpdates(v any) []map[string]any {
	switch t := v.(type) {
	case map[string]any:
		if inner, ok := t["update"]; ok {
			return normalizeUpdates(inner)
		}
		if len(t) == 0 {
			return []map[string]any{}
		}
		return []map[string]any{t}
	case []any:
		out := make([]map[string]any, 0, len(t))
		for _, item := range t {
			if m, ok := item.(map[string]any); ok {
				out = append(out, m)
			}
		}
		return out
	default:
		return nil
	}
}

// decodeUpdate reads one descriptor map. Field and new are mandatory; the
// rest is advisory metadata.
func decodeUpdate(m map[string]any) (FieldUpdate, bool) {
	field, _ := m["field"].(string)
	newValue, hasNew := m["new"]
	if field == "" || !hasNew {
		return FieldUpdate{}, false
	}

	update := FieldUpdate{Field: field, New: newValue}
	update.Old = m["old"]
	if s, ok := m["reason"].(string); ok {
		update.Reason = s
	}
	if s, ok := m["difference"].(string); ok {
		update.Difference = s
	}
	if f, ok := m["confidence"].(float64); ok {
		update.Confidence = f
	}
	if f, ok := m["weight"].(float64); ok {
		update.Weight = f
	}
	return update, true
}

// allowedPaths builds the set of field paths the schema declares. Nil means
// no schema was configured and every field is accepted.
func allowedPaths(schema *schemadoc.Schema) map[string]bool {
	if schema == nil {
		return nil
	}
	descriptors := schemadoc.CollectFields(schema, "")
	if len(descriptors) == 0 {
		return nil
	}
	allowed := make(map[string]bool, len(descriptors))
	for _, fd := range descriptors {
		allowed[fd.Path] = true
	}
	return allowed
}
