package evaluator

import "strings"

// ApplyUpdates returns a copy of record with each update's value written at
// its dotted path, creating intermediate objects as needed. The input record
// is never mutated. Updates targeting positions inside arrays or record
// values (paths containing "[]" or "{value}") are skipped: they do not name
// a single addressable slot. An update hitting a non-object on its way down
// is skipped too.
func ApplyUpdates(record map[string]any, updates []FieldUpdate) map[string]any {
	out := cloneTree(record)
	for _, update := range updates {
		if strings.Contains(update.Field, "[]") || strings.Contains(update.Field, "{value}") {
			continue
		}
		applyOne(out, strings.Split(update.Field, "."), update.New)
	}
	return out
}

func applyOne(node map[string]any, path []string, value any) {
	key := path[0]
	if len(path) == 1 {
		node[key] = value
		return
	}

	child, ok := node[key].(map[string]any)
	if !ok {
		if _, present := node[key]; present {
			return // a non-object occupies the path
		}
		child = make(map[string]any)
		node[key] = child
	}
	applyOne(child, path[1:], value)
}

// cloneTree deep-copies the map/slice spine of a record; leaf values are
// shared.
func cloneTree(m map[string]any) map[string]any {
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = cloneValue(v)
	}
	return out
}

func cloneValue(v any) any {
	switch t := v.(type) {
	case map[string]any:
		return cloneTree(t)
	case []any:
		out := make([]any, len(t))
		for i, item := range t {
			out[i] = cloneValue(item)
		}
		return out
	default:
		return v
	}
}
