package xmltext

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestParseScan_Trees(t *testing.T) {
	tests := []struct {
		name  string
		input string
		opts  []Option
		want  any
	}{
		{
			name:  "flat fields",
			input: "<response><field>bio</field><new>braver now</new></response>",
			want: map[string]any{"response": map[string]any{
				"field": "bio",
				"new":   "braver now",
			}},
		},
		{
			name:  "repeated siblings arrayize",
			input: "<a><b>1</b><b>2</b></a>",
			want:  map[string]any{"a": map[string]any{"b": []any{1.0, 2.0}}},
		},
		{
			name:  "repeated siblings last wins",
			input: "<a><b>1</b><b>2</b></a>",
			opts:  []Option{WithoutArrays()},
			want:  map[string]any{"a": map[string]any{"b": 2.0}},
		},
		{
			name:  "nested pair recurses",
			input: "<a><b><c>deep</c></b></a>",
			want:  map[string]any{"a": map[string]any{"b": map[string]any{"c": "deep"}}},
		},
		{
			name:  "garbage between siblings is skipped",
			input: "<a>uh <b>1</b> sure <c>2</c> done</a>",
			want:  map[string]any{"a": map[string]any{"b": 1.0, "c": 2.0}},
		},
		{
			name:  "unclosed sibling is skipped",
			input: "<a><b>1</b><broken><c>2</c></a>",
			want:  map[string]any{"a": map[string]any{"b": 1.0, "c": 2.0}},
		},
		{
			name:  "prose around the outer pair",
			input: "Of course! <a><b>1</b></a> Let me know.",
			want:  map[string]any{"a": map[string]any{"b": 1.0}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := append([]Option{WithStrategy(StrategyScan)}, tt.opts...)
			got := Parse(tt.input, opts...)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Parse(%q) mismatch (-want +got):\n%s", tt.input, diff)
			}
		})
	}
}

func TestParseScan_NoStructure(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{name: "plain prose", input: "not xml at all"},
		{name: "open tag without close", input: "<a><b>1</b>"},
		// A leaf-only root has no inner tags for the scan to find; the scan
		// reports no structure rather than guessing.
		{name: "leaf-only root", input: "<a>hello</a>"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Parse(tt.input, WithStrategy(StrategyScan)); got != nil {
				t.Errorf("Parse(%q) = %v, want nil", tt.input, got)
			}
		})
	}
}

// Both engines must agree on well-formed branch documents so the silent
// fallback never changes what a caller observes.
func TestParse_StrategyParity(t *testing.T) {
	corpus := []struct {
		name  string
		input string
		opts  []Option
	}{
		{name: "flat", input: "<r><a>1</a><b>two</b><c>true</c></r>"},
		{name: "nested", input: "<r><style><all>kind</all><chat>brief</chat></style></r>"},
		{name: "repeats", input: "<r><topic>go</topic><topic>xml</topic></r>"},
		{name: "repeats last wins", input: "<r><topic>go</topic><topic>xml</topic></r>", opts: []Option{WithoutArrays()}},
		{name: "empty child", input: "<r><lore></lore><bio>short</bio></r>"},
		{name: "no coercion", input: "<r><n>42</n></r>", opts: []Option{WithoutCoercion()}},
		{name: "deep nesting", input: "<r><a><b><c>1</c><c>2</c></b></a></r>"},
	}

	for _, tt := range corpus {
		t.Run(tt.name, func(t *testing.T) {
			dom := Parse(tt.input, append([]Option{WithStrategy(StrategyDOM)}, tt.opts...)...)
			scan := Parse(tt.input, append([]Option{WithStrategy(StrategyScan)}, tt.opts...)...)
			if diff := cmp.Diff(dom, scan); diff != "" {
				t.Errorf("engines disagree on %q (-dom +scan):\n%s", tt.input, diff)
			}
		})
	}
}
