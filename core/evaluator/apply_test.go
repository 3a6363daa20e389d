package evaluator

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestApplyUpdates(t *testing.T) {
	record := map[string]any{
		"bio": "An explorer.",
		"style": map[string]any{
			"all":  "be kind",
			"chat": "be brief",
		},
	}

	got := ApplyUpdates(record, []FieldUpdate{
		{Field: "bio", New: "A braver explorer."},
		{Field: "style.all", New: "be direct"},
		{Field: "mood", New: "bold"},                       // new top-level field
		{Field: "voice.tone", New: "warm"},                 // creates intermediate object
		{Field: "bio.nested", New: "x"},                    // bio is a string, skipped
		{Field: "relationships[].bond", New: 1.0},          // array position, skipped
		{Field: "knowledge{value}.source", New: "journal"}, // record position, skipped
	})

	want := map[string]any{
		"bio": "A braver explorer.",
		"style": map[string]any{
			"all":  "be direct",
			"chat": "be brief",
		},
		"mood":  "bold",
		"voice": map[string]any{"tone": "warm"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("ApplyUpdates() mismatch (-want +got):\n%s", diff)
	}

	// The input record must be untouched.
	if record["bio"] != "An explorer." {
		t.Errorf("input record mutated: bio = %v", record["bio"])
	}
	if record["style"].(map[string]any)["all"] != "be kind" {
		t.Errorf("input record mutated: style.all = %v", record["style"].(map[string]any)["all"])
	}
}
