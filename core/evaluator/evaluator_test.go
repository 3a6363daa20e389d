package evaluator

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/darielli/evochar/core/schemadoc"
	"github.com/darielli/evochar/providers/ai"
)

func testSchema() *schemadoc.Schema {
	return schemadoc.Object(
		schemadoc.F("bio", schemadoc.String().Doc("one-paragraph biography")),
		schemadoc.F("adjectives", schemadoc.ArrayOf(schemadoc.String())),
		schemadoc.F("style", schemadoc.Object(
			schemadoc.F("all", schemadoc.String()),
		)),
	)
}

// scriptedProvider returns each reply in order, then repeats the last one.
func scriptedProvider(calls *int, replies ...string) ai.Provider {
	return ai.ProviderFunc(func(ctx context.Context, request ai.ChatRequest) (*ai.ChatResponse, error) {
		idx := *calls
		*calls++
		if idx >= len(replies) {
			idx = len(replies) - 1
		}
		return &ai.ChatResponse{Content: replies[idx]}, nil
	})
}

const goodReply = `<thinking>
The user showed courage, bio should reflect it.
</thinking>
<response>
  <updates>
    <update>
      <field>bio</field>
      <new>A braver explorer than before.</new>
      <reason>stood ground in the argument</reason>
      <confidence>0.9</confidence>
    </update>
    <update>
      <field>style.all</field>
      <new>more direct</new>
    </update>
    <update>
      <field>not_a_field</field>
      <new>ignored</new>
    </update>
  </updates>
</response>`

func TestEvaluate_Success(t *testing.T) {
	calls := 0
	e, err := New(scriptedProvider(&calls, goodReply), testSchema())
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	result, err := e.Evaluate(context.Background(), Request{
		CharacterName: "Mira",
		Record:        map[string]any{"bio": "An explorer."},
		Transcript: []ai.Message{
			{Role: ai.RoleUser, Name: "Sam", Content: "You held your ground back there."},
			{Role: ai.RoleAssistant, Name: "Mira", Content: "Someone had to."},
		},
	})
	if err != nil {
		t.Fatalf("Evaluate() error = %v", err)
	}

	want := []FieldUpdate{
		{
			Field:      "bio",
			New:        "A braver explorer than before.",
			Reason:     "stood ground in the argument",
			Confidence: 0.9,
		},
		{Field: "style.all", New: "more direct"},
	}
	if diff := cmp.Diff(want, result.Updates); diff != "" {
		t.Errorf("updates mismatch (-want +got):\n%s", diff)
	}
	if result.Attempts != 1 {
		t.Errorf("Attempts = %d, want 1", result.Attempts)
	}
}

func TestEvaluate_RetriesUntilUsable(t *testing.T) {
	calls := 0
	e, err := New(scriptedProvider(&calls,
		"Sorry, I can't produce XML right now.",
		goodReply,
	), testSchema())
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	result, err := e.Evaluate(context.Background(), Request{Record: map[string]any{}})
	if err != nil {
		t.Fatalf("Evaluate() error = %v", err)
	}
	if result.Attempts != 2 {
		t.Errorf("Attempts = %d, want 2", result.Attempts)
	}
	if calls != 2 {
		t.Errorf("provider called %d times, want 2", calls)
	}
}

func TestEvaluate_ExhaustsBudget(t *testing.T) {
	calls := 0
	e, err := New(scriptedProvider(&calls, "still not xml"), testSchema(), WithMaxAttempts(2))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	_, err = e.Evaluate(context.Background(), Request{})
	if !errors.Is(err, ErrAttemptsExhausted) {
		t.Errorf("error = %v, want ErrAttemptsExhausted", err)
	}
	if !errors.Is(err, ErrNoUpdates) {
		t.Errorf("error = %v, want wrapped ErrNoUpdates", err)
	}
	if calls != 2 {
		t.Errorf("provider called %d times, want 2", calls)
	}
}

func TestEvaluate_EmptyUpdatesIsSuccess(t *testing.T) {
	calls := 0
	e, err := New(scriptedProvider(&calls,
		"<response><updates></updates></response>",
	), testSchema())
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	result, err := e.Evaluate(context.Background(), Request{})
	if err != nil {
		t.Fatalf("Evaluate() error = %v", err)
	}
	if len(result.Updates) != 0 {
		t.Errorf("Updates = %v, want none", result.Updates)
	}
}

func TestEvaluate_ProviderErrorsAreRetried(t *testing.T) {
	calls := 0
	provider := ai.ProviderFunc(func(ctx context.Context, request ai.ChatRequest) (*ai.ChatResponse, error) {
		calls++
		if calls == 1 {
			return nil, errors.New("502 bad gateway")
		}
		return &ai.ChatResponse{Content: goodReply}, nil
	})

	e, err := New(provider, testSchema())
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	result, err := e.Evaluate(context.Background(), Request{})
	if err != nil {
		t.Fatalf("Evaluate() error = %v", err)
	}
	if result.Attempts != 2 {
		t.Errorf("Attempts = %d, want 2", result.Attempts)
	}
}

func TestEvaluate_ContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	provider := ai.ProviderFunc(func(ctx context.Context, request ai.ChatRequest) (*ai.ChatResponse, error) {
		cancel()
		return nil, ctx.Err()
	})

	e, err := New(provider, testSchema())
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if _, err := e.Evaluate(ctx, Request{}); !errors.Is(err, context.Canceled) {
		t.Errorf("error = %v, want context.Canceled", err)
	}
}

func TestNew_RequiresProvider(t *testing.T) {
	if _, err := New(nil, testSchema()); err == nil {
		t.Error("New(nil) error = nil, want error")
	}
}
