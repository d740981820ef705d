package stream

import (
	"math/rand"
	"testing"

	"github.com/rikkaka/bob-plugin-openai-dictionary/internal/apierr"
	"github.com/rikkaka/bob-plugin-openai-dictionary/internal/testutil"
)

func TestDecode(t *testing.T) {
	tests := []struct {
		name        string
		payload     string
		wantContent *string
		wantKind    apierr.Kind
	}{
		{
			name:        "content",
			payload:     `{"choices":[{"delta":{"content":"A"}}]}`,
			wantContent: strPtr("A"),
		},
		{
			name:        "empty content is present",
			payload:     `{"choices":[{"delta":{"content":""}}]}`,
			wantContent: strPtr(""),
		},
		{
			name:    "role only delta",
			payload: `{"choices":[{"delta":{"role":"assistant"}}]}`,
		},
		{
			name:    "finish chunk",
			payload: `{"choices":[{"delta":{},"finish_reason":"stop"}]}`,
		},
		{
			name:     "empty choices",
			payload:  `{"choices":[]}`,
			wantKind: apierr.KindAPI,
		},
		{
			name:     "missing choices",
			payload:  `{"id":"x"}`,
			wantKind: apierr.KindAPI,
		},
		{
			name:     "malformed json",
			payload:  `{"choices":[{"delta":`,
			wantKind: apierr.KindParam,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			content, err := Decode(tt.payload)
			if tt.wantKind != "" {
				if !apierr.Is(err, tt.wantKind) {
					t.Fatalf("error = %v, want kind %q", err, tt.wantKind)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			switch {
			case tt.wantContent == nil && content != nil:
				t.Errorf("content = %q, want absent", *content)
			case tt.wantContent != nil && content == nil:
				t.Errorf("content absent, want %q", *tt.wantContent)
			case tt.wantContent != nil && *content != *tt.wantContent:
				t.Errorf("content = %q, want %q", *content, *tt.wantContent)
			}
		})
	}
}

func TestAccumulatorAppendsInOrder(t *testing.T) {
	acc := NewAccumulator()
	payloads := []string{
		`{"choices":[{"delta":{"content":"A"}}]}`,
		`{"choices":[{"delta":{"content":"B"}}]}`,
		DoneSentinel,
	}

	var partials []string
	for _, p := range payloads {
		changed, err := acc.Apply(p)
		if err != nil {
			t.Fatalf("Apply(%q) error: %v", p, err)
		}
		if changed {
			partials = append(partials, acc.Text())
		}
	}

	if acc.Text() != "AB" {
		t.Errorf("Text() = %q, want AB", acc.Text())
	}
	if len(partials) != 2 || partials[0] != "A" || partials[1] != "AB" {
		t.Errorf("partials = %q, want [A AB]", partials)
	}
}

func TestAccumulatorEmptyContentEmits(t *testing.T) {
	acc := NewAccumulator()
	changed, err := acc.Apply(`{"choices":[{"delta":{"content":""}}]}`)
	if err != nil || !changed {
		t.Errorf("Apply(empty content) = %v, %v; want true, nil", changed, err)
	}
}

func TestAccumulatorFreezesOnError(t *testing.T) {
	acc := NewAccumulator()
	acc.Apply(`{"choices":[{"delta":{"content":"A"}}]}`)

	if _, err := acc.Apply(`{"choices":[]}`); !apierr.Is(err, apierr.KindAPI) {
		t.Fatalf("error = %v, want api kind", err)
	}
	if !acc.Frozen() {
		t.Error("accumulator should be frozen")
	}

	changed, err := acc.Apply(`{"choices":[{"delta":{"content":"B"}}]}`)
	if changed || err != nil {
		t.Errorf("Apply after freeze = %v, %v; want false, nil", changed, err)
	}
	if acc.Text() != "A" {
		t.Errorf("Text() = %q, want A", acc.Text())
	}
}

// Partial results and final text do not depend on fragment boundaries.
func TestDecodedSequenceIgnoresFragmentBoundaries(t *testing.T) {
	body := testutil.SSEStream("re", "sist", " [rīˈzɪst]", "\nv. 抗拒")
	run := func(fragments []string) ([]string, string) {
		r := NewReassembler()
		acc := NewAccumulator()
		var partials []string
		for _, f := range fragments {
			payloads, err := r.Feed(f)
			if err != nil {
				t.Fatalf("Feed error: %v", err)
			}
			for _, p := range payloads {
				changed, err := acc.Apply(p)
				if err != nil {
					t.Fatalf("Apply error: %v", err)
				}
				if changed {
					partials = append(partials, acc.Text())
				}
			}
		}
		return partials, acc.Text()
	}

	wantPartials, wantText := run([]string{body})
	if wantText != "resist [rīˈzɪst]\nv. 抗拒" {
		t.Fatalf("reference text = %q", wantText)
	}

	rnd := rand.New(rand.NewSource(7))
	for i := 0; i < 100; i++ {
		partials, text := run(testutil.RandomSplit(body, rnd))
		if text != wantText {
			t.Fatalf("split %d: text = %q, want %q", i, text, wantText)
		}
		if len(partials) != len(wantPartials) {
			t.Fatalf("split %d: %d partials, want %d", i, len(partials), len(wantPartials))
		}
		for j := range partials {
			if partials[j] != wantPartials[j] {
				t.Fatalf("split %d: partial %d = %q, want %q", i, j, partials[j], wantPartials[j])
			}
		}
	}
}

func strPtr(s string) *string { return &s }
