package bpe

import "testing"

// TestSeedScenarios exercises the concrete GPT-2/CodeGen seed scenarios
// against a real vocab.json/merges.txt pair loaded from disk (testdata),
// rather than a synthetic single-byte vocabulary.
func TestSeedScenarios(t *testing.T) {
	tok, err := Load("testdata/seedvocab")
	if err != nil {
		t.Fatalf("loading seed fixture: %v", err)
	}

	cases := []struct {
		name        string
		text        string
		prefixSpace bool
		wantIDs     []int32
		wantTokens  []string
	}{
		{
			name:       "Hello World without prefix space",
			text:       "Hello World",
			wantIDs:    []int32{15496, 2159},
			wantTokens: []string{"Hello", "ĠWorld"},
		},
		{
			name:        "Hello World with synthesized prefix space",
			text:        "Hello World",
			prefixSpace: true,
			wantIDs:     []int32{18435, 2159},
			wantTokens:  []string{"ĠHello", "ĠWorld"},
		},
		{
			name:       "leading space already present",
			text:       " Hello World",
			wantIDs:    []int32{18435, 2159},
			wantTokens: []string{"ĠHello", "ĠWorld"},
		},
		{
			name: "pangram sentence",
			text: "The quick brown fox jumps over the lazy dog.",
			wantIDs: []int32{
				464, 2068, 7586, 21831, 18045, 625, 262, 16931, 3290, 13,
			},
			wantTokens: []string{
				"The", "Ġquick", "Ġbrown", "Ġfox", "Ġjumps", "Ġover", "Ġthe", "Ġlazy", "Ġdog", ".",
			},
		},
		{
			name:       "Hello Berta (RoBERTa vocab, no further merge past Bert)",
			text:       "Hello Berta",
			wantIDs:    []int32{15496, 22108, 64},
			wantTokens: []string{"Hello", "ĠBert", "a"},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			flags := DefaultEncodeFlags()
			flags.AddPrefixSpace = tc.prefixSpace

			tokens := tok.Encode(tc.text, &flags)
			if len(tokens) != len(tc.wantIDs) {
				t.Fatalf("got %d tokens, want %d: %+v", len(tokens), len(tc.wantIDs), tokens)
			}
			for i, piece := range tokens {
				if piece.ID != tc.wantIDs[i] {
					t.Errorf("token %d: id=%d, want %d", i, piece.ID, tc.wantIDs[i])
				}
				if piece.Value != tc.wantTokens[i] {
					t.Errorf("token %d: value=%q, want %q", i, piece.Value, tc.wantTokens[i])
				}
			}
		})
	}
}

// TestSeedScenarioMultiByteRuneOffsets covers the "😀😂" seed scenario from
// spec.md §8. That scenario was written against a UTF-16 host, where each
// astral-plane emoji is a surrogate pair and the two resulting byte-groups
// are expected to share one source offset apiece. Go strings are UTF-8,
// where every byte already has its own distinct, addressable position (see
// DESIGN.md's "code unit as byte" decision), so there is no pair of bytes
// that must ever share a single offset the way a UTF-16 surrogate pair
// does. The part of the scenario that still applies is that offsets stay
// monotonic, contiguous, and exactly tile the source text, which is what
// this test checks instead of the inapplicable grouping count.
func TestSeedScenarioMultiByteRuneOffsets(t *testing.T) {
	tok, _ := buildTestTokenizer(t, nil)

	flags := DefaultEncodeFlags()
	flags.ConsiderPreTokenization = false
	text := "😀😂"
	got := tok.Encode(text, &flags)

	if len(got) != len(text) {
		t.Fatalf("expected one token per byte (%d), got %d: %+v", len(text), len(got), got)
	}
	for i, piece := range got {
		if piece.Offset.Index != i || piece.Offset.Length != 1 {
			t.Fatalf("token %d: offset=%+v, want {Index:%d Length:1}", i, piece.Offset, i)
		}
	}
}
