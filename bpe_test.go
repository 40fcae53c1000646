package bpe

import (
	"testing"

	"github.com/tokenlab/gobpe/internal/byteviz"
	"github.com/tokenlab/gobpe/internal/merges"
	"github.com/tokenlab/gobpe/internal/vocab"
)

// buildTestTokenizer assembles a tiny, self-contained vocabulary covering
// every single byte-visible char plus a handful of merge results, so tests
// can exercise the full engine without a real GPT-2 vocabulary on disk.
func buildTestTokenizer(t *testing.T, extraMerges [][2]string, opts ...Option) (*Tokenizer, *byteviz.Codec) {
	t.Helper()
	codec := byteviz.New()

	tokens := map[string]int32{}
	var id int32
	for b := 0; b < 256; b++ {
		tokens[codec.CharToString(codec.ByteToChar(byte(b)))] = id
		id++
	}
	mt := merges.New()
	rank := 1
	for _, pair := range extraMerges {
		left, right := pair[0], pair[1]
		merged := left + right
		if _, exists := tokens[merged]; !exists {
			tokens[merged] = id
			id++
		}
		mt.Add(left, right, rank)
		rank++
	}
	tokens["<unk>"] = id
	id++
	tokens["<bos>"] = id
	id++
	tokens["<eos>"] = id

	v := vocab.New(tokens)

	allOpts := append([]Option{
		WithControlTokens("<bos>", "<eos>", "<unk>"),
	}, opts...)
	tok, err := New(v, mt, allOpts...)
	if err != nil {
		t.Fatalf("building tokenizer: %v", err)
	}
	return tok, codec
}

func mergeRule(codec *byteviz.Codec, l, r string) [2]string {
	viz := func(s string) string {
		out := ""
		for i := 0; i < len(s); i++ {
			out += codec.CharToString(codec.ByteToChar(s[i]))
		}
		return out
	}
	return [2]string{viz(l), viz(r)}
}

func TestEncodeBasicMerging(t *testing.T) {
	codec := byteviz.New()
	rules := [][2]string{
		mergeRule(codec, "a", "b"),
		mergeRule(codec, "ab", "c"),
	}
	tok, _ := buildTestTokenizer(t, rules)

	flags := DefaultEncodeFlags()
	flags.ConsiderPreTokenization = false
	got := tok.Encode("abc", &flags)
	if len(got) != 1 {
		t.Fatalf("expected a single merged token, got %+v", got)
	}
	if got[0].Offset.Index != 0 || got[0].Offset.Length != 3 {
		t.Fatalf("unexpected offset: %+v", got[0].Offset)
	}
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	tok, _ := buildTestTokenizer(t, nil)
	flags := DefaultEncodeFlags()
	ids := tok.EncodeToIDs("hello", &flags)
	got := tok.Decode(ids, &DecodeFlags{ConsiderSpecialTokens: true})
	if got != "hello" {
		t.Fatalf("round trip failed: got %q", got)
	}
}

func TestCountTokensMatchesEncodeLength(t *testing.T) {
	tok, _ := buildTestTokenizer(t, nil)
	flags := DefaultEncodeFlags()
	text := "hello world"
	if got, want := tok.CountTokens(text, &flags), len(tok.Encode(text, &flags)); got != want {
		t.Fatalf("CountTokens=%d, len(Encode)=%d", got, want)
	}
}

func TestEncodeToIDsBoundedIsAPrefix(t *testing.T) {
	tok, _ := buildTestTokenizer(t, nil)
	flags := DefaultEncodeFlags()
	text := "hello world"
	full := tok.EncodeToIDs(text, &flags)

	for max := 1; max <= len(full); max++ {
		bounded, _, err := tok.EncodeToIDsBounded(text, max, &flags)
		if err != nil {
			t.Fatalf("max=%d: unexpected error: %v", max, err)
		}
		if len(bounded) > max {
			t.Fatalf("max=%d: got %d ids, want <= max", max, len(bounded))
		}
		for i, id := range bounded {
			if id != full[i] {
				t.Fatalf("max=%d: bounded ids are not a prefix of the full encode", max)
			}
		}
	}
}

func TestEncodeToIDsBoundedRejectsNonPositiveMax(t *testing.T) {
	tok, _ := buildTestTokenizer(t, nil)
	flags := DefaultEncodeFlags()
	if _, _, err := tok.EncodeToIDsBounded("hello", 0, &flags); err == nil {
		t.Fatalf("expected error for max=0")
	}
}

func TestIndexOfTokenCountCoversWholeTextWhenUnderLimit(t *testing.T) {
	tok, _ := buildTestTokenizer(t, nil)
	flags := DefaultEncodeFlags()
	text := "hi"
	count := tok.CountTokens(text, &flags)

	textLen, tokenCount, err := tok.IndexOfTokenCount(text, count+5, &flags)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if textLen != len(text) {
		t.Fatalf("expected textLen=%d when under limit, got %d", len(text), textLen)
	}
	if tokenCount != count {
		t.Fatalf("expected tokenCount=%d, got %d", count, tokenCount)
	}
}

func TestBOSAndEOSChangeTokenCountByExactlyOne(t *testing.T) {
	tok, _ := buildTestTokenizer(t, nil)
	base := DefaultEncodeFlags()
	plain := tok.CountTokens("hi", &base)

	withBOS := base
	withBOS.AddBOS = true
	if got := tok.CountTokens("hi", &withBOS); got != plain+1 {
		t.Fatalf("AddBOS: got %d tokens, want %d", got, plain+1)
	}

	withBoth := base
	withBoth.AddBOS, withBoth.AddEOS = true, true
	if got := tok.CountTokens("hi", &withBoth); got != plain+2 {
		t.Fatalf("AddBOS+AddEOS: got %d tokens, want %d", got, plain+2)
	}
}

func TestAddedTokenWholeWordShortCircuitsBPE(t *testing.T) {
	tok, _ := buildTestTokenizer(t, nil, WithAddedTokens(map[string]int32{"hello": 10000}))
	flags := DefaultEncodeFlags()
	flags.ConsiderPreTokenization = false
	got := tok.Encode("hello", &flags)
	if len(got) != 1 || got[0].ID != 10000 {
		t.Fatalf("expected single added-token id 10000, got %+v", got)
	}
}

func TestCacheCoherenceAcrossRepeatedEncodes(t *testing.T) {
	tok, _ := buildTestTokenizer(t, nil)
	flags := DefaultEncodeFlags()
	first := tok.Encode("hello world", &flags)
	second := tok.Encode("hello world", &flags)
	if len(first) != len(second) {
		t.Fatalf("repeated encode produced different lengths: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("repeated encode diverged at %d: %+v vs %+v", i, first[i], second[i])
		}
	}
}

func TestUnknownIDIsSkippedOnDecode(t *testing.T) {
	tok, _ := buildTestTokenizer(t, nil)
	got := tok.Decode([]int32{999999}, &DecodeFlags{})
	if got != "" {
		t.Fatalf("expected empty decode for an unknown id, got %q", got)
	}
}

func TestControlTokenMustExistInVocabulary(t *testing.T) {
	codec := byteviz.New()
	tokens := map[string]int32{}
	var id int32
	for b := 0; b < 256; b++ {
		tokens[codec.CharToString(codec.ByteToChar(byte(b)))] = id
		id++
	}
	v := vocab.New(tokens)
	mt := merges.New()
	if _, err := New(v, mt, WithControlTokens("<bos>", "", "")); err == nil {
		t.Fatalf("expected ErrInvalidConfig for a BOS token absent from the vocabulary")
	}
}
