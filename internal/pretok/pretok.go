// Package pretok implements the pre-tokenizer contract: splitting normalized
// text into atomic word spans over which BPE is applied independently.
package pretok

import (
	"fmt"

	"github.com/dlclark/regexp2"

	"github.com/tokenlab/gobpe/internal/token"
)

// PreTokenizer splits text into non-overlapping, ascending-order spans. The
// union of spans need not cover the whole input: gaps are skipped
// characters. Implementations must be deterministic and side-effect-free.
type PreTokenizer interface {
	Split(text string, considerNormalization bool) ([]token.Span, error)
}

// gpt2Pattern is the canonical GPT-2/RoBERTa splitting regex. It relies on a
// negative lookahead (`\s+(?!\S)`) that Go's RE2-based regexp package cannot
// express, so this pre-tokenizer is built on dlclark/regexp2 instead of a
// hand-rolled state machine.
const gpt2Pattern = `(?i:'s|'t|'re|'ve|'m|'ll|'d)| ?\p{L}+| ?\p{N}+| ?[^\s\p{L}\p{N}]+|\s+(?!\S)|\s+`

// ByteLevel is the GPT-2-family byte-level pre-tokenizer: it splits on
// contractions, runs of letters, runs of digits, runs of punctuation, and
// whitespace, optionally keeping a leading space attached to the following
// word.
type ByteLevel struct {
	re *regexp2.Regexp
}

// NewByteLevel builds the standard GPT-2/RoBERTa byte-level pre-tokenizer.
func NewByteLevel() *ByteLevel {
	re := regexp2.MustCompile(gpt2Pattern, regexp2.None)
	return &ByteLevel{re: re}
}

// Split implements PreTokenizer. considerNormalization is accepted for
// interface symmetry with Normalizer-aware pre-tokenizers; this
// implementation's regex is insensitive to whether normalization ran.
func (b *ByteLevel) Split(text string, _ bool) ([]token.Span, error) {
	if text == "" {
		return nil, nil
	}

	runes := []rune(text)
	byteOffset := make([]int, len(runes)+1)
	off := 0
	for i, r := range runes {
		byteOffset[i] = off
		off += len(string(r))
	}
	byteOffset[len(runes)] = off

	var spans []token.Span
	m, err := b.re.FindRunesMatch(runes)
	if err != nil {
		return nil, fmt.Errorf("pretok: byte-level split: %w", err)
	}
	for m != nil {
		start := m.Index
		length := m.Length
		spans = append(spans, token.Span{
			Index:  byteOffset[start],
			Length: byteOffset[start+length] - byteOffset[start],
		})
		m, err = b.re.FindNextMatch(m)
		if err != nil {
			return nil, fmt.Errorf("pretok: byte-level split: %w", err)
		}
	}
	return spans, nil
}

// WholeText is the trivial pre-tokenizer that treats the entire input as a
// single span, used when pre-tokenization is disabled for a call.
type WholeText struct{}

// Split implements PreTokenizer.
func (WholeText) Split(text string, _ bool) ([]token.Span, error) {
	if text == "" {
		return nil, nil
	}
	return []token.Span{{Index: 0, Length: len(text)}}, nil
}
