// Package bpe implements a byte-level BPE tokenizer engine covering the
// GPT-2 / CodeGen / RoBERTa family: a byte<->visible-character codec, a
// rank-ordered merge table, a pre-tokenizer contract, a bounded per-word
// cache, and an engine that orchestrates them into offset-exact encode and
// decode.
package bpe

import (
	"path/filepath"

	"github.com/tokenlab/gobpe/internal/byteviz"
	"github.com/tokenlab/gobpe/internal/cache"
	"github.com/tokenlab/gobpe/internal/merges"
	"github.com/tokenlab/gobpe/internal/normalize"
	"github.com/tokenlab/gobpe/internal/pretok"
	"github.com/tokenlab/gobpe/internal/token"
	"github.com/tokenlab/gobpe/internal/vocab"
	"github.com/tokenlab/gobpe/internal/wordenc"
)

// Span and Token are the shared offset/sub-token types produced by every
// encode operation.
type Span = token.Span
type Token = token.Token

// EncodeFlags controls a single encode call. The zero value is not
// necessarily the tokenizer's default; use DefaultEncodeFlags or a
// tokenizer's configured defaults (see WithDefaultFlags).
type EncodeFlags struct {
	AddPrefixSpace          bool
	AddBOS                  bool
	AddEOS                  bool
	ConsiderPreTokenization bool
	ConsiderNormalization   bool
	ConsiderSpecialTokens   bool
}

// DefaultEncodeFlags returns the engine's baseline flags: pre-tokenization
// and normalization run, special tokens are considered on decode, and no
// prefix space or BOS/EOS are synthesized.
func DefaultEncodeFlags() EncodeFlags {
	return EncodeFlags{
		ConsiderPreTokenization: true,
		ConsiderNormalization:   true,
		ConsiderSpecialTokens:   true,
	}
}

// DecodeFlags controls a single decode call.
type DecodeFlags struct {
	HasPrefixSpace        bool
	ConsiderSpecialTokens bool
}

// Tokenizer is an immutable, concurrency-safe byte-level BPE tokenizer.
// Everything except the word-encode cache is read-only after construction.
type Tokenizer struct {
	codec  *byteviz.Codec
	vocab  *vocab.Store
	added  *vocab.AddedTokens
	merges *merges.Table

	preTok     pretok.PreTokenizer
	normalizer normalize.Normalizer
	cache      *cache.Cache
	encoder    *wordenc.Encoder

	hasBOS bool
	bosID  int32
	bosStr string
	hasEOS bool
	eosID  int32
	eosStr string
	hasUNK bool
	unkID  int32

	defaultFlags EncodeFlags
}

// Load reads vocab.json and merges.txt from dir (per the external file
// formats in §6) and builds a Tokenizer.
func Load(dir string, opts ...Option) (*Tokenizer, error) {
	v, err := vocab.FromJSONFile(filepath.Join(dir, "vocab.json"))
	if err != nil {
		return nil, newDataError("load vocabulary", dir, err)
	}
	m, err := merges.FromFile(filepath.Join(dir, "merges.txt"))
	if err != nil {
		return nil, newDataError("load merges", dir, err)
	}
	return build(v, m, opts...)
}

// New builds a Tokenizer from an already-loaded vocabulary and merge table,
// for programmatic construction and tests.
func New(v *vocab.Store, m *merges.Table, opts ...Option) (*Tokenizer, error) {
	return build(v, m, opts...)
}

func build(v *vocab.Store, m *merges.Table, opts ...Option) (*Tokenizer, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, err
		}
	}

	t := &Tokenizer{
		codec:        byteviz.New(),
		vocab:        v,
		merges:       m,
		preTok:       cfg.preTokenizer,
		normalizer:   cfg.normalizer,
		cache:        cache.New(cfg.cacheCapacity, cfg.maxCacheKeyLen),
		defaultFlags: cfg.defaultFlags,
	}

	if cfg.addedTokens != nil {
		t.added = vocab.NewAddedTokens(cfg.addedTokens)
	}

	if cfg.unkToken != "" {
		id, ok := v.ID(cfg.unkToken)
		if !ok {
			return nil, newConfigError("unk_token", cfg.unkToken, ErrInvalidConfig)
		}
		t.hasUNK, t.unkID = true, id
	}
	if cfg.bosToken != "" {
		id, ok := v.ID(cfg.bosToken)
		if !ok {
			return nil, newConfigError("bos_token", cfg.bosToken, ErrInvalidConfig)
		}
		t.hasBOS, t.bosID, t.bosStr = true, id, cfg.bosToken
	}
	if cfg.eosToken != "" {
		id, ok := v.ID(cfg.eosToken)
		if !ok {
			return nil, newConfigError("eos_token", cfg.eosToken, ErrInvalidConfig)
		}
		t.hasEOS, t.eosID, t.eosStr = true, id, cfg.eosToken
	}
	if cfg.defaultFlags.AddBOS && !t.hasBOS {
		return nil, newConfigError("add_bos", true, ErrInvalidConfig)
	}
	if cfg.defaultFlags.AddEOS && !t.hasEOS {
		return nil, newConfigError("add_eos", true, ErrInvalidConfig)
	}

	t.encoder = wordenc.New(t.codec, v, m, t.unkID, t.hasUNK)

	cfg.logger.Debug().
		Int("vocab_size", v.Len()).
		Int("merge_count", m.Len()).
		Bool("has_bos", t.hasBOS).
		Bool("has_eos", t.hasEOS).
		Bool("has_unk", t.hasUNK).
		Msg("tokenizer constructed")

	return t, nil
}

func (t *Tokenizer) resolveFlags(flags *EncodeFlags) EncodeFlags {
	if flags == nil {
		return t.defaultFlags
	}
	return *flags
}

func (t *Tokenizer) resolveDecodeFlags(flags *DecodeFlags) DecodeFlags {
	if flags != nil {
		return *flags
	}
	return DecodeFlags{
		HasPrefixSpace:        t.defaultFlags.AddPrefixSpace,
		ConsiderSpecialTokens: t.defaultFlags.ConsiderSpecialTokens,
	}
}

// MapIDToToken returns the vocabulary string for an id, if present.
func (t *Tokenizer) MapIDToToken(id int32) (string, bool) {
	if t.added != nil {
		if s, ok := t.added.Token(id); ok {
			return s, true
		}
	}
	return t.vocab.Token(id)
}

// MapTokenToID returns the id for a token string, if present. A token
// string containing characters outside the agreed alphabet is not an
// error; it simply returns absent.
func (t *Tokenizer) MapTokenToID(tok string) (int32, bool) {
	if t.added != nil {
		if id, ok := t.added.Match(tok); ok {
			return id, true
		}
	}
	return t.vocab.ID(tok)
}

// VocabSize returns the number of entries in the base vocabulary (excluding
// added tokens).
func (t *Tokenizer) VocabSize() int {
	return t.vocab.Len()
}

// MergeCount returns the number of rank-ordered merge rules.
func (t *Tokenizer) MergeCount() int {
	return t.merges.Len()
}

// AddedTokenCount returns the number of whole-word added tokens, if any.
func (t *Tokenizer) AddedTokenCount() int {
	return t.added.Len()
}

// encodeWordCached resolves one pre-tokenized word span to sub-tokens with
// offsets relative to the start of word: added-token whole-span match first,
// then the cache, then the word encoder.
func (t *Tokenizer) encodeWordCached(word string) []Token {
	if id, ok := t.added.Match(word); ok {
		return []Token{{ID: id, Value: word, Offset: Span{Index: 0, Length: len(word)}}}
	}
	if cached, ok := t.cache.Get(word); ok {
		return cached
	}
	out := t.encoder.EncodeWord(word)
	t.cache.Put(word, out)
	return out
}

// assemble runs steps 1-5 of the engine orchestration and returns the full,
// unbounded token sequence (before BOS/EOS injection) plus the text that
// was actually tokenized (post prefix-space synthesis, post normalization).
func (t *Tokenizer) assemble(text string, f EncodeFlags) ([]Token, string) {
	input := text
	if f.AddPrefixSpace {
		input = " " + text
	}

	normalized := input
	if f.ConsiderNormalization {
		normalized, _ = t.normalizer.Normalize(input)
	}

	var spans []Span
	if f.ConsiderPreTokenization {
		spans, _ = t.preTok.Split(normalized, f.ConsiderNormalization)
	} else {
		spans, _ = pretok.WholeText{}.Split(normalized, f.ConsiderNormalization)
	}

	var out []Token
	firstToken := true
	for _, span := range spans {
		word := normalized[span.Index : span.Index+span.Length]
		for _, sub := range t.encodeWordCached(word) {
			sub.Offset.Index += span.Index
			if f.AddPrefixSpace {
				if sub.Offset.Index > 0 {
					sub.Offset.Index--
				}
				if firstToken && sub.Offset.Length > 0 {
					sub.Offset.Length--
				}
			}
			firstToken = false
			out = append(out, sub)
		}
	}
	return out, normalized
}

// withControlTokens prepends/appends zero-length BOS/EOS tokens.
func (t *Tokenizer) withControlTokens(tokens []Token, textLen int, f EncodeFlags) []Token {
	if f.AddBOS && t.hasBOS {
		tokens = append([]Token{{ID: t.bosID, Value: t.bosStr, Offset: Span{Index: 0, Length: 0}}}, tokens...)
	}
	if f.AddEOS && t.hasEOS {
		tokens = append(tokens, Token{ID: t.eosID, Value: t.eosStr, Offset: Span{Index: textLen, Length: 0}})
	}
	return tokens
}

// Encode tokenizes text into the full, unbounded list of Tokens. A nil
// flags pointer uses the tokenizer's configured defaults.
func (t *Tokenizer) Encode(text string, flags *EncodeFlags) []Token {
	f := t.resolveFlags(flags)
	tokens, _ := t.assemble(text, f)
	return t.withControlTokens(tokens, len(text), f)
}

// EncodeToIDs tokenizes text and returns only the id sequence.
func (t *Tokenizer) EncodeToIDs(text string, flags *EncodeFlags) []int32 {
	tokens := t.Encode(text, flags)
	ids := make([]int32, len(tokens))
	for i, tok := range tokens {
		ids[i] = tok.ID
	}
	return ids
}
