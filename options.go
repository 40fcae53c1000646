package bpe

import (
	"github.com/rs/zerolog"

	"github.com/tokenlab/gobpe/internal/normalize"
	"github.com/tokenlab/gobpe/internal/pretok"
)

// config accumulates construction-time settings. Its zero value plus the
// defaults applied in New/Load is a usable configuration; Option functions
// mutate it before the tokenizer is built.
type config struct {
	logger zerolog.Logger

	preTokenizer pretok.PreTokenizer
	normalizer   normalize.Normalizer

	cacheCapacity  int
	maxCacheKeyLen int

	addedTokens map[string]int32

	bosToken string
	eosToken string
	unkToken string

	defaultFlags EncodeFlags
}

func defaultConfig() *config {
	return &config{
		logger:         zerolog.Nop(),
		preTokenizer:   pretok.NewByteLevel(),
		normalizer:     normalize.Identity{},
		cacheCapacity:  0,  // unbounded
		maxCacheKeyLen: 15, // spec's documented MAX_CACHE_KEY_LEN default
		defaultFlags:   DefaultEncodeFlags(),
	}
}

// Option configures a Tokenizer at construction time.
type Option func(*config) error

// WithLogger attaches a zerolog.Logger for construction and cache
// diagnostics. The default is a disabled logger, so importing this package
// never prints on its own.
func WithLogger(logger zerolog.Logger) Option {
	return func(c *config) error {
		c.logger = logger
		return nil
	}
}

// WithPreTokenizer overrides the default GPT-2-style byte-level
// pre-tokenizer.
func WithPreTokenizer(p pretok.PreTokenizer) Option {
	return func(c *config) error {
		if p == nil {
			return newConfigError("pre_tokenizer", nil, ErrInvalidConfig)
		}
		c.preTokenizer = p
		return nil
	}
}

// WithNormalizer overrides the default no-op normalizer.
func WithNormalizer(n normalize.Normalizer) Option {
	return func(c *config) error {
		if n == nil {
			return newConfigError("normalizer", nil, ErrInvalidConfig)
		}
		c.normalizer = n
		return nil
	}
}

// WithCacheCapacity sets the maximum number of words held by the word-encode
// cache. 0 means unbounded.
func WithCacheCapacity(capacity int) Option {
	return func(c *config) error {
		if capacity < 0 {
			return newConfigError("cache_capacity", capacity, ErrInvalidConfig)
		}
		c.cacheCapacity = capacity
		return nil
	}
}

// WithMaxCacheKeyLen sets the longest word length eligible for caching. 0 or
// negative disables the limit.
func WithMaxCacheKeyLen(n int) Option {
	return func(c *config) error {
		c.maxCacheKeyLen = n
		return nil
	}
}

// WithAddedTokens registers whole-word tokens that bypass BPE entirely.
func WithAddedTokens(tokens map[string]int32) Option {
	return func(c *config) error {
		c.addedTokens = tokens
		return nil
	}
}

// WithControlTokens declares the BOS, EOS, and UNK token strings. Each must
// name a token present in the loaded vocabulary, or construction fails with
// ErrInvalidConfig. Pass "" for any token this variant does not use.
func WithControlTokens(bos, eos, unk string) Option {
	return func(c *config) error {
		c.bosToken, c.eosToken, c.unkToken = bos, eos, unk
		return nil
	}
}

// WithDefaultFlags overrides the EncodeFlags used when callers pass nil.
func WithDefaultFlags(flags EncodeFlags) Option {
	return func(c *config) error {
		c.defaultFlags = flags
		return nil
	}
}
