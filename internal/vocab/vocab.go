// Package vocab loads and holds the immutable token<->id mappings used by a
// BPE tokenizer: the main vocabulary and the optional added-tokens overlay.
package vocab

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
)

// Store is an immutable, bijective token<->id mapping loaded from a
// vocabulary JSON file.
type Store struct {
	idToToken map[int32]string
	tokenToID map[string]int32
	maxID     int32
}

// New builds a Store directly from a token->id map, for programmatic
// construction and tests where a vocabulary JSON file would be overkill.
func New(tokens map[string]int32) *Store {
	s := &Store{
		idToToken: make(map[int32]string, len(tokens)),
		tokenToID: make(map[string]int32, len(tokens)),
	}
	for tok, id := range tokens {
		s.tokenToID[tok] = id
		s.idToToken[id] = tok
		if id > s.maxID {
			s.maxID = id
		}
	}
	return s
}

// FromJSONFile parses a vocabulary from a UTF-8 JSON object of the form
// {"token": id, ...}. Duplicate keys are rejected: the loader contract
// requires a bijective key set, and JSON decoding into a map silently keeps
// only the last occurrence of a repeated key, which would hide the
// duplicate. We decode with json.Decoder in token order instead, so we can
// detect repeats.
func FromJSONFile(path string) (*Store, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("vocab: read %s: %w", path, err)
	}
	return FromJSONBytes(data)
}

// FromJSONBytes is FromJSONFile without the file I/O, useful for tests and
// for embedding a vocabulary at build time.
func FromJSONBytes(data []byte) (*Store, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("vocab: invalid format: %w", err)
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return nil, fmt.Errorf("vocab: invalid format: expected a JSON object")
	}

	s := &Store{
		idToToken: make(map[int32]string),
		tokenToID: make(map[string]int32),
	}

	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("vocab: invalid format: %w", err)
		}
		key, ok := keyTok.(string)
		if !ok {
			return nil, fmt.Errorf("vocab: invalid format: non-string key")
		}
		var id int64
		if err := dec.Decode(&id); err != nil {
			return nil, fmt.Errorf("vocab: invalid format: value for %q: %w", key, err)
		}
		if _, exists := s.tokenToID[key]; exists {
			return nil, fmt.Errorf("vocab: invalid format: duplicate key %q", key)
		}
		s.tokenToID[key] = int32(id)
		s.idToToken[int32(id)] = key
		if int32(id) > s.maxID {
			s.maxID = int32(id)
		}
	}
	return s, nil
}

// ID returns the id for a token string, if present.
func (s *Store) ID(token string) (int32, bool) {
	id, ok := s.tokenToID[token]
	return id, ok
}

// Token returns the string for an id, if present.
func (s *Store) Token(id int32) (string, bool) {
	tok, ok := s.idToToken[id]
	return tok, ok
}

// Len returns the number of entries in the vocabulary.
func (s *Store) Len() int {
	return len(s.tokenToID)
}

// MaxID returns the largest id present in the vocabulary.
func (s *Store) MaxID() int32 {
	return s.maxID
}

// AddedTokens is a side map of whole-string tokens that bypass BPE.
type AddedTokens struct {
	idToToken map[int32]string
	tokenToID map[string]int32
}

// NewAddedTokens builds an AddedTokens overlay from a token->id map.
func NewAddedTokens(tokens map[string]int32) *AddedTokens {
	a := &AddedTokens{
		idToToken: make(map[int32]string, len(tokens)),
		tokenToID: make(map[string]int32, len(tokens)),
	}
	for tok, id := range tokens {
		a.tokenToID[tok] = id
		a.idToToken[id] = tok
	}
	return a
}

// Match reports whether the whole of word is an added token, and its id.
func (a *AddedTokens) Match(word string) (int32, bool) {
	if a == nil {
		return 0, false
	}
	id, ok := a.tokenToID[word]
	return id, ok
}

// Token returns the added-token string for an id, if present.
func (a *AddedTokens) Token(id int32) (string, bool) {
	if a == nil {
		return "", false
	}
	tok, ok := a.idToToken[id]
	return tok, ok
}

// Len returns the number of added tokens. Safe to call on a nil receiver.
func (a *AddedTokens) Len() int {
	if a == nil {
		return 0
	}
	return len(a.tokenToID)
}
