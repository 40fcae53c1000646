// Package occrank implements the RoBERTa-variant occurrence-rank overlay: a
// pure, immutable id<->occurrence-rank bijection plus an id->occurrence-value
// lookup, loaded from a fairseq-style dictionary file. It composes
// independently of the vocabulary and merge table and is never consulted by
// encode or decode; it exists for downstream scoring callers.
package occrank

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/tokenlab/gobpe/internal/vocab"
)

// Map is the occurrence-rank overlay for a RoBERTa-style vocabulary.
type Map struct {
	idToRank  map[int32]int32
	rankToID  map[int32]int32
	idToValue map[int32]int64
	maxRank   int32
}

// FromFile loads a dictionary file of whitespace-separated
// "token occurrence_value" lines. Token ordering on disk defines the
// occurrence-rank (rank 0 for the first line). Tokens not present in v are
// skipped rather than erroring, since a dictionary may list tokens from a
// larger corpus than the tokenizer's own vocabulary.
func FromFile(path string, v *vocab.Store) (*Map, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("occrank: read %s: %w", path, err)
	}
	defer f.Close()
	return FromReader(f, v)
}

// FromReader is FromFile without the file I/O, for tests.
func FromReader(r io.Reader, v *vocab.Store) (*Map, error) {
	m := &Map{
		idToRank:  make(map[int32]int32),
		rankToID:  make(map[int32]int32),
		idToValue: make(map[int32]int64),
	}

	scanner := bufio.NewScanner(r)
	var rank int32
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) != 2 {
			return nil, fmt.Errorf("occrank: invalid format: expected \"token value\", got %q", line)
		}
		value, err := strconv.ParseInt(fields[1], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("occrank: invalid format: value %q: %w", fields[1], err)
		}

		id, ok := v.ID(fields[0])
		if ok {
			m.idToRank[id] = rank
			m.idToValue[id] = value
			m.rankToID[rank] = id
		}
		// rank advances for every line, found or not: rank reflects disk
		// position in the dictionary, not position within this vocabulary.
		rank++
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("occrank: read error: %w", err)
	}
	m.maxRank = rank
	return m, nil
}

// RankForID returns the occurrence-rank for an id.
func (m *Map) RankForID(id int32) (int32, bool) {
	r, ok := m.idToRank[id]
	return r, ok
}

// IDForRank returns the id at a given occurrence-rank. Rank values that
// landed on a dictionary line whose token was not in this vocabulary never
// have an id and return false.
func (m *Map) IDForRank(rank int32) (int32, bool) {
	if rank < 0 || rank >= m.maxRank {
		return 0, false
	}
	id, ok := m.rankToID[rank]
	return id, ok
}

// ValueForID returns the raw occurrence value recorded for an id.
func (m *Map) ValueForID(id int32) (int64, bool) {
	v, ok := m.idToValue[id]
	return v, ok
}

// Len returns the number of ids covered by the map.
func (m *Map) Len() int {
	return len(m.idToRank)
}
