// Package merges loads and holds the ordered BPE merge-rank table: a map
// from an adjacent (left, right) token-string pair to the rank at which that
// pair should be merged, lower ranks merging first.
package merges

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// pairKey identifies a candidate merge by its two current piece strings.
type pairKey struct {
	left, right string
}

// Table is an ordered map from (left, right) string pairs to merge rank.
// Rank starts at 1 for the first rule in the file and increases by one per
// subsequent rule.
type Table struct {
	ranks map[pairKey]int
}

// New builds an empty table, useful for tests and for constructing one
// programmatically rather than from a file.
func New() *Table {
	return &Table{ranks: make(map[pairKey]int)}
}

// Add registers a merge rule; later calls for the same pair overwrite the
// rank, matching "last rule wins" semantics of a plain map build-up.
func (t *Table) Add(left, right string, rank int) {
	t.ranks[pairKey{left, right}] = rank
}

// Rank returns the merge rank for a (left, right) pair, and whether a rule
// exists for it at all.
func (t *Table) Rank(left, right string) (int, bool) {
	r, ok := t.ranks[pairKey{left, right}]
	return r, ok
}

// Len returns the number of merge rules loaded.
func (t *Table) Len() int {
	return len(t.ranks)
}

// FromFile parses a merges.txt: a skipped header line, followed by one
// "left right" rule per line separated by exactly one ASCII space. A
// trailing blank line is tolerated and skipped. Any other malformed line
// (zero or multiple spaces, or an empty half) aborts loading.
func FromFile(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("merges: read %s: %w", path, err)
	}
	defer f.Close()
	return FromReader(f)
}

// FromReader is FromFile without the file I/O, for tests.
func FromReader(r io.Reader) (*Table, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var lines []string
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("merges: read error: %w", err)
	}
	if len(lines) == 0 {
		return New(), nil
	}

	// Header line is always skipped.
	lines = lines[1:]
	// A single trailing blank line is tolerated and skipped; any other
	// blank line is a format error like any other malformed rule.
	if len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}

	t := New()
	for i, line := range lines {
		lineNo := i + 2 // +1 for the skipped header, +1 for 1-based lines
		parts := strings.Split(line, " ")
		if len(parts) != 2 {
			return nil, fmt.Errorf("merges: invalid format at line %d: expected exactly one space, got %q", lineNo, line)
		}
		left, right := parts[0], parts[1]
		if left == "" || right == "" {
			return nil, fmt.Errorf("merges: invalid format at line %d: empty half in %q", lineNo, line)
		}
		t.Add(left, right, i+1)
	}
	return t, nil
}
