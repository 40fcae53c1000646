package merges

import (
	"strings"
	"testing"
)

func TestFromReaderAssignsIncreasingRanks(t *testing.T) {
	src := "#version: 0.2\nĠ t\nĠt he\na b\n"
	table, err := FromReader(strings.NewReader(src))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if table.Len() != 3 {
		t.Fatalf("expected 3 rules, got %d", table.Len())
	}

	r, ok := table.Rank("Ġ", "t")
	if !ok || r != 1 {
		t.Fatalf("expected rank 1, got %d (ok=%v)", r, ok)
	}
	r, ok = table.Rank("Ġt", "he")
	if !ok || r != 2 {
		t.Fatalf("expected rank 2, got %d (ok=%v)", r, ok)
	}
	r, ok = table.Rank("a", "b")
	if !ok || r != 3 {
		t.Fatalf("expected rank 3, got %d (ok=%v)", r, ok)
	}
}

func TestFromReaderSkipsTrailingBlankLine(t *testing.T) {
	src := "#version: 0.2\na b\n\n"
	table, err := FromReader(strings.NewReader(src))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if table.Len() != 1 {
		t.Fatalf("expected 1 rule, got %d", table.Len())
	}
}

func TestFromReaderRejectsMultipleSpaces(t *testing.T) {
	src := "#version: 0.2\na  b\n"
	if _, err := FromReader(strings.NewReader(src)); err == nil {
		t.Fatal("expected an error for a line with two spaces")
	}
}

func TestFromReaderRejectsNoSpace(t *testing.T) {
	src := "#version: 0.2\nab\n"
	if _, err := FromReader(strings.NewReader(src)); err == nil {
		t.Fatal("expected an error for a line with no space")
	}
}

func TestFromReaderRejectsEmptyHalf(t *testing.T) {
	src := "#version: 0.2\n b\n"
	if _, err := FromReader(strings.NewReader(src)); err == nil {
		t.Fatal("expected an error for a line with an empty half")
	}
}

func TestFromReaderRejectsInteriorBlankLine(t *testing.T) {
	src := "#version: 0.2\na b\n\nc d\n"
	if _, err := FromReader(strings.NewReader(src)); err == nil {
		t.Fatal("expected an error for a blank line that is not the trailing one")
	}
}
