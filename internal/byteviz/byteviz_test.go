package byteviz

import "testing"

func TestBijection(t *testing.T) {
	c := New()
	seen := make(map[rune]bool, 256)
	for b := 0; b < 256; b++ {
		r := c.ByteToChar(byte(b))
		if seen[r] {
			t.Fatalf("byte %d maps to a code point already used", b)
		}
		seen[r] = true

		back, ok := c.CharToByte(r)
		if !ok || back != byte(b) {
			t.Fatalf("round trip failed for byte %d: got %d, ok=%v", b, back, ok)
		}
	}
	if len(seen) != 256 {
		t.Fatalf("expected 256 distinct code points, got %d", len(seen))
	}
}

func TestEncodeUTF8WithMapping(t *testing.T) {
	c := New()
	m := c.EncodeUTF8WithMapping("Ġthe")
	if len(m.Chars) != len("Ġthe") {
		t.Fatalf("expected %d chars, got %d", len("Ġthe"), len(m.Chars))
	}
	for i, idx := range m.Index {
		if idx != i {
			t.Fatalf("index map not identity at %d: got %d", i, idx)
		}
	}
}

func TestDecodeVisibleStringRoundTrip(t *testing.T) {
	c := New()
	text := "Hello, 世界! 😀"
	m := c.EncodeUTF8WithMapping(text)

	var visible []rune
	visible = append(visible, m.Chars...)

	decoded := c.DecodeVisibleString(string(visible))
	if string(decoded) != text {
		t.Fatalf("round trip mismatch: got %q, want %q", string(decoded), text)
	}
}

func TestDecodeVisibleStringPassesThroughNonCodecRunes(t *testing.T) {
	c := New()
	// 'A' happens to be in the printable ASCII range and is part of the
	// alphabet; pick a rune guaranteed not to be a code point this codec
	// emits, to exercise the verbatim-UTF-8 fallback.
	out := c.DecodeVisibleString("あ") // U+3042 HIRAGANA LETTER A
	if string(out) != "あ" {
		t.Fatalf("expected passthrough of non-codec rune, got %q", out)
	}
}
