// Package byteviz implements the byte-to-visible-character codec used by
// byte-level BPE tokenizers: a fixed bijection between the 256 byte values
// and a set of printable Unicode code points, so that BPE merge rules can be
// learned and applied over ordinary (printable) strings while still being
// able to represent every possible byte.
package byteviz

import "strings"

// Codec is a bijection between byte values 0..255 and a fixed set of 256
// printable BMP code points. Bytes that are already printable and safe in
// UTF-8 map to themselves; the rest map into an unused printable region,
// following the standard GPT-2 scheme.
type Codec struct {
	byteToChar [256]rune
	charToByte map[rune]byte
	strings    map[rune]string
}

// New builds the standard GPT-2 byte<->visible-char codec.
func New() *Codec {
	bs := make([]int, 0, 256)
	for i := int('!'); i <= int('~'); i++ {
		bs = append(bs, i)
	}
	for i := int('¡'); i <= int('¬'); i++ {
		bs = append(bs, i)
	}
	for i := int('®'); i <= int('ÿ'); i++ {
		bs = append(bs, i)
	}

	cs := make([]int, len(bs))
	copy(cs, bs)

	present := make(map[int]bool, len(bs))
	for _, b := range bs {
		present[b] = true
	}

	n := 0
	for b := 0; b < 256; b++ {
		if present[b] {
			continue
		}
		bs = append(bs, b)
		cs = append(cs, 256+n)
		n++
	}

	c := &Codec{
		charToByte: make(map[rune]byte, 256),
		strings:    make(map[rune]string, 256),
	}
	for i, b := range bs {
		r := rune(cs[i])
		c.byteToChar[byte(b)] = r
		c.charToByte[r] = byte(b)
		c.strings[r] = string(r)
	}
	return c
}

// ByteToChar maps a byte value to its visible code point.
func (c *Codec) ByteToChar(b byte) rune {
	return c.byteToChar[b]
}

// CharToByte maps a visible code point back to its byte value. ok is false
// for any code point outside the 256-entry alphabet.
func (c *Codec) CharToByte(r rune) (byte, bool) {
	b, ok := c.charToByte[r]
	return b, ok
}

// CharToString returns the (cached) single-rune string for a visible code
// point produced by this codec, avoiding a fresh allocation per call on the
// hot path.
func (c *Codec) CharToString(r rune) string {
	if s, ok := c.strings[r]; ok {
		return s
	}
	return string(r)
}

// Mapping is the result of encoding text into byte-visible form: Chars holds
// one visible code point per source byte, and Index holds, for each entry in
// Chars, the byte offset in the original text that produced it.
type Mapping struct {
	Chars []rune
	Index []int
}

// EncodeUTF8WithMapping converts text into its byte-visible representation,
// one visible character per UTF-8 byte of text, recording for each output
// character the byte index in text it came from. Go strings are UTF-8 byte
// sequences, so a "code unit" here is a byte: unlike UTF-16-based hosts,
// encoding a single rune never produces two output characters that must
// share a source index, since each source byte already has a distinct,
// addressable position in text.
func (c *Codec) EncodeUTF8WithMapping(text string) Mapping {
	data := []byte(text)
	m := Mapping{
		Chars: make([]rune, len(data)),
		Index: make([]int, len(data)),
	}
	for i, b := range data {
		m.Chars[i] = c.byteToChar[b]
		m.Index[i] = i
	}
	return m
}

// DecodeVisibleString inverts a visible-char token back into raw bytes.
// Code points outside the 256-entry alphabet are passed through as their
// own UTF-8 encoding, matching the decoder's "non-codec characters... are
// encoded as their UTF-8 bytes verbatim" contract.
func (c *Codec) DecodeVisibleString(token string) []byte {
	out := make([]byte, 0, len(token))
	for _, r := range token {
		if b, ok := c.charToByte[r]; ok {
			out = append(out, b)
			continue
		}
		var sb strings.Builder
		sb.WriteRune(r)
		out = append(out, sb.String()...)
	}
	return out
}
