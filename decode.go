package bpe

// Decode maps an id sequence back to text. Added tokens are emitted as their
// strings; BOS/EOS/UNK strings are emitted only when ConsiderSpecialTokens
// is set. It is total: ids outside both the vocabulary and the added tokens
// are silently skipped rather than producing an error.
func (t *Tokenizer) Decode(ids []int32, flags *DecodeFlags) string {
	f := t.resolveDecodeFlags(flags)

	var buf []byte
	first := true
	for _, id := range ids {
		switch {
		case t.hasBOS && id == t.bosID:
			if f.ConsiderSpecialTokens {
				buf = append(buf, t.bosStr...)
			}
		case t.hasEOS && id == t.eosID:
			if f.ConsiderSpecialTokens {
				buf = append(buf, t.eosStr...)
			}
		case t.hasUNK && id == t.unkID:
			if f.ConsiderSpecialTokens {
				if s, ok := t.vocab.Token(id); ok {
					buf = append(buf, s...)
				}
			}
		default:
			if s, ok := t.added.Token(id); ok {
				decoded := []byte(s)
				if first && f.HasPrefixSpace && len(decoded) > 0 && decoded[0] == ' ' {
					decoded = decoded[1:]
				}
				buf = append(buf, decoded...)
				first = false
				continue
			}
			s, ok := t.vocab.Token(id)
			if !ok {
				continue // unknown id: skip, decoder never fails
			}
			decoded := t.codec.DecodeVisibleString(s)
			if first && f.HasPrefixSpace && len(decoded) > 0 && decoded[0] == ' ' {
				decoded = decoded[1:]
			}
			buf = append(buf, decoded...)
			first = false
		}
	}
	return string(buf)
}
