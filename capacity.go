package bpe

// CountTokens returns the number of tokens text would encode to under the
// given flags.
func (t *Tokenizer) CountTokens(text string, flags *EncodeFlags) int {
	return len(t.Encode(text, flags))
}

// EncodeToIDsBounded encodes text and returns a prefix of EncodeToIDs
// containing at most max ids, plus the length of the original text that
// prefix actually consumed. max must be positive.
func (t *Tokenizer) EncodeToIDsBounded(text string, max int, flags *EncodeFlags) ([]int32, int, error) {
	if max <= 0 {
		return nil, 0, newConfigError("max", max, ErrInvalidArgument)
	}
	tokens := t.Encode(text, flags)
	bounded, _ := boundary(tokens, max)
	ids := make([]int32, len(bounded))
	for i, tok := range bounded {
		ids[i] = tok.ID
	}
	return ids, textLengthConsumed(bounded, tokens, len(text)), nil
}

// IndexOfTokenCount reports how much of text (in bytes) and how many tokens
// are consumed by the first max tokens of an unbounded encode. textLength
// equals len(text) exactly when CountTokens(text) <= max.
func (t *Tokenizer) IndexOfTokenCount(text string, max int, flags *EncodeFlags) (textLength int, tokenCount int, err error) {
	if max <= 0 {
		return 0, 0, newConfigError("max", max, ErrInvalidArgument)
	}
	tokens := t.Encode(text, flags)
	bounded, _ := boundary(tokens, max)
	return textLengthConsumed(bounded, tokens, len(text)), len(bounded), nil
}

// LastIndexOfTokenCount reports the byte index into text at which a
// trailing run of at most max tokens begins, and how many tokens that run
// contains, without ever splitting a multi-byte code point across the cut.
func (t *Tokenizer) LastIndexOfTokenCount(text string, max int, flags *EncodeFlags) (textIndex int, tokenCount int, err error) {
	if max <= 0 {
		return 0, 0, newConfigError("max", max, ErrInvalidArgument)
	}
	tokens := t.Encode(text, flags)
	if max >= len(tokens) {
		return 0, len(tokens), nil
	}

	k := len(tokens) - max
	for k > 0 && k < len(tokens) && tokens[k-1].Offset.Index == tokens[k].Offset.Index {
		k++
	}
	if k >= len(tokens) {
		return len(text), 0, nil
	}
	return tokens[k].Offset.Index, len(tokens) - k, nil
}

// boundary returns the longest prefix of tokens of length <= max that never
// splits a shared source offset.index across the cut, per the engine's
// truncation rule: tokens k and k+1 sharing an offset.index belong to the
// same code point and must be included or excluded together.
func boundary(tokens []Token, max int) ([]Token, int) {
	if max >= len(tokens) {
		return tokens, len(tokens)
	}
	k := max
	for k > 0 && tokens[k-1].Offset.Index == tokens[k].Offset.Index {
		k--
	}
	return tokens[:k], k
}

// textLengthConsumed returns the byte offset reached by a truncated prefix:
// the start of the first excluded token, or the full text length if nothing
// was excluded.
func textLengthConsumed(bounded, full []Token, textLen int) int {
	if len(bounded) == len(full) {
		return textLen
	}
	return full[len(bounded)].Offset.Index
}
