// Package wordenc implements the core word-level BPE merge loop: turning one
// pre-tokenized word span into an ordered list of sub-tokens, via a doubly
// linked list of symbol nodes and a priority queue of candidate merges.
package wordenc

import (
	"container/heap"

	"github.com/tokenlab/gobpe/internal/byteviz"
	"github.com/tokenlab/gobpe/internal/merges"
	"github.com/tokenlab/gobpe/internal/token"
	"github.com/tokenlab/gobpe/internal/vocab"
)

// Encoder applies byte-level BPE to a single word using a fixed codec,
// vocabulary, and merge table.
type Encoder struct {
	codec  *byteviz.Codec
	vocab  *vocab.Store
	merges *merges.Table

	hasUnk   bool
	unkID    int32
	unkValue string
}

// New builds a word encoder. If hasUnk is false, pieces absent from the
// vocabulary are silently dropped rather than mapped to an UNK id.
func New(codec *byteviz.Codec, v *vocab.Store, m *merges.Table, unkID int32, hasUnk bool) *Encoder {
	e := &Encoder{codec: codec, vocab: v, merges: m, hasUnk: hasUnk, unkID: unkID}
	if hasUnk {
		if s, ok := v.Token(unkID); ok {
			e.unkValue = s
		}
	}
	return e
}

// symbol is a node in the ephemeral per-word linked list. A pieceLength of
// 0 marks a node that has been absorbed into its left neighbor; such nodes
// are also spliced out of the prev/next chain, so a plain list walk never
// observes them.
type symbol struct {
	prev, next  *symbol
	piece       string
	pieceIndex  int // byte offset into the word
	pieceLength int // byte length within the word
}

// candidate is a priority-queue entry for a possible merge of (left, left.next).
type candidate struct {
	left        *symbol
	rank        int
	totalLength int // piece length of left + its right neighbor at push time
}

type mergeQueue []*candidate

func (q mergeQueue) Len() int { return len(q) }
func (q mergeQueue) Less(i, j int) bool {
	if q[i].rank != q[j].rank {
		return q[i].rank < q[j].rank
	}
	// Deterministic left-to-right tie-break among equal ranks.
	return q[i].left.pieceIndex < q[j].left.pieceIndex
}
func (q mergeQueue) Swap(i, j int)      { q[i], q[j] = q[j], q[i] }
func (q *mergeQueue) Push(x any)        { *q = append(*q, x.(*candidate)) }
func (q *mergeQueue) Pop() any {
	old := *q
	n := len(old)
	c := old[n-1]
	old[n-1] = nil
	*q = old[:n-1]
	return c
}

// EncodeWord runs the BPE merge loop over word and returns the resulting
// tokens with offsets relative to the start of word (callers rebase these
// into the original text). An empty word yields a nil slice.
func (e *Encoder) EncodeWord(word string) []token.Token {
	if word == "" {
		return nil
	}

	m := e.codec.EncodeUTF8WithMapping(word)
	n := len(m.Chars)
	if n == 0 {
		return nil
	}

	nodes := make([]*symbol, n)
	for i, r := range m.Chars {
		nodes[i] = &symbol{
			piece:       e.codec.CharToString(r),
			pieceIndex:  m.Index[i],
			pieceLength: 1,
		}
	}
	for i := 1; i < n; i++ {
		nodes[i-1].next = nodes[i]
		nodes[i].prev = nodes[i-1]
	}

	pq := &mergeQueue{}
	heap.Init(pq)

	addCandidate := func(left *symbol) {
		if left == nil || left.next == nil {
			return
		}
		rank, ok := e.merges.Rank(left.piece, left.next.piece)
		if !ok {
			return
		}
		heap.Push(pq, &candidate{
			left:        left,
			rank:        rank,
			totalLength: left.pieceLength + left.next.pieceLength,
		})
	}

	for i := 0; i < n-1; i++ {
		addCandidate(nodes[i])
	}

	for pq.Len() > 0 {
		c := heap.Pop(pq).(*candidate)
		left := c.left
		if left.pieceLength == 0 || left.next == nil || left.next.pieceLength == 0 {
			continue // an endpoint was already consumed by an earlier merge
		}
		if c.totalLength != left.pieceLength+left.next.pieceLength {
			continue // stale: left grew (or shrank) since this entry was queued
		}

		right := left.next
		left.piece += right.piece
		left.pieceLength += right.pieceLength
		right.pieceLength = 0
		left.next = right.next
		if right.next != nil {
			right.next.prev = left
		}
		// left.prev is left untouched, per the merge contract.

		if left.prev != nil {
			addCandidate(left.prev)
		}
		addCandidate(left)
	}

	var out []token.Token
	for cur := nodes[0]; cur != nil; cur = cur.next {
		id, ok := e.vocab.ID(cur.piece)
		value := cur.piece
		switch {
		case ok:
		case e.hasUnk:
			id = e.unkID
			if e.unkValue != "" {
				value = e.unkValue
			}
		default:
			continue // strict vocabulary, no UNK configured: drop the piece
		}
		out = append(out, token.Token{
			ID:    id,
			Value: value,
			Offset: token.Span{
				Index:  cur.pieceIndex,
				Length: cur.pieceLength,
			},
		})
	}
	return out
}
