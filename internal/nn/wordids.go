package nn

// Token is the token-like object the word-ids adapter consumes: a surface
// form plus its lexical id (table row) and a raw-form id fallback.
type Token struct {
	Text  string
	LexID uint64 // embedding-table row; 0 when the word is not in the table
	Orth  uint64 // raw-form id, used when LexID is 0
}

// ID returns the id the adapter emits for this token: LexID when set,
// otherwise the Orth fallback.
func (t Token) ID() uint64 {
	if t.LexID != 0 {
		return t.LexID
	}
	return t.Orth
}

// Doc is an ordered sequence of tokens.
type Doc []Token

// WordIDs converts a batch of documents into fixed-format id sequences with
// boundary padding:
//
//	[0]*pad + [tok.LexID or tok.Orth for surviving tokens] + [0]*pad
//
// Tokens for which ignore returns true are dropped before padding, so each
// output sequence has length 2*pad + (surviving token count). The adapter
// has no trainable state and therefore no backward pass.
func WordIDs(docs []Doc, pad int, ignore func(Token) bool) [][]uint64 {
	seqs := make([][]uint64, len(docs))
	for i, doc := range docs {
		seq := make([]uint64, pad, len(doc)+2*pad)
		for _, tok := range doc {
			if ignore != nil && ignore(tok) {
				continue
			}
			seq = append(seq, tok.ID())
		}
		for j := 0; j < pad; j++ {
			seq = append(seq, 0)
		}
		seqs[i] = seq
	}
	return seqs
}

// FlattenIDs concatenates per-document sequences into the single flat id
// batch StaticVectors.BeginUpdate consumes.
func FlattenIDs(seqs [][]uint64) []uint64 {
	n := 0
	for _, seq := range seqs {
		n += len(seq)
	}
	flat := make([]uint64, 0, n)
	for _, seq := range seqs {
		flat = append(flat, seq...)
	}
	return flat
}
