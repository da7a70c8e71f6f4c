package nn_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/staticvec-ml/staticvec/internal/nn"
)

func TestTokenID(t *testing.T) {
	assert.Equal(t, uint64(5), nn.Token{LexID: 5, Orth: 9}.ID())
	assert.Equal(t, uint64(9), nn.Token{LexID: 0, Orth: 9}.ID())
	assert.Equal(t, uint64(0), nn.Token{}.ID())
}

func TestWordIDs(t *testing.T) {
	docs := []nn.Doc{
		{{Text: "the", LexID: 12}, {Text: "cat", LexID: 45}},
		{{Text: "zork", Orth: 7000}},
	}

	seqs := nn.WordIDs(docs, 2, nil)
	assert.Equal(t, [][]uint64{
		{0, 0, 12, 45, 0, 0},
		{0, 0, 7000, 0, 0},
	}, seqs)
}

func TestWordIDs_NoPadding(t *testing.T) {
	docs := []nn.Doc{{{LexID: 3}, {LexID: 4}}}
	assert.Equal(t, [][]uint64{{3, 4}}, nn.WordIDs(docs, 0, nil))
}

func TestWordIDs_Ignore(t *testing.T) {
	isPunct := func(tok nn.Token) bool { return tok.Text == "." }

	docs := []nn.Doc{
		{{Text: "hi", LexID: 1}, {Text: ".", LexID: 2}, {Text: "there", LexID: 3}},
	}

	seqs := nn.WordIDs(docs, 1, isPunct)
	assert.Equal(t, [][]uint64{{0, 1, 3, 0}}, seqs)
	// Length is 2*pad + surviving tokens.
	assert.Len(t, seqs[0], 2*1+2)
}

func TestWordIDs_EmptyDoc(t *testing.T) {
	seqs := nn.WordIDs([]nn.Doc{{}}, 3, nil)
	assert.Equal(t, [][]uint64{{0, 0, 0, 0, 0, 0}}, seqs)
}

func TestFlattenIDs(t *testing.T) {
	flat := nn.FlattenIDs([][]uint64{{0, 1}, {2}, {}, {3, 0}})
	assert.Equal(t, []uint64{0, 1, 2, 3, 0}, flat)

	assert.Empty(t, nn.FlattenIDs(nil))
}
