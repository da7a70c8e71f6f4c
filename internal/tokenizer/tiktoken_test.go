package tokenizer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/staticvec-ml/staticvec/internal/vectors"
)

// newTestTokenizer loads cl100k_base, skipping when the BPE ranks cannot be
// fetched (tiktoken-go downloads them unless a local cache is configured).
func newTestTokenizer(t *testing.T) *TikToken {
	t.Helper()
	tok, err := NewTikToken(EncodingCL100kBase)
	if err != nil {
		t.Skipf("cl100k_base unavailable: %v", err)
	}
	return tok
}

func TestNewTikToken_InvalidEncoding(t *testing.T) {
	_, err := NewTikToken("no-such-encoding")
	assert.Error(t, err)
}

func TestEncodeDecode(t *testing.T) {
	tok := newTestTokenizer(t)

	text := "the cat sat on the mat"
	ids := tok.Encode(text)
	require.NotEmpty(t, ids)

	assert.Equal(t, text, tok.Decode(ids))
	assert.Equal(t, len(ids), tok.CountTokens(text))
	assert.Equal(t, EncodingCL100kBase, tok.Name())
}

func TestDoc(t *testing.T) {
	tok := newTestTokenizer(t)

	table, err := vectors.FromSlice(make([]float32, 3*2), 3, 2)
	require.NoError(t, err)
	table.SetVocab(map[string]uint64{"the": 0, "cat": 1, "sat": 2})

	doc := tok.Doc("the cat sat", table)
	require.NotEmpty(t, doc)

	for _, token := range doc {
		// Orth is the BPE id shifted by one; 0 is reserved for padding.
		assert.NotZero(t, token.Orth)
	}

	// "cat" appears mid-sentence, so its surface form is " cat"; the trimmed
	// lookup must still find it.
	var found bool
	for _, token := range doc {
		if token.Text == " cat" {
			found = true
			assert.Equal(t, uint64(1), token.LexID)
		}
	}
	assert.True(t, found, "expected a \" cat\" token in %v", doc)
}

func TestDoc_OOVKeepsOrth(t *testing.T) {
	tok := newTestTokenizer(t)

	table, err := vectors.FromSlice(make([]float32, 1*2), 1, 2)
	require.NoError(t, err)

	doc := tok.Doc("xylophone", table)
	require.NotEmpty(t, doc)
	for _, token := range doc {
		assert.Zero(t, token.LexID)
		assert.NotZero(t, token.Orth)
	}
}

func TestDocs(t *testing.T) {
	tok := newTestTokenizer(t)

	table, err := vectors.FromSlice(make([]float32, 1*2), 1, 2)
	require.NoError(t, err)

	docs := tok.Docs([]string{"one", "two two"}, table)
	require.Len(t, docs, 2)
	assert.NotEmpty(t, docs[0])
	assert.NotEmpty(t, docs[1])
}
