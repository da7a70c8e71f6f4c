// Package tokenizer turns raw text into documents the word-ids adapter can
// consume, using OpenAI BPE tokenizers via pkoukk/tiktoken-go.
package tokenizer

import (
	"fmt"
	"strings"

	"github.com/pkoukk/tiktoken-go"

	"github.com/staticvec-ml/staticvec/internal/nn"
	"github.com/staticvec-ml/staticvec/internal/vectors"
)

const (
	// EncodingCL100kBase is the encoding used by GPT-4 era models.
	EncodingCL100kBase = "cl100k_base"
	// EncodingP50kBase is the encoding used by GPT-3 era models.
	EncodingP50kBase = "p50k_base"
)

// TikToken wraps the pkoukk/tiktoken-go library for OpenAI BPE tokenizers.
type TikToken struct {
	encoding *tiktoken.Tiktoken
	name     string
}

// NewTikToken creates a new TikToken tokenizer with the specified encoding.
//
// Supported encodings: "cl100k_base" (GPT-4), "p50k_base" (GPT-3).
func NewTikToken(encodingName string) (*TikToken, error) {
	encoding, err := tiktoken.GetEncoding(encodingName)
	if err != nil {
		return nil, fmt.Errorf("failed to load tiktoken encoding %q: %w", encodingName, err)
	}

	return &TikToken{
		encoding: encoding,
		name:     encodingName,
	}, nil
}

// NewTikTokenForModel creates a TikToken tokenizer for a specific model.
//
// Example models: "gpt-4", "gpt-3.5-turbo".
func NewTikTokenForModel(modelName string) (*TikToken, error) {
	encoding, err := tiktoken.EncodingForModel(modelName)
	if err != nil {
		return nil, fmt.Errorf("failed to load tiktoken for model %q: %w", modelName, err)
	}

	return &TikToken{
		encoding: encoding,
		name:     modelName,
	}, nil
}

// Name returns the encoding or model name this tokenizer was created with.
func (t *TikToken) Name() string {
	return t.name
}

// Encode converts text to BPE token ids.
func (t *TikToken) Encode(text string) []int {
	return t.encoding.Encode(text, nil, nil)
}

// Decode converts BPE token ids back to text.
func (t *TikToken) Decode(ids []int) string {
	return t.encoding.Decode(ids)
}

// CountTokens returns the number of BPE tokens in the text.
func (t *TikToken) CountTokens(text string) int {
	return len(t.encoding.Encode(text, nil, nil))
}

// Doc tokenizes one text into a document whose tokens carry embedding-table
// row ids.
//
// Each BPE token's surface form is looked up in the table vocabulary to get
// its LexID; tokens absent from the table keep LexID 0 and fall back to
// their Orth id. Orth is the BPE id offset by one so id 0 stays the padding
// sentinel.
func (t *TikToken) Doc(text string, table *vectors.Table) nn.Doc {
	ids := t.encoding.Encode(text, nil, nil)
	doc := make(nn.Doc, len(ids))
	for i, id := range ids {
		word := t.encoding.Decode([]int{id})
		tok := nn.Token{
			Text: word,
			//nolint:gosec // G115: BPE ids are non-negative
			Orth: uint64(id) + 1,
		}
		// BPE surface forms carry a leading space for word-initial tokens;
		// retry trimmed when the raw form misses.
		if row, ok := table.RowID(word); ok {
			tok.LexID = row
		} else if row, ok := table.RowID(strings.TrimSpace(word)); ok {
			tok.LexID = row
		}
		doc[i] = tok
	}
	return doc
}

// Docs tokenizes a batch of texts.
func (t *TikToken) Docs(texts []string, table *vectors.Table) []nn.Doc {
	docs := make([]nn.Doc, len(texts))
	for i, text := range texts {
		docs[i] = t.Doc(text, table)
	}
	return docs
}
