package vectors

import (
	"bytes"
	"crypto/sha256"
	"encoding/binary"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadText(t *testing.T) {
	input := `3 2
the 0.1 0.2
cat 0.3 0.4
sat -1.5 2.25
`
	table, err := ReadText(strings.NewReader(input))
	require.NoError(t, err)

	assert.Equal(t, 3, table.Rows())
	assert.Equal(t, 2, table.Width())
	assert.Equal(t, 3, table.VocabSize())

	id, ok := table.RowID("cat")
	require.True(t, ok)
	assert.Equal(t, uint64(1), id)

	_, ok = table.RowID("dog")
	assert.False(t, ok)

	assert.Equal(t, []float32{0.1, 0.2, 0.3, 0.4, -1.5, 2.25}, table.Raw().AsFloat32())
}

func TestReadText_Malformed(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"empty", ""},
		{"bad header", "3\n"},
		{"non-numeric header", "a b\n"},
		{"negative header", "-3 2\n"},
		{"negative width", "1 -2\nthe 0.1 0.2\n"},
		{"short row", "1 3\nthe 0.1 0.2\n"},
		{"row count mismatch", "2 2\nthe 0.1 0.2\n"},
		{"bad value", "1 2\nthe 0.1 x\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadText(strings.NewReader(tt.input))
			assert.Error(t, err)
		})
	}
}

func TestBinaryRoundTrip(t *testing.T) {
	table, err := FromSlice([]float32{1, 2, 3, 4, 5, 6}, 3, 2)
	require.NoError(t, err)
	table.SetVocab(map[string]uint64{"the": 0, "cat": 1, "sat": 2})

	var buf bytes.Buffer
	require.NoError(t, WriteBinary(&buf, table))

	got, err := ReadBinary(&buf)
	require.NoError(t, err)

	assert.Equal(t, 3, got.Rows())
	assert.Equal(t, 2, got.Width())
	assert.Equal(t, table.Raw().AsFloat32(), got.Raw().AsFloat32())

	id, ok := got.RowID("sat")
	require.True(t, ok)
	assert.Equal(t, uint64(2), id)
}

func TestBinaryRoundTrip_NoVocab(t *testing.T) {
	table, err := FromSlice([]float32{1, 2}, 1, 2)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, WriteBinary(&buf, table))

	got, err := ReadBinary(&buf)
	require.NoError(t, err)
	assert.Equal(t, 0, got.VocabSize())
}

func TestReadBinary_Corrupted(t *testing.T) {
	table, err := FromSlice([]float32{1, 2, 3, 4}, 2, 2)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, WriteBinary(&buf, table))

	// Flip one payload byte; the trailing checksum no longer matches.
	raw := buf.Bytes()
	raw[len(raw)/2] ^= 0xff

	_, err = ReadBinary(bytes.NewReader(raw))
	assert.ErrorIs(t, err, ErrChecksumMismatch)
}

func TestReadBinary_BadMagic(t *testing.T) {
	_, err := ReadBinary(bytes.NewReader([]byte("not a table")))
	assert.ErrorIs(t, err, ErrBadMagic)
}

// Identical tables must serialize to byte-identical files regardless of map
// iteration order.
func TestWriteBinary_Deterministic(t *testing.T) {
	table, err := FromSlice([]float32{1, 2, 3, 4, 5, 6}, 3, 2)
	require.NoError(t, err)
	table.SetVocab(map[string]uint64{"the": 0, "cat": 1, "sat": 2, "on": 0, "mat": 1})

	var first bytes.Buffer
	require.NoError(t, WriteBinary(&first, table))

	for i := 0; i < 10; i++ {
		var again bytes.Buffer
		require.NoError(t, WriteBinary(&again, table))
		require.Equal(t, first.Bytes(), again.Bytes())
	}
}

// A file may carry a valid checksum but lie about its dimensions; the reader
// must reject dims that do not fit the payload instead of allocating for
// them.
func TestReadBinary_OversizedDims(t *testing.T) {
	var payload bytes.Buffer
	payload.WriteString("SVEC")
	require.NoError(t, binary.Write(&payload, binary.LittleEndian, uint32(1)))
	require.NoError(t, binary.Write(&payload, binary.LittleEndian, uint64(1<<40))) // rows
	require.NoError(t, binary.Write(&payload, binary.LittleEndian, uint64(1<<40))) // width
	require.NoError(t, binary.Write(&payload, binary.LittleEndian, uint32(0)))     // vocab count
	sum := sha256.Sum256(payload.Bytes())
	payload.Write(sum[:])

	_, err := ReadBinary(bytes.NewReader(payload.Bytes()))
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrChecksumMismatch)
}

func TestBinaryFileRoundTrip(t *testing.T) {
	table, err := FromSlice([]float32{1, 2, 3, 4}, 2, 2)
	require.NoError(t, err)

	path := t.TempDir() + "/vectors.svec"
	require.NoError(t, WriteBinaryFile(path, table))

	got, err := ReadBinaryFile(path)
	require.NoError(t, err)
	assert.Equal(t, table.Raw().AsFloat32(), got.Raw().AsFloat32())
}
