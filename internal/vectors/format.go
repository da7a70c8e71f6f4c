package vectors

import (
	"bufio"
	"bytes"
	"crypto/sha256"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"
)

// Native binary format constants.
const (
	magicBytes    = "SVEC"
	formatVersion = 1
	checksumSize  = 32 // SHA-256
)

// Sentinel errors for the native binary format.
var (
	ErrBadMagic           = errors.New("vectors: not a SVEC file (bad magic)")
	ErrUnsupportedVersion = errors.New("vectors: unsupported format version")
	ErrChecksumMismatch   = errors.New("vectors: checksum mismatch, file corrupted")
)

// ReadText parses a word2vec-style text table:
//
//	<rows> <width>
//	<word> <v1> <v2> ... <vwidth>
//	...
//
// The word column populates the table vocabulary; row ids are assigned in
// file order starting at 0.
func ReadText(r io.Reader) (*Table, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 1024*1024), 1024*1024)

	if !scanner.Scan() {
		return nil, fmt.Errorf("vectors: empty input")
	}
	header := strings.Fields(scanner.Text())
	if len(header) != 2 {
		return nil, fmt.Errorf("vectors: malformed header %q, want \"<rows> <width>\"", scanner.Text())
	}
	rows, err := strconv.Atoi(header[0])
	if err != nil {
		return nil, fmt.Errorf("vectors: bad row count: %w", err)
	}
	width, err := strconv.Atoi(header[1])
	if err != nil {
		return nil, fmt.Errorf("vectors: bad width: %w", err)
	}
	if rows < 0 || width < 0 {
		return nil, fmt.Errorf("vectors: negative dimension in header %q", scanner.Text())
	}

	data := make([]float32, 0, rows*width)
	vocab := make(map[string]uint64, rows)
	row := 0
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) != width+1 {
			return nil, fmt.Errorf("vectors: row %d has %d values, want %d", row, len(fields)-1, width)
		}
		vocab[fields[0]] = uint64(row)
		for _, f := range fields[1:] {
			v, err := strconv.ParseFloat(f, 32)
			if err != nil {
				return nil, fmt.Errorf("vectors: row %d: %w", row, err)
			}
			data = append(data, float32(v))
		}
		row++
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("vectors: %w", err)
	}
	if row != rows {
		return nil, fmt.Errorf("vectors: header promised %d rows, got %d", rows, row)
	}

	table, err := FromSlice(data, rows, width)
	if err != nil {
		return nil, err
	}
	table.SetVocab(vocab)
	return table, nil
}

// ReadTextFile loads a word2vec-style text table from disk.
func ReadTextFile(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("vectors: %w", err)
	}
	defer f.Close()
	return ReadText(f)
}

// WriteBinary writes a table in the native SVEC binary format:
//
//	magic "SVEC" | version u32 | rows u64 | width u64 |
//	vocab count u32 | entries (word len u32, word bytes, row u64) |
//	payload float32 LE | SHA-256 of everything before it
//
// Little-endian throughout.
func WriteBinary(w io.Writer, table *Table) error {
	var buf bytes.Buffer

	buf.WriteString(magicBytes)
	//nolint:errcheck // bytes.Buffer writes cannot fail
	binary.Write(&buf, binary.LittleEndian, uint32(formatVersion))
	//nolint:gosec,errcheck // G115: dims are non-negative
	binary.Write(&buf, binary.LittleEndian, uint64(table.Rows()))
	//nolint:gosec,errcheck // G115: dims are non-negative
	binary.Write(&buf, binary.LittleEndian, uint64(table.Width()))

	// Serialize vocab entries in sorted word order so identical tables
	// produce byte-identical files and checksums.
	words := make([]string, 0, len(table.vocab))
	for word := range table.vocab {
		words = append(words, word)
	}
	sort.Strings(words)

	//nolint:gosec,errcheck // G115: vocab size is non-negative
	binary.Write(&buf, binary.LittleEndian, uint32(len(words)))
	for _, word := range words {
		//nolint:gosec,errcheck // G115: word length is non-negative
		binary.Write(&buf, binary.LittleEndian, uint32(len(word)))
		buf.WriteString(word)
		//nolint:errcheck // bytes.Buffer writes cannot fail
		binary.Write(&buf, binary.LittleEndian, table.vocab[word])
	}

	//nolint:errcheck // bytes.Buffer writes cannot fail
	binary.Write(&buf, binary.LittleEndian, table.data.AsFloat32())

	sum := sha256.Sum256(buf.Bytes())
	buf.Write(sum[:])

	_, err := w.Write(buf.Bytes())
	if err != nil {
		return fmt.Errorf("vectors: %w", err)
	}
	return nil
}

// ReadBinary reads a table in the native SVEC binary format, validating the
// trailing SHA-256 checksum.
func ReadBinary(r io.Reader) (*Table, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("vectors: %w", err)
	}
	if len(raw) < len(magicBytes)+4+checksumSize {
		return nil, ErrBadMagic
	}

	payload, stored := raw[:len(raw)-checksumSize], raw[len(raw)-checksumSize:]
	sum := sha256.Sum256(payload)
	if !bytes.Equal(sum[:], stored) {
		return nil, ErrChecksumMismatch
	}

	buf := bytes.NewReader(payload)

	magic := make([]byte, len(magicBytes))
	if _, err := io.ReadFull(buf, magic); err != nil || string(magic) != magicBytes {
		return nil, ErrBadMagic
	}

	var version uint32
	if err := binary.Read(buf, binary.LittleEndian, &version); err != nil {
		return nil, fmt.Errorf("vectors: %w", err)
	}
	if version != formatVersion {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedVersion, version)
	}

	var rows, width uint64
	if err := binary.Read(buf, binary.LittleEndian, &rows); err != nil {
		return nil, fmt.Errorf("vectors: %w", err)
	}
	if err := binary.Read(buf, binary.LittleEndian, &width); err != nil {
		return nil, fmt.Errorf("vectors: %w", err)
	}

	var vocabCount uint32
	if err := binary.Read(buf, binary.LittleEndian, &vocabCount); err != nil {
		return nil, fmt.Errorf("vectors: %w", err)
	}
	vocab := make(map[string]uint64, vocabCount)
	for i := uint32(0); i < vocabCount; i++ {
		var wordLen uint32
		if err := binary.Read(buf, binary.LittleEndian, &wordLen); err != nil {
			return nil, fmt.Errorf("vectors: %w", err)
		}
		word := make([]byte, wordLen)
		if _, err := io.ReadFull(buf, word); err != nil {
			return nil, fmt.Errorf("vectors: %w", err)
		}
		var row uint64
		if err := binary.Read(buf, binary.LittleEndian, &row); err != nil {
			return nil, fmt.Errorf("vectors: %w", err)
		}
		vocab[string(word)] = row
	}

	// Dims come from the file; bound them against the remaining payload
	// before trusting them with an allocation.
	count := rows * width
	if width != 0 && count/width != rows {
		return nil, fmt.Errorf("vectors: dimensions %d x %d overflow", rows, width)
	}
	if count > uint64(buf.Len())/4 {
		return nil, fmt.Errorf("vectors: dimensions %d x %d exceed payload size %d", rows, width, buf.Len())
	}

	data := make([]float32, count)
	if err := binary.Read(buf, binary.LittleEndian, data); err != nil {
		return nil, fmt.Errorf("vectors: %w", err)
	}

	table, err := FromSlice(data, int(rows), int(width))
	if err != nil {
		return nil, err
	}
	if len(vocab) > 0 {
		table.SetVocab(vocab)
	}
	return table, nil
}

// ReadBinaryFile loads a native SVEC table from disk.
func ReadBinaryFile(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("vectors: %w", err)
	}
	defer f.Close()
	return ReadBinary(f)
}

// WriteBinaryFile writes a native SVEC table to disk.
func WriteBinaryFile(path string, table *Table) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("vectors: %w", err)
	}
	defer f.Close()
	return WriteBinary(f, table)
}
