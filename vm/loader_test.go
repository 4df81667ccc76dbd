package vm

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadLittleEndianWords(t *testing.T) {
	m := &Machine{}
	raw := []byte{0x13, 0x00, 0x41, 0x00, 0x13, 0x00, 0x0a, 0x00, 0x00, 0x00}
	require.NoError(t, m.Load(bytes.NewReader(raw)))
	assert.Equal(t, []Word{19, 65, 19, 10, 0}, m.Memory)
}

func TestLoadIgnoresTrailingOddByte(t *testing.T) {
	m := &Machine{}
	raw := []byte{0x01, 0x00, 0xff}
	require.NoError(t, m.Load(bytes.NewReader(raw)))
	assert.Equal(t, []Word{1}, m.Memory)
}

func TestLoadEmptyFile(t *testing.T) {
	m := &Machine{}
	require.NoError(t, m.Load(bytes.NewReader(nil)))
	assert.Empty(t, m.Memory)
}

func TestLoadFileWrapsMissingFileInIOError(t *testing.T) {
	m := &Machine{}
	err := m.LoadFile("/nonexistent/path/to/image.bin")
	var ioErr *IOError
	require.ErrorAs(t, err, &ioErr)
	assert.Equal(t, "/nonexistent/path/to/image.bin", ioErr.Path)
}
