package vm

import (
	"encoding/binary"
	"io"
	"os"
)

// Load reads r in full and interprets it as a little-endian stream of
// sixteen-bit words, appending every complete word to Memory in order
// starting at address 0. The file has no header and is not validated; an
// all-zero or truncated image loads as-is, and a trailing odd byte (which
// cannot form a complete word) is silently ignored.
func (m *Machine) Load(r io.Reader) error {
	raw, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	words := make([]Word, len(raw)/2)
	for i := range words {
		words[i] = Word(binary.LittleEndian.Uint16(raw[i*2 : i*2+2]))
	}
	m.Memory = words
	m.Running = true
	return nil
}

// LoadFile opens path and loads it as a program image, wrapping any failure
// in an IOError that carries the path.
func (m *Machine) LoadFile(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return &IOError{Path: path, Err: err}
	}
	defer f.Close()
	if err := m.Load(f); err != nil {
		return &IOError{Path: path, Err: err}
	}
	return nil
}
