// Package dump writes full memory images to a writer or file.
package dump

import (
	"io"
	"os"

	"go6502/mem"
)

// Write copies the full 65,536-byte image of m to w.
func Write(w io.Writer, m *mem.Memory) error {
	img := m.Dump()
	_, err := w.Write(img[:])
	return err
}

// WriteFile is a convenience wrapper around Write that creates (or
// truncates) path and writes the image to it.
func WriteFile(path string, m *mem.Memory) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return Write(f, m)
}
