// Package loader reads 6502 program images from the filesystem.
package loader

import (
	"os"

	"github.com/pkg/errors"
)

// Load reads the file at path and returns its raw bytes. On failure it
// returns a single wrapped error kind ("could not open source"); the
// underlying OS error remains inspectable via errors.Cause. Load never
// touches any mem.Memory — the caller is responsible for feeding the
// returned bytes to Memory.LoadImage only once Load has succeeded.
func Load(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "could not open source")
	}
	return data, nil
}
