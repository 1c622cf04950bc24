//go:build !unix && !windows

package advlock

import (
	"errors"
	"os"
)

// No advisory locking primitive is available here; Lock always fails.
func lockFile(_ *os.File) error {
	return errors.ErrUnsupported
}

func releaseFile(f *os.File) error {
	return f.Close()
}
