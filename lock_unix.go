//go:build unix

package advlock

import (
	"os"

	"golang.org/x/sys/unix"
)

// lockFile takes a blocking exclusive flock. The lock belongs to the open
// file description, so closing f releases it, as does process exit.
func lockFile(f *os.File) error {
	for {
		err := unix.Flock(int(f.Fd()), unix.LOCK_EX)
		if err != unix.EINTR {
			return err
		}
	}
}

// releaseFile drops the lock by closing the descriptor.
func releaseFile(f *os.File) error {
	return f.Close()
}
