//go:build windows

package advlock

import (
	"errors"
	"os"

	"golang.org/x/sys/windows"
)

// lockFile takes a blocking exclusive LockFileEx on the first byte of the
// marker. The region does not need to exist in the file.
func lockFile(f *os.File) error {
	var ol windows.Overlapped
	return windows.LockFileEx(windows.Handle(f.Fd()), windows.LOCKFILE_EXCLUSIVE_LOCK, 0, 1, 0, &ol)
}

// releaseFile unlocks explicitly before closing. Windows frees locks on
// close too, but only once the system gets round to it.
func releaseFile(f *os.File) error {
	var ol windows.Overlapped
	unlockErr := windows.UnlockFileEx(windows.Handle(f.Fd()), 0, 1, 0, &ol)
	return errors.Join(unlockErr, f.Close())
}
