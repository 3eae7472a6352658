// pattern: Imperative Shell
package instance

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
)

const (
	lockFileName = "splitkit.lock"
	addrFileName = "splitkit.addr"
)

// ErrAlreadyRunning is returned by Lock when another process holds the
// instance lock.
var ErrAlreadyRunning = errors.New("another splitkit instance is already running")

// Lock acquires the exclusive instance lock in dataDir. The caller must
// defer Cleanup.
func Lock(dataDir string) (*flock.Flock, error) {
	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}
	fl := flock.New(filepath.Join(dataDir, lockFileName))
	locked, err := fl.TryLock()
	if err != nil {
		return nil, fmt.Errorf("failed to acquire lock: %w", err)
	}
	if !locked {
		return nil, ErrAlreadyRunning
	}
	return fl, nil
}

// WriteAddr records the touch bridge listener address for discovery.
func WriteAddr(dataDir, addr string) error {
	return os.WriteFile(filepath.Join(dataDir, addrFileName), []byte(addr), 0600)
}

// Cleanup removes the address file and releases the lock.
func Cleanup(dataDir string, fl *flock.Flock) {
	_ = os.Remove(filepath.Join(dataDir, addrFileName))
	if fl != nil {
		_ = fl.Unlock()
	}
}

// RemoveStale deletes an address file left behind by a process that died
// without cleaning up. It reports whether anything was removed and does
// nothing while an instance still holds the lock.
func RemoveStale(dataDir string) (bool, error) {
	fl := flock.New(filepath.Join(dataDir, lockFileName))
	locked, err := fl.TryLock()
	if err != nil {
		return false, fmt.Errorf("failed to check lock: %w", err)
	}
	if !locked {
		return false, ErrAlreadyRunning
	}
	defer func() { _ = fl.Unlock() }()

	err = os.Remove(filepath.Join(dataDir, addrFileName))
	switch {
	case err == nil:
		return true, nil
	case os.IsNotExist(err):
		return false, nil
	default:
		return false, err
	}
}
