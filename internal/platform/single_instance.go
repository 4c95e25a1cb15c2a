package platform

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
)

// ErrAlreadyRunning indicates another instance already holds the lock.
var ErrAlreadyRunning = errors.New("instance already running")

// InstanceGuard holds the single-instance lock.
type InstanceGuard struct {
	lock *flock.Flock
	path string
}

// AcquireSingleInstance takes an exclusive lock file for appName in the
// system temp directory.
func AcquireSingleInstance(appName string) (*InstanceGuard, error) {
	return AcquireSingleInstanceIn(os.TempDir(), appName)
}

// AcquireSingleInstanceIn takes an exclusive lock file for appName in dir.
func AcquireSingleInstanceIn(dir, appName string) (*InstanceGuard, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create lock directory: %w", err)
	}
	path := filepath.Join(dir, appName+".lock")
	lock := flock.New(path)
	ok, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire instance lock: %w", err)
	}
	if !ok {
		return nil, ErrAlreadyRunning
	}
	return &InstanceGuard{lock: lock, path: path}, nil
}

// Release frees the single instance lock.
func (guard *InstanceGuard) Release() error {
	if guard == nil || guard.lock == nil {
		return nil
	}
	return guard.lock.Unlock()
}

// Path returns the lock file path.
func (guard *InstanceGuard) Path() string {
	if guard == nil {
		return ""
	}
	return guard.path
}
