package fsutil

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"
)

var ErrLocked = errors.New("file is locked by another process")

// LockPath is the sidecar lock file guarding path.
func LockPath(path string) string {
	return path + ".lock"
}

// WithLock runs fn while holding an exclusive lock on path's sidecar lock
// file. It polls until ctx is done; a cancelled wait returns ErrLocked.
// The parent directory of path is created first so the lock file can be.
func WithLock(ctx context.Context, path string, fn func() error) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create directory for %s: %w", path, err)
	}
	lockPath := LockPath(path)
	fl := flock.New(lockPath)

	locked, err := fl.TryLockContext(ctx, 50*time.Millisecond)
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return fmt.Errorf("%w: %s", ErrLocked, path)
		}
		return fmt.Errorf("acquire lock on %s: %w", lockPath, err)
	}
	if !locked {
		return fmt.Errorf("%w: %s", ErrLocked, path)
	}
	// The lock file stays behind: removing it would let a waiter holding
	// the old inode race a newcomer.
	defer fl.Unlock()

	return fn()
}

// WriteFileLocked is AtomicWriteFile under WithLock.
func WriteFileLocked(ctx context.Context, path string, data []byte, perm os.FileMode) error {
	return WithLock(ctx, path, func() error {
		return AtomicWriteFile(path, data, perm)
	})
}
