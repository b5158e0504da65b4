package ledgerfile

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// ErrLocked indicates another run currently holds the ledger lock.
var ErrLocked = errors.New("ledger lock held by another run")

// AcquireLock takes the single-writer lock for the persisted ledgers.
// Runs against the same ledger files must be serialized; the lock file is
// created exclusively and holds the owner's pid for diagnostics.
// The returned release function removes the lock.
func AcquireLock(path string) (func(), error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create lock dir: %w", err)
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		if os.IsExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrLocked, path)
		}
		return nil, fmt.Errorf("create lock file: %w", err)
	}

	fmt.Fprintf(f, "%d\n", os.Getpid())
	f.Close()

	return func() { os.Remove(path) }, nil
}
