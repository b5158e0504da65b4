package ledgerfile

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
)

// ErrSaveFailed marks a persistence failure while writing a ledger.
// Callers treat it as fatal for the run and report a distinct exit status;
// read failures by contrast degrade to empty state.
var ErrSaveFailed = errors.New("ledger save failed")

// LoadJSON reads a persisted JSON document into v.
// A missing or unparsable file is not an error: the destination is left
// untouched (empty state) and the problem is logged. Only v itself being
// unusable is reported.
func LoadJSON(path string, v any, l *zap.Logger) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			l.Warn("Ledger file unreadable, starting from empty state",
				zap.String("path", path), zap.Error(err))
		}
		return nil
	}

	if len(data) == 0 {
		return nil
	}

	if err := json.Unmarshal(data, v); err != nil {
		l.Warn("Ledger file contains invalid JSON, starting from empty state",
			zap.String("path", path), zap.Error(err))
		return nil
	}

	return nil
}

// SaveJSON atomically writes v as an indented JSON document to path.
// The document is written to a temp file in the same directory and renamed
// into place so readers never observe a partial file.
func SaveJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "    ")
	if err != nil {
		return fmt.Errorf("%w: marshal %s: %v", ErrSaveFailed, path, err)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("%w: create dir %s: %v", ErrSaveFailed, dir, err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("%w: create temp file: %v", ErrSaveFailed, err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("%w: write %s: %v", ErrSaveFailed, tmpName, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("%w: close %s: %v", ErrSaveFailed, tmpName, err)
	}

	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("%w: rename to %s: %v", ErrSaveFailed, path, err)
	}

	return nil
}
