// Package ledgerfile handles the durable state of the reconciler.
//
// Both ledgers (loot history and soft reserves) live as JSON documents on
// disk and follow a load-merge-store lifecycle per run:
//
//   - Load: a missing, empty or corrupt document yields empty state. The
//     reconciler can always start over from raw imports, so unreadable
//     state is never fatal.
//   - Store: saves are atomic (temp file + rename) and a failed save is
//     fatal for the run, surfaced as ErrSaveFailed.
//
// Concurrent runs against the same files are unsupported; AcquireLock
// provides the external serialization the single-writer assumption needs.
package ledgerfile
