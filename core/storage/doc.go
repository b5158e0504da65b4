// Package storage provides the object-storage client used by the publish
// step. After a run completes, the persisted ledger documents can be
// uploaded to a bucket so the web viewer picks them up.
//
// Publishing is strictly a post-processing step: a publish failure never
// invalidates or re-runs the reconciliation that produced the files.
package storage
