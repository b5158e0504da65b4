// Package journal keeps an audit trail of reconcile runs.
//
// Each invocation of the run command writes one row with its week marker
// and per-stage counters (rows folded, rows skipped, events flagged).
// The journal is advisory: it never influences reconciliation and a
// journal failure only degrades reporting, not the run itself.
package journal
