// Package ledgerapi serves the reconciler's output over HTTP.
//
// The endpoints return the persisted documents verbatim, the same files
// the publish step uploads, so the web viewer can read either source.
//
// # HTTP Endpoints
//
//   - GET /ledger  : the annotated loot ledger document.
//   - GET /softres : the soft-reserve ledger document.
//   - GET /runs    : the journaled run history, most recent first.
package ledgerapi
