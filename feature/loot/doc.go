// Package loot builds the per-character loot history ledger from raw
// loot-log exports.
//
// The ledger is folded incrementally: each run parses one export batch,
// merges it into the persisted ledger and stamps every touched event with
// the batch's week marker (the maximum date in the import). Dedup keys
// strictly on the unique award id, so replaying the same export is a
// no-op while genuinely new weeks accumulate history.
//
// Records are filtered twice before folding: characters outside the
// roster and items resolving to the Trash raid group are dropped, counted
// but never stored.
package loot
