// Package softres builds the soft-reserve ledger from roster-tool CSV
// exports.
//
// Each accepted row is folded into a record keyed by (instance, boss,
// character, item). The raid instance comes from the boss lookup, the
// Naxxramas item-prefix override, or the injected InstancePolicy, whose
// answers are memoized per item for the duration of the run.
//
// Records carry the week markers of the batches that touched them; the
// cross-reference engine intersects these with loot event weeks to decide
// whether an award had been reserved.
package softres
