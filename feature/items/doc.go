// Package items resolves item identifiers to display names and raid
// groups.
//
// Resolution cascades through layered sources, first hit wins:
//
//  1. The per-raid cache buckets, in configured order.
//  2. The trash bucket; a hit means the loot event is discarded.
//  3. The external metadata service (bounded retry), after which the
//     wildcard rule or the injected RaidPolicy assigns the raid group.
//
// Every answer obtained from the service or the policy is written back to
// the matching cache bucket, so later runs short-circuit at step 1.
// Lookup failures degrade to the "Unknown" raid group; they never abort
// the import batch.
package items
