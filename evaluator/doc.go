// SPDX-License-Identifier: MIT
// Package evaluator drives the pair summation of a Quantity over a
// structure.
//
// Three strategies are available:
//
//	Basic     - enumerate every pair of the new structure.
//	Optimized - subtract the pairs of removed sites, swap structures and
//	            add the pairs of inserted sites, falling back to Basic when
//	            an incremental update is not valid.
//	Check     - run Optimized, then Basic, and fail when they disagree.
//
// Half sum (the default) visits every unordered pair once, counting it
// twice through its scale. Full sum visits ordered pairs with scale 1.
//
// Sharding: SetupParallelRun(index, count) restricts an evaluator to a
// deterministic disjoint subset of the pairs so that count independent
// evaluators, merged together, produce the full sum. Small structures are
// sharded by pair, large ones by anchor site.
//
// Metrics are exported through the default Prometheus registry under the
// pairsum_evaluator_ prefix.
package evaluator
