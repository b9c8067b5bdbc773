// SPDX-License-Identifier: MIT
// Package parallel evaluates a pair quantity in shards.
//
// Run creates one worker quantity per shard, evaluates the shards
// concurrently on a shared, read-only structure, and merges the shard
// payloads into a master quantity strictly in shard order. The context
// stops the scheduling of further shards; a shard that already started
// runs to completion.
package parallel
