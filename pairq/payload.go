// SPDX-License-Identifier: MIT
package pairq

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"math"

	"fortio.org/safecast"
	"github.com/klauspost/compress/zstd"
	"github.com/vmihailenco/msgpack/v5"
	"lukechampine.com/blake3"

	"github.com/katalvlaran/pairsum/structure"
)

// payloadSchema is bumped whenever the envelope layout changes.
const payloadSchema uint16 = 1

// envelope is the msgpack body of a parallel payload.
type envelope struct {
	Schema uint16    `msgpack:"schema"`
	Index  uint32    `msgpack:"index"`
	Count  uint32    `msgpack:"count"`
	Value  []float64 `msgpack:"value"`
	Digest []byte    `msgpack:"digest"`
}

// ParallelData encodes the value of a finished shard for transfer to the
// master quantity: a zstd-compressed msgpack envelope with the shard
// settings and a BLAKE3 digest of the value.
func (b *Base) ParallelData() ([]byte, error) {
	index, count := b.ev.ParallelRun()
	i32, err := safecast.Conv[uint32](index)
	if err != nil {
		return nil, pairqErrorf(opParallelData, err)
	}
	n32, err := safecast.Conv[uint32](count)
	if err != nil {
		return nil, pairqErrorf(opParallelData, err)
	}
	env := envelope{
		Schema: payloadSchema,
		Index:  i32,
		Count:  n32,
		Value:  b.self.Value(),
		Digest: valueDigest(b.self.Value()),
	}

	var buf bytes.Buffer
	zw, err := zstd.NewWriter(&buf)
	if err != nil {
		return nil, pairqErrorf(opParallelData, fmt.Errorf("creating zstd encoder: %w", err))
	}
	if err := msgpack.NewEncoder(zw).Encode(&env); err != nil {
		_ = zw.Close()
		return nil, pairqErrorf(opParallelData, err)
	}
	if err := zw.Close(); err != nil {
		return nil, pairqErrorf(opParallelData, err)
	}
	return buf.Bytes(), nil
}

// PrepareParallelMerge attaches stru to a master quantity and resets it
// before count shard payloads are merged.
func (b *Base) PrepareParallelMerge(stru structure.Adapter) error {
	return b.SetStructure(stru)
}

// MergeParallelData merges one shard payload. Each shard index in
// [0, count) is accepted once; a repeat fails with ErrPayload. The
// count-th merge calls FinishValue; any further merge fails with
// ErrMergeOverflow.
func (b *Base) MergeParallelData(payload []byte, count int) error {
	if b.merged >= count {
		return pairqErrorf(opMerge, fmt.Errorf("merged %d of %d: %w", b.merged, count, ErrMergeOverflow))
	}
	env, err := decodePayload(payload)
	if err != nil {
		return pairqErrorf(opMerge, err)
	}
	if int(env.Count) != count {
		return pairqErrorf(opMerge, fmt.Errorf("shard count %d, want %d: %w", env.Count, count, ErrPayload))
	}
	if env.Index >= env.Count {
		return pairqErrorf(opMerge, fmt.Errorf("shard index %d of %d: %w", env.Index, env.Count, ErrPayload))
	}
	if _, dup := b.shards[env.Index]; dup {
		return pairqErrorf(opMerge, fmt.Errorf("shard %d merged twice: %w", env.Index, ErrPayload))
	}
	if err := b.self.ExecuteParallelMerge(env.Value); err != nil {
		return pairqErrorf(opMerge, err)
	}
	b.shards[env.Index] = struct{}{}
	b.merged++
	if b.merged == count {
		b.self.FinishValue()
	}
	return nil
}

// MergedCount returns the number of shards merged since the last reset.
func (b *Base) MergedCount() int { return b.merged }

func decodePayload(payload []byte) (envelope, error) {
	var env envelope
	zr, err := zstd.NewReader(bytes.NewReader(payload))
	if err != nil {
		return env, fmt.Errorf("creating zstd decoder: %v: %w", err, ErrPayload)
	}
	defer zr.Close()
	if err := msgpack.NewDecoder(zr).Decode(&env); err != nil {
		return env, fmt.Errorf("decoding: %v: %w", err, ErrPayload)
	}
	if env.Schema != payloadSchema {
		return env, fmt.Errorf("schema %d, want %d: %w", env.Schema, payloadSchema, ErrPayload)
	}
	if !bytes.Equal(env.Digest, valueDigest(env.Value)) {
		return env, fmt.Errorf("digest mismatch: %w", ErrPayload)
	}
	return env, nil
}

func valueDigest(value []float64) []byte {
	raw := make([]byte, 8*len(value))
	for i, v := range value {
		binary.LittleEndian.PutUint64(raw[8*i:], math.Float64bits(v))
	}
	sum := blake3.Sum256(raw)
	return sum[:]
}
