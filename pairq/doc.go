// SPDX-License-Identifier: MIT
// Package pairq is the framework for pair quantities: values computed as a
// sum of per-pair contributions over a structure.
//
// A concrete calculator embeds *Base and overrides the hooks it needs:
//
//	type Counter struct{ *pairq.Base }
//
//	func NewCounter() *Counter {
//		c := &Counter{}
//		c.Base = pairq.NewBase(c)
//		c.ResizeValue(1)
//		return c
//	}
//
//	func (c *Counter) AddPairContribution(gen structure.BondGenerator, scale int) {
//		c.Value()[0] += float64(scale) / 2
//	}
//
// Base owns the distance window, the pair mask, the value buffer, the
// evaluation strategy and the parallel merge bookkeeping. It calls every
// hook through the calculator passed to NewBase, so overrides take effect
// wherever Base would use its own default.
//
// Hooks and their defaults:
//
//	ResetValue            zero the buffer, forget merged shards
//	ConfigureBondGenerator apply [rmin, rmax]
//	AddPairContribution   no-op
//	StashPartialValue     copy the buffer aside
//	RestorePartialValue   put the copy back
//	ExecuteParallelMerge  element-wise sum of equal-length buffers
//	FinishValue           no-op
//
// Masks: every pair is included unless masked out. SetPairMask works on
// site indices (AllSites selects every index), SetTypeMask on type
// symbols (AllTypes, "all" or "ALL", selects every type). Type rules are
// resolved to index pairs whenever a structure is attached and take
// precedence over index rules set before them.
//
// Configuration can also be loaded from YAML, see Config.
package pairq
