// Package pairsum computes pair quantities of atomic structures: values
// that are a sum of per-pair contributions over every atom pair inside a
// distance window, with or without periodic boundary conditions and
// crystallographic symmetry.
//
// 🚀 What is in the box?
//
//	• Structures: plain atom lists, periodic cells and symmetry-expanded
//	  crystals behind one Adapter interface, plus a structural diff
//	• Bond generators: neighbour enumeration over lattice images and
//	  symmetry copies within [rmin, rmax]
//	• Pair quantities: a Base to embed, with masks, windows, value buffers
//	  and hooks for custom contributions
//	• Evaluators: Basic (full recompute), Optimized (incremental update from
//	  the previous structure) and Check (both, compared)
//	• Parallel runs: sharded evaluation with compressed, digest-checked
//	  payloads merged into a master quantity
//
// Subpackages:
//
//	ticker/      logical clock used to invalidate cached values
//	r3/          3-vectors, 3×3 matrices and tolerant comparison
//	lattice/     unit cell geometry and sphere enumeration of lattice points
//	structure/   Adapter, Atomic, Periodic, Crystal, Difference, BondGenerator
//	evaluator/   Basic, Optimized and Check strategies, sharding, metrics
//	pairq/       Base for pair quantities, masks, payloads, YAML config
//	calculators/ PairCounter and BondCalculator
//	parallel/    concurrent shard evaluation with ordered merge
//
// Quick example:
//
//	stru := structure.NewAtomic(
//		structure.NewSite("C", 0, 0, 0),
//		structure.NewSite("C", 1.54, 0, 0),
//	)
//	c := calculators.NewPairCounter(pairq.WithRmax(2))
//	n, _ := c.Count(stru) // 1
//
//	go get github.com/katalvlaran/pairsum
package pairsum
