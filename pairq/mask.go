// SPDX-License-Identifier: MIT
package pairq

import (
	"sort"
	"strings"

	"github.com/katalvlaran/pairsum/structure"
)

// AllSites selects every site index in SetPairMask.
const AllSites = -1

// AllTypes selects every site type in SetTypeMask. "ALL" is accepted too.
const AllTypes = "all"

type indexPair [2]int

type typePair [2]string

func newIndexPair(i, j int) indexPair {
	if i > j {
		i, j = j, i
	}
	return indexPair{i, j}
}

func newTypePair(a, b string) typePair {
	if a > b {
		a, b = b, a
	}
	return typePair{a, b}
}

// pairMask stores the pairs whose mask differs from the default, and the
// type rules that generate them.
type pairMask struct {
	defaultValue bool
	inverted     map[indexPair]struct{}
	types        map[typePair]bool
}

func newPairMask() pairMask {
	return pairMask{
		defaultValue: true,
		inverted:     make(map[indexPair]struct{}),
		types:        make(map[typePair]bool),
	}
}

func (m *pairMask) get(i, j int) bool {
	_, inv := m.inverted[newIndexPair(i, j)]
	return inv != m.defaultValue
}

func (m *pairMask) all(mask bool) {
	clear(m.inverted)
	clear(m.types)
	m.defaultValue = mask
}

// setValue records a single rule. A rule (AllSites, k) equal to the
// default also clears every exception involving k.
func (m *pairMask) setValue(i, j int, mask bool) {
	ij := newIndexPair(i, j)
	if ij[0] == AllSites && mask == m.defaultValue {
		k := ij[1]
		for p := range m.inverted {
			if p[0] == k || p[1] == k {
				delete(m.inverted, p)
			}
		}
	}
	if mask == m.defaultValue {
		delete(m.inverted, ij)
	} else {
		m.inverted[ij] = struct{}{}
	}
}

// resolve expands AllSites rules, or type rules when present, to the site
// indices of stru.
func (m *pairMask) resolve(stru structure.Adapter) {
	n := stru.CountSites()
	if len(m.types) == 0 {
		for i := 0; i < n; i++ {
			if _, ok := m.inverted[indexPair{AllSites, i}]; !ok {
				continue
			}
			for j := 0; j < n; j++ {
				m.setValue(i, j, !m.defaultValue)
			}
		}
		return
	}

	sites := map[string][]int{}
	for i := 0; i < n; i++ {
		t := stru.SiteType(i)
		sites[t] = append(sites[t], i)
		sites[AllTypes] = append(sites[AllTypes], i)
	}
	clear(m.inverted)
	for _, tp := range m.orderedTypes() {
		msk := m.types[tp]
		isites, jsites := sites[tp[0]], sites[tp[1]]
		same := tp[0] == tp[1]
		for ii, i := range isites {
			js := jsites
			if same {
				js = isites[ii:]
			}
			for _, j := range js {
				m.setValue(i, j, msk)
			}
		}
	}
}

// orderedTypes lists type rules with wildcard rules first, so specific
// rules override them.
func (m *pairMask) orderedTypes() []typePair {
	out := make([]typePair, 0, len(m.types))
	for tp := range m.types {
		out = append(out, tp)
	}
	sort.Slice(out, func(a, b int) bool {
		wa := out[a][0] == AllTypes || out[a][1] == AllTypes
		wb := out[b][0] == AllTypes || out[b][1] == AllTypes
		if wa != wb {
			return wa
		}
		if out[a][0] != out[b][0] {
			return out[a][0] < out[b][0]
		}
		return out[a][1] < out[b][1]
	})
	return out
}

// PairMask reports whether the pair (i, j) contributes.
func (b *Base) PairMask(i, j int) bool { return b.mask.get(i, j) }

// HasIndexMask reports masking by explicit site indices.
func (b *Base) HasIndexMask() bool {
	return len(b.mask.types) == 0 && len(b.mask.inverted) > 0
}

// MaskAllPairs includes (true) or excludes (false) every pair and drops all
// other rules.
func (b *Base) MaskAllPairs(mask bool) {
	b.mask.all(mask)
	b.tick.Click()
}

// InvertMask flips the default and every type rule.
func (b *Base) InvertMask() {
	b.mask.defaultValue = !b.mask.defaultValue
	for tp, v := range b.mask.types {
		b.mask.types[tp] = !v
	}
	b.tick.Click()
}

// SetPairMask includes or excludes the pair (i, j). A negative index
// stands for AllSites. Type rules are dropped.
func (b *Base) SetPairMask(i, j int, mask bool) {
	clear(b.mask.types)
	i, j = max(i, AllSites), max(j, AllSites)
	if i == AllSites && j == AllSites {
		b.MaskAllPairs(mask)
		return
	}
	b.mask.setValue(i, j, mask)
	b.tick.Click()
}

// SetTypeMask includes or excludes pairs of sites with types ti and tj.
func (b *Base) SetTypeMask(ti, tj string, mask bool) {
	ti, tj = normalizeType(ti), normalizeType(tj)
	tp := newTypePair(ti, tj)
	if tp == (typePair{AllTypes, AllTypes}) {
		b.MaskAllPairs(mask)
		return
	}
	if ti == AllTypes || tj == AllTypes {
		other := ti
		if ti == AllTypes {
			other = tj
		}
		for k := range b.mask.types {
			if k[0] == other || k[1] == other {
				delete(b.mask.types, k)
			}
		}
	}
	b.mask.types[tp] = mask
	b.tick.Click()
}

// TypeMask returns the rule that applies to types ti and tj.
func (b *Base) TypeMask(ti, tj string) bool {
	ti, tj = normalizeType(ti), normalizeType(tj)
	for _, tp := range []typePair{newTypePair(ti, tj), newTypePair(AllTypes, ti), newTypePair(AllTypes, tj)} {
		if v, ok := b.mask.types[tp]; ok {
			return v
		}
	}
	return b.mask.defaultValue
}

func normalizeType(s string) string {
	if s == strings.ToUpper(AllTypes) {
		return AllTypes
	}
	return s
}
