// SPDX-License-Identifier: MIT
package structure

import "math"

// DiffMethod records how a Difference was obtained.
type DiffMethod int

const (
	// MethodNone means the adapters could not be compared; every old site
	// is removed and every new site added.
	MethodNone DiffMethod = iota
	// MethodIdentical means both sides are the same adapter.
	MethodIdentical
	// MethodHeadTail means equal leading and trailing runs were matched.
	MethodHeadTail
)

// fastUpdatePopBound is the largest removed fraction of the old structure
// for which an incremental update beats a full one.
var fastUpdatePopBound = 1 - math.Sqrt(0.5)

// String implements fmt.Stringer.
func (m DiffMethod) String() string {
	switch m {
	case MethodIdentical:
		return "identical"
	case MethodHeadTail:
		return "head-tail"
	default:
		return "none"
	}
}

// Difference lists the sites of Stru0 to remove (Pop0) and the sites of
// Stru1 to add (Add1). Both lists are sorted and unique.
type Difference struct {
	Stru0  Adapter
	Stru1  Adapter
	Pop0   []int
	Add1   []int
	Method DiffMethod
}

// AllowsFastUpdate reports whether an incremental update from Stru0 to
// Stru1 is valid and worthwhile.
func (d Difference) AllowsFastUpdate() bool {
	switch d.Method {
	case MethodIdentical:
		return true
	case MethodHeadTail:
		n0 := d.Stru0.CountSites()
		return float64(len(d.Pop0)) < fastUpdatePopBound*float64(n0)
	default:
		return false
	}
}

// IsEmpty reports whether nothing changed.
func (d Difference) IsEmpty() bool {
	return d.Method != MethodNone && len(d.Pop0) == 0 && len(d.Add1) == 0
}

func sameAdapter(a, b Adapter) bool {
	return b != nil && a == b
}

func identical(a Adapter) Difference {
	return Difference{Stru0: a, Stru1: a, Method: MethodIdentical}
}

func allDiffer(a, b Adapter) Difference {
	d := Difference{Stru0: a, Stru1: b, Method: MethodNone}
	d.Pop0 = indexRange(0, a.CountSites())
	if b != nil {
		d.Add1 = indexRange(0, b.CountSites())
	}
	return d
}

// headTail matches the longest equal leading run and the longest equal
// trailing run of the two site lists.
func headTail(a, b Adapter, s0, s1 []Site) Difference {
	n0, n1 := len(s0), len(s1)
	head := 0
	for head < n0 && head < n1 && s0[head] == s1[head] {
		head++
	}
	tail := 0
	for tail < n0-head && tail < n1-head && s0[n0-1-tail] == s1[n1-1-tail] {
		tail++
	}
	return Difference{
		Stru0:  a,
		Stru1:  b,
		Pop0:   indexRange(head, n0-tail),
		Add1:   indexRange(head, n1-tail),
		Method: MethodHeadTail,
	}
}

func indexRange(first, last int) []int {
	if last <= first {
		return nil
	}
	out := make([]int, last-first)
	for i := range out {
		out[i] = first + i
	}
	return out
}
