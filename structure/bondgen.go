// SPDX-License-Identifier: MIT
package structure

import (
	"fmt"
	"math"
	"slices"

	"github.com/katalvlaran/pairsum/lattice"
	"github.com/katalvlaran/pairsum/r3"
)

// DefaultRmax is the upper distance bound of a fresh generator. It covers
// any finite molecule. Generators of Periodic and Crystal shapes reject it
// in SetRmax, since its lattice sphere exceeds MaxTranslations.
const DefaultRmax = 1.0e6

// MaxTranslations bounds the estimated number of lattice vectors a
// periodic generator may enumerate for one window.
const MaxTranslations = 1 << 21

// BondGenerator iterates the pairs (anchor, neighbour image) of a
// structure whose distance lies in [Rmin, Rmax].
//
// Lifecycle:
//
//	gen.SelectAnchor(i0)
//	gen.SelectSiteRange(0, i0+1)      // optional candidate restriction
//	for gen.Rewind(); !gen.Finished(); gen.Next() {
//		use(gen.Site1(), gen.Distance())
//	}
//
// Selecting an anchor or candidates, or changing the window, leaves the
// generator finished until the next Rewind. The self pair of the anchor
// (same site at zero distance) is never produced.
type BondGenerator interface {
	SelectAnchor(i0 int)
	SelectSiteRange(first, last int)
	SelectSites(indices []int)
	SetRmin(r float64) error
	SetRmax(r float64) error
	Rmin() float64
	Rmax() float64

	Rewind()
	Next()
	Finished() bool

	Site0() int
	Site1() int
	Multiplicity() int
	R0() r3.Vector
	R1() r3.Vector
	Distance() float64
	Displacement() r3.Vector
	U0() r3.Matrix
	U1() r3.Matrix
	MSD() float64

	Structure() Adapter
}

// imageSource supplies the neighbour images of one candidate site.
type imageSource interface {
	anchor(i int) (r3.Vector, r3.Matrix)
	rewind(site int) bool
	next() bool
	current() (r3.Vector, r3.Matrix)
	checkWindow(rmax float64) error
	setWindow(rmin, rmax float64)
}

// generator is the BondGenerator of every shape. Shapes differ only in
// their imageSource.
//
// Description:
//
//	The generator is a two-level cursor: the outer level walks the
//	candidate sites, the inner level walks the images the source yields
//	for the current candidate (the site itself, its lattice translations
//	or its translated symmetry copies).
//
// Algorithm Outline:
//  1. Rewind sets the candidate cursor to 0 and calls startCandidate,
//     which rewinds the source on the first candidate that has an image.
//  2. update loads the image position and its distance to the anchor.
//  3. skipInvalid calls step until the current image lies in
//     [rmin, rmax] and is not the anchor itself at zero distance.
//  4. step asks the source for the next image; once the source is
//     exhausted it moves the cursor to the next candidate.
//  5. The generator is finished when the candidates run out, or after
//     any call that changes the anchor, the candidates or the window.
//
// Complexity:
//
//	Time = O(candidates · images) per anchor, where images is 1 for a
//	molecule and translations · orbit size for periodic shapes.
type generator struct {
	stru Adapter
	img  imageSource

	rmin, rmax float64

	site0 int
	r0    r3.Vector
	u0    r3.Matrix

	cands []int
	cur   int

	r1       r3.Vector
	u1       r3.Matrix
	dist     float64
	finished bool
}

var _ BondGenerator = (*generator)(nil)

func newGenerator(stru Adapter, img imageSource) *generator {
	g := &generator{stru: stru, img: img, rmax: DefaultRmax, finished: true}
	img.setWindow(g.rmin, g.rmax)
	n := stru.CountSites()
	g.cands = indexRange(0, n)
	if n > 0 {
		g.SelectAnchor(0)
	}
	return g
}

// SelectAnchor sets the first site of every produced pair.
func (g *generator) SelectAnchor(i0 int) {
	g.site0 = i0
	g.r0, g.u0 = g.img.anchor(i0)
	g.finished = true
}

// SelectSiteRange restricts neighbours to [first, last).
func (g *generator) SelectSiteRange(first, last int) {
	n := g.stru.CountSites()
	first = max(first, 0)
	last = min(last, n)
	g.cands = indexRange(first, last)
	g.finished = true
}

// SelectSites restricts neighbours to the given indices. Invalid indices
// are dropped; the rest is visited in ascending order.
func (g *generator) SelectSites(indices []int) {
	n := g.stru.CountSites()
	cands := make([]int, 0, len(indices))
	for _, i := range indices {
		if i >= 0 && i < n {
			cands = append(cands, i)
		}
	}
	slices.Sort(cands)
	g.cands = slices.Compact(cands)
	g.finished = true
}

// SetRmin sets the lower distance bound.
func (g *generator) SetRmin(r float64) error {
	if r < 0 || math.IsNaN(r) {
		return structureErrorf(opSetRmin, fmt.Errorf("rmin=%g: %w", r, ErrBadWindow))
	}
	g.rmin = r
	g.img.setWindow(g.rmin, g.rmax)
	g.finished = true
	return nil
}

// SetRmax sets the upper distance bound. On a periodic shape a bound whose
// lattice sphere would hold more than MaxTranslations vectors fails with
// ErrBadWindow and leaves the window unchanged.
func (g *generator) SetRmax(r float64) error {
	if r < 0 || math.IsNaN(r) {
		return structureErrorf(opSetRmax, fmt.Errorf("rmax=%g: %w", r, ErrBadWindow))
	}
	if err := g.img.checkWindow(r); err != nil {
		return structureErrorf(opSetRmax, err)
	}
	g.rmax = r
	g.img.setWindow(g.rmin, g.rmax)
	g.finished = true
	return nil
}

func (g *generator) Rmin() float64 { return g.rmin }
func (g *generator) Rmax() float64 { return g.rmax }

// Rewind positions the generator on the first valid pair.
func (g *generator) Rewind() {
	g.finished = false
	g.cur = 0
	g.startCandidate()
	g.skipInvalid()
}

// Next advances to the following valid pair.
func (g *generator) Next() {
	if g.finished {
		return
	}
	g.step()
	g.skipInvalid()
}

func (g *generator) Finished() bool { return g.finished }

func (g *generator) startCandidate() {
	for ; g.cur < len(g.cands); g.cur++ {
		if g.img.rewind(g.cands[g.cur]) {
			g.update()
			return
		}
	}
	g.finished = true
}

// step moves to the next image, then to the next candidate.
func (g *generator) step() {
	if g.img.next() {
		g.update()
		return
	}
	g.cur++
	g.startCandidate()
}

func (g *generator) skipInvalid() {
	for !g.finished && !g.valid() {
		g.step()
	}
}

func (g *generator) valid() bool {
	if g.dist < g.rmin || g.dist > g.rmax {
		return false
	}
	return !(g.cands[g.cur] == g.site0 && r3.EpsEq(g.dist, 0))
}

func (g *generator) update() {
	g.r1, g.u1 = g.img.current()
	g.dist = r3.Distance(g.r0, g.r1)
}

func (g *generator) Site0() int              { return g.site0 }
func (g *generator) Site1() int              { return g.cands[g.cur] }
func (g *generator) Multiplicity() int       { return g.stru.SiteMultiplicity(g.site0) }
func (g *generator) R0() r3.Vector           { return g.r0 }
func (g *generator) R1() r3.Vector           { return g.r1 }
func (g *generator) Distance() float64       { return g.dist }
func (g *generator) Displacement() r3.Vector { return g.r1.Sub(g.r0) }
func (g *generator) U0() r3.Matrix           { return g.u0 }
func (g *generator) U1() r3.Matrix           { return g.u1 }
func (g *generator) Structure() Adapter      { return g.stru }

// MSD returns the summed mean-square displacement of both sites along the
// bond.
func (g *generator) MSD() float64 {
	s := g.Displacement()
	return MeanSquareDisplacement(g.u0, s, g.stru.SiteAnisotropy(g.site0)) +
		MeanSquareDisplacement(g.u1, s, g.stru.SiteAnisotropy(g.Site1()))
}

// plainImages yields the site itself.
type plainImages struct {
	stru Adapter
	site int
}

func (p *plainImages) anchor(i int) (r3.Vector, r3.Matrix) {
	return p.stru.SitePosition(i), p.stru.SiteDisplacement(i)
}

func (p *plainImages) rewind(site int) bool {
	p.site = site
	return true
}

func (p *plainImages) next() bool { return false }

func (p *plainImages) current() (r3.Vector, r3.Matrix) {
	return p.stru.SitePosition(p.site), p.stru.SiteDisplacement(p.site)
}

func (p *plainImages) checkWindow(float64) error { return nil }

func (p *plainImages) setWindow(_, _ float64) {}

// translations walks the lattice vectors that can bring any two points of
// the unit cell within the window. The sphere is rebuilt lazily.
type translations struct {
	lat        *lattice.Lattice
	rmin, rmax float64
	sphere     *lattice.PointsInSphere
	shift      r3.Vector
}

// checkWindow estimates the lattice points of the sphere rewindShift
// builds for rmax, as its volume over the cell volume.
func (t *translations) checkWindow(rmax float64) error {
	r := rmax + t.lat.MaxDiagonalLength()
	n := 4 * math.Pi * r * r * r / (3 * t.lat.Volume())
	if n > MaxTranslations || math.IsInf(rmax, 1) {
		return fmt.Errorf("rmax=%g needs about %.3g lattice translations, limit %d: %w",
			rmax, n, MaxTranslations, ErrBadWindow)
	}
	return nil
}

func (t *translations) setWindow(rmin, rmax float64) {
	if t.sphere != nil && rmin == t.rmin && rmax == t.rmax {
		return
	}
	t.rmin, t.rmax = rmin, rmax
	t.sphere = nil
}

func (t *translations) rewindShift() bool {
	if t.sphere == nil {
		d := t.lat.MaxDiagonalLength()
		t.sphere = lattice.NewPointsInSphere(t.rmin-d, t.rmax+d, t.lat)
	}
	t.sphere.Rewind()
	return t.loadShift()
}

func (t *translations) nextShift() bool {
	t.sphere.Next()
	return t.loadShift()
}

func (t *translations) loadShift() bool {
	if t.sphere.Finished() {
		return false
	}
	t.shift = t.lat.CartesianInt(t.sphere.MNO())
	return true
}

// periodicImages yields a wrapped site plus every translation.
type periodicImages struct {
	translations
	pos  []r3.Vector
	us   []r3.Matrix
	site int
}

func (p *periodicImages) anchor(i int) (r3.Vector, r3.Matrix) {
	if i < 0 || i >= len(p.pos) {
		panic(indexError(opSite, i, len(p.pos)))
	}
	return p.pos[i], p.us[i]
}

func (p *periodicImages) rewind(site int) bool {
	p.site = site
	return p.rewindShift()
}

func (p *periodicImages) next() bool { return p.nextShift() }

func (p *periodicImages) current() (r3.Vector, r3.Matrix) {
	return p.pos[p.site].Add(p.shift), p.us[p.site]
}

// crystalImages yields translations × symmetry copies of a site.
type crystalImages struct {
	translations
	orbits [][]orbitCopy
	site   int
	k      int
}

func (c *crystalImages) anchor(i int) (r3.Vector, r3.Matrix) {
	if i < 0 || i >= len(c.orbits) {
		panic(indexError(opSite, i, len(c.orbits)))
	}
	first := c.orbits[i][0]
	return first.pos, first.u
}

func (c *crystalImages) rewind(site int) bool {
	c.site, c.k = site, 0
	return c.rewindShift()
}

func (c *crystalImages) next() bool {
	c.k++
	if c.k < len(c.orbits[c.site]) {
		return true
	}
	c.k = 0
	return c.nextShift()
}

func (c *crystalImages) current() (r3.Vector, r3.Matrix) {
	cp := c.orbits[c.site][c.k]
	return cp.pos.Add(c.shift), cp.u
}
