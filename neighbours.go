/*
 * neighbours.go, part of gosnb.
 *
 * Copyright 2024 Raul Mera <rmera{at}chemDOThelsinkiDOTfi>
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 */

package snb

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/mat"
)

const (
	// DMinFactor scales the bulk bond length to get the minimum distance
	// allowed between atoms while rattling.
	DMinFactor = 0.85
	//Offset, past the self-distances, of the element of the sorted distance
	//list taken as the bulk bond length. It skips the few short bonds a defect
	//(e.g. an interstitial) can introduce.
	bulkRankOffset = 20
	//distances are rounded to this before sorting neighbours, so atoms
	//equidistant up to numerical noise keep their original order.
	neighbourDistPrec = 1e4
)

// Site is the position of a defect: either an existing atom, given by its
// index (interstitials, substitutions) or a point with no atom on it, given by
// its fractional coordinates (vacancies). The zero value is not a valid Site.
type Site struct {
	index    int
	frac     [3]float64
	hasIndex bool
	hasFrac  bool
}

// SiteAtIndex returns the Site of the atom with index i.
func SiteAtIndex(i int) Site {
	return Site{index: i, hasIndex: true}
}

// SiteAtFrac returns the Site at the fractional coordinates f.
func SiteAtFrac(f [3]float64) Site {
	return Site{frac: f, hasFrac: true}
}

// NewSite builds a Site from an optional index and an optional fractional
// coordinate. Exactly one of them must be non-nil.
func NewSite(index *int, frac []float64) (Site, error) {
	if (index == nil) == (frac == nil) {
		return Site{}, newError(ErrSiteSpec, "NewSite", "index given: %t, coordinates given: %t", index != nil, frac != nil)
	}
	if index != nil {
		return SiteAtIndex(*index), nil
	}
	if len(frac) != 3 {
		return Site{}, newError(ErrSiteSpec, "NewSite", "%d fractional coordinates given", len(frac))
	}
	return SiteAtFrac([3]float64{frac[0], frac[1], frac[2]}), nil
}

// Index returns the index of the site's atom, and whether the site is an atom.
func (s Site) Index() (int, bool) { return s.index, s.hasIndex }

// Frac returns the fractional coordinates of the site, and whether the
// site was given as a point.
func (s Site) Frac() ([3]float64, bool) { return s.frac, s.hasFrac }

func (s Site) validate() error {
	if s.hasIndex == s.hasFrac {
		return newError(ErrSiteSpec, "Site", "index given: %t, coordinates given: %t", s.hasIndex, s.hasFrac)
	}
	return nil
}

// cartesian returns the cartesian position of the site in S.
func (s Site) cartesian(S *Structure) ([3]float64, error) {
	if err := s.validate(); err != nil {
		return [3]float64{}, err
	}
	if s.hasIndex {
		if s.index < 0 || s.index >= S.Len() {
			return [3]float64{}, newError(nil, "Site", "site index %d out of range for a structure of %d atoms", s.index, S.Len())
		}
		return S.Position(s.index), nil
	}
	return S.Lattice.Cartesian(s.frac), nil
}

// FracCoords returns the fractional coordinates of the site in S.
func (s Site) FracCoords(S *Structure) ([3]float64, error) {
	c, err := s.cartesian(S)
	if err != nil {
		return c, err
	}
	if s.hasFrac {
		return s.frac, nil
	}
	return S.Lattice.Fractional(c), nil
}

// Neighbour is an atom close to a defect site.
type Neighbour struct {
	Index    int
	Symbol   string
	Distance float64
}

// DistanceMatrix returns the NxN matrix of minimum-image distances between
// all the sites of S.
func DistanceMatrix(S *Structure) *mat.Dense {
	n := S.Len()
	d := mat.NewDense(n, n, nil)
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			dist := S.Distance(i, j)
			d.Set(i, j, dist)
			d.Set(j, i, dist)
		}
	}
	return d
}

// BulkBondLength estimates the bond length of the host crystal from the sorted
// flattened distance matrix of S. The N zero self-distances come first in that
// list, so the element N+20 is taken, which skips the shortest bonds. Those can
// belong to the defect rather than to the bulk. For cells too small to have that
// many distances, the largest one is used.
func BulkBondLength(S *Structure) (float64, error) {
	n := S.Len()
	if n < 2 {
		return 0, newError(ErrEmptyStructure, "BulkBondLength", "need at least 2 atoms, got %d", n)
	}
	flat := DistanceMatrix(S).RawMatrix().Data
	sorted := make([]float64, len(flat))
	copy(sorted, flat)
	sort.Float64s(sorted)
	rank := n + bulkRankOffset
	if rank >= len(sorted) {
		rank = len(sorted) - 1
	}
	return sorted[rank], nil
}

// DMin returns the minimum interatomic distance allowed when rattling S:
// DMinFactor times the bulk bond length.
func DMin(S *Structure) (float64, error) {
	b, err := BulkBondLength(S)
	if err != nil {
		return 0, errDecorate(err, "DMin")
	}
	return DMinFactor * b, nil
}

// SiteDistances returns the minimum-image distance from site to every atom in S.
func SiteDistances(S *Structure, site Site) ([]float64, error) {
	c, err := site.cartesian(S)
	if err != nil {
		return nil, errDecorate(err, "SiteDistances")
	}
	d := make([]float64, S.Len())
	for i := range d {
		d[i] = S.Lattice.Distance(c, S.Position(i))
	}
	return d, nil
}

// NearestNeighbours returns the k atoms of S nearest to site, nearest first.
// The site's own atom, and any atom exactly on the site, is never included.
// Atoms at the same distance (to 1e-4 Angstrom) are kept in their order in S.
// It is an error to request more neighbours than there are atoms.
func NearestNeighbours(S *Structure, site Site, k int) ([]Neighbour, error) {
	d, err := SiteDistances(S, site)
	if err != nil {
		return nil, errDecorate(err, "NearestNeighbours")
	}
	if k < 0 {
		return nil, newError(nil, "NearestNeighbours", "negative number of neighbours %d", k)
	}
	candidates := make([]Neighbour, 0, len(d))
	for i, v := range d {
		rounded := math.Round(v*neighbourDistPrec) / neighbourDistPrec
		if rounded <= 0 {
			continue
		}
		candidates = append(candidates, Neighbour{Index: i, Symbol: S.Atoms[i].Symbol, Distance: rounded})
	}
	if k > len(candidates) {
		return nil, newError(ErrTooManyNeighbours, "NearestNeighbours", "%d requested, %d available", k, len(candidates))
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Distance < candidates[j].Distance
	})
	ret := candidates[:k:k]
	for i := range ret {
		ret[i].Distance = d[ret[i].Index]
	}
	return ret, nil
}
