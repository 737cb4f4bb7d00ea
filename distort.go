/*
 * distort.go, part of gosnb.
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

import v3 "github.com/rmera/gosnb/v3"

// DistortedAtom is a neighbour moved by a bond distortion.
type DistortedAtom struct {
	Index  int    `json:"index"`
	Symbol string `json:"symbol"`
}

// DistortionParameters describe what a bond distortion moved. They depend only
// on the defect and the number of neighbours, not on the distortion magnitude.
type DistortionParameters struct {
	UniqueSite             [3]float64      `json:"unique_site"` //fractional
	NumDistortedNeighbours int             `json:"num_distorted_neighbours"`
	DistortedAtoms         []DistortedAtom `json:"distorted_atoms"` //nearest first
}

// Copy returns a deep copy of the parameters.
func (P *DistortionParameters) Copy() *DistortionParameters {
	r := *P
	r.DistortedAtoms = append([]DistortedAtom(nil), P.DistortedAtoms...)
	return &r
}

// Indexes returns the indexes of the distorted atoms.
func (P *DistortionParameters) Indexes() []int {
	r := make([]int, len(P.DistortedAtoms))
	for i, v := range P.DistortedAtoms {
		r[i] = v.Index
	}
	return r
}

// DistortionResult is a distorted structure and the description of the distortion.
// Rattle is nil until the structure has been rattled.
type DistortionResult struct {
	DistortedStructure *Structure
	Parameters         *DistortionParameters
	Rattle             *RattleReport
}

// distorter holds what a bond distortion of a given structure needs, except for
// the magnitude, so several magnitudes can be applied without repeating the
// neighbour search.
type distorter struct {
	structure *Structure
	center    [3]float64
	params    *DistortionParameters
}

func newDistorter(S *Structure, k int, site Site) (*distorter, error) {
	if err := site.validate(); err != nil {
		return nil, err
	}
	neighbours, err := NearestNeighbours(S, site, k)
	if err != nil {
		return nil, err
	}
	center, err := site.cartesian(S)
	if err != nil {
		return nil, err
	}
	unique, err := site.FracCoords(S)
	if err != nil {
		return nil, err
	}
	params := &DistortionParameters{
		UniqueSite:             unique,
		NumDistortedNeighbours: len(neighbours),
		DistortedAtoms:         make([]DistortedAtom, 0, len(neighbours)),
	}
	for _, n := range neighbours {
		params.DistortedAtoms = append(params.DistortedAtoms, DistortedAtom{Index: n.Index, Symbol: n.Symbol})
	}
	return &distorter{structure: S, center: center, params: params}, nil
}

// apply returns the structure with the neighbour distances scaled by (1+factor).
func (D *distorter) apply(factor float64) *DistortionResult {
	S := D.structure
	distorted := S.Copy()
	idx := D.params.Indexes()
	if len(idx) == 0 {
		return &DistortionResult{DistortedStructure: distorted, Parameters: D.params.Copy()}
	}
	moved := v3.Zeros(len(idx))
	moved.SomeVecs(S.Coords, idx)
	scale := 1 + factor
	for i := range idx {
		//the image of the neighbour closest to the site is the one that gets moved.
		bond := S.Lattice.MinImage(D.center, moved.Vec(i))
		moved.SetVec(i, [3]float64{
			D.center[0] + bond[0]*scale,
			D.center[1] + bond[1]*scale,
			D.center[2] + bond[2]*scale,
		})
	}
	distorted.Coords.SetVecs(moved, idx)
	return &DistortionResult{DistortedStructure: distorted, Parameters: D.params.Copy()}
}

// Distort moves the k atoms nearest to site along the line that joins each of them
// to the site, so that their distance to the site becomes the original one times
// (1+factor). A factor of 0 leaves the structure unchanged, a factor of -1 puts
// the neighbours on the site. The factor is not clamped. S is not modified.
func Distort(S *Structure, k int, factor float64, site Site) (*DistortionResult, error) {
	D, err := newDistorter(S, k, site)
	if err != nil {
		return nil, errDecorate(err, "Distort")
	}
	return D.apply(factor), nil
}
