/*
 * structure.go, part of gosnb.
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
	"fmt"
	"strings"

	v3 "github.com/rmera/gosnb/v3"
)

// Atom contains the information of a site except for its coordinates,
// which are kept in a v3.Matrix in the Structure.
type Atom struct {
	Symbol    string
	Oxidation float64 //0 if not assigned
}

// Copy returns a copy of the Atom object.
func (A *Atom) Copy() *Atom {
	if A == nil {
		panic("Attempted to copy a nil atom")
	}
	r := *A
	return &r
}

// Structure is a periodic crystal structure: an ordered set of sites, each
// with an Atom and a cartesian position, and the lattice that repeats them.
// Functions in gosnb never modify a Structure given to them, they return
// new ones.
type Structure struct {
	Atoms   []*Atom
	Coords  *v3.Matrix //cartesian, one row per site, Angstrom
	Lattice *Lattice
}

// NewStructure returns a structure with the given atoms, cartesian coordinates
// and lattice. The slices are not copied.
func NewStructure(atoms []*Atom, coords *v3.Matrix, lattice *Lattice) (*Structure, error) {
	if lattice == nil {
		return nil, newError(nil, "NewStructure", "nil lattice")
	}
	if len(atoms) == 0 || coords == nil {
		return nil, newError(ErrEmptyStructure, "NewStructure", "no atoms given")
	}
	if coords.NVecs() != len(atoms) {
		return nil, newError(nil, "NewStructure", "%d atoms but %d coordinates", len(atoms), coords.NVecs())
	}
	return &Structure{Atoms: atoms, Coords: coords, Lattice: lattice}, nil
}

// NewStructureFrac is NewStructure, but takes the positions of the
// sites as fractional coordinates.
func NewStructureFrac(symbols []string, frac [][3]float64, lattice *Lattice) (*Structure, error) {
	if lattice == nil {
		return nil, newError(nil, "NewStructureFrac", "nil lattice")
	}
	if len(symbols) != len(frac) {
		return nil, newError(nil, "NewStructureFrac", "%d symbols but %d coordinates", len(symbols), len(frac))
	}
	if len(symbols) == 0 {
		return nil, newError(ErrEmptyStructure, "NewStructureFrac", "no atoms given")
	}
	atoms := make([]*Atom, len(symbols))
	coords := v3.Zeros(len(symbols))
	for i, s := range symbols {
		atoms[i] = &Atom{Symbol: s}
		coords.SetVec(i, lattice.Cartesian(frac[i]))
	}
	return &Structure{Atoms: atoms, Coords: coords, Lattice: lattice}, nil
}

// Len returns the number of sites in the structure.
func (S *Structure) Len() int {
	return len(S.Atoms)
}

// Atom returns the Atom corresponding to the index i. Panics if
// out of range.
func (S *Structure) Atom(i int) *Atom {
	if i < 0 || i >= S.Len() {
		panic(fmt.Sprintf("Structure: Requested Atom %d out of bounds", i))
	}
	return S.Atoms[i]
}

// Copy returns a deep copy of the structure.
func (S *Structure) Copy() *Structure {
	r := new(Structure)
	r.Atoms = make([]*Atom, len(S.Atoms))
	for i, a := range S.Atoms {
		r.Atoms[i] = a.Copy()
	}
	r.Coords = v3.Zeros(S.Coords.NVecs())
	r.Coords.Copy(S.Coords)
	r.Lattice = S.Lattice.Copy()
	return r
}

// Position returns the cartesian coordinates of site i.
func (S *Structure) Position(i int) [3]float64 {
	return S.Coords.Vec(i)
}

// FracPosition returns the fractional coordinates of site i.
func (S *Structure) FracPosition(i int) [3]float64 {
	return S.Lattice.Fractional(S.Coords.Vec(i))
}

// SetPosition sets the cartesian coordinates of site i to c.
func (S *Structure) SetPosition(i int, c [3]float64) {
	S.Coords.SetVec(i, c)
}

// Distance returns the minimum-image distance between sites i and j.
func (S *Structure) Distance(i, j int) float64 {
	return S.Lattice.Distance(S.Coords.Vec(i), S.Coords.Vec(j))
}

// Symbols returns the element symbols of all the sites, in order.
func (S *Structure) Symbols() []string {
	r := make([]string, len(S.Atoms))
	for i, a := range S.Atoms {
		r[i] = a.Symbol
	}
	return r
}

// Composition returns the species of the structure in order of first
// appearance, and the number of sites of each.
func (S *Structure) Composition() ([]string, []int) {
	var species []string
	var counts []int
	index := make(map[string]int)
	for _, a := range S.Atoms {
		i, ok := index[a.Symbol]
		if !ok {
			index[a.Symbol] = len(species)
			species = append(species, a.Symbol)
			counts = append(counts, 1)
			continue
		}
		counts[i]++
	}
	return species, counts
}

// Formula returns a string like "Cd31Te32" with the composition of S.
func (S *Structure) Formula() string {
	species, counts := S.Composition()
	var b strings.Builder
	for i, s := range species {
		fmt.Fprintf(&b, "%s%d", s, counts[i])
	}
	return b.String()
}

// Equal returns true if S and O have the same lattice, the same species in the
// same order, and every site of S lies within tol Angstrom of the corresponding
// site of O (considering periodic images).
func (S *Structure) Equal(O *Structure, tol float64) bool {
	if S == nil || O == nil {
		return S == O
	}
	if S.Len() != O.Len() || !S.Lattice.Equal(O.Lattice, tol) {
		return false
	}
	for i := range S.Atoms {
		if S.Atoms[i].Symbol != O.Atoms[i].Symbol {
			return false
		}
		if S.Lattice.Distance(S.Coords.Vec(i), O.Coords.Vec(i)) > tol {
			return false
		}
	}
	return true
}

// Displacements returns, for each site, the minimum-image distance between its
// position in S and in O. Panics if the structures have different lengths.
func (S *Structure) Displacements(O *Structure) []float64 {
	if S.Len() != O.Len() {
		panic("Structure: Displacements between structures of different length")
	}
	r := make([]float64, S.Len())
	for i := range r {
		r[i] = S.Lattice.Distance(S.Coords.Vec(i), O.Coords.Vec(i))
	}
	return r
}
