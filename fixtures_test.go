/*
 * fixtures_test.go, part of gosnb.
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
	"testing"

	"github.com/stretchr/testify/require"
)

// Conventional cell side of zinc blende CdTe, Angstrom.
const cdteA = 6.5432

// Cd-Te bond length in CdTe.
var cdteBond = cdteA * math.Sqrt(3) / 4

// cdteBulk returns a 2x2x2 supercell of conventional zinc blende CdTe, 64 atoms:
// the 32 Cd first (the one at the origin has index 0), then the 32 Te.
func cdteBulk(Te *testing.T) *Structure {
	Te.Helper()
	fcc := [][3]float64{{0, 0, 0}, {0, .5, .5}, {.5, 0, .5}, {.5, .5, 0}}
	var symbols []string
	var frac [][3]float64
	for _, sp := range []struct {
		symbol string
		shift  float64
	}{{"Cd", 0}, {"Te", 0.25}} {
		for i := 0; i < 2; i++ {
			for j := 0; j < 2; j++ {
				for k := 0; k < 2; k++ {
					for _, f := range fcc {
						symbols = append(symbols, sp.symbol)
						frac = append(frac, [3]float64{
							(f[0] + sp.shift + float64(i)) / 2,
							(f[1] + sp.shift + float64(j)) / 2,
							(f[2] + sp.shift + float64(k)) / 2,
						})
					}
				}
			}
		}
	}
	S, err := NewStructureFrac(symbols, frac, CubicLattice(2*cdteA))
	require.NoError(Te, err)
	return S
}

// withoutAtom returns a copy of S without the atom i.
func withoutAtom(Te *testing.T, S *Structure, i int) *Structure {
	Te.Helper()
	var symbols []string
	var frac [][3]float64
	for j := 0; j < S.Len(); j++ {
		if j == i {
			continue
		}
		symbols = append(symbols, S.Atoms[j].Symbol)
		frac = append(frac, S.FracPosition(j))
	}
	r, err := NewStructureFrac(symbols, frac, S.Lattice.Copy())
	require.NoError(Te, err)
	return r
}

// withAtom returns a copy of S with an extra atom at the end.
func withAtom(Te *testing.T, S *Structure, symbol string, frac [3]float64) *Structure {
	Te.Helper()
	symbols := append(S.Symbols(), symbol)
	fracs := make([][3]float64, 0, S.Len()+1)
	for j := 0; j < S.Len(); j++ {
		fracs = append(fracs, S.FracPosition(j))
	}
	fracs = append(fracs, frac)
	r, err := NewStructureFrac(symbols, fracs, S.Lattice.Copy())
	require.NoError(Te, err)
	return r
}

// vacancyCd is the Cd vacancy at the origin, 63 atoms.
func vacancyCd(Te *testing.T) *DefectEntry {
	return &DefectEntry{
		Name:       "vac_1_Cd",
		Kind:       Vacancy,
		SiteSpecie: "Cd",
		Supercell:  Supercell{Structure: withoutAtom(Te, cdteBulk(Te), 0), Size: [3]int{2, 2, 2}},
		UniqueSite: [3]float64{0, 0, 0},
		Charges:    []int{0, -1, -2},
		TransformationDict: map[string]any{
			"defect_type": "vacancy",
			"defect_site": []float64{0, 0, 0},
		},
	}
}

// vacancyTe is the Te vacancy at index 32 of the bulk.
func vacancyTe(Te *testing.T) *DefectEntry {
	return &DefectEntry{
		Name:       "vac_2_Te",
		Kind:       Vacancy,
		SiteSpecie: "Te",
		Supercell:  Supercell{Structure: withoutAtom(Te, cdteBulk(Te), 32), Size: [3]int{2, 2, 2}},
		UniqueSite: [3]float64{0.125, 0.125, 0.125},
		Charges:    []int{0, 1, 2},
	}
}

// interstitialCd is a Cd on the tetrahedral interstitial site surrounded by Te,
// 65 atoms, the interstitial last.
func interstitialCd(Te *testing.T) *DefectEntry {
	site := [3]float64{0.25, 0.25, 0.25}
	return &DefectEntry{
		Name:       "Int_Cd_1",
		Kind:       Interstitial,
		SiteSpecie: "Cd",
		Supercell:  Supercell{Structure: withAtom(Te, cdteBulk(Te), "Cd", site), Size: [3]int{2, 2, 2}},
		UniqueSite: site,
		SiteIndex:  64,
		Charges:    []int{0, 1, 2},
	}
}

// antisite returns the entry of added on the site of the first atom of the
// species replaced.
func antisite(Te *testing.T, added, replaced string) *DefectEntry {
	S := cdteBulk(Te)
	index := 0
	if replaced == "Te" {
		index = 32
	}
	S.Atoms[index].Symbol = added
	return &DefectEntry{
		Name:               "as_1_" + added + "_on_" + replaced,
		Kind:               Substitution,
		SiteSpecie:         added,
		SubstitutionSpecie: replaced,
		Supercell:          Supercell{Structure: S, Size: [3]int{2, 2, 2}},
		UniqueSite:         S.FracPosition(index),
		SiteIndex:          index,
		Charges:            []int{0},
	}
}

var cdteOxi = map[string]int{"Cd": 2, "Te": -2}
