/*
 * rattle.go, part of gosnb.
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
	"math/rand/v2"

	v3 "github.com/rmera/gosnb/v3"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat/distuv"
)

const (
	DefaultStdev       = 0.25
	DefaultSeed        = 42
	DefaultMaxAttempts = 5000
	DefaultMaxDisp     = 2.0
)

// RattleOptions control the random displacements applied by Rattle.
// Zero fields take the defaults.
type RattleOptions struct {
	Stdev       float64 //standard deviation of the displacement along each axis, Angstrom
	Seed        uint64
	Src         rand.Source //if not nil, used instead of a source made from Seed
	MaxAttempts int         //draws per atom before keeping the best one found
	MaxDisp     float64     //largest displacement allowed for an atom, Angstrom
}

// DefaultRattleOptions returns the options used when none are given.
func DefaultRattleOptions() RattleOptions {
	return RattleOptions{Stdev: DefaultStdev, Seed: DefaultSeed, MaxAttempts: DefaultMaxAttempts, MaxDisp: DefaultMaxDisp}
}

func (O RattleOptions) withDefaults() RattleOptions {
	if O.Stdev <= 0 {
		O.Stdev = DefaultStdev
	}
	if O.MaxAttempts <= 0 {
		O.MaxAttempts = DefaultMaxAttempts
	}
	if O.MaxDisp <= 0 {
		O.MaxDisp = DefaultMaxDisp
	}
	return O
}

func (O RattleOptions) source() rand.Source {
	if O.Src != nil {
		return O.Src
	}
	return rand.NewPCG(O.Seed, O.Seed)
}

// UnresolvedAtom is an atom for which no displacement keeping it at least
// d_min away from every other atom was found.
type UnresolvedAtom struct {
	Index       int     `json:"index"`
	MinDistance float64 `json:"min_distance"`
}

// RattleReport describes what a call to Rattle did.
type RattleReport struct {
	DMin            float64          `json:"d_min"`
	Stdev           float64          `json:"stdev"`
	Seed            uint64           `json:"seed"`
	Rattled         int              `json:"rattled"`
	MaxDisplacement float64          `json:"max_displacement"`
	Unresolved      []UnresolvedAtom `json:"unresolved,omitempty"`
}

// Clean returns true if every rattled atom ended at least d_min away from all others.
func (R *RattleReport) Clean() bool {
	return R == nil || len(R.Unresolved) == 0
}

// Rattle returns a copy of S where each atom in active (all atoms, if active is nil)
// has been given a random gaussian displacement. Atoms are processed in the order
// given. A displacement is accepted only if it leaves the atom at least dmin away
// from every other atom, and is not larger than MaxDisp; otherwise a new one is drawn.
// After MaxAttempts draws the best one found (the one keeping the atom furthest from
// the others, the starting position included) is kept, and the atom is listed in
// the report. That is not an error. Given the same options, the result is always
// the same.
func Rattle(S *Structure, dmin float64, active []int, opts RattleOptions) (*Structure, *RattleReport, error) {
	opts = opts.withDefaults()
	if S == nil || S.Len() == 0 {
		return nil, nil, newError(ErrEmptyStructure, "Rattle", "nothing to rattle")
	}
	if active == nil {
		active = make([]int, S.Len())
		for i := range active {
			active[i] = i
		}
	}
	for _, i := range active {
		if i < 0 || i >= S.Len() {
			return nil, nil, newError(nil, "Rattle", "active atom %d out of range for a structure of %d atoms", i, S.Len())
		}
	}
	normal := distuv.Normal{Mu: 0, Sigma: opts.Stdev, Src: opts.source()}
	work := S.Copy()
	report := &RattleReport{DMin: dmin, Stdev: opts.Stdev, Seed: opts.Seed}
	for _, i := range active {
		orig := work.Position(i)
		ref := S.Position(i)
		best := orig
		bestd := minDistance(work, i, orig)
		for attempt := 0; attempt < opts.MaxAttempts; attempt++ {
			cand := [3]float64{orig[0] + normal.Rand(), orig[1] + normal.Rand(), orig[2] + normal.Rand()}
			if v3.Norm([3]float64{cand[0] - ref[0], cand[1] - ref[1], cand[2] - ref[2]}) > opts.MaxDisp {
				continue
			}
			d := minDistance(work, i, cand)
			if d >= dmin {
				best, bestd = cand, d
				break
			}
			if d > bestd {
				best, bestd = cand, d
			}
		}
		work.SetPosition(i, best)
		report.Rattled++
		if bestd < dmin {
			report.Unresolved = append(report.Unresolved, UnresolvedAtom{Index: i, MinDistance: bestd})
		}
	}
	report.MaxDisplacement = floats.Max(work.Displacements(S))
	return work, report, nil
}

// minDistance returns the shortest minimum-image distance between the point pos
// and any atom of S other than i.
func minDistance(S *Structure, i int, pos [3]float64) float64 {
	shortest := math.Inf(1)
	for j := 0; j < S.Len(); j++ {
		if j == i {
			continue
		}
		if d := S.Lattice.Distance(pos, S.Position(j)); d < shortest {
			shortest = d
		}
	}
	return shortest
}
