/*
 * rattle_test.go, part of gosnb.
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
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRattleDeterministic(Te *testing.T) {
	S := vacancyCd(Te).Supercell.Structure
	dmin, err := DMin(S)
	require.NoError(Te, err)
	a, ra, err := Rattle(S, dmin, nil, DefaultRattleOptions())
	require.NoError(Te, err)
	b, rb, err := Rattle(S, dmin, nil, DefaultRattleOptions())
	require.NoError(Te, err)
	assert.True(Te, a.Equal(b, 0))
	assert.Equal(Te, ra, rb)
	assert.Equal(Te, S.Len(), ra.Rattled)

	opts := DefaultRattleOptions()
	opts.Seed = 7
	c, _, err := Rattle(S, dmin, nil, opts)
	require.NoError(Te, err)
	assert.False(Te, a.Equal(c, 1e-6))

	//an explicit source gives the same as the seed it was made with
	opts = DefaultRattleOptions()
	opts.Src = rand.NewPCG(DefaultSeed, DefaultSeed)
	d, _, err := Rattle(S, dmin, nil, opts)
	require.NoError(Te, err)
	assert.True(Te, a.Equal(d, 0))
}

func TestRattleMinDistance(Te *testing.T) {
	S := vacancyCd(Te).Supercell.Structure
	dmin, err := DMin(S)
	require.NoError(Te, err)
	for _, seed := range []uint64{1, 42, 1234} {
		opts := DefaultRattleOptions()
		opts.Seed = seed
		R, report, err := Rattle(S, dmin, nil, opts)
		require.NoError(Te, err)
		require.True(Te, report.Clean(), "seed %d: %v", seed, report.Unresolved)
		for i := 0; i < R.Len(); i++ {
			assert.GreaterOrEqual(Te, minDistance(R, i, R.Position(i)), dmin, "seed %d atom %d", seed, i)
		}
		assert.LessOrEqual(Te, report.MaxDisplacement, DefaultMaxDisp)
		assert.Greater(Te, report.MaxDisplacement, 0.0)
	}
}

func TestRattleActive(Te *testing.T) {
	S := cdteBulk(Te)
	dmin, err := DMin(S)
	require.NoError(Te, err)
	active := []int{1, 5, 40}
	R, report, err := Rattle(S, dmin, active, DefaultRattleOptions())
	require.NoError(Te, err)
	assert.Equal(Te, 3, report.Rattled)
	disp := R.Displacements(S)
	for i, d := range disp {
		switch i {
		case 1, 5, 40:
			assert.Greater(Te, d, 0.0)
		default:
			assert.Equal(Te, 0.0, d)
		}
	}
	_, _, err = Rattle(S, dmin, []int{64}, DefaultRattleOptions())
	assert.Error(Te, err)
	empty, report, err := Rattle(S, dmin, []int{}, DefaultRattleOptions())
	require.NoError(Te, err)
	assert.Equal(Te, 0, report.Rattled)
	assert.True(Te, S.Equal(empty, 0))
}

func TestRattleUnresolved(Te *testing.T) {
	S := cdteBulk(Te)
	//no displacement this small can get an atom this far from the others
	opts := RattleOptions{Stdev: 0.01, Seed: 3, MaxAttempts: 50, MaxDisp: 0.05}
	R, report, err := Rattle(S, 10, []int{0, 1}, opts)
	require.NoError(Te, err)
	assert.False(Te, report.Clean())
	require.Len(Te, report.Unresolved, 2)
	assert.Equal(Te, 0, report.Unresolved[0].Index)
	assert.Less(Te, report.Unresolved[0].MinDistance, 10.0)
	//the best position found is kept, never worse than the starting one
	assert.GreaterOrEqual(Te, minDistance(R, 0, R.Position(0)), cdteBond-1e-9)
	assert.LessOrEqual(Te, report.MaxDisplacement, 0.05)
	var nilReport *RattleReport
	assert.True(Te, nilReport.Clean())
}
