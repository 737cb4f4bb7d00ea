/*
 * bdm_test.go, part of gosnb.
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
	"bytes"
	"errors"
	"log/slog"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPercentAndLabel(Te *testing.T) {
	assert.Equal(Te, "-50.0%", Percent(-0.5))
	assert.Equal(Te, "0.0%", Percent(-1e-17))
	assert.Equal(Te, "0.0%", Percent(0))
	assert.Equal(Te, "30.0%", Percent(0.3))
	assert.Equal(Te, "12.5%", Percent(0.1249))
	assert.Equal(Te, "-60.0%_Bond_Distortion", Label(-0.6))
}

func TestBondDistortions(Te *testing.T) {
	def := DefaultBondDistortions()
	require.Len(Te, def, 13)
	assert.Equal(Te, -0.6, def[0])
	assert.Equal(Te, 0.0, def[6])
	assert.Equal(Te, 0.6, def[12])

	r := BondDistortionRange(-0.6, 0.61, 0.1)
	require.Len(Te, r, 13)
	labels := make([]string, len(r))
	for i, m := range r {
		labels[i] = Label(m)
		assert.Equal(Te, Label(def[i]), labels[i])
	}
	assert.Contains(Te, labels, "0.0%_Bond_Distortion")
	assert.NotContains(Te, labels, "-0.0%_Bond_Distortion")

	assert.Empty(Te, BondDistortionRange(0, 1, 0))
	assert.Empty(Te, BondDistortionRange(0, 1, -0.1))
	assert.Len(Te, BondDistortionRange(0.5, -0.5, -0.25), 4)
}

// The distortion followed by the rattle must give what the steps give when
// composed by hand.
func TestApplyRattleBondDistortionsComposition(Te *testing.T) {
	entry := vacancyCd(Te)
	S := entry.Supercell.Structure
	site, _ := entry.Site()
	opts := DefaultOptions()
	res, err := ApplyRattleBondDistortions(entry, 2, -0.3, opts)
	require.NoError(Te, err)

	distorted, err := Distort(S, 2, -0.3, site)
	require.NoError(Te, err)
	dmin, err := DMin(S)
	require.NoError(Te, err)
	moved := map[int]bool{}
	for _, i := range distorted.Parameters.Indexes() {
		moved[i] = true
	}
	var active []int
	for i := 0; i < S.Len(); i++ {
		if !moved[i] {
			active = append(active, i)
		}
	}
	want, report, err := Rattle(distorted.DistortedStructure, dmin, active, opts.Rattle)
	require.NoError(Te, err)

	assert.True(Te, want.Equal(res.DistortedStructure, 0))
	assert.Equal(Te, report, res.Rattle)
	assert.Equal(Te, distorted.Parameters, res.Parameters)
	//the distorted neighbours are not rattled
	for _, i := range res.Parameters.Indexes() {
		d := S.Lattice.Distance([3]float64{0, 0, 0}, res.DistortedStructure.Position(i))
		assert.InDelta(Te, 0.7*cdteBond, d, 1e-9)
	}
}

func TestApplyRattleBondDistortionsInterstitial(Te *testing.T) {
	entry := interstitialCd(Te)
	S := entry.Supercell.Structure
	res, err := ApplyRattleBondDistortions(entry, 4, 0.2, DefaultOptions())
	require.NoError(Te, err)
	assert.Equal(Te, S.Position(entry.SiteIndex), res.DistortedStructure.Position(entry.SiteIndex))
	assert.Equal(Te, S.Len()-5, res.Rattle.Rattled)
	assert.True(Te, S.Equal(entry.Supercell.Structure, 0))
}

func TestApplyDistortions(Te *testing.T) {
	entry := vacancyCd(Te)
	magnitudes := []float64{-0.5, 0, 0.3}
	set, err := ApplyDistortions(entry, 2, magnitudes, DefaultOptions())
	require.NoError(Te, err)
	assert.Equal(Te, []string{"-50.0%_Bond_Distortion", "0.0%_Bond_Distortion", "30.0%_Bond_Distortion"}, set.Labels)
	require.Len(Te, set.Distortions, 3)
	assert.True(Te, entry.Equal(set.UnperturbedDefect, 0))
	assert.NotSame(Te, entry.Supercell.Structure, set.UnperturbedDefect.Supercell.Structure)
	assert.Equal(Te, 2, set.Parameters.NumDistortedNeighbours)
	assert.Empty(Te, set.Unresolved())
	//every magnitude is rattled with the same seed
	for i, m := range magnitudes {
		single, err := ApplyRattleBondDistortions(entry, 2, m, DefaultOptions())
		require.NoError(Te, err)
		got := set.Distortions[set.Labels[i]]
		assert.True(Te, single.DistortedStructure.Equal(got.DistortedStructure, 0), set.Labels[i])
		assert.Equal(Te, set.Parameters, got.Parameters)
	}
	structs := set.Structures()
	assert.Len(Te, structs, 3)
	assert.Same(Te, set.Distortions["0.0%_Bond_Distortion"].DistortedStructure, structs["0.0%_Bond_Distortion"])
}

func TestApplyDistortionsDefaults(Te *testing.T) {
	set, err := ApplyDistortions(vacancyTe(Te), 2, nil, DefaultOptions())
	require.NoError(Te, err)
	assert.Len(Te, set.Labels, 13)
	for _, m := range DefaultBondDistortions() {
		assert.Contains(Te, set.Distortions, Label(m))
	}
	for _, a := range set.Parameters.DistortedAtoms {
		assert.Equal(Te, "Cd", a.Symbol)
	}
}

func TestApplyDistortionsVerbose(Te *testing.T) {
	var buf bytes.Buffer
	opts := DefaultOptions()
	opts.Verbose = true
	opts.Logger = slog.New(slog.NewTextHandler(&buf, nil))
	_, err := ApplyDistortions(vacancyCd(Te), 2, []float64{-0.5, 0.1}, opts)
	require.NoError(Te, err)
	out := buf.String()
	assert.Contains(Te, out, "--Distortion -50.0%")
	assert.Contains(Te, out, "--Distortion 10.0%")
	assert.Contains(Te, out, "defect=vac_1_Cd")

	buf.Reset()
	opts.Verbose = false
	_, err = ApplyDistortions(vacancyCd(Te), 2, []float64{-0.5}, opts)
	require.NoError(Te, err)
	assert.NotContains(Te, buf.String(), "--Distortion")
}

func TestApplyDistortionsErrors(Te *testing.T) {
	entry := vacancyCd(Te)
	_, err := ApplyDistortions(entry, 1000, nil, DefaultOptions())
	assert.True(Te, errors.Is(err, ErrTooManyNeighbours))

	entry.Kind = UnknownKind
	_, err = ApplyDistortions(entry, 2, nil, DefaultOptions())
	assert.True(Te, errors.Is(err, ErrDefectKind))

	entry = vacancyCd(Te)
	entry.Supercell.Structure = nil
	_, err = ApplyRattleBondDistortions(entry, 2, 0, DefaultOptions())
	assert.True(Te, errors.Is(err, ErrEmptyStructure))
}

func TestApplyDistortionsBadMagnitude(Te *testing.T) {
	for _, m := range []float64{math.NaN(), math.Inf(1), -1, -1.5} {
		_, err := ApplyRattleBondDistortions(vacancyCd(Te), 2, m, DefaultOptions())
		assert.ErrorIs(Te, err, ErrMagnitude, "magnitude %v", m)
	}
	set, err := ApplyDistortions(vacancyCd(Te), 2, []float64{-0.3, math.NaN()}, DefaultOptions())
	assert.ErrorIs(Te, err, ErrMagnitude)
	assert.Contains(Te, err.Error(), "1 of 2 distortions failed for vac_1_Cd")
	require.NotNil(Te, set)
	assert.Equal(Te, []string{"-30.0%_Bond_Distortion"}, set.Labels)
}
