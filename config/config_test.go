/*
 * config_test.go, part of gosnb.
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

package config

import (
	"os"
	"path/filepath"
	"testing"

	snb "github.com/rmera/gosnb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sample = `
stdev: 0.15
seed: 7
oxidation_states:
  Cd: 2
  Te: -2
num_nearest_neighbours:
  vac_1_Cd: 3
verbose: true
workers: 4
`

func TestDefault(Te *testing.T) {
	cfg := Default()
	require.NoError(Te, cfg.Validate())
	assert.Equal(Te, snb.DefaultBondDistortions(), cfg.Magnitudes())
	assert.Equal(Te, snb.DefaultRattleOptions(), cfg.RattleOptions())
}

func TestParse(Te *testing.T) {
	cfg := Default()
	require.NoError(Te, Parse([]byte(sample), &cfg))
	assert.Equal(Te, 0.15, cfg.Stdev)
	assert.Equal(Te, uint64(7), cfg.Seed)
	assert.Equal(Te, snb.DefaultMaxAttempts, cfg.MaxAttempts)
	assert.Equal(Te, map[string]int{"Cd": 2, "Te": -2}, cfg.OxidationStates)
	assert.Equal(Te, 3, cfg.Neighbours["vac_1_Cd"])
	assert.True(Te, cfg.Verbose)
	assert.Equal(Te, 4, cfg.Workers)
	assert.Len(Te, cfg.Magnitudes(), 13)

	opts := cfg.ShakeOptions(NopLogger())
	assert.Equal(Te, 0.15, opts.Rattle.Stdev)
	assert.True(Te, opts.Verbose)
	assert.True(Te, opts.GuessOxidationStates)
	assert.Equal(Te, cfg.Neighbours, opts.Neighbours)
	assert.NotNil(Te, opts.Logger)
}

func TestParseDistortions(Te *testing.T) {
	cfg := Default()
	require.NoError(Te, Parse([]byte("distortion_range: {start: -0.3, stop: 0.31, step: 0.1}\n"), &cfg))
	m := cfg.Magnitudes()
	require.Len(Te, m, 7)
	assert.Equal(Te, "-30.0%", snb.Percent(m[0]))
	assert.Equal(Te, "30.0%", snb.Percent(m[6]))

	cfg = Default()
	require.NoError(Te, Parse([]byte("bond_distortions: [-0.5, 0.5]\ndistortion_range: {start: -0.3, stop: 0.31, step: 0.1}\n"), &cfg))
	assert.Equal(Te, []float64{-0.5, 0.5}, cfg.Magnitudes())

	cfg = Default()
	assert.Error(Te, Parse([]byte("stdev: [1"), &cfg))
}

func TestValidate(Te *testing.T) {
	cfg := Default()
	cfg.Stdev = 0
	assert.Error(Te, cfg.Validate())
	cfg = Default()
	cfg.MaxAttempts = -1
	assert.Error(Te, cfg.Validate())
	cfg = Default()
	cfg.BondDistortions = nil
	cfg.DistortionRange = &Range{Start: 0, Stop: 1}
	assert.Error(Te, cfg.Validate())
	cfg = Default()
	cfg.Neighbours = map[string]int{"x": -1}
	assert.Error(Te, cfg.Validate())
}

func TestLoad(Te *testing.T) {
	path := filepath.Join(Te.TempDir(), "gosnb.yaml")
	require.NoError(Te, os.WriteFile(path, []byte(sample), 0644))
	Te.Setenv("GOSNB_SEED", "11")
	Te.Setenv("GOSNB_LOG_LEVEL", "debug")
	cfg, err := Load(path)
	require.NoError(Te, err)
	assert.Equal(Te, uint64(11), cfg.Seed)
	assert.Equal(Te, 0.15, cfg.Stdev)
	assert.Equal(Te, "debug", cfg.LogLevel)

	Te.Setenv("GOSNB_STDEV", "-1")
	_, err = Load(path)
	assert.Error(Te, err)
	Te.Setenv("GOSNB_STDEV", "abc")
	_, err = Load("")
	assert.Error(Te, err)
	Te.Setenv("GOSNB_STDEV", "")
	_, err = Load(filepath.Join(Te.TempDir(), "missing.yaml"))
	assert.Error(Te, err)
}
