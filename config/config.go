/*
 * config.go, part of gosnb.
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

// Package config loads the settings of a distortion run from YAML and the
// environment, and sets up logging.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	snb "github.com/rmera/gosnb"
	"gopkg.in/yaml.v3"
)

// Range is an evenly spaced set of distortion magnitudes, stop not included.
type Range struct {
	Start float64 `yaml:"start"`
	Stop  float64 `yaml:"stop"`
	Step  float64 `yaml:"step"`
}

// Config holds the settings of a distortion run.
type Config struct {
	BondDistortions      []float64      `yaml:"bond_distortions"`
	DistortionRange      *Range         `yaml:"distortion_range"` //used if BondDistortions is empty
	Stdev                float64        `yaml:"stdev"`
	Seed                 uint64         `yaml:"seed"`
	MaxAttempts          int            `yaml:"max_attempts"`
	MaxDisp              float64        `yaml:"max_disp"`
	OxidationStates      map[string]int `yaml:"oxidation_states"`
	GuessOxidationStates bool           `yaml:"guess_oxidation_states"`
	Neighbours           map[string]int `yaml:"num_nearest_neighbours"`
	Verbose              bool           `yaml:"verbose"`
	Workers              int            `yaml:"workers"`
	LogFile              string         `yaml:"log_file"`
	LogLevel             string         `yaml:"log_level"`
}

// Default returns the configuration used when nothing else is given.
func Default() Config {
	return Config{
		BondDistortions:      snb.DefaultBondDistortions(),
		Stdev:                snb.DefaultStdev,
		Seed:                 snb.DefaultSeed,
		MaxAttempts:          snb.DefaultMaxAttempts,
		MaxDisp:              snb.DefaultMaxDisp,
		GuessOxidationStates: true,
		LogLevel:             "INFO",
	}
}

// Load reads the YAML file path on top of the defaults, then applies the
// GOSNB_* environment variables. An empty path only applies the environment.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("failed to read config: %w", err)
		}
		if err := Parse(data, &cfg); err != nil {
			return cfg, err
		}
	}
	if err := cfg.applyEnv(); err != nil {
		return cfg, err
	}
	return cfg, cfg.Validate()
}

// Parse decodes the YAML in data into cfg. Fields not in data keep their values.
func Parse(data []byte, cfg *Config) error {
	explicit := struct {
		BondDistortions []float64 `yaml:"bond_distortions"`
	}{}
	if err := yaml.Unmarshal(data, &explicit); err != nil {
		return fmt.Errorf("failed to parse config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("failed to parse config: %w", err)
	}
	//a range in the file replaces the default list, unless a list is given too.
	if cfg.DistortionRange != nil && explicit.BondDistortions == nil {
		cfg.BondDistortions = nil
	}
	return nil
}

func (C *Config) applyEnv() error {
	if v := os.Getenv("GOSNB_STDEV"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("GOSNB_STDEV: %w", err)
		}
		C.Stdev = f
	}
	if v := os.Getenv("GOSNB_SEED"); v != "" {
		s, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return fmt.Errorf("GOSNB_SEED: %w", err)
		}
		C.Seed = s
	}
	if v := os.Getenv("GOSNB_WORKERS"); v != "" {
		w, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("GOSNB_WORKERS: %w", err)
		}
		C.Workers = w
	}
	if v := os.Getenv("GOSNB_VERBOSE"); v != "" {
		C.Verbose = v == "1" || strings.EqualFold(v, "true")
	}
	if v := os.Getenv("GOSNB_LOG_FILE"); v != "" {
		C.LogFile = v
	}
	if v := os.Getenv("GOSNB_LOG_LEVEL"); v != "" {
		C.LogLevel = v
	}
	return nil
}

// Validate checks that the configuration makes sense.
func (C Config) Validate() error {
	if C.Stdev <= 0 {
		return fmt.Errorf("stdev must be positive, got %g", C.Stdev)
	}
	if C.MaxAttempts <= 0 {
		return fmt.Errorf("max_attempts must be positive, got %d", C.MaxAttempts)
	}
	if C.DistortionRange != nil && len(C.BondDistortions) == 0 && C.DistortionRange.Step == 0 {
		return fmt.Errorf("distortion_range needs a non-zero step")
	}
	for name, n := range C.Neighbours {
		if n < 0 {
			return fmt.Errorf("negative number of neighbours for %s", name)
		}
	}
	return nil
}

// Magnitudes returns the distortion magnitudes to apply.
func (C Config) Magnitudes() []float64 {
	if len(C.BondDistortions) == 0 && C.DistortionRange != nil {
		r := C.DistortionRange
		return snb.BondDistortionRange(r.Start, r.Stop, r.Step)
	}
	return C.BondDistortions
}

// RattleOptions returns the rattle settings of the configuration.
func (C Config) RattleOptions() snb.RattleOptions {
	return snb.RattleOptions{Stdev: C.Stdev, Seed: C.Seed, MaxAttempts: C.MaxAttempts, MaxDisp: C.MaxDisp}
}

// ShakeOptions returns the options for snb.ApplyShakeNBreak, logging to logger.
func (C Config) ShakeOptions(logger *slog.Logger) snb.ShakeOptions {
	return snb.ShakeOptions{
		Options:              snb.Options{Rattle: C.RattleOptions(), Verbose: C.Verbose, Logger: logger},
		BondDistortions:      C.Magnitudes(),
		Neighbours:           C.Neighbours,
		GuessOxidationStates: C.GuessOxidationStates,
	}
}

// Level returns the slog level named in LogLevel, INFO if it is not recognised.
func (C Config) Level() slog.Level {
	return ParseLogLevel(C.LogLevel)
}
