/*
 * bdm.go, part of gosnb.
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
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"

	"github.com/google/uuid"
)

// Options control the distortion orchestration functions.
type Options struct {
	Rattle  RattleOptions
	Verbose bool         //log a notice for each distortion
	Logger  *slog.Logger //if nil, nothing is logged
}

// DefaultOptions returns the default rattle parameters, non-verbose.
func DefaultOptions() Options {
	return Options{Rattle: DefaultRattleOptions()}
}

func (O Options) logger() *slog.Logger {
	return orDiscard(O.Logger)
}

// orDiscard returns l, or a logger that drops everything if l is nil.
func orDiscard(l *slog.Logger) *slog.Logger {
	if l == nil {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return l
}

// DistortionRecordSet collects the distortions generated for one defect.
type DistortionRecordSet struct {
	ID                uuid.UUID
	UnperturbedDefect *DefectEntry                 //deep copy of the input entry
	Parameters        *DistortionParameters        //shared by all the distortions
	Distortions       map[string]*DistortionResult //keyed by Label(magnitude)
	Labels            []string                     //keys of Distortions, in the order requested
}

// Structures returns the distorted structures, keyed by label.
func (R *DistortionRecordSet) Structures() map[string]*Structure {
	r := make(map[string]*Structure, len(R.Distortions))
	for k, v := range R.Distortions {
		r[k] = v.DistortedStructure
	}
	return r
}

// Unresolved returns the labels of the distortions whose rattle left some atom
// closer than d_min to another.
func (R *DistortionRecordSet) Unresolved() []string {
	var r []string
	for _, l := range R.Labels {
		if d, ok := R.Distortions[l]; ok && !d.Rattle.Clean() {
			r = append(r, l)
		}
	}
	return r
}

// DefaultBondDistortions returns the distortion magnitudes from -0.6 to 0.6
// in steps of 0.1.
func DefaultBondDistortions() []float64 {
	r := make([]float64, 0, 13)
	for i := -6; i <= 6; i++ {
		r = append(r, float64(i)/10)
	}
	return r
}

// BondDistortionRange returns the magnitudes start, start+step... up to, and not
// including, stop. A step with the wrong sign, or 0, gives an empty slice.
func BondDistortionRange(start, stop, step float64) []float64 {
	if step == 0 || (stop-start)/step <= 0 {
		return nil
	}
	n := int(math.Ceil((stop - start) / step))
	r := make([]float64, n)
	for i := range r {
		r[i] = start + float64(i)*step
	}
	return r
}

// Percent returns the magnitude m as a percentage with one decimal, m rounded to
// 3 decimals first, e.g. "-50.0%". Zero is always "0.0%", never "-0.0%".
func Percent(m float64) string {
	p := math.Round(m*1000) / 10
	if p == 0 {
		p = 0 //gets rid of the negative zero
	}
	return fmt.Sprintf("%.1f%%", p)
}

// Label returns the key under which the distortion of magnitude m is stored,
// e.g. "-50.0%_Bond_Distortion".
func Label(m float64) string {
	return Percent(m) + "_Bond_Distortion"
}

// rattleSetup holds what is shared by all the magnitudes applied to a defect.
type rattleSetup struct {
	distorter *distorter
	dmin      float64
	active    []int
}

func newRattleSetup(entry *DefectEntry, k int) (*rattleSetup, error) {
	S, err := entry.Structure()
	if err != nil {
		return nil, err
	}
	site, err := entry.Site()
	if err != nil {
		return nil, err
	}
	D, err := newDistorter(S, k, site)
	if err != nil {
		return nil, err
	}
	dmin, err := DMin(S)
	if err != nil {
		return nil, err
	}
	excluded := make(map[int]bool, k+1)
	if i, ok := site.Index(); ok {
		excluded[i] = true
	}
	for _, v := range D.params.DistortedAtoms {
		excluded[v.Index] = true
	}
	active := make([]int, 0, S.Len())
	for i := 0; i < S.Len(); i++ {
		if !excluded[i] {
			active = append(active, i)
		}
	}
	return &rattleSetup{distorter: D, dmin: dmin, active: active}, nil
}

func (R *rattleSetup) apply(factor float64, opts RattleOptions) (*DistortionResult, error) {
	//at -100% or beyond the neighbours would collapse onto, or pass, the defect site.
	if math.IsNaN(factor) || math.IsInf(factor, 0) || factor <= -1 {
		return nil, newError(ErrMagnitude, "apply", "%v", factor)
	}
	res := R.distorter.apply(factor)
	rattled, report, err := Rattle(res.DistortedStructure, R.dmin, R.active, opts)
	if err != nil {
		return nil, err
	}
	res.DistortedStructure = rattled
	res.Rattle = report
	return res, nil
}

// ApplyRattleBondDistortions distorts the k neighbours of the defect in entry
// by factor, and rattles every other atom except the defect itself, with a d_min
// obtained from the undistorted supercell.
func ApplyRattleBondDistortions(entry *DefectEntry, k int, factor float64, opts Options) (*DistortionResult, error) {
	setup, err := newRattleSetup(entry, k)
	if err != nil {
		return nil, errDecorate(err, "ApplyRattleBondDistortions")
	}
	res, err := setup.apply(factor, opts.Rattle)
	if err != nil {
		return nil, errDecorate(err, "ApplyRattleBondDistortions")
	}
	return res, nil
}

type labelledResult struct {
	label  string
	result *DistortionResult
}

// ApplyDistortions applies ApplyRattleBondDistortions to entry for each magnitude in
// magnitudes (DefaultBondDistortions() if nil). The neighbours and d_min are
// obtained only once. Each magnitude is independent of the others: if one fails, the
// returned set still contains the rest, and the error names the ones that failed.
func ApplyDistortions(entry *DefectEntry, k int, magnitudes []float64, opts Options) (*DistortionRecordSet, error) {
	if magnitudes == nil {
		magnitudes = DefaultBondDistortions()
	}
	setup, err := newRattleSetup(entry, k)
	if err != nil {
		return nil, errDecorate(err, "ApplyDistortions")
	}
	log := opts.logger()
	var errs []error
	records := make([]labelledResult, 0, len(magnitudes))
	for _, m := range magnitudes {
		if opts.Verbose {
			log.Info("--Distortion "+Percent(m), "defect", entry.Name)
		}
		res, err := setup.apply(m, opts.Rattle)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", Label(m), err))
			continue
		}
		if !res.Rattle.Clean() {
			log.Warn("rattle left atoms closer than d_min", "defect", entry.Name, "distortion", Label(m), "atoms", len(res.Rattle.Unresolved))
		}
		records = append(records, labelledResult{Label(m), res})
	}
	set := &DistortionRecordSet{
		ID:                uuid.New(),
		UnperturbedDefect: entry.Copy(),
		Parameters:        setup.distorter.params.Copy(),
		Distortions:       make(map[string]*DistortionResult, len(records)),
	}
	for _, r := range records {
		if _, ok := set.Distortions[r.label]; !ok {
			set.Labels = append(set.Labels, r.label)
		}
		set.Distortions[r.label] = r.result
	}
	if len(errs) > 0 {
		return set, newError(errors.Join(errs...), "ApplyDistortions", "%d of %d distortions failed for %s", len(errs), len(magnitudes), entry.Name)
	}
	return set, nil
}
