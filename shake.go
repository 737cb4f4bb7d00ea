/*
 * shake.go, part of gosnb.
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
	"sort"
)

// ShakeOptions control ApplyShakeNBreak.
type ShakeOptions struct {
	Options
	BondDistortions      []float64      //nil means DefaultBondDistortions()
	Neighbours           map[string]int //per-defect number of neighbours, overrides the electron count
	GuessOxidationStates bool           //fill missing oxidation states with the most common ones
}

// ChargedDefect is one defect in one charge state, with its distorted structures
// ready to be handed to an input writer.
type ChargedDefect struct {
	Name          string //defect name and charge, e.g. "vac_1_Cd_-2"
	Defect        string
	Charge        int
	NumNeighbours int
	Unperturbed   *DefectEntry
	Distorted     map[string]*DefectEntry //keyed by distortion label
	Records       *DistortionRecordSet
}

// ChargedName returns the name of the defect name in charge state q.
func ChargedName(name string, q int) string {
	return fmt.Sprintf("%s_%d", name, q)
}

// speciesOf returns the species involved in the given defects, sorted.
func speciesOf(defects []*DefectEntry) []string {
	set := make(map[string]bool)
	for _, d := range defects {
		if d.SiteSpecie != "" {
			set[d.SiteSpecie] = true
		}
		if d.SubstitutionSpecie != "" {
			set[d.SubstitutionSpecie] = true
		}
	}
	r := make([]string, 0, len(set))
	for k := range set {
		r = append(r, k)
	}
	sort.Strings(r)
	return r
}

// ApplyShakeNBreak generates the bond distortions for every defect and charge state
// in defects. The number of neighbours distorted for a charge state q is
// CalcNumberNeighbours(n+q), where n is what CalcNumberElectrons returns for the
// defect, unless opts.Neighbours has a value for the defect. Charge states needing
// the same number of neighbours share one DistortionRecordSet. The results are
// returned in the order of defects, and of the charges within each.
// Failures are collected and returned together with everything that did work.
func ApplyShakeNBreak(defects []*DefectEntry, oxi map[string]int, opts ShakeOptions) ([]*ChargedDefect, error) {
	log := opts.logger()
	if opts.GuessOxidationStates {
		var guessed, missing []string
		oxi, guessed, missing = FillOxidationStates(oxi, speciesOf(defects))
		if len(guessed) > 0 {
			log.Info("using the most common oxidation states", "species", guessed)
		}
		if len(missing) > 0 {
			log.Warn("no oxidation state known", "species", missing)
		}
	}
	var errs []error
	var ret []*ChargedDefect
	for _, d := range defects {
		electrons, err := CalcNumberElectrons(d, oxi, opts.Verbose, log)
		if err != nil {
			errs = append(errs, errDecorate(err, "ApplyShakeNBreak"))
			continue
		}
		cache := make(map[int]cachedSet)
		for _, q := range d.Charges {
			k := CalcNumberNeighbours(electrons + q)
			if n, ok := opts.Neighbours[d.Name]; ok {
				k = n
			}
			if opts.Verbose {
				log.Info(fmt.Sprintf("Defect %s in charge state %d: %d neighbours distorted", d.Name, q, k), "defect", d.Name)
			}
			c, ok := cache[k]
			if !ok {
				c.records, c.err = ApplyDistortions(d, k, opts.BondDistortions, opts.Options)
				c.err = errDecorate(c.err, "ApplyShakeNBreak")
				cache[k] = c
			}
			//every charge state sharing a failed set reports the failure.
			if c.err != nil {
				errs = append(errs, fmt.Errorf("%s: %w", ChargedName(d.Name, q), c.err))
			}
			if c.records == nil {
				continue
			}
			ret = append(ret, chargedDefect(d, q, k, c.records))
		}
	}
	return ret, errors.Join(errs...)
}

// cachedSet is the outcome of ApplyDistortions for one number of neighbours.
type cachedSet struct {
	records *DistortionRecordSet
	err     error
}

func chargedDefect(d *DefectEntry, q, k int, records *DistortionRecordSet) *ChargedDefect {
	charged := d.Copy()
	charged.Charge = q
	c := &ChargedDefect{
		Name:          ChargedName(d.Name, q),
		Defect:        d.Name,
		Charge:        q,
		NumNeighbours: k,
		Records:       records,
		Distorted:     make(map[string]*DefectEntry, len(records.Labels)),
	}
	c.Unperturbed = UpdateStructDefectDict(charged, charged.Supercell.Structure, fmt.Sprintf("Unperturbed__%s", c.Name))
	for _, label := range records.Labels {
		comment := fmt.Sprintf("%s__num_neighbours=%d_%s", label, k, c.Name)
		c.Distorted[label] = UpdateStructDefectDict(charged, records.Distortions[label].DistortedStructure, comment)
	}
	return c
}
