/*
 * electrons.go, part of gosnb.
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
	"log/slog"
)

// CalcNumberElectrons returns the number of electrons the defect in entry leaves
// missing with respect to the host, given the oxidation states of the species
// involved: minus the change in electron count. For a vacancy the change is minus
// the oxidation state of the removed species, for an interstitial it is the
// oxidation state of the added one, and for a substitution the difference between
// the oxidation states of the added and the replaced species.
// If verbose, the result is logged to logger. A nil logger logs nothing.
func CalcNumberElectrons(entry *DefectEntry, oxi map[string]int, verbose bool, logger *slog.Logger) (int, error) {
	ox := func(species string) (int, error) {
		v, ok := oxi[species]
		if !ok {
			return 0, newError(ErrNoOxidationState, "CalcNumberElectrons", "%q (defect %s)", species, entry.Name)
		}
		return v, nil
	}
	var change int
	switch entry.Kind {
	case Vacancy:
		v, err := ox(entry.SiteSpecie)
		if err != nil {
			return 0, err
		}
		change = -v
	case Interstitial:
		v, err := ox(entry.SiteSpecie)
		if err != nil {
			return 0, err
		}
		change = v
	case Substitution:
		added, err := ox(entry.SiteSpecie)
		if err != nil {
			return 0, err
		}
		replaced, err := ox(entry.SubstitutionSpecie)
		if err != nil {
			return 0, err
		}
		change = added - replaced
	default:
		return 0, newError(ErrDefectKind, "CalcNumberElectrons", "defect %s has kind %v", entry.Name, entry.Kind)
	}
	if verbose {
		orDiscard(logger).Info(fmt.Sprintf("Number of extra/missing electrons of defect %s: %d -> Δq = %d", entry.Name, change, -change),
			"defect", entry.Name)
	}
	return -change, nil
}

// CalcNumberNeighbours returns how many neighbours to distort for a defect
// with a net electron change of electrons. The count follows the bonding
// electron pairs: 0->0, ±2->2, ±4->4, ±6->2, ±8->0.
func CalcNumberNeighbours(electrons int) int {
	n := abs(electrons)
	if n > 4 {
		return abs(8 - n)
	}
	return n
}

func abs(i int) int {
	if i < 0 {
		return -i
	}
	return i
}
