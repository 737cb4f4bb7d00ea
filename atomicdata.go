/*
 * atomicdata.go, part of gosnb.
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

import "sort"

//Most common oxidation states, used for the species the user gives none for.
//Note that just common semiconductor and oxide elements are present
var symbolOxidation = map[string]int{
	"H":  1,
	"Li": 1,
	"Na": 1,
	"K":  1,
	"Cs": 1,
	"Cu": 1,
	"Ag": 1,
	"Be": 2,
	"Mg": 2,
	"Ca": 2,
	"Sr": 2,
	"Ba": 2,
	"Zn": 2,
	"Cd": 2,
	"Hg": 2,
	"B":  3,
	"Al": 3,
	"Ga": 3,
	"In": 3,
	"Sc": 3,
	"Y":  3,
	"La": 3,
	"Bi": 3,
	"Sb": 3,
	"Ti": 4,
	"Zr": 4,
	"Hf": 4,
	"Sn": 4,
	"Si": 4,
	"Ge": 4,
	"Pb": 2,
	"N":  -3,
	"P":  -3,
	"As": -3,
	"O":  -2,
	"S":  -2,
	"Se": -2,
	"Te": -2,
	"F":  -1,
	"Cl": -1,
	"Br": -1,
	"I":  -1,
}

// CommonOxidationState returns the most common oxidation state of the element
// symbol, and false if it is not known.
func CommonOxidationState(symbol string) (int, bool) {
	v, ok := symbolOxidation[symbol]
	return v, ok
}

// FillOxidationStates returns a copy of oxi where each species in species that
// had no oxidation state gets its most common one. It also returns the species
// that got a value this way, and the ones for which none was known, both sorted.
func FillOxidationStates(oxi map[string]int, species []string) (map[string]int, []string, []string) {
	r := make(map[string]int, len(oxi)+len(species))
	for k, v := range oxi {
		r[k] = v
	}
	var guessed, missing []string
	seen := make(map[string]bool, len(species))
	for _, s := range species {
		if _, ok := r[s]; ok || seen[s] {
			continue
		}
		seen[s] = true
		if v, ok := symbolOxidation[s]; ok {
			r[s] = v
			guessed = append(guessed, s)
			continue
		}
		missing = append(missing, s)
	}
	sort.Strings(guessed)
	sort.Strings(missing)
	return r, guessed, missing
}
