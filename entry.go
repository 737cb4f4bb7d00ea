/*
 * entry.go, part of gosnb.
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
	"reflect"
	"strings"
)

// DefectKind is the type of a point defect.
type DefectKind int

const (
	UnknownKind DefectKind = iota
	Vacancy
	Interstitial
	Substitution
)

func (K DefectKind) String() string {
	switch K {
	case Vacancy:
		return "vacancy"
	case Interstitial:
		return "interstitial"
	case Substitution:
		return "substitution"
	default:
		return "unknown"
	}
}

// ParseDefectKind returns the kind named s. "antisite" is taken as a substitution.
func ParseDefectKind(s string) (DefectKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "vacancy", "vacancies":
		return Vacancy, nil
	case "interstitial", "interstitials":
		return Interstitial, nil
	case "substitution", "substitutions", "antisite", "antisites":
		return Substitution, nil
	}
	return UnknownKind, newError(ErrDefectKind, "ParseDefectKind", "%q", s)
}

// MarshalText implements encoding.TextMarshaler
func (K DefectKind) MarshalText() ([]byte, error) {
	if K == UnknownKind {
		return nil, newError(ErrDefectKind, "DefectKind.MarshalText", "can't marshal an unknown kind")
	}
	return []byte(K.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (K *DefectKind) UnmarshalText(b []byte) error {
	k, err := ParseDefectKind(string(b))
	if err != nil {
		return err
	}
	*K = k
	return nil
}

// Supercell is the periodic cell containing a defect.
type Supercell struct {
	Structure *Structure
	Size      [3]int //repetitions of the primitive cell
}

// DefectEntry describes one point defect, its supercell and the charge states
// to be studied. Entries are produced by a defect-generation step outside gosnb.
type DefectEntry struct {
	Name               string
	Kind               DefectKind
	SiteSpecie         string //species removed (vacancy), added (interstitial) or added on a host site (substitution)
	SubstitutionSpecie string //host species replaced, substitutions only
	Supercell          Supercell
	UniqueSite         [3]float64 //fractional coordinates of the defect
	SiteIndex          int        //index of the defect atom in the supercell, ignored for vacancies
	Charges            []int
	Charge             int //the charge state an entry stands for, once split by charge
	TransformationDict map[string]any
	Comment            string     //the POSCAR comment
	DefectStructure    *Structure //the structure passed on to input writers
}

// Site returns the geometric site of the defect: the defect point for vacancies,
// the defect atom for interstitials and substitutions.
func (E *DefectEntry) Site() (Site, error) {
	switch E.Kind {
	case Vacancy:
		return SiteAtFrac(E.UniqueSite), nil
	case Interstitial, Substitution:
		return SiteAtIndex(E.SiteIndex), nil
	}
	return Site{}, newError(ErrDefectKind, "DefectEntry.Site", "defect %s has kind %v", E.Name, E.Kind)
}

// Structure returns the supercell structure of the defect.
func (E *DefectEntry) Structure() (*Structure, error) {
	if E.Supercell.Structure == nil || E.Supercell.Structure.Len() == 0 {
		return nil, newError(ErrEmptyStructure, "DefectEntry.Structure", "defect %s has no supercell structure", E.Name)
	}
	return E.Supercell.Structure, nil
}

// Copy returns a deep copy of the entry.
func (E *DefectEntry) Copy() *DefectEntry {
	r := *E
	if E.Supercell.Structure != nil {
		r.Supercell.Structure = E.Supercell.Structure.Copy()
	}
	if E.DefectStructure != nil {
		r.DefectStructure = E.DefectStructure.Copy()
	}
	if E.Charges != nil {
		r.Charges = append([]int(nil), E.Charges...)
	}
	if E.TransformationDict != nil {
		r.TransformationDict = copyValue(E.TransformationDict).(map[string]any)
	}
	return &r
}

// copyValue deep-copies the maps and slices that can appear in a TransformationDict.
// Anything else is returned as is.
func copyValue(v any) any {
	switch t := v.(type) {
	case map[string]any:
		r := make(map[string]any, len(t))
		for k, val := range t {
			r[k] = copyValue(val)
		}
		return r
	case []any:
		r := make([]any, len(t))
		for i, val := range t {
			r[i] = copyValue(val)
		}
		return r
	case []float64:
		return append([]float64(nil), t...)
	case []int:
		return append([]int(nil), t...)
	case []string:
		return append([]string(nil), t...)
	case *Structure:
		if t == nil {
			return t
		}
		return t.Copy()
	}
	return v
}

// Equal returns true if E and O describe the same defect, with structures equal
// within tol Angstrom.
func (E *DefectEntry) Equal(O *DefectEntry, tol float64) bool {
	if E == nil || O == nil {
		return E == O
	}
	if E.Name != O.Name || E.Kind != O.Kind || E.SiteSpecie != O.SiteSpecie ||
		E.SubstitutionSpecie != O.SubstitutionSpecie || E.Supercell.Size != O.Supercell.Size ||
		E.UniqueSite != O.UniqueSite || E.SiteIndex != O.SiteIndex || E.Charge != O.Charge ||
		E.Comment != O.Comment {
		return false
	}
	if !reflect.DeepEqual(E.Charges, O.Charges) || !reflect.DeepEqual(E.TransformationDict, O.TransformationDict) {
		return false
	}
	return E.Supercell.Structure.Equal(O.Supercell.Structure, tol) && E.DefectStructure.Equal(O.DefectStructure, tol)
}

func (E *DefectEntry) String() string {
	return fmt.Sprintf("%s (%v, charges %v)", E.Name, E.Kind, E.Charges)
}

// UpdateStructDefectDict returns a copy of entry with its defect structure set to
// S and its comment set to comment. Every other field is equal by value to those
// of entry. S itself is not copied.
func UpdateStructDefectDict(entry *DefectEntry, S *Structure, comment string) *DefectEntry {
	r := entry.Copy()
	r.DefectStructure = S
	r.Comment = comment
	return r
}
