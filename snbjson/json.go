/*
 * json.go, part of gosnb.
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

// Package snbjson serializes distortion records to JSON, optionally compressed,
// so they can be handed to input writers and analysis tools.
package snbjson

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"
	snb "github.com/rmera/gosnb"
)

// A ready-to-serialize container for a structure.
type Structure struct {
	Lattice [3][3]float64 `json:"lattice"`
	Species []string      `json:"species"`
	Frac    [][3]float64  `json:"frac_coords"`
}

// A ready-to-serialize container for a defect entry.
type Entry struct {
	Name               string         `json:"name"`
	Kind               snb.DefectKind `json:"defect_type"`
	SiteSpecie         string         `json:"site_specie"`
	SubstitutionSpecie string         `json:"substitution_specie,omitempty"`
	Supercell          *Structure     `json:"supercell_structure,omitempty"`
	SupercellSize      [3]int         `json:"supercell_size"`
	UniqueSite         [3]float64     `json:"unique_site"`
	SiteIndex          int            `json:"site_index"`
	Charges            []int          `json:"charges"`
	Charge             int            `json:"charge"`
	TransformationDict map[string]any `json:"Transformation Dict,omitempty"`
	Comment            string         `json:"POSCAR Comment,omitempty"`
	DefectStructure    *Structure     `json:"Defect Structure,omitempty"`
}

// A ready-to-serialize container for a distortion result.
type Result struct {
	Structure  *Structure                `json:"distorted_structure"`
	Parameters *snb.DistortionParameters `json:"distortion_parameters"`
	Rattle     *snb.RattleReport         `json:"rattle,omitempty"`
}

// A ready-to-serialize container for a distortion record set.
type RecordSet struct {
	ID          string                    `json:"id"`
	Unperturbed *Entry                    `json:"Unperturbed_Defect"`
	Parameters  *snb.DistortionParameters `json:"distortion_parameters"`
	Labels      []string                  `json:"labels"`
	Distortions map[string]*Result        `json:"Distortions"`
}

// FromStructure returns the container for S, nil if S is nil.
func FromStructure(S *snb.Structure) *Structure {
	if S == nil {
		return nil
	}
	r := &Structure{Species: S.Symbols(), Frac: make([][3]float64, S.Len())}
	for i := 0; i < 3; i++ {
		r.Lattice[i] = S.Lattice.Vector(i)
	}
	for i := range r.Frac {
		r.Frac[i] = S.FracPosition(i)
	}
	return r
}

// ToStructure rebuilds the structure in the container.
func (J *Structure) ToStructure() (*snb.Structure, error) {
	if J == nil {
		return nil, nil
	}
	L, err := snb.NewLattice(J.Lattice[0], J.Lattice[1], J.Lattice[2])
	if err != nil {
		return nil, err
	}
	return snb.NewStructureFrac(J.Species, J.Frac, L)
}

// FromEntry returns the container for E.
func FromEntry(E *snb.DefectEntry) *Entry {
	return &Entry{
		Name:               E.Name,
		Kind:               E.Kind,
		SiteSpecie:         E.SiteSpecie,
		SubstitutionSpecie: E.SubstitutionSpecie,
		Supercell:          FromStructure(E.Supercell.Structure),
		SupercellSize:      E.Supercell.Size,
		UniqueSite:         E.UniqueSite,
		SiteIndex:          E.SiteIndex,
		Charges:            E.Charges,
		Charge:             E.Charge,
		TransformationDict: E.TransformationDict,
		Comment:            E.Comment,
		DefectStructure:    FromStructure(E.DefectStructure),
	}
}

// ToEntry rebuilds the defect entry in the container.
func (J *Entry) ToEntry() (*snb.DefectEntry, error) {
	super, err := J.Supercell.ToStructure()
	if err != nil {
		return nil, fmt.Errorf("supercell of %s: %w", J.Name, err)
	}
	defstruct, err := J.DefectStructure.ToStructure()
	if err != nil {
		return nil, fmt.Errorf("defect structure of %s: %w", J.Name, err)
	}
	return &snb.DefectEntry{
		Name:               J.Name,
		Kind:               J.Kind,
		SiteSpecie:         J.SiteSpecie,
		SubstitutionSpecie: J.SubstitutionSpecie,
		Supercell:          snb.Supercell{Structure: super, Size: J.SupercellSize},
		UniqueSite:         J.UniqueSite,
		SiteIndex:          J.SiteIndex,
		Charges:            J.Charges,
		Charge:             J.Charge,
		TransformationDict: J.TransformationDict,
		Comment:            J.Comment,
		DefectStructure:    defstruct,
	}, nil
}

// FromRecordSet returns the container for R.
func FromRecordSet(R *snb.DistortionRecordSet) *RecordSet {
	r := &RecordSet{
		ID:          R.ID.String(),
		Unperturbed: FromEntry(R.UnperturbedDefect),
		Parameters:  R.Parameters,
		Labels:      R.Labels,
		Distortions: make(map[string]*Result, len(R.Distortions)),
	}
	for k, v := range R.Distortions {
		r.Distortions[k] = &Result{Structure: FromStructure(v.DistortedStructure), Parameters: v.Parameters, Rattle: v.Rattle}
	}
	return r
}

// ToRecordSet rebuilds the record set in the container.
func (J *RecordSet) ToRecordSet() (*snb.DistortionRecordSet, error) {
	id, err := uuid.Parse(J.ID)
	if err != nil {
		return nil, fmt.Errorf("record set id: %w", err)
	}
	if J.Unperturbed == nil {
		return nil, fmt.Errorf("record set %s has no unperturbed defect", J.ID)
	}
	entry, err := J.Unperturbed.ToEntry()
	if err != nil {
		return nil, err
	}
	r := &snb.DistortionRecordSet{
		ID:                id,
		UnperturbedDefect: entry,
		Parameters:        J.Parameters,
		Labels:            J.Labels,
		Distortions:       make(map[string]*snb.DistortionResult, len(J.Distortions)),
	}
	for k, v := range J.Distortions {
		s, err := v.Structure.ToStructure()
		if err != nil {
			return nil, fmt.Errorf("distortion %s: %w", k, err)
		}
		r.Distortions[k] = &snb.DistortionResult{DistortedStructure: s, Parameters: v.Parameters, Rattle: v.Rattle}
	}
	return r, nil
}

// Encode writes the record sets to w as a JSON array.
func Encode(w io.Writer, sets ...*snb.DistortionRecordSet) error {
	js := make([]*RecordSet, len(sets))
	for i, s := range sets {
		js[i] = FromRecordSet(s)
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", " ")
	if err := enc.Encode(js); err != nil {
		return fmt.Errorf("failed to encode record sets: %w", err)
	}
	return nil
}

// Decode reads a JSON array of record sets from r.
// Numbers in the transformation dict of each unperturbed defect come back as int
// when they are integral and as float64 otherwise, and arrays as []int, []float64 or
// []string when all their elements allow it. A whole-valued float64 thus decodes
// as an int, and an empty array as an empty []any.
func Decode(r io.Reader) ([]*snb.DistortionRecordSet, error) {
	var js []*RecordSet
	dec := json.NewDecoder(r)
	dec.UseNumber()
	if err := dec.Decode(&js); err != nil {
		return nil, fmt.Errorf("failed to decode record sets: %w", err)
	}
	ret := make([]*snb.DistortionRecordSet, len(js))
	for i, j := range js {
		if j != nil && j.Unperturbed != nil {
			j.Unperturbed.TransformationDict = normalizeDict(j.Unperturbed.TransformationDict)
		}
		s, err := j.ToRecordSet()
		if err != nil {
			return nil, err
		}
		ret[i] = s
	}
	return ret, nil
}

func normalizeDict(d map[string]any) map[string]any {
	if d == nil {
		return nil
	}
	for k, v := range d {
		d[k] = normalizeValue(v)
	}
	return d
}

func normalizeValue(v any) any {
	switch t := v.(type) {
	case json.Number:
		return number(t)
	case map[string]any:
		return normalizeDict(t)
	case []any:
		return normalizeSlice(t)
	}
	return v
}

// number returns n as an int if it has no fraction or exponent, as a float64 otherwise.
func number(n json.Number) any {
	if !strings.ContainsAny(n.String(), ".eE") {
		if i, err := n.Int64(); err == nil {
			return int(i)
		}
	}
	f, err := n.Float64()
	if err != nil {
		return n.String()
	}
	return f
}

func normalizeSlice(s []any) any {
	if len(s) == 0 {
		return s
	}
	ints, floats, strs := true, true, true
	for i, v := range s {
		s[i] = normalizeValue(v)
		switch s[i].(type) {
		case int:
			strs = false
		case float64:
			ints, strs = false, false
		case string:
			ints, floats = false, false
		default:
			ints, floats, strs = false, false, false
		}
	}
	switch {
	case ints:
		r := make([]int, len(s))
		for i, v := range s {
			r[i] = v.(int)
		}
		return r
	case floats:
		r := make([]float64, len(s))
		for i, v := range s {
			switch n := v.(type) {
			case int:
				r[i] = float64(n)
			case float64:
				r[i] = n
			}
		}
		return r
	case strs:
		r := make([]string, len(s))
		for i, v := range s {
			r[i] = v.(string)
		}
		return r
	}
	return s
}
