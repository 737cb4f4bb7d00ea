/*
 * poscar.go, part of gosnb.
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
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	v3 "github.com/rmera/gosnb/v3"
)

//Only the VASP 5 flavour (with a species line) is supported.

// PoscarRead reads the VASP POSCAR file poscarname and returns the structure in it,
// and the comment in its first line.
func PoscarRead(poscarname string) (*Structure, string, error) {
	f, err := os.Open(poscarname)
	if err != nil {
		return nil, "", err
	}
	defer f.Close()
	s, comment, err := ReadPoscar(f)
	if err != nil {
		return nil, "", errDecorate(err, "PoscarRead "+poscarname)
	}
	return s, comment, nil
}

// ReadPoscar reads a structure in the VASP POSCAR format from r, and returns it
// with the comment in the first line.
func ReadPoscar(r io.Reader) (*Structure, string, error) {
	sc := bufio.NewScanner(r)
	lineno := 0
	next := func() (string, error) {
		if !sc.Scan() {
			if err := sc.Err(); err != nil {
				return "", err
			}
			return "", newError(ErrFormat, "ReadPoscar", "unexpected end of file after line %d", lineno)
		}
		lineno++
		return sc.Text(), nil
	}
	comment, err := next()
	if err != nil {
		return nil, "", err
	}
	line, err := next()
	if err != nil {
		return nil, "", err
	}
	scale, err := strconv.ParseFloat(strings.TrimSpace(line), 64)
	if err != nil {
		return nil, "", newError(ErrFormat, "ReadPoscar", "bad scaling factor %q", line)
	}
	if scale <= 0 {
		return nil, "", newError(ErrFormat, "ReadPoscar", "only positive scaling factors are supported")
	}
	var vecs [3][3]float64
	for i := 0; i < 3; i++ {
		line, err = next()
		if err != nil {
			return nil, "", err
		}
		vecs[i], err = parseTriplet(line)
		if err != nil {
			return nil, "", newError(ErrFormat, "ReadPoscar", "lattice vector %d: %v", i+1, err)
		}
		for j := range vecs[i] {
			vecs[i][j] *= scale
		}
	}
	lattice, err := NewLattice(vecs[0], vecs[1], vecs[2])
	if err != nil {
		return nil, "", errDecorate(err, "ReadPoscar")
	}
	line, err = next()
	if err != nil {
		return nil, "", err
	}
	species := strings.Fields(line)
	line, err = next()
	if err != nil {
		return nil, "", err
	}
	countfields := strings.Fields(line)
	if len(countfields) != len(species) {
		return nil, "", newError(ErrFormat, "ReadPoscar", "%d species but %d counts (VASP 4 files are not supported)", len(species), len(countfields))
	}
	var symbols []string
	for i, c := range countfields {
		n, err := strconv.Atoi(c)
		if err != nil || n < 0 {
			return nil, "", newError(ErrFormat, "ReadPoscar", "bad atom count %q", c)
		}
		for j := 0; j < n; j++ {
			symbols = append(symbols, species[i])
		}
	}
	if len(symbols) == 0 {
		return nil, "", newError(ErrEmptyStructure, "ReadPoscar", "no atoms in file")
	}
	line, err = next()
	if err != nil {
		return nil, "", err
	}
	mode := strings.ToLower(strings.TrimSpace(line))
	if strings.HasPrefix(mode, "s") { //selective dynamics
		line, err = next()
		if err != nil {
			return nil, "", err
		}
		mode = strings.ToLower(strings.TrimSpace(line))
	}
	cartesian := strings.HasPrefix(mode, "c") || strings.HasPrefix(mode, "k")
	coords := v3.Zeros(len(symbols))
	for i := range symbols {
		line, err = next()
		if err != nil {
			return nil, "", err
		}
		c, err := parseTriplet(line)
		if err != nil {
			return nil, "", newError(ErrFormat, "ReadPoscar", "position %d: %v", i+1, err)
		}
		if cartesian {
			for j := range c {
				c[j] *= scale
			}
		} else {
			c = lattice.Cartesian(c)
		}
		coords.SetVec(i, c)
	}
	atoms := make([]*Atom, len(symbols))
	for i, s := range symbols {
		atoms[i] = &Atom{Symbol: s}
	}
	st, err := NewStructure(atoms, coords, lattice)
	if err != nil {
		return nil, "", errDecorate(err, "ReadPoscar")
	}
	return st, strings.TrimSpace(comment), nil
}

func parseTriplet(line string) ([3]float64, error) {
	var r [3]float64
	fields := strings.Fields(line)
	if len(fields) < 3 {
		return r, fmt.Errorf("expected 3 numbers in %q", line)
	}
	for i := 0; i < 3; i++ {
		v, err := strconv.ParseFloat(fields[i], 64)
		if err != nil {
			return r, err
		}
		r[i] = v
	}
	return r, nil
}

// PoscarWrite writes the structure S to a file named poscarname in the VASP 5 POSCAR format,
// with comment as the first line. If the file exists it will be overwritten.
func PoscarWrite(poscarname string, S *Structure, comment string) error {
	out, err := os.Create(poscarname)
	if err != nil {
		return err
	}
	defer out.Close()
	if err := WritePoscar(out, S, comment); err != nil {
		return errDecorate(err, "PoscarWrite "+poscarname)
	}
	return nil
}

// WritePoscar writes the structure S in the VASP 5 POSCAR format to w, with direct
// (fractional) coordinates. The order of the sites is kept, so a species can appear
// more than once in the species line if S is not sorted by species.
func WritePoscar(w io.Writer, S *Structure, comment string) error {
	if S == nil || S.Len() == 0 {
		return newError(ErrEmptyStructure, "WritePoscar", "nothing to write")
	}
	bw := bufio.NewWriter(w)
	comment = strings.ReplaceAll(comment, "\n", " ")
	fmt.Fprintf(bw, "%s\n1.0\n", comment)
	for i := 0; i < 3; i++ {
		v := S.Lattice.Vector(i)
		fmt.Fprintf(bw, "  %16.10f %16.10f %16.10f\n", v[0], v[1], v[2])
	}
	var species []string
	var counts []int
	for _, a := range S.Atoms {
		if len(species) > 0 && species[len(species)-1] == a.Symbol {
			counts[len(counts)-1]++
			continue
		}
		species = append(species, a.Symbol)
		counts = append(counts, 1)
	}
	strcounts := make([]string, len(counts))
	for i, c := range counts {
		strcounts[i] = strconv.Itoa(c)
	}
	fmt.Fprintf(bw, "%s\n%s\nDirect\n", strings.Join(species, " "), strings.Join(strcounts, " "))
	for i := range S.Atoms {
		f := S.FracPosition(i)
		fmt.Fprintf(bw, "  %14.10f %14.10f %14.10f %s\n", f[0], f[1], f[2], S.Atoms[i].Symbol)
	}
	return bw.Flush()
}
