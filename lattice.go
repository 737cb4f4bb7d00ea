/*
 * lattice.go, part of gosnb.
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
	"math"

	v3 "github.com/rmera/gosnb/v3"
	"gonum.org/v1/gonum/mat"
)

// Lattice holds the 3 vectors of a periodic cell, one per row, in Angstrom.
type Lattice struct {
	vectors *mat.Dense
	inverse *mat.Dense
}

// NewLattice returns the lattice with the given row vectors. It returns
// an error if the vectors are linearly dependent.
func NewLattice(a, b, c [3]float64) (*Lattice, error) {
	v := mat.NewDense(3, 3, []float64{a[0], a[1], a[2], b[0], b[1], b[2], c[0], c[1], c[2]})
	inv := mat.NewDense(3, 3, nil)
	if err := inv.Inverse(v); err != nil {
		return nil, newError(ErrFormat, "NewLattice", "singular lattice: %v", err)
	}
	return &Lattice{vectors: v, inverse: inv}, nil
}

// CubicLattice returns a cubic lattice with side a.
func CubicLattice(a float64) *Lattice {
	L, err := NewLattice([3]float64{a, 0, 0}, [3]float64{0, a, 0}, [3]float64{0, 0, a})
	if err != nil {
		panic(err.Error()) //can't happen for a != 0
	}
	return L
}

// Vector returns the i-th lattice vector.
func (L *Lattice) Vector(i int) [3]float64 {
	return [3]float64{L.vectors.At(i, 0), L.vectors.At(i, 1), L.vectors.At(i, 2)}
}

// Matrix returns a copy of the lattice vectors as a 3x3 Dense, one vector per row.
func (L *Lattice) Matrix() *mat.Dense {
	return mat.DenseCopyOf(L.vectors)
}

// Volume returns the volume of the cell.
func (L *Lattice) Volume() float64 {
	return math.Abs(mat.Det(L.vectors))
}

// Copy returns a deep copy of the lattice.
func (L *Lattice) Copy() *Lattice {
	return &Lattice{vectors: mat.DenseCopyOf(L.vectors), inverse: mat.DenseCopyOf(L.inverse)}
}

// Cartesian converts the fractional coordinate f to cartesian.
func (L *Lattice) Cartesian(f [3]float64) [3]float64 {
	var r [3]float64
	for j := 0; j < 3; j++ {
		r[j] = f[0]*L.vectors.At(0, j) + f[1]*L.vectors.At(1, j) + f[2]*L.vectors.At(2, j)
	}
	return r
}

// Fractional converts the cartesian coordinate c to fractional.
func (L *Lattice) Fractional(c [3]float64) [3]float64 {
	var r [3]float64
	for j := 0; j < 3; j++ {
		r[j] = c[0]*L.inverse.At(0, j) + c[1]*L.inverse.At(1, j) + c[2]*L.inverse.At(2, j)
	}
	return r
}

// FractionalCoords returns the fractional coordinates of all the vectors in coords.
func (L *Lattice) FractionalCoords(coords *v3.Matrix) *v3.Matrix {
	ret := v3.Zeros(coords.NVecs())
	ret.Mul(coords, L.inverse)
	return ret
}

// CartesianCoords returns the cartesian coordinates of all the fractional vectors in frac.
func (L *Lattice) CartesianCoords(frac *v3.Matrix) *v3.Matrix {
	ret := v3.Zeros(frac.NVecs())
	ret.Mul(frac, L.vectors)
	return ret
}

// MinImage returns the shortest cartesian vector going from the point a to any
// periodic image of the point b, both given in cartesian coordinates.
func (L *Lattice) MinImage(a, b [3]float64) [3]float64 {
	fa := L.Fractional(a)
	fb := L.Fractional(b)
	var df [3]float64
	for j := 0; j < 3; j++ {
		d := fb[j] - fa[j]
		df[j] = d - math.Round(d)
	}
	//For skewed cells the wrapped vector is not always the shortest one,
	//so the neighbouring images are checked too.
	best := L.Cartesian(df)
	bestn := v3.Norm(best)
	for i := -1; i <= 1; i++ {
		for j := -1; j <= 1; j++ {
			for k := -1; k <= 1; k++ {
				if i == 0 && j == 0 && k == 0 {
					continue
				}
				c := L.Cartesian([3]float64{df[0] + float64(i), df[1] + float64(j), df[2] + float64(k)})
				if n := v3.Norm(c); n < bestn {
					best, bestn = c, n
				}
			}
		}
	}
	return best
}

// Distance returns the minimum-image distance between the cartesian points a and b.
func (L *Lattice) Distance(a, b [3]float64) float64 {
	return v3.Norm(L.MinImage(a, b))
}

// Equal returns true if both lattices have the same vectors within tol.
func (L *Lattice) Equal(O *Lattice, tol float64) bool {
	return mat.EqualApprox(L.vectors, O.vectors, tol)
}

func (L *Lattice) String() string {
	return fmt.Sprintf("%v", mat.Formatted(L.vectors))
}
