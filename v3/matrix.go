/*
 * matrix.go, part of gosnb.
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

package v3

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

const cols int = 3

// Matrix is a set of vectors in 3D space. Each row is one vector,
// the cartesian coordinates of a point. It embeds a gonum Dense, so
// it can be given to any gonum function taking a mat.Matrix.
type Matrix struct {
	*mat.Dense
}

// Zeros returns a zero-filled Matrix with vecs vectors.
func Zeros(vecs int) *Matrix {
	f := make([]float64, cols*vecs)
	return &Matrix{mat.NewDense(vecs, cols, f)}
}

// NVecs returns the number of vectors in F.
func (F *Matrix) NVecs() int {
	r, c := F.Dims()
	if c != cols {
		panic(not3xXMatrix)
	}
	return r
}

// Vec returns a copy of the vector i of F as an array.
func (F *Matrix) Vec(i int) [3]float64 {
	var r [3]float64
	for j := 0; j < cols; j++ {
		r[j] = F.At(i, j)
	}
	return r
}

// SetVec sets the vector i of F to v.
func (F *Matrix) SetVec(i int, v [3]float64) {
	for j := 0; j < cols; j++ {
		F.Set(i, j, v[j])
	}
}

// SomeVecs puts in F the vectors of A with the indexes in clist,
// in the same order as clist.
func (F *Matrix) SomeVecs(A *Matrix, clist []int) {
	ar, _ := A.Dims()
	if F.NVecs() != len(clist) {
		panic(ErrShape)
	}
	for key, val := range clist {
		if val < 0 || val >= ar {
			panic(ErrIndex)
		}
		F.SetVec(key, A.Vec(val))
	}
}

// SetVecs sets the vectors of F with the indexes in clist to the
// vectors of A, in order.
func (F *Matrix) SetVecs(A *Matrix, clist []int) {
	fr := F.NVecs()
	if A.NVecs() < len(clist) {
		panic(ErrShape)
	}
	for key, val := range clist {
		if val < 0 || val >= fr {
			panic(ErrIndex)
		}
		F.SetVec(val, A.Vec(key))
	}
}

// Norm returns the euclidean norm of v.
func Norm(v [3]float64) float64 {
	return math.Sqrt(v[0]*v[0] + v[1]*v[1] + v[2]*v[2])
}

const (
	not3xXMatrix = PanicMsg("goSNB/v3: A Matrix should have 3 columns")
	ErrShape     = PanicMsg("goSNB/v3: Dimension mismatch")
	ErrIndex     = PanicMsg("goSNB/v3: Index out of range")
)

// PanicMsg is the type used for the messages of panics in this package.
type PanicMsg string

func (v PanicMsg) Error() string { return string(v) }
