/*
 * errors_test.go, part of gosnb.
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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorDecoration(Te *testing.T) {
	err := newError(ErrTooManyNeighbours, "NearestNeighbours", "%d requested, %d available", 5, 3)
	assert.Equal(Te, "requested more neighbours than available atoms: 5 requested, 3 available", err.Error())
	assert.True(Te, err.Critical())
	dec := errDecorate(err, "Distort")
	var e Error
	assert.True(Te, errors.As(dec, &e))
	assert.Equal(Te, []string{"NearestNeighbours", "Distort"}, e.Decorate(""))
	assert.ErrorIs(Te, dec, ErrTooManyNeighbours)

	plain := errors.New("plain")
	assert.Same(Te, plain, errDecorate(plain, "Distort"))

	//an Error wrapped with extra context is not unwrapped
	wrapped := fmt.Errorf("vac_1_Cd_0: %w", newError(ErrTooManyNeighbours, "NearestNeighbours", "too many"))
	dec = errDecorate(wrapped, "ApplyShakeNBreak")
	assert.Same(Te, wrapped, dec)
	assert.Equal(Te, "vac_1_Cd_0: requested more neighbours than available atoms: too many", dec.Error())
	assert.ErrorIs(Te, dec, ErrTooManyNeighbours)
	require.True(Te, errors.As(dec, &e))
	assert.Equal(Te, []string{"NearestNeighbours"}, e.Decorate(""))
	assert.Equal(Te, "no wrap", newError(nil, "x", "no wrap").Error())
}
