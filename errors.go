/*
 * errors.go, part of gosnb.
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
)

// Sentinel errors. Errors returned by gosnb functions wrap one of these
// when the failure belongs to one of the categories, so they can be
// checked with errors.Is.
var (
	ErrSiteSpec          = errors.New("exactly one of a site index or a fractional coordinate must be given")
	ErrTooManyNeighbours = errors.New("requested more neighbours than available atoms")
	ErrNoOxidationState  = errors.New("no oxidation state for species")
	ErrEmptyStructure    = errors.New("empty structure")
	ErrDefectKind        = errors.New("unknown defect kind")
	ErrFormat            = errors.New("ill-formatted structure file")
	ErrMagnitude         = errors.New("invalid distortion magnitude")
)

// Error is the general error type for gosnb. The Decorate method allows
// to add the names of the functions an error went through, without changing
// its type or wrapping it around something else.
type Error struct {
	message  string
	wrapped  error
	deco     []string
	critical bool
}

// newError returns an Error with the given message, wrapping base (which can be nil)
// and with caller as its first decoration.
func newError(base error, caller string, format string, args ...any) Error {
	return Error{message: fmt.Sprintf(format, args...), wrapped: base, deco: []string{caller}, critical: true}
}

func (err Error) Error() string {
	if err.wrapped != nil {
		return fmt.Sprintf("%s: %s", err.wrapped.Error(), err.message)
	}
	return err.message
}

// Unwrap returns the sentinel error wrapped by err, if any.
func (err Error) Unwrap() error { return err.wrapped }

// Decorate adds deco to the list of functions the error went through,
// and returns the list. An empty deco only returns the current list.
func (err *Error) Decorate(deco string) []string {
	if deco != "" {
		err.deco = append(err.deco, deco)
	}
	return err.deco
}

// Critical returns true if the error is critical, false otherwise
func (err Error) Critical() bool { return err.critical }

// errDecorate decorates err with the caller's name if err is itself a gosnb Error,
// and returns it. Other errors, including ones that wrap an Error, are returned unchanged
// so their context is kept.
func errDecorate(err error, caller string) error {
	if e, ok := err.(Error); ok {
		e.Decorate(caller)
		return e
	}
	return err
}
