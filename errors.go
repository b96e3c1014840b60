/*
 * errors.go, part of goccd.
 *
 *
 * Copyright 2023 Raul Mera A. (raulpuntomeraatusachpuntocl)
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
 *
 */

package ccd

//CError is the concrete error type of the package. It fullfills the Error
//interface. The message of a CError returned by the functions in this
//package is always one of the constants below, verbatim, so callers can
//tell the kinds apart by comparing against them. Any extra detail goes in
//the decoration.
type CError struct {
	msg  string
	deco []string
}

func (err CError) Error() string { return err.msg }

//Decorate adds new information to the error
func (err CError) Decorate(deco string) []string {
	//Even though this method does not use a pointer as a receiver, and tries to alter the receiver,
	//it should work, since err.deco is a slice, and hence a pointer itself.
	if deco != "" {
		err.deco = append(err.deco, deco)
	}
	return err.deco
}

//errDecorate is a helper function that asserts that the error implements
//the Error interface and decorates it with the caller's name before
//returning it. Errors of any other type are returned unchanged.
func errDecorate(err error, caller string) error {
	err2, ok := err.(Error)
	if !ok {
		return err
	}
	err2.Decorate(caller)
	return err2
}

//PanicMsg is a message used for panics, even though it does satisfy the error interface.
type PanicMsg string

func (v PanicMsg) Error() string { return string(v) }

//Messages for the errors returned by the package. Compare the Error()
//string of a returned error against these to tell the failure kinds apart.
const (
	ErrNilData                = PanicMsg("goCCD: nil data given")
	ErrIncompatibleStructures = PanicMsg("goCCD: structures have different numbers of sites")
	ErrDegenerateCoordinate   = PanicMsg("goCCD: no pair of corresponding sites is displaced enough to define a coordinate")
	ErrFitDivergence          = PanicMsg("goCCD: the harmonic fit did not converge")
	ErrNotEnoughData          = PanicMsg("goCCD: not enough data points")
	ErrMismatchedData         = PanicMsg("goCCD: given slices have different lengths")
	ErrUnknownElement         = PanicMsg("goCCD: unknown element symbol")
	ErrNotCellMatrix          = PanicMsg("goCCD: a cell matrix should be 3x3")
	ErrSingularCell           = PanicMsg("goCCD: the cell matrix is singular")
	ErrNotXx3Matrix           = PanicMsg("goCCD: a coordinate matrix should have 3 columns")
)
