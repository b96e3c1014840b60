/*
 * interfaces.go, part of goccd.
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
 * goCCD is developed at the Universidad de Santiago de Chile
 * (USACH)
 *
 */

package ccd

//Result is the outcome of one electronic-structure calculation on a
//displaced structure. Anything that can hand back the final (possibly
//relaxed) geometry of the calculation and its final total energy can be a
//point in a potential energy surface. The vasp subpackage implements it
//for vasprun.xml files.
type Result interface {

	//FinalStructure returns the geometry of the last ionic step of the
	//calculation.
	FinalStructure() (*Structure, error)

	//FinalEnergy returns the total energy, in eV, of the last ionic step
	//of the calculation.
	FinalEnergy() (float64, error)
}

//Plotter is the drawing hook of the harmonic fit. HarmonicFit hands it the
//fitted model sampled over the range of the data, one call per fit. The
//ccdplot subpackage implements it.
type Plotter interface {

	//AddXY draws the curve given by the x and y slices.
	AddXY(x, y []float64) error
}

//Errors

//This error predates the "wrapping" error system of Go (i.e. the "%w" directive and the errors package). We should avoid
//using the Decorate method and/or make it use the "%w" directive internally.

// Error is the interface for errors that all packages in this library implement. The Decorate method allows to add and retrieve info from the
// error, without changing it's type or wrapping it around something else.
type Error interface {
	Error() string
	Decorate(string) []string //This is the new thing for errors. It allows you to add information when you pass it up. Each call also returns the "decoration" slice of strins resulting from the current call. If passed an empty string, it should just return the current value, not add the empty string to the slice.
	//The decorate slice should contain a list of functions in the calling stack, plus, for each function any relevant information, or nothing. If information is to be added to an element of the slice, it should be in this format: "FunctionName: Extra info"
}

// FileError is the interface for errors produced while reading a file, such
// as a vasprun.xml. It allows recovering the name of the offending file.
type FileError interface {
	Error
	Critical() bool
	FileName() string
}
