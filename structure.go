/*
 * structure.go, part of goccd.
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

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

/**Note: Some functions here panic instead of returning errors. This is because they are "fundamental"
 * functions. I considered that if something goes wrong here, the program is way-most likely wrong and should
 * crash. Most panics are related to using the function on a nil object or trying to access out-of bounds
 * fields**/

//Site contains the identity of one site of a periodic structure. The
//coordinates are kept apart, in a matrix, so they are not here.
type Site struct {
	Symbol string
	Mass   float64 //amu
}

//NewSite returns a site for the element given by symbol, with its mass
//taken from the atomic weights table.
func NewSite(symbol string) (*Site, error) {
	m, ok := symbolMass[symbol]
	if !ok {
		return nil, CError{string(ErrUnknownElement), []string{"NewSite: " + symbol}}
	}
	return &Site{Symbol: symbol, Mass: m}, nil
}

//Copy returns a copy of the Site object.
func (S *Site) Copy() *Site {
	if S == nil {
		panic("Attempted to copy a nil site")
	}
	Newsite := new(Site)
	Newsite.Symbol = S.Symbol
	Newsite.Mass = S.Mass
	return Newsite
}

/*****Structure type***/

//Structure represents a periodic atomic structure: a cell, the sites in it
//and their fractional coordinates. The cell is a 3x3 matrix with the
//lattice vectors as rows, in A. The coordinates are a Len()x3 matrix, one
//site per row, in fractions of the lattice vectors. Coordinates are not
//forced into the [0,1) interval, so a structure can lie partly, or even
//completely, outside its "home" cell. That is what allows displacing
//structures beyond the endpoints of a path.
type Structure struct {
	Sites []*Site
	cell  *mat.Dense
	frac  *mat.Dense
}

//NewStructure makes a structure from a 3x3 cell matrix, a slice of sites
//and a matrix of fractional coordinates with one row per site. Sites with
//zero mass get it assigned from the atomic weights table, which must then
//contain their symbol. The matrices are copied, not kept.
func NewStructure(cell *mat.Dense, sites []*Site, frac *mat.Dense) (*Structure, error) {
	if cell == nil || sites == nil || frac == nil {
		return nil, CError{string(ErrNilData), []string{"NewStructure"}}
	}
	if r, c := cell.Dims(); r != 3 || c != 3 {
		return nil, CError{string(ErrNotCellMatrix), []string{"NewStructure"}}
	}
	r, c := frac.Dims()
	if c != 3 {
		return nil, CError{string(ErrNotXx3Matrix), []string{"NewStructure"}}
	}
	if r != len(sites) || len(sites) == 0 {
		return nil, CError{string(ErrMismatchedData), []string{"NewStructure: sites and coordinate rows"}}
	}
	S := new(Structure)
	S.Sites = make([]*Site, len(sites))
	for i, v := range sites {
		if v == nil {
			return nil, CError{string(ErrNilData), []string{"NewStructure: nil site"}}
		}
		S.Sites[i] = v.Copy()
		if S.Sites[i].Mass == 0 {
			m, ok := symbolMass[v.Symbol]
			if !ok {
				return nil, CError{string(ErrUnknownElement), []string{"NewStructure: " + v.Symbol}}
			}
			S.Sites[i].Mass = m
		}
	}
	S.cell = mat.DenseCopyOf(cell)
	S.frac = mat.DenseCopyOf(frac)
	return S, nil
}

/*Structure methods*/

//Len returns the number of sites in the structure.
func (S *Structure) Len() int {
	return len(S.Sites)
}

//Site returns the Site corresponding to the index i
//of the Sites slice in the Structure. Panics if
//out of range.
func (S *Structure) Site(i int) *Site {
	if i >= S.Len() {
		panic("Structure: Requested Site out of bounds")
	}
	return S.Sites[i]
}

//Copy returns a copy of the structure, including the cell and the coordinates.
func (S *Structure) Copy() *Structure {
	if S == nil {
		panic("Attempted to copy a nil structure")
	}
	New := new(Structure)
	New.Sites = make([]*Site, len(S.Sites))
	for i, v := range S.Sites {
		New.Sites[i] = v.Copy()
	}
	New.cell = mat.DenseCopyOf(S.cell)
	New.frac = mat.DenseCopyOf(S.frac)
	return New
}

//Cell returns a copy of the 3x3 cell matrix, in A.
func (S *Structure) Cell() *mat.Dense {
	return mat.DenseCopyOf(S.cell)
}

//FracCoords returns a copy of the fractional coordinates, one site per row.
func (S *Structure) FracCoords() *mat.Dense {
	return mat.DenseCopyOf(S.frac)
}

//CartCoords returns the Cartesian coordinates of the sites, in A, one site
//per row. The coordinates are taken as they are, without wrapping into the
//home cell, so points of an interpolated path stay collinear.
func (S *Structure) CartCoords() *mat.Dense {
	r, _ := S.frac.Dims()
	cart := mat.NewDense(r, 3, nil)
	cart.Mul(S.frac, S.cell)
	return cart
}

//Volume returns the volume of the cell, in A^3.
func (S *Structure) Volume() float64 {
	return math.Abs(mat.Det(S.cell))
}

//SiteDistance returns the minimum-image distance, in A, between the site i
//of the receiver and the site i of T. The cell of the receiver is used; the
//structures are expected to share it.
func (S *Structure) SiteDistance(T *Structure, i int) float64 {
	if i >= S.Len() || i >= T.Len() {
		panic("Structure: Requested Site out of bounds")
	}
	var df [3]float64
	for ax := 0; ax < 3; ax++ {
		d := S.frac.At(i, ax) - T.frac.At(i, ax)
		df[ax] = d - math.Round(d) //to the closest periodic image
	}
	var dist float64
	for ax := 0; ax < 3; ax++ {
		c := df[0]*S.cell.At(0, ax) + df[1]*S.cell.At(1, ax) + df[2]*S.cell.At(2, ax)
		dist += c * c
	}
	return math.Sqrt(dist)
}

//Interpolate returns the structures lying on the linear path from the
//receiver to end, one per element of ds, in the same order. The path is
//traced in fractional coordinates, taking for each site the shortest way
//compatible with the periodicity, so a site sitting close to a cell face
//does not travel across the whole cell. A parameter of 0 gives the
//receiver and 1 gives end; values outside [0,1] extrapolate beyond them
//and are perfectly legal. The sites and cell of the images are those of
//the receiver.
func (S *Structure) Interpolate(end *Structure, ds []float64) ([]*Structure, error) {
	if end == nil {
		return nil, CError{string(ErrNilData), []string{"Interpolate"}}
	}
	if S.Len() != end.Len() {
		return nil, CError{string(ErrIncompatibleStructures), []string{"Interpolate"}}
	}
	r, _ := S.frac.Dims()
	delta := mat.NewDense(r, 3, nil)
	delta.Sub(end.frac, S.frac)
	delta.Apply(func(i, j int, v float64) float64 { return v - math.Round(v) }, delta)
	ret := make([]*Structure, len(ds))
	for k, d := range ds {
		f := mat.NewDense(r, 3, nil)
		f.Scale(d, delta)
		f.Add(f, S.frac)
		im := new(Structure)
		im.Sites = make([]*Site, len(S.Sites))
		for i, v := range S.Sites {
			im.Sites[i] = v.Copy()
		}
		im.cell = mat.DenseCopyOf(S.cell)
		im.frac = f
		ret[k] = im
	}
	return ret, nil
}

//cartToFrac converts a matrix of Cartesian coordinates, one site per row,
//to fractional coordinates in the given cell.
func cartToFrac(cell, cart *mat.Dense) (*mat.Dense, error) {
	var inv mat.Dense
	if err := inv.Inverse(cell); err != nil {
		return nil, CError{string(ErrSingularCell), []string{"cartToFrac"}}
	}
	r, _ := cart.Dims()
	frac := mat.NewDense(r, 3, nil)
	frac.Mul(cart, &inv)
	return frac, nil
}
