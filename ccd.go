/*
 * ccd.go, part of goccd.
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
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
)

//CCStructures generates the displaced structures for a CC diagram from the
//relaxed ground and excited state geometries. For each value d in
//displacements it produces the structure lying at d on the linear path
//from ground to excited (the ground branch) and the one lying at d+1 (the
//excited branch), so the same displacements slice serves both states:
//d=0.1 means a ground structure displaced 10% towards excited, and an
//excited structure displaced 10% "past" excited, away from ground. Values
//outside [0,1] are fine, the path just gets extrapolated. The two returned
//slices follow the order of displacements. A displacement of exactly 0
//would reproduce a relaxed endpoint, which normally is already calculated,
//so zeros are dropped from the list unless keepZero is given and true.
func CCStructures(ground, excited *Structure, displacements []float64, keepZero ...bool) ([]*Structure, []*Structure, error) {
	if ground == nil || excited == nil {
		return nil, nil, CError{string(ErrNilData), []string{"CCStructures"}}
	}
	if ground.Len() != excited.Len() {
		return nil, nil, CError{string(ErrIncompatibleStructures), []string{"CCStructures"}}
	}
	disps := displacements
	if len(keepZero) == 0 || !keepZero[0] {
		disps = make([]float64, 0, len(displacements))
		for _, d := range displacements {
			if d == 0 {
				continue
			}
			disps = append(disps, d)
		}
	}
	gdisps := make([]float64, len(disps))
	edisps := make([]float64, len(disps))
	copy(gdisps, disps)
	for i, d := range disps {
		edisps[i] = d + 1
	}
	gs, err := ground.Interpolate(excited, gdisps)
	if err != nil {
		return nil, nil, errDecorate(err, "CCStructures")
	}
	es, err := ground.Interpolate(excited, edisps)
	if err != nil {
		return nil, nil, errDecorate(err, "CCStructures")
	}
	return gs, es, nil
}

//DQ returns the total mass-weighted displacement between the ground and
//excited geometries, in amu^1/2 A: the square root of the sum over sites
//of the squared minimum-image site displacement times the site mass. It is
//the length of the configuration path between the two geometries, and the
//natural scale of the generalized coordinate: the ground state sits at Q=0
//and the excited state at Q=DQ.
func DQ(ground, excited *Structure) (float64, error) {
	if ground == nil || excited == nil {
		return 0, CError{string(ErrNilData), []string{"DQ"}}
	}
	if ground.Len() != excited.Len() {
		return 0, CError{string(ErrIncompatibleStructures), []string{"DQ"}}
	}
	var sum float64
	for i := 0; i < ground.Len(); i++ {
		d := ground.SiteDistance(excited, i)
		sum += d * d * ground.Site(i).Mass
	}
	return math.Sqrt(sum), nil
}

//QFromStructure returns the generalized coordinate Q, in amu^1/2 A, of a
//structure s assumed to lie on the linear path between the ground and
//excited geometries. For every site that moves at least QOptions.Tol()
//between the endpoints, each Cartesian axis proposes the fraction of the
//path covered by s on that axis; the fractions are rounded to
//QOptions.Digits() decimals and the most repeated value wins the vote,
//with ties going to the smallest value. The winner times DQ is Q. Sites
//that barely move between the endpoints only contribute noise, which is
//why they are left out; if no site at all moves enough, there is no path
//to speak of and an error is returned rather than a silent "Q=0".
func QFromStructure(ground, excited, s *Structure, options ...*QOptions) (float64, error) {
	var o *QOptions
	if len(options) > 0 && options[0] != nil {
		o = options[0]
	} else {
		o = DefaultQOptions()
	}
	if ground == nil || excited == nil || s == nil {
		return 0, CError{string(ErrNilData), []string{"QFromStructure"}}
	}
	if ground.Len() != excited.Len() || ground.Len() != s.Len() {
		return 0, CError{string(ErrIncompatibleStructures), []string{"QFromStructure"}}
	}
	dq, err := DQ(ground, excited)
	if err != nil {
		return 0, errDecorate(err, "QFromStructure")
	}
	gc := ground.CartCoords()
	ec := excited.CartCoords()
	sc := s.CartCoords()
	cand := make([]float64, 0, 3*s.Len())
	for i := 0; i < s.Len(); i++ {
		if ground.SiteDistance(excited, i) < o.Tol() {
			continue
		}
		for ax := 0; ax < 3; ax++ {
			x := (sc.At(i, ax) - gc.At(i, ax)) / (ec.At(i, ax) - gc.At(i, ax))
			if math.IsNaN(x) || math.IsInf(x, 0) {
				continue //the site moved, but not along this axis
			}
			cand = append(cand, x)
		}
	}
	if len(cand) == 0 {
		return 0, CError{string(ErrDegenerateCoordinate), []string{"QFromStructure"}}
	}
	pow := math.Pow(10, float64(o.Digits()))
	for i, v := range cand {
		cand[i] = math.Round(v*pow) / pow
	}
	sort.Float64s(cand)
	best, bestn := cand[0], 1
	cur, curn := cand[0], 1
	for _, v := range cand[1:] {
		if v == cur {
			curn++
		} else {
			cur, curn = v, 1
		}
		if curn > bestn {
			best, bestn = cur, curn
		}
	}
	return dq * best, nil
}

//PES assembles a one-dimensional potential energy surface from the results
//of the calculations on the displaced structures: for each result it
//recovers the Q of the final geometry and its total energy. The energies
//are shifted so the lowest one is exactly 0. Both returned slices follow
//the order of results, no sorting of any kind takes place. A failure on
//any result aborts the whole surface: a partially assembled PES would fit
//to a wrong frequency without any sign of trouble.
func PES(ground, excited *Structure, results []Result, options ...*QOptions) ([]float64, []float64, error) {
	if ground == nil || excited == nil || results == nil {
		return nil, nil, CError{string(ErrNilData), []string{"PES"}}
	}
	if len(results) == 0 {
		return nil, nil, CError{string(ErrNotEnoughData), []string{"PES"}}
	}
	Q := make([]float64, len(results))
	energy := make([]float64, len(results))
	for i, res := range results {
		if res == nil {
			return nil, nil, CError{string(ErrNilData), []string{fmt.Sprintf("PES: result %d", i)}}
		}
		s, err := res.FinalStructure()
		if err != nil {
			return nil, nil, errDecorate(err, fmt.Sprintf("PES: result %d", i))
		}
		Q[i], err = QFromStructure(ground, excited, s, options...)
		if err != nil {
			return nil, nil, errDecorate(err, fmt.Sprintf("PES: result %d", i))
		}
		energy[i], err = res.FinalEnergy()
		if err != nil {
			return nil, nil, errDecorate(err, fmt.Sprintf("PES: result %d", i))
		}
	}
	floats.AddConst(-floats.Min(energy), energy)
	return Q, energy, nil
}
