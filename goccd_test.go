/*
 * goccd_test.go
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

import (
	"fmt"
	"math"
	"testing"

	"gonum.org/v1/gonum/mat"
)

//compfloat determines whether a and b are the same to eps precision. If they
//are not, it returns the index of the offending value and the difference.
func compfloat(a, b []float64, eps float64) (int, float64, bool) {
	if len(a) != len(b) {
		return 0, 0, false
	}
	for i := range a {
		diff := a[i] - b[i]
		if math.Abs(diff) > eps {
			return i, diff, false
		}
	}
	return 0, 0, true
}

//cubic builds a structure in a cubic cell of side a, with one site per
//symbol, at the given fractional coordinates (3 per site).
func cubic(Te *testing.T, a float64, symbols []string, coords []float64) *Structure {
	cell := mat.NewDense(3, 3, []float64{a, 0, 0, 0, a, 0, 0, 0, a})
	sites := make([]*Site, len(symbols))
	for i, s := range symbols {
		var err error
		sites[i], err = NewSite(s)
		if err != nil {
			Te.Fatal(err)
		}
	}
	frac := mat.NewDense(len(symbols), 3, coords)
	S, err := NewStructure(cell, sites, frac)
	if err != nil {
		Te.Fatal(err)
	}
	return S
}

//TestDQ checks the mass-weighted displacement against a value small enough
//to do by hand: one site of mass 12 displaced exactly 1 A gives sqrt(12).
func TestDQ(Te *testing.T) {
	cell := mat.NewDense(3, 3, []float64{10, 0, 0, 0, 10, 0, 0, 0, 10})
	sites := []*Site{{Symbol: "C", Mass: 12.0}}
	ground, err := NewStructure(cell, sites, mat.NewDense(1, 3, []float64{0, 0, 0}))
	if err != nil {
		Te.Fatal(err)
	}
	excited, err := NewStructure(cell, sites, mat.NewDense(1, 3, []float64{0.1, 0, 0}))
	if err != nil {
		Te.Fatal(err)
	}
	dq, err := DQ(ground, excited)
	if err != nil {
		Te.Error(err)
	}
	fmt.Println("dQ for a 1 A displacement of a mass-12 site:", dq)
	if math.Abs(dq-math.Sqrt(12)) > 1e-10 {
		Te.Errorf("got dQ %v, want sqrt(12)=%v", dq, math.Sqrt(12))
	}
	//symmetry
	dq2, err := DQ(excited, ground)
	if err != nil {
		Te.Error(err)
	}
	if dq != dq2 {
		Te.Errorf("dQ not symmetric: %v vs %v", dq, dq2)
	}
	//a structure against itself
	zero, err := DQ(ground, ground)
	if err != nil {
		Te.Error(err)
	}
	if zero != 0 {
		Te.Errorf("dQ of a structure against itself is %v, not 0", zero)
	}
}

//TestDQMinimumImage checks that displacements are measured to the closest
//periodic image: a site does not travel across the whole cell just because
//its fractional coordinate wrapped around.
func TestDQMinimumImage(Te *testing.T) {
	ground := cubic(Te, 10, []string{"Si"}, []float64{0.95, 0, 0})
	excited := cubic(Te, 10, []string{"Si"}, []float64{0.05, 0, 0})
	d := ground.SiteDistance(excited, 0)
	if math.Abs(d-1.0) > 1e-10 {
		Te.Errorf("minimum-image distance came out as %v, want 1.0", d)
	}
	//a full lattice vector apart is the same position
	other := cubic(Te, 10, []string{"Si"}, []float64{1.95, -1, 2})
	if d := ground.SiteDistance(other, 0); math.Abs(d) > 1e-10 {
		Te.Errorf("sites a lattice vector apart have distance %v, not 0", d)
	}
}

func TestDQIncompatible(Te *testing.T) {
	a := cubic(Te, 10, []string{"Si"}, []float64{0, 0, 0})
	b := cubic(Te, 10, []string{"Si", "Si"}, []float64{0, 0, 0, 0.5, 0.5, 0.5})
	_, err := DQ(a, b)
	if err == nil {
		Te.Error("dQ between structures of different sizes didn't fail")
	}
	if err.Error() != string(ErrIncompatibleStructures) {
		Te.Errorf("wrong error kind: %v", err)
	}
}

//TestInterpolate checks that the images lie where they should, that the
//path takes the short way around periodic boundaries, and that
//extrapolation just works.
func TestInterpolate(Te *testing.T) {
	ground := cubic(Te, 10, []string{"Ga", "N"}, []float64{0.95, 0, 0, 0.2, 0.2, 0.2})
	excited := cubic(Te, 10, []string{"Ga", "N"}, []float64{0.05, 0, 0, 0.2, 0.24, 0.2})
	ims, err := ground.Interpolate(excited, []float64{0, 0.5, 1, 1.5})
	if err != nil {
		Te.Fatal(err)
	}
	if len(ims) != 4 {
		Te.Fatalf("asked for 4 images, got %d", len(ims))
	}
	f0 := ims[0].FracCoords()
	if f0.At(0, 0) != 0.95 || f0.At(1, 1) != 0.2 {
		Te.Error("image at 0 is not the starting structure")
	}
	//the Ga site should cross the cell face, not the cell
	fhalf := ims[1].FracCoords()
	if math.Abs(fhalf.At(0, 0)-1.0) > 1e-10 {
		Te.Errorf("midpoint Ga at %v, want 1.0 (the short way around)", fhalf.At(0, 0))
	}
	fend := ims[2].FracCoords()
	if math.Abs(fend.At(0, 0)-1.05) > 1e-10 {
		Te.Errorf("endpoint Ga at %v, want 1.05", fend.At(0, 0))
	}
	//extrapolation beyond the end
	fext := ims[3].FracCoords()
	if math.Abs(fext.At(1, 1)-0.26) > 1e-10 {
		Te.Errorf("extrapolated N at %v, want 0.26", fext.At(1, 1))
	}
}

//TestQFromStructure checks the endpoints and the interpolation consistency:
//the image at a fraction p of the path must report Q = p*dQ.
func TestQFromStructure(Te *testing.T) {
	ground := cubic(Te, 10, []string{"Ga", "N", "N"},
		[]float64{0.1, 0.1, 0.1, 0.3, 0.3, 0.3, 0.6, 0.6, 0.6})
	excited := cubic(Te, 10, []string{"Ga", "N", "N"},
		[]float64{0.13, 0.1, 0.1, 0.3, 0.32, 0.3, 0.6, 0.6, 0.61})
	dq, err := DQ(ground, excited)
	if err != nil {
		Te.Fatal(err)
	}
	if q, err := QFromStructure(ground, excited, ground); err != nil || math.Abs(q) > 1e-9 {
		Te.Errorf("Q of the ground state: %v (err %v), want 0", q, err)
	}
	if q, err := QFromStructure(ground, excited, excited); err != nil || math.Abs(q-dq) > 1e-9 {
		Te.Errorf("Q of the excited state: %v (err %v), want dQ=%v", q, err, dq)
	}
	for _, p := range []float64{-0.2, 0.25, 0.5, 0.75, 1.2} {
		ims, err := ground.Interpolate(excited, []float64{p})
		if err != nil {
			Te.Fatal(err)
		}
		q, err := QFromStructure(ground, excited, ims[0])
		if err != nil {
			Te.Error(err)
		}
		if math.Abs(q-p*dq) > 1e-6 {
			Te.Errorf("image at %v of the path reports Q=%v, want %v", p, q, p*dq)
		}
	}
}

//TestQConsensus puts one site across a periodic boundary, whose raw
//Cartesian coordinates then vote for a nonsense fraction, and checks that
//the honest majority wins.
func TestQConsensus(Te *testing.T) {
	ground := cubic(Te, 10, []string{"Si", "Si", "Si", "Si"},
		[]float64{0.1, 0.1, 0.1, 0.4, 0.4, 0.4, 0.7, 0.2, 0.2, 0.95, 0, 0})
	excited := cubic(Te, 10, []string{"Si", "Si", "Si", "Si"},
		[]float64{0.12, 0.1, 0.1, 0.42, 0.4, 0.4, 0.72, 0.2, 0.2, 0.05, 0, 0})
	dq, err := DQ(ground, excited)
	if err != nil {
		Te.Fatal(err)
	}
	ims, err := ground.Interpolate(excited, []float64{0.5})
	if err != nil {
		Te.Fatal(err)
	}
	//hand the voter the crossing site as read back from a calculation,
	//wrapped into the home cell, where its raw coordinates lie far off the path
	wrapped := ims[0].FracCoords()
	wrapped.Set(3, 0, wrapped.At(3, 0)-1)
	s, err := NewStructure(ims[0].Cell(), ims[0].Sites, wrapped)
	if err != nil {
		Te.Fatal(err)
	}
	q, err := QFromStructure(ground, excited, s)
	if err != nil {
		Te.Error(err)
	}
	fmt.Println("Q from the outvoted structure:", q, "expected:", 0.5*dq)
	if math.Abs(q-0.5*dq) > 1e-6 {
		Te.Errorf("the boundary-crossing site outvoted the honest ones: Q=%v, want %v", q, 0.5*dq)
	}
}

func TestQDegenerate(Te *testing.T) {
	ground := cubic(Te, 10, []string{"Si"}, []float64{0.1, 0.1, 0.1})
	_, err := QFromStructure(ground, ground, ground)
	if err == nil {
		Te.Fatal("Q between identical endpoints didn't fail")
	}
	if err.Error() != string(ErrDegenerateCoordinate) {
		Te.Errorf("wrong error kind: %v", err)
	}
	//a displacement below the cutoff is still degenerate...
	excited := cubic(Te, 10, []string{"Si"}, []float64{0.100005, 0.1, 0.1})
	if _, err = QFromStructure(ground, excited, ground); err == nil {
		Te.Error("Q between nearly-identical endpoints didn't fail")
	}
	//...unless the cutoff is lowered
	o := DefaultQOptions()
	o.Tol(1e-8)
	if _, err = QFromStructure(ground, excited, ground, o); err != nil {
		Te.Errorf("Q with a lowered cutoff failed: %v", err)
	}
}

//TestCCStructures checks the counts, the order, the zero stripping and the
//branch offsets of the displaced-structure generator.
func TestCCStructures(Te *testing.T) {
	ground := cubic(Te, 10, []string{"Ga", "N"}, []float64{0.1, 0.1, 0.1, 0.35, 0.3, 0.3})
	excited := cubic(Te, 10, []string{"Ga", "N"}, []float64{0.12, 0.1, 0.1, 0.35, 0.33, 0.3})
	dq, err := DQ(ground, excited)
	if err != nil {
		Te.Fatal(err)
	}
	disps := []float64{-0.1, 0, 0.1}
	gs, es, err := CCStructures(ground, excited, disps)
	if err != nil {
		Te.Fatal(err)
	}
	if len(gs) != 2 || len(es) != 2 {
		Te.Fatalf("0.0 not stripped: got %d and %d structures", len(gs), len(es))
	}
	wantg := []float64{-0.1 * dq, 0.1 * dq}
	wante := []float64{0.9 * dq, 1.1 * dq}
	for i := range gs {
		qg, err := QFromStructure(ground, excited, gs[i])
		if err != nil {
			Te.Error(err)
		}
		qe, err := QFromStructure(ground, excited, es[i])
		if err != nil {
			Te.Error(err)
		}
		if math.Abs(qg-wantg[i]) > 1e-6 {
			Te.Errorf("ground branch %d at Q=%v, want %v", i, qg, wantg[i])
		}
		if math.Abs(qe-wante[i]) > 1e-6 {
			Te.Errorf("excited branch %d at Q=%v, want %v", i, qe, wante[i])
		}
	}
	//keeping the zero
	gs, es, err = CCStructures(ground, excited, disps, true)
	if err != nil {
		Te.Fatal(err)
	}
	if len(gs) != 3 || len(es) != 3 {
		Te.Fatalf("asked to keep the 0.0: got %d and %d structures", len(gs), len(es))
	}
	q0g, err := QFromStructure(ground, excited, gs[1])
	if err != nil {
		Te.Error(err)
	}
	q0e, err := QFromStructure(ground, excited, es[1])
	if err != nil {
		Te.Error(err)
	}
	if math.Abs(q0g) > 1e-9 || math.Abs(q0e-dq) > 1e-9 {
		Te.Errorf("kept zeros at Q=%v and Q=%v, want 0 and %v", q0g, q0e, dq)
	}
	//incompatible endpoints
	small := cubic(Te, 10, []string{"Ga"}, []float64{0.1, 0.1, 0.1})
	if _, _, err := CCStructures(small, excited, disps); err == nil {
		Te.Error("CCStructures between structures of different sizes didn't fail")
	}
}

//fakeResult plays the part of a finished calculation in the PES tests.
type fakeResult struct {
	s   *Structure
	e   float64
	err error
}

func (f *fakeResult) FinalStructure() (*Structure, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.s, nil
}

func (f *fakeResult) FinalEnergy() (float64, error) {
	if f.err != nil {
		return 0, f.err
	}
	return f.e, nil
}

//TestPES assembles a surface from canned results and checks the zero of
//energy, the preserved order, and that one bad result sinks the whole
//thing.
func TestPES(Te *testing.T) {
	ground := cubic(Te, 10, []string{"Ga", "N"}, []float64{0.1, 0.1, 0.1, 0.35, 0.3, 0.3})
	excited := cubic(Te, 10, []string{"Ga", "N"}, []float64{0.12, 0.1, 0.1, 0.35, 0.33, 0.3})
	dq, err := DQ(ground, excited)
	if err != nil {
		Te.Fatal(err)
	}
	ims, err := ground.Interpolate(excited, []float64{0.8, 0, 0.4})
	if err != nil {
		Te.Fatal(err)
	}
	results := []Result{
		&fakeResult{s: ims[0], e: -19.5},
		&fakeResult{s: ims[1], e: -20.0},
		&fakeResult{s: ims[2], e: -19.9},
	}
	Q, E, err := PES(ground, excited, results)
	if err != nil {
		Te.Fatal(err)
	}
	if i, d, ok := compfloat(Q, []float64{0.8 * dq, 0, 0.4 * dq}, 1e-6); !ok {
		Te.Errorf("Q %d off by %v", i, d)
	}
	if i, d, ok := compfloat(E, []float64{0.5, 0, 0.1}, 1e-10); !ok {
		Te.Errorf("energy %d off by %v", i, d)
	}
	fmt.Println("PES assembled:", Q, E)
	//one rotten apple
	results[1] = &fakeResult{err: fmt.Errorf("the calculation died")}
	if _, _, err := PES(ground, excited, results); err == nil {
		Te.Error("PES with a failed result didn't fail")
	}
	//and nothing at all
	if _, _, err := PES(ground, excited, []Result{}); err == nil {
		Te.Error("PES with no results didn't fail")
	}
}
