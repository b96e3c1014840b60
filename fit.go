/*
 * fit.go, part of goccd.
 *
 *
 * Copyright 2024 Raul Mera A. (raulpuntomeraatusachpuntocl)
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
	"log"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/optimize"
)

//Fit holds the parameters of the harmonic model
//
//	E(Q) = 0.5*Omega*(Q-Q0)^2 + DE
//
//fitted to a PES. Omega is the curvature, in eV/(amu A^2), Q0 the position
//of the vertex, in amu^1/2 A, and DE the energy of the vertex, in eV. Cov
//is the covariance matrix of the fitted parameters, in the order (Omega,
//Q0, DE), or (Omega, DE) if the fit was done with the vertex pinned, in
//which case Fixed is true and Q0 just repeats the pinned value. Cov is nil
//when there are no degrees of freedom left to estimate it, or when the
//data leaves the parameters so undetermined that the estimate does not
//exist.
type Fit struct {
	Omega float64
	Q0    float64
	DE    float64
	Cov   *mat.Dense
	Fixed bool
}

//Eval returns the energy of the fitted model at the coordinate q.
func (F *Fit) Eval(q float64) float64 {
	d := q - F.Q0
	return 0.5*F.Omega*d*d + F.DE
}

//Frequency returns the harmonic phonon frequency implied by the curvature
//of the fit, in eV.
func (F *Fit) Frequency() float64 {
	return HBAR * math.Sqrt(F.Omega*EV2J/(ANGS2M*ANGS2M*AMU2KG))
}

//HarmonicFit fits the harmonic model 0.5*omega*(Q-Q0)^2 + dE to the given
//PES by least squares. With the default options all three parameters are
//free: the linear-algebra solution for the equivalent polynomial seeds a
//quasi-Newton refinement of the model parameters themselves. If the
//options pin the vertex (FixedQ0), the model becomes linear in the two
//remaining parameters and they are solved for directly; the returned Q0 is
//then exactly the pinned value. Data through which no upward parabola can
//be put (too few or all-equal points, no curvature, or curvature pointing
//down) makes the fit fail rather than return a frequency that means
//nothing. If the options carry a Plotter, the fitted model is drawn on it,
//sampled over 1000 points spanning the Q range of the data; a drawing
//problem is only logged, the fit itself is already done by then.
func HarmonicFit(Q, energy []float64, options ...*FitOptions) (*Fit, error) {
	var o *FitOptions
	if len(options) > 0 && options[0] != nil {
		o = options[0]
	} else {
		o = DefaultFitOptions()
	}
	if Q == nil || energy == nil {
		return nil, CError{string(ErrNilData), []string{"HarmonicFit"}}
	}
	if len(Q) != len(energy) {
		return nil, CError{string(ErrMismatchedData), []string{"HarmonicFit"}}
	}
	npar := 3
	if o.FixedQ0() {
		npar = 2
	}
	n := len(Q)
	if n < npar {
		return nil, CError{string(ErrNotEnoughData), []string{"HarmonicFit"}}
	}
	var ret *Fit
	var err error
	if o.FixedQ0() {
		ret, err = pinnedFit(Q, energy, o.Q0())
	} else {
		ret, err = freeFit(Q, energy, o.MaxIter())
	}
	if err != nil {
		return nil, errDecorate(err, "HarmonicFit")
	}
	if math.IsNaN(ret.Omega) || math.IsInf(ret.Omega, 0) || ret.Omega <= 0 {
		return nil, CError{string(ErrFitDivergence), []string{"HarmonicFit: the PES does not curve upwards"}}
	}
	ret.Cov = covariance(Q, energy, ret, npar)
	if p := o.Plot(); p != nil {
		qs := make([]float64, 1000)
		floats.Span(qs, floats.Min(Q), floats.Max(Q))
		es := make([]float64, len(qs))
		for i, v := range qs {
			es[i] = ret.Eval(v)
		}
		if err := p.AddXY(qs, es); err != nil {
			log.Printf("goCCD: couldn't draw the fitted model: %v", err)
		}
	}
	return ret, nil
}

//freeFit fits all three model parameters. The least-squares parabola
//a*Q^2+b*Q+c, solved with QR, maps to (omega,Q0,dE)=(2a, -b/2a, c-b^2/4a),
//which for exactly quadratic data is already the answer; the quasi-Newton
//refinement takes care of the general case.
func freeFit(Q, energy []float64, maxiter int) (*Fit, error) {
	n := len(Q)
	A := mat.NewDense(n, 3, nil)
	for i, q := range Q {
		A.Set(i, 0, q*q)
		A.Set(i, 1, q)
		A.Set(i, 2, 1)
	}
	b := mat.NewVecDense(n, energy)
	var p mat.Dense
	if err := p.Solve(A, b); err != nil {
		return nil, CError{string(ErrFitDivergence), []string{"freeFit: " + err.Error()}}
	}
	pa, pb, pc := p.At(0, 0), p.At(1, 0), p.At(2, 0)
	if pa == 0 {
		return nil, CError{string(ErrFitDivergence), []string{"freeFit: the PES has no curvature"}}
	}
	omega := 2 * pa
	q0 := -pb / (2 * pa)
	de := pc - 0.5*omega*q0*q0
	prob := optimize.Problem{
		Func: func(x []float64) float64 {
			var ssr float64
			for i, q := range Q {
				d := q - x[1]
				r := 0.5*x[0]*d*d + x[2] - energy[i]
				ssr += r * r
			}
			return ssr
		},
		Grad: func(grad, x []float64) {
			grad[0], grad[1], grad[2] = 0, 0, 0
			for i, q := range Q {
				d := q - x[1]
				r := 0.5*x[0]*d*d + x[2] - energy[i]
				grad[0] += r * d * d
				grad[1] -= 2 * x[0] * r * d
				grad[2] += 2 * r
			}
		},
	}
	set := &optimize.Settings{MajorIterations: maxiter}
	res, err := optimize.Minimize(prob, []float64{omega, q0, de}, set, &optimize.LBFGS{})
	if err != nil {
		return nil, CError{string(ErrFitDivergence), []string{"freeFit: " + err.Error()}}
	}
	if err := res.Status.Err(); err != nil {
		return nil, CError{string(ErrFitDivergence), []string{"freeFit: " + err.Error()}}
	}
	return &Fit{Omega: res.X[0], Q0: res.X[1], DE: res.X[2]}, nil
}

//pinnedFit fits the model with the vertex pinned to q0. The two remaining
//parameters enter the model linearly, so the least-squares solution is
//exact and no iteration happens at all.
func pinnedFit(Q, energy []float64, q0 float64) (*Fit, error) {
	n := len(Q)
	A := mat.NewDense(n, 2, nil)
	for i, q := range Q {
		d := q - q0
		A.Set(i, 0, 0.5*d*d)
		A.Set(i, 1, 1)
	}
	b := mat.NewVecDense(n, energy)
	var p mat.Dense
	if err := p.Solve(A, b); err != nil {
		return nil, CError{string(ErrFitDivergence), []string{"pinnedFit: " + err.Error()}}
	}
	return &Fit{Omega: p.At(0, 0), Q0: q0, DE: p.At(1, 0), Fixed: true}, nil
}

//covariance estimates the covariance of the fitted parameters from the
//Jacobian of the model at the solution, scaled by the residual variance.
//It returns nil if there are no degrees of freedom left, or if the normal
//matrix cannot be inverted.
func covariance(Q, energy []float64, F *Fit, npar int) *mat.Dense {
	n := len(Q)
	dof := n - npar
	if dof <= 0 {
		return nil
	}
	var ssr float64
	J := mat.NewDense(n, npar, nil)
	for i, q := range Q {
		d := q - F.Q0
		r := F.Eval(q) - energy[i]
		ssr += r * r
		J.Set(i, 0, 0.5*d*d)
		if npar == 3 {
			J.Set(i, 1, -F.Omega*d)
			J.Set(i, 2, 1)
		} else {
			J.Set(i, 1, 1)
		}
	}
	var jtj mat.Dense
	jtj.Mul(J.T(), J)
	var inv mat.Dense
	if err := inv.Inverse(&jtj); err != nil {
		log.Printf("goCCD: parameters too undetermined for a covariance estimate: %v", err)
		return nil
	}
	inv.Scale(ssr/float64(dof), &inv)
	return &inv
}
