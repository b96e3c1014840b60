package ccd

//QOptions contains various options for the functions that recover the
//generalized coordinate of a structure.
type QOptions struct {
	tol    float64 //sites closer than this between the endpoints are left out
	digits int
}

//DefaultQOptions returns reasonable options for structures coming from
//converged relaxations: a 0.001 A cutoff for still sites and rounding of
//the per-axis fractions to 6 decimals before the vote.
func DefaultQOptions() *QOptions {
	r := new(QOptions)
	r.tol = 0.001
	r.digits = 6
	return r
}

//Returns the distance cutoff, in A, below which a pair of corresponding
//sites of the two endpoint structures is considered not to have moved, and
//left out of the coordinate determination (such sites only add numerical
//noise). Sets it to a new value, if a valid one is given.
func (O *QOptions) Tol(tol ...float64) float64 {
	if len(tol) > 0 && tol[0] >= 0 {
		O.tol = tol[0]
	}
	return O.tol
}

//Returns the number of decimals to which the per-axis displacement
//fractions are rounded before looking for the most repeated value, and
//sets it to a new value, if a valid one is given.
func (O *QOptions) Digits(n ...int) int {
	if len(n) > 0 && n[0] > 0 {
		O.digits = n[0]
	}
	return O.digits
}

//FitOptions contains various options for the harmonic fit.
type FitOptions struct {
	fixq0   bool
	q0      float64
	maxiter int
	plotter Plotter
}

//DefaultFitOptions returns reasonable options for fitting a PES with a
//handful of points: a free vertex, no plotting and a generous iteration
//allowance.
func DefaultFitOptions() *FitOptions {
	r := new(FitOptions)
	r.maxiter = 1000
	return r
}

//Returns whether the vertex of the parabola is pinned and, if a value is
//given, pins the vertex to it. Use this when the position of the minimum
//is known better than the sampled points around it, typically because the
//fitted branch was displaced from a relaxed geometry whose Q is known
//exactly.
func (O *FitOptions) FixedQ0(q0 ...float64) bool {
	if len(q0) > 0 {
		O.fixq0 = true
		O.q0 = q0[0]
	}
	return O.fixq0
}

//ReleaseQ0 lets the vertex of the parabola vary freely in the fit. This is
//the default.
func (O *FitOptions) ReleaseQ0() {
	O.fixq0 = false
}

//Q0 returns the value to which the vertex of the parabola is pinned. It is
//only meaningful if FixedQ0() is true.
func (O *FitOptions) Q0() float64 {
	return O.q0
}

//Returns the maximum number of major iterations allowed to the fit, and
//sets it to a new value, if a valid one is given.
func (O *FitOptions) MaxIter(n ...int) int {
	if len(n) > 0 && n[0] > 0 {
		O.maxiter = n[0]
	}
	return O.maxiter
}

//Returns the plotter on which the fitted model will be drawn, and sets it,
//if one is given. A nil plotter, the default, disables drawing.
func (O *FitOptions) Plot(p ...Plotter) Plotter {
	if len(p) > 0 {
		O.plotter = p[0]
	}
	return O.plotter
}
