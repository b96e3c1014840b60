package vasp

import (
	ccd "github.com/rmera/goccd"
)

//PES assembles a one-dimensional potential energy surface from vasprun.xml
//files, one point per file, in the order of paths. It is a thin wrapper
//over ccd.PES: each file contributes the Q of its final geometry and its
//final energy, and the energies come back shifted so the lowest is 0. Any
//unreadable or incomplete file aborts the whole surface. The minimum of
//each branch (the undisplaced, relaxed calculation) should be among the
//files, or the zero of energy will be off.
func PES(ground, excited *ccd.Structure, paths []string, options ...*ccd.QOptions) ([]float64, []float64, error) {
	if len(paths) == 0 {
		return nil, nil, Error{NotEnoughFiles, "", []string{"PES"}, true}
	}
	results := make([]ccd.Result, len(paths))
	for i, p := range paths {
		vr, err := NewVasprun(p)
		if err != nil {
			return nil, nil, errDecorate(err, "PES")
		}
		results[i] = vr
	}
	Q, energy, err := ccd.PES(ground, excited, results, options...)
	if err != nil {
		return nil, nil, errDecorate(err, "PES")
	}
	return Q, energy, nil
}
