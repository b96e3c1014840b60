/*
 * doc.go, part of goccd
 *
 * Copyright 2023 Raul Mera A. (raulpuntomeraatusachpuntocl)
 *
    This program is free software: you can redistribute it and/or modify
    it under the terms of the GNU Lesser General Public License as published by
    the Free Software Foundation, either version 2.1 of the License, or
    (at your option) any later version.

    This program is distributed in the hope that it will be useful,
    but WITHOUT ANY WARRANTY; without even the implied warranty of
    MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
    GNU General Public License for more details.

    You should have received a copy of the GNU Lesser General Public License
    along with this program.  If not, see <http://www.gnu.org/licenses/>.
 *
 *
 * goCCD is developed at the Universidad de Santiago de Chile
 * (USACH)
 *
*/

/*Package ccd is the main package of the goCCD library. It builds configuration
coordinate diagrams for the study of carrier capture by point defects in
semiconductors, starting from the relaxed geometries of a defect in two
electronic states.


	**goCCD Capabilities**


    Reads/writes VASP POSCAR/CONTCAR files into periodic structures
	(lattice plus fractional coordinates, minimum-image aware).

    Generates the structures displaced along the linear path between the
	two defect geometries, for both electronic states, at any set of
	fractional displacements, including extrapolations beyond the endpoints.

    Reduces the 3N-dimensional displacement between the two geometries to a
	scalar generalized coordinate Q (amu^1/2 A), and recovers the Q value of
	any structure lying on the path between them.

    Assembles one-dimensional potential energy surfaces, one point per
	calculation, from the total energies of the displaced structures.
	The energies can come from vasprun.xml files (see the vasp subpackage),
	plain or compressed, or from anything implementing the Result interface.

    Fits a harmonic model to each surface, with the vertex free or pinned,
	and recovers the effective phonon frequency from its curvature.

    Plots the surfaces and the fitted models (see the ccdplot subpackage).


goCCD keeps coordinates in gonum matrices (gonum.org/v1/gonum/mat), one row
per site, so results can be fed to the rest of the gonum ecosystem directly.*/
package ccd
