/*
 * poscar.go, part of goccd.
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

import (
	"bufio"
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/mat"
)

//PoscarRead reads a VASP POSCAR/CONTCAR file and returns the structure in
//it. Element symbols must be present (the VASP 5 format); a "Selective
//dynamics" block is tolerated and its flags ignored, and both Direct and
//Cartesian coordinates are understood. A negative universal scaling factor
//is taken, as VASP does, as the desired cell volume.
func PoscarRead(poscarname string) (*Structure, error) {
	poscarfile, err := os.Open(poscarname)
	if err != nil {
		return nil, err
	}
	defer poscarfile.Close()
	pos := bufio.NewReader(poscarfile)
	readline := func() ([]string, error) {
		line, err := pos.ReadString('\n')
		if err != nil && line == "" {
			return nil, fmt.Errorf("Ill formatted POSCAR file %s: file ends too early", poscarname)
		}
		return strings.Fields(line), nil
	}
	if _, err := readline(); err != nil { //comment line
		return nil, err
	}
	fields, err := readline()
	if err != nil {
		return nil, err
	}
	if len(fields) < 1 {
		return nil, fmt.Errorf("Ill formatted POSCAR file %s: no scaling factor", poscarname)
	}
	scale, err := strconv.ParseFloat(fields[0], 64)
	if err != nil || scale == 0 {
		return nil, fmt.Errorf("Ill formatted POSCAR file %s: bad scaling factor", poscarname)
	}
	cell := mat.NewDense(3, 3, nil)
	for i := 0; i < 3; i++ {
		fields, err = readline()
		if err != nil {
			return nil, err
		}
		if len(fields) < 3 {
			return nil, fmt.Errorf("Ill formatted POSCAR file %s: short lattice vector", poscarname)
		}
		for j := 0; j < 3; j++ {
			v, err := strconv.ParseFloat(fields[j], 64)
			if err != nil {
				return nil, fmt.Errorf("Ill formatted POSCAR file %s: bad lattice vector", poscarname)
			}
			cell.Set(i, j, v)
		}
	}
	if scale < 0 {
		vol := math.Abs(mat.Det(cell))
		scale = math.Cbrt(-scale / vol)
	}
	cell.Scale(scale, cell)
	symbols, err := readline()
	if err != nil {
		return nil, err
	}
	if len(symbols) == 0 {
		return nil, fmt.Errorf("Ill formatted POSCAR file %s: no element symbols", poscarname)
	}
	if _, err := strconv.Atoi(symbols[0]); err == nil {
		return nil, fmt.Errorf("POSCAR file %s carries no element symbols (VASP 4 format?)", poscarname)
	}
	counts, err := readline()
	if err != nil {
		return nil, err
	}
	if len(counts) != len(symbols) {
		return nil, fmt.Errorf("Ill formatted POSCAR file %s: %d symbols but %d counts", poscarname, len(symbols), len(counts))
	}
	sites := make([]*Site, 0)
	for i, sym := range symbols {
		n, err := strconv.Atoi(counts[i])
		if err != nil || n <= 0 {
			return nil, fmt.Errorf("Ill formatted POSCAR file %s: bad species count", poscarname)
		}
		for j := 0; j < n; j++ {
			site, err := NewSite(sym)
			if err != nil {
				return nil, errDecorate(err, "PoscarRead: "+poscarname)
			}
			sites = append(sites, site)
		}
	}
	fields, err = readline()
	if err != nil {
		return nil, err
	}
	if len(fields) > 0 && (fields[0][0] == 'S' || fields[0][0] == 's') {
		fields, err = readline() //skip the Selective dynamics tag
		if err != nil {
			return nil, err
		}
	}
	if len(fields) == 0 {
		return nil, fmt.Errorf("Ill formatted POSCAR file %s: no coordinate mode", poscarname)
	}
	var cartesian bool
	switch fields[0][0] {
	case 'D', 'd':
		cartesian = false
	case 'C', 'c', 'K', 'k':
		cartesian = true
	default:
		return nil, fmt.Errorf("Ill formatted POSCAR file %s: unknown coordinate mode %s", poscarname, fields[0])
	}
	coords := mat.NewDense(len(sites), 3, nil)
	for i := range sites {
		fields, err = readline()
		if err != nil {
			return nil, err
		}
		if len(fields) < 3 {
			return nil, fmt.Errorf("Line number %d in file %s ill formed", i, poscarname)
		}
		for j := 0; j < 3; j++ {
			v, err := strconv.ParseFloat(fields[j], 64)
			if err != nil {
				return nil, fmt.Errorf("Line number %d in file %s ill formed", i, poscarname)
			}
			coords.Set(i, j, v)
		}
	}
	frac := coords
	if cartesian {
		coords.Scale(scale, coords)
		frac, err = cartToFrac(cell, coords)
		if err != nil {
			return nil, errDecorate(err, "PoscarRead: "+poscarname)
		}
	}
	ret, err := NewStructure(cell, sites, frac)
	if err != nil {
		return nil, errDecorate(err, "PoscarRead: "+poscarname)
	}
	return ret, nil
}

//PoscarWrite writes the structure S to a VASP 5 POSCAR file with name
//poscarname, in Direct coordinates, with the sites grouped by consecutive
//runs of the same element so their order is preserved.
func PoscarWrite(poscarname string, S *Structure) error {
	if S == nil {
		return CError{string(ErrNilData), []string{"PoscarWrite"}}
	}
	out, err := os.Create(poscarname)
	if err != nil {
		return err
	}
	defer out.Close()
	symbols, counts := siteRuns(S)
	fmt.Fprintf(out, "%s\n", strings.Join(symbols, " "))
	fmt.Fprintf(out, "%4.1f\n", 1.0)
	cell := S.Cell()
	for i := 0; i < 3; i++ {
		_, err = fmt.Fprintf(out, " %20.12f %20.12f %20.12f\n", cell.At(i, 0), cell.At(i, 1), cell.At(i, 2))
		if err != nil {
			return err
		}
	}
	fmt.Fprintf(out, "%s\n", strings.Join(symbols, " "))
	for i, v := range counts {
		if i > 0 {
			fmt.Fprintf(out, " ")
		}
		fmt.Fprintf(out, "%d", v)
	}
	fmt.Fprintf(out, "\nDirect\n")
	frac := S.FracCoords()
	for i := 0; i < S.Len(); i++ {
		_, err = fmt.Fprintf(out, " %20.16f %20.16f %20.16f\n", frac.At(i, 0), frac.At(i, 1), frac.At(i, 2))
		if err != nil {
			return err
		}
	}
	return nil
}

//siteRuns returns the element symbols of S as consecutive runs, together
//with the length of each run.
func siteRuns(S *Structure) ([]string, []int) {
	symbols := make([]string, 0)
	counts := make([]int, 0)
	for _, v := range S.Sites {
		if len(symbols) == 0 || symbols[len(symbols)-1] != v.Symbol {
			symbols = append(symbols, v.Symbol)
			counts = append(counts, 1)
			continue
		}
		counts[len(counts)-1]++
	}
	return symbols, counts
}
