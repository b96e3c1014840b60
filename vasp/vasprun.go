/*
 * vasprun.go, part of goccd
 *
 * Copyright 2024 Raul Mera A. (raulpuntomeraatusachpuntocl)
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
*/

//Package vasp reads the output of VASP calculations into goCCD types.
//Only the little slice of a vasprun.xml that a CC diagram needs is read:
//the species, the last ionic step's geometry and its free energy.
package vasp

import (
	"bufio"
	"compress/gzip"
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/klauspost/compress/zstd"
	ccd "github.com/rmera/goccd"
	"gonum.org/v1/gonum/mat"
)

//Vasprun holds what goCCD needs from a vasprun.xml file: the species of
//every ion, the geometry of the last ionic step and its total (free)
//energy. It fullfills ccd.Result, so a slice of them is a PES in the
//making. The whole file is digested on creation; the accessors don't
//touch the disk again.
type Vasprun struct {
	filename string
	species  []string
	cell     []float64 //9 elements, the 3 lattice vectors
	frac     []float64 //3 per ion
	energy   float64
}

//NewVasprun reads the vasprun.xml file with the given name. Files
//compressed with gzip (.gz) or zstd (.zst, .zstd) are decompressed on the
//fly, by extension. A file missing any of the needed pieces (say, from a
//crashed run) gives an error, never a half-filled Vasprun.
func NewVasprun(name string) (*Vasprun, error) {
	V := new(Vasprun)
	V.filename = name
	f, err := os.Open(name)
	if err != nil {
		return nil, Error{UnableToOpen + ": " + err.Error(), name, []string{"NewVasprun"}, true}
	}
	defer f.Close()
	var r io.ReadCloser
	switch strings.ToLower(filepath.Ext(name)) {
	case ".gz":
		gz, err := gzip.NewReader(bufio.NewReader(f))
		if err != nil {
			return nil, Error{UnableToOpen + ": " + err.Error(), name, []string{"NewVasprun"}, true}
		}
		r = gz
	case ".zst", ".zstd":
		zs, err := zstd.NewReader(bufio.NewReader(f))
		if err != nil {
			return nil, Error{UnableToOpen + ": " + err.Error(), name, []string{"NewVasprun"}, true}
		}
		r = &zstdql{zs.Close, zs}
	default:
		r = io.NopCloser(bufio.NewReader(f))
	}
	defer r.Close()
	if err := V.parse(r); err != nil {
		return nil, err
	}
	return V, nil
}

//FileName returns the name of the file the Vasprun was read from.
func (V *Vasprun) FileName() string {
	return V.filename
}

//FinalStructure returns the geometry of the last ionic step of the
//calculation.
func (V *Vasprun) FinalStructure() (*ccd.Structure, error) {
	sites := make([]*ccd.Site, len(V.species))
	for i, sym := range V.species {
		s, err := ccd.NewSite(sym)
		if err != nil {
			return nil, errDecorate(err, "FinalStructure: "+V.filename)
		}
		sites[i] = s
	}
	cell := mat.NewDense(3, 3, V.cell)
	frac := mat.NewDense(len(V.species), 3, V.frac)
	ret, err := ccd.NewStructure(cell, sites, frac)
	if err != nil {
		return nil, errDecorate(err, "FinalStructure: "+V.filename)
	}
	return ret, nil
}

//FinalEnergy returns the total free energy of the last ionic step of the
//calculation, in eV.
func (V *Vasprun) FinalEnergy() (float64, error) {
	return V.energy, nil
}

//parse walks the XML once and keeps, for each piece, the last occurrence:
//the structure of the last ionic step ("finalpos") and the free energy of
//the last electronic step of the last ionic step, which is what VASP
//itself reports as the final energy.
func (V *Vasprun) parse(r io.Reader) error {
	d := xml.NewDecoder(r)
	var inAtoms, firstC, hasEnergy bool
	var collecting string
	var rows, pendBasis, pendPositions []float64
	for {
		tok, err := d.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return Error{WrongFormat + ": " + err.Error(), V.filename, []string{"parse"}, true}
		}
		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "array":
				if xmlAttr(t, "name") == "atoms" {
					inAtoms = true
				}
			case "rc":
				firstC = inAtoms
			case "c":
				if firstC { //the first column carries the element symbol
					var s string
					if err := d.DecodeElement(&s, &t); err != nil {
						return Error{WrongFormat + ": " + err.Error(), V.filename, []string{"parse"}, true}
					}
					V.species = append(V.species, strings.TrimSpace(s))
					firstC = false
				}
			case "structure":
				pendBasis, pendPositions = nil, nil
			case "varray":
				if n := xmlAttr(t, "name"); n == "basis" || n == "positions" {
					collecting = n
					rows = make([]float64, 0, 9)
				}
			case "v":
				if collecting == "" {
					continue
				}
				var s string
				if err := d.DecodeElement(&s, &t); err != nil {
					return Error{WrongFormat + ": " + err.Error(), V.filename, []string{"parse"}, true}
				}
				fields := strings.Fields(s)
				if len(fields) != 3 {
					return Error{fmt.Sprintf("%s: vector with %d components", WrongFormat, len(fields)), V.filename, []string{"parse"}, true}
				}
				for _, v := range fields {
					val, err := strconv.ParseFloat(v, 64)
					if err != nil {
						return Error{WrongFormat + ": " + err.Error(), V.filename, []string{"parse"}, true}
					}
					rows = append(rows, val)
				}
			case "i":
				if xmlAttr(t, "name") != "e_fr_energy" {
					continue
				}
				var s string
				if err := d.DecodeElement(&s, &t); err != nil {
					return Error{WrongFormat + ": " + err.Error(), V.filename, []string{"parse"}, true}
				}
				val, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
				if err != nil {
					return Error{WrongFormat + ": " + err.Error(), V.filename, []string{"parse"}, true}
				}
				V.energy = val
				hasEnergy = true
			}
		case xml.EndElement:
			switch t.Name.Local {
			case "array":
				inAtoms = false
			case "varray":
				switch collecting {
				case "basis":
					pendBasis = rows
				case "positions":
					pendPositions = rows
				}
				collecting = ""
			case "structure":
				if pendBasis != nil && pendPositions != nil {
					V.cell = pendBasis
					V.frac = pendPositions
				}
			}
		}
	}
	if len(V.species) == 0 {
		return Error{NoSpecies, V.filename, []string{"parse"}, true}
	}
	if len(V.cell) != 9 || len(V.frac) != 3*len(V.species) {
		return Error{NoStructure, V.filename, []string{"parse"}, true}
	}
	if !hasEnergy {
		return Error{NoEnergy, V.filename, []string{"parse"}, true}
	}
	return nil
}

func xmlAttr(t xml.StartElement, key string) string {
	for _, a := range t.Attr {
		if a.Name.Local == key {
			return strings.TrimSpace(a.Value)
		}
	}
	return ""
}

//zstd's decoder doesn't return an error on Close, so we wrap it into a
//regular io.ReadCloser.
type zstdql struct {
	closeql func() //The things I have to do xD
	*zstd.Decoder
}

func (z *zstdql) Close() error {
	z.closeql()
	return nil
}

//Errors

//errDecorate is a helper function that asserts that the error implements
//the ccd.Error interface and decorates the error with the caller's name
//before returning it.
func errDecorate(err error, caller string) error {
	err2, ok := err.(ccd.Error)
	if !ok {
		return err
	}
	err2.Decorate(caller)
	return err2
}

//Error is the general structure for vasprun.xml reading errors. It
//fullfills ccd.Error and ccd.FileError.
type Error struct {
	message  string
	filename string //the input file that has problems, or empty string if none.
	deco     []string
	critical bool
}

func (err Error) Error() string {
	return fmt.Sprintf("vasprun file %s error: %s", err.filename, err.message)
}

//Decorate Adds new information to the error
func (err Error) Decorate(deco string) []string {
	//Even though this method does not use a pointer as a receiver, and tries to alter the receiver,
	//it should work, since err.deco is a slice, and hence a pointer itself.
	if deco != "" {
		err.deco = append(err.deco, deco)
	}
	return err.deco
}

//FileName returns the file to which the failing read was associated
func (err Error) FileName() string { return err.filename }

//Critical returns true if the error is critical, false otherwise
func (err Error) Critical() bool { return err.critical }

const (
	UnableToOpen   = "Unable to open file"
	WrongFormat    = "Wrong format in the vasprun.xml file"
	NoSpecies      = "No species list found"
	NoStructure    = "No complete structure found"
	NoEnergy       = "No final energy found"
	NotEnoughFiles = "No vasprun.xml files given"
)
