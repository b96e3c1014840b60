/*
 * conversion.go, part of goccd.
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

//This provides useful conversion factors and other constants

//Conversions, CODATA 2018 values
const (
	EV2J   = 1.602176634e-19 //eV to J
	J2EV   = 1 / 1.602176634e-19
	AMU2KG = 1.66053906660e-27 //atomic mass unit to kg
	KG2AMU = 1 / 1.66053906660e-27
	ANGS2M = 1e-10 //Angstrom to m
	M2ANGS = 1e10
)

//Others
const (
	HBAR = 6.582119569e-16 //reduced Planck constant, in eV*s
)
