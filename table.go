// seehuhn.de/go/pdfcie - embed CIE-based colour spaces in PDF files
// Copyright (C) 2026  Jochen Voss <voss@seehuhn.de>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package pdfcie

// Fixed is a grid coordinate in 16.16 fixed-point representation.
type Fixed int32

const fixedShift = 16
const fixedScale = 1 << fixedShift

// ToFixed converts a float to fixed point, rounding to the nearest
// representable value.
func ToFixed(x float64) Fixed {
	if x < 0 {
		return Fixed(x*fixedScale - 0.5)
	}
	return Fixed(x*fixedScale + 0.5)
}

// IntToFixed converts an integer grid index to fixed point.
func IntToFixed(i int) Fixed {
	return Fixed(i) << fixedShift
}

// Floor returns the integer part of the coordinate.
func (f Fixed) Floor() int {
	return int(f >> fixedShift)
}

// Frac returns the fractional part of the coordinate as a float in [0, 1).
func (f Fixed) Frac() float64 {
	return float64(f&(fixedScale-1)) / fixedScale
}

// ColorTable is a 3- or 4-dimensional colour lookup table.
//
// NDims is the number of input indices, 3 or 4.  Dims[0..NDims-1] are the
// table dimensions, and M is the number of output components per grid point.
// Depth is the number of bytes per sample, 1 or 2 (0 is treated as 1).
//
// For NDims == 3, Data[i], 0 <= i < Dims[0], holds the samples for outer
// index i as a string of Dims[1] × Dims[2] × M × Depth bytes.  For
// NDims == 4, Data[i], 0 <= i < Dims[0] × Dims[1], holds strings of
// Dims[2] × Dims[3] × M × Depth bytes.  All strings have the same length.
// Samples are unsigned big-endian fractions of the full byte range.
type ColorTable struct {
	NDims int
	Dims  [4]int
	M     int
	Depth int
	Data  [][]byte
}

// cell locates the sample string and byte offset for the given grid indices.
func (t *ColorTable) cell(idx [4]int) ([]byte, int) {
	depth := t.Depth
	if depth == 0 {
		depth = 1
	}
	var s []byte
	var off int
	if t.NDims == 3 {
		s = t.Data[idx[0]]
		off = (idx[1]*t.Dims[2] + idx[2]) * t.M * depth
	} else {
		s = t.Data[idx[0]*t.Dims[1]+idx[1]]
		off = (idx[2]*t.Dims[3] + idx[3]) * t.M * depth
	}
	return s, off
}

// sample accumulates the M output values at the given grid indices into pv,
// scaled by weight.
func (t *ColorTable) sample(idx [4]int, weight float64, pv []float64) {
	s, off := t.cell(idx)
	if t.Depth == 2 {
		for c := 0; c < t.M; c++ {
			v := uint16(s[off+2*c])<<8 | uint16(s[off+2*c+1])
			pv[c] += weight * float64(v) / 65535
		}
		return
	}
	for c := 0; c < t.M; c++ {
		pv[c] += weight * float64(s[off+c]) / 255
	}
}

// Nearest looks up the stored entry at the given grid coordinates without
// interpolation.  The coordinates are expected to be pre-rounded by the
// caller; fractional parts are truncated.  pi must hold NDims coordinates in
// [0, Dims[i]-1], and pv must have room for M values.
func (t *ColorTable) Nearest(pi []Fixed, pv []float64) {
	var idx [4]int
	for i := 0; i < t.NDims; i++ {
		idx[i] = pi[i].Floor()
	}
	for c := 0; c < t.M; c++ {
		pv[c] = 0
	}
	t.sample(idx, 1, pv)
}

// Linear interpolates multilinearly between the 2^NDims grid points
// surrounding the given fixed-point coordinates.  At exact grid points the
// result equals [ColorTable.Nearest].  Coordinates must lie in
// [0, Dims[i]-1]; behaviour outside that range is undefined.
func (t *ColorTable) Linear(pi []Fixed, pv []float64) {
	n := t.NDims
	var idx [4]int
	var frac [4]float64
	for i := 0; i < n; i++ {
		idx[i] = pi[i].Floor()
		frac[i] = pi[i].Frac()
	}
	for c := 0; c < t.M; c++ {
		pv[c] = 0
	}

	for corner := 0; corner < 1<<n; corner++ {
		weight := 1.0
		j := idx
		for d := 0; d < n; d++ {
			if corner&(1<<d) != 0 {
				weight *= frac[d]
				j[d]++
			} else {
				weight *= 1 - frac[d]
			}
		}
		// corners above the last grid point always carry weight 0
		if weight == 0 {
			continue
		}
		t.sample(j, weight, pv)
	}
}
