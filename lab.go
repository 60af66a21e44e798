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

import "math"

// labG is the inverse of the CIE L* companding function g.
func labG(v float64) float64 {
	if v >= 6.0*6.0*6.0/(29*29*29) {
		return math.Cbrt(v)
	}
	return v*(841.0/108) + 4.0/29
}

// XYZToLab converts XYZ tristimulus values to CIE 1976 L*a*b* relative to
// the given white point.  L* is clamped to the PDF range [0, 100].
func XYZToLab(xyz, whitePoint [3]float64) (L, a, b float64) {
	L = labG(xyz[1]/whitePoint[1])*116 - 16
	L = clamp(L, 0, 100)
	lunit := (L + 16) / 116

	a = (labG(xyz[0]/whitePoint[0]) - lunit) * 500
	b = (labG(xyz[2]/whitePoint[2]) - lunit) * -200
	return L, a, b
}

// ABRange estimates the range of a* and b* attainable by the colour space,
// by evaluating the full XYZ/Lab pipeline at all 2^n combinations of the
// per-component range endpoints.  The transform is not monotone in general,
// so all corners must be visited rather than each axis separately.
//
// The result is a superset bound for points inside the component ranges.
// The L* range is always [0, 100] and is not reported.
func (s *Space) ABRange() (aRange, bRange Range) {
	n := s.Kind.NumComponents()
	aRange = Range{Min: 1000, Max: -1000}
	bRange = Range{Min: 1000, Max: -1000}

	var in [4]float64
	for i := 0; i < 1<<n; i++ {
		for j := 0; j < n; j++ {
			r := s.rangeFor(j)
			if i&(1<<j) != 0 {
				in[j] = r.Max
			} else {
				in[j] = r.Min
			}
		}
		xyz := s.ToXYZ(in[:n], WhitePointD50)
		_, a, b := XYZToLab(xyz, s.WhitePoint)
		aRange.Min = min(aRange.Min, a)
		aRange.Max = max(aRange.Max, a)
		bRange.Min = min(bRange.Min, b)
		bRange.Max = max(bRange.Max, b)
	}
	return aRange, bRange
}
