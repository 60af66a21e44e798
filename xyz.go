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

// WhitePointD50 is the CIE standard illuminant D50 white point in XYZ
// coordinates.  This is the reference illuminant for the ICC Profile
// Connection Space, and the target white point for all synthesized profiles.
var WhitePointD50 = [3]float64{0.9642, 1.0, 0.8249}

// ToXYZ evaluates the colour space at the given component values and maps
// the result towards the target white point.  in must hold
// [Space.NumComponents] values within the declared component ranges.
//
// The white point mapping scales X and Z linearly by the ratio of the white
// points, leaving Y unchanged.  This is an approximation; a Bradford
// chromatic adaptation is deliberately not used, to keep output identical
// across writers of the same file.
func (s *Space) ToXYZ(in []float64, targetWhite [3]float64) [3]float64 {
	xyz := s.rawXYZ(in)

	if s.Kind == SpaceA {
		// Single-component spaces are rendered achromatically: X and Z are
		// rebuilt from the white point scaled by Y.  This matches Acrobat
		// rather than a literal reading of the PostScript specification.
		xyz[0] = s.WhitePoint[0] * xyz[1]
		xyz[2] = s.WhitePoint[2] * xyz[1]
	}

	xyz[0] *= targetWhite[0] / s.WhitePoint[0]
	xyz[2] *= targetWhite[2] / s.WhitePoint[2]
	return xyz
}

// rawXYZ evaluates the variant-specific pipeline, giving XYZ relative to the
// space's own white point.
func (s *Space) rawXYZ(in []float64) [3]float64 {
	n := s.Kind.NumComponents()
	var dec [4]float64
	for i := 0; i < n; i++ {
		dec[i] = s.decodeAt(i, in[i])
	}

	var v [3]float64
	switch s.Kind {
	case SpaceA:
		v = [3]float64{dec[0], dec[0], dec[0]}
	case SpaceDEF, SpaceDEFG:
		if s.Table != nil {
			v = s.lookupTable(dec[:n])
			break
		}
		fallthrough
	default:
		v = [3]float64{dec[0], dec[1], dec[2]}
	}

	if s.Matrix != nil {
		v = s.Matrix.Apply(v)
	}
	for i, f := range s.DecodeLMN {
		if f != nil && i < 3 {
			v[i] = f(v[i])
		}
	}
	if s.MatrixLMN != nil {
		v = s.MatrixLMN.Apply(v)
	}
	return v
}

// lookupTable interpolates the decoded components in the space's sampled
// lookup stage.  Decoded values are clamped to [0, 1] and scaled to the grid.
func (s *Space) lookupTable(dec []float64) [3]float64 {
	t := s.Table
	var pi [4]Fixed
	for i, d := range dec {
		x := ToFixed(clamp(d, 0, 1) * float64(t.Dims[i]-1))
		hi := IntToFixed(t.Dims[i] - 1)
		if x > hi {
			x = hi
		}
		if x < 0 {
			x = 0
		}
		pi[i] = x
	}
	var pv [3]float64
	t.Linear(pi[:t.NDims], pv[:])
	return pv
}

// adjustWhitePoint linearly rescales an XYZ colour from one white point to
// another.
func adjustWhitePoint(v, from, to [3]float64) [3]float64 {
	return [3]float64{
		v[0] * to[0] / from[0],
		v[1] * to[1] / from[1],
		v[2] * to[2] / from[2],
	}
}
