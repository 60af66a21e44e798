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

import (
	"math"
	"testing"
)

func TestSingleComponentAchromatic(t *testing.T) {
	// single-component spaces are forced onto the achromatic axis: after
	// scaling to the target white point, XYZ must be proportional to it
	gamma := func(x float64) float64 { return x * x }
	wp := [3]float64{0.9505, 1.0, 1.0890}
	s := &Space{
		Kind:       SpaceA,
		WhitePoint: wp,
		Decode:     []DecodeFunc{gamma},
	}

	for _, x := range []float64{0, 0.25, 0.5, 1} {
		xyz := s.ToXYZ([]float64{x}, WhitePointD50)
		y := gamma(x)
		want := [3]float64{
			WhitePointD50[0] * y,
			y,
			WhitePointD50[2] * y,
		}
		for i := range xyz {
			if math.Abs(xyz[i]-want[i]) > 1e-12 {
				t.Errorf("x=%g: got %v, want %v", x, xyz, want)
				break
			}
		}
	}
}

func TestWhitePointScaling(t *testing.T) {
	// X and Z are scaled by the ratio of the white points, Y is unchanged
	wp := [3]float64{1.0985, 1.0, 0.3558}
	s := &Space{
		Kind:       SpaceABC,
		WhitePoint: wp,
		Matrix: &Matrix3{
			1, 0, 0,
			0, 1, 0,
			0, 0, 1,
		},
	}

	in := []float64{0.2, 0.4, 0.8}
	xyz := s.ToXYZ(in, WhitePointD50)
	want := [3]float64{
		in[0] * WhitePointD50[0] / wp[0],
		in[1],
		in[2] * WhitePointD50[2] / wp[2],
	}
	for i := range xyz {
		if math.Abs(xyz[i]-want[i]) > 1e-12 {
			t.Errorf("got %v, want %v", xyz, want)
			break
		}
	}
}

func TestPipelineStages(t *testing.T) {
	// decode, matrix, and the second analytic stage apply in order
	double := func(x float64) float64 { return 2 * x }
	square := func(x float64) float64 { return x * x }
	s := &Space{
		Kind:       SpaceABC,
		WhitePoint: WhitePointD50,
		Decode:     []DecodeFunc{double, double, double},
		Matrix: &Matrix3{
			0, 1, 0,
			0, 0, 1,
			1, 0, 0,
		},
		DecodeLMN: []DecodeFunc{square, square, square},
		MatrixLMN: &Matrix3{
			0.5, 0, 0,
			0, 0.5, 0,
			0, 0, 0.5,
		},
	}

	in := []float64{0.1, 0.2, 0.3}
	got := s.rawXYZ(in)
	// decode: (0.2, 0.4, 0.6); matrix rotates: (0.4, 0.6, 0.2);
	// square: (0.16, 0.36, 0.04); scale: (0.08, 0.18, 0.02)
	want := [3]float64{0.08, 0.18, 0.02}
	for i := range got {
		if math.Abs(got[i]-want[i]) > 1e-12 {
			t.Errorf("got %v, want %v", got, want)
			break
		}
	}
}

func TestTableLookupStage(t *testing.T) {
	// the DEF variant interpolates decoded components in the sampled stage
	tab := makeTable3(4, 4, 4, 3)
	s := &Space{
		Kind:       SpaceDEF,
		WhitePoint: WhitePointD50,
		Table:      tab,
	}

	// at grid points the lookup must match the stored samples
	pi := make([]Fixed, 3)
	want := make([]float64, 3)
	for i := 0; i < 4; i++ {
		pi[0] = IntToFixed(i)
		pi[1] = IntToFixed(i)
		pi[2] = IntToFixed(i)
		tab.Nearest(pi, want)

		x := float64(i) / 3
		got := s.rawXYZ([]float64{x, x, x})
		for c := range got {
			if math.Abs(got[c]-want[c]) > 1e-9 {
				t.Errorf("grid point %d: got %v, want %v", i, got, want)
				break
			}
		}
	}
}

func TestDecodeOutsideUnitRange(t *testing.T) {
	// declared ranges other than [0,1] are passed to the decode functions
	// unchanged
	var seen []float64
	s := &Space{
		Kind:       SpaceABC,
		WhitePoint: WhitePointD50,
		Ranges:     []Range{{-1, 1}, {-1, 1}, {-1, 1}},
		Decode: []DecodeFunc{
			func(x float64) float64 { seen = append(seen, x); return x },
			nil,
			nil,
		},
	}
	s.rawXYZ([]float64{-0.5, 0, 0})
	if len(seen) != 1 || seen[0] != -0.5 {
		t.Errorf("decode saw %v, want [-0.5]", seen)
	}
}
