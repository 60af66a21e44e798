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
	"math/rand"
	"testing"
)

func synthTransform(t *testing.T, s *Space) *Transform {
	t.Helper()
	data, err := s.SynthesizeProfile()
	if err != nil {
		t.Fatal(err)
	}
	p, err := Decode(data)
	if err != nil {
		t.Fatal(err)
	}
	tr, err := NewTransform(p)
	if err != nil {
		t.Fatal(err)
	}
	return tr
}

func TestTransformClosedForm(t *testing.T) {
	s := onestepSpace()
	tr := synthTransform(t, s)

	rng := rand.New(rand.NewSource(3))
	for i := 0; i < 200; i++ {
		in := []float64{rng.Float64(), rng.Float64(), rng.Float64()}
		want := s.ToXYZ(in, WhitePointD50)
		got := tr.ToXYZ(in)
		for j := range got {
			if math.Abs(got[j]-want[j]) > 1e-3 {
				t.Fatalf("input %v: got %v, want %v", in, got, want)
			}
		}
	}
}

func TestTransformClosedFormLMN(t *testing.T) {
	s := lmnSpace()
	tr := synthTransform(t, s)

	rng := rand.New(rand.NewSource(6))
	for i := 0; i < 200; i++ {
		in := []float64{rng.Float64(), rng.Float64(), rng.Float64()}
		want := s.ToXYZ(in, WhitePointD50)
		got := tr.ToXYZ(in)
		for j := range got {
			if math.Abs(got[j]-want[j]) > 1e-3 {
				t.Fatalf("input %v: got %v, want %v", in, got, want)
			}
		}
	}
}

func TestTransformSampledGridPoints(t *testing.T) {
	s := sampledSpace()
	tr := synthTransform(t, s)

	// the profile samples the space on a 13-point grid; at grid points the
	// transform reproduces the space up to 16-bit quantization
	for i := 0; i < 13; i++ {
		for j := 0; j < 13; j += 3 {
			for k := 0; k < 13; k += 3 {
				in := []float64{float64(i) / 12, float64(j) / 12, float64(k) / 12}
				want := s.ToXYZ(in, WhitePointD50)
				got := tr.ToXYZ(in)
				for c := range got {
					if math.Abs(got[c]-want[c]) > 1e-3 {
						t.Fatalf("input %v: got %v, want %v", in, got, want)
					}
				}
			}
		}
	}
}

func TestTransformSampledInterior(t *testing.T) {
	s := sampledSpace()
	tr := synthTransform(t, s)

	// between grid points the transform interpolates; the smooth pipeline
	// keeps the error well below visual thresholds
	rng := rand.New(rand.NewSource(4))
	for i := 0; i < 200; i++ {
		in := []float64{rng.Float64(), rng.Float64(), rng.Float64()}
		want := s.ToXYZ(in, WhitePointD50)
		got := tr.ToXYZ(in)
		for c := range got {
			if math.Abs(got[c]-want[c]) > 0.02 {
				t.Fatalf("input %v: got %v, want %v", in, got, want)
			}
		}
	}
}

func TestTransformGray(t *testing.T) {
	s := &Space{
		Kind:       SpaceA,
		WhitePoint: WhitePointD50,
		Decode:     []DecodeFunc{func(x float64) float64 { return x * x }},
	}
	tr := synthTransform(t, s)

	for i := 0; i <= 254; i += 17 {
		x := float64(i) / 254
		want := s.ToXYZ([]float64{x}, WhitePointD50)
		got := tr.ToXYZ([]float64{x})
		for c := range got {
			if math.Abs(got[c]-want[c]) > 1e-3 {
				t.Fatalf("x=%g: got %v, want %v", x, got, want)
			}
		}
	}
}

func TestTransformFourComponents(t *testing.T) {
	s := &Space{
		Kind:       SpaceDEFG,
		WhitePoint: WhitePointD50,
		Table:      makeTable4(2, 2, 2, 2, 3),
	}
	tr := synthTransform(t, s)

	// the table stage is multilinear, so interpolation through the 7-point
	// profile grid is exact up to quantization everywhere
	rng := rand.New(rand.NewSource(5))
	for i := 0; i < 100; i++ {
		in := []float64{rng.Float64(), rng.Float64(), rng.Float64(), rng.Float64()}
		want := s.ToXYZ(in, WhitePointD50)
		got := tr.ToXYZ(in)
		for c := range got {
			if math.Abs(got[c]-want[c]) > 1e-3 {
				t.Fatalf("input %v: got %v, want %v", in, got, want)
			}
		}
	}
}

func TestTransformMissingTags(t *testing.T) {
	data, err := onestepSpace().SynthesizeProfile()
	if err != nil {
		t.Fatal(err)
	}
	p, err := Decode(data)
	if err != nil {
		t.Fatal(err)
	}
	delete(p.TagData, GreenTRC)
	if _, err := NewTransform(p); err == nil {
		t.Error("expected error for missing TRC tag")
	}
}
