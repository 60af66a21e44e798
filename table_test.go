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

// makeTable3 builds a 3-dimensional table where each output component is a
// known linear function of the grid indices.
func makeTable3(d0, d1, d2, m int) *ColorTable {
	t := &ColorTable{
		NDims: 3,
		Dims:  [4]int{d0, d1, d2},
		M:     m,
		Depth: 1,
	}
	for i := 0; i < d0; i++ {
		s := make([]byte, d1*d2*m)
		for j := 0; j < d1; j++ {
			for k := 0; k < d2; k++ {
				for c := 0; c < m; c++ {
					v := (i*2 + j*3 + k*5 + c*7) % 256
					s[(j*d2+k)*m+c] = byte(v)
				}
			}
		}
		t.Data = append(t.Data, s)
	}
	return t
}

func makeTable4(d0, d1, d2, d3, m int) *ColorTable {
	t := &ColorTable{
		NDims: 4,
		Dims:  [4]int{d0, d1, d2, d3},
		M:     m,
		Depth: 2,
	}
	for i := 0; i < d0; i++ {
		for j := 0; j < d1; j++ {
			s := make([]byte, d2*d3*m*2)
			for k := 0; k < d2; k++ {
				for l := 0; l < d3; l++ {
					for c := 0; c < m; c++ {
						v := uint16((i*1000 + j*2000 + k*3000 + l*4000 + c*500) % 65536)
						putUint16(s, ((k*d3+l)*m+c)*2, v)
					}
				}
			}
			t.Data = append(t.Data, s)
		}
	}
	return t
}

func TestLinearAtGridPoints(t *testing.T) {
	tab := makeTable3(4, 3, 5, 3)

	pi := make([]Fixed, 3)
	want := make([]float64, 3)
	got := make([]float64, 3)
	for i := 0; i < 4; i++ {
		for j := 0; j < 3; j++ {
			for k := 0; k < 5; k++ {
				pi[0] = IntToFixed(i)
				pi[1] = IntToFixed(j)
				pi[2] = IntToFixed(k)
				tab.Nearest(pi, want)
				tab.Linear(pi, got)
				for c := range got {
					if got[c] != want[c] {
						t.Errorf("grid point (%d,%d,%d) output %d: linear %g != nearest %g",
							i, j, k, c, got[c], want[c])
					}
				}
			}
		}
	}
}

func TestLinearAtGridPoints4D(t *testing.T) {
	tab := makeTable4(3, 4, 2, 3, 3)

	pi := make([]Fixed, 4)
	want := make([]float64, 3)
	got := make([]float64, 3)
	for i := 0; i < 3; i++ {
		for j := 0; j < 4; j++ {
			for k := 0; k < 2; k++ {
				for l := 0; l < 3; l++ {
					pi[0] = IntToFixed(i)
					pi[1] = IntToFixed(j)
					pi[2] = IntToFixed(k)
					pi[3] = IntToFixed(l)
					tab.Nearest(pi, want)
					tab.Linear(pi, got)
					for c := range got {
						if got[c] != want[c] {
							t.Errorf("grid point (%d,%d,%d,%d) output %d: linear %g != nearest %g",
								i, j, k, l, c, got[c], want[c])
						}
					}
				}
			}
		}
	}
}

func TestLinearMidpoint(t *testing.T) {
	// two grid points along the last axis, interpolate halfway
	tab := &ColorTable{
		NDims: 3,
		Dims:  [4]int{1, 1, 2},
		M:     1,
		Depth: 1,
		Data:  [][]byte{{100, 200}},
	}
	pi := []Fixed{0, 0, IntToFixed(1) / 2}
	pv := make([]float64, 1)
	tab.Linear(pi, pv)
	want := (100.0/255 + 200.0/255) / 2
	if math.Abs(pv[0]-want) > 1e-12 {
		t.Errorf("midpoint: got %g, want %g", pv[0], want)
	}
}

func TestLinearUpperEdge(t *testing.T) {
	// coordinates exactly at the last grid point must not read beyond the
	// table
	tab := makeTable3(2, 2, 2, 3)
	pi := []Fixed{IntToFixed(1), IntToFixed(1), IntToFixed(1)}
	pv := make([]float64, 3)
	tab.Linear(pi, pv)

	want := make([]float64, 3)
	tab.Nearest(pi, want)
	for c := range pv {
		if pv[c] != want[c] {
			t.Errorf("output %d: got %g, want %g", c, pv[c], want[c])
		}
	}
}

func TestLinearMultilinear(t *testing.T) {
	// for a table sampling a multilinear function, interpolation must
	// reproduce the function everywhere
	f := func(x, y, z float64) float64 {
		return (x + 2*y + 4*z) / 16
	}
	d := 3
	tab := &ColorTable{
		NDims: 3,
		Dims:  [4]int{d, d, d},
		M:     1,
		Depth: 2,
	}
	for i := 0; i < d; i++ {
		s := make([]byte, d*d*2)
		for j := 0; j < d; j++ {
			for k := 0; k < d; k++ {
				v := f(float64(i), float64(j), float64(k))
				putUint16(s, (j*d+k)*2, uint16(math.Round(v*65535)))
			}
		}
		tab.Data = append(tab.Data, s)
	}

	pv := make([]float64, 1)
	for xi := 0.0; xi <= 2.0; xi += 0.25 {
		for yi := 0.0; yi <= 2.0; yi += 0.25 {
			for zi := 0.0; zi <= 2.0; zi += 0.25 {
				pi := []Fixed{ToFixed(xi), ToFixed(yi), ToFixed(zi)}
				tab.Linear(pi, pv)
				want := f(xi, yi, zi)
				if math.Abs(pv[0]-want) > 1e-4 {
					t.Errorf("f(%g,%g,%g): got %g, want %g", xi, yi, zi, pv[0], want)
				}
			}
		}
	}
}

func TestFixed(t *testing.T) {
	cases := []struct {
		x     float64
		floor int
		frac  float64
	}{
		{0, 0, 0},
		{1, 1, 0},
		{1.5, 1, 0.5},
		{2.25, 2, 0.25},
	}
	for _, c := range cases {
		f := ToFixed(c.x)
		if f.Floor() != c.floor {
			t.Errorf("ToFixed(%g).Floor() = %d, want %d", c.x, f.Floor(), c.floor)
		}
		if math.Abs(f.Frac()-c.frac) > 1e-4 {
			t.Errorf("ToFixed(%g).Frac() = %g, want %g", c.x, f.Frac(), c.frac)
		}
	}
}
