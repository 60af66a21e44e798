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
	"errors"
	"math"
)

// Curve represents a 1D transfer function (TRC) from an ICC curveType
// element.
//
// To create a curve:
//   - Gamma curve: set Gamma only (e.g. &Curve{Gamma: 2.2})
//   - Sampled curve: set Table only
type Curve struct {
	// Gamma specifies the exponent for a simple gamma curve (curveType with
	// n=1). The curve computes y = x^Gamma. Set to 1.0 for an identity curve
	// (encoded as curveType with n=0). Ignored if Table is set.
	Gamma float64

	// Table specifies a sampled curve (curveType with n>1). Values are evenly
	// spaced from input 0 to 1, with linear interpolation between samples.
	Table []uint16
}

// DecodeCurve decodes a curve from ICC tag data.
// The data must be a curveType element.
func DecodeCurve(data []byte) (*Curve, error) {
	if len(data) < 12 {
		return nil, errInvalidTagData
	}
	if string(data[0:4]) != "curv" {
		return nil, errUnexpectedType
	}

	n := getUint32(data, 8)
	if n == 0 {
		// identity curve: y = x (gamma = 1.0)
		return &Curve{Gamma: 1.0}, nil
	}
	if n == 1 {
		if len(data) < 14 {
			return nil, errInvalidTagData
		}
		// gamma encoded as u8Fixed8Number
		gamma := float64(getUint16(data, 12)) / 256.0
		return &Curve{Gamma: gamma}, nil
	}

	// sampled curve
	if uint64(len(data)) < 12+2*uint64(n) {
		return nil, errInvalidTagData
	}
	table := make([]uint16, n)
	for i := range table {
		table[i] = getUint16(data, 12+i*2)
	}
	return &Curve{Table: table}, nil
}

// Evaluate computes the output value for an input value x in [0, 1].
// The output is clamped to [0, 1].
func (c *Curve) Evaluate(x float64) float64 {
	x = clamp(x, 0, 1)

	var y float64
	if c.Table != nil {
		y = c.evaluateSampled(x)
	} else if c.Gamma != 0 {
		if x <= 0 {
			y = 0
		} else {
			y = math.Pow(x, c.Gamma)
		}
	} else {
		y = x
	}

	return clamp(y, 0, 1)
}

func (c *Curve) evaluateSampled(x float64) float64 {
	n := len(c.Table)
	if n == 0 {
		return x
	}
	if n == 1 {
		return float64(c.Table[0]) / 65535.0
	}

	// linear interpolation
	pos := x * float64(n-1)
	idx := int(pos)
	if idx < 0 {
		return float64(c.Table[0]) / 65535.0
	}
	if idx >= n-1 {
		return float64(c.Table[n-1]) / 65535.0
	}

	frac := pos - float64(idx)
	v0 := float64(c.Table[idx]) / 65535.0
	v1 := float64(c.Table[idx+1]) / 65535.0
	return v0 + frac*(v1-v0)
}

var (
	errMissingTag     = errors.New("missing tag")
	errUnexpectedType = errors.New("unexpected tag data type")
	errInvalidTagData = errors.New("invalid tag data")
)
