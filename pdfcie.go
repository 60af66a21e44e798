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

// Package pdfcie converts CIE-based colour space descriptions into
// representations which are legal in PDF files.
//
// A CIE-based colour space maps device component values to CIE XYZ using
// per-component decode functions, an optional linear matrix, and (for the
// DEF/DEFG variants) a sampled lookup table.  PDF has no native way to embed
// such a description, so the space must be rewritten.  Depending on the PDF
// version of the output document, [ConvertSpace] emits either an analytic Lab
// colour space with estimated a*/b* ranges, or a synthesized ICC profile
// stream.
//
// # Converting Colour Spaces
//
// Describe the colour space as a [Space] and hand it to [ConvertSpace]
// together with the host document:
//
//	res, err := pdfcie.ConvertSpace(doc, space)
//	if err != nil {
//	    // fall back to a device colour space
//	}
//	switch res := res.(type) {
//	case *pdfcie.LabSpace: // write a /Lab dictionary
//	case *pdfcie.ICCSpace: // reference res.Stream from an /ICCBased array
//	}
//
// Pre-existing ICC profiles are embedded with [EmbedICCProfile], which
// checks the profile against the version restrictions of the output document
// and, where needed, requests a downgraded profile from an external colour
// management module.
//
// # Profile Synthesis
//
// Synthesized profiles use the scanner ("scnr") profile class with the XYZ
// connection space.  Spaces consisting of a single decode step followed by a
// single matrix step are written in closed form as three transfer curves plus
// three matrix columns; all other spaces are sampled into a multidimensional
// "mft2" lookup table.  White point handling uses a simple linear scaling
// towards D50 rather than a full chromatic adaptation.
package pdfcie

import "fmt"

// DecodeFunc is a per-component decode function of a CIE-based colour space.
// It must be defined on the component's declared range.
type DecodeFunc func(float64) float64

// Range is the closed interval [Min, Max] of a colour component.
type Range struct {
	Min, Max float64
}

// Matrix3 is a 3×3 matrix in row-major order.
type Matrix3 [9]float64

// Apply multiplies the matrix with a column vector.
func (m *Matrix3) Apply(v [3]float64) [3]float64 {
	return [3]float64{
		m[0]*v[0] + m[1]*v[1] + m[2]*v[2],
		m[3]*v[0] + m[4]*v[1] + m[5]*v[2],
		m[6]*v[0] + m[7]*v[1] + m[8]*v[2],
	}
}

// Column returns column i of the matrix.  For a matrix mapping decoded
// components to XYZ, column i is the XYZ colorant of component i.
func (m *Matrix3) Column(i int) [3]float64 {
	return [3]float64{m[i], m[3+i], m[6+i]}
}

// Kind identifies the variant of a CIE-based colour space.
type Kind int

// The CIE-based colour space variants.
const (
	SpaceA    Kind = iota + 1 // one component
	SpaceABC                  // three components
	SpaceDEF                  // three components, sampled lookup stage
	SpaceDEFG                 // four components, sampled lookup stage
)

func (k Kind) String() string {
	switch k {
	case SpaceA:
		return "CIEBasedA"
	case SpaceABC:
		return "CIEBasedABC"
	case SpaceDEF:
		return "CIEBasedDEF"
	case SpaceDEFG:
		return "CIEBasedDEFG"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// NumComponents returns the number of colour components of the variant,
// or 0 if the variant is unknown.
func (k Kind) NumComponents() int {
	switch k {
	case SpaceA:
		return 1
	case SpaceABC, SpaceDEF:
		return 3
	case SpaceDEFG:
		return 4
	default:
		return 0
	}
}

// Space describes a CIE-based colour space.
//
// The pipeline evaluated by [Space.ToXYZ] is: per-component Decode, then the
// Table lookup (DEF/DEFG variants only), then Matrix, then the optional
// DecodeLMN/MatrixLMN stage.  All stages other than the white point are
// optional; a missing stage is the identity.
//
// A Space is immutable for the duration of a conversion and is never
// retained past the call that uses it.  Distinct conversions may run
// concurrently on the same Space.
type Space struct {
	Kind Kind

	// WhitePoint is the diffuse white point in CIE 1931 XYZ coordinates
	// (positive entries, Y=1).
	WhitePoint [3]float64

	// Ranges holds the valid range of each colour component.
	// Missing entries default to [0, 1].
	Ranges []Range

	// Decode holds the per-component decode functions.
	// Missing or nil entries are the identity.
	Decode []DecodeFunc

	// Matrix maps decoded components to the next stage.  For a space
	// consisting of a single decode step followed by a single matrix step,
	// the columns of Matrix are the XYZ colorants of the components.
	Matrix *Matrix3

	// Table is the sampled lookup stage of the DEF and DEFG variants.
	// The table must have three output components.
	Table *ColorTable

	// DecodeLMN and MatrixLMN form an optional second analytic stage.
	// If the first stage is the identity, this stage alone can still form
	// a single decode/matrix pipeline; otherwise a space using both stages
	// is written using a sampled lookup table.
	DecodeLMN []DecodeFunc
	MatrixLMN *Matrix3
}

// NumComponents returns the number of colour components of the space.
func (s *Space) NumComponents() int {
	return s.Kind.NumComponents()
}

// rangeFor returns the declared range of component i.
func (s *Space) rangeFor(i int) Range {
	if i < len(s.Ranges) {
		return s.Ranges[i]
	}
	return Range{0, 1}
}

// decodeAt evaluates the decode function of component i.
func (s *Space) decodeAt(i int, x float64) float64 {
	if i < len(s.Decode) && s.Decode[i] != nil {
		return s.Decode[i](x)
	}
	return x
}

// oneStep returns the decode functions and matrix of a space consisting of
// exactly one per-component decode step followed by exactly one matrix step.
// Such spaces can be written in closed form as transfer curves plus matrix
// columns.  Either analytic stage can form the step, provided the other
// stage is the identity.
func (s *Space) oneStep() (decode []DecodeFunc, m *Matrix3, ok bool) {
	if s.Kind != SpaceABC || s.Table != nil {
		return nil, nil, false
	}
	if s.Matrix != nil && s.MatrixLMN == nil && allIdentity(s.DecodeLMN) {
		return s.Decode, s.Matrix, true
	}
	if s.Matrix == nil && allIdentity(s.Decode) && s.MatrixLMN != nil {
		return s.DecodeLMN, s.MatrixLMN, true
	}
	return nil, nil, false
}

func allIdentity(fns []DecodeFunc) bool {
	for _, f := range fns {
		if f != nil {
			return false
		}
	}
	return true
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
