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

import "errors"

// Transform evaluates a decoded ICC profile in the device-to-PCS
// direction.
//
// It supports the two profile shapes produced by [Space.SynthesizeProfile]:
// matrix/TRC profiles and mft2 LUT profiles.  Inputs are normalised to
// [0, 1] per component, outputs are PCS XYZ values relative to D50.
//
// A Transform is not safe for concurrent use.
type Transform struct {
	profile *Profile

	numIn int

	// for matrix/TRC profiles
	matrix *Matrix3
	trc    [3]*Curve

	// for LUT profiles
	lutMatrix   Matrix3
	inCurves    []*Curve
	outCurves   []*Curve
	table       *ColorTable
	clut1       []byte // 1-input grids, interleaved 16-bit samples
	clut1Points int
	whitePoint  [3]float64
}

// NewTransform creates a transform from a decoded profile.
//
// Profiles containing an A-to-B LUT use the LUT path; otherwise the
// profile must carry the three TRC tags and the three matrix column tags.
func NewTransform(p *Profile) (*Transform, error) {
	t := &Transform{
		profile:    p,
		numIn:      p.ColorSpace.NumComponents(),
		whitePoint: WhitePointD50,
	}
	if t.numIn == 0 {
		return nil, errors.New("pdfcie: unsupported data colour space")
	}

	if data, ok := p.TagData[MediaWhitePoint]; ok {
		if xyz, err := parseXYZ(data); err == nil {
			t.whitePoint = xyz
		}
	}

	if data, ok := p.TagData[AToB0]; ok {
		if err := t.initLut(data); err != nil {
			return nil, err
		}
		return t, nil
	}

	if err := t.initMatrixTRC(); err != nil {
		return nil, err
	}
	return t, nil
}

func (t *Transform) initMatrixTRC() error {
	p := t.profile
	if t.numIn != 3 {
		return errors.New("pdfcie: matrix/TRC profile requires 3 components")
	}

	cols := [3]TagType{RedMatrixColumn, GreenMatrixColumn, BlueMatrixColumn}
	trcs := [3]TagType{RedTRC, GreenTRC, BlueTRC}

	var m Matrix3
	for i := range cols {
		data, ok := p.TagData[cols[i]]
		if !ok {
			return errMissingTag
		}
		xyz, err := parseXYZ(data)
		if err != nil {
			return err
		}
		m[i] = xyz[0]
		m[3+i] = xyz[1]
		m[6+i] = xyz[2]
	}
	t.matrix = &m

	for i := range trcs {
		data, ok := p.TagData[trcs[i]]
		if !ok {
			return errMissingTag
		}
		curve, err := DecodeCurve(data)
		if err != nil {
			return err
		}
		t.trc[i] = curve
	}

	return nil
}

// initLut decodes an mft2 (lut16Type) element into the generic
// interpolation table.  The CLUT body is contiguous in the tag data, so
// the per-string layout of [ColorTable] is built by re-slicing without
// copying.
func (t *Transform) initLut(data []byte) error {
	if len(data) < 52 {
		return errInvalidTagData
	}
	if string(data[0:4]) != "mft2" {
		return errUnexpectedType
	}

	n := int(data[8])
	m := int(data[9])
	points := int(data[10])
	if n != t.numIn || n < 1 || n > 4 || m < 1 || points < 2 {
		return errInvalidTagData
	}

	for i := 0; i < 9; i++ {
		t.lutMatrix[i] = getS15Fixed16(data, 12+i*4)
	}
	numIn := int(getUint16(data, 48))
	numOut := int(getUint16(data, 50))
	if numIn < 2 || numOut < 2 {
		return errInvalidTagData
	}

	clutSize := m * 2
	for i := 0; i < n; i++ {
		clutSize *= points
	}
	needed := 52 + n*numIn*2 + clutSize + m*numOut*2
	if len(data) < needed {
		return errInvalidTagData
	}

	pos := 52
	t.inCurves = make([]*Curve, n)
	for i := range t.inCurves {
		t.inCurves[i] = decodeTableCurve(data[pos:], numIn)
		pos += numIn * 2
	}

	clut := data[pos : pos+clutSize]
	pos += clutSize

	t.outCurves = make([]*Curve, m)
	for i := range t.outCurves {
		t.outCurves[i] = decodeTableCurve(data[pos:], numOut)
		pos += numOut * 2
	}

	tab := &ColorTable{
		NDims: n,
		M:     m,
		Depth: 2,
	}
	for i := 0; i < n; i++ {
		tab.Dims[i] = points
	}
	switch n {
	case 1:
		// one-dimensional grids bypass the interpolation engine
		t.clut1 = clut
		t.clut1Points = points
		return nil
	case 3:
		strSize := tab.Dims[1] * tab.Dims[2] * m * 2
		for i := 0; i < tab.Dims[0]; i++ {
			tab.Data = append(tab.Data, clut[i*strSize:(i+1)*strSize])
		}
	case 4:
		strSize := tab.Dims[2] * tab.Dims[3] * m * 2
		for i := 0; i < tab.Dims[0]*tab.Dims[1]; i++ {
			tab.Data = append(tab.Data, clut[i*strSize:(i+1)*strSize])
		}
	default:
		return errors.New("pdfcie: unsupported number of LUT inputs")
	}
	t.table = tab

	return nil
}

// decodeTableCurve reads count 16-bit samples as a sampled curve.
func decodeTableCurve(data []byte, count int) *Curve {
	table := make([]uint16, count)
	for i := range table {
		table[i] = getUint16(data, i*2)
	}
	return &Curve{Table: table}
}

// ToXYZ converts a device colour to PCS XYZ.
// Each input component must be normalised to [0, 1].
func (t *Transform) ToXYZ(in []float64) [3]float64 {
	if t.clut1 != nil {
		return t.lut1ToXYZ(in)
	}
	if t.table != nil {
		return t.lutToXYZ(in)
	}

	var lin [3]float64
	for i := 0; i < 3 && i < len(in); i++ {
		lin[i] = t.trc[i].Evaluate(in[i])
	}
	return t.matrix.Apply(lin)
}

func (t *Transform) lutToXYZ(in []float64) [3]float64 {
	n := t.table.NDims

	pi := make([]Fixed, n)
	for i := 0; i < n; i++ {
		var x float64
		if i < len(in) {
			x = t.inCurves[i].Evaluate(in[i])
		}
		f := ToFixed(x * float64(t.table.Dims[i]-1))
		if hi := IntToFixed(t.table.Dims[i] - 1); f > hi {
			f = hi
		}
		if f < 0 {
			f = 0
		}
		pi[i] = f
	}

	pv := make([]float64, t.table.M)
	t.table.Linear(pi, pv)

	var out [3]float64
	for j := 0; j < 3 && j < len(pv); j++ {
		// undo the XYZ range compression applied during synthesis
		out[j] = t.outCurves[j].Evaluate(pv[j]) * maxICCXYZValue
	}
	return t.lutMatrix.Apply(out)
}

func (t *Transform) lut1ToXYZ(in []float64) [3]float64 {
	var x float64
	if len(in) > 0 {
		x = t.inCurves[0].Evaluate(in[0])
	}

	m := len(t.outCurves)
	pos := clamp(x, 0, 1) * float64(t.clut1Points-1)
	i0 := int(pos)
	if i0 > t.clut1Points-2 {
		i0 = t.clut1Points - 2
	}
	frac := pos - float64(i0)

	var out [3]float64
	for j := 0; j < 3 && j < m; j++ {
		v0 := float64(getUint16(t.clut1, (i0*m+j)*2)) / 65535.0
		v1 := float64(getUint16(t.clut1, ((i0+1)*m+j)*2)) / 65535.0
		v := v0 + frac*(v1-v0)
		out[j] = t.outCurves[j].Evaluate(v) * maxICCXYZValue
	}
	return t.lutMatrix.Apply(out)
}

func parseXYZ(data []byte) ([3]float64, error) {
	if len(data) < 20 {
		return [3]float64{}, errInvalidTagData
	}
	if string(data[0:4]) != "XYZ " {
		return [3]float64{}, errUnexpectedType
	}
	x := getS15Fixed16(data, 8)
	y := getS15Fixed16(data, 12)
	z := getS15Fixed16(data, 16)
	return [3]float64{x, y, z}, nil
}
