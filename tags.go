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
	"bytes"
	"fmt"
	"math"
)

// The TagType identifies a tag in an ICC profile.
type TagType uint32

func (t TagType) String() string {
	bb := []byte{
		byte(t >> 24),
		byte(t >> 16),
		byte(t >> 8),
		byte(t),
	}
	for _, c := range bb {
		if c < 0x20 || c > 0x7E {
			return fmt.Sprintf("0x%08X", uint32(t))
		}
	}
	return fmt.Sprintf("%q", string(bb))
}

// The tags used by synthesized profiles.
const (
	ProfileDescription TagType = 0x64657363 // "desc"
	MediaWhitePoint    TagType = 0x77747074 // "wtpt"
	Copyright          TagType = 0x63707274 // "cprt"
	RedTRC             TagType = 0x72545243 // "rTRC"
	GreenTRC           TagType = 0x67545243 // "gTRC"
	BlueTRC            TagType = 0x62545243 // "bTRC"
	RedMatrixColumn    TagType = 0x7258595A // "rXYZ"
	GreenMatrixColumn  TagType = 0x6758595A // "gXYZ"
	BlueMatrixColumn   TagType = 0x6258595A // "bXYZ"
	AToB0              TagType = 0x41324230 // "A2B0"
)

// curveSamples is the number of 16-bit samples written for each TRC tag.
const curveSamples = 512

// maxCLUTEntries caps the total number of grid cells in a synthesized A2B0
// lookup table (enough for a 7×7×7×7 grid).
const maxCLUTEntries = 2500

// Input and output tables of the A2B0 tag are identities and need only the
// two endpoint entries.
const (
	numInputEntries  = 2
	numOutputEntries = 2
)

// maxICCXYZValue is the upper end of the encoding range of values in an
// A2B0 lookup table.  The lut16Type output encoding covers
// [0, 1+32767/32768], not [0, 1]; XYZ values must be divided by this factor
// before 16-bit encoding.
const maxICCXYZValue = 1 + 32767.0/32768

// profileTag is one entry of a profile under construction.
//
// The header bytes are copied to the output verbatim.  If write is non-nil,
// the payload is deferred: write is invoked during serialization and must
// produce exactly length-len(header) further bytes.
type profileTag struct {
	sig    TagType
	header []byte
	length uint32
	write  func(w *bytes.Buffer) error
	ranges []Range // per-axis sampling ranges, nil for [0,1]
}

// tagBuilder assembles the ordered tag list of a synthesized profile.
type tagBuilder struct {
	space *Space
	tags  []*profileTag
}

func (b *tagBuilder) add(sig TagType, data []byte) *profileTag {
	t := &profileTag{
		sig:    sig,
		header: data,
		length: uint32(len(data)),
	}
	b.tags = append(b.tags, t)
	return t
}

// addDescription adds the fixed profile description tag.
func (b *tagBuilder) addDescription() {
	const descString = "adhoc"
	desc := make([]byte, 12+len(descString)+1+11+67)
	copy(desc, "desc")
	putUint32(desc, 8, uint32(len(descString)+1))
	copy(desc[12:], descString)
	b.add(ProfileDescription, desc)
}

// addXYZ adds an XYZ tag holding a single colour value.
func (b *tagBuilder) addXYZ(sig TagType, v [3]float64) {
	buf := make([]byte, 20)
	copy(buf, "XYZ ")
	putS15Fixed16(buf, 8, v[0])
	putS15Fixed16(buf, 12, v[1])
	putS15Fixed16(buf, 16, v[2])
	b.add(sig, buf)
}

// addCopyright adds the fixed copyright tag.
// The content is unused, but icclib rejects profiles without this tag.
func (b *tagBuilder) addCopyright() {
	b.add(Copyright, []byte{'t', 'e', 'x', 't', 0, 0, 0, 0, 'n', 'o', 'n', 'e', 0})
}

// sampleArg maps sample index i out of denom to a value in the given range.
func sampleArg(i, denom int, r Range) float64 {
	arg := float64(i) / float64(denom)
	return arg*(r.Max-r.Min) + r.Min
}

// addTRC adds a transfer curve tag for the given component.  The payload is
// deferred: f (nil for the identity) is sampled at curveSamples points
// across the component's declared range during serialization.
func (b *tagBuilder) addTRC(sig TagType, f DecodeFunc, component int) {
	hdr := make([]byte, 12)
	copy(hdr, "curv")
	putUint32(hdr, 8, curveSamples)

	t := b.add(sig, hdr)
	t.length += curveSamples * 2
	t.ranges = []Range{b.space.rangeFor(component)}
	t.write = func(w *bytes.Buffer) error {
		for i := 0; i < curveSamples; i++ {
			arg := sampleArg(i, curveSamples-1, t.ranges[0])
			if f != nil {
				arg = f(arg)
			}
			putSample16(w, arg)
		}
		return nil
	}
}

// addA2B0 adds the multidimensional lookup table tag ("mft2" layout).  The
// grid is deferred: every combination of per-axis sample points is mapped
// through the colour space pipeline during serialization.
func (b *tagBuilder) addA2B0() error {
	n := b.space.NumComponents()
	points := int(math.Floor(math.Pow(maxCLUTEntries, 1/float64(n))))
	if points > 255 {
		points = 255
	}
	count := 1
	for i := 0; i < n; i++ {
		count *= points
	}
	if count > maxCLUTEntries {
		return ErrTableTooLarge
	}

	hdr := make([]byte, 52)
	copy(hdr, "mft2")
	hdr[8] = byte(n)
	hdr[9] = 3 // XYZ output
	hdr[10] = byte(points)
	putS15Fixed16(hdr, 12, 1) // identity matrix
	putS15Fixed16(hdr, 28, 1)
	putS15Fixed16(hdr, 44, 1)
	putUint16(hdr, 48, numInputEntries)
	putUint16(hdr, 50, numOutputEntries)

	ranges := make([]Range, n)
	for i := range ranges {
		ranges[i] = b.space.rangeFor(i)
	}

	t := b.add(AToB0, hdr)
	t.length += uint32(n*2*numInputEntries + count*3*2 + 3*2*numOutputEntries)
	t.ranges = ranges
	t.write = func(w *bytes.Buffer) error {
		// input tables, identity over [0,1]
		for i := 0; i < n; i++ {
			w.Write([]byte{0, 0, 0xFF, 0xFF})
		}

		var in [4]float64
		for cell := 0; cell < count; cell++ {
			for m, j := cell, n-1; j >= 0; j-- {
				in[j] = sampleArg(m%points, points-1, t.ranges[j])
				m /= points
			}
			xyz := b.space.ToXYZ(in[:n], WhitePointD50)
			for j := 0; j < 3; j++ {
				putSample16(w, xyz[j]/maxICCXYZValue)
			}
		}

		// output tables, identity over [0,1]
		for j := 0; j < 3; j++ {
			w.Write([]byte{0, 0, 0xFF, 0xFF})
		}
		return nil
	}
	return nil
}

// buildTags assembles the full tag list for a profile describing the given
// colour space.  Spaces consisting of a single decode step followed by a
// single matrix step use transfer curves plus matrix columns; all other
// spaces use a sampled A2B0 table.
func buildTags(s *Space) (*tagBuilder, error) {
	b := &tagBuilder{space: s}

	b.addDescription()
	b.addXYZ(MediaWhitePoint, WhitePointD50) // must be D50
	b.addCopyright()

	if decode, matrix, ok := s.oneStep(); ok {
		trcs := []TagType{RedTRC, GreenTRC, BlueTRC}
		for i, sig := range trcs {
			var f DecodeFunc
			if i < len(decode) {
				f = decode[i]
			}
			b.addTRC(sig, f, i)
		}
		cols := []TagType{RedMatrixColumn, GreenMatrixColumn, BlueMatrixColumn}
		for i, sig := range cols {
			col := adjustWhitePoint(matrix.Column(i), s.WhitePoint, WhitePointD50)
			b.addXYZ(sig, col)
		}
	} else {
		if err := b.addA2B0(); err != nil {
			return nil, err
		}
	}
	return b, nil
}

func putUint16(data []byte, offset int, value uint16) {
	data[offset] = byte(value >> 8)
	data[offset+1] = byte(value)
}

func putS15Fixed16(data []byte, offset int, value float64) {
	raw := int32(value * 65536.0)
	putUint32(data, offset, uint32(raw))
}

func getS15Fixed16(data []byte, offset int) float64 {
	raw := int32(getUint32(data, offset))
	return float64(raw) / 65536.0
}

// putSample16 appends a 16-bit sample, clamping the value to [0, 1].
func putSample16(w *bytes.Buffer, v float64) {
	n := int(v * 65535)
	if n < 0 {
		n = 0
	} else if n > 65535 {
		n = 65535
	}
	w.WriteByte(byte(n >> 8))
	w.WriteByte(byte(n))
}
