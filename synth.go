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
	"time"
)

// SynthesizeProfile builds a scanner-class ICC profile which converts the
// colour space's components to XYZ, adapted to the D50 white point.
//
// The profile is self-contained binary data, suitable for embedding in an
// ICCBased colour space stream.
func (s *Space) SynthesizeProfile() ([]byte, error) {
	n := s.NumComponents()
	if n != 1 && n != 3 && n != 4 {
		return nil, ErrInvalidComponents
	}

	b, err := buildTags(s)
	if err != nil {
		return nil, err
	}
	return encodeProfile(b.tags, dataColorSpaceFor(n))
}

// encodeProfile serializes the profile: a 128-byte header, the tag count and
// directory, and each tag's payload padded to a 4-byte boundary.  Offsets
// are computed up front from the declared tag lengths, so the total size can
// be placed in the header before any payload is written.
func encodeProfile(tags []*profileTag, dataSpace ColorSpace) ([]byte, error) {
	pos := uint32(128 + 4 + len(tags)*12)
	offsets := make([]uint32, len(tags))
	for i, t := range tags {
		offsets[i] = pos
		pos += (t.length + 3) &^ 3
	}
	total := pos

	var w bytes.Buffer
	w.Grow(int(total))

	hdr := make([]byte, 128)
	putUint32(hdr, 0, total)
	// CMM type signature left zero
	putUint32(hdr, 8, uint32(synthVersion))
	putUint32(hdr, 12, uint32(InputDeviceProfile))
	putUint32(hdr, 16, uint32(dataSpace))
	putUint32(hdr, 20, uint32(CIEXYZSpace))
	putDateTime(hdr, 24, time.Date(2002, 1, 1, 0, 0, 0, 0, time.UTC))
	putUint32(hdr, 36, 0x61637370) // "acsp"
	putUint32(hdr, 44, 3)          // flags: embedded use only
	// device attributes (56-63) left zero
	putUint32(hdr, 64, 2) // rendering intent: saturation
	// illuminant = media white point = D50
	putS15Fixed16(hdr, 68, WhitePointD50[0])
	putS15Fixed16(hdr, 72, WhitePointD50[1])
	putS15Fixed16(hdr, 76, WhitePointD50[2])
	w.Write(hdr)

	dir := make([]byte, 4+len(tags)*12)
	putUint32(dir, 0, uint32(len(tags)))
	for i, t := range tags {
		putUint32(dir, 4+i*12, uint32(t.sig))
		putUint32(dir, 4+i*12+4, offsets[i])
		putUint32(dir, 4+i*12+8, t.length)
	}
	w.Write(dir)

	var pad [3]byte
	for _, t := range tags {
		start := w.Len()
		w.Write(t.header)
		if t.write != nil {
			if err := t.write(&w); err != nil {
				return nil, err
			}
		}
		if w.Len()-start != int(t.length) {
			return nil, fmt.Errorf("pdfcie: tag %v: wrote %d bytes, declared %d",
				t.sig, w.Len()-start, t.length)
		}
		w.Write(pad[:-int(t.length)&3])
	}

	if w.Len() != int(total) {
		return nil, fmt.Errorf("pdfcie: profile size mismatch: %d != %d", w.Len(), total)
	}
	return w.Bytes(), nil
}

func putUint32(data []byte, offset int, value uint32) {
	data[offset] = byte(value >> 24)
	data[offset+1] = byte(value >> 16)
	data[offset+2] = byte(value >> 8)
	data[offset+3] = byte(value)
}

func putDateTime(data []byte, offset int, t time.Time) {
	year := t.Year()
	data[offset] = byte(year >> 8)
	data[offset+1] = byte(year)
	data[offset+3] = byte(t.Month())
	data[offset+5] = byte(t.Day())
	data[offset+7] = byte(t.Hour())
	data[offset+9] = byte(t.Minute())
	data[offset+11] = byte(t.Second())
}
