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

import "fmt"

// Profile holds the header fields and tag data of an ICC profile.
//
// This is used to validate pre-existing profiles before embedding, and to
// inspect synthesized output.  Only the fields relevant for PDF embedding
// are decoded.
type Profile struct {
	Version    Version
	Class      ProfileClass
	ColorSpace ColorSpace // device colour space of the profile's data
	PCS        ColorSpace // profile connection space

	// Tags lists the tag signatures in directory order.
	Tags []TagType

	// TagData maps tag signatures to their raw binary data.
	TagData map[TagType][]byte
}

// Decode decodes an ICC profile from the given data.
// The returned profile shares memory with data.
func Decode(data []byte) (*Profile, error) {
	if len(data) < 128+4 {
		return nil, invalidProfile(0, "profile is too short")
	}
	if string(data[36:40]) != "acsp" {
		return nil, invalidProfile(36, "missing 'acsp' signature")
	}

	numTags := getUint32(data, 128)
	maxNumTags := uint((len(data) - 128 - 4) / 12)
	if uint(numTags) > maxNumTags {
		return nil, invalidProfile(128, "too many tags")
	}

	p := &Profile{
		Version:    Version(getUint32(data, 8)),
		Class:      ProfileClass(getUint32(data, 12)),
		ColorSpace: ColorSpace(getUint32(data, 16)),
		PCS:        ColorSpace(getUint32(data, 20)),
		TagData:    make(map[TagType][]byte),
	}

	minTagOffset := 128 + 4 + int64(numTags)*12
	for i := 0; i < int(numTags); i++ {
		offset := 128 + 4 + i*12
		tagType := TagType(getUint32(data, offset))
		tagOffset := getUint32(data, offset+4)
		tagSize := getUint32(data, offset+8)
		if tagSize < 4 {
			return nil, invalidProfile(offset+8, "tag is too small")
		} else if tagSize > 0xFFFFFFFC {
			return nil, invalidProfile(offset+8, "tag is too large")
		}

		start := int64(tagOffset)
		end := start + int64(tagSize)
		if start < minTagOffset || end > int64(len(data)) {
			return nil, invalidProfile(offset, "tag is out of bounds")
		}
		p.Tags = append(p.Tags, tagType)
		p.TagData[tagType] = data[start:end]
	}

	return p, nil
}

func getUint16(data []byte, offset int) uint16 {
	return uint16(data[offset])<<8 | uint16(data[offset+1])
}

func getUint32(data []byte, offset int) uint32 {
	return uint32(data[offset])<<24 | uint32(data[offset+1])<<16 | uint32(data[offset+2])<<8 | uint32(data[offset+3])
}

// InvalidProfileError indicates that an ICC profile contains invalid binary
// data and cannot be decoded.
type InvalidProfileError struct {
	Offset int
	Reason string
}

func invalidProfile(offset int, reason string) error {
	return &InvalidProfileError{Offset: offset, Reason: reason}
}

func (e *InvalidProfileError) Error() string {
	return fmt.Sprintf("pdfcie: invalid profile (byte %d): %s", e.Offset, e.Reason)
}
