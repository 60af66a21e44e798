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
	"fmt"
	"io"

	log "github.com/sirupsen/logrus"
)

// PDFVersion identifies a PDF specification version.
type PDFVersion int

// The PDF versions relevant for colour space embedding.
const (
	PDF1_0 PDFVersion = 10
	PDF1_1 PDFVersion = 11
	PDF1_2 PDFVersion = 12
	PDF1_3 PDFVersion = 13
	PDF1_4 PDFVersion = 14
	PDF1_5 PDFVersion = 15
	PDF1_6 PDFVersion = 16
	PDF1_7 PDFVersion = 17
	PDF2_0 PDFVersion = 20
)

func (v PDFVersion) String() string {
	return fmt.Sprintf("%d.%d", int(v)/10, int(v)%10)
}

// DocWriter is the part of a PDF document writer needed to embed colour
// spaces.  A document writer provides its target PDF version and hands
// out streams for embedded profile data.
type DocWriter interface {
	Version() PDFVersion
	NewStream() (Stream, error)
}

// Stream is a PDF stream being written.  Close finishes the stream;
// Discard abandons it without writing it to the document.
type Stream interface {
	io.Writer
	Close() error
	Discard()
}

// Downgrader rewrites an ICC profile to an earlier profile version.
// This is typically backed by a colour management module.
type Downgrader interface {
	Downgrade(data []byte) ([]byte, error)
}

// Result is a PDF-legal representation of a colour space, either a
// [*LabSpace] or an [*ICCSpace].
type Result interface {
	isColorSpace()
}

// LabSpace describes a PDF Lab colour space object.  This representation
// is used for PDF versions before 1.3, which have no ICCBased spaces.
type LabSpace struct {
	WhitePoint [3]float64
	RangeA     Range
	RangeB     Range
}

func (*LabSpace) isColorSpace() {}

// ICCSpace describes a PDF ICCBased colour space.  Stream holds the
// embedded profile data.
type ICCSpace struct {
	N          int // number of colour components
	Stream     Stream
	Downgraded bool
}

func (*ICCSpace) isColorSpace() {}

// Errors returned when a colour space cannot be embedded.
var (
	ErrInvalidComponents       = errors.New("pdfcie: invalid number of colour components")
	ErrTableTooLarge           = errors.New("pdfcie: lookup table has too many grid points")
	ErrUnsupportedProfileClass = errors.New("pdfcie: unsupported profile colour space")
	ErrUnsupportedVersion      = errors.New("pdfcie: PDF version does not support ICCBased colour spaces")
	ErrDowngradeUnavailable    = errors.New("pdfcie: profile version requires a downgrade but no Downgrader is available")
)

// ConvertSpace converts a CIE-based colour space description into a
// PDF-legal representation.
//
// For PDF versions before 1.3 the space is approximated by a Lab colour
// space whose a* and b* ranges cover the image of the decoded colour
// cube.  For later versions an ICC profile is synthesized and embedded
// as a stream.
func ConvertSpace(doc DocWriter, s *Space) (Result, error) {
	n := s.NumComponents()
	if n != 1 && n != 3 && n != 4 {
		return nil, ErrInvalidComponents
	}

	if doc.Version() < PDF1_3 {
		aRange, bRange := s.ABRange()
		return &LabSpace{
			WhitePoint: s.WhitePoint,
			RangeA:     aRange,
			RangeB:     bRange,
		}, nil
	}

	data, err := s.SynthesizeProfile()
	if err != nil {
		return nil, err
	}

	stream, err := doc.NewStream()
	if err != nil {
		return nil, err
	}
	if _, err := stream.Write(data); err != nil {
		stream.Discard()
		return nil, err
	}
	if err := stream.Close(); err != nil {
		stream.Discard()
		return nil, err
	}

	return &ICCSpace{N: n, Stream: stream}, nil
}

// EmbedICCProfile embeds a pre-existing ICC profile as a PDF ICCBased
// colour space.
//
// If the profile's version is newer than the target PDF version allows,
// the profile is rewritten using cmm.  A nil cmm makes such profiles an
// error.
func EmbedICCProfile(doc DocWriter, data []byte, cmm Downgrader) (*ICCSpace, error) {
	p, err := Decode(data)
	if err != nil {
		return nil, err
	}

	n := p.ColorSpace.NumComponents()
	if n == 0 {
		log.WithFields(log.Fields{
			"colorSpace": p.ColorSpace,
			"class":      p.Class,
		}).Warn("ICC profile has an unsupported data colour space")
		return nil, ErrUnsupportedProfileClass
	}

	level := doc.Version()
	if level < PDF1_3 {
		return nil, ErrUnsupportedVersion
	}

	stream, err := doc.NewStream()
	if err != nil {
		return nil, err
	}

	downgraded := false
	if profileNeedsDowngrade(level, p.Version) {
		if cmm == nil {
			stream.Discard()
			return nil, ErrDowngradeUnavailable
		}
		data, err = cmm.Downgrade(data)
		if err != nil {
			stream.Discard()
			return nil, err
		}
		downgraded = true
	}

	if _, err := stream.Write(data); err != nil {
		stream.Discard()
		return nil, err
	}
	if err := stream.Close(); err != nil {
		stream.Discard()
		return nil, err
	}

	return &ICCSpace{N: n, Stream: stream, Downgraded: downgraded}, nil
}

// profileNeedsDowngrade reports whether a profile of the given version
// must be rewritten before it can be embedded at the given PDF version.
// The thresholds follow the ICC version support table of the PDF
// specifications.
func profileNeedsDowngrade(level PDFVersion, v Version) bool {
	major, minor := v.Major(), v.Minor()
	switch {
	case level < PDF1_5:
		return major > 2
	case level == PDF1_5:
		return major > 4 || minor > 0
	case level == PDF1_6:
		return major > 4 || minor > 1
	default:
		return major > 4 || minor > 2
	}
}
