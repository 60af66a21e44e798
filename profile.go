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

// Version is a version of the ICC profile format.
type Version uint32

// Some well-known versions of the ICC profile format.
const (
	Version2_1_0 Version = 0x0210_0000 // Version 3.3 (November 1996)
	Version2_2_0 Version = 0x0220_0000 // ICC.1:1998-09
	Version4_0_0 Version = 0x0400_0000 // ICC.1:2001-12
	Version4_2_0 Version = 0x0420_0000 // ICC.1:2004-10
	Version4_3_0 Version = 0x0430_0000 // ICC.1:2010-12

	// synthVersion is the format version of synthesized profiles.
	synthVersion = Version2_2_0
)

// Major returns the major version number.
func (v Version) Major() int {
	return int(v >> 24)
}

// Minor returns the minor version number.
func (v Version) Minor() int {
	return int(v >> 20 & 0xF)
}

func (v Version) String() string {
	bugfix := int(v >> 16 & 0xF)
	other := int(v & 0xFFFF)

	suffix := ""
	if other != 0 {
		suffix = fmt.Sprintf(".%04X", other)
	}
	return fmt.Sprintf("%d.%d.%d%s", v.Major(), v.Minor(), bugfix, suffix)
}

// ProfileClass is the ICC profile or device class.
type ProfileClass uint32

// Profile classes defined in the ICC specification.  Synthesized profiles
// always use InputDeviceProfile.
const (
	InputDeviceProfile   ProfileClass = 0x73636E72 // "scnr"
	DisplayDeviceProfile ProfileClass = 0x6D6E7472 // "mntr"
	OutputDeviceProfile  ProfileClass = 0x70727472 // "prtr"
	ColorSpaceProfile    ProfileClass = 0x73706163 // "spac"
)

func (c ProfileClass) String() string {
	switch c {
	case InputDeviceProfile:
		return "Input Device Profile"
	case DisplayDeviceProfile:
		return "Display Device Profile"
	case OutputDeviceProfile:
		return "Output Device Profile"
	case ColorSpaceProfile:
		return "ColorSpace Profile"
	default:
		return fmt.Sprintf("ProfileClass(0x%08X)", uint32(c))
	}
}

// ColorSpace identifies a colour space signature in an ICC profile header.
type ColorSpace uint32

// The colour space signatures which can occur in PDF-embeddable profiles.
const (
	CIEXYZSpace ColorSpace = 0x58595A20 // "XYZ "
	CIELabSpace ColorSpace = 0x4C616220 // "Lab "
	RGBSpace    ColorSpace = 0x52474220 // "RGB "
	GraySpace   ColorSpace = 0x47524159 // "GRAY"
	CMYKSpace   ColorSpace = 0x434D594B // "CMYK"
)

func (s ColorSpace) String() string {
	switch s {
	case CIEXYZSpace:
		return "CIEXYZ"
	case CIELabSpace:
		return "CIELAB"
	case RGBSpace:
		return "RGB"
	case GraySpace:
		return "Gray"
	case CMYKSpace:
		return "CMYK"
	default:
		return fmt.Sprintf("ColorSpace(0x%08X)", uint32(s))
	}
}

// NumComponents returns the number of colour components of the colour space,
// or 0 if the signature is unknown.
func (s ColorSpace) NumComponents() int {
	switch s {
	case CIEXYZSpace, CIELabSpace, RGBSpace:
		return 3
	case GraySpace:
		return 1
	case CMYKSpace:
		return 4
	default:
		return 0
	}
}

// dataColorSpaceFor returns the data colour space signature used for
// synthesized profiles with the given number of components.
func dataColorSpaceFor(numComponents int) ColorSpace {
	switch numComponents {
	case 1:
		return GraySpace
	case 4:
		return CMYKSpace
	default:
		return RGBSpace
	}
}
