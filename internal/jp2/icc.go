// Copyright (c) 2025 Stefano Scafiti
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in
// all copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
// THE SOFTWARE.
package jp2

import (
	"fmt"
	"strings"
)

const iccHeaderSize = 128

// validateICC parses an embedded ICC profile: the fixed 128-byte header
// (ICC.1 §7.2) followed by the tag table. Only the textual description is
// pulled out of the tag data; colour transforms are not interpreted.
func (e *element) validateICC() {
	size, ok := e.u32()
	if !ok {
		return
	}
	e.prop("profileSize", size)
	e.test("profileSizeIsValid", uint64(size) == uint64(len(e.buf)))

	cmm, ok := e.ascii(4)
	if !ok {
		return
	}
	e.prop("preferredCMMType", strings.TrimRight(cmm, "\x00 "))

	version, ok := e.u32()
	if !ok {
		return
	}
	e.prop("profileVersion", fmt.Sprintf("%d.%d.%d",
		version>>24, (version>>20)&0x0F, (version>>16)&0x0F))

	class, ok := e.ascii(4)
	if !ok {
		return
	}
	e.prop("profileClass", class)

	space, ok := e.ascii(4)
	if !ok {
		return
	}
	e.prop("colourSpace", space)

	pcs, ok := e.ascii(4)
	if !ok {
		return
	}
	e.prop("connectionSpace", pcs)

	dt := make([]uint16, 6)
	for i := range dt {
		v, ok := e.u16()
		if !ok {
			return
		}
		dt[i] = v
	}
	e.prop("dateTimeString", fmt.Sprintf("%d/%02d/%02d, %02d:%02d:%02d",
		dt[0], dt[1], dt[2], dt[3], dt[4], dt[5]))

	sig, ok := e.ascii(4)
	if !ok {
		return
	}
	e.test("profileSignatureIsValid", sig == "acsp")

	platform, ok := e.ascii(4)
	if !ok {
		return
	}
	e.prop("primaryPlatform", strings.TrimRight(platform, "\x00 "))

	flags, ok := e.u32()
	if !ok {
		return
	}
	e.prop("embeddedProfile", flags&1)
	e.prop("profileCannotBeUsedIndependently", (flags>>1)&1)

	manufacturer, ok := e.ascii(4)
	if !ok {
		return
	}
	e.prop("deviceManufacturer", strings.TrimRight(manufacturer, "\x00 "))

	model, ok := e.ascii(4)
	if !ok {
		return
	}
	e.prop("deviceModel", strings.TrimRight(model, "\x00 "))

	attrs, ok := e.u64()
	if !ok {
		return
	}
	e.prop("transparency", uint8(attrs&1))
	e.prop("glossiness", uint8((attrs>>1)&1))
	e.prop("polarity", uint8((attrs>>2)&1))
	e.prop("colour", uint8((attrs>>3)&1))

	intent, ok := e.u32()
	if !ok {
		return
	}
	e.prop("renderingIntent", intent)

	// Illuminant XYZ, three s15Fixed16Number values.
	var xyz [3]float64
	for i := range xyz {
		v, ok := e.u32()
		if !ok {
			return
		}
		xyz[i] = float64(int32(v)) / 65536.0
	}
	e.prop("connectionSpaceIlluminantX", roundTo(xyz[0], 4))
	e.prop("connectionSpaceIlluminantY", roundTo(xyz[1], 4))
	e.prop("connectionSpaceIlluminantZ", roundTo(xyz[2], 4))

	creator, ok := e.ascii(4)
	if !ok {
		return
	}
	e.prop("creator", strings.TrimRight(creator, "\x00 "))

	// Profile ID (16 bytes) plus reserved padding completes the header.
	if _, ok := e.bytes(iccHeaderSize - 84); !ok {
		return
	}

	e.parseICCTagTable()
}

// parseICCTagTable walks the tag directory that follows the profile
// header and extracts the profile description from the 'desc' tag.
func (e *element) parseICCTagTable() {
	count, ok := e.u32()
	if !ok {
		return
	}
	e.prop("tagCount", count)

	tableOK := true
	for i := uint32(0); i < count; i++ {
		sig, ok := e.ascii(4)
		if !ok {
			return
		}
		offset, ok := e.u32()
		if !ok {
			return
		}
		size, ok := e.u32()
		if !ok {
			return
		}
		if uint64(offset)+uint64(size) > uint64(len(e.buf)) {
			tableOK = false
			continue
		}
		if sig == "desc" {
			if desc := parseICCDescription(e.buf[offset : offset+size]); desc != "" {
				e.prop("description", desc)
			}
		}
	}
	e.test("tagTableIsValid", tableOK)
}

// parseICCDescription decodes a textDescriptionType ('desc') tag element:
// type signature, 4 reserved bytes, then a counted ASCII string.
func parseICCDescription(b []byte) string {
	typ, off, err := readASCII(b, 0, 4)
	if err != nil || typ != "desc" {
		return ""
	}
	if _, off, err = readUint32(b, off); err != nil {
		return ""
	}
	n, off, err := readUint32(b, off)
	if err != nil || n == 0 {
		return ""
	}
	raw, _, err := readBytes(b, off, int(n))
	if err != nil {
		return ""
	}
	return strings.TrimRight(string(raw), "\x00")
}

// roundTo rounds v to the given number of decimal places.
func roundTo(v float64, places int) float64 {
	scale := 1.0
	for i := 0; i < places; i++ {
		scale *= 10
	}
	if v < 0 {
		return float64(int64(v*scale-0.5)) / scale
	}
	return float64(int64(v*scale+0.5)) / scale
}
