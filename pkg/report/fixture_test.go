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
package report

import "encoding/binary"

// minimalFixture assembles the smallest passing JP2 file: a 1x1 8-bit
// greyscale image with an enumerated colour space and a single-tile
// codestream.
func minimalFixture() []byte {
	u16 := func(v uint16) []byte { return binary.BigEndian.AppendUint16(nil, v) }
	u32 := func(v uint32) []byte { return binary.BigEndian.AppendUint32(nil, v) }
	cat := func(parts ...[]byte) []byte {
		var out []byte
		for _, p := range parts {
			out = append(out, p...)
		}
		return out
	}
	box := func(tag string, payload []byte) []byte {
		return cat(u32(uint32(8+len(payload))), []byte(tag), payload)
	}

	ihdr := box("ihdr", cat(u32(1), u32(1), u16(1), []byte{7, 7, 0, 0}))
	colr := box("colr", cat([]byte{1, 0, 0}, u32(17)))

	codestream := cat(
		[]byte{0xFF, 0x4F},                  // SOC
		[]byte{0xFF, 0x51}, u16(41), u16(0), // SIZ
		u32(1), u32(1), u32(0), u32(0),
		u32(1), u32(1), u32(0), u32(0),
		u16(1), []byte{7, 1, 1},
		[]byte{0xFF, 0x52}, u16(12), // COD
		[]byte{0, 0}, u16(1), []byte{0, 0, 0, 0, 0, 1},
		[]byte{0xFF, 0x5C}, u16(4), []byte{0x40, 0x48}, // QCD
		[]byte{0xFF, 0x90}, u16(10), u16(0), u32(14), []byte{0, 1}, // SOT
		[]byte{0xFF, 0x93}, // SOD
		[]byte{0xFF, 0xD9}, // EOC
	)

	return cat(
		box("jP  ", []byte{0x0D, 0x0A, 0x87, 0x0A}),
		box("ftyp", cat([]byte("jp2 "), u32(0), []byte("jp2 "))),
		box("jp2h", cat(ihdr, colr)),
		box("jp2c", codestream),
	)
}
