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

import "bytes"

// jp2Signature is the fixed payload of the JP2 Signature box.
var jp2Signature = []byte{0x0D, 0x0A, 0x87, 0x0A}

const brandJP2 = "jp2 "

func (e *element) validateSignature() {
	e.test("signatureIsValid", bytes.Equal(e.buf, jp2Signature))
}

func (e *element) validateFileType() {
	br, ok := e.ascii(4)
	if !ok {
		return
	}
	e.prop("br", br)
	e.test("brandIsValid", br == brandJP2)

	minV, ok := e.u32()
	if !ok {
		return
	}
	e.prop("minV", minV)
	e.test("minorVersionIsValid", minV == 0)

	// The compatibility list fills the rest of the box with 4-byte
	// entries; at least one of them must be "jp2 ".
	e.test("compatibilityListIsValid", e.left() > 0 && e.left()%4 == 0)
	hasJP2 := false
	for e.left() >= 4 {
		cl, _ := e.ascii(4)
		e.prop("cL", cl)
		if cl == brandJP2 {
			hasJP2 = true
		}
	}
	e.test("compatibilityListHasJP2", hasJP2)
}

func (e *element) validateJP2Header() {
	kinds := e.walkBoxes()

	count := map[Kind]int{}
	for _, k := range kinds {
		count[k]++
	}

	e.test("containsImageHeaderBox", count[KindImageHeaderBox] > 0)
	e.test("containsColourSpecificationBox", count[KindColourSpecificationBox] > 0)
	e.test("firstBoxIsImageHeaderBox", len(kinds) > 0 && kinds[0] == KindImageHeaderBox)
	e.test("noMoreThanOneImageHeaderBox", count[KindImageHeaderBox] <= 1)
	e.test("noMoreThanOneBitsPerComponentBox", count[KindBitsPerComponentBox] <= 1)
	e.test("noMoreThanOnePaletteBox", count[KindPaletteBox] <= 1)
	e.test("noMoreThanOneComponentMappingBox", count[KindComponentMappingBox] <= 1)
	e.test("noMoreThanOneChannelDefinitionBox", count[KindChannelDefinitionBox] <= 1)
	e.test("noMoreThanOneResolutionBox", count[KindResolutionBox] <= 1)

	// A Palette box is only meaningful with a Component Mapping box
	// translating palette columns to channels, and vice versa.
	e.test("paletteAndComponentMappingBoxesOnlyTogether",
		(count[KindPaletteBox] > 0) == (count[KindComponentMappingBox] > 0))
}

func (e *element) validateImageHeader() {
	e.test("boxLengthIsValid", len(e.buf) == 14)

	height, ok := e.u32()
	if !ok {
		return
	}
	e.prop("height", height)
	e.test("heightIsValid", height > 0)

	width, ok := e.u32()
	if !ok {
		return
	}
	e.prop("width", width)
	e.test("widthIsValid", width > 0)

	nc, ok := e.u16()
	if !ok {
		return
	}
	e.prop("nC", nc)
	e.test("nCIsValid", nc >= 1 && nc <= 16384)

	bpc, ok := e.u8()
	if !ok {
		return
	}
	if bpc == 255 {
		// Depth varies per component; the actual depths live in a
		// Bits Per Component box (checked by the consistency pass).
		e.prop("bPC", bpc)
		e.test("bPCIsValid", true)
	} else {
		sign, depth := splitBPC(bpc)
		e.prop("bPCSign", sign)
		e.prop("bPCDepth", depth)
		e.test("bPCIsValid", depth >= 1 && depth <= 38)
	}

	c, ok := e.u8()
	if !ok {
		return
	}
	e.prop("c", c)
	e.test("cIsValid", c == 7)

	unkC, ok := e.u8()
	if !ok {
		return
	}
	e.prop("unkC", unkC)
	e.test("unkCIsValid", unkC <= 1)

	ipr, ok := e.u8()
	if !ok {
		return
	}
	e.prop("iPR", ipr)
	e.test("iPRIsValid", ipr <= 1)
}

// splitBPC decodes the packed sign/depth byte used by the Image Header
// box, the Bits Per Component box and the codestream SIZ segment: the
// high bit is the sign flag and the low 7 bits hold depth minus one.
func splitBPC(b uint8) (sign uint8, depth uint8) {
	return b >> 7, (b & 0x7F) + 1
}

func (e *element) validateBitsPerComponent() {
	valid := len(e.buf) > 0
	for e.left() > 0 {
		b, _ := e.u8()
		sign, depth := splitBPC(b)
		e.prop("bPCSign", sign)
		e.prop("bPCDepth", depth)
		if depth < 1 || depth > 38 {
			valid = false
		}
	}
	e.test("bPCIsValid", valid)
}

func (e *element) validateIPR() {
	// Opaque per ISO/IEC 15444-2; presence is all that matters here.
	e.prop("length", uint64(len(e.buf)))
}
