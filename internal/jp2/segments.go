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
	"golang.org/x/text/encoding/charmap"
)

// validateSIZ parses the image and tile size segment (T.800 A.5.1) and
// returns the component count for use by later segments.
func (e *element) validateSIZ(lseg uint16) uint16 {
	e.prop("lsiz", lseg)
	e.test("lsizIsValid", lseg >= 41 && (lseg-38)%3 == 0)

	rsiz, ok := e.u16()
	if !ok {
		return 0
	}
	e.prop("rsiz", rsiz)
	e.test("rsizIsValid", rsiz <= 2)

	var dims [8]uint32
	names := [8]string{"xsiz", "ysiz", "xOsiz", "yOsiz", "xTsiz", "yTsiz", "xTOsiz", "yTOsiz"}
	for i := range dims {
		v, ok := e.u32()
		if !ok {
			return 0
		}
		dims[i] = v
		e.prop(names[i], v)
	}
	xsiz, ysiz := dims[0], dims[1]
	xOsiz, yOsiz := dims[2], dims[3]
	xTsiz, yTsiz := dims[4], dims[5]
	xTOsiz, yTOsiz := dims[6], dims[7]

	e.test("xsizIsValid", xsiz > xOsiz)
	e.test("ysizIsValid", ysiz > yOsiz)
	e.test("xTsizIsValid", xTsiz > 0 && uint64(xTsiz)+uint64(xTOsiz) > uint64(xOsiz))
	e.test("yTsizIsValid", yTsiz > 0 && uint64(yTsiz)+uint64(yTOsiz) > uint64(yOsiz))
	e.test("xTOsizIsValid", xTOsiz <= xOsiz)
	e.test("yTOsizIsValid", yTOsiz <= yOsiz)

	csiz, ok := e.u16()
	if !ok {
		return 0
	}
	e.prop("csiz", csiz)
	e.test("csizIsValid", csiz >= 1 && csiz <= 16384)
	e.test("lsizConsistentWithCsiz", int(lseg) == 38+3*int(csiz))

	ssizValid, rsizValid := true, true
	for i := 0; i < int(csiz); i++ {
		ssiz, ok := e.u8()
		if !ok {
			return csiz
		}
		sign, depth := splitBPC(ssiz)
		e.prop("ssizSign", sign)
		e.prop("ssizDepth", depth)
		if depth < 1 || depth > 38 {
			ssizValid = false
		}

		xr, ok := e.u8()
		if !ok {
			return csiz
		}
		yr, ok := e.u8()
		if !ok {
			return csiz
		}
		e.prop("xRsiz", xr)
		e.prop("yRsiz", yr)
		if xr == 0 || yr == 0 {
			rsizValid = false
		}
	}
	e.test("ssizIsValid", ssizValid)
	e.test("xYRsizIsValid", rsizValid)

	if xTsiz > 0 && yTsiz > 0 {
		nx := ceilDiv(uint64(xsiz)-uint64(xTOsiz), uint64(xTsiz))
		ny := ceilDiv(uint64(ysiz)-uint64(yTOsiz), uint64(yTsiz))
		e.prop("numberOfTiles", nx*ny)
	}
	return csiz
}

func ceilDiv(a, b uint64) uint64 {
	return (a + b - 1) / b
}

// codingStyle parses the SPcod/SPcoc parameter block shared by the COD
// and COC segments: decomposition levels, code-block geometry, code-block
// style flags, transform and optional precinct sizes.
func (e *element) codingStyle(precincts bool) {
	levels, ok := e.u8()
	if !ok {
		return
	}
	e.prop("levels", levels)
	e.test("levelsIsValid", levels <= 32)

	xcb, ok := e.u8()
	if !ok {
		return
	}
	ycb, ok := e.u8()
	if !ok {
		return
	}
	wExp := int(xcb&0x0F) + 2
	hExp := int(ycb&0x0F) + 2
	e.prop("codeBlockWidth", uint32(1)<<wExp)
	e.prop("codeBlockHeight", uint32(1)<<hExp)
	e.test("codeBlockWidthExponentIsValid", wExp >= 2 && wExp <= 10)
	e.test("codeBlockHeightExponentIsValid", hExp >= 2 && hExp <= 10)
	e.test("sumOfCodeBlockExponentsIsValid", wExp+hExp <= 12)

	style, ok := e.u8()
	if !ok {
		return
	}
	e.prop("codingBypass", style&0x01)
	e.prop("resetOnBoundaries", (style>>1)&0x01)
	e.prop("termOnEachPass", (style>>2)&0x01)
	e.prop("vertCausalContext", (style>>3)&0x01)
	e.prop("predTermination", (style>>4)&0x01)
	e.prop("segmentationSymbols", (style>>5)&0x01)

	transformation, ok := e.u8()
	if !ok {
		return
	}
	e.prop("transformation", transformation)
	e.test("transformationIsValid", transformation <= 1)

	if !precincts {
		return
	}
	// One precinct size byte per resolution level, low nibble holding
	// the width exponent and high nibble the height exponent.
	sizesValid := e.left() == int(levels)+1
	for i := 0; i <= int(levels) && e.left() > 0; i++ {
		ps, _ := e.u8()
		wExp := int(ps & 0x0F)
		hExp := int(ps >> 4)
		e.prop("precinctSizeX", uint32(1)<<wExp)
		e.prop("precinctSizeY", uint32(1)<<hExp)
		// Only the lowest resolution level may use exponent zero.
		if i > 0 && (wExp == 0 || hExp == 0) {
			sizesValid = false
		}
	}
	e.test("precinctSizesAreValid", sizesValid)
}

func (e *element) validateCOD(lseg uint16) {
	e.prop("lcod", lseg)

	scod, ok := e.u8()
	if !ok {
		return
	}
	precincts := scod&0x01 != 0
	e.prop("precincts", scod&0x01)
	e.prop("sop", (scod>>1)&0x01)
	e.prop("eph", (scod>>2)&0x01)

	order, ok := e.u8()
	if !ok {
		return
	}
	e.prop("order", order)
	e.test("orderIsValid", order <= 4)

	layers, ok := e.u16()
	if !ok {
		return
	}
	e.prop("layers", layers)
	e.test("layersIsValid", layers >= 1)

	mct, ok := e.u8()
	if !ok {
		return
	}
	e.prop("multipleComponentTransformation", mct)
	e.test("multipleComponentTransformationIsValid", mct <= 1)

	e.codingStyle(precincts)
	e.test("lcodIsValid", lseg >= 12 && lseg <= 45 && e.left() == 0 && !e.truncated)
}

func (e *element) validateCOC(lseg uint16, csiz uint16) {
	e.prop("lcoc", lseg)

	ccoc, ok := e.componentIndex(csiz)
	if !ok {
		return
	}
	e.prop("ccoc", ccoc)
	e.test("ccocIsValid", csiz == 0 || ccoc < csiz)

	scoc, ok := e.u8()
	if !ok {
		return
	}
	precincts := scoc&0x01 != 0
	e.prop("precincts", scoc&0x01)

	e.codingStyle(precincts)
	e.test("lcocIsValid", e.left() == 0 && !e.truncated)
}

// componentIndex reads a component number whose width depends on the
// component count declared by SIZ: one byte below 257 components, two
// bytes from there on.
func (e *element) componentIndex(csiz uint16) (uint16, bool) {
	if csiz >= 257 {
		return e.u16()
	}
	v, ok := e.u8()
	return uint16(v), ok
}

// quantization parses the Sqcd/Sqcc style byte and the step-size table
// shared by the QCD and QCC segments.
func (e *element) quantization() {
	sq, ok := e.u8()
	if !ok {
		return
	}
	qStyle := sq & 0x1F
	e.prop("qStyle", qStyle)
	e.test("qStyleIsValid", qStyle <= 2)
	e.prop("guardBits", sq>>5)

	switch qStyle {
	case 0:
		// No quantization: one exponent byte per subband.
		e.test("stepSizeTableIsValid", e.left() >= 1)
		for e.left() > 0 {
			b, _ := e.u8()
			e.prop("epsilon", b>>3)
		}
	case 1:
		// Scalar derived: a single base step size.
		e.test("stepSizeTableIsValid", e.left() == 2)
		if v, ok := e.u16(); ok {
			e.prop("epsilon", uint8(v>>11))
			e.prop("mu", v&0x07FF)
		}
	case 2:
		// Scalar expounded: one step size per subband.
		e.test("stepSizeTableIsValid", e.left() >= 2 && e.left()%2 == 0)
		for e.left() >= 2 {
			v, _ := e.u16()
			e.prop("epsilon", uint8(v>>11))
			e.prop("mu", v&0x07FF)
		}
	}
}

func (e *element) validateQCD(lseg uint16) {
	e.prop("lqcd", lseg)
	e.quantization()
}

func (e *element) validateQCC(lseg uint16, csiz uint16) {
	e.prop("lqcc", lseg)

	cqcc, ok := e.componentIndex(csiz)
	if !ok {
		return
	}
	e.prop("cqcc", cqcc)
	e.test("cqccIsValid", csiz == 0 || cqcc < csiz)

	e.quantization()
}

func (e *element) validateRGN(lseg uint16, csiz uint16) {
	e.prop("lrgn", lseg)

	crgn, ok := e.componentIndex(csiz)
	if !ok {
		return
	}
	e.prop("crgn", crgn)
	e.test("crgnIsValid", csiz == 0 || crgn < csiz)

	srgn, ok := e.u8()
	if !ok {
		return
	}
	e.prop("roiStyle", srgn)
	e.test("srgnIsValid", srgn == 0)

	sprgn, ok := e.u8()
	if !ok {
		return
	}
	e.prop("roiShift", sprgn)
	e.test("sprgnIsValid", sprgn <= 37)
}

func (e *element) validatePOC(lseg uint16, csiz uint16) {
	e.prop("lpoc", lseg)

	compBytes := 1
	if csiz >= 257 {
		compBytes = 2
	}
	entrySize := 5 + 2*compBytes

	e.test("lpocIsValid", len(e.buf) > 0 && len(e.buf)%entrySize == 0)

	pValid := true
	for e.left() >= entrySize {
		rsPoc, _ := e.u8()
		csPoc, _ := e.componentIndex(csiz)
		lyePoc, _ := e.u16()
		rePoc, _ := e.u8()
		cePoc, _ := e.componentIndex(csiz)
		pPoc, _ := e.u8()

		e.prop("rsPoc", rsPoc)
		e.prop("csPoc", csPoc)
		e.prop("lyePoc", lyePoc)
		e.prop("rePoc", rePoc)
		e.prop("cePoc", cePoc)
		e.prop("pPoc", pPoc)
		if pPoc > 4 {
			pValid = false
		}
	}
	e.test("pPocIsValid", pValid)
}

func (e *element) validateTLM(lseg uint16) {
	e.prop("ltlm", lseg)

	ztlm, ok := e.u8()
	if !ok {
		return
	}
	e.prop("ztlm", ztlm)

	stlm, ok := e.u8()
	if !ok {
		return
	}
	st := (stlm >> 4) & 0x03
	sp := (stlm >> 6) & 0x01
	e.test("stlmIsValid", st <= 2 && stlm&0x8F == 0)

	entrySize := int(st) + 2
	if sp == 1 {
		entrySize = int(st) + 4
	}
	e.test("ltlmIsValid", e.left()%entrySize == 0)

	for e.left() >= entrySize {
		switch st {
		case 1:
			v, _ := e.u8()
			e.prop("ttlm", uint16(v))
		case 2:
			v, _ := e.u16()
			e.prop("ttlm", v)
		}
		if sp == 1 {
			v, _ := e.u32()
			e.prop("ptlm", v)
		} else {
			v, _ := e.u16()
			e.prop("ptlm", uint32(v))
		}
	}
}

// validateZIndexed covers the pointer segments whose payload beyond the
// index byte is opaque packet-length or packed-header data (PLM, PLT,
// PPM, PPT).
func (e *element) validateZIndexed(indexName string) {
	z, ok := e.u8()
	if !ok {
		return
	}
	e.prop(indexName, z)
	e.prop("dataLength", uint64(e.left()))
}

func (e *element) validateCRG(lseg uint16, csiz uint16) {
	e.prop("lcrg", lseg)
	if csiz > 0 {
		e.test("lcrgIsValid", int(lseg) == 2+4*int(csiz))
	} else {
		e.test("lcrgIsValid", len(e.buf)%4 == 0)
	}

	for e.left() >= 4 {
		x, _ := e.u16()
		y, _ := e.u16()
		e.prop("xcrg", x)
		e.prop("ycrg", y)
	}
}

func (e *element) validateCOM(lseg uint16) {
	e.prop("lcom", lseg)

	rcom, ok := e.u16()
	if !ok {
		return
	}
	e.prop("rcom", rcom)
	e.test("rcomIsValid", rcom <= 1)

	data := e.rest()
	if rcom == 1 {
		// Registration 1 declares the comment as ISO/IEC 8859-15 text.
		decoded, err := charmap.ISO8859_15.NewDecoder().Bytes(data)
		if err == nil {
			e.prop("comment", string(decoded))
			return
		}
	}
	e.prop("commentLength", uint64(len(data)))
}

// validateSOT parses the start-of-tile-part segment and returns Psot,
// the declared tile-part length.
func (e *element) validateSOT(lseg uint16) uint32 {
	e.prop("lsot", lseg)
	e.test("lsotIsValid", lseg == 10)

	isot, ok := e.u16()
	if !ok {
		return 0
	}
	e.prop("isot", isot)
	e.test("isotIsValid", isot <= 65534)

	psot, ok := e.u32()
	if !ok {
		return 0
	}
	e.prop("psot", psot)
	e.test("psotIsValid", psot == 0 || psot >= 14)

	tpsot, ok := e.u8()
	if !ok {
		return psot
	}
	e.prop("tpsot", tpsot)
	e.test("tpsotIsValid", tpsot <= 254)

	tnsot, ok := e.u8()
	if !ok {
		return psot
	}
	e.prop("tnsot", tnsot)
	return psot
}
