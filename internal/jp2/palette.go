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

func (e *element) validatePalette() {
	ne, ok := e.u16()
	if !ok {
		return
	}
	e.prop("nE", ne)
	e.test("nEIsValid", ne >= 1 && ne <= 1024)

	npc, ok := e.u8()
	if !ok {
		return
	}
	e.prop("nPC", npc)
	e.test("nPCIsValid", npc >= 1)

	// One packed sign/depth byte per generated column.
	depths := make([]uint8, 0, npc)
	bValid := true
	for i := 0; i < int(npc); i++ {
		b, ok := e.u8()
		if !ok {
			return
		}
		sign, depth := splitBPC(b)
		e.prop("bSign", sign)
		e.prop("bDepth", depth)
		if depth < 1 || depth > 38 {
			bValid = false
		}
		depths = append(depths, depth)
	}
	e.test("bIsValid", bValid)

	// The entry table must fill the remainder of the box exactly; each
	// C(i,j) value occupies ceil(depth/8) bytes. The values themselves
	// are not extracted.
	entrySize := 0
	for _, d := range depths {
		entrySize += (int(d) + 7) / 8
	}
	e.test("boxLengthIsValid", e.left() == int(ne)*entrySize)
}

func (e *element) validateComponentMapping() {
	e.test("boxLengthIsValid", len(e.buf) > 0 && len(e.buf)%4 == 0)

	mTypValid, pColValid := true, true
	for e.left() >= 4 {
		cmp, _ := e.u16()
		mTyp, _ := e.u8()
		pCol, _ := e.u8()

		e.prop("cMP", cmp)
		e.prop("mTyp", mTyp)
		e.prop("pCol", pCol)

		if mTyp > 1 {
			mTypValid = false
		}
		// Direct use (mTyp 0) leaves the palette column unused.
		if mTyp == 0 && pCol != 0 {
			pColValid = false
		}
	}
	e.test("mTypIsValid", mTypValid)
	e.test("pColIsValid", pColValid)
}

func (e *element) validateChannelDefinition() {
	n, ok := e.u16()
	if !ok {
		return
	}
	e.prop("n", n)
	e.test("nIsValid", n >= 1)
	e.test("boxLengthIsValid", len(e.buf) == 2+6*int(n))

	cTypValid := true
	for i := 0; i < int(n); i++ {
		cn, ok := e.u16()
		if !ok {
			return
		}
		cTyp, ok := e.u16()
		if !ok {
			return
		}
		// cAssoc 0 means "applies to the whole image", 65535 "no
		// colours". Channel and association indices are not checked
		// against the Image Header's component count.
		cAssoc, ok := e.u16()
		if !ok {
			return
		}

		e.prop("cN", cn)
		e.prop("cTyp", cTyp)
		e.prop("cAssoc", cAssoc)

		if cTyp > 2 && cTyp != 65535 {
			cTypValid = false
		}
	}
	e.test("cTypIsValid", cTypValid)
}
