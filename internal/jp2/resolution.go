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

import "math"

func (e *element) validateResolution() {
	kinds := e.walkBoxes()

	capture, display := 0, 0
	for _, k := range kinds {
		switch k {
		case KindCaptureResolutionBox:
			capture++
		case KindDisplayResolutionBox:
			display++
		}
	}
	e.test("containsCaptureOrDisplayResolutionBox", capture+display > 0)
	e.test("noMoreThanOneCaptureResolutionBox", capture <= 1)
	e.test("noMoreThanOneDisplayResolutionBox", display <= 1)
}

// resolutionFields parses the shared layout of the Capture and Display
// Resolution boxes: vertical and horizontal numerator/denominator pairs
// followed by base-10 exponents, with derived pixels-per-meter values.
// The property prefix is "Rc" for capture and "Rd" for display.
func (e *element) resolutionFields(infix string) {
	e.test("boxLengthIsValid", len(e.buf) == 10)

	vn, ok := e.u16()
	if !ok {
		return
	}
	vd, ok := e.u16()
	if !ok {
		return
	}
	hn, ok := e.u16()
	if !ok {
		return
	}
	hd, ok := e.u16()
	if !ok {
		return
	}
	ve, ok := e.i8()
	if !ok {
		return
	}
	he, ok := e.i8()
	if !ok {
		return
	}

	e.prop("v"+infix+"N", vn)
	e.prop("v"+infix+"D", vd)
	e.prop("h"+infix+"N", hn)
	e.prop("h"+infix+"D", hd)
	e.prop("v"+infix+"E", ve)
	e.prop("h"+infix+"E", he)

	e.test("v"+infix+"NIsValid", vn > 0)
	e.test("v"+infix+"DIsValid", vd > 0)
	e.test("h"+infix+"NIsValid", hn > 0)
	e.test("h"+infix+"DIsValid", hd > 0)

	if vd == 0 || hd == 0 {
		return
	}
	vRes := float64(vn) / float64(vd) * math.Pow10(int(ve))
	hRes := float64(hn) / float64(hd) * math.Pow10(int(he))
	e.prop("v"+resInfix(infix)+"InPixelsPerMeter", roundTo(vRes, 2))
	e.prop("h"+resInfix(infix)+"InPixelsPerMeter", roundTo(hRes, 2))
}

// resInfix maps the field infix to the derived-property infix ("Rc" →
// "Resc", "Rd" → "Resd").
func resInfix(infix string) string {
	if infix == "Rc" {
		return "Resc"
	}
	return "Resd"
}

func (e *element) validateCaptureResolution() {
	e.resolutionFields("Rc")
}

func (e *element) validateDisplayResolution() {
	e.resolutionFields("Rd")
}
