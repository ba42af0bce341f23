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

const (
	methEnumerated    = 1
	methRestrictedICC = 2
)

func (e *element) validateColourSpecification() {
	meth, ok := e.u8()
	if !ok {
		return
	}
	e.prop("meth", meth)
	e.test("methIsValid", meth == methEnumerated || meth == methRestrictedICC)

	prec, ok := e.i8()
	if !ok {
		return
	}
	e.prop("prec", prec)
	e.test("precIsValid", prec == 0)

	approx, ok := e.u8()
	if !ok {
		return
	}
	e.prop("approx", approx)
	e.test("approxIsValid", approx == 0)

	switch meth {
	case methEnumerated:
		enumCS, ok := e.u32()
		if !ok {
			return
		}
		e.prop("enumCS", enumCS)
		// JP2 restricts the enumerated colour spaces to sRGB,
		// greyscale and sYCC.
		e.test("enumCSIsValid", enumCS == 16 || enumCS == 17 || enumCS == 18)
	case methRestrictedICC:
		icc := newElement(KindICCProfile.String(), e.rest(), e.opts)
		icc.validateICC()
		e.attach(icc)
	}
}
