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

// element is the parse state for a single structural element: the payload
// slice, a cursor, and the test and property subtrees being filled in.
// Validators never abort; a truncated payload records a single
// unexpectedEndOfBox failure and field extraction stops there, keeping
// whatever properties were read before the cut.
type element struct {
	buf  []byte
	off  int
	opts Options

	tests *Node
	props *Node

	truncated bool
}

func newElement(name string, payload []byte, opts Options) *element {
	return &element{
		buf:   payload,
		opts:  opts,
		tests: NewNode(name),
		props: NewNode(name),
	}
}

func (e *element) test(name string, ok bool) {
	e.tests.AddBool(name, ok)
}

func (e *element) prop(name string, v any) {
	e.props.Add(name, v)
}

// markTruncated records the unexpectedEndOfBox failure exactly once.
func (e *element) markTruncated() {
	if !e.truncated {
		e.truncated = true
		e.test("unexpectedEndOfBox", false)
	}
}

func (e *element) u8() (uint8, bool) {
	v, next, err := readUint8(e.buf, e.off)
	if err != nil {
		e.markTruncated()
		return 0, false
	}
	e.off = next
	return v, true
}

func (e *element) u16() (uint16, bool) {
	v, next, err := readUint16(e.buf, e.off)
	if err != nil {
		e.markTruncated()
		return 0, false
	}
	e.off = next
	return v, true
}

func (e *element) u32() (uint32, bool) {
	v, next, err := readUint32(e.buf, e.off)
	if err != nil {
		e.markTruncated()
		return 0, false
	}
	e.off = next
	return v, true
}

func (e *element) u64() (uint64, bool) {
	v, next, err := readUint64(e.buf, e.off)
	if err != nil {
		e.markTruncated()
		return 0, false
	}
	e.off = next
	return v, true
}

func (e *element) i8() (int8, bool) {
	v, next, err := readInt8(e.buf, e.off)
	if err != nil {
		e.markTruncated()
		return 0, false
	}
	e.off = next
	return v, true
}

func (e *element) bytes(n int) ([]byte, bool) {
	v, next, err := readBytes(e.buf, e.off, n)
	if err != nil {
		e.markTruncated()
		return nil, false
	}
	e.off = next
	return v, true
}

func (e *element) ascii(n int) (string, bool) {
	v, next, err := readASCII(e.buf, e.off, n)
	if err != nil {
		e.markTruncated()
		return "", false
	}
	e.off = next
	return v, true
}

// rest consumes and returns everything left in the payload.
func (e *element) rest() []byte {
	out := e.buf[e.off:]
	e.off = len(e.buf)
	return out
}

func (e *element) left() int {
	return remaining(e.buf, e.off)
}

// attach appends the child's non-empty subtrees under e.
func (e *element) attach(child *element) {
	if len(child.tests.Children) > 0 {
		e.tests.Append(child.tests)
	}
	e.props.Append(child.props)
}
