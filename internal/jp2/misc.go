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
	"bytes"
	"encoding/xml"
	"io"
	"strings"

	"github.com/google/uuid"
)

// xmpUUID identifies a UUID box carrying an XMP packet.
var xmpUUID = uuid.MustParse("be7acfcb-97a9-42e8-9c71-999491e3afac")

// wellformedXML reports whether b parses as a complete XML document with
// at least one element.
func wellformedXML(b []byte) bool {
	dec := xml.NewDecoder(bytes.NewReader(b))
	saw := false
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			return saw
		}
		if err != nil {
			return false
		}
		if _, ok := tok.(xml.StartElement); ok {
			saw = true
		}
	}
}

// textPayload applies the null-termination option to an XML or UUID
// payload before it is interpreted as text.
func (e *element) textPayload(b []byte) []byte {
	if e.opts.ExtractNullTerminatedXML {
		return bytes.TrimRight(b, "\x00")
	}
	return b
}

func (e *element) validateXMLBox() {
	content := e.textPayload(e.rest())
	e.test("containsWellformedXML", wellformedXML(content))
	e.prop("xmlContent", string(content))
}

func (e *element) validateUUIDBox() {
	raw, ok := e.bytes(16)
	if !ok {
		return
	}
	var id uuid.UUID
	copy(id[:], raw)
	e.prop("uuid", id.String())

	if id == xmpUUID {
		content := e.textPayload(e.rest())
		e.test("containsWellformedXML", wellformedXML(content))
		e.prop("xmlContent", string(content))
		return
	}
	e.prop("payloadLength", uint64(e.left()))
}

func (e *element) validateUUIDInfo() {
	kinds := e.walkBoxes()

	lists, urls := 0, 0
	for _, k := range kinds {
		switch k {
		case KindUUIDListBox:
			lists++
		case KindURLBox:
			urls++
		}
	}
	e.test("containsOneListBox", lists == 1)
	e.test("containsOneURLBox", urls == 1)
}

func (e *element) validateUUIDList() {
	nu, ok := e.u16()
	if !ok {
		return
	}
	e.prop("nU", nu)
	e.test("boxLengthIsValid", len(e.buf) == 2+16*int(nu))

	for i := 0; i < int(nu); i++ {
		raw, ok := e.bytes(16)
		if !ok {
			return
		}
		var id uuid.UUID
		copy(id[:], raw)
		e.prop("uuid", id.String())
	}
}

func (e *element) validateURLBox() {
	version, ok := e.u8()
	if !ok {
		return
	}
	e.prop("version", version)
	e.test("versionIsValid", version == 0)

	flags, ok := e.bytes(3)
	if !ok {
		return
	}
	e.test("flagIsValid", flags[0] == 0 && flags[1] == 0 && flags[2] == 0)

	// The location is a null-terminated UTF-8 string filling the rest
	// of the box.
	loc := e.rest()
	e.test("locHasNullTerminator", len(loc) > 0 && loc[len(loc)-1] == 0)
	e.prop("loc", strings.TrimRight(string(loc), "\x00"))
}
