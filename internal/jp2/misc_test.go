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
	"testing"

	"github.com/stretchr/testify/require"
)

func TestXMLBoxWellformed(t *testing.T) {
	e := newElement("xmlBox", []byte(`<meta><title>x</title></meta>`), Options{})
	e.validateXMLBox()

	require.Equal(t, true, e.tests.Find("containsWellformedXML").Value)
	require.Equal(t, `<meta><title>x</title></meta>`, e.props.Find("xmlContent").Value)
}

func TestXMLBoxMalformed(t *testing.T) {
	e := newElement("xmlBox", []byte(`<meta><unclosed>`), Options{})
	e.validateXMLBox()

	require.Equal(t, false, e.tests.Find("containsWellformedXML").Value)
}

func TestXMLBoxNullTerminated(t *testing.T) {
	payload := []byte("<meta/>\x00\x00")

	e := newElement("xmlBox", payload, Options{})
	e.validateXMLBox()
	require.Equal(t, false, e.tests.Find("containsWellformedXML").Value)

	e = newElement("xmlBox", payload, Options{ExtractNullTerminatedXML: true})
	e.validateXMLBox()
	require.Equal(t, true, e.tests.Find("containsWellformedXML").Value)
	require.Equal(t, "<meta/>", e.props.Find("xmlContent").Value)
}

func TestUUIDBoxWithXMPPayload(t *testing.T) {
	payload := cat(xmpUUID[:], []byte(`<x:xmpmeta xmlns:x="adobe:ns:meta/"></x:xmpmeta>`))

	e := newElement("uuidBox", payload, Options{})
	e.validateUUIDBox()

	require.Equal(t, "be7acfcb-97a9-42e8-9c71-999491e3afac", e.props.Find("uuid").Value)
	require.Equal(t, true, e.tests.Find("containsWellformedXML").Value)
}

func TestUUIDBoxOpaquePayload(t *testing.T) {
	id := make([]byte, 16)
	id[0] = 0xAB
	e := newElement("uuidBox", cat(id, []byte{1, 2, 3}), Options{})
	e.validateUUIDBox()

	require.Equal(t, "ab000000-0000-0000-0000-000000000000", e.props.Find("uuid").Value)
	require.Equal(t, uint64(3), e.props.Find("payloadLength").Value)
	require.Nil(t, e.tests.Find("containsWellformedXML"))
}

func TestUUIDInfoBox(t *testing.T) {
	ulst := box(tagUUIDList, cat(u16be(1), make([]byte, 16)))
	url := box(tagURL, cat([]byte{0, 0, 0, 0}, []byte("http://example.com/\x00")))

	e := newElement("uuidInfoBox", cat(ulst, url), Options{})
	e.validateUUIDInfo()

	require.True(t, e.tests.AllTrue(), "failed tests: %v", e.tests.FailedTests())
	require.Equal(t, uint16(1), e.props.Find("uuidListBox/nU").Value)
	require.Equal(t, "http://example.com/", e.props.Find("urlBox/loc").Value)
}

func TestURLBoxMissingTerminator(t *testing.T) {
	e := newElement("urlBox", cat([]byte{0, 0, 0, 0}, []byte("http://x")), Options{})
	e.validateURLBox()

	require.Equal(t, false, e.tests.Find("locHasNullTerminator").Value)
	require.Equal(t, "http://x", e.props.Find("loc").Value)
}

func TestURLBoxBadVersion(t *testing.T) {
	e := newElement("urlBox", cat([]byte{1, 0, 0, 1}, []byte("x\x00")), Options{})
	e.validateURLBox()

	require.Equal(t, false, e.tests.Find("versionIsValid").Value)
	require.Equal(t, false, e.tests.Find("flagIsValid").Value)
}
