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
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/require"
)

func u64be(v uint64) []byte { return binary.BigEndian.AppendUint64(nil, v) }

// testICCProfile builds a minimal greyscale display profile with a
// single 'desc' tag.
func testICCProfile() []byte {
	const description = "Test profile"

	descData := cat(
		[]byte("desc"),
		u32be(0),
		u32be(uint32(len(description)+1)),
		[]byte(description), []byte{0},
	)
	// Header (128) + tag count (4) + one tag entry (12).
	descOffset := uint32(144)
	total := descOffset + uint32(len(descData))

	header := cat(
		u32be(total),
		[]byte("ADBE"),
		u32be(0x02100000), // version 2.1.0
		[]byte("mntr"),
		[]byte("GRAY"),
		[]byte("XYZ "),
		u16be(2009), u16be(1), u16be(2), u16be(3), u16be(4), u16be(5),
		[]byte("acsp"),
		[]byte("APPL"),
		u32be(1), // embedded profile
		[]byte("none"),
		[]byte("none"),
		u64be(1), // transparent media
		u32be(1), // media-relative colorimetric
		u32be(0x0000F6D6), u32be(0x00010000), u32be(0x0000D32D),
		[]byte("test"),
		make([]byte, 44),
	)

	tagTable := cat(
		u32be(1),
		[]byte("desc"), u32be(descOffset), u32be(uint32(len(descData))),
	)
	return cat(header, tagTable, descData)
}

func TestColourSpecificationWithICCProfile(t *testing.T) {
	payload := cat([]byte{2, 0, 0}, testICCProfile())
	e := newElement("colourSpecificationBox", payload, Options{})
	e.validateColourSpecification()

	require.True(t, e.tests.AllTrue(), "failed tests: %v", e.tests.FailedTests())

	icc := e.props.Find("icc")
	require.NotNil(t, icc)
	require.Equal(t, "ADBE", icc.Find("preferredCMMType").Value)
	require.Equal(t, "2.1.0", icc.Find("profileVersion").Value)
	require.Equal(t, "mntr", icc.Find("profileClass").Value)
	require.Equal(t, "GRAY", icc.Find("colourSpace").Value)
	require.Equal(t, "XYZ ", icc.Find("connectionSpace").Value)
	require.Equal(t, "2009/01/02, 03:04:05", icc.Find("dateTimeString").Value)
	require.Equal(t, "APPL", icc.Find("primaryPlatform").Value)
	require.Equal(t, uint32(1), icc.Find("embeddedProfile").Value)
	require.Equal(t, uint8(1), icc.Find("transparency").Value)
	require.Equal(t, uint8(0), icc.Find("glossiness").Value)
	require.Equal(t, uint32(1), icc.Find("renderingIntent").Value)
	require.Equal(t, 0.9642, icc.Find("connectionSpaceIlluminantX").Value)
	require.Equal(t, 1.0, icc.Find("connectionSpaceIlluminantY").Value)
	require.Equal(t, uint32(1), icc.Find("tagCount").Value)
	require.Equal(t, "Test profile", icc.Find("description").Value)
}

func TestICCProfileSizeMismatch(t *testing.T) {
	profile := testICCProfile()
	binary.BigEndian.PutUint32(profile, uint32(len(profile))+10)

	e := newElement("icc", profile, Options{})
	e.validateICC()

	require.Equal(t, false, e.tests.Find("profileSizeIsValid").Value)
}

func TestICCProfileBadSignature(t *testing.T) {
	profile := testICCProfile()
	copy(profile[36:40], "xxxx")

	e := newElement("icc", profile, Options{})
	e.validateICC()

	require.Equal(t, false, e.tests.Find("profileSignatureIsValid").Value)
}

func TestICCTagOutsideProfileBounds(t *testing.T) {
	header := testICCProfile()[:128]
	tagTable := cat(
		u32be(1),
		[]byte("wtpt"), u32be(4096), u32be(20),
	)
	profile := cat(header, tagTable)
	binary.BigEndian.PutUint32(profile, uint32(len(profile)))

	e := newElement("icc", profile, Options{})
	e.validateICC()

	require.Equal(t, false, e.tests.Find("tagTableIsValid").Value)
}

func TestICCTruncatedHeader(t *testing.T) {
	e := newElement("icc", testICCProfile()[:40], Options{})
	e.validateICC()

	require.Equal(t, false, e.tests.Find("unexpectedEndOfBox").Value)
	// Fields before the cut survive.
	require.Equal(t, "mntr", e.props.Find("profileClass").Value)
}
