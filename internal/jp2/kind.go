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

// Kind identifies which grammar applies to a byte slice: one variant per
// defined JP2 box type plus the synthetic containers (the file itself, the
// embedded codestream, an ICC profile).
type Kind int

const (
	KindUnknownBox Kind = iota
	KindJP2
	KindSignatureBox
	KindFileTypeBox
	KindJP2HeaderBox
	KindImageHeaderBox
	KindBitsPerComponentBox
	KindColourSpecificationBox
	KindPaletteBox
	KindComponentMappingBox
	KindChannelDefinitionBox
	KindResolutionBox
	KindCaptureResolutionBox
	KindDisplayResolutionBox
	KindContiguousCodestreamBox
	KindIntellectualPropertyBox
	KindXMLBox
	KindUUIDBox
	KindUUIDInfoBox
	KindUUIDListBox
	KindURLBox
	KindICCProfile
)

// String returns the element name used for tree nodes of this kind.
func (k Kind) String() string {
	switch k {
	case KindJP2:
		return "jp2"
	case KindSignatureBox:
		return "signatureBox"
	case KindFileTypeBox:
		return "fileTypeBox"
	case KindJP2HeaderBox:
		return "jp2HeaderBox"
	case KindImageHeaderBox:
		return "imageHeaderBox"
	case KindBitsPerComponentBox:
		return "bitsPerComponentBox"
	case KindColourSpecificationBox:
		return "colourSpecificationBox"
	case KindPaletteBox:
		return "paletteBox"
	case KindComponentMappingBox:
		return "componentMappingBox"
	case KindChannelDefinitionBox:
		return "channelDefinitionBox"
	case KindResolutionBox:
		return "resolutionBox"
	case KindCaptureResolutionBox:
		return "captureResolutionBox"
	case KindDisplayResolutionBox:
		return "displayResolutionBox"
	case KindContiguousCodestreamBox:
		return "contiguousCodestreamBox"
	case KindIntellectualPropertyBox:
		return "intellectualPropertyBox"
	case KindXMLBox:
		return "xmlBox"
	case KindUUIDBox:
		return "uuidBox"
	case KindUUIDInfoBox:
		return "uuidInfoBox"
	case KindUUIDListBox:
		return "uuidListBox"
	case KindURLBox:
		return "urlBox"
	case KindICCProfile:
		return "icc"
	default:
		return "unknownBox"
	}
}

// Box type tags (ISO/IEC 15444-1 Annex I).
const (
	tagSignature  = "jP  "
	tagFileType   = "ftyp"
	tagJP2Header  = "jp2h"
	tagImageHdr   = "ihdr"
	tagBPC        = "bpcc"
	tagColourSpec = "colr"
	tagPalette    = "pclr"
	tagCompMap    = "cmap"
	tagChannelDef = "cdef"
	tagResolution = "res "
	tagCaptureRes = "resc"
	tagDisplayRes = "resd"
	tagCodestream = "jp2c"
	tagIPR        = "jp2i"
	tagXML        = "xml "
	tagUUID       = "uuid"
	tagUUIDInfo   = "uinf"
	tagUUIDList   = "ulst"
	tagURL        = "url "
)

// boxKinds maps the 4-byte ASCII box tag to its kind. Tags outside the
// table are preserved as KindUnknownBox and never recursed into.
var boxKinds = map[string]Kind{
	tagSignature:  KindSignatureBox,
	tagFileType:   KindFileTypeBox,
	tagJP2Header:  KindJP2HeaderBox,
	tagImageHdr:   KindImageHeaderBox,
	tagBPC:        KindBitsPerComponentBox,
	tagColourSpec: KindColourSpecificationBox,
	tagPalette:    KindPaletteBox,
	tagCompMap:    KindComponentMappingBox,
	tagChannelDef: KindChannelDefinitionBox,
	tagResolution: KindResolutionBox,
	tagCaptureRes: KindCaptureResolutionBox,
	tagDisplayRes: KindDisplayResolutionBox,
	tagCodestream: KindContiguousCodestreamBox,
	tagIPR:        KindIntellectualPropertyBox,
	tagXML:        KindXMLBox,
	tagUUID:       KindUUIDBox,
	tagUUIDInfo:   KindUUIDInfoBox,
	tagUUIDList:   KindUUIDListBox,
	tagURL:        KindURLBox,
}

// KindOfBox resolves a box tag to its kind.
func KindOfBox(tag string) Kind {
	if k, ok := boxKinds[tag]; ok {
		return k
	}
	return KindUnknownBox
}

// BoxTags returns every defined box tag together with its element name,
// in a fixed order suitable for display.
func BoxTags() [][2]string {
	tags := []string{
		tagSignature, tagFileType, tagJP2Header, tagImageHdr, tagBPC,
		tagColourSpec, tagPalette, tagCompMap, tagChannelDef,
		tagResolution, tagCaptureRes, tagDisplayRes, tagCodestream,
		tagIPR, tagXML, tagUUID, tagUUIDInfo, tagUUIDList, tagURL,
	}
	out := make([][2]string, len(tags))
	for i, t := range tags {
		out[i] = [2]string{t, boxKinds[t].String()}
	}
	return out
}
