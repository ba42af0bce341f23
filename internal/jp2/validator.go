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

// Package jp2 validates and characterizes JPEG 2000 Part 1 (JP2) images
// against ISO/IEC 15444-1. Given a byte slice, Validate walks the box
// structure and the embedded codestream, records the outcome of every
// applicable conformance rule in a tests tree and the extracted metadata
// in a parallel properties tree. The parser is total: any input yields a
// well-formed result, never a panic or an out-of-bounds read.
package jp2

// Options controls the optional parsing behaviours. All fields default
// to off.
type Options struct {
	// ExtractNullTerminatedXML trims trailing NUL bytes from XML and
	// UUID box payloads before they are interpreted as text.
	ExtractNullTerminatedXML bool
}

// Result is the outcome of validating one candidate file. Valid holds
// exactly when every boolean leaf of Tests is true. Both trees are
// frozen once returned.
type Result struct {
	Valid      bool
	Tests      *Node
	Properties *Node
}

// Validate checks data against the JP2 file-format specification. The
// slice is only borrowed for the duration of the call.
func Validate(data []byte, opts Options) *Result {
	e := newElement("tests", data, opts)
	e.props.Name = "properties"

	e.test("fileIsNotEmpty", len(data) > 0)

	if len(data) > 0 {
		kinds := e.walkBoxes()

		count := map[Kind]int{}
		for _, k := range kinds {
			count[k]++
		}
		e.test("containsSignatureBox", count[KindSignatureBox] > 0)
		e.test("firstBoxIsSignatureBox", len(kinds) > 0 && kinds[0] == KindSignatureBox)
		e.test("containsFileTypeBox", count[KindFileTypeBox] > 0)
		e.test("secondBoxIsFileTypeBox", len(kinds) > 1 && kinds[1] == KindFileTypeBox)
		e.test("containsJP2HeaderBox", count[KindJP2HeaderBox] > 0)
		e.test("containsOneContiguousCodestreamBox", count[KindContiguousCodestreamBox] == 1)
		e.test("jp2HeaderBoxPrecedesContiguousCodestreamBox",
			indexOf(kinds, KindJP2HeaderBox) < indexOf(kinds, KindContiguousCodestreamBox))
	}

	checkConsistency(e.tests, e.props)
	addCompressionRatio(e.props, uint64(len(data)))

	return &Result{
		Valid:      e.tests.AllTrue(),
		Tests:      e.tests,
		Properties: e.props,
	}
}

// indexOf returns the first position of k, or len(kinds) when absent so
// that "absent" sorts after everything present.
func indexOf(kinds []Kind, k Kind) int {
	for i, x := range kinds {
		if x == k {
			return i
		}
	}
	return len(kinds)
}

// addCompressionRatio derives the ratio between the uncompressed image
// size implied by the header metadata and the actual file size.
func addCompressionRatio(props *Node, fileSize uint64) {
	if fileSize == 0 {
		return
	}
	ihdr := props.Find("jp2HeaderBox/imageHeaderBox")
	if ihdr == nil {
		return
	}
	height, okH := uintAt(ihdr, "height")
	width, okW := uintAt(ihdr, "width")
	nc, okN := uintAt(ihdr, "nC")
	if !okH || !okW || !okN {
		return
	}

	// Sum of per-component depths, either fixed in the Image Header or
	// listed in the Bits Per Component box.
	var bits uint64
	if depth, ok := uintAt(ihdr, "bPCDepth"); ok {
		bits = nc * depth
	} else if bpcc := props.Find("jp2HeaderBox/bitsPerComponentBox"); bpcc != nil {
		for _, d := range uintsAt(bpcc, "bPCDepth") {
			bits += d
		}
	}
	if bits == 0 {
		return
	}

	uncompressed := float64(height) * float64(width) * float64(bits) / 8
	props.Add("compressionRatio", roundTo(uncompressed/float64(fileSize), 2))
}
