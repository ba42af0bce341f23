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

// JPEG 2000 marker codes (ITU-T T.800 Table A.1).
const (
	// Delimiting markers; these have no length field.
	markerSOC = 0xFF4F // Start of codestream
	markerSOT = 0xFF90 // Start of tile-part
	markerSOD = 0xFF93 // Start of data
	markerEOC = 0xFFD9 // End of codestream

	// Fixed information markers
	markerSIZ = 0xFF51 // Image and tile size

	// Functional markers
	markerCOD = 0xFF52 // Coding style default
	markerCOC = 0xFF53 // Coding style component
	markerRGN = 0xFF5E // Region of interest
	markerQCD = 0xFF5C // Quantization default
	markerQCC = 0xFF5D // Quantization component
	markerPOC = 0xFF5F // Progression order change

	// Pointer markers
	markerTLM = 0xFF55 // Tile-part lengths
	markerPLM = 0xFF57 // Packet length, main header
	markerPLT = 0xFF58 // Packet length, tile-part header
	markerPPM = 0xFF60 // Packed packet headers, main header
	markerPPT = 0xFF61 // Packed packet headers, tile-part header

	// In-bitstream markers; EPH has no length field.
	markerSOP = 0xFF91 // Start of packet
	markerEPH = 0xFF92 // End of packet header

	// Informational markers
	markerCRG = 0xFF63 // Component registration
	markerCOM = 0xFF64 // Comment
)

// markerNames maps marker codes to the element names used in the result
// trees. Codes outside the table are reported through the unknown-marker
// path and skipped by segment length.
var markerNames = map[uint16]string{
	markerSOC: "soc",
	markerSOT: "sot",
	markerSOD: "sod",
	markerEOC: "eoc",
	markerSIZ: "siz",
	markerCOD: "cod",
	markerCOC: "coc",
	markerRGN: "rgn",
	markerQCD: "qcd",
	markerQCC: "qcc",
	markerPOC: "poc",
	markerTLM: "tlm",
	markerPLM: "plm",
	markerPLT: "plt",
	markerPPM: "ppm",
	markerPPT: "ppt",
	markerSOP: "sop",
	markerEPH: "eph",
	markerCRG: "crg",
	markerCOM: "com",
}

// segmentless reports whether the marker has no following length field.
func segmentless(marker uint16) bool {
	switch marker {
	case markerSOC, markerSOD, markerEOC, markerEPH:
		return true
	}
	return false
}

// mainHeaderMarkers are the segment markers allowed between SIZ and the
// first SOT; tilePartMarkers those allowed between SOT and SOD.
var mainHeaderMarkers = map[uint16]bool{
	markerCOD: true,
	markerCOC: true,
	markerQCD: true,
	markerQCC: true,
	markerRGN: true,
	markerPOC: true,
	markerPPM: true,
	markerTLM: true,
	markerPLM: true,
	markerCRG: true,
	markerCOM: true,
}

var tilePartMarkers = map[uint16]bool{
	markerCOD: true,
	markerCOC: true,
	markerQCD: true,
	markerQCC: true,
	markerRGN: true,
	markerPOC: true,
	markerPPT: true,
	markerPLT: true,
	markerCOM: true,
}

// MarkerCodes returns the defined marker codes with their element names,
// in ascending code order, for display purposes.
func MarkerCodes() []struct {
	Code uint16
	Name string
} {
	codes := []uint16{
		markerSOC, markerSIZ, markerCOD, markerCOC, markerTLM,
		markerPLM, markerPLT, markerQCD, markerQCC, markerRGN,
		markerPOC, markerPPM, markerPPT, markerCRG, markerCOM,
		markerSOT, markerSOP, markerEPH, markerSOD, markerEOC,
	}
	out := make([]struct {
		Code uint16
		Name string
	}, len(codes))
	for i, c := range codes {
		out[i].Code = c
		out[i].Name = markerNames[c]
	}
	return out
}
