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

// validateCodestream walks the JPEG 2000 codestream carried by the
// Contiguous Codestream box: SOC, SIZ, the main-header marker segments,
// tile parts (SOT .. SOD .. packet data) and the terminating EOC.
func (e *element) validateCodestream() {
	marker, ok := peekUint16(e.buf, e.off)
	e.test("codestreamStartsWithSOCMarker", ok && marker == markerSOC)
	if !ok || marker != markerSOC {
		return
	}
	e.off += 2

	marker, ok = peekUint16(e.buf, e.off)
	e.test("foundSIZMarker", ok && marker == markerSIZ)
	if !ok || marker != markerSIZ {
		return
	}
	e.off += 2

	var csiz uint16
	params, lseg, segOK := e.segmentParams()
	if !segOK {
		return
	}
	siz := newElement("siz", params, e.opts)
	csiz = siz.validateSIZ(lseg)
	e.attach(siz)

	var (
		codSeen, qcdSeen, eocSeen bool
		tpTests, tpProps          *Node
	)

	for e.left() >= 2 {
		marker, _ = peekUint16(e.buf, e.off)
		e.off += 2

		switch {
		case marker == markerEOC:
			eocSeen = true

		case marker == markerSOT:
			if tpTests == nil {
				tpTests = NewNode("tileParts")
				tpProps = NewNode("tileParts")
			}
			if !e.parseTilePart(csiz, tpTests, tpProps) {
				e.off = len(e.buf)
			}
			continue

		case mainHeaderMarkers[marker]:
			if eocSeen || tpTests != nil {
				// Main-header segments after the first tile part
				// (or after EOC) are out of place.
				e.test("markerOrderIsValid", false)
			}
			switch marker {
			case markerCOD:
				codSeen = true
			case markerQCD:
				qcdSeen = true
			}
			if !e.parseMarkerSegment(marker, csiz, e.tests, e.props) {
				e.off = len(e.buf)
			}
			continue

		default:
			// Known markers out of place fail the ordering test;
			// reserved or corrupt codes fail markerIsKnown. Either
			// way the segment is skipped by its declared length
			// when one is present, otherwise parsing cannot resync.
			if _, known := markerNames[marker]; known {
				e.test("markerOrderIsValid", false)
			} else {
				e.test("markerIsKnown", false)
			}
			if segmentless(marker) {
				continue
			}
			if _, _, ok := e.segmentParams(); !ok {
				e.off = len(e.buf)
			}
			continue
		}
		if eocSeen {
			break
		}
	}

	if tpTests != nil {
		if len(tpTests.Children) > 0 {
			e.tests.Append(tpTests)
		}
		e.props.Append(tpProps)
	}

	e.test("foundCODMarker", codSeen)
	e.test("foundQCDMarker", qcdSeen)
	e.test("foundEOCMarker", eocSeen)
}

// segmentParams reads the 2-byte segment length that follows a marker
// code and returns the parameter bytes it covers. The length includes its
// own two bytes but not the marker code. A length that cannot be read or
// that overruns the codestream records a segmentLengthIsValid failure.
func (e *element) segmentParams() ([]byte, uint16, bool) {
	lseg, next, err := readUint16(e.buf, e.off)
	if err != nil || lseg < 2 || int(lseg)-2 > remaining(e.buf, next) {
		e.test("segmentLengthIsValid", false)
		return nil, lseg, false
	}
	e.off = next
	params, _ := e.bytes(int(lseg) - 2)
	return params, lseg, true
}

// parseMarkerSegment validates one length-prefixed marker segment,
// appending the per-segment subtrees under tests and props.
func (e *element) parseMarkerSegment(marker uint16, csiz uint16, tests, props *Node) bool {
	params, lseg, ok := e.segmentParams()
	if !ok {
		return false
	}

	sub := newElement(markerNames[marker], params, e.opts)
	switch marker {
	case markerCOD:
		sub.validateCOD(lseg)
	case markerCOC:
		sub.validateCOC(lseg, csiz)
	case markerQCD:
		sub.validateQCD(lseg)
	case markerQCC:
		sub.validateQCC(lseg, csiz)
	case markerRGN:
		sub.validateRGN(lseg, csiz)
	case markerPOC:
		sub.validatePOC(lseg, csiz)
	case markerTLM:
		sub.validateTLM(lseg)
	case markerPLM:
		sub.validateZIndexed("zplm")
	case markerPLT:
		sub.validateZIndexed("zplt")
	case markerPPM:
		sub.validateZIndexed("zppm")
	case markerPPT:
		sub.validateZIndexed("zppt")
	case markerCRG:
		sub.validateCRG(lseg, csiz)
	case markerCOM:
		sub.validateCOM(lseg)
	}
	if len(sub.tests.Children) > 0 {
		tests.Append(sub.tests)
	}
	props.Append(sub.props)
	return true
}

// parseTilePart handles one tile part. The SOT marker code has already
// been consumed; the cursor sits on its segment length. Returns false
// when parsing cannot continue past this tile part.
func (e *element) parseTilePart(csiz uint16, tpTests, tpProps *Node) bool {
	tileStart := e.off - 2 // offset of the SOT marker code

	tests := NewNode("tilePart")
	props := NewNode("tilePart")
	defer func() {
		if len(tests.Children) > 0 {
			tpTests.Append(tests)
		}
		tpProps.Append(props)
	}()

	params, lseg, ok := e.segmentParams()
	if !ok {
		return false
	}
	sot := newElement("sot", params, e.opts)
	psot := sot.validateSOT(lseg)
	if len(sot.tests.Children) > 0 {
		tests.Append(sot.tests)
	}
	props.Append(sot.props)

	// Tile-part header segments up to SOD.
	for e.left() >= 2 {
		marker, _ := peekUint16(e.buf, e.off)
		e.off += 2

		if marker == markerSOD {
			// Packet data follows. When Psot is usable it points
			// directly past the tile part; otherwise scan for the
			// next tile part or the end of the codestream,
			// relying on bit-stuffing never producing 0xFF90 or
			// 0xFFD9 inside packet data.
			if psot >= 14 && uint64(tileStart)+uint64(psot) <= uint64(len(e.buf)) {
				e.off = tileStart + int(psot)
			} else {
				e.off = scanTileData(e.buf, e.off)
			}
			return true
		}
		if tilePartMarkers[marker] {
			if !e.parseMarkerSegment(marker, csiz, tests, props) {
				return false
			}
			continue
		}

		if _, known := markerNames[marker]; known {
			tests.AddBool("markerOrderIsValid", false)
		} else {
			tests.AddBool("markerIsKnown", false)
		}
		if segmentless(marker) {
			continue
		}
		if _, _, ok := e.segmentParams(); !ok {
			return false
		}
	}
	tests.AddBool("foundSODMarker", false)
	return false
}

// scanTileData advances past opaque packet data to the next SOT or EOC
// marker, or to the end of the slice when neither occurs.
func scanTileData(b []byte, off int) int {
	for i := off; i+1 < len(b); i++ {
		if b[i] == 0xFF && (b[i+1] == 0x90 || b[i+1] == 0xD9) {
			return i
		}
	}
	return len(b)
}
