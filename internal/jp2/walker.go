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

// walkBoxes iterates the boxes contained in the remaining payload of e,
// dispatching each payload to its kind-specific validator and appending the
// per-box subtrees under e. Returns the kinds encountered in order.
//
// Box header layout (ISO/IEC 15444-1 I.4): 4-byte big-endian LBox, 4-byte
// ASCII TBox, optional 8-byte big-endian XLBox when LBox==1. LBox==0 means
// the box extends to the end of the enclosing element and can therefore
// only be the last box.
func (e *element) walkBoxes() []Kind {
	var kinds []Kind

	for e.left() > 0 {
		start := e.off

		lbox, next, err := readUint32(e.buf, start)
		if err != nil {
			// A box header cut off mid-length cannot be attributed to
			// any box type; fail at the enclosing element and stop.
			e.test("lengthIsValid", false)
			break
		}
		tag, next, err := readASCII(e.buf, next, 4)
		if err != nil {
			e.test("lengthIsValid", false)
			break
		}

		headerSize := uint64(8)
		length := uint64(lbox)
		switch lbox {
		case 0:
			// Box runs to the end of the enclosing slice.
			length = uint64(len(e.buf) - start)
		case 1:
			xlbox, n, err := readUint64(e.buf, next)
			if err != nil {
				e.test("lengthIsValid", false)
				e.off = len(e.buf)
				return kinds
			}
			length = xlbox
			headerSize = 16
			next = n
		}

		kind := KindOfBox(tag)
		child := newElement(kind.String(), nil, e.opts)

		if length < headerSize || uint64(start)+length > uint64(len(e.buf)) {
			// Declared length overruns the enclosing slice (or cannot
			// even cover its own header). Record the failure against
			// the box and stop walking; everything parsed so far is kept.
			child.test("lengthIsValid", false)
			e.attach(child)
			kinds = append(kinds, kind)
			e.off = len(e.buf)
			return kinds
		}

		child.buf = e.buf[next : start+int(length)]
		child.test("lengthIsValid", true)

		if kind == KindUnknownBox {
			// Unknown box types are legal in a JP2 file; they are
			// recorded but not recursed into.
			child.prop("boxType", tag)
		} else if fn := boxValidators[kind]; fn != nil {
			fn(child)
		}
		e.attach(child)
		kinds = append(kinds, kind)

		e.off = start + int(length)
	}
	return kinds
}

// boxValidators dispatches a box payload to the grammar for its kind.
// Super boxes reenter walkBoxes on their own payload; the map is filled
// in init to break the resulting initialization cycle.
var boxValidators map[Kind]func(*element)

func init() {
	boxValidators = map[Kind]func(*element){
		KindSignatureBox:            (*element).validateSignature,
		KindFileTypeBox:             (*element).validateFileType,
		KindJP2HeaderBox:            (*element).validateJP2Header,
		KindImageHeaderBox:          (*element).validateImageHeader,
		KindBitsPerComponentBox:     (*element).validateBitsPerComponent,
		KindColourSpecificationBox:  (*element).validateColourSpecification,
		KindPaletteBox:              (*element).validatePalette,
		KindComponentMappingBox:     (*element).validateComponentMapping,
		KindChannelDefinitionBox:    (*element).validateChannelDefinition,
		KindResolutionBox:           (*element).validateResolution,
		KindCaptureResolutionBox:    (*element).validateCaptureResolution,
		KindDisplayResolutionBox:    (*element).validateDisplayResolution,
		KindContiguousCodestreamBox: (*element).validateCodestream,
		KindIntellectualPropertyBox: (*element).validateIPR,
		KindXMLBox:                  (*element).validateXMLBox,
		KindUUIDBox:                 (*element).validateUUIDBox,
		KindUUIDInfoBox:             (*element).validateUUIDInfo,
		KindUUIDListBox:             (*element).validateUUIDList,
		KindURLBox:                  (*element).validateURLBox,
	}
}
