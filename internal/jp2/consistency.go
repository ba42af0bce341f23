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

// asUint converts any of the unsigned leaf value types; ok is false for
// everything else.
func asUint(v any) (uint64, bool) {
	switch x := v.(type) {
	case uint8:
		return uint64(x), true
	case uint16:
		return uint64(x), true
	case uint32:
		return uint64(x), true
	case uint64:
		return x, true
	}
	return 0, false
}

// uintAt returns the unsigned value of the leaf at path below n.
func uintAt(n *Node, path string) (uint64, bool) {
	leaf := n.Find(path)
	if leaf == nil {
		return 0, false
	}
	return asUint(leaf.Value)
}

// uintsAt collects the unsigned values of all leaves named by path.
func uintsAt(n *Node, path string) []uint64 {
	var out []uint64
	for _, leaf := range n.FindAll(path) {
		if v, ok := asUint(leaf.Value); ok {
			out = append(out, v)
		}
	}
	return out
}

// checkConsistency enforces the invariants that span multiple elements,
// appending one boolean leaf per check under a "consistency" subtree.
// Each check passes vacuously when one of its operands is absent: the
// absence itself is already flagged by the structural tests.
func checkConsistency(tests, props *Node) {
	c := NewNode("consistency")
	defer func() {
		if len(c.Children) > 0 {
			tests.Append(c)
		}
	}()

	siz := props.Find("contiguousCodestreamBox/siz")
	ihdr := props.Find("jp2HeaderBox/imageHeaderBox")

	// Image grid dimensions: the Image Header mirrors the SIZ reference
	// grid minus its offsets.
	if siz != nil && ihdr != nil {
		height, okH := uintAt(ihdr, "height")
		width, okW := uintAt(ihdr, "width")
		xsiz, ok1 := uintAt(siz, "xsiz")
		ysiz, ok2 := uintAt(siz, "ysiz")
		xOsiz, ok3 := uintAt(siz, "xOsiz")
		yOsiz, ok4 := uintAt(siz, "yOsiz")
		if okH && okW && ok1 && ok2 && ok3 && ok4 {
			c.AddBool("sizDimensionsMatchImageHeader",
				height == ysiz-yOsiz && width == xsiz-xOsiz)
		}

		if nc, ok := uintAt(ihdr, "nC"); ok {
			if csiz, ok := uintAt(siz, "csiz"); ok {
				c.AddBool("sizComponentCountMatchesImageHeader", nc == csiz)
			}
		}
	}

	// Per-component bit depths: SIZ must agree with the Bits Per
	// Component box when one is present, and with the fixed Image
	// Header value otherwise.
	if siz != nil && ihdr != nil {
		sizDepths := uintsAt(siz, "ssizDepth")
		sizSigns := uintsAt(siz, "ssizSign")

		bpcc := props.Find("jp2HeaderBox/bitsPerComponentBox")
		if bpcc != nil {
			c.AddBool("componentBitDepthsAreConsistent",
				uintSlicesEqual(sizDepths, uintsAt(bpcc, "bPCDepth")) &&
					uintSlicesEqual(sizSigns, uintsAt(bpcc, "bPCSign")))
		} else if depth, ok := uintAt(ihdr, "bPCDepth"); ok {
			sign, _ := uintAt(ihdr, "bPCSign")
			c.AddBool("componentBitDepthsAreConsistent",
				allEqualTo(sizDepths, depth) && allEqualTo(sizSigns, sign))
		}

		// A variable-depth Image Header (bPC 255) defers the actual
		// depths to a Bits Per Component box.
		if _, varies := uintAt(ihdr, "bPC"); varies {
			c.AddBool("bitsPerComponentBoxPresent", bpcc != nil)
		}
	}

	// Every Enumerated colour specification must name one of the three
	// colour spaces JP2 defines.
	for _, colr := range props.FindAll("jp2HeaderBox/colourSpecificationBox") {
		meth, ok := uintAt(colr, "meth")
		if !ok || meth != methEnumerated {
			continue
		}
		enumCS, ok := uintAt(colr, "enumCS")
		c.AddBool("enumeratedColourSpaceIsValid",
			!ok || enumCS == 16 || enumCS == 17 || enumCS == 18)
	}

	// The brand must also appear in its own compatibility list.
	if ftyp := props.Find("fileTypeBox"); ftyp != nil {
		if br := ftyp.Find("br"); br != nil {
			found := false
			for _, cl := range ftyp.FindAll("cL") {
				if cl.Value == br.Value {
					found = true
					break
				}
			}
			c.AddBool("brandIsInCompatibilityList", found)
		}
	}
}

func uintSlicesEqual(a, b []uint64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func allEqualTo(vals []uint64, want uint64) bool {
	for _, v := range vals {
		if v != want {
			return false
		}
	}
	return len(vals) > 0
}
