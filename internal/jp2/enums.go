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

import "strconv"

// Enumerations maps property names to raw-value → label tables. Raw
// values are keyed by their decimal rendering (or the raw string for
// 4-character codes) so a single table covers all integer widths.
type Enumerations map[string]map[string]string

var yesNo = map[string]string{"0": "no", "1": "yes"}

var signLabels = map[string]string{"0": "unsigned", "1": "signed"}

// DefaultEnumerations returns the standard catalogue translating raw
// numeric property values to their human-readable descriptions.
func DefaultEnumerations() Enumerations {
	return Enumerations{
		"unkC":                             yesNo,
		"iPR":                              yesNo,
		"embeddedProfile":                  yesNo,
		"profileCannotBeUsedIndependently": yesNo,
		"precincts":                        yesNo,
		"sop":                              yesNo,
		"eph":                              yesNo,
		"multipleComponentTransformation":  yesNo,
		"codingBypass":                     yesNo,
		"resetOnBoundaries":                yesNo,
		"termOnEachPass":                   yesNo,
		"vertCausalContext":                yesNo,
		"predTermination":                  yesNo,
		"segmentationSymbols":              yesNo,

		"bSign":    signLabels,
		"bPCSign":  signLabels,
		"ssizSign": signLabels,

		"c": {"7": "jpeg2000"},

		"meth": {
			"1": "Enumerated",
			"2": "Restricted ICC",
			"3": "Any ICC",
			"4": "Vendor Colour",
		},
		"enumCS": {
			"16": "sRGB",
			"17": "greyscale",
			"18": "sYCC",
		},
		"profileClass": {
			"scnr": "Input Device Profile",
			"mntr": "Display Device Profile",
			"prtr": "Output Device Profile",
			"link": "DeviceLink Profile",
			"spac": "ColorSpace Conversion Profile",
			"abst": "Abstract Profile",
			"nmcl": "Named Colour Profile",
		},
		"primaryPlatform": {
			"APPL": "Apple Computer, Inc.",
			"MSFT": "Microsoft Corporation",
			"SGI":  "Silicon Graphics, Inc.",
			"SUNW": "Sun Microsystems, Inc.",
		},
		"transparency": {"0": "Reflective", "1": "Transparent"},
		"glossiness":   {"0": "Glossy", "1": "Matte"},
		"polarity":     {"0": "Positive", "1": "Negative"},
		"colour":       {"0": "Colour", "1": "Black and white"},
		"renderingIntent": {
			"0": "Perceptual",
			"1": "Media-Relative Colorimetric",
			"2": "Saturation",
			"3": "ICC-Absolute Colorimetric",
		},

		"mTyp": {"0": "direct use", "1": "palette mapping"},
		"cTyp": {
			"0":     "colour",
			"1":     "opacity",
			"2":     "premultiplied opacity",
			"65535": "not specified",
		},
		"cAssoc": {"0": "all colours", "65535": "no colours"},

		"rsiz": {
			"0": "ISO/IEC 15444-1",
			"1": "Profile 0",
			"2": "Profile 1",
		},
		"order": {
			"0": "LRCP",
			"1": "RLCP",
			"2": "RPCL",
			"3": "PCRL",
			"4": "CPRL",
		},
		"transformation": {
			"0": "9-7 irreversible",
			"1": "5-3 reversible",
		},
		"qStyle": {
			"0": "no quantization",
			"1": "scalar derived",
			"2": "scalar expounded",
		},
		"rcom": {
			"0": "binary",
			"1": "ISO/IEC 8859-15 (Latin)",
		},
	}
}

// enumKey renders a leaf value in the form used as a table key; ok is
// false for value types that can never appear in a table.
func enumKey(v any) (string, bool) {
	switch x := v.(type) {
	case uint8:
		return strconv.FormatUint(uint64(x), 10), true
	case uint16:
		return strconv.FormatUint(uint64(x), 10), true
	case uint32:
		return strconv.FormatUint(uint64(x), 10), true
	case uint64:
		return strconv.FormatUint(x, 10), true
	case int8:
		return strconv.FormatInt(int64(x), 10), true
	case int16:
		return strconv.FormatInt(int64(x), 10), true
	case int32:
		return strconv.FormatInt(int64(x), 10), true
	case int64:
		return strconv.FormatInt(x, 10), true
	case string:
		return x, true
	}
	return "", false
}

// Remap returns a copy of the properties tree in which every leaf whose
// name appears in the table has its raw value replaced by the mapped
// label. Values without an entry pass through unchanged; the pass never
// fails, and an empty table yields an identical tree.
func Remap(n *Node, table Enumerations) *Node {
	out := &Node{Name: n.Name, Value: n.Value}
	if n.IsLeaf() {
		if m, ok := table[n.Name]; ok {
			if key, ok := enumKey(n.Value); ok {
				if label, ok := m[key]; ok {
					out.Value = label
				}
			}
		}
		return out
	}
	for _, c := range n.Children {
		out.Append(Remap(c, table))
	}
	return out
}
