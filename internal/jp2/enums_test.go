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

func TestRemapWithEmptyTableIsIdentity(t *testing.T) {
	res := Validate(minimalJP2(), Options{})

	out := Remap(res.Properties, Enumerations{})
	require.Equal(t, res.Properties, out)
}

func TestRemapTranslatesKnownValues(t *testing.T) {
	res := Validate(minimalJP2(), Options{})

	out := Remap(res.Properties, DefaultEnumerations())
	require.Equal(t, "greyscale", out.Find("jp2HeaderBox/colourSpecificationBox/enumCS").Value)
	require.Equal(t, "5-3 reversible", out.Find("contiguousCodestreamBox/cod/transformation").Value)
	require.Equal(t, "LRCP", out.Find("contiguousCodestreamBox/cod/order").Value)
	require.Equal(t, "jpeg2000", out.Find("jp2HeaderBox/imageHeaderBox/c").Value)
	require.Equal(t, "unsigned", out.Find("contiguousCodestreamBox/siz/ssizSign").Value)
	require.Equal(t, "no quantization", out.Find("contiguousCodestreamBox/qcd/qStyle").Value)
}

func TestRemapPassesUnknownValuesThrough(t *testing.T) {
	root := NewNode("properties")
	root.Add("order", uint8(200))
	root.Add("width", uint32(512))

	out := Remap(root, DefaultEnumerations())
	require.Equal(t, uint8(200), out.Find("order").Value)
	require.Equal(t, uint32(512), out.Find("width").Value)
}

func TestRemapDoesNotMutateInput(t *testing.T) {
	root := NewNode("properties")
	root.Add("order", uint8(0))

	out := Remap(root, DefaultEnumerations())
	require.Equal(t, "LRCP", out.Find("order").Value)
	require.Equal(t, uint8(0), root.Find("order").Value)
}
