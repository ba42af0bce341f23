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
package report

import (
	"encoding/xml"
	"testing"

	"github.com/opf-attic/jpylyzer/internal/jp2"
	"github.com/stretchr/testify/require"
)

// mixProps builds a remapped properties tree covering the fields the
// MIX projection consumes.
func mixProps() *jp2.Node {
	props := jp2.NewNode("properties")

	ftyp := jp2.NewNode("fileTypeBox")
	ftyp.Add("br", "jp2 ")
	props.Append(ftyp)

	jp2h := jp2.NewNode("jp2HeaderBox")
	ihdr := jp2.NewNode("imageHeaderBox")
	ihdr.Add("height", uint32(512))
	ihdr.Add("width", uint32(1024))
	jp2h.Append(ihdr)
	colr := jp2.NewNode("colourSpecificationBox")
	colr.Add("enumCS", "greyscale")
	jp2h.Append(colr)
	props.Append(jp2h)

	cs := jp2.NewNode("contiguousCodestreamBox")
	siz := jp2.NewNode("siz")
	siz.Add("xTsiz", uint32(1024))
	siz.Add("yTsiz", uint32(512))
	siz.Add("csiz", uint16(1))
	siz.Add("ssizDepth", uint8(8))
	cs.Append(siz)
	cod := jp2.NewNode("cod")
	cod.Add("transformation", "5-3 reversible")
	cod.Add("layers", uint16(3))
	cod.Add("levels", uint8(5))
	cs.Append(cod)
	com := jp2.NewNode("com")
	com.Add("comment", "testcodec-v2.1")
	cs.Append(com)
	props.Append(cs)

	props.Add("compressionRatio", 4.37)
	return props
}

func TestMixV10(t *testing.T) {
	m := NewMix(mixProps(), MixV10)
	require.NotNil(t, m)
	require.Equal(t, "http://www.loc.gov/mix/v10", m.Ns)
	require.Equal(t, "image/jp2", m.BDOI.FormatDesignation.FormatName)
	require.Equal(t, "big_endian", m.BDOI.ByteOrder)
	require.Equal(t, "JPEG 2000 Lossless", m.BDOI.Compression.Scheme)
	require.Equal(t, "4", m.BDOI.Compression.Ratio)
	require.Equal(t, "1024", m.BII.Characteristics.Width)
	require.Equal(t, "greyscale", m.BII.Characteristics.PhotometricInterpretation.ColorSpace)
	require.Equal(t, "testcodec", m.BII.SpecialFormatCharacteristics.JPEG2000.CodecCompliance.Codec)
	require.Equal(t, "2.1", m.BII.SpecialFormatCharacteristics.JPEG2000.CodecCompliance.CodecVersion)
	require.Equal(t, "1024x512", m.BII.SpecialFormatCharacteristics.JPEG2000.EncodingOptions.Tiles)
	require.Equal(t, "3", m.BII.SpecialFormatCharacteristics.JPEG2000.EncodingOptions.QualityLayers)
	require.Equal(t, "5", m.BII.SpecialFormatCharacteristics.JPEG2000.EncodingOptions.ResolutionLevels)
	require.Equal(t, "8", m.IAM.ColorEncoding.BitsPerSampleV1.Values)
	require.Equal(t, "1", m.IAM.ColorEncoding.SamplesPerPixel)
}

func TestMixV20(t *testing.T) {
	m := NewMix(mixProps(), MixV20)
	require.NotNil(t, m)
	require.Equal(t, "http://www.loc.gov/mix/v20", m.Ns)
	require.Equal(t, "big endian", m.BDOI.ByteOrder)

	ratio, ok := m.BDOI.Compression.Ratio.(*mixRational)
	require.True(t, ok)
	require.Equal(t, "437", ratio.Numerator)
	require.Equal(t, "100", ratio.Denominator)

	tiles := m.BII.SpecialFormatCharacteristics.JPEG2000.EncodingOptions.TilesV2
	require.NotNil(t, tiles)
	require.Equal(t, "1024", tiles.Width)
	require.Equal(t, []string{"8"}, m.IAM.ColorEncoding.BitsPerSampleV2.Values)
}

func TestMixUnknownVersion(t *testing.T) {
	require.Nil(t, NewMix(mixProps(), MixNone))
	require.Nil(t, NewMix(mixProps(), 3))
}

func TestMixMarshalsWithPrefixedNames(t *testing.T) {
	out, err := xml.MarshalIndent(NewMix(mixProps(), MixV20), "", "  ")
	require.NoError(t, err)
	require.Contains(t, string(out), "<mix:mix")
	require.Contains(t, string(out), "<mix:imageWidth>1024</mix:imageWidth>")
	require.Contains(t, string(out), "<mix:compressionRatio>")
}

func TestMixFromValidatedFixture(t *testing.T) {
	res := jp2.Validate(minimalFixture(), jp2.Options{})
	require.True(t, res.Valid)

	remapped := jp2.Remap(res.Properties, jp2.DefaultEnumerations())
	m := NewMix(remapped, MixV10)
	require.Equal(t, "JPEG 2000 Lossless", m.BDOI.Compression.Scheme)
	require.Equal(t, "1", m.BII.Characteristics.Width)
	require.Equal(t, "greyscale", m.BII.Characteristics.PhotometricInterpretation.ColorSpace)
}
