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
	"regexp"
	"strconv"
	"strings"

	"github.com/opf-attic/jpylyzer/internal/jp2"
)

// MIX schema versions supported for the alternative output.
const (
	MixNone = 0
	MixV10  = 1
	MixV20  = 2
)

// MixImage is a NISO MIX projection of the properties tree, offered in
// schema versions 1.0 and 2.0.
type MixImage struct {
	XMLName xml.Name `xml:"mix:mix"`
	Ns      string   `xml:"xmlns:mix,attr"`

	BDOI *mixBDOI `xml:"mix:BasicDigitalObjectInformation"`
	BII  *mixBII  `xml:"mix:BasicImageInformation"`
	IAM  *mixIAM  `xml:"mix:ImageAssessmentMetadata"`
}

type mixBDOI struct {
	FormatDesignation struct {
		FormatName string `xml:"mix:formatName"`
	} `xml:"mix:FormatDesignation"`
	ByteOrder   string          `xml:"mix:byteOrder"`
	Compression *mixCompression `xml:"mix:Compression"`
}

type mixCompression struct {
	Scheme string `xml:"mix:compressionScheme"`
	// Ratio is a plain integer in MIX 1.0 and a rational in 2.0.
	Ratio any `xml:"mix:compressionRatio,omitempty"`
}

type mixRational struct {
	Numerator   string `xml:"mix:numerator"`
	Denominator string `xml:"mix:denominator"`
}

type mixBII struct {
	Characteristics struct {
		Width                     string `xml:"mix:imageWidth"`
		Height                    string `xml:"mix:imageHeight"`
		PhotometricInterpretation *mixPI `xml:"mix:PhotometricInterpretation"`
	} `xml:"mix:BasicImageCharacteristics"`
	SpecialFormatCharacteristics struct {
		JPEG2000 mixJPEG2000 `xml:"mix:JPEG2000"`
	} `xml:"mix:SpecialFormatCharacteristics"`
}

type mixPI struct {
	ColorSpace   string           `xml:"mix:colorSpace"`
	ColorProfile *mixColorProfile `xml:"mix:ColorProfile"`
}

type mixColorProfile struct {
	IccProfile struct {
		Name string `xml:"mix:iccProfileName"`
	} `xml:"mix:IccProfile"`
}

type mixJPEG2000 struct {
	CodecCompliance *mixCodecCompliance `xml:"mix:CodecCompliance"`
	EncodingOptions mixEncodingOptions  `xml:"mix:EncodingOptions"`
}

type mixCodecCompliance struct {
	Codec        string `xml:"mix:codec"`
	CodecVersion string `xml:"mix:codecVersion,omitempty"`
}

type mixEncodingOptions struct {
	Tiles            string    `xml:"mix:tiles,omitempty"`
	TilesV2          *mixTiles `xml:"mix:Tiles,omitempty"`
	QualityLayers    string    `xml:"mix:qualityLayers,omitempty"`
	ResolutionLevels string    `xml:"mix:resolutionLevels,omitempty"`
}

type mixTiles struct {
	Width  string `xml:"mix:tileWidth"`
	Height string `xml:"mix:tileHeight"`
}

type mixIAM struct {
	SpatialMetrics *mixSpatialMetrics `xml:"mix:SpatialMetrics"`
	ColorEncoding  mixColorEncoding   `xml:"mix:ImageColorEncoding"`
}

type mixSpatialMetrics struct {
	Unit string       `xml:"mix:samplingFrequencyUnit"`
	X    *mixRational `xml:"mix:xSamplingFrequency"`
	Y    *mixRational `xml:"mix:ySamplingFrequency"`
}

type mixColorEncoding struct {
	BitsPerSampleV1 *mixBitsPerSampleV1 `xml:"mix:bitsPerSample,omitempty"`
	BitsPerSampleV2 *mixBitsPerSampleV2 `xml:"mix:BitsPerSample,omitempty"`
	SamplesPerPixel string              `xml:"mix:samplesPerPixel"`
}

type mixBitsPerSampleV1 struct {
	Values string `xml:"mix:bitsPerSampleValue"`
	Unit   string `xml:"mix:bitsPerSampleUnit"`
}

type mixBitsPerSampleV2 struct {
	Values []string `xml:"mix:bitsPerSampleValue"`
	Unit   string   `xml:"mix:bitsPerSampleUnit"`
}

var codecVersionRe = regexp.MustCompile(`(.*)-v([0-9.]*)`)

func leafText(n *jp2.Node, path string) (string, bool) {
	leaf := n.Find(path)
	if leaf == nil || !leaf.IsLeaf() {
		return "", false
	}
	return formatValue(leaf.Value), true
}

// NewMix projects a remapped properties tree onto the MIX schema. The
// tree must already carry human-readable labels; version selects MIX
// 1.0 or 2.0. Returns nil for other versions.
func NewMix(props *jp2.Node, version int) *MixImage {
	if version != MixV10 && version != MixV20 {
		return nil
	}

	m := &MixImage{Ns: "http://www.loc.gov/mix/v10"}
	if version == MixV20 {
		m.Ns = "http://www.loc.gov/mix/v20"
	}
	m.BDOI = mixDigitalObject(props, version)
	m.BII = mixImageInfo(props, version)
	m.IAM = mixAssessment(props, version)
	return m
}

func mixDigitalObject(props *jp2.Node, version int) *mixBDOI {
	out := &mixBDOI{}

	out.FormatDesignation.FormatName = "image/jp2"
	if br, ok := leafText(props, "fileTypeBox/br"); ok {
		out.FormatDesignation.FormatName = "image/" + strings.TrimSpace(br)
	}

	if version == MixV10 {
		out.ByteOrder = "big_endian"
	} else {
		out.ByteOrder = "big endian"
	}

	comp := &mixCompression{Scheme: "JPEG 2000 Lossy"}
	if tr, ok := leafText(props, "contiguousCodestreamBox/cod/transformation"); ok && tr == "5-3 reversible" {
		comp.Scheme = "JPEG 2000 Lossless"
	}
	if ratio, ok := leafText(props, "compressionRatio"); ok {
		if f, err := strconv.ParseFloat(ratio, 64); err == nil {
			if version == MixV10 {
				comp.Ratio = strconv.Itoa(int(f + 0.5))
			} else {
				comp.Ratio = &mixRational{
					Numerator:   strconv.Itoa(int(f*100 + 0.5)),
					Denominator: "100",
				}
			}
		}
	}
	out.Compression = comp
	return out
}

func mixImageInfo(props *jp2.Node, version int) *mixBII {
	out := &mixBII{}
	out.Characteristics.Width, _ = leafText(props, "jp2HeaderBox/imageHeaderBox/width")
	out.Characteristics.Height, _ = leafText(props, "jp2HeaderBox/imageHeaderBox/height")

	// Prefer the embedded ICC description, fall back to the enumerated
	// colour space.
	if desc, ok := leafText(props, "jp2HeaderBox/colourSpecificationBox/icc/description"); ok {
		pi := &mixPI{ColorProfile: &mixColorProfile{}}
		if space, ok := leafText(props, "jp2HeaderBox/colourSpecificationBox/icc/colourSpace"); ok {
			pi.ColorSpace = strings.TrimSpace(space)
		}
		pi.ColorProfile.IccProfile.Name = desc
		out.Characteristics.PhotometricInterpretation = pi
	} else if enumCS, ok := leafText(props, "jp2HeaderBox/colourSpecificationBox/enumCS"); ok {
		out.Characteristics.PhotometricInterpretation = &mixPI{ColorSpace: strings.TrimSpace(enumCS)}
	}

	jp2k := &out.SpecialFormatCharacteristics.JPEG2000
	if comment, ok := leafText(props, "contiguousCodestreamBox/com/comment"); ok {
		cc := &mixCodecCompliance{Codec: comment}
		if m := codecVersionRe.FindStringSubmatch(comment); m != nil {
			cc.Codec = m[1]
			cc.CodecVersion = m[2]
		}
		jp2k.CodecCompliance = cc
	}

	tilesX, okX := leafText(props, "contiguousCodestreamBox/siz/xTsiz")
	tilesY, okY := leafText(props, "contiguousCodestreamBox/siz/yTsiz")
	if okX && okY {
		if version == MixV10 {
			jp2k.EncodingOptions.Tiles = tilesX + "x" + tilesY
		} else {
			jp2k.EncodingOptions.TilesV2 = &mixTiles{Width: tilesX, Height: tilesY}
		}
	}
	if layers, ok := leafText(props, "contiguousCodestreamBox/cod/layers"); ok && layers != "0" {
		jp2k.EncodingOptions.QualityLayers = layers
	}
	if levels, ok := leafText(props, "contiguousCodestreamBox/cod/levels"); ok && levels != "0" {
		jp2k.EncodingOptions.ResolutionLevels = levels
	}
	return out
}

func mixAssessment(props *jp2.Node, version int) *mixIAM {
	out := &mixIAM{}

	// Capture resolution wins over display resolution.
	var hRes, vRes string
	var okH, okV bool
	if resc := props.Find("jp2HeaderBox/resolutionBox/captureResolutionBox"); resc != nil {
		hRes, okH = leafText(resc, "hRescInPixelsPerMeter")
		vRes, okV = leafText(resc, "vRescInPixelsPerMeter")
	} else if resd := props.Find("jp2HeaderBox/resolutionBox/displayResolutionBox"); resd != nil {
		hRes, okH = leafText(resd, "hResdInPixelsPerMeter")
		vRes, okV = leafText(resd, "vResdInPixelsPerMeter")
	}
	if okH && okV {
		sm := &mixSpatialMetrics{Unit: "cm"}
		if version == MixV10 {
			sm.Unit = "3"
		}
		if x, err := strconv.ParseFloat(hRes, 64); err == nil {
			sm.X = &mixRational{
				Numerator:   strconv.Itoa(int(x*100 + 0.5)),
				Denominator: "10000",
			}
		}
		if y, err := strconv.ParseFloat(vRes, 64); err == nil {
			sm.Y = &mixRational{
				Numerator:   strconv.Itoa(int(y*100 + 0.5)),
				Denominator: "10000",
			}
		}
		out.SpatialMetrics = sm
	}

	var depths []string
	for _, leaf := range props.FindAll("contiguousCodestreamBox/siz/ssizDepth") {
		depths = append(depths, formatValue(leaf.Value))
	}
	if version == MixV10 {
		out.ColorEncoding.BitsPerSampleV1 = &mixBitsPerSampleV1{
			Values: strings.Join(depths, ","),
			Unit:   "integer",
		}
	} else {
		out.ColorEncoding.BitsPerSampleV2 = &mixBitsPerSampleV2{
			Values: depths,
			Unit:   "integer",
		}
	}
	out.ColorEncoding.SamplesPerPixel, _ = leafText(props, "contiguousCodestreamBox/siz/csiz")
	return out
}
