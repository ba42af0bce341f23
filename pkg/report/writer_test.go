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
	"bytes"
	"encoding/xml"
	"strings"
	"testing"

	"github.com/opf-attic/jpylyzer/internal/jp2"
	"github.com/stretchr/testify/require"
)

func sampleReport(valid bool) Report {
	tests := jp2.NewNode("tests")
	tests.AddBool("fileIsNotEmpty", true)
	sub := jp2.NewNode("signatureBox")
	sub.AddBool("signatureIsValid", valid)
	tests.Append(sub)

	props := jp2.NewNode("properties")
	box := jp2.NewNode("fileTypeBox")
	box.Add("br", "jp2 ")
	props.Append(box)

	return Report{
		Tool:       ToolInfo{Name: "jpylyzer", Version: "1.0"},
		File:       FileInfo{Name: "a.jp2", Path: "/tmp/a.jp2", SizeInBytes: 166},
		Status:     StatusInfo{Success: true},
		Valid:      valid,
		Tests:      tests,
		Properties: props,
	}
}

func render(t *testing.T, rep Report, opts Options) string {
	t.Helper()
	var buf bytes.Buffer
	w := NewWriter(&buf, opts)
	require.NoError(t, w.WriteHeader(ExecEnv{}))
	require.NoError(t, w.WriteReport(rep))
	require.NoError(t, w.Close())
	return buf.String()
}

func TestWriterNonVerboseKeepsOnlyFailures(t *testing.T) {
	out := render(t, sampleReport(true), Options{})

	require.Contains(t, out, "<isValidJP2>true</isValidJP2>")
	require.Contains(t, out, "<tests></tests>")
	require.NotContains(t, out, "fileIsNotEmpty")

	out = render(t, sampleReport(false), Options{})
	require.Contains(t, out, "<signatureIsValid>false</signatureIsValid>")
	require.NotContains(t, out, "fileIsNotEmpty")
}

func TestWriterVerboseKeepsAllTests(t *testing.T) {
	out := render(t, sampleReport(true), Options{Verbose: true})

	require.Contains(t, out, "<fileIsNotEmpty>true</fileIsNotEmpty>")
	require.Contains(t, out, "<signatureIsValid>true</signatureIsValid>")
}

func TestWriterWrapMode(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf, Options{Wrap: true})
	require.NoError(t, w.WriteHeader(GetExecEnv()))
	require.NoError(t, w.WriteReport(sampleReport(true)))
	require.NoError(t, w.WriteReport(sampleReport(false)))
	require.NoError(t, w.Close())

	out := buf.String()
	require.Contains(t, out, "<results")
	require.Contains(t, out, "</results>")
	require.Equal(t, 2, strings.Count(out, "<jpylyzer>"))
}

func TestWriterOutputIsWellformed(t *testing.T) {
	out := render(t, sampleReport(false), Options{Verbose: true})

	dec := xml.NewDecoder(strings.NewReader(out))
	for {
		_, err := dec.Token()
		if err != nil {
			require.Equal(t, "EOF", err.Error())
			break
		}
	}
}

func TestWriterPropertiesRoundTrip(t *testing.T) {
	// Serializing the properties tree and parsing it back yields the
	// same element structure in the same order.
	out := render(t, sampleReport(true), Options{Raw: true})

	type ftyp struct {
		Br string `xml:"br"`
	}
	type props struct {
		FileType ftyp `xml:"fileTypeBox"`
	}
	type doc struct {
		Properties props `xml:"properties"`
	}
	var d doc
	require.NoError(t, xml.Unmarshal([]byte(out), &d))
	require.Equal(t, "jp2 ", d.Properties.FileType.Br)
}
