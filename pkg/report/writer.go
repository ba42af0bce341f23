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
	"fmt"
	"io"
	"strconv"

	"github.com/opf-attic/jpylyzer/internal/jp2"
)

// Options controls how reports are rendered.
type Options struct {
	// Verbose reports every test outcome; otherwise only failing test
	// leaves are kept.
	Verbose bool
	// Raw suppresses pretty-printing.
	Raw bool
	// Wrap encloses the per-file reports in a single results element,
	// as used for directory runs.
	Wrap bool
}

// Writer streams one or more per-file reports as XML.
type Writer struct {
	w    io.Writer
	enc  *xml.Encoder
	opts Options
}

// NewWriter creates a report writer. With two-space indentation unless
// raw output is requested.
func NewWriter(w io.Writer, opts Options) *Writer {
	enc := xml.NewEncoder(w)
	if !opts.Raw {
		enc.Indent("", "  ")
	}
	return &Writer{w: w, enc: enc, opts: opts}
}

// WriteHeader emits the XML declaration and, in wrapper mode, opens the
// results element carrying the namespace declarations and the execution
// environment.
func (w *Writer) WriteHeader(env ExecEnv) error {
	if _, err := w.w.Write([]byte(xml.Header)); err != nil {
		return err
	}
	if !w.opts.Wrap {
		return nil
	}

	start := xml.StartElement{
		Name: xml.Name{Local: "results"},
		Attr: []xml.Attr{
			{Name: xml.Name{Local: "xmlns"}, Value: NsString},
			{Name: xml.Name{Local: "xmlns:xsi"}, Value: XsiNsString},
			{Name: xml.Name{Local: "xsi:schemaLocation"}, Value: LocSchemaString},
		},
	}
	if err := w.enc.EncodeToken(start); err != nil {
		return err
	}
	return w.enc.EncodeElement(env, xml.StartElement{
		Name: xml.Name{Local: "executionEnvironment"},
	})
}

// WriteReport emits one per-file report element.
func (w *Writer) WriteReport(rep Report) error {
	start := xml.StartElement{Name: xml.Name{Local: "jpylyzer"}}
	if !w.opts.Wrap {
		// Standalone reports carry the namespace declarations
		// themselves.
		start.Attr = []xml.Attr{
			{Name: xml.Name{Local: "xmlns"}, Value: NsString},
			{Name: xml.Name{Local: "xmlns:xsi"}, Value: XsiNsString},
			{Name: xml.Name{Local: "xsi:schemaLocation"}, Value: LocSchemaString},
		}
	}
	if err := w.enc.EncodeToken(start); err != nil {
		return err
	}

	if err := w.enc.EncodeElement(rep.Tool, xml.StartElement{Name: xml.Name{Local: "toolInfo"}}); err != nil {
		return err
	}
	if err := w.enc.EncodeElement(rep.File, xml.StartElement{Name: xml.Name{Local: "fileInfo"}}); err != nil {
		return err
	}
	if err := w.enc.EncodeElement(rep.Status, xml.StartElement{Name: xml.Name{Local: "statusInfo"}}); err != nil {
		return err
	}
	if err := w.enc.EncodeElement(rep.Valid, xml.StartElement{Name: xml.Name{Local: "isValidJP2"}}); err != nil {
		return err
	}

	tests := rep.Tests
	if tests == nil {
		tests = jp2.NewNode("tests")
	} else if !w.opts.Verbose {
		tests = filterFailures(tests)
	}
	if err := w.encodeNode(tests); err != nil {
		return err
	}

	props := rep.Properties
	if props == nil {
		props = jp2.NewNode("properties")
	}
	if err := w.encodeNode(props); err != nil {
		return err
	}

	if rep.Mix != nil {
		alt := xml.StartElement{Name: xml.Name{Local: "alternativeOutput"}}
		if err := w.enc.EncodeToken(alt); err != nil {
			return err
		}
		if err := w.enc.Encode(rep.Mix); err != nil {
			return err
		}
		if err := w.enc.EncodeToken(alt.End()); err != nil {
			return err
		}
	}

	return w.enc.EncodeToken(start.End())
}

// Close terminates the document, closing the wrapper element when one
// was opened.
func (w *Writer) Close() error {
	if w.opts.Wrap {
		if err := w.enc.EncodeToken(xml.EndElement{Name: xml.Name{Local: "results"}}); err != nil {
			return err
		}
	}
	if err := w.enc.Flush(); err != nil {
		return err
	}
	_, err := w.w.Write([]byte("\n"))
	return err
}

// encodeNode walks a result tree, emitting one element per node with
// leaf values rendered as text content.
func (w *Writer) encodeNode(n *jp2.Node) error {
	start := xml.StartElement{Name: xml.Name{Local: n.Name}}
	if n.IsLeaf() {
		return w.enc.EncodeElement(formatValue(n.Value), start)
	}
	if err := w.enc.EncodeToken(start); err != nil {
		return err
	}
	for _, c := range n.Children {
		if err := w.encodeNode(c); err != nil {
			return err
		}
	}
	return w.enc.EncodeToken(start.End())
}

// formatValue renders a leaf value as element text.
func formatValue(v any) string {
	switch x := v.(type) {
	case bool:
		return strconv.FormatBool(x)
	case string:
		return x
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case []byte:
		return fmt.Sprintf("%x", x)
	default:
		return fmt.Sprintf("%d", x)
	}
}

// filterFailures reduces a tests tree to its failing leaves, dropping
// subtrees in which everything passed.
func filterFailures(n *jp2.Node) *jp2.Node {
	out := &jp2.Node{Name: n.Name, Value: n.Value}
	if n.IsLeaf() {
		return out
	}
	for _, c := range n.Children {
		if c.IsLeaf() {
			if !c.Bool() {
				out.Append(&jp2.Node{Name: c.Name, Value: c.Value})
			}
			continue
		}
		if sub := filterFailures(c); len(sub.Children) > 0 {
			out.Append(sub)
		}
	}
	return out
}
