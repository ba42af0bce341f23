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
package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/opf-attic/jpylyzer/internal/jp2"
)

func DefineBoxesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "boxes",
		Short: "List the supported JP2 box types and codestream markers",
		Long: `The 'boxes' command displays a table of every JP2 box type and JPEG 2000
codestream marker the validator knows. Boxes outside this table are reported
as unknown but do not affect validity.`,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE:         RunBoxes,
	}
}

func RunBoxes(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)

	fmt.Fprintln(w, "TAG\tELEMENT")
	for _, entry := range jp2.BoxTags() {
		fmt.Fprintf(w, "%q\t%s\n", entry[0], entry[1])
	}

	fmt.Fprintln(w, "\nMARKER\tELEMENT")
	for _, m := range jp2.MarkerCodes() {
		fmt.Fprintf(w, "0x%04X\t%s\n", m.Code, m.Name)
	}
	return w.Flush()
}
