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

	"github.com/spf13/cobra"

	"github.com/opf-attic/jpylyzer/internal/check"
	"github.com/opf-attic/jpylyzer/internal/logger"
	"github.com/opf-attic/jpylyzer/pkg/report"
)

func DefineCheckCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "check <file|dir>...",
		Short:        "Validate JP2 image files and report their properties",
		Args:         cobra.MinimumNArgs(1),
		SilenceUsage: true,
		RunE:         RunCheck,
	}

	cmd.Flags().Bool("verbose", false, "report test results in verbose format")
	cmd.Flags().BoolP("recurse", "r", false, "when analysing a directory, recurse into subdirectories (implies --wrapper)")
	cmd.Flags().BoolP("wrapper", "w", false, "wrap output for individual image(s) in a 'results' XML element")
	cmd.Flags().Bool("nullxml", false, "extract null-terminated XML content from XML and UUID boxes (doesn't affect validation)")
	cmd.Flags().Bool("nopretty", false, "suppress pretty-printing of XML output")
	cmd.Flags().Int("mix", 0, "add a MIX output in version 1.0 or 2.0")
	cmd.Flags().String("log-level", "WARN", "log level (DEBUG, INFO, WARN, ERROR)")
	cmd.Flags().String("log-file", "", "write log output to the specified rotated file instead of stderr")

	return cmd
}

func RunCheck(cmd *cobra.Command, args []string) error {
	opts, err := parseCheckOptions(cmd)
	if err != nil {
		return err
	}
	return check.Run(args, opts, os.Stdout)
}

func parseCheckOptions(cmd *cobra.Command) (check.Options, error) {
	verbose, _ := cmd.Flags().GetBool("verbose")
	recurse, _ := cmd.Flags().GetBool("recurse")
	wrapper, _ := cmd.Flags().GetBool("wrapper")
	nullXML, _ := cmd.Flags().GetBool("nullxml")
	noPretty, _ := cmd.Flags().GetBool("nopretty")
	mix, _ := cmd.Flags().GetInt("mix")
	logLevel, _ := cmd.Flags().GetString("log-level")
	logFile, _ := cmd.Flags().GetString("log-file")

	switch mix {
	case report.MixNone, report.MixV10, report.MixV20:
	default:
		return check.Options{}, fmt.Errorf("invalid --mix value %d: must be 0, 1 or 2", mix)
	}

	return check.Options{
		Verbose:    verbose,
		Recurse:    recurse,
		Wrap:       wrapper,
		NullXML:    nullXML,
		RawXML:     noPretty,
		MixVersion: mix,
		LogFile:    logFile,
		LogLevel:   logger.ParseLevel(logLevel),
	}, nil
}
