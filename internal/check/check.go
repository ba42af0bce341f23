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

// Package check drives the validation of one or more candidate files
// and streams the per-file reports as XML.
package check

import (
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/opf-attic/jpylyzer/internal/env"
	"github.com/opf-attic/jpylyzer/internal/jp2"
	"github.com/opf-attic/jpylyzer/internal/logger"
	"github.com/opf-attic/jpylyzer/internal/mmap"
	"github.com/opf-attic/jpylyzer/pkg/report"
)

// Options configures one validation run.
type Options struct {
	// Verbose reports every test outcome, not only failures.
	Verbose bool
	// Recurse descends into subdirectories; implies Wrap.
	Recurse bool
	// Wrap encloses all reports in a single results element.
	Wrap bool
	// NullXML trims trailing NUL bytes from XML and UUID payloads.
	NullXML bool
	// RawXML suppresses pretty-printing.
	RawXML bool
	// MixVersion adds a MIX projection (1 or 2) for valid images.
	MixVersion int
	// LogFile redirects warnings to a size-rotated file instead of
	// stderr; empty means stderr.
	LogFile  string
	LogLevel logger.Level
}

// Run validates every file reachable from paths and writes the XML
// report stream to out. Returns an error when no input file exists.
func Run(paths []string, opts Options, out io.Writer) error {
	files, err := collectFiles(paths, opts.Recurse)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return fmt.Errorf("no images to check")
	}

	log, closeLog := setupLogger(opts)
	defer closeLog()

	wrap := opts.Wrap || opts.Recurse
	w := report.NewWriter(out, report.Options{
		Verbose: opts.Verbose,
		Raw:     opts.RawXML,
		Wrap:    wrap,
	})
	if err := w.WriteHeader(report.GetExecEnv()); err != nil {
		return err
	}

	enums := jp2.DefaultEnumerations()
	for _, path := range files {
		rep := checkOne(path, opts, enums, log)
		if err := w.WriteReport(rep); err != nil {
			return err
		}
	}
	return w.Close()
}

// checkOne validates a single file; analysis failures are reported in
// the statusInfo element, never as an error.
func checkOne(path string, opts Options, enums jp2.Enumerations, log *logger.Logger) report.Report {
	rep := report.Report{
		Tool: report.ToolInfo{Name: env.AppName, Version: env.Version},
		File: report.FileInfo{
			Name: filepath.Base(path),
			Path: absPath(path),
		},
		Status: report.StatusInfo{Success: true},
	}
	if fi, err := os.Stat(path); err == nil {
		rep.File.SizeInBytes = uint64(fi.Size())
		rep.File.LastModified = fi.ModTime().Format(time.RFC3339)
	}

	f, err := mmap.Open(path)
	if err != nil {
		log.WithPrefix(path).Errorf("cannot open file: %v", err)
		rep.Status = report.StatusInfo{
			Success:        false,
			FailureMessage: "I/O error (cannot open file)",
		}
		return rep
	}
	defer f.Close()

	res := jp2.Validate(f.Data, jp2.Options{
		ExtractNullTerminatedXML: opts.NullXML,
	})

	rep.Valid = res.Valid
	rep.Tests = res.Tests
	rep.Properties = jp2.Remap(res.Properties, enums)
	if res.Valid && opts.MixVersion != report.MixNone {
		rep.Mix = report.NewMix(rep.Properties, opts.MixVersion)
	}

	if !res.Valid {
		failed := res.Tests.FailedTests()
		log.WithPrefix(path).Warnf("not a valid JP2: %d failed tests, first failure %s",
			len(failed), failed[0])
	} else {
		log.WithPrefix(path).Debug("valid JP2")
	}
	return rep
}

// collectFiles expands the input paths: plain files are taken as-is,
// directories contribute their immediate files, or their whole tree
// when recursing.
func collectFiles(paths []string, recurse bool) ([]string, error) {
	var files []string
	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			files = append(files, p)
			continue
		}
		if !recurse {
			entries, err := os.ReadDir(p)
			if err != nil {
				return nil, err
			}
			for _, e := range entries {
				if !e.IsDir() {
					files = append(files, filepath.Join(p, e.Name()))
				}
			}
			continue
		}
		err = filepath.WalkDir(p, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if !d.IsDir() {
				files = append(files, path)
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	}
	return files, nil
}

// setupLogger builds the run logger; with a log file configured, output
// goes through a size-rotated writer.
func setupLogger(opts Options) (*logger.Logger, func()) {
	if opts.LogFile == "" {
		return logger.New(os.Stderr, opts.LogLevel), func() {}
	}
	lj := &lumberjack.Logger{
		Filename:   opts.LogFile,
		MaxSize:    10, // megabytes
		MaxBackups: 3,
	}
	return logger.New(lj, opts.LogLevel), func() { _ = lj.Close() }
}

func absPath(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		return path
	}
	return abs
}
