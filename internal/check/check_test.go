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
package check

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, data, 0644))
	return path
}

func TestRunReportsInvalidFile(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "broken.jp2", []byte("not a jp2 file"))

	var out bytes.Buffer
	err := Run([]string{path}, Options{}, &out)
	require.NoError(t, err)

	s := out.String()
	require.Contains(t, s, "<isValidJP2>false</isValidJP2>")
	require.Contains(t, s, "<fileName>broken.jp2</fileName>")
	require.Contains(t, s, "<success>true</success>")
}

func TestRunEmptyFile(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "empty.jp2", nil)

	var out bytes.Buffer
	require.NoError(t, Run([]string{path}, Options{Verbose: true}, &out))

	s := out.String()
	require.Contains(t, s, "<isValidJP2>false</isValidJP2>")
	require.Contains(t, s, "<fileIsNotEmpty>false</fileIsNotEmpty>")
}

func TestRunNoInputFiles(t *testing.T) {
	var out bytes.Buffer
	err := Run([]string{t.TempDir()}, Options{}, &out)
	require.ErrorContains(t, err, "no images to check")
}

func TestRunMissingPath(t *testing.T) {
	var out bytes.Buffer
	err := Run([]string{filepath.Join(t.TempDir(), "nope.jp2")}, Options{}, &out)
	require.Error(t, err)
}

func TestRunRecurseWrapsResults(t *testing.T) {
	dir := t.TempDir()
	sub := filepath.Join(dir, "sub")
	require.NoError(t, os.MkdirAll(sub, 0755))
	writeFile(t, dir, "a.jp2", []byte{1})
	writeFile(t, sub, "b.jp2", []byte{2})

	var out bytes.Buffer
	require.NoError(t, Run([]string{dir}, Options{Recurse: true}, &out))

	s := out.String()
	require.Contains(t, s, "<results")
	require.Contains(t, s, "</results>")
	require.Equal(t, 2, strings.Count(s, "<jpylyzer>"))
}

func TestRunWritesLogFile(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "broken.jp2", []byte{0xFF})
	logFile := filepath.Join(dir, "check.log")

	var out bytes.Buffer
	require.NoError(t, Run([]string{path}, Options{LogFile: logFile}, &out))

	logged, err := os.ReadFile(logFile)
	require.NoError(t, err)
	require.Contains(t, string(logged), "not a valid JP2")
}
