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

// Package report serializes validation results to XML.
package report

import (
	"os"
	"os/user"
	"runtime"
	"strconv"
	"time"

	"github.com/opf-attic/jpylyzer/internal/jp2"
	"github.com/opf-attic/jpylyzer/pkg/sysinfo"
)

// Namespace strings for the report schema.
const (
	NsString        = "http://openpreservation.org/ns/jpylyzer/"
	XsiNsString     = "http://www.w3.org/2001/XMLSchema-instance"
	LocSchemaString = "http://openpreservation.org/ns/jpylyzer/ http://jpylyzer.openpreservation.org/jpylyzer-v-1-1.xsd"
)

// ToolInfo identifies the generating tool.
type ToolInfo struct {
	Name    string `xml:"toolName"`
	Version string `xml:"toolVersion"`
}

// FileInfo describes the analysed file.
type FileInfo struct {
	Name         string `xml:"fileName"`
	Path         string `xml:"filePath"`
	SizeInBytes  uint64 `xml:"fileSizeInBytes"`
	LastModified string `xml:"fileLastModified"`
}

// StatusInfo reports whether the analysis itself completed.
type StatusInfo struct {
	Success        bool   `xml:"success"`
	FailureMessage string `xml:"failureMessage,omitempty"`
}

// ExecEnv provides information about the host the report was produced
// on; it is included in the wrapper header of multi-file runs.
type ExecEnv struct {
	OS      string `xml:"os_sysname"`
	Release string `xml:"os_release"`
	Version string `xml:"os_version"`
	Host    string `xml:"host"`
	Arch    string `xml:"arch"`
	UID     int    `xml:"uid"`
	Start   string `xml:"start_time"`
}

// Report is the complete per-file analysis result handed to a Writer.
type Report struct {
	Tool       ToolInfo
	File       FileInfo
	Status     StatusInfo
	Valid      bool
	Tests      *jp2.Node
	Properties *jp2.Node
	Mix        *MixImage
}

// GetExecEnv retrieves runtime information for the wrapper header.
func GetExecEnv() ExecEnv {
	sinfo, err := sysinfo.Stat()
	if err != nil {
		sinfo = &sysinfo.SysUnknown
	}

	host, err := os.Hostname()
	if err != nil {
		host = "unknown_host"
	}

	uid := 0
	if currentUser, err := user.Current(); err == nil {
		if uidInt, parseErr := strconv.Atoi(currentUser.Uid); parseErr == nil {
			uid = uidInt
		}
	}

	return ExecEnv{
		OS:      sinfo.Name,
		Release: sinfo.Release,
		Version: sinfo.Version,
		Host:    host,
		Arch:    runtime.GOARCH,
		UID:     uid,
		Start:   time.Now().UTC().Format("2006-01-02T15:04:05Z"),
	}
}
