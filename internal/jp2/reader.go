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
	"encoding/binary"
	"errors"
)

// errTruncated is returned by the field readers whenever the requested
// span extends past the end of the input slice.
var errTruncated = errors.New("unexpected end of data")

// The readers below are stateless primitives over (slice, offset). Each
// returns the decoded value together with the offset immediately past it,
// so parsers can cursor over a payload without mutating it. All multi-byte
// integers in a JP2 file are big-endian.

func readUint8(b []byte, off int) (uint8, int, error) {
	if off < 0 || off+1 > len(b) {
		return 0, off, errTruncated
	}
	return b[off], off + 1, nil
}

func readUint16(b []byte, off int) (uint16, int, error) {
	if off < 0 || off+2 > len(b) {
		return 0, off, errTruncated
	}
	return binary.BigEndian.Uint16(b[off : off+2]), off + 2, nil
}

func readUint32(b []byte, off int) (uint32, int, error) {
	if off < 0 || off+4 > len(b) {
		return 0, off, errTruncated
	}
	return binary.BigEndian.Uint32(b[off : off+4]), off + 4, nil
}

func readUint64(b []byte, off int) (uint64, int, error) {
	if off < 0 || off+8 > len(b) {
		return 0, off, errTruncated
	}
	return binary.BigEndian.Uint64(b[off : off+8]), off + 8, nil
}

func readInt8(b []byte, off int) (int8, int, error) {
	v, next, err := readUint8(b, off)
	return int8(v), next, err
}

func readInt16(b []byte, off int) (int16, int, error) {
	v, next, err := readUint16(b, off)
	return int16(v), next, err
}

func readInt32(b []byte, off int) (int32, int, error) {
	v, next, err := readUint32(b, off)
	return int32(v), next, err
}

// readBytes returns a sub-slice of b; the caller must not mutate it.
func readBytes(b []byte, off, n int) ([]byte, int, error) {
	if n < 0 || off < 0 || off+n > len(b) {
		return nil, off, errTruncated
	}
	return b[off : off+n], off + n, nil
}

func readASCII(b []byte, off, n int) (string, int, error) {
	raw, next, err := readBytes(b, off, n)
	if err != nil {
		return "", off, err
	}
	return string(raw), next, nil
}

// peekUint16 reads a big-endian uint16 without advancing; ok is false when
// fewer than two bytes remain.
func peekUint16(b []byte, off int) (uint16, bool) {
	v, _, err := readUint16(b, off)
	return v, err == nil
}

func remaining(b []byte, off int) int {
	if off >= len(b) {
		return 0
	}
	return len(b) - off
}
