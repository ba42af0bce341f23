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
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTreePreservesInsertionOrder(t *testing.T) {
	root := NewNode("root")
	root.Add("b", uint32(2))
	root.Add("a", uint32(1))
	sub := NewNode("sub")
	sub.Add("c", uint32(3))
	root.Append(sub)
	root.Add("a", uint32(4))

	names := make([]string, len(root.Children))
	for i, c := range root.Children {
		names[i] = c.Name
	}
	require.Equal(t, []string{"b", "a", "sub", "a"}, names)
}

func TestTreeFind(t *testing.T) {
	root := NewNode("root")
	sub := NewNode("sub")
	sub.Add("leaf", uint32(7))
	sub.Add("leaf", uint32(8))
	root.Append(sub)

	require.Equal(t, uint32(7), root.Find("sub/leaf").Value)
	require.Nil(t, root.Find("sub/missing"))
	require.Nil(t, root.Find("missing/leaf"))

	all := root.FindAll("sub/leaf")
	require.Len(t, all, 2)
	require.Equal(t, uint32(8), all[1].Value)

	require.Len(t, root.FindAll("sub"), 1)
	require.Empty(t, root.FindAll("missing/leaf"))
}

func TestTreeAllTrue(t *testing.T) {
	root := NewNode("tests")
	root.AddBool("a", true)
	sub := NewNode("sub")
	sub.AddBool("b", true)
	root.Append(sub)
	require.True(t, root.AllTrue())

	sub.AddBool("c", false)
	require.False(t, root.AllTrue())
	require.Equal(t, []string{"tests/sub/c"}, root.FailedTests())
}

func TestTreeEmptySubtreeIsVacuouslyPassing(t *testing.T) {
	require.True(t, NewNode("tests").AllTrue())
}
