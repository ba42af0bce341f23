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

import "strings"

// Node is a single element of a test or property tree. Interior nodes carry
// only a name and an ordered child list; leaves additionally carry a value.
// Test leaves hold bool values, property leaves hold unsigned/signed
// integers, floats, strings or byte strings. Sibling order is insertion
// order and is preserved all the way to serialization.
type Node struct {
	Name     string
	Value    any
	Children []*Node
}

// NewNode creates an empty interior node.
func NewNode(name string) *Node {
	return &Node{Name: name}
}

// Append adds child as the last child of n.
func (n *Node) Append(child *Node) {
	n.Children = append(n.Children, child)
}

// Add appends a leaf carrying value and returns it.
func (n *Node) Add(name string, value any) *Node {
	leaf := &Node{Name: name, Value: value}
	n.Children = append(n.Children, leaf)
	return leaf
}

// AddBool appends a boolean test leaf.
func (n *Node) AddBool(name string, v bool) {
	n.Add(name, v)
}

// IsLeaf reports whether n carries a value rather than children.
func (n *Node) IsLeaf() bool {
	return n.Value != nil
}

// Bool returns the leaf value as a bool, or false for non-bool nodes.
func (n *Node) Bool() bool {
	v, ok := n.Value.(bool)
	return ok && v
}

// AllTrue reports whether every boolean leaf reachable from n is true.
// A subtree with no boolean leaves is vacuously passing.
func (n *Node) AllTrue() bool {
	if v, ok := n.Value.(bool); ok {
		return v
	}
	for _, c := range n.Children {
		if !c.AllTrue() {
			return false
		}
	}
	return true
}

// Find returns the first node matching the slash-separated path below n,
// or nil. Path segments name children; "a/b" finds the first child "a"
// and, below it, the first child "b".
func (n *Node) Find(path string) *Node {
	cur := n
	for _, seg := range strings.Split(path, "/") {
		var next *Node
		for _, c := range cur.Children {
			if c.Name == seg {
				next = c
				break
			}
		}
		if next == nil {
			return nil
		}
		cur = next
	}
	return cur
}

// FindAll returns every direct child of the node at the parent path whose
// name matches the final path segment, in insertion order.
func (n *Node) FindAll(path string) []*Node {
	i := strings.LastIndex(path, "/")
	parent, name := n, path
	if i >= 0 {
		parent = n.Find(path[:i])
		name = path[i+1:]
	}
	if parent == nil {
		return nil
	}
	var out []*Node
	for _, c := range parent.Children {
		if c.Name == name {
			out = append(out, c)
		}
	}
	return out
}

// failedLeaves appends to dst every false boolean leaf below n, prefixing
// names with the path from the root.
func (n *Node) failedLeaves(prefix string, dst []string) []string {
	name := n.Name
	if prefix != "" {
		name = prefix + "/" + n.Name
	}
	if v, ok := n.Value.(bool); ok {
		if !v {
			dst = append(dst, name)
		}
		return dst
	}
	for _, c := range n.Children {
		dst = c.failedLeaves(name, dst)
	}
	return dst
}

// FailedTests returns the paths of all failing test leaves below n.
func (n *Node) FailedTests() []string {
	return n.failedLeaves("", nil)
}
