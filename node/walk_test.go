// Copyright (c) 2026, Worldkit Developers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package node

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// buildTree returns root -> {a -> {aa}, b} with b held in an MFNode
// list together with a parameter-held node p.
func buildTree() (root, a, aa, b, p *Node) {
	root = New("Root", "root")
	a = New("Group", "a")
	aa = New("Solid", "aa")
	b = New("Solid", "b")
	p = New("Hub", "p")
	a.AddField("children", &NodeList{Nodes: []*Node{aa}})
	root.AddField("first", &NodeValue{Node: a})
	root.AddField("rest", &NodeList{Nodes: []*Node{b}})
	root.AddParameter("hub", &NodeValue{Node: p})
	return
}

func TestWalkDownOrder(t *testing.T) {
	root, a, aa, b, p := buildTree()
	var names []string
	root.WalkDown(func(n *Node) bool {
		names = append(names, n.Name)
		return Continue
	})
	assert.Equal(t, []string{"root", "a", "aa", "b", "p"}, names)
	_ = a
	_ = aa
	_ = b
	_ = p
}

func TestWalkDownBreak(t *testing.T) {
	root, a, _, _, _ := buildTree()
	var names []string
	root.WalkDown(func(n *Node) bool {
		names = append(names, n.Name)
		return n != a // stop below a
	})
	assert.Equal(t, []string{"root", "a", "b", "p"}, names)
}

func TestSubNodes(t *testing.T) {
	root, a, aa, b, p := buildTree()
	assert.Equal(t, []*Node{a, aa, b, p}, root.SubNodes(true))
	assert.Equal(t, []*Node{a, b, p}, root.SubNodes(false))

	// snapshot is stable across graph mutation
	snap := root.SubNodes(true)
	aa.Destroy()
	assert.Len(t, snap, 4)
}

func TestWalkUp(t *testing.T) {
	root, _, aa, _, _ := buildTree()
	var names []string
	finished := aa.WalkUp(func(n *Node) bool {
		names = append(names, n.Name)
		return Continue
	})
	assert.True(t, finished)
	assert.Equal(t, []string{"aa", "a", "root"}, names)
	_ = root
}

func TestFindID(t *testing.T) {
	root, _, aa, _, _ := buildTree()
	assert.Equal(t, aa, root.FindID(aa.ID()))
	assert.Nil(t, root.FindID(-1))
}
