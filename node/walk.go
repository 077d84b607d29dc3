// Copyright (c) 2026, Worldkit Developers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package node

const (
	// Continue = true can be returned from walking functions to
	// continue processing down the graph, as compared to
	// Break = false which stops this branch.
	Continue = true

	// Break = false can be returned from walking functions to stop
	// processing this branch of the graph.
	Break = false
)

// WalkDown calls the given function on the node and all nodes
// contained in its field and parameter values, depth-first in
// declaration order, fields before parameters. It stops walking the
// current branch if the function returns [Break] and keeps walking if
// it returns [Continue]. Containment is walked through the fields'
// own stored values, not through aliases, so each node is visited
// exactly once.
func (n *Node) WalkDown(fun func(n *Node) bool) {
	if n == nil || n.destroyed {
		return
	}
	if !fun(n) {
		return
	}
	for _, f := range n.fields {
		for _, cn := range nodesOf(f.OwnValue()) {
			cn.WalkDown(fun)
		}
	}
	for _, p := range n.parameters {
		for _, cn := range nodesOf(p.OwnValue()) {
			cn.WalkDown(fun)
		}
	}
}

// WalkUp calls the given function on the node and all of its parents,
// up to the root. It stops walking if the function returns [Break].
// It returns whether walking was finished (false if aborted).
func (n *Node) WalkUp(fun func(n *Node) bool) bool {
	cur := n
	for cur != nil {
		if !fun(cur) {
			return false
		}
		parent := cur.parent
		if parent == cur { // prevent loops
			return true
		}
		cur = parent
	}
	return true
}

// SubNodes returns all nodes contained below this node (not including
// the node itself) in depth-first declaration order, as a stable
// snapshot slice: later graph mutation does not affect it. If recurse
// is false, only directly contained nodes are returned.
func (n *Node) SubNodes(recurse bool) []*Node {
	var subs []*Node
	if !recurse {
		for _, f := range n.fields {
			subs = append(subs, nodesOf(f.OwnValue())...)
		}
		for _, p := range n.parameters {
			subs = append(subs, nodesOf(p.OwnValue())...)
		}
		return subs
	}
	n.WalkDown(func(cn *Node) bool {
		if cn != n {
			subs = append(subs, cn)
		}
		return Continue
	})
	return subs
}

// FindID returns the node with the given id at or below this node,
// nil if not found.
func (n *Node) FindID(id int) *Node {
	var found *Node
	n.WalkDown(func(cn *Node) bool {
		if cn.id == id {
			found = cn
			return Break
		}
		return Continue
	})
	return found
}
