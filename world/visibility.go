// Copyright (c) 2026, Worldkit Developers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package world

import (
	"worldkit.dev/core/node"
)

// Visibility answers whether a node or field is reachable and
// customizable from outside its defining template. It is consumed as
// a capability by the collapse pass, which is read-only with respect
// to the oracle; implementations must not mutate the graph.
type Visibility interface {

	// IsNodeVisible returns whether the given node is externally
	// customizable.
	IsNodeVisible(n *node.Node) bool

	// IsFieldVisible returns whether the given field is externally
	// customizable, independently of its owning node.
	IsFieldVisible(f *node.Field) bool
}

// TemplateVisibility is the default [Visibility] oracle, derived from
// the template structure of the graph itself: a proto parameter node
// is visible when it belongs to an outermost template instantiation
// (its parent is not a nested-template node), and a field is visible
// when its alias chain terminates on the customization surface of a
// visible node or of a directly authored node.
type TemplateVisibility struct{}

func (TemplateVisibility) IsNodeVisible(n *node.Node) bool {
	if n == nil || !n.IsProtoParameterNode() {
		return false
	}
	parent := n.Parent()
	return parent != nil && !parent.IsNestedProtoNode()
}

func (tv TemplateVisibility) IsFieldVisible(f *node.Field) bool {
	end := f
	for end.Parameter() != nil {
		end = end.Parameter()
	}
	if end == f {
		// no alias: visible only through the owning node
		owner := f.Node()
		return owner != nil && tv.IsNodeVisible(owner)
	}
	owner := end.Node()
	if owner == nil {
		return false
	}
	if owner.IsProtoParameterNode() {
		return tv.IsNodeVisible(owner)
	}
	// alias terminating on a directly authored node's surface is an
	// individually promoted field
	return owner.Parent() == nil || !owner.Parent().IsNestedProtoNode()
}

// MapVisibility is a [Visibility] oracle driven by explicit sets,
// used by tests and by hosts that compute visibility from
// template-authoring metadata outside the graph.
type MapVisibility struct {

	// Nodes is the set of visible nodes.
	Nodes map[*node.Node]bool

	// Fields is the set of independently visible fields.
	Fields map[*node.Field]bool
}

// NewMapVisibility returns a new empty [MapVisibility].
func NewMapVisibility() *MapVisibility {
	return &MapVisibility{
		Nodes:  map[*node.Node]bool{},
		Fields: map[*node.Field]bool{},
	}
}

func (mv *MapVisibility) IsNodeVisible(n *node.Node) bool {
	return mv.Nodes[n]
}

func (mv *MapVisibility) IsFieldVisible(f *node.Field) bool {
	return mv.Fields[f]
}
