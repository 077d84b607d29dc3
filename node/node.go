// Copyright (c) 2026, Worldkit Developers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package node provides the scene-document node and field graph model:
// typed nodes owning ordered, typed fields, with field aliasing across
// template-instantiation levels (a field can be the parameter of
// another field, sharing its effective value), and proto-parameter
// links between nodes materialized from template parameters and their
// counterparts one instantiation level up.
//
// The graph is built externally (by parsing or by tests) and then
// normalized once by the world collapse pass; see the world package.
package node

import (
	"fmt"
	"strconv"
	"sync/atomic"

	"worldkit.dev/core/base/findfast"
)

// nextID is the process-wide node id counter. Ids are unique for the
// lifetime of the process and are never reused, so they can be used
// for cross-referencing in exported formats.
var nextID atomic.Int64

// Node is a typed vertex of the scene-document graph. It owns an
// ordered list of fields and, for nodes that instantiate a template
// one level below another template, a separate ordered list of
// parameters. Hierarchical structure is carried by node-valued fields;
// the parent link is maintained automatically when nodes are stored
// into [SFNode] or [MFNode] values.
//
// A node materialized from a template parameter keeps a link to its
// counterpart one level up the instantiation chain (the proto
// parameter node), and every node maintains the non-owning back-set
// of nodes for which it is that counterpart.
type Node struct {

	// Name is the name of this node, typically unique among the
	// top-level nodes of a world. It can be used for finding and
	// serializing nodes.
	Name string

	// Properties is an optional property map for arbitrary
	// key-value metadata attached to this node.
	Properties map[string]any

	// id is the process-unique id, stable for the node's lifetime.
	id int

	// model is the template / type identity of the node. Two nodes
	// derived from the same template declaration share a model.
	model string

	// fields is the ordered field list; names are unique within it.
	fields []*Field

	// parameters is the ordered parameter list, present only on
	// nested-template nodes.
	parameters []*Field

	// parent is the node containing this one in a node-valued field,
	// nil for the root.
	parent *Node

	// protoParameterNode is the counterpart one level up the
	// template-instantiation chain, set when this node was
	// materialized from a parameter rather than written directly.
	protoParameterNode *Node

	// protoParameterNodeInstances is the non-owning back-set of every
	// node whose protoParameterNode is this node.
	protoParameterNodeInstances []*Node

	// protoParameter is whether this node was generated as the
	// materialization of a template parameter.
	protoParameter bool

	// nestedProto is whether this node is the root of a template
	// instantiated one level below another template.
	nestedProto bool

	// destroyed is set when the node has been released; all
	// operations on a destroyed node are invalid.
	destroyed bool
}

// New returns a new node with the given model (template / type
// identity) and an optional name, with a fresh process-unique id.
func New(model string, name ...string) *Node {
	n := &Node{model: model, id: int(nextID.Add(1))}
	if len(name) > 0 {
		n.Name = name[0]
	} else {
		n.Name = model + "-" + strconv.Itoa(n.id)
	}
	return n
}

// String returns the "useful name" of the node for logs and errors:
// the model, name, and id.
func (n *Node) String() string {
	if n == nil {
		return "nil"
	}
	return n.model + "(" + n.Name + ")#" + strconv.Itoa(n.id)
}

// ID returns the process-unique id of the node.
func (n *Node) ID() int {
	return n.id
}

// Model returns the template / type identity of the node.
func (n *Node) Model() string {
	return n.model
}

// Parent returns the node containing this one, nil for a root.
func (n *Node) Parent() *Node {
	return n.parent
}

// IsDestroyed returns whether the node has been released.
func (n *Node) IsDestroyed() bool {
	return n.destroyed
}

// IsProtoParameterNode returns whether this node was generated as the
// materialization of a template parameter, as opposed to being
// authored directly in a template body or the top-level document.
func (n *Node) IsProtoParameterNode() bool {
	return n.protoParameter
}

// SetProtoParameterFlag marks this node as the materialization of a
// template parameter. This is set during graph construction only.
func (n *Node) SetProtoParameterFlag() *Node {
	n.protoParameter = true
	return n
}

// IsNestedProtoNode returns whether this node is the root of a
// template instantiated one level below another template.
func (n *Node) IsNestedProtoNode() bool {
	return n.nestedProto
}

// SetNestedProtoFlag marks this node as the root of a nested template
// instantiation. This is set during graph construction only.
func (n *Node) SetNestedProtoFlag() *Node {
	n.nestedProto = true
	return n
}

// Fields:

// Fields returns the ordered field list of the node.
func (n *Node) Fields() []*Field {
	return n.fields
}

// Parameters returns the ordered parameter list of the node,
// non-empty only for nested-template nodes.
func (n *Node) Parameters() []*Field {
	return n.parameters
}

// FieldsOrParameters returns the parameters if the node has any,
// otherwise the fields. This is the customization surface of the
// node: what an outer context sees as settable.
func (n *Node) FieldsOrParameters() []*Field {
	if len(n.parameters) > 0 {
		return n.parameters
	}
	return n.fields
}

// AddField creates a field with the given name and initial value and
// appends it to the node's fields, returning it. The name must be
// unique within the fields; a duplicate is reported as an error by
// returning the existing field unchanged.
func (n *Node) AddField(name string, value Value) *Field {
	if f := n.Field(name); f != nil {
		return f
	}
	f := NewField(name, value)
	f.node = n
	n.fields = append(n.fields, f)
	f.setOwnValue(value)
	return f
}

// AddParameter creates a field with the given name and initial value
// and appends it to the node's parameters, returning it.
func (n *Node) AddParameter(name string, value Value) *Field {
	if f := n.ParameterByName(name); f != nil {
		return f
	}
	f := NewField(name, value)
	f.node = n
	n.parameters = append(n.parameters, f)
	f.setOwnValue(value)
	return f
}

// Field returns the field with the given name, nil if not found.
// The optional startIndex enables optimized bidirectional search.
func (n *Node) Field(name string, startIndex ...int) *Field {
	i := findfast.FindFunc(n.fields, func(f *Field) bool { return f.Name == name }, startIndex...)
	if i < 0 {
		return nil
	}
	return n.fields[i]
}

// ParameterByName returns the parameter with the given name,
// nil if not found.
func (n *Node) ParameterByName(name string, startIndex ...int) *Field {
	i := findfast.FindFunc(n.parameters, func(f *Field) bool { return f.Name == name }, startIndex...)
	if i < 0 {
		return nil
	}
	return n.parameters[i]
}

// RemoveParameter removes the given field from the node's parameters,
// returning false if it is not present. It does not destroy the field;
// see [Node.DeleteParameter].
func (n *Node) RemoveParameter(p *Field) bool {
	i := findfast.FindFunc(n.parameters, func(f *Field) bool { return f == p })
	if i < 0 {
		return false
	}
	n.parameters = append(n.parameters[:i], n.parameters[i+1:]...)
	return true
}

// DeleteParameter destroys the given parameter field and removes it
// from the node's parameters: alias links touching the field are
// severed, and any nodes owned by its value are destroyed.
func (n *Node) DeleteParameter(p *Field) bool {
	if !n.RemoveParameter(p) {
		return false
	}
	for _, cn := range nodesOf(p.OwnValue()) {
		cn.Destroy()
	}
	p.destroy()
	return true
}

// Proto parameter links:

// ProtoParameterNode returns the node's counterpart one level up the
// template-instantiation chain, nil if this node was not materialized
// from a parameter or the link has been collapsed.
func (n *Node) ProtoParameterNode() *Node {
	return n.protoParameterNode
}

// SetProtoParameterNode sets the proto parameter counterpart link,
// maintaining the back-set invariant on both the old and new target:
// b is in a.ProtoParameterNodeInstances exactly when
// b.ProtoParameterNode() == a.
func (n *Node) SetProtoParameterNode(p *Node) {
	if n.protoParameterNode == p {
		return
	}
	if old := n.protoParameterNode; old != nil {
		old.removeInstance(n)
	}
	n.protoParameterNode = p
	if p != nil {
		p.addInstance(n)
	}
}

// ProtoParameterNodeInstances returns the non-owning back-set of
// every node whose [Node.ProtoParameterNode] is this node.
func (n *Node) ProtoParameterNodeInstances() []*Node {
	return n.protoParameterNodeInstances
}

// ClearProtoParameterNodeInstances severs the back-set: every member's
// proto parameter link is cleared along with the set itself.
func (n *Node) ClearProtoParameterNodeInstances() {
	insts := n.protoParameterNodeInstances
	n.protoParameterNodeInstances = nil
	for _, in := range insts {
		if in.protoParameterNode == n {
			in.protoParameterNode = nil
		}
	}
}

func (n *Node) addInstance(in *Node) {
	for _, x := range n.protoParameterNodeInstances {
		if x == in {
			return
		}
	}
	n.protoParameterNodeInstances = append(n.protoParameterNodeInstances, in)
}

func (n *Node) removeInstance(in *Node) {
	for i, x := range n.protoParameterNodeInstances {
		if x == in {
			n.protoParameterNodeInstances = append(n.protoParameterNodeInstances[:i], n.protoParameterNodeInstances[i+1:]...)
			return
		}
	}
}

// Destruction:

// Destroy releases this node and, recursively, all nodes owned by its
// field and parameter values. All relational links touching the
// destroyed nodes are severed first: alias backlinks, the proto
// parameter link, and the instance back-set. The caller is responsible
// for removing the node from any containing field value beforehand;
// destruction does not reach upward.
func (n *Node) Destroy() {
	if n.destroyed {
		return
	}
	n.destroyed = true
	n.SetProtoParameterNode(nil)
	n.ClearProtoParameterNodeInstances()
	for _, f := range n.fields {
		for _, cn := range nodesOf(f.OwnValue()) {
			cn.Destroy()
		}
		f.destroy()
	}
	for _, p := range n.parameters {
		for _, cn := range nodesOf(p.OwnValue()) {
			cn.Destroy()
		}
		p.destroy()
	}
	n.fields = nil
	n.parameters = nil
	n.parent = nil
}

// Paths:

// Path returns the path to this node from its root, using node
// names separated by / delimiters.
func (n *Node) Path() string {
	if n.parent != nil {
		return n.parent.Path() + "/" + n.Name
	}
	return "/" + n.Name
}

// checkModelMatch returns an error if the two nodes do not share the
// same model and field count, which indicates corrupted template
// instantiation.
func checkModelMatch(a, b *Node) error {
	if a.model != b.model {
		return fmt.Errorf("node: model mismatch between %s and %s", a, b)
	}
	if len(a.fields) != len(b.fields) {
		return fmt.Errorf("node: field count mismatch between %s (%d) and %s (%d)", a, len(a.fields), b, len(b.fields))
	}
	return nil
}

// CheckCounterpart verifies that the given node is a structurally
// valid counterpart of this node for the field aliasing swap protocol:
// same model, same field count. Violation indicates corrupted template
// instantiation and is returned as an error.
func (n *Node) CheckCounterpart(c *Node) error {
	return checkModelMatch(n, c)
}
