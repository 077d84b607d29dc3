// Copyright (c) 2026, Worldkit Developers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package node

import (
	"fmt"
)

// Field is a named, typed value slot belonging to a [Node]. A field can
// be linked to another field as its parameter: an alias relationship
// where reads and writes of the effective value forward to the target.
// The target field maintains a backlink set of all fields that alias
// it, which is required for safe teardown when nodes are deleted.
type Field struct {

	// Name is the name of the field, unique within its owning node's
	// fields or parameters list.
	Name string

	// typ is the value type tag, fixed at creation.
	typ Type

	// value is the field's own stored value. When parameter is non-nil,
	// the effective value is the parameter's instead; see [Field.Value].
	value Value

	// node is the node owning this field.
	node *Node

	// parameter is the field this field aliases, or nil.
	parameter *Field

	// internalFields is the set of fields that alias this field as
	// their parameter, possibly across several template-instantiation
	// levels.
	internalFields []*Field
}

// NewField returns a new unattached field with the given name and
// initial value, which determines the field's type. Use
// [Node.AddField] or [Node.AddParameter] to attach it to a node.
func NewField(name string, value Value) *Field {
	return &Field{Name: name, typ: value.Type(), value: value}
}

// String returns a compact description of the field for debugging.
func (f *Field) String() string {
	on := "<detached>"
	if f.node != nil {
		on = f.node.String()
	}
	return fmt.Sprintf("%s %s of %s", f.typ, f.Name, on)
}

// Type returns the value type tag of the field.
func (f *Field) Type() Type {
	return f.typ
}

// Node returns the node owning this field, nil if unattached.
func (f *Field) Node() *Node {
	return f.node
}

// Value returns the effective value of the field: the parameter
// target's value if this field aliases one, otherwise the field's
// own stored value. The alias is followed transitively.
func (f *Field) Value() Value {
	if f.parameter != nil {
		return f.parameter.Value()
	}
	return f.value
}

// OwnValue returns the field's own stored value, without following
// the parameter alias. Graph traversal uses this: node containment
// is a property of the field itself, not of its alias target.
func (f *Field) OwnValue() Value {
	return f.value
}

// SetValue sets the effective value of the field, forwarding through
// the parameter alias if there is one. It returns an error if the
// value's type does not match the field's type.
func (f *Field) SetValue(v Value) error {
	if v.Type() != f.typ {
		return fmt.Errorf("node.Field.SetValue: %s: value type %s does not match field type %s", f.Name, v.Type(), f.typ)
	}
	if f.parameter != nil {
		return f.parameter.SetValue(v)
	}
	f.setOwnValue(v)
	return nil
}

// setOwnValue stores the value directly and reparents any contained
// nodes to the owning node.
func (f *Field) setOwnValue(v Value) {
	f.value = v
	if f.node != nil && f.typ.IsNode() {
		for _, cn := range nodesOf(v) {
			cn.parent = f.node
		}
	}
}

// Parameter returns the field this field aliases, or nil.
func (f *Field) Parameter() *Field {
	return f.parameter
}

// SetParameter sets the field this field aliases. The new target's
// backlink set gains this field. The old target's backlink set is
// deliberately left as is: stale backlinks are cleared in bulk by
// [Field.ClearInternalFields] during graph collapsing, and the
// ordering of those two steps is load-bearing there.
func (f *Field) SetParameter(p *Field) {
	f.parameter = p
	if p != nil {
		p.addInternalField(f)
	}
}

// InternalFields returns the set of fields that alias this field
// as their parameter.
func (f *Field) InternalFields() []*Field {
	return f.internalFields
}

// addInternalField adds the given field to the backlink set
// if not already present.
func (f *Field) addInternalField(in *Field) {
	for _, x := range f.internalFields {
		if x == in {
			return
		}
	}
	f.internalFields = append(f.internalFields, in)
}

// ClearInternalFields empties the backlink set without touching the
// member fields' own parameter pointers. This must be used before
// deleting the owning node so that teardown does not sever aliases
// that were already re-pointed elsewhere.
func (f *Field) ClearInternalFields() {
	f.internalFields = nil
}

// destroy severs all alias links touching this field: any remaining
// backlinked field has its parameter pointer cleared, and this field
// removes itself from its own target's backlink set. Contained nodes
// are destroyed by the owning node, not here.
func (f *Field) destroy() {
	for _, in := range f.internalFields {
		if in.parameter == f {
			in.parameter = nil
		}
	}
	f.internalFields = nil
	if f.parameter != nil {
		f.parameter.removeInternalField(f)
		f.parameter = nil
	}
}

// removeInternalField removes the given field from the backlink set.
func (f *Field) removeInternalField(in *Field) {
	for i, x := range f.internalFields {
		if x == in {
			f.internalFields = append(f.internalFields[:i], f.internalFields[i+1:]...)
			return
		}
	}
}

// SwapParameters re-points the alias of every source field to the
// corresponding target field's alias target, positionally matched by
// declaration order. This preserves the net effect of an exposure hop
// while dropping the hop itself: after the swap, the source fields
// alias whatever the target fields ultimately aliased. The target
// fields themselves are not modified. The two sequences must come from
// nodes of the same model and be of equal length; violation is an
// internal-consistency defect reported as an error.
func SwapParameters(sourceFields, targetFields []*Field) error {
	if len(sourceFields) != len(targetFields) {
		return fmt.Errorf("node.SwapParameters: field count mismatch: %d != %d", len(sourceFields), len(targetFields))
	}
	for i, sf := range sourceFields {
		np := targetFields[i].Parameter()
		if np == nil && sf.parameter != nil && !sf.typ.IsNode() {
			// the hop being dropped was the end of the alias chain:
			// snapshot the effective value before unlinking so the
			// resolved value is preserved. Node-valued identity flows
			// through the node-level collapse instead.
			sf.value = sf.Value().Clone()
		}
		sf.SetParameter(np)
	}
	return nil
}
