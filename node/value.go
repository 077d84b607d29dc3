// Copyright (c) 2026, Worldkit Developers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package node

import (
	"fmt"

	"github.com/chewxy/math32"
)

// Type is the closed set of field value types supported by the
// document model. Single-valued (SF) types hold one value, and
// multi-valued (MF) types hold an ordered list.
type Type int32

const (
	// SFBool is a single boolean value.
	SFBool Type = iota

	// SFInt is a single integer value.
	SFInt

	// SFFloat is a single float32 value.
	SFFloat

	// SFString is a single string value.
	SFString

	// SFVec3 is a single 3D vector value.
	SFVec3

	// SFRotation is a single axis-angle rotation value.
	SFRotation

	// SFNode is a single node reference value.
	SFNode

	// MFNode is an ordered list of node references.
	MFNode
)

var typeNames = map[Type]string{
	SFBool:     "SFBool",
	SFInt:      "SFInt",
	SFFloat:    "SFFloat",
	SFString:   "SFString",
	SFVec3:     "SFVec3",
	SFRotation: "SFRotation",
	SFNode:     "SFNode",
	MFNode:     "MFNode",
}

func (t Type) String() string {
	if s, ok := typeNames[t]; ok {
		return s
	}
	return fmt.Sprintf("Type(%d)", int32(t))
}

// TypeByName returns the [Type] with the given name,
// and false if there is none.
func TypeByName(name string) (Type, bool) {
	for t, s := range typeNames {
		if s == name {
			return t, true
		}
	}
	return 0, false
}

// IsNode returns whether this type holds node references
// (SFNode or MFNode).
func (t Type) IsNode() bool {
	return t == SFNode || t == MFNode
}

// Value is the interface for field values. It is a closed sum over the
// [Type] variants: each implementation reports its [Type] tag, and all
// dispatch on values is by explicit tag switch.
type Value interface {

	// Type returns the [Type] tag of this value.
	Type() Type

	// Clone returns a copy of this value. Node references are
	// copied as references; deep copying of nodes is the
	// responsibility of [Node.Clone].
	Clone() Value
}

// Bool is an [SFBool] value.
type Bool bool

// Int is an [SFInt] value.
type Int int

// Float is an [SFFloat] value.
type Float float32

// String is an [SFString] value.
type String string

// Vec3 is an [SFVec3] value: a 3D vector or point.
type Vec3 struct {
	X, Y, Z float32
}

// Rotation is an [SFRotation] value: an axis-angle rotation.
// The axis should be normalized; see [Rotation.Normalize].
type Rotation struct {
	X, Y, Z, Angle float32
}

// NodeValue is an [SFNode] value holding a single node reference,
// which may be nil.
type NodeValue struct {
	Node *Node
}

// NodeList is an [MFNode] value holding an ordered list of
// node references.
type NodeList struct {
	Nodes []*Node
}

func (v Bool) Type() Type       { return SFBool }
func (v Int) Type() Type        { return SFInt }
func (v Float) Type() Type      { return SFFloat }
func (v String) Type() Type     { return SFString }
func (v Vec3) Type() Type       { return SFVec3 }
func (v Rotation) Type() Type   { return SFRotation }
func (v *NodeValue) Type() Type { return SFNode }
func (v *NodeList) Type() Type  { return MFNode }

func (v Bool) Clone() Value     { return v }
func (v Int) Clone() Value      { return v }
func (v Float) Clone() Value    { return v }
func (v String) Clone() Value   { return v }
func (v Vec3) Clone() Value     { return v }
func (v Rotation) Clone() Value { return v }

func (v *NodeValue) Clone() Value {
	return &NodeValue{Node: v.Node}
}

func (v *NodeList) Clone() Value {
	nl := &NodeList{}
	nl.Nodes = append(nl.Nodes, v.Nodes...)
	return nl
}

// Length returns the length of the vector.
func (v Vec3) Length() float32 {
	return math32.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z)
}

// Normalize returns the vector normalized to unit length,
// or the zero vector if it has zero length.
func (v Vec3) Normalize() Vec3 {
	l := v.Length()
	if l == 0 {
		return Vec3{}
	}
	return Vec3{v.X / l, v.Y / l, v.Z / l}
}

// Sub returns the vector minus the other vector.
func (v Vec3) Sub(o Vec3) Vec3 {
	return Vec3{v.X - o.X, v.Y - o.Y, v.Z - o.Z}
}

// Dot returns the dot product with the other vector.
func (v Vec3) Dot(o Vec3) float32 {
	return v.X*o.X + v.Y*o.Y + v.Z*o.Z
}

// Normalize returns the rotation with its axis normalized to unit
// length, defaulting to the Y axis if the axis has zero length.
func (r Rotation) Normalize() Rotation {
	a := Vec3{r.X, r.Y, r.Z}
	l := a.Length()
	if l == 0 {
		return Rotation{0, 1, 0, r.Angle}
	}
	return Rotation{r.X / l, r.Y / l, r.Z / l, r.Angle}
}

// nodesOf returns the node references held by the given value:
// the single node for [SFNode] values, the node list for [MFNode]
// values, and nil otherwise.
func nodesOf(v Value) []*Node {
	switch tv := v.(type) {
	case *NodeValue:
		if tv.Node != nil {
			return []*Node{tv.Node}
		}
	case *NodeList:
		return tv.Nodes
	}
	return nil
}
