// Copyright (c) 2026, Worldkit Developers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package node

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewIDsUnique(t *testing.T) {
	a := New("Wheel")
	b := New("Wheel")
	assert.NotEqual(t, a.ID(), b.ID())
	assert.Equal(t, "Wheel", a.Model())
	assert.NotEmpty(t, a.Name)
}

func TestAddField(t *testing.T) {
	n := New("Wheel", "wheel")
	radius := n.AddField("radius", Float(0.5))
	assert.Equal(t, SFFloat, radius.Type())
	assert.Equal(t, n, radius.Node())
	assert.Equal(t, radius, n.Field("radius"))
	assert.Nil(t, n.Field("missing"))

	// duplicate names return the existing field unchanged
	again := n.AddField("radius", Float(0.9))
	assert.Equal(t, radius, again)
	assert.Equal(t, Float(0.5), radius.Value())
	assert.Len(t, n.Fields(), 1)
}

func TestFieldsOrParameters(t *testing.T) {
	plain := New("Cylinder")
	plain.AddField("height", Float(1))
	assert.Equal(t, plain.Fields(), plain.FieldsOrParameters())

	proto := New("Wheel").SetNestedProtoFlag()
	proto.AddField("body", &NodeValue{})
	proto.AddParameter("radius", Float(0.5))
	assert.Equal(t, proto.Parameters(), proto.FieldsOrParameters())
}

func TestNodeValueParenting(t *testing.T) {
	parent := New("Car", "car")
	child := New("Wheel", "wheel")
	parent.AddField("wheel", &NodeValue{Node: child})
	assert.Equal(t, parent, child.Parent())
	assert.Equal(t, "/car/wheel", child.Path())

	kids := New("Group")
	a, b := New("Wheel"), New("Wheel")
	kids.AddField("children", &NodeList{Nodes: []*Node{a, b}})
	assert.Equal(t, kids, a.Parent())
	assert.Equal(t, kids, b.Parent())
}

func TestProtoParameterNodeLinks(t *testing.T) {
	decl := New("Hub")
	a := New("Hub")
	b := New("Hub")

	a.SetProtoParameterNode(decl)
	b.SetProtoParameterNode(decl)
	assert.Equal(t, decl, a.ProtoParameterNode())
	assert.Equal(t, []*Node{a, b}, decl.ProtoParameterNodeInstances())

	// moving the link maintains both back-sets
	other := New("Hub")
	a.SetProtoParameterNode(other)
	assert.Equal(t, []*Node{b}, decl.ProtoParameterNodeInstances())
	assert.Equal(t, []*Node{a}, other.ProtoParameterNodeInstances())

	// clearing via nil
	b.SetProtoParameterNode(nil)
	assert.Empty(t, decl.ProtoParameterNodeInstances())
}

func TestClearProtoParameterNodeInstances(t *testing.T) {
	decl := New("Hub")
	a := New("Hub")
	b := New("Hub")
	a.SetProtoParameterNode(decl)
	b.SetProtoParameterNode(decl)

	decl.ClearProtoParameterNodeInstances()
	assert.Empty(t, decl.ProtoParameterNodeInstances())
	assert.Nil(t, a.ProtoParameterNode())
	assert.Nil(t, b.ProtoParameterNode())
}

func TestDestroy(t *testing.T) {
	parent := New("Car", "car")
	child := New("Wheel", "wheel")
	grandchild := New("Hub", "hub")
	child.AddField("hub", &NodeValue{Node: grandchild})
	parent.AddField("wheel", &NodeValue{Node: child})

	decl := New("Hub")
	grandchild.SetProtoParameterNode(decl)

	child.Destroy()
	assert.True(t, child.IsDestroyed())
	assert.True(t, grandchild.IsDestroyed())
	assert.False(t, parent.IsDestroyed())
	// relational links are severed before release
	assert.Empty(t, decl.ProtoParameterNodeInstances())
	assert.Nil(t, grandchild.ProtoParameterNode())
	// idempotent
	child.Destroy()
}

func TestRemoveAndDeleteParameter(t *testing.T) {
	proto := New("Wheel").SetNestedProtoFlag()
	hub := New("Hub")
	p := proto.AddParameter("hub", &NodeValue{Node: hub})

	internal := New("Hub")
	hf := internal.AddField("friction", Float(0.2))
	pf := hub.AddField("friction", Float(0.2))
	hf.SetParameter(pf)

	require.True(t, proto.DeleteParameter(p))
	assert.Empty(t, proto.Parameters())
	assert.True(t, hub.IsDestroyed())
	// teardown severed the alias into the destroyed subtree
	assert.Nil(t, hf.Parameter())

	assert.False(t, proto.DeleteParameter(p))
}

func TestCheckCounterpart(t *testing.T) {
	a := New("Wheel")
	a.AddField("radius", Float(0.5))
	b := New("Wheel")
	b.AddField("radius", Float(0.5))
	assert.NoError(t, a.CheckCounterpart(b))

	c := New("Hub")
	c.AddField("radius", Float(0.5))
	assert.Error(t, a.CheckCounterpart(c))

	d := New("Wheel")
	assert.Error(t, a.CheckCounterpart(d))
}
