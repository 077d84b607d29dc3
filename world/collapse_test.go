// Copyright (c) 2026, Worldkit Developers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package world

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"worldkit.dev/core/base/errors"
	"worldkit.dev/core/node"
)

// hiddenChainWorld builds the standard collapse fixture: a nested
// Wheel template whose hub parameter is not re-exposed. The hub
// parameter node h is hidden, and the internal instance hi aliases
// its fields.
//
//	root
//	└── wheel (nested template root)
//	    ├── parameter hub = h   (proto parameter node, hidden)
//	    └── field children = [hi]  (instance of h)
func hiddenChainWorld() (w *World, wheel, h, hi *node.Node) {
	root := node.New("Root", "root")
	wheel = node.New("Wheel", "wheel").SetNestedProtoFlag()
	root.AddField("children", &node.NodeList{Nodes: []*node.Node{wheel}})

	h = node.New("Hub", "h").SetProtoParameterFlag()
	hFriction := h.AddField("friction", node.Float(0.2))
	hRadius := h.AddField("radius", node.Float(0.1))
	wheel.AddParameter("hub", &node.NodeValue{Node: h})

	hi = node.New("Hub", "hi")
	hi.AddField("friction", node.Float(0.2)).SetParameter(hFriction)
	hi.AddField("radius", node.Float(0.1)).SetParameter(hRadius)
	hi.SetProtoParameterNode(h)
	wheel.AddField("children", &node.NodeList{Nodes: []*node.Node{hi}})

	w = NewWorld(root)
	return
}

func TestCollapseHiddenChain(t *testing.T) {
	w, wheel, h, hi := hiddenChainWorld()

	// the effective value set through the chain must survive the collapse
	require.NoError(t, hi.Field("friction").SetValue(node.Float(0.7)))

	require.NoError(t, w.Collapse())

	assert.True(t, h.IsDestroyed())
	assert.Empty(t, wheel.Parameters())
	assert.False(t, hi.IsDestroyed())
	assert.Nil(t, hi.ProtoParameterNode())
	assert.Nil(t, hi.Field("friction").Parameter())
	assert.Equal(t, node.Float(0.7), hi.Field("friction").Value())
	assert.Equal(t, node.Float(0.1), hi.Field("radius").Value())

	// no link anywhere in the remaining graph touches a destroyed node
	for _, n := range w.Root.SubNodes(true) {
		if p := n.ProtoParameterNode(); p != nil {
			assert.False(t, p.IsDestroyed())
		}
		for _, f := range n.Fields() {
			if p := f.Parameter(); p != nil {
				assert.False(t, p.Node().IsDestroyed())
			}
		}
	}
}

func TestCollapseIsExhaustive(t *testing.T) {
	w, _, _, _ := hiddenChainWorld()
	require.NoError(t, w.Collapse())
	before := w.Metrics()

	require.NoError(t, w.Collapse())
	assert.Equal(t, before, w.Metrics())
}

func TestCollapseMultipleInstances(t *testing.T) {
	w, wheel, h, hi := hiddenChainWorld()
	hi2 := node.New("Hub", "hi2")
	hi2.AddField("friction", node.Float(0.2)).SetParameter(h.Field("friction"))
	hi2.AddField("radius", node.Float(0.1)).SetParameter(h.Field("radius"))
	hi2.SetProtoParameterNode(h)
	wheel.AddField("more", &node.NodeValue{Node: hi2})

	require.NoError(t, w.Collapse())
	assert.True(t, h.IsDestroyed())
	for _, in := range []*node.Node{hi, hi2} {
		assert.False(t, in.IsDestroyed())
		assert.Nil(t, in.ProtoParameterNode())
		assert.Nil(t, in.Field("friction").Parameter())
	}
}

func TestCollapseRepointsAliasChain(t *testing.T) {
	// the collapsed hop's own fields alias an outer declaration: the
	// instance must end up aliasing the declaration directly
	root := node.New("Root", "root")
	car := node.New("Car", "car")
	root.AddField("children", &node.NodeList{Nodes: []*node.Node{car}})
	hd := node.New("Hub", "hd")
	hdFriction := hd.AddField("friction", node.Float(0.2))
	car.AddField("hub", &node.NodeValue{Node: hd})

	wheel := node.New("Wheel", "wheel").SetNestedProtoFlag()
	car.AddField("wheel", &node.NodeValue{Node: wheel})
	h := node.New("Hub", "h").SetProtoParameterFlag()
	hFriction := h.AddField("friction", node.Float(0.2))
	hFriction.SetParameter(hdFriction)
	wheel.AddParameter("hub", &node.NodeValue{Node: h})

	hi := node.New("Hub", "hi")
	hi.AddField("friction", node.Float(0.2)).SetParameter(hFriction)
	hi.SetProtoParameterNode(h)
	wheel.AddField("children", &node.NodeList{Nodes: []*node.Node{hi}})

	w := NewWorld(root)
	w.Visibility = NewMapVisibility() // everything hidden

	require.NoError(t, w.Collapse())
	assert.True(t, h.IsDestroyed())
	assert.Equal(t, hdFriction, hi.Field("friction").Parameter())
	require.NoError(t, hdFriction.SetValue(node.Float(0.9)))
	assert.Equal(t, node.Float(0.9), hi.Field("friction").Value())
}

func TestCollapseVisibleTopPreserved(t *testing.T) {
	// a parameter node of an outermost template is customizable and
	// must not be collapsed
	root := node.New("Root", "root")
	car := node.New("Car", "car")
	root.AddField("children", &node.NodeList{Nodes: []*node.Node{car}})
	hd := node.New("Hub", "hd").SetProtoParameterFlag()
	hd.AddField("friction", node.Float(0.2))
	car.AddParameter("hub", &node.NodeValue{Node: hd})

	w := NewWorld(root)
	require.NoError(t, w.Collapse())
	assert.False(t, hd.IsDestroyed())
	assert.Len(t, car.Parameters(), 1)
}

func TestCollapseVisibleFieldBlocks(t *testing.T) {
	w, wheel, h, hi := hiddenChainWorld()
	mv := NewMapVisibility()
	mv.Fields[h.Field("friction")] = true
	w.Visibility = mv

	require.NoError(t, w.Collapse())
	assert.False(t, h.IsDestroyed())
	assert.Len(t, wheel.Parameters(), 1)
	assert.Equal(t, h, hi.ProtoParameterNode())
	assert.Equal(t, h.Field("friction"), hi.Field("friction").Parameter())
}

func TestCollapseModelMismatch(t *testing.T) {
	w, _, h, _ := hiddenChainWorld()
	bolt := node.New("Bolt", "bolt")
	bolt.SetProtoParameterNode(h)
	w.Root.AddField("stray", &node.NodeValue{Node: bolt})

	err := w.Collapse()
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrStructuralInconsistency))
}

func TestCollapseBadParent(t *testing.T) {
	// a collapsable node below a non-template parent is a broken graph
	root := node.New("Root", "root")
	plain := node.New("Group", "plain")
	root.AddField("children", &node.NodeList{Nodes: []*node.Node{plain}})
	h := node.New("Hub", "h").SetProtoParameterFlag()
	plain.AddParameter("hub", &node.NodeValue{Node: h})

	w := NewWorld(root)
	w.Visibility = NewMapVisibility()

	err := w.Collapse()
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrStructuralInconsistency))
}

func TestIsCollapsibleProtoParameterChain(t *testing.T) {
	w, _, h, hi := hiddenChainWorld()
	assert.True(t, w.IsCollapsibleProtoParameterChain(h))
	assert.False(t, w.IsCollapsibleProtoParameterChain(hi)) // not a parameter node
	assert.False(t, w.IsCollapsibleProtoParameterChain(nil))
	assert.False(t, w.IsCollapsibleProtoParameterChain(node.New("Hub"))) // no parent

	// an upward link disqualifies the node; only chain tops collapse
	other := node.New("Hub", "other").SetProtoParameterFlag()
	h.SetProtoParameterNode(other)
	assert.False(t, w.IsCollapsibleProtoParameterChain(h))
}

func TestIsParameterChainExposed(t *testing.T) {
	w, _, h, hi := hiddenChainWorld()

	// the walk starts at depth zero, so the entry node itself always
	// reports unexposed, whatever its chain looks like
	assert.False(t, w.IsParameterChainExposed(h))
	assert.False(t, w.IsParameterChainExposed(hi))
	assert.False(t, w.IsParameterChainExposed(nil))

	mv := NewMapVisibility()
	mv.Nodes[h] = true
	w.Visibility = mv
	assert.False(t, w.IsParameterChainExposed(hi))
}
