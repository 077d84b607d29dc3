// Copyright (c) 2026, Worldkit Developers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package node

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// jsonFixture builds a small templated graph exercising every link
// kind the codec must preserve.
func jsonFixture() *Node {
	root := New("Car", "car")
	root.Properties = map[string]any{"author": "test"}
	root.AddField("translation", Vec3{X: 1, Y: 2, Z: 3})
	root.AddField("rotation", Rotation{Y: 1, Angle: 1.57})
	root.AddField("locked", Bool(true))
	root.AddField("mass", Float(12.5))
	root.AddField("axles", Int(2))
	root.AddField("label", String("car"))

	decl := New("Hub", "decl").SetProtoParameterFlag()
	root.AddParameter("hub", &NodeValue{Node: decl})
	df := decl.AddField("friction", Float(0.2))

	wheel := New("Wheel", "wheel").SetNestedProtoFlag()
	inst := New("Hub", "inst")
	inst.SetProtoParameterNode(decl)
	inst.AddField("friction", Float(0.2)).SetParameter(df)
	wheel.AddField("children", &NodeList{Nodes: []*Node{inst}})
	root.AddField("wheel", &NodeValue{Node: wheel})
	return root
}

func TestJSONRoundTrip(t *testing.T) {
	root := jsonFixture()
	var b bytes.Buffer
	require.NoError(t, WriteJSON(root, &b))

	got, err := ReadJSON(&b)
	require.NoError(t, err)
	assert.Equal(t, root.ID(), got.ID())
	assert.Equal(t, "car", got.Name)
	assert.Equal(t, "Car", got.Model())
	assert.Equal(t, map[string]any{"author": "test"}, got.Properties)
	assert.Equal(t, Vec3{X: 1, Y: 2, Z: 3}, got.Field("translation").Value())
	assert.Equal(t, Rotation{Y: 1, Angle: 1.57}, got.Field("rotation").Value())
	assert.Equal(t, Bool(true), got.Field("locked").Value())
	assert.Equal(t, Float(12.5), got.Field("mass").Value())
	assert.Equal(t, Int(2), got.Field("axles").Value())
	assert.Equal(t, String("car"), got.Field("label").Value())

	decl := nodesOf(got.ParameterByName("hub").OwnValue())[0]
	assert.True(t, decl.IsProtoParameterNode())
	wheel := nodesOf(got.Field("wheel").OwnValue())[0]
	assert.True(t, wheel.IsNestedProtoNode())
	inst := nodesOf(wheel.Field("children").OwnValue())[0]

	// cross-references resolved by the repair pass
	assert.Equal(t, decl, inst.ProtoParameterNode())
	assert.Equal(t, []*Node{inst}, decl.ProtoParameterNodeInstances())
	assert.Equal(t, decl.Field("friction"), inst.Field("friction").Parameter())
	assert.Equal(t, wheel, inst.Parent())

	// new ids stay unique past everything loaded
	assert.Greater(t, New("X").ID(), got.ID())
}

func TestJSONSaveOpen(t *testing.T) {
	root := jsonFixture()
	fn := filepath.Join(t.TempDir(), "car.json")
	require.NoError(t, SaveJSON(root, fn))

	got, err := OpenJSON(fn)
	require.NoError(t, err)
	assert.Equal(t, root.ID(), got.ID())
	assert.NotNil(t, got.Field("wheel"))
}

func TestJSONDecodeErrors(t *testing.T) {
	_, err := ReadJSON(strings.NewReader(`{"id":1,"name":"a","model":"Car",
		"fields":[{"name":"x","type":"Nope"}]}`))
	assert.Error(t, err)

	_, err = ReadJSON(strings.NewReader(`{"id":1,"name":"a","model":"Car",
		"fields":[{"name":"x","type":"SFNode","node":{"id":1,"name":"b","model":"Hub"}}]}`))
	assert.Error(t, err) // duplicate id

	_, err = ReadJSON(strings.NewReader(`{"id":1,"name":"a","model":"Car",
		"fields":[{"name":"x","type":"SFFloat","float":0.5,
		"parameter":{"node":99,"in":"fields","index":0}}]}`))
	assert.Error(t, err) // unresolved reference
}
