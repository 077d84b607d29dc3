// Copyright (c) 2026, Worldkit Developers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package world

import (
	"fmt"

	"worldkit.dev/core/base/iox/yamlx"
	"worldkit.dev/core/node"
)

// Metrics summarizes the size and structure of a world's node graph,
// for logging and for export alongside a saved world.
type Metrics struct {

	// Nodes is the total number of nodes reachable from the root,
	// including the root.
	Nodes int `yaml:"nodes"`

	// TopLevelNodes is the number of nodes directly below the root.
	TopLevelNodes int `yaml:"topLevelNodes"`

	// Fields is the total number of fields over all nodes.
	Fields int `yaml:"fields"`

	// Parameters is the total number of parameter fields over
	// all nodes.
	Parameters int `yaml:"parameters"`

	// AliasLinks is the number of fields whose value aliases
	// another field.
	AliasLinks int `yaml:"aliasLinks"`

	// ProtoParameterNodes is the number of nodes materialized from
	// template parameters.
	ProtoParameterNodes int `yaml:"protoParameterNodes"`

	// NestedProtoNodes is the number of nested template roots.
	NestedProtoNodes int `yaml:"nestedProtoNodes"`
}

// Metrics computes the current [Metrics] of the world's graph.
func (w *World) Metrics() Metrics {
	m := Metrics{TopLevelNodes: len(w.Root.SubNodes(false))}
	w.Root.WalkDown(func(n *node.Node) bool {
		m.Nodes++
		m.Fields += len(n.Fields())
		m.Parameters += len(n.Parameters())
		for _, f := range n.Fields() {
			if f.Parameter() != nil {
				m.AliasLinks++
			}
		}
		for _, p := range n.Parameters() {
			if p.Parameter() != nil {
				m.AliasLinks++
			}
		}
		if n.IsProtoParameterNode() {
			m.ProtoParameterNodes++
		}
		if n.IsNestedProtoNode() {
			m.NestedProtoNodes++
		}
		return node.Continue
	})
	return m
}

// String returns a one-line summary of the metrics.
func (m Metrics) String() string {
	return fmt.Sprintf("%d nodes (%d top-level), %d fields, %d parameters, %d aliases", m.Nodes, m.TopLevelNodes, m.Fields, m.Parameters, m.AliasLinks)
}

// SaveMetrics writes the current metrics of the world to the given
// file in YAML encoding.
func (w *World) SaveMetrics(filename string) error {
	m := w.Metrics()
	return yamlx.Save(&m, filename)
}
