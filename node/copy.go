// Copyright (c) 2026, Worldkit Developers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package node

import (
	"log/slog"

	"github.com/jinzhu/copier"
)

// Clone creates and returns a deep copy of the graph from this node
// down. Cloned nodes get fresh ids. Alias links and proto parameter
// links that point within the cloned subtree are remapped to the
// corresponding clones; links pointing outside the subtree are
// preserved as is, so a clone of a template body keeps aliasing the
// template's declarations.
func (n *Node) Clone() *Node {
	nodeMap := map[*Node]*Node{}
	fieldMap := map[*Field]*Field{}
	nc := n.cloneStructure(nodeMap, fieldMap)
	for on, cn := range nodeMap {
		if p := on.protoParameterNode; p != nil {
			if cp, ok := nodeMap[p]; ok {
				cn.SetProtoParameterNode(cp)
			} else {
				cn.SetProtoParameterNode(p)
			}
		}
	}
	for of, cf := range fieldMap {
		if p := of.parameter; p != nil {
			if cp, ok := fieldMap[p]; ok {
				cf.SetParameter(cp)
			} else {
				cf.SetParameter(p)
			}
		}
	}
	return nc
}

// cloneStructure copies the node, its fields and parameters, and all
// contained nodes, recording the old to new mapping for link repair.
func (n *Node) cloneStructure(nodeMap map[*Node]*Node, fieldMap map[*Field]*Field) *Node {
	nc := New(n.model, n.Name)
	nc.protoParameter = n.protoParameter
	nc.nestedProto = n.nestedProto
	nc.CopyFieldsFrom(n)
	nodeMap[n] = nc
	for _, f := range n.fields {
		cf := nc.AddField(f.Name, cloneValue(f.OwnValue(), nodeMap, fieldMap))
		fieldMap[f] = cf
	}
	for _, p := range n.parameters {
		cp := nc.AddParameter(p.Name, cloneValue(p.OwnValue(), nodeMap, fieldMap))
		fieldMap[p] = cp
	}
	return nc
}

// cloneValue deep-copies node-valued entries and clones the rest.
func cloneValue(v Value, nodeMap map[*Node]*Node, fieldMap map[*Field]*Field) Value {
	switch tv := v.(type) {
	case *NodeValue:
		if tv.Node == nil {
			return &NodeValue{}
		}
		return &NodeValue{Node: tv.Node.cloneStructure(nodeMap, fieldMap)}
	case *NodeList:
		nl := &NodeList{}
		for _, cn := range tv.Nodes {
			nl.Nodes = append(nl.Nodes, cn.cloneStructure(nodeMap, fieldMap))
		}
		return nl
	}
	return v.Clone()
}

// CopyFieldsFrom copies the non-structural data of the given node to
// this node: currently the Properties map, deep-copied so that
// mutation of one node's properties never affects the other.
func (n *Node) CopyFieldsFrom(from *Node) {
	if from.Properties == nil {
		return
	}
	if n.Properties == nil {
		n.Properties = map[string]any{}
	}
	err := copier.CopyWithOption(&n.Properties, &from.Properties, copier.Option{CaseSensitive: true, DeepCopy: true})
	if err != nil {
		slog.Error("node.Node.CopyFieldsFrom", "err", err)
	}
}
