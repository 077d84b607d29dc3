// Copyright (c) 2026, Worldkit Developers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package node

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"worldkit.dev/core/base/iox/jsonx"
)

// The JSON codec serializes a node graph with its cross-references:
// node ids are written as is, and alias links and proto parameter
// links are written as id-based references that are resolved in a
// repair pass after decoding. Ids remain stable across a save / load
// round trip, and the process id counter is advanced past the highest
// loaded id so that invariant uniqueness is preserved for nodes
// created afterwards.

// nodeJSON is the serialized form of a [Node].
type nodeJSON struct {
	ID                 int            `json:"id"`
	Name               string         `json:"name"`
	Model              string         `json:"model"`
	ProtoParameter     bool           `json:"protoParameter,omitempty"`
	NestedProto        bool           `json:"nestedProto,omitempty"`
	ProtoParameterNode int            `json:"protoParameterNode,omitempty"`
	Fields             []fieldJSON    `json:"fields,omitempty"`
	Parameters         []fieldJSON    `json:"parameters,omitempty"`
	Properties         map[string]any `json:"properties,omitempty"`
}

// fieldRef locates a field by owning node id, list, and index.
type fieldRef struct {
	Node  int    `json:"node"`
	In    string `json:"in"` // "fields" or "parameters"
	Index int    `json:"index"`
}

// fieldJSON is the serialized form of a [Field]. Exactly one value
// variant is set, per the Type tag.
type fieldJSON struct {
	Name      string      `json:"name"`
	Type      string      `json:"type"`
	Parameter *fieldRef   `json:"parameter,omitempty"`
	Bool      *Bool       `json:"bool,omitempty"`
	Int       *Int        `json:"int,omitempty"`
	Float     *Float      `json:"float,omitempty"`
	String    *String     `json:"string,omitempty"`
	Vec3      *Vec3       `json:"vec3,omitempty"`
	Rotation  *Rotation   `json:"rotation,omitempty"`
	Node      *nodeJSON   `json:"node,omitempty"`
	Nodes     []*nodeJSON `json:"nodes,omitempty"`
}

// WriteJSON writes the JSON encoding of the graph below the given
// root node to the given writer, with indentation.
func WriteJSON(n *Node, w io.Writer) error {
	return jsonx.WriteIndent(encodeNode(n), w)
}

// SaveJSON writes the JSON encoding of the graph below the given
// root node to the given filename.
func SaveJSON(n *Node, filename string) error {
	fp, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer fp.Close()
	bw := bufio.NewWriter(fp)
	if err := WriteJSON(n, bw); err != nil {
		return err
	}
	return bw.Flush()
}

// ReadJSON reads a node graph from the given JSON-encoded reader,
// resolving all id-based cross-references.
func ReadJSON(r io.Reader) (*Node, error) {
	nj := &nodeJSON{}
	if err := jsonx.Read(nj, r); err != nil {
		return nil, err
	}
	return decodeRoot(nj)
}

// OpenJSON reads a node graph from the given JSON file.
func OpenJSON(filename string) (*Node, error) {
	fp, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer fp.Close()
	return ReadJSON(bufio.NewReader(fp))
}

// encodeNode converts a node subtree to its serialized form.
func encodeNode(n *Node) *nodeJSON {
	nj := &nodeJSON{
		ID:             n.id,
		Name:           n.Name,
		Model:          n.model,
		ProtoParameter: n.protoParameter,
		NestedProto:    n.nestedProto,
		Properties:     n.Properties,
	}
	if n.protoParameterNode != nil {
		nj.ProtoParameterNode = n.protoParameterNode.id
	}
	for _, f := range n.fields {
		nj.Fields = append(nj.Fields, encodeField(f))
	}
	for _, p := range n.parameters {
		nj.Parameters = append(nj.Parameters, encodeField(p))
	}
	return nj
}

// encodeField converts a field to its serialized form, including the
// alias link as an id-based reference.
func encodeField(f *Field) fieldJSON {
	fj := fieldJSON{Name: f.Name, Type: f.typ.String()}
	if p := f.parameter; p != nil && p.node != nil {
		ref := &fieldRef{Node: p.node.id}
		if i := indexOfField(p.node.fields, p); i >= 0 {
			ref.In = "fields"
			ref.Index = i
		} else if i := indexOfField(p.node.parameters, p); i >= 0 {
			ref.In = "parameters"
			ref.Index = i
		}
		fj.Parameter = ref
	}
	switch tv := f.OwnValue().(type) {
	case Bool:
		fj.Bool = &tv
	case Int:
		fj.Int = &tv
	case Float:
		fj.Float = &tv
	case String:
		fj.String = &tv
	case Vec3:
		fj.Vec3 = &tv
	case Rotation:
		fj.Rotation = &tv
	case *NodeValue:
		if tv.Node != nil {
			fj.Node = encodeNode(tv.Node)
		}
	case *NodeList:
		for _, cn := range tv.Nodes {
			fj.Nodes = append(fj.Nodes, encodeNode(cn))
		}
	}
	return fj
}

func indexOfField(fields []*Field, f *Field) int {
	for i, x := range fields {
		if x == f {
			return i
		}
	}
	return -1
}

// decodeRoot builds the node graph from the serialized form and then
// runs the repair pass resolving all id-based links, analogous to the
// reparenting pass needed after any structural unmarshal.
func decodeRoot(nj *nodeJSON) (*Node, error) {
	byID := map[int]*Node{}
	var pending []pendingRef
	maxID := 0
	root, err := decodeNode(nj, byID, &pending, &maxID)
	if err != nil {
		return nil, err
	}
	for _, pr := range pending {
		if err := pr.resolve(byID); err != nil {
			return nil, err
		}
	}
	// keep new ids unique beyond everything loaded
	for {
		cur := nextID.Load()
		if cur >= int64(maxID) || nextID.CompareAndSwap(cur, int64(maxID)) {
			break
		}
	}
	return root, nil
}

// pendingRef is a cross-reference to resolve after all nodes exist.
type pendingRef struct {
	field    *Field // field whose alias target this is; nil for node links
	node     *Node  // node whose proto parameter link this is
	ref      fieldRef
	linkToID int
}

func (pr *pendingRef) resolve(byID map[int]*Node) error {
	if pr.node != nil {
		target, ok := byID[pr.linkToID]
		if !ok {
			return fmt.Errorf("node: unresolved protoParameterNode id %d for %s", pr.linkToID, pr.node)
		}
		pr.node.SetProtoParameterNode(target)
		return nil
	}
	owner, ok := byID[pr.ref.Node]
	if !ok {
		return fmt.Errorf("node: unresolved parameter reference to node id %d", pr.ref.Node)
	}
	list := owner.fields
	if pr.ref.In == "parameters" {
		list = owner.parameters
	}
	if pr.ref.Index < 0 || pr.ref.Index >= len(list) {
		return fmt.Errorf("node: parameter reference index %d out of range for %s", pr.ref.Index, owner)
	}
	pr.field.SetParameter(list[pr.ref.Index])
	return nil
}

func decodeNode(nj *nodeJSON, byID map[int]*Node, pending *[]pendingRef, maxID *int) (*Node, error) {
	n := &Node{
		id:             nj.ID,
		Name:           nj.Name,
		model:          nj.Model,
		protoParameter: nj.ProtoParameter,
		nestedProto:    nj.NestedProto,
		Properties:     nj.Properties,
	}
	if _, dup := byID[n.id]; dup {
		return nil, fmt.Errorf("node: duplicate node id %d in input", n.id)
	}
	byID[n.id] = n
	if nj.ID > *maxID {
		*maxID = nj.ID
	}
	if nj.ProtoParameterNode != 0 {
		*pending = append(*pending, pendingRef{node: n, linkToID: nj.ProtoParameterNode})
	}
	for i := range nj.Fields {
		if err := decodeField(&nj.Fields[i], n, false, byID, pending, maxID); err != nil {
			return nil, err
		}
	}
	for i := range nj.Parameters {
		if err := decodeField(&nj.Parameters[i], n, true, byID, pending, maxID); err != nil {
			return nil, err
		}
	}
	return n, nil
}

func decodeField(fj *fieldJSON, owner *Node, isParameter bool, byID map[int]*Node, pending *[]pendingRef, maxID *int) error {
	typ, ok := TypeByName(fj.Type)
	if !ok {
		return fmt.Errorf("node: unknown field type %q for field %q", fj.Type, fj.Name)
	}
	var v Value
	switch typ {
	case SFBool:
		var b Bool
		if fj.Bool != nil {
			b = *fj.Bool
		}
		v = b
	case SFInt:
		var iv Int
		if fj.Int != nil {
			iv = *fj.Int
		}
		v = iv
	case SFFloat:
		var fv Float
		if fj.Float != nil {
			fv = *fj.Float
		}
		v = fv
	case SFString:
		var sv String
		if fj.String != nil {
			sv = *fj.String
		}
		v = sv
	case SFVec3:
		var vv Vec3
		if fj.Vec3 != nil {
			vv = *fj.Vec3
		}
		v = vv
	case SFRotation:
		var rv Rotation
		if fj.Rotation != nil {
			rv = *fj.Rotation
		}
		v = rv
	case SFNode:
		nv := &NodeValue{}
		if fj.Node != nil {
			cn, err := decodeNode(fj.Node, byID, pending, maxID)
			if err != nil {
				return err
			}
			nv.Node = cn
		}
		v = nv
	case MFNode:
		nl := &NodeList{}
		for _, cnj := range fj.Nodes {
			cn, err := decodeNode(cnj, byID, pending, maxID)
			if err != nil {
				return err
			}
			nl.Nodes = append(nl.Nodes, cn)
		}
		v = nl
	}
	var f *Field
	if isParameter {
		f = owner.AddParameter(fj.Name, v)
	} else {
		f = owner.AddField(fj.Name, v)
	}
	if fj.Parameter != nil {
		*pending = append(*pending, pendingRef{field: f, ref: *fj.Parameter})
	}
	return nil
}
