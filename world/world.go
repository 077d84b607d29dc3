// Copyright (c) 2026, Worldkit Developers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package world provides the World document type owning a scene-node
// graph, the template library, and the collapse pass that normalizes
// proto-parameter chains after graph construction.
package world

import (
	"fmt"
	"strconv"

	"worldkit.dev/core/base/ordmap"
	"worldkit.dev/core/node"
)

// Trace can be set to true to get a trace of the collapse pass
// on the standard logger.
var Trace = false

// World is a scene document: a root node graph plus the bookkeeping
// around it. The graph is built externally (loaded or constructed)
// and then normalized exactly once by [World.Finalize]; afterwards the
// graph is stable for editing, export, and rendering collaborators.
//
// A World is exclusively owned by its creator during construction and
// finalization: no other component may mutate the graph while
// [World.Collapse] runs. There is no global world instance; pass the
// World explicitly to whatever needs it.
type World struct {

	// Root is the root node of the document graph.
	Root *node.Node

	// Library is the template library: prototype node graphs by model
	// name, instantiated into the world with [World.NewInstance].
	Library *ordmap.Map[string, *node.Node]

	// Visibility decides which nodes and fields are customizable from
	// outside their defining template. It defaults to
	// [TemplateVisibility] and is read-only with respect to the graph.
	Visibility Visibility

	// FileName is the file this world was loaded from or last saved
	// to; empty for an unnamed world.
	FileName string

	// modified is whether the document has unsaved changes.
	modified bool

	// finalized is whether Finalize has completed.
	finalized bool

	// topLevel is the cached list of top-level nodes, by name.
	topLevel *ordmap.Map[string, *node.Node]
}

// NewWorld returns a new world owning the given root node graph,
// with the default [TemplateVisibility] oracle.
func NewWorld(root *node.Node) *World {
	return &World{
		Root:       root,
		Library:    ordmap.New[string, *node.Node](),
		Visibility: TemplateVisibility{},
		topLevel:   ordmap.New[string, *node.Node](),
	}
}

// Finalize completes world construction: top-level node names are
// made unique, the top-level lists are updated, and the node graph is
// simplified by the collapse pass. It must be called exactly once,
// after graph construction and before the graph is handed to readers.
func (w *World) Finalize() error {
	if w.finalized {
		return fmt.Errorf("world.World.Finalize: already finalized")
	}
	w.resolveNameClashes()
	w.UpdateTopLevelLists()
	if err := w.Collapse(); err != nil {
		return err
	}
	w.UpdateTopLevelLists()
	w.finalized = true
	return nil
}

// resolveNameClashes ensures top-level node names are unique by
// appending the node id to clashing names.
func (w *World) resolveNameClashes() {
	seen := map[string]bool{}
	for _, n := range w.Root.SubNodes(false) {
		if seen[n.Name] {
			n.Name = n.Name + "-" + strconv.Itoa(n.ID())
		}
		seen[n.Name] = true
	}
}

// UpdateTopLevelLists rebuilds the cached list of top-level nodes
// from the root's directly contained nodes.
func (w *World) UpdateTopLevelLists() {
	w.topLevel.Reset()
	for _, n := range w.Root.SubNodes(false) {
		w.topLevel.Add(n.Name, n)
	}
}

// TopLevelNodes returns the top-level nodes in document order.
func (w *World) TopLevelNodes() []*node.Node {
	return w.topLevel.Values()
}

// FindTopLevelNode returns a top-level node with the given model name,
// preferring the one at the given position if it matches, otherwise
// the first match in document order. It returns nil if there is none.
func (w *World) FindTopLevelNode(modelName string, preferredPosition int) *node.Node {
	tl := w.topLevel.Values()
	if preferredPosition >= 0 && preferredPosition < len(tl) && tl[preferredPosition].Model() == modelName {
		return tl[preferredPosition]
	}
	for _, n := range tl {
		if n.Model() == modelName {
			return n
		}
	}
	return nil
}

// FindNode returns the node with the given name anywhere in the
// graph, nil if not found.
func (w *World) FindNode(name string) *node.Node {
	var found *node.Node
	w.Root.WalkDown(func(n *node.Node) bool {
		if n.Name == name {
			found = n
			return node.Break
		}
		return node.Continue
	})
	return found
}

// Modified state:

// SetModified sets whether the document has unsaved changes.
func (w *World) SetModified(modified bool) {
	w.modified = modified
}

// NeedSaving returns whether the document has unsaved changes.
func (w *World) NeedSaving() bool {
	return w.modified
}

// IsUnnamed returns whether the world has no file name yet.
func (w *World) IsUnnamed() bool {
	return w.FileName == ""
}

// Saving and loading:

// SaveAs writes the world's node graph to the given JSON file and
// records the file name, clearing the modified state on success.
func (w *World) SaveAs(filename string) error {
	if err := node.SaveJSON(w.Root, filename); err != nil {
		return err
	}
	w.FileName = filename
	w.modified = false
	return nil
}

// Save writes the world to its current file name; it is an error if
// the world is unnamed.
func (w *World) Save() error {
	if w.IsUnnamed() {
		return fmt.Errorf("world.World.Save: world is unnamed; use SaveAs")
	}
	return w.SaveAs(w.FileName)
}

// OpenWorld reads a world from the given JSON file. The returned
// world is not finalized; call [World.Finalize] after any further
// construction.
func OpenWorld(filename string) (*World, error) {
	root, err := node.OpenJSON(filename)
	if err != nil {
		return nil, err
	}
	w := NewWorld(root)
	w.FileName = filename
	w.UpdateTopLevelLists()
	return w, nil
}

// Template library:

// AddToLibrary adds the given prototype node graph to the template
// library, keyed by its model name.
func (w *World) AddToLibrary(proto *node.Node) {
	w.Library.Add(proto.Model(), proto)
}

// NewInstance clones the library prototype with the given model name
// into a new node graph, returning an error if the model is not in
// the library. The clone keeps alias links into the prototype's
// declarations, per [node.Node.Clone].
func (w *World) NewInstance(modelName string) (*node.Node, error) {
	proto, ok := w.Library.ValueByKeyTry(modelName)
	if !ok {
		return nil, fmt.Errorf("world.World.NewInstance: library model %q not found", modelName)
	}
	return proto.Clone(), nil
}
