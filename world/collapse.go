// Copyright (c) 2026, Worldkit Developers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package world

import (
	"fmt"
	"log/slog"

	"worldkit.dev/core/base/errors"
	"worldkit.dev/core/node"
)

// ErrStructuralInconsistency indicates that the input graph violated
// the collapse pass's assumptions: a model or field-count mismatch
// between a proto parameter node and its counterpart, a collapsable
// node whose parent is not a nested-template root, or a failed
// post-condition check. The pass aborts on it; a half-collapsed graph
// is unsafe to save, render, or edit.
var ErrStructuralInconsistency = errors.New("world: structural inconsistency")

// Collapse simplifies the node graph by removing proto-parameter
// chains that are not visible from outside their defining template,
// while preserving the net aliasing effect of the removed hops.
// It runs single-threaded to completion; the caller must guarantee
// that nothing else mutates the graph during the pass.
//
// The pass proceeds in strict order: classify all nodes on a stable
// snapshot, swap the alias links of every direct instance of a
// collapsable node, clear the stale alias backlinks of the collapsable
// nodes, delete the collapsable nodes bottom-up, and verify the
// post-conditions. Reordering these steps loses aliases or dereferences
// deleted nodes. The pass is exhaustive in one execution: a second run
// on the same graph finds nothing to collapse.
func (w *World) Collapse() error {
	// classify on a stable snapshot
	nodes := w.Root.SubNodes(true)
	var collapsable []*node.Node
	inCollapsable := map[*node.Node]bool{}
	for _, n := range nodes {
		if w.IsCollapsibleProtoParameterChain(n) {
			collapsable = append(collapsable, n)
			inCollapsable[n] = true
		}
	}
	var instances []*node.Node
	for _, n := range nodes {
		if p := n.ProtoParameterNode(); p != nil && inCollapsable[p] {
			instances = append(instances, n)
		}
	}
	if Trace {
		slog.Info("world.Collapse: classified", "nodes", len(nodes), "collapsable", len(collapsable), "instances", len(instances))
		for _, c := range collapsable {
			w.traceInstanceChain(c, 0)
		}
	}

	// swap: re-point each instance's aliases past its collapsable
	// counterpart, then drop the now redundant hop
	for _, inst := range instances {
		c := inst.ProtoParameterNode()
		if err := inst.CheckCounterpart(c); err != nil {
			return fmt.Errorf("%w: swapping %s against %s: %v", ErrStructuralInconsistency, inst, c, err)
		}
		if Trace {
			slog.Info("world.Collapse: swapping aliases", "instance", inst.String(), "counterpart", c.String())
		}
		if err := node.SwapParameters(inst.Fields(), c.Fields()); err != nil {
			return fmt.Errorf("%w: %v", ErrStructuralInconsistency, err)
		}
		inst.SetProtoParameterNode(nil)
	}

	// clear stale internal-field backlinks before deletion; doing this
	// after the swap keeps the re-pointed aliases intact, and doing it
	// before deletion keeps teardown from severing them
	for i := len(collapsable) - 1; i >= 0; i-- {
		fields := collapsable[i].Fields()
		for j := len(fields) - 1; j >= 0; j-- {
			fields[j].ClearInternalFields()
		}
	}

	// delete bottom-up: descendants before ancestors
	for i := len(collapsable) - 1; i >= 0; i-- {
		c := collapsable[i]
		if c.IsDestroyed() { // removed along with an earlier sibling's parameter
			continue
		}
		parent := c.Parent()
		if parent == nil || !parent.IsNestedProtoNode() {
			return fmt.Errorf("%w: collapsable node %s has parent %s that is not a nested-template root", ErrStructuralInconsistency, c, parent)
		}
		w.deleteCollapsed(parent, c)
	}

	return w.checkCollapsed()
}

// deleteCollapsed removes the collapsed node c from its nested-proto
// parent: any parameter field whose value references c is deleted
// along with it. Ordinary fields are only inspected for tracing; their
// contents are owned by normal child removal, not by this pass.
func (w *World) deleteCollapsed(parent, c *node.Node) {
	if Trace {
		for _, f := range parent.Fields() {
			if !f.Type().IsNode() {
				continue
			}
			for _, cn := range nodesOf(f) {
				if cn == c {
					slog.Info("world.Collapse: field references collapsed node", "field", f.String(), "node", c.String())
				}
			}
		}
	}
	params := parent.Parameters()
	for j := len(params) - 1; j >= 0; j-- {
		p := params[j]
		if !p.Type().IsNode() {
			continue
		}
		for _, cn := range nodesOf(p) {
			if cn == c {
				if Trace {
					slog.Info("world.Collapse: deleting parameter", "parameter", p.String(), "node", c.String())
				}
				parent.DeleteParameter(p)
				break
			}
		}
	}
	if !c.IsDestroyed() {
		c.Destroy()
	}
}

// nodesOf returns the node references in the field's own stored value.
func nodesOf(f *node.Field) []*node.Node {
	switch v := f.OwnValue().(type) {
	case *node.NodeValue:
		if v.Node != nil {
			return []*node.Node{v.Node}
		}
	case *node.NodeList:
		return v.Nodes
	}
	return nil
}

// checkCollapsed verifies the post-conditions of the collapse pass on
// the remaining graph: proto parameter chains are acyclic and lead
// only to live nodes, and no collapsible node remains. A violation is
// a defect in the pass or its input, not a signal to re-run.
func (w *World) checkCollapsed() error {
	remaining := w.Root.SubNodes(true)
	for _, n := range remaining {
		seen := map[*node.Node]bool{n: true}
		for p := n.ProtoParameterNode(); p != nil; p = p.ProtoParameterNode() {
			if p.IsDestroyed() {
				return fmt.Errorf("%w: node %s has a proto parameter chain through deleted node %s", ErrStructuralInconsistency, n, p)
			}
			if seen[p] {
				return fmt.Errorf("%w: node %s has a cyclic proto parameter chain", ErrStructuralInconsistency, n)
			}
			seen[p] = true
		}
		if w.IsCollapsibleProtoParameterChain(n) {
			return fmt.Errorf("%w: node %s remains collapsible after the pass", ErrStructuralInconsistency, n)
		}
	}
	return nil
}

// Chain classification:

// IsParameterChainExposed walks the proto parameter chain upward from
// the given node and reports whether the node is an exposed part of a
// chain: false for the chain's original root (depth 0, the
// authoritative template-parameter declaration) and for nodes the
// visibility oracle marks visible, true otherwise.
//
// Note that the recursive walk over the parent link deliberately
// discards its result: only the immediate node's own depth and
// visibility decide the outcome. This matches the observed behavior
// of the original rule and is pinned by tests; do not "fix" it.
func (w *World) IsParameterChainExposed(n *node.Node) bool {
	return w.isParameterChainExposed(n, 0)
}

func (w *World) isParameterChainExposed(n *node.Node, depth int) bool {
	if n != nil && n.ProtoParameterNode() != nil {
		w.isParameterChainExposed(n.ProtoParameterNode(), depth+1) // result intentionally unused, see doc
	}
	if depth == 0 || w.Visibility.IsNodeVisible(n) {
		return false
	}
	return true
}

// IsCollapsibleProtoParameterChain reports whether the given node is
// the collapsible top of a proto parameter chain: it is not visible,
// it is a proto parameter node, it has no further proto parameter
// link, and none of its own fields is individually visible. A single
// visible field is enough to keep the whole node: the exposure must
// be preserved.
func (w *World) IsCollapsibleProtoParameterChain(n *node.Node) bool {
	if n == nil || n.Parent() == nil {
		return false
	}
	if w.Visibility.IsNodeVisible(n) || !n.IsProtoParameterNode() || n.ProtoParameterNode() != nil {
		return false
	}
	for _, f := range n.Fields() {
		if w.Visibility.IsFieldVisible(f) {
			if Trace {
				slog.Info("world.Collapse: field is visible, keeping node", "field", f.String(), "node", n.String())
			}
			return false
		}
	}
	return true
}

// traceInstanceChain logs the instance chain below the given node.
func (w *World) traceInstanceChain(n *node.Node, depth int) {
	insts := n.ProtoParameterNodeInstances()
	slog.Info("world.Collapse: instance chain", "node", n.String(), "depth", depth, "instances", len(insts))
	for _, in := range insts {
		w.traceInstanceChain(in, depth+1)
	}
}
