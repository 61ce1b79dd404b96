// Copyright ©2021 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package pro

import (
	"sort"

	"gonum.org/v1/gonum/graph"
	"gonum.org/v1/gonum/graph/encoding"
	"gonum.org/v1/gonum/graph/encoding/dot"
	"gonum.org/v1/gonum/graph/simple"
	"gonum.org/v1/gonum/graph/topo"
)

// node is a term graph node. The term is nil for parents that
// are referenced but absent from the term graph.
type node struct {
	id   int64
	name string
	term *Term
}

func (n node) ID() int64      { return n.id }
func (n node) DOTID() string  { return n.name }
func (n node) String() string { return n.name }

func (n node) Attributes() []encoding.Attribute {
	switch {
	case n.term == nil:
		return []encoding.Attribute{{Key: "style", Value: "dotted"}}
	case !n.term.Defined():
		return []encoding.Attribute{{Key: "style", Value: "dashed"}}
	case n.term.Emittable():
		return []encoding.Attribute{{Key: "label", Value: n.term.Symbol()}, {Key: "shape", Value: "box"}}
	default:
		return []encoding.Attribute{{Key: "label", Value: n.term.Symbol()}}
	}
}

// directed returns a gonum graph holding the term to parent relationships
// of g. Self edges are not represented in the returned graph and are
// returned separately.
func directed(g *Graph) (dg *simple.DirectedGraph, self []string) {
	dg = simple.NewDirectedGraph()
	ids := make(map[string]int64)
	nodeFor := func(id string) graph.Node {
		uid, ok := ids[id]
		if ok {
			return dg.Node(uid)
		}
		t, _ := g.Term(id)
		n := node{id: int64(len(ids)), name: id, term: t}
		ids[id] = n.id
		dg.AddNode(n)
		return n
	}
	for _, t := range g.Terms() {
		from := nodeFor(t.ID)
		for _, p := range t.Parents {
			if p == t.ID {
				self = append(self, p)
				continue
			}
			dg.SetEdge(dg.NewEdge(from, nodeFor(p)))
		}
	}
	return dg, self
}

// CyclicComponents returns the sets of term IDs in g that are
// connected by parent relationships into cycles. Each set is sorted
// and the sets are ordered by their first element.
func CyclicComponents(g *Graph) [][]string {
	dg, self := directed(g)
	var cycles [][]string
	for _, c := range topo.TarjanSCC(dg) {
		if len(c) < 2 {
			continue
		}
		ids := make([]string, len(c))
		for i, n := range c {
			ids[i] = n.(node).name
		}
		sort.Strings(ids)
		cycles = append(cycles, ids)
	}
	for _, id := range self {
		cycles = append(cycles, []string{id})
	}
	sort.Slice(cycles, func(i, j int) bool { return cycles[i][0] < cycles[j][0] })
	return cycles
}

// MarshalDOT returns a DOT encoding of the term graph g with the
// given graph name. Edges point from terms to their parents.
func MarshalDOT(g *Graph, name string) ([]byte, error) {
	dg, _ := directed(g)
	return dot.Marshal(dg, name, "", "\t")
}
