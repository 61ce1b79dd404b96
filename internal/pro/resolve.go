// Copyright ©2021 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package pro

// ReverseIndex maps parent term IDs to the markers of their children.
// It is used to find markers for parents that are referenced but are
// not present in the graph.
type ReverseIndex map[string][]string

// NewReverseIndex returns the reverse marker index for g. For each term
// with a marker, the term's first marker is registered against each of
// the term's parents.
func NewReverseIndex(g *Graph) ReverseIndex {
	idx := make(ReverseIndex)
	for _, t := range g.Terms() {
		if len(t.Markers) == 0 {
			continue
		}
		for _, p := range t.Parents {
			idx[p] = appendUnique(idx[p], t.Markers[0])
		}
	}
	return idx
}

// Resolver finds the markers associated with terms in a graph, either
// directly or through the term's ancestors.
type Resolver struct {
	graph *Graph
	index ReverseIndex

	// memo holds resolutions that did not
	// depend on the cycle guard.
	memo map[string][]string
}

// NewResolver returns a Resolver for the terms in g. The graph must not
// be altered after the Resolver has been created.
func NewResolver(g *Graph) *Resolver {
	return &Resolver{
		graph: g,
		index: NewReverseIndex(g),
		memo:  make(map[string][]string),
	}
}

// Index returns the reverse marker index used by r.
func (r *Resolver) Index() ReverseIndex {
	return r.index
}

// Resolve returns the markers associated with t. If t has markers, they
// are returned. Otherwise t's parents are searched depth-first in order
// and the markers of the first parent that resolves are returned. A parent
// absent from the graph resolves through the reverse marker index. Cycles
// in the graph are broken by treating a term already on the search path
// as having no markers.
func (r *Resolver) Resolve(t *Term) []string {
	markers, _ := r.resolve(t, make(map[string]bool))
	return markers
}

// resolve returns the markers for t and whether the search was cut
// short by the visited guard.
func (r *Resolver) resolve(t *Term, visited map[string]bool) (markers []string, cut bool) {
	if len(t.Markers) != 0 {
		return t.Markers, false
	}
	if m, ok := r.memo[t.ID]; ok {
		return m, false
	}
	if visited[t.ID] {
		return nil, true
	}
	visited[t.ID] = true

	for _, id := range t.Parents {
		p, ok := r.graph.Term(id)
		if !ok {
			if m, ok := r.index[id]; ok {
				markers = m
				break
			}
			continue
		}
		m, c := r.resolve(p, visited)
		cut = cut || c
		if len(m) != 0 {
			markers = m
			break
		}
	}
	if !cut {
		r.memo[t.ID] = markers
	}
	return markers, cut
}
