// Copyright ©2021 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package pro

// Term is a PRO vocabulary term and the information needed to relate it
// to an MGI marker.
type Term struct {
	// ID is the term's accession, PR:xxxxxxxxx.
	ID string

	// Name is the term's display name and ShortLabel
	// is its PRO short label, which may be empty.
	Name       string
	ShortLabel string

	// Synonyms, Parents, Markers and Xrefs are
	// duplicate-free and held in the order they
	// were first seen.
	Synonyms []string
	Parents  []string
	Markers  []string
	Xrefs    []string

	// InTaxon is true if the term is restricted
	// to the target organism.
	InTaxon bool

	// Include is false if the term is obsolete
	// or is restricted to another organism.
	Include bool

	// defined indicates that the term has been
	// finalized from a term stanza rather than
	// created as a stub parent.
	defined bool
}

// NewTerm returns a new stub term with the given ID.
func NewTerm(id string) *Term {
	return &Term{ID: id, Include: true}
}

// Symbol returns the symbol used for the term in a vocabulary,
// the short label if it exists and the name otherwise.
func (t *Term) Symbol() string {
	if t.ShortLabel != "" {
		return t.ShortLabel
	}
	return t.Name
}

// Defined returns whether the term was defined by a term stanza.
func (t *Term) Defined() bool {
	return t.defined
}

// Emittable returns whether the term may be written to output
// if a marker can be resolved for it.
func (t *Term) Emittable() bool {
	return t.Include && t.InTaxon
}

func (t *Term) addSynonym(s string) { t.Synonyms = appendUnique(t.Synonyms, s) }
func (t *Term) addParent(id string) { t.Parents = appendUnique(t.Parents, id) }
func (t *Term) addMarker(id string) { t.Markers = appendUnique(t.Markers, id) }
func (t *Term) addXref(id string)   { t.Xrefs = appendUnique(t.Xrefs, id) }

// merge merges the fields of src into t. Later sources may add
// to t but may not remove an inclusion made by an earlier stanza.
func (t *Term) merge(src *Term) {
	if src.Name != "" {
		t.Name = src.Name
	}
	if t.ShortLabel == "" {
		t.ShortLabel = src.ShortLabel
	}
	for _, s := range src.Synonyms {
		t.addSynonym(s)
	}
	for _, p := range src.Parents {
		t.addParent(p)
	}
	for _, m := range src.Markers {
		t.addMarker(m)
	}
	for _, x := range src.Xrefs {
		t.addXref(x)
	}
	if t.defined {
		t.InTaxon = t.InTaxon || src.InTaxon
		t.Include = t.Include || src.Include
	} else {
		t.InTaxon = src.InTaxon
		t.Include = src.Include
	}
	t.defined = true
}

func appendUnique(dst []string, s string) []string {
	for _, e := range dst {
		if e == s {
			return dst
		}
	}
	return append(dst, s)
}

// Graph is a PRO term graph. Terms are held in the order they
// were first defined, followed by stub terms in the order they
// were created, so that iteration over the graph is stable.
type Graph struct {
	terms map[string]*Term

	// order holds IDs in creation order and
	// defined holds IDs in definition order.
	order   []string
	defined []string
}

// NewGraph returns a new empty Graph.
func NewGraph() *Graph {
	return &Graph{terms: make(map[string]*Term)}
}

// Term returns the term in g with the given ID.
func (g *Graph) Term(id string) (*Term, bool) {
	t, ok := g.terms[id]
	return t, ok
}

// GetOrCreate returns the term in g with the given ID, adding a new
// stub term if none exists.
func (g *Graph) GetOrCreate(id string) *Term {
	t, ok := g.terms[id]
	if ok {
		return t
	}
	t = NewTerm(id)
	g.terms[id] = t
	g.order = append(g.order, id)
	return t
}

// define merges src into the term in g with the same ID, recording
// when the term is first defined.
func (g *Graph) define(src *Term) {
	t := g.GetOrCreate(src.ID)
	if !t.defined {
		g.defined = append(g.defined, src.ID)
	}
	t.merge(src)
}

// Len returns the number of terms in g.
func (g *Graph) Len() int {
	return len(g.order)
}

// Terms returns all the terms in g. Defined terms are returned
// in definition order followed by stubs in creation order.
func (g *Graph) Terms() []*Term {
	terms := make([]*Term, 0, len(g.order))
	seen := make(map[string]bool, len(g.defined))
	for _, id := range g.defined {
		terms = append(terms, g.terms[id])
		seen[id] = true
	}
	for _, id := range g.order {
		if !seen[id] {
			terms = append(terms, g.terms[id])
		}
	}
	return terms
}
