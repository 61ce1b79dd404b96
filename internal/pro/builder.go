// Copyright ©2021 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package pro

import (
	"bufio"
	"io"
	"strings"
)

// MouseTaxon is the NCBI taxon ID of Mus musculus.
const MouseTaxon = "10090"

// maxLineLength is the longest OBO line accepted by a Builder.
const maxLineLength = 16 << 20

type state int

const (
	outsideTerm state = iota
	inTerm
)

// Builder builds a PRO term graph from OBO files. A Builder may be
// used to read a sequence of OBO sources, each of which is merged into
// the same destination graph in the order they are read.
type Builder struct {
	// Graph is the destination graph.
	Graph *Graph

	// Taxon is the NCBI taxon ID of the target
	// organism, with or without a prefix. If
	// Taxon is empty, MouseTaxon is used.
	Taxon string

	// Stats holds the stanza counts for all
	// the sources read by the Builder.
	Stats BuildStats

	state state
	curr  block
}

// BuildStats holds counts of processed term stanzas.
type BuildStats struct {
	// Stanzas is the number of [Term] stanzas seen.
	Stanzas int
	// Added is the number of stanzas finalized into
	// the graph and Discarded is the number that
	// were not.
	Added, Discarded int
}

// block is the state of the term stanza being read.
type block struct {
	term *Term

	// found is set when an identifier line has been
	// read and related when a qualifying relationship
	// has been read.
	found   bool
	related bool

	// ignoreRest marks that the remaining lines of
	// the stanza are ignored.
	ignoreRest bool
}

// NewBuilder returns a Builder that adds terms to g.
func NewBuilder(g *Graph) *Builder {
	return &Builder{Graph: g, Taxon: MouseTaxon}
}

// Build reads OBO data from r, adding terms to the Builder's graph.
// A stanza not terminated by a blank line before the end of r is
// finalized as if it were.
func (b *Builder) Build(r io.Reader) error {
	if b.Graph == nil {
		b.Graph = NewGraph()
	}
	sc := bufio.NewScanner(r)
	sc.Buffer(nil, maxLineLength)
	b.state = outsideTerm
	for sc.Scan() {
		b.line(strings.TrimSpace(sc.Text()))
	}
	if b.state == inTerm {
		b.finalize()
	}
	return sc.Err()
}

func (b *Builder) line(line string) {
	switch {
	case strings.HasPrefix(line, "["):
		if b.state == inTerm {
			b.finalize()
		}
		if strings.HasPrefix(line, "[Term]") {
			b.start()
		}
		return
	case b.state == outsideTerm:
		return
	case line == "":
		b.finalize()
		return
	}

	if b.curr.ignoreRest {
		return
	}
	for _, r := range rules {
		if !r.match(b, line) {
			continue
		}
		if b.curr.found || r.name == "id" {
			r.apply(b, line)
		}
		return
	}
}

func (b *Builder) start() {
	b.state = inTerm
	b.curr = block{}
	b.Stats.Stanzas++
}

// finalize adds the current stanza's term to the graph if it has an
// identifier that is not a structural root and at least one qualifying
// relationship.
func (b *Builder) finalize() {
	b.state = outsideTerm
	curr := b.curr
	b.curr = block{}
	if !curr.found || !curr.related || isStructuralRoot(curr.term.ID) {
		b.Stats.Discarded++
		return
	}
	b.Graph.define(curr.term)
	b.Stats.Added++
}

// setID starts collecting fields for the term with the given ID. The
// fields are merged into any existing term with the same ID when the
// stanza is finalized.
func (b *Builder) setID(id string) {
	t := NewTerm(id)
	if base, variant, ok := strings.Cut(id, "-"); ok && !strings.Contains(variant, "-") {
		t.addParent(base)
	}
	b.curr.term = t
	b.curr.found = true
}

// relateTo adds parent as a parent of the current term unless it is
// a structural root.
func (b *Builder) relateTo(parent string) {
	if isStructuralRoot(parent) {
		return
	}
	b.curr.term.addParent(parent)
	b.curr.related = true
}

// markWith associates the current term with the marker and propagates
// the association to each of the term's current parents.
func (b *Builder) markWith(marker string) {
	t := b.curr.term
	t.addMarker(marker)
	for _, p := range t.Parents {
		b.Graph.GetOrCreate(p).addMarker(marker)
	}
	b.curr.related = true
}

// taxon returns the numeric NCBI taxon ID of the target organism.
// The Builder's Taxon may be given as 10090, NCBITaxon:10090 or
// taxon:10090.
func (b *Builder) taxon() string {
	taxon := b.Taxon
	if i := strings.LastIndexByte(taxon, ':'); i >= 0 {
		taxon = taxon[i+1:]
	}
	if taxon == "" {
		return MouseTaxon
	}
	return taxon
}
