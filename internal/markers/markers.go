// Copyright ©2021 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package markers provides an MGI marker accession store built from RDF
// N-Triples statements in the form:
//
//	<mgi:97490> <rdf:type> <local:marker> .
//	<uniprot:P12345> <local:encodedBy> <mgi:97490> .
//
// as written by the prolinks command.
package markers

import (
	"io"
	"sort"
	"strings"

	"gonum.org/v1/gonum/graph/formats/rdf"

	"github.com/kortschak/gogo"
)

// Predicates and objects used by the store.
const (
	TypePredicate      = "<rdf:type>"
	MarkerType         = "<local:marker>"
	EncodedByPredicate = "<local:encodedBy>"
)

// MarkerTerm returns the RDF IRI text for an MGI accession, MGI:97490.
func MarkerTerm(id string) string {
	return "<mgi:" + strings.TrimPrefix(id, "MGI:") + ">"
}

// ProductTerm returns the RDF IRI text for a UniProtKB accession,
// UniProtKB:P12345.
func ProductTerm(id string) string {
	return "<uniprot:" + strings.TrimPrefix(id, "UniProtKB:") + ">"
}

// markerID returns the MGI accession for a marker IRI.
func markerID(iri string) string {
	return "MGI:" + strings.TrimSuffix(strings.TrimPrefix(iri, "<mgi:"), ">")
}

// Store is an MGI marker accession store.
type Store struct {
	g *gogo.Graph
}

// Load returns a Store holding the marker and gene product statements
// in the N-Triples stream r. Statements with other predicates are ignored.
func Load(r io.Reader) (*Store, error) {
	g := gogo.NewGraph()
	dec := rdf.NewDecoder(r)
	for {
		s, err := dec.Unmarshal()
		if err != nil {
			if err == io.EOF {
				break
			}
			return nil, err
		}

		switch s.Predicate.Value {
		case TypePredicate:
			if s.Object.Value != MarkerType {
				continue
			}
		case EncodedByPredicate:
		default:
			continue
		}

		s.Subject.UID = 0
		s.Predicate.UID = 0
		s.Object.UID = 0
		g.AddStatement(s)
	}
	return &Store{g: g}, nil
}

// HasMarker returns whether the MGI accession is a known marker.
func (s *Store) HasMarker(id string) bool {
	t, ok := s.g.TermFor(MarkerTerm(id))
	if !ok {
		return false
	}
	types := s.g.Query(t).Out(func(s *rdf.Statement) bool {
		return s.Predicate.Value == TypePredicate && s.Object.Value == MarkerType
	}).Result()
	return len(types) != 0
}

// MarkersFor returns the sorted MGI accessions of the markers encoding
// the gene product with the given UniProtKB accession.
func (s *Store) MarkersFor(xref string) []string {
	t, ok := s.g.TermFor(ProductTerm(xref))
	if !ok {
		return nil
	}
	terms := s.g.Query(t).Out(func(s *rdf.Statement) bool {
		return s.Predicate.Value == EncodedByPredicate
	}).Unique().Result()
	if len(terms) == 0 {
		return nil
	}
	ids := make([]string, len(terms))
	for i, m := range terms {
		ids[i] = markerID(m.Value)
	}
	sort.Strings(ids)
	return ids
}
