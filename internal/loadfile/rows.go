// Copyright ©2021 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package loadfile

import (
	"fmt"
	"io"
	"strings"
)

// Evidence codes for annotations. Annotations derived from the ontology
// are electronic inferences while those from GPI tables are taken as
// curated statements.
const (
	EvidenceOntology = "IEA"
	EvidenceTable    = "TAS"
)

// externalRef is the annotation property prefix for a UniProtKB reference.
const externalRef = "external ref&=&"

// VocabularyRow is a vocabulary load file row.
type VocabularyRow struct {
	Symbol   string
	ID       string
	Name     string
	Synonyms []string
}

// WriteTo writes the row to w in the form:
//
//	symbol	id	current		name		synonym|synonym
func (r VocabularyRow) WriteTo(w io.Writer) (int64, error) {
	n, err := fmt.Fprintf(w, "%s\t%s\tcurrent\t\t%s\t\t%s\t\n",
		r.Symbol, r.ID, r.Name, strings.Join(r.Synonyms, "|"))
	return int64(n), err
}

// AnnotationRow is an annotation load file row.
type AnnotationRow struct {
	TermID    string
	MarkerID  string
	Reference string
	Evidence  string
	Provider  string
	Date      string

	// Xref is the external reference placed in
	// the annotation's properties if not empty.
	Xref string
}

// WriteTo writes the row to w in the form:
//
//	term	marker	J:	evidence			provider	date			external ref&=&xref
func (r AnnotationRow) WriteTo(w io.Writer) (int64, error) {
	var property string
	if r.Xref != "" {
		property = externalRef + r.Xref
	}
	n, err := fmt.Fprintf(w, "%s\t%s\t%s\t%s\t\t\t%s\t%s\t\t\t%s\n",
		r.TermID, r.MarkerID, r.Reference, r.Evidence, r.Provider, r.Date, property)
	return int64(n), err
}

// ComplexRow is a record for a complex that has no marker, held for
// conversion to OBO by downstream processing.
type ComplexRow struct {
	ID       string
	Symbol   string
	Name     string
	Synonyms []string
	Type     string
	Taxon    string
}

// WriteTo writes the row to w as six tab-separated columns.
func (r ComplexRow) WriteTo(w io.Writer) (int64, error) {
	n, err := fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
		r.ID, r.Symbol, r.Name, strings.Join(r.Synonyms, "|"), r.Type, r.Taxon)
	return int64(n), err
}
