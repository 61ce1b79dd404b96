// Copyright ©2021 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package gpi implements reading PRO gene product information tables.
//
// A table is tab-delimited with the columns:
//
//	DB  DB_Object_ID  Symbol  Name  Synonyms  Type  Taxon  [Marker  [Xrefs]]
//
// Synonyms and Xrefs are pipe-separated lists. Lines starting with '!'
// are comments.
package gpi

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
)

// minColumns is the number of required columns in a table row.
const minColumns = 7

// ErrTooFewColumns is returned by Reader.Read for rows with fewer than the
// seven required columns. The Reader may continue to be used after this
// error is returned.
var ErrTooFewColumns = errors.New("too few columns")

// Record is a gene product information table row.
type Record struct {
	// ID is the gene product's accession, DB:DB_Object_ID.
	ID string

	Symbol   string
	Name     string
	Synonyms []string
	Type     string
	Taxon    string

	// Marker is the MGI accession of the gene product's
	// marker if it is given in the table.
	Marker string

	Xrefs []string
}

// IsComplex returns whether the record describes a protein complex.
func (r Record) IsComplex() bool {
	return r.Type == "protein_complex" || r.Type == "GO:0032991"
}

// InTaxon returns whether the record is for the organism with the given
// NCBI taxon ID.
func (r Record) InTaxon(taxon string) bool {
	return TaxonID(r.Taxon) == TaxonID(taxon)
}

// TaxonID returns the numeric part of an NCBI taxon reference in the
// forms taxon:10090, NCBITaxon:10090 or 10090.
func TaxonID(taxon string) string {
	if i := strings.LastIndexByte(taxon, ':'); i >= 0 {
		return taxon[i+1:]
	}
	return taxon
}

// Reader reads Records from a gene product information table.
type Reader struct {
	r    *csv.Reader
	line int
}

// NewReader returns a new Reader reading from r.
func NewReader(r io.Reader) *Reader {
	c := csv.NewReader(r)
	c.Comma = '\t'
	c.Comment = '!'
	c.FieldsPerRecord = -1
	c.LazyQuotes = true
	return &Reader{r: c}
}

// Read returns the next record in the table. At the end of the table,
// Read returns io.EOF.
func (r *Reader) Read() (Record, error) {
	fields, err := r.r.Read()
	if err != nil {
		return Record{}, err
	}
	r.line, _ = r.r.FieldPos(0)
	if len(fields) < minColumns {
		return Record{}, fmt.Errorf("gpi: line %d: %w: %d < %d", r.line, ErrTooFewColumns, len(fields), minColumns)
	}
	rec := Record{
		ID:       fields[0] + ":" + fields[1],
		Symbol:   fields[2],
		Name:     fields[3],
		Synonyms: list(fields[4]),
		Type:     fields[5],
		Taxon:    fields[6],
	}
	if len(fields) > 7 {
		rec.Marker = normalizeMarker(fields[7])
	}
	if len(fields) > 8 {
		rec.Xrefs = list(fields[8])
	}
	return rec, nil
}

// Line returns the line number of the last record read.
func (r *Reader) Line() int {
	return r.line
}

func list(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(s, "|")
}

// normalizeMarker returns the MGI accession in s, which may be in the
// form MGI:MGI:97490 or MGI:97490. If s is not an MGI accession, the
// empty string is returned.
func normalizeMarker(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "MGI:") {
		return ""
	}
	id := strings.TrimPrefix(strings.TrimPrefix(s, "MGI:"), "MGI:")
	if id == "" {
		return ""
	}
	return "MGI:" + id
}
