// Copyright ©2021 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// prolinks builds an MGI marker store for proisoform from the MGI
// MRK_SwissProt_TrEMBL.rpt report.
package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/charmbracelet/log"
	"gonum.org/v1/gonum/graph/formats/rdf"

	"github.com/kortschak/gogo"

	"github.com/kortschak/proisoform/internal/loadfile"
	"github.com/kortschak/proisoform/internal/markers"
)

func main() {
	var (
		report = flag.String("report", "", "specify the MGI marker to UniProt report (.rpt/.rpt.gz - required)")
		help   = flag.Bool("help", false, "print help text")
	)

	flag.Parse()

	if *help {
		flag.Usage()
		fmt.Fprintf(os.Stderr, `
%s builds an MGI marker store from the MGI MRK_SwissProt_TrEMBL.rpt
report. It outputs the store as RDF triples in the form:

 <mgi:97490> <rdf:type> <local:marker> .
 <uniprot:P12345> <local:encodedBy> <mgi:97490> .

for each official marker and each UniProt accession of its products.
Withdrawn markers are omitted.

The report can be obtained from
https://www.informatics.jax.org/downloads/reports/MRK_SwissProt_TrEMBL.rpt.

The input may be gzip compressed and the output is written uncompressed
to standard output.

`, filepath.Base(os.Args[0]))
		os.Exit(0)
	}

	if *report == "" {
		flag.Usage()
		os.Exit(2)
	}

	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
	})

	f, err := loadfile.Open(*report)
	if err != nil {
		logger.Fatal("failed to open report", "err", err)
	}
	defer f.Close()

	g, err := readReport(f)
	if err != nil {
		logger.Fatal("failed to read report", "err", err)
	}
	err = writeStore(os.Stdout, g)
	if err != nil {
		logger.Fatal("failed to write store", "err", err)
	}
}

// Report columns.
const (
	accessionCol = 0
	statusCol    = 2
	minCols      = 3
)

// official is the status of a current MGI marker.
const official = "O"

// readReport returns a graph holding the marker and encodedBy statements
// described by the report in r. The UniProt accessions of a marker are
// space-separated in the last column of its row.
func readReport(r io.Reader) (*gogo.Graph, error) {
	c := csv.NewReader(r)
	c.Comma = '\t'
	c.FieldsPerRecord = -1
	c.LazyQuotes = true

	g := gogo.NewGraph()
	for {
		rec, err := c.Read()
		if err != nil {
			if err == io.EOF {
				break
			}
			return nil, err
		}
		if len(rec) < minCols || !strings.HasPrefix(rec[accessionCol], "MGI:") || rec[statusCol] != official {
			continue
		}

		marker := rdf.Term{Value: markers.MarkerTerm(rec[accessionCol])}
		g.AddStatement(&rdf.Statement{
			Subject:   marker,
			Predicate: rdf.Term{Value: markers.TypePredicate},
			Object:    rdf.Term{Value: markers.MarkerType},
		})
		if len(rec) <= minCols {
			continue
		}
		for _, acc := range strings.Fields(rec[len(rec)-1]) {
			g.AddStatement(&rdf.Statement{
				Subject:   rdf.Term{Value: markers.ProductTerm(acc)},
				Predicate: rdf.Term{Value: markers.EncodedByPredicate},
				Object:    marker,
			})
		}
	}
	return g, nil
}

// writeStore writes the marker store held in g to w in N-Triples,
// ordered by marker.
func writeStore(w io.Writer, g *gogo.Graph) error {
	var marked []rdf.Term
	nodes := g.Nodes()
	for nodes.Next() {
		t := nodes.Node().(rdf.Term)
		if strings.HasPrefix(t.Value, "<mgi:") {
			marked = append(marked, t)
		}
	}
	sort.Slice(marked, func(i, j int) bool { return marked[i].Value < marked[j].Value })

	for _, m := range marked {
		_, err := fmt.Fprintln(w, &rdf.Statement{
			Subject:   rdf.Term{Value: m.Value},
			Predicate: rdf.Term{Value: markers.TypePredicate},
			Object:    rdf.Term{Value: markers.MarkerType},
		})
		if err != nil {
			return err
		}

		// Reports may list an accession more than once
		// for a marker, so ensure statement uniqueness.
		products := g.Query(m).In(func(s *rdf.Statement) bool {
			return s.Predicate.Value == markers.EncodedByPredicate
		}).Unique().Result()
		sort.Slice(products, func(i, j int) bool { return products[i].Value < products[j].Value })
		for _, p := range products {
			_, err = fmt.Fprintln(w, &rdf.Statement{
				Subject:   rdf.Term{Value: p.Value},
				Predicate: rdf.Term{Value: markers.EncodedByPredicate},
				Object:    rdf.Term{Value: m.Value},
			})
			if err != nil {
				return err
			}
		}
	}
	return nil
}
