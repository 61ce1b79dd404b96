// Copyright ©2021 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// proisoform loads Protein Ontology (PRO) isoform and modified form terms
// into MGI vocabulary and annotation load files. Each PRO term restricted
// to the target organism is associated with the MGI marker of its gene,
// either directly through a has_gene_template relationship or through the
// nearest ancestor or descendant that has one.
//
// The ontology subcommand reads one or more PRO OBO files, plain or gzip
// compressed, merging later files into earlier ones. This allows a monthly
// release to be updated by an incremental release. The table subcommand
// reads a PRO gene product information (GPI) table instead, taking markers
// from the table or joining them from UniProtKB cross references.
//
// Configuration is taken from an optional TOML file given with --config
// and from the environment variables
//
//	OBO1FILE, OBO2FILE, GPIFILE, INFILE_NAME_VOC, ANNOTINPUTFILE,
//	COMPLEXFILE, DIAGFILE, MARKERFILE, JNUMBER, PROISOFORMLOAD,
//	LOADDATE and TAXON
//
// which override the file. Command arguments and flags override both.
//
// The optional marker store is expected to be in RDF N-Triples in the form:
//
//	<mgi:97490> <rdf:type> <local:marker> .
//	<uniprot:P12345> <local:encodedBy> <mgi:97490> .
//
// as written by prolinks. When a store is given, annotations to markers
// not in the store are written to the diagnostics output and skipped.
//
// Outputs are replaced only when a load completes.
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

func main() {
	err := run()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	var verbose bool

	c := newCLI(os.Stderr)
	root := c.rootCommand()
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
	root.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		if verbose {
			c.logger.SetLevel(log.DebugLevel)
		}
		return nil
	}

	return root.Execute()
}
