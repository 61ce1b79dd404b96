// Copyright ©2021 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"io"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/kortschak/proisoform/internal/config"
	"github.com/kortschak/proisoform/internal/load"
)

// cli holds the state shared by the proisoform commands.
type cli struct {
	logger *log.Logger

	configPath string

	// Flag overrides for the loaded
	// configuration, applied if not empty.
	vocabulary  string
	annotation  string
	diagnostics string
	markers     string
	reference   string
	taxon       string
}

func newCLI(w io.Writer) *cli {
	return &cli{
		logger: log.NewWithOptions(w, log.Options{
			ReportTimestamp: true,
			TimeFormat:      "15:04:05.00",
			Level:           log.InfoLevel,
		}),
	}
}

func (c *cli) rootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "proisoform",
		Short: "Load PRO isoform terms into MGI vocabulary and annotation files",
		Long: `proisoform loads Protein Ontology (PRO) isoform and modified form terms
into MGI vocabulary and annotation load files, associating each term
restricted to the target organism with the MGI marker of its gene.

Configuration is read from the optional --config TOML file and from the
OBO1FILE, OBO2FILE, GPIFILE, INFILE_NAME_VOC, ANNOTINPUTFILE, COMPLEXFILE,
DIAGFILE, MARKERFILE, JNUMBER, PROISOFORMLOAD, LOADDATE and TAXON
environment variables. Arguments and flags override both.`,
		SilenceUsage: true,
	}

	f := root.PersistentFlags()
	f.StringVar(&c.configPath, "config", "", "specify the configuration file (.toml)")
	f.StringVar(&c.vocabulary, "vocab", "", "specify the vocabulary output")
	f.StringVar(&c.annotation, "annot", "", "specify the annotation output")
	f.StringVar(&c.diagnostics, "diag", "", "specify the diagnostics output")
	f.StringVar(&c.markers, "markers", "", "specify the MGI marker store (.nt/.nt.gz)")
	f.StringVar(&c.reference, "ref", "", "specify the annotation reference J: number")
	f.StringVar(&c.taxon, "taxon", "", "specify the NCBI taxon ID of the target organism")

	root.AddCommand(c.ontologyCommand())
	root.AddCommand(c.tableCommand())

	return root
}

func (c *cli) ontologyCommand() *cobra.Command {
	var dot string
	cmd := &cobra.Command{
		Use:   "ontology [sources...]",
		Short: "Load terms from PRO OBO files",
		Long: `Load terms from PRO OBO files, plain or gzip compressed.

Sources are merged in order, so a monthly release may be followed by an
incremental release. Terms are associated with the marker given by their
own has_gene_template relationship, or the nearest ancestor's, or failing
that the first marker of a term derived from them.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := c.config()
			if err != nil {
				return err
			}
			if len(args) != 0 {
				cfg.Sources = args
			}
			s, err := load.Ontology(cfg, logger, load.OntologyOptions{DOT: dot})
			if err != nil {
				return err
			}
			logSummary(logger, s)
			return nil
		},
	}
	cmd.Flags().StringVar(&dot, "dot", "", "specify an output for the term graph in DOT format")
	return cmd
}

func (c *cli) tableCommand() *cobra.Command {
	var complexes string
	cmd := &cobra.Command{
		Use:   "table [table]",
		Short: "Load terms from a PRO gene product information table",
		Long: `Load terms from a PRO gene product information (GPI) table, plain or
gzip compressed.

Markers are taken from the table's marker column or, when a marker store
is given, joined from the row's UniProtKB cross references. Rows that join
to more than one marker are written to the diagnostics output.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := c.config()
			if err != nil {
				return err
			}
			if len(args) != 0 {
				cfg.Table = args[0]
			}
			if complexes != "" {
				cfg.Complex = complexes
			}
			s, err := load.Table(cfg, logger)
			if err != nil {
				return err
			}
			logSummary(logger, s)
			return nil
		},
	}
	cmd.Flags().StringVar(&complexes, "complex", "", "specify the output for complexes without a marker")
	return cmd
}

// config returns the configuration for a run with flag overrides
// applied, and a logger labelled with a new run ID.
func (c *cli) config() (*config.Config, *log.Logger, error) {
	cfg, err := config.Load(c.configPath)
	if err != nil {
		return nil, nil, err
	}
	for _, o := range []struct {
		flag string
		dst  *string
	}{
		{flag: c.vocabulary, dst: &cfg.Vocabulary},
		{flag: c.annotation, dst: &cfg.Annotation},
		{flag: c.diagnostics, dst: &cfg.Diagnostics},
		{flag: c.markers, dst: &cfg.Markers},
		{flag: c.reference, dst: &cfg.Reference},
		{flag: c.taxon, dst: &cfg.Taxon},
	} {
		if o.flag != "" {
			*o.dst = o.flag
		}
	}
	logger := c.logger.With("run", uuid.NewString())
	logger.Debug("configuration", "config", cfg)
	return cfg, logger, nil
}

func logSummary(logger *log.Logger, s *load.Summary) {
	logger.Info("load complete", "terms", s.Terms, "emitted", s.Emitted, "unresolved", s.Unresolved, "rejected", s.Rejected)
}
