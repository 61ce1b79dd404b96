// Copyright ©2021 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package config holds the configuration for a proisoform load.
//
// Configuration is read from an optional TOML file and may be overridden
// by environment variables:
//
//	OBO1FILE, OBO2FILE  ontology sources, in load order
//	GPIFILE             gene product information table
//	INFILE_NAME_VOC     vocabulary output
//	ANNOTINPUTFILE      annotation output
//	COMPLEXFILE         complex output for GPI loads
//	DIAGFILE            diagnostics output
//	MARKERFILE          MGI marker store in N-Triples
//	JNUMBER             annotation reference
//	PROISOFORMLOAD      load provider, the base name is used
//	LOADDATE            annotation date
//	TAXON               NCBI taxon ID of the target organism
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
)

// DefaultTaxon is the NCBI taxon ID for Mus musculus.
const DefaultTaxon = "10090"

// dateFormat is the annotation date format.
const dateFormat = "01/02/2006"

// Config is a proisoform load configuration.
type Config struct {
	// Sources are the OBO ontology sources, read in order.
	Sources []string `toml:"sources"`

	// Table is the gene product information table.
	Table string `toml:"table"`

	// Output paths.
	Vocabulary  string `toml:"vocabulary"`
	Annotation  string `toml:"annotation"`
	Complex     string `toml:"complex"`
	Diagnostics string `toml:"diagnostics"`

	// Markers is the marker store. If it is empty,
	// no marker existence checks are made.
	Markers string `toml:"markers"`

	// Reference is the annotation J: number.
	Reference string `toml:"reference"`
	// Provider is the annotation editor.
	Provider string `toml:"provider"`
	// Date is the annotation date.
	Date string `toml:"date"`

	// Taxon is the target organism's NCBI taxon ID.
	Taxon string `toml:"taxon"`
}

// Load returns the configuration held in the TOML file at path, with
// environment overrides applied and defaults set. If path is empty,
// only the environment and defaults are used.
func Load(path string) (*Config, error) {
	var cfg Config
	if path != "" {
		_, err := toml.DecodeFile(path, &cfg)
		if err != nil {
			return nil, fmt.Errorf("config: %w", err)
		}
	}
	cfg.applyEnv(os.LookupEnv)
	cfg.setDefaults(time.Now())
	return &cfg, nil
}

func (c *Config) applyEnv(lookup func(string) (string, bool)) {
	var sources []string
	for _, name := range []string{"OBO1FILE", "OBO2FILE"} {
		if v, ok := lookup(name); ok && v != "" {
			sources = append(sources, v)
		}
	}
	if len(sources) != 0 {
		c.Sources = sources
	}
	for name, dst := range map[string]*string{
		"GPIFILE":         &c.Table,
		"INFILE_NAME_VOC": &c.Vocabulary,
		"ANNOTINPUTFILE":  &c.Annotation,
		"COMPLEXFILE":     &c.Complex,
		"DIAGFILE":        &c.Diagnostics,
		"MARKERFILE":      &c.Markers,
		"JNUMBER":         &c.Reference,
		"LOADDATE":        &c.Date,
		"TAXON":           &c.Taxon,
	} {
		if v, ok := lookup(name); ok && v != "" {
			*dst = v
		}
	}
	if v, ok := lookup("PROISOFORMLOAD"); ok && v != "" {
		c.Provider = filepath.Base(v)
	}
}

func (c *Config) setDefaults(now time.Time) {
	if c.Provider == "" {
		c.Provider = "proisoformload"
	}
	if c.Date == "" {
		c.Date = now.Format(dateFormat)
	}
	if c.Taxon == "" {
		c.Taxon = DefaultTaxon
	}
}

// ErrMissing is returned by the validation methods when a required
// setting is absent.
var ErrMissing = errors.New("missing required setting")

// ValidateOntology checks that the configuration is complete for an
// ontology load.
func (c *Config) ValidateOntology() error {
	if len(c.Sources) == 0 {
		return fmt.Errorf("%w: ontology sources", ErrMissing)
	}
	return c.validateOutputs()
}

// ValidateTable checks that the configuration is complete for a gene
// product information table load.
func (c *Config) ValidateTable() error {
	if c.Table == "" {
		return fmt.Errorf("%w: table", ErrMissing)
	}
	return c.validateOutputs()
}

func (c *Config) validateOutputs() error {
	switch {
	case c.Vocabulary == "":
		return fmt.Errorf("%w: vocabulary output", ErrMissing)
	case c.Annotation == "":
		return fmt.Errorf("%w: annotation output", ErrMissing)
	case c.Reference == "":
		return fmt.Errorf("%w: reference", ErrMissing)
	}
	return nil
}
