// Copyright ©2021 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package load

import (
	"fmt"
	"io"

	"github.com/charmbracelet/log"

	"github.com/kortschak/proisoform/internal/config"
	"github.com/kortschak/proisoform/internal/loadfile"
	"github.com/kortschak/proisoform/internal/pro"
)

// OntologyOptions holds optional behaviour for an ontology load.
type OntologyOptions struct {
	// DOT is the path to write the term graph
	// to in DOT format. The graph is replaced
	// with the other outputs. No graph is
	// written if DOT is empty.
	DOT string
}

// Ontology performs a load from the PRO OBO sources in cfg. The sources
// are merged into a single term graph in order and each term targeted
// to the configured organism that can be associated with a marker is
// written to the vocabulary and annotation outputs. Outputs are only
// replaced if the load completes.
func Ontology(cfg *config.Config, logger *log.Logger, opts OntologyOptions) (*Summary, error) {
	err := cfg.ValidateOntology()
	if err != nil {
		return nil, err
	}
	sources, err := openAll(cfg.Sources)
	if err != nil {
		return nil, fmt.Errorf("failed to open ontology: %w", err)
	}
	defer closeAll(sources)

	r, err := newRun(cfg, logger)
	if err != nil {
		return nil, err
	}
	defer r.outs.Discard()

	var dot io.Writer
	if opts.DOT != "" {
		dot, err = r.outs.Create(opts.DOT)
		if err != nil {
			return nil, err
		}
	}

	g := pro.NewGraph()
	b := pro.NewBuilder(g)
	b.Taxon = cfg.Taxon
	for i, src := range sources {
		logger.Info("loading ontology", "source", cfg.Sources[i])
		err = b.Build(src)
		if err != nil {
			return nil, fmt.Errorf("failed to load ontology %s: %w", cfg.Sources[i], err)
		}
	}
	logger.Info("built term graph", "stanzas", b.Stats.Stanzas, "added", b.Stats.Added, "discarded", b.Stats.Discarded, "terms", g.Len())

	for _, c := range pro.CyclicComponents(g) {
		logger.Warn("cyclic parent relationship", "terms", c)
	}
	if dot != nil {
		logger.Info("writing term graph", "path", opts.DOT)
		data, err := pro.MarshalDOT(g, "proisoform")
		if err != nil {
			return nil, err
		}
		_, err = dot.Write(data)
		if err != nil {
			return nil, err
		}
	}

	logger.Info("resolving markers")
	err = r.resolveTerms(g)
	if err != nil {
		return nil, err
	}
	logger.Info("resolved markers", "terms", r.summary.Terms, "emitted", r.summary.Emitted, "unresolved", r.summary.Unresolved, "rejected", r.summary.Rejected)

	err = r.commit()
	if err != nil {
		return nil, err
	}
	return &r.summary, nil
}

// resolveTerms writes vocabulary and annotation rows for each emittable
// term in g that has a resolvable marker.
func (r *run) resolveTerms(g *pro.Graph) error {
	res := pro.NewResolver(g)
	for _, t := range g.Terms() {
		if !t.Emittable() {
			continue
		}
		r.summary.Terms++

		m := res.Resolve(t)
		if len(m) == 0 {
			r.logger.Debug("no marker", "term", t.ID)
			r.summary.Unresolved++
			continue
		}
		if !r.knownMarker(t.ID, m[0]) {
			continue
		}

		var xref string
		if len(t.Xrefs) != 0 {
			xref = t.Xrefs[0]
		}
		err := r.emit(
			loadfile.VocabularyRow{
				Symbol:   t.Symbol(),
				ID:       t.ID,
				Name:     t.Name,
				Synonyms: t.Synonyms,
			},
			loadfile.AnnotationRow{
				TermID:    t.ID,
				MarkerID:  m[0],
				Reference: r.cfg.Reference,
				Evidence:  loadfile.EvidenceOntology,
				Provider:  r.cfg.Provider,
				Date:      r.cfg.Date,
				Xref:      xref,
			},
		)
		if err != nil {
			return err
		}
	}
	return nil
}
