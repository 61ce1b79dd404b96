// Copyright ©2021 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package load

import (
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/kortschak/proisoform/internal/config"
	"github.com/kortschak/proisoform/internal/gpi"
	"github.com/kortschak/proisoform/internal/loadfile"
)

// Table performs a load from the gene product information table in cfg.
// Rows for the configured organism with a marker, either given in the
// table or joined from their UniProtKB cross references through the
// marker store, are written to the vocabulary and annotation outputs.
// Complexes without a marker are written to the complex output if one
// is configured. Outputs are only replaced if the load completes.
func Table(cfg *config.Config, logger *log.Logger) (*Summary, error) {
	err := cfg.ValidateTable()
	if err != nil {
		return nil, err
	}
	f, err := loadfile.Open(cfg.Table)
	if err != nil {
		return nil, fmt.Errorf("failed to open table: %w", err)
	}
	defer f.Close()

	r, err := newRun(cfg, logger)
	if err != nil {
		return nil, err
	}
	defer r.outs.Discard()

	var complexes io.Writer
	if cfg.Complex != "" {
		complexes, err = r.outs.Create(cfg.Complex)
		if err != nil {
			return nil, err
		}
	}

	logger.Info("loading table", "path", cfg.Table)
	tab := gpi.NewReader(f)
	for {
		rec, err := tab.Read()
		if err != nil {
			if err == io.EOF {
				break
			}
			if errors.Is(err, gpi.ErrTooFewColumns) {
				logger.Debug("malformed row", "err", err)
				r.summary.Rejected++
				continue
			}
			return nil, fmt.Errorf("failed to read table %s: %w", cfg.Table, err)
		}
		if !rec.InTaxon(cfg.Taxon) {
			r.summary.Filtered++
			continue
		}
		r.summary.Terms++

		marker, ok := r.markerFor(rec, tab.Line())
		if !ok {
			continue
		}
		if marker == "" {
			if rec.IsComplex() && complexes != nil {
				_, err = loadfile.ComplexRow{
					ID:       rec.ID,
					Symbol:   rec.Symbol,
					Name:     rec.Name,
					Synonyms: rec.Synonyms,
					Type:     rec.Type,
					Taxon:    rec.Taxon,
				}.WriteTo(complexes)
				if err != nil {
					return nil, err
				}
				r.summary.Complexes++
				continue
			}
			logger.Debug("no marker", "term", rec.ID)
			r.summary.Unresolved++
			continue
		}

		symbol := rec.Symbol
		if symbol == "" {
			symbol = rec.Name
		}
		var xref string
		if len(rec.Xrefs) != 0 {
			xref = rec.Xrefs[0]
		}
		err = r.emit(
			loadfile.VocabularyRow{
				Symbol:   symbol,
				ID:       rec.ID,
				Name:     rec.Name,
				Synonyms: rec.Synonyms,
			},
			loadfile.AnnotationRow{
				TermID:    rec.ID,
				MarkerID:  marker,
				Reference: cfg.Reference,
				Evidence:  loadfile.EvidenceTable,
				Provider:  cfg.Provider,
				Date:      cfg.Date,
				Xref:      xref,
			},
		)
		if err != nil {
			return nil, err
		}
	}
	logger.Info("loaded table", "rows", r.summary.Terms, "filtered", r.summary.Filtered, "emitted", r.summary.Emitted, "complexes", r.summary.Complexes, "unresolved", r.summary.Unresolved, "rejected", r.summary.Rejected)

	err = r.commit()
	if err != nil {
		return nil, err
	}
	return &r.summary, nil
}

// markerFor returns the marker for rec. If the table gives no marker,
// the marker is joined from the record's UniProtKB cross references. The
// returned marker is empty if none can be found, and ok is false if the
// record must be skipped.
func (r *run) markerFor(rec gpi.Record, line int) (marker string, ok bool) {
	if rec.Marker != "" {
		return rec.Marker, r.knownMarker(rec.ID, rec.Marker)
	}
	if r.store == nil {
		return "", true
	}

	var found []string
	seen := make(map[string]bool)
	for _, x := range rec.Xrefs {
		if !strings.HasPrefix(x, "UniProtKB:") {
			continue
		}
		for _, m := range r.store.MarkersFor(x) {
			if !seen[m] {
				seen[m] = true
				found = append(found, m)
			}
		}
	}
	switch len(found) {
	case 0:
		return "", true
	case 1:
		return found[0], true
	default:
		sort.Strings(found)
		r.diag.Warn("multiple markers", "term", rec.ID, "line", line, "markers", strings.Join(found, "|"))
		r.summary.Rejected++
		return "", false
	}
}
