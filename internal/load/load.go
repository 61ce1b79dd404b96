// Copyright ©2021 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package load performs proisoform vocabulary and annotation loads from
// PRO ontology files or gene product information tables.
package load

import (
	"fmt"
	"io"

	"github.com/charmbracelet/log"

	"github.com/kortschak/proisoform/internal/config"
	"github.com/kortschak/proisoform/internal/loadfile"
	"github.com/kortschak/proisoform/internal/markers"
)

// Summary holds the record counts for a load.
type Summary struct {
	// Terms is the number of candidate terms or
	// table rows considered for output.
	Terms int

	// Emitted is the number of terms written to
	// the vocabulary and annotation outputs.
	Emitted int

	// Unresolved is the number of terms with no
	// marker, and Rejected the number skipped
	// with a diagnostic.
	Unresolved int
	Rejected   int

	// Filtered is the number of table rows for
	// other organisms and Complexes is the number
	// of unmarked complexes written.
	Filtered  int
	Complexes int
}

// run holds the shared state of a load.
type run struct {
	cfg    *config.Config
	logger *log.Logger

	// diag receives records that were skipped
	// and need curator attention.
	diag *log.Logger

	store *markers.Store

	outs  loadfile.Outputs
	voc   io.Writer
	annot io.Writer

	summary Summary
}

// newRun creates the vocabulary, annotation and diagnostic outputs and
// loads the marker store if one is configured. The caller must call
// r.outs.Discard if the run does not complete.
func newRun(cfg *config.Config, logger *log.Logger) (*run, error) {
	r := &run{cfg: cfg, logger: logger}

	voc, err := r.outs.Create(cfg.Vocabulary)
	if err != nil {
		return nil, err
	}
	r.voc = voc
	annot, err := r.outs.Create(cfg.Annotation)
	if err != nil {
		r.outs.Discard()
		return nil, err
	}
	r.annot = annot

	if cfg.Diagnostics != "" {
		diag, err := r.outs.Create(cfg.Diagnostics)
		if err != nil {
			r.outs.Discard()
			return nil, err
		}
		r.diag = log.NewWithOptions(diag, log.Options{
			ReportTimestamp: true,
			Formatter:       log.LogfmtFormatter,
		})
	} else {
		r.diag = logger.WithPrefix("diagnostic")
	}

	if cfg.Markers != "" {
		logger.Info("loading marker store", "path", cfg.Markers)
		r.store, err = loadStore(cfg.Markers)
		if err != nil {
			r.outs.Discard()
			return nil, fmt.Errorf("failed to load marker store: %w", err)
		}
	}
	return r, nil
}

func loadStore(path string) (*markers.Store, error) {
	f, err := loadfile.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return markers.Load(f)
}

// emit writes the vocabulary and annotation rows for a term.
func (r *run) emit(v loadfile.VocabularyRow, a loadfile.AnnotationRow) error {
	_, err := v.WriteTo(r.voc)
	if err != nil {
		return err
	}
	_, err = a.WriteTo(r.annot)
	if err != nil {
		return err
	}
	r.summary.Emitted++
	return nil
}

// knownMarker returns whether the marker is present in the marker store,
// reporting a diagnostic if it is not. All markers are known if no store
// is configured.
func (r *run) knownMarker(term, marker string) bool {
	if r.store == nil || r.store.HasMarker(marker) {
		return true
	}
	r.diag.Warn("unknown marker", "term", term, "marker", marker)
	r.summary.Rejected++
	return false
}

// commit moves all outputs into place.
func (r *run) commit() error {
	err := r.outs.Commit()
	if err != nil {
		return fmt.Errorf("failed to write outputs: %w", err)
	}
	return nil
}

// openAll opens all the paths, closing any opened files if an error
// occurs.
func openAll(paths []string) ([]io.ReadCloser, error) {
	files := make([]io.ReadCloser, 0, len(paths))
	for _, p := range paths {
		f, err := loadfile.Open(p)
		if err != nil {
			closeAll(files)
			return nil, err
		}
		files = append(files, f)
	}
	return files, nil
}

func closeAll(files []io.ReadCloser) {
	for _, f := range files {
		f.Close()
	}
}
