// Copyright ©2021 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package loadfile provides input file access and the vocabulary and
// annotation load file formats written by the proisoform loader.
package loadfile

import (
	"bufio"
	"compress/gzip"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/renameio/v2"
)

// Open opens the file at path for reading. If path has a .gz suffix, the
// returned io.ReadCloser decompresses the file's contents.
func Open(path string) (io.ReadCloser, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	if !strings.HasSuffix(path, ".gz") {
		return f, nil
	}
	r, err := gzip.NewReader(f)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return struct {
		io.Reader
		io.Closer
	}{Reader: r, Closer: f}, nil
}

// Output is a buffered load file that is written to its destination
// path only when its Outputs is committed.
type Output struct {
	*bufio.Writer

	path    string
	pending *renameio.PendingFile
}

// Path returns the destination path of the output.
func (o *Output) Path() string {
	return o.path
}

// Outputs is a set of load files that are replaced together. Until
// Commit is called, the data written to an Output is held in a temporary
// file beside its destination.
type Outputs struct {
	files []*Output
}

// Create adds a new output with the destination path to the set.
func (s *Outputs) Create(path string) (*Output, error) {
	pending, err := renameio.NewPendingFile(path,
		renameio.WithTempDir(filepath.Dir(path)),
		renameio.WithPermissions(0o644),
	)
	if err != nil {
		return nil, err
	}
	o := &Output{Writer: bufio.NewWriter(pending), path: path, pending: pending}
	s.files = append(s.files, o)
	return o, nil
}

// Commit flushes all outputs and moves them to their destinations. If
// any output cannot be flushed, no output is moved and all temporary
// files are removed.
func (s *Outputs) Commit() error {
	for _, o := range s.files {
		err := o.Flush()
		if err != nil {
			s.Discard()
			return fmt.Errorf("%s: %w", o.path, err)
		}
	}
	var errs []error
	for _, o := range s.files {
		err := o.pending.CloseAtomicallyReplace()
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", o.path, err))
		}
	}
	s.Discard()
	return errors.Join(errs...)
}

// Discard removes all uncommitted outputs in the set.
func (s *Outputs) Discard() {
	for _, o := range s.files {
		o.pending.Cleanup()
	}
	s.files = nil
}
