// Copyright ©2021 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/kortschak/proisoform/internal/config"
)

const sox9OBO = `[Term]
id: PR:000036912
name: transcription factor SOX-9 (mouse)
synonym: "mSOX9" EXACT PRO-short-label [PRO:DNx]
relationship: has_gene_template MGI:98371
relationship: only_in_taxon NCBITaxon:10090
`

func TestOntologyCommand(t *testing.T) {
	dir := t.TempDir()
	obo := filepath.Join(dir, "pro.obo")
	err := os.WriteFile(obo, []byte(sox9OBO), 0o644)
	if err != nil {
		t.Fatal(err)
	}
	voc := filepath.Join(dir, "proisoform.voc")
	annot := filepath.Join(dir, "proisoform.annot")

	root := newCLI(io.Discard).rootCommand()
	root.SetArgs([]string{"ontology", "--vocab", voc, "--annot", annot, "--ref", "J:232326", obo})
	err = root.Execute()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, err := os.ReadFile(voc)
	if err != nil {
		t.Fatal(err)
	}
	want := "mSOX9\tPR:000036912\tcurrent\t\ttranscription factor SOX-9 (mouse)\t\tmSOX9\t\n"
	if string(got) != want {
		t.Errorf("unexpected vocabulary:\ngot: %q\nwant:%q", got, want)
	}
	got, err = os.ReadFile(annot)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(string(got), "PR:000036912\tMGI:98371\tJ:232326\tIEA\t") {
		t.Errorf("unexpected annotation: %q", got)
	}
}

func TestTableCommandMissingTable(t *testing.T) {
	t.Setenv("GPIFILE", "")
	dir := t.TempDir()

	root := newCLI(io.Discard).rootCommand()
	root.SetOut(io.Discard)
	root.SetErr(io.Discard)
	root.SetArgs([]string{"table",
		"--vocab", filepath.Join(dir, "proisoform.voc"),
		"--annot", filepath.Join(dir, "proisoform.annot"),
		"--ref", "J:232326",
	})
	err := root.Execute()
	if !errors.Is(err, config.ErrMissing) {
		t.Errorf("expected missing table error, got: %v", err)
	}
}
