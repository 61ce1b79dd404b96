// Copyright ©2021 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package pro

import (
	"reflect"
	"strings"
	"testing"
)

const sox9OBO = `format-version: 1.2
ontology: pr

[Term]
id: PR:000000650
name: transcription factor SOX-9
synonym: "SOX9" EXACT PRO-short-label [PRO:DNx]
synonym: "SRY-box 9" EXACT []
is_a: PR:000000001 ! protein
relationship: has_gene_template MGI:98371 ! Sox9

[Term]
id: PR:000036913
name: transcription factor SOX-9 (mouse)
synonym: "mSOX9" EXACT PRO-short-label [PRO:DNx]
synonym: "Sox9/Mm" RELATED []
synonym: "SOX9 mouse" NARROW []
is_a: PR:000000650 ! transcription factor SOX-9
xref: UniProtKB:Q04887
relationship: only_in_taxon NCBITaxon:10090 ! Mus musculus

[Typedef]
id: derives_from
name: derives from
`

func TestBuildTerm(t *testing.T) {
	b := NewBuilder(NewGraph())
	err := b.Build(strings.NewReader(sox9OBO))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []*Term{
		{
			ID:         "PR:000000650",
			Name:       "transcription factor SOX-9",
			ShortLabel: "SOX9",
			Synonyms:   []string{"SOX9", "SRY-box 9"},
			Markers:    []string{"MGI:98371"},
			Include:    true,
			defined:    true,
		},
		{
			ID:         "PR:000036913",
			Name:       "transcription factor SOX-9 (mouse)",
			ShortLabel: "mSOX9",
			Synonyms:   []string{"mSOX9", "Sox9/Mm"},
			Parents:    []string{"PR:000000650"},
			Xrefs:      []string{"UniProtKB:Q04887"},
			InTaxon:    true,
			Include:    true,
			defined:    true,
		},
	}
	got := b.Graph.Terms()
	if !reflect.DeepEqual(got, want) {
		t.Errorf("unexpected terms:\ngot: %+v\nwant:%+v", got, want)
	}
	wantStats := BuildStats{Stanzas: 2, Added: 2}
	if b.Stats != wantStats {
		t.Errorf("unexpected stats: got:%+v want:%+v", b.Stats, wantStats)
	}
}

var finalizeTests = []struct {
	name  string
	obo   string
	added bool
	want  *Term
}{
	{
		name: "no relationship",
		obo: `[Term]
id: PR:000000002
name: lonely
`,
		added: false,
	},
	{
		name: "no identifier",
		obo: `[Term]
name: anonymous
is_a: PR:000000003
`,
		added: false,
	},
	{
		name: "structural root parent only",
		obo: `[Term]
id: PR:000000004
is_a: PR:000000001 ! protein
intersection_of: PR:000018263 ! amino acid chain
`,
		added: false,
	},
	{
		name: "structural root",
		obo: `[Term]
id: PR:000018263
is_a: PR:000000005
`,
		added: false,
	},
	{
		name: "end of stream",
		obo: `[Term]
id: PR:000000006
name: unterminated
is_a: PR:000000007`,
		added: true,
		want: &Term{
			ID:      "PR:000000006",
			Name:    "unterminated",
			Parents: []string{"PR:000000007"},
			Include: true,
			defined: true,
		},
	},
	{
		name: "subcomponent",
		obo: `[Term]
id: PR:000000008-2
intersection_of: PR:000000009
intersection_of: derives_from PR:000000010
relationship: derives_from PR:000000011
comment: Cleavage product; derives_from PR:000000012. See also PR:000000013.
`,
		added: true,
		want: &Term{
			ID:      "PR:000000008-2",
			Parents: []string{"PR:000000008", "PR:000000009", "PR:000000010", "PR:000000011", "PR:000000013"},
			Include: true,
			defined: true,
		},
	},
	{
		name: "human",
		obo: `[Term]
id: PR:000000014
name: transcription factor SOX-9 (human)
is_a: PR:000000650
relationship: only_in_taxon NCBITaxon:9606
`,
		added: false,
	},
	{
		name: "obsolete",
		obo: `[Term]
id: PR:000000015
is_a: PR:000000650
relationship: only_in_taxon NCBITaxon:10090
is_obsolete: true
`,
		added: true,
		want: &Term{
			ID:      "PR:000000015",
			Parents: []string{"PR:000000650"},
			InTaxon: true,
			defined: true,
		},
	},
	{
		name: "other organism",
		obo: `[Term]
id: PR:000000016
is_a: PR:000000650
relationship: only_in_taxon NCBITaxon:10116 ! Rattus norvegicus
`,
		added: true,
		want: &Term{
			ID:      "PR:000000016",
			Parents: []string{"PR:000000650"},
			defined: true,
		},
	},
	{
		name: "lines before identifier",
		obo: `[Term]
is_a: PR:000000017
id: PR:000000018
is_a: PR:000000019
`,
		added: true,
		want: &Term{
			ID:      "PR:000000018",
			Parents: []string{"PR:000000019"},
			Include: true,
			defined: true,
		},
	},
	{
		name: "stanza header without blank line",
		obo: `[Term]
id: PR:000000020
is_a: PR:000000021
[Typedef]
id: PR:000000022
is_a: PR:000000023
`,
		added: true,
		want: &Term{
			ID:      "PR:000000020",
			Parents: []string{"PR:000000021"},
			Include: true,
			defined: true,
		},
	},
}

func TestFinalize(t *testing.T) {
	for _, test := range finalizeTests {
		b := NewBuilder(NewGraph())
		err := b.Build(strings.NewReader(test.obo))
		if err != nil {
			t.Errorf("unexpected error for %q: %v", test.name, err)
			continue
		}
		var defined []*Term
		for _, term := range b.Graph.Terms() {
			if term.Defined() {
				defined = append(defined, term)
			}
		}
		if !test.added {
			if len(defined) != 0 {
				t.Errorf("unexpected terms added for %q: %+v", test.name, defined)
			}
			continue
		}
		if len(defined) != 1 {
			t.Errorf("unexpected number of terms for %q: got:%d want:1", test.name, len(defined))
			continue
		}
		if !reflect.DeepEqual(defined[0], test.want) {
			t.Errorf("unexpected term for %q:\ngot: %+v\nwant:%+v", test.name, defined[0], test.want)
		}
	}
}

func TestBuilderTaxon(t *testing.T) {
	for _, test := range []struct {
		taxon   string
		inTaxon bool
	}{
		{taxon: "", inTaxon: true},
		{taxon: "10090", inTaxon: true},
		{taxon: "NCBITaxon:10090", inTaxon: true},
		{taxon: "taxon:10090", inTaxon: true},
		{taxon: "NCBITaxon:9606", inTaxon: false},
	} {
		b := NewBuilder(NewGraph())
		b.Taxon = test.taxon
		err := b.Build(strings.NewReader(sox9OBO))
		if err != nil {
			t.Fatalf("unexpected error for taxon %q: %v", test.taxon, err)
		}
		term, ok := b.Graph.Term("PR:000036913")
		if !ok {
			t.Errorf("missing term for taxon %q", test.taxon)
			continue
		}
		if term.Emittable() != test.inTaxon {
			t.Errorf("unexpected emittable state for taxon %q: got:%t want:%t", test.taxon, term.Emittable(), test.inTaxon)
		}
	}
}

func TestDefinitionOrder(t *testing.T) {
	const obo = `[Term]
id: PR:000000301
is_a: PR:000000300
relationship: has_gene_template MGI:300
relationship: only_in_taxon NCBITaxon:10090

[Term]
id: PR:000000300
is_a: PR:000000302
relationship: has_gene_template MGI:300
relationship: only_in_taxon NCBITaxon:10090

[Term]
id: PR:000000303
relationship: has_gene_template MGI:303
is_a: PR:000000304
`
	g := NewGraph()
	err := NewBuilder(g).Build(strings.NewReader(obo))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var got []string
	for _, term := range g.Terms() {
		got = append(got, term.ID)
	}
	want := []string{"PR:000000301", "PR:000000300", "PR:000000303", "PR:000000302"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("unexpected term order: got:%v want:%v", got, want)
	}
	if g.Len() != len(want) {
		t.Errorf("unexpected graph size: got:%d want:%d", g.Len(), len(want))
	}
}

func TestMarkerPropagation(t *testing.T) {
	const obo = `[Term]
id: PR:000000100-1
is_a: PR:000000101
intersection_of: has_gene_template MGI:1 ! gene
is_a: PR:000000102
`
	g := NewGraph()
	err := NewBuilder(g).Build(strings.NewReader(obo))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, test := range []struct {
		id      string
		markers []string
		defined bool
	}{
		{id: "PR:000000100", markers: []string{"MGI:1"}},
		{id: "PR:000000101", markers: []string{"MGI:1"}},
		{id: "PR:000000100-1", markers: []string{"MGI:1"}, defined: true},
	} {
		term, ok := g.Term(test.id)
		if !ok {
			t.Errorf("missing term %s", test.id)
			continue
		}
		if !reflect.DeepEqual(term.Markers, test.markers) {
			t.Errorf("unexpected markers for %s: got:%v want:%v", test.id, term.Markers, test.markers)
		}
		if term.Defined() != test.defined {
			t.Errorf("unexpected definition state for %s: got:%t want:%t", test.id, term.Defined(), test.defined)
		}
	}
	if _, ok := g.Term("PR:000000102"); ok {
		t.Error("unexpected stub for parent added after marker")
	}
}

const (
	monthlyOBO = `[Term]
id: PR:000000200
name: parent protein
synonym: "PP" EXACT PRO-short-label [PRO:DNx]
is_a: PR:000000201
relationship: has_gene_template MGI:200 ! Pp

[Term]
id: PR:000000202
name: child form
is_a: PR:000000200
relationship: only_in_taxon NCBITaxon:10090
`
	incrementOBO = `[Term]
id: PR:000000200
name: parent protein renamed
synonym: "PPX" EXACT PRO-short-label [PRO:DNx]
synonym: "parent" EXACT []
is_a: PR:000000203

[Term]
id: PR:000000202
is_a: PR:000000200
relationship: only_in_taxon NCBITaxon:10090
is_obsolete: true
`
)

func TestMergeSources(t *testing.T) {
	g := NewGraph()
	b := NewBuilder(g)
	for _, src := range []string{monthlyOBO, incrementOBO} {
		err := b.Build(strings.NewReader(src))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	parent, _ := g.Term("PR:000000200")
	wantParent := &Term{
		ID:         "PR:000000200",
		Name:       "parent protein renamed",
		ShortLabel: "PP",
		Synonyms:   []string{"PP", "PPX", "parent"},
		Parents:    []string{"PR:000000201", "PR:000000203"},
		Markers:    []string{"MGI:200"},
		Include:    true,
		defined:    true,
	}
	if !reflect.DeepEqual(parent, wantParent) {
		t.Errorf("unexpected merged term:\ngot: %+v\nwant:%+v", parent, wantParent)
	}

	child, _ := g.Term("PR:000000202")
	if !child.Include || !child.InTaxon {
		t.Errorf("later source invalidated term: %+v", child)
	}
}

func TestBuildIdempotent(t *testing.T) {
	sources := []string{sox9OBO, monthlyOBO, incrementOBO}

	once := NewGraph()
	b := NewBuilder(once)
	for _, src := range sources {
		err := b.Build(strings.NewReader(src))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	twice := NewGraph()
	b = NewBuilder(twice)
	for i := 0; i < 2; i++ {
		for _, src := range sources {
			err := b.Build(strings.NewReader(src))
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		}
	}

	if !reflect.DeepEqual(once, twice) {
		t.Errorf("graph not idempotent over repeated sources:\nonce: %+v\ntwice:%+v", once.Terms(), twice.Terms())
	}
}

var synonymTests = []struct {
	line  string
	text  string
	scope string
	typ   string
	ok    bool
}{
	{line: `synonym: "SOX9" EXACT PRO-short-label [PRO:DNx]`, text: "SOX9", scope: "EXACT", typ: "PRO-short-label", ok: true},
	{line: `synonym: "SRY-box 9" EXACT []`, text: "SRY-box 9", scope: "EXACT", ok: true},
	{line: `synonym: "the \"quoted\" one" RELATED [PMID:1]`, text: `the "quoted" one`, scope: "RELATED", ok: true},
	{line: `synonym: "unterminated EXACT []`},
	{line: `synonym: SOX9 EXACT []`},
	{line: `is_a: PR:000000001`},
}

func TestParseSynonym(t *testing.T) {
	for _, test := range synonymTests {
		text, scope, typ, ok := parseSynonym(test.line)
		if text != test.text || scope != test.scope || typ != test.typ || ok != test.ok {
			t.Errorf("unexpected parse of %q: got:(%q %q %q %t) want:(%q %q %q %t)",
				test.line, text, scope, typ, ok, test.text, test.scope, test.typ, test.ok)
		}
	}
}

func TestOnlyInTaxon(t *testing.T) {
	for _, test := range []struct {
		line  string
		taxon string
		ok    bool
	}{
		{line: "relationship: only_in_taxon NCBITaxon:10090 ! Mus musculus", taxon: "10090", ok: true},
		{line: "intersection_of: only_in_taxon NCBITaxon:9606", taxon: "9606", ok: true},
		{line: "relationship: only_in_taxon", ok: false},
		{line: "comment: only_in_taxon is a relation", ok: false},
	} {
		taxon, ok := onlyInTaxon(test.line)
		if taxon != test.taxon || ok != test.ok {
			t.Errorf("unexpected taxon for %q: got:(%q %t) want:(%q %t)", test.line, taxon, ok, test.taxon, test.ok)
		}
	}
}
