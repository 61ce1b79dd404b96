// Copyright ©2021 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package pro

import (
	"strings"
)

// structuralRoots are PRO terms that are never used as parents and never
// added to the graph. They are the roots of the protein hierarchy and
// would otherwise make every term an ancestor of every other.
var structuralRoots = map[string]bool{
	"PR:000029032": true, // Mus musculus protein
	"PR:000000001": true, // protein
	"PR:000018263": true, // amino acid chain
}

func isStructuralRoot(id string) bool {
	return structuralRoots[id]
}

// rule is an OBO tag line handler.
type rule struct {
	name  string
	match func(b *Builder, line string) bool
	apply func(b *Builder, line string)
}

// rules is the ordered set of line handlers applied to lines within a
// term stanza. Only the first matching rule is applied, so the loose
// derives_from rule must follow the precise relationship rules.
var rules = []rule{
	{
		name:  "id",
		match: hasPrefix("id: PR:"),
		apply: func(b *Builder, line string) { b.setID(field(line, 1)) },
	},
	{
		name:  "name",
		match: hasPrefix("name:"),
		apply: func(b *Builder, line string) {
			name := strings.TrimSpace(strings.TrimPrefix(line, "name:"))
			b.curr.term.Name = name
			if strings.Index(name, "(human)") > 0 {
				b.curr.ignoreRest = true
			}
		},
	},
	{
		name: "short label",
		match: func(_ *Builder, line string) bool {
			_, scope, typ, ok := parseSynonym(line)
			return ok && scope == "EXACT" && typ == "PRO-short-label"
		},
		apply: func(b *Builder, line string) {
			text, _, _, _ := parseSynonym(line)
			t := b.curr.term
			if t.ShortLabel == "" {
				t.ShortLabel = text
			}
			t.addSynonym(text)
		},
	},
	{
		name: "synonym",
		match: func(_ *Builder, line string) bool {
			_, scope, typ, ok := parseSynonym(line)
			return ok && (scope == "EXACT" || scope == "RELATED") && typ == ""
		},
		apply: func(b *Builder, line string) {
			text, _, _, _ := parseSynonym(line)
			b.curr.term.addSynonym(text)
		},
	},
	{
		name:  "is_a",
		match: hasPrefix("is_a: PR:"),
		apply: func(b *Builder, line string) { b.relateTo(field(line, 1)) },
	},
	{
		name:  "intersection_of",
		match: hasPrefix("intersection_of: PR:"),
		apply: func(b *Builder, line string) { b.relateTo(field(line, 1)) },
	},
	{
		name:  "derives_from",
		match: hasPrefix("intersection_of: derives_from PR:", "relationship: derives_from PR:"),
		apply: func(b *Builder, line string) { b.relateTo(field(line, 2)) },
	},
	{
		name: "loose derives_from",
		match: func(_ *Builder, line string) bool {
			return strings.Contains(line, "derives_from PR:") && looseDerivation(line) != ""
		},
		apply: func(b *Builder, line string) { b.relateTo(looseDerivation(line)) },
	},
	{
		name:  "has_gene_template",
		match: hasPrefix("intersection_of: has_gene_template MGI:", "relationship: has_gene_template MGI:"),
		apply: func(b *Builder, line string) { b.markWith(field(line, 2)) },
	},
	{
		name:  "xref",
		match: hasPrefix("xref: UniProtKB:"),
		apply: func(b *Builder, line string) { b.curr.term.addXref(field(line, 1)) },
	},
	{
		name: "target taxon",
		match: func(b *Builder, line string) bool {
			taxon, ok := onlyInTaxon(line)
			return ok && taxon == b.taxon()
		},
		apply: func(b *Builder, _ string) { b.curr.term.InTaxon = true },
	},
	{
		name: "other taxon",
		match: func(b *Builder, line string) bool {
			_, ok := onlyInTaxon(line)
			return ok
		},
		apply: func(b *Builder, _ string) { b.curr.term.Include = false },
	},
	{
		name: "obsolete",
		match: func(_ *Builder, line string) bool {
			return strings.Contains(line, "is_obsolete: true")
		},
		apply: func(b *Builder, _ string) { b.curr.term.Include = false },
	},
}

// hasPrefix returns a rule match function that matches lines with any
// of the provided prefixes.
func hasPrefix(prefixes ...string) func(*Builder, string) bool {
	return func(_ *Builder, line string) bool {
		for _, p := range prefixes {
			if strings.HasPrefix(line, p) {
				return true
			}
		}
		return false
	}
}

// field returns the i'th space-separated field of line, or the empty
// string if line has too few fields.
func field(line string, i int) string {
	f := strings.Fields(line)
	if i < len(f) {
		return f[i]
	}
	return ""
}

// looseDerivation returns the PRO ID mentioned in a free-text
// derives_from line. The last PR: token is used, with any text
// following a '.' removed.
func looseDerivation(line string) string {
	var id string
	for _, f := range strings.Fields(line) {
		if strings.HasPrefix(f, "PR:") {
			id, _, _ = strings.Cut(f, ".")
		}
	}
	if id == "PR:" {
		return ""
	}
	return id
}

// onlyInTaxon returns the NCBI taxon ID of an only_in_taxon relationship
// in line.
func onlyInTaxon(line string) (taxon string, ok bool) {
	f := strings.Fields(line)
	for i, v := range f[:max(len(f)-1, 0)] {
		if v == "only_in_taxon" && strings.HasPrefix(f[i+1], "NCBITaxon:") {
			return strings.TrimPrefix(f[i+1], "NCBITaxon:"), true
		}
	}
	return "", false
}

// parseSynonym parses an OBO synonym line of the form
//
//	synonym: "text" SCOPE [TYPE] [xrefs]
//
// returning the unescaped text, the scope and the optional synonym type.
func parseSynonym(line string) (text, scope, typ string, ok bool) {
	rest := strings.TrimPrefix(line, "synonym:")
	if len(rest) == len(line) {
		return "", "", "", false
	}
	rest = strings.TrimSpace(rest)
	if !strings.HasPrefix(rest, `"`) {
		return "", "", "", false
	}
	var buf strings.Builder
	end := -1
	for i := 1; i < len(rest); i++ {
		c := rest[i]
		if c == '\\' && i+1 < len(rest) {
			i++
			buf.WriteByte(rest[i])
			continue
		}
		if c == '"' {
			end = i
			break
		}
		buf.WriteByte(c)
	}
	if end < 0 {
		return "", "", "", false
	}
	f := strings.Fields(rest[end+1:])
	if len(f) == 0 {
		return "", "", "", false
	}
	scope = f[0]
	if len(f) > 1 && !strings.HasPrefix(f[1], "[") {
		typ = f[1]
	}
	return buf.String(), scope, typ, true
}
