// Copyright ©2021 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package pro implements construction of a Protein Ontology term graph
// from OBO term stanzas and resolution of MGI marker associations for the
// terms in the graph. It is not a complete OBO parser implementation; only
// the tags needed to relate PRO isoform terms to their gene markers are
// interpreted.
package pro // import "github.com/kortschak/proisoform/internal/pro"
