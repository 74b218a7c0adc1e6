// Package ident extracts canonical identifiers from label text.
//
// Identifier formats differ between label stocks, so extraction is performed
// by types implementing the [Grammar] interface. The package provides:
//
//   - [SKUGrammar] - hangtag SKU codes such as "C50039 0007 0001"
//   - [ReferenciaGrammar] - labeled carton fields such as
//     "REFERENCIA: C400080003XX"
//
// Grammars are registered globally and can be retrieved by name:
//
//	grammar := ident.GetGrammar("sku")
//	key, ok := grammar.Extract(labelText)
//
// Extraction failure is absence, not an error: pages without a recognizable
// identifier are expected in every batch and are skipped by the caller.
// Input text is NFC-normalized and whitespace-collapsed before matching, so
// both "C 50039   0007 0001" and "C50039 0007 0001" canonicalize to
// "C50039 0007 0001".
package ident
