package ident

import (
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/tsawler/labelcrop/model"
)

// Grammar is the interface for identifier extraction strategies.
type Grammar interface {
	// Name returns the grammar name used for registry lookup.
	Name() string

	// Extract returns the canonical identifier found in text, or ok=false
	// when the text contains no match. A false return is expected for
	// non-label pages and is not an error.
	Extract(text string) (model.Identifier, bool)
}

// Normalize prepares raw label text for matching: Unicode NFC normalization
// followed by collapsing all internal whitespace runs to single spaces.
func Normalize(text string) string {
	return strings.Join(strings.Fields(norm.NFC.String(text)), " ")
}

// skuPattern matches hangtag SKUs over whitespace-normalized text: one
// uppercase letter, an optional space, a 5-digit group, then two 4-digit
// groups separated by one or more spaces.
var skuPattern = regexp.MustCompile(`([A-Z]) ?(\d{5}) +(\d{4}) +(\d{4})`)

// SKUGrammar extracts hangtag SKU codes such as "C50039 0007 0001".
// The canonical form joins the letter directly to the first digit group
// regardless of input spacing.
type SKUGrammar struct{}

// Name returns "sku".
func (SKUGrammar) Name() string { return "sku" }

// Extract implements Grammar.
func (SKUGrammar) Extract(text string) (model.Identifier, bool) {
	m := skuPattern.FindStringSubmatch(Normalize(text))
	if m == nil {
		return "", false
	}
	return model.Identifier(m[1] + m[2] + " " + m[3] + " " + m[4]), true
}

// referenciaPattern matches the labeled REFERENCIA field of carton sheets.
var referenciaPattern = regexp.MustCompile(`REFERENCIA:\s*([A-Z0-9]+)`)

// ReferenciaGrammar extracts the alphanumeric token of a
// "REFERENCIA: <token>" field, e.g. "C400080003XX".
type ReferenciaGrammar struct{}

// Name returns "referencia".
func (ReferenciaGrammar) Name() string { return "referencia" }

// Extract implements Grammar.
func (ReferenciaGrammar) Extract(text string) (model.Identifier, bool) {
	m := referenciaPattern.FindStringSubmatch(norm.NFC.String(text))
	if m == nil {
		return "", false
	}
	return model.Identifier(m[1]), true
}

// GrammarRegistry holds registered grammars.
type GrammarRegistry struct {
	grammars map[string]Grammar
}

// NewRegistry creates a new grammar registry.
func NewRegistry() *GrammarRegistry {
	return &GrammarRegistry{grammars: make(map[string]Grammar)}
}

// Register registers a grammar under its name.
func (r *GrammarRegistry) Register(g Grammar) {
	r.grammars[g.Name()] = g
}

// Get retrieves a grammar by name, or nil if unknown.
func (r *GrammarRegistry) Get(name string) Grammar {
	return r.grammars[name]
}

// List returns all registered grammar names.
func (r *GrammarRegistry) List() []string {
	names := make([]string, 0, len(r.grammars))
	for name := range r.grammars {
		names = append(names, name)
	}
	return names
}

// Global registry
var globalRegistry = NewRegistry()

func init() {
	globalRegistry.Register(SKUGrammar{})
	globalRegistry.Register(ReferenciaGrammar{})
}

// RegisterGrammar registers a grammar globally.
func RegisterGrammar(g Grammar) {
	globalRegistry.Register(g)
}

// GetGrammar retrieves a globally registered grammar by name.
func GetGrammar(name string) Grammar {
	return globalRegistry.Get(name)
}
