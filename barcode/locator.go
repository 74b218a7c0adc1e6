// Package barcode locates the printed barcode digits inside a label region.
//
// The [Locator] scans the word-level tokens of a region for the token with
// the most digits once non-digit characters are stripped. Short numeric
// tokens (quantities, prices) are rejected by a minimum digit count, so only
// a convincing barcode number can anchor the crop window.
package barcode

import (
	"strings"
	"unicode"

	"github.com/tsawler/labelcrop/model"
)

// DefaultMinDigits is the minimum digit count for a token to qualify as
// barcode digits. EAN-8 is the shortest barcode symbology in use on these
// labels.
const DefaultMinDigits = 8

// Anchor describes the winning barcode token.
type Anchor struct {
	Rect    model.Rect // Bounding box of the token
	Text    string     // Original token text
	Digits  string     // Token text with non-digits stripped
	CenterX float64    // Horizontal center of the token
}

// Locator finds the most likely barcode token within a region.
type Locator struct {
	// MinDigits is the minimum stripped digit count for a usable anchor.
	MinDigits int
}

// NewLocator creates a Locator with the default digit threshold.
func NewLocator() *Locator {
	return &Locator{MinDigits: DefaultMinDigits}
}

// Locate returns the token whose stripped digit count is maximal, or
// ok=false when no token reaches MinDigits. Ties are broken by the first
// token encountered. Absence is expected for regions without a readable
// barcode number and is not an error.
func (l *Locator) Locate(words []model.Word) (Anchor, bool) {
	minDigits := l.MinDigits
	if minDigits <= 0 {
		minDigits = DefaultMinDigits
	}

	var best Anchor
	bestLen := 0

	for _, w := range words {
		digits := stripNonDigits(w.Text)
		if len(digits) > bestLen {
			bestLen = len(digits)
			best = Anchor{
				Rect:    w.Rect,
				Text:    w.Text,
				Digits:  digits,
				CenterX: w.Rect.CenterX(),
			}
		}
	}

	if bestLen < minDigits {
		return Anchor{}, false
	}
	return best, true
}

func stripNonDigits(s string) string {
	var sb strings.Builder
	for _, r := range s {
		if unicode.IsDigit(r) {
			sb.WriteRune(r)
		}
	}
	return sb.String()
}
