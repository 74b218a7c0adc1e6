package output

import (
	"strings"

	"github.com/tsawler/labelcrop/model"
)

// Default file name prefixes for the two label variants.
const (
	DefaultHangtagPrefix = "CHILE BARCODE HANGTAG"
	DefaultCartonPrefix  = "CARTON BARCODE -"
)

// FileName builds "<prefix> <identifier>.pdf". Characters that are not
// portable across filesystems are replaced with underscores; identifiers
// are uppercase alphanumerics with spaces, so replacement only triggers on
// malformed input.
func FileName(prefix string, id model.Identifier) string {
	name := prefix + " " + string(id) + ".pdf"
	return sanitize(name)
}

func sanitize(name string) string {
	var b strings.Builder
	b.Grow(len(name))
	for _, r := range name {
		switch r {
		case '/', '\\', ':', '*', '?', '"', '<', '>', '|':
			b.WriteRune('_')
		default:
			if r < 0x20 {
				b.WriteRune('_')
				continue
			}
			b.WriteRune(r)
		}
	}
	return b.String()
}
