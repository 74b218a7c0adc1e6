package output

import (
	"archive/zip"
	"fmt"
	"io"
	"sort"
	"time"
)

// Archive writes finished label documents into a flat ZIP archive.
//
// Entry names must be unique; adding a duplicate name is an error because
// it means two labels resolved to the same identifier and one would
// silently overwrite the other on extraction.
type Archive struct {
	w       *zip.Writer
	names   map[string]bool
	modTime time.Time
}

// NewArchive creates an archive writing to w. Close must be called to flush
// the central directory.
func NewArchive(w io.Writer) *Archive {
	return &Archive{
		w:       zip.NewWriter(w),
		names:   make(map[string]bool),
		modTime: time.Now(),
	}
}

// Add writes one document under the given entry name.
func (a *Archive) Add(name string, pdf []byte) error {
	if a.names[name] {
		return fmt.Errorf("duplicate archive entry %q", name)
	}
	a.names[name] = true

	f, err := a.w.CreateHeader(&zip.FileHeader{
		Name:     name,
		Method:   zip.Deflate,
		Modified: a.modTime,
	})
	if err != nil {
		return fmt.Errorf("create entry %q: %w", name, err)
	}
	if _, err := f.Write(pdf); err != nil {
		return fmt.Errorf("write entry %q: %w", name, err)
	}
	return nil
}

// Names returns the entry names added so far, sorted.
func (a *Archive) Names() []string {
	names := make([]string, 0, len(a.names))
	for n := range a.names {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Close flushes the archive. The Archive must not be used afterwards.
func (a *Archive) Close() error {
	return a.w.Close()
}
