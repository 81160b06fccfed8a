// Package export materializes a folder-mode resolution: one output
// directory per matched folder, holding a text summary of the contact and a
// copy of the folder's photos.
package export

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/kozaktomas/contact-album/internal/resolve"
	"github.com/kozaktomas/contact-album/internal/vcard"
)

type Exporter struct {
	reservedDir string // sub-directory name for copied photos
	isImage     func(ext string) bool
}

func New(reservedDir string, isImage func(ext string) bool) *Exporter {
	return &Exporter{reservedDir: reservedDir, isImage: isImage}
}

// Export writes every match of a folder-mode run under outputBase. The
// output directory is named after the source folder, not the contact, so
// two same-name contacts cannot collide.
func (e *Exporter) Export(outputBase string, result *resolve.FolderResult) error {
	if err := os.MkdirAll(outputBase, 0o755); err != nil {
		return fmt.Errorf("creating output folder: %w", err)
	}

	for _, m := range result.Matches {
		outDir := filepath.Join(outputBase, filepath.Base(m.Folder.Path))
		if err := e.exportMatch(outDir, m); err != nil {
			return fmt.Errorf("exporting %s: %w", m.Folder.Name, err)
		}
	}
	return nil
}

func (e *Exporter) exportMatch(outDir string, m resolve.FolderMatch) error {
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return err
	}
	if err := writeSummary(outDir, m.Contact); err != nil {
		return err
	}
	return e.copyPhotos(m.Folder.Path, outDir)
}

// writeSummary writes "<Name>.txt" with the contact's fields. Repeated
// fields are numbered only when there is more than one value.
func writeSummary(outDir string, c vcard.Contact) error {
	var b strings.Builder
	fmt.Fprintf(&b, "Name: %s\n", c.Name)
	if c.Org != "" {
		fmt.Fprintf(&b, "Organization: %s\n", c.Org)
	}
	if c.Title != "" {
		fmt.Fprintf(&b, "Title: %s\n", c.Title)
	}
	writeNumbered(&b, "Phone", c.Phones)
	writeNumbered(&b, "Email", c.Emails)
	writeNumbered(&b, "Address", c.Addresses)
	if c.Note != "" {
		fmt.Fprintf(&b, "Note: %s\n", c.Note)
	}

	path := filepath.Join(outDir, c.Name+".txt")
	return os.WriteFile(path, []byte(b.String()), 0o644)
}

func writeNumbered(b *strings.Builder, label string, values []string) {
	for i, v := range values {
		if len(values) == 1 {
			fmt.Fprintf(b, "%s: %s\n", label, v)
		} else {
			fmt.Fprintf(b, "%s %d: %s\n", label, i+1, v)
		}
	}
}

// copyPhotos copies the images directly inside srcDir into the reserved
// photo sub-directory of outDir, keeping original names and appending _1,
// _2, ... on collision. The photo directory is only created when the source
// actually contains images.
func (e *Exporter) copyPhotos(srcDir, outDir string) error {
	entries, err := os.ReadDir(srcDir)
	if err != nil {
		return err
	}

	var images []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if e.isImage(strings.ToLower(filepath.Ext(entry.Name()))) {
			images = append(images, entry.Name())
		}
	}
	if len(images) == 0 {
		return nil
	}

	photoDir := filepath.Join(outDir, e.reservedDir)
	if err := os.MkdirAll(photoDir, 0o755); err != nil {
		return err
	}

	for _, name := range images {
		dest := availableName(photoDir, name)
		if err := copyFile(filepath.Join(srcDir, name), dest); err != nil {
			return err
		}
	}
	return nil
}

// availableName returns a destination path that does not exist yet, adding
// a numeric suffix before the extension when needed.
func availableName(dir, name string) string {
	dest := filepath.Join(dir, name)
	ext := filepath.Ext(name)
	stem := strings.TrimSuffix(name, ext)
	for counter := 1; ; counter++ {
		if _, err := os.Stat(dest); os.IsNotExist(err) {
			return dest
		}
		dest = filepath.Join(dir, fmt.Sprintf("%s_%d%s", stem, counter, ext))
	}
}

func copyFile(src, dest string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dest)
	if err != nil {
		return err
	}
	defer out.Close()

	if _, err := io.Copy(out, in); err != nil {
		return err
	}
	return out.Close()
}
