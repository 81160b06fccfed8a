// Package album renders a photo-mode resolution into a self-contained
// static HTML album: one card per contact with their photos, client-side
// search, and click-to-enlarge. Originals and generated thumbnails are
// copied next to the page so the result can be moved or shared as one
// directory.
package album

import (
	_ "embed"
	"fmt"
	"html/template"
	"os"
	"path/filepath"
	"sort"

	"github.com/schollz/progressbar/v3"

	"github.com/kozaktomas/contact-album/internal/resolve"
	"github.com/kozaktomas/contact-album/internal/vcard"
)

//go:embed album.html.tmpl
var albumTemplate string

const thumbMaxDim = 480

// Builder renders albums. Progress output can be disabled for tests and the
// web server.
type Builder struct {
	ShowProgress bool
}

type pagePhoto struct {
	Full  string // page-relative path to the copied original
	Thumb string // page-relative path to the generated thumbnail
}

type pageContact struct {
	Name   string
	Org    string
	Title  string
	Note   string
	Phones []string
	Emails []string
	Photos []pagePhoto
}

type pageData struct {
	Contacts          []pageContact
	UnmatchedPhotos   []string
	UnmatchedContacts []string
}

// Build writes the album for a photo-mode result under outDir and returns
// the path of the generated page. Photos are grouped per contact in contact
// list order; a photo matched to several contacts appears on each card.
func (b *Builder) Build(outDir string, result *resolve.PhotoResult) (string, error) {
	for _, sub := range []string{"photos", "thumbs"} {
		if err := os.MkdirAll(filepath.Join(outDir, sub), 0o755); err != nil {
			return "", fmt.Errorf("creating album folder: %w", err)
		}
	}

	contacts, photoCount := groupByContact(result)

	var bar *progressbar.ProgressBar
	if b.ShowProgress {
		bar = progressbar.NewOptions(photoCount,
			progressbar.OptionSetDescription("Building album"),
			progressbar.OptionShowCount(),
			progressbar.OptionFullWidth(),
			progressbar.OptionSetTheme(progressbar.Theme{
				Saucer:        "=",
				SaucerHead:    ">",
				SaucerPadding: " ",
				BarStart:      "[",
				BarEnd:        "]",
			}),
		)
	}

	data := pageData{}
	seq := 0
	copied := make(map[string]pagePhoto) // source path -> copied locations
	for _, pc := range contacts {
		card := pageContact{
			Name:   pc.contact.Name,
			Org:    pc.contact.Org,
			Title:  pc.contact.Title,
			Note:   pc.contact.Note,
			Phones: pc.contact.Phones,
			Emails: pc.contact.Emails,
		}
		for _, src := range pc.photos {
			if p, ok := copied[src]; ok {
				card.Photos = append(card.Photos, p)
				continue
			}
			seq++
			p, err := b.addPhoto(outDir, src, seq)
			if err != nil {
				// A broken image should not sink the whole album.
				fmt.Fprintf(os.Stderr, "Warning: skipping %s: %v\n", src, err)
				continue
			}
			copied[src] = p
			card.Photos = append(card.Photos, p)
			if bar != nil {
				bar.Add(1)
			}
		}
		data.Contacts = append(data.Contacts, card)
	}
	if bar != nil {
		fmt.Println()
	}

	for _, p := range result.UnmatchedPhotos {
		data.UnmatchedPhotos = append(data.UnmatchedPhotos, filepath.Base(p.Path))
	}
	for _, c := range result.UnmatchedContacts {
		data.UnmatchedContacts = append(data.UnmatchedContacts, c.Name)
	}

	htmlPath := filepath.Join(outDir, "album.html")
	if err := b.render(htmlPath, data); err != nil {
		return "", err
	}
	return htmlPath, nil
}

// addPhoto copies one original into the album and writes its thumbnail.
// The sequence number keeps file names unique across source directories.
func (b *Builder) addPhoto(outDir, src string, seq int) (pagePhoto, error) {
	data, err := os.ReadFile(src)
	if err != nil {
		return pagePhoto{}, err
	}

	base := fmt.Sprintf("%04d_%s", seq, filepath.Base(src))
	// Page-relative URLs use forward slashes regardless of platform.
	full := "photos/" + base
	if err := os.WriteFile(filepath.Join(outDir, "photos", base), data, 0o644); err != nil {
		return pagePhoto{}, err
	}

	thumbData, err := thumbnail(data, thumbMaxDim)
	if err != nil {
		// Keep the photo with the original as its own preview.
		return pagePhoto{Full: full, Thumb: full}, nil
	}
	thumb := "thumbs/" + base + ".jpg"
	if err := os.WriteFile(filepath.Join(outDir, "thumbs", base+".jpg"), thumbData, 0o644); err != nil {
		return pagePhoto{}, err
	}
	return pagePhoto{Full: full, Thumb: thumb}, nil
}

func (b *Builder) render(path string, data pageData) error {
	tmpl, err := template.New("album").Parse(albumTemplate)
	if err != nil {
		return fmt.Errorf("parsing album template: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating album page: %w", err)
	}
	defer f.Close()
	if err := tmpl.Execute(f, data); err != nil {
		return fmt.Errorf("rendering album page: %w", err)
	}
	return f.Close()
}

type contactPhotos struct {
	contact vcard.Contact
	photos  []string
}

// groupByContact inverts the photo-major result into contact-major cards,
// keeping contact list order and per-contact photo input order. Returns the
// total number of photo placements for progress reporting.
func groupByContact(result *resolve.PhotoResult) ([]contactPhotos, int) {
	byIndex := make(map[int]*contactPhotos)
	var order []int
	total := 0

	for _, m := range result.Matches {
		for i, idx := range m.ContactIndexes {
			cp, ok := byIndex[idx]
			if !ok {
				cp = &contactPhotos{contact: m.Contacts[i]}
				byIndex[idx] = cp
				order = append(order, idx)
			}
			cp.photos = append(cp.photos, m.Photo.Path)
			total++
		}
	}

	sort.Ints(order)
	grouped := make([]contactPhotos, 0, len(order))
	for _, idx := range order {
		grouped = append(grouped, *byIndex[idx])
	}
	return grouped, total
}
