// Package run wires the pipeline together for one resolution: read the
// contact file, enumerate entities, extract tags, resolve, and persist the
// output. The CLI and the web server both drive it.
package run

import (
	"fmt"
	"path/filepath"
	"sync"

	"github.com/kozaktomas/contact-album/internal/album"
	"github.com/kozaktomas/contact-album/internal/config"
	"github.com/kozaktomas/contact-album/internal/export"
	"github.com/kozaktomas/contact-album/internal/resolve"
	"github.com/kozaktomas/contact-album/internal/scan"
	"github.com/kozaktomas/contact-album/internal/vcard"
	"github.com/kozaktomas/contact-album/internal/xmp"
)

// Options configures one resolution run.
type Options struct {
	Contacts     string // vCard file path
	Base         string // folder holding person sub-folders (folder mode) or photos (photo mode)
	Output       string // output directory
	Workers      int    // parallel tag extractions; <=0 means 4
	DryRun       bool   // resolve but do not write output
	ShowProgress bool
}

// PhotoTags records what was extracted from one photo, mainly for the
// debug listing in the CLI and web UI.
type PhotoTags struct {
	Path     string   `json:"path"`
	Names    []string `json:"names,omitempty"`
	Readable bool     `json:"readable"`
}

// PhotosSummary is the outcome of a photo-mode run.
type PhotosSummary struct {
	Result   *resolve.PhotoResult `json:"result"`
	Tags     []PhotoTags          `json:"tags"`
	HTMLPath string               `json:"html_path,omitempty"`
}

// Folders runs folder-mode resolution and, unless DryRun is set, exports
// per-contact summaries and photo copies under opts.Output.
func Folders(cfg *config.Config, opts Options) (*resolve.FolderResult, error) {
	contacts, err := vcard.ParseFile(opts.Contacts)
	if err != nil {
		return nil, err
	}

	dirs, err := scan.Subfolders(opts.Base, cfg.Output.ReservedDir)
	if err != nil {
		return nil, err
	}
	folders := make([]resolve.Folder, len(dirs))
	for i, dir := range dirs {
		folders[i] = resolve.Folder{Path: dir, Name: filepath.Base(dir)}
	}

	result := resolve.ResolveFolders(contacts, folders)

	if !opts.DryRun {
		exporter := export.New(cfg.Output.ReservedDir, cfg.Photo.IsImage)
		if err := exporter.Export(opts.Output, result); err != nil {
			return nil, fmt.Errorf("writing output: %w", err)
		}
	}
	return result, nil
}

// Photos runs photo-mode resolution and, unless DryRun is set, builds a
// static HTML album under opts.Output.
func Photos(cfg *config.Config, opts Options) (*PhotosSummary, error) {
	contacts, err := vcard.ParseFile(opts.Contacts)
	if err != nil {
		return nil, err
	}

	images, err := scan.Images(opts.Base, cfg.Photo.IsImage)
	if err != nil {
		return nil, err
	}

	tags := ExtractTags(cfg, images, opts.Workers)
	photos := make([]resolve.Photo, len(tags))
	for i, t := range tags {
		photos[i] = resolve.Photo{Path: t.Path, Tags: t.Names}
	}

	summary := &PhotosSummary{
		Result: resolve.ResolvePhotos(contacts, photos),
		Tags:   tags,
	}

	if !opts.DryRun {
		builder := album.Builder{ShowProgress: opts.ShowProgress}
		htmlPath, err := builder.Build(opts.Output, summary.Result)
		if err != nil {
			return nil, fmt.Errorf("building album: %w", err)
		}
		summary.HTMLPath = htmlPath
	}
	return summary, nil
}

// ExtractTags reads each photo's XMP packet and extracts person tags,
// fanning the per-photo work out over a bounded pool. Results come back in
// input order; an unreadable photo yields an empty, non-readable entry
// rather than an error. The resolution pass itself stays serial.
func ExtractTags(cfg *config.Config, paths []string, workers int) []PhotoTags {
	if workers <= 0 {
		workers = 4
	}

	extractor := xmp.NewExtractor(cfg.Tags.Sentinel, cfg.Tags.PersonPrefix)
	tags := make([]PhotoTags, len(paths))

	semaphore := make(chan struct{}, workers)
	var wg sync.WaitGroup
	for i, path := range paths {
		wg.Add(1)
		go func(idx int, p string) {
			defer wg.Done()
			semaphore <- struct{}{}
			defer func() { <-semaphore }()

			entry := PhotoTags{Path: p}
			if blob, err := scan.XMPSegment(p); err == nil && blob != nil {
				result := extractor.Extract(blob)
				entry.Names = result.Names
				entry.Readable = result.Readable
			}
			tags[idx] = entry
		}(i, path)
	}
	wg.Wait()
	return tags
}
