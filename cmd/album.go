package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/kozaktomas/contact-album/internal/config"
	"github.com/kozaktomas/contact-album/internal/run"
)

var albumCmd = &cobra.Command{
	Use:   "album [photos-folder] [contacts.vcf] [output-folder]",
	Short: "Build a searchable HTML album from tagged photographs",
	Long: `Scan the photos folder recursively, read the person tags embedded in
each photo's XMP metadata, match them against the contacts in a vCard
file, and render a self-contained searchable HTML album grouped by
contact. A photo tagged with several known people appears under each of
them.`,
	Args: cobra.RangeArgs(2, 3),
	RunE: runAlbum,
}

func init() {
	rootCmd.AddCommand(albumCmd)

	albumCmd.Flags().Bool("dry-run", false, "Resolve and report without building the album")
	albumCmd.Flags().Int("workers", 4, "Number of parallel tag extractions")
}

func runAlbum(cmd *cobra.Command, args []string) error {
	dryRun := mustGetBool(cmd, "dry-run")
	if len(args) < 3 && !dryRun {
		return fmt.Errorf("output folder is required unless --dry-run is set")
	}

	opts := run.Options{
		Contacts:     args[1],
		Base:         args[0],
		Workers:      mustGetInt(cmd, "workers"),
		DryRun:       dryRun,
		ShowProgress: true,
	}
	if len(args) == 3 {
		opts.Output = args[2]
	}

	cfg := config.Load()
	summary, err := run.Photos(cfg, opts)
	if err != nil {
		return fmt.Errorf("building album failed: %w", err)
	}

	result := summary.Result
	fmt.Printf("Photos scanned: %d\n", len(summary.Tags))
	fmt.Printf("Photos matched: %d\n", len(result.Matches))

	// Per-contact photo counts, in contact list order.
	counts := make(map[string]int)
	var names []string
	for _, m := range result.Matches {
		for _, c := range m.Contacts {
			if counts[c.Name] == 0 {
				names = append(names, c.Name)
			}
			counts[c.Name]++
		}
	}
	for i, name := range names {
		fmt.Printf("  %d. %s: %d photos\n", i+1, name, counts[name])
	}

	if len(result.UnmatchedPhotos) > 0 {
		fmt.Printf("\nUnmatched photos (%d):\n", len(result.UnmatchedPhotos))
		limit := min(len(result.UnmatchedPhotos), 10)
		for _, p := range result.UnmatchedPhotos[:limit] {
			fmt.Printf("  - %s\n", p.Path)
		}
		if rest := len(result.UnmatchedPhotos) - limit; rest > 0 {
			fmt.Printf("  ... and %d more\n", rest)
		}
	}
	if len(result.UnmatchedContacts) > 0 {
		fmt.Printf("\nUnmatched contacts (%d):\n", len(result.UnmatchedContacts))
		for _, c := range result.UnmatchedContacts {
			fmt.Printf("  - %s\n", c.Name)
		}
	}

	if summary.HTMLPath != "" {
		fmt.Printf("\nAlbum written to %s\n", summary.HTMLPath)
	}
	return nil
}
