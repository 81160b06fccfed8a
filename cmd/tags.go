package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/kozaktomas/contact-album/internal/config"
	"github.com/kozaktomas/contact-album/internal/run"
	"github.com/kozaktomas/contact-album/internal/scan"
)

var tagsCmd = &cobra.Command{
	Use:   "tags [photos-folder]",
	Short: "List the person tags extracted from each photo",
	Long: `Scan the photos folder recursively and print the person tags found in
each photo's embedded XMP metadata. Useful for checking what the album
command will see before matching against contacts.`,
	Args: cobra.ExactArgs(1),
	RunE: runTags,
}

func init() {
	rootCmd.AddCommand(tagsCmd)

	tagsCmd.Flags().Int("workers", 4, "Number of parallel tag extractions")
	tagsCmd.Flags().Bool("all", false, "Also list photos without any tags")
}

func runTags(cmd *cobra.Command, args []string) error {
	cfg := config.Load()

	images, err := scan.Images(args[0], cfg.Photo.IsImage)
	if err != nil {
		return fmt.Errorf("scanning photos: %w", err)
	}

	tags := run.ExtractTags(cfg, images, mustGetInt(cmd, "workers"))
	showAll := mustGetBool(cmd, "all")

	tagged := 0
	for _, t := range tags {
		if len(t.Names) > 0 {
			tagged++
			fmt.Printf("%s: %s\n", t.Path, strings.Join(t.Names, ", "))
			continue
		}
		if !showAll {
			continue
		}
		if t.Readable {
			fmt.Printf("%s: (no tags)\n", t.Path)
		} else {
			fmt.Printf("%s: (no readable metadata)\n", t.Path)
		}
	}

	fmt.Printf("\n%d of %d photos carry person tags\n", tagged, len(tags))
	return nil
}
