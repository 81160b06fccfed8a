package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/kozaktomas/contact-album/internal/config"
	"github.com/kozaktomas/contact-album/internal/run"
)

var matchCmd = &cobra.Command{
	Use:   "match [base-folder] [contacts.vcf] [output-folder]",
	Short: "Match contacts to person folders and export them",
	Long: `Match each sub-folder of the base folder against the contacts in a
vCard file. Folder names are read as "Person Name Organization"; the
organization token disambiguates people who share a name. Every matched
folder is exported to the output folder with a contact summary text file
and a copy of its photos.`,
	Args: cobra.RangeArgs(2, 3),
	RunE: runMatch,
}

func init() {
	rootCmd.AddCommand(matchCmd)

	matchCmd.Flags().Bool("dry-run", false, "Resolve and report without writing any output")
}

func runMatch(cmd *cobra.Command, args []string) error {
	dryRun := mustGetBool(cmd, "dry-run")
	if len(args) < 3 && !dryRun {
		return fmt.Errorf("output folder is required unless --dry-run is set")
	}

	opts := run.Options{
		Contacts: args[1],
		Base:     args[0],
		DryRun:   dryRun,
	}
	if len(args) == 3 {
		opts.Output = args[2]
	}

	cfg := config.Load()
	result, err := run.Folders(cfg, opts)
	if err != nil {
		return fmt.Errorf("matching failed: %w", err)
	}

	fmt.Printf("Matched: %d folders\n", len(result.Matches))
	for _, m := range result.Matches {
		if m.Contact.Org != "" {
			fmt.Printf("  %s -> %s (%s)\n", m.Folder.Name, m.Contact.Name, m.Contact.Org)
		} else {
			fmt.Printf("  %s -> %s\n", m.Folder.Name, m.Contact.Name)
		}
	}

	if len(result.UnmatchedFolders) > 0 {
		fmt.Printf("\nUnmatched folders (%d):\n", len(result.UnmatchedFolders))
		for _, f := range result.UnmatchedFolders {
			fmt.Printf("  - %s\n", f.Name)
		}
	}
	if len(result.UnmatchedContacts) > 0 {
		fmt.Printf("\nUnmatched contacts (%d):\n", len(result.UnmatchedContacts))
		for _, c := range result.UnmatchedContacts {
			if c.Org != "" {
				fmt.Printf("  - %s (%s)\n", c.Name, c.Org)
			} else {
				fmt.Printf("  - %s\n", c.Name)
			}
		}
	}

	if !dryRun {
		fmt.Printf("\nOutput written to %s\n", opts.Output)
	}
	return nil
}
