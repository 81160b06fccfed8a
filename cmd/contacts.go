package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/kozaktomas/contact-album/internal/vcard"
)

var contactsCmd = &cobra.Command{
	Use:   "contacts [contacts.vcf]",
	Short: "Parse a vCard file and list the contacts found",
	Args:  cobra.ExactArgs(1),
	RunE:  runContacts,
}

func init() {
	rootCmd.AddCommand(contactsCmd)
}

func runContacts(cmd *cobra.Command, args []string) error {
	contacts, err := vcard.ParseFile(args[0])
	if err != nil {
		return fmt.Errorf("parsing contacts: %w", err)
	}

	for i, c := range contacts {
		line := c.Name
		if c.Org != "" {
			line += " (" + c.Org + ")"
		}
		fmt.Printf("%d. %s\n", i+1, line)
		if len(c.Phones) > 0 {
			fmt.Printf("   Phone: %s\n", strings.Join(c.Phones, ", "))
		}
		if len(c.Emails) > 0 {
			fmt.Printf("   Email: %s\n", strings.Join(c.Emails, ", "))
		}
	}
	fmt.Printf("\n%d contacts\n", len(contacts))
	return nil
}
