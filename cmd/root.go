package cmd

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "contact-album",
	Short: "Match vCard contacts to photo folders and tagged photographs",
	Long: `Contact Album resolves the people in a vCard contact file against a
photo collection: either sub-folders named after people (one folder per
person, exported with a contact summary and their photos) or individual
photographs carrying embedded face tags (rendered as a searchable HTML
album).`,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)
}

func initConfig() {
	// .env file is optional, don't fail if not found
	_ = godotenv.Load()
}
