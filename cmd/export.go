package cmd

import (
	"fmt"
	"os"

	"github.com/gosimple/slug"
	"github.com/spf13/cobra"

	"github.com/markpad/markpad/pkg/markdown"
)

var exportOutput string

func init() {
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "Destination file (default is derived from the document title)")
	rootCmd.AddCommand(exportCmd)
}

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the current draft to a Markdown file",
	Long: `Write the current draft, byte for byte, to a Markdown file.
The file name is derived from the first heading unless --output is given.`,
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) > 0 {
			fmt.Println("Too many arguments. No argument is supported.")
			os.Exit(1)
		}

		session, err := newSession()
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
		defer session.Close()

		path := exportOutput
		if path == "" {
			title := markdown.Title(session.Text())
			if title == "" {
				title = "untitled"
			}
			path = slug.Make(title) + ".md"
		}

		if err := os.WriteFile(path, []byte(session.Text()), 0644); err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
		fmt.Printf("Draft exported to %s\n", path)
	},
}
