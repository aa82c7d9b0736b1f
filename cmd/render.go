package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/markpad/markpad/pkg/markdown"
)

func init() {
	rootCmd.AddCommand(renderCmd)
}

var renderCmd = &cobra.Command{
	Use:   "render [file]",
	Short: "Render a document to HTML",
	Long:  `Render the current draft, or the given Markdown file, to HTML on stdout.`,
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) > 1 {
			fmt.Println("Too many arguments. A single optional file is supported.")
			os.Exit(1)
		}

		var text string
		if len(args) == 1 {
			content, err := os.ReadFile(args[0])
			if err != nil {
				fmt.Println(err)
				os.Exit(1)
			}
			text = string(content)
		} else {
			session, err := newSession()
			if err != nil {
				fmt.Println(err)
				os.Exit(1)
			}
			defer session.Close()
			text = session.Text()
		}

		fmt.Print(markdown.ToHTML(text))
	},
}
