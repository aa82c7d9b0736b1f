package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/markpad/markpad/internal/editor"
	"github.com/markpad/markpad/internal/tui"
)

func init() {
	rootCmd.AddCommand(editCmd)
}

var editCmd = &cobra.Command{
	Use:   "edit [file]",
	Short: "Edit the current draft interactively",
	Long: `Open the two-pane editor on the current draft.
Pass a Markdown file to import its content as the new draft first.`,
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) > 1 {
			fmt.Println("Too many arguments. A single optional file is supported.")
			os.Exit(1)
		}

		session, err := newSession()
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
		defer session.Close()

		if len(args) == 1 {
			content, err := os.ReadFile(args[0])
			if err != nil {
				fmt.Println(err)
				os.Exit(1)
			}
			if err := session.ImportText(filepath.Base(args[0]), string(content)); err != nil {
				fmt.Println(err)
				os.Exit(1)
			}
		}

		if err := tui.Run(session, editor.CurrentConfig().Sharer()); err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
	},
}
