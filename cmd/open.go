package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/markpad/markpad/internal/editor"
)

var openSave bool

func init() {
	openCmd.Flags().BoolVarP(&openSave, "save", "s", false, "Replace the current draft with the decoded document")
	rootCmd.AddCommand(openCmd)
}

var openCmd = &cobra.Command{
	Use:   "open <url>",
	Short: "Decode a share link",
	Long: `Decode the document embedded in a share link and print it.
With --save, the decoded document also replaces the current draft.`,
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) != 1 {
			fmt.Println("A single share link is required.")
			os.Exit(1)
		}

		text, err := editor.ParseShareReference(args[0])
		switch {
		case errors.Is(err, editor.ErrShareAbsent):
			fmt.Fprintln(os.Stderr, "This link does not carry a document.")
			os.Exit(1)
		case errors.Is(err, editor.ErrShareEmpty):
			fmt.Fprintln(os.Stderr, "This link carries an empty document.")
			os.Exit(1)
		case err != nil:
			fmt.Fprintln(os.Stderr, "This link is damaged and cannot be decoded.")
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}

		fmt.Print(text)

		if openSave {
			store, err := editor.CurrentConfig().DraftStore()
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(1)
			}
			if err := store.Save(text); err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(1)
			}
		}
	},
}
