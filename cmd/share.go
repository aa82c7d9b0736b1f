package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/pkg/browser"
	"github.com/spf13/cobra"

	"github.com/markpad/markpad/internal/editor"
)

var shareOpen bool

func init() {
	shareCmd.Flags().BoolVarP(&shareOpen, "open", "o", false, "Open the share link in the default browser")
	rootCmd.AddCommand(shareCmd)
}

var shareCmd = &cobra.Command{
	Use:   "share [file]",
	Short: "Turn the current draft into a shareable link",
	Long: `Encode the current draft, or the given Markdown file, into a
self-contained URL. Documents too large for a direct link are shortened
when a shortening service is configured.`,
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

		result := editor.CurrentConfig().Sharer().BuildShareReference(context.Background(), text)
		switch result.Kind {
		case editor.ShareDirect:
			fmt.Println(result.URL)
		case editor.ShareShortened:
			fmt.Println(result.URL)
			fmt.Fprintln(os.Stderr, "Note: the draft was too large for a direct link and was shortened.")
		case editor.ShareTooLarge:
			fmt.Fprintln(os.Stderr, "The draft is too large to share as a link.")
			fmt.Fprintln(os.Stderr, "Export it as a file instead (markpad export) or paste the raw content.")
			os.Exit(1)
		}

		if shareOpen {
			if err := browser.OpenURL(result.URL); err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(1)
			}
		}
	},
}
