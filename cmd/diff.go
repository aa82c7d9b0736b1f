package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	godiffpatch "github.com/sourcegraph/go-diff-patch"
	"github.com/spf13/cobra"

	"github.com/markpad/markpad/internal/helpers"
)

func init() {
	rootCmd.AddCommand(diffCmd)
}

var diffCmd = &cobra.Command{
	Use:   "diff <file>",
	Short: "Show changes between the draft and a file",
	Long:  `Show a unified diff between the given Markdown file and the current draft.`,
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) != 1 {
			fmt.Println("A single file to compare against is required.")
			os.Exit(1)
		}

		content, err := os.ReadFile(args[0])
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}

		session, err := newSession()
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
		defer session.Close()

		if helpers.Hash([]byte(session.Text())) == helpers.Hash(content) {
			return // Identical, nothing to show
		}

		patch := godiffpatch.GeneratePatch(args[0], string(content), session.Text())
		printDiff(patch)
	},
}

func printDiff(diff string) {
	for _, line := range strings.Split(diff, "\n") {
		if strings.HasPrefix(line, "-") && !strings.HasPrefix(line, "---") {
			color.Red(line)
		} else if strings.HasPrefix(line, "+") && !strings.HasPrefix(line, "+++") {
			color.Green(line)
		} else {
			println(line)
		}
	}
}
