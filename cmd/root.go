package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/markpad/markpad/internal/editor"
)

var verboseInfo bool
var verboseDebug bool
var verboseTrace bool

var rootCmd = &cobra.Command{
	Use:   "markpad",
	Short: "Markpad is a Markdown scratchpad that lives in a link",
	Long:  `A distraction-free Markdown editor whose documents travel as compressed, shareable URLs.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		CheckConfig()

		// Enable verbose output. The most verbose level wins when multiple flags are passed.
		if verboseInfo {
			editor.CurrentConfig().SetVerboseLevel(editor.VerboseInfo)
		}
		if verboseDebug {
			editor.CurrentConfig().SetVerboseLevel(editor.VerboseDebug)
		}
		if verboseTrace {
			editor.CurrentConfig().SetVerboseLevel(editor.VerboseTrace)
		}
	},
}

func init() {
	// Use PersistentFlags to make flags accessible to sub-commands
	rootCmd.PersistentFlags().BoolVarP(&verboseInfo, "v", "", false, "enable verbose info output")
	rootCmd.PersistentFlags().BoolVarP(&verboseDebug, "vv", "", false, "enable verbose debug output")
	rootCmd.PersistentFlags().BoolVarP(&verboseTrace, "vvv", "", false, "enable verbose trace output")
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func CheckConfig() {
	editor.CurrentConfig()
}

// newSession opens the configured draft store and restores the last draft.
func newSession() (*editor.Session, error) {
	config := editor.CurrentConfig()
	store, err := config.DraftStore()
	if err != nil {
		return nil, err
	}
	return editor.NewSession(store, config.SessionOptions()...), nil
}
