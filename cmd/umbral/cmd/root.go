package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Version information, overridable by build flags.
var (
	Version   = "0.1.0-dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "umbral",
	Short: "Umbral interpreter and REPL",
	Long: `umbral is a Go implementation of the Umbral scripting language.

Umbral is a small, dynamically-typed, multi-paradigm scripting language
with a terse two-letter-prefix surface syntax (v:, c:, f:, cs:, i:, fo:,
wh:, r:, ...), closures, classes, cooperative async/await, and a module
system.`,
	Version: Version,
}

// Execute runs the root command, returning any error from the selected
// subcommand so main can translate it into an exit code.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.SetVersionTemplate(fmt.Sprintf(`{{with .Name}}{{printf "%%s " .}}{{end}}{{printf "version %%s" .Version}}
Commit: %s
Built:  %s
`, GitCommit, BuildDate))

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}

func exitWithError(msg string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+msg+"\n", args...)
	os.Exit(1)
}
