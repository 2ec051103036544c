package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/hersac/umbral/pkg/umbral"
)

var evalExpr string

var runCmd = &cobra.Command{
	Use:   "run [file]",
	Short: "Run an Umbral script or expression",
	Long: `Execute an Umbral program from a file or an inline expression.

Examples:
  # Run a script file
  umbral run script.um

  # Evaluate inline source
  umbral run -e "tprint('hello');"`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScript,
}

func init() {
	rootCmd.AddCommand(runCmd)
	runCmd.Flags().StringVarP(&evalExpr, "eval", "e", "", "evaluate inline source instead of reading from a file")
}

func runScript(_ *cobra.Command, args []string) error {
	useColor := isTerminal(os.Stderr)

	if evalExpr != "" {
		m := umbral.New(".", umbral.WithColor(useColor))
		if err := m.Run(evalExpr, "<eval>"); err != nil {
			return fmt.Errorf("execution failed")
		}
		return nil
	}

	if len(args) != 1 {
		return fmt.Errorf("either provide a file path or use -e for inline source")
	}

	if err := umbral.RunFile(args[0], umbral.WithColor(useColor)); err != nil {
		return fmt.Errorf("execution failed")
	}
	return nil
}
