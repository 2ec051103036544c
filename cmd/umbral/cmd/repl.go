package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/peterh/liner"
	"github.com/spf13/cobra"

	"github.com/hersac/umbral/pkg/umbral"
)

var (
	green = color.New(color.FgGreen).SprintFunc()
	red   = color.New(color.FgRed).SprintFunc()
	dim   = color.New(color.Faint).SprintFunc()
	bold  = color.New(color.Bold).SprintFunc()
)

var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "Start an interactive Umbral session",
	RunE: func(cmd *cobra.Command, args []string) error {
		runREPL(os.Stdin, os.Stdout)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(replCmd)
}

// runREPL drives a read-eval-print loop over a single persistent Machine,
// buffering lines until brackets and string delimiters balance, per spec
// §6's multi-line input rule.
func runREPL(in io.Reader, out io.Writer) {
	line := liner.NewLiner()
	defer line.Close()
	line.SetMultiLineMode(true)

	historyFile := filepath.Join(os.TempDir(), ".umbral_history")
	if f, err := os.Open(historyFile); err == nil {
		_, _ = line.ReadHistory(f)
		f.Close()
	}

	wd, _ := os.Getwd()
	useColor := isTerminal(os.Stdout)
	m := umbral.New(wd, umbral.WithStdout(out), umbral.WithStderr(out), umbral.WithColor(useColor))

	fmt.Fprintf(out, "%s\n", bold("Umbral "+Version))
	fmt.Fprintln(out, dim("Type :help for help, :exit to quit, :clear to reset state"))

	line.SetCompleter(func(s string) (c []string) {
		if strings.HasPrefix(s, ":") {
			for _, cmd := range []string{":help", ":exit", ":clear"} {
				if strings.HasPrefix(cmd, s) {
					c = append(c, cmd)
				}
			}
		}
		return
	})

	var buf []string
	depth := 0
	for {
		prompt := "umbral> "
		if len(buf) > 0 {
			prompt = "   ...> "
		}
		input, err := line.Prompt(prompt)
		if err == io.EOF {
			fmt.Fprintln(out, green("\nbye"))
			break
		}
		if err != nil {
			fmt.Fprintf(out, "%s: %v\n", red("error"), err)
			continue
		}

		if len(buf) == 0 {
			trimmed := strings.TrimSpace(input)
			switch trimmed {
			case "":
				continue
			case ":exit", ":quit":
				fmt.Fprintln(out, green("bye"))
				goto done
			case ":help":
				printReplHelp(out)
				continue
			case ":clear":
				m = umbral.New(wd, umbral.WithStdout(out), umbral.WithStderr(out), umbral.WithColor(useColor))
				fmt.Fprintln(out, dim("state cleared"))
				continue
			}
		}

		line.AppendHistory(input)
		buf = append(buf, input)
		depth += bracketDelta(input)

		if depth > 0 {
			continue
		}
		depth = 0

		source := strings.Join(buf, "\n")
		buf = nil
		_ = m.Run(source, "<repl>")
	}
done:

	if f, err := os.Create(historyFile); err == nil {
		_, _ = line.WriteHistory(f)
		f.Close()
	}
}

func printReplHelp(out io.Writer) {
	fmt.Fprintln(out, "  :help   show this message")
	fmt.Fprintln(out, "  :clear  discard all variables, classes, and functions")
	fmt.Fprintln(out, "  :exit   leave the REPL")
}

// bracketDelta scans a line and returns the net change in `(`/`[`/`{`
// nesting depth, ignoring bracket characters inside "..." and '...'
// string literals (including triple-single '''...''' delimiters), per
// spec §6's multi-line continuation heuristic.
func bracketDelta(line string) int {
	delta := 0
	runes := []rune(line)
	i := 0
	for i < len(runes) {
		c := runes[i]
		switch {
		case c == '\\' && i+1 < len(runes):
			i += 2
			continue
		case c == '\'' && i+2 < len(runes) && runes[i+1] == '\'' && runes[i+2] == '\'':
			i += 3
			end := indexOfTriple(runes, i)
			if end < 0 {
				return delta
			}
			i = end + 3
			continue
		case c == '"':
			i++
			for i < len(runes) && runes[i] != '"' {
				if runes[i] == '\\' {
					i++
				}
				i++
			}
			i++
			continue
		case c == '\'':
			i++
			for i < len(runes) && runes[i] != '\'' {
				if runes[i] == '\\' {
					i++
				}
				i++
			}
			i++
			continue
		case c == '(' || c == '[' || c == '{':
			delta++
		case c == ')' || c == ']' || c == '}':
			delta--
		}
		i++
	}
	return delta
}

func indexOfTriple(runes []rune, from int) int {
	for j := from; j+2 < len(runes); j++ {
		if runes[j] == '\'' && runes[j+1] == '\'' && runes[j+2] == '\'' {
			return j
		}
	}
	return -1
}
