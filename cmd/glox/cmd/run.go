package cmd

import (
	"fmt"
	"os"

	"github.com/cwbudde/glox/internal/config"
	"github.com/cwbudde/glox/pkg/glox"
	"github.com/spf13/cobra"
)

var (
	evalExpr  string
	loadFile  string
	forceREPL bool
	traceFlag bool
)

var runCmd = &cobra.Command{
	Use:   "run [script]",
	Short: "Run a Lox script, or start the REPL",
	Long: `Execute a Lox program from a file or inline expression, or
start the REPL if neither is given (§6 of the language spec).

Examples:
  glox run script.lox
  glox run -e "print \"hello\";"
  glox run -i script.lox      # drop into the REPL after the script
  glox run -l lib.lox script.lox`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScript,
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringVarP(&evalExpr, "eval", "e", "", "evaluate inline code instead of reading from a file")
	runCmd.Flags().StringVarP(&loadFile, "load", "l", "", "run an additional file before the main script")
	runCmd.Flags().BoolVarP(&forceREPL, "interactive", "i", false, "enter the REPL after running the script")
	runCmd.Flags().BoolVar(&traceFlag, "trace", false, "trace statement execution to stderr")
}

func runScript(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	verbose, _ := cmd.Flags().GetBool("verbose")
	if verbose {
		source := cfg.Source
		if source == "" {
			source = "(none, using defaults)"
		}
		fmt.Fprintf(os.Stderr, "[verbose] config: %s\n", source)
		fmt.Fprintf(os.Stderr, "[verbose] maxCallDepth=%d natives=%v replPrompt=%q\n", cfg.MaxCallDepth, cfg.Natives, cfg.ReplPrompt)
	}

	d := glox.New(os.Stdout, os.Stderr, cfg)
	if traceFlag {
		d.SetTracer(os.Stderr)
	}

	if loadFile != "" {
		content, err := os.ReadFile(loadFile)
		if err != nil {
			return fmt.Errorf("failed to read load file %s: %w", loadFile, err)
		}
		if code := d.Run(string(content)); code != glox.ExitOK {
			os.Exit(code)
		}
	}

	switch {
	case evalExpr != "":
		code := d.Run(evalExpr)
		if forceREPL {
			d.RunREPL(os.Stdin, cfg.ReplPrompt)
			return nil
		}
		os.Exit(code)

	case len(args) == 1:
		content, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("failed to read file %s: %w", args[0], err)
		}
		code := d.Run(string(content))
		if forceREPL {
			d.RunREPL(os.Stdin, cfg.ReplPrompt)
			return nil
		}
		os.Exit(code)

	default:
		d.RunREPL(os.Stdin, cfg.ReplPrompt)
	}

	return nil
}
