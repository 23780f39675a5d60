package cmd

import (
	"fmt"
	"os"

	"github.com/cwbudde/glox/internal/ast"
	"github.com/cwbudde/glox/internal/diagnostics"
	"github.com/cwbudde/glox/internal/lexer"
	"github.com/cwbudde/glox/internal/parser"
	"github.com/spf13/cobra"
	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

var (
	parseEval   string
	parseJSON   bool
	parseFilter string
)

var parseCmd = &cobra.Command{
	Use:   "parse [file]",
	Short: "Parse a Lox file and print its AST",
	Long: `Parse a Lox program and print the Abstract Syntax Tree in a
parenthesized debug form, or as JSON with --json.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runParse,
}

func init() {
	rootCmd.AddCommand(parseCmd)

	parseCmd.Flags().StringVarP(&parseEval, "eval", "e", "", "parse inline code instead of reading from a file")
	parseCmd.Flags().BoolVar(&parseJSON, "json", false, "print the parsed tree as JSON ({\"tree\": \"...\", \"errors\": [...]})")
	parseCmd.Flags().StringVar(&parseFilter, "filter", "", "gjson path evaluated against the --json output")
}

func runParse(cmd *cobra.Command, args []string) error {
	input, err := readInput(parseEval, args)
	if err != nil {
		return err
	}

	tokens := lexer.New(input).ScanTokens()
	collector := &diagnostics.Collector{}
	stmts := parser.New(tokens, collector).Parse()

	if !parseJSON {
		if collector.HadError() {
			for _, e := range collector.Errors() {
				fmt.Fprint(os.Stderr, e.Format())
			}
			os.Exit(65)
		}
		fmt.Print(ast.PrintStmts(stmts))
		return nil
	}

	doc := "{}"
	doc, err = sjson.Set(doc, "tree", ast.PrintStmts(stmts))
	if err != nil {
		return err
	}
	for i, e := range collector.Errors() {
		prefix := fmt.Sprintf("errors.%d", i)
		doc, err = sjson.Set(doc, prefix+".line", e.Line)
		if err != nil {
			return err
		}
		doc, err = sjson.Set(doc, prefix+".message", e.Message)
		if err != nil {
			return err
		}
	}

	if parseFilter != "" {
		fmt.Println(gjson.Get(doc, parseFilter).String())
		return nil
	}
	fmt.Println(doc)
	if collector.HadError() {
		os.Exit(65)
	}
	return nil
}
