package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/cwbudde/glox/internal/lexer"
	"github.com/spf13/cobra"
	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

var (
	lexEval   string
	lexJSON   bool
	lexFilter string
)

var lexCmd = &cobra.Command{
	Use:   "lex [file]",
	Short: "Tokenize a Lox file and print the token stream",
	Long: `Tokenize (lex) a Lox program and print the resulting tokens,
one per line. Reads from stdin if no file is given.

Examples:
  glox lex script.lox
  glox lex -e "var x = 1;"
  glox lex --json script.lox
  glox lex --json --filter "#.kind" script.lox`,
	Args: cobra.MaximumNArgs(1),
	RunE: runLex,
}

func init() {
	rootCmd.AddCommand(lexCmd)

	lexCmd.Flags().StringVarP(&lexEval, "eval", "e", "", "tokenize inline code instead of reading from a file")
	lexCmd.Flags().BoolVar(&lexJSON, "json", false, "print the token stream as a JSON array")
	lexCmd.Flags().StringVar(&lexFilter, "filter", "", "gjson path evaluated against the --json output")
}

func runLex(cmd *cobra.Command, args []string) error {
	input, err := readInput(lexEval, args)
	if err != nil {
		return err
	}

	tokens := lexer.New(input).ScanTokens()

	if !lexJSON {
		for _, tok := range tokens {
			fmt.Println(tok.String())
		}
		return nil
	}

	doc := "[]"
	for i, tok := range tokens {
		prefix := fmt.Sprintf("%d", i)
		doc, err = sjson.Set(doc, prefix+".kind", tok.Kind.String())
		if err != nil {
			return err
		}
		doc, err = sjson.Set(doc, prefix+".lexeme", tok.Lexeme)
		if err != nil {
			return err
		}
		doc, err = sjson.Set(doc, prefix+".line", tok.Line)
		if err != nil {
			return err
		}
		if tok.Literal != nil {
			doc, err = sjson.Set(doc, prefix+".literal", tok.Literal)
			if err != nil {
				return err
			}
		}
	}

	if lexFilter != "" {
		fmt.Println(gjson.Get(doc, lexFilter).String())
		return nil
	}
	fmt.Println(doc)
	return nil
}

// readInput resolves a command's input source from, in priority
// order, an inline --eval string, a positional file argument, or
// stdin (mirrors `glox parse`'s and `glox resolve`'s input handling).
func readInput(eval string, args []string) (string, error) {
	if eval != "" {
		return eval, nil
	}
	if len(args) == 1 {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return "", fmt.Errorf("error reading file: %w", err)
		}
		return string(data), nil
	}
	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", fmt.Errorf("error reading stdin: %w", err)
	}
	return string(data), nil
}
