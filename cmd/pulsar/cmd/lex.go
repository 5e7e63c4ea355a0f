package cmd

import (
	"fmt"
	"os"

	"github.com/pulsar-lang/pulsar/internal/lexer"
	"github.com/spf13/cobra"
)

var (
	evalExpr   string
	showPos    bool
	onlyErrors bool
)

var lexCmd = &cobra.Command{
	Use:   "lex [file]",
	Short: "Tokenize a Pulsar source file",
	Long: `Tokenize a Pulsar program and print the resulting tokens, one per line.

Examples:
  pulsar lex script.pul
  pulsar lex -e "(main) 1 2 + println! end"
  pulsar lex --show-pos script.pul
  pulsar lex --only-errors script.pul`,
	Args: cobra.MaximumNArgs(1),
	RunE: lexScript,
}

func init() {
	rootCmd.AddCommand(lexCmd)
	lexCmd.Flags().StringVarP(&evalExpr, "eval", "e", "", "tokenize inline source instead of reading from file")
	lexCmd.Flags().BoolVar(&showPos, "show-pos", false, "show token positions (line:column)")
	lexCmd.Flags().BoolVar(&onlyErrors, "only-errors", false, "show only illegal tokens")
}

func readSource(args []string) (source, name string, err error) {
	if evalExpr != "" {
		return evalExpr, "<eval>", nil
	}
	if len(args) == 1 {
		content, err := os.ReadFile(args[0])
		if err != nil {
			return "", "", fmt.Errorf("failed to read file %s: %w", args[0], err)
		}
		return string(content), args[0], nil
	}
	return "", "", fmt.Errorf("either provide a file path or use -e for inline source")
}

func lexScript(cmd *cobra.Command, args []string) error {
	input, _, err := readSource(args)
	if err != nil {
		return err
	}

	l := lexer.New(input)
	errorCount := 0
	for {
		tok := l.NextToken()
		if tok.Type == lexer.ILLEGAL {
			errorCount++
		}
		if !onlyErrors || tok.Type == lexer.ILLEGAL {
			printToken(tok)
		}
		if tok.Type == lexer.EOF {
			break
		}
	}
	for _, lerr := range l.Errors() {
		fmt.Fprintf(os.Stderr, "lex error at %s: %s\n", lerr.Pos, lerr.Message)
	}
	if errorCount > 0 {
		return fmt.Errorf("found %d illegal token(s)", errorCount)
	}
	return nil
}

func printToken(tok lexer.Token) {
	output := fmt.Sprintf("[%-14s] %s", tok.Type.String(), tok.String())
	if showPos {
		output += fmt.Sprintf(" @%s", tok.Pos)
	}
	fmt.Println(output)
}
