package cmd

import (
	"fmt"

	pulsarerrors "github.com/pulsar-lang/pulsar/internal/errors"
	"github.com/pulsar-lang/pulsar/internal/module"
	"github.com/pulsar-lang/pulsar/internal/parser"
	"github.com/spf13/cobra"
)

var parseCmd = &cobra.Command{
	Use:   "parse [file]",
	Short: "Parse a Pulsar source file and print its declaration manifest",
	Args:  cobra.MaximumNArgs(1),
	RunE:  parseScript,
}

func init() {
	rootCmd.AddCommand(parseCmd)
	parseCmd.Flags().StringVarP(&evalExpr, "eval", "e", "", "parse inline source instead of reading from file")
}

func compileSource(input, filename string) (*module.Module, error) {
	p := parser.New(input)
	mod := module.New()
	if result := p.ParseIntoModule(mod); result != parser.OK {
		tok := p.GetLastErrorToken()
		cerr := pulsarerrors.NewCompilerError(tok.Pos, fmt.Sprintf("%s: %s", result, p.GetLastErrorMessage()), input, filename)
		return nil, fmt.Errorf("%s", cerr.Format(false))
	}
	return mod, nil
}

func parseScript(cmd *cobra.Command, args []string) error {
	input, filename, err := readSource(args)
	if err != nil {
		return err
	}
	mod, err := compileSource(input, filename)
	if err != nil {
		return err
	}
	out, err := mod.DumpManifest()
	if err != nil {
		return err
	}
	fmt.Print(string(out))
	return nil
}
