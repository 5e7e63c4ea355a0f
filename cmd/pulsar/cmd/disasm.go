package cmd

import (
	"fmt"
	"os"
	"sort"

	"github.com/maruel/natural"
	"github.com/spf13/cobra"
)

var showManifest bool

var disasmCmd = &cobra.Command{
	Use:   "disasm [file]",
	Short: "Disassemble a Pulsar source file's compiled bytecode",
	Args:  cobra.MaximumNArgs(1),
	RunE:  disasmScript,
}

func init() {
	rootCmd.AddCommand(disasmCmd)
	disasmCmd.Flags().StringVarP(&evalExpr, "eval", "e", "", "disassemble inline source instead of reading from file")
	disasmCmd.Flags().BoolVar(&showManifest, "manifest", false, "print the declaration manifest instead of bytecode")
}

func disasmScript(cmd *cobra.Command, args []string) error {
	input, filename, err := readSource(args)
	if err != nil {
		return err
	}
	mod, err := compileSource(input, filename)
	if err != nil {
		return err
	}

	if showManifest {
		out, err := mod.DumpManifest()
		if err != nil {
			return err
		}
		fmt.Print(string(out))
		return nil
	}

	names := make([]string, len(mod.Functions))
	byName := make(map[string]int, len(mod.Functions))
	for i, def := range mod.Functions {
		names[i] = def.Signature.Name
		byName[def.Signature.Name] = i
	}
	sort.Slice(names, func(i, j int) bool { return natural.Less(names[i], names[j]) })

	for _, name := range names {
		if err := mod.Disassemble(os.Stdout, byName[name]); err != nil {
			return err
		}
	}
	return nil
}
