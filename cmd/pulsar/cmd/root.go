package cmd

import (
	"fmt"

	"github.com/pulsar-lang/pulsar/internal/version"
	"github.com/spf13/cobra"
)

var (
	// GitCommit and BuildDate are set by build flags.
	GitCommit = "unknown"
	BuildDate = "unknown"
)

var rootCmd = &cobra.Command{
	Use:   "pulsar",
	Short: "Pulsar stack language toolchain",
	Long: `pulsar is the reference toolchain for Pulsar, a small stack-oriented
scripting language: lex, parse, disassemble, and run .pul scripts, and embed
them in a host program via the engine in internal/vm.`,
	Version: version.Current.String(),
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.SetVersionTemplate(fmt.Sprintf(`{{with .Name}}{{printf "%%s " .}}{{end}}{{printf "version %%s" .Version}}
Commit: %s
Built:  %s
`, GitCommit, BuildDate))

	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "verbose output")
}
