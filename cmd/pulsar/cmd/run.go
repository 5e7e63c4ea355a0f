package cmd

import (
	"fmt"

	"github.com/pulsar-lang/pulsar/internal/natives"
	"github.com/pulsar-lang/pulsar/internal/vm"
	"github.com/kr/pretty"
	"github.com/spf13/cobra"
)

var (
	entryFunc  string
	dumpFrames bool
)

var runCmd = &cobra.Command{
	Use:   "run [file]",
	Short: "Compile and run a Pulsar source file",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runScript,
}

func init() {
	rootCmd.AddCommand(runCmd)
	runCmd.Flags().StringVarP(&evalExpr, "eval", "e", "", "run inline source instead of reading from file")
	runCmd.Flags().StringVar(&entryFunc, "entry", "main", "name of the function to run")
	runCmd.Flags().BoolVar(&dumpFrames, "dump-frames", false, "on a runtime error, also pretty-print the live call frames before the stack trace")
}

func runScript(cmd *cobra.Command, args []string) error {
	input, filename, err := readSource(args)
	if err != nil {
		return err
	}
	mod, err := compileSource(input, filename)
	if err != nil {
		return err
	}
	natives.Install(mod)

	entryIdx, ok := mod.FindFunctionByName(entryFunc)
	if !ok {
		return fmt.Errorf("no function named %q", entryFunc)
	}

	ctx := vm.NewExecutionContext(mod)
	if state := ctx.PushEntryFrame(entryIdx, nil); state != vm.OK {
		return fmt.Errorf("failed to start %s: %s", entryFunc, state)
	}
	if state := ctx.Run(); state != vm.OK {
		trace := ctx.CaptureStackTrace()
		if dumpFrames {
			fmt.Fprintf(cmd.ErrOrStderr(), "%# v\n", pretty.Formatter(ctx.CallStack))
		}
		if len(trace) > 0 {
			return fmt.Errorf("runtime error: %s\n%s", state, trace)
		}
		return fmt.Errorf("runtime error: %s", state)
	}
	for _, v := range ctx.Result() {
		fmt.Println(v.String())
	}
	return nil
}
