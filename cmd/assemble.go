package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/lookbusy1344/rv32sim/loader"
	"github.com/lookbusy1344/rv32sim/vm"
)

var assembleOut string

var assembleCmd = &cobra.Command{
	Use:   "assemble <source.asm>",
	Short: "Assemble a source file into an object file",
	Args:  cobra.ExactArgs(1),
	RunE: func(c *cobra.Command, args []string) error {
		return doAssemble(args[0], assembleOut)
	},
}

func init() {
	assembleCmd.Flags().StringVarP(&assembleOut, "output", "o", "output.txt", "object file to write")
}

func doAssemble(srcPath, objPath string) error {
	src, err := os.Open(srcPath) // #nosec G304 -- user-supplied source path
	if err != nil {
		return fmt.Errorf("opening source file: %w", err)
	}
	defer src.Close()

	mem := vm.NewMemory(flagMemWords)
	result, err := loader.Assemble(src, mem, srcPath, flagProgramStart)
	if err != nil {
		return fmt.Errorf("assembling %s: %w", srcPath, err)
	}
	for _, w := range result.Warnings {
		fmt.Fprintln(os.Stderr, "warning:", w)
	}

	out, err := os.Create(objPath) // #nosec G304 -- user-supplied output path
	if err != nil {
		return fmt.Errorf("creating object file: %w", err)
	}
	defer out.Close()

	if err := loader.WriteObjectFile(out, result.Words); err != nil {
		return fmt.Errorf("writing object file: %w", err)
	}

	fmt.Printf("assembled %d instructions into %s\n", len(result.Words), objPath)
	return nil
}
