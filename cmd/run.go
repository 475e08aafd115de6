package cmd

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/lookbusy1344/rv32sim/clockctl"
	"github.com/lookbusy1344/rv32sim/loader"
	"github.com/lookbusy1344/rv32sim/tui"
	"github.com/lookbusy1344/rv32sim/vm"
)

var runCmd = &cobra.Command{
	Use:   "run <object.txt>",
	Short: "Run a previously assembled object file",
	Args:  cobra.ExactArgs(1),
	RunE: func(c *cobra.Command, args []string) error {
		return doRun(args[0])
	},
}

func doRun(objPath string) error {
	f, err := os.Open(objPath) // #nosec G304 -- user-supplied object file path
	if err != nil {
		return fmt.Errorf("opening object file: %w", err)
	}
	words, err := loader.ReadObjectFile(f)
	f.Close()
	if err != nil {
		return fmt.Errorf("reading object file: %w", err)
	}

	machine := vm.NewVM(flagMemWords, flagProgramStart)
	machine.CycleLimit = flagMaxCycles
	machine.Disassemble = vm.Disassemble
	if err := loader.LoadWords(machine.Memory, words, flagProgramStart); err != nil {
		return fmt.Errorf("loading object file: %w", err)
	}

	sink, cleanup, err := buildSink()
	if err != nil {
		return err
	}
	defer cleanup()

	halt := machine.Run(sink)

	var execHalt *vm.ExecutionHalt
	if errors.As(halt, &execHalt) {
		if execHalt.Clean() {
			fmt.Printf("halted cleanly after %d cycles (%s)\n", machine.CPU.Cycles, execHalt.Message)
			return nil
		}
		return fmt.Errorf("simulation aborted: %w", execHalt)
	}
	return halt
}

// buildSink wires the tracer and/or TUI viewer, plus the interactive
// clock-mode controller when --clock was left unset, into a single
// vm.TraceSink. The returned cleanup func must run after the VM halts.
func buildSink() (vm.TraceSink, func(), error) {
	var render func(*vm.CycleTrace)
	cleanup := func() {}

	if flagTUI {
		viewer := tui.NewViewer()
		render = viewer.Update
		go func() {
			_ = viewer.Run()
		}()
		cleanup = viewer.Stop
	} else if flagTrace {
		tracer := vm.NewTracer(os.Stdout)
		tracer.Color = !flagNoColor
		render = tracer.Emit
	} else {
		render = func(*vm.CycleTrace) {}
	}

	mode := strings.ToLower(flagClock)
	if mode == "auto" || mode == "manual" {
		ctl := &clockctl.Controller{Mode: clockctl.ModeAuto, Hz: flagHz}
		if mode == "manual" {
			ctl.Mode = clockctl.ModeManual
		}
		return ctl.Sink(render), cleanup, nil
	}

	ctl, err := clockctl.New()
	if err != nil {
		return nil, cleanup, err
	}
	if err := ctl.PromptClockType(); err != nil {
		ctl.Close()
		return nil, cleanup, err
	}
	prevCleanup := cleanup
	cleanup = func() {
		prevCleanup()
		ctl.Close()
	}
	return ctl.Sink(render), cleanup, nil
}
