// Package cmd implements the rvsim command-line surface: an assemble
// subcommand, a run subcommand, and a bare invocation that does both in
// one shot.
package cmd

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/lookbusy1344/rv32sim/config"
	"github.com/lookbusy1344/rv32sim/vm"
)

var (
	flagMemWords     int
	flagProgramStart uint32
	flagTrace        bool
	flagNoColor      bool
	flagClock        string
	flagHz           int
	flagTUI          bool
	flagMaxCycles    uint64
	flagConfigPath   string
	flagSaveConfig   bool
)

var rootCmd = &cobra.Command{
	Use:   "rvsim [source.asm]",
	Short: "A two-pass RISC-V assembler and multi-cycle simulator",
	Long: `rvsim assembles RV32I (+ a partial M-extension) source into machine
words and interprets them on a multi-cycle datapath, tracing PC, MAR, MDR,
IR, A, B and ALUOut once per clock cycle.

With no subcommand it assembles input.asm in the working directory,
writes output.txt, and runs the result - the fixed-path behaviour used
when no arguments are given. Use "assemble" and "run" to name files
explicitly.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runDefault,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagMemWords, "mem-words", vm.DefaultMemWords, "memory size in 32-bit words")
	rootCmd.PersistentFlags().Uint32Var(&flagProgramStart, "program-start", vm.ProgramStart, "address of the first instruction")
	rootCmd.PersistentFlags().BoolVar(&flagTrace, "trace", true, "print a per-cycle trace of registers and latches")
	rootCmd.PersistentFlags().BoolVar(&flagNoColor, "no-color", false, "disable ANSI colour in trace output")
	rootCmd.PersistentFlags().StringVar(&flagClock, "clock", "", "clock mode: auto or manual (prompts interactively if unset)")
	rootCmd.PersistentFlags().IntVar(&flagHz, "hz", 0, "auto-clock pacing in Hz (0 = max speed)")
	rootCmd.PersistentFlags().BoolVar(&flagTUI, "tui", false, "show a live register/latch viewer instead of printing the trace")
	rootCmd.PersistentFlags().Uint64Var(&flagMaxCycles, "max-cycles", vm.DefaultMaxCycles, "abort after this many cycles (0 = unlimited)")
	rootCmd.PersistentFlags().StringVar(&flagConfigPath, "config", "", "path to a TOML config file (default: platform config dir)")
	rootCmd.PersistentFlags().BoolVar(&flagSaveConfig, "save-config", false, "persist the effective settings to the config file after running")

	rootCmd.PersistentPreRunE = applyConfigDefaults
	rootCmd.PersistentPostRunE = maybeSaveConfig

	rootCmd.AddCommand(assembleCmd)
	rootCmd.AddCommand(runCmd)
}

// resolvedConfigPath returns the path applyConfigDefaults/maybeSaveConfig
// will read from or write to: --config if given, else the platform default.
func resolvedConfigPath() string {
	if flagConfigPath != "" {
		return flagConfigPath
	}
	return config.GetConfigPath()
}

// loadConfig reads the config file at --config, or the platform default
// path when --config is unset.
func loadConfig() (*config.Config, error) {
	return config.LoadFrom(resolvedConfigPath())
}

// applyConfigDefaults seeds any flag the user didn't pass explicitly with
// the loaded config's value, so a config file acts as a default layer
// underneath the command-line flags. Without any config file on disk the
// zero-config behaviour described for a bare invocation still applies: in
// particular --clock is left at "" so the clock-mode prompt still fires,
// rather than being silently pinned to DefaultConfig's "auto".
func applyConfigDefaults(c *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	_, statErr := os.Stat(resolvedConfigPath())
	haveConfigFile := statErr == nil

	flags := c.Flags()
	if !flags.Changed("mem-words") {
		flagMemWords = cfg.Execution.MemWords
	}
	if !flags.Changed("program-start") {
		if v, err := strconv.ParseUint(cfg.Execution.ProgramStart, 0, 32); err == nil {
			flagProgramStart = uint32(v)
		}
	}
	if !flags.Changed("max-cycles") {
		flagMaxCycles = cfg.Execution.MaxCycles
	}
	if !flags.Changed("clock") && haveConfigFile {
		flagClock = cfg.Clock.Mode
	}
	if !flags.Changed("hz") {
		flagHz = cfg.Clock.Hz
	}
	if !flags.Changed("trace") {
		flagTrace = cfg.Trace.Enabled
	}
	if !flags.Changed("no-color") {
		flagNoColor = !cfg.Trace.Color
	}
	return nil
}

// maybeSaveConfig persists the effective, flag-overridden settings back to
// the config file when --save-config was passed.
func maybeSaveConfig(c *cobra.Command, args []string) error {
	if !flagSaveConfig {
		return nil
	}
	cfg := config.DefaultConfig()
	cfg.Execution.MemWords = flagMemWords
	cfg.Execution.ProgramStart = fmt.Sprintf("0x%x", flagProgramStart)
	cfg.Execution.MaxCycles = flagMaxCycles
	cfg.Clock.Mode = flagClock
	cfg.Clock.Hz = flagHz
	cfg.Trace.Enabled = flagTrace
	cfg.Trace.Color = !flagNoColor

	return cfg.SaveTo(resolvedConfigPath())
}

// Execute runs the root command, exiting the process with status 1 on
// failure.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func runDefault(c *cobra.Command, args []string) error {
	src := "input.asm"
	if len(args) == 1 {
		src = args[0]
	}
	obj := "output.txt"

	if err := doAssemble(src, obj); err != nil {
		return err
	}
	return doRun(obj)
}
