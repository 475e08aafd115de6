// Package clockctl implements the interactive clock-mode front end: a
// prompt choosing automatic (Hz-paced) or manual (single-step) clocking,
// built on a real line editor rather than a bare fmt.Scanln. Pacing here
// is strictly display-only — it never touches VM state.
package clockctl

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/chzyer/readline"

	"github.com/lookbusy1344/rv32sim/vm"
)

// Mode selects how cycles are paced for display.
type Mode int

const (
	ModeAuto Mode = iota
	ModeManual
)

// Controller drives the clock-mode prompts and produces a vm.TraceSink
// that paces the caller's trace emission accordingly.
type Controller struct {
	Mode Mode
	Hz   int

	rl *readline.Instance
}

// New creates a Controller backed by a readline instance for prompting
// and manual-mode single-stepping.
func New() (*Controller, error) {
	rl, err := readline.New("")
	if err != nil {
		return nil, fmt.Errorf("initialising interactive prompt: %w", err)
	}
	return &Controller{rl: rl}, nil
}

// Close releases the underlying line editor.
func (c *Controller) Close() error {
	if c.rl == nil {
		return nil
	}
	return c.rl.Close()
}

// PromptClockType asks "Choose clk type: A/M" and, for auto mode, follows
// up with "Choose the speed (Hz) (0 for max)". It sets c.Mode and c.Hz.
func (c *Controller) PromptClockType() error {
	c.rl.SetPrompt("Choose clk type: A/M ")
	line, err := c.rl.Readline()
	if err != nil {
		return fmt.Errorf("reading clock type: %w", err)
	}
	switch strings.ToUpper(strings.TrimSpace(line)) {
	case "M":
		c.Mode = ModeManual
		return nil
	case "A", "":
		c.Mode = ModeAuto
	default:
		c.Mode = ModeAuto
	}

	c.rl.SetPrompt("Choose the speed (Hz) (0 for max) ")
	line, err = c.rl.Readline()
	if err != nil {
		return fmt.Errorf("reading clock speed: %w", err)
	}
	hz, err := strconv.Atoi(strings.TrimSpace(line))
	if err != nil {
		hz = 0
	}
	c.Hz = hz
	return nil
}

// Sink returns a vm.TraceSink that renders each cycle via render and then
// paces display according to the chosen mode: sleeping 1/Hz seconds in
// auto mode (no sleep when Hz==0), or blocking on Enter in manual mode.
func (c *Controller) Sink(render func(*vm.CycleTrace)) vm.TraceSink {
	var period time.Duration
	if c.Mode == ModeAuto && c.Hz > 0 {
		period = time.Second / time.Duration(c.Hz)
	}
	return func(ct *vm.CycleTrace) {
		render(ct)
		switch c.Mode {
		case ModeAuto:
			if period > 0 {
				time.Sleep(period)
			}
		case ModeManual:
			c.rl.SetPrompt("-- press enter for next cycle --")
			_, _ = c.rl.Readline()
		}
	}
}
