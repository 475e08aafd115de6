// Package tui implements an optional live view of the register file and
// pipeline latches, refreshed once per clock cycle from the simulator's
// CycleTrace.
package tui

import (
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"github.com/lookbusy1344/rv32sim/vm"
)

// Viewer renders a read-only, auto-refreshing snapshot of simulator state.
type Viewer struct {
	app      *tview.Application
	regs     *tview.TextView
	latches  *tview.TextView
	status   *tview.TextView
}

// NewViewer builds the TUI layout but does not start the event loop.
func NewViewer() *Viewer {
	regs := tview.NewTextView().SetDynamicColors(true)
	regs.SetBorder(true).SetTitle("Registers")

	latches := tview.NewTextView().SetDynamicColors(true)
	latches.SetBorder(true).SetTitle("Latches")

	status := tview.NewTextView().SetDynamicColors(true)
	status.SetBorder(true).SetTitle("Status")

	flex := tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(status, 3, 0, false).
		AddItem(tview.NewFlex().
			AddItem(regs, 0, 2, false).
			AddItem(latches, 0, 1, false), 0, 1, false)

	app := tview.NewApplication().SetRoot(flex, true)
	app.SetInputCapture(func(ev *tcell.EventKey) *tcell.EventKey {
		if ev.Key() == tcell.KeyEscape || ev.Rune() == 'q' {
			app.Stop()
			return nil
		}
		return ev
	})

	return &Viewer{app: app, regs: regs, latches: latches, status: status}
}

// Update pushes a new CycleTrace onto the UI thread for rendering.
func (v *Viewer) Update(ct *vm.CycleTrace) {
	v.app.QueueUpdateDraw(func() {
		var sb strings.Builder
		for i := 0; i < vm.RegCount; i++ {
			fmt.Fprintf(&sb, "%-5s x%-2d = %08x\n", vm.ABINames[i], i, ct.Regs[i])
		}
		v.regs.SetText(sb.String())

		v.latches.SetText(fmt.Sprintf(
			"PC     = %08x\nMAR    = %08x\nMDR    = %08x\nIR     = %08x\nA      = %08x\nB      = %08x\nALUOut = %08x\n",
			ct.PC, ct.MAR, ct.MDR, ct.IR, ct.A, ct.B, ct.ALUOut))

		v.status.SetText(fmt.Sprintf("clk=%d  cycle=%d  %s", ct.Clk, ct.Cycles, ct.Disasm))
	})
}

// Sink returns a vm.TraceSink that feeds this viewer.
func (v *Viewer) Sink() vm.TraceSink {
	return v.Update
}

// Run starts the TUI event loop; it blocks until the user quits (q/Esc).
func (v *Viewer) Run() error {
	return v.app.Run()
}

// Stop requests the event loop to exit, for use after the simulated
// program halts.
func (v *Viewer) Stop() {
	v.app.Stop()
}
