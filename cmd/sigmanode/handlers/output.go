package handlers

import (
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"

	"github.com/occopus/sigmanode/internal/provisioning"
)

var (
	colorGreen  = lipgloss.Color("#22c55e")
	colorYellow = lipgloss.Color("#eab308")
	colorRed    = lipgloss.Color("#ef4444")
	colorDim    = lipgloss.Color("#6b7280")
)

var (
	labelStyle = lipgloss.NewStyle().
			Foreground(colorDim).
			Width(10)

	valueStyle = lipgloss.NewStyle().
			Bold(true)

	stateStyles = map[provisioning.CanonicalState]lipgloss.Style{
		provisioning.StateReady:    lipgloss.NewStyle().Bold(true).Foreground(colorGreen),
		provisioning.StatePending:  lipgloss.NewStyle().Bold(true).Foreground(colorYellow),
		provisioning.StateShutdown: lipgloss.NewStyle().Bold(true).Foreground(colorDim),
		provisioning.StateTmpFail:  lipgloss.NewStyle().Bold(true).Foreground(colorRed),
	}
)

// styled is replaced in tests.
var styled = isInteractiveTTY

func isInteractiveTTY() bool {
	return isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
}

// printValue writes value on its own line. On a terminal it is labelled
// and styled; otherwise only the bare value is written so scripts can
// consume it.
func printValue(label, value string) {
	printStyled(label, value, valueStyle)
}

func printState(st provisioning.CanonicalState) {
	style, ok := stateStyles[st]
	if !ok {
		style = valueStyle
	}
	printStyled("State", string(st), style)
}

func printStyled(label, value string, style lipgloss.Style) {
	if !styled() {
		fmt.Fprintln(stdout, value)
		return
	}
	fmt.Fprintln(stdout, labelStyle.Render(label)+style.Render(value))
}
