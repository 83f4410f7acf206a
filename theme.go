package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Theme styles the console output.
type Theme struct {
	Title   lipgloss.Style
	Faint   lipgloss.Style
	Success lipgloss.Style
	Warn    lipgloss.Style
	Error   lipgloss.Style
	Card    lipgloss.Style
}

func DefaultTheme() Theme {
	return Theme{
		Title:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#ff6b35")),
		Faint:   lipgloss.NewStyle().Faint(true),
		Success: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("42")),
		Warn:    lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
		Error:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("196")),
		Card: lipgloss.NewStyle().
			Padding(0, 2).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")),
	}
}

// banner prints a boxed title with optional lines under it.
func (t Theme) banner(w io.Writer, title string, lines ...string) {
	body := t.Title.Render(title)
	if len(lines) > 0 {
		body += "\n" + strings.Join(lines, "\n")
	}
	fmt.Fprintln(w, t.Card.Render(body))
}

// list prints a heading followed by indented items.
func (t Theme) list(w io.Writer, heading string, items []string) {
	fmt.Fprintln(w, t.Title.Render(heading))
	for _, it := range items {
		fmt.Fprintln(w, "  "+t.Faint.Render("-")+" "+it)
	}
}
