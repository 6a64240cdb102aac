// Package ui holds the terminal styling for orchestkit's human-facing
// output. Commands whose contract is machine-readable JSON (the memory
// wrappers) bypass this package entirely.
package ui

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/term"
)

// IsTTY indicates whether stdout is an interactive terminal.
// When false, UI functions produce plain text without colors or decorations.
var IsTTY = term.IsTerminal(os.Stdout.Fd())

// Color palette.
var (
	Teal    = lipgloss.Color("#2DD4BF") // primary accent
	Indigo  = lipgloss.Color("#818CF8") // secondary accent
	Green   = lipgloss.Color("#4ADE80") // success
	Amber   = lipgloss.Color("#FBBF24") // warnings
	Rose    = lipgloss.Color("#FB7185") // errors
	Sky     = lipgloss.Color("#7DD3FC") // informational
	Gray    = lipgloss.Color("#9CA3AF") // secondary text
	DimGray = lipgloss.Color("#4B5563") // dividers, hints
)

// Text styles.
var (
	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Teal)

	Success = lipgloss.NewStyle().
		Foreground(Green)

	Error = lipgloss.NewStyle().
		Foreground(Rose).
		Bold(true)

	Warning = lipgloss.NewStyle().
		Foreground(Amber)

	Info = lipgloss.NewStyle().
		Foreground(Sky)

	Muted = lipgloss.NewStyle().
		Foreground(Gray)

	Highlight = lipgloss.NewStyle().
			Foreground(Indigo).
			Bold(true)
)

// SectionHeader creates a decorated section header.
func SectionHeader(title string) string {
	if !IsTTY {
		return fmt.Sprintf("=== %s ===", title)
	}

	width := terminalWidth()
	if width > 72 {
		width = 72
	}

	titleStyled := Title.Render(title)
	titleLen := lipgloss.Width(title)
	padRight := width - titleLen - 5
	if padRight < 0 {
		padRight = 0
	}

	rule := lipgloss.NewStyle().Foreground(DimGray)
	return rule.Render("── ") + titleStyled + rule.Render(" "+strings.Repeat("─", padRight))
}

// StatusLine creates a status line with icon and message.
func StatusLine(icon, message string, color lipgloss.Color) string {
	if !IsTTY {
		return fmt.Sprintf("  %s %s", icon, message)
	}
	style := lipgloss.NewStyle().Foreground(color)
	return fmt.Sprintf("  %s %s", style.Render(icon), style.Render(message))
}

// SuccessLine creates a success status line.
func SuccessLine(message string) string {
	if !IsTTY {
		return fmt.Sprintf("  OK: %s", message)
	}
	return StatusLine("✓", message, Green)
}

// ErrorLine creates an error status line.
func ErrorLine(message string) string {
	if !IsTTY {
		return fmt.Sprintf("  ERROR: %s", message)
	}
	return StatusLine("✗", message, Rose)
}

// WarningLine creates a warning status line.
func WarningLine(message string) string {
	if !IsTTY {
		return fmt.Sprintf("  WARN: %s", message)
	}
	return StatusLine("!", message, Amber)
}

// InfoLine creates an info status line.
func InfoLine(message string) string {
	if !IsTTY {
		return fmt.Sprintf("  %s", message)
	}
	return StatusLine("→", message, Sky)
}

func terminalWidth() int {
	w, _, err := term.GetSize(os.Stdout.Fd())
	if err != nil || w <= 0 {
		return 72
	}
	return w
}
