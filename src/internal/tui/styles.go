// Package tui provides styled console output using lipgloss for rich
// terminal UI. Only the main phptune CLI imports it; library consumers
// of the locator and transformer packages stay free of terminal code.
package tui

import (
	"sync"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Lazy initialization to avoid cold start penalty from lipgloss terminal detection
var (
	initOnce sync.Once

	// Colors
	colorPrimary lipgloss.Color
	colorSuccess lipgloss.Color
	colorMuted   lipgloss.Color

	// Table styles
	StyleMuted       lipgloss.Style
	StyleTableHeader lipgloss.Style
	StyleTableCell   lipgloss.Style
	StyleTableBorder lipgloss.Style

	// CheckMark marks the active installation in listings.
	CheckMark string
)

// initStyles initializes all lipgloss styles lazily
func initStyles() {
	initOnce.Do(func() {
		// Force TrueColor profile to skip slow terminal capability detection
		// See: https://github.com/charmbracelet/lipgloss/issues/86
		lipgloss.SetColorProfile(termenv.TrueColor)

		colorPrimary = lipgloss.Color("39") // Cyan
		colorSuccess = lipgloss.Color("42") // Green
		colorMuted = lipgloss.Color("245")  // Gray

		StyleMuted = lipgloss.NewStyle().
			Foreground(colorMuted)

		StyleTableHeader = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorPrimary).
			PaddingRight(2)

		StyleTableCell = lipgloss.NewStyle().
			PaddingRight(2)

		StyleTableBorder = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorMuted).
			Padding(0, 1)

		CheckMark = lipgloss.NewStyle().Foreground(colorSuccess).Render("✓")
	})
}

// Init ensures styles are initialized. Call this before using any styles.
func Init() {
	initStyles()
}
