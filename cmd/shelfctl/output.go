// cmd/shelfctl/output.go
package main

import (
	"encoding/json"
	"io"
	"strconv"

	"github.com/charmbracelet/lipgloss"
)

var (
	colorSuccess = lipgloss.Color("#10B981")
	colorWarning = lipgloss.Color("#F59E0B")
	colorError   = lipgloss.Color("#EF4444")
	colorMuted   = lipgloss.Color("#6B7280")
	colorPrimary = lipgloss.Color("#7C3AED")

	successStyle = lipgloss.NewStyle().Foreground(colorSuccess).Bold(true)
	warningStyle = lipgloss.NewStyle().Foreground(colorWarning).Bold(true)
	errorStyle   = lipgloss.NewStyle().Foreground(colorError).Bold(true)
	mutedStyle   = lipgloss.NewStyle().Foreground(colorMuted)
	titleStyle   = lipgloss.NewStyle().Foreground(colorPrimary).Bold(true)
	shelfStyle   = lipgloss.NewStyle().PaddingLeft(2)
	bookStyle    = lipgloss.NewStyle().PaddingLeft(4)
)

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// fill renders used/capacity, highlighting shelves that are over capacity.
func fill(used int, capacity *int) string {
	if capacity == nil {
		return mutedStyle.Render(strconv.Itoa(used))
	}
	s := strconv.Itoa(used) + "/" + strconv.Itoa(*capacity)
	if used > *capacity {
		return errorStyle.Render(s)
	}
	return successStyle.Render(s)
}
