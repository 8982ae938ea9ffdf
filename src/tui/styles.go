package tui

import "github.com/charmbracelet/lipgloss"

// StyleConfig holds the customizable colors for the diagnostics viewer.
type StyleConfig struct {
	ErrorColor     lipgloss.Color
	WarningColor   lipgloss.Color
	TextPrimary    lipgloss.Color
	TextSecondary  lipgloss.Color
	HeaderColor    lipgloss.Color
	StatusOK       lipgloss.Color
	StatusBuilding lipgloss.Color
}

// DefaultStyles returns the default color palette
func DefaultStyles() *StyleConfig {
	return &StyleConfig{
		ErrorColor:     lipgloss.Color("#EA4335"),
		WarningColor:   lipgloss.Color("#FBBC04"),
		TextPrimary:    lipgloss.Color("#E8EAED"),
		TextSecondary:  lipgloss.Color("#9AA0A6"),
		HeaderColor:    lipgloss.Color("#8AB4F8"),
		StatusOK:       lipgloss.Color("#34A853"),
		StatusBuilding: lipgloss.Color("#24C1E0"),
	}
}

// SeverityStyle returns the style for a severity label.
func (s *StyleConfig) SeverityStyle(isError bool) lipgloss.Style {
	color := s.WarningColor
	if isError {
		color = s.ErrorColor
	}
	return lipgloss.NewStyle().Foreground(color).Bold(true)
}

// HeaderStyle returns the style for the summary header.
func (s *StyleConfig) HeaderStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(s.HeaderColor).
		Bold(true).
		Padding(0, 1)
}

// StatusStyle returns the style for the build status badge.
func (s *StyleConfig) StatusStyle(status string) lipgloss.Style {
	color := s.StatusOK
	switch status {
	case "failed":
		color = s.ErrorColor
	case "success_with_warnings":
		color = s.WarningColor
	case "building":
		color = s.StatusBuilding
	}
	return lipgloss.NewStyle().Foreground(color).Bold(true)
}

// HelpStyle returns the style for the footer help line.
func (s *StyleConfig) HelpStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(s.TextSecondary).Padding(0, 1)
}
