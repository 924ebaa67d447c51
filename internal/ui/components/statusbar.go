// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package components provides UI components for the medrag TUI.
package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/medrag-tui/internal/ui/styles"
	"github.com/jeranaias/medrag-tui/internal/util"
)

// =============================================================================
// STATUS BAR
// =============================================================================

// Shortcut is a single key hint shown in the status bar.
type Shortcut struct {
	Key  string
	Desc string
}

// StatusBar renders key hints and a right-aligned status segment.
type StatusBar struct {
	theme     *styles.Theme
	shortcuts []Shortcut
	status    string
	width     int
}

// NewStatusBar creates a status bar with the given shortcuts.
func NewStatusBar(theme *styles.Theme, shortcuts []Shortcut) *StatusBar {
	return &StatusBar{
		theme:     theme,
		shortcuts: shortcuts,
	}
}

// SetShortcuts replaces the displayed shortcuts.
func (s *StatusBar) SetShortcuts(shortcuts []Shortcut) {
	s.shortcuts = shortcuts
}

// SetStatus sets the right-aligned status text.
func (s *StatusBar) SetStatus(status string) {
	s.status = status
}

// SetWidth updates the render width.
func (s *StatusBar) SetWidth(width int) {
	s.width = width
}

// View renders the status bar.
func (s *StatusBar) View() string {
	parts := make([]string, 0, len(s.shortcuts))
	for _, sc := range s.shortcuts {
		parts = append(parts,
			s.theme.ShortcutKey.Render(sc.Key)+" "+s.theme.ShortcutDesc.Render(sc.Desc))
	}
	left := strings.Join(parts, "  ")

	right := ""
	if s.status != "" {
		status := s.status
		if avail := s.width - lipgloss.Width(left) - 2; s.width > 0 && avail > 4 {
			status = util.TruncateWidth(status, avail)
		}
		right = s.theme.ShortcutDesc.Render(status)
	}

	gap := s.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}
	spacer := lipgloss.NewStyle().Width(gap).Render("")

	return s.theme.StatusBar.Width(s.width).Render(left + spacer + right)
}
