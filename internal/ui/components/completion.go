// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package components provides UI components for the medrag TUI.
package components

import (
	"strings"

	"github.com/jeranaias/medrag-tui/internal/ui/styles"
)

// =============================================================================
// FILE PATH COMPLETION POPUP
// =============================================================================

// maxVisibleCompletions bounds the popup height.
const maxVisibleCompletions = 8

// CompletionPopup shows file path candidates under the file input.
type CompletionPopup struct {
	theme    *styles.Theme
	items    []string
	selected int
	visible  bool
}

// NewCompletionPopup creates a hidden completion popup.
func NewCompletionPopup(theme *styles.Theme) *CompletionPopup {
	return &CompletionPopup{theme: theme}
}

// SetItems replaces the candidates and shows the popup if any exist.
func (c *CompletionPopup) SetItems(items []string) {
	c.items = items
	c.selected = 0
	c.visible = len(items) > 0
}

// Hide hides the popup.
func (c *CompletionPopup) Hide() {
	c.visible = false
}

// IsVisible reports whether the popup is shown.
func (c *CompletionPopup) IsVisible() bool {
	return c.visible
}

// Selected returns the highlighted candidate, if any.
func (c *CompletionPopup) Selected() (string, bool) {
	if !c.visible || len(c.items) == 0 {
		return "", false
	}
	return c.items[c.selected], true
}

// Next moves the highlight down, wrapping.
func (c *CompletionPopup) Next() {
	if len(c.items) == 0 {
		return
	}
	c.selected = (c.selected + 1) % len(c.items)
}

// Prev moves the highlight up, wrapping.
func (c *CompletionPopup) Prev() {
	if len(c.items) == 0 {
		return
	}
	c.selected = (c.selected - 1 + len(c.items)) % len(c.items)
}

// View renders the popup.
func (c *CompletionPopup) View() string {
	if !c.visible || len(c.items) == 0 {
		return ""
	}

	// Window the list around the selection
	start := 0
	if c.selected >= maxVisibleCompletions {
		start = c.selected - maxVisibleCompletions + 1
	}
	end := start + maxVisibleCompletions
	if end > len(c.items) {
		end = len(c.items)
	}

	lines := make([]string, 0, end-start)
	for i := start; i < end; i++ {
		if i == c.selected {
			lines = append(lines, c.theme.CompletionSelected.Render(c.items[i]))
		} else {
			lines = append(lines, c.theme.CompletionItem.Render(c.items[i]))
		}
	}

	if len(c.items) > end {
		lines = append(lines, c.theme.ShortcutDesc.Render("..."))
	}

	return c.theme.CompletionPopup.Render(strings.Join(lines, "\n"))
}
