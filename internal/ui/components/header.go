// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package components provides UI components for the medrag TUI.
package components

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/medrag-tui/internal/api"
	"github.com/jeranaias/medrag-tui/internal/ui/styles"
)

// =============================================================================
// HEADER
// =============================================================================

// Header is the application title bar.
type Header struct {
	theme    *styles.Theme
	endpoint string
	persona  api.Persona
	width    int
}

// NewHeader creates a header bound to the configured endpoint.
func NewHeader(theme *styles.Theme, endpoint string) *Header {
	return &Header{
		theme:    theme,
		endpoint: endpoint,
		persona:  api.DefaultPersona,
	}
}

// SetPersona updates the persona shown in the header.
func (h *Header) SetPersona(p api.Persona) {
	h.persona = p
}

// SetWidth updates the render width.
func (h *Header) SetWidth(width int) {
	h.width = width
}

// View renders the header.
func (h *Header) View() string {
	title := h.theme.HeaderTitle.Render("MedRAG")
	subtitle := h.theme.HeaderSubtitle.Render(" Medical Document Analysis")

	left := title + subtitle

	personaBadge := h.theme.PersonaActive.Render(string(h.persona))
	endpoint := h.theme.ShortcutDesc.Render(h.endpoint)
	right := endpoint + " " + personaBadge

	// Narrow terminals drop the endpoint
	if h.width > 0 && lipgloss.Width(left+right) > h.width {
		right = personaBadge
	}

	gap := h.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}
	spacer := lipgloss.NewStyle().Width(gap).Render("")

	return h.theme.StatusBar.Width(h.width).Render(left + spacer + right)
}
