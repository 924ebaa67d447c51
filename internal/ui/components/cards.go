// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package components provides UI components for the medrag TUI.
package components

import (
	"strings"

	"github.com/charmbracelet/glamour"

	"github.com/jeranaias/medrag-tui/internal/api"
	"github.com/jeranaias/medrag-tui/internal/report"
	"github.com/jeranaias/medrag-tui/internal/ui/styles"
)

// =============================================================================
// REPORT CARD RENDERER
// =============================================================================

// CardView renders report sections as persona-styled cards.
type CardView struct {
	theme    *styles.Theme
	persona  api.Persona
	maxWidth int

	renderer *glamour.TermRenderer
}

// NewCardView creates a card renderer for the given persona.
func NewCardView(theme *styles.Theme, persona api.Persona) *CardView {
	return &CardView{
		theme:    theme,
		persona:  persona,
		maxWidth: 80,
	}
}

// SetPersona changes the persona styling for subsequent renders.
func (v *CardView) SetPersona(p api.Persona) {
	v.persona = p
}

// SetMaxWidth sets the wrap width for card bodies.
func (v *CardView) SetMaxWidth(width int) {
	if width == v.maxWidth {
		return
	}
	v.maxWidth = width
	v.renderer = nil // Re-create on next render with the new wrap width
}

// Render renders all cards separated by blank lines.
func (v *CardView) Render(cards []report.Card) string {
	if len(cards) == 0 {
		return ""
	}

	rendered := make([]string, 0, len(cards))
	for _, card := range cards {
		rendered = append(rendered, v.renderCard(card))
	}
	return strings.Join(rendered, "\n\n")
}

// renderCard renders a single card: styled title line, then each body
// paragraph through the markdown renderer.
func (v *CardView) renderCard(card report.Card) string {
	var b strings.Builder

	title := v.theme.CardTitleStyle(v.persona).Render(card.Title)
	b.WriteString(title)

	for _, body := range card.Bodies {
		b.WriteString("\n")
		b.WriteString(v.renderMarkdown(body))
	}

	width := v.maxWidth
	if width < 24 {
		width = 24
	}
	return v.theme.CardStyle(v.persona).MaxWidth(width).Render(b.String())
}

// renderMarkdown renders markdown content for terminal display.
// Returns the original content if rendering fails.
func (v *CardView) renderMarkdown(content string) string {
	if v.renderer == nil {
		wrap := v.maxWidth - 6
		if wrap < 20 {
			wrap = 20
		}
		r, err := glamour.NewTermRenderer(
			glamour.WithAutoStyle(),
			glamour.WithWordWrap(wrap),
		)
		if err != nil {
			return content
		}
		v.renderer = r
	}

	rendered, err := v.renderer.Render(content)
	if err != nil {
		return content
	}
	return strings.TrimRight(rendered, "\n")
}
