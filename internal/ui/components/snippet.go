// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package components provides UI components for the medrag TUI.
package components

import (
	"strings"

	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/lexers"
	chromaStyles "github.com/alecthomas/chroma/v2/styles"
	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/medrag-tui/internal/report"
	"github.com/jeranaias/medrag-tui/internal/ui/styles"
)

// =============================================================================
// SNIPPET VIEWER
// =============================================================================

// SnippetView renders the full snippet of a single source entry.
//
// Snippet text is rendered as plain styled lines, never re-parsed as
// markup: snippets come straight from retrieved documents and may
// contain anything.
type SnippetView struct {
	theme    *styles.Theme
	maxWidth int
}

// NewSnippetView creates a snippet viewer.
func NewSnippetView(theme *styles.Theme) *SnippetView {
	return &SnippetView{theme: theme, maxWidth: 80}
}

// SetMaxWidth sets the wrap width.
func (v *SnippetView) SetMaxWidth(width int) {
	v.maxWidth = width
}

// Render renders the entry's full snippet with a header line.
func (v *SnippetView) Render(entry report.SourceEntry) string {
	header := v.theme.SnippetHeader.Render(entry.Category.String()) + " " +
		v.theme.SourceFile.Render(entry.File)

	content := strings.TrimSpace(entry.Content)
	if content == "" {
		content = v.theme.ShortcutDesc.Render("(empty snippet)")
	} else {
		content = highlightSnippet(content, entry.Category)
	}

	lines := strings.Split(content, "\n")
	numStyle := lipgloss.NewStyle().
		Foreground(styles.TextMuted).
		Width(4).
		Align(lipgloss.Right).
		MarginRight(1)

	numbered := make([]string, 0, len(lines))
	for i, line := range lines {
		numbered = append(numbered, numStyle.Render(toStr(i+1))+line)
	}

	width := v.maxWidth
	if width < 30 {
		width = 30
	}
	return v.theme.SnippetBox.MaxWidth(width).
		Render(header + "\n\n" + strings.Join(numbered, "\n"))
}

// highlightSnippet applies terminal highlighting to snippet text.
// Image and audio snippets are model-generated descriptions and stay
// plain; text snippets go through chroma's markdown lexer, which copes
// well with the mixed prose found in clinical documents.
func highlightSnippet(content string, category report.Category) string {
	if category != report.CategoryDefault {
		return content
	}

	lexer := lexers.Get("markdown")
	if lexer == nil {
		return content
	}

	style := chromaStyles.Get("monokai")
	if style == nil {
		style = chromaStyles.Fallback
	}

	formatter := formatters.Get("terminal256")
	if formatter == nil {
		return content
	}

	iterator, err := lexer.Tokenise(nil, content)
	if err != nil {
		return content
	}

	var b strings.Builder
	if err := formatter.Format(&b, style, iterator); err != nil {
		return content
	}
	return strings.TrimRight(b.String(), "\n")
}
