// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package components provides UI components for the medrag TUI.
package components

import (
	"strings"

	"github.com/jeranaias/medrag-tui/internal/api"
	"github.com/jeranaias/medrag-tui/internal/ui/styles"
)

// =============================================================================
// ERROR BOX
// =============================================================================

// ErrorBox renders a failed request with a recovery suggestion.
type ErrorBox struct {
	theme    *styles.Theme
	maxWidth int
}

// NewErrorBox creates an error box renderer.
func NewErrorBox(theme *styles.Theme) *ErrorBox {
	return &ErrorBox{theme: theme, maxWidth: 80}
}

// SetMaxWidth sets the wrap width.
func (e *ErrorBox) SetMaxWidth(width int) {
	e.maxWidth = width
}

// Render renders an error with a type-specific suggestion.
func (e *ErrorBox) Render(err error) string {
	if err == nil {
		return ""
	}

	var b strings.Builder
	b.WriteString(e.theme.ErrorTitle.Render(styles.StatusIndicators.Error + " Analysis failed"))
	b.WriteString("\n\n")
	b.WriteString(e.theme.ErrorMessage.Render(err.Error()))

	if suggestion := suggestionFor(err); suggestion != "" {
		b.WriteString("\n\n")
		b.WriteString(e.theme.ErrorSuggestion.Render(suggestion))
	}

	width := e.maxWidth
	if width < 30 {
		width = 30
	}
	return e.theme.ErrorBox.MaxWidth(width).Render(b.String())
}

// suggestionFor maps error types to a next step the user can take.
func suggestionFor(err error) string {
	switch {
	case api.IsUnreachable(err):
		return "Check that the analysis server is running, then press enter to retry."
	case api.IsTimeout(err):
		return "The request was cancelled. Press enter to retry."
	case api.IsHTTPError(err):
		if status := api.HTTPStatus(err); status >= 500 {
			return "The server hit an internal error. Check the server logs."
		}
		return "The server rejected the request. Check the file path and query."
	default:
		return ""
	}
}
