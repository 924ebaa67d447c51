// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package components provides UI components for the medrag TUI.
package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/medrag-tui/internal/ui/styles"
)

// =============================================================================
// WELCOME SCREEN
// =============================================================================

const welcomeLogo = `
 __  __          _ ____      _    ____
|  \/  | ___  __| |  _ \    / \  / ___|
| |\/| |/ _ \/ _' | |_) |  / _ \| |  _
| |  | |  __/ (_| |  _ <  / ___ \ |_| |
|_|  |_|\___|\__,_|_| \_\/_/   \_\____|
`

// Welcome is the first-run screen shown before any query.
type Welcome struct {
	theme    *styles.Theme
	version  string
	endpoint string
	width    int
	height   int
}

// NewWelcome creates the welcome screen.
func NewWelcome(theme *styles.Theme, version, endpoint string) *Welcome {
	return &Welcome{
		theme:    theme,
		version:  version,
		endpoint: endpoint,
	}
}

// SetSize updates the render dimensions.
func (w *Welcome) SetSize(width, height int) {
	w.width = width
	w.height = height
}

// View renders the welcome screen centered in the available space.
func (w *Welcome) View() string {
	var b strings.Builder

	b.WriteString(w.theme.WelcomeLogo.Render(strings.TrimLeft(welcomeLogo, "\n")))
	b.WriteString("\n")
	b.WriteString(w.theme.WelcomeVersion.Render("v" + w.version))
	b.WriteString("\n\n")
	b.WriteString(w.theme.WelcomeInfo.Render("Ask a question about a document and get a structured clinical report."))
	b.WriteString("\n")
	b.WriteString(w.theme.WelcomeInfo.Render("Server: " + w.endpoint))
	b.WriteString("\n\n")
	b.WriteString(w.theme.WelcomeKey.Render("tab") +
		w.theme.WelcomeInfo.Render(" switch fields   ") +
		w.theme.WelcomeKey.Render("ctrl+p") +
		w.theme.WelcomeInfo.Render(" persona   ") +
		w.theme.WelcomeKey.Render("ctrl+h") +
		w.theme.WelcomeInfo.Render(" history"))
	b.WriteString("\n\n")
	b.WriteString(w.theme.WelcomePressKey.Render("Start typing to begin"))

	box := w.theme.WelcomeBox.Render(b.String())

	if w.width > 0 && w.height > 0 {
		return lipgloss.Place(w.width, w.height, lipgloss.Center, lipgloss.Center, box)
	}
	return box
}
