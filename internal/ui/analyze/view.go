// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package analyze provides the main analysis view for the TUI.
package analyze

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/medrag-tui/internal/api"
)

// View implements tea.Model.
func (m Model) View() string {
	var body string

	switch m.state {
	case StateWelcome:
		body = m.welcome.View()
	case StateInput:
		body = m.viewForm()
	case StateLoading:
		body = m.viewLoading()
	case StateReport:
		body = m.viewReport()
	case StateError:
		body = m.viewError()
	}

	if m.showHistory {
		body = m.viewHistory()
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		m.header.View(),
		body,
		m.statusBar.View(),
	)
}

// =============================================================================
// FORM
// =============================================================================

func (m Model) viewForm() string {
	var b strings.Builder

	b.WriteString(m.theme.InputLabel.Render("Query"))
	b.WriteString("\n")
	b.WriteString(m.renderField(m.queryInput.View(), m.focus == FocusQuery))
	b.WriteString("\n\n")

	b.WriteString(m.theme.InputLabel.Render("File"))
	b.WriteString("\n")
	b.WriteString(m.renderField(m.fileInput.View(), m.focus == FocusFile))

	if m.focus == FocusFile && m.completions.IsVisible() {
		b.WriteString("\n")
		b.WriteString(m.completions.View())
	}

	b.WriteString("\n\n")
	b.WriteString(m.viewPersonaSelector())

	if m.hint != "" {
		b.WriteString("\n\n")
		b.WriteString(m.theme.InputInvalid.Render(m.hint))
	}

	return m.theme.Container.Render(m.padToHeight(b.String()))
}

// renderField marks the focused field with the prompt accent.
func (m Model) renderField(field string, focused bool) string {
	prompt := "  "
	if focused {
		prompt = m.theme.InputPrompt.Render("> ")
	}
	return prompt + field
}

func (m Model) viewPersonaSelector() string {
	doctor := m.theme.PersonaInactive.Render(string(api.PersonaDoctor))
	patient := m.theme.PersonaInactive.Render(string(api.PersonaPatient))
	if m.persona == api.PersonaDoctor {
		doctor = m.theme.PersonaActive.Render(string(api.PersonaDoctor))
	} else {
		patient = m.theme.PersonaActive.Render(string(api.PersonaPatient))
	}
	label := m.theme.InputLabel.Render("Audience ")
	return label + doctor + " " + patient
}

// =============================================================================
// LOADING / ERROR
// =============================================================================

func (m Model) viewLoading() string {
	content := m.spinner.View()
	if m.width > 0 && m.height > 2 {
		return lipgloss.Place(m.width, m.height-2, lipgloss.Center, lipgloss.Center, content)
	}
	return content
}

func (m Model) viewError() string {
	box := m.errorBox.Render(m.lastErr)
	hint := m.theme.ShortcutDesc.Render("enter retry  esc back")
	content := box + "\n\n" + hint
	if m.width > 0 && m.height > 2 {
		return lipgloss.Place(m.width, m.height-2, lipgloss.Center, lipgloss.Center, content)
	}
	return content
}

// =============================================================================
// REPORT
// =============================================================================

func (m Model) viewReport() string {
	if m.showSnippet {
		if entry, ok := m.sourceView.Selected(); ok {
			return m.theme.Container.Render(m.padToHeight(m.snippetView.Render(entry)))
		}
	}

	// The source panel always renders: with entries when evidence came
	// back, as the no-evidence warning otherwise.
	return m.viewport.View() + "\n" + m.sourceView.View()
}

// =============================================================================
// HISTORY OVERLAY
// =============================================================================

func (m Model) viewHistory() string {
	var b strings.Builder
	b.WriteString(m.theme.InputLabel.Render("Recent queries"))
	b.WriteString("\n\n")

	if len(m.histEntries) == 0 {
		b.WriteString(m.theme.HistoryMeta.Render("No history yet."))
	}

	for i, entry := range m.histEntries {
		line := entry.Query
		meta := " " + m.theme.HistoryMeta.Render(
			entry.FilePath+" "+strings.ToLower(entry.Persona)+" "+entry.Outcome)
		if i == m.histSelected {
			b.WriteString(m.theme.HistoryItemSelected.Render(line) + meta)
		} else {
			b.WriteString(m.theme.HistoryItem.Render(line) + meta)
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.theme.ShortcutDesc.Render("enter prefill  esc close"))

	box := m.theme.HistoryBox.Render(b.String())
	if m.width > 0 && m.height > 2 {
		return lipgloss.Place(m.width, m.height-2, lipgloss.Center, lipgloss.Center, box)
	}
	return box
}

// =============================================================================
// LAYOUT HELPERS
// =============================================================================

// padToHeight fills the content area so the status bar stays pinned.
func (m Model) padToHeight(content string) string {
	if m.height <= 2 {
		return content
	}
	target := m.height - 2
	lines := strings.Count(content, "\n") + 1
	if lines >= target {
		return content
	}
	return content + strings.Repeat("\n", target-lines)
}
