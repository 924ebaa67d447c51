// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package analyze provides the main analysis view for the TUI.
package analyze

import (
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/medrag-tui/internal/api"
	"github.com/jeranaias/medrag-tui/internal/history"
	"github.com/jeranaias/medrag-tui/internal/report"
)

// historyOverlayLimit is how many past queries the overlay shows.
const historyOverlayLimit = 20

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.setSize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case AnalyzeCompleteMsg:
		return m.handleComplete(msg)

	case AnalyzeErrorMsg:
		return m.handleError(msg)

	case HistoryLoadedMsg:
		if msg.Err == nil {
			m.histEntries = msg.Entries
			m.histSelected = 0
			m.showHistory = true
		}
		return m, nil

	case HistoryRecordedMsg:
		// Best effort; nothing to do either way
		return m, nil
	}

	// Remaining messages (spinner ticks, blink) go to the active widgets
	var cmds []tea.Cmd
	var cmd tea.Cmd

	m.spinner, cmd = m.spinner.Update(msg)
	cmds = append(cmds, cmd)

	m.queryInput, cmd = m.queryInput.Update(msg)
	cmds = append(cmds, cmd)
	m.fileInput, cmd = m.fileInput.Update(msg)
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

// =============================================================================
// KEY HANDLING
// =============================================================================

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Quit always works
	if key.Matches(msg, m.keyMap.Quit) {
		return m, tea.Quit
	}

	if m.showHistory {
		return m.handleHistoryKey(msg)
	}

	switch m.state {
	case StateWelcome, StateInput:
		return m.handleFormKey(msg)
	case StateLoading:
		// Single request in flight; everything except quit is ignored
		return m, nil
	case StateReport:
		return m.handleReportKey(msg)
	case StateError:
		return m.handleErrorKey(msg)
	}
	return m, nil
}

// handleFormKey drives the two-field form.
func (m Model) handleFormKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keyMap.TogglePersona):
		m.togglePersona()
		return m, nil

	case key.Matches(msg, m.keyMap.History):
		return m, LoadHistoryCmd(m.histStore, historyOverlayLimit)

	case key.Matches(msg, m.keyMap.NextField):
		// Tab accepts a highlighted completion first
		if m.focus == FocusFile && m.completions.IsVisible() {
			if sel, ok := m.completions.Selected(); ok {
				m.fileInput.SetValue(sel)
				m.fileInput.CursorEnd()
				m.completions.Hide()
				return m, nil
			}
		}
		m.switchFocus()
		return m, nil

	case key.Matches(msg, m.keyMap.Submit):
		return m.submit()

	case msg.Type == tea.KeyDown && m.completions.IsVisible():
		m.completions.Next()
		return m, nil

	case msg.Type == tea.KeyUp && m.completions.IsVisible():
		m.completions.Prev()
		return m, nil

	case msg.Type == tea.KeyEsc:
		m.completions.Hide()
		return m, nil
	}

	// Any other key is text entry
	if m.state == StateWelcome {
		m.state = StateInput
	}

	var cmd tea.Cmd
	if m.focus == FocusQuery {
		m.queryInput, cmd = m.queryInput.Update(msg)
	} else {
		m.fileInput, cmd = m.fileInput.Update(msg)
		m.refreshCompletions()
	}
	m.revalidate()
	return m, cmd
}

// handleReportKey navigates the report and source list.
func (m Model) handleReportKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.showSnippet {
		// Any of back/expand collapses the snippet
		if key.Matches(msg, m.keyMap.Back) || key.Matches(msg, m.keyMap.Expand) {
			m.showSnippet = false
		}
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keyMap.Back):
		m.state = StateInput
		m.focusQuery()
		return m, nil

	case key.Matches(msg, m.keyMap.TogglePersona):
		m.togglePersona()
		return m, nil

	case key.Matches(msg, m.keyMap.Up):
		if len(m.sources) > 0 {
			m.sourceView.MoveUp()
		} else {
			m.viewport.LineUp(1)
		}
		return m, nil

	case key.Matches(msg, m.keyMap.Down):
		if len(m.sources) > 0 {
			m.sourceView.MoveDown()
		} else {
			m.viewport.LineDown(1)
		}
		return m, nil

	case key.Matches(msg, m.keyMap.Expand):
		if _, ok := m.sourceView.Selected(); ok {
			m.showSnippet = true
		}
		return m, nil

	case key.Matches(msg, m.keyMap.History):
		return m, LoadHistoryCmd(m.histStore, historyOverlayLimit)
	}

	// Page keys fall through to the viewport
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// handleErrorKey returns to the form, keeping the inputs for a retry.
func (m Model) handleErrorKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keyMap.Submit):
		return m.submit()
	case key.Matches(msg, m.keyMap.Back):
		m.state = StateInput
		m.lastErr = nil
		return m, nil
	}
	return m, nil
}

// handleHistoryKey drives the history overlay.
func (m Model) handleHistoryKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keyMap.Back), key.Matches(msg, m.keyMap.History):
		m.showHistory = false
		return m, nil

	case key.Matches(msg, m.keyMap.Up):
		if m.histSelected > 0 {
			m.histSelected--
		}
		return m, nil

	case key.Matches(msg, m.keyMap.Down):
		if m.histSelected < len(m.histEntries)-1 {
			m.histSelected++
		}
		return m, nil

	case key.Matches(msg, m.keyMap.Submit):
		// Prefill the form from the selected entry
		if m.histSelected < len(m.histEntries) {
			entry := m.histEntries[m.histSelected]
			m.queryInput.SetValue(entry.Query)
			m.fileInput.SetValue(entry.FilePath)
			if p, err := api.ParsePersona(entry.Persona); err == nil && p != m.persona {
				m.togglePersona()
			}
			m.state = StateInput
			m.focusQuery()
		}
		m.showHistory = false
		return m, nil
	}
	return m, nil
}

// =============================================================================
// FORM ACTIONS
// =============================================================================

// submit validates the form and fires the request.
func (m Model) submit() (tea.Model, tea.Cmd) {
	query := strings.TrimSpace(m.queryInput.Value())
	filePath := strings.TrimSpace(m.fileInput.Value())

	if err := ValidateInput(query, filePath); err != nil {
		m.state = StateInput
		m.hint = err.Error()
		return m, nil
	}

	m.state = StateLoading
	m.hint = ""
	m.lastErr = nil
	m.completions.Hide()
	m.statusBar.SetStatus("analyzing " + filePath)

	req := api.QueryRequest{
		UserQuery: query,
		FilePath:  filePath,
		Persona:   m.persona,
	}

	return m, tea.Batch(
		m.spinner.Start(),
		AnalyzeCmd(m.client, req),
	)
}

func (m *Model) switchFocus() {
	if m.focus == FocusQuery {
		m.focus = FocusFile
		m.queryInput.Blur()
		m.fileInput.Focus()
		m.refreshCompletions()
	} else {
		m.focusQuery()
	}
}

func (m *Model) focusQuery() {
	m.focus = FocusQuery
	m.fileInput.Blur()
	m.completions.Hide()
	m.queryInput.Focus()
}

// refreshCompletions repopulates the popup from the catalog.
func (m *Model) refreshCompletions() {
	if m.catalog == nil {
		return
	}
	prefix := strings.TrimSpace(m.fileInput.Value())
	if prefix == "" {
		m.completions.Hide()
		return
	}
	m.completions.SetItems(m.catalog.Complete(prefix))
}

// =============================================================================
// RESPONSE HANDLING
// =============================================================================

// handleComplete parses the report into cards and sources.
func (m Model) handleComplete(msg AnalyzeCompleteMsg) (tea.Model, tea.Cmd) {
	m.spinner.Stop()

	m.cards = report.SplitSections(msg.Response.Report)
	m.sources = report.BuildSourceEntries(msg.Response.Sources)
	m.sourceView.SetEntries(m.sources)
	m.showSnippet = false

	m.state = StateReport
	m.setSize(m.width, m.height) // Recompute panel split for the new sources
	m.viewport.SetContent(m.cardView.Render(m.cards))
	m.viewport.GotoTop()

	status := strconv.Itoa(len(m.cards)) + " sections, " +
		strconv.Itoa(len(m.sources)) + " sources in " +
		msg.Elapsed.Round(100*time.Millisecond).String()
	if missing := report.MissingCanonical(m.cards); len(missing) > 0 {
		status = "partial report, missing: " + strings.Join(missing, "; ")
	}
	m.statusBar.SetStatus(status)

	return m, RecordHistoryCmd(m.histStore, history.Entry{
		Query:        msg.Request.UserQuery,
		FilePath:     msg.Request.FilePath,
		Persona:      string(msg.Request.Persona),
		Outcome:      history.OutcomeOK,
		SectionCount: len(m.cards),
		SourceCount:  len(m.sources),
		Duration:     msg.Elapsed,
	})
}

// handleError shows the error box and records the failure.
func (m Model) handleError(msg AnalyzeErrorMsg) (tea.Model, tea.Cmd) {
	m.spinner.Stop()
	m.lastErr = msg.Err
	m.state = StateError
	m.statusBar.SetStatus("analysis failed")

	return m, RecordHistoryCmd(m.histStore, history.Entry{
		Query:    msg.Request.UserQuery,
		FilePath: msg.Request.FilePath,
		Persona:  string(msg.Request.Persona),
		Outcome:  history.OutcomeError,
		Error:    msg.Err.Error(),
		Duration: msg.Elapsed,
	})
}
