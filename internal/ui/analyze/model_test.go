// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package analyze

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/medrag-tui/internal/api"
	"github.com/jeranaias/medrag-tui/internal/history"
	"github.com/jeranaias/medrag-tui/internal/ui/styles"
)

func newTestModel() Model {
	m := New(Options{
		Theme:   styles.NewThemeWithMode("dark"),
		Version: "test",
	})
	m.setSize(100, 40)
	return m
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	model, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T, want Model", next)
	}
	return model, cmd
}

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func sampleResponse() *api.AnalyzeResponse {
	return &api.AnalyzeResponse{
		Report: "**Clinical Explanation and Summary**The patient presents with stable angina." +
			"**Problem/Diagnosis and Cause**Coronary artery disease." +
			"**Recommended Intervention and Risks**Start beta blockers.",
		Sources: []api.SourceItem{
			{File: "report.pdf", Type: "application/pdf", Score: 0.91, Content: "full snippet one"},
			{File: "xray.png", Type: "image/png", Score: 0.82, Content: "opacity noted"},
		},
	}
}

// =============================================================================
// STATE TRANSITIONS
// =============================================================================

func TestStartsOnWelcomeScreen(t *testing.T) {
	m := newTestModel()
	if m.State() != StateWelcome {
		t.Errorf("initial state = %v, want StateWelcome", m.State())
	}
	if !strings.Contains(m.View(), "Start typing") {
		t.Error("welcome view should invite typing")
	}
}

func TestTypingLeavesWelcome(t *testing.T) {
	m := newTestModel()
	m, _ = update(t, m, keyRunes("w"))
	if m.State() != StateInput {
		t.Errorf("state after typing = %v, want StateInput", m.State())
	}
}

func TestSubmitInvalidShowsHint(t *testing.T) {
	m := newTestModel()
	m.queryInput.SetValue("hi")
	m.fileInput.SetValue("report.pdf")

	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.State() != StateInput {
		t.Errorf("state = %v, want StateInput", m.State())
	}
	if cmd != nil {
		t.Error("invalid submit should not fire a request")
	}
	if !strings.Contains(m.View(), "longer than 5 characters") {
		t.Error("view should show the validation hint")
	}
}

func TestHintTracksKeystrokes(t *testing.T) {
	m := newTestModel()
	if m.hint == "" {
		t.Error("hint should show while the form is invalid")
	}

	m.queryInput.SetValue("what is the diagnosi")
	m.fileInput.SetValue("report.pdf")
	m, _ = update(t, m, keyRunes("s"))
	if m.hint != "" {
		t.Errorf("hint should clear once both fields are valid, got %q", m.hint)
	}

	m.queryInput.SetValue("hi")
	m, _ = update(t, m, keyRunes("!"))
	if m.hint == "" {
		t.Error("hint should return when a field drops below the minimum")
	}
}

func TestSubmitValidStartsLoading(t *testing.T) {
	m := newTestModel()
	m.queryInput.SetValue("what is the diagnosis")
	m.fileInput.SetValue("report.pdf")

	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.State() != StateLoading {
		t.Errorf("state = %v, want StateLoading", m.State())
	}
	if cmd == nil {
		t.Fatal("valid submit should return commands")
	}
}

func TestLoadingIgnoresInput(t *testing.T) {
	m := newTestModel()
	m.state = StateLoading

	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.State() != StateLoading {
		t.Error("enter during a request should be ignored")
	}
	if cmd != nil {
		t.Error("no second request may start while one is in flight")
	}
}

func TestAnalyzeCompleteParsesReport(t *testing.T) {
	m := newTestModel()
	m.state = StateLoading

	m, _ = update(t, m, AnalyzeCompleteMsg{
		Request:  api.QueryRequest{UserQuery: "q", FilePath: "f", Persona: api.PersonaDoctor},
		Response: sampleResponse(),
		Elapsed:  2 * time.Second,
	})

	if m.State() != StateReport {
		t.Fatalf("state = %v, want StateReport", m.State())
	}
	cards := m.Cards()
	if len(cards) != 3 {
		t.Fatalf("got %d cards, want 3", len(cards))
	}
	if cards[0].Title != "Clinical Explanation and Summary" {
		t.Errorf("first card title = %q", cards[0].Title)
	}
	sources := m.Sources()
	if len(sources) != 2 {
		t.Fatalf("got %d sources, want 2", len(sources))
	}
	if sources[1].Category.String() != "image" {
		t.Errorf("second source category = %q, want image", sources[1].Category)
	}

	view := m.View()
	if !strings.Contains(view, "stable angina") {
		t.Error("report view should contain card content")
	}
	if !strings.Contains(view, "xray.png") {
		t.Error("report view should list sources")
	}
}

func TestAnalyzeCompleteWithoutSourcesWarns(t *testing.T) {
	m := newTestModel()
	m.state = StateLoading

	resp := sampleResponse()
	resp.Sources = nil
	m, _ = update(t, m, AnalyzeCompleteMsg{
		Request:  api.QueryRequest{UserQuery: "q", FilePath: "f", Persona: api.PersonaDoctor},
		Response: resp,
		Elapsed:  time.Second,
	})

	if len(m.Sources()) != 0 {
		t.Fatalf("got %d sources, want 0", len(m.Sources()))
	}
	if !strings.Contains(m.View(), "No supporting evidence") {
		t.Error("report view should warn when no evidence came back")
	}
}

func TestIncompleteReportFlaggedInStatus(t *testing.T) {
	m := newTestModel()
	m.state = StateLoading

	resp := &api.AnalyzeResponse{Report: "**Clinical Explanation and Summary**All clear."}
	m, _ = update(t, m, AnalyzeCompleteMsg{
		Request:  api.QueryRequest{UserQuery: "q", FilePath: "f", Persona: api.PersonaDoctor},
		Response: resp,
		Elapsed:  time.Second,
	})

	if !strings.Contains(m.View(), "partial report") {
		t.Error("status bar should flag a report missing canonical sections")
	}
}

func TestAnalyzeErrorShowsErrorState(t *testing.T) {
	m := newTestModel()
	m.state = StateLoading

	clientErr := &api.ClientError{Type: api.ErrTypeUnreachable, Message: "cannot reach analysis server"}
	m, _ = update(t, m, AnalyzeErrorMsg{
		Request: api.QueryRequest{UserQuery: "q", FilePath: "f", Persona: api.PersonaDoctor},
		Err:     clientErr,
	})

	if m.State() != StateError {
		t.Fatalf("state = %v, want StateError", m.State())
	}
	if !strings.Contains(m.View(), "cannot reach analysis server") {
		t.Error("error view should show the message")
	}
}

func TestErrorStateEscReturnsToForm(t *testing.T) {
	m := newTestModel()
	m.state = StateError
	m.lastErr = api.ErrTimeout

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.State() != StateInput {
		t.Errorf("state = %v, want StateInput", m.State())
	}
}

// =============================================================================
// PERSONA
// =============================================================================

func TestTogglePersona(t *testing.T) {
	m := newTestModel()
	if m.Persona() != api.PersonaDoctor {
		t.Fatalf("default persona = %v", m.Persona())
	}

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyCtrlP})
	if m.Persona() != api.PersonaPatient {
		t.Errorf("persona after toggle = %v, want PATIENT", m.Persona())
	}

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyCtrlP})
	if m.Persona() != api.PersonaDoctor {
		t.Errorf("persona after double toggle = %v, want DOCTOR", m.Persona())
	}
}

func TestSubmitCarriesPersona(t *testing.T) {
	m := newTestModel()
	m.queryInput.SetValue("what is the diagnosis")
	m.fileInput.SetValue("report.pdf")
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyCtrlP})

	next, _ := m.submit()
	got := next.(Model)
	if got.State() != StateLoading {
		t.Fatalf("state = %v", got.State())
	}
	if got.Persona() != api.PersonaPatient {
		t.Error("persona should survive submit")
	}
}

// =============================================================================
// SOURCE NAVIGATION AND SNIPPET EXPANSION
// =============================================================================

func reportModel(t *testing.T) Model {
	m := newTestModel()
	m.state = StateLoading
	m, _ = update(t, m, AnalyzeCompleteMsg{
		Request:  api.QueryRequest{UserQuery: "q", FilePath: "f", Persona: api.PersonaDoctor},
		Response: sampleResponse(),
	})
	return m
}

func TestSourceNavigationAndExpand(t *testing.T) {
	m := reportModel(t)

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyDown})
	sel, ok := m.sourceView.Selected()
	if !ok || sel.Index != 2 {
		t.Fatalf("selection = %+v", sel)
	}

	m, _ = update(t, m, keyRunes("e"))
	if !m.showSnippet {
		t.Fatal("expand should show the snippet view")
	}
	if !strings.Contains(m.View(), "opacity noted") {
		t.Error("snippet view should show the full content")
	}

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.showSnippet {
		t.Error("esc should collapse the snippet")
	}
}

func TestReportEscReturnsToForm(t *testing.T) {
	m := reportModel(t)
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.State() != StateInput {
		t.Errorf("state = %v, want StateInput", m.State())
	}
}

// =============================================================================
// HISTORY OVERLAY
// =============================================================================

func TestHistoryOverlayPrefillsForm(t *testing.T) {
	m := newTestModel()

	m, _ = update(t, m, HistoryLoadedMsg{Entries: []history.Entry{
		{Query: "older question about labs", FilePath: "labs.pdf", Persona: "PATIENT"},
		{Query: "other", FilePath: "other.pdf", Persona: "DOCTOR"},
	}})
	if !m.showHistory {
		t.Fatal("history overlay should open")
	}
	if !strings.Contains(m.View(), "older question about labs") {
		t.Error("overlay should list entries")
	}

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.showHistory {
		t.Error("selection should close the overlay")
	}
	if m.queryInput.Value() != "older question about labs" {
		t.Errorf("query prefill = %q", m.queryInput.Value())
	}
	if m.fileInput.Value() != "labs.pdf" {
		t.Errorf("file prefill = %q", m.fileInput.Value())
	}
	if m.Persona() != api.PersonaPatient {
		t.Errorf("persona prefill = %v", m.Persona())
	}
}

func TestHistoryOverlayEscCloses(t *testing.T) {
	m := newTestModel()
	m, _ = update(t, m, HistoryLoadedMsg{Entries: []history.Entry{{Query: "q", FilePath: "f", Persona: "DOCTOR"}}})
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.showHistory {
		t.Error("esc should close the overlay")
	}
}

// =============================================================================
// COMMANDS
// =============================================================================

func TestAnalyzeCmdNilClient(t *testing.T) {
	cmd := AnalyzeCmd(nil, api.QueryRequest{})
	msg := cmd()
	errMsg, ok := msg.(AnalyzeErrorMsg)
	if !ok {
		t.Fatalf("got %T, want AnalyzeErrorMsg", msg)
	}
	if errMsg.Err == nil {
		t.Error("nil client should produce an error")
	}
}

func TestLoadHistoryCmdNilStore(t *testing.T) {
	msg := LoadHistoryCmd(nil, 10)()
	loaded, ok := msg.(HistoryLoadedMsg)
	if !ok {
		t.Fatalf("got %T, want HistoryLoadedMsg", msg)
	}
	if loaded.Err != nil || loaded.Entries != nil {
		t.Error("nil store should load nothing, without error")
	}
}
