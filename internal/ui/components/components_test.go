// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/jeranaias/medrag-tui/internal/api"
	"github.com/jeranaias/medrag-tui/internal/report"
	"github.com/jeranaias/medrag-tui/internal/ui/styles"
)

func testTheme() *styles.Theme {
	return styles.NewThemeWithMode("dark")
}

// =============================================================================
// HELPERS
// =============================================================================

func TestToStr(t *testing.T) {
	tests := []struct {
		in   int
		want string
	}{
		{0, "0"},
		{7, "7"},
		{42, "42"},
		{-13, "-13"},
		{1000, "1000"},
	}
	for _, tt := range tests {
		if got := toStr(tt.in); got != tt.want {
			t.Errorf("toStr(%d) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFormatElapsed(t *testing.T) {
	tests := []struct {
		in   time.Duration
		want string
	}{
		{500 * time.Millisecond, "500ms"},
		{1500 * time.Millisecond, "1.5s"},
		{30 * time.Second, "30.0s"},
		{90 * time.Second, "1m30s"},
	}
	for _, tt := range tests {
		if got := formatElapsed(tt.in); got != tt.want {
			t.Errorf("formatElapsed(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

// =============================================================================
// SOURCE LIST
// =============================================================================

func sampleEntries() []report.SourceEntry {
	return []report.SourceEntry{
		{Index: 1, File: "report.pdf", Category: report.CategoryDefault, Score: 0.9132, Summary: "patient presents with chest pain", Content: "full text"},
		{Index: 2, File: "xray.png", Category: report.CategoryImage, Score: 0.8221, Summary: "opacity in the left lower lobe", Content: "full image description"},
		{Index: 3, File: "dictation.mp3", Category: report.CategoryAudio, Score: 0.7015, Summary: "transcribed dictation", Content: "full transcript"},
	}
}

func TestSourceListView(t *testing.T) {
	v := NewSourceListView(testTheme())
	v.SetEntries(sampleEntries())

	out := v.View()
	for _, want := range []string{"Sources (3)", "1.", "report.pdf", "image", "audio", "0.9132"} {
		if !strings.Contains(out, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestSourceListSelection(t *testing.T) {
	v := NewSourceListView(testTheme())
	v.SetEntries(sampleEntries())

	sel, ok := v.Selected()
	if !ok || sel.Index != 1 {
		t.Fatalf("initial selection = %+v, ok=%v", sel, ok)
	}

	v.MoveUp() // Already at top
	if sel, _ := v.Selected(); sel.Index != 1 {
		t.Error("MoveUp at top should not change selection")
	}

	v.MoveDown()
	v.MoveDown()
	v.MoveDown() // Past the end
	if sel, _ := v.Selected(); sel.Index != 3 {
		t.Errorf("selection = %d, want 3", sel.Index)
	}
}

func TestSourceListEmpty(t *testing.T) {
	v := NewSourceListView(testTheme())
	out := v.View()
	if !strings.Contains(out, "No supporting evidence") {
		t.Errorf("empty list should render the no-evidence warning, got %q", out)
	}
	if strings.Contains(out, "1.") {
		t.Errorf("empty list should render no entries, got %q", out)
	}
	if _, ok := v.Selected(); ok {
		t.Error("empty list should have no selection")
	}
}

// =============================================================================
// SNIPPET VIEWER
// =============================================================================

func TestSnippetViewRendersContent(t *testing.T) {
	v := NewSnippetView(testTheme())
	entry := report.SourceEntry{
		Index:    1,
		File:     "report.pdf",
		Category: report.CategoryDefault,
		Content:  "line one\nline two",
	}

	out := v.Render(entry)
	for _, want := range []string{"report.pdf", "line one", "line two", "1", "2"} {
		if !strings.Contains(out, want) {
			t.Errorf("snippet view missing %q", want)
		}
	}
}

func TestSnippetViewEmptyContent(t *testing.T) {
	v := NewSnippetView(testTheme())
	out := v.Render(report.SourceEntry{File: "x.pdf", Category: report.CategoryImage})
	if !strings.Contains(out, "empty snippet") {
		t.Error("empty content should render a placeholder")
	}
}

// =============================================================================
// COMPLETION POPUP
// =============================================================================

func TestCompletionPopupNavigation(t *testing.T) {
	c := NewCompletionPopup(testTheme())
	c.SetItems([]string{"a.pdf", "b.pdf", "c.pdf"})

	if !c.IsVisible() {
		t.Fatal("popup should be visible with items")
	}
	if sel, _ := c.Selected(); sel != "a.pdf" {
		t.Errorf("initial selection = %q", sel)
	}

	c.Next()
	c.Next()
	if sel, _ := c.Selected(); sel != "c.pdf" {
		t.Errorf("selection = %q, want c.pdf", sel)
	}

	c.Next() // Wraps
	if sel, _ := c.Selected(); sel != "a.pdf" {
		t.Errorf("selection after wrap = %q, want a.pdf", sel)
	}

	c.Prev() // Wraps backwards
	if sel, _ := c.Selected(); sel != "c.pdf" {
		t.Errorf("selection after reverse wrap = %q, want c.pdf", sel)
	}
}

func TestCompletionPopupHidden(t *testing.T) {
	c := NewCompletionPopup(testTheme())
	c.SetItems(nil)
	if c.IsVisible() {
		t.Error("popup with no items should be hidden")
	}
	if out := c.View(); out != "" {
		t.Errorf("hidden popup should render nothing, got %q", out)
	}

	c.SetItems([]string{"a.pdf"})
	c.Hide()
	if _, ok := c.Selected(); ok {
		t.Error("hidden popup should have no selection")
	}
}

// =============================================================================
// ERROR BOX
// =============================================================================

func TestErrorBoxSuggestions(t *testing.T) {
	e := NewErrorBox(testTheme())

	unreachable := &api.ClientError{Type: api.ErrTypeUnreachable, Message: "cannot reach server"}
	out := e.Render(unreachable)
	if !strings.Contains(out, "cannot reach server") {
		t.Error("error box should include the error message")
	}
	if !strings.Contains(out, "analysis server is running") {
		t.Error("unreachable errors should suggest checking the server")
	}

	server := &api.ClientError{Type: api.ErrTypeHTTP, Status: 500, Message: "analysis failed with status 500"}
	if !strings.Contains(e.Render(server), "server logs") {
		t.Error("5xx errors should point at the server logs")
	}

	client := &api.ClientError{Type: api.ErrTypeHTTP, Status: 400, Message: "analysis failed with status 400"}
	if !strings.Contains(e.Render(client), "file path") {
		t.Error("4xx errors should suggest checking the request")
	}

	if out := e.Render(errors.New("mystery")); strings.Contains(out, "press enter") {
		t.Error("unknown errors get no canned suggestion")
	}

	if e.Render(nil) != "" {
		t.Error("nil error should render nothing")
	}
}

// =============================================================================
// CARDS
// =============================================================================

func TestCardViewRendersTitlesAndBodies(t *testing.T) {
	v := NewCardView(testTheme(), api.PersonaDoctor)
	cards := []report.Card{
		{Title: "Clinical Explanation and Summary", Bodies: []string{"The patient presents with stable angina."}},
		{Title: "Recommended Intervention and Risks", Bodies: []string{"Start beta blockers.", "Monitor for bradycardia."}},
	}

	out := v.Render(cards)
	for _, want := range []string{
		"Clinical Explanation and Summary",
		"Recommended Intervention and Risks",
		"stable angina",
		"bradycardia",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("card view missing %q", want)
		}
	}
}

func TestCardViewEmpty(t *testing.T) {
	v := NewCardView(testTheme(), api.PersonaPatient)
	if out := v.Render(nil); out != "" {
		t.Errorf("no cards should render nothing, got %q", out)
	}
}

// =============================================================================
// HEADER AND STATUS BAR
// =============================================================================

func TestHeaderShowsPersona(t *testing.T) {
	h := NewHeader(testTheme(), "http://127.0.0.1:8000/analyze")
	h.SetWidth(120)
	h.SetPersona(api.PersonaPatient)

	out := h.View()
	if !strings.Contains(out, "PATIENT") {
		t.Error("header should show the active persona")
	}
	if !strings.Contains(out, "MedRAG") {
		t.Error("header should show the app title")
	}
}

func TestStatusBar(t *testing.T) {
	s := NewStatusBar(testTheme(), []Shortcut{
		{Key: "tab", Desc: "switch"},
		{Key: "ctrl+c", Desc: "quit"},
	})
	s.SetWidth(80)
	s.SetStatus("ready")

	out := s.View()
	for _, want := range []string{"tab", "switch", "ctrl+c", "quit", "ready"} {
		if !strings.Contains(out, want) {
			t.Errorf("status bar missing %q", want)
		}
	}
}

// =============================================================================
// SPINNER
// =============================================================================

func TestSpinnerLifecycle(t *testing.T) {
	s := NewAnalyzingSpinner()
	if s.IsActive() {
		t.Error("spinner should start inactive")
	}
	if s.View() != "" {
		t.Error("inactive spinner should render nothing")
	}

	cmd := s.Start()
	if cmd == nil {
		t.Error("Start should return a tick command")
	}
	if !s.IsActive() {
		t.Error("spinner should be active after Start")
	}
	if !strings.Contains(s.View(), "Analyzing") {
		t.Error("spinner view should include its message")
	}

	s.Stop()
	if s.IsActive() {
		t.Error("spinner should be inactive after Stop")
	}
}
