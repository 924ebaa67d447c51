// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import (
	"strings"
	"testing"

	"github.com/jeranaias/medrag-tui/internal/api"
)

func TestNewTheme(t *testing.T) {
	theme := NewTheme()
	if theme == nil {
		t.Fatal("NewTheme returned nil")
	}
}

func TestNewThemeWithMode(t *testing.T) {
	dark := NewThemeWithMode("dark")
	if !dark.IsDark {
		t.Error("dark mode theme should report IsDark")
	}
	light := NewThemeWithMode("light")
	if light.IsDark {
		t.Error("light mode theme should not report IsDark")
	}
}

func TestCardStyleByPersona(t *testing.T) {
	theme := NewThemeWithMode("dark")

	doctor := theme.CardStyle(api.PersonaDoctor)
	patient := theme.CardStyle(api.PersonaPatient)
	if doctor.GetBorderTopForeground() == patient.GetBorderTopForeground() {
		t.Error("doctor and patient cards should use distinct accents")
	}

	// Unknown personas fall back to the doctor treatment
	other := theme.CardStyle(api.Persona("NURSE"))
	if other.GetBorderTopForeground() != doctor.GetBorderTopForeground() {
		t.Error("unknown persona should use the doctor card style")
	}
}

func TestBadgeStyle(t *testing.T) {
	theme := NewThemeWithMode("dark")

	image := theme.BadgeStyle("image")
	audio := theme.BadgeStyle("audio")
	text := theme.BadgeStyle("text")
	unknown := theme.BadgeStyle("whatever")

	if image.GetBackground() == audio.GetBackground() {
		t.Error("image and audio badges should differ")
	}
	if unknown.GetBackground() != text.GetBackground() {
		t.Error("unknown category should use the text badge")
	}
}

func TestGetLayoutMode(t *testing.T) {
	theme := NewTheme()

	tests := []struct {
		width int
		want  LayoutMode
	}{
		{40, LayoutNarrow},
		{59, LayoutNarrow},
		{60, LayoutMedium},
		{99, LayoutMedium},
		{100, LayoutWide},
		{200, LayoutWide},
	}
	for _, tt := range tests {
		theme.SetSize(tt.width, 40)
		if got := theme.GetLayoutMode(); got != tt.want {
			t.Errorf("width %d: layout = %v, want %v", tt.width, got, tt.want)
		}
	}
}

func TestRenderStatusIncludesIndicator(t *testing.T) {
	if !strings.Contains(RenderStatus(true, "saved"), StatusIndicators.Success) {
		t.Error("success status should include the [OK] indicator")
	}
	if !strings.Contains(RenderStatus(false, "failed"), StatusIndicators.Error) {
		t.Error("error status should include the [X] indicator")
	}
}
