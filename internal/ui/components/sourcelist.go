// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package components provides UI components for the medrag TUI.
package components

import (
	"strconv"
	"strings"

	"github.com/jeranaias/medrag-tui/internal/report"
	"github.com/jeranaias/medrag-tui/internal/ui/styles"
)

// =============================================================================
// SOURCE LIST
// =============================================================================

// SourceListView renders ranked source snippets with category badges.
// One entry can be selected; the selected entry can be expanded to show
// its full snippet via SnippetView.
type SourceListView struct {
	theme    *styles.Theme
	entries  []report.SourceEntry
	selected int
	maxWidth int
}

// NewSourceListView creates an empty source list.
func NewSourceListView(theme *styles.Theme) *SourceListView {
	return &SourceListView{theme: theme, maxWidth: 80}
}

// SetEntries replaces the listed entries and resets the selection.
func (v *SourceListView) SetEntries(entries []report.SourceEntry) {
	v.entries = entries
	v.selected = 0
}

// SetMaxWidth sets the wrap width.
func (v *SourceListView) SetMaxWidth(width int) {
	v.maxWidth = width
}

// Len returns the number of entries.
func (v *SourceListView) Len() int {
	return len(v.entries)
}

// Selected returns the currently selected entry, if any.
func (v *SourceListView) Selected() (report.SourceEntry, bool) {
	if len(v.entries) == 0 {
		return report.SourceEntry{}, false
	}
	return v.entries[v.selected], true
}

// MoveUp moves the selection up one entry.
func (v *SourceListView) MoveUp() {
	if v.selected > 0 {
		v.selected--
	}
}

// MoveDown moves the selection down one entry.
func (v *SourceListView) MoveDown() {
	if v.selected < len(v.entries)-1 {
		v.selected++
	}
}

// View renders the list.
func (v *SourceListView) View() string {
	if len(v.entries) == 0 {
		return v.theme.SourceList.MaxWidth(v.maxWidth).Render(
			styles.RenderWarning("No supporting evidence was found for this report"))
	}

	header := v.theme.InputLabel.Render("Sources (" + strconv.Itoa(len(v.entries)) + ")")

	lines := make([]string, 0, len(v.entries)+1)
	lines = append(lines, header)
	for i, entry := range v.entries {
		lines = append(lines, v.renderEntry(entry, i == v.selected))
	}

	width := v.maxWidth
	if width < 30 {
		width = 30
	}
	return v.theme.SourceList.MaxWidth(width).Render(strings.Join(lines, "\n"))
}

// renderEntry renders one entry: index, badge, file, score, then the
// truncated summary on its own line.
func (v *SourceListView) renderEntry(entry report.SourceEntry, selected bool) string {
	index := v.theme.SourceIndex.Render(strconv.Itoa(entry.Index) + ".")
	badge := v.theme.BadgeStyle(entry.Category.String()).Render(entry.Category.String())
	file := v.theme.SourceFile.Render(entry.File)
	score := v.theme.SourceScore.Render("score " + strconv.FormatFloat(entry.Score, 'f', 4, 64))

	head := index + " " + badge + " " + file + " " + score
	summary := v.theme.SourceSummary.PaddingLeft(5).Render(entry.Summary)

	item := head + "\n" + summary
	if selected {
		return v.theme.SourceItemSelected.Render(item)
	}
	return v.theme.SourceItem.Render(item)
}
