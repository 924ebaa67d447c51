// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package report turns the analyze API's semi-structured payload into view
// models the UI can render without touching raw markdown or raw JSON.
package report

import (
	"strings"

	"github.com/jeranaias/medrag-tui/internal/api"
	"github.com/jeranaias/medrag-tui/internal/util"
)

// Category classifies a source item by the modality of its origin file.
// Resolution order is image, then audio, then default; the first match on
// the item's type token wins.
type Category int

const (
	CategoryDefault Category = iota
	CategoryImage
	CategoryAudio
)

// String returns the display label for the category tag.
func (c Category) String() string {
	switch c {
	case CategoryImage:
		return "image"
	case CategoryAudio:
		return "audio"
	default:
		return "text"
	}
}

// SourceEntry is the view model for one evidence list row.
type SourceEntry struct {
	Index    int // 1-based position in the list
	File     string
	Category Category
	Score    float64
	Summary  string // single-line, width-truncated
	Content  string // full snippet, revealed on expand
}

// summaryWidth is the display width budget for the collapsed one-line view.
const summaryWidth = 72

// BuildSourceEntries converts API source items into ordered view models.
// Order is preserved; indices are 1-based for display.
func BuildSourceEntries(items []api.SourceItem) []SourceEntry {
	entries := make([]SourceEntry, 0, len(items))
	for i, item := range items {
		entries = append(entries, SourceEntry{
			Index:    i + 1,
			File:     item.File,
			Category: Categorize(item.Type),
			Score:    item.Score.Value(),
			Summary:  util.Summarize(item.Content, summaryWidth),
			Content:  item.Content,
		})
	}
	return entries
}

// Categorize resolves a source type token to a display category.
// "image" wins over "audio" when a token somehow contains both.
func Categorize(typeToken string) Category {
	token := strings.ToLower(typeToken)
	switch {
	case strings.Contains(token, "image"):
		return CategoryImage
	case strings.Contains(token, "audio"):
		return CategoryAudio
	default:
		return CategoryDefault
	}
}
