// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package util provides utility functions for the medrag TUI.
//
// This package contains common helper functions used throughout the
// application for string manipulation and display-width handling.
//
// # Key Functions
//
// String Utilities:
//   - TruncateRunes: UTF-8 safe string truncation with ellipsis
//   - TruncateWidth: display-width truncation (CJK aware, via go-runewidth)
//   - Summarize: collapse to one line and truncate for list display
//
// # Usage
//
//	// Truncate long strings safely for display
//	display := util.TruncateRunes(longText, 50)
//
//	// One-line summary for a list entry
//	line := util.Summarize(snippet, 60)
package util
