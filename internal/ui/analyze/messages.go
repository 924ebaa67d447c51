// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package analyze provides the main analysis view for the TUI.
//
// This file defines all Bubble Tea message types used by the analysis
// interface. Messages are organized into the following categories:
//   - Analysis: request completion and errors
//   - History: loading and recording past queries
//
// All message types follow Bubble Tea conventions and are immutable.
package analyze

import (
	"time"

	"github.com/jeranaias/medrag-tui/internal/api"
	"github.com/jeranaias/medrag-tui/internal/history"
)

// =============================================================================
// ANALYSIS MESSAGES
// =============================================================================

// AnalyzeCompleteMsg delivers a successful analysis response.
type AnalyzeCompleteMsg struct {
	Request  api.QueryRequest
	Response *api.AnalyzeResponse
	Elapsed  time.Duration
}

// AnalyzeErrorMsg delivers a failed analysis request.
type AnalyzeErrorMsg struct {
	Request api.QueryRequest
	Err     error
	Elapsed time.Duration
}

// =============================================================================
// HISTORY MESSAGES
// =============================================================================

// HistoryLoadedMsg delivers past queries for the history overlay.
type HistoryLoadedMsg struct {
	Entries []history.Entry
	Err     error
}

// HistoryRecordedMsg confirms a query was written to history.
// Failures are non-fatal; the UI ignores them.
type HistoryRecordedMsg struct {
	Err error
}
