// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package analyze provides the main analysis view for the TUI.
package analyze

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/medrag-tui/internal/api"
	"github.com/jeranaias/medrag-tui/internal/history"
)

// =============================================================================
// COMMAND CREATORS
// =============================================================================

// AnalyzeCmd creates a command that sends the request and delivers the
// result as a message. The network call is the model's only suspension
// point; everything else happens synchronously in Update.
func AnalyzeCmd(client *api.Client, req api.QueryRequest) tea.Cmd {
	return func() tea.Msg {
		if client == nil {
			return AnalyzeErrorMsg{Request: req, Err: api.ErrNoClient}
		}
		start := time.Now()
		resp, err := client.Analyze(context.Background(), req)
		elapsed := time.Since(start)
		if err != nil {
			return AnalyzeErrorMsg{Request: req, Err: err, Elapsed: elapsed}
		}
		return AnalyzeCompleteMsg{Request: req, Response: resp, Elapsed: elapsed}
	}
}

// LoadHistoryCmd creates a command that loads recent queries.
func LoadHistoryCmd(store *history.Store, limit int) tea.Cmd {
	return func() tea.Msg {
		if store == nil {
			return HistoryLoadedMsg{}
		}
		entries, err := store.Recent(context.Background(), limit)
		return HistoryLoadedMsg{Entries: entries, Err: err}
	}
}

// RecordHistoryCmd creates a command that records a finished query.
func RecordHistoryCmd(store *history.Store, entry history.Entry) tea.Cmd {
	return func() tea.Msg {
		if store == nil {
			return HistoryRecordedMsg{}
		}
		_, err := store.Record(context.Background(), entry)
		return HistoryRecordedMsg{Err: err}
	}
}
