// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Package components provides the visual UI components for the medrag TUI.

Each component is a small, self-contained renderer or Bubble Tea model:

  - Header: application title bar with endpoint and persona
  - StatusBar: key hints and request state
  - Spinner: loading indicator shown while a request is in flight
  - CardView: persona-styled report section cards
  - SourceListView: ranked source snippets with category badges
  - SnippetView: full-snippet viewer with highlighting
  - ErrorBox: typed request errors with recovery suggestions
  - CompletionPopup: file path completion for the data directory
  - Welcome: first-run screen

Components render to strings; layout and composition happen in the
analyze model.
*/
package components
