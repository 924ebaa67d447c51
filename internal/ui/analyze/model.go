// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package analyze provides the main analysis view for the TUI.
package analyze

import (
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/medrag-tui/internal/api"
	"github.com/jeranaias/medrag-tui/internal/catalog"
	"github.com/jeranaias/medrag-tui/internal/history"
	"github.com/jeranaias/medrag-tui/internal/report"
	"github.com/jeranaias/medrag-tui/internal/ui/components"
	"github.com/jeranaias/medrag-tui/internal/ui/styles"
)

// =============================================================================
// STATE
// =============================================================================

// State represents the current state of the analysis view.
type State int

const (
	StateWelcome State = iota // First-run screen, no input yet
	StateInput                // Form ready for input
	StateLoading              // Request in flight
	StateReport               // Showing a parsed report
	StateError                // Showing a failed request
)

// Focus identifies which form field has keyboard focus.
type Focus int

const (
	FocusQuery Focus = iota
	FocusFile
)

// =============================================================================
// MODEL
// =============================================================================

// Options configures a new analysis model.
type Options struct {
	Theme   *styles.Theme
	Client  *api.Client
	Catalog *catalog.Catalog // Optional: file path completion
	History *history.Store   // Optional: query history
	Version string
	Persona api.Persona
}

// Model is the Bubble Tea model for the analysis view.
//
// The model is strictly single-threaded: the network call inside
// AnalyzeCmd is its only suspension point, and only one request is ever
// in flight.
type Model struct {
	// State
	state State
	focus Focus

	// Styling
	theme *styles.Theme

	// Dimensions
	width  int
	height int

	// Backend
	client    *api.Client
	catalog   *catalog.Catalog
	histStore *history.Store

	// Form
	queryInput textinput.Model
	fileInput  textinput.Model
	persona    api.Persona
	hint       string // validation hint under the form

	// Key bindings
	keyMap KeyMap

	// Report state
	cards       []report.Card
	sources     []report.SourceEntry
	viewport    viewport.Model // scrolls the rendered cards
	showSnippet bool
	lastErr     error

	// History overlay
	showHistory  bool
	histEntries  []history.Entry
	histSelected int

	// UI components
	header      *components.Header
	statusBar   *components.StatusBar
	spinner     components.Spinner
	cardView    *components.CardView
	sourceView  *components.SourceListView
	snippetView *components.SnippetView
	errorBox    *components.ErrorBox
	completions *components.CompletionPopup
	welcome     *components.Welcome
}

// New creates the analysis model.
func New(opts Options) Model {
	theme := opts.Theme
	if theme == nil {
		theme = styles.NewTheme()
	}
	persona := opts.Persona
	if !persona.Valid() {
		persona = api.DefaultPersona
	}

	query := textinput.New()
	query.Placeholder = "What would you like to know about this document?"
	query.CharLimit = 2000
	query.Focus()

	file := textinput.New()
	file.Placeholder = "report.pdf"
	file.CharLimit = 500

	endpoint := api.DefaultEndpoint
	if opts.Client != nil {
		endpoint = opts.Client.Endpoint()
	}

	header := components.NewHeader(theme, endpoint)
	header.SetPersona(persona)

	statusBar := components.NewStatusBar(theme, []components.Shortcut{
		{Key: "tab", Desc: "switch field"},
		{Key: "enter", Desc: "analyze"},
		{Key: "ctrl+p", Desc: "persona"},
		{Key: "ctrl+h", Desc: "history"},
		{Key: "ctrl+c", Desc: "quit"},
	})

	m := Model{
		state:       StateWelcome,
		focus:       FocusQuery,
		theme:       theme,
		client:      opts.Client,
		catalog:     opts.Catalog,
		histStore:   opts.History,
		queryInput:  query,
		fileInput:   file,
		persona:     persona,
		keyMap:      DefaultKeyMap(),
		viewport:    viewport.New(80, 20),
		header:      header,
		statusBar:   statusBar,
		spinner:     components.NewAnalyzingSpinner(),
		cardView:    components.NewCardView(theme, persona),
		sourceView:  components.NewSourceListView(theme),
		snippetView: components.NewSnippetView(theme),
		errorBox:    components.NewErrorBox(theme),
		completions: components.NewCompletionPopup(theme),
		welcome:     components.NewWelcome(theme, opts.Version, endpoint),
	}
	m.revalidate()
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// State returns the current view state.
func (m Model) State() State {
	return m.state
}

// Persona returns the active persona.
func (m Model) Persona() api.Persona {
	return m.persona
}

// Cards returns the parsed report cards, if any.
func (m Model) Cards() []report.Card {
	return m.cards
}

// Sources returns the parsed source entries, if any.
func (m Model) Sources() []report.SourceEntry {
	return m.sources
}

// togglePersona flips between the two personas and restyles the cards.
func (m *Model) togglePersona() {
	if m.persona == api.PersonaDoctor {
		m.persona = api.PersonaPatient
	} else {
		m.persona = api.PersonaDoctor
	}
	m.header.SetPersona(m.persona)
	m.cardView.SetPersona(m.persona)
	if m.state == StateReport {
		m.viewport.SetContent(m.cardView.Render(m.cards))
	}
	m.revalidate()
}

// revalidate recomputes the advisory hint from the current field values.
// The hint is a pure function of the two strings: empty when both fields
// pass, the fixed validation prompt otherwise.
func (m *Model) revalidate() {
	if err := ValidateInput(m.queryInput.Value(), m.fileInput.Value()); err != nil {
		m.hint = err.Error()
	} else {
		m.hint = ""
	}
}

// setSize propagates a terminal resize to every component.
func (m *Model) setSize(width, height int) {
	m.width = width
	m.height = height
	m.theme.SetSize(width, height)

	m.header.SetWidth(width)
	m.statusBar.SetWidth(width)
	m.welcome.SetSize(width, height-2)

	contentWidth := width - 2
	if contentWidth < 24 {
		contentWidth = 24
	}
	m.queryInput.Width = contentWidth - 12
	m.fileInput.Width = contentWidth - 12
	m.cardView.SetMaxWidth(contentWidth)
	m.sourceView.SetMaxWidth(contentWidth)
	m.snippetView.SetMaxWidth(contentWidth)
	m.errorBox.SetMaxWidth(contentWidth)

	m.viewport.Width = width
	vpHeight := height - 2 - m.sourcePanelHeight()
	if vpHeight < 3 {
		vpHeight = 3
	}
	m.viewport.Height = vpHeight

	if m.state == StateReport {
		m.viewport.SetContent(m.cardView.Render(m.cards))
	}
}

// sourcePanelHeight reserves vertical space for the source list.
func (m *Model) sourcePanelHeight() int {
	if len(m.sources) == 0 {
		return 3 // the no-evidence warning block
	}
	// Header plus two lines per entry, capped to a third of the screen
	h := 1 + 2*len(m.sources) + 2
	if max := m.height / 3; m.height > 0 && h > max {
		h = max
	}
	return h
}
