// medrag TUI - A terminal front end for the Medical RAG Analysis API.
//
// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"

	"github.com/jeranaias/medrag-tui/internal/api"
	"github.com/jeranaias/medrag-tui/internal/catalog"
	"github.com/jeranaias/medrag-tui/internal/config"
	"github.com/jeranaias/medrag-tui/internal/history"
	"github.com/jeranaias/medrag-tui/internal/ui/analyze"
	"github.com/jeranaias/medrag-tui/internal/ui/styles"
)

// Version information (set at build time)
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

func main() {
	configPath := flag.String("config", "", "path to a config file (default: ~/.medrag/config.toml)")
	endpoint := flag.String("endpoint", "", "analysis endpoint URL (overrides config)")
	persona := flag.String("persona", "", "default persona: DOCTOR or PATIENT (overrides config)")
	dataDir := flag.String("data-dir", "", "document directory for path completion (overrides config)")
	showVersion := flag.Bool("version", false, "print version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Printf("medrag %s (%s, built %s)\n", Version, GitCommit, BuildDate)
		return
	}

	// The TUI needs a real terminal on both ends
	if !term.IsTerminal(int(os.Stdin.Fd())) || !term.IsTerminal(int(os.Stdout.Fd())) {
		fmt.Fprintln(os.Stderr, "Error: medrag is an interactive terminal application and cannot run without a TTY")
		os.Exit(1)
	}

	cfg, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	// CLI flags override config
	if *endpoint != "" {
		cfg.API.Endpoint = *endpoint
	}
	if *persona != "" {
		cfg.General.Persona = *persona
	}
	if *dataDir != "" {
		cfg.Data.Dir = *dataDir
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: invalid configuration: %v\n", err)
		os.Exit(1)
	}

	theme := styles.NewThemeWithMode(cfg.UI.Theme)

	client := api.NewClientWithConfig(&api.ClientConfig{
		Endpoint: cfg.API.Endpoint,
		Timeout:  time.Duration(cfg.API.RequestTimeoutSecs) * time.Second,
	})

	// Catalog and history are conveniences; failure to open either is
	// a warning, not a fatal error.
	var cat *catalog.Catalog
	if c, err := catalog.Open(cfg.Data.Dir); err == nil {
		cat = c
		if err := cat.Watch(); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: could not watch %s: %v\n", cfg.Data.Dir, err)
		}
		defer cat.Close()
	} else {
		fmt.Fprintf(os.Stderr, "Warning: could not scan %s: %v\n", cfg.Data.Dir, err)
	}

	var store *history.Store
	if cfg.History.Enabled {
		if path, err := cfg.HistoryPath(); err == nil {
			if s, err := history.Open(path); err == nil {
				store = s
				defer store.Close()
			} else {
				fmt.Fprintf(os.Stderr, "Warning: query history disabled: %v\n", err)
			}
		}
	}

	m := analyze.New(analyze.Options{
		Theme:   theme,
		Client:  client,
		Catalog: cat,
		History: store,
		Version: Version,
		Persona: cfg.Persona(),
	})

	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error running medrag: %v\n", err)
		os.Exit(1)
	}
}

// loadConfig loads from an explicit path or the default locations.
// A missing default config is fine; defaults apply.
func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.LoadFromPath(path)
	}
	cfg, err := config.Load()
	if err != nil && cfg == nil {
		return nil, err
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v (using defaults)\n", err)
	}
	return cfg, nil
}
