// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package api provides the HTTP client for the Medical RAG Analysis API.
package api

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// =============================================================================
// PERSONA
// =============================================================================

// Persona selects the response style/audience of the generated report.
// Exactly one persona is current at any time; it travels in the request and
// keys the rendered card styling.
type Persona string

const (
	PersonaDoctor  Persona = "DOCTOR"
	PersonaPatient Persona = "PATIENT"
)

// DefaultPersona is applied at startup before any user selection.
const DefaultPersona = PersonaDoctor

// Valid reports whether p is one of the known personas.
func (p Persona) Valid() bool {
	return p == PersonaDoctor || p == PersonaPatient
}

// ParsePersona normalizes a case-insensitive persona name.
func ParsePersona(s string) (Persona, error) {
	p := Persona(strings.ToUpper(strings.TrimSpace(s)))
	if !p.Valid() {
		return "", fmt.Errorf("unknown persona %q (want DOCTOR or PATIENT)", s)
	}
	return p, nil
}

// =============================================================================
// REQUEST / RESPONSE TYPES
// =============================================================================

// QueryRequest is the body of one analyze call. It is created on submit,
// immutable once sent, and discarded after the call resolves.
type QueryRequest struct {
	UserQuery string  `json:"user_query"`
	FilePath  string  `json:"file_path"`
	Persona   Persona `json:"persona"`
}

// AnalyzeResponse is the success payload: a markdown report with
// bold-delimited section titles, and the retrieval evidence behind it.
type AnalyzeResponse struct {
	Report  string       `json:"report"`
	Sources []SourceItem `json:"sources"`
}

// SourceItem is one retrieval result supporting the report.
type SourceItem struct {
	File    string `json:"file"`
	Type    string `json:"type"`
	Score   Score  `json:"score"`
	Content string `json:"content"`
}

// ErrorResponse is the failure payload. Detail is optional; the HTTP status
// code carries the rest of the signal.
type ErrorResponse struct {
	Detail string `json:"detail"`
}

// =============================================================================
// SCORE
// =============================================================================

// Score is a similarity score that tolerates both wire encodings: the
// FastAPI backend serializes it as a formatted string ("0.9123"), the
// documented contract models it as a number.
type Score float64

// Value returns the score as a float64.
func (s Score) Value() float64 { return float64(s) }

// UnmarshalJSON accepts either a JSON number or a numeric string.
func (s *Score) UnmarshalJSON(data []byte) error {
	trimmed := strings.TrimSpace(string(data))
	if strings.HasPrefix(trimmed, `"`) {
		var raw string
		if err := json.Unmarshal(data, &raw); err != nil {
			return err
		}
		f, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
		if err != nil {
			return fmt.Errorf("score %q is not numeric: %w", raw, err)
		}
		*s = Score(f)
		return nil
	}
	var f float64
	if err := json.Unmarshal(data, &f); err != nil {
		return err
	}
	*s = Score(f)
	return nil
}

// MarshalJSON always emits a JSON number.
func (s Score) MarshalJSON() ([]byte, error) {
	return json.Marshal(float64(s))
}
