// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package analyze provides the main analysis view for the TUI.
package analyze

import (
	"errors"
	"strings"
)

// minFieldLength is the minimum length of the query and file path after
// trimming. Anything shorter is noise: the backend would just burn a
// retrieval round on it.
const minFieldLength = 5

// ErrInvalidInput is returned when the query or file path is too short.
var ErrInvalidInput = errors.New("please provide a query and file path longer than 5 characters")

// ValidateInput checks that both fields are usable. Both must be longer
// than minFieldLength after trimming surrounding whitespace; a blank
// field never passes.
func ValidateInput(query, filePath string) error {
	if len(strings.TrimSpace(query)) <= minFieldLength {
		return ErrInvalidInput
	}
	if len(strings.TrimSpace(filePath)) <= minFieldLength {
		return ErrInvalidInput
	}
	return nil
}
