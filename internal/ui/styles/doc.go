// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Package styles provides the visual styling system for the medrag TUI.

This package defines the complete color palette and the Theme type used
throughout the application. All colors use Lip Gloss AdaptiveColor for
automatic light/dark terminal detection.

# Color System (colors.go)

  - Cyan - Brand color, clinical accents, the doctor persona
  - Emerald - Success states, the patient persona
  - Purple - Image source badges
  - Amber - Warnings, audio source badges
  - Rose - Errors and failed requests

Report cards are keyed by persona: doctor reports get clinical cyan
styling, patient reports a warmer emerald treatment.

# Theme (theme.go)

The Theme struct holds every configured lipgloss.Style. Create one with
NewTheme (terminal detection) or NewThemeWithMode ("dark", "light", "auto"):

	theme := styles.NewTheme()
	out := theme.CardStyle(api.PersonaDoctor).Render(body)

Accessibility: status styles are paired with the ASCII StatusIndicators
set so state is never conveyed by color alone.
*/
package styles
