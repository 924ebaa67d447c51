// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package components provides the visual UI components for the medrag TUI.
package components

import "time"

// =============================================================================
// SHARED HELPER FUNCTIONS
// =============================================================================

// toStr converts an integer to a string without using fmt package.
func toStr(n int) string {
	if n == 0 {
		return "0"
	}

	if n == -9223372036854775808 { // math.MinInt64
		return "-9223372036854775808"
	}

	negative := n < 0
	if negative {
		n = -n
	}

	var digits []byte
	for n > 0 {
		digits = append([]byte{byte('0' + n%10)}, digits...)
		n /= 10
	}

	if negative {
		return "-" + string(digits)
	}
	return string(digits)
}

// formatElapsed formats a duration for display.
func formatElapsed(d time.Duration) string {
	if d < time.Second {
		return toStr(int(d.Milliseconds())) + "ms"
	}
	if d < time.Minute {
		secs := int(d.Seconds())
		tenths := int(d.Milliseconds()/100) % 10
		return toStr(secs) + "." + toStr(tenths) + "s"
	}
	mins := int(d.Minutes())
	secs := int(d.Seconds()) % 60
	return toStr(mins) + "m" + toStr(secs) + "s"
}
