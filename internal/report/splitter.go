// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package report turns the analyze API's semi-structured payload into view
// models the UI can render without touching raw markdown or raw JSON.
//
// The report string interleaves bold-delimited section titles ("**Title**")
// with plain-text bodies. SplitSections walks the string with an explicit
// two-state scan so that the contract's corner cases (leading text dropped,
// consecutive titles producing empty cards) are deliberate behavior rather
// than accidents of a split call.
package report

import "strings"

// marker is the bold delimiter that wraps section titles.
const marker = "**"

// Card is one rendered section of the report: a title and its body
// paragraphs, in document order. Titles are not unique.
type Card struct {
	Title  string
	Bodies []string
}

// scanState tracks whether the walk has an open card to append bodies to.
type scanState int

const (
	outsideCard scanState = iota // no title seen yet; body text is dropped
	insideCard                   // a card is open; body text appends to it
)

// SplitSections parses a report string into ordered section cards.
//
// A segment that both starts and ends with the bold marker opens a new card
// (marker characters stripped, title trimmed). Any other segment becomes a
// body paragraph of the currently open card; body text before the first
// title has no card to land in and is dropped. Segments that are empty
// after trimming are discarded before the walk.
//
// Empty input and input without any bold marker both yield zero cards.
func SplitSections(report string) []Card {
	segments := splitKeepingTitles(report)

	var cards []Card
	state := outsideCard
	var current Card

	for _, seg := range segments {
		if strings.TrimSpace(seg) == "" {
			continue
		}

		if isTitleSegment(seg) {
			if state == insideCard {
				cards = append(cards, current)
			}
			current = Card{Title: strings.TrimSpace(strings.ReplaceAll(seg, marker, ""))}
			state = insideCard
			continue
		}

		if state == insideCard {
			current.Bodies = append(current.Bodies, strings.TrimSpace(seg))
		}
	}

	if state == insideCard {
		cards = append(cards, current)
	}
	return cards
}

// splitKeepingTitles splits the report on title boundaries while retaining
// the "**...**" title segments in the output sequence.
func splitKeepingTitles(s string) []string {
	var segments []string
	for len(s) > 0 {
		open := strings.Index(s, marker)
		if open < 0 {
			segments = append(segments, s)
			break
		}
		close := strings.Index(s[open+len(marker):], marker)
		if close < 0 {
			// Unbalanced marker: the rest is body text.
			segments = append(segments, s)
			break
		}
		end := open + len(marker) + close + len(marker)
		if open > 0 {
			segments = append(segments, s[:open])
		}
		segments = append(segments, s[open:end])
		s = s[end:]
	}
	return segments
}

// isTitleSegment reports whether a segment is a marker-wrapped title.
func isTitleSegment(seg string) bool {
	return len(seg) >= 2*len(marker) &&
		strings.HasPrefix(seg, marker) &&
		strings.HasSuffix(seg, marker)
}

// SectionTitles returns the titles of the given cards in document order.
func SectionTitles(cards []Card) []string {
	titles := make([]string, len(cards))
	for i, c := range cards {
		titles[i] = c.Title
	}
	return titles
}

// CanonicalTitles are the three section titles the backend's generation
// prompt always requests. The splitter never assumes them; the UI uses the
// list only to hint when a report came back incomplete.
var CanonicalTitles = []string{
	"Clinical Explanation and Summary",
	"Problem/Diagnosis and Cause",
	"Recommended Intervention and Risks",
}

// MissingCanonical returns the canonical titles absent from the cards.
func MissingCanonical(cards []Card) []string {
	have := make(map[string]bool, len(cards))
	for _, c := range cards {
		have[c.Title] = true
	}
	var missing []string
	for _, t := range CanonicalTitles {
		if !have[t] {
			missing = append(missing, t)
		}
	}
	return missing
}
