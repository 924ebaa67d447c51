// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package report turns the analyze API's semi-structured payload into view
// models the UI can render.
package report

import (
	"reflect"
	"testing"
)

// =============================================================================
// SECTION SPLITTER TESTS
// =============================================================================

func TestSplitSections(t *testing.T) {
	tests := []struct {
		name   string
		report string
		want   []Card
	}{
		{
			name:   "empty input yields zero cards",
			report: "",
			want:   nil,
		},
		{
			name:   "no bold markers yields zero cards",
			report: "free text with no structure at all",
			want:   nil,
		},
		{
			name:   "title only",
			report: "**A**",
			want:   []Card{{Title: "A"}},
		},
		{
			name:   "two titled sections",
			report: "**A**x**B**y",
			want: []Card{
				{Title: "A", Bodies: []string{"x"}},
				{Title: "B", Bodies: []string{"y"}},
			},
		},
		{
			name:   "leading text before first title is dropped",
			report: "leading text**A**body",
			want:   []Card{{Title: "A", Bodies: []string{"body"}}},
		},
		{
			name:   "consecutive titles open an empty card",
			report: "**A****B**body",
			want: []Card{
				{Title: "A"},
				{Title: "B", Bodies: []string{"body"}},
			},
		},
		{
			name:   "whitespace-only segments are discarded",
			report: "**A**   \n\t  **B**y",
			want: []Card{
				{Title: "A"},
				{Title: "B", Bodies: []string{"y"}},
			},
		},
		{
			name:   "title text is marker-stripped and trimmed",
			report: "** Clinical Explanation and Summary **\nThe patient is stable.",
			want: []Card{{
				Title:  "Clinical Explanation and Summary",
				Bodies: []string{"The patient is stable."},
			}},
		},
		{
			name:   "unbalanced trailing marker stays body text",
			report: "**A**body **with a stray marker",
			want:   []Card{{Title: "A", Bodies: []string{"body **with a stray marker"}}},
		},
		{
			name:   "duplicate titles are kept in order",
			report: "**A**one**A**two",
			want: []Card{
				{Title: "A", Bodies: []string{"one"}},
				{Title: "A", Bodies: []string{"two"}},
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := SplitSections(tc.report)
			if !reflect.DeepEqual(got, tc.want) {
				t.Errorf("SplitSections(%q) = %#v, want %#v", tc.report, got, tc.want)
			}
		})
	}
}

func TestSplitSectionsRealReportShape(t *testing.T) {
	report := "**Clinical Explanation and Summary**\nSummary text.\n" +
		"**Problem/Diagnosis and Cause**\nDiagnosis text.\n" +
		"**Recommended Intervention and Risks**\nIntervention text."

	cards := SplitSections(report)
	if len(cards) != 3 {
		t.Fatalf("expected 3 cards, got %d", len(cards))
	}

	wantTitles := []string{
		"Clinical Explanation and Summary",
		"Problem/Diagnosis and Cause",
		"Recommended Intervention and Risks",
	}
	if got := SectionTitles(cards); !reflect.DeepEqual(got, wantTitles) {
		t.Errorf("SectionTitles = %v, want %v", got, wantTitles)
	}

	for i, c := range cards {
		if len(c.Bodies) != 1 {
			t.Errorf("card %d: expected one body paragraph, got %d", i, len(c.Bodies))
		}
	}
}

// Body paragraphs only ever land in an open card, so the number of bodies in
// a card sequence can never exceed the number of titles plus trailing text.
func TestSplitSectionsBodyCountInvariant(t *testing.T) {
	inputs := []string{
		"",
		"no titles here",
		"**A**",
		"x**A**y**B**",
		"a**T**b**T**c**T**",
		"**A****B****C**tail",
	}

	for _, in := range inputs {
		cards := SplitSections(in)
		for _, c := range cards {
			if c.Title == "" && len(c.Bodies) > 0 {
				t.Errorf("input %q: body paragraphs without a title card", in)
			}
		}
	}
}

// =============================================================================
// CANONICAL TITLE TESTS
// =============================================================================

func TestMissingCanonical(t *testing.T) {
	complete := SplitSections(
		"**Clinical Explanation and Summary**a" +
			"**Problem/Diagnosis and Cause**b" +
			"**Recommended Intervention and Risks**c")
	if missing := MissingCanonical(complete); len(missing) != 0 {
		t.Errorf("complete report reported missing sections: %v", missing)
	}

	partial := SplitSections("**Clinical Explanation and Summary**only one")
	missing := MissingCanonical(partial)
	if len(missing) != 2 {
		t.Fatalf("expected 2 missing sections, got %v", missing)
	}
	if missing[0] != "Problem/Diagnosis and Cause" {
		t.Errorf("missing[0] = %q", missing[0])
	}
}
