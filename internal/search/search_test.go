package search

import (
	"testing"

	"github.com/promptdrive/pd/internal/model"
)

func testPrompts() []model.Prompt {
	return []model.Prompt{
		{ID: "p1", FolderID: "f1", Name: "Cold Outreach Email"},
		{ID: "p2", FolderID: "f1", Name: "Code Review Checklist"},
		{ID: "p3", FolderID: "f2", Name: "Release Notes Draft"},
	}
}

func TestFuzzySearchPrompts_EmptyQuery(t *testing.T) {
	results := FuzzySearchPrompts(testPrompts(), "")

	if len(results) != 0 {
		t.Errorf("expected 0 results for empty query, got %d", len(results))
	}
}

func TestFuzzySearchPrompts_ExactMatch(t *testing.T) {
	results := FuzzySearchPrompts(testPrompts(), "Release Notes Draft")

	if len(results) == 0 {
		t.Fatal("expected at least 1 result")
	}
	if results[0].Prompt.ID != "p3" {
		t.Errorf("expected p3 first, got %s", results[0].Prompt.ID)
	}
}

func TestFuzzySearchPrompts_FuzzyMatch(t *testing.T) {
	// "crc" should fuzzy match "Code Review Checklist"
	results := FuzzySearchPrompts(testPrompts(), "crc")

	if len(results) == 0 {
		t.Fatal("expected at least 1 result for 'crc'")
	}
	if results[0].Prompt.ID != "p2" {
		t.Errorf("expected Code Review Checklist first, got %s", results[0].Prompt.Name)
	}
}

func TestFuzzySearchPrompts_NoMatch(t *testing.T) {
	results := FuzzySearchPrompts(testPrompts(), "zzzzqqqq")

	if len(results) != 0 {
		t.Errorf("expected 0 results, got %d", len(results))
	}
}
