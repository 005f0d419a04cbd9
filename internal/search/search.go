package search

import (
	"github.com/promptdrive/pd/internal/model"
	"github.com/sahilm/fuzzy"
)

// Result represents a fuzzy search match.
type Result struct {
	Prompt         model.Prompt
	MatchedIndexes []int
	Score          int
}

// promptNames implements fuzzy.Source for a prompt slice.
type promptNames []model.Prompt

func (pn promptNames) String(i int) string {
	return pn[i].Name
}

func (pn promptNames) Len() int {
	return len(pn)
}

// FuzzySearchPrompts searches prompts by name using fuzzy matching.
// Returns results sorted by match score (best first).
func FuzzySearchPrompts(prompts []model.Prompt, query string) []Result {
	if query == "" {
		return nil
	}

	source := promptNames(prompts)
	matches := fuzzy.FindFrom(query, source)

	results := make([]Result, len(matches))
	for i, m := range matches {
		results[i] = Result{
			Prompt:         source[m.Index],
			MatchedIndexes: m.MatchedIndexes,
			Score:          m.Score,
		}
	}

	return results
}
