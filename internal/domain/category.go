package domain

import "strings"

// Category is the coarse topic label assigned to a chunk from its source
// filename.
type Category string

const (
	CategoryDiabetes      Category = "Diabetes"
	CategoryCancerStomach Category = "Cancer-Stomach"
	CategoryGeneral       Category = "General/Unspecified"
)

// categoryRule maps a filename keyword to a category. Rules are checked in
// order; the first keyword found in the lowercased filename wins.
type categoryRule struct {
	keyword  string
	category Category
}

var categoryRules = []categoryRule{
	{keyword: "diabetes", category: CategoryDiabetes},
	{keyword: "cancer", category: CategoryCancerStomach},
	{keyword: "estomago", category: CategoryCancerStomach},
}

// CategoryForSource returns the category for a source filename using the
// ordered keyword rule table. Matching is case-insensitive substring
// matching; filenames matching no rule fall through to CategoryGeneral.
func CategoryForSource(filename string) Category {
	lower := strings.ToLower(filename)
	for _, rule := range categoryRules {
		if strings.Contains(lower, rule.keyword) {
			return rule.category
		}
	}
	return CategoryGeneral
}
