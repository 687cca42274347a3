package changelog

// DefaultCategories maps conventional commit types to section titles.
var DefaultCategories = map[string]string{
	"feat":     "Features",
	"fix":      "Bug Fixes",
	"docs":     "Documentation",
	"style":    "Styles",
	"refactor": "Code Refactoring",
	"perf":     "Performance Improvements",
	"test":     "Tests",
	"build":    "Builds",
	"ci":       "Continuous Integration",
	"chore":    "Chores",
	"revert":   "Reverts",
}

// CategoryLabel returns the section title for a commit type: the repository
// override when present, then the built-in title, then the type itself.
func CategoryLabel(overrides map[string]string, commitType string) string {
	if label, ok := overrides[commitType]; ok {
		return label
	}
	if label, ok := DefaultCategories[commitType]; ok {
		return label
	}
	return commitType
}
