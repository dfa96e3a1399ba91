package signame

import (
	"strings"

	"github.com/sahilm/fuzzy"
)

const maxSuggestions = 3

func suggest(value string) []string {
	query := strings.TrimPrefix(strings.ToUpper(strings.TrimSpace(value)), "SIG")
	if query == "" {
		return nil
	}
	table := hostTable()
	names := make([]string, 0, len(table))
	for _, entry := range table {
		names = append(names, entry.Name)
	}
	matches := fuzzy.Find(query, names)
	if len(matches) == 0 {
		return nil
	}
	out := make([]string, 0, maxSuggestions)
	for _, match := range matches {
		out = append(out, match.Str)
		if len(out) == maxSuggestions {
			break
		}
	}
	return out
}
