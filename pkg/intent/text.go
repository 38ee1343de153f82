package intent

import "strings"

// containsWord reports whether the query contains the keyword on a word
// boundary. A plain strings.Contains would match "open" inside "reopened".
func containsWord(query, word string) bool {
	idx := 0
	for {
		i := strings.Index(query[idx:], word)
		if i < 0 {
			return false
		}
		start := idx + i
		end := start + len(word)
		beforeOK := start == 0 || !isWordChar(query[start-1])
		afterOK := end == len(query) || !isWordChar(query[end])
		if beforeOK && afterOK {
			return true
		}
		idx = start + 1
		if idx >= len(query) {
			return false
		}
	}
}

// containsPhrase matches multi-word phrases, boundary-checked on both ends.
func containsPhrase(query, phrase string) bool {
	return containsWord(query, phrase)
}

func isWordChar(b byte) bool {
	return b >= 'a' && b <= 'z' || b >= 'A' && b <= 'Z' || b >= '0' && b <= '9'
}

// Normalize lower-cases a query for table matching.
func Normalize(query string) string {
	return strings.ToLower(strings.TrimSpace(query))
}
