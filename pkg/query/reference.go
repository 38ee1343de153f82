package query

import (
	"regexp"
	"strconv"
	"strings"
)

// ReferenceKind indicates how a follow-up target was specified.
type ReferenceKind string

const (
	ReferenceOrdinal ReferenceKind = "ordinal"
	ReferenceNamed   ReferenceKind = "named"
	ReferenceAll     ReferenceKind = "all"
)

// Reference points at one or all of the previous turn's results.
// Index is 0-based; resolved once per query and discarded after use.
type Reference struct {
	Kind  ReferenceKind `json:"kind"`
	Index int           `json:"index"`
	Name  string        `json:"name,omitempty"`
}

var ordinalWords = map[string]int{
	"first": 0, "second": 1, "third": 2, "fourth": 3, "fifth": 4,
	"sixth": 5, "seventh": 6, "eighth": 7, "ninth": 8, "tenth": 9,
}

var (
	ordinalWordPattern  = regexp.MustCompile(`\b(first|second|third|fourth|fifth|sixth|seventh|eighth|ninth|tenth|last)\b`)
	ordinalDigitPattern = regexp.MustCompile(`\b(\d+)(?:st|nd|rd|th)\b`)
	numberRefPattern    = regexp.MustCompile(`\b(?:number|option|no\.?)\s*(\d+)\b`)
	allRefPattern       = regexp.MustCompile(`\b(?:all|any|both|each|which)\s+(?:one\s+)?of\s+(?:them|these|those)\b|\ball\s+(?:the\s+)?(?:results|options|places)\b`)
)

// parseOrdinal extracts a 0-based position from ordinal wording.
// "last" maps to resultCount-1; unrecognized or out-of-range positions are
// normalized at resolve time, not here.
func parseOrdinal(query string, resultCount int) (int, bool) {
	if m := ordinalWordPattern.FindStringSubmatch(query); m != nil {
		if m[1] == "last" {
			return resultCount - 1, true
		}
		return ordinalWords[m[1]], true
	}
	if m := ordinalDigitPattern.FindStringSubmatch(query); m != nil {
		n, err := strconv.Atoi(m[1])
		if err != nil || n < 1 {
			return 0, true
		}
		return n - 1, true
	}
	if m := numberRefPattern.FindStringSubmatch(query); m != nil {
		n, err := strconv.Atoi(m[1])
		if err != nil || n < 1 {
			return 0, true
		}
		return n - 1, true
	}
	return 0, false
}

// referencesAll matches wording that targets the whole previous result set.
func referencesAll(query string) bool {
	return allRefPattern.MatchString(query)
}

var punctuationStripper = regexp.MustCompile(`[^a-z0-9 ]+`)

// normalizeName lowers, strips punctuation and collapses whitespace so
// "Café-del.Mar" and "cafe del mar" compare equal up to accents.
func normalizeName(s string) string {
	s = strings.ToLower(s)
	s = punctuationStripper.ReplaceAllString(s, " ")
	return strings.Join(strings.Fields(s), " ")
}

// matchesTitle checks exact and substring forms over punctuation-normalized
// text. Containment is word-bounded so a short title like "Bar" never
// matches inside an unrelated word.
func matchesTitle(query, title string) bool {
	qn := normalizeName(query)
	tn := normalizeName(title)
	if qn == "" || tn == "" {
		return false
	}
	if qn == tn {
		return true
	}
	return strings.Contains(" "+qn+" ", " "+tn+" ")
}
