package parser

import (
	"strings"
)

// WordPair is one English word with its German translation
type WordPair struct {
	English string
	German  string
}

// separators are tried in order; the first one present on a line splits it
var separators = []string{"\t", "→", "->", "=", " - ", ":", ";"}

// ParseWordPairs reads one pair per line. Blank lines, lines starting with '#' and lines without
// a separator are skipped.
func ParseWordPairs(text string) []WordPair {
	var pairs []WordPair
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		pair, ok := splitPair(line)
		if !ok {
			continue
		}
		pairs = append(pairs, pair)
	}
	return pairs
}

func splitPair(line string) (WordPair, bool) {
	for _, sep := range separators {
		english, german, found := strings.Cut(line, sep)
		if !found {
			continue
		}
		english = strings.TrimSpace(english)
		german = strings.TrimSpace(german)
		if english == "" || german == "" {
			return WordPair{}, false
		}
		return WordPair{English: english, German: german}, true
	}
	return WordPair{}, false
}
