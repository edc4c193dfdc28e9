package chunker

import (
	"fmt"
	"regexp"
	"strings"
)

// Convention describes how a statute numbers its articles.
type Convention struct {
	Name string

	start     *regexp.Regexp // Anchored; group 1 is the article label.
	reference *regexp.Regexp
}

// Korean matches "제5조", "제5조의2" and references such as "제5조의2제3항".
var Korean = Convention{
	Name:      "korean",
	start:     regexp.MustCompile(`^(제\d+조(?:의\d+)?)`),
	reference: regexp.MustCompile(`제\d+조(?:의\d+)?(?:제\d+항)?`),
}

// English matches "Article 5", "Article 5-2" and references such as
// "Article 5-2 paragraph 3".
var English = Convention{
	Name:      "english",
	start:     regexp.MustCompile(`^(Article \d+(?:-\d+)?)`),
	reference: regexp.MustCompile(`Article \d+(?:-\d+)?(?: paragraph \d+)?`),
}

// ConventionByName resolves a convention from configuration.
func ConventionByName(name string) (Convention, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "korean", "ko":
		return Korean, nil
	case "english", "en":
		return English, nil
	default:
		return Convention{}, fmt.Errorf("unknown numbering convention: %q", name)
	}
}

// ArticleLabel reports whether text opens a new article, returning its label.
func (c Convention) ArticleLabel(text string) (string, bool) {
	m := c.start.FindStringSubmatch(text)
	if m == nil {
		return "", false
	}
	return m[1], true
}

// ExtractReferences returns every cross-reference token in text, in order,
// duplicates included. text should already be normalized.
func (c Convention) ExtractReferences(text string) []string {
	return c.reference.FindAllString(text, -1)
}
