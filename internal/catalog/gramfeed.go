package catalog

import (
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var lowerer = cases.Lower(language.Und)

// GramFeed returns the gram alphabet for one product: the concatenation of
// lowercased description, title, and vendor name, flattened to Unicode
// scalar values. This is the sequence the ngram tree builder consumes.
func GramFeed(p Product, vendorName string) []rune {
	joined := lowerer.String(p.Description) + lowerer.String(p.Title) + lowerer.String(vendorName)
	return []rune(joined)
}

// QueryGramFeed lowers and flattens an arbitrary query string the same way,
// so a query and the corpus it searches share one normalization path.
func QueryGramFeed(query string) []rune {
	return []rune(lowerer.String(query))
}
