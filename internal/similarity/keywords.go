package similarity

import (
	"regexp"
	"strings"
)

// stopWords are common English function words ignored during keyword
// extraction.
var stopWords = map[string]struct{}{
	"the": {}, "a": {}, "an": {}, "and": {}, "or": {}, "but": {}, "in": {},
	"on": {}, "at": {}, "to": {}, "for": {}, "of": {}, "with": {}, "by": {},
	"from": {}, "as": {}, "is": {}, "was": {}, "are": {}, "were": {},
	"been": {}, "be": {}, "have": {}, "has": {}, "had": {}, "do": {},
	"does": {}, "did": {}, "will": {}, "would": {}, "could": {},
	"should": {}, "may": {}, "might": {}, "must": {}, "can": {}, "this": {},
	"that": {}, "these": {}, "those": {}, "i": {}, "you": {}, "he": {},
	"she": {}, "it": {}, "we": {}, "they": {}, "what": {}, "which": {},
	"who": {}, "when": {}, "where": {}, "why": {}, "how": {}, "all": {},
	"each": {}, "every": {}, "few": {}, "more": {}, "most": {}, "other": {},
	"some": {}, "such": {}, "no": {}, "nor": {}, "not": {}, "only": {},
	"own": {}, "same": {}, "so": {}, "than": {}, "too": {}, "very": {},
}

// foodGroups are common dish/ingredient words. Two names sharing any one of
// these earn the food-group component of the similarity score.
var foodGroups = []string{
	"chicken", "beef", "pork", "fish", "egg", "eggs", "cheese", "pizza",
	"pasta", "rice", "bread", "salad", "soup", "sandwich", "burger",
	"fries", "potato", "vegetable", "fruit", "dessert", "cake", "cookie",
	"ice cream", "yogurt", "milk", "cereal", "oatmeal", "pancake",
	"waffle", "toast", "bagel",
}

var punctuation = regexp.MustCompile(`[^\w\s]`)

// minKeywordLen filters out short tokens ("bbq" survives, "db" does not).
const minKeywordLen = 3

// ExtractKeywords tokenizes a food name into its meaningful words:
// lowercased, punctuation stripped, short tokens and stop words discarded.
func ExtractKeywords(name string) map[string]struct{} {
	if name == "" {
		return nil
	}

	cleaned := punctuation.ReplaceAllString(strings.ToLower(name), " ")
	keywords := make(map[string]struct{})
	for _, word := range strings.Fields(cleaned) {
		if len(word) < minKeywordLen {
			continue
		}
		if _, stop := stopWords[word]; stop {
			continue
		}
		keywords[word] = struct{}{}
	}
	return keywords
}
