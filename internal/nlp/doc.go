// Package nlp provides the small amount of natural language support the
// classifier needs: word-run tokenization, stemming, and stopword lookup.
//
// Stemmers are selected by name ("snowball" or "porter"). The snowball
// stemmer is language aware and falls back to the porter stemmer for
// languages snowball does not cover.
package nlp
