// Package sentence implements the per-sentence token pipeline: a FIFO
// that forwards non-word tokens untouched and analyses words once a
// look-ahead window of following words has arrived. The optional
// proper-name pass looks only at the token before a word; no
// multi-word-unit detection is performed.
package sentence

import "github.com/etmorf/etmorf/analyze"

// TagKind distinguishes the non-word Token variants.
type TagKind int

const (
	TagBOS TagKind = iota
	TagEOS
	TagUser
)

// Token is a discriminated union. Exactly one of Word, the Tag fields,
// or Analysis is meaningful, selected by Kind.
type Token struct {
	Kind TokenKind

	// Word is set when Kind == KindWord: the raw surface string, not yet
	// analysed.
	Word string

	// Tag/TagValue are set when Kind == KindTag.
	Tag      TagKind
	TagValue string

	// Analysis is set when Kind == KindAnalysis: the result of analysing
	// a Word token.
	Analysis *analyze.AnalysisSet
}

// TokenKind selects which field of Token is populated.
type TokenKind int

const (
	KindWord TokenKind = iota
	KindTag
	KindAnalysis
)
