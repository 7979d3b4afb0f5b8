// Package analyze implements the word analyser and the guesser that
// backs it up on unknown words: splitting a surface form into
// prefix*+stem+suffix*+ending(+clitic), verifying compatibility against
// the lexicon's paradigm/ending-group tables, and emitting every
// plausible analysis.
package analyze

// Analysis is one (stem, ending, clitic, pos, form) reading of a word.
type Analysis struct {
	Stem   string
	Ending string
	Clitic string
	Pos    byte
	Form   string
}

// Origin tags where an AnalysisSet's analyses came from.
type Origin string

const (
	OriginMain            Origin = "main-dictionary"
	OriginUser            Origin = "user-dictionary"
	OriginAbbreviation    Origin = "abbreviation-list"
	OriginGuesserAnalogy  Origin = "guesser-analogy"
	OriginGuesserSuffix   Origin = "guesser-suffix"
	OriginGuesserCompound Origin = "guesser-compound"
	OriginUnknown         Origin = "unknown"
)

// AnalysisSet is the result of analysing one surface word.
type AnalysisSet struct {
	Word     string
	Analyses []Analysis
	Origin   Origin
}

// Options toggles the optional behaviors Analyze performs.
type Options struct {
	// Guess enables the three guesser strategies when the main analyser
	// finds nothing.
	Guess bool
	// Hyphenation enables compound-boundary/hyphenation markers in the
	// reported stem.
	Hyphenation bool
	// Phonetic enables stress/palatalisation markers in the reported
	// stem.
	Phonetic bool
}
