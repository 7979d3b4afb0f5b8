// Package synth implements the synthesiser: given a lemma, a target
// part of speech, and a target form-set, it re-derives the lemma's
// paradigm and glues every licensed stem variant to every licensed
// ending, optionally followed by a voiced clitic.
package synth

import (
	"github.com/etmorf/etmorf/analyze"
	"github.com/etmorf/etmorf/lexicon"
)

// Request bundles one synthesis call's inputs.
type Request struct {
	Lemma string
	Pos   byte
	// Forms is the target form-set. A single entry "*" expands to the
	// lexicon's canonical productive form list for Pos. An empty Forms
	// means "the lemma form itself".
	Forms []string
	// Clitic requests the enclitic be attached; the engine picks the
	// voiced/voiceless allomorph itself. Callers never spell the clitic,
	// since its surface shape is a function of the preceding sound, not
	// a free choice.
	Clitic bool
	// ParadigmExample, if non-empty, restricts candidate paradigms to
	// those this word also resolves to.
	ParadigmExample string
	// Guess enables the guesser fallback when Lemma itself isn't found.
	Guess bool
	// Phonetic is not consulted by synthesis itself (phonetic markers
	// are an analysis-side display feature); kept for symmetry with
	// analyze.Options and the CLI's flag set.
	Phonetic bool
}

// Synthesiser generates surface forms over one Lexicon.
type Synthesiser struct {
	Lex      *lexicon.Lexicon
	Analyzer *analyze.Analyzer
}

// New builds a Synthesiser. an is kept in Synthesiser.Analyzer;
// Synthesise does not call it (the guess fallback reads the lexicon's
// suffix table directly), so it may be nil.
func New(lex *lexicon.Lexicon, an *analyze.Analyzer) *Synthesiser {
	return &Synthesiser{Lex: lex, Analyzer: an}
}
