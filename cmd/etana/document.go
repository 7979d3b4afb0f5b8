// Package main implements the etana CLI: thin argument-parsing and
// JSON-shuttling glue over the analyse/synth/sentence/disambig
// packages. No analysis logic lives here.
package main

import "github.com/etmorf/etmorf/analyze"

// Document is the JSON document analyse/spell/disambiguate read and
// write: paragraphs[].sentences[].words[].text.
type Document struct {
	Paragraphs []Paragraph `json:"paragraphs"`
}

type Paragraph struct {
	Sentences []Sentence `json:"sentences"`
}

type Sentence struct {
	Words []Word `json:"words"`
}

// Word is one token in a Document. Analysis is added by analyse and
// reduced by disambiguate; Spelling/Suggestions are added by spell.
type Word struct {
	Text        string         `json:"text"`
	Analysis    []AnalysisJSON `json:"analysis,omitempty"`
	Spelling    *bool          `json:"spelling,omitempty"`
	Suggestions []string       `json:"suggestions,omitempty"`
}

// AnalysisJSON is the wire shape of one analyze.Analysis plus the
// AnalysisSet's origin.
type AnalysisJSON struct {
	Stem   string `json:"stem"`
	Ending string `json:"ending"`
	Clitic string `json:"clitic,omitempty"`
	Pos    string `json:"pos"`
	Form   string `json:"form"`
	Origin string `json:"origin,omitempty"`
}

func toAnalysisJSON(set *analyze.AnalysisSet) []AnalysisJSON {
	out := make([]AnalysisJSON, len(set.Analyses))
	for i, a := range set.Analyses {
		out[i] = AnalysisJSON{
			Stem:   a.Stem,
			Ending: a.Ending,
			Clitic: a.Clitic,
			Pos:    string(a.Pos),
			Form:   a.Form,
			Origin: string(set.Origin),
		}
	}
	return out
}

func fromAnalysisJSON(word string, in []AnalysisJSON) *analyze.AnalysisSet {
	set := &analyze.AnalysisSet{Word: word, Origin: analyze.OriginUnknown}
	for _, a := range in {
		pos := byte(0)
		if len(a.Pos) > 0 {
			pos = a.Pos[0]
		}
		set.Analyses = append(set.Analyses, analyze.Analysis{
			Stem:   a.Stem,
			Ending: a.Ending,
			Clitic: a.Clitic,
			Pos:    pos,
			Form:   a.Form,
		})
		if a.Origin != "" {
			set.Origin = analyze.Origin(a.Origin)
		}
	}
	return set
}

// SynthWord is one entry in the synthesise subcommand's input/output
// document: lemma, partofspeech, form, hint in; words[].text[] out.
type SynthWord struct {
	Lemma        string   `json:"lemma"`
	PartOfSpeech string   `json:"partofspeech"`
	Form         []string `json:"form"`
	// Hint, when present, is the paradigm example used to disambiguate
	// a lemma with several paradigms.
	Hint   string   `json:"hint,omitempty"`
	Clitic bool     `json:"clitic,omitempty"`
	Text   []string `json:"text,omitempty"`
}
