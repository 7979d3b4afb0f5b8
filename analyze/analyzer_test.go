package analyze_test

import (
	"log"
	"os"
	"testing"

	"github.com/etmorf/etmorf/analyze"
	"github.com/etmorf/etmorf/internal/fixture"
	"github.com/etmorf/etmorf/lexicon"
)

var (
	lex *lexicon.Lexicon
	an  *analyze.Analyzer
)

// TestMain builds the shared fixture dictionary and Analyzer once for
// every test in this package, following lexicon_test.go's pattern.
func TestMain(m *testing.M) {
	path, err := fixture.WriteTemp(fixture.Small())
	if err != nil {
		log.Fatalf("building fixture dictionary: %v", err)
	}
	defer os.Remove(path)

	lex, err = lexicon.Open(path)
	if err != nil {
		log.Fatalf("opening fixture dictionary: %v", err)
	}
	defer lex.Close()

	an = analyze.New(lex)
	an.Guesser = &analyze.Guesser{Analyzer: an}

	os.Exit(m.Run())
}

func findAnalysis(analyses []analyze.Analysis, stem, ending string, pos byte) bool {
	for _, a := range analyses {
		if a.Stem == stem && a.Ending == ending && a.Pos == pos {
			return true
		}
	}
	return false
}

// TestAnalyzeHomonyms covers the "kanna" noun-genitive/verb-imperative
// homonym pair.
func TestAnalyzeHomonyms(t *testing.T) {
	set, err := an.Analyze("kanna", analyze.Options{})
	if err != nil {
		t.Fatalf("Analyze(kanna): %v", err)
	}
	if set.Origin != analyze.OriginMain {
		t.Fatalf("Origin = %v, want %v", set.Origin, analyze.OriginMain)
	}
	if len(set.Analyses) != 2 {
		t.Fatalf("len(Analyses) = %d, want 2 (got %+v)", len(set.Analyses), set.Analyses)
	}
	if !findAnalysis(set.Analyses, "kann", "a", 'S') {
		t.Errorf("missing noun genitive reading kann+a/S, got %+v", set.Analyses)
	}
	if !findAnalysis(set.Analyses, "kanna", "", 'V') {
		t.Errorf("missing verb imperative reading kanna+/V, got %+v", set.Analyses)
	}
}

// TestAnalyzeSimpleNoun covers the plain empty-ending nominative
// reading.
func TestAnalyzeSimpleNoun(t *testing.T) {
	set, err := an.Analyze("maja", analyze.Options{})
	if err != nil {
		t.Fatalf("Analyze(maja): %v", err)
	}
	if len(set.Analyses) != 1 {
		t.Fatalf("len(Analyses) = %d, want 1 (got %+v)", len(set.Analyses), set.Analyses)
	}
	got := set.Analyses[0]
	if got.Stem != "maja" || got.Ending != "" || got.Pos != 'S' || got.Form != "sg n" {
		t.Errorf("Analyses[0] = %+v, want {maja  S sg n}", got)
	}
}

// TestAnalyzeCompound covers compound resolution with no literal joint
// character, where both halves are themselves dictionary stems.
func TestAnalyzeCompound(t *testing.T) {
	set, err := an.Analyze("raudtee", analyze.Options{})
	if err != nil {
		t.Fatalf("Analyze(raudtee): %v", err)
	}
	if set.Origin != analyze.OriginMain {
		t.Fatalf("Origin = %v, want %v", set.Origin, analyze.OriginMain)
	}
	if !findAnalysis(set.Analyses, "raudtee", "", 'S') {
		t.Errorf("missing raudtee//S sg n reading, got %+v", set.Analyses)
	}
}

// TestAnalyzeUnknownWithoutGuess confirms an unrecognised word yields an
// empty, unknown-origin AnalysisSet when guessing is disabled.
func TestAnalyzeUnknownWithoutGuess(t *testing.T) {
	set, err := an.Analyze("zzzzz", analyze.Options{})
	if err != nil {
		t.Fatalf("Analyze(zzzzz): %v", err)
	}
	if set.Origin != analyze.OriginUnknown {
		t.Errorf("Origin = %v, want %v", set.Origin, analyze.OriginUnknown)
	}
	if len(set.Analyses) != 0 {
		t.Errorf("Analyses = %+v, want none", set.Analyses)
	}
}

// TestAnalyzeCapitalization confirms the input's capitalisation pattern
// is reapplied to the reported stem.
func TestAnalyzeCapitalization(t *testing.T) {
	set, err := an.Analyze("Maja", analyze.Options{})
	if err != nil {
		t.Fatalf("Analyze(Maja): %v", err)
	}
	if len(set.Analyses) != 1 || set.Analyses[0].Stem != "Maja" {
		t.Errorf("Analyses = %+v, want a single capitalised Maja stem", set.Analyses)
	}
}

// TestAnalyzeEmptyWord confirms the documented edge policy for "".
func TestAnalyzeEmptyWord(t *testing.T) {
	set, err := an.Analyze("", analyze.Options{})
	if err != nil {
		t.Fatalf("Analyze(\"\"): %v", err)
	}
	if len(set.Analyses) != 0 || set.Origin != analyze.OriginUnknown {
		t.Errorf("Analyze(\"\") = %+v, want empty/unknown", set)
	}
}

// TestAnalyzeClosedClass covers the Roman-numeral closed-class
// prefilter.
func TestAnalyzeClosedClass(t *testing.T) {
	set, err := an.Analyze("II", analyze.Options{})
	if err != nil {
		t.Fatalf("Analyze(II): %v", err)
	}
	if set.Origin != analyze.OriginAbbreviation {
		t.Errorf("Origin = %v, want %v", set.Origin, analyze.OriginAbbreviation)
	}
}

// TestAnalyzeDigits covers the digit-string prefilter.
func TestAnalyzeDigits(t *testing.T) {
	set, err := an.Analyze("1234", analyze.Options{})
	if err != nil {
		t.Fatalf("Analyze(1234): %v", err)
	}
	if set.Origin != analyze.OriginAbbreviation || len(set.Analyses) != 1 || set.Analyses[0].Form != "card" {
		t.Errorf("Analyze(1234) = %+v, want a single card-form analysis", set)
	}
}
