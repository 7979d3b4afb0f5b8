package analyze_test

import (
	"os"
	"strings"
	"testing"

	"github.com/etmorf/etmorf/analyze"
)

// TestGuessSuffixStrip covers suffix stripping: an unknown word ending
// in a suffix-table entry's (suffix+ending) tail is guessed via the
// suffix's own stem-info, grounded on the fixture's "line" entry
// (paradigm P_GUESS_LINE, POS "A").
func TestGuessSuffixStrip(t *testing.T) {
	set, err := an.Analyze("xxline", analyze.Options{Guess: true})
	if err != nil {
		t.Fatalf("Analyze(xxline): %v", err)
	}
	if set.Origin != analyze.OriginGuesserSuffix {
		t.Fatalf("Origin = %v, want %v (got %+v)", set.Origin, analyze.OriginGuesserSuffix, set)
	}
	if !findAnalysis(set.Analyses, "xx", "", 'A') {
		t.Errorf("missing xx//A reading, got %+v", set.Analyses)
	}
}

// TestAnalyzeWithoutGuessLeavesUnknown confirms the same surface form
// stays unresolved when guessing is disabled.
func TestAnalyzeWithoutGuessLeavesUnknown(t *testing.T) {
	set, err := an.Analyze("xxline", analyze.Options{})
	if err != nil {
		t.Fatalf("Analyze(xxline): %v", err)
	}
	if set.Origin != analyze.OriginUnknown {
		t.Errorf("Origin = %v, want %v", set.Origin, analyze.OriginUnknown)
	}
}

// TestGuessAnalogy covers analogy guessing: a word sharing a tail with
// a known analogy entry inherits that entry's reading.
func TestGuessAnalogy(t *testing.T) {
	g := &analyze.Guesser{Analyzer: an, Analogies: []analyze.AnalogyEntry{
		{Word: "maja", Pos: 'S'},
	}}
	localAn := analyze.New(lex)
	localAn.Guesser = g
	g.Analyzer = localAn

	set, err := localAn.Analyze("paja", analyze.Options{Guess: true})
	if err != nil {
		t.Fatalf("Analyze(paja): %v", err)
	}
	if set.Origin != analyze.OriginGuesserAnalogy {
		t.Fatalf("Origin = %v, want %v (got %+v)", set.Origin, analyze.OriginGuesserAnalogy, set)
	}
	if !findAnalysis(set.Analyses, "paja", "", 'S') {
		t.Errorf("missing paja//S analogy reading, got %+v", set.Analyses)
	}
}

// TestGuessCompound covers compound guessing for a compound whose left
// half is not itself a dictionary word (so the ordinary analyser's own
// compound split in analyzer.go never resolves it) but whose right half
// is a known dictionary stem.
func TestGuessCompound(t *testing.T) {
	set, err := an.Analyze("blabla-sõna", analyze.Options{Guess: true})
	if err != nil {
		t.Fatalf("Analyze(blabla-sõna): %v", err)
	}
	if set.Origin != analyze.OriginGuesserCompound {
		t.Fatalf("Origin = %v, want %v (got %+v)", set.Origin, analyze.OriginGuesserCompound, set)
	}
	if len(set.Analyses) == 0 || !strings.HasSuffix(set.Analyses[0].Stem, "sõna") {
		t.Errorf("Analyses = %+v, want a lemma ending in sõna", set.Analyses)
	}
}

// TestLoadAnalogyFile covers the companion analogy-lexicon sidecar
// format.
func TestLoadAnalogyFile(t *testing.T) {
	dir := t.TempDir()
	path := dir + "/analogy.tsv"
	content := "# comment\nmaja\tS\t2\t0\n\nkandma\tV\t1\t1\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing analogy file: %v", err)
	}

	entries, err := analyze.LoadAnalogyFile(path)
	if err != nil {
		t.Fatalf("LoadAnalogyFile: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("len(entries) = %d, want 2 (got %+v)", len(entries), entries)
	}
	if entries[0].Word != "maja" || entries[0].Pos != 'S' || entries[0].Paradigm.ParadigmID != 2 {
		t.Errorf("entries[0] = %+v, want {maja S {2 0}}", entries[0])
	}
	if entries[1].Word != "kandma" || entries[1].Pos != 'V' || entries[1].Paradigm.Index != 1 {
		t.Errorf("entries[1] = %+v, want {kandma V {1 1}}", entries[1])
	}
}
