package synth_test

import (
	"log"
	"os"
	"testing"

	"github.com/etmorf/etmorf/analyze"
	"github.com/etmorf/etmorf/internal/fixture"
	"github.com/etmorf/etmorf/lexicon"
	"github.com/etmorf/etmorf/synth"
)

var (
	lex *lexicon.Lexicon
	syn *synth.Synthesiser
)

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

	an := analyze.New(lex)
	an.Guesser = &analyze.Guesser{Analyzer: an}
	syn = synth.New(lex, an)

	os.Exit(m.Run())
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

// TestSynthesisePluralGenitive covers a plain plural genitive synthesis.
func TestSynthesisePluralGenitive(t *testing.T) {
	out, err := syn.Synthesise(synth.Request{Lemma: "maja", Pos: 'S', Forms: []string{"pl g"}})
	if err != nil {
		t.Fatalf("Synthesise: %v", err)
	}
	if len(out) == 0 {
		t.Fatal("Synthesise returned no forms")
	}
	if out[0] != "majade" {
		t.Errorf("out[0] = %q, want %q (got %v)", out[0], "majade", out)
	}
}

// TestSynthesiseEmptyFormSet covers the "form_set empty means the
// lemma form itself" expansion rule.
func TestSynthesiseEmptyFormSet(t *testing.T) {
	out, err := syn.Synthesise(synth.Request{Lemma: "maja", Pos: 'S'})
	if err != nil {
		t.Fatalf("Synthesise: %v", err)
	}
	if len(out) != 1 || out[0] != "maja" {
		t.Errorf("out = %v, want [maja]", out)
	}
}

// TestSynthesiseStarExpansion covers the "*" canonical form-list
// expansion rule, driven by the lexicon's own FormGroups table.
func TestSynthesiseStarExpansion(t *testing.T) {
	out, err := syn.Synthesise(synth.Request{Lemma: "maja", Pos: 'S', Forms: []string{"*"}})
	if err != nil {
		t.Fatalf("Synthesise: %v", err)
	}
	if !contains(out, "maja") || !contains(out, "majade") {
		t.Errorf("out = %v, want it to include both maja and majade", out)
	}
}

// TestSynthesiseGuessFallback covers the case where the lemma itself
// is unknown: the guesser's suffix-stripping path still picks a
// paradigm, grounded on the fixture's "line" suffix entry.
func TestSynthesiseGuessFallback(t *testing.T) {
	out, err := syn.Synthesise(synth.Request{Lemma: "xxline", Pos: 'A', Forms: []string{"sg n"}, Guess: true})
	if err != nil {
		t.Fatalf("Synthesise: %v", err)
	}
	if !contains(out, "xx") {
		t.Errorf("out = %v, want it to include xx", out)
	}
}

// TestSynthesiseUnknownWithoutGuess confirms no guess means no output.
func TestSynthesiseUnknownWithoutGuess(t *testing.T) {
	out, err := syn.Synthesise(synth.Request{Lemma: "xxline", Pos: 'A', Forms: []string{"sg n"}})
	if err != nil {
		t.Fatalf("Synthesise: %v", err)
	}
	if len(out) != 0 {
		t.Errorf("out = %v, want none", out)
	}
}

// TestSynthesiseClitic covers clitic voicing: the allomorph following
// a vowel is "-gi".
func TestSynthesiseClitic(t *testing.T) {
	out, err := syn.Synthesise(synth.Request{Lemma: "maja", Pos: 'S', Forms: []string{"sg n"}, Clitic: true})
	if err != nil {
		t.Fatalf("Synthesise: %v", err)
	}
	if !contains(out, "majagi") {
		t.Errorf("out = %v, want it to include majagi (voiced clitic after vowel)", out)
	}
}

// TestSynthesiseParadigmExampleFilter covers the case where an example
// belongs to a different paradigm than the lemma's only candidate,
// filtering that candidate out entirely.
func TestSynthesiseParadigmExampleFilter(t *testing.T) {
	out, err := syn.Synthesise(synth.Request{
		Lemma: "maja", Pos: 'S', Forms: []string{"sg n"}, ParadigmExample: "raud",
	})
	if err != nil {
		t.Fatalf("Synthesise: %v", err)
	}
	if len(out) != 0 {
		t.Errorf("out = %v, want none (maja and raud are different paradigms)", out)
	}
}
