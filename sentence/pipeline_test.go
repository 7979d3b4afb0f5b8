package sentence_test

import (
	"log"
	"os"
	"testing"

	"github.com/etmorf/etmorf/analyze"
	"github.com/etmorf/etmorf/internal/fixture"
	"github.com/etmorf/etmorf/lexicon"
	"github.com/etmorf/etmorf/sentence"
)

var lex *lexicon.Lexicon

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

	os.Exit(m.Run())
}

// TestPipelinePreservesOrder confirms non-word tokens pass through
// unchanged and in order.
func TestPipelinePreservesOrder(t *testing.T) {
	an := analyze.New(lex)
	p := sentence.New(an, sentence.Options{})

	if err := p.PushTag(sentence.TagBOS, ""); err != nil {
		t.Fatalf("PushTag(BOS): %v", err)
	}
	if err := p.PushWord("maja"); err != nil {
		t.Fatalf("PushWord(maja): %v", err)
	}
	if err := p.PushTag(sentence.TagEOS, ""); err != nil {
		t.Fatalf("PushTag(EOS): %v", err)
	}

	out, err := p.Flush()
	if err != nil {
		t.Fatalf("Flush: %v", err)
	}
	if len(out) != 3 {
		t.Fatalf("len(out) = %d, want 3 (got %+v)", len(out), out)
	}
	if out[0].Kind != sentence.KindTag || out[0].Tag != sentence.TagBOS {
		t.Errorf("out[0] = %+v, want BOS tag first", out[0])
	}
	if out[1].Kind != sentence.KindAnalysis || out[1].Analysis.Word != "maja" {
		t.Errorf("out[1] = %+v, want maja analysis second", out[1])
	}
	if out[2].Kind != sentence.KindTag || out[2].Tag != sentence.TagEOS {
		t.Errorf("out[2] = %+v, want EOS tag last", out[2])
	}
}

// TestPipelineLookAheadWindow confirms that words still held back by
// the look-ahead window (fewer than windowSize words follow them) all
// come out once Flush forces the remainder through.
func TestPipelineLookAheadWindow(t *testing.T) {
	an := analyze.New(lex)
	p := sentence.New(an, sentence.Options{})

	for _, w := range []string{"maja", "raud", "tee"} {
		if err := p.PushWord(w); err != nil {
			t.Fatalf("PushWord(%s): %v", w, err)
		}
	}
	out, err := p.Flush()
	if err != nil {
		t.Fatalf("Flush: %v", err)
	}
	if len(out) != 3 {
		t.Fatalf("len(out) = %d, want 3 after Flush forces the remainder through", len(out))
	}
}

// TestPipelineProperName covers the supplemented proper-name pass: a
// capitalised, non-sentence-initial word gets a prepended proper-noun
// reading.
func TestPipelineProperName(t *testing.T) {
	an := analyze.New(lex)
	p := sentence.New(an, sentence.Options{ProperName: true})

	if err := p.PushTag(sentence.TagBOS, ""); err != nil {
		t.Fatalf("PushTag(BOS): %v", err)
	}
	if err := p.PushWord("Peeter"); err != nil {
		t.Fatalf("PushWord: %v", err)
	}
	if err := p.PushWord("Maja"); err != nil {
		t.Fatalf("PushWord: %v", err)
	}
	out, err := p.Flush()
	if err != nil {
		t.Fatalf("Flush: %v", err)
	}
	if len(out) != 3 {
		t.Fatalf("len(out) = %d, want 3", len(out))
	}
	first := out[1].Analysis
	if len(first.Analyses) > 0 && first.Analyses[0].Pos == 'H' {
		t.Errorf("sentence-initial Peeter got a proper-noun reading, want none: %+v", first.Analyses)
	}
	second := out[2].Analysis
	if len(second.Analyses) == 0 || second.Analyses[0].Pos != 'H' {
		t.Errorf("second word's analyses = %+v, want a leading proper-noun reading", second.Analyses)
	}
}
