package lexicon_test

import (
	"testing"

	"github.com/etmorf/etmorf/lexicon"
)

func TestRewriteStemKandFromKann(t *testing.T) {
	// "kann" is paradigm 0's genitive-stem variant (slot 1); slot 0 is
	// the nominative/lemma variant "kand".
	got, ok, err := lex.RewriteStem(0, 1, 0, []rune("kann"))
	if err != nil {
		t.Fatalf("RewriteStem: %v", err)
	}
	if !ok {
		t.Fatal("RewriteStem reported not-this-paradigm for a valid slot")
	}
	if string(got) != "kand" {
		t.Errorf("RewriteStem(0,1,0,%q) = %q, want %q", "kann", string(got), "kand")
	}
}

func TestRewriteStemKandmaFromKanna(t *testing.T) {
	// "kanna" is paradigm 1's imperative-stem variant (slot 1); slot 0
	// is the infinitive-style citation variant "kandma".
	got, ok, err := lex.RewriteStem(1, 1, 0, []rune("kanna"))
	if err != nil {
		t.Fatalf("RewriteStem: %v", err)
	}
	if !ok {
		t.Fatal("RewriteStem reported not-this-paradigm for a valid slot")
	}
	if string(got) != "kandma" {
		t.Errorf("RewriteStem(1,1,0,%q) = %q, want %q", "kanna", string(got), "kandma")
	}
}

func TestRewriteStemTooShort(t *testing.T) {
	_, ok, err := lex.RewriteStem(0, 1, 0, []rune("k"))
	if err != nil {
		t.Fatalf("RewriteStem: %v", err)
	}
	if ok {
		t.Error("RewriteStem should report not-this-paradigm for a stem shorter than ReplaceLen")
	}
}

func TestEndGroupAccepts(t *testing.T) {
	// EG_KANN_GEN (id 3) accepts ending "a" (id 1) for form "sg g" (id 1).
	ok, err := lex.EndGroupAccepts(3, 1, 1)
	if err != nil {
		t.Fatalf("EndGroupAccepts: %v", err)
	}
	if !ok {
		t.Error("EndGroupAccepts(3, 1, 1) = false, want true")
	}

	ok, err = lex.EndGroupAccepts(3, 1, 0)
	if err != nil {
		t.Fatalf("EndGroupAccepts: %v", err)
	}
	if ok {
		t.Error("EndGroupAccepts(3, 1, 0) = true, want false (form 0 is not licensed here)")
	}
}

func TestEnumerateEndingsMaja(t *testing.T) {
	// EG_MAJA (id 0), form "pl g" (id 2), is licensed only via ending "de" (id 2).
	got, err := lex.EnumerateEndings(0, 2)
	if err != nil {
		t.Fatalf("EnumerateEndings: %v", err)
	}
	if len(got) != 1 || got[0].Ending != "de" {
		t.Fatalf("EnumerateEndings(0, 2) = %+v, want a single \"de\" ending", got)
	}
}

func TestAnnotateNoOp(t *testing.T) {
	// The fixture's hyphenation/phonetic tables only carry a trivial,
	// empty class at id 0, so Annotate should return the stem unchanged.
	out, err := lex.Annotate([]rune("maja"), 0, 0, lexicon.AnnotationFlags{Hyphenation: true, Phonetic: true})
	if err != nil {
		t.Fatalf("Annotate: %v", err)
	}
	if string(out) != "maja" {
		t.Errorf("Annotate with an empty class changed the stem: got %q", string(out))
	}
}
