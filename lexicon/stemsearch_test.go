package lexicon_test

import (
	"testing"

	"github.com/etmorf/etmorf/lexicon"
)

func TestStemSearchHits(t *testing.T) {
	cases := []struct {
		stem           string
		wantHomonyms   int
		wantEndGroup   uint32
		wantParadigmID uint32
		wantParadigmIx uint32
	}{
		{"kann", 1, 3, 0, 1},
		{"kanna", 1, 5, 1, 1},
		{"maja", 1, 0, 2, 0},
		{"raud", 1, 1, 3, 0},
		{"sõna", 1, 1, 4, 0},
		{"tee", 1, 1, 5, 0},
	}
	for _, tc := range cases {
		t.Run(tc.stem, func(t *testing.T) {
			res, err := lex.StemSearch([]rune(tc.stem))
			if err != nil {
				t.Fatalf("StemSearch(%q): %v", tc.stem, err)
			}
			if res.Kind != lexicon.Hit {
				t.Fatalf("StemSearch(%q).Kind = %v, want Hit", tc.stem, res.Kind)
			}
			if len(res.Homonyms) != tc.wantHomonyms {
				t.Fatalf("StemSearch(%q) has %d homonyms, want %d", tc.stem, len(res.Homonyms), tc.wantHomonyms)
			}
			h := res.Homonyms[0]
			if h.EndGroupID != tc.wantEndGroup {
				t.Errorf("StemSearch(%q) EndGroupID = %d, want %d", tc.stem, h.EndGroupID, tc.wantEndGroup)
			}
			if h.Paradigm.ParadigmID != tc.wantParadigmID || h.Paradigm.Index != tc.wantParadigmIx {
				t.Errorf("StemSearch(%q) Paradigm = %+v, want {%d %d}", tc.stem, h.Paradigm, tc.wantParadigmID, tc.wantParadigmIx)
			}
		})
	}
}

func TestStemSearchMisses(t *testing.T) {
	cases := []struct {
		stem string
		want lexicon.HitKind
	}{
		{"", lexicon.NotAnywhere},
		{"aaa", lexicon.NotAnywhere},   // sorts before every stem
		{"zzz", lexicon.NotAnywhere},   // sorts after every stem
		{"kanz", lexicon.NotAnywhere},  // sits between kanna and maja, no relation
		{"ka", lexicon.NotHere},        // strict prefix of kann/kanna
		{"kannaa", lexicon.NotHere},    // kanna is a strict prefix of this query
		{"majaa", lexicon.NotHere},     // maja is a strict prefix of this query
		{"teezz", lexicon.NotHere},     // tee is a strict prefix, and is the last stem in the block
	}
	for _, tc := range cases {
		t.Run(tc.stem, func(t *testing.T) {
			res, err := lex.StemSearch([]rune(tc.stem))
			if err != nil {
				t.Fatalf("StemSearch(%q): %v", tc.stem, err)
			}
			if res.Kind != tc.want {
				t.Errorf("StemSearch(%q).Kind = %v, want %v", tc.stem, res.Kind, tc.want)
			}
		})
	}
}
