package synth

import (
	"fmt"
	"strings"

	"github.com/etmorf/etmorf/lexicon"
)

// candidateStem is one stem string paired with the paradigm/endgroup
// information needed to expand it, gathered either from a direct
// dictionary hit or from the guesser fallback.
type candidateStem struct {
	stem string
	hom  lexicon.StemInfo
}

// Synthesise generates the surface forms a lemma takes, resolving a
// stem and a paradigm, then filtering, expanding, and emitting.
func (s *Synthesiser) Synthesise(req Request) ([]string, error) {
	if req.Lemma == "" {
		return nil, nil
	}
	lemma := strings.ToLower(req.Lemma)

	if len(req.Forms) == 0 {
		// "form_set empty means the lemma form itself".
		return []string{req.Lemma}, nil
	}

	candidates, err := s.candidateStems(lemma, req.Pos, req.Guess)
	if err != nil {
		return nil, err
	}
	if req.ParadigmExample != "" {
		candidates, err = s.filterByParadigmExample(candidates, strings.ToLower(req.ParadigmExample), req.Pos)
		if err != nil {
			return nil, err
		}
	}
	if len(candidates) == 0 {
		return nil, nil
	}

	forms, err := s.expandForms(req.Forms, req.Pos)
	if err != nil {
		return nil, err
	}

	var out []string
	seen := map[string]bool{}
	for _, formText := range forms {
		formID, ok := s.formID(formText)
		if !ok {
			continue
		}
		for _, c := range candidates {
			surfaces, err := s.emit(c, formID, req.Clitic)
			if err != nil {
				return nil, err
			}
			for _, surface := range surfaces {
				if seen[surface] {
					continue
				}
				seen[surface] = true
				out = append(out, surface)
			}
		}
	}
	return out, nil
}

// candidateStems analyses the lemma (a direct stem-search, since a
// synthesis lemma is by definition a bare stem with the empty ending)
// and keeps every homonym whose POS matches; if nothing is found and
// guess is set, it falls back to the suffix-based guess path.
func (s *Synthesiser) candidateStems(lemma string, pos byte, guess bool) ([]candidateStem, error) {
	res, err := s.Lex.StemSearch([]rune(lemma))
	if err != nil {
		return nil, err
	}
	if res.Kind == lexicon.Hit {
		posClass, err := s.Lex.PosClassString(res.PosClassID)
		if err != nil {
			return nil, err
		}
		var out []candidateStem
		for i, hom := range res.Homonyms {
			if i < len(posClass) && posClass[i] == pos {
				out = append(out, candidateStem{stem: lemma, hom: hom})
			}
		}
		if len(out) > 0 {
			return out, nil
		}
	}
	if !guess {
		return nil, nil
	}
	return s.guessStems(lemma, pos)
}

// guessStems mirrors analyze.Guesser's suffix-stripping strategy, but
// only needs the paradigm it selects, not a full analysis: a lemma that
// isn't in the dictionary can still be synthesised against a guessed
// paradigm.
func (s *Synthesiser) guessStems(lemma string, pos byte) ([]candidateStem, error) {
	var out []candidateStem
	for _, suf := range s.Lex.Suffixes {
		suffixText := string(suf.Suffix)
		if suffixText == "" {
			continue
		}
		endingText, err := s.Lex.Ending(suf.ReducedEndingID)
		if err != nil {
			return nil, err
		}
		tail := suffixText + endingText
		if !strings.HasSuffix(lemma, tail) || len(lemma) <= len(tail) {
			continue
		}
		preceding := lemma[:len(lemma)-len(tail)]
		stem := preceding + suffixText[:runeByteLen(suffixText, suf.CharsBelongToStem)]
		for _, si := range suf.Stems {
			if s.paradigmPos(si.Paradigm.ParadigmID) == pos {
				out = append(out, candidateStem{stem: stem, hom: si})
			}
		}
	}
	return out, nil
}

func (s *Synthesiser) paradigmPos(paradigmID uint32) byte {
	if int(paradigmID) >= len(s.Lex.Paradigms) {
		return '?'
	}
	posClass, err := s.Lex.PosClassString(s.Lex.Paradigms[paradigmID].PosClassID)
	if err != nil || posClass == "" {
		return '?'
	}
	return posClass[0]
}

func runeByteLen(s string, n int) int {
	if n <= 0 {
		return 0
	}
	count := 0
	for i := range s {
		if count == n {
			return i
		}
		count++
	}
	return len(s)
}

// filterByParadigmExample keeps only the candidates whose paradigm
// matches one that example itself resolves to.
func (s *Synthesiser) filterByParadigmExample(candidates []candidateStem, example string, pos byte) ([]candidateStem, error) {
	exCandidates, err := s.candidateStems(example, pos, false)
	if err != nil {
		return nil, err
	}
	if len(exCandidates) == 0 {
		return candidates, nil
	}
	wanted := map[uint32]bool{}
	for _, c := range exCandidates {
		wanted[c.hom.Paradigm.ParadigmID] = true
	}
	var out []candidateStem
	for _, c := range candidates {
		if wanted[c.hom.Paradigm.ParadigmID] {
			out = append(out, c)
		}
	}
	return out, nil
}

// expandForms expands a "*" form request into the full canonical form
// list for pos, via the lexicon's own FormGroups table rather than a
// hard-coded per-POS list.
func (s *Synthesiser) expandForms(forms []string, pos byte) ([]string, error) {
	for _, f := range forms {
		if f != "*" {
			continue
		}
		ids := s.Lex.FormGroups[pos]
		out := make([]string, 0, len(ids))
		for _, id := range ids {
			text, err := s.Lex.Form(id)
			if err != nil {
				return nil, err
			}
			out = append(out, text)
		}
		return out, nil
	}
	return forms, nil
}

func (s *Synthesiser) formID(text string) (uint32, bool) {
	for i, f := range s.Lex.Forms {
		if f == text {
			return uint32(i), true
		}
	}
	return 0, false
}

// emit produces every surface form for one (candidate stem, form):
// every stem variant reachable via RewriteStem, glued to every ending
// EnumerateEndings licenses for that form, plus a voiced clitic if
// requested.
func (s *Synthesiser) emit(c candidateStem, formID uint32, clitic bool) ([]string, error) {
	paradigmID := c.hom.Paradigm.ParadigmID
	if int(paradigmID) >= len(s.Lex.Paradigms) {
		return nil, fmt.Errorf("synth: paradigm id %d out of range", paradigmID)
	}
	rows := s.Lex.Paradigms[paradigmID].Rows
	var out []string
	for toIdx, row := range rows {
		rewritten, ok, err := s.Lex.RewriteStem(paradigmID, int(c.hom.Paradigm.Index), toIdx, []rune(c.stem))
		if err != nil {
			return nil, err
		}
		if !ok {
			continue
		}
		endings, err := s.Lex.EnumerateEndings(row.EndGroupID, formID)
		if err != nil {
			return nil, err
		}
		for _, e := range endings {
			surface := string(rewritten) + e.Ending
			if clitic {
				surface += chooseClitic(surface)
			}
			out = append(out, surface)
		}
	}
	return out, nil
}

// voicedRunes are the sounds after which the clitic surfaces as "gi"
// rather than "ki": vowels and the sonorant consonants, the same
// voiced/voiceless split Estonian clitic doubling follows.
var voicedRunes = map[rune]bool{
	'a': true, 'e': true, 'i': true, 'o': true, 'u': true, 'õ': true, 'ä': true, 'ö': true, 'ü': true,
	'l': true, 'm': true, 'n': true, 'r': true, 'v': true, 'j': true,
}

func chooseClitic(surfaceSoFar string) string {
	runes := []rune(surfaceSoFar)
	if len(runes) == 0 {
		return "ki"
	}
	last := runes[len(runes)-1]
	if voicedRunes[last] {
		return "gi"
	}
	return "ki"
}
