package analyze

import (
	"sort"
	"strings"

	"github.com/etmorf/etmorf/lexicon"
)

// Analyzer decomposes surface words against one Lexicon. It is not
// safe for concurrent use, since the Lexicon it wraps owns a
// non-concurrent-safe block cache; callers needing parallelism open one
// Lexicon (and Analyzer) per worker.
type Analyzer struct {
	Lex *lexicon.Lexicon

	// Clitics is the fixed small set of enclitic strings stripped before
	// analysis, longest first. Estonian carries exactly one clitic
	// morpheme with two voicing allomorphs ("-gi" after a voiced
	// segment, "-ki" otherwise), and both surface spellings must be
	// recognised on the analysis side.
	Clitics []string

	endingOrder []enumeratedEnding
	Guesser     *Guesser
}

type enumeratedEnding struct {
	ID   uint32
	Text string
}

// DefaultClitics is the canonical clitic set used unless the caller
// overrides it.
var DefaultClitics = []string{"gi", "ki"}

// New builds an Analyzer over lex with DefaultClitics and no guesser
// configured; set Guesser explicitly to enable guessing.
func New(lex *lexicon.Lexicon) *Analyzer {
	a := &Analyzer{Lex: lex, Clitics: append([]string(nil), DefaultClitics...)}
	a.buildEndingOrder()
	return a
}

// buildEndingOrder sorts the ending pool longest-first, breaking ties
// by the pool's own order; sort.SliceStable preserves that order among
// equal lengths.
func (a *Analyzer) buildEndingOrder() {
	endings := make([]enumeratedEnding, 0, len(a.Lex.Endings))
	for id, text := range a.Lex.Endings {
		if id == 0 {
			continue // empty ending is handled separately, always tried first
		}
		endings = append(endings, enumeratedEnding{ID: uint32(id), Text: text})
	}
	sort.SliceStable(endings, func(i, j int) bool {
		return len([]rune(endings[i].Text)) > len([]rune(endings[j].Text))
	})
	a.endingOrder = endings
}

// Analyze is the main entry point. Empty input yields an empty,
// non-error AnalysisSet.
func (a *Analyzer) Analyze(word string, opts Options) (*AnalysisSet, error) {
	if word == "" {
		return &AnalysisSet{Word: word, Origin: OriginUnknown}, nil
	}

	pattern := deriveCapPattern(word)
	lower := strings.ToLower(word)

	if set, ok, err := a.prefilter(word, lower); err != nil {
		return nil, err
	} else if ok {
		return set, nil
	}

	clitic, core := stripClitic(lower, a.Clitics)

	analyses, err := a.analyzeSurface(core, opts)
	if err != nil {
		return nil, err
	}
	if len(analyses) == 0 {
		analyses, err = a.splitCompound(core, opts)
		if err != nil {
			return nil, err
		}
	}
	if len(analyses) > 0 {
		finishAnalyses(analyses, pattern, clitic)
		return &AnalysisSet{Word: word, Analyses: analyses, Origin: OriginMain}, nil
	}

	if opts.Guess && a.Guesser != nil {
		return a.Guesser.Guess(word, core, clitic, pattern, opts)
	}
	return &AnalysisSet{Word: word, Origin: OriginUnknown}, nil
}

func finishAnalyses(analyses []Analysis, pattern capPattern, clitic string) {
	for i := range analyses {
		analyses[i].Stem = applyCapPattern(pattern, analyses[i].Stem)
		analyses[i].Clitic = clitic
	}
	sortAnalyses(analyses)
}

// sortAnalyses enforces a deterministic ordering by stem, then ending,
// then form text. Analysis carries no paradigm, slot, ending or form
// ids, so the order does not follow those ids.
func sortAnalyses(analyses []Analysis) {
	sort.SliceStable(analyses, func(i, j int) bool {
		if analyses[i].Stem != analyses[j].Stem {
			return analyses[i].Stem < analyses[j].Stem
		}
		if analyses[i].Ending != analyses[j].Ending {
			return analyses[i].Ending < analyses[j].Ending
		}
		return analyses[i].Form < analyses[j].Form
	})
}

// stripClitic peels the longest matching clitic off the end of word.
func stripClitic(word string, clitics []string) (clitic, core string) {
	best := ""
	for _, c := range clitics {
		if strings.HasSuffix(word, c) && len(c) > len(best) {
			best = c
		}
	}
	if best == "" {
		return "", word
	}
	return best, word[:len(word)-len(best)]
}

// prefilter runs the digit-only path and the closed-class lookups (the
// lists are where Roman numerals are recognised), which short-circuit
// before the main ending/stem machinery runs.
func (a *Analyzer) prefilter(word, lower string) (*AnalysisSet, bool, error) {
	if isDigitsOnly(word) {
		return &AnalysisSet{
			Word:     word,
			Analyses: []Analysis{{Stem: word, Pos: 'N', Form: "card"}},
			Origin:   OriginAbbreviation,
		}, true, nil
	}
	for _, set := range a.Lex.ClosedClasses {
		if binarySearchString(set, word) {
			return &AnalysisSet{
				Word:     word,
				Analyses: []Analysis{{Stem: word, Pos: 'O', Form: "roman"}},
				Origin:   OriginAbbreviation,
			}, true, nil
		}
	}
	_ = lower
	return nil, false, nil
}

func isDigitsOnly(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// binarySearchString assumes set is sorted; closed-class lists are
// built pre-sorted and never re-sorted by the loader.
func binarySearchString(set []string, s string) bool {
	lo, hi := 0, len(set)
	for lo < hi {
		mid := (lo + hi) / 2
		if set[mid] < s {
			lo = mid + 1
		} else {
			hi = mid
		}
	}
	return lo < len(set) && set[lo] == s
}

// analyzeSurface runs the full pipeline over word (already clitic- and
// case-normalized): ending split, prefix split, stem lookup, suffix
// re-attribution, paradigm filter.
func (a *Analyzer) analyzeSurface(word string, opts Options) ([]Analysis, error) {
	var out []Analysis

	tryEnding := func(endingID uint32, endingText string) error {
		if len(endingText) > len(word) {
			return nil
		}
		head := word[:len(word)-len(endingText)]
		if !strings.HasSuffix(word, endingText) {
			return nil
		}
		return a.tryHead(head, endingID, endingText, opts, &out)
	}

	if err := tryEnding(0, ""); err != nil {
		return nil, err
	}
	for _, e := range a.endingOrder {
		if err := tryEnding(e.ID, e.Text); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// tryHead handles one (head, ending) split: try no prefix and then
// every recognised prefix.
func (a *Analyzer) tryHead(head string, endingID uint32, endingText string, opts Options, out *[]Analysis) error {
	if err := a.tryStem(head, endingID, endingText, opts, out); err != nil {
		return err
	}
	for _, p := range a.Lex.Prefixes {
		prefix := string(p.Prefix)
		if !strings.HasPrefix(head, prefix) {
			continue
		}
		rest := head[len(prefix):]
		if rest == "" {
			continue
		}
		if err := a.tryStem(rest, endingID, endingText, opts, out); err != nil {
			return err
		}
	}
	return nil
}

// tryStem handles one candidate stem string: look it up, walk the
// suffix-chain re-attribution (bounded by maxChainDepth), then filter
// by paradigm.
func (a *Analyzer) tryStem(stem string, endingID uint32, endingText string, opts Options, out *[]Analysis) error {
	res, err := a.Lex.StemSearch([]rune(stem))
	if err != nil {
		return err
	}
	if res.Kind != lexicon.Hit {
		return nil
	}
	posClass, err := a.Lex.PosClassString(res.PosClassID)
	if err != nil {
		return err
	}
	for i, hom := range res.Homonyms {
		posChar := byte('?')
		if i < len(posClass) {
			posChar = posClass[i]
		}
		if err := a.emitOrChain(stem, hom, posChar, endingID, endingText, opts, out); err != nil {
			return err
		}
	}
	return nil
}

// maxChainDepth bounds suffix-chain recursion depth.
const maxChainDepth = 4

// emitOrChain applies suffix re-attribution repeatedly, up to
// maxChainDepth times, then applies the paradigm filter to whatever
// stem/homonym the chain settles on.
func (a *Analyzer) emitOrChain(stem string, hom lexicon.StemInfo, posChar byte, endingID uint32, endingText string, opts Options, out *[]Analysis) error {
	type candidate struct {
		stem    string
		hom     lexicon.StemInfo
		posChar byte
	}
	frontier := []candidate{{stem, hom, posChar}}
	for depth := 0; depth < maxChainDepth; depth++ {
		var next []candidate
		progressed := false
		for _, c := range frontier {
			newStem, newHoms, newPosChars, matched, err := a.applySuffixChain(c.stem, c.posChar, endingID)
			if err != nil {
				return err
			}
			if !matched {
				next = append(next, c)
				continue
			}
			progressed = true
			for i, h := range newHoms {
				next = append(next, candidate{newStem, h, newPosChars[i]})
			}
		}
		frontier = next
		if !progressed {
			break
		}
	}
	for _, c := range frontier {
		if err := a.emitFromParadigm(c.stem, c.hom, c.posChar, endingID, endingText, opts, out); err != nil {
			return err
		}
	}
	return nil
}

// applySuffixChain checks whether stem's tail matches a suffix table
// entry whose ReducedEndingID equals the ending already chosen for this
// word and whose AttachableStemClasses contains posChar; if so it
// rewrites the stem boundary by CharsBelongToStem and substitutes the
// suffix's stem-info for the homonym's.
func (a *Analyzer) applySuffixChain(stem string, posChar byte, endingID uint32) (newStem string, homs []lexicon.StemInfo, posChars []byte, matched bool, err error) {
	for _, s := range a.Lex.Suffixes {
		suffixText := string(s.Suffix)
		if suffixText == "" || !strings.HasSuffix(stem, suffixText) {
			continue
		}
		if s.ReducedEndingID != endingID {
			continue
		}
		if !strings.ContainsRune(s.AttachableStemClasses, rune(posChar)) {
			continue
		}
		cut := len(stem) - len(suffixText) + runeByteLen(suffixText, s.CharsBelongToStem)
		out := stem[:cut]
		poses := make([]byte, len(s.Stems))
		for i, si := range s.Stems {
			poses[i] = a.suffixStemPos(si)
		}
		return out, s.Stems, poses, true, nil
	}
	return "", nil, nil, false, nil
}

// runeByteLen returns the byte length of the first n runes of s.
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

// suffixStemPos derives the POS character a suffix's stem-info entry
// implies: the first character of the pos-class string its paradigm
// carries. A suffix table entry describes one paradigm, not a homonym
// group, so there is exactly one POS to pick.
func (a *Analyzer) suffixStemPos(si lexicon.StemInfo) byte {
	if int(si.Paradigm.ParadigmID) >= len(a.Lex.Paradigms) {
		return '?'
	}
	p := a.Lex.Paradigms[si.Paradigm.ParadigmID]
	posClass, err := a.Lex.PosClassString(p.PosClassID)
	if err != nil || posClass == "" {
		return '?'
	}
	return posClass[0]
}

// emitFromParadigm requires at least one form id accepted for the
// end-group/ending pair; one analysis is emitted per accepted form.
func (a *Analyzer) emitFromParadigm(stem string, hom lexicon.StemInfo, posChar byte, endingID uint32, endingText string, opts Options, out *[]Analysis) error {
	forms, err := a.Lex.AcceptedForms(hom.EndGroupID, endingID)
	if err != nil {
		return err
	}
	if len(forms) == 0 {
		return nil
	}
	annotated, err := a.annotate(stem, hom, opts)
	if err != nil {
		return err
	}
	for _, formID := range forms {
		formText, err := a.Lex.Form(formID)
		if err != nil {
			return err
		}
		*out = append(*out, Analysis{
			Stem:   annotated,
			Ending: endingText,
			Pos:    posChar,
			Form:   formText,
		})
	}
	return nil
}

// annotate applies the flagged hyphenation/phonetic overlays to stem.
// Only the stem is annotated; no ending, including the empty ending
// (id 0), ever receives a marker.
func (a *Analyzer) annotate(stem string, hom lexicon.StemInfo, opts Options) (string, error) {
	flags := lexicon.AnnotationFlags{
		Hyphenation: opts.Hyphenation,
		Phonetic:    opts.Phonetic,
	}
	out, err := a.Lex.Annotate([]rune(stem), hom.HyphenClass, hom.PhoneticClass, flags)
	if err != nil {
		return "", err
	}
	return string(out), nil
}

// compoundJoints are the characters treated as implicit compound
// joints when they appear literally in the surface input.
var compoundJoints = []rune{'_', '=', '+', '-'}

// splitCompound splits word at the first joint character found
// (checking compoundJoints in order), or, absent any literal joint
// character, at every position, and recurses on the right-hand
// component; the left-hand component is analysed independently and its
// lemma prefixed onto the right's. The rightmost component carries the
// inflection.
func (a *Analyzer) splitCompound(word string, opts Options) ([]Analysis, error) {
	runes := []rune(word)
	for _, jr := range compoundJoints {
		if idx := indexRune(runes, jr); idx > 0 {
			return a.splitAt(runes, idx, true, opts)
		}
	}
	// No literal joint: try every split point left-to-right, preferring
	// the longest right-hand component. Covers the no-separator case the
	// dictionary's own stems actually exhibit, e.g. "raudtee".
	for i := 1; i < len(runes); i++ {
		analyses, err := a.splitAt(runes, i, false, opts)
		if err != nil {
			return nil, err
		}
		if len(analyses) > 0 {
			return analyses, nil
		}
	}
	return nil, nil
}

func indexRune(runes []rune, r rune) int {
	for i, c := range runes {
		if c == r {
			return i
		}
	}
	return -1
}

// splitAt analyses runes[:idx] and runes[idx+stripJoint:] as left and
// right compound components. The left component must itself analyse
// successfully (its lemma is what gets prefixed); a bare dictionary hit
// is not enough; "blabla" in "blabla-sõna" fails here and falls through
// to the guesser's own, more permissive, compound strategy.
func (a *Analyzer) splitAt(runes []rune, idx int, stripJoint bool, opts Options) ([]Analysis, error) {
	rightStart := idx
	if stripJoint {
		rightStart = idx + 1
	}
	left := string(runes[:idx])
	right := string(runes[rightStart:])
	if left == "" || right == "" {
		return nil, nil
	}

	leftAnalyses, err := a.analyzeSurface(left, opts)
	if err != nil {
		return nil, err
	}
	if len(leftAnalyses) == 0 {
		return nil, nil
	}
	leftLemma := left
	for _, la := range leftAnalyses {
		if la.Ending == "" {
			leftLemma = la.Stem
			break
		}
	}

	rightAnalyses, err := a.analyzeSurface(right, opts)
	if err != nil {
		return nil, err
	}
	if len(rightAnalyses) == 0 {
		rightAnalyses, err = a.splitCompound(right, opts)
		if err != nil {
			return nil, err
		}
	}
	if len(rightAnalyses) == 0 {
		return nil, nil
	}
	out := make([]Analysis, len(rightAnalyses))
	for i, ra := range rightAnalyses {
		ra.Stem = leftLemma + ra.Stem
		out[i] = ra
	}
	return out, nil
}
