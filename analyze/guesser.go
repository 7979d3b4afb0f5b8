package analyze

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/etmorf/etmorf/lexicon"
)

// AnalogyEntry is one row of the guesser's companion analogy
// sub-lexicon: a known word, the POS it inflects as, and the paradigm
// slot it exemplifies.
type AnalogyEntry struct {
	Word     string
	Pos      byte
	Paradigm lexicon.StemSlot
}

// Guesser runs when Analyzer finds nothing: it tries suffix stripping,
// then analogy, then compound decomposition from the right; the first
// non-empty result wins and is tagged with its origin.
type Guesser struct {
	Analyzer  *Analyzer
	Analogies []AnalogyEntry
}

// LoadAnalogyFile reads a companion analogy lexicon: one entry per
// line, tab-separated "word\tpos\tparadigmID\tindex". The sidecar has
// no binary framing of its own, so a plain bufio.Scanner line reader
// is enough; blank lines and lines starting with "#" are skipped.
func LoadAnalogyFile(path string) ([]AnalogyEntry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("analyze: opening analogy file %s: %w", path, err)
	}
	defer f.Close()

	var out []AnalogyEntry
	scanner := bufio.NewScanner(f)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Split(line, "\t")
		if len(fields) != 4 {
			return nil, fmt.Errorf("analyze: analogy file %s line %d: want 4 fields, got %d", path, lineNo, len(fields))
		}
		paradigmID, err := strconv.ParseUint(fields[2], 10, 32)
		if err != nil {
			return nil, fmt.Errorf("analyze: analogy file %s line %d: bad paradigm id: %w", path, lineNo, err)
		}
		index, err := strconv.ParseUint(fields[3], 10, 32)
		if err != nil {
			return nil, fmt.Errorf("analyze: analogy file %s line %d: bad paradigm index: %w", path, lineNo, err)
		}
		if len(fields[1]) != 1 {
			return nil, fmt.Errorf("analyze: analogy file %s line %d: pos must be one character", path, lineNo)
		}
		out = append(out, AnalogyEntry{
			Word:     fields[0],
			Pos:      fields[1][0],
			Paradigm: lexicon.StemSlot{ParadigmID: uint32(paradigmID), Index: uint32(index)},
		})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("analyze: reading analogy file %s: %w", path, err)
	}
	return out, nil
}

// Guess runs the three strategies in order.
func (g *Guesser) Guess(word, core, clitic string, pattern capPattern, opts Options) (*AnalysisSet, error) {
	if analyses, err := g.suffixStrip(core, opts); err != nil {
		return nil, err
	} else if len(analyses) > 0 {
		finishAnalyses(analyses, pattern, clitic)
		return &AnalysisSet{Word: word, Analyses: analyses, Origin: OriginGuesserSuffix}, nil
	}

	if analyses, err := g.analogy(core, opts); err != nil {
		return nil, err
	} else if len(analyses) > 0 {
		finishAnalyses(analyses, pattern, clitic)
		return &AnalysisSet{Word: word, Analyses: analyses, Origin: OriginGuesserAnalogy}, nil
	}

	if analyses, err := g.compound(core, opts); err != nil {
		return nil, err
	} else if len(analyses) > 0 {
		finishAnalyses(analyses, pattern, clitic)
		return &AnalysisSet{Word: word, Analyses: analyses, Origin: OriginGuesserCompound}, nil
	}

	return &AnalysisSet{Word: word, Origin: OriginUnknown}, nil
}

// suffixStrip matches word's tail against the suffix table's strings
// (longest first); the preceding characters become a stem carrying the
// suffix's own stem-info, without requiring that stem to exist
// anywhere in the dictionary.
type suffixCandidate struct {
	suffix lexicon.SuffixEntry
	tail   string
}

func (g *Guesser) suffixStrip(word string, opts Options) ([]Analysis, error) {
	lex := g.Analyzer.Lex
	var candidates []suffixCandidate
	for _, s := range lex.Suffixes {
		suffixText := string(s.Suffix)
		if suffixText == "" {
			continue
		}
		endingText, err := lex.Ending(s.ReducedEndingID)
		if err != nil {
			return nil, err
		}
		tail := suffixText + endingText
		if !strings.HasSuffix(word, tail) {
			continue
		}
		if len(word) <= len(tail) {
			continue // stem would be empty
		}
		candidates = append(candidates, suffixCandidate{s, tail})
	}
	sortSuffixCandidatesLongestFirst(candidates)

	var out []Analysis
	for _, c := range candidates {
		preceding := word[:len(word)-len(c.tail)]
		suffixText := string(c.suffix.Suffix)
		endingText, err := lex.Ending(c.suffix.ReducedEndingID)
		if err != nil {
			return nil, err
		}
		stem := preceding + suffixText[:runeByteLen(suffixText, c.suffix.CharsBelongToStem)]
		for _, si := range c.suffix.Stems {
			posChar := g.Analyzer.suffixStemPos(si)
			forms, err := lex.AcceptedForms(si.EndGroupID, c.suffix.ReducedEndingID)
			if err != nil {
				return nil, err
			}
			annotated, err := g.Analyzer.annotate(stem, si, opts)
			if err != nil {
				return nil, err
			}
			for _, formID := range forms {
				formText, err := lex.Form(formID)
				if err != nil {
					return nil, err
				}
				out = append(out, Analysis{Stem: annotated, Ending: endingText, Pos: posChar, Form: formText})
			}
		}
	}
	return out, nil
}

func sortSuffixCandidatesLongestFirst(c []suffixCandidate) {
	for i := 1; i < len(c); i++ {
		for j := i; j > 0 && len(c[j].tail) > len(c[j-1].tail); j-- {
			c[j], c[j-1] = c[j-1], c[j]
		}
	}
}

// analogy tries each analogy entry whose tail shares at least one
// character with word's tail: it analyses the analogy word normally,
// then for each resulting analysis replaces the shared tail of its
// stem with the corresponding prefix of the input word and keeps those
// whose surface form now equals the input.
func (g *Guesser) analogy(word string, opts Options) ([]Analysis, error) {
	var out []Analysis
	for _, entry := range g.Analogies {
		shared := commonSuffixLen(entry.Word, word)
		if shared < 1 {
			continue
		}
		sharedTail := entry.Word[len(entry.Word)-shared:]
		inputPrefix := word[:len(word)-shared]

		analyses, err := g.Analyzer.analyzeSurface(entry.Word, opts)
		if err != nil {
			return nil, err
		}
		for _, an := range analyses {
			if !strings.HasSuffix(an.Stem, sharedTail) {
				continue
			}
			candidateStem := inputPrefix + sharedTail
			if candidateStem+an.Ending != word {
				continue
			}
			out = append(out, Analysis{Stem: candidateStem, Ending: an.Ending, Pos: an.Pos, Form: an.Form})
		}
	}
	return out, nil
}

func commonSuffixLen(a, b string) int {
	n := 0
	for n < len(a) && n < len(b) && a[len(a)-1-n] == b[len(b)-1-n] {
		n++
	}
	return n
}

// compound walks possible split points right-to-left; if the
// right-hand side analyses under the ordinary analyser, suffix
// stripping, or analogy, the left is treated as opaque and prepended to
// the stem. This is the fallback reached once splitCompound's own split
// (which requires the left component to analyse on its own) has
// already failed: a literal joint whose left side is not itself a word
// ("blabla-sõna"), where the right side alone is still a known word.
func (g *Guesser) compound(word string, opts Options) ([]Analysis, error) {
	runes := []rune(word)
	for i := len(runes) - 1; i >= 1; i-- {
		left := string(runes[:i])
		right := string(runes[i:])
		right = strings.TrimPrefix(right, "-")
		right = strings.TrimPrefix(right, "_")
		if right == "" {
			continue
		}

		rightAnalyses, err := g.Analyzer.analyzeSurface(right, opts)
		if err != nil {
			return nil, err
		}
		if len(rightAnalyses) == 0 {
			rightAnalyses, err = g.suffixStrip(right, opts)
			if err != nil {
				return nil, err
			}
		}
		if len(rightAnalyses) == 0 {
			rightAnalyses, err = g.analogy(right, opts)
			if err != nil {
				return nil, err
			}
		}
		if len(rightAnalyses) == 0 {
			continue
		}
		out := make([]Analysis, len(rightAnalyses))
		for j, ra := range rightAnalyses {
			ra.Stem = left + ra.Stem
			out[j] = ra
		}
		return out, nil
	}
	return nil, nil
}
