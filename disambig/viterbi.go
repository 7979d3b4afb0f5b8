package disambig

import (
	"strings"

	"github.com/etmorf/etmorf/analyze"
)

// TagFor is the fixed mapping from one Analysis to the disambiguator's
// tag alphabet.
func TagFor(a analyze.Analysis) string {
	return string(a.Pos) + ":" + a.Form
}

type viterbiState struct{ prev, cur int }

// Disambiguate runs Viterbi decoding over sets and prunes each
// AnalysisSet in place to the analyses matching the decoded tag. Words
// with zero analyses, or whose analyses carry no tag this model has
// ever seen, pass through unchanged.
func (m *Model) Disambiguate(sets []*analyze.AnalysisSet) error {
	n := len(sets)
	if n == 0 {
		return nil
	}

	tagOf := make([][]int, n)
	candidates := make([][]int, n)
	for i, set := range sets {
		tagOf[i] = make([]int, len(set.Analyses))
		seen := map[int]bool{}
		for j, a := range set.Analyses {
			id := m.TagID(TagFor(a))
			tagOf[i][j] = id
			if id >= 0 && !seen[id] {
				seen[id] = true
				candidates[i] = append(candidates[i], id)
			}
		}
	}

	eligible := make([]int, 0, n)
	for i := range candidates {
		if len(candidates[i]) > 0 {
			eligible = append(eligible, i)
		}
	}
	if len(eligible) == 0 {
		return nil
	}

	sentinel := m.Sentinel
	prevStates := []viterbiState{{sentinel, sentinel}}
	prevScores := []float64{0}

	var statesPerStep [][]viterbiState
	var scorePerStep [][]float64
	var backPerStep [][]int

	for _, pos := range eligible {
		var curStates []viterbiState
		var curScores []float64
		var curBack []int
		for _, tid := range candidates[pos] {
			best := floorLogP * 1000
			bestBack := 0
			for si, ps := range prevStates {
				score := prevScores[si] + m.trigramLogP(ps.prev, ps.cur, tid)
				if score > best {
					best = score
					bestBack = si
				}
			}
			emit := m.emissionLogP(sets[pos], tagOf[pos], tid)
			curStates = append(curStates, viterbiState{prevStates[bestBack].cur, tid})
			curScores = append(curScores, best+emit)
			curBack = append(curBack, bestBack)
		}
		statesPerStep = append(statesPerStep, curStates)
		scorePerStep = append(scorePerStep, curScores)
		backPerStep = append(backPerStep, curBack)
		prevStates = curStates
		prevScores = curScores
	}
	_ = scorePerStep

	bestFinal := floorLogP * 1000
	bestFinalIdx := 0
	for si, ps := range prevStates {
		score := prevScores[si] + m.trigramLogP(ps.prev, ps.cur, sentinel) + m.trigramLogP(ps.cur, sentinel, sentinel)
		if score > bestFinal {
			bestFinal = score
			bestFinalIdx = si
		}
	}

	decoded := make([]int, len(eligible))
	si := bestFinalIdx
	for idx := len(eligible) - 1; idx >= 0; idx-- {
		decoded[idx] = statesPerStep[idx][si].cur
		si = backPerStep[idx][si]
	}

	for idx, pos := range eligible {
		pruneToTag(sets[pos], tagOf[pos], decoded[idx])
	}
	return nil
}

// pruneToTag keeps only the analyses whose tag matches decoded,
// leaving the set unpruned rather than emptied if none match.
func pruneToTag(set *analyze.AnalysisSet, tagIDs []int, decoded int) {
	var kept []analyze.Analysis
	for j, a := range set.Analyses {
		if tagIDs[j] == decoded {
			kept = append(kept, a)
		}
	}
	if len(kept) > 0 {
		set.Analyses = kept
	}
}

// emissionLogP implements logP(word_i | t_i): the lexical entry if the
// word was seen in training, else the ambiguity class matching the
// word's candidate tag set, else the unigram back-off.
func (m *Model) emissionLogP(set *analyze.AnalysisSet, tagIDs []int, tid int) float64 {
	if entries, ok := m.lexical[strings.ToLower(set.Word)]; ok {
		for _, e := range entries {
			if e.TagID == tid {
				return e.LogP
			}
		}
		return floorLogP
	}
	sig := buildSignature(uniqueIDs(tagIDs))
	if entries, ok := m.ambiguityClasses[sig]; ok {
		for _, e := range entries {
			if e.TagID == tid {
				return e.LogP
			}
		}
		return floorLogP
	}
	return m.unigramLogP(tid)
}

func uniqueIDs(ids []int) []int {
	seen := map[int]bool{}
	var out []int
	for _, id := range ids {
		if id >= 0 && !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	return out
}
