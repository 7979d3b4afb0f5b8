package lexicon

import "fmt"

// RewriteStem replaces the suffix of stem whose length equals
// row[fromIdx].ReplaceLen with row[toIdx].StemDelta, producing another
// stem variant of the same paradigm. It reports ok=false ("not this
// paradigm") rather than an error when the stem is too short for the
// replacement, since that is an expected, non-exceptional outcome
// during analysis/synthesis.
func (l *Lexicon) RewriteStem(paradigmID uint32, fromIdx, toIdx int, stem []rune) (rewritten []rune, ok bool, err error) {
	if int(paradigmID) >= len(l.Paradigms) {
		return nil, false, fmt.Errorf("lexicon: paradigm id %d out of range", paradigmID)
	}
	rows := l.Paradigms[paradigmID].Rows
	if fromIdx < 0 || fromIdx >= len(rows) || toIdx < 0 || toIdx >= len(rows) {
		return nil, false, fmt.Errorf("lexicon: paradigm %d slot index out of range", paradigmID)
	}
	replaceLen := rows[fromIdx].ReplaceLen
	if len(stem) < replaceLen {
		return nil, false, nil
	}
	kept := stem[:len(stem)-replaceLen]
	out := make([]rune, 0, len(kept)+len(rows[toIdx].StemDelta))
	out = append(out, kept...)
	out = append(out, rows[toIdx].StemDelta...)
	return out, true, nil
}

// EndGroupAccepts walks an ending-group's rows, returning true when
// some row carries both endingID and formID.
func (l *Lexicon) EndGroupAccepts(endGroupID, endingID, formID uint32) (bool, error) {
	if int(endGroupID) >= len(l.EndGroups) {
		return false, fmt.Errorf("lexicon: endgroup id %d out of range", endGroupID)
	}
	for _, row := range l.EndGroups[endGroupID] {
		if row.EndingID != endingID {
			continue
		}
		for _, f := range row.FormIDs {
			if f == formID {
				return true, nil
			}
		}
	}
	return false, nil
}

// AcceptedForms returns every form id licensed for endingID within
// endGroupID.
func (l *Lexicon) AcceptedForms(endGroupID, endingID uint32) ([]uint32, error) {
	if int(endGroupID) >= len(l.EndGroups) {
		return nil, fmt.Errorf("lexicon: endgroup id %d out of range", endGroupID)
	}
	for _, row := range l.EndGroups[endGroupID] {
		if row.EndingID == endingID {
			return row.FormIDs, nil
		}
	}
	return nil, nil
}

// EnumerateEndings collects every (ending id, ending string) pair under
// formID in endGroupID, used by the synthesiser to glue a stem to
// every licensed ending for a target form.
func (l *Lexicon) EnumerateEndings(endGroupID, formID uint32) ([]struct {
	EndingID uint32
	Ending   string
}, error) {
	if int(endGroupID) >= len(l.EndGroups) {
		return nil, fmt.Errorf("lexicon: endgroup id %d out of range", endGroupID)
	}
	var out []struct {
		EndingID uint32
		Ending   string
	}
	for _, row := range l.EndGroups[endGroupID] {
		for _, f := range row.FormIDs {
			if f == formID {
				s, err := l.Ending(row.EndingID)
				if err != nil {
					return nil, err
				}
				out = append(out, struct {
					EndingID uint32
					Ending   string
				}{EndingID: row.EndingID, Ending: s})
				break
			}
		}
	}
	return out, nil
}

// AnnotationFlags selects which overlay(s) Annotate applies; the two
// flags are independent.
type AnnotationFlags struct {
	Hyphenation bool
	Phonetic    bool
}

// Annotate applies the flagged annotation table(s) to stem at their
// recorded positions, producing the display form. Ending id 0 (empty
// ending) never carries a phonetic marker: callers must not pass a
// phonetic class tied to the empty ending; Annotate itself only
// renders what it is given.
func (l *Lexicon) Annotate(stem []rune, hyphenClass, phoneticClass uint32, flags AnnotationFlags) ([]rune, error) {
	out := append([]rune(nil), stem...)
	apply := func(table []Annotation, classID uint32) error {
		if int(classID) >= len(table) {
			return fmt.Errorf("lexicon: annotation class %d out of range", classID)
		}
		ann := table[classID]
		// Apply from the end so earlier insertions don't shift later offsets.
		for i := len(ann.Positions) - 1; i >= 0; i-- {
			pos := ann.Positions[i]
			if pos < 0 || pos > len(out) {
				continue
			}
			marked := make([]rune, 0, len(out)+1)
			marked = append(marked, out[:pos]...)
			marked = append(marked, ann.Markers[i])
			marked = append(marked, out[pos:]...)
			out = marked
		}
		return nil
	}
	if flags.Hyphenation {
		if err := apply(l.HyphenAnnotations, hyphenClass); err != nil {
			return nil, err
		}
	}
	if flags.Phonetic {
		if err := apply(l.PhoneticAnnotations, phoneticClass); err != nil {
			return nil, err
		}
	}
	return out, nil
}
