package lexicon_test

import "testing"

func TestFormGroupsExpansion(t *testing.T) {
	// FormGroups backs the synthesiser's "*" form-set expansion; this
	// only exercises that the loader wired the map correctly.
	want := []uint32{0, 1, 2, 3}
	got := lex.FormGroups['S']
	if len(got) != len(want) {
		t.Fatalf("FormGroups['S'] = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("FormGroups['S'] = %v, want %v", got, want)
		}
	}
}

func TestClosedClassesPreservesOrder(t *testing.T) {
	if len(lex.ClosedClasses) != 1 {
		t.Fatalf("ClosedClasses has %d sets, want 1", len(lex.ClosedClasses))
	}
	want := []string{"I", "II", "III"}
	got := lex.ClosedClasses[0]
	if len(got) != len(want) {
		t.Fatalf("ClosedClasses[0] = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("ClosedClasses[0][%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestSuffixTableEntry(t *testing.T) {
	if len(lex.Suffixes) != 1 {
		t.Fatalf("Suffixes has %d entries, want 1", len(lex.Suffixes))
	}
	s := lex.Suffixes[0]
	if string(s.Suffix) != "line" {
		t.Errorf("Suffixes[0].Suffix = %q, want %q", string(s.Suffix), "line")
	}
	if len(s.Stems) != 1 || s.Stems[0].Paradigm.ParadigmID != 6 {
		t.Errorf("Suffixes[0].Stems = %+v, want one entry pointing at paradigm 6", s.Stems)
	}
}

func TestPrefixTableEntry(t *testing.T) {
	if len(lex.Prefixes) != 1 {
		t.Fatalf("Prefixes has %d entries, want 1", len(lex.Prefixes))
	}
	if string(lex.Prefixes[0].Prefix) != "eba" {
		t.Errorf("Prefixes[0].Prefix = %q, want %q", string(lex.Prefixes[0].Prefix), "eba")
	}
}

func TestParadigmRowsMatchPosClassLength(t *testing.T) {
	for id, p := range lex.Paradigms {
		posClass, err := lex.PosClassString(p.PosClassID)
		if err != nil {
			t.Fatalf("PosClassString(%d): %v", p.PosClassID, err)
		}
		if len(p.Rows) != len(posClass) {
			t.Errorf("paradigm %d has %d rows but pos-class %q has length %d", id, len(p.Rows), posClass, len(posClass))
		}
	}
}
