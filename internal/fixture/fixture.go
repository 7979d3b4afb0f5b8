// Package fixture builds a tiny, hand-specified dictionary in the
// on-disk format lexicon.Open expects. There is no redistributable
// Estonian lexicon available for tests, so they exercise the real
// loader and stem-search/paradigm machinery against a small dictionary
// built here instead of against a mocked Lexicon.
//
// The fixture models a handful of paradigms: a regular noun ("maja",
// house), a noun/verb homonym pair built around the surface form
// "kanna" (genitive of "kand" vs. imperative of "kandma"), two bare
// compound parts ("raud", "tee") whose concatenation "raudtee" is not
// itself stored, and one dictionary word ("sõna") used to exercise
// compound guessing from the right.
package fixture

import (
	"bytes"
	"encoding/binary"
	"os"
)

// Word ids, kept as constants so tests can refer to them without
// repeating magic strings.
const (
	WordMaja    = "maja"
	WordRaud    = "raud"
	WordTee     = "tee"
	WordSona    = "sõna"
	WordKann    = "kann"  // stored stem: genitive reading of "kand"
	WordKanna   = "kanna" // stored stem: imperative reading of "kandma"
	LemmaKand   = "kand"
	LemmaKandma = "kandma"
)

type builder struct {
	buf bytes.Buffer
}

func (b *builder) u8(v uint8)   { b.buf.WriteByte(v) }
func (b *builder) u16(v uint16) { _ = binary.Write(&b.buf, binary.LittleEndian, v) }
func (b *builder) u32(v uint32) { _ = binary.Write(&b.buf, binary.LittleEndian, v) }

func (b *builder) runes(s string) {
	for _, r := range s {
		b.u16(uint16(r))
	}
}

func (b *builder) countedString(s string) {
	b.u32(uint32(len([]rune(s))))
	b.runes(s)
}

func (b *builder) bytes() []byte { return append([]byte(nil), b.buf.Bytes()...) }

type stemInfo struct {
	endGroup, paradigm, paradigmIdx, hyphen, phonetic uint32
}

func (b *builder) stemInfo(si stemInfo) {
	b.u32(si.endGroup)
	b.u32(si.paradigm)
	b.u32(si.paradigmIdx)
	b.u32(si.hyphen)
	b.u32(si.phonetic)
}

type endGroupRow struct {
	endingID uint32
	formIDs  []uint32
}

// endGroups writes each group's rows back to back; the number of
// groups is conveyed by the header's EndGroupsCount, not an in-stream
// count (lexicon.loadEndGroups sizes its slice from the header first).
func (b *builder) endGroups(groups [][]endGroupRow) {
	for _, rows := range groups {
		b.u32(uint32(len(rows)))
		for _, row := range rows {
			b.u32(row.endingID)
			b.u8(uint8(len(row.formIDs)))
			for _, f := range row.formIDs {
				b.u32(f)
			}
		}
	}
}

// formGroups writes one (posChar, formIDs) entry per element of order;
// the entry count comes from the header's FormGroupsCount.
func (b *builder) formGroups(groups map[byte][]uint32, order []byte) {
	for _, pos := range order {
		b.u8(pos)
		ids := groups[pos]
		b.u32(uint32(len(ids)))
		for _, id := range ids {
			b.u32(id)
		}
	}
}

type paradigmRow struct {
	endGroup   uint32
	replaceLen uint8
	delta      string
}

type paradigm struct {
	posClassID uint32
	rows       []paradigmRow
}

// paradigms writes one entry per element of ps; the count comes from
// the header's ParadigmCount.
func (b *builder) paradigms(ps []paradigm) {
	for _, p := range ps {
		b.u32(p.posClassID)
		b.u8(uint8(len(p.rows)))
		for _, row := range p.rows {
			b.u32(row.endGroup)
			b.u8(row.replaceLen)
			b.u8(uint8(len([]rune(row.delta))))
			b.runes(row.delta)
		}
	}
}

type suffixEntry struct {
	suffix            string
	reducedEndingID   uint32
	attachableClasses string
	requiredEndClass  string
	charsBelongToStem uint8
	twoByteFlag       uint8
	stems             []stemInfo
}

// suffixes writes one entry per element of entries; the count comes
// from the header's SuffixesCount.
func (b *builder) suffixes(entries []suffixEntry) {
	for _, e := range entries {
		b.u32(uint32(len([]rune(e.suffix))))
		b.runes(e.suffix)
		b.u32(e.reducedEndingID)
		b.countedString(e.attachableClasses)
		b.countedString(e.requiredEndClass)
		b.u8(e.charsBelongToStem)
		b.u8(e.twoByteFlag)
		b.u8(uint8(len(e.stems)))
		for _, si := range e.stems {
			b.stemInfo(si)
		}
	}
}

type prefixEntry struct {
	prefix        string
	attachablePOS string
	hyphen        uint32
	phonetic      uint32
}

// prefixes writes one entry per element of entries; the count comes
// from the header's PrefixesCount.
func (b *builder) prefixes(entries []prefixEntry) {
	for _, e := range entries {
		b.u32(uint32(len([]rune(e.prefix))))
		b.runes(e.prefix)
		b.countedString(e.attachablePOS)
		b.u32(e.hyphen)
		b.u32(e.phonetic)
	}
}

// closedClasses writes one set per element of sets; the set count
// comes from the header's ClosedClassSetCount.
func (b *builder) closedClasses(sets [][]string) {
	for _, set := range sets {
		b.u32(uint32(len(set)))
		for _, s := range set {
			b.countedString(s)
		}
	}
}

type annotation struct {
	positions []uint16
	markers   []uint16
}

func (b *builder) annotationSet(set []annotation) {
	b.u32(uint32(len(set)))
	for _, a := range set {
		b.u8(uint8(len(a.positions)))
		for i := range a.positions {
			b.u16(a.positions[i])
			b.u16(a.markers[i])
		}
	}
}

// stemRecord is one delta-encoded entry in the stem block.
type stemRecord struct {
	stem       string // full reconstructed stem (builder computes the delta)
	posClassID uint32
	homonyms   []stemInfo
}

// Dictionary describes the byte layout the tests build; Build()
// renders it into a byte buffer in lexicon's on-disk format.
type Dictionary struct {
	PosClasses    []string
	Endings       []string
	Forms         []string
	EndGroups     [][]endGroupRow
	FormGroupPOS  []byte
	FormGroups    map[byte][]uint32
	Suffixes      []suffixEntry
	Prefixes      []prefixEntry
	ClosedClasses [][]string
	Paradigms     []paradigm
	HyphenAnn     []annotation
	PhoneticAnn   []annotation
	// Stems must already be in final lexicographic (rune codepoint)
	// order; Build() delta-encodes them against each other.
	Stems []stemRecord
}

// Small builds the dictionary described in the package doc comment.
func Small() Dictionary {
	return Dictionary{
		PosClasses: []string{"S", "V", "SS", "VV", "A"},
		Endings:    []string{"", "a", "de", "sid", "ma"},
		Forms:      []string{"sg n", "sg g", "pl g", "pl p", "ma", "imper"},
		EndGroups: [][]endGroupRow{
			0: {{endingID: 0, formIDs: []uint32{0}}, {endingID: 2, formIDs: []uint32{2}}, {endingID: 3, formIDs: []uint32{3}}}, // EG_MAJA
			1: {{endingID: 0, formIDs: []uint32{0}}},                                                                          // EG_SIMPLE_NOUN
			2: {{endingID: 0, formIDs: []uint32{0}}},                                                                          // EG_KAND_NOM
			3: {{endingID: 1, formIDs: []uint32{1}}},                                                                         // EG_KANN_GEN
			4: {{endingID: 4, formIDs: []uint32{4}}},                                                                         // EG_KANDMA_INF
			5: {{endingID: 0, formIDs: []uint32{5}}},                                                                         // EG_KANNA_IMP
		},
		FormGroupPOS: []byte{'S', 'V', 'A'},
		FormGroups: map[byte][]uint32{
			'S': {0, 1, 2, 3},
			'V': {4, 5},
			'A': {0},
		},
		Suffixes: []suffixEntry{
			{
				suffix: "line", reducedEndingID: 0, attachableClasses: "S", requiredEndClass: "S",
				charsBelongToStem: 0, twoByteFlag: 0,
				stems: []stemInfo{{endGroup: 1, paradigm: 6, paradigmIdx: 0}},
			},
		},
		Prefixes: []prefixEntry{
			{prefix: "eba", attachablePOS: "S"},
		},
		ClosedClasses: [][]string{{"I", "II", "III"}},
		Paradigms: []paradigm{
			0: {posClassID: 2, rows: []paradigmRow{{endGroup: 2, replaceLen: 2, delta: "nd"}, {endGroup: 3, replaceLen: 2, delta: "nn"}}},   // P_KAND
			1: {posClassID: 3, rows: []paradigmRow{{endGroup: 4, replaceLen: 4, delta: "ndma"}, {endGroup: 5, replaceLen: 3, delta: "nna"}}}, // P_KANDMA
			2: {posClassID: 0, rows: []paradigmRow{{endGroup: 0, replaceLen: 0, delta: ""}}},                                                // P_MAJA
			3: {posClassID: 0, rows: []paradigmRow{{endGroup: 1, replaceLen: 0, delta: ""}}},                                                // P_RAUD
			4: {posClassID: 0, rows: []paradigmRow{{endGroup: 1, replaceLen: 0, delta: ""}}},                                                // P_SONA
			5: {posClassID: 0, rows: []paradigmRow{{endGroup: 1, replaceLen: 0, delta: ""}}},                                                // P_TEE
			6: {posClassID: 4, rows: []paradigmRow{{endGroup: 1, replaceLen: 0, delta: ""}}},                                                // P_GUESS_LINE
		},
		HyphenAnn:   []annotation{{}},
		PhoneticAnn: []annotation{{}},
		Stems: []stemRecord{
			{stem: WordKann, posClassID: 0, homonyms: []stemInfo{{endGroup: 3, paradigm: 0, paradigmIdx: 1}}},
			{stem: WordKanna, posClassID: 1, homonyms: []stemInfo{{endGroup: 5, paradigm: 1, paradigmIdx: 1}}},
			{stem: WordMaja, posClassID: 0, homonyms: []stemInfo{{endGroup: 0, paradigm: 2, paradigmIdx: 0}}},
			{stem: WordRaud, posClassID: 0, homonyms: []stemInfo{{endGroup: 1, paradigm: 3, paradigmIdx: 0}}},
			{stem: WordSona, posClassID: 0, homonyms: []stemInfo{{endGroup: 1, paradigm: 4, paradigmIdx: 0}}},
			{stem: WordTee, posClassID: 0, homonyms: []stemInfo{{endGroup: 1, paradigm: 5, paradigmIdx: 0}}},
		},
	}
}

const sentinel = uint16(0xFFFF)

// buildStemBlock delta-encodes d.Stems (already in final sorted order)
// into a single block, exactly as lexicon.walkBlock expects to read it.
func buildStemBlock(stems []stemRecord) []byte {
	b := &builder{}
	var prev []rune
	for _, s := range stems {
		cur := []rune(s.stem)
		common := 0
		for common < len(cur) && common < len(prev) && cur[common] == prev[common] {
			common++
		}
		extra := cur[common:]
		b.u16(uint16(common))
		b.u16(uint16(len(extra)))
		b.u32(s.posClassID)
		for _, r := range extra {
			b.u16(uint16(r))
		}
		for _, si := range s.homonyms {
			b.stemInfo(si)
		}
		prev = cur
	}
	b.u16(sentinel)
	return b.bytes()
}

// Build renders d into the on-disk dictionary byte format.
func Build(d Dictionary) []byte {
	posClasses := &builder{}
	for _, s := range d.PosClasses {
		posClasses.countedString(s)
	}
	endings := &builder{}
	for _, s := range d.Endings {
		endings.countedString(s)
	}
	forms := &builder{}
	for _, s := range d.Forms {
		forms.countedString(s)
	}
	endGroups := &builder{}
	endGroups.endGroups(d.EndGroups)
	formGroups := &builder{}
	formGroups.formGroups(d.FormGroups, d.FormGroupPOS)
	suffixes := &builder{}
	suffixes.suffixes(d.Suffixes)
	prefixes := &builder{}
	prefixes.prefixes(d.Prefixes)
	closedClasses := &builder{}
	closedClasses.closedClasses(d.ClosedClasses)
	paradigms := &builder{}
	paradigms.paradigms(d.Paradigms)
	annotations := &builder{}
	annotations.annotationSet(d.HyphenAnn)
	annotations.annotationSet(d.PhoneticAnn)

	block := buildStemBlock(d.Stems)

	// Directory: a single catch-all entry (0-length key) pointing at
	// block 0, since this fixture has exactly one block.
	dir := &builder{}
	dir.u8(0)  // key length
	dir.u16(0) // key offset
	// no key pool bytes follow (0-length key)

	const headerFieldCount = 29
	headerSize := int64(4 + headerFieldCount*4)

	offsets := map[string]int64{}
	pos := headerSize
	place := func(name string, region *builder) {
		offsets[name] = pos
		pos += int64(region.buf.Len())
	}
	place("posclass", posClasses)
	place("endings", endings)
	place("forms", forms)
	place("endgroups", endGroups)
	place("formgroups", formGroups)
	place("suffixes", suffixes)
	place("prefixes", prefixes)
	place("closedclass", closedClasses)
	place("paradigm", paradigms)
	place("annotation", annotations)
	place("directory", dir)
	stemsOffset := pos

	out := &bytes.Buffer{}
	out.WriteString(magic())
	writeU32 := func(v int64) { _ = binary.Write(out, binary.LittleEndian, uint32(v)) }
	writeU32(int64(len(block))) // block size == the only block's length
	writeU32(offsets["endings"])
	writeU32(int64(len(d.Endings)))
	writeU32(offsets["endgroups"])
	writeU32(int64(len(d.EndGroups)))
	writeU32(offsets["forms"])
	writeU32(int64(len(d.Forms)))
	writeU32(offsets["formgroups"])
	writeU32(int64(len(d.FormGroupPOS)))
	writeU32(offsets["suffixes"])
	writeU32(int64(len(d.Suffixes)))
	writeU32(offsets["suffixes"]) // suffixinfo is embedded in suffixes, see lexicon.loadSuffixes
	writeU32(int64(len(d.Suffixes)))
	writeU32(offsets["prefixes"])
	writeU32(int64(len(d.Prefixes)))
	writeU32(offsets["prefixes"]) // prefixinfo likewise embedded
	writeU32(int64(len(d.Prefixes)))
	writeU32(offsets["posclass"])
	writeU32(int64(len(d.PosClasses)))
	writeU32(offsets["closedclass"])
	writeU32(int64(len(d.ClosedClasses)))
	writeU32(offsets["paradigm"])
	writeU32(int64(len(d.Paradigms)))
	writeU32(offsets["annotation"])
	writeU32(2) // two annotation sets (hyphenation, phonetic)
	writeU32(offsets["directory"])
	writeU32(1) // one directory entry
	writeU32(stemsOffset)
	writeU32(1) // one stem block

	out.Write(posClasses.buf.Bytes())
	out.Write(endings.buf.Bytes())
	out.Write(forms.buf.Bytes())
	out.Write(endGroups.buf.Bytes())
	out.Write(formGroups.buf.Bytes())
	out.Write(suffixes.buf.Bytes())
	out.Write(prefixes.buf.Bytes())
	out.Write(closedClasses.buf.Bytes())
	out.Write(paradigms.buf.Bytes())
	out.Write(annotations.buf.Bytes())
	out.Write(dir.buf.Bytes())
	out.Write(block)

	return out.Bytes()
}

func magic() string { return "ETM1" }

// WriteTemp writes Build(d) to a new temporary file and returns its
// path; the caller is responsible for removing it.
func WriteTemp(d Dictionary) (string, error) {
	f, err := os.CreateTemp("", "etmorph-fixture-*.dict")
	if err != nil {
		return "", err
	}
	defer f.Close()
	if _, err := f.Write(Build(d)); err != nil {
		return "", err
	}
	return f.Name(), nil
}
