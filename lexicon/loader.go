package lexicon

import "fmt"

// load parses header + every region out of buf, the mmap'd dictionary
// file, in one pass. It never partially commits: on any error it
// returns nil, error and the caller discards the partial Lexicon (Open
// unmaps the file itself).
func load(buf []byte) (*Lexicon, error) {
	h, err := readHeader(buf)
	if err != nil {
		return nil, err
	}

	l := &Lexicon{header: h}

	if l.PosClasses, err = loadStrings(buf, h.PosClassOffset, h.PosClassCount); err != nil {
		return nil, fmt.Errorf("lexicon: pos-classes: %w", err)
	}
	if l.Endings, err = loadStrings(buf, h.EndingsOffset, h.EndingsCount); err != nil {
		return nil, fmt.Errorf("lexicon: endings: %w", err)
	}
	if l.Forms, err = loadStrings(buf, h.FormsOffset, h.FormsCount); err != nil {
		return nil, fmt.Errorf("lexicon: forms: %w", err)
	}
	if l.EndGroups, err = loadEndGroups(buf, h); err != nil {
		return nil, fmt.Errorf("lexicon: ending-groups: %w", err)
	}
	if l.FormGroups, err = loadFormGroups(buf, h); err != nil {
		return nil, fmt.Errorf("lexicon: form-groups: %w", err)
	}
	if l.Suffixes, err = loadSuffixes(buf, h); err != nil {
		return nil, fmt.Errorf("lexicon: suffixes: %w", err)
	}
	if l.Prefixes, err = loadPrefixes(buf, h); err != nil {
		return nil, fmt.Errorf("lexicon: prefixes: %w", err)
	}
	if l.ClosedClasses, err = loadClosedClasses(buf, h); err != nil {
		return nil, fmt.Errorf("lexicon: closed-classes: %w", err)
	}
	if l.Paradigms, err = loadParadigms(buf, h); err != nil {
		return nil, fmt.Errorf("lexicon: paradigm table: %w", err)
	}
	if l.HyphenAnnotations, l.PhoneticAnnotations, err = loadAnnotations(buf, h); err != nil {
		return nil, fmt.Errorf("lexicon: annotations: %w", err)
	}
	if l.directory, err = loadDirectory(buf, h); err != nil {
		return nil, fmt.Errorf("lexicon: directory: %w", err)
	}

	cache, err := newBlockCache(buf, h.StemsOffset, h.BlockSize)
	if err != nil {
		return nil, fmt.Errorf("lexicon: block cache: %w", err)
	}
	l.cache = cache

	if err := l.validate(); err != nil {
		return nil, err
	}
	return l, nil
}

// loadStrings reads count counted-strings starting at offset. Used for
// the ending pool, form pool and POS-class pool, all of which share the
// same "u32 length + wide chars" shape.
func loadStrings(buf []byte, offset, count int64) ([]string, error) {
	r := newReader(buf)
	if err := r.Seek(offset); err != nil {
		return nil, err
	}
	out := make([]string, count)
	for i := range out {
		s, err := r.ReadCountedString(false)
		if err != nil {
			return nil, err
		}
		out[i] = s
	}
	return out, nil
}

func loadEndGroups(buf []byte, h Header) ([][]EndGroupRow, error) {
	r := newReader(buf)
	if err := r.Seek(h.EndGroupsOffset); err != nil {
		return nil, err
	}
	groups := make([][]EndGroupRow, h.EndGroupsCount)
	for i := range groups {
		n, err := r.ReadU32()
		if err != nil {
			return nil, err
		}
		rows := make([]EndGroupRow, n)
		for j := range rows {
			endingID, err := r.ReadU32()
			if err != nil {
				return nil, err
			}
			nforms, err := r.ReadU8()
			if err != nil {
				return nil, err
			}
			forms := make([]uint32, nforms)
			for k := range forms {
				fid, err := r.ReadU32()
				if err != nil {
					return nil, err
				}
				forms[k] = fid
			}
			rows[j] = EndGroupRow{EndingID: endingID, FormIDs: forms}
		}
		groups[i] = rows
	}
	return groups, nil
}

func loadFormGroups(buf []byte, h Header) (map[byte][]uint32, error) {
	r := newReader(buf)
	if err := r.Seek(h.FormGroupsOffset); err != nil {
		return nil, err
	}
	out := make(map[byte][]uint32, h.FormGroupsCount)
	for i := int64(0); i < h.FormGroupsCount; i++ {
		posChar, err := r.ReadU8()
		if err != nil {
			return nil, err
		}
		n, err := r.ReadU32()
		if err != nil {
			return nil, err
		}
		ids := make([]uint32, n)
		for j := range ids {
			id, err := r.ReadU32()
			if err != nil {
				return nil, err
			}
			ids[j] = id
		}
		out[posChar] = ids
	}
	return out, nil
}

func decodeStemInfo(r *reader, twoByteClassID bool) (StemInfo, error) {
	var si StemInfo
	endGroupID, err := r.ReadU32()
	if err != nil {
		return si, err
	}
	paradigmID, err := r.ReadU32()
	if err != nil {
		return si, err
	}
	paradigmIdx, err := r.ReadU32()
	if err != nil {
		return si, err
	}
	hyphen, err := r.ReadU32()
	if err != nil {
		return si, err
	}
	phon, err := r.ReadU32()
	if err != nil {
		return si, err
	}
	si.EndGroupID = endGroupID
	si.Paradigm = StemSlot{ParadigmID: paradigmID, Index: paradigmIdx}
	si.HyphenClass = hyphen
	si.PhoneticClass = phon
	return si, nil
}

// loadSuffixes reads the suffix table, decoding the packed per-suffix
// stem-info array field-by-field, not by memcpy, since the runtime
// record is wider than the on-disk one. Both the one-byte and two-byte
// stem-class-id encodings are tolerated.
func loadSuffixes(buf []byte, h Header) ([]SuffixEntry, error) {
	r := newReader(buf)
	if err := r.Seek(h.SuffixesOffset); err != nil {
		return nil, err
	}
	out := make([]SuffixEntry, h.SuffixesCount)
	for i := range out {
		suffixLen, err := r.ReadU32()
		if err != nil {
			return nil, err
		}
		suffix, err := r.ReadRunes(int(suffixLen))
		if err != nil {
			return nil, err
		}
		reducedEndingID, err := r.ReadU32()
		if err != nil {
			return nil, err
		}
		attachable, err := r.ReadCountedString(false)
		if err != nil {
			return nil, err
		}
		required, err := r.ReadCountedString(false)
		if err != nil {
			return nil, err
		}
		charsBelong, err := r.ReadU8()
		if err != nil {
			return nil, err
		}
		twoByteFlag, err := r.ReadU8()
		if err != nil {
			return nil, err
		}
		numStemInfo, err := r.ReadU8()
		if err != nil {
			return nil, err
		}
		stems := make([]StemInfo, numStemInfo)
		for j := range stems {
			si, err := decodeStemInfo(r, twoByteFlag != 0)
			if err != nil {
				return nil, err
			}
			stems[j] = si
		}
		out[i] = SuffixEntry{
			Suffix:                suffix,
			ReducedEndingID:       reducedEndingID,
			AttachableStemClasses: attachable,
			RequiredStemEndClass:  required,
			CharsBelongToStem:     int(charsBelong),
			Stems:                 stems,
			TwoByteClassID:        twoByteFlag != 0,
		}
	}
	return out, nil
}

func loadPrefixes(buf []byte, h Header) ([]PrefixEntry, error) {
	r := newReader(buf)
	if err := r.Seek(h.PrefixesOffset); err != nil {
		return nil, err
	}
	out := make([]PrefixEntry, h.PrefixesCount)
	for i := range out {
		prefixLen, err := r.ReadU32()
		if err != nil {
			return nil, err
		}
		prefix, err := r.ReadRunes(int(prefixLen))
		if err != nil {
			return nil, err
		}
		attachable, err := r.ReadCountedString(false)
		if err != nil {
			return nil, err
		}
		hyphen, err := r.ReadU32()
		if err != nil {
			return nil, err
		}
		phon, err := r.ReadU32()
		if err != nil {
			return nil, err
		}
		out[i] = PrefixEntry{Prefix: prefix, AttachablePOS: attachable, HyphenClass: hyphen, PhoneticClass: phon}
	}
	return out, nil
}

// loadClosedClasses reads the fixed-size array of sorted string sets
// (abbreviations, cardinals, Roman numerals, ...). Each set is stored
// pre-sorted by the tool that built the dictionary; the loader trusts
// that order rather than re-sorting.
func loadClosedClasses(buf []byte, h Header) ([][]string, error) {
	r := newReader(buf)
	if err := r.Seek(h.ClosedClassOffset); err != nil {
		return nil, err
	}
	sets := make([][]string, h.ClosedClassSetCount)
	for i := range sets {
		n, err := r.ReadU32()
		if err != nil {
			return nil, err
		}
		set := make([]string, n)
		for j := range set {
			s, err := r.ReadCountedString(false)
			if err != nil {
				return nil, err
			}
			set[j] = s
		}
		sets[i] = set
	}
	return sets, nil
}

func loadParadigms(buf []byte, h Header) ([]Paradigm, error) {
	r := newReader(buf)
	if err := r.Seek(h.ParadigmOffset); err != nil {
		return nil, err
	}
	out := make([]Paradigm, h.ParadigmCount)
	for i := range out {
		posClassID, err := r.ReadU32()
		if err != nil {
			return nil, err
		}
		numRows, err := r.ReadU8()
		if err != nil {
			return nil, err
		}
		rows := make([]ParadigmRow, numRows)
		for j := range rows {
			endGroupID, err := r.ReadU32()
			if err != nil {
				return nil, err
			}
			replaceLen, err := r.ReadU8()
			if err != nil {
				return nil, err
			}
			deltaLen, err := r.ReadU8()
			if err != nil {
				return nil, err
			}
			delta, err := r.ReadRunes(int(deltaLen))
			if err != nil {
				return nil, err
			}
			rows[j] = ParadigmRow{EndGroupID: endGroupID, ReplaceLen: int(replaceLen), StemDelta: delta}
		}
		out[i] = Paradigm{PosClassID: posClassID, Rows: rows}
	}
	return out, nil
}

func loadAnnotations(buf []byte, h Header) ([]Annotation, []Annotation, error) {
	r := newReader(buf)
	if err := r.Seek(h.AnnotationOffset); err != nil {
		return nil, nil, err
	}
	// Layout: hyphenation annotations first, then phonetic annotations,
	// each a u32 count of entries, each entry a u8 pair-count followed
	// by (u16 position, u16 marker) pairs.
	readSet := func() ([]Annotation, error) {
		n, err := r.ReadU32()
		if err != nil {
			return nil, err
		}
		out := make([]Annotation, n)
		for i := range out {
			pairs, err := r.ReadU8()
			if err != nil {
				return nil, err
			}
			positions := make([]int, pairs)
			markers := make([]rune, pairs)
			for j := 0; j < int(pairs); j++ {
				pos, err := r.ReadU16()
				if err != nil {
					return nil, err
				}
				marker, err := r.ReadU16()
				if err != nil {
					return nil, err
				}
				positions[j] = int(pos)
				markers[j] = rune(marker)
			}
			out[i] = Annotation{Positions: positions, Markers: markers}
		}
		return out, nil
	}
	hyphen, err := readSet()
	if err != nil {
		return nil, nil, err
	}
	phonetic, err := readSet()
	if err != nil {
		return nil, nil, err
	}
	return hyphen, phonetic, nil
}

// loadDirectory reads the binary-search directory: h.DirectoryCount
// (key_length:u8, key_offset:u16) entries (the count comes from the
// header, not the stream), then the key pool. The pool runs from the
// current position to h.StemsOffset.
func loadDirectory(buf []byte, h Header) ([]DirEntry, error) {
	r := newReader(buf)
	if err := r.Seek(h.DirectoryOffset); err != nil {
		return nil, err
	}
	type raw struct {
		keyLen int
		keyOff int
		block  int
	}
	entries := make([]raw, h.DirectoryCount)
	for i := range entries {
		keyLen, err := r.ReadU8()
		if err != nil {
			return nil, err
		}
		keyOff, err := r.ReadU16()
		if err != nil {
			return nil, err
		}
		entries[i] = raw{keyLen: int(keyLen), keyOff: int(keyOff), block: i}
	}

	poolStart := int64(r.pos)
	poolEnd := h.StemsOffset
	if poolEnd < poolStart {
		return nil, fmt.Errorf("lexicon: dictionary corrupt: directory key pool overruns stems region")
	}
	poolRunes, err := newReader(buf[poolStart:poolEnd]).ReadRunes(int(poolEnd-poolStart) / 2)
	if err != nil {
		return nil, err
	}

	out := make([]DirEntry, len(entries))
	for i, e := range entries {
		if e.keyOff+e.keyLen > len(poolRunes) {
			return nil, fmt.Errorf("lexicon: dictionary corrupt: directory key out of range")
		}
		out[i] = DirEntry{Key: poolRunes[e.keyOff : e.keyOff+e.keyLen], BlockID: e.block}
	}
	return out, nil
}

// validate checks that every paradigm's pos-class id is in range. It
// does not check stem-info paradigm slots or homonym counts.
func (l *Lexicon) validate() error {
	for pid, p := range l.Paradigms {
		if int(p.PosClassID) >= len(l.PosClasses) {
			return fmt.Errorf("lexicon: dictionary corrupt: paradigm %d references out-of-range pos-class %d", pid, p.PosClassID)
		}
	}
	return nil
}
