package lexicon

import "fmt"

// magic is the signature stored in the first 4 bytes of the dictionary
// file; a mismatch means the file isn't one of ours or is corrupt.
const magic = "ETM1"

// readHeader parses the fixed-layout header at the start of buf. All
// offsets in the returned Header are absolute byte offsets into buf.
func readHeader(buf []byte) (Header, error) {
	var h Header
	r := newReader(buf)

	if len(buf) < len(magic) {
		return h, fmt.Errorf("%w: file too small for header", ErrShortRead)
	}
	if string(buf[:len(magic)]) != magic {
		return h, fmt.Errorf("lexicon: bad magic %q, dictionary corrupt", buf[:len(magic)])
	}
	r.pos = len(magic)

	fields := []*int64{
		&h.BlockSize,
		&h.EndingsOffset, &h.EndingsCount,
		&h.EndGroupsOffset, &h.EndGroupsCount,
		&h.FormsOffset, &h.FormsCount,
		&h.FormGroupsOffset, &h.FormGroupsCount,
		&h.SuffixesOffset, &h.SuffixesCount,
		&h.SuffixInfoOffset, &h.SuffixInfoCount,
		&h.PrefixesOffset, &h.PrefixesCount,
		&h.PrefixInfoOffset, &h.PrefixInfoCount,
		&h.PosClassOffset, &h.PosClassCount,
		&h.ClosedClassOffset, &h.ClosedClassSetCount,
		&h.ParadigmOffset, &h.ParadigmCount,
		&h.AnnotationOffset, &h.AnnotationCount,
		&h.DirectoryOffset, &h.DirectoryCount,
		&h.StemsOffset, &h.StemsBlockCount,
	}
	for _, f := range fields {
		v, err := r.ReadU32()
		if err != nil {
			return h, fmt.Errorf("lexicon: reading header: %w", err)
		}
		*f = int64(v)
	}

	if h.BlockSize <= 0 {
		return h, fmt.Errorf("lexicon: dictionary corrupt: non-positive block size %d", h.BlockSize)
	}
	for name, off := range map[string]int64{
		"endings": h.EndingsOffset, "endgroups": h.EndGroupsOffset, "forms": h.FormsOffset,
		"formgroups": h.FormGroupsOffset, "suffixes": h.SuffixesOffset, "suffixinfo": h.SuffixInfoOffset,
		"prefixes": h.PrefixesOffset, "prefixinfo": h.PrefixInfoOffset, "posclass": h.PosClassOffset,
		"closedclass": h.ClosedClassOffset, "paradigm": h.ParadigmOffset, "annotation": h.AnnotationOffset,
		"directory": h.DirectoryOffset, "stems": h.StemsOffset,
	} {
		if off < 0 || int(off) > len(buf) {
			return h, fmt.Errorf("lexicon: dictionary corrupt: %s offset %d out of range", name, off)
		}
	}
	return h, nil
}
