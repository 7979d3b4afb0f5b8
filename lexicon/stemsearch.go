package lexicon

import "fmt"

// StemSearch locates stem s in the compressed block structure: a
// binary-search directory followed by a linear walk of delta-encoded
// stem prefixes within one block.
func (l *Lexicon) StemSearch(s []rune) (StemResult, error) {
	if len(s) == 0 {
		return StemResult{Kind: NotAnywhere}, nil
	}

	blockID, ok := l.directoryBlock(s)
	if !ok {
		return StemResult{Kind: NotAnywhere}, nil
	}

	block, err := l.cache.Read(blockID)
	if err != nil {
		return StemResult{}, fmt.Errorf("lexicon: reading block %d: %w", blockID, err)
	}

	return l.walkBlock(block, s)
}

// directoryBlock binary-searches the directory for the entry whose key
// shares the longest prefix with s. We compute this as the floor entry
// (the largest directory key <= s); if s sorts before every directory
// key there is no block to search.
func (l *Lexicon) directoryBlock(s []rune) (int, bool) {
	dir := l.directory
	lo, hi := 0, len(dir)
	for lo < hi {
		mid := (lo + hi) / 2
		if compareRunes(dir[mid].Key, s) <= 0 {
			lo = mid + 1
		} else {
			hi = mid
		}
	}
	floor := lo - 1
	if floor < 0 {
		return 0, false
	}
	return dir[floor].BlockID, true
}

// compareRunes compares a and b lexicographically as unsigned character
// codes.
func compareRunes(a, b []rune) int {
	for i := 0; i < len(a) && i < len(b); i++ {
		if a[i] != b[i] {
			if a[i] < b[i] {
				return -1
			}
			return 1
		}
	}
	switch {
	case len(a) < len(b):
		return -1
	case len(a) > len(b):
		return 1
	default:
		return 0
	}
}

func commonPrefixLen(a, b []rune) int {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	i := 0
	for i < n && a[i] == b[i] {
		i++
	}
	return i
}

// walkBlock decodes prefix-delta records until the stem is found,
// diverges, or the sentinel is hit. Each record's common_prefix_len is
// relative to the *previous* reconstructed stem, not to the query s, so
// the walk reconstructs the full stem for each record and compares
// that against s directly, rather than trying to track
// characters-matched-against-s incrementally.
func (l *Lexicon) walkBlock(block []byte, s []rune) (StemResult, error) {
	r := newReader(block)
	var prev []rune
	// sawPrefix records whether some earlier record's stem was itself a
	// strict prefix of s; if so, a longer dictionary entry for s could
	// plausibly have existed, so a later divergence is NotHere rather
	// than NotAnywhere.
	sawPrefix := false

	for {
		commonLen, err := r.ReadU16()
		if err != nil {
			return StemResult{}, err
		}
		if commonLen == sentinelWChar {
			if sawPrefix {
				return StemResult{Kind: NotHere}, nil
			}
			return StemResult{Kind: NotAnywhere}, nil
		}
		if int(commonLen) > len(prev) {
			return StemResult{}, fmt.Errorf("lexicon: dictionary corrupt: common-prefix length exceeds previous stem")
		}
		extraLen, err := r.ReadU16()
		if err != nil {
			return StemResult{}, err
		}
		posClassID, err := r.ReadU32()
		if err != nil {
			return StemResult{}, err
		}
		extra, err := r.ReadRunes(int(extraLen))
		if err != nil {
			return StemResult{}, err
		}

		posClass, err := l.PosClassString(posClassID)
		if err != nil {
			return StemResult{}, err
		}
		homonymCount := len(posClass)
		homonyms := make([]StemInfo, homonymCount)
		for i := range homonyms {
			si, err := decodeStemInfo(r, false)
			if err != nil {
				return StemResult{}, err
			}
			homonyms[i] = si
		}

		cur := append(append(make([]rune, 0, int(commonLen)+len(extra)), prev[:commonLen]...), extra...)

		switch cmp := compareRunes(cur, s); {
		case cmp == 0:
			return StemResult{Kind: Hit, PosClassID: posClassID, Homonyms: homonyms}, nil
		case cmp > 0:
			// Every later record sorts after cur, so no exact match
			// remains. If s is a strict prefix of cur, a longer stem
			// sharing it exists; otherwise fall back to whatever an
			// earlier record already told us about s's prospects.
			if len(s) < len(cur) && commonPrefixLen(cur, s) == len(s) {
				return StemResult{Kind: NotHere}, nil
			}
			if sawPrefix {
				return StemResult{Kind: NotHere}, nil
			}
			return StemResult{Kind: NotAnywhere}, nil
		default:
			if len(cur) < len(s) && commonPrefixLen(cur, s) == len(cur) {
				sawPrefix = true
			}
			prev = cur
		}
	}
}
