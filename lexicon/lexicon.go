package lexicon

import (
	"fmt"
	"os"

	"github.com/edsrzf/mmap-go"
)

// EndGroupRow is one (ending, forms) association inside an
// ending-group.
type EndGroupRow struct {
	EndingID uint32
	FormIDs  []uint32
}

// Paradigm is one row of the paradigm-stem table together with the
// POS-class string it implies.
type Paradigm struct {
	PosClassID uint32
	Rows       []ParadigmRow
}

// Lexicon is the fully-loaded, read-only dictionary: every pool and
// table the on-disk format stores, plus the mmap'd stem-block area
// accessed through a BlockCache. It is opened once and shared for the
// process lifetime; the cache inside it is not goroutine-safe.
type Lexicon struct {
	header Header

	Endings []string
	Forms   []string

	EndGroups [][]EndGroupRow
	// FormGroups indexes canonical/productive form ids by POS-class
	// character, used by the synthesiser's "*" form-set expansion.
	FormGroups map[byte][]uint32

	Suffixes []SuffixEntry
	Prefixes []PrefixEntry

	PosClasses    []string
	ClosedClasses [][]string

	Paradigms []Paradigm

	HyphenAnnotations  []Annotation
	PhoneticAnnotations []Annotation

	directory []DirEntry
	cache     *BlockCache

	mmapFile mmap.MMap
	file     *os.File
}

// Open opens the dictionary file at path, maps it read-only, and
// materializes every region into Lexicon. The mapping itself is never
// copied into the Go heap; only the small pool/table structures derived
// from it are. Open leaves no half-initialized state on error.
func Open(path string) (*Lexicon, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("lexicon: opening %s: %w", path, err)
	}

	m, err := mmap.Map(f, mmap.RDONLY, 0)
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("lexicon: mmap %s: %w", path, err)
	}

	lex, err := load(m)
	if err != nil {
		_ = m.Unmap()
		_ = f.Close()
		return nil, err
	}
	lex.mmapFile = m
	lex.file = f
	return lex, nil
}

// Close releases the memory mapping and the underlying file handle.
func (l *Lexicon) Close() error {
	var err error
	if l.mmapFile != nil {
		err = l.mmapFile.Unmap()
	}
	if l.file != nil {
		if cerr := l.file.Close(); err == nil {
			err = cerr
		}
	}
	return err
}

// PosClassString returns the POS-class string for a given id, or an
// error if the id is out of range (dictionary corrupt).
func (l *Lexicon) PosClassString(id uint32) (string, error) {
	if int(id) >= len(l.PosClasses) {
		return "", fmt.Errorf("lexicon: pos-class id %d out of range", id)
	}
	return l.PosClasses[id], nil
}

// Ending returns the ending string for id. Id 0 is always the empty
// ending.
func (l *Lexicon) Ending(id uint32) (string, error) {
	if id == emptyEndingID {
		return "", nil
	}
	if int(id) >= len(l.Endings) {
		return "", fmt.Errorf("lexicon: ending id %d out of range", id)
	}
	return l.Endings[id], nil
}

// Form returns the form string for id.
func (l *Lexicon) Form(id uint32) (string, error) {
	if int(id) >= len(l.Forms) {
		return "", fmt.Errorf("lexicon: form id %d out of range", id)
	}
	return l.Forms[id], nil
}
