package lexicon

import (
	"encoding/binary"
	"fmt"
)

// reader walks a byte slice that is a view into the mmap'd dictionary
// file. It never copies the underlying bytes; every Read* call
// advances an offset and returns data backed by the original slice
// (runes/strings are materialized since the on-disk width differs from
// Go's rune width).
type reader struct {
	buf []byte
	pos int
}

func newReader(buf []byte) *reader {
	return &reader{buf: buf}
}

func (r *reader) remaining() int { return len(r.buf) - r.pos }

// ErrShortRead is returned when a region ends before the requested
// field could be read.
var ErrShortRead = fmt.Errorf("lexicon: short read")

func (r *reader) need(n int) error {
	if r.remaining() < n {
		return fmt.Errorf("%w: need %d bytes, have %d", ErrShortRead, n, r.remaining())
	}
	return nil
}

// ReadU8 reads a one-byte unsigned integer.
func (r *reader) ReadU8() (uint8, error) {
	if err := r.need(1); err != nil {
		return 0, err
	}
	v := r.buf[r.pos]
	r.pos++
	return v, nil
}

// ReadU16 reads a little-endian two-byte unsigned integer.
func (r *reader) ReadU16() (uint16, error) {
	if err := r.need(2); err != nil {
		return 0, err
	}
	v := binary.LittleEndian.Uint16(r.buf[r.pos:])
	r.pos += 2
	return v, nil
}

// ReadU32 reads a little-endian four-byte unsigned integer.
func (r *reader) ReadU32() (uint32, error) {
	if err := r.need(4); err != nil {
		return 0, err
	}
	v := binary.LittleEndian.Uint32(r.buf[r.pos:])
	r.pos += 4
	return v, nil
}

// sentinelWChar marks end-of-block in the stem area.
const sentinelWChar uint16 = 0xFFFF

// ReadWChar reads one on-disk 2-byte character and widens it to a Go
// rune. It returns errSentinel when the character is the end-of-block
// sentinel; a 2-byte value cannot exceed the Unicode BMP, and rune is
// wider than the disk format, so no other decoding check is needed.
func (r *reader) ReadWChar() (rune, error) {
	v, err := r.ReadU16()
	if err != nil {
		return 0, err
	}
	if v == sentinelWChar {
		return 0, errSentinel
	}
	return rune(v), nil
}

var errSentinel = fmt.Errorf("lexicon: sentinel character")

// ReadRunes reads n on-disk wide characters into a []rune.
func (r *reader) ReadRunes(n int) ([]rune, error) {
	out := make([]rune, n)
	for i := 0; i < n; i++ {
		v, err := r.ReadU16()
		if err != nil {
			return nil, err
		}
		out[i] = rune(v)
	}
	return out, nil
}

// ReadCountedString reads a u32 character count followed by that many
// wide characters. includeTrailingNUL controls whether the final
// character (if it is a zero character) is dropped. Header carries no
// flag for this; every loader call passes false.
func (r *reader) ReadCountedString(includeTrailingNUL bool) (string, error) {
	n, err := r.ReadU32()
	if err != nil {
		return "", err
	}
	runes, err := r.ReadRunes(int(n))
	if err != nil {
		return "", err
	}
	if includeTrailingNUL && len(runes) > 0 && runes[len(runes)-1] == 0 {
		runes = runes[:len(runes)-1]
	}
	return string(runes), nil
}

// Seek moves the read cursor to an absolute byte offset within buf.
// Used when a region is addressed by an absolute file offset that has
// already been translated to an offset within the mmap'd slice.
func (r *reader) Seek(offset int64) error {
	if offset < 0 || int(offset) > len(r.buf) {
		return fmt.Errorf("lexicon: seek past end (offset %d, size %d)", offset, len(r.buf))
	}
	r.pos = int(offset)
	return nil
}
