package disambig

import (
	"encoding/binary"
	"errors"
	"math"
)

// ErrShortRead mirrors lexicon.ErrShortRead: the model file ended before
// a fixed-size field could be fully read.
var ErrShortRead = errors.New("disambig: short read")

// reader is the same small byte-packed cursor lexicon/io.go uses, kept
// as its own copy since the two file formats (dictionary, disambiguator
// model) are independent on-disk layouts read by different packages.
type reader struct {
	buf []byte
	pos int
}

func newReader(buf []byte) *reader { return &reader{buf: buf} }

func (r *reader) need(n int) error {
	if r.pos+n > len(r.buf) {
		return ErrShortRead
	}
	return nil
}

func (r *reader) ReadU8() (uint8, error) {
	if err := r.need(1); err != nil {
		return 0, err
	}
	v := r.buf[r.pos]
	r.pos++
	return v, nil
}

func (r *reader) ReadU16() (uint16, error) {
	if err := r.need(2); err != nil {
		return 0, err
	}
	v := binary.LittleEndian.Uint16(r.buf[r.pos:])
	r.pos += 2
	return v, nil
}

func (r *reader) ReadU32() (uint32, error) {
	if err := r.need(4); err != nil {
		return 0, err
	}
	v := binary.LittleEndian.Uint32(r.buf[r.pos:])
	r.pos += 4
	return v, nil
}

func (r *reader) ReadF32() (float64, error) {
	bits, err := r.ReadU32()
	if err != nil {
		return 0, err
	}
	return float64(math.Float32frombits(bits)), nil
}

// ReadRunes reads n wide characters, 2 bytes each.
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
// wide characters.
func (r *reader) ReadCountedString() (string, error) {
	n, err := r.ReadU32()
	if err != nil {
		return "", err
	}
	runes, err := r.ReadRunes(int(n))
	if err != nil {
		return "", err
	}
	return string(runes), nil
}
