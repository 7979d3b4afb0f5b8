// Package disambig implements the trigram-HMM Viterbi disambiguator:
// given a sentence of AnalysisSets, it decodes the most likely tag
// sequence and prunes each AnalysisSet to the analyses matching the
// decoded tag.
package disambig

import (
	"fmt"
	"math"
	"os"
	"sort"
	"strconv"
	"strings"
)

// tagLogP pairs a tag id with a log-probability.
type tagLogP struct {
	TagID int
	LogP  float64
}

type trigramKey struct{ I, J, K int }

// Model is a loaded disambiguator model file.
type Model struct {
	Tags     []string
	tagID    map[string]int
	Sentinel int

	unigramCount []float64
	totalUnigram float64

	trigrams map[trigramKey]float64

	// ambiguityClasses is keyed by a canonical signature of the set of
	// candidate tag ids a word's analyses carry (sorted, comma-joined),
	// the same signature buildSignature computes at decode time.
	ambiguityClasses map[string][]tagLogP

	lexical map[string][]tagLogP
}

// floorLogP is the log-probability assigned when even the unigram
// back-off has no evidence for a tag.
const floorLogP = -20.0

// Load reads a companion disambiguator model file.
func Load(path string) (*Model, error) {
	buf, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("disambig: reading %s: %w", path, err)
	}
	return load(buf)
}

func load(buf []byte) (*Model, error) {
	r := newReader(buf)

	tagCount, err := r.ReadU32()
	if err != nil {
		return nil, fmt.Errorf("disambig: reading tag count: %w", err)
	}
	tags := make([]string, tagCount)
	tagID := make(map[string]int, tagCount)
	for i := range tags {
		s, err := r.ReadCountedString()
		if err != nil {
			return nil, fmt.Errorf("disambig: reading tag %d: %w", i, err)
		}
		tags[i] = s
		tagID[s] = i
	}

	sentinel, err := r.ReadU32()
	if err != nil {
		return nil, fmt.Errorf("disambig: reading sentinel tag id: %w", err)
	}
	if int(sentinel) >= len(tags) {
		return nil, fmt.Errorf("disambig: sentinel tag id %d out of range", sentinel)
	}

	unigramCount, err := r.ReadU32()
	if err != nil {
		return nil, fmt.Errorf("disambig: reading unigram count: %w", err)
	}
	if int(unigramCount) != len(tags) {
		return nil, fmt.Errorf("disambig: unigram count %d disagrees with tag count %d", unigramCount, len(tags))
	}
	unigrams := make([]float64, unigramCount)
	var total float64
	for i := range unigrams {
		c, err := r.ReadU32()
		if err != nil {
			return nil, fmt.Errorf("disambig: reading unigram %d: %w", i, err)
		}
		unigrams[i] = float64(c)
		total += float64(c)
	}

	trigramCount, err := r.ReadU32()
	if err != nil {
		return nil, fmt.Errorf("disambig: reading trigram count: %w", err)
	}
	trigrams := make(map[trigramKey]float64, trigramCount)
	for n := uint32(0); n < trigramCount; n++ {
		i, err := r.ReadU16()
		if err != nil {
			return nil, err
		}
		j, err := r.ReadU16()
		if err != nil {
			return nil, err
		}
		k, err := r.ReadU16()
		if err != nil {
			return nil, err
		}
		logp, err := r.ReadF32()
		if err != nil {
			return nil, err
		}
		trigrams[trigramKey{int(i), int(j), int(k)}] = logp
	}

	classCount, err := r.ReadU32()
	if err != nil {
		return nil, fmt.Errorf("disambig: reading ambiguity class count: %w", err)
	}
	classes := make(map[string][]tagLogP, classCount)
	for n := uint32(0); n < classCount; n++ {
		sig, err := r.ReadCountedString()
		if err != nil {
			return nil, err
		}
		entries, err := readTagLogPs(r)
		if err != nil {
			return nil, err
		}
		classes[sig] = entries
	}

	lexCount, err := r.ReadU32()
	if err != nil {
		return nil, fmt.Errorf("disambig: reading lexical entry count: %w", err)
	}
	lexical := make(map[string][]tagLogP, lexCount)
	for n := uint32(0); n < lexCount; n++ {
		word, err := r.ReadCountedString()
		if err != nil {
			return nil, err
		}
		entries, err := readTagLogPs(r)
		if err != nil {
			return nil, err
		}
		lexical[word] = entries
	}

	return &Model{
		Tags:             tags,
		tagID:            tagID,
		Sentinel:         int(sentinel),
		unigramCount:     unigrams,
		totalUnigram:     total,
		trigrams:         trigrams,
		ambiguityClasses: classes,
		lexical:          lexical,
	}, nil
}

func readTagLogPs(r *reader) ([]tagLogP, error) {
	n, err := r.ReadU8()
	if err != nil {
		return nil, err
	}
	out := make([]tagLogP, n)
	for i := range out {
		id, err := r.ReadU32()
		if err != nil {
			return nil, err
		}
		logp, err := r.ReadF32()
		if err != nil {
			return nil, err
		}
		out[i] = tagLogP{TagID: int(id), LogP: logp}
	}
	return out, nil
}

// TagID returns the model's integer id for tag, or -1 if the model
// never saw it during training.
func (m *Model) TagID(tag string) int {
	if id, ok := m.tagID[tag]; ok {
		return id
	}
	return -1
}

// unigramLogP returns logP(tag) from the raw training counts, or
// floorLogP if the tag was never seen.
func (m *Model) unigramLogP(id int) float64 {
	if id < 0 || id >= len(m.unigramCount) || m.unigramCount[id] == 0 || m.totalUnigram == 0 {
		return floorLogP
	}
	return logProb(m.unigramCount[id] / m.totalUnigram)
}

// trigramLogP implements the transition model's back-off chain: exact
// trigram, else an average over trigrams sharing (j, k) as a bigram
// stand-in, else the unigram, else the floor.
func (m *Model) trigramLogP(i, j, k int) float64 {
	if p, ok := m.trigrams[trigramKey{i, j, k}]; ok {
		return p
	}
	var sum float64
	var n int
	for key, p := range m.trigrams {
		if key.J == j && key.K == k {
			sum += p
			n++
		}
	}
	if n > 0 {
		return sum / float64(n)
	}
	return m.unigramLogP(k)
}

func logProb(p float64) float64 {
	if p <= 0 {
		return floorLogP
	}
	return math.Log(p)
}

// buildSignature canonicalizes a set of candidate tag ids into the same
// string key both Load's ambiguity-class table and decode-time lookups
// use: sorted, comma-joined ids.
func buildSignature(ids []int) string {
	sorted := append([]int(nil), ids...)
	sort.Ints(sorted)
	parts := make([]string, len(sorted))
	for i, id := range sorted {
		parts[i] = strconv.Itoa(id)
	}
	return strings.Join(parts, ",")
}
