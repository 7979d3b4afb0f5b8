package sentence

import (
	"unicode"

	"github.com/etmorf/etmorf/analyze"
)

// windowSize is the look-ahead depth held before a word token is
// resolved and emitted.
const windowSize = 3

// Options adds the sentence-level proper-name pass to the ordinary
// analysis options.
type Options struct {
	analyze.Options
	ProperName bool
}

type rawToken struct {
	isWord   bool
	word     string
	tag      TagKind
	tagValue string
}

// Pipeline is a FIFO: PushWord/PushTag feed an input queue; tokens
// drain into the output queue once windowSize word tokens have arrived
// after them, or immediately once Flush forces the remainder through.
// Tokens never reorder.
type Pipeline struct {
	an   *analyze.Analyzer
	opts Options

	pending  []rawToken
	out      []Token
	afterBOS bool
}

// New builds a Pipeline over an, analysing words with opts.
func New(an *analyze.Analyzer, opts Options) *Pipeline {
	return &Pipeline{an: an, opts: opts}
}

// PushWord enqueues a surface word.
func (p *Pipeline) PushWord(word string) error {
	p.pending = append(p.pending, rawToken{isWord: true, word: word})
	return p.drain(false)
}

// PushTag forwards a non-word token untouched.
func (p *Pipeline) PushTag(kind TagKind, value string) error {
	p.pending = append(p.pending, rawToken{tag: kind, tagValue: value})
	return p.drain(false)
}

// Flush drains every remaining pending token, regardless of look-ahead,
// and returns every token emitted since the last Flush.
func (p *Pipeline) Flush() ([]Token, error) {
	if err := p.drain(true); err != nil {
		return nil, err
	}
	out := p.out
	p.out = nil
	return out, nil
}

// drain pops and analyses pending tokens as long as force is set or
// enough word tokens have arrived after the front to satisfy windowSize.
func (p *Pipeline) drain(force bool) error {
	for len(p.pending) > 0 {
		if !force && wordsAfterFront(p.pending) < windowSize {
			break
		}
		front := p.pending[0]
		p.pending = p.pending[1:]

		if !front.isWord {
			if front.tag == TagBOS {
				p.afterBOS = true
			} else {
				p.afterBOS = false
			}
			p.out = append(p.out, Token{Kind: KindTag, Tag: front.tag, TagValue: front.tagValue})
			continue
		}

		set, err := p.an.Analyze(front.word, p.opts.Options)
		if err != nil {
			return err
		}
		if p.opts.ProperName && detectProperName(front.word, p.afterBOS) {
			set = withProperName(set, front.word)
		}
		p.afterBOS = false
		p.out = append(p.out, Token{Kind: KindAnalysis, Analysis: set})
	}
	return nil
}

func wordsAfterFront(pending []rawToken) int {
	if len(pending) == 0 {
		return 0
	}
	n := 0
	for _, t := range pending[1:] {
		if t.isWord {
			n++
		}
	}
	return n
}

// detectProperName treats an initial-capital word that is not
// sentence-initial as a plausible proper name.
func detectProperName(word string, afterBOS bool) bool {
	if afterBOS || word == "" {
		return false
	}
	return unicode.IsUpper([]rune(word)[0])
}

// withProperName prepends a proper-noun reading to set without removing
// whatever the ordinary analyser already found.
func withProperName(set *analyze.AnalysisSet, word string) *analyze.AnalysisSet {
	properReading := analyze.Analysis{Stem: word, Pos: 'H', Form: "proper"}
	analyses := append([]analyze.Analysis{properReading}, set.Analyses...)
	return &analyze.AnalysisSet{Word: set.Word, Analyses: analyses, Origin: set.Origin}
}
