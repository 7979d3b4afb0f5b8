// Package main is the cgo shared-library export surface: a non-Go host
// calls in through the C ABI to create an analyzer, analyze one word at
// a time, and release the analyzer when done.
package main

/*
#include <stdlib.h>
*/
import "C"

import (
	"encoding/json"
	"os"
	"unsafe"

	"github.com/etmorf/etmorf/analyze"
	"github.com/etmorf/etmorf/lexicon"
)

// envDictPath is the environment variable CreateAnalyzer reads the
// dictionary path from.
const envDictPath = "ETMORPH_DICT_PATH"

var (
	lex *lexicon.Lexicon
	an  *analyze.Analyzer
)

// wireAnalysis is the JSON shape AnalyzeWord returns: kept flat (no
// envelope) since the cgo caller decodes it directly.
type wireAnalysis struct {
	Stem   string `json:"stem"`
	Ending string `json:"ending"`
	Clitic string `json:"clitic,omitempty"`
	Pos    string `json:"pos"`
	Form   string `json:"form"`
}

//export CreateAnalyzer
func CreateAnalyzer() C.int {
	path := os.Getenv(envDictPath)
	if path == "" {
		return -1
	}
	l, err := lexicon.Open(path)
	if err != nil {
		return -1
	}
	lex = l
	an = analyze.New(lex)
	an.Guesser = &analyze.Guesser{Analyzer: an}
	return 0
}

//export AnalyzeWord
func AnalyzeWord(word *C.char) *C.char {
	if an == nil {
		return C.CString("[]")
	}
	goWord := C.GoString(word)
	set, err := an.Analyze(goWord, analyze.Options{Guess: true})
	if err != nil {
		return C.CString("[]")
	}
	out := make([]wireAnalysis, len(set.Analyses))
	for i, a := range set.Analyses {
		out[i] = wireAnalysis{Stem: a.Stem, Ending: a.Ending, Clitic: a.Clitic, Pos: string(a.Pos), Form: a.Form}
	}
	payload, err := json.Marshal(out)
	if err != nil {
		return C.CString("[]")
	}
	return C.CString(string(payload))
}

//export FreeString
func FreeString(str *C.char) {
	if str != nil {
		C.free(unsafe.Pointer(str))
	}
}

//export ReleaseAnalyzer
func ReleaseAnalyzer() {
	if lex != nil {
		lex.Close()
	}
	lex = nil
	an = nil
}

func main() {}
