package main

import (
	"encoding/json"
	"fmt"

	"github.com/etmorf/etmorf/analyze"
	"github.com/etmorf/etmorf/lexicon"
	"github.com/spf13/cobra"
)

// spellCmd checks spelling: the same document shape as analyse, with
// words[].spelling/suggestions added instead of words[].analysis.
// Suggestion ranking is out of scope; a misspelled word gets at most
// the guesser's own best stem as a single candidate.
var spellCmd = &cobra.Command{
	Use:   "spell",
	Short: "Flag misspelled words in a JSON document",
	RunE:  runSpell,
}

func init() {
	rootCmd.AddCommand(spellCmd)
	spellCmd.Flags().String("lex", "", "dictionary file path")
	spellCmd.Flags().String("in", "", "input JSON document (default stdin)")
	spellCmd.Flags().String("out", "", "output JSON document (default stdout)")
}

func runSpell(cmd *cobra.Command, _ []string) error {
	lexPath, _ := cmd.Flags().GetString("lex")
	inPath, _ := cmd.Flags().GetString("in")
	outPath, _ := cmd.Flags().GetString("out")

	dictPath, err := resolveDictPath(lexPath)
	if err != nil {
		return err
	}
	lex, err := lexicon.Open(dictPath)
	if err != nil {
		return fmt.Errorf("etana spell: opening dictionary: %w", err)
	}
	defer lex.Close()

	raw, err := readInput(inPath)
	if err != nil {
		return fmt.Errorf("etana spell: reading input: %w", err)
	}
	var doc Document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return fmt.Errorf("etana spell: parsing input JSON: %w", err)
	}

	an := analyze.New(lex)
	an.Guesser = &analyze.Guesser{Analyzer: an}

	for pi := range doc.Paragraphs {
		for si := range doc.Paragraphs[pi].Sentences {
			words := doc.Paragraphs[pi].Sentences[si].Words
			for wi := range words {
				if err := spellCheck(an, &words[wi]); err != nil {
					return fmt.Errorf("etana spell: %w", err)
				}
			}
		}
	}

	out, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("etana spell: encoding output JSON: %w", err)
	}
	return writeOutput(outPath, out)
}

func spellCheck(an *analyze.Analyzer, w *Word) error {
	correct, err := an.Analyze(w.Text, analyze.Options{})
	if err != nil {
		return err
	}
	ok := len(correct.Analyses) > 0
	w.Spelling = &ok
	if ok {
		return nil
	}
	guessed, err := an.Analyze(w.Text, analyze.Options{Guess: true})
	if err != nil {
		return err
	}
	if len(guessed.Analyses) > 0 {
		w.Suggestions = []string{guessed.Analyses[0].Stem}
	}
	return nil
}
