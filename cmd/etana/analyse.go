package main

import (
	"encoding/json"
	"fmt"

	"github.com/etmorf/etmorf/analyze"
	"github.com/etmorf/etmorf/lexicon"
	"github.com/etmorf/etmorf/sentence"
	"github.com/spf13/cobra"
)

var analyseCmd = &cobra.Command{
	Use:   "analyse",
	Short: "Add morphological analyses to every word in a JSON document",
	RunE:  runAnalyse,
}

func init() {
	rootCmd.AddCommand(analyseCmd)
	analyseCmd.Flags().String("lex", "", "dictionary file path")
	analyseCmd.Flags().String("in", "", "input JSON document (default stdin)")
	analyseCmd.Flags().String("out", "", "output JSON document (default stdout)")
	analyseCmd.Flags().Bool("guess", false, "enable the guesser for unknown words")
	analyseCmd.Flags().Bool("phonetic", false, "annotate stems with phonetic markers")
	analyseCmd.Flags().Bool("propername", false, "run the proper-name detection pass")
}

func runAnalyse(cmd *cobra.Command, _ []string) error {
	lexPath, _ := cmd.Flags().GetString("lex")
	inPath, _ := cmd.Flags().GetString("in")
	outPath, _ := cmd.Flags().GetString("out")
	guess, _ := cmd.Flags().GetBool("guess")
	phonetic, _ := cmd.Flags().GetBool("phonetic")
	propername, _ := cmd.Flags().GetBool("propername")

	dictPath, err := resolveDictPath(lexPath)
	if err != nil {
		return err
	}
	lex, err := lexicon.Open(dictPath)
	if err != nil {
		return fmt.Errorf("etana analyse: opening dictionary: %w", err)
	}
	defer lex.Close()

	raw, err := readInput(inPath)
	if err != nil {
		return fmt.Errorf("etana analyse: reading input: %w", err)
	}
	var doc Document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return fmt.Errorf("etana analyse: parsing input JSON: %w", err)
	}

	an := analyze.New(lex)
	an.Guesser = &analyze.Guesser{Analyzer: an}
	opts := sentence.Options{
		Options: analyze.Options{
			Guess:    guess,
			Phonetic: phonetic,
		},
		ProperName: propername,
	}

	for pi := range doc.Paragraphs {
		for si := range doc.Paragraphs[pi].Sentences {
			if err := analyseSentence(an, opts, doc.Paragraphs[pi].Sentences[si].Words); err != nil {
				return fmt.Errorf("etana analyse: %w", err)
			}
		}
	}

	out, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("etana analyse: encoding output JSON: %w", err)
	}
	if err := writeOutput(outPath, out); err != nil {
		return fmt.Errorf("etana analyse: writing output: %w", err)
	}
	return nil
}

// analyseSentence runs one sentence's words through sentence.Pipeline
// so the proper-name pass' look-ahead window spans the whole sentence,
// then writes the resulting analyses back into words.
func analyseSentence(an *analyze.Analyzer, opts sentence.Options, words []Word) error {
	p := sentence.New(an, opts)
	if err := p.PushTag(sentence.TagBOS, ""); err != nil {
		return err
	}
	for _, w := range words {
		if err := p.PushWord(w.Text); err != nil {
			return err
		}
	}
	if err := p.PushTag(sentence.TagEOS, ""); err != nil {
		return err
	}
	tokens, err := p.Flush()
	if err != nil {
		return err
	}

	i := 0
	for _, tok := range tokens {
		if tok.Kind != sentence.KindAnalysis {
			continue
		}
		words[i].Analysis = toAnalysisJSON(tok.Analysis)
		i++
	}
	return nil
}
