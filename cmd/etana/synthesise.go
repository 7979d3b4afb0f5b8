package main

import (
	"encoding/json"
	"fmt"

	"github.com/etmorf/etmorf/analyze"
	"github.com/etmorf/etmorf/lexicon"
	"github.com/etmorf/etmorf/synth"
	"github.com/spf13/cobra"
)

var synthesiseCmd = &cobra.Command{
	Use:   "synthesise",
	Short: "Generate surface forms for a list of (lemma, pos, form) requests",
	RunE:  runSynthesise,
}

func init() {
	rootCmd.AddCommand(synthesiseCmd)
	synthesiseCmd.Flags().String("lex", "", "dictionary file path")
	synthesiseCmd.Flags().String("in", "", "input JSON document (default stdin)")
	synthesiseCmd.Flags().String("out", "", "output JSON document (default stdout)")
	synthesiseCmd.Flags().Bool("guess", false, "enable the guesser fallback when the lemma isn't found")
}

func runSynthesise(cmd *cobra.Command, _ []string) error {
	lexPath, _ := cmd.Flags().GetString("lex")
	inPath, _ := cmd.Flags().GetString("in")
	outPath, _ := cmd.Flags().GetString("out")
	guess, _ := cmd.Flags().GetBool("guess")

	dictPath, err := resolveDictPath(lexPath)
	if err != nil {
		return err
	}
	lex, err := lexicon.Open(dictPath)
	if err != nil {
		return fmt.Errorf("etana synthesise: opening dictionary: %w", err)
	}
	defer lex.Close()

	raw, err := readInput(inPath)
	if err != nil {
		return fmt.Errorf("etana synthesise: reading input: %w", err)
	}
	var doc struct {
		Words []SynthWord `json:"words"`
	}
	if err := json.Unmarshal(raw, &doc); err != nil {
		return fmt.Errorf("etana synthesise: parsing input JSON: %w", err)
	}
	words := doc.Words

	an := analyze.New(lex)
	an.Guesser = &analyze.Guesser{Analyzer: an}
	syn := synth.New(lex, an)

	for i := range words {
		w := &words[i]
		pos := byte(0)
		if len(w.PartOfSpeech) > 0 {
			pos = w.PartOfSpeech[0]
		}
		surfaces, err := syn.Synthesise(synth.Request{
			Lemma:           w.Lemma,
			Pos:             pos,
			Forms:           w.Form,
			ParadigmExample: w.Hint,
			Clitic:          w.Clitic,
			Guess:           guess,
		})
		if err != nil {
			return fmt.Errorf("etana synthesise: %s: %w", w.Lemma, err)
		}
		w.Text = surfaces
	}

	out, err := json.Marshal(struct {
		Words []SynthWord `json:"words"`
	}{Words: words})
	if err != nil {
		return fmt.Errorf("etana synthesise: encoding output JSON: %w", err)
	}
	return writeOutput(outPath, out)
}
