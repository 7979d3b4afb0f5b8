package main

import (
	"encoding/json"
	"fmt"

	"github.com/etmorf/etmorf/analyze"
	"github.com/etmorf/etmorf/disambig"
	"github.com/spf13/cobra"
)

// disambiguateCmd reads the document analyse emitted and reduces each
// word's analysis[] in place. Unlike analyse/spell/synthesise it needs
// no dictionary, only the companion disambiguator model file, so it
// takes --model instead of --lex.
var disambiguateCmd = &cobra.Command{
	Use:   "disambiguate",
	Short: "Reduce each word's analyses to the contextually most plausible one",
	RunE:  runDisambiguate,
}

func init() {
	rootCmd.AddCommand(disambiguateCmd)
	disambiguateCmd.Flags().String("model", "", "disambiguator model file path")
	disambiguateCmd.Flags().String("in", "", "input JSON document (default stdin)")
	disambiguateCmd.Flags().String("out", "", "output JSON document (default stdout)")
}

func runDisambiguate(cmd *cobra.Command, _ []string) error {
	modelPath, _ := cmd.Flags().GetString("model")
	inPath, _ := cmd.Flags().GetString("in")
	outPath, _ := cmd.Flags().GetString("out")
	if modelPath == "" {
		return fmt.Errorf("etana disambiguate: --model is required")
	}

	model, err := disambig.Load(modelPath)
	if err != nil {
		return fmt.Errorf("etana disambiguate: loading model: %w", err)
	}

	raw, err := readInput(inPath)
	if err != nil {
		return fmt.Errorf("etana disambiguate: reading input: %w", err)
	}
	var doc Document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return fmt.Errorf("etana disambiguate: parsing input JSON: %w", err)
	}

	for pi := range doc.Paragraphs {
		for si := range doc.Paragraphs[pi].Sentences {
			words := doc.Paragraphs[pi].Sentences[si].Words
			sets := make([]*analyze.AnalysisSet, len(words))
			for wi := range words {
				sets[wi] = fromAnalysisJSON(words[wi].Text, words[wi].Analysis)
			}
			if err := model.Disambiguate(sets); err != nil {
				return fmt.Errorf("etana disambiguate: %w", err)
			}
			for wi := range words {
				words[wi].Analysis = toAnalysisJSON(sets[wi])
			}
		}
	}

	out, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("etana disambiguate: encoding output JSON: %w", err)
	}
	return writeOutput(outPath, out)
}
