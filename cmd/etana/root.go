package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

// envDictPath is an environment variable that overrides the dictionary
// path when --lex isn't given.
const envDictPath = "ETMORPH_DICT_PATH"

var rootCmd = &cobra.Command{
	Use:   "etana",
	Short: "Estonian morphological engine CLI",
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// resolveDictPath resolves the dictionary path from --lex, falling
// back to the environment variable, then to a dict.bin next to the
// running executable.
func resolveDictPath(flagValue string) (string, error) {
	if flagValue != "" {
		return flagValue, nil
	}
	if env := os.Getenv(envDictPath); env != "" {
		return env, nil
	}
	exe, err := os.Executable()
	if err != nil {
		return "", fmt.Errorf("etana: resolving dictionary path: %w", err)
	}
	fallback := filepath.Join(filepath.Dir(exe), "dict.bin")
	if _, err := os.Stat(fallback); err != nil {
		return "", fmt.Errorf("etana: no --lex given, %s unset, and %s not found: %w", envDictPath, fallback, err)
	}
	return fallback, nil
}

func readInput(path string) ([]byte, error) {
	if path == "" || path == "-" {
		return readAll(os.Stdin)
	}
	return os.ReadFile(path)
}

func writeOutput(path string, data []byte) error {
	if path == "" || path == "-" {
		_, err := os.Stdout.Write(data)
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
