// Package wordlist loads word lists from files.
package wordlist

import (
	"bufio"
	_ "embed"
	"fmt"
	"io"
	"os"
	"strings"
)

//go:embed words_en.txt
var defaultEnglish string

// LoadWords reads one word per line from the provided file path.
func LoadWords(path string) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := file.Close(); cerr != nil {
			// Best-effort close for read-only word list.
			_ = cerr
		}
	}()
	return readWords(file)
}

// Default returns the built-in English word list.
func Default() []string {
	words, err := readWords(strings.NewReader(defaultEnglish))
	if err != nil {
		return nil
	}
	return words
}

// LoadOrDefault loads path, falling back to the built-in list when the file
// does not exist.
func LoadOrDefault(path string, filter FilterFunc) ([]string, error) {
	words, err := LoadWords(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to load word list: %w", err)
		}
		words = Default()
	}
	if filter != nil {
		words = Filter(words, filter)
	}
	if len(words) == 0 {
		return nil, fmt.Errorf("word list is empty after filtering")
	}
	return words, nil
}

func readWords(r io.Reader) ([]string, error) {
	var words []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		words = append(words, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if len(words) == 0 {
		return nil, fmt.Errorf("word list is empty")
	}
	return words, nil
}
