package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/matzehuels/giftring/pkg/assign"
)

// WriteJSON encodes v as indented JSON.
func WriteJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// ExportJSON writes v to a JSON file at path.
func ExportJSON(v any, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := WriteJSON(f, v); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// WriteText writes one "giver → receiver" line per pairing. When the
// result carries cycles, each cycle is a block separated by a blank line.
// The warning, if any, follows the pairings.
func WriteText(w io.Writer, participants []string, res assign.Result) error {
	var err error
	printf := func(format string, args ...any) {
		if err == nil {
			_, err = fmt.Fprintf(w, format, args...)
		}
	}

	if len(res.Cycles) > 0 {
		for i, c := range res.Cycles {
			if i > 0 {
				printf("\n")
			}
			for j, idx := range c {
				printf("%s → %s\n", participants[idx], participants[c[(j+1)%len(c)]])
			}
		}
	} else {
		for _, p := range res.Pairings {
			printf("%s\n", p)
		}
	}
	if res.Warning != "" {
		printf("\n%s\n", res.Warning)
	}
	return err
}
