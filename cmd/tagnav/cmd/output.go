package cmd

import (
	"encoding/json"
	"fmt"
	"io"

	"tagnav/internal/tags"
)

func writeCandidates(w io.Writer, candidates []tags.Candidate) error {
	for _, c := range candidates {
		if _, err := fmt.Fprintln(w, c.Abbr); err != nil {
			return err
		}
	}
	return nil
}

func writeLines(w io.Writer, lines []string) error {
	for _, l := range lines {
		if _, err := fmt.Fprintln(w, l); err != nil {
			return err
		}
	}
	return nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
