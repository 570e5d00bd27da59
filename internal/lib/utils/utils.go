// Package utils holds small helpers shared by the command line tools.
package utils

import (
	"encoding/json"
	"fmt"
	"io"
)

// Redacted replaces secrets in printed output.
const Redacted = "********"

// WriteJSON writes v to w as tab-indented JSON followed by a newline.
func WriteJSON(w io.Writer, v any) error {
	out, err := json.MarshalIndent(v, "", "\t")
	if err != nil {
		return fmt.Errorf("marshalling JSON: %w", err)
	}

	_, err = fmt.Fprintln(w, string(out))
	return err
}

// Redact returns Redacted for a non-empty secret and "" otherwise.
func Redact(secret string) string {
	if secret == "" {
		return ""
	}
	return Redacted
}
