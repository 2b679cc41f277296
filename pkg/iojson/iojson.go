// Package iojson reads and writes the JSON payloads of command line flags
// and --json output.
package iojson

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// Error is written to stderr when a --json command fails.
type Error struct {
	Message string         `json:"message"`
	Data    map[string]any `json:"data"`
}

// fallbackError builds an Error by hand for when marshaling itself failed.
func fallbackError(msg string, cause error) string {
	m, _ := json.Marshal(msg)
	c, _ := json.Marshal(cause.Error())
	return fmt.Sprintf(`{"message":%s,"data":{"json_error":%s}}`, m, c)
}

// MarshalError renders msg and data as an indented Error document. It never
// fails: unmarshalable data degrades to a document carrying the marshal
// error.
func MarshalError(msg string, data map[string]any) string {
	bits, err := json.MarshalIndent(Error{Message: msg, Data: data}, "", "  ")
	if err != nil {
		return fallbackError(msg, err)
	}
	return string(bits)
}

// WriteError prints an Error document to stderr.
func WriteError(msg string, data map[string]any) error {
	_, err := fmt.Fprintln(os.Stderr, MarshalError(msg, data))
	return err
}

// WriteWith writes obj as indented JSON to w. Marshal failures are reported
// on ew as an Error document.
func WriteWith(w, ew io.Writer, obj any) error {
	bits, err := json.MarshalIndent(obj, "", "  ")
	if err != nil {
		_, werr := fmt.Fprintln(ew, fallbackError("marshal output", err))
		return werr
	}

	_, err = fmt.Fprintln(w, string(bits))
	return err
}

// WriteLine writes obj as one line of compact JSON.
func WriteLine(w io.Writer, obj any) error {
	bits, err := json.Marshal(obj)
	if err != nil {
		return fmt.Errorf("marshal: %w", err)
	}

	_, err = fmt.Fprintln(w, string(bits))
	return err
}
