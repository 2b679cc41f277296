package iojson

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli/v3"
	"golang.org/x/term"
)

// FileReader decodes a JSON document of type T from the file named by its
// flag, or from stdin when the flag is "-".
type FileReader[T any] struct {
	fileFlagValue string
	stdin         io.Reader
}

func (fr *FileReader[T]) Flag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:        "file",
		Aliases:     []string{"f"},
		Usage:       "read JSON input from file (use - for stdin)",
		Destination: &fr.fileFlagValue,
	}
}

// Provided reports whether the file flag was set.
func (fr *FileReader[T]) Provided() bool {
	return fr.fileFlagValue != ""
}

func (fr *FileReader[T]) Read() (T, error) {
	var reader io.Reader
	var input T

	switch {
	case fr.fileFlagValue == "-" && fr.stdin != nil:
		reader = fr.stdin
	case fr.fileFlagValue == "-":
		if term.IsTerminal(int(os.Stdin.Fd())) {
			return input, fmt.Errorf("no input provided (stdin is a terminal); pipe JSON input or pass a file path")
		}
		reader = os.Stdin
	case fr.fileFlagValue != "":
		f, err := os.Open(fr.fileFlagValue)
		if err != nil {
			return input, fmt.Errorf("open file: %w", err)
		}
		defer func() { _ = f.Close() }()
		reader = f
	default:
		return input, fmt.Errorf("no input file provided")
	}

	dec := json.NewDecoder(reader)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&input); err != nil {
		return input, fmt.Errorf("decode JSON: %w", err)
	}

	return input, nil
}
