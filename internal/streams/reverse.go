// Package streams implements the line-oriented stdin/stdout and file
// conversion utilities of the userhub CLI.
package streams

import (
	"bufio"
	"fmt"
	"io"

	"github.com/pkg/errors"
)

// ReverseString reverses a string rune by rune, so multibyte characters
// survive the round trip.
func ReverseString(s string) string {
	runes := []rune(s)

	for i, j := 0, len(runes)-1; i < j; i, j = i+1, j-1 {
		runes[i], runes[j] = runes[j], runes[i]
	}

	return string(runes)
}

// ReverseLines reads r line by line and writes each line reversed, followed
// by a blank line. It returns when r is exhausted.
func ReverseLines(r io.Reader, w io.Writer) error {
	scanner := bufio.NewScanner(r)

	for scanner.Scan() {
		if _, err := fmt.Fprintf(w, "%s\n\n", ReverseString(scanner.Text())); err != nil {
			return errors.Wrap(err, "failed to write reversed line")
		}
	}

	return errors.Wrap(scanner.Err(), "failed to read input")
}
