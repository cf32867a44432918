package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"higherlower-server/pkg/higherlower"
)

// inputSource reads guesses from a line based reader
// Lines that are not a valid guess are reported and skipped. "q" quits with io.EOF.
type inputSource struct {
	reader      *bufio.Reader
	out         io.Writer
	interactive bool
}

func newInputSource(reader *bufio.Reader, out io.Writer, interactive bool) *inputSource {
	return &inputSource{
		reader:      reader,
		out:         out,
		interactive: interactive,
	}
}

func (i *inputSource) NextGuess(state *higherlower.State) (higherlower.Guess, error) {
	for {
		if i.interactive {
			fmt.Fprint(i.out, promptStyle.Render("Higher or lower? [h/l/q]")+" ")
		}

		line, err := i.reader.ReadString('\n')
		if err != nil && !(errors.Is(err, io.EOF) && strings.TrimSpace(line) != "") {
			return 0, err
		}

		line = strings.TrimSpace(line)
		switch strings.ToLower(line) {
		case "":
			continue
		case "q", "quit":
			return 0, io.EOF
		}

		guess, err := higherlower.GuessFromString(line)
		if err != nil {
			fmt.Fprintln(i.out, errorStyle.Render(err.Error()))
			continue
		}

		return guess, nil
	}
}
