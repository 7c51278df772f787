// Package input reads typed commands from the user while a level generates.
package input

import (
	"bufio"
	"context"
	"io"
	"strings"
)

// Command is something the user asked for
type Command int

const (
	None Command = iota
	// Reset throws the level away and generates again
	Reset
	// Quit stops generation
	Quit
)

func (c Command) String() string {
	switch c {
	case Reset:
		return "reset"
	case Quit:
		return "quit"
	default:
		return "none"
	}
}

// Parse reads one line of input. Unknown input is None.
func Parse(line string) Command {
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "r", "reset":
		return Reset
	case "q", "quit", "exit":
		return Quit
	default:
		return None
	}
}

// Commands reads lines from r and sends each recognised command until r
// ends or ctx is cancelled. The channel is closed when reading stops.
func Commands(ctx context.Context, r io.Reader) <-chan Command {
	out := make(chan Command)
	go func() {
		defer close(out)
		scanner := bufio.NewScanner(r)
		for scanner.Scan() {
			cmd := Parse(scanner.Text())
			if cmd == None {
				continue
			}
			select {
			case out <- cmd:
			case <-ctx.Done():
				return
			}
		}
	}()
	return out
}
