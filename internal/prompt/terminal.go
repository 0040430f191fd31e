package prompt

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/papapumpkin/phase0/internal/ansi"
)

// maxAttempts bounds how often a list question is re-asked after an
// invalid choice.
const maxAttempts = 3

// lineResult is one line, or the terminal error, read from input.
type lineResult struct {
	line string
	err  error
}

// terminalAsker reads answers line by line from in and writes prompts to out.
// A single reader goroutine owns the scanner, so an Ask abandoned through
// ctx leaves its pending line for the next Ask.
type terminalAsker struct {
	scanner *bufio.Scanner
	out     io.Writer
	color   bool

	start sync.Once
	lines chan lineResult
}

// NewTerminalAsker creates an Asker that reads from stdin and writes to stderr.
func NewTerminalAsker() Asker {
	return &terminalAsker{
		scanner: bufio.NewScanner(os.Stdin),
		out:     os.Stderr,
		color:   true,
		lines:   make(chan lineResult),
	}
}

// newTerminalAskerWithIO creates an Asker with injectable I/O for testing.
func newTerminalAskerWithIO(in io.Reader, out io.Writer) *terminalAsker {
	return &terminalAsker{scanner: bufio.NewScanner(in), out: out, lines: make(chan lineResult)}
}

// Ask prompts for each question in order. Input questions take the line
// as typed; list questions accept a choice or its number and are re-asked
// on an invalid answer.
func (a *terminalAsker) Ask(ctx context.Context, questions []Question) (Answers, error) {
	out := make(Answers, len(questions))
	for _, q := range questions {
		v, err := a.askOne(ctx, q)
		if err != nil {
			return nil, err
		}
		out[q.Name] = v
	}
	return out, nil
}

func (a *terminalAsker) askOne(ctx context.Context, q Question) (string, error) {
	if q.Kind != KindList {
		a.render(q)
		line, err := a.readLine(ctx)
		if err != nil {
			return "", &AnswerError{Question: q.Name, Err: err}
		}
		return strings.TrimSpace(line), nil
	}

	for attempt := 0; attempt < maxAttempts; attempt++ {
		a.render(q)
		line, err := a.readLine(ctx)
		if err != nil {
			return "", &AnswerError{Question: q.Name, Err: err}
		}
		if c, ok := matchChoice(line, q.Choices); ok {
			return c, nil
		}
		fmt.Fprintf(a.out, "   %q is not one of the choices\n", strings.TrimSpace(line))
	}
	return "", &AnswerError{Question: q.Name, Err: ErrInvalidChoice}
}

func (a *terminalAsker) render(q Question) {
	msg := q.Message
	if a.color {
		msg = ansi.Bold + ansi.Cyan + "? " + ansi.Reset + ansi.Bold + msg + ansi.Reset
	} else {
		msg = "? " + msg
	}
	fmt.Fprintln(a.out, msg)
	for i, c := range q.Choices {
		fmt.Fprintf(a.out, "   %d) %s\n", i+1, c)
	}
	fmt.Fprint(a.out, "   > ")
}

// readLine waits for the next line from the reader goroutine or for ctx.
func (a *terminalAsker) readLine(ctx context.Context) (string, error) {
	a.start.Do(func() { go a.readLoop() })

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case r, ok := <-a.lines:
		if !ok {
			return "", io.ErrUnexpectedEOF
		}
		return r.line, r.err
	}
}

// readLoop feeds lines to readLine until input ends. The final error is
// delivered once; later reads see the closed channel.
func (a *terminalAsker) readLoop() {
	defer close(a.lines)
	for a.scanner.Scan() {
		a.lines <- lineResult{line: a.scanner.Text()}
	}
	if err := a.scanner.Err(); err != nil {
		a.lines <- lineResult{err: fmt.Errorf("reading answer: %w", err)}
		return
	}
	a.lines <- lineResult{err: io.ErrUnexpectedEOF}
}

// IsInterrupted reports whether err came from a cancelled prompt or closed input.
func IsInterrupted(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, io.ErrUnexpectedEOF)
}
