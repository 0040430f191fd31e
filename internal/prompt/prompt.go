// Package prompt collects answers from an operator and turns them into the
// flat field maps scaffolding templates consume.
package prompt

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// Kind is the shape of a question.
type Kind string

const (
	// KindInput is a free-text question.
	KindInput Kind = "input"
	// KindList is a single choice among Choices.
	KindList Kind = "list"
)

// Question is one prompt shown to the operator.
type Question struct {
	Name    string
	Message string
	Kind    Kind
	Choices []string // KindList only
}

// Answers maps question names to the operator's answers.
type Answers map[string]string

// Asker collects answers to a batch of questions. Implementations own all
// terminal or transport I/O.
type Asker interface {
	Ask(ctx context.Context, questions []Question) (Answers, error)
}

// Sentinel errors for answer collection.
var (
	// ErrEmptyAnswer indicates a required free-text answer was blank.
	ErrEmptyAnswer = errors.New("answer is empty")
	// ErrInvalidChoice indicates a list answer is not one of the choices.
	ErrInvalidChoice = errors.New("answer is not a valid choice")
	// ErrMissingAnswer indicates a scripted asker has no answer for a question.
	ErrMissingAnswer = errors.New("no answer provided")
)

// AnswerError ties an answer problem to the question that caused it.
type AnswerError struct {
	Question string
	Err      error
}

// Error returns the message prefixed with the question name.
func (e *AnswerError) Error() string {
	return e.Question + ": " + e.Err.Error()
}

// Unwrap returns the underlying error for use with errors.Is/As.
func (e *AnswerError) Unwrap() error {
	return e.Err
}

// matchChoice resolves answer against choices, accepting either the choice
// itself or its 1-based index.
func matchChoice(answer string, choices []string) (string, bool) {
	answer = strings.TrimSpace(answer)
	for i, c := range choices {
		if answer == c || answer == fmt.Sprint(i+1) {
			return c, true
		}
	}
	return "", false
}

// Scripted answers questions from a fixed map, as used by non-interactive
// runs. List answers are still checked against their choices.
type Scripted Answers

// Ask returns the scripted answer for each question.
func (s Scripted) Ask(_ context.Context, questions []Question) (Answers, error) {
	out := make(Answers, len(questions))
	for _, q := range questions {
		v, ok := s[q.Name]
		if !ok {
			return nil, &AnswerError{Question: q.Name, Err: ErrMissingAnswer}
		}
		if q.Kind == KindList {
			c, ok := matchChoice(v, q.Choices)
			if !ok {
				return nil, &AnswerError{Question: q.Name, Err: fmt.Errorf("%w: %q (choices: %s)",
					ErrInvalidChoice, v, strings.Join(q.Choices, ", "))}
			}
			v = c
		}
		out[q.Name] = v
	}
	return out, nil
}

// ParseAssignments parses key=value pairs such as those given to --set.
func ParseAssignments(pairs []string) (Answers, error) {
	out := make(Answers, len(pairs))
	for _, p := range pairs {
		k, v, ok := strings.Cut(p, "=")
		k = strings.TrimSpace(k)
		if !ok || k == "" {
			return nil, fmt.Errorf("invalid assignment %q: want key=value", p)
		}
		out[k] = v
	}
	return out, nil
}

// Prefilled answers questions found in Answers and forwards the rest to
// Fallback. With a nil Fallback, unanswered questions are an error.
type Prefilled struct {
	Answers  Answers
	Fallback Asker
}

// Ask merges prefilled answers with those collected by Fallback.
func (p Prefilled) Ask(ctx context.Context, questions []Question) (Answers, error) {
	var known, rest []Question
	for _, q := range questions {
		if _, ok := p.Answers[q.Name]; ok || p.Fallback == nil {
			known = append(known, q)
		} else {
			rest = append(rest, q)
		}
	}

	out, err := Scripted(p.Answers).Ask(ctx, known)
	if err != nil {
		return nil, err
	}
	if len(rest) == 0 {
		return out, nil
	}

	more, err := p.Fallback.Ask(ctx, rest)
	if err != nil {
		return nil, err
	}
	for k, v := range more {
		out[k] = v
	}
	return out, nil
}
