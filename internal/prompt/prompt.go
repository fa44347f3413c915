// Package prompt asks the user for choices and values on the terminal.
package prompt

import (
	"errors"
	"strings"

	"github.com/manifoldco/promptui"
)

// ErrCancelled is returned when the user aborts a prompt with Ctrl-C or Ctrl-D.
var ErrCancelled = errors.New("prompt cancelled")

// selectSize is the number of list items shown at once.
const selectSize = 10

// Prompter asks questions.
type Prompter interface {
	// Select returns one of items. Long lists can be filtered by typing.
	Select(label string, items []string) (string, error)
	// Input returns a line of text; an empty answer yields defaultValue.
	Input(label, defaultValue string) (string, error)
}

// Replaced in tests.
var (
	selectRunner = func(s promptui.Select) (int, string, error) { return s.Run() }
	promptRunner = func(p promptui.Prompt) (string, error) { return p.Run() }
)

type terminal struct{}

// New returns a Prompter on the controlling terminal.
func New() Prompter {
	return terminal{}
}

func (terminal) Select(label string, items []string) (string, error) {
	s := promptui.Select{
		Label:    label,
		Items:    items,
		Size:     selectSize,
		Searcher: searcher(items),
	}
	_, choice, err := selectRunner(s)
	if err != nil {
		return "", translate(err)
	}
	return choice, nil
}

func (terminal) Input(label, defaultValue string) (string, error) {
	p := promptui.Prompt{
		Label:     label,
		Default:   defaultValue,
		AllowEdit: defaultValue != "",
	}
	answer, err := promptRunner(p)
	if err != nil {
		return "", translate(err)
	}
	answer = strings.TrimSpace(answer)
	if answer == "" {
		return defaultValue, nil
	}
	return answer, nil
}

// searcher matches items containing the input, ignoring case.
func searcher(items []string) func(input string, index int) bool {
	return func(input string, index int) bool {
		return strings.Contains(strings.ToLower(items[index]), strings.ToLower(input))
	}
}

func translate(err error) error {
	if errors.Is(err, promptui.ErrInterrupt) || errors.Is(err, promptui.ErrEOF) || errors.Is(err, promptui.ErrAbort) {
		return ErrCancelled
	}
	return err
}
