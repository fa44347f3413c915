package prompt

import (
	"fmt"
	"slices"
)

// Scripted answers prompts from a fixed list, in order. It records every
// label it was asked.
type Scripted struct {
	Answers []string
	Asked   []string
}

func (s *Scripted) next(label string) (string, error) {
	s.Asked = append(s.Asked, label)
	if len(s.Answers) == 0 {
		return "", fmt.Errorf("no answer scripted for %q", label)
	}
	answer := s.Answers[0]
	s.Answers = s.Answers[1:]
	return answer, nil
}

// Select returns the next answer, which must be one of items.
func (s *Scripted) Select(label string, items []string) (string, error) {
	answer, err := s.next(label)
	if err != nil {
		return "", err
	}
	if !slices.Contains(items, answer) {
		return "", fmt.Errorf("%q is not an option of %q", answer, label)
	}
	return answer, nil
}

// Input returns the next answer, or defaultValue for an empty one.
func (s *Scripted) Input(label, defaultValue string) (string, error) {
	answer, err := s.next(label)
	if err != nil {
		return "", err
	}
	if answer == "" {
		return defaultValue, nil
	}
	return answer, nil
}
