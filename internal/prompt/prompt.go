// Package prompt reads onboarding answers from the controlling terminal, so
// interactive prompts keep working even when stdin carries piped data.
package prompt

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"iotexsetup/internal/catalog"
)

// ErrMissingCredential is returned when no API key was given and no terminal
// is available to ask for one
var ErrMissingCredential = errors.New("API key required: pass it as an argument or run from a terminal")

// Terminal prompts on the controlling terminal
type Terminal struct {
	in     *bufio.Reader
	out    io.Writer
	closer io.Closer
}

// New opens the controlling terminal. It fails when the process has none,
// e.g. under cron or CI.
func New() (*Terminal, error) {
	in, out, closer, err := openTTY()
	if err != nil {
		return nil, fmt.Errorf("no controlling terminal: %w", err)
	}
	return &Terminal{in: bufio.NewReader(in), out: out, closer: closer}, nil
}

// NewWithStreams builds a Terminal over arbitrary streams, for tests
func NewWithStreams(in io.Reader, out io.Writer) *Terminal {
	return &Terminal{in: bufio.NewReader(in), out: out}
}

// Close releases the terminal handle
func (t *Terminal) Close() error {
	if t.closer == nil {
		return nil
	}
	return t.closer.Close()
}

func (t *Terminal) readLine() (string, error) {
	line, err := t.in.ReadString('\n')
	if err != nil && line == "" {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// PromptAPIKey asks for the gateway API key
func (t *Terminal) PromptAPIKey() (string, error) {
	fmt.Fprint(t.out, "Enter your IoTeX AI gateway API key: ")
	key, err := t.readLine()
	if err != nil {
		return "", ErrMissingCredential
	}
	if key == "" {
		return "", ErrMissingCredential
	}
	return key, nil
}

// SelectModel shows a numbered menu over entries and returns the chosen one.
// Empty input or an unusable answer selects the first (recommended) entry.
func (t *Terminal) SelectModel(title string, entries []catalog.Entry) (catalog.Entry, error) {
	if len(entries) == 0 {
		return catalog.Entry{}, fmt.Errorf("no models to select from")
	}

	fmt.Fprintf(t.out, "\n%s\n", title)
	for i, e := range entries {
		marker := ""
		if i == 0 {
			marker = " (recommended)"
		}
		fmt.Fprintf(t.out, "  %d. %s (%s) - %s%s\n", i+1, e.Name, e.ID, e.PriceNote, marker)
	}
	fmt.Fprintf(t.out, "Select [1-%d], Enter for 1: ", len(entries))

	input, err := t.readLine()
	if err != nil {
		return catalog.Entry{}, fmt.Errorf("failed to read selection: %w", err)
	}
	if input == "" {
		return entries[0], nil
	}

	choice, err := strconv.Atoi(input)
	if err != nil || choice < 1 || choice > len(entries) {
		fmt.Fprintf(t.out, "Invalid choice %q, using %s\n", input, entries[0].ID)
		return entries[0], nil
	}
	return entries[choice-1], nil
}

// Confirm asks a yes/no question. Empty input returns defaultYes.
func (t *Terminal) Confirm(question string, defaultYes bool) (bool, error) {
	suffix := "[y/N]"
	if defaultYes {
		suffix = "[Y/n]"
	}
	fmt.Fprintf(t.out, "%s %s: ", question, suffix)

	input, err := t.readLine()
	if err != nil {
		return false, fmt.Errorf("failed to read answer: %w", err)
	}
	if input == "" {
		return defaultYes, nil
	}
	switch strings.ToLower(input) {
	case "y", "yes":
		return true, nil
	case "n", "no":
		return false, nil
	default:
		return defaultYes, nil
	}
}
