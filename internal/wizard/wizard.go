// Package wizard provides a full-screen onboarding flow for the IoTeX
// gateway setup, used when the command runs with --wizard.
package wizard

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"iotexsetup/config"
)

// Run walks the user through model selection, credential entry and the
// default toggle. It returns the assembled request and whether the user
// confirmed it.
func Run() (config.SetupRequest, bool, error) {
	if !isTerminal() {
		return config.SetupRequest{}, false, fmt.Errorf("the setup wizard requires a terminal")
	}

	p := tea.NewProgram(NewModel(), tea.WithAltScreen())
	final, err := p.Run()
	if err != nil {
		return config.SetupRequest{}, false, err
	}

	m, ok := final.(Model)
	if !ok {
		return config.SetupRequest{}, false, fmt.Errorf("unexpected wizard model type %T", final)
	}
	return m.Request(), m.confirmed, nil
}

// isTerminal checks if stdin is a terminal
func isTerminal() bool {
	fileInfo, err := os.Stdin.Stat()
	if err != nil {
		return false
	}
	return (fileInfo.Mode() & os.ModeCharDevice) != 0
}
