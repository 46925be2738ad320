package wizard

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"iotexsetup/config"
	"iotexsetup/internal/catalog"
)

// Step identifies the current wizard screen
type Step int

const (
	StepLLM Step = iota
	StepAudio
	StepAPIKey
	StepDefault
	StepConfirm
)

// KeyMap defines the wizard keyboard shortcuts
type KeyMap struct {
	Up      key.Binding
	Down    key.Binding
	Confirm key.Binding
	Back    key.Binding
	Quit    key.Binding
}

// DefaultKeyMap returns the default key bindings
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/↑", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/↓", "down"),
		),
		Confirm: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("Enter", "confirm"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("Esc", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("Ctrl+C", "quit"),
		),
	}
}

// Model holds the wizard state
type Model struct {
	step        Step
	keys        KeyMap
	llmModels   []catalog.Entry
	audioModels []catalog.Entry
	llmCursor   int
	audioCursor int
	keyInput    textinput.Model
	setDefault  bool
	confirmed   bool
	errorMsg    string
	width       int
}

// NewModel builds the wizard starting at the chat-model screen
func NewModel() Model {
	keyInput := textinput.New()
	keyInput.Placeholder = "gateway API key"
	keyInput.CharLimit = 256
	keyInput.Width = 40
	keyInput.Prompt = ""
	keyInput.EchoMode = textinput.EchoPassword
	keyInput.EchoCharacter = '•'

	return Model{
		step:        StepLLM,
		keys:        DefaultKeyMap(),
		llmModels:   catalog.LLMModels(),
		audioModels: catalog.AudioModels(),
		keyInput:    keyInput,
	}
}

// Request assembles the onboarding request from the current state
func (m Model) Request() config.SetupRequest {
	return config.SetupRequest{
		APIKey:       strings.TrimSpace(m.keyInput.Value()),
		LLMModelID:   m.llmModels[m.llmCursor].ID,
		AudioModelID: m.audioModels[m.audioCursor].ID,
		SetAsDefault: m.setDefault,
	}
}

// Init implements tea.Model
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case tea.KeyMsg:
		if key.Matches(msg, m.keys.Quit) {
			m.confirmed = false
			return m, tea.Quit
		}
		if key.Matches(msg, m.keys.Back) {
			return m.back()
		}

		switch m.step {
		case StepLLM:
			return m.updateList(msg, &m.llmCursor, len(m.llmModels), StepAudio)
		case StepAudio:
			return m.updateList(msg, &m.audioCursor, len(m.audioModels), StepAPIKey)
		case StepAPIKey:
			return m.updateAPIKey(msg)
		case StepDefault:
			return m.updateDefault(msg)
		case StepConfirm:
			if key.Matches(msg, m.keys.Confirm) {
				m.confirmed = true
				return m, tea.Quit
			}
		}
	}

	return m, nil
}

// back steps to the previous screen, or cancels from the first one
func (m Model) back() (tea.Model, tea.Cmd) {
	m.errorMsg = ""
	switch m.step {
	case StepLLM:
		m.confirmed = false
		return m, tea.Quit
	case StepAudio:
		m.step = StepLLM
	case StepAPIKey:
		m.keyInput.Blur()
		m.step = StepAudio
	case StepDefault:
		m.step = StepAPIKey
		m.keyInput.Focus()
	case StepConfirm:
		m.step = StepDefault
	}
	return m, nil
}

func (m Model) updateList(msg tea.KeyMsg, cursor *int, length int, next Step) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Up):
		if *cursor > 0 {
			*cursor--
		}
	case key.Matches(msg, m.keys.Down):
		if *cursor < length-1 {
			*cursor++
		}
	case key.Matches(msg, m.keys.Confirm):
		m.step = next
		if next == StepAPIKey {
			m.keyInput.Focus()
			return m, textinput.Blink
		}
	}
	return m, nil
}

func (m Model) updateAPIKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Confirm) {
		if strings.TrimSpace(m.keyInput.Value()) == "" {
			m.errorMsg = "API key cannot be empty"
			return m, nil
		}
		m.errorMsg = ""
		m.keyInput.Blur()
		m.step = StepDefault
		return m, nil
	}

	var cmd tea.Cmd
	m.keyInput, cmd = m.keyInput.Update(msg)
	return m, cmd
}

func (m Model) updateDefault(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Up), key.Matches(msg, m.keys.Down):
		m.setDefault = !m.setDefault
	case key.Matches(msg, m.keys.Confirm):
		m.step = StepConfirm
	}
	return m, nil
}
