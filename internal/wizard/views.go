package wizard

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"iotexsetup/internal/catalog"
	"iotexsetup/internal/utils"
)

// Styles for the wizard
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205"))

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("229")).
			Background(lipgloss.Color("57")).
			Bold(true)

	normalStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Bold(true)

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	separatorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("238"))
)

// View implements tea.Model
func (m Model) View() string {
	switch m.step {
	case StepLLM:
		return m.renderList("Choose a chat model", m.llmModels, m.llmCursor)
	case StepAudio:
		return m.renderList("Choose an audio transcription model", m.audioModels, m.audioCursor)
	case StepAPIKey:
		return m.renderAPIKey()
	case StepDefault:
		return m.renderDefault()
	case StepConfirm:
		return m.renderConfirm()
	}
	return ""
}

func (m Model) header(title string) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("IoTeX AI Gateway Setup"))
	b.WriteString("\n")
	b.WriteString(separatorStyle.Render(strings.Repeat("─", 50)))
	b.WriteString("\n\n")
	b.WriteString(normalStyle.Render(title))
	b.WriteString("\n\n")
	return b.String()
}

func (m Model) footer(help string) string {
	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(separatorStyle.Render(strings.Repeat("─", 50)))
	b.WriteString("\n")
	b.WriteString(helpStyle.Render(help))
	return b.String()
}

func (m Model) renderList(title string, entries []catalog.Entry, cursor int) string {
	var b strings.Builder
	b.WriteString(m.header(title))

	for i, e := range entries {
		line := fmt.Sprintf("  %s (%s) - %s", e.Name, e.ID, e.PriceNote)
		if i == 0 {
			line += " (recommended)"
		}
		if i == cursor {
			b.WriteString(selectedStyle.Render("▸" + line[1:]))
		} else {
			b.WriteString(normalStyle.Render(line))
		}
		b.WriteString("\n")
	}

	b.WriteString(m.footer("j/↓, k/↑: move │ Enter: select │ Esc: back │ Ctrl+C: quit"))
	return b.String()
}

func (m Model) renderAPIKey() string {
	var b strings.Builder
	b.WriteString(m.header("Enter your gateway API key"))
	b.WriteString("  ")
	b.WriteString(m.keyInput.View())
	b.WriteString("\n")

	if m.errorMsg != "" {
		b.WriteString("\n")
		b.WriteString(errorStyle.Render("✗ " + m.errorMsg))
		b.WriteString("\n")
	}

	b.WriteString(m.footer("Enter: confirm │ Esc: back │ Ctrl+C: quit"))
	return b.String()
}

func (m Model) renderDefault() string {
	var b strings.Builder
	b.WriteString(m.header(fmt.Sprintf("Use %s as the default agent model?", m.llmModels[m.llmCursor].ID)))

	options := []struct {
		label    string
		selected bool
	}{
		{"No, keep the current default", !m.setDefault},
		{"Yes, switch the default", m.setDefault},
	}
	for _, opt := range options {
		if opt.selected {
			b.WriteString(selectedStyle.Render("▸ " + opt.label))
		} else {
			b.WriteString(normalStyle.Render("  " + opt.label))
		}
		b.WriteString("\n")
	}

	b.WriteString(m.footer("j/↓, k/↑: toggle │ Enter: confirm │ Esc: back │ Ctrl+C: quit"))
	return b.String()
}

func (m Model) renderConfirm() string {
	req := m.Request()

	var b strings.Builder
	b.WriteString(m.header("Review your setup"))
	b.WriteString(dimStyle.Render("  Chat model:  "))
	b.WriteString(normalStyle.Render(req.LLMModelID))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render("  Audio model: "))
	b.WriteString(normalStyle.Render(req.AudioModelID))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render("  API key:     "))
	b.WriteString(normalStyle.Render(utils.MaskAPIKey(req.APIKey)))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render("  Set default: "))
	if req.SetAsDefault {
		b.WriteString(normalStyle.Render("yes"))
	} else {
		b.WriteString(normalStyle.Render("no"))
	}
	b.WriteString("\n")

	b.WriteString(m.footer("Enter: apply │ Esc: back │ Ctrl+C: quit"))
	return b.String()
}
