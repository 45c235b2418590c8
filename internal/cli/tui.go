package cli

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

// =============================================================================
// MessageInputModel - Single-line message prompt
// =============================================================================

// MessageInputModel is the bubbletea model for the quickstart message prompt.
type MessageInputModel struct {
	Prompt      string
	Placeholder string
	Input       []rune
	Submitted   bool
	Cancelled   bool
}

// NewMessageInputModel creates a message prompt with a placeholder that is
// used when the user submits an empty line.
func NewMessageInputModel(prompt, placeholder string) MessageInputModel {
	return MessageInputModel{
		Prompt:      prompt,
		Placeholder: placeholder,
	}
}

func (m MessageInputModel) Init() tea.Cmd {
	return nil
}

func (m MessageInputModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			m.Cancelled = true
			return m, tea.Quit
		case tea.KeyEnter:
			m.Submitted = true
			return m, tea.Quit
		case tea.KeyBackspace:
			if len(m.Input) > 0 {
				m.Input = m.Input[:len(m.Input)-1]
			}
		case tea.KeyRunes:
			m.Input = append(m.Input, msg.Runes...)
		case tea.KeySpace:
			m.Input = append(m.Input, ' ')
		}
	}
	return m, nil
}

func (m MessageInputModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render(m.Prompt))
	b.WriteString("\n")
	b.WriteString(StyleDim.Render("⏎ submit  esc cancel"))
	b.WriteString("\n\n")

	b.WriteString(StyleHighlight.Render("> "))
	if len(m.Input) == 0 {
		b.WriteString(StyleDim.Render(m.Placeholder))
	} else {
		b.WriteString(StyleValue.Render(string(m.Input)))
	}
	b.WriteString(StyleHighlight.Render("▌"))
	b.WriteString("\n")

	return b.String()
}

// Message returns the submitted text, falling back to the placeholder when
// the user pressed enter on an empty line.
func (m MessageInputModel) Message() string {
	if len(m.Input) == 0 {
		return m.Placeholder
	}
	return string(m.Input)
}
