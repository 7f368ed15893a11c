package tui

import (
	"fmt"
	"strings"

	"github.com/brizzai/apidoc-filter/internal/tui/models"
	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
)

// editCanceledMsg leaves the editor without saving
type editCanceledMsg struct{}

// DescriptionEditorModal edits the published description of one operation.
type DescriptionEditorModal struct {
	textarea textarea.Model
	title    string
	// original is the operation's own summary, restored with ctrl+r
	original string
}

// NewEditModal opens the editor on the current description of item.
func NewEditModal(item models.OperationItem) DescriptionEditorModal {
	ta := textarea.New()
	ta.Placeholder = "Describe the operation"
	ta.CharLimit = 0
	ta.SetValue(item.Summary())
	ta.Focus()

	return DescriptionEditorModal{
		textarea: ta,
		title:    strings.TrimSpace(item.Title()),
		original: item.UpdatedDescription("").Summary(),
	}
}

func (m DescriptionEditorModal) Init() tea.Cmd {
	return textarea.Blink
}

// Update handles key events of the editor. Saving is left to the caller.
func (m DescriptionEditorModal) Update(msg tea.Msg) (DescriptionEditorModal, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.Type {
		case tea.KeyCtrlC:
			return m, tea.Quit
		case tea.KeyEsc:
			return m, func() tea.Msg { return editCanceledMsg{} }
		case tea.KeyCtrlR:
			m.textarea.SetValue(m.original)
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.textarea, cmd = m.textarea.Update(msg)
	return m, cmd
}

// Description returns the edited text without surrounding whitespace.
func (m DescriptionEditorModal) Description() string {
	return strings.TrimSpace(m.textarea.Value())
}

// Changed reports whether the text differs from the operation's own summary.
func (m DescriptionEditorModal) Changed() bool {
	return m.Description() != m.original
}

func (m DescriptionEditorModal) View() string {
	var sb strings.Builder
	sb.WriteString(editHeaderStyle.Render(m.title))
	sb.WriteString("\n\n")
	if m.original != "" {
		sb.WriteString(labelStyle.Render("summary: "+m.original) + "\n\n")
	}
	sb.WriteString(m.textarea.View())
	sb.WriteString("\n\n")
	sb.WriteString(labelStyle.Render(fmt.Sprintf("%d characters | (ctrl+s) Save | (ctrl+r) Restore summary | (esc) Cancel",
		len(m.Description()))))
	return sb.String() + "\n\n"
}
