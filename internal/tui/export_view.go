package tui

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	adjustments "github.com/brizzai/apidoc-filter/internal/models"
	"github.com/brizzai/apidoc-filter/internal/tui/models"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"gopkg.in/yaml.v3"
)

// ExportView prompts for a filename and writes the route selection and
// description edits as an adjustments file
type ExportView struct {
	operations   []*models.OperationItem
	textInput    textinput.Model
	err          error
	width        int
	height       int
	exportStatus string
	Success      bool
}

// NewExportView creates a new export view
func NewExportView(operations []*models.OperationItem) ExportView {
	ti := textinput.New()
	ti.Placeholder = "filename.yaml"
	ti.Focus()
	ti.Width = 40

	return ExportView{
		operations: operations,
		textInput:  ti,
	}
}

// Init initializes the export view
func (m ExportView) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages for the export view
func (m ExportView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			return m, func() tea.Msg { return BackToMainMsg{} }
		case "enter":
			if m.textInput.Value() == "" {
				m.exportStatus = "Please enter a filename"
				return m, nil
			}

			filename := m.textInput.Value()
			if !strings.HasSuffix(filename, ".yaml") && !strings.HasSuffix(filename, ".yml") {
				filename += ".yaml"
			}

			err := ExportAdjustmentsFile(m.operations, filename)
			if err != nil {
				m.err = err
				m.exportStatus = fmt.Sprintf("Error exporting: %v", err)
				return m, nil
			}

			if _, err := os.Stat(filename); os.IsNotExist(err) {
				m.exportStatus = fmt.Sprintf("Error: File %s was not created", filename)
				return m, nil
			}

			m.Success = true
			m.exportStatus = completeMessageStyle(fmt.Sprintf("Successfully exported to %s", filename))
			// Wait for 1 second, then exit the application
			return m, tea.Sequence(
				tea.Tick(time.Second*1, func(time.Time) tea.Msg {
					return tea.Quit()
				}),
			)
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	}

	m.textInput, cmd = m.textInput.Update(msg)
	return m, cmd
}

// View renders the export view
func (m ExportView) View() string {
	var sb strings.Builder

	// Calculate vertical centering
	verticalPadding := (m.height - 6) / 2
	for i := 0; i < verticalPadding; i++ {
		sb.WriteString("\n")
	}

	title := titleStyle.Render("Export Adjustments")
	sb.WriteString(centerText(title, m.width))
	sb.WriteString("\n\n")

	prompt := "Enter the adjustments filename:"
	sb.WriteString(centerText(prompt, m.width))
	sb.WriteString("\n")

	input := m.textInput.View()
	sb.WriteString(centerText(input, m.width))
	sb.WriteString("\n\n")

	if m.exportStatus != "" {
		sb.WriteString(centerText(m.exportStatus, m.width))
		sb.WriteString("\n")
	}

	sb.WriteString("\n")
	sb.WriteString(centerText("(esc) Back to list | (enter) Export", m.width))

	return sb.String()
}

// BackToMainMsg signals to leave the export page
type BackToMainMsg struct{}

// ErrNothingSelected is returned when every operation was dropped. An
// adjustments file without routes selects everything.
var ErrNothingSelected = errors.New("every operation is dropped from the route selection")

// ExportAdjustmentsFile writes the selection and description edits of
// operations as an adjustments file the parser can load.
func ExportAdjustmentsFile(operations []*models.OperationItem, filename string) error {
	if len(operations) > 0 && selectedCount(operations) == 0 {
		return ErrNothingSelected
	}
	yamlData, err := yaml.Marshal(BuildAdjustments(operations))
	if err != nil {
		return err
	}
	return os.WriteFile(filename, yamlData, 0o644)
}

// BuildAdjustments groups the edits of operations by path, keeping the order
// in which paths first appear.
func BuildAdjustments(operations []*models.OperationItem) adjustments.Adjustments {
	var out adjustments.Adjustments
	descriptions := make(map[string]int)
	selections := make(map[string]int)

	for _, op := range operations {
		if op.NewDescription != "" {
			i, ok := descriptions[op.Path]
			if !ok {
				i = len(out.Descriptions)
				descriptions[op.Path] = i
				out.Descriptions = append(out.Descriptions, adjustments.RouteDescription{Path: op.Path})
			}
			out.Descriptions[i].Updates = append(out.Descriptions[i].Updates, adjustments.RouteFieldUpdate{
				Method:         op.Method,
				NewDescription: op.NewDescription,
			})
		}

		if !op.IsRemoved {
			i, ok := selections[op.Path]
			if !ok {
				i = len(out.Routes)
				selections[op.Path] = i
				out.Routes = append(out.Routes, adjustments.RouteSelection{Path: op.Path})
			}
			out.Routes[i].Methods = append(out.Routes[i].Methods, op.Method)
		}
	}
	return out
}

func selectedCount(operations []*models.OperationItem) int {
	n := 0
	for _, op := range operations {
		if !op.IsRemoved {
			n++
		}
	}
	return n
}

// Helper function to center text horizontally
func centerText(text string, width int) string {
	if width <= len(text) {
		return text
	}

	padding := (width - len(text)) / 2
	return strings.Repeat(" ", padding) + text
}
