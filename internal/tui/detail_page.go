package tui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/brizzai/apidoc-filter/internal/descriptor"
	"github.com/brizzai/apidoc-filter/internal/tui/models"
	tea "github.com/charmbracelet/bubbletea"
)

// BackToListMsg signals to go back to the operation list
type BackToListMsg struct{}

// DetailPageModel shows the parameters and responses of one operation
type DetailPageModel struct {
	item     models.OperationItem
	docsPath string
	width    int
}

// NewDetailPageModel creates the detail page of item. docsPath is the docs
// endpoint the page links to.
func NewDetailPageModel(item models.OperationItem, docsPath string) DetailPageModel {
	return DetailPageModel{item: item, docsPath: docsPath}
}

// Init initializes the model
func (m DetailPageModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the detail page
func (m DetailPageModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "esc", "backspace":
			return m, func() tea.Msg { return BackToListMsg{} }
		}
	case tea.WindowSizeMsg:
		m.width = msg.Width
	}
	return m, nil
}

// View renders the detail page
func (m DetailPageModel) View() string {
	op := m.item.Operation
	var sb strings.Builder

	sb.WriteString(titleStyle.Render(strings.TrimSpace(m.item.Title())))
	sb.WriteString("\n\n")
	if summary := m.item.Summary(); summary != "" {
		sb.WriteString(summary)
		sb.WriteString("\n\n")
	}
	if op.OperationID != "" {
		sb.WriteString(labelStyle.Render("operation id: ") + op.OperationID + "\n")
	}
	if len(op.Tags) > 0 {
		sb.WriteString(labelStyle.Render("tags: ") + strings.Join(op.Tags, ", ") + "\n")
	}
	if m.docsPath != "" {
		sb.WriteString(labelStyle.Render("document: ") + m.docsPath + "?path=" + m.item.Path + "\n")
	}

	sb.WriteString("\n" + editHeaderStyle.Render("Parameters") + "\n")
	if len(op.Parameters) == 0 {
		sb.WriteString("  none\n")
	}
	for _, p := range op.Parameters {
		sb.WriteString("  " + describeParameter(p) + "\n")
	}
	if m.item.RemovedParameters > 0 {
		sb.WriteString(labelStyle.Render(fmt.Sprintf("  %s hidden by the access filter", pluralize(m.item.RemovedParameters, "parameter"))) + "\n")
	}
	if m.item.WriteVariant != "" {
		sb.WriteString(variantStyle.Render("  body uses the write variant "+m.item.WriteVariant) + "\n")
	}

	if len(op.Responses) > 0 {
		sb.WriteString("\n" + editHeaderStyle.Render("Responses") + "\n")
		codes := make([]string, 0, len(op.Responses))
		for code := range op.Responses {
			codes = append(codes, code)
		}
		sort.Strings(codes)
		for _, code := range codes {
			resp := op.Responses[code]
			line := "  " + code
			if resp != nil && resp.Description != "" {
				line += " " + resp.Description
			}
			if resp != nil && resp.Schema != nil {
				line += " -> " + schemaName(resp.Schema)
			}
			sb.WriteString(line + "\n")
		}
	}

	sb.WriteString("\n" + labelStyle.Render("(esc) Back | (q) Quit"))
	return docStyle.Render(sb.String())
}

func describeParameter(p *descriptor.Parameter) string {
	var b strings.Builder
	b.WriteString(p.Name)
	b.WriteString(" (")
	b.WriteString(p.In)
	b.WriteString(")")
	switch {
	case p.Schema != nil:
		b.WriteString(" " + schemaName(p.Schema))
	case p.Type != "":
		b.WriteString(" " + p.Type)
	}
	if p.Required {
		b.WriteString(" required")
	}
	return b.String()
}

func schemaName(s *descriptor.Schema) string {
	if s == nil {
		return "object"
	}
	if name := s.SimpleRef(); name != "" {
		return name
	}
	if s.IsArray() {
		return "[]" + schemaName(s.Items)
	}
	if s.Type != "" {
		return s.Type
	}
	return "object"
}
