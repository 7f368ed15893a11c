package models

import (
	"fmt"
	"strings"

	"github.com/brizzai/apidoc-filter/internal/descriptor"
	"github.com/charmbracelet/lipgloss"
)

// OperationItem wraps an operation of a filtered document for display in the list
// Implements list.Item
type OperationItem struct {
	Path      string
	Method    string
	Operation *descriptor.Operation
	// RemovedParameters counts the parameters the access filter dropped.
	RemovedParameters int
	// WriteVariant names the synthesized model the request body now uses.
	WriteVariant   string
	NewDescription string
	IsRemoved      bool
}

func (i OperationItem) Title() string {
	return fmt.Sprintf("%s %s ", i.Method, i.Path)
}

func (i OperationItem) Description() string {
	if i.IsRemoved {
		return lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF0000")).
			Render("[Removed]")
	}

	var parts []string
	if len(i.Operation.Tags) > 0 {
		parts = append(parts, "["+strings.Join(i.Operation.Tags, ", ")+"]")
	}
	parts = append(parts, i.Summary())
	if i.RemovedParameters > 0 {
		parts = append(parts, fmt.Sprintf("(-%d params)", i.RemovedParameters))
	}
	if i.WriteVariant != "" {
		parts = append(parts, "(body: "+i.WriteVariant+")")
	}
	return strings.Join(parts, " ")
}

// Summary returns the edited description, falling back to the operation's
// summary and then its description.
func (i OperationItem) Summary() string {
	if i.NewDescription != "" {
		return i.NewDescription
	}
	if i.Operation.Summary != "" {
		return i.Operation.Summary
	}
	return i.Operation.Description
}

func (i OperationItem) UpdatedDescription(newDescription string) OperationItem {
	i.NewDescription = newDescription
	return i
}

func (i OperationItem) ToggleRemoved() OperationItem {
	i.IsRemoved = !i.IsRemoved
	return i
}

func (i OperationItem) FilterValue() string {
	return i.Method + " " + i.Path + " " + strings.Join(i.Operation.Tags, " ") + " " + i.Summary()
}
