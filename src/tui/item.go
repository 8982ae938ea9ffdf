package tui

import (
	"fmt"

	"dunemcp/src/contracts"
)

// Item wraps a diagnostic for display and implements bubbles/list.Item.
type Item struct {
	Diagnostic contracts.Diagnostic
	styles     *StyleConfig
}

// FilterValue is the value used for fuzzy filtering.
func (i Item) FilterValue() string {
	return i.Diagnostic.File + " " + i.Diagnostic.Message
}

// Title returns the primary text for the item (required by list.Item).
func (i Item) Title() string {
	sev := i.styles.SeverityStyle(i.Diagnostic.Severity == contracts.SeverityError).
		Render(string(i.Diagnostic.Severity))
	return fmt.Sprintf("%s %s:%d:%d", sev, i.Diagnostic.File, i.Diagnostic.Line, i.Diagnostic.Column)
}

// Description returns the secondary text for the item (required by list.Item).
func (i Item) Description() string {
	return Clean(i.Diagnostic.Message)
}
