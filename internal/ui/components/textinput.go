package components

import (
	"strconv"
	"strings"

	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/mcqtrainer/internal/ui/theme"
)

// NumberInput wraps bubbles/textinput for small positive integers such as
// the weak-question threshold.
type NumberInput struct {
	Model textinput.Model
	Label string
	err   string
}

// NewNumberInput creates an unfocused input holding value.
func NewNumberInput(label string, value, maxDigits int) NumberInput {
	ti := textinput.New()
	ti.Placeholder = strconv.Itoa(value)
	ti.CharLimit = maxDigits
	ti.SetValue(strconv.Itoa(value))

	return NumberInput{Model: ti, Label: label}
}

// Focus starts editing.
func (n *NumberInput) Focus() tea.Cmd {
	n.err = ""
	return n.Model.Focus()
}

// Blur stops editing.
func (n *NumberInput) Blur() {
	n.Model.Blur()
}

// Focused reports whether the input is being edited.
func (n NumberInput) Focused() bool {
	return n.Model.Focused()
}

// Update handles messages. Non-digit characters are dropped.
func (n NumberInput) Update(msg tea.Msg) (NumberInput, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok {
		key := kmsg.String()
		if len(key) == 1 && (key[0] < '0' || key[0] > '9') {
			return n, nil
		}
	}

	var cmd tea.Cmd
	n.Model, cmd = n.Model.Update(msg)
	return n, cmd
}

// Value parses the input. It fails for empty or non-positive values and
// remembers the failure for View.
func (n *NumberInput) Value() (int, bool) {
	v, err := strconv.Atoi(strings.TrimSpace(n.Model.Value()))
	if err != nil || v < 1 {
		n.err = "enter a number of at least 1"
		return 0, false
	}
	n.err = ""
	return v, true
}

// View renders the label, the input and any validation message.
func (n NumberInput) View() string {
	label := theme.Dimmed.Render(n.Label + ": ")
	view := label + n.Model.View()
	if n.err != "" {
		view += "  " + theme.Incorrect.Render("✗ "+n.err)
	}
	return view
}
