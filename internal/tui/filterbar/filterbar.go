// ABOUTME: Filter bar for dashboard lists: free-text inputs and cycled choices
// ABOUTME: Emits AppliedMsg with every field value on enter, CancelledMsg on esc

package filterbar

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/markalston/jobboard/internal/tui/styles"
)

// Choice is one value of a cycled field
type Choice struct {
	Label string
	Value string
}

// Field describes one filter. A field with Choices cycles with left/right;
// otherwise it is a text input.
type Field struct {
	Key         string
	Label       string
	Placeholder string
	Choices     []Choice
}

// AppliedMsg carries the filter values keyed by Field.Key
type AppliedMsg struct {
	Values map[string]string
}

// CancelledMsg is sent when the user leaves the bar without applying
type CancelledMsg struct{}

// Bar edits a set of filters
type Bar struct {
	fields  []Field
	inputs  []textinput.Model
	choices []int
	focus   int
	width   int
}

var (
	labelStyle    = lipgloss.NewStyle().Foreground(styles.Muted).Width(12)
	focusedLabel  = lipgloss.NewStyle().Foreground(styles.Accent).Bold(true).Width(12)
	choiceStyle   = lipgloss.NewStyle().Foreground(styles.Text)
	selectedArrow = lipgloss.NewStyle().Foreground(styles.Accent)
)

// New creates a bar with the current values preselected
func New(fields []Field, values map[string]string) *Bar {
	b := &Bar{
		fields:  fields,
		inputs:  make([]textinput.Model, len(fields)),
		choices: make([]int, len(fields)),
	}
	for i, f := range fields {
		current := values[f.Key]
		if len(f.Choices) > 0 {
			for j, c := range f.Choices {
				if c.Value == current {
					b.choices[i] = j
				}
			}
			continue
		}
		ti := textinput.New()
		ti.Placeholder = f.Placeholder
		ti.CharLimit = 128
		ti.Width = 40
		ti.SetValue(current)
		b.inputs[i] = ti
	}
	b.focusField(0)
	return b
}

// Init implements tea.Model
func (b *Bar) Init() tea.Cmd {
	return textinput.Blink
}

// Values returns the current value of every field
func (b *Bar) Values() map[string]string {
	out := make(map[string]string, len(b.fields))
	for i, f := range b.fields {
		if len(f.Choices) > 0 {
			out[f.Key] = f.Choices[b.choices[i]].Value
			continue
		}
		out[f.Key] = strings.TrimSpace(b.inputs[i].Value())
	}
	return out
}

func (b *Bar) focusField(i int) {
	if len(b.fields) == 0 {
		return
	}
	if len(b.fields[b.focus].Choices) == 0 {
		b.inputs[b.focus].Blur()
	}
	b.focus = (i + len(b.fields)) % len(b.fields)
	if len(b.fields[b.focus].Choices) == 0 {
		b.inputs[b.focus].Focus()
	}
}

// Update implements tea.Model
func (b *Bar) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		b.width = msg.Width
		return b, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return b, func() tea.Msg { return CancelledMsg{} }
		case "enter":
			values := b.Values()
			return b, func() tea.Msg { return AppliedMsg{Values: values} }
		case "tab", "down":
			b.focusField(b.focus + 1)
			return b, nil
		case "shift+tab", "up":
			b.focusField(b.focus - 1)
			return b, nil
		}

		if len(b.fields) == 0 {
			return b, nil
		}
		if choices := b.fields[b.focus].Choices; len(choices) > 0 {
			switch msg.String() {
			case "right", "l", " ":
				b.choices[b.focus] = (b.choices[b.focus] + 1) % len(choices)
			case "left", "h":
				b.choices[b.focus] = (b.choices[b.focus] - 1 + len(choices)) % len(choices)
			}
			return b, nil
		}
	}

	if len(b.fields) == 0 || len(b.fields[b.focus].Choices) > 0 {
		return b, nil
	}
	var cmd tea.Cmd
	b.inputs[b.focus], cmd = b.inputs[b.focus].Update(msg)
	return b, cmd
}

// View implements tea.Model
func (b *Bar) View() string {
	var sb strings.Builder
	for i, f := range b.fields {
		label := labelStyle
		if i == b.focus {
			label = focusedLabel
		}
		sb.WriteString(label.Render(f.Label))
		if len(f.Choices) > 0 {
			c := f.Choices[b.choices[i]]
			if i == b.focus {
				sb.WriteString(selectedArrow.Render("‹ ") + choiceStyle.Render(c.Label) + selectedArrow.Render(" ›"))
			} else {
				sb.WriteString(choiceStyle.Render(c.Label))
			}
		} else {
			sb.WriteString(b.inputs[i].View())
		}
		sb.WriteString("\n")
	}
	sb.WriteString(styles.Help.Render("tab next field • ←/→ change choice • enter apply • esc cancel"))
	return sb.String()
}
