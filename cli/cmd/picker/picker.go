// Package picker implements an interactive fuzzy finder over stored
// template names. It is opened when a template lookup has no exact match.
package picker

import (
	"context"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/lipgloss"
	"github.com/sahilm/fuzzy"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ardnew/snip/lang"
)

// Predefined errors (sentinel values).
var (
	ErrCancelled   = lang.NewError("no template selected")
	ErrNoTemplates = lang.NewError("no templates stored")
)

const (
	prompt       = "template> "
	maxVisible   = 10
	defaultWidth = 80
)

// Styles.
var (
	promptStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("6")).
			Bold(true)
	matchStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("4"))
	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("0")).
			Background(lipgloss.Color("4"))
	hintStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

// Pick opens the fuzzy finder over names, seeded with the initial query,
// and returns the selected name. Cancelling returns [ErrCancelled].
func Pick(ctx context.Context, names []string, initial string) (string, error) {
	if len(names) == 0 {
		return "", ErrNoTemplates
	}

	m := newModel(names, initial)

	// Render on stderr so generated output on stdout stays clean.
	p := tea.NewProgram(m,
		tea.WithContext(ctx),
		tea.WithOutput(os.Stderr),
	)

	final, err := p.Run()
	if err != nil {
		return "", err
	}

	result, ok := final.(model)
	if !ok || result.choice == "" {
		return "", ErrCancelled
	}

	return result.choice, nil
}

// model is the Bubble Tea model for the picker.
type model struct {
	input   textinput.Model
	names   []string
	matches fuzzy.Matches
	idx     int
	choice  string
	width   int
}

func newModel(names []string, initial string) model {
	ti := textinput.New()
	ti.Prompt = promptStyle.Render(prompt)
	ti.SetValue(initial)
	ti.Focus()
	ti.CharLimit = 256
	ti.Width = defaultWidth

	m := model{
		input: ti,
		names: names,
		width: defaultWidth,
	}
	m.refresh()

	return m
}

func (m model) Init() tea.Cmd {
	return textinput.Blink
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return m, tea.Quit

		case tea.KeyEnter:
			if m.idx < len(m.matches) {
				m.choice = m.matches[m.idx].Str
			}

			return m, tea.Quit

		case tea.KeyUp, tea.KeyCtrlP:
			if m.idx > 0 {
				m.idx--
			}

			return m, nil

		case tea.KeyDown, tea.KeyCtrlN:
			if m.idx < len(m.matches)-1 {
				m.idx++
			}

			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.input.Width = msg.Width - len(prompt) - 2

		return m, nil
	}

	var cmd tea.Cmd

	m.input, cmd = m.input.Update(msg)
	m.refresh()

	return m, cmd
}

func (m model) View() string {
	if m.choice != "" {
		return ""
	}

	var b strings.Builder

	b.WriteString(m.input.View())
	b.WriteString("\n")

	if len(m.matches) == 0 {
		b.WriteString(hintStyle.Render("no matches"))
		b.WriteString("\n")

		return b.String()
	}

	visible := m.matches
	if len(visible) > maxVisible {
		visible = visible[:maxVisible]
	}

	for i, match := range visible {
		line := renderMatch(match)
		if i == m.idx {
			line = selectedStyle.Render(match.Str)
		}

		b.WriteString("  " + line + "\n")
	}

	if len(m.matches) > maxVisible {
		b.WriteString(hintStyle.Render("  …"))
		b.WriteString("\n")
	}

	return b.String()
}

// refresh recomputes the match list for the current input. An empty query
// matches every name in store order.
func (m *model) refresh() {
	query := strings.TrimSpace(m.input.Value())

	if query == "" {
		all := make(fuzzy.Matches, len(m.names))
		for i, name := range m.names {
			all[i] = fuzzy.Match{Str: name, Index: i}
		}

		m.matches = all
	} else {
		m.matches = fuzzy.Find(query, m.names)
	}

	if m.idx >= len(m.matches) {
		m.idx = 0
	}
}

// renderMatch highlights the matched runes of a candidate name.
func renderMatch(match fuzzy.Match) string {
	matched := make(map[int]bool, len(match.MatchedIndexes))
	for _, i := range match.MatchedIndexes {
		matched[i] = true
	}

	var b strings.Builder

	for i, r := range match.Str {
		if matched[i] {
			b.WriteString(matchStyle.Render(string(r)))
		} else {
			b.WriteRune(r)
		}
	}

	return b.String()
}
