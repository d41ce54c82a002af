// Package tui is the terminal front end: a Bubble Tea model showing the
// calculator display, the history log, and modal dialogs.
package tui

import (
	"context"
	"fmt"
	"io"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/joeycumines/one-shot-calc/internal/app"
	"github.com/joeycumines/one-shot-calc/internal/calculator"
	"github.com/joeycumines/one-shot-calc/internal/history"
)

const (
	displayWidth       = 28
	defaultHistoryRows = 10
)

type mode int

const (
	modeNormal mode = iota
	modeConfirm
	modeAlert
)

// Model is the tea.Model driving a Calculator.
type Model struct {
	calc   *app.Calculator
	frame  app.Frame
	styles Styles
	rows   int

	mode   mode
	alert  string
	cursor int
	offset int

	quitting bool
}

var _ tea.Model = Model{}

// Option configures a Model.
type Option func(*Model)

// WithStyles replaces DefaultStyles.
func WithStyles(s Styles) Option {
	return func(m *Model) { m.styles = s }
}

// WithHistoryRows sets how many history entries are visible at once.
func WithHistoryRows(n int) Option {
	return func(m *Model) {
		if n > 0 {
			m.rows = n
		}
	}
}

// New creates a Model over calc.
func New(calc *app.Calculator, opts ...Option) Model {
	m := Model{
		calc:   calc,
		frame:  calc.Frame(),
		styles: DefaultStyles(),
		rows:   defaultHistoryRows,
	}
	for _, opt := range opts {
		opt(&m)
	}
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd { return nil }

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	k := key.String()
	if k == "ctrl+c" {
		m.quitting = true
		return m, tea.Quit
	}

	// typed-ahead or pasted characters arrive together
	if key.Type == tea.KeyRunes && len(key.Runes) > 1 {
		var cmd tea.Cmd
		for _, r := range key.Runes {
			var next tea.Model
			next, cmd = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
			m = next.(Model)
			if cmd != nil {
				break
			}
		}
		return m, cmd
	}

	switch m.mode {
	case modeAlert:
		switch k {
		case "enter", "esc", " ":
			m.mode = modeNormal
			m.alert = ""
		}
		return m, nil

	case modeConfirm:
		answer := k == "y" || k == "Y"
		m.apply(calculator.ClearHistory(), history.ConfirmFunc(func(string) bool { return answer }))
		m.mode = modeNormal
		return m, nil
	}

	switch k {
	case "q":
		m.quitting = true
		return m, tea.Quit
	case "up":
		m.moveCursor(-1)
	case "down":
		m.moveCursor(1)
	case "r":
		if len(m.frame.History) > 0 {
			m.apply(calculator.Recall(m.cursor), nil)
		}
	case "delete":
		if len(m.frame.History) > 0 {
			m.mode = modeConfirm
		}
	default:
		if a, ok := calculator.KeyAction(k); ok {
			m.apply(a, nil)
		}
	}
	return m, nil
}

func (m *Model) apply(a calculator.Action, confirmer history.Confirmer) {
	before := m.frame.History
	m.frame = m.calc.Handle(a, confirmer)
	if historyChanged(before, m.frame.History) {
		// the selection follows the newest record
		m.cursor, m.offset = 0, 0
	}
	m.moveCursor(0)
	if m.frame.Alert != "" {
		m.mode = modeAlert
		m.alert = m.frame.Alert
	}
}

func historyChanged(before, after []history.Record) bool {
	if len(before) != len(after) {
		return true
	}
	return len(after) > 0 && before[0] != after[0]
}

// moveCursor shifts the history selection by delta, keeping it and the
// scroll window inside the log.
func (m *Model) moveCursor(delta int) {
	n := len(m.frame.History)
	if n == 0 {
		m.cursor, m.offset = 0, 0
		return
	}
	m.cursor = min(max(m.cursor+delta, 0), n-1)
	switch {
	case m.cursor < m.offset:
		m.offset = m.cursor
	case m.cursor >= m.offset+m.rows:
		m.offset = m.cursor - m.rows + 1
	}
	m.offset = min(m.offset, max(n-m.rows, 0))
}

// View implements tea.Model.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	sections := []string{m.displayView()}
	switch m.mode {
	case modeAlert:
		sections = append(sections, m.styles.AlertDialog.Render(m.alert+"\n\n[enter] OK"))
	case modeConfirm:
		sections = append(sections, m.styles.Dialog.Render(history.ClearPrompt+"\n\n[y] yes   [n] no"))
	default:
		sections = append(sections, m.historyView())
	}
	sections = append(sections, m.styles.Help.Render(m.helpText()))
	return lipgloss.JoinVertical(lipgloss.Left, sections...) + "\n"
}

func (m Model) displayView() string {
	line := lipgloss.NewStyle().Width(displayWidth).Align(lipgloss.Right)
	prev := m.frame.Display.Previous
	if prev == "" {
		prev = " "
	}
	return m.styles.Frame.Render(lipgloss.JoinVertical(lipgloss.Right,
		line.Render(m.styles.Previous.Render(prev)),
		line.Render(m.styles.Current.Render(m.frame.Display.Current)),
	))
}

func (m Model) historyView() string {
	entries := m.frame.History
	title := m.styles.Title.Render(fmt.Sprintf("History (%d)", len(entries)))
	if len(entries) == 0 {
		return title + "\n" + m.styles.Empty.Render("No calculations yet")
	}

	end := min(m.offset+m.rows, len(entries))
	lines := make([]string, 0, end-m.offset)
	for i := m.offset; i < end; i++ {
		rec := entries[i]
		text := fmt.Sprintf("%s = %s", rec.Expression, rec.Result)
		style := m.styles.Entry
		if i == m.cursor {
			style = m.styles.Selected
		}
		lines = append(lines, style.Render(text)+"  "+m.styles.Timestamp.Render(rec.Timestamp))
	}

	list := strings.Join(lines, "\n")
	if len(entries) > m.rows {
		bar := scrollbar{thumb: m.styles.ScrollThumb, track: m.styles.ScrollTrack}
		list = lipgloss.JoinHorizontal(lipgloss.Top, bar.View(len(entries), len(lines), m.offset), " ", list)
	}
	return title + "\n" + list
}

func (m Model) helpText() string {
	switch m.mode {
	case modeAlert:
		return "enter: dismiss"
	case modeConfirm:
		return "y: clear history  any other key: cancel"
	}
	return "0-9 . + - * / = enter: calculate  esc: clear  backspace: delete\n" +
		"↑/↓: select  r: recall  del: clear history  q: quit"
}

// Run starts the program on in and out and blocks until the user quits or
// ctx is cancelled.
func Run(ctx context.Context, m Model, in io.Reader, out io.Writer, altScreen bool) error {
	opts := []tea.ProgramOption{
		tea.WithContext(ctx),
		tea.WithInput(in),
		tea.WithOutput(out),
	}
	if altScreen {
		opts = append(opts, tea.WithAltScreen())
	}
	if _, err := tea.NewProgram(m, opts...).Run(); err != nil {
		return fmt.Errorf("terminal ui: %w", err)
	}
	return nil
}
