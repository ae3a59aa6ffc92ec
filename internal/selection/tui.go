package selection

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"sheetCols/internal/logger"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

const (
	minPageSize = 3
	// title, counter, page info, help and the blank lines between them
	chromeLines = 8
)

type model struct {
	columns []string
	checked []bool

	cursor    int
	pageSize  int
	fixedPage bool
	width     int
	confirmed bool
	cancelled bool

	// Styling
	titleStyle    lipgloss.Style
	selectedStyle lipgloss.Style
	normalStyle   lipgloss.Style
	checkedStyle  lipgloss.Style
	helpStyle     lipgloss.Style
	progressStyle lipgloss.Style
}

func initialModel(columns []string, opts Options) model {
	checked := make([]bool, len(columns))
	if opts.Preselect == PreselectAll {
		for i := range checked {
			checked[i] = true
		}
	}

	pageSize := opts.PageSize
	fixed := pageSize > 0
	if !fixed {
		pageSize = 20
	}

	return model{
		columns:   columns,
		checked:   checked,
		pageSize:  pageSize,
		fixedPage: fixed,

		titleStyle: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205")),
		selectedStyle: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("170")).
			Background(lipgloss.Color("235")),
		normalStyle: lipgloss.NewStyle().
			Foreground(lipgloss.Color("252")),
		checkedStyle: lipgloss.NewStyle().
			Foreground(lipgloss.Color("40")),
		helpStyle: lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")),
		progressStyle: lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Bold(true),
	}
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		if !m.fixedPage {
			m.pageSize = msg.Height - chromeLines
			if m.pageSize < minPageSize {
				m.pageSize = minPageSize
			}
		}
	case tea.KeyMsg:
		return m.updateKey(msg)
	}
	return m, nil
}

func (m model) updateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	last := len(m.columns) - 1

	switch msg.String() {
	case "ctrl+c", "q", "esc":
		m.cancelled = true
		return m, tea.Quit

	case "enter":
		m.confirmed = true
		return m, tea.Quit

	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}

	case "down", "j":
		if m.cursor < last {
			m.cursor++
		}

	case "left", "h", "pgup":
		m.cursor -= m.pageSize
		if m.cursor < 0 {
			m.cursor = 0
		}

	case "right", "l", "pgdown":
		m.cursor += m.pageSize
		if m.cursor > last {
			m.cursor = last
		}

	case "home", "g":
		m.cursor = 0

	case "end", "G":
		m.cursor = last

	case " ", "x":
		if m.cursor <= last {
			m.checked[m.cursor] = !m.checked[m.cursor]
		}

	case "a":
		// Check everything unless everything is already checked
		all := m.count() == len(m.columns)
		for i := range m.checked {
			m.checked[i] = !all
		}
	}
	return m, nil
}

func (m model) count() int {
	n := 0
	for _, c := range m.checked {
		if c {
			n++
		}
	}
	return n
}

func (m model) page() int {
	return m.cursor / m.pageSize
}

func (m model) totalPages() int {
	pages := int(math.Ceil(float64(len(m.columns)) / float64(m.pageSize)))
	if pages == 0 {
		pages = 1
	}
	return pages
}

// selection returns the checked columns in source order.
func (m model) selection() Selection {
	return FromChecked(m.columns, m.checked)
}

func (m model) View() string {
	if m.confirmed || m.cancelled {
		return ""
	}

	var b strings.Builder

	b.WriteString(m.titleStyle.Render("Select columns to include"))
	b.WriteString("\n\n")

	progress := fmt.Sprintf("%d/%d selected", m.count(), len(m.columns))
	b.WriteString(m.progressStyle.Render(progress))
	b.WriteString("\n\n")

	start := m.page() * m.pageSize
	end := start + m.pageSize
	if end > len(m.columns) {
		end = len(m.columns)
	}

	for i := start; i < end; i++ {
		box := "[ ]"
		style := m.normalStyle
		if m.checked[i] {
			box = "[x]"
			style = m.checkedStyle
		}

		line := fmt.Sprintf("%s %s", box, m.columns[i])
		if m.width > 4 {
			line = ansi.Truncate(line, m.width-2, "...")
		}

		if i == m.cursor {
			b.WriteString(m.selectedStyle.Render("> " + line))
		} else {
			b.WriteString(style.Render("  " + line))
		}
		b.WriteString("\n")
	}

	if m.totalPages() > 1 {
		b.WriteString("\n")
		b.WriteString(m.helpStyle.Render(fmt.Sprintf("Page %d/%d", m.page()+1, m.totalPages())))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	help := "↑↓: navigate | ←→: page | space: toggle | a: all | enter: confirm | q: quit"
	b.WriteString(m.helpStyle.Render(help))
	b.WriteString("\n")

	return b.String()
}

// Prompt shows an interactive checkbox list of columns and blocks until the
// operator confirms or cancels. The result keeps the order of columns.
// An empty confirmation or a cancellation returns ErrNoColumnsSelected.
func Prompt(columns []string, opts Options) (Selection, error) {
	if len(columns) == 0 {
		return nil, ErrNoColumnsSelected
	}

	var progOpts []tea.ProgramOption
	if opts.Input != nil {
		progOpts = append(progOpts, tea.WithInput(opts.Input))
	}
	if opts.Output != nil {
		progOpts = append(progOpts, tea.WithOutput(opts.Output))
	}
	if opts.AltScreen {
		progOpts = append(progOpts, tea.WithAltScreen())
	}

	logger.Info("Starting column prompt", "columns", len(columns), "preselect", opts.Preselect)

	p := tea.NewProgram(initialModel(columns, opts), progOpts...)
	finalModel, err := p.Run()
	if errors.Is(err, tea.ErrInterrupted) {
		logger.Info("Column prompt interrupted")
		return nil, ErrNoColumnsSelected
	}
	if err != nil {
		return nil, fmt.Errorf("error running column prompt: %w", err)
	}

	return result(finalModel.(model))
}

func result(final model) (Selection, error) {
	if final.cancelled || !final.confirmed {
		logger.Info("Column prompt cancelled")
		return nil, ErrNoColumnsSelected
	}

	sel := final.selection()
	if len(sel) == 0 {
		logger.Info("Column prompt confirmed with no columns")
		return nil, ErrNoColumnsSelected
	}

	logger.Info("Columns selected", "count", len(sel), "columns", sel.String())
	return sel, nil
}
