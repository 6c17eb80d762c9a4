package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/HatsuSumi/layercheck/pkg/layering"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// =============================================================================
// ViolationListModel - Interactive violation browser
// =============================================================================

// ViolationListModel is the bubbletea model for browsing check violations.
// The cursor row shows the full edge with both layer numbers; the footer
// tracks position in the list.
type ViolationListModel struct {
	Violations []layering.Violation
	Cursor     int
	Height     int
	Offset     int
}

// NewViolationListModel creates a new violation list model.
func NewViolationListModel(violations []layering.Violation) ViolationListModel {
	return ViolationListModel{
		Violations: violations,
		Height:     15,
	}
}

func (m ViolationListModel) Init() tea.Cmd {
	return nil
}

func (m ViolationListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc", "enter":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case "down", "j":
			if m.Cursor < len(m.Violations)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		}
	case tea.WindowSizeMsg:
		m.Height = msg.Height - 6
		if m.Height < 5 {
			m.Height = 5
		}
	}
	return m, nil
}

func (m ViolationListModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Upward Dependencies"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  q quit"))
	b.WriteString("\n\n")

	end := m.Offset + m.Height
	if end > len(m.Violations) {
		end = len(m.Violations)
	}

	for i := m.Offset; i < end; i++ {
		v := m.Violations[i]

		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}

		line := fmt.Sprintf("%s%-30s %s %-30s %s",
			cursor, v.Source, iconArrow, v.Dependency,
			listDimStyle.Render(v.Direction()))

		if i == m.Cursor {
			b.WriteString(listSelectedStyle.Render(line))
		} else {
			b.WriteString(listNormalStyle.Render(line))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d] ", m.Cursor+1, len(m.Violations))))
	b.WriteString(StyleError.Render("all listed edges point at a higher layer"))

	return b.String()
}

// browseViolations runs the interactive violation browser until the user quits.
func browseViolations(violations []layering.Violation) error {
	_, err := tea.NewProgram(NewViolationListModel(violations)).Run()
	return err
}
