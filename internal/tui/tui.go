package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/alyssa-glean/detekt/internal/model"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true)
	cursorStyle = lipgloss.NewStyle().Reverse(true)
	sevStyles   = map[model.Severity]lipgloss.Style{
		model.SeverityStyle:   lipgloss.NewStyle().Foreground(lipgloss.Color("6")),
		model.SeverityWarning: lipgloss.NewStyle().Foreground(lipgloss.Color("3")),
		model.SeverityError:   lipgloss.NewStyle().Foreground(lipgloss.Color("1")),
		model.SeverityDefect:  lipgloss.NewStyle().Foreground(lipgloss.Color("5")).Bold(true),
	}
)

type modelT struct {
	result *model.AnalysisResult
	cursor int
}

func initialModel(res *model.AnalysisResult) modelT { return modelT{result: res} }

func (m modelT) Init() tea.Cmd { return nil }

func (m modelT) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			return m, tea.Quit
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < len(m.result.Findings)-1 {
				m.cursor++
			}
		}
	}
	return m, nil
}

func (m modelT) View() string {
	var b strings.Builder
	status := "pass"
	if !m.result.Passed {
		status = "fail"
	}
	fmt.Fprintln(&b, headerStyle.Render(fmt.Sprintf(
		"Findings: %d  baseline-suppressed: %d  diagnostics: %d  [%s]",
		len(m.result.Findings), m.result.BaselineSuppressed, len(m.result.Diagnostics), status)))
	b.WriteString("\n")
	for i, f := range m.result.Findings {
		line := fmt.Sprintf("%s %s %s:%d %s",
			sevStyles[f.Severity].Render(string(f.Severity)), f.RuleID, f.File, f.StartLine, f.Message)
		if i == m.cursor {
			line = cursorStyle.Render(line)
		}
		fmt.Fprintln(&b, line)
	}
	if len(m.result.Diagnostics) > 0 {
		b.WriteString("\n")
		for _, d := range m.result.Diagnostics {
			fmt.Fprintf(&b, "! %s %s %s\n", d.Kind, d.File, d.Detail)
		}
	}
	b.WriteString("\nq: quit  j/k: move\n")
	return b.String()
}

// Run launches the interactive findings browser.
func Run(res *model.AnalysisResult) error {
	p := tea.NewProgram(initialModel(res))
	_, err := p.Run()
	return err
}
