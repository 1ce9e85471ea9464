// # cmd/typefold/ui.go
package main

import (
	"fmt"
	"time"

	"typefold/internal/core/app"
	"typefold/internal/ui/report"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var (
	titleStyle = lipgloss.NewStyle().
			MarginLeft(2).
			Foreground(lipgloss.Color("#3B82F6")).
			Bold(true).
			Render

	docStyle = lipgloss.NewStyle().Margin(1, 2)

	fixableStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#10B981")).
			Bold(true)

	findingStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FBBF24")).
			Bold(true)

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#10B981")).
			Bold(true)

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#64748B")).
			Italic(true)
)

type item struct {
	title, desc string
	fixable     bool
}

func (i item) Title() string       { return i.title }
func (i item) Description() string { return i.desc }
func (i item) FilterValue() string { return i.title + i.desc }

type model struct {
	list       list.Model
	files      []report.FileDiagnostics
	lastUpdate time.Time
	fileCount  int
}

type updateMsg struct {
	files     []report.FileDiagnostics
	fileCount int
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" || msg.String() == "q" {
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		h, v := docStyle.GetFrameSize()
		m.list.SetSize(msg.Width-h, msg.Height-v-4)
	case updateMsg:
		m.files = msg.files
		m.fileCount = msg.fileCount
		m.lastUpdate = time.Now()

		items := []list.Item{}
		for _, file := range m.files {
			for _, diag := range file.Diagnostics {
				title := "Single-Use Type"
				if diag.Fixable() {
					title = "Single-Use Type (fixable)"
				}
				items = append(items, item{
					title:   title,
					desc:    fmt.Sprintf("%s in %s:%d", diag.DeclarationName, file.Path, diag.Location.Line),
					fixable: diag.Fixable(),
				})
			}
		}
		m.list.SetItems(items)
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m model) View() string {
	total := report.TotalDiagnostics(m.files)
	fixable := report.TotalFixable(m.files)

	status := statusStyle.Render(fmt.Sprintf("Last update: %v | %d files with findings",
		m.lastUpdate.Format("15:04:05"), len(m.files)))

	var summary string
	if total == 0 {
		summary = successStyle.Render("✅ No single-use types")
	} else {
		summary = fmt.Sprintf("⚠️  %s | %s",
			findingStyle.Render(fmt.Sprintf("%d Findings", total)),
			fixableStyle.Render(fmt.Sprintf("%d Fixable", fixable)))
	}

	header := fmt.Sprintf("%s\n%s | %s\n", titleStyle("Single-Use Type Monitor"), status, summary)
	return docStyle.Render(header + "\n" + m.list.View())
}

func initialModel() model {
	l := list.New([]list.Item{}, list.NewDefaultDelegate(), 0, 0)
	l.Title = "Detected Findings"
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(true)

	return model{
		list:       l,
		lastUpdate: time.Now(),
	}
}

func runUI(application *app.App, initial app.ScanResult) error {
	m := initialModel()
	p := tea.NewProgram(m, tea.WithAltScreen())

	application.SetUpdateHandler(func(update app.Update) {
		p.Send(updateMsg{
			files:     update.Files,
			fileCount: len(update.Files),
		})
	})

	go func() {
		p.Send(updateMsg{
			files:     initial.Files,
			fileCount: len(initial.Files),
		})
	}()

	_, err := p.Run()
	return err
}
