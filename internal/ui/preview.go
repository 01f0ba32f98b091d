package ui

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/samber/lo"

	"github.com/Nomadcxx/torrentsink/internal/batch"
)

const (
	minTableHeight = 5
	chromeHeight   = 8
)

// PreviewModel shows the rename plan of a dry run as a scrollable table
type PreviewModel struct {
	table  table.Model
	result *batch.Result
	width  int
	height int
}

// NewPreviewModel builds the table from a dry-run result
func NewPreviewModel(result *batch.Result) PreviewModel {
	columns := []table.Column{
		{Title: "Torrent", Width: 36},
		{Title: "New name", Width: 48},
		{Title: "Media file", Width: 36},
	}

	rows := lo.Map(result.Operations, func(op batch.Operation, _ int) table.Row {
		return table.Row{
			filepath.Base(op.Source),
			filepath.Base(op.Destination),
			op.MediaName,
		}
	})

	t := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithFocused(true),
		table.WithHeight(max(minTableHeight, min(len(rows)+1, 20))),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(ColorMuted).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(ColorForeground).
		Background(ColorAccent).
		Bold(false)
	t.SetStyles(s)

	return PreviewModel{table: t, result: result}
}

func (m PreviewModel) Init() tea.Cmd {
	return nil
}

func (m PreviewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.table.SetHeight(max(minTableHeight, msg.Height-chromeHeight))
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m PreviewModel) View() string {
	var b strings.Builder

	b.WriteString(FormatHeader("TORRENTSINK PREVIEW"))
	b.WriteString("\n\n")

	if len(m.result.Operations) == 0 {
		b.WriteString(MutedStyle.Render("No torrent would be renamed."))
		b.WriteString("\n")
	} else {
		b.WriteString(TableBorderStyle.Render(m.table.View()))
		b.WriteString("\n")
	}

	b.WriteString(fmt.Sprintf("%s renames  %s ambiguous  %s without media  %s unreadable\n",
		StatStyle.Render(fmt.Sprint(len(m.result.Operations))),
		StatStyle.Render(fmt.Sprint(m.result.SkipCount(batch.SkipAmbiguous))),
		StatStyle.Render(fmt.Sprint(m.result.SkipCount(batch.SkipNoMedia))),
		StatStyle.Render(fmt.Sprint(m.result.SkipCount(batch.SkipDecode))),
	))

	b.WriteString("\n")
	b.WriteString(FormatFooter(
		FormatKeybinding("↑/↓", "scroll"),
		FormatKeybinding("q", "quit"),
	))

	return b.String()
}

// RunPreview shows the preview until the user quits
func RunPreview(result *batch.Result) error {
	p := tea.NewProgram(NewPreviewModel(result))
	_, err := p.Run()
	return err
}
