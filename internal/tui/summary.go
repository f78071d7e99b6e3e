package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/vvka-141/rdsload/pkg/rdsload"
)

// Summary describes a finished load run for display.
type Summary struct {
	Table  string
	File   string
	Result *rdsload.Result
	Err    error
}

type summaryLine struct {
	label, value string
}

func (s Summary) lines() []summaryLine {
	var lines []summaryLine
	if s.Result != nil && s.Result.RunID != "" {
		lines = append(lines, summaryLine{"Run", s.Result.RunID})
	}
	if s.File != "" {
		lines = append(lines, summaryLine{"File", s.File})
	}
	if s.Table != "" {
		lines = append(lines, summaryLine{"Table", s.Table})
	}
	if s.Result != nil {
		lines = append(lines,
			summaryLine{"Rows read", fmt.Sprint(s.Result.RowsRead)},
			summaryLine{"Rows written", fmt.Sprint(s.Result.RowsWritten)},
			summaryLine{"Batches", fmt.Sprint(s.Result.Batches)},
			summaryLine{"Duration", s.Result.Duration.Round(time.Millisecond).String()},
		)
	}
	if s.Err != nil {
		lines = append(lines, summaryLine{"Failed at", rdsload.StageOf(s.Err).Label()})
	}
	return lines
}

// Render formats the summary. ModeStyled draws a bordered box; ModePlain
// produces one "label: value" line per field.
func (s Summary) Render(mode Mode) string {
	if mode == ModeStyled {
		return s.renderStyled()
	}
	return s.renderPlain()
}

func (s Summary) renderPlain() string {
	var b strings.Builder
	if s.Err != nil {
		b.WriteString("load failed\n")
	} else {
		b.WriteString("load complete\n")
	}
	for _, l := range s.lines() {
		fmt.Fprintf(&b, "  %s: %s\n", strings.ToLower(l.label), l.value)
	}
	if s.Err != nil {
		fmt.Fprintf(&b, "  error: %v\n", s.Err)
	}
	return b.String()
}

func (s Summary) renderStyled() string {
	title := SuccessStyle.Render("✓ Load complete")
	box := SuccessBoxStyle
	if s.Err != nil {
		title = ErrorStyle.Render("✗ Load failed")
		box = ErrorBoxStyle
	}

	rows := []string{title, ""}
	for _, l := range s.lines() {
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, LabelStyle.Render(l.label), ValueStyle.Render(l.value)))
	}
	if s.Err != nil {
		rows = append(rows, "", MutedStyle.Render(s.Err.Error()))
	}
	return box.Render(lipgloss.JoinVertical(lipgloss.Left, rows...)) + "\n"
}
