package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	queryStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#6C7086")).
			Italic(true)

	headlineStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#89B4FA"))

	sectionStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAB387"))

	resultStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#A6E3A1"))

	failureStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#F38BA8"))
)

func writeText(w io.Writer, views []View) error {
	var b strings.Builder
	for i, v := range views {
		if i > 0 {
			b.WriteRune('\n')
		}
		if len(views) > 1 {
			b.WriteString(queryStyle.Render("> " + v.Outcome.Request.Query))
			b.WriteRune('\n')
		}
		writeTextView(&b, v)
	}

	_, err := io.WriteString(w, b.String())
	return err
}

func writeTextView(b *strings.Builder, v View) {
	switch {
	case v.Error != "":
		b.WriteString(failureStyle.Render(LabelFailure + ": " + v.Error))
		b.WriteRune('\n')
	case v.Text != "":
		b.WriteString(resultStyle.Render(v.Text))
		b.WriteRune('\n')
	default:
		if v.Headline != "" {
			b.WriteString(headlineStyle.Render(v.Headline))
			b.WriteRune('\n')
		}
		details := v.Details
		// Drop the trailing pronunciation separator.
		for len(details) > 0 && details[len(details)-1] == "" {
			details = details[:len(details)-1]
		}
		for _, line := range details {
			if line == LabelInflections {
				line = sectionStyle.Render(line)
			}
			fmt.Fprintln(b, line)
		}
	}
}
