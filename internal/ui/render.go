package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/pterm/pterm"
)

const maxWidth = 80

// Width returns the usable render width, capped at 80 columns.
func Width() int {
	if w := pterm.GetTerminalWidth(); w > 0 && w < maxWidth {
		return w
	}
	return maxWidth
}

// Banner renders the title and subtitle shown before scaffolding starts.
func Banner(theme *Theme, title, subtitle string) string {
	return lipgloss.JoinVertical(lipgloss.Left,
		theme.Title.Render(title),
		theme.Muted.Render(subtitle),
	)
}

// Card renders content inside a rounded border box with a styled title.
func Card(theme *Theme, title, content string) string {
	body := theme.Title.Render(title) + "\n\n" + content
	return theme.Card.Render(body)
}

// SuccessCard renders a success message inside a rounded border card.
func SuccessCard(theme *Theme, title string, details ...string) string {
	var body strings.Builder
	body.WriteString(theme.Success.Render("✓") + " " + title)
	if len(details) > 0 {
		body.WriteString("\n\n")
		body.WriteString(strings.Join(details, "\n"))
	}
	return theme.Card.Render(body.String())
}

// Table renders rows under a header line.
func Table(headers []string, rows [][]string) (string, error) {
	data := pterm.TableData{headers}
	data = append(data, rows...)
	out, err := pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
	if err != nil {
		return "", fmt.Errorf("render table: %w", err)
	}
	return out, nil
}

// Markdown renders markdown for the terminal. Plain output is used without color.
func Markdown(theme *Theme, content string) (string, error) {
	style := glamour.WithAutoStyle()
	if theme.NoColor {
		style = glamour.WithStandardStyle("notty")
	}
	r, err := glamour.NewTermRenderer(style, glamour.WithWordWrap(Width()))
	if err != nil {
		return "", fmt.Errorf("markdown renderer: %w", err)
	}
	out, err := r.Render(content)
	if err != nil {
		return "", fmt.Errorf("render markdown: %w", err)
	}
	return out, nil
}
