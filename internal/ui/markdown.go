package ui

import (
	"github.com/charmbracelet/glamour"
)

// RenderMarkdown renders md for the terminal. Without color it uses the
// plain notty style.
func RenderMarkdown(md string, width int) (string, error) {
	style := glamour.WithAutoStyle()
	if !ColorEnabled() {
		style = glamour.WithStandardStyle("notty")
	}
	if width <= 0 {
		width = 80
	}

	renderer, err := glamour.NewTermRenderer(style, glamour.WithWordWrap(width))
	if err != nil {
		return "", err
	}
	return renderer.Render(md)
}
