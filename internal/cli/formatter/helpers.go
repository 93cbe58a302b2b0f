package formatter

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// RenderBox wraps content in a rounded-border box with an optional title.
func RenderBox(title string, content string) string {
	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorDim).
		PaddingLeft(2).
		PaddingRight(2).
		PaddingTop(1).
		PaddingBottom(1)

	if title != "" {
		return boxStyle.Render(StyleHeader.Render(strings.ToUpper(title)) + "\n\n" + content)
	}
	return boxStyle.Render(content)
}

// TruncID returns the first 8 characters of an id's suffix, dimmed. Prefixed
// ids such as "chapter-1b2c..." keep their prefix.
func TruncID(id string) string {
	return StyleDim.Render(ShortID(id))
}

// ShortID shortens "<prefix>-<uuid>" to "<prefix>-<first 8>".
func ShortID(id string) string {
	prefix, rest, ok := strings.Cut(id, "-")
	if !ok || len(rest) <= 8 {
		return id
	}
	return prefix + "-" + rest[:8]
}

// Checkbox renders a completion marker.
func Checkbox(done bool) string {
	if done {
		return StyleGreen.Render("[x]")
	}
	return StyleDim.Render("[ ]")
}

// Plural returns "1 chapter" or "3 chapters"; "activity" becomes "activities".
func Plural(n int, word string) string {
	if n == 1 {
		return "1 " + word
	}
	if l := len(word); l > 1 && word[l-1] == 'y' && !strings.ContainsRune("aeiou", rune(word[l-2])) {
		return itoa(n) + " " + word[:l-1] + "ies"
	}
	return itoa(n) + " " + word + "s"
}
