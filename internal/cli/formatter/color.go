package formatter

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/alexanderramin/syllabus/internal/domain"
	"github.com/alexanderramin/syllabus/internal/schedule"
)

// Palette is one colour scheme. Dark is Gruvbox; Light is its light variant.
type Palette struct {
	Green  lipgloss.Color
	Yellow lipgloss.Color
	Red    lipgloss.Color
	Blue   lipgloss.Color
	Purple lipgloss.Color
	Dim    lipgloss.Color
	Fg     lipgloss.Color
	Header lipgloss.Color
}

var (
	DarkPalette = Palette{
		Green:  "#8ec07c",
		Yellow: "#fabd2f",
		Red:    "#fb4934",
		Blue:   "#83a598",
		Purple: "#d3869b",
		Dim:    "#928374",
		Fg:     "#ebdbb2",
		Header: "#fe8019",
	}
	LightPalette = Palette{
		Green:  "#79740e",
		Yellow: "#b57614",
		Red:    "#9d0006",
		Blue:   "#076678",
		Purple: "#8f3f71",
		Dim:    "#7c6f64",
		Fg:     "#3c3836",
		Header: "#af3a03",
	}
)

var (
	ColorGreen  lipgloss.Color
	ColorYellow lipgloss.Color
	ColorRed    lipgloss.Color
	ColorBlue   lipgloss.Color
	ColorPurple lipgloss.Color
	ColorDim    lipgloss.Color
	ColorFg     lipgloss.Color
	ColorHeader lipgloss.Color
)

var (
	StyleGreen  lipgloss.Style
	StyleYellow lipgloss.Style
	StyleRed    lipgloss.Style
	StyleBlue   lipgloss.Style
	StylePurple lipgloss.Style
	StyleDim    lipgloss.Style
	StyleFg     lipgloss.Style
	StyleHeader lipgloss.Style
	StyleBold   lipgloss.Style
)

func init() {
	UsePalette(LightPalette)
}

// ApplyTheme switches the package styles to the dark or light palette. It is
// not safe to call while another goroutine renders.
func ApplyTheme(dark bool) {
	if dark {
		UsePalette(DarkPalette)
		return
	}
	UsePalette(LightPalette)
}

func UsePalette(p Palette) {
	ColorGreen, ColorYellow, ColorRed, ColorBlue = p.Green, p.Yellow, p.Red, p.Blue
	ColorPurple, ColorDim, ColorFg, ColorHeader = p.Purple, p.Dim, p.Fg, p.Header

	StyleGreen = lipgloss.NewStyle().Foreground(ColorGreen)
	StyleYellow = lipgloss.NewStyle().Foreground(ColorYellow)
	StyleRed = lipgloss.NewStyle().Foreground(ColorRed)
	StyleBlue = lipgloss.NewStyle().Foreground(ColorBlue)
	StylePurple = lipgloss.NewStyle().Foreground(ColorPurple)
	StyleDim = lipgloss.NewStyle().Foreground(ColorDim)
	StyleFg = lipgloss.NewStyle().Foreground(ColorFg)
	StyleHeader = lipgloss.NewStyle().Foreground(ColorHeader).Bold(true)
	StyleBold = lipgloss.NewStyle().Foreground(ColorFg).Bold(true)
}

// DifficultyBadge returns a coloured difficulty label.
func DifficultyBadge(d domain.Difficulty) string {
	switch domain.NormalizeDifficulty(d) {
	case domain.DifficultyHard:
		return StyleRed.Render("hard")
	case domain.DifficultyMedium:
		return StyleYellow.Render("medium")
	case domain.DifficultyEasy:
		return StyleGreen.Render("easy")
	default:
		return StyleDim.Render("--")
	}
}

// UrgencyStyle returns the colour for a revision urgency.
func UrgencyStyle(u schedule.Urgency) lipgloss.Style {
	switch u {
	case schedule.UrgencyOverdue, schedule.UrgencyLongOverdue:
		return StyleRed
	case schedule.UrgencyDueToday, schedule.UrgencyDueSoon, schedule.UrgencyStale:
		return StyleYellow
	case schedule.UrgencyRevisedToday, schedule.UrgencyRecent:
		return StyleGreen
	case schedule.UrgencyScheduled:
		return StyleBlue
	default:
		return StyleDim
	}
}

// UrgencyIndicator returns a coloured marker such as "● overdue".
func UrgencyIndicator(u schedule.Urgency) string {
	return UrgencyStyle(u).Render("● " + u.String())
}

// Header renders a section header with the header style and an underline.
func Header(text string) string {
	upper := strings.ToUpper(text)
	line := strings.Repeat("─", lipgloss.Width(upper))
	return fmt.Sprintf("%s\n%s", StyleHeader.Render(upper), StyleDim.Render(line))
}

func Dim(text string) string {
	return StyleDim.Render(text)
}

func Bold(text string) string {
	return StyleBold.Render(text)
}
