package chart

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/vocabmaster/vocabmaster/internal/vocab"
)

const (
	Title      = "Vocabulary Mastery Progress (German)"
	XAxisLabel = "Words"
	YAxisLabel = "Mastery Score (0–5)"
	EmptyText  = "No data to display."

	barRune       = "█"
	tickRune      = "·"
	maxCellsPoint = 6
	minWidth      = 20
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true)
	axisStyle  = lipgloss.NewStyle().Faint(true)
	barStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("117"))
)

// Bar is one word and its mastery score
type Bar struct {
	Label string
	Value int
}

// Bars converts a vocabulary into bars ordered by word
func Bars(v vocab.Vocabulary) []Bar {
	bars := make([]Bar, 0, len(v))
	for _, word := range v.Words() {
		bars = append(bars, Bar{Label: word, Value: v[word].Score})
	}
	return bars
}

// Render draws a horizontal bar chart of at most width columns
func Render(bars []Bar, width int) string {
	if len(bars) == 0 {
		return EmptyText
	}
	width = max(width, minWidth)

	labelWidth := len(XAxisLabel)
	for _, bar := range bars {
		labelWidth = max(labelWidth, lipgloss.Width(bar.Label))
	}
	// label, gap, bar, gap, value
	cells := (width - labelWidth - 4) / vocab.MaxScore
	cells = max(1, min(cells, maxCellsPoint))
	barWidth := cells * vocab.MaxScore

	var s strings.Builder
	s.WriteString(titleStyle.Render(Title))
	s.WriteString("\n\n")
	s.WriteString(axisStyle.Render(pad(XAxisLabel, labelWidth) + "  " + YAxisLabel))
	s.WriteString("\n")

	for _, bar := range bars {
		value := max(vocab.MinScore, min(bar.Value, vocab.MaxScore))
		filled := strings.Repeat(barRune, value*cells)
		empty := strings.Repeat(tickRune, barWidth-value*cells)

		s.WriteString(pad(bar.Label, labelWidth))
		s.WriteString("  ")
		s.WriteString(barStyle.Render(filled))
		s.WriteString(axisStyle.Render(empty))
		s.WriteString(fmt.Sprintf(" %d\n", value))
	}

	s.WriteString(axisStyle.Render(pad("", labelWidth) + "  " + scale(cells)))
	return s.String()
}

// scale renders the 0..5 tick labels under the bars
func scale(cells int) string {
	var s strings.Builder
	s.WriteString("0")
	for i := 1; i <= vocab.MaxScore; i++ {
		s.WriteString(fmt.Sprintf("%*d", cells, i))
	}
	return s.String()
}

func pad(s string, width int) string {
	if gap := width - lipgloss.Width(s); gap > 0 {
		return s + strings.Repeat(" ", gap)
	}
	return s
}
