package cli

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/SeamusWaldron/cubetrainer"
)

// Styles
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205"))

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	stepStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39"))

	moveStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("82"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	starStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("220"))
)

// faceletColors are the terminal colors of the six sticker colors.
var faceletColors = [6]lipgloss.Color{
	cubetrainer.White:  lipgloss.Color("255"),
	cubetrainer.Yellow: lipgloss.Color("226"),
	cubetrainer.Orange: lipgloss.Color("208"),
	cubetrainer.Red:    lipgloss.Color("196"),
	cubetrainer.Green:  lipgloss.Color("40"),
	cubetrainer.Blue:   lipgloss.Color("27"),
}

var faceletStyles = func() [6]lipgloss.Style {
	var styles [6]lipgloss.Style
	for i, c := range faceletColors {
		styles[i] = lipgloss.NewStyle().Background(c).Foreground(lipgloss.Color("0"))
	}
	return styles
}()

// renderNet draws the cube as an unfolded net, U above L F R B and D below.
// With color off it falls back to one letter per facelet.
func renderNet(s cubetrainer.State, color bool) string {
	if !color {
		return s.String()
	}

	cell := func(c cubetrainer.Color) string {
		if !c.Valid() {
			return "??"
		}
		return faceletStyles[c].Render("  ")
	}
	row := func(f cubetrainer.Face, r int) string {
		face := s.Face(f)
		return cell(face[r*3]) + cell(face[r*3+1]) + cell(face[r*3+2])
	}

	pad := strings.Repeat(" ", 7)
	var b strings.Builder
	for r := 0; r < 3; r++ {
		b.WriteString(pad + row(cubetrainer.U, r) + "\n")
	}
	b.WriteString("\n")
	for r := 0; r < 3; r++ {
		b.WriteString(row(cubetrainer.L, r) + " " + row(cubetrainer.F, r) + " " +
			row(cubetrainer.R, r) + " " + row(cubetrainer.B, r) + "\n")
	}
	b.WriteString("\n")
	for r := 0; r < 3; r++ {
		b.WriteString(pad + row(cubetrainer.D, r) + "\n")
	}
	return b.String()
}

// renderProgress shows the algorithm with completed moves highlighted. With
// reveal off the remaining moves are masked.
func renderProgress(moves []cubetrainer.Move, step int, reveal bool) string {
	parts := make([]string, len(moves))
	for i, m := range moves {
		switch {
		case i < step:
			parts[i] = moveStyle.Render(m.Notation())
		case i == step && reveal:
			parts[i] = stepStyle.Render(m.Notation())
		case reveal:
			parts[i] = statusStyle.Render(m.Notation())
		default:
			parts[i] = statusStyle.Render("•")
		}
	}
	return strings.Join(parts, " ")
}
