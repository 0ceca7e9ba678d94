package main

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/malfet/Mandelbrot/misiurewicz"
)

var (
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true)
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(10)
	valueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	warnStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Bold(true)
	boxStyle    = lipgloss.NewStyle().Border(lipgloss.NormalBorder(), false, false, false, true).BorderForeground(lipgloss.Color("240")).PaddingLeft(1)
)

// report renders res for a terminal.
func report(res misiurewicz.Result) string {
	var s strings.Builder
	s.WriteString(headerStyle.Render(fmt.Sprintf("Misiurewicz(%d,%d)", res.K, res.N)) + "\n")
	s.WriteString(labelStyle.Render("poly") + valueStyle.Render(res.Polynomial.String()) + "\n")
	s.WriteString(labelStyle.Render("degree") + valueStyle.Render(fmt.Sprint(res.Polynomial.Degree())) + "\n")
	if res.TrivialRoots > 0 {
		s.WriteString(labelStyle.Render("zero") + valueStyle.Render(fmt.Sprintf("multiplicity %d", res.TrivialRoots)) + "\n")
	}

	var rows strings.Builder
	for i, r := range res.Roots {
		line := fmt.Sprintf("%3d  %-44s error=%.3g", i, fmt.Sprintf("%.12g", r.Value), r.Residual)
		switch {
		case !r.Converged:
			rows.WriteString(warnStyle.Render(line+"  not converged") + "\n")
		case r.Polished:
			rows.WriteString(valueStyle.Render(line+"  polished") + "\n")
		default:
			rows.WriteString(valueStyle.Render(line) + "\n")
		}
	}
	if rows.Len() > 0 {
		s.WriteString(boxStyle.Render(strings.TrimSuffix(rows.String(), "\n")) + "\n")
	}
	if res.Missing > 0 {
		s.WriteString(warnStyle.Render(fmt.Sprintf("%d roots not found", res.Missing)) + "\n")
	}
	if res.Degraded {
		s.WriteString(warnStyle.Render("degraded: some roots did not converge") + "\n")
	}
	return s.String()
}

// residualFloor stands in for log10(0).
const residualFloor = -17

func plotResiduals(res misiurewicz.Result) string {
	data := make([]float64, len(res.Roots))
	for i, r := range res.Roots {
		data[i] = residualFloor
		if r.Residual > 0 {
			data[i] = max(math.Log10(r.Residual), residualFloor)
		}
	}
	return asciigraph.Plot(data,
		asciigraph.Height(10),
		asciigraph.Width(min(max(len(data), 20), 100)),
		asciigraph.Caption("log10 residual per root"),
	)
}
