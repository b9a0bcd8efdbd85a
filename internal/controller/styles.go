package controller

import (
	"bytes"
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/olekukonko/tablewriter"

	m "smashers.dev/pkg/sitegen/internal/model"
)

const shortHashLen = 12

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212"))
	okStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	failStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("196"))
	mutedStyle   = lipgloss.NewStyle().Faint(true)
	changedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
)

func formatState(state m.RunState) string {
	switch state {
	case m.Succeeded:
		return okStyle.Render(state.String())
	case m.Failed:
		return failStyle.Render(state.String())
	case m.NotStarted, m.Running:
		return mutedStyle.Render(state.String())
	default:
		return state.String()
	}
}

func shortHash(hash string) string {
	if len(hash) > shortHashLen {
		return hash[:shortHashLen]
	}

	return hash
}

func renderSummaryTable(summary m.Summary) string {
	var tableBuffer bytes.Buffer

	table := tablewriter.NewWriter(&tableBuffer)
	table.SetBorder(false)
	table.SetCenterSeparator("")

	if summary.DryRun {
		table.SetHeader([]string{"Route", "File", "Bytes", "Changed"})
	} else {
		table.SetHeader([]string{"Route", "File", "Bytes", "SHA-256"})
	}

	table.SetColumnAlignment([]int{
		tablewriter.ALIGN_LEFT, tablewriter.ALIGN_LEFT, tablewriter.ALIGN_RIGHT, tablewriter.ALIGN_LEFT,
	})

	for _, r := range summary.Routes {
		last := shortHash(r.Hash)
		if summary.DryRun {
			last = "no"
			if r.Changed {
				last = "yes"
			}
		}

		table.Append([]string{r.Route, string(r.File), fmt.Sprintf("%d", r.Bytes), last})
	}

	table.SetFooter([]string{
		fmt.Sprintf("%d routes", len(summary.Routes)),
		string(summary.Strategy),
		"",
		summary.State.String(),
	})

	table.Render()

	return tableBuffer.String()
}

func renderRoutesTable(routes []RouteInfo) string {
	var tableBuffer bytes.Buffer

	table := tablewriter.NewWriter(&tableBuffer)
	table.SetHeader([]string{"Route", "Page", "Output", "Last SHA-256"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetColumnAlignment([]int{
		tablewriter.ALIGN_LEFT, tablewriter.ALIGN_LEFT, tablewriter.ALIGN_LEFT, tablewriter.ALIGN_LEFT,
	})

	for _, r := range routes {
		table.Append([]string{r.Path, r.Page, string(r.File), shortHash(r.Hash)})
	}

	table.Render()

	return tableBuffer.String()
}
