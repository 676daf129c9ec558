package order

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/dukerupert/dukanam/internal/model"
)

var (
	doneStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	currentStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("2")).Bold(true).Underline(true)
	todoStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	barEmpty     = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))

	statusColors = map[model.OrderStatus]lipgloss.Color{
		model.OrderPending:   lipgloss.Color("214"),
		model.OrderAccepted:  lipgloss.Color("33"),
		model.OrderPacked:    lipgloss.Color("208"),
		model.OrderShipped:   lipgloss.Color("129"),
		model.OrderDelivered: lipgloss.Color("2"),
		model.OrderCancelled: lipgloss.Color("1"),
	}
)

// Badge renders the status in its color.
func Badge(status model.OrderStatus) string {
	color, ok := statusColors[status]
	if !ok {
		color = lipgloss.Color("8")
	}
	return lipgloss.NewStyle().Foreground(color).Bold(true).Render(string(status))
}

// RenderStepper draws the five steps on one line, completed steps ticked.
func RenderStepper(status model.OrderStatus) string {
	steps := Steps(status)
	parts := make([]string, len(steps))
	for i, st := range steps {
		switch {
		case st.Current:
			parts[i] = currentStyle.Render("✓ " + string(st.Status))
		case st.Completed:
			parts[i] = doneStyle.Render("✓ " + string(st.Status))
		default:
			parts[i] = todoStyle.Render(strconv.Itoa(i+1) + " " + string(st.Status))
		}
	}
	return strings.Join(parts, todoStyle.Render(" ─ "))
}

// RenderBar draws the progress bar at width cells.
func RenderBar(status model.OrderStatus, width int) string {
	if width <= 0 {
		return ""
	}
	filled := int(Progress(status)*float64(width) + 0.5)
	return doneStyle.Render(strings.Repeat("━", filled)) + barEmpty.Render(strings.Repeat("─", width-filled))
}
