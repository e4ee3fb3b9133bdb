package viz

import "github.com/charmbracelet/lipgloss"

var (
	HeaderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true).MarginBottom(1)
	LabelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(12)
	ValueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	DimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("242"))
	HelpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginTop(1)
	CursorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Bold(true)
	GraphStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("49")).Padding(1, 0)
	PanelStyle  = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, false, false, true).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 2)

	// Error operators keep the conventional colors: X red, Y yellow, Z blue.
	XStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
	YStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("220")).Bold(true)
	ZStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("39")).Bold(true)
)

// OpStyle returns the display style for one error label.
func OpStyle(label string) lipgloss.Style {
	switch label {
	case "X":
		return XStyle
	case "Y":
		return YStyle
	case "Z":
		return ZStyle
	}
	return DimStyle
}
