// Package tui 实现终端里的样式编辑面板：左侧分组控件，右侧实时预览属性。
package tui

import "github.com/charmbracelet/lipgloss"

// =============================================================================
// Color Palette
// =============================================================================

var (
	colorCyan   = lipgloss.Color("36")
	colorGreen  = lipgloss.Color("35")
	colorYellow = lipgloss.Color("220")
	colorRed    = lipgloss.Color("167")
	colorWhite  = lipgloss.Color("255")
	colorGray   = lipgloss.Color("245")
	colorDim    = lipgloss.Color("240")
)

// =============================================================================
// Styles
// =============================================================================

var (
	styleTitle         = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	styleTab           = lipgloss.NewStyle().Foreground(colorGray).Padding(0, 1)
	styleTabActive     = lipgloss.NewStyle().Bold(true).Foreground(colorCyan).Padding(0, 1).Underline(true)
	styleLabel         = lipgloss.NewStyle().Foreground(colorGray).Width(20)
	styleLabelSelected = lipgloss.NewStyle().Bold(true).Foreground(colorCyan).Width(20)
	styleSelected      = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	styleValue         = lipgloss.NewStyle().Foreground(colorWhite)
	styleDim           = lipgloss.NewStyle().Foreground(colorDim)
	styleWarning       = lipgloss.NewStyle().Foreground(colorYellow)
	styleError         = lipgloss.NewStyle().Foreground(colorRed)
	styleSuccess       = lipgloss.NewStyle().Foreground(colorGreen)
	stylePane          = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(colorDim).Padding(0, 1)
)
