package editor

import (
	"image/color"

	"charm.land/lipgloss/v2"
	"github.com/wesen/mlcd/internal/canvas"
)

// c is shorthand for lipgloss.Color.
func c(hex string) color.Color { return lipgloss.Color(hex) }

var (
	colorBG      = c(canvas.DefaultTheme.Background)
	colorPanelBG = c("#0f1d17")
	colorAccent  = c("#00ffc8")
	colorDim     = c("#4a7a68")
	colorText    = c("#b8f5e0")
	colorWarn    = c("#ffcc00")
	colorError   = c("#ff5f5f")

	toolbarStyle = lipgloss.NewStyle().Background(c("#0a1510")).Foreground(colorAccent).Bold(true)
	footerStyle  = lipgloss.NewStyle().Background(c("#0a1510")).Foreground(c("#7a9a8a"))
	errorStyle   = footerStyle.Foreground(colorError).Bold(true)
	canvasStyle  = lipgloss.NewStyle().Background(colorBG)

	panelStyle      = lipgloss.NewStyle().Background(colorPanelBG)
	panelTitleStyle = panelStyle.Foreground(colorAccent).Bold(true)
	panelDimStyle   = panelStyle.Foreground(colorDim)
	panelTextStyle  = panelStyle.Foreground(colorText)
	panelKeyStyle   = panelStyle.Foreground(c("#ddaa44"))
	panelCurStyle   = panelStyle.Foreground(colorWarn).Bold(true)
	separatorStyle  = lipgloss.NewStyle().Foreground(c("#1a4a3a")).Background(colorBG)

	modalBG         = c("#0a1510")
	modalBoxStyle   = lipgloss.NewStyle().Border(lipgloss.NormalBorder()).BorderForeground(c("#00d4a0")).Background(modalBG).Padding(1, 2)
	modalTitleStyle = lipgloss.NewStyle().Foreground(colorAccent).Background(modalBG).Bold(true)
	modalLabelStyle = lipgloss.NewStyle().Foreground(c("#ddaa44")).Background(modalBG)
	modalHintStyle  = lipgloss.NewStyle().Foreground(c("#336655")).Background(modalBG).Italic(true)
)
