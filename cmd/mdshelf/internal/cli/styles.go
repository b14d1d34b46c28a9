package cli

import "github.com/charmbracelet/lipgloss"

var (
	accentColor  = lipgloss.Color("#7D56F4")
	mutedColor   = lipgloss.Color("#767676")
	successColor = lipgloss.Color("#04B575")
	errorColor   = lipgloss.Color("#FF5F87")
)

var (
	TitleStyle   = lipgloss.NewStyle().Bold(true).Foreground(accentColor)
	FolderStyle  = lipgloss.NewStyle().Bold(true).Foreground(accentColor)
	FileStyle    = lipgloss.NewStyle()
	MutedStyle   = lipgloss.NewStyle().Foreground(mutedColor)
	KeyStyle     = lipgloss.NewStyle().Foreground(accentColor)
	SuccessStyle = lipgloss.NewStyle().Foreground(successColor)
	ErrorStyle   = lipgloss.NewStyle().Bold(true).Foreground(errorColor)
)
