package tui

import tea "github.com/charmbracelet/bubbletea"

// Start runs the assessment wizard until the user quits.
func Start(opts Options) error {
	program := tea.NewProgram(NewModel(opts), tea.WithAltScreen())
	_, err := program.Run()
	return err
}
