package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/rksxox-coder/broken-link-resolver/resolver"
	"github.com/rksxox-coder/broken-link-resolver/result"
)

// ResolveProgressMsg reports progress for a single resolved URL.
type ResolveProgressMsg struct {
	Checked   int
	Recovered int
	Broken    int
	URL       string
	Status    result.Status
}

// ResolveDoneMsg signals the batch has completed.
type ResolveDoneMsg struct {
	Result *result.BatchResult
	Err    error
}

// waitForProgress returns a tea.Cmd that reads one event from the progress
// channel. When the channel closes, it returns a ResolveDoneMsg with nil
// Result (the actual result comes from startResolve).
func waitForProgress(ch <-chan resolver.Event) tea.Cmd {
	return func() tea.Msg {
		evt, ok := <-ch
		if !ok {
			return ResolveDoneMsg{}
		}
		return ResolveProgressMsg{
			Checked:   evt.Checked,
			Recovered: evt.Recovered,
			Broken:    evt.Broken,
			URL:       evt.URL,
			Status:    evt.Status,
		}
	}
}
