// Package tui provides the Bubble Tea terminal UI for bulk URL resolution,
// displaying live progress and a styled summary of results.
package tui

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/rksxox-coder/broken-link-resolver/resolver"
	"github.com/rksxox-coder/broken-link-resolver/result"
)

// Model is the Bubble Tea model for the resolution TUI.
type Model struct {
	ctx        context.Context
	cancel     context.CancelFunc
	res        *resolver.Resolver
	urls       []string
	spinner    spinner.Model
	progressCh <-chan resolver.Event

	checked   int
	recovered int
	broken    int
	current   string
	quitting  bool
	done      bool
	result    *result.BatchResult
	err       error
	width     int
}

// NewModel creates a TUI model wired to the given resolver and progress channel.
func NewModel(ctx context.Context, cancel context.CancelFunc, res *resolver.Resolver, urls []string, progressCh <-chan resolver.Event) Model {
	spin := spinner.New()
	spin.Spinner = spinner.Dot
	spin.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))
	return Model{
		ctx:        ctx,
		cancel:     cancel,
		res:        res,
		urls:       urls,
		spinner:    spin,
		progressCh: progressCh,
	}
}

// Init starts the spinner, the batch resolution, and the progress listener
// concurrently.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.startResolve(), waitForProgress(m.progressCh))
}

// startResolve returns a tea.Cmd that runs the batch and sends ResolveDoneMsg.
func (m Model) startResolve() tea.Cmd {
	return func() tea.Msg {
		return ResolveDoneMsg{Result: m.res.ResolveAll(m.ctx, m.urls)}
	}
}

// Update handles messages from the Bubble Tea runtime.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			m.quitting = true
			m.cancel()
			return m, tea.Quit
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width

	case ResolveProgressMsg:
		m.checked = msg.Checked
		m.recovered = msg.Recovered
		m.broken = msg.Broken
		m.current = msg.URL
		return m, waitForProgress(m.progressCh)

	case ResolveDoneMsg:
		m.done = true
		if msg.Result != nil {
			m.result = msg.Result
		}
		if msg.Err != nil {
			m.err = msg.Err
		}
		if m.result != nil || m.err != nil {
			return m, tea.Quit
		}
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m, nil
}

// View renders the current TUI state.
func (m Model) View() string {
	if m.done && m.result != nil {
		return RenderSummary(m.result)
	}
	if m.done && m.err != nil {
		return errorStyle.Render("Error: "+m.err.Error()) + "\n"
	}
	return fmt.Sprintf("%s Resolving... checked %d/%d, recovered %d, broken %d\n%s\n",
		m.spinner.View(), m.checked, len(m.urls), m.recovered, m.broken,
		dimStyle.Render("  "+m.current))
}

// HasBrokenLinks reports whether any URL ended up without a working
// alternative.
func (m Model) HasBrokenLinks() bool {
	return m.result != nil && m.result.Stats.Unrecovered+m.result.Stats.Errored > 0
}

// GetResult returns the batch result for output formatting.
func (m Model) GetResult() *result.BatchResult {
	return m.result
}
