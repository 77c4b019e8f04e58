// Package tui renders a live view of a running search using bubbletea.
package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	"github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/XiaoConstantine/evolve-go/cmd/evolve-cli/internal/runner"
)

// searchProgressMsg carries a snapshot from the engine's progress
// callback into the update loop.
type searchProgressMsg runner.ProgressUpdate

// searchDoneMsg carries the final outcome of the search.
type searchDoneMsg struct {
	result *runner.RunResult
	err    error
}

// WatchModel is the live search screen state.
type WatchModel struct {
	problemName      string
	searchCfg        runner.SearchConfig
	totalGenerations int

	// Latest snapshot
	generation  int
	bestFitness float64
	bestUnique  string
	archiveSize int

	// Improvement log
	improvements []string
	logViewport  viewport.Model

	startTime time.Time
	elapsed   time.Duration

	width   int
	height  int
	spinner spinner.Model

	done        bool
	finalResult *runner.RunResult
	runErr      error

	progressChan chan runner.ProgressUpdate
	doneChan     chan searchDoneMsg
}

// NewWatchModel builds the live view for one search run. The search
// itself starts when the bubbletea program calls Init.
func NewWatchModel(problemName string, cfg runner.SearchConfig, totalGenerations int) WatchModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color(EvolveBlue))

	vp := viewport.New(76, 8)
	vp.Style = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(MediumGray))

	return WatchModel{
		problemName:      problemName,
		searchCfg:        cfg,
		totalGenerations: totalGenerations,
		logViewport:      vp,
		spinner:          s,
		startTime:        time.Now(),
		width:            80,
		height:           24,
		progressChan:     make(chan runner.ProgressUpdate, 64),
		doneChan:         make(chan searchDoneMsg, 1),
	}
}

// Init starts the search goroutine and the update listeners.
func (m WatchModel) Init() tea.Cmd {
	return tea.Batch(
		m.spinner.Tick,
		m.startSearch(),
		m.waitForUpdate(),
	)
}

// Update handles messages and advances the model.
func (m WatchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.logViewport.Width = m.width - 4
		if logHeight := m.height - 14; logHeight > 4 {
			m.logViewport.Height = logHeight
		}

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "enter":
			if m.done {
				return m, tea.Quit
			}
		case "up", "k":
			m.logViewport.LineUp(1)
		case "down", "j":
			m.logViewport.LineDown(1)
		}

	case spinner.TickMsg:
		if !m.done {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			cmds = append(cmds, cmd)
		}

	case searchProgressMsg:
		m.applyProgress(runner.ProgressUpdate(msg))
		cmds = append(cmds, m.waitForUpdate())

	case searchDoneMsg:
		m.done = true
		m.finalResult = msg.result
		m.runErr = msg.err
	}

	var cmd tea.Cmd
	m.logViewport, cmd = m.logViewport.Update(msg)
	cmds = append(cmds, cmd)

	if !m.done {
		m.elapsed = time.Since(m.startTime)
	}

	return m, tea.Batch(cmds...)
}

// View renders the live search screen.
func (m WatchModel) View() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	sections := []string{
		HeaderStyle.Width(m.width).Render(fmt.Sprintf("Evolutionary search - %s", m.problemName)),
		m.renderProgress(),
		m.renderImprovements(),
		m.renderFooter(),
	}

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// Result returns the final run outcome once the search has finished.
func (m WatchModel) Result() (*runner.RunResult, error) {
	return m.finalResult, m.runErr
}

// Done reports whether the search finished before the UI exited.
func (m WatchModel) Done() bool {
	return m.done
}

// startSearch launches the runner on its own goroutine, streaming
// progress snapshots back through the model's channels.
func (m WatchModel) startSearch() tea.Cmd {
	cfg := m.searchCfg
	progressChan := m.progressChan
	doneChan := m.doneChan

	cfg.SuppressLogs = true
	cfg.Progress = func(update runner.ProgressUpdate) {
		// Drop snapshots rather than stall the engine when the UI lags
		select {
		case progressChan <- update:
		default:
		}
	}

	return func() tea.Msg {
		go func() {
			result, err := runner.RunSearch(cfg)
			doneChan <- searchDoneMsg{result: result, err: err}
		}()
		return nil
	}
}

// waitForUpdate blocks until the next snapshot or the final result
// arrives. Each delivered message re-arms the listener.
func (m WatchModel) waitForUpdate() tea.Cmd {
	progressChan := m.progressChan
	doneChan := m.doneChan

	return func() tea.Msg {
		select {
		case update := <-progressChan:
			return searchProgressMsg(update)
		case done := <-doneChan:
			return done
		}
	}
}

func (m *WatchModel) applyProgress(update runner.ProgressUpdate) {
	improved := update.ArchiveSize > 0 &&
		(m.archiveSize == 0 || update.BestFitness > m.bestFitness)

	m.generation = update.Generation
	m.bestFitness = update.BestFitness
	m.bestUnique = update.BestUnique
	m.archiveSize = update.ArchiveSize

	if improved {
		line := fmt.Sprintf("[gen %5d] fitness %.3f  %s",
			update.Generation, update.BestFitness, update.BestUnique)
		m.improvements = append(m.improvements, line)
		m.logViewport.SetContent(strings.Join(m.improvements, "\n"))
		m.logViewport.GotoBottom()
	}
}

func (m WatchModel) renderProgress() string {
	var content strings.Builder

	switch {
	case m.done && m.runErr != nil:
		content.WriteString(ErrorStyle.Render("Search failed: " + m.runErr.Error()))
	case m.done:
		content.WriteString(SuccessStyle.Render("Search complete"))
	default:
		content.WriteString(m.spinner.View() + " " + TitleStyle.Render("Breeding"))
	}
	content.WriteString("\n\n")

	content.WriteString(m.renderBar())
	content.WriteString("\n")

	if m.archiveSize > 0 {
		metrics := fmt.Sprintf("generation %d/%d   best fitness %.3f   archive %d   elapsed %s",
			m.generation, m.totalGenerations, m.bestFitness, m.archiveSize,
			m.elapsed.Round(time.Second))
		content.WriteString(MutedStyle.Render(metrics))
	} else {
		content.WriteString(MutedStyle.Render("waiting for the first progress report..."))
	}

	return BoxStyle.Width(m.width - 2).Render(content.String())
}

func (m WatchModel) renderBar() string {
	width := m.width - 10
	if width < 20 {
		width = 20
	}

	progress := 0.0
	if m.totalGenerations > 0 {
		progress = float64(m.generation) / float64(m.totalGenerations)
	}
	if m.done && m.runErr == nil {
		progress = 1.0
	}

	filled := int(float64(width) * progress)
	if filled > width {
		filled = width
	}

	bar := barFilledStyle.Render(strings.Repeat("█", filled)) +
		barEmptyStyle.Render(strings.Repeat("░", width-filled))
	return fmt.Sprintf("%s %3.0f%%", bar, progress*100)
}

func (m WatchModel) renderImprovements() string {
	title := MutedStyle.Render("Improvements")
	return lipgloss.JoinVertical(lipgloss.Left, title, m.logViewport.View())
}

func (m WatchModel) renderFooter() string {
	controls := []string{"[up/down] scroll"}
	if m.done {
		controls = append(controls, "[enter] exit")
	}
	controls = append(controls, "[q] quit")

	return FooterStyle.Render(strings.Join(controls, "   "))
}
