package ui

import (
	"fmt"
	"io"
	"strings"

	"mergebench/internal/benchmark"
	apperrors "mergebench/internal/errors"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
)

// ProgressMsg carries one finished trial into the model.
type ProgressMsg benchmark.Progress

// DoneMsg ends the model once the suite has returned.
type DoneMsg struct {
	Suite *benchmark.Suite
	Err   error
}

// SuiteModel renders a progress bar while a suite runs.
type SuiteModel struct {
	Total    int
	Done     int
	Failures int
	Defects  int
	Last     *benchmark.Progress
	Finished bool
	Quitting bool

	cancel   func()
	progress progress.Model
}

// NewSuiteModel tracks total trials. cancel is called when the user quits.
func NewSuiteModel(total int, cancel func()) SuiteModel {
	return SuiteModel{
		Total:    total,
		cancel:   cancel,
		progress: progress.New(progress.WithDefaultGradient()),
	}
}

func (m SuiteModel) Init() tea.Cmd {
	return nil
}

func (m SuiteModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			m.Quitting = true
			if m.cancel != nil {
				m.cancel()
			}
			return m, tea.Quit
		}

	case tea.WindowSizeMsg:
		m.progress.Width = min(msg.Width-10, 80)
		return m, nil

	case ProgressMsg:
		p := benchmark.Progress(msg)
		m.Done = p.Done
		m.Last = &p
		switch {
		case apperrors.IsDefect(p.Err):
			m.Defects++
		case p.Err != nil:
			m.Failures++
		}
		return m, nil

	case DoneMsg:
		m.Finished = true
		return m, tea.Quit
	}

	return m, nil
}

// Percent is the completed share of the suite.
func (m SuiteModel) Percent() float64 {
	if m.Total <= 0 {
		return 1
	}
	return min(float64(m.Done)/float64(m.Total), 1)
}

func (m SuiteModel) View() string {
	var s strings.Builder

	s.WriteString(Title("MERGE SORT SUITE") + "\n\n")
	s.WriteString(m.progress.ViewAs(m.Percent()) + "\n")
	s.WriteString(fmt.Sprintf("%d/%d trials", m.Done, m.Total))
	if m.Defects > 0 {
		s.WriteString("  " + Failure(fmt.Sprintf("%d defects", m.Defects)))
	}
	if m.Failures > 0 {
		s.WriteString("  " + Failure(fmt.Sprintf("%d failures", m.Failures)))
	}
	s.WriteString("\n")

	if m.Last != nil {
		last := fmt.Sprintf("last: size %d run %d in %d ms", m.Last.Trial.Size, m.Last.Trial.Run, m.Last.Trial.Elapsed.Milliseconds())
		s.WriteString(Muted(last) + "\n")
	}

	if !m.Finished {
		s.WriteString(helpStyle.Render("(q) abort suite"))
	}
	return s.String()
}

// TrackSuite runs work while showing progress on out. work receives the
// callback to pass as benchmark.Config.Progress. The program exits when work
// returns or the user quits; TrackSuite always waits for work to finish.
func TrackSuite(in io.Reader, out io.Writer, total int, cancel func(), work func(report func(benchmark.Progress)) (*benchmark.Suite, error)) (*benchmark.Suite, error) {
	opts := []tea.ProgramOption{tea.WithOutput(out)}
	if in != nil {
		opts = append(opts, tea.WithInput(in))
	} else {
		opts = append(opts, tea.WithInput(nil))
	}
	p := tea.NewProgram(NewSuiteModel(total, cancel), opts...)

	done := make(chan DoneMsg, 1)
	go func() {
		suite, err := work(func(pr benchmark.Progress) { p.Send(ProgressMsg(pr)) })
		msg := DoneMsg{Suite: suite, Err: err}
		done <- msg
		p.Send(msg)
	}()

	if _, err := p.Run(); err != nil {
		if cancel != nil {
			cancel()
		}
		res := <-done
		return res.Suite, fmt.Errorf("progress display failed: %w", err)
	}
	res := <-done
	return res.Suite, res.Err
}
