package viz

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
)

// Frame is one snapshot of a running integration, produced by the
// simulation goroutine and consumed by the live view.
type Frame struct {
	Step   int
	Total  int
	Time   float64
	Values []float64 // reconstructed u(x) samples
	Energy float64
}

type frameMsg Frame

type doneMsg struct{ err error }

// LiveModel is a bubbletea program that follows an ongoing run, drawing the
// current spatial profile and run status.
type LiveModel struct {
	frames <-chan Frame
	errs   <-chan error
	last   Frame
	err    error
	done   bool
	width  int
	height int
}

func NewLiveModel(frames <-chan Frame, errs <-chan error) LiveModel {
	return LiveModel{frames: frames, errs: errs, width: 80, height: 14}
}

func (m LiveModel) Init() tea.Cmd {
	return m.waitForFrame()
}

func (m LiveModel) waitForFrame() tea.Cmd {
	return func() tea.Msg {
		frame, ok := <-m.frames
		if !ok {
			var err error
			if m.errs != nil {
				err = <-m.errs
			}
			return doneMsg{err: err}
		}
		return frameMsg(frame)
	}
}

func (m LiveModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.width = msg.Width
		if msg.Height > 6 {
			m.height = msg.Height - 6
		}
	case frameMsg:
		m.last = Frame(msg)
		return m, m.waitForFrame()
	case doneMsg:
		m.done = true
		m.err = msg.err
		return m, nil
	}
	return m, nil
}

func (m LiveModel) View() string {
	title := TitleStyle.Render("kflame")
	status := StatusRunning.Render("running")
	if m.done {
		status = StatusDone.Render("done")
		if m.err != nil {
			status = StatusDone.Render("stopped: " + m.err.Error())
		}
	}

	header := fmt.Sprintf("%s  %s  %s", title, status,
		Subtle.Render(fmt.Sprintf("step %d/%d  t=%.2f  E=%.4g",
			m.last.Step, m.last.Total, m.last.Time, m.last.Energy)))

	plotWidth := m.width - 10
	if plotWidth < 20 {
		plotWidth = 20
	}
	body := PanelStyle.Render(Profile(m.last.Values, plotWidth, m.height, "u(x)"))

	footer := Subtle.Render("q to quit")
	return header + "\n\n" + body + "\n" + footer + "\n"
}
