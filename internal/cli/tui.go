package cli

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/railfill/pkg/generate"
	"github.com/matzehuels/railfill/pkg/pipeline"
	"github.com/matzehuels/railfill/pkg/railing"
)

// TUI styles
var (
	tuiLabelStyle = lipgloss.NewStyle().Foreground(colorLabel).Width(12)
	tuiValueStyle = lipgloss.NewStyle().Foreground(colorValue)
	tuiDimStyle   = lipgloss.NewStyle().Foreground(colorMuted)
)

// spinnerFrames are shared with the plain spinner.
var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// =============================================================================
// Messages
// =============================================================================

type progressMsg generate.Progress

type bestMsg struct {
	rods    int
	fitness float64
}

type doneMsg struct {
	res    *generate.Result
	cached bool
	err    error
}

type tickMsg time.Time

func tick() tea.Cmd {
	return tea.Tick(80*time.Millisecond, func(t time.Time) tea.Msg { return tickMsg(t) })
}

// =============================================================================
// GenerateModel - Live generation progress
// =============================================================================

// GenerateModel is the bubbletea model showing a running generation.
// Quitting cancels the run; the model waits for the generator to hand back
// its result before exiting.
type GenerateModel struct {
	Requested  int
	Progress   generate.Progress
	BestRods   int
	HasBest    bool
	Done       *doneMsg
	Cancelling bool

	cancel context.CancelFunc
	frame  int
}

// NewGenerateModel creates a model for a run placing requested rods.
// cancel is called when the user quits.
func NewGenerateModel(requested int, cancel context.CancelFunc) GenerateModel {
	return GenerateModel{Requested: requested, cancel: cancel}
}

func (m GenerateModel) Init() tea.Cmd {
	return tick()
}

func (m GenerateModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			if !m.Cancelling && m.cancel != nil {
				m.cancel()
			}
			m.Cancelling = true
		}
	case progressMsg:
		m.Progress = generate.Progress(msg)
	case bestMsg:
		m.BestRods = msg.rods
		m.Progress.BestFitness = msg.fitness
		m.Progress.HasBest = true
		m.HasBest = true
	case doneMsg:
		m.Done = &msg
		return m, tea.Quit
	case tickMsg:
		m.frame++
		return m, tick()
	}
	return m, nil
}

func (m GenerateModel) View() string {
	if m.Done != nil {
		return ""
	}
	var b strings.Builder

	frame := styleIconSpinner.Render(spinnerFrames[m.frame%len(spinnerFrames)])
	title := "Generating infill"
	if m.Cancelling {
		title = "Cancelling"
	}
	b.WriteString(frame + " " + StyleTitle.Render(title))
	b.WriteString("\n\n")

	p := m.Progress
	row := func(label, value string) {
		b.WriteString(tuiLabelStyle.Render(label) + " " + tuiValueStyle.Render(value) + "\n")
	}
	row("Phase", p.Phase.String())
	row("Attempt", fmt.Sprintf("%d", p.Attempt))
	row("Iterations", fmt.Sprintf("%d", p.Iterations))
	if m.HasBest {
		row("Best", fmt.Sprintf("%.3f (%d/%d rods)", p.BestFitness, m.BestRods, m.Requested))
	} else {
		row("Best", "—")
	}
	row("Elapsed", p.Elapsed.Truncate(100*time.Millisecond).String())

	b.WriteString("\n")
	b.WriteString(tuiDimStyle.Render("q cancel and keep the best arrangement"))
	b.WriteString("\n")
	return b.String()
}

// =============================================================================
// Program wiring
// =============================================================================

// tuiObserver forwards generation events to a running program.
type tuiObserver struct {
	send func(tea.Msg)
}

func (o tuiObserver) OnProgress(p generate.Progress) { o.send(progressMsg(p)) }

func (o tuiObserver) OnBestImproved(in *railing.Infill) {
	msg := bestMsg{rods: in.RodCount()}
	if in.Run != nil {
		msg.fitness = in.Run.Fitness
	}
	o.send(msg)
}

func (tuiObserver) OnCompleted(*generate.Result)      {}
func (tuiObserver) OnFailed(string, *generate.Result) {}

// runTUI generates under an interactive progress view on stderr.
func runTUI(ctx context.Context, runner *pipeline.Runner, frame *railing.Frame, params generate.Params) (*generate.Result, bool, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	p := tea.NewProgram(NewGenerateModel(params.Placement.NumRods, cancel), tea.WithOutput(os.Stderr))

	results := make(chan doneMsg, 1)
	go func() {
		res, cached, err := runner.Generate(ctx, frame, params, tuiObserver{send: p.Send})
		d := doneMsg{res: res, cached: cached, err: err}
		results <- d
		p.Send(d)
	}()

	if _, err := p.Run(); err != nil {
		cancel()
		<-results
		return nil, false, fmt.Errorf("progress view: %w", err)
	}
	cancel()
	d := <-results
	return d.res, d.cached, d.err
}
