package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/AlexRiggs/hemo/pkg/netio"
	"github.com/AlexRiggs/hemo/pkg/pipeline"
	"github.com/AlexRiggs/hemo/pkg/store"
)

// List styles
var (
	listDoneStyle    = lipgloss.NewStyle().Foreground(colorGreen)
	listFailedStyle  = lipgloss.NewStyle().Foreground(colorRed)
	listRunningStyle = lipgloss.NewStyle().Foreground(colorCyan)
	listPendingStyle = lipgloss.NewStyle().Foreground(colorDim)
)

// =============================================================================
// BatchModel - Seed sweep progress
// =============================================================================

// runStatus is the lifecycle of one batch run.
type runStatus int

const (
	runPending runStatus = iota
	runActive
	runDone
	runFailed
)

// batchRun tracks one seed in the sweep.
type batchRun struct {
	Seed     uint64
	Status   runStatus
	Edges    int
	Cached   bool
	Duration time.Duration
	StoreID  string
	Err      error
}

// runDoneMsg reports a finished run back to the model.
type runDoneMsg struct {
	Index    int
	Edges    int
	Cached   bool
	Duration time.Duration
	StoreID  string
	Err      error
}

// BatchModel is the bubbletea model for a multi-seed generation sweep.
// Runs execute sequentially; the model owns no goroutines beyond the
// tea.Cmd for the active run.
type BatchModel struct {
	Runs    []batchRun
	Current int
	Aborted bool

	ctx    context.Context
	runner *pipeline.Runner
	st     store.Store
	opts   pipeline.Options
}

// NewBatchModel creates a sweep over consecutive seeds starting at opts.Seed.
// A nil store skips persistence.
func NewBatchModel(ctx context.Context, runner *pipeline.Runner, st store.Store, opts pipeline.Options, runs int) BatchModel {
	m := BatchModel{
		ctx:    ctx,
		runner: runner,
		st:     st,
		opts:   opts,
		Runs:   make([]batchRun, runs),
	}
	for i := range m.Runs {
		m.Runs[i].Seed = opts.Seed + uint64(i)
	}
	return m
}

func (m BatchModel) Init() tea.Cmd {
	return m.startRun(0)
}

// startRun returns the command executing run i.
func (m BatchModel) startRun(i int) tea.Cmd {
	opts := m.opts
	opts.Seed = m.Runs[i].Seed
	ctx, runner, st := m.ctx, m.runner, m.st

	return func() tea.Msg {
		start := time.Now()
		result, err := runner.Execute(ctx, opts)
		msg := runDoneMsg{Index: i, Duration: time.Since(start), Err: err}
		if err != nil {
			return msg
		}
		msg.Edges = result.Stats.EdgeCount
		msg.Cached = result.CacheHit
		if st != nil {
			msg.StoreID, msg.Err = st.Put(ctx, &store.Record{
				Resolution: opts.Resolution,
				Seed:       opts.Seed,
				Symmetric:  opts.Symmetric,
				Passes:     opts.Passes,
				Network:    netio.FromNetwork(result.Network),
			})
		}
		return msg
	}
}

func (m BatchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			m.Aborted = true
			return m, tea.Quit
		}
	case runDoneMsg:
		run := &m.Runs[msg.Index]
		run.Edges = msg.Edges
		run.Cached = msg.Cached
		run.Duration = msg.Duration
		run.StoreID = msg.StoreID
		run.Err = msg.Err
		if msg.Err != nil {
			run.Status = runFailed
		} else {
			run.Status = runDone
		}

		next := msg.Index + 1
		if next >= len(m.Runs) {
			return m, tea.Quit
		}
		m.Current = next
		m.Runs[next].Status = runActive
		return m, m.startRun(next)
	}
	return m, nil
}

func (m BatchModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render(fmt.Sprintf("Generating %d networks", len(m.Runs))))
	b.WriteString("\n")
	b.WriteString(listPendingStyle.Render("q quit"))
	b.WriteString("\n\n")

	for _, run := range m.Runs {
		var line string
		switch run.Status {
		case runDone:
			detail := fmt.Sprintf("%d edges · %s", run.Edges, run.Duration.Round(time.Millisecond))
			if run.Cached {
				detail += " · cached"
			}
			if run.StoreID != "" {
				detail += " · " + run.StoreID
			}
			line = listDoneStyle.Render(iconSuccess) + fmt.Sprintf(" seed %-6d ", run.Seed) + listPendingStyle.Render(detail)
		case runFailed:
			line = listFailedStyle.Render(iconError) + fmt.Sprintf(" seed %-6d ", run.Seed) + listFailedStyle.Render(run.Err.Error())
		case runActive:
			line = listRunningStyle.Render("…") + fmt.Sprintf(" seed %-6d ", run.Seed) + listPendingStyle.Render("generating")
		default:
			line = listPendingStyle.Render(fmt.Sprintf("· seed %-6d", run.Seed))
		}
		b.WriteString(line)
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(listPendingStyle.Render(fmt.Sprintf("  [%d/%d]", m.completed(), len(m.Runs))))

	return b.String()
}

func (m BatchModel) completed() int {
	n := 0
	for _, run := range m.Runs {
		if run.Status == runDone || run.Status == runFailed {
			n++
		}
	}
	return n
}

// =============================================================================
// Batch entry point
// =============================================================================

// runGenerateBatch drives a seed sweep through the TUI.
func (c *CLI) runGenerateBatch(ctx context.Context, opts pipeline.Options, runs int, noCache, save bool) error {
	runner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	opts.Logger = c.Logger
	opts.Physics = c.physics()
	if opts.Seed == 0 {
		opts.Seed = pipeline.DefaultSeed
	}
	if opts.GammaShape == 0 {
		opts.GammaShape = c.Config.Generation.GammaShape
	}
	if opts.Passes == 0 && !opts.NoRepair {
		opts.Passes = c.Config.Generation.RepairPasses
	}

	var st store.Store
	if save {
		st, err = c.newStore(ctx)
		if err != nil {
			return fmt.Errorf("initialize store: %w", err)
		}
		defer st.Close(ctx)
	}

	model := NewBatchModel(ctx, runner, st, opts, runs)
	model.Runs[0].Status = runActive

	final, err := tea.NewProgram(model, tea.WithContext(ctx)).Run()
	if err != nil {
		return fmt.Errorf("run sweep: %w", err)
	}

	result, ok := final.(BatchModel)
	if !ok {
		return nil
	}
	if result.Aborted {
		printWarning("Sweep aborted")
		return nil
	}

	failed := 0
	for _, run := range result.Runs {
		if run.Status == runFailed {
			failed++
		}
	}
	if failed > 0 {
		printWarning("%d of %d runs failed", failed, len(result.Runs))
		return nil
	}
	printSuccess("Generated %d networks", len(result.Runs))
	return nil
}
