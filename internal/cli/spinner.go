package cli

import (
	"context"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/AlexRiggs/hemo/pkg/observability"
	"github.com/AlexRiggs/hemo/pkg/pipeline"
)

// Spinner animates a progress line on stderr. Its message can be swapped
// mid-run, which the generate command uses to show the current pipeline
// stage.
type Spinner struct {
	mu      sync.Mutex
	message string

	ctx     context.Context
	cancel  context.CancelFunc
	done    chan struct{}
	stopped chan struct{}
}

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// newSpinnerWithContext creates a spinner that stops when ctx is cancelled.
func newSpinnerWithContext(ctx context.Context, message string) *Spinner {
	spinnerCtx, cancel := context.WithCancel(ctx)
	return &Spinner{
		message: message,
		ctx:     spinnerCtx,
		cancel:  cancel,
		done:    make(chan struct{}),
		stopped: make(chan struct{}),
	}
}

// SetMessage replaces the spinner text; the next frame renders it.
func (s *Spinner) SetMessage(message string) {
	s.mu.Lock()
	s.message = message
	s.mu.Unlock()
}

// Start begins the animation.
func (s *Spinner) Start() {
	go func() {
		defer close(s.stopped)
		ticker := time.NewTicker(100 * time.Millisecond)
		defer ticker.Stop()

		for frame := 0; ; frame++ {
			select {
			case <-s.ctx.Done():
				clearLine()
				return
			case <-s.done:
				return
			case <-ticker.C:
				s.mu.Lock()
				msg := s.message
				s.mu.Unlock()
				fmt.Fprintf(os.Stderr, "\r\x1b[K%s %s",
					styleIconSpinner.Render(spinnerFrames[frame%len(spinnerFrames)]),
					StyleDim.Render(msg))
			}
		}
	}()
}

// Stop halts the animation and clears the line.
func (s *Spinner) Stop() {
	s.cancel()
	select {
	case <-s.done:
	default:
		close(s.done)
	}
	<-s.stopped
	clearLine()
}

// StopWithError halts the animation and prints an error line.
func (s *Spinner) StopWithError(message string) {
	s.Stop()
	printError("%s", message)
}

// Cancelled reports whether the spinner stopped because its context did.
func (s *Spinner) Cancelled() bool {
	return s.ctx.Err() != nil
}

// clearLine erases the current terminal line.
func clearLine() {
	fmt.Fprint(os.Stderr, "\r\x1b[K")
}

// =============================================================================
// Stage progress
// =============================================================================

// stageMessages maps pipeline stages to spinner text.
var stageMessages = map[string]string{
	pipeline.StageBuild:    "Building lattice...",
	pipeline.StageLengths:  "Measuring vessel lengths...",
	pipeline.StageRank:     "Ranking vessels by distance...",
	pipeline.StageRadii:    "Drawing vessel radii...",
	pipeline.StagePrep:     "Preparing simulation attributes...",
	pipeline.StageSwitches: "Optimizing radius placement...",
}

// stageHooks forwards pipeline stage starts to a spinner.
type stageHooks struct {
	observability.NoopGeneratorHooks
	spinner *Spinner
}

func (h stageHooks) OnStageStart(_ context.Context, stage string, _ int) {
	if msg, ok := stageMessages[stage]; ok {
		h.spinner.SetMessage(msg)
	}
}
