package progress

import (
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/schollz/progressbar/v3"
)

// Spinner provides feedback while a chat turn is being processed.
type Spinner interface {
	Start(message string)
	Stop()
}

// NewSpinner returns a TerminalSpinner if running in an interactive
// terminal, or a CISpinner if the CI environment variable is set.
func NewSpinner() Spinner {
	if os.Getenv("CI") != "" || os.Getenv("GITHUB_ACTIONS") != "" {
		return &CISpinner{}
	}
	return &TerminalSpinner{}
}

// TerminalSpinner animates an indeterminate progress bar in the
// terminal while waiting for catalog searches and the model.
type TerminalSpinner struct {
	mu   sync.Mutex
	bar  *progressbar.ProgressBar
	done chan struct{}
}

func (s *TerminalSpinner) Start(message string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.bar = progressbar.NewOptions(-1,
		progressbar.OptionSetDescription(message),
		progressbar.OptionSpinnerType(14),
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionClearOnFinish(),
	)
	s.done = make(chan struct{})

	go func(bar *progressbar.ProgressBar, done chan struct{}) {
		ticker := time.NewTicker(100 * time.Millisecond)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				_ = bar.Add(1)
			}
		}
	}(s.bar, s.done)
}

func (s *TerminalSpinner) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.done != nil {
		close(s.done)
		s.done = nil
	}
	if s.bar != nil {
		_ = s.bar.Finish()
		s.bar = nil
	}
}

// CISpinner prints single lines suitable for CI logs.
type CISpinner struct{}

func (s *CISpinner) Start(message string) {
	fmt.Fprintf(os.Stderr, "%s\n", message)
}

func (s *CISpinner) Stop() {}
