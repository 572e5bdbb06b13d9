package tui

import (
	"errors"
	"fmt"
	"io"

	"github.com/mockround/mockround/internal/config"
)

// ErrInteractiveOnly is returned when an interview is requested without a terminal.
var ErrInteractiveOnly = errors.New("interviews need an interactive terminal")

// FallbackRunner handles non-TTY execution by pointing users at the
// commands that do not need a terminal.
type FallbackRunner struct {
	cfg *config.Config
	out io.Writer
}

// NewFallbackRunner creates a new FallbackRunner writing to out.
func NewFallbackRunner(cfg *config.Config, out io.Writer) *FallbackRunner {
	return &FallbackRunner{cfg: cfg, out: out}
}

// Run prints guidance and returns ErrInteractiveOnly.
func (f *FallbackRunner) Run() error {
	fmt.Fprintln(f.out, "Non-TTY environment detected.")
	fmt.Fprintf(f.out, "Question service: %s\n", f.cfg.API.BaseURL)
	fmt.Fprintln(f.out, "Available without a terminal:")
	fmt.Fprintln(f.out, "  mockround resume add --file <path>   upload a resume")
	fmt.Fprintln(f.out, "  mockround report <session-id>        print a session report")
	fmt.Fprintln(f.out, "  mockround serve                      run the question service")
	return ErrInteractiveOnly
}
