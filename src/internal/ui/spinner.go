package ui

import (
	"time"

	"github.com/briandowns/spinner"
)

// Spinner shows progress during discovery scans. It resolves to a
// Success or Warning line so the scan leaves a record on the console.
type Spinner struct {
	inner *spinner.Spinner
}

// NewSpinner creates a spinner suffixed with message.
func NewSpinner(message string) *Spinner {
	s := spinner.New(
		spinner.CharSets[14],
		100*time.Millisecond,
		spinner.WithColor("cyan"),
		spinner.WithSuffix(" "+message),
	)
	return &Spinner{inner: s}
}

// Start begins the animation.
func (s *Spinner) Start() {
	s.inner.Start()
}

// Stop halts the animation without printing anything.
func (s *Spinner) Stop() {
	s.inner.Stop()
}

// Success stops the spinner and prints a success line.
func (s *Spinner) Success(message string) {
	s.inner.Stop()
	_, _ = successColor.Printf("%s %s\n", successSymbol, message)
}

// Warning stops the spinner and prints a warning line.
func (s *Spinner) Warning(message string) {
	s.inner.Stop()
	_, _ = warningColor.Printf("%s %s\n", warningSymbol, message)
}
