package notify

import (
	"context"
	"fmt"
	"io"
	"os"
)

// ConsoleSender writes alerts to a terminal. It rings the terminal bell so
// an operator watching the scanner notices a hit immediately.
type ConsoleSender struct {
	out io.Writer
}

// NewConsoleSender creates a ConsoleSender writing to stderr.
func NewConsoleSender() *ConsoleSender {
	return &ConsoleSender{out: os.Stderr}
}

// Send prints the alert with a leading bell character.
func (c *ConsoleSender) Send(_ context.Context, title, message string) error {
	_, err := fmt.Fprintf(c.out, "\a=== %s ===\n%s\n", title, message)
	if err != nil {
		return fmt.Errorf("console: write alert: %w", err)
	}
	return nil
}

// Name returns the sender identifier.
func (c *ConsoleSender) Name() string {
	return "console"
}
