// Package cli provides terminal output helpers for the field client:
// colored status lines, a request spinner, and simple table rendering.
package cli

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"
)

// Color codes for terminal output
const (
	ColorReset  = "\033[0m"
	ColorRed    = "\033[31m"
	ColorGreen  = "\033[32m"
	ColorYellow = "\033[33m"
	ColorBlue   = "\033[34m"
	ColorCyan   = "\033[36m"
	ColorBold   = "\033[1m"
)

// Spinner shows an in-flight request indicator.
type Spinner struct {
	frames   []string
	current  int
	prefix   string
	mu       sync.Mutex
	writer   io.Writer
	active   bool
	colorize bool
	done     chan struct{}
}

// NewSpinner creates a spinner with the given prefix text.
func NewSpinner(prefix string) *Spinner {
	return &Spinner{
		frames:   []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"},
		prefix:   prefix,
		writer:   os.Stdout,
		colorize: isTerminal(),
		done:     make(chan struct{}),
	}
}

// Start begins animating. Calling Start twice is a no-op.
func (s *Spinner) Start() {
	s.mu.Lock()
	if s.active {
		s.mu.Unlock()
		return
	}
	s.active = true
	s.mu.Unlock()

	go func() {
		ticker := time.NewTicker(100 * time.Millisecond)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				s.mu.Lock()
				if !s.active {
					s.mu.Unlock()
					return
				}
				s.render()
				s.current = (s.current + 1) % len(s.frames)
				s.mu.Unlock()
			case <-s.done:
				return
			}
		}
	}()
}

// Stop halts the spinner and clears the line.
func (s *Spinner) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.active {
		return
	}
	s.active = false
	close(s.done)
	fmt.Fprint(s.writer, "\r"+strings.Repeat(" ", 80)+"\r")
}

// Succeed stops the spinner and prints a success line.
func (s *Spinner) Succeed(message string) {
	s.Stop()
	Success(message)
}

// Fail stops the spinner and prints an error line.
func (s *Spinner) Fail(message string) {
	s.Stop()
	Error(message)
}

func (s *Spinner) render() {
	frame := s.frames[s.current]
	if s.colorize {
		frame = ColorCyan + frame + ColorReset
	}
	fmt.Fprintf(s.writer, "\r%s %s", frame, s.prefix)
}

// Colorize wraps text in a color code when stdout is a terminal.
func Colorize(text, color string) string {
	if !isTerminal() {
		return text
	}
	return color + text + ColorReset
}

// Success prints a green check line.
func Success(message string) {
	statusLine("✓", ColorGreen, message)
}

// Error prints a red cross line.
func Error(message string) {
	statusLine("✗", ColorRed, message)
}

// Warning prints a yellow warning line.
func Warning(message string) {
	statusLine("⚠", ColorYellow, message)
}

// Info prints a blue info line.
func Info(message string) {
	statusLine("ℹ", ColorBlue, message)
}

func statusLine(symbol, color, message string) {
	if isTerminal() {
		fmt.Printf("%s%s%s %s\n", color, symbol, ColorReset, message)
	} else {
		fmt.Printf("%s %s\n", symbol, message)
	}
}

// PrintTable renders rows under a header, columns padded to the widest cell.
func PrintTable(header []string, rows [][]string) {
	widths := make([]int, len(header))
	for i, h := range header {
		widths[i] = len([]rune(h))
	}
	for _, row := range rows {
		for i, cell := range row {
			if i < len(widths) && len([]rune(cell)) > widths[i] {
				widths[i] = len([]rune(cell))
			}
		}
	}

	printRow := func(cells []string) {
		parts := make([]string, 0, len(cells))
		for i, cell := range cells {
			if i < len(widths) {
				cell += strings.Repeat(" ", widths[i]-len([]rune(cell)))
			}
			parts = append(parts, cell)
		}
		fmt.Println(strings.TrimRight(strings.Join(parts, "  "), " "))
	}

	printRow(header)
	underline := make([]string, len(header))
	for i := range header {
		underline[i] = strings.Repeat("-", widths[i])
	}
	printRow(underline)
	for _, row := range rows {
		printRow(row)
	}
}

// isTerminal checks if stdout is a terminal.
func isTerminal() bool {
	fileInfo, _ := os.Stdout.Stat()
	return (fileInfo.Mode() & os.ModeCharDevice) != 0
}
