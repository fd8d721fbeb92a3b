package console

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"workouttimer/internal/core/intervals"
)

// Controller is the part of the engine driven by console commands.
type Controller interface {
	Start()
	Reset()
	ConfigureText(field intervals.Field, value string) bool
}

const usage = "commands: s|start, r|reset, w|work SECONDS, rest SECONDS, q|quit"

// Run reads commands from in until quit, EOF or ctx cancellation. Messages
// for rejected commands go to out.
func Run(ctx context.Context, in io.Reader, out io.Writer, controller Controller) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	lines := make(chan string)
	scanErr := make(chan error, 1)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
		scanErr <- scanner.Err()
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case line, ok := <-lines:
			if !ok {
				select {
				case err := <-scanErr:
					return err
				default:
					return nil
				}
			}
			if quit := Execute(line, out, controller); quit {
				return nil
			}
		}
	}
}

// Execute runs one command line and reports whether it asked to quit.
func Execute(line string, out io.Writer, controller Controller) bool {
	fields := strings.Fields(strings.ToLower(line))
	if len(fields) == 0 {
		return false
	}

	switch fields[0] {
	case "s", "start":
		controller.Start()
	case "r", "reset":
		controller.Reset()
	case "w", "work":
		configure(fields, intervals.FieldWork, out, controller)
	case "rest":
		configure(fields, intervals.FieldRest, out, controller)
	case "q", "quit", "exit":
		return true
	default:
		fmt.Fprintf(out, "\nunknown command %q; %s\n", fields[0], usage)
	}
	return false
}

func configure(fields []string, field intervals.Field, out io.Writer, controller Controller) {
	if len(fields) != 2 {
		fmt.Fprintf(out, "\nusage: %s SECONDS\n", fields[0])
		return
	}
	if !controller.ConfigureText(field, fields[1]) {
		fmt.Fprintf(out, "\n%s duration unchanged (%q rejected)\n", field, fields[1])
	}
}
