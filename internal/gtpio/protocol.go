// Package gtpio implements the line-oriented text command protocol
// framing spec.md §6 describes: "[id] command [args]\n" requests,
// "=id result\n\n" / "?id error\n\n" responses. The full command
// grammar and dispatch table live in cmd/gogtp; this package only owns
// the line framing and a small dispatch registry, the minimal boundary
// spec.md §1's Non-goals leave to an external collaborator.
package gtpio

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/uctgo/gouct/internal/engerr"
)

// Command is one parsed request line.
type Command struct {
	ID      *int
	Name    string
	Args    []string
}

// ParseLine parses a raw input line into a Command. Comment lines
// (starting with '#') and blank lines parse as a zero Command with an
// empty Name, which callers should simply skip.
func ParseLine(line string) (Command, error) {
	line = strings.TrimRight(line, "\r\n")
	if hash := strings.IndexByte(line, '#'); hash >= 0 {
		line = line[:hash]
	}
	line = strings.TrimSpace(line)
	if line == "" {
		return Command{}, nil
	}
	fields := strings.Fields(line)
	var id *int
	if n, err := strconv.Atoi(fields[0]); err == nil {
		id = &n
		fields = fields[1:]
	}
	if len(fields) == 0 {
		return Command{}, &engerr.ProtocolError{Line: line, Why: "missing command name"}
	}
	return Command{ID: id, Name: fields[0], Args: fields[1:]}, nil
}

// FormatSuccess renders a successful response per the protocol's
// "=id result\n\n" framing.
func FormatSuccess(id *int, result string) string {
	return format('=', id, result)
}

// FormatError renders a failed response per "?id error\n\n".
func FormatError(id *int, msg string) string {
	return format('?', id, msg)
}

func format(prefix byte, id *int, body string) string {
	var b strings.Builder
	b.WriteByte(prefix)
	if id != nil {
		fmt.Fprintf(&b, "%d", *id)
	}
	if body != "" {
		b.WriteByte(' ')
		b.WriteString(body)
	}
	b.WriteString("\n\n")
	return b.String()
}

// Handler answers one command's arguments with either a result string
// or an error.
type Handler func(args []string) (string, error)

// Dispatcher maps command names to handlers and drives the
// read-parse-dispatch-write loop over a line-buffered stream.
type Dispatcher struct {
	handlers map[string]Handler
}

// NewDispatcher builds an empty dispatch table.
func NewDispatcher() *Dispatcher {
	return &Dispatcher{handlers: make(map[string]Handler)}
}

// Register adds (or replaces) the handler for name.
func (d *Dispatcher) Register(name string, h Handler) {
	d.handlers[name] = h
}

// Names returns every registered command name, for "list_commands".
func (d *Dispatcher) Names() []string {
	names := make([]string, 0, len(d.handlers))
	for n := range d.handlers {
		names = append(names, n)
	}
	return names
}

// Dispatch runs one already-parsed command through its handler,
// rendering the framed response. An unregistered command name is a
// protocol error, not a panic.
func (d *Dispatcher) Dispatch(cmd Command) string {
	h, ok := d.handlers[cmd.Name]
	if !ok {
		return FormatError(cmd.ID, fmt.Sprintf("unknown command: %s", cmd.Name))
	}
	result, err := h(cmd.Args)
	if err != nil {
		return FormatError(cmd.ID, err.Error())
	}
	return FormatSuccess(cmd.ID, result)
}

// Serve reads lines from r, dispatches each one, and writes the framed
// response to w, until r is exhausted or the "quit" command runs.
// Blank/comment lines produce no output, matching the protocol's
// framing rules.
func (d *Dispatcher) Serve(r io.Reader, w io.Writer) error {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 4096), 1<<20)
	for sc.Scan() {
		cmd, err := ParseLine(sc.Text())
		if err != nil {
			if perr, ok := err.(*engerr.ProtocolError); ok {
				fmt.Fprint(w, FormatError(nil, perr.Why))
				continue
			}
			return err
		}
		if cmd.Name == "" {
			continue
		}
		fmt.Fprint(w, d.Dispatch(cmd))
		if cmd.Name == "quit" {
			return nil
		}
	}
	return sc.Err()
}
