// Package menu implements the interactive text menu over a task store.
package menu

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"

	"taskmenu/internal/output"
	"taskmenu/internal/publish"
	"taskmenu/internal/service"
	"taskmenu/internal/taskstore"
)

// Title is printed above the option list.
const Title = "Task menu"

// MaxLineLength caps one line of input. Longer lines are discarded and
// reported as a user error.
const MaxLineLength = 1 << 20

// ConnectFunc opens the export backend. It is called on first export only.
type ConnectFunc func(ctx context.Context) (service.Service, error)

// Options configures a Menu.
type Options struct {
	In     io.Reader
	Out    io.Writer
	ErrOut io.Writer
	Logger *log.Logger

	// Quiet suppresses the option list and confirmations.
	Quiet bool

	// Connect enables the export option. Nil disables it.
	Connect ConnectFunc

	// ExportList names the remote list; empty means the default list.
	ExportList string
}

// errExit ends the loop normally.
var errExit = errors.New("exit")

// userError is reported to the user and does not end the loop.
type userError struct{ msg string }

func (e userError) Error() string { return e.msg }

func userErrorf(format string, args ...any) error {
	return userError{msg: fmt.Sprintf(format, args...)}
}

// option is one menu entry.
type option struct {
	key   string
	label string
	run   func(ctx context.Context) error
}

// Menu reads choices line by line and applies them to the store.
type Menu struct {
	store  *taskstore.Store
	opts   Options
	logger *log.Logger

	out    *output.Printer
	errOut *output.Printer

	options []option
	lines   <-chan inputLine
	readErr error

	publisher *publish.Publisher
}

// New creates a menu over store. The store is owned by the caller.
func New(store *taskstore.Store, opts Options) *Menu {
	if opts.Out == nil {
		opts.Out = io.Discard
	}
	if opts.ErrOut == nil {
		opts.ErrOut = io.Discard
	}
	if opts.In == nil {
		opts.In = strings.NewReader("")
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	m := &Menu{
		store:  store,
		opts:   opts,
		logger: logger,
		out:    output.NewPrinter(opts.Out),
		errOut: output.NewPrinter(opts.ErrOut),
	}
	m.options = []option{
		{"1", "Add task", m.add},
		{"2", "List all tasks", m.listAll},
		{"3", "List pending tasks", m.listPending},
		{"4", "List completed tasks", m.listCompleted},
		{"5", "Mark task complete", m.markComplete},
		{"6", "Show summary", m.summary},
		{"7", "Exit", m.exit},
		{"8", "Export to Google Tasks", m.export},
	}
	return m
}

// Run shows the menu until the user exits, input ends, or ctx is cancelled.
// Exit and end of input return nil; cancellation returns ctx.Err().
func (m *Menu) Run(ctx context.Context) error {
	done := make(chan struct{})
	defer close(done)
	m.lines = m.readLines(done)

	m.logger.Debug("menu started", "tasks", m.store.Len())
	for {
		if !m.opts.Quiet {
			m.out.Menu(Title, m.items())
		}

		err := m.step(ctx)

		var uerr userError
		switch {
		case err == nil:
		case errors.As(err, &uerr):
			m.errOut.Error(uerr.msg)
		default:
			return m.finish(err)
		}
	}
}

// step reads one choice and runs the selected option.
func (m *Menu) step(ctx context.Context) error {
	choice, err := m.prompt(ctx, "Choose an option: ")
	if err != nil {
		return err
	}

	opt, ok := m.find(choice)
	if !ok {
		return userErrorf("invalid option: %s", choice)
	}

	m.logger.Debug("menu option", "key", opt.key, "label", opt.label)
	return opt.run(ctx)
}

// finish maps loop-ending errors to Run's result.
func (m *Menu) finish(err error) error {
	if errors.Is(err, errExit) || errors.Is(err, io.EOF) {
		m.logger.Debug("menu finished", "tasks", m.store.Len())
		return nil
	}
	return err
}

func (m *Menu) items() []output.MenuItem {
	items := make([]output.MenuItem, len(m.options))
	for i, o := range m.options {
		items[i] = output.MenuItem{Key: o.key, Label: o.label}
	}
	return items
}

func (m *Menu) find(key string) (option, bool) {
	for _, o := range m.options {
		if o.key == key {
			return o, true
		}
	}
	return option{}, false
}

// inputLine is one line of input. Text is empty when the line was too long.
type inputLine struct {
	text    string
	tooLong bool
}

// readLines feeds input lines to the returned channel until EOF or done is
// closed, so prompts can also wait on ctx.
func (m *Menu) readLines(done <-chan struct{}) <-chan inputLine {
	lines := make(chan inputLine)
	r := bufio.NewReader(m.opts.In)
	go func() {
		defer close(lines)
		for {
			line, err := readLine(r, MaxLineLength)
			if err != nil {
				if !errors.Is(err, io.EOF) {
					m.readErr = err
				}
				return
			}
			select {
			case lines <- line:
			case <-done:
				return
			}
		}
	}()
	return lines
}

// readLine reads up to the next newline. Bytes past limit are consumed and
// dropped, and the line is marked too long.
func readLine(r *bufio.Reader, limit int) (inputLine, error) {
	var (
		buf  []byte
		line inputLine
	)
	for {
		frag, isPrefix, err := r.ReadLine()
		if err != nil {
			return inputLine{}, err
		}
		if !line.tooLong {
			if len(buf)+len(frag) > limit {
				line.tooLong = true
				buf = nil
			} else {
				buf = append(buf, frag...)
			}
		}
		if !isPrefix {
			line.text = string(buf)
			return line, nil
		}
	}
}

// prompt writes label and returns the next trimmed input line.
func (m *Menu) prompt(ctx context.Context, label string) (string, error) {
	fmt.Fprint(m.opts.Out, label)
	select {
	case <-ctx.Done():
		fmt.Fprintln(m.opts.Out)
		return "", ctx.Err()
	case line, ok := <-m.lines:
		if !ok {
			fmt.Fprintln(m.opts.Out)
			if m.readErr != nil {
				return "", fmt.Errorf("read input: %w", m.readErr)
			}
			return "", io.EOF
		}
		if line.tooLong {
			return "", userErrorf("input line too long (limit %d bytes)", MaxLineLength)
		}
		return strings.TrimSpace(line.text), nil
	}
}

// confirm prints an informational line unless quiet.
func (m *Menu) confirm(format string, args ...any) {
	if !m.opts.Quiet {
		fmt.Fprintf(m.opts.Out, format+"\n", args...)
	}
}

func (m *Menu) add(ctx context.Context) error {
	desc, err := m.prompt(ctx, "Task description: ")
	if err != nil {
		return err
	}
	if desc == "" {
		return userErrorf("description cannot be empty")
	}

	task := m.store.Add(desc)
	m.logger.Debug("task added", "id", task.ID)
	m.confirm("added task %d: %s", task.ID, task.Description)
	return nil
}

func (m *Menu) listAll(ctx context.Context) error {
	m.out.Tasks("All tasks", m.store.List())
	return nil
}

func (m *Menu) listPending(ctx context.Context) error {
	m.out.Tasks("Pending tasks", m.store.FilterByStatus(false))
	return nil
}

func (m *Menu) listCompleted(ctx context.Context) error {
	m.out.Tasks("Completed tasks", m.store.FilterByStatus(true))
	return nil
}

func (m *Menu) markComplete(ctx context.Context) error {
	input, err := m.prompt(ctx, "Task ID: ")
	if err != nil {
		return err
	}

	id, err := strconv.Atoi(input)
	if errors.Is(err, strconv.ErrRange) {
		// Out of range for int, so no task can have it.
		return userErrorf("task not found: %s", input)
	}
	if err != nil {
		return userErrorf("task ID must be an integer: %s", input)
	}
	if !m.store.MarkComplete(id) {
		return userErrorf("task not found: %d", id)
	}

	m.logger.Debug("task completed", "id", id)
	m.confirm("completed task %d", id)
	return nil
}

func (m *Menu) summary(ctx context.Context) error {
	m.out.Summary(m.store.Summary())
	return nil
}

func (m *Menu) exit(ctx context.Context) error {
	m.confirm("bye")
	return errExit
}

func (m *Menu) export(ctx context.Context) error {
	if m.opts.Connect == nil {
		return userErrorf("export is not configured")
	}

	if m.publisher == nil {
		svc, err := m.opts.Connect(ctx)
		if err != nil {
			m.logger.Warn("connect failed", "err", err)
			return exportError(err)
		}
		m.publisher = publish.New(svc, m.opts.ExportList, m.logger)
		m.logger.Debug("export session", "id", m.publisher.SessionID())
	}

	res, err := m.publisher.Publish(ctx, m.store.List())
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		m.logger.Warn("export failed", "err", err)
		return exportError(err)
	}

	m.confirm("exported to %s: %d created, %d completed, %d unchanged",
		res.List, res.Created, res.Completed, res.Unchanged)
	return nil
}

// exportError turns backend failures into user-facing messages.
func exportError(err error) error {
	switch {
	case errors.Is(err, service.ErrAuth):
		return userErrorf("%v", err)
	case errors.Is(err, service.ErrNotFound):
		return userErrorf("export list not found: %v", err)
	case errors.Is(err, service.ErrAmbiguous):
		return userErrorf("ambiguous export list: %v", err)
	default:
		return userErrorf("backend error: %v", err)
	}
}
