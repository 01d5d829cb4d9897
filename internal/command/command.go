// Package command maps the bord verbs onto the board engine.
//
// Every recognized command runs the same cycle: apply the mutation, drop
// empty boards, render the whole store. Domain errors skip the render and
// exit with status 1.
package command

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/pflag"

	"bord/internal/console"
	"bord/internal/engine"
)

const (
	DefaultDescription = "Hello World"
	DefaultPriority    = 1

	msgUnknownTask = "A Task with that ID was not found"
	msgBadPriority = "Priority must be an integer of 1, 2, or 3"
)

// usageError marks malformed input: unknown verbs, missing or bad arguments.
type usageError struct {
	msg string
}

func (e *usageError) Error() string { return e.msg }

func usagef(format string, args ...any) error {
	return &usageError{msg: fmt.Sprintf(format, args...)}
}

// runFunc executes a command with its positional arguments.
type runFunc func(ctx context.Context, eng *engine.Engine, args []string) error

type command struct {
	name    string
	args    string
	summary string
	// setup registers the command's flags and returns its run function.
	setup func(fs *pflag.FlagSet) runFunc
}

var commands = []command{
	{name: "list", summary: "List Tasks", setup: listCommand},
	{name: "task", args: "[description]", summary: "Add a new Task", setup: taskCommand},
	{name: "delete", args: "<id>", summary: "Delete a Task", setup: deleteCommand},
	{name: "check", args: "<id>", summary: "Toggle complete on a Task", setup: checkCommand},
	{name: "move", args: "<id> <board>", summary: "Move a Task to another board", setup: moveCommand},
	{name: "edit", args: "<id> <description>", summary: "Edit a Task Description", setup: editCommand},
	{name: "prioritize", args: "<id> <priority>", summary: "Edit a Task Priority", setup: prioritizeCommand},
}

func lookup(name string) (command, bool) {
	for _, c := range commands {
		if c.name == name {
			return c, true
		}
	}
	return command{}, false
}

// Dispatcher runs one command against an engine and prints the result.
type Dispatcher struct {
	engine  *engine.Engine
	printer *console.Printer
	stderr  io.Writer
}

func NewDispatcher(eng *engine.Engine, printer *console.Printer, stderr io.Writer) *Dispatcher {
	return &Dispatcher{engine: eng, printer: printer, stderr: stderr}
}

// Run executes args and returns the process exit status. The error is only
// set for failures outside the engine's contract, such as an unreachable
// store.
func (d *Dispatcher) Run(ctx context.Context, args []string) (int, error) {
	if len(args) == 0 {
		d.usage()
		return d.finish(ctx, 1)
	}

	name := args[0]
	if name == "help" || name == "-h" || name == "--help" {
		d.usage()
		return 0, nil
	}

	err := d.execute(ctx, name, args[1:])
	var ue *usageError
	switch {
	case err == nil:
		return d.finish(ctx, 0)
	case errors.Is(err, pflag.ErrHelp):
		return 0, nil
	case errors.As(err, &ue):
		fmt.Fprintf(d.stderr, "error: %s\n\n", ue.msg)
		d.usage()
		return d.finish(ctx, 1)
	case errors.Is(err, engine.ErrUnknownTaskID):
		d.printer.Message(msgUnknownTask)
		return 1, nil
	case errors.Is(err, engine.ErrPriorityOutOfRange):
		d.printer.Message(msgBadPriority)
		return 1, nil
	default:
		return 1, err
	}
}

func (d *Dispatcher) execute(ctx context.Context, name string, args []string) error {
	cmd, ok := lookup(name)
	if !ok {
		return usagef("unknown command %q", name)
	}

	fs := pflag.NewFlagSet(name, pflag.ContinueOnError)
	fs.SetOutput(d.stderr)
	run := cmd.setup(fs)
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return err
		}
		return usagef("%s: %v", name, err)
	}

	return run(ctx, d.engine, fs.Args())
}

// finish drops empty boards and prints the store.
func (d *Dispatcher) finish(ctx context.Context, code int) (int, error) {
	if _, err := d.engine.CleanupEmptyBoards(ctx); err != nil {
		return 1, err
	}
	report, err := d.engine.RenderAll(ctx)
	if err != nil {
		return 1, err
	}
	if err := d.printer.Print(report); err != nil {
		return 1, err
	}
	return code, nil
}

func (d *Dispatcher) usage() {
	var sb strings.Builder
	sb.WriteString("Usage: bord <command> [arguments]\n\nCommands:\n")
	for _, c := range commands {
		fmt.Fprintf(&sb, "  %-11s %-19s %s\n", c.name, c.args, c.summary)
	}
	sb.WriteString("\nFlags for task:\n")
	fs := pflag.NewFlagSet("task", pflag.ContinueOnError)
	taskCommand(fs)
	sb.WriteString(fs.FlagUsages())
	fmt.Fprint(d.stderr, sb.String())
}

func parseID(name string, args []string) (uint, error) {
	if len(args) == 0 {
		return 0, usagef("%s: missing task id", name)
	}
	id, err := strconv.ParseUint(args[0], 10, 64)
	if err != nil {
		return 0, usagef("%s: invalid task id %q", name, args[0])
	}
	return uint(id), nil
}

func listCommand(_ *pflag.FlagSet) runFunc {
	return func(_ context.Context, _ *engine.Engine, args []string) error {
		if len(args) > 0 {
			return usagef("list: unexpected argument %q", args[0])
		}
		return nil
	}
}

func taskCommand(fs *pflag.FlagSet) runFunc {
	board := fs.StringP("board", "b", "", "Board to add new task to (default board when empty)")
	priority := fs.IntP("priority", "p", DefaultPriority, "Priority of the task (1-3)")

	return func(ctx context.Context, eng *engine.Engine, args []string) error {
		description := DefaultDescription
		if len(args) > 0 {
			description = strings.Join(args, " ")
		}
		_, err := eng.CreateTask(ctx, description, *priority, *board)
		return err
	}
}

func deleteCommand(_ *pflag.FlagSet) runFunc {
	return func(ctx context.Context, eng *engine.Engine, args []string) error {
		id, err := parseID("delete", args)
		if err != nil {
			return err
		}
		_, err = eng.DeleteTask(ctx, id)
		return err
	}
}

func checkCommand(_ *pflag.FlagSet) runFunc {
	return func(ctx context.Context, eng *engine.Engine, args []string) error {
		id, err := parseID("check", args)
		if err != nil {
			return err
		}
		_, err = eng.ToggleComplete(ctx, id)
		return err
	}
}

func moveCommand(_ *pflag.FlagSet) runFunc {
	return func(ctx context.Context, eng *engine.Engine, args []string) error {
		id, err := parseID("move", args)
		if err != nil {
			return err
		}
		if len(args) < 2 || args[1] == "" {
			return usagef("move: missing destination board")
		}
		_, err = eng.MoveTask(ctx, id, strings.Join(args[1:], " "))
		return err
	}
}

func editCommand(_ *pflag.FlagSet) runFunc {
	return func(ctx context.Context, eng *engine.Engine, args []string) error {
		id, err := parseID("edit", args)
		if err != nil {
			return err
		}
		if len(args) < 2 {
			return usagef("edit: missing description")
		}
		_, err = eng.SetDescription(ctx, id, strings.Join(args[1:], " "))
		return err
	}
}

func prioritizeCommand(_ *pflag.FlagSet) runFunc {
	return func(ctx context.Context, eng *engine.Engine, args []string) error {
		id, err := parseID("prioritize", args)
		if err != nil {
			return err
		}
		if len(args) < 2 {
			return usagef("prioritize: missing priority")
		}
		priority, err := strconv.Atoi(args[1])
		if err != nil {
			return usagef("prioritize: invalid priority %q", args[1])
		}
		_, err = eng.SetPriority(ctx, id, priority)
		return err
	}
}
