package cli

import (
	"fmt"
	"os"
	"sort"
	"strings"
)

// CommandFunc represents a command function signature
type CommandFunc func([]string)

// Runner handles command routing and execution
type Runner struct {
	commands map[string]CommandFunc
}

// NewRunner creates a new command runner
func NewRunner() *Runner {
	return &Runner{
		commands: make(map[string]CommandFunc),
	}
}

// RegisterCommand registers a command handler
func (r *Runner) RegisterCommand(name string, fn CommandFunc) {
	r.commands[name] = fn
}

// Lookup returns the handler registered under command.
func (r *Runner) Lookup(command string) (CommandFunc, bool) {
	fn, ok := r.commands[command]
	return fn, ok
}

// Names returns the registered command names, sorted.
func (r *Runner) Names() []string {
	names := make([]string, 0, len(r.commands))
	for name := range r.commands {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Execute runs the specified command with arguments
func (r *Runner) Execute(command string, args []string) {
	fn, ok := r.Lookup(command)
	if !ok {
		fmt.Fprintf(os.Stderr, "Unknown command: %s (available: %s)\n", command, strings.Join(r.Names(), ", "))
		os.Exit(1)
	}
	fn(args)
}
